package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

const (
	movCompanyID = "11111111-1111-1111-1111-111111111111"
	movUserID    = "22222222-2222-2222-2222-222222222222"
	movProductID = "33333333-3333-3333-3333-333333333333"
)

func buildMovementFixture() (*RegisterMovementUseCase, *fakeMovementRepo) {
	movements := &fakeMovementRepo{}
	products := newFakeProductRepo(&entity.Product{
		ID:        movProductID,
		CompanyID: movCompanyID,
		SKU:       "SKU-001",
		Name:      "Tornillo 3mm",
	})
	tx := &fakeTxRunner{movements: movements, products: products, orders: newFakeOrderRepo()}
	return NewRegisterMovementUseCase(tx, products, movements), movements
}

func registrar(t *testing.T, uc *RegisterMovementUseCase, movType string, qty string) string {
	t.Helper()
	group, err := uc.RegisterMovement(context.Background(), MovementInputDTO{
		CompanyID: movCompanyID,
		UserID:    movUserID,
		ProductID: movProductID,
		Type:      movType,
		Quantity:  decimal.RequireFromString(qty),
	})
	require.NoError(t, err)
	require.NotEmpty(t, group)
	return group
}

// La suma del ledger tras una secuencia de movimientos debe ser la suma neta
// de las cantidades firmadas: IN 10, OUT 3, ADJUSTMENT −1 → 6.
func TestRegisterMovement_SumaNetaDelLedger(t *testing.T) {
	uc, movements := buildMovementFixture()

	registrar(t, uc, entity.MovementTypeIN, "10")
	registrar(t, uc, entity.MovementTypeOUT, "3")
	registrar(t, uc, entity.MovementTypeADJUSTMENT, "-1")

	sums, err := movements.SumByProduct(context.Background(), movCompanyID, []string{movProductID})
	require.NoError(t, err)
	assert.True(t, sums[movProductID].Equal(decimal.RequireFromString("6")),
		"la suma neta del ledger debe ser 6, fue %s", sums[movProductID])
	assert.Len(t, movements.rows, 3, "cada operación agrega exactamente una fila")
}

// RETURN suma y EXCHANGE resta: el signo lo resuelve el tipo, nunca el caller.
func TestRegisterMovement_SignosPorTipo(t *testing.T) {
	uc, movements := buildMovementFixture()

	registrar(t, uc, entity.MovementTypeRETURN, "4")
	registrar(t, uc, entity.MovementTypeEXCHANGE, "1.5")

	require.Len(t, movements.rows, 2)
	assert.True(t, movements.rows[0].SignedQty.Equal(decimal.RequireFromString("4")))
	assert.True(t, movements.rows[1].SignedQty.Equal(decimal.RequireFromString("-1.5")))
}

// Un TRANSFER agrega exactamente dos filas: −qty en origen y +qty en destino,
// compartiendo movement_group; la suma neta del producto no cambia.
func TestRegisterMovement_TransferParejaCorrelacionada(t *testing.T) {
	uc, movements := buildMovementFixture()

	group, err := uc.RegisterMovement(context.Background(), MovementInputDTO{
		CompanyID:    movCompanyID,
		UserID:       movUserID,
		ProductID:    movProductID,
		Type:         entity.MovementTypeTRANSFER,
		Quantity:     decimal.RequireFromString("5"),
		LocationFrom: "bodega-central",
		LocationTo:   "tienda-norte",
	})
	require.NoError(t, err)

	pair, err := movements.ListByGroup(context.Background(), movCompanyID, group)
	require.NoError(t, err)
	require.Len(t, pair, 2, "TRANSFER debe producir exactamente dos filas")

	assert.True(t, pair[0].SignedQty.Equal(decimal.RequireFromString("-5")))
	assert.True(t, pair[1].SignedQty.Equal(decimal.RequireFromString("5")))
	assert.Equal(t, pair[0].MovementGroup, pair[1].MovementGroup)

	sums, err := movements.SumByProduct(context.Background(), movCompanyID, []string{movProductID})
	require.NoError(t, err)
	assert.True(t, sums[movProductID].IsZero(), "un traslado no cambia el stock total del producto")
}

// TRANSFER sin ubicaciones (o con origen == destino) se rechaza antes de
// escribir: cero filas en el ledger.
func TestRegisterMovement_TransferInvalido_CeroFilas(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
	}{
		{"sin origen", "", "tienda-norte"},
		{"sin destino", "bodega-central", ""},
		{"origen igual a destino", "bodega-central", "bodega-central"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, movements := buildMovementFixture()
			_, err := uc.RegisterMovement(context.Background(), MovementInputDTO{
				CompanyID:    movCompanyID,
				UserID:       movUserID,
				ProductID:    movProductID,
				Type:         entity.MovementTypeTRANSFER,
				Quantity:     decimal.RequireFromString("5"),
				LocationFrom: tc.from,
				LocationTo:   tc.to,
			})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, movements.rows, "la validación falló: no debe haber filas")
		})
	}
}

// Si la segunda fila de la pareja falla, la transacción revierte la primera:
// nunca queda media transferencia en el ledger.
func TestRegisterMovement_TransferFalloSegundaFila_Rollback(t *testing.T) {
	uc, movements := buildMovementFixture()
	movements.failAfter = 1 // la primera fila entra, la segunda falla

	_, err := uc.RegisterMovement(context.Background(), MovementInputDTO{
		CompanyID:    movCompanyID,
		UserID:       movUserID,
		ProductID:    movProductID,
		Type:         entity.MovementTypeTRANSFER,
		Quantity:     decimal.RequireFromString("5"),
		LocationFrom: "bodega-central",
		LocationTo:   "tienda-norte",
	})
	require.ErrorIs(t, err, domain.ErrPartialWrite)
	assert.Empty(t, movements.rows, "el rollback debe dejar el ledger intacto")
}

// Cantidades no positivas para IN/OUT y delta cero para ADJUSTMENT se rechazan
// sin tocar persistencia.
func TestRegisterMovement_CantidadesInvalidas(t *testing.T) {
	uc, movements := buildMovementFixture()

	cases := []struct {
		movType string
		qty     string
	}{
		{entity.MovementTypeIN, "0"},
		{entity.MovementTypeIN, "-2"},
		{entity.MovementTypeOUT, "0"},
		{entity.MovementTypeADJUSTMENT, "0"},
	}
	for _, tc := range cases {
		_, err := uc.RegisterMovement(context.Background(), MovementInputDTO{
			CompanyID: movCompanyID,
			UserID:    movUserID,
			ProductID: movProductID,
			Type:      tc.movType,
			Quantity:  decimal.RequireFromString(tc.qty),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%s %s debe rechazarse", tc.movType, tc.qty)
	}
	assert.Empty(t, movements.rows)
}

// Tipo desconocido → ErrInvalidInput.
func TestRegisterMovement_TipoDesconocido(t *testing.T) {
	uc, _ := buildMovementFixture()
	_, err := uc.RegisterMovement(context.Background(), MovementInputDTO{
		CompanyID: movCompanyID,
		UserID:    movUserID,
		ProductID: movProductID,
		Type:      "PROMO",
		Quantity:  decimal.RequireFromString("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Producto inexistente → 404; producto de otro tenant → 403.
func TestRegisterMovement_ProductoAjenoOInexistente(t *testing.T) {
	uc, _ := buildMovementFixture()

	_, err := uc.RegisterMovement(context.Background(), MovementInputDTO{
		CompanyID: movCompanyID,
		UserID:    movUserID,
		ProductID: "99999999-9999-9999-9999-999999999999",
		Type:      entity.MovementTypeIN,
		Quantity:  decimal.RequireFromString("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RegisterMovement(context.Background(), MovementInputDTO{
		CompanyID: "00000000-0000-0000-0000-00000000dead",
		UserID:    movUserID,
		ProductID: movProductID,
		Type:      entity.MovementTypeIN,
		Quantity:  decimal.RequireFromString("1"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ADJUSTMENT conserva el delta tal cual lo pasa el caller (positivo o negativo).
func TestRegisterMovement_AdjustmentConservaSigno(t *testing.T) {
	uc, movements := buildMovementFixture()

	registrar(t, uc, entity.MovementTypeADJUSTMENT, "2.5")
	registrar(t, uc, entity.MovementTypeADJUSTMENT, "-7")

	require.Len(t, movements.rows, 2)
	assert.True(t, movements.rows[0].SignedQty.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, movements.rows[1].SignedQty.Equal(decimal.RequireFromString("-7")))
}
