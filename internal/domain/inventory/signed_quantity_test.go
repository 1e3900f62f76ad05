package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// ResolveSignedQty — la regla de signo es EL invariante del ledger: si alguien
// la cambia, todos los saldos históricos quedan mal interpretados. Estos tests
// fijan la tabla tipo → signo con vectores exactos.
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveSignedQty_TablaDeSignos(t *testing.T) {
	ten := decimal.NewFromInt(10)

	cases := []struct {
		name     string
		movType  string
		qty      decimal.Decimal
		expected decimal.Decimal
	}{
		{"IN positivo", entity.MovementTypeIN, ten, ten},
		{"RETURN positivo (reingresa a stock)", entity.MovementTypeRETURN, ten, ten},
		{"OUT se guarda negativo", entity.MovementTypeOUT, ten, ten.Neg()},
		{"EXCHANGE consume stock", entity.MovementTypeEXCHANGE, ten, ten.Neg()},
		{"ADJUSTMENT positivo pasa tal cual", entity.MovementTypeADJUSTMENT, ten, ten},
		{"ADJUSTMENT negativo pasa tal cual", entity.MovementTypeADJUSTMENT, ten.Neg(), ten.Neg()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := inventory.ResolveSignedQty(tc.movType, tc.qty)
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(got),
				"esperado %s, obtenido %s", tc.expected, got)
		})
	}
}

func TestResolveSignedQty_MagnitudNoPositivaRechazada(t *testing.T) {
	for _, movType := range []string{
		entity.MovementTypeIN, entity.MovementTypeOUT,
		entity.MovementTypeRETURN, entity.MovementTypeEXCHANGE,
	} {
		_, err := inventory.ResolveSignedQty(movType, decimal.Zero)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo %s con cero debe fallar", movType)

		_, err = inventory.ResolveSignedQty(movType, decimal.NewFromInt(-3))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo %s con negativo debe fallar", movType)
	}
}

func TestResolveSignedQty_AjusteCeroRechazado(t *testing.T) {
	_, err := inventory.ResolveSignedQty(entity.MovementTypeADJUSTMENT, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolveSignedQty_TipoDesconocidoRechazado(t *testing.T) {
	_, err := inventory.ResolveSignedQty("RECOUNT", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransferLegQty_SumaCero(t *testing.T) {
	five := decimal.NewFromInt(5)
	origin, dest, err := inventory.TransferLegQty(five)
	require.NoError(t, err)

	assert.True(t, origin.Equal(five.Neg()), "pata origen debe ser −5")
	assert.True(t, dest.Equal(five), "pata destino debe ser +5")
	assert.True(t, origin.Add(dest).IsZero(), "un traslado no altera el stock total")
}

func TestTransferLegQty_MagnitudInvalida(t *testing.T) {
	_, _, err := inventory.TransferLegQty(decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
