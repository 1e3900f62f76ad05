package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Estoque-api/internal/domain/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// RegisterMovementUseCase es el único escritor del ledger de stock. Valida y
// agrega movimientos dentro de una transacción (Commit/Rollback vía TxRunner);
// un TRANSFER produce dos filas correlacionadas que se confirman como unidad
// atómica. El ledger nunca se revierte: las correcciones son nuevas filas
// ADJUSTMENT.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository // lecturas fuera de transacción
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, productRepo: productRepo, movementRepo: movementRepo}
}

// MovementInputDTO entrada para registrar un movimiento.
// Quantity es magnitud positiva, salvo ADJUSTMENT donde es el delta firmado.
// Para TRANSFER se exigen LocationFrom y LocationTo no vacíos y distintos.
type MovementInputDTO struct {
	CompanyID     string
	UserID        string
	ProductID     string
	Type          string
	Quantity      decimal.Decimal
	LocationFrom  string
	LocationTo    string
	Reason        string
	RelatedSaleID string
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, companyID, userID string, in dto.RegisterMovementRequest) (string, error) {
	input := MovementInputDTO{
		CompanyID:     companyID,
		UserID:        userID,
		ProductID:     in.ProductID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		LocationFrom:  in.LocationFrom,
		LocationTo:    in.LocationTo,
		Reason:        in.Reason,
		RelatedSaleID: in.RelatedSaleID,
	}
	return uc.RegisterMovement(ctx, input)
}

// RegisterMovement valida la entrada antes de cualquier I/O y agrega la fila
// (o la pareja, para TRANSFER) al ledger. Devuelve el movement_group de la
// operación: el ID que correlaciona las filas escritas.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (string, error) {
	if err := validateInput(input); err != nil {
		return "", err
	}

	// El producto debe existir y pertenecer al tenant antes de tocar el ledger.
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", domain.ErrNotFound
	}
	if product.CompanyID != input.CompanyID {
		return "", domain.ErrForbidden
	}

	now := time.Now()
	group := uuid.New().String()

	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		if input.Type == entity.MovementTypeTRANSFER {
			return appendTransferPair(ctx, repos.Movements, input, group, now)
		}
		return appendSingle(ctx, repos.Movements, input, group, now)
	})
	if err != nil {
		return "", err
	}
	return group, nil
}

// validateInput aplica las precondiciones por tipo. Siempre antes de cualquier
// escritura: un error aquí garantiza cero filas agregadas.
func validateInput(input MovementInputDTO) error {
	if input.ProductID == "" || input.CompanyID == "" {
		return domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT,
		entity.MovementTypeRETURN, entity.MovementTypeEXCHANGE:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeADJUSTMENT:
		if input.Quantity.IsZero() {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeTRANSFER:
		from := strings.TrimSpace(input.LocationFrom)
		to := strings.TrimSpace(input.LocationTo)
		if from == "" || to == "" || from == to {
			return domain.ErrInvalidInput
		}
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// appendSingle agrega exactamente una fila con el signo resuelto por tipo.
func appendSingle(ctx context.Context, movRepo repository.StockMovementRepository, input MovementInputDTO, group string, now time.Time) error {
	signedQty, err := domaininv.ResolveSignedQty(input.Type, input.Quantity)
	if err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		CompanyID:     input.CompanyID,
		ProductID:     input.ProductID,
		Type:          input.Type,
		SignedQty:     signedQty,
		LocationFrom:  input.LocationFrom,
		LocationTo:    input.LocationTo,
		MovementGroup: group,
		Reason:        input.Reason,
		RelatedSaleID: input.RelatedSaleID,
		CreatedBy:     input.UserID,
		CreatedAt:     now,
	}
	return movRepo.Create(ctx, mov)
}

// appendTransferPair agrega las dos filas correlacionadas de un traslado:
// −qty en origen y +qty en destino, mismo movement_group. Corre dentro de la
// transacción del TxRunner, así que si cualquiera falla no queda ninguna.
func appendTransferPair(ctx context.Context, movRepo repository.StockMovementRepository, input MovementInputDTO, group string, now time.Time) error {
	originQty, destQty, err := domaininv.TransferLegQty(input.Quantity)
	if err != nil {
		return err
	}
	outLeg := &entity.StockMovement{
		ID:            uuid.New().String(),
		CompanyID:     input.CompanyID,
		ProductID:     input.ProductID,
		Type:          entity.MovementTypeTRANSFER,
		SignedQty:     originQty,
		LocationFrom:  input.LocationFrom,
		LocationTo:    input.LocationTo,
		MovementGroup: group,
		Reason:        input.Reason,
		CreatedBy:     input.UserID,
		CreatedAt:     now,
	}
	if err := movRepo.Create(ctx, outLeg); err != nil {
		return err
	}
	inLeg := buildTransferInLeg(input, destQty, group, now)
	if err := movRepo.Create(ctx, inLeg); err != nil {
		// La transacción revierte la primera fila; el error distingue el caso
		// para que el llamador sepa que la pareja no llegó completa.
		return fmt.Errorf("%w: segunda fila del traslado: %v", domain.ErrPartialWrite, err)
	}
	return nil
}

func buildTransferInLeg(input MovementInputDTO, destQty decimal.Decimal, group string, now time.Time) *entity.StockMovement {
	return &entity.StockMovement{
		ID:            uuid.New().String(),
		CompanyID:     input.CompanyID,
		ProductID:     input.ProductID,
		Type:          entity.MovementTypeTRANSFER,
		SignedQty:     destQty,
		LocationFrom:  input.LocationFrom,
		LocationTo:    input.LocationTo,
		MovementGroup: group,
		Reason:        input.Reason,
		CreatedBy:     input.UserID,
		CreatedAt:     now,
	}
}

// ListMovements historial del ledger de un producto, paginado (lectura pura).
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movementRepo.ListByProduct(ctx, companyID, productID, from, to, limit, offset)
}
