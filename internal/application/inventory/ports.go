package inventory

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Movements repository.StockMovementRepository
	Products  repository.ProductRepository
	Orders    repository.ReplenishmentOrderRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: en particular, la pareja de filas de un TRANSFER se confirma
// completa o no se confirma ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
