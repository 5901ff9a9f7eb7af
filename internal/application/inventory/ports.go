package inventory

import (
	"context"

	"github.com/jhoicas/inventario-portal/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que aprobar una solicitud y mover el stock del producto sea atómico.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		requestRepo repository.StockRequestRepository,
		productRepo repository.ProductRepository,
	) error) error
}
