package repository

import (
	"context"

	"github.com/jhoicas/inventario-portal/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update guarda nombre, descripción e imagen. No toca StockQuantity.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock fija StockQuantity; lo usan el efecto de aprobación y la edición directa del admin.
	UpdateStock(ctx context.Context, productID string, quantity int) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
