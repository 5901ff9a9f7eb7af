package repository

import (
	"context"

	"github.com/jhoicas/inventario-portal/internal/domain/entity"
)

// StockRequestRepository define el puerto de persistencia para solicitudes de stock (DIP).
type StockRequestRepository interface {
	Create(ctx context.Context, req *entity.StockRequest) error
	GetByID(ctx context.Context, id string) (*entity.StockRequest, error)
	// GetForUpdate bloquea la fila de la solicitud (SELECT FOR UPDATE) para resolverla sin carreras.
	GetForUpdate(ctx context.Context, id string) (*entity.StockRequest, error)
	// Update y Delete solo afectan solicitudes que siguen pendientes en la BD; si ya se
	// resolvieron devuelven domain.ErrConflict.
	Update(ctx context.Context, req *entity.StockRequest) error
	List(ctx context.Context) ([]*entity.StockRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*entity.StockRequest, error)
	Delete(ctx context.Context, id string) error
}
