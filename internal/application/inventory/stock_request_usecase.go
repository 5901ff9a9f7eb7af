package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-portal/internal/application/dto"
	"github.com/jhoicas/inventario-portal/internal/domain"
	"github.com/jhoicas/inventario-portal/internal/domain/entity"
	"github.com/jhoicas/inventario-portal/internal/domain/repository"
	"github.com/jhoicas/inventario-portal/pkg/logger"
)

// Actor quién ejecuta la operación (sale del JWT).
type Actor struct {
	UserID string
	Role   entity.Role
}

// StockRequestUseCase ciclo de vida de las solicitudes de stock: creación, edición mientras
// está pendiente, resolución por un admin y borrado.
type StockRequestUseCase struct {
	txRunner    TxRunner
	requestRepo repository.StockRequestRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewStockRequestUseCase construye el caso de uso.
func NewStockRequestUseCase(
	txRunner TxRunner,
	requestRepo repository.StockRequestRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *StockRequestUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StockRequestUseCase{
		txRunner:    txRunner,
		requestRepo: requestRepo,
		productRepo: productRepo,
		log:         log,
	}
}

// Create registra una solicitud pendiente del tipo que indica la ruta.
func (uc *StockRequestUseCase) Create(ctx context.Context, actor Actor, t entity.RequestType, in dto.CreateStockRequestRequest) (*dto.StockRequestResponse, error) {
	if !t.Valid() || in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := ensureProduct(ctx, uc.productRepo, in.ProductID); err != nil {
		return nil, err
	}
	now := time.Now()
	req := &entity.StockRequest{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		Type:        t,
		Quantity:    in.Quantity,
		Status:      entity.RequestStatusPending,
		RequesterID: actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	out := dto.NewStockRequestResponse(req)
	return &out, nil
}

// ListAll todas las solicitudes (admin).
func (uc *StockRequestUseCase) ListAll(ctx context.Context) ([]dto.StockRequestResponse, error) {
	list, err := uc.requestRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

// ListMine solicitudes creadas por el actor.
func (uc *StockRequestUseCase) ListMine(ctx context.Context, actor Actor) ([]dto.StockRequestResponse, error) {
	list, err := uc.requestRepo.ListByRequester(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

// Update edita producto y/o cantidad. Solo el dueño y solo mientras está pendiente; la fila
// queda bloqueada hasta el commit.
func (uc *StockRequestUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateStockRequestRequest) (*dto.StockRequestResponse, error) {
	patch := in.ToPatch()
	if patch.Quantity != nil && *patch.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if patch.ProductID != nil && *patch.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.StockRequest
	err := uc.txRunner.Run(ctx, func(requestRepo repository.StockRequestRepository, productRepo repository.ProductRepository) error {
		req, err := lockRequest(ctx, requestRepo, id)
		if err != nil {
			return err
		}
		if req.RequesterID != actor.UserID {
			return domain.ErrForbidden
		}
		if !req.IsPending() {
			return domain.ErrConflict
		}
		if patch.Quantity != nil {
			req.Quantity = *patch.Quantity
		}
		if patch.ProductID != nil {
			if err := ensureProduct(ctx, productRepo, *patch.ProductID); err != nil {
				return err
			}
			req.ProductID = *patch.ProductID
		}
		req.UpdatedAt = time.Now()
		if err := requestRepo.Update(ctx, req); err != nil {
			return err
		}
		updated = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewStockRequestResponse(updated)
	return &out, nil
}

// UpdateStatus resuelve una solicitud pendiente. Al aprobar aplica StockDelta al producto en la
// misma transacción; si el stock quedaría negativo devuelve ErrInsufficientStock y la solicitud
// sigue pendiente.
func (uc *StockRequestUseCase) UpdateStatus(ctx context.Context, actor Actor, id string, status entity.RequestStatus) (*dto.StockRequestResponse, error) {
	var resolved *entity.StockRequest
	err := uc.txRunner.Run(ctx, func(requestRepo repository.StockRequestRepository, productRepo repository.ProductRepository) error {
		req, err := lockRequest(ctx, requestRepo, id)
		if err != nil {
			return err
		}
		if err := req.TransitionTo(status); err != nil {
			return err
		}
		if status == entity.RequestStatusApproved {
			product, err := productRepo.GetForUpdate(ctx, req.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			newQty := product.StockQuantity + req.StockDelta()
			if newQty < 0 {
				return domain.ErrInsufficientStock
			}
			if err := productRepo.UpdateStock(ctx, product.ID, newQty); err != nil {
				return err
			}
		}
		req.UpdatedAt = time.Now()
		if err := requestRepo.Update(ctx, req); err != nil {
			return err
		}
		resolved = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("request_id", resolved.ID).
		Str("status", string(resolved.Status)).
		Str("admin_id", actor.UserID).
		Msg("inventory: solicitud resuelta")
	out := dto.NewStockRequestResponse(resolved)
	return &out, nil
}

// Delete borra una solicitud pendiente; puede hacerlo el dueño o un admin.
func (uc *StockRequestUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	return uc.txRunner.Run(ctx, func(requestRepo repository.StockRequestRepository, _ repository.ProductRepository) error {
		req, err := lockRequest(ctx, requestRepo, id)
		if err != nil {
			return err
		}
		if req.RequesterID != actor.UserID && actor.Role != entity.RoleAdmin {
			return domain.ErrForbidden
		}
		if !req.IsPending() {
			return domain.ErrConflict
		}
		return requestRepo.Delete(ctx, id)
	})
}

func lockRequest(ctx context.Context, repo repository.StockRequestRepository, id string) (*entity.StockRequest, error) {
	req, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

func ensureProduct(ctx context.Context, repo repository.ProductRepository, productID string) error {
	product, err := repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toResponses(list []*entity.StockRequest) []dto.StockRequestResponse {
	out := make([]dto.StockRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.NewStockRequestResponse(r))
	}
	return out
}
