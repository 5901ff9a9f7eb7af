package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-portal/internal/domain"
	"github.com/jhoicas/inventario-portal/internal/domain/entity"
	"github.com/jhoicas/inventario-portal/internal/domain/repository"
)

var _ repository.StockRequestRepository = (*StockRequestRepo)(nil)

// StockRequestRepo implementación del puerto StockRequestRepository sobre PostgreSQL (pool o tx).
type StockRequestRepo struct {
	q Querier
}

// NewStockRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRequestRepository(q Querier) *StockRequestRepo {
	return &StockRequestRepo{q: q}
}

const stockRequestColumns = `id, product_id, type, quantity, status, requester_id, created_at, updated_at`

// Create persiste una solicitud.
func (r *StockRequestRepo) Create(ctx context.Context, req *entity.StockRequest) error {
	query := `
		INSERT INTO stock_requests (` + stockRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.ProductID, string(req.Type), req.Quantity, string(req.Status), req.RequesterID,
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert stock request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID; nil si no existe.
func (r *StockRequestRepo) GetByID(ctx context.Context, id string) (*entity.StockRequest, error) {
	return r.findOne(ctx, `SELECT `+stockRequestColumns+` FROM stock_requests WHERE id = $1`, id)
}

// GetForUpdate obtiene la solicitud bloqueando la fila (SELECT FOR UPDATE). Usar dentro de una tx.
func (r *StockRequestRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockRequest, error) {
	return r.findOne(ctx, `SELECT `+stockRequestColumns+` FROM stock_requests WHERE id = $1 FOR UPDATE`, id)
}

func (r *StockRequestRepo) findOne(ctx context.Context, query, id string) (*entity.StockRequest, error) {
	req, err := scanStockRequest(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock request: %w", err)
	}
	return req, nil
}

// Update guarda producto, cantidad y estado de una solicitud que sigue pendiente.
func (r *StockRequestRepo) Update(ctx context.Context, req *entity.StockRequest) error {
	query := `
		UPDATE stock_requests
		SET product_id = $2, quantity = $3, status = $4, updated_at = $5
		WHERE id = $1 AND status = $6`
	tag, err := r.q.Exec(ctx, query,
		req.ID, req.ProductID, req.Quantity, string(req.Status), req.UpdatedAt, string(entity.RequestStatusPending),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update stock request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrResolved(ctx, req.ID)
	}
	return nil
}

// List todas las solicitudes, más recientes primero.
func (r *StockRequestRepo) List(ctx context.Context) ([]*entity.StockRequest, error) {
	return r.list(ctx, `SELECT `+stockRequestColumns+` FROM stock_requests ORDER BY created_at DESC, id`)
}

// ListByRequester solicitudes de un usuario, más recientes primero.
func (r *StockRequestRepo) ListByRequester(ctx context.Context, requesterID string) ([]*entity.StockRequest, error) {
	return r.list(ctx,
		`SELECT `+stockRequestColumns+` FROM stock_requests WHERE requester_id = $1 ORDER BY created_at DESC, id`,
		requesterID,
	)
}

func (r *StockRequestRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockRequest, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRequest
	for rows.Next() {
		req, err := scanStockRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// Delete elimina una solicitud pendiente.
func (r *StockRequestRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM stock_requests WHERE id = $1 AND status = $2`,
		id, string(entity.RequestStatusPending),
	)
	if err != nil {
		if isInvalidID(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete stock request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrResolved(ctx, id)
	}
	return nil
}

// missOrResolved distingue, tras una escritura sin filas, una solicitud inexistente de una ya resuelta.
func (r *StockRequestRepo) missOrResolved(ctx context.Context, id string) error {
	req, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

func scanStockRequest(row pgx.Row) (*entity.StockRequest, error) {
	var req entity.StockRequest
	var typ, status string
	if err := row.Scan(&req.ID, &req.ProductID, &typ, &req.Quantity, &status, &req.RequesterID, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return nil, err
	}
	req.Type = entity.RequestType(typ)
	req.Status = entity.RequestStatus(status)
	return &req, nil
}
