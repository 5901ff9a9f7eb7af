package dto

import (
	"time"

	"github.com/jhoicas/inventario-portal/internal/domain/entity"
)

// CreateStockRequestRequest body para POST /requests/stockin y /requests/stockout.
// El tipo no viaja en el cuerpo: lo determina el endpoint.
type CreateStockRequestRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// UpdateStockRequestRequest edición parcial (PUT /requests/{id}).
type UpdateStockRequestRequest struct {
	ProductID *string `json:"productId,omitempty"`
	Quantity  *int    `json:"quantity,omitempty" validate:"omitempty,gt=0"`
}

// NewUpdateStockRequestRequest arma el cuerpo parcial desde el dominio.
func NewUpdateStockRequestRequest(p entity.StockRequestPatch) UpdateStockRequestRequest {
	return UpdateStockRequestRequest{ProductID: p.ProductID, Quantity: p.Quantity}
}

// ToPatch convierte el cuerpo recibido por el servidor.
func (r UpdateStockRequestRequest) ToPatch() entity.StockRequestPatch {
	return entity.StockRequestPatch{ProductID: r.ProductID, Quantity: r.Quantity}
}

// UpdateStatusRequest body para PATCH /requests/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// StockRequestResponse salida de una solicitud.
type StockRequestResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	RequesterID string    `json:"requesterId"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// NewStockRequestResponse serializa una solicitud del dominio.
func NewStockRequestResponse(r *entity.StockRequest) StockRequestResponse {
	return StockRequestResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		Type:        string(r.Type),
		Quantity:    r.Quantity,
		Status:      string(r.Status),
		RequesterID: r.RequesterID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ToEntity valida tipo, estado y cantidad; una solicitud que no cumple el contrato se rechaza.
func (r StockRequestResponse) ToEntity() (*entity.StockRequest, error) {
	if r.ID == "" {
		return nil, invalidResponse("solicitud sin id")
	}
	t := entity.RequestType(r.Type)
	if !t.Valid() {
		return nil, invalidResponse("tipo de solicitud inválido: " + r.Type)
	}
	st := entity.RequestStatus(r.Status)
	if !st.Valid() {
		return nil, invalidResponse("estado de solicitud inválido: " + r.Status)
	}
	if r.Quantity <= 0 {
		return nil, invalidResponse("cantidad no positiva en solicitud " + r.ID)
	}
	return &entity.StockRequest{
		ID:          r.ID,
		ProductID:   r.ProductID,
		Type:        t,
		Quantity:    r.Quantity,
		Status:      st,
		RequesterID: r.RequesterID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}
