package entity

import (
	"time"

	"github.com/jhoicas/inventario-portal/internal/domain"
)

// RequestType tipo de solicitud de movimiento. Los valores son los literales del contrato HTTP.
type RequestType string

const (
	RequestTypeStockIn  RequestType = "Stock In"  // entrada
	RequestTypeStockOut RequestType = "Stock Out" // salida
)

// Valid indica si t es uno de los dos tipos conocidos.
func (t RequestType) Valid() bool {
	return t == RequestTypeStockIn || t == RequestTypeStockOut
}

// RequestStatus estado de una solicitud. Approved y Rejected son terminales.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Valid indica si s es un estado conocido.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// IsTerminal indica si no se expone ninguna transición desde s.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// StockRequest propuesta de un staff para sumar (Stock In) o restar (Stock Out) stock a un producto,
// sujeta a aprobación de un admin.
type StockRequest struct {
	ID          string
	ProductID   string // referencia, no propiedad
	Type        RequestType
	Quantity    int // siempre > 0; el signo lo da Type
	Status      RequestStatus
	RequesterID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockRequestPatch edición parcial de una solicitud pendiente; nil = sin cambio.
type StockRequestPatch struct {
	ProductID *string
	Quantity  *int
}

// IsPending indica si la solicitud todavía se puede editar, borrar o resolver.
func (r *StockRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// TransitionTo aplica el cambio de estado. Solo pending -> approved|rejected.
func (r *StockRequest) TransitionTo(status RequestStatus) error {
	if status != RequestStatusApproved && status != RequestStatusRejected {
		return domain.ErrInvalidInput
	}
	if !r.IsPending() {
		return domain.ErrConflict
	}
	r.Status = status
	return nil
}

// StockDelta efecto sobre StockQuantity al aprobar: +Quantity para entradas, -Quantity para salidas.
func (r *StockRequest) StockDelta() int {
	if r.Type == RequestTypeStockOut {
		return -r.Quantity
	}
	return r.Quantity
}
