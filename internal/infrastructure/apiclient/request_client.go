package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/inventario-portal/internal/application/dto"
	"github.com/jhoicas/inventario-portal/internal/domain"
	"github.com/jhoicas/inventario-portal/internal/domain/entity"
)

// Rutas de creación; el tipo de la solicitud lo fija la ruta, no el cuerpo.
const (
	PathStockIn  = "/requests/stockin"
	PathStockOut = "/requests/stockout"
)

// CreateEndpoint es la única función que decide la ruta de creación.
// Un tipo desconocido es un error de validación; nunca cae en ninguna de las dos rutas.
func CreateEndpoint(t entity.RequestType) (string, error) {
	switch t {
	case entity.RequestTypeStockIn:
		return PathStockIn, nil
	case entity.RequestTypeStockOut:
		return PathStockOut, nil
	default:
		return "", domain.NewError(domain.KindValidation, "tipo de solicitud desconocido: "+string(t))
	}
}

// RequestClient ciclo de vida de las solicitudes de stock. Qué rol puede llamar cada operación
// lo decide el servidor; aquí solo se valida la forma.
type RequestClient struct {
	c *Client
}

// NewRequestClient construye el cliente de solicitudes.
func NewRequestClient(c *Client) *RequestClient {
	return &RequestClient{c: c}
}

// ListAll GET /requests (admin).
func (r *RequestClient) ListAll(ctx context.Context) ([]*entity.StockRequest, error) {
	return r.list(ctx, "/requests")
}

// ListMine GET /requests/my.
func (r *RequestClient) ListMine(ctx context.Context) ([]*entity.StockRequest, error) {
	return r.list(ctx, "/requests/my")
}

func (r *RequestClient) list(ctx context.Context, path string) ([]*entity.StockRequest, error) {
	var out []dto.StockRequestResponse
	if err := r.c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	list := make([]*entity.StockRequest, 0, len(out))
	for _, resp := range out {
		req, err := resp.ToEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, req)
	}
	return list, nil
}

// Create POST /requests/stockin o /requests/stockout según t. Cantidad <= 0 falla sin llamar al API.
func (r *RequestClient) Create(ctx context.Context, productID string, t entity.RequestType, quantity int) (*entity.StockRequest, error) {
	if quantity <= 0 {
		return nil, domain.NewError(domain.KindValidation, "la cantidad debe ser mayor que cero")
	}
	if productID == "" {
		return nil, domain.NewError(domain.KindValidation, "producto requerido")
	}
	path, err := CreateEndpoint(t)
	if err != nil {
		return nil, err
	}
	var out dto.StockRequestResponse
	body := dto.CreateStockRequestRequest{ProductID: productID, Quantity: quantity}
	if err := r.c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return out.ToEntity()
}

// Update PUT /requests/{id}. Solo producto y cantidad son editables.
func (r *RequestClient) Update(ctx context.Context, id string, patch entity.StockRequestPatch) (*entity.StockRequest, error) {
	if id == "" {
		return nil, domain.NewError(domain.KindValidation, "id de solicitud requerido")
	}
	if patch.Quantity != nil && *patch.Quantity <= 0 {
		return nil, domain.NewError(domain.KindValidation, "la cantidad debe ser mayor que cero")
	}
	if patch.ProductID != nil && *patch.ProductID == "" {
		return nil, domain.NewError(domain.KindValidation, "producto requerido")
	}
	var out dto.StockRequestResponse
	if err := r.c.do(ctx, http.MethodPut, requestPath(id), dto.NewUpdateStockRequestRequest(patch), &out); err != nil {
		return nil, err
	}
	return out.ToEntity()
}

// UpdateStatus PATCH /requests/{id}/status. Solo approved o rejected (admin).
func (r *RequestClient) UpdateStatus(ctx context.Context, id string, status entity.RequestStatus) (*entity.StockRequest, error) {
	if id == "" {
		return nil, domain.NewError(domain.KindValidation, "id de solicitud requerido")
	}
	if !status.IsTerminal() {
		return nil, domain.NewError(domain.KindValidation, "estado destino inválido: "+string(status))
	}
	var out dto.StockRequestResponse
	body := dto.UpdateStatusRequest{Status: string(status)}
	if err := r.c.do(ctx, http.MethodPatch, requestPath(id)+"/status", body, &out); err != nil {
		return nil, err
	}
	return out.ToEntity()
}

// Delete DELETE /requests/{id}.
func (r *RequestClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewError(domain.KindValidation, "id de solicitud requerido")
	}
	return r.c.do(ctx, http.MethodDelete, requestPath(id), nil, nil)
}

func requestPath(id string) string {
	return "/requests/" + url.PathEscape(id)
}
