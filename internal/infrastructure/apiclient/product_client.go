package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/inventario-portal/internal/application/dto"
	"github.com/jhoicas/inventario-portal/internal/domain"
	"github.com/jhoicas/inventario-portal/internal/domain/entity"
)

// ProductClient CRUD de productos sobre /products.
type ProductClient struct {
	c *Client
}

// NewProductClient construye el cliente de productos.
func NewProductClient(c *Client) *ProductClient {
	return &ProductClient{c: c}
}

// productPageSize tamaño de página al listar; no supera el tope del servidor.
const productPageSize = 100

// List GET /products recorriendo todas las páginas hasta recibir una incompleta.
func (p *ProductClient) List(ctx context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	for offset := 0; ; offset += productPageSize {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(productPageSize))
		q.Set("offset", strconv.Itoa(offset))
		var page []dto.ProductResponse
		if err := p.c.do(ctx, http.MethodGet, "/products?"+q.Encode(), nil, &page); err != nil {
			return nil, err
		}
		for _, r := range page {
			prod, err := r.ToEntity()
			if err != nil {
				return nil, err
			}
			list = append(list, prod)
		}
		if len(page) < productPageSize {
			break
		}
	}
	if list == nil {
		list = []*entity.Product{}
	}
	return list, nil
}

// Get GET /products/{id}.
func (p *ProductClient) Get(ctx context.Context, id string) (*entity.Product, error) {
	if id == "" {
		return nil, domain.NewError(domain.KindValidation, "id de producto requerido")
	}
	var out dto.ProductResponse
	if err := p.c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out.ToEntity()
}

// Create POST /products (admin).
func (p *ProductClient) Create(ctx context.Context, in entity.ProductInput) (*entity.Product, error) {
	if in.Name == "" {
		return nil, domain.NewError(domain.KindValidation, "el nombre del producto es obligatorio")
	}
	if in.StockQuantity < 0 {
		return nil, domain.NewError(domain.KindValidation, "el stock no puede ser negativo")
	}
	var out dto.ProductResponse
	if err := p.c.do(ctx, http.MethodPost, "/products", dto.NewCreateProductRequest(in), &out); err != nil {
		return nil, err
	}
	return out.ToEntity()
}

// Update PUT /products/{id} con los campos no nil del patch (admin).
func (p *ProductClient) Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	if id == "" {
		return nil, domain.NewError(domain.KindValidation, "id de producto requerido")
	}
	if patch.StockQuantity != nil && *patch.StockQuantity < 0 {
		return nil, domain.NewError(domain.KindValidation, "el stock no puede ser negativo")
	}
	var out dto.ProductResponse
	if err := p.c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), dto.NewUpdateProductRequest(patch), &out); err != nil {
		return nil, err
	}
	return out.ToEntity()
}

// Delete DELETE /products/{id} (admin).
func (p *ProductClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewError(domain.KindValidation, "id de producto requerido")
	}
	return p.c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}
