package dto

import (
	"time"

	"github.com/jhoicas/inventario-portal/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Description   string `json:"description"`
	StockQuantity int    `json:"stockQuantity" validate:"min=0"`
	ImageURL      string `json:"imageUrl,omitempty"`
}

// NewCreateProductRequest arma el cuerpo desde el dominio.
func NewCreateProductRequest(in entity.ProductInput) CreateProductRequest {
	return CreateProductRequest{
		Name:          in.Name,
		Description:   in.Description,
		StockQuantity: in.StockQuantity,
		ImageURL:      in.ImageURL,
	}
}

// UpdateProductRequest actualización parcial (PUT /products/{id}).
type UpdateProductRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string `json:"description,omitempty"`
	StockQuantity *int    `json:"stockQuantity,omitempty" validate:"omitempty,min=0"`
	ImageURL      *string `json:"imageUrl,omitempty"`
}

// NewUpdateProductRequest arma el cuerpo parcial desde el dominio.
func NewUpdateProductRequest(p entity.ProductPatch) UpdateProductRequest {
	return UpdateProductRequest{
		Name:          p.Name,
		Description:   p.Description,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
	}
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	StockQuantity int       `json:"stockQuantity"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
	UpdatedAt     time.Time `json:"updatedAt,omitzero"`
}

// NewProductResponse serializa un producto del dominio.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToEntity valida y convierte a dominio. No se asume que el stock pueda ser negativo.
func (r ProductResponse) ToEntity() (*entity.Product, error) {
	if r.ID == "" {
		return nil, invalidResponse("producto sin id")
	}
	if r.StockQuantity < 0 {
		return nil, invalidResponse("stock negativo en producto " + r.ID)
	}
	return &entity.Product{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		StockQuantity: r.StockQuantity,
		ImageURL:      r.ImageURL,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}
