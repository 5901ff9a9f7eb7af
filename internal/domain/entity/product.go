package entity

import "time"

// Product representa un producto del inventario.
// StockQuantity nunca es negativo; lo garantiza el servidor y solo cambia al aprobar
// una solicitud o por edición directa del admin.
type Product struct {
	ID            string
	Name          string
	Description   string
	StockQuantity int
	ImageURL      string // vacío = sin imagen
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductInput datos para crear un producto.
type ProductInput struct {
	Name          string
	Description   string
	StockQuantity int
	ImageURL      string
}

// ProductPatch actualización parcial; nil = sin cambio.
type ProductPatch struct {
	Name          *string
	Description   *string
	StockQuantity *int
	ImageURL      *string
}
