package dto

import "time"

// ProductRequest entrada para crear o actualizar un producto.
// MinQuantity llega como texto desde el shell y se valida en el caso de uso.
type ProductRequest struct {
	Name        string `json:"name" validate:"required,max=255" label:"el nombre del producto"`
	Description string `json:"description" validate:"max=4000" label:"la descripción"`
	MinQuantity string `json:"min_quantity"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	CurrentQuantity int64     `json:"current_quantity"`
	MinQuantity     int64     `json:"min_quantity"`
	LowStock        bool      `json:"low_stock"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
