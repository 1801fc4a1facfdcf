package dto

import "time"

// MovementRequest entrada para una entrada o salida de stock.
type MovementRequest struct {
	ProductID string `json:"product_id" validate:"required" label:"el producto"`
	Quantity  string `json:"quantity"`
}

// MovementResponse resultado de un movimiento aplicado.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Date        time.Time `json:"date"`
	CreatedBy   string    `json:"created_by,omitempty"`
	NewQuantity int64     `json:"new_quantity"`
	LowStock    bool      `json:"low_stock"`
}

// ReconcileResponse compara el saldo almacenado con la suma del historial de movimientos.
type ReconcileResponse struct {
	ProductID     string `json:"product_id"`
	Stored        int64  `json:"stored_quantity"`
	Computed      int64  `json:"computed_quantity"`
	Movements     int    `json:"movements"`
	TotalIn       int64  `json:"total_in"`
	TotalOut      int64  `json:"total_out"`
	Consistent    bool   `json:"consistent"`
	NeverNegative bool   `json:"never_negative"`
}
