package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// StockMovement representa un movimiento de inventario (entrada o salida).
// Inmutable una vez registrado.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string // in, out
	Quantity  int64  // siempre > 0; el signo lo da Type
	Date      time.Time
	CreatedBy string // UserID, vacío en movimientos históricos sin autor
}

// Signed devuelve la cantidad con signo: positiva para entradas, negativa para salidas.
func (m *StockMovement) Signed() int64 {
	if m.Type == MovementTypeOut {
		return -m.Quantity
	}
	return m.Quantity
}
