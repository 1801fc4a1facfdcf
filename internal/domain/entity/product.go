package entity

import "time"

// Product representa un artículo del inventario.
// CurrentQuantity solo cambia vía movimientos; es la suma algebraica de todos ellos desde 0.
type Product struct {
	ID              string
	Name            string // único
	Description     string
	CurrentQuantity int64
	MinQuantity     int64 // 0 = alerta de stock bajo desactivada
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsLowStock indica si el producto está en o por debajo de su mínimo.
// Un mínimo de 0 nunca es "bajo", aun con saldo 0.
func (p *Product) IsLowStock() bool {
	return p.MinQuantity > 0 && p.CurrentQuantity <= p.MinQuantity
}
