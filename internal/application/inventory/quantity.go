package inventory

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jhoicas/Inventario-estoque/internal/domain"
	"github.com/jhoicas/Inventario-estoque/internal/domain/entity"
)

// parseMinQuantity interpreta el mínimo de alerta. Vacío equivale a 0 (alerta desactivada).
func parseMinQuantity(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: la cantidad mínima debe ser un número entero", domain.ErrInvalidInput)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: la cantidad mínima no puede ser negativa", domain.ErrInvalidInput)
	}
	return n, nil
}

// parseMovementQuantity interpreta la cantidad de un movimiento: entero estrictamente positivo.
func parseMovementQuantity(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: la cantidad debe ser un número entero", domain.ErrInvalidInput)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: la cantidad debe ser un entero positivo", domain.ErrInvalidInput)
	}
	return n, nil
}

// applyMovement calcula el nuevo saldo. Una salida mayor al saldo falla; nunca se recorta a 0.
func applyMovement(current int64, movementType string, qty int64) (int64, error) {
	switch movementType {
	case entity.MovementTypeIn:
		if qty > math.MaxInt64-current {
			return 0, fmt.Errorf("%w: el saldo resultante excede el máximo permitido", domain.ErrInvalidInput)
		}
		return current + qty, nil
	case entity.MovementTypeOut:
		if qty > current {
			return 0, fmt.Errorf("%w: solicitado %d, disponible %d", domain.ErrInsufficientStock, qty, current)
		}
		return current - qty, nil
	}
	return 0, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, movementType)
}
