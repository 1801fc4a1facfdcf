package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrUnavailable        = errors.New("almacenamiento no disponible")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Kind devuelve el error centinela que clasifica err, o nil si no pertenece a la taxonomía.
func Kind(err error) error {
	for _, k := range []error{
		ErrUnavailable, ErrInvalidCredentials, ErrUnauthorized, ErrForbidden,
		ErrInsufficientStock, ErrDuplicate, ErrNotFound, ErrConflict, ErrInvalidInput,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
