package inventory

import (
	"errors"

	"github.com/jhoicas/Inventario-estoque/internal/domain"
)

// Outcome es el par (ok, mensaje) que consume el shell. Fatal marca fallos de almacenamiento:
// el shell debe bloquear la operación y ofrecer reintento en lugar de seguir.
type Outcome struct {
	OK      bool
	Message string
	Fatal   bool
}

// OutcomeOf convierte el resultado de una operación en un Outcome con mensaje legible.
func OutcomeOf(err error, okMessage string) Outcome {
	if err == nil {
		return Outcome{OK: true, Message: okMessage}
	}
	switch {
	case errors.Is(err, domain.ErrUnavailable):
		return Outcome{Message: "almacenamiento no disponible, intente nuevamente: " + err.Error(), Fatal: true}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return Outcome{Message: "usuario o contraseña inválidos"}
	case domain.Kind(err) != nil:
		return Outcome{Message: err.Error()}
	}
	return Outcome{Message: "error inesperado: " + err.Error()}
}
