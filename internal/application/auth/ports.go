package auth

import (
	"context"

	"github.com/jhoicas/Inventario-estoque/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repositorio de usuarios atado a ella.
type TxRunner interface {
	RunUsers(ctx context.Context, fn func(userRepo repository.UserRepository) error) error
}
