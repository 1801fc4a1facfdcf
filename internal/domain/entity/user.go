package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleRegular = "regular"
)

// ValidRole indica si role es uno de los roles soportados.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleRegular
}

// User representa un usuario de la aplicación.
type User struct {
	ID           string
	Username     string // único, comparado sin case-folding
	PasswordHash string // bcrypt hash, nunca plano después de persistir
	Role         string // admin, regular
	CreatedAt    time.Time
}
