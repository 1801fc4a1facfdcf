package entity

// Session identifica al usuario que invoca una operación.
// Se pasa explícitamente a cada llamada; nunca se guarda en estado global.
type Session struct {
	UserID   string
	Username string
	Role     string
}

// Valid indica si la sesión corresponde a un usuario autenticado.
func (s Session) Valid() bool {
	return s.UserID != "" && ValidRole(s.Role)
}

// IsAdmin indica si la sesión tiene rol admin.
func (s Session) IsAdmin() bool {
	return s.Valid() && s.Role == RoleAdmin
}
