package dto

import "time"

// RegisterUserRequest entrada para registrar un usuario (password en texto, se hashea en el caso de uso).
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,max=255" label:"el nombre de usuario"`
	Password string `json:"password" validate:"required,max=72" label:"la contraseña"`
	Role     string `json:"role" validate:"omitempty,oneof=admin regular" label:"el rol"`
}

// LoginRequest entrada para autenticación.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse salida de una autenticación exitosa, con el token de sesión firmado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
