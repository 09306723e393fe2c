package dto

import "time"

// CreateUserRequest alta de usuario.
type CreateUserRequest struct {
	FirstName string `json:"nombre" validate:"required,min=2,max=100"`
	LastName  string `json:"apellido" validate:"required,min=2,max=100"`
	DNI       string `json:"dni" validate:"required,min=5,max=20"`
	Phone     string `json:"telefono" validate:"omitempty,min=7,max=15"`
	Email     string `json:"correo" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	Role      string `json:"role" validate:"required,oneof=admin supervisor tecnico bodeguero"`
	PhotoURL  string `json:"foto_perfil" validate:"omitempty,url"`
}

// UpdateUserRequest actualización parcial; Password se vuelve a hashear.
type UpdateUserRequest struct {
	FirstName *string `json:"nombre" validate:"omitempty,min=2,max=100"`
	LastName  *string `json:"apellido" validate:"omitempty,min=2,max=100"`
	DNI       *string `json:"dni" validate:"omitempty,min=5,max=20"`
	Phone     *string `json:"telefono" validate:"omitempty,min=7,max=15"`
	Email     *string `json:"correo" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6,max=72"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin supervisor tecnico bodeguero"`
	PhotoURL  *string `json:"foto_perfil" validate:"omitempty,url"`
	Active    *bool   `json:"activo"`
}

// UserResponse salida de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"nombre"`
	LastName  string    `json:"apellido"`
	DNI       string    `json:"dni"`
	Phone     string    `json:"telefono"`
	Email     string    `json:"correo"`
	Role      string    `json:"role"`
	PhotoURL  string    `json:"foto_perfil,omitempty"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"fecha_creacion"`
	UpdatedAt time.Time `json:"ultima_actualizacion"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"correo" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de acceso y usuario autenticado.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}
