package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleTecnico    = "tecnico"
	RoleBodeguero  = "bodeguero"
)

// ValidRole indica si r es uno de los roles conocidos.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleTecnico, RoleBodeguero:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string // uuid
	FirstName    string
	LastName     string
	DNI          string
	Phone        string
	Email        string // correo, único
	Role         string
	PasswordHash string // bcrypt, nunca se serializa
	PhotoURL     string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre y apellido separados por espacio.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
