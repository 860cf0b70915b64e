package entity

import "time"

// Estados de un usuario.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User operador de la aplicación de exportación de lonjas.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca texto plano
	Name         string
	Role         string // admin, operador
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el usuario puede iniciar sesión.
func (u *User) IsActive() bool {
	return u != nil && u.Status == UserActive
}
