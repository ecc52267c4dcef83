package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"   // administra sedes, usuarios y catálogo
	RoleManager = "manager" // opera sobre cualquier sede
	RoleStaff   = "staff"   // limitado a su sede asignada
)

// User representa un usuario de la aplicación.
// LocationID es la sede asignada para staff; nil para admin y manager.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	LocationID   *string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
