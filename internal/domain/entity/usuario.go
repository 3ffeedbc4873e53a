package entity

import "time"

// Roles válidos para Usuario.
const (
	RolAdmin    = "admin"
	RolContador = "contador"
	RolVendedor = "vendedor"
)

// Usuario representa un usuario del sistema (pertenece a una Empresa).
// Solo un usuario confirmado y no bloqueado puede emitir facturas.
type Usuario struct {
	ID           string
	EmpresaID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Nombre       string
	Rol          string // admin, contador, vendedor
	Blocked      bool
	Confirmed    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
