package entity

import "time"

// Empresa representa una organización/tenant del sistema (enfoque Honduras).
type Empresa struct {
	ID        string
	Nombre    string
	RTN       string // Registro Tributario Nacional (14 dígitos)
	Direccion string
	Telefono  string
	Email     string
	Estado    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
