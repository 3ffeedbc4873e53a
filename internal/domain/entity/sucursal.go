package entity

import "time"

// Sucursal representa un punto de venta físico de una empresa.
// Cada sucursal factura con su propia configuración contable (CAI).
type Sucursal struct {
	ID        string
	EmpresaID string
	Nombre    string
	Direccion string
	Activa    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
