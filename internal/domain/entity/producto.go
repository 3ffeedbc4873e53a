package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un producto vendible del catálogo de una empresa.
// PrecioCompra es costo promedio ponderado, recalculado en cada entrada;
// la existencia se maneja por sucursal en Inventario.
type Producto struct {
	ID           string
	EmpresaID    string
	Codigo       string // código único por empresa
	Nombre       string
	Descripcion  string
	PrecioVenta  decimal.Decimal
	PrecioCompra decimal.Decimal // costo promedio ponderado
	ISV          decimal.Decimal // tasa ISV Honduras: 0, 0.15 (15%), 0.18 (18%)
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
