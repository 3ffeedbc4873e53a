package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventario representa la existencia actual de un producto en una sucursal
// de una empresa. Invariante: Existencia >= 0 siempre; solo el ajuste de
// inventario del flujo de venta (y las entradas) la mutan.
type Inventario struct {
	ID         string
	ProductoID string
	EmpresaID  string
	SucursalID string
	Existencia decimal.Decimal
	UpdatedAt  time.Time
}
