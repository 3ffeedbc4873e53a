package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovimientoEntrada = "ENTRADA" // compra o reposición
	MovimientoSalida  = "SALIDA"  // venta
	MovimientoAjuste  = "AJUSTE"  // corrección manual
)

// InventarioMovimiento representa una entrada del historial de inventario
// (append-only, nunca se muta después de creado). Cantidad lleva signo:
// negativa en salidas, positiva en entradas.
type InventarioMovimiento struct {
	ID             string
	ProductoID     string
	EmpresaID      string
	SucursalID     string
	UsuarioID      string
	Cantidad       decimal.Decimal
	TipoMovimiento string
	Comentario     string
	PrecioCompra   decimal.Decimal // costo del producto al momento del movimiento
	PrecioVenta    decimal.Decimal // precio de venta al momento del movimiento
	Fecha          time.Time
	CreatedAt      time.Time
}
