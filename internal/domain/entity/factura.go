package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	EstadoPagado  = "PAGADO"
	EstadoAnulado = "ANULADO" // reservado para flujos correctivos, no emitido por la venta
)

// Factura representa la cabecera de una factura de venta.
// El par (NoFactura, CodigoNumFactura) es único en todo el sistema; una vez
// creada, la factura nunca cambia de número.
type Factura struct {
	ID               string
	NoFactura        int64  // correlativo asignado dentro del rango autorizado
	CodigoNumFactura string // serie de numeración de la config contable al momento de emitir
	CAI              string // copia del CAI vigente al momento de emitir
	FechaLimite      time.Time

	EmpresaID  string
	SucursalID string
	UsuarioID  string

	RTNCliente    string
	NombreCliente string

	Subtotal       decimal.Decimal
	TotalImpuestoQ decimal.Decimal // ISV 15%
	TotalImpuestoD decimal.Decimal // ISV 18%
	TotalDescuento decimal.Decimal
	TotalExento    decimal.Decimal
	TotalExonerado decimal.Decimal
	Total          decimal.Decimal

	Estado string // EstadoPagado al emitir

	NoCompraExenta      string
	NoConstRegExonerado string
	NoSAG               string
	Adjunto             string

	Fecha     time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
