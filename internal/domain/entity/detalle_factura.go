package entity

import "github.com/shopspring/decimal"

// DetalleFactura representa una línea de detalle de una factura.
// PrecioCompra es una copia del costo del producto al momento de la venta,
// para preservar el costo histórico aunque el producto cambie después.
type DetalleFactura struct {
	ID             string
	FacturaID      string
	ProductoID     string
	Cantidad       decimal.Decimal
	Precio         decimal.Decimal
	ISV            decimal.Decimal
	DescuentoValor decimal.Decimal
	PrecioCompra   decimal.Decimal
}
