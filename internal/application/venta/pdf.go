package venta

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// DetalleParaPDF es una línea de factura resuelta para impresión: la línea
// persistida más el nombre del producto al momento de generar el documento.
type DetalleParaPDF struct {
	NombreProducto string
	Cantidad       decimal.Decimal
	Precio         decimal.Decimal
	ISV            decimal.Decimal
	DescuentoValor decimal.Decimal
}

// FacturaPDFGenerator genera la representación impresa de una factura
// emitida (formato SAR Honduras: CAI, rango autorizado y fecha límite).
type FacturaPDFGenerator interface {
	GenerarFacturaPDF(
		ctx context.Context,
		factura *entity.Factura,
		empresa *entity.Empresa,
		sucursal *entity.Sucursal,
		cfg *entity.ConfigContable,
		detalles []DetalleParaPDF,
	) ([]byte, error)
}
