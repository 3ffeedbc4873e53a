package dto

import "github.com/shopspring/decimal"

// CrearVentaRequest body para POST /api/ventas.
// Sucursal determina la configuración contable (CAI) y el inventario del
// cual se descuentan las existencias.
type CrearVentaRequest struct {
	Sucursal string `json:"sucursal"`
	Usuario  string `json:"usuario"`
	Empresa  string `json:"empresa"`

	RTNCliente    string `json:"rtnCliente"`
	NombreCliente string `json:"nombreCliente"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	TotalImpuestoQ decimal.Decimal `json:"totalImpuestoQ"`
	TotalImpuestoD decimal.Decimal `json:"totalImpuestoD"`
	TotalDescuento decimal.Decimal `json:"totalDescuento"`
	TotalExento    decimal.Decimal `json:"totalExento"`
	TotalExonerado decimal.Decimal `json:"totalExonerado"`
	Total          decimal.Decimal `json:"total"`

	NoCompraExenta      string `json:"noCompraExenta,omitempty"`
	NoConstRegExonerado string `json:"noConstRegExonerado,omitempty"`
	NoSAG               string `json:"noSAG,omitempty"`
	Adjunto             string `json:"adjunto,omitempty"`

	Productos []VentaProductoRequest `json:"Productos"`
}

// VentaProductoRequest línea de venta (producto, cantidad, precio unitario,
// ISV y descuento aplicado a la línea).
type VentaProductoRequest struct {
	Producto       string          `json:"producto"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Precio         decimal.Decimal `json:"precio"`
	ISV            decimal.Decimal `json:"isv"`
	DescuentoValor decimal.Decimal `json:"descuentoValor,omitempty"`
}

// FacturaResponse factura emitida, con su detalle.
type FacturaResponse struct {
	ID               string `json:"id"`
	NoFactura        int64  `json:"noFactura"`
	CodigoNumFactura string `json:"codigoNumFactura"`
	CAI              string `json:"cai"`
	FechaLimite      string `json:"fechaLimite"`

	EmpresaID  string `json:"empresa"`
	SucursalID string `json:"sucursal"`
	UsuarioID  string `json:"usuario"`

	RTNCliente    string `json:"rtnCliente"`
	NombreCliente string `json:"nombreCliente"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	TotalImpuestoQ decimal.Decimal `json:"totalImpuestoQ"`
	TotalImpuestoD decimal.Decimal `json:"totalImpuestoD"`
	TotalDescuento decimal.Decimal `json:"totalDescuento"`
	TotalExento    decimal.Decimal `json:"totalExento"`
	TotalExonerado decimal.Decimal `json:"totalExonerado"`
	Total          decimal.Decimal `json:"total"`

	Estado string `json:"estado"`
	Fecha  string `json:"fecha"`

	Detalles []DetalleFacturaResponse `json:"detalles"`
}

// DetalleFacturaResponse línea de detalle en la respuesta.
type DetalleFacturaResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Precio         decimal.Decimal `json:"precio"`
	ISV            decimal.Decimal `json:"isv"`
	DescuentoValor decimal.Decimal `json:"descuentoValor"`
	PrecioCompra   decimal.Decimal `json:"precioCompra"`
}

// RegistrarEntradaRequest body para POST /api/inventario/entradas.
type RegistrarEntradaRequest struct {
	Producto   string          `json:"producto"`
	Sucursal   string          `json:"sucursal"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	CostoUnit  decimal.Decimal `json:"costoUnitario"`
	Comentario string          `json:"comentario,omitempty"`
}
