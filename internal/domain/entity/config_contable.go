package entity

import "time"

// ConfigContable representa la autorización de impresión vigente de una
// sucursal (régimen CAI, SAR Honduras): rango de numeración autorizado,
// correlativo en curso y fecha límite de emisión.
// Invariante tras cada venta exitosa: RangoInicial <= CorrelativoActual <= RangoFinal.
// Solo el paso final del flujo de venta muta CorrelativoActual.
type ConfigContable struct {
	ID                string
	SucursalID        string
	CAI               string // Código de Autorización de Impresión (ej: "254F8-612C1-...")
	CodigoNumFactura  string // código de la serie de numeración (ej: "000-001-01")
	RangoInicial      int64  // primer número autorizado del rango (inclusive)
	RangoFinal        int64  // último número autorizado del rango (inclusive)
	CorrelativoActual int64  // último número emitido
	FechaLimite       time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
