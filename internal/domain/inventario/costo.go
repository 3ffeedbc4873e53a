package inventario

import "github.com/shopspring/decimal"

// CostoPromedio implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((ExistenciaActual * CostoActual) + (CantEntrada * CostoEntrada)) / (ExistenciaActual + CantEntrada)
func CostoPromedio(existenciaActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := existenciaActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := existenciaActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}
