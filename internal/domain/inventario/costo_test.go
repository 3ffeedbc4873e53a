package inventario

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestCostoPromedio_Pondera(t *testing.T) {
	// 10 unidades a L60 + 5 unidades a L90 = (600 + 450) / 15 = L70
	nuevo := CostoPromedio(d("10"), d("60"), d("5"), d("90"))
	assert.True(t, nuevo.Equal(d("70")), "esperado 70, obtenido %s", nuevo)
}

func TestCostoPromedio_SinExistenciaPrevia(t *testing.T) {
	// Sin stock previo el costo promedio es el costo de la entrada.
	nuevo := CostoPromedio(decimal.Zero, decimal.Zero, d("8"), d("42.50"))
	assert.True(t, nuevo.Equal(d("42.50")))
}

func TestCostoPromedio_EntradaMismoCosto(t *testing.T) {
	// Comprar al mismo costo no mueve el promedio.
	nuevo := CostoPromedio(d("3"), d("25"), d("7"), d("25"))
	assert.True(t, nuevo.Equal(d("25")))
}

func TestCostoPromedio_TotalCero(t *testing.T) {
	// Caso degenerado: sin existencia y sin entrada no hay promedio posible.
	nuevo := CostoPromedio(decimal.Zero, d("60"), decimal.Zero, d("90"))
	assert.True(t, nuevo.IsZero())
}

func TestCostoPromedio_Fraccionario(t *testing.T) {
	// 2 a 10.00 + 1 a 16.00 = 36 / 3 = 12.00
	nuevo := CostoPromedio(d("2"), d("10"), d("1"), d("16"))
	assert.True(t, nuevo.Equal(d("12")))
}
