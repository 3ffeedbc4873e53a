package venta

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// sondaFija responde el sondeo de números desde un set fijo. Permite además
// inyectar un error para probar la propagación.
type sondaFija struct {
	fakeFacturaRepo
	ocupados map[int64]bool
	err      error
	sondeos  int
}

func (s *sondaFija) ExisteNumero(_ context.Context, noFactura int64, _ string) (bool, error) {
	s.sondeos++
	if s.err != nil {
		return false, s.err
	}
	return s.ocupados[noFactura], nil
}

func configDePrueba(inicial, final, actual int64) *entity.ConfigContable {
	return &entity.ConfigContable{
		ID:                "cfg-001",
		CodigoNumFactura:  "000-001-01",
		RangoInicial:      inicial,
		RangoFinal:        final,
		CorrelativoActual: actual,
	}
}

func TestAsignarCorrelativo_SiguienteLibre(t *testing.T) {
	sonda := &sondaFija{ocupados: map[int64]bool{}}
	no, err := asignarCorrelativo(context.Background(), sonda, configDePrueba(1, 200, 100))
	require.NoError(t, err)
	assert.Equal(t, int64(101), no)
	assert.Equal(t, 1, sonda.sondeos, "sin colisiones basta un sondeo")
}

func TestAsignarCorrelativo_SaltaColisiones(t *testing.T) {
	sonda := &sondaFija{ocupados: map[int64]bool{101: true, 102: true}}
	no, err := asignarCorrelativo(context.Background(), sonda, configDePrueba(1, 200, 100))
	require.NoError(t, err)
	assert.Equal(t, int64(103), no)
	assert.Equal(t, 3, sonda.sondeos)
}

func TestAsignarCorrelativo_RangoFinalEmitible(t *testing.T) {
	sonda := &sondaFija{ocupados: map[int64]bool{}}
	no, err := asignarCorrelativo(context.Background(), sonda, configDePrueba(1, 200, 199))
	require.NoError(t, err)
	assert.Equal(t, int64(200), no, "RangoFinal es inclusive")
}

func TestAsignarCorrelativo_RangoAgotadoDirecto(t *testing.T) {
	// El correlativo ya está en el final del rango: el candidato 201 se pasa.
	sonda := &sondaFija{ocupados: map[int64]bool{}}
	_, err := asignarCorrelativo(context.Background(), sonda, configDePrueba(1, 200, 200))
	require.ErrorIs(t, err, domain.ErrRangoAgotado)
}

func TestAsignarCorrelativo_RangoAgotadoPorColision(t *testing.T) {
	// Queda un solo número (200) pero ya está ocupado.
	sonda := &sondaFija{ocupados: map[int64]bool{200: true}}
	_, err := asignarCorrelativo(context.Background(), sonda, configDePrueba(1, 200, 199))
	require.ErrorIs(t, err, domain.ErrRangoAgotado)
}

func TestAsignarCorrelativo_BajoRangoInicial(t *testing.T) {
	sonda := &sondaFija{ocupados: map[int64]bool{}}
	_, err := asignarCorrelativo(context.Background(), sonda, configDePrueba(500, 700, 100))
	require.ErrorIs(t, err, domain.ErrCorrelativoInvalido)
}

func TestAsignarCorrelativo_CorrelativoNegativo(t *testing.T) {
	// Contador corrupto en negativo y sin rango inicial que lo delate.
	sonda := &sondaFija{ocupados: map[int64]bool{}}
	_, err := asignarCorrelativo(context.Background(), sonda, configDePrueba(-10, 200, -5))
	require.ErrorIs(t, err, domain.ErrCorrelativoInvalido)
}

func TestAsignarCorrelativo_PropagaErrorDeSonda(t *testing.T) {
	fallo := errors.New("timeout de consulta")
	sonda := &sondaFija{err: fallo}
	_, err := asignarCorrelativo(context.Background(), sonda, configDePrueba(1, 200, 100))
	require.ErrorIs(t, err, fallo)
}
