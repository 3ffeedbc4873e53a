package venta

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// asignarCorrelativo calcula el siguiente número de factura válido dentro del
// rango autorizado. Parte de CorrelativoActual+1 y sondea la existencia del
// par (noFactura, codigoNumFactura), avanzando mientras haya colisión.
// RangoFinal es emitible (inclusive); superarlo agota la serie.
//
// El sondeo lee siempre el CorrelativoActual persistido dentro de la
// transacción en curso: si la transacción completa se reintenta, el cálculo
// parte de estado fresco y no reutiliza un número que otra transacción
// concurrente ya haya confirmado.
func asignarCorrelativo(ctx context.Context, facturas repository.FacturaRepository, cfg *entity.ConfigContable) (int64, error) {
	correlativo := cfg.CorrelativoActual + 1
	for {
		existe, err := facturas.ExisteNumero(ctx, correlativo, cfg.CodigoNumFactura)
		if err != nil {
			return 0, err
		}
		if existe {
			correlativo++
		}
		if correlativo > cfg.RangoFinal {
			return 0, domain.ErrRangoAgotado
		}
		if !existe {
			break
		}
	}

	// Chequeo defensivo: un candidato bajo el rango inicial o no positivo
	// indica configuración contable corrupta, no un error del cajero.
	if correlativo < cfg.RangoInicial || correlativo <= 0 {
		return 0, domain.ErrCorrelativoInvalido
	}
	return correlativo, nil
}
