package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// ConfigContableRepository define el puerto de persistencia para la
// configuración contable (CAI) de cada sucursal.
type ConfigContableRepository interface {
	Create(ctx context.Context, cfg *entity.ConfigContable) error
	GetBySucursal(ctx context.Context, sucursalID string) (*entity.ConfigContable, error)

	// GetBySucursalForUpdate devuelve la configuración bloqueando la fila
	// (SELECT FOR UPDATE). El correlativo es un read-modify-write dentro de
	// la transacción de venta; el bloqueo serializa emisiones concurrentes
	// de la misma sucursal.
	GetBySucursalForUpdate(ctx context.Context, sucursalID string) (*entity.ConfigContable, error)

	// ActualizarCorrelativo avanza CorrelativoActual al número asignado.
	ActualizarCorrelativo(ctx context.Context, id string, correlativo int64) error
}
