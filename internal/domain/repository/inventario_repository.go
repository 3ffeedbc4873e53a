package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// InventarioRepository define el puerto para consultar/actualizar existencias
// por (producto, empresa, sucursal). Usado dentro de transacciones para
// garantizar consistencia.
type InventarioRepository interface {
	Get(ctx context.Context, productoID, empresaID, sucursalID string) (*entity.Inventario, error)

	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Devuelve nil, nil si no existe registro de inventario para la clave.
	GetForUpdate(ctx context.Context, productoID, empresaID, sucursalID string) (*entity.Inventario, error)

	Create(ctx context.Context, inv *entity.Inventario) error

	// ActualizarExistencia fija la existencia del registro al valor dado.
	ActualizarExistencia(ctx context.Context, id string, existencia decimal.Decimal) error
}
