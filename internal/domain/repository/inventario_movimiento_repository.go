package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// InventarioMovimientoRepository define el puerto de persistencia para el
// historial de movimientos de inventario (append-only).
type InventarioMovimientoRepository interface {
	Create(ctx context.Context, m *entity.InventarioMovimiento) error
	ListBySucursal(ctx context.Context, sucursalID string, from, to *time.Time, limit, offset int) ([]*entity.InventarioMovimiento, error)
	ListByProducto(ctx context.Context, productoID string, from, to *time.Time, limit, offset int) ([]*entity.InventarioMovimiento, error)
}
