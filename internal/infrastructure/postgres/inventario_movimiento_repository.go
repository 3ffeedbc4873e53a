package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.InventarioMovimientoRepository = (*InventarioMovimientoRepo)(nil)

// InventarioMovimientoRepo implementación de InventarioMovimientoRepository
// sobre PostgreSQL. La tabla es append-only: solo INSERT y lecturas.
type InventarioMovimientoRepo struct {
	q Querier
}

func NewInventarioMovimientoRepository(q Querier) *InventarioMovimientoRepo {
	return &InventarioMovimientoRepo{q: q}
}

const movimientoCols = `
	id, producto_id, empresa_id, sucursal_id, usuario_id, cantidad,
	tipo_movimiento, comentario, precio_compra, precio_venta, fecha, created_at`

// Create persiste un movimiento de inventario.
func (r *InventarioMovimientoRepo) Create(ctx context.Context, m *entity.InventarioMovimiento) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO inventario_movimientos (
			id, producto_id, empresa_id, sucursal_id, usuario_id, cantidad,
			tipo_movimiento, comentario, precio_compra, precio_venta, fecha, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductoID, m.EmpresaID, m.SucursalID, m.UsuarioID, m.Cantidad,
		m.TipoMovimiento, m.Comentario, m.PrecioCompra, m.PrecioVenta, m.Fecha)
	if err != nil {
		return fmt.Errorf("insert movimiento inventario: %w", err)
	}
	return nil
}

// ListBySucursal devuelve movimientos de una sucursal, opcionalmente acotados
// por rango de fechas, más recientes primero.
func (r *InventarioMovimientoRepo) ListBySucursal(ctx context.Context, sucursalID string, from, to *time.Time, limit, offset int) ([]*entity.InventarioMovimiento, error) {
	const query = `SELECT ` + movimientoCols + `
		FROM inventario_movimientos
		WHERE sucursal_id = $1
		  AND ($2::timestamptz IS NULL OR fecha >= $2)
		  AND ($3::timestamptz IS NULL OR fecha <= $3)
		ORDER BY fecha DESC LIMIT $4 OFFSET $5`
	return r.list(ctx, query, sucursalID, from, to, limit, offset)
}

// ListByProducto devuelve movimientos de un producto (kardex), opcionalmente
// acotados por rango de fechas, más recientes primero.
func (r *InventarioMovimientoRepo) ListByProducto(ctx context.Context, productoID string, from, to *time.Time, limit, offset int) ([]*entity.InventarioMovimiento, error) {
	const query = `SELECT ` + movimientoCols + `
		FROM inventario_movimientos
		WHERE producto_id = $1
		  AND ($2::timestamptz IS NULL OR fecha >= $2)
		  AND ($3::timestamptz IS NULL OR fecha <= $3)
		ORDER BY fecha DESC LIMIT $4 OFFSET $5`
	return r.list(ctx, query, productoID, from, to, limit, offset)
}

func (r *InventarioMovimientoRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventarioMovimiento, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventarioMovimiento
	for rows.Next() {
		m, err := scanMovimiento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovimiento(row pgx.Row) (*entity.InventarioMovimiento, error) {
	var m entity.InventarioMovimiento
	err := row.Scan(
		&m.ID, &m.ProductoID, &m.EmpresaID, &m.SucursalID, &m.UsuarioID, &m.Cantidad,
		&m.TipoMovimiento, &m.Comentario, &m.PrecioCompra, &m.PrecioVenta, &m.Fecha, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
