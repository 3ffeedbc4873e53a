package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.InventarioRepository = (*InventarioRepo)(nil)

// InventarioRepo implementación de InventarioRepository sobre PostgreSQL.
// La existencia es por (producto, empresa, sucursal); la fila se bloquea
// con FOR UPDATE durante la venta para que el chequeo de stock y el
// descuento sean un solo read-modify-write.
type InventarioRepo struct {
	q Querier
}

func NewInventarioRepository(q Querier) *InventarioRepo {
	return &InventarioRepo{q: q}
}

const inventarioCols = `id, producto_id, empresa_id, sucursal_id, existencia, updated_at`

// Get obtiene el registro de inventario sin bloquear. nil, nil si no existe.
func (r *InventarioRepo) Get(ctx context.Context, productoID, empresaID, sucursalID string) (*entity.Inventario, error) {
	const query = `SELECT ` + inventarioCols + `
		FROM inventarios WHERE producto_id = $1 AND empresa_id = $2 AND sucursal_id = $3`
	return r.scanOne(r.q.QueryRow(ctx, query, productoID, empresaID, sucursalID))
}

// GetForUpdate bloquea la fila de inventario hasta el fin de la transacción.
// Devuelve nil, nil si no existe registro para la clave.
func (r *InventarioRepo) GetForUpdate(ctx context.Context, productoID, empresaID, sucursalID string) (*entity.Inventario, error) {
	const query = `SELECT ` + inventarioCols + `
		FROM inventarios WHERE producto_id = $1 AND empresa_id = $2 AND sucursal_id = $3 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, productoID, empresaID, sucursalID))
}

// Create persiste un registro de inventario nuevo para la clave.
func (r *InventarioRepo) Create(ctx context.Context, inv *entity.Inventario) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO inventarios (id, producto_id, empresa_id, sucursal_id, existencia, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())`
	_, err := r.q.Exec(ctx, query, inv.ID, inv.ProductoID, inv.EmpresaID, inv.SucursalID, inv.Existencia)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: inventario duplicado producto %s", domain.ErrConflictoEscritura, inv.ProductoID)
		}
		return fmt.Errorf("insert inventario: %w", err)
	}
	return nil
}

// ActualizarExistencia fija la existencia del registro al valor dado.
func (r *InventarioRepo) ActualizarExistencia(ctx context.Context, id string, existencia decimal.Decimal) error {
	const query = `UPDATE inventarios SET existencia = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, existencia)
	if err != nil {
		return fmt.Errorf("update existencia: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInventarioNoEncontrado
	}
	return nil
}

func (r *InventarioRepo) scanOne(row pgx.Row) (*entity.Inventario, error) {
	var inv entity.Inventario
	err := row.Scan(&inv.ID, &inv.ProductoID, &inv.EmpresaID, &inv.SucursalID, &inv.Existencia, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventario: %w", err)
	}
	return &inv, nil
}
