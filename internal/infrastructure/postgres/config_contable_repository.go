package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.ConfigContableRepository = (*ConfigContableRepo)(nil)

// ConfigContableRepo implementación de ConfigContableRepository sobre PostgreSQL.
type ConfigContableRepo struct {
	q Querier
}

func NewConfigContableRepository(q Querier) *ConfigContableRepo {
	return &ConfigContableRepo{q: q}
}

const configContableCols = `
	id, sucursal_id, cai, codigo_num_factura, rango_inicial, rango_final,
	correlativo_actual, fecha_limite, created_at, updated_at`

// Create persiste una nueva configuración contable para una sucursal.
func (r *ConfigContableRepo) Create(ctx context.Context, cfg *entity.ConfigContable) error {
	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO config_contable (
			id, sucursal_id, cai, codigo_num_factura, rango_inicial, rango_final,
			correlativo_actual, fecha_limite, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`
	_, err := r.q.Exec(ctx, query,
		cfg.ID, cfg.SucursalID, cfg.CAI, cfg.CodigoNumFactura,
		cfg.RangoInicial, cfg.RangoFinal, cfg.CorrelativoActual, cfg.FechaLimite)
	if err != nil {
		return fmt.Errorf("insert config contable: %w", err)
	}
	return nil
}

// GetBySucursal obtiene la configuración contable de una sucursal sin bloquear.
func (r *ConfigContableRepo) GetBySucursal(ctx context.Context, sucursalID string) (*entity.ConfigContable, error) {
	const query = `SELECT ` + configContableCols + ` FROM config_contable WHERE sucursal_id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, sucursalID))
}

// GetBySucursalForUpdate bloquea la fila de configuración de la sucursal
// hasta el fin de la transacción. Dos ventas concurrentes de la misma
// sucursal se serializan aquí.
func (r *ConfigContableRepo) GetBySucursalForUpdate(ctx context.Context, sucursalID string) (*entity.ConfigContable, error) {
	const query = `SELECT ` + configContableCols + ` FROM config_contable WHERE sucursal_id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, sucursalID))
}

// ActualizarCorrelativo avanza el correlativo de la configuración al número asignado.
func (r *ConfigContableRepo) ActualizarCorrelativo(ctx context.Context, id string, correlativo int64) error {
	const query = `UPDATE config_contable SET correlativo_actual = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, correlativo)
	if err != nil {
		return fmt.Errorf("update correlativo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update correlativo: config %s no encontrada", id)
	}
	return nil
}

func (r *ConfigContableRepo) scanOne(row pgx.Row) (*entity.ConfigContable, error) {
	var cfg entity.ConfigContable
	err := row.Scan(
		&cfg.ID, &cfg.SucursalID, &cfg.CAI, &cfg.CodigoNumFactura,
		&cfg.RangoInicial, &cfg.RangoFinal, &cfg.CorrelativoActual,
		&cfg.FechaLimite, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get config contable: %w", err)
	}
	return &cfg, nil
}
