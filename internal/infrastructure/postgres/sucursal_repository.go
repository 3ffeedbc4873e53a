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

var _ repository.SucursalRepository = (*SucursalRepo)(nil)

// SucursalRepo implementación de SucursalRepository sobre PostgreSQL (usable con pool o tx).
type SucursalRepo struct {
	q Querier
}

// NewSucursalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSucursalRepository(q Querier) *SucursalRepo {
	return &SucursalRepo{q: q}
}

// Create persiste una nueva sucursal.
func (r *SucursalRepo) Create(ctx context.Context, s *entity.Sucursal) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO sucursales (id, empresa_id, nombre, direccion, activa, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`
	_, err := r.q.Exec(ctx, query, s.ID, s.EmpresaID, s.Nombre, s.Direccion, s.Activa)
	if err != nil {
		return fmt.Errorf("insert sucursal: %w", err)
	}
	return nil
}

// GetByID obtiene una sucursal por ID (activa o no).
func (r *SucursalRepo) GetByID(ctx context.Context, id string) (*entity.Sucursal, error) {
	const query = `
		SELECT id, empresa_id, nombre, direccion, activa, created_at, updated_at
		FROM sucursales WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetActivaByID devuelve la sucursal solo si existe y está activa.
func (r *SucursalRepo) GetActivaByID(ctx context.Context, id string) (*entity.Sucursal, error) {
	const query = `
		SELECT id, empresa_id, nombre, direccion, activa, created_at, updated_at
		FROM sucursales WHERE id = $1 AND activa = true`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// ListByEmpresa lista las sucursales de una empresa.
func (r *SucursalRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Sucursal, error) {
	const query = `
		SELECT id, empresa_id, nombre, direccion, activa, created_at, updated_at
		FROM sucursales WHERE empresa_id = $1 ORDER BY nombre`
	rows, err := r.q.Query(ctx, query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list sucursales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sucursal
	for rows.Next() {
		var s entity.Sucursal
		if err := rows.Scan(&s.ID, &s.EmpresaID, &s.Nombre, &s.Direccion, &s.Activa, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sucursal: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SucursalRepo) scanOne(row pgx.Row) (*entity.Sucursal, error) {
	var s entity.Sucursal
	err := row.Scan(&s.ID, &s.EmpresaID, &s.Nombre, &s.Direccion, &s.Activa, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sucursal: %w", err)
	}
	return &s, nil
}
