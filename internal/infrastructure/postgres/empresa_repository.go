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

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementación de EmpresaRepository sobre PostgreSQL.
type EmpresaRepo struct {
	q Querier
}

func NewEmpresaRepository(q Querier) *EmpresaRepo {
	return &EmpresaRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *EmpresaRepo) Create(ctx context.Context, e *entity.Empresa) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Estado == "" {
		e.Estado = "active"
	}
	const query = `
		INSERT INTO empresas (id, nombre, rtn, direccion, telefono, email, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	_, err := r.q.Exec(ctx, query, e.ID, e.Nombre, e.RTN, e.Direccion, e.Telefono, e.Email, e.Estado)
	if err != nil {
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID. Devuelve nil, nil si no existe.
func (r *EmpresaRepo) GetByID(ctx context.Context, id string) (*entity.Empresa, error) {
	const query = `
		SELECT id, nombre, rtn, direccion, telefono, email, estado, created_at, updated_at
		FROM empresas WHERE id = $1`
	var e entity.Empresa
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Nombre, &e.RTN, &e.Direccion, &e.Telefono, &e.Email, &e.Estado, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return &e, nil
}

// List devuelve empresas paginadas ordenadas por nombre.
func (r *EmpresaRepo) List(ctx context.Context, limit, offset int) ([]*entity.Empresa, error) {
	const query = `
		SELECT id, nombre, rtn, direccion, telefono, email, estado, created_at, updated_at
		FROM empresas ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Empresa
	for rows.Next() {
		var e entity.Empresa
		if err := rows.Scan(&e.ID, &e.Nombre, &e.RTN, &e.Direccion, &e.Telefono, &e.Email, &e.Estado, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
