package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación de UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const usuarioCols = `
	id, empresa_id, email, password_hash, nombre, rol, blocked, confirmed, created_at, updated_at`

// Create persiste un nuevo usuario. Traduce la violación del unique de email.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO usuarios (id, empresa_id, email, password_hash, nombre, rol, blocked, confirmed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.EmpresaID, u.Email, u.PasswordHash, u.Nombre, u.Rol, u.Blocked, u.Confirmed)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID sin filtrar por estado.
func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	const query = `SELECT ` + usuarioCols + ` FROM usuarios WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetHabilitadoByID devuelve el usuario solo si puede operar:
// existe, no está bloqueado y está confirmado.
func (r *UsuarioRepo) GetHabilitadoByID(ctx context.Context, id string) (*entity.Usuario, error) {
	const query = `SELECT ` + usuarioCols + ` FROM usuarios WHERE id = $1 AND blocked = false AND confirmed = true`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByEmail obtiene un usuario por email (login).
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	const query = `SELECT ` + usuarioCols + ` FROM usuarios WHERE email = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, email))
}

// Update actualiza los campos mutables de un usuario.
func (r *UsuarioRepo) Update(ctx context.Context, u *entity.Usuario) error {
	const query = `
		UPDATE usuarios
		SET email = $2, password_hash = $3, nombre = $4, rol = $5, blocked = $6, confirmed = $7, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, u.ID, u.Email, u.PasswordHash, u.Nombre, u.Rol, u.Blocked, u.Confirmed)
	if err != nil {
		return fmt.Errorf("update usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UsuarioRepo) scanOne(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(
		&u.ID, &u.EmpresaID, &u.Email, &u.PasswordHash, &u.Nombre, &u.Rol,
		&u.Blocked, &u.Confirmed, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}
