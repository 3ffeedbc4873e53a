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

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación de ProductoRepository sobre PostgreSQL.
type ProductoRepo struct {
	q Querier
}

func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

const productoCols = `
	id, empresa_id, codigo, nombre, descripcion, precio_venta, precio_compra, isv, activo, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductoRepo) Create(ctx context.Context, p *entity.Producto) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO productos (id, empresa_id, codigo, nombre, descripcion, precio_venta, precio_compra, isv, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.EmpresaID, p.Codigo, p.Nombre, p.Descripcion,
		p.PrecioVenta, p.PrecioCompra, p.ISV, p.Activo)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: codigo %s ya existe", domain.ErrInvalidInput, p.Codigo)
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (activo o no).
func (r *ProductoRepo) GetByID(ctx context.Context, id string) (*entity.Producto, error) {
	const query = `SELECT ` + productoCols + ` FROM productos WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetActivoByID devuelve el producto solo si existe y está activo.
func (r *ProductoRepo) GetActivoByID(ctx context.Context, id string) (*entity.Producto, error) {
	const query = `SELECT ` + productoCols + ` FROM productos WHERE id = $1 AND activo = true`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// ListByEmpresa devuelve productos de una empresa, paginados.
func (r *ProductoRepo) ListByEmpresa(ctx context.Context, empresaID string, limit, offset int) ([]*entity.Producto, error) {
	const query = `SELECT ` + productoCols + ` FROM productos WHERE empresa_id = $1 ORDER BY nombre LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza los campos mutables de un producto.
func (r *ProductoRepo) Update(ctx context.Context, p *entity.Producto) error {
	const query = `
		UPDATE productos
		SET codigo = $2, nombre = $3, descripcion = $4, precio_venta = $5, precio_compra = $6, isv = $7, activo = $8, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Codigo, p.Nombre, p.Descripcion, p.PrecioVenta, p.PrecioCompra, p.ISV, p.Activo)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductoNoEncontrado
	}
	return nil
}

// ActualizarPrecioCompra fija el costo promedio ponderado del producto.
func (r *ProductoRepo) ActualizarPrecioCompra(ctx context.Context, id string, precioCompra decimal.Decimal) error {
	const query = `UPDATE productos SET precio_compra = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, precioCompra)
	if err != nil {
		return fmt.Errorf("update precio compra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductoNoEncontrado
	}
	return nil
}

func (r *ProductoRepo) scanOne(row pgx.Row) (*entity.Producto, error) {
	p, err := scanProducto(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

func scanProducto(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	err := row.Scan(
		&p.ID, &p.EmpresaID, &p.Codigo, &p.Nombre, &p.Descripcion,
		&p.PrecioVenta, &p.PrecioCompra, &p.ISV, &p.Activo, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
