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

var _ repository.FacturaRepository = (*FacturaRepo)(nil)

// FacturaRepo implementación de FacturaRepository sobre PostgreSQL.
// La tabla facturas lleva UNIQUE (no_factura, codigo_num_factura): respaldo
// del asignador de correlativo ante carreras que el bloqueo no cubra.
type FacturaRepo struct {
	q Querier
}

func NewFacturaRepository(q Querier) *FacturaRepo {
	return &FacturaRepo{q: q}
}

const facturaCols = `
	id, no_factura, codigo_num_factura, cai, fecha_limite,
	empresa_id, sucursal_id, usuario_id, rtn_cliente, nombre_cliente,
	subtotal, total_impuesto_q, total_impuesto_d, total_descuento,
	total_exento, total_exonerado, total, estado,
	no_compra_exenta, no_const_reg_exonerado, no_sag, adjunto,
	fecha, created_at, updated_at`

// Create persiste la cabecera de una factura. Una violación del unique de
// numeración se traduce a conflicto de escritura para que la venta reintente.
func (r *FacturaRepo) Create(ctx context.Context, f *entity.Factura) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO facturas (
			id, no_factura, codigo_num_factura, cai, fecha_limite,
			empresa_id, sucursal_id, usuario_id, rtn_cliente, nombre_cliente,
			subtotal, total_impuesto_q, total_impuesto_d, total_descuento,
			total_exento, total_exonerado, total, estado,
			no_compra_exenta, no_const_reg_exonerado, no_sag, adjunto,
			fecha, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, now(), now()
		)`
	_, err := r.q.Exec(ctx, query,
		f.ID, f.NoFactura, f.CodigoNumFactura, f.CAI, f.FechaLimite,
		f.EmpresaID, f.SucursalID, f.UsuarioID, f.RTNCliente, f.NombreCliente,
		f.Subtotal, f.TotalImpuestoQ, f.TotalImpuestoD, f.TotalDescuento,
		f.TotalExento, f.TotalExonerado, f.Total, f.Estado,
		f.NoCompraExenta, f.NoConstRegExonerado, f.NoSAG, f.Adjunto,
		f.Fecha)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: numero %d/%s ya emitido", domain.ErrConflictoEscritura, f.NoFactura, f.CodigoNumFactura)
		}
		return fmt.Errorf("insert factura: %w", err)
	}
	return nil
}

// CreateDetalle persiste una línea de detalle de factura.
func (r *FacturaRepo) CreateDetalle(ctx context.Context, d *entity.DetalleFactura) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO detalle_facturas (id, factura_id, producto_id, cantidad, precio, isv, descuento_valor, precio_compra)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.FacturaID, d.ProductoID, d.Cantidad, d.Precio, d.ISV, d.DescuentoValor, d.PrecioCompra)
	if err != nil {
		return fmt.Errorf("insert detalle factura: %w", err)
	}
	return nil
}

// ExisteNumero indica si el par (noFactura, codigoNumFactura) ya fue emitido.
func (r *FacturaRepo) ExisteNumero(ctx context.Context, noFactura int64, codigoNumFactura string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM facturas WHERE no_factura = $1 AND codigo_num_factura = $2)`
	var existe bool
	if err := r.q.QueryRow(ctx, query, noFactura, codigoNumFactura).Scan(&existe); err != nil {
		return false, fmt.Errorf("existe numero factura: %w", err)
	}
	return existe, nil
}

// GetByID obtiene una factura por ID. Devuelve nil, nil si no existe.
func (r *FacturaRepo) GetByID(ctx context.Context, id string) (*entity.Factura, error) {
	const query = `SELECT ` + facturaCols + ` FROM facturas WHERE id = $1`
	f, err := scanFactura(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura: %w", err)
	}
	return f, nil
}

// GetDetallesByFacturaID devuelve las líneas de una factura en orden de inserción.
func (r *FacturaRepo) GetDetallesByFacturaID(ctx context.Context, facturaID string) ([]*entity.DetalleFactura, error) {
	const query = `
		SELECT id, factura_id, producto_id, cantidad, precio, isv, descuento_valor, precio_compra
		FROM detalle_facturas WHERE factura_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, facturaID)
	if err != nil {
		return nil, fmt.Errorf("list detalles factura: %w", err)
	}
	defer rows.Close()
	var list []*entity.DetalleFactura
	for rows.Next() {
		var d entity.DetalleFactura
		if err := rows.Scan(&d.ID, &d.FacturaID, &d.ProductoID, &d.Cantidad, &d.Precio, &d.ISV, &d.DescuentoValor, &d.PrecioCompra); err != nil {
			return nil, fmt.Errorf("scan detalle factura: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListBySucursal devuelve facturas de una sucursal, más recientes primero.
func (r *FacturaRepo) ListBySucursal(ctx context.Context, sucursalID string, limit, offset int) ([]*entity.Factura, error) {
	const query = `SELECT ` + facturaCols + ` FROM facturas WHERE sucursal_id = $1 ORDER BY fecha DESC, no_factura DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, sucursalID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list facturas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Factura
	for rows.Next() {
		f, err := scanFactura(rows)
		if err != nil {
			return nil, fmt.Errorf("scan factura: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func scanFactura(row pgx.Row) (*entity.Factura, error) {
	var f entity.Factura
	err := row.Scan(
		&f.ID, &f.NoFactura, &f.CodigoNumFactura, &f.CAI, &f.FechaLimite,
		&f.EmpresaID, &f.SucursalID, &f.UsuarioID, &f.RTNCliente, &f.NombreCliente,
		&f.Subtotal, &f.TotalImpuestoQ, &f.TotalImpuestoD, &f.TotalDescuento,
		&f.TotalExento, &f.TotalExonerado, &f.Total, &f.Estado,
		&f.NoCompraExenta, &f.NoConstRegExonerado, &f.NoSAG, &f.Adjunto,
		&f.Fecha, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
