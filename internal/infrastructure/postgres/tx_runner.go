package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Facturacion-api/internal/application/inventario"
	"github.com/jhoicas/Facturacion-api/internal/application/venta"
	"github.com/jhoicas/Facturacion-api/internal/domain"
)

// Ensure TxRunner implements venta.TxRunner and inventario.TxRunner.
var _ venta.TxRunner = (*TxRunner)(nil)
var _ inventario.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunVenta inicia una transacción con todos los repos del flujo de venta y
// hace Commit o Rollback. Los conflictos detectados al confirmar
// (serialización, deadlock, violación del único de numeración) se traducen a
// domain.ErrConflictoEscritura para que el caso de uso reintente desde cero.
func (r *TxRunner) RunVenta(ctx context.Context, fn func(ctx context.Context, repos venta.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := venta.Repos{
		Sucursales:  NewSucursalRepository(tx),
		Configs:     NewConfigContableRepository(tx),
		Usuarios:    NewUsuarioRepository(tx),
		Productos:   NewProductoRepository(tx),
		Facturas:    NewFacturaRepository(tx),
		Inventarios: NewInventarioRepository(tx),
		Movimientos: NewInventarioMovimientoRepository(tx),
	}

	if err := fn(ctx, repos); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrConflictoEscritura, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) || isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrConflictoEscritura, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInventario inicia una transacción con los repos del motor de inventario
// (entradas y ajustes fuera del flujo de venta).
func (r *TxRunner) RunInventario(ctx context.Context, fn func(ctx context.Context, repos inventario.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := inventario.Repos{
		Productos:   NewProductoRepository(tx),
		Inventarios: NewInventarioRepository(tx),
		Movimientos: NewInventarioMovimientoRepository(tx),
	}

	if err := fn(ctx, repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
