package venta

import (
	"context"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a la transacción de venta. Todos
// comparten la misma transacción SQL; cualquier error del callback hace
// rollback del conjunto completo.
type Repos struct {
	Sucursales  repository.SucursalRepository
	Configs     repository.ConfigContableRepository
	Usuarios    repository.UsuarioRepository
	Productos   repository.ProductoRepository
	Facturas    repository.FacturaRepository
	Inventarios repository.InventarioRepository
	Movimientos repository.InventarioMovimientoRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el flujo de venta.
// La implementación debe traducir conflictos detectados al hacer commit
// (serialización, violación del único de numeración) a
// domain.ErrConflictoEscritura para que el caso de uso reintente.
type TxRunner interface {
	RunVenta(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}

// Clock provee la fecha actual. Inyectable para probar la ventana de
// fecha límite sin depender del reloj del sistema.
type Clock func() time.Time
