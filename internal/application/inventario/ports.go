package inventario

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a la transacción de inventario.
type Repos struct {
	Productos   repository.ProductoRepository
	Inventarios repository.InventarioRepository
	Movimientos repository.InventarioMovimientoRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario.
type TxRunner interface {
	RunInventario(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}
