package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// ProductoRepository define el puerto de persistencia para Producto.
type ProductoRepository interface {
	Create(ctx context.Context, p *entity.Producto) error
	GetByID(ctx context.Context, id string) (*entity.Producto, error)

	// GetActivoByID devuelve el producto solo si existe y está activo;
	// nil, nil en caso contrario.
	GetActivoByID(ctx context.Context, id string) (*entity.Producto, error)

	ListByEmpresa(ctx context.Context, empresaID string, limit, offset int) ([]*entity.Producto, error)
	Update(ctx context.Context, p *entity.Producto) error

	// ActualizarPrecioCompra actualiza el costo promedio ponderado tras una entrada.
	ActualizarPrecioCompra(ctx context.Context, id string, precioCompra decimal.Decimal) error
}
