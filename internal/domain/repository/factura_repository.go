package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// FacturaRepository define el puerto de persistencia para Factura y detalles.
type FacturaRepository interface {
	Create(ctx context.Context, f *entity.Factura) error
	CreateDetalle(ctx context.Context, d *entity.DetalleFactura) error

	// ExisteNumero indica si alguna factura ya usa el par
	// (noFactura, codigoNumFactura). Es la sonda del asignador de correlativo.
	ExisteNumero(ctx context.Context, noFactura int64, codigoNumFactura string) (bool, error)

	GetByID(ctx context.Context, id string) (*entity.Factura, error)
	GetDetallesByFacturaID(ctx context.Context, facturaID string) ([]*entity.DetalleFactura, error)
	ListBySucursal(ctx context.Context, sucursalID string, limit, offset int) ([]*entity.Factura, error)
}
