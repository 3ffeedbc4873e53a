package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// SucursalRepository define el puerto de persistencia para Sucursal.
type SucursalRepository interface {
	Create(ctx context.Context, s *entity.Sucursal) error
	GetByID(ctx context.Context, id string) (*entity.Sucursal, error)

	// GetActivaByID devuelve la sucursal solo si existe y está activa;
	// nil, nil en caso contrario.
	GetActivaByID(ctx context.Context, id string) (*entity.Sucursal, error)

	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Sucursal, error)
}
