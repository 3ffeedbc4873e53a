package repository

import (
	"context"

	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// EmpresaRepository define el puerto de persistencia para Empresa.
type EmpresaRepository interface {
	Create(ctx context.Context, e *entity.Empresa) error
	GetByID(ctx context.Context, id string) (*entity.Empresa, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Empresa, error)
}
