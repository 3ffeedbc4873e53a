package inventario

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Facturacion-api/internal/domain/inventario"
)

// RegistrarEntradaUseCase registra entradas de inventario (compras o
// reposiciones) de forma transaccional: bloquea la fila de existencias,
// recalcula el costo promedio ponderado del producto, suma la cantidad y
// guarda el movimiento ENTRADA.
type RegistrarEntradaUseCase struct {
	txRunner TxRunner
}

// NewRegistrarEntradaUseCase construye el caso de uso.
func NewRegistrarEntradaUseCase(txRunner TxRunner) *RegistrarEntradaUseCase {
	return &RegistrarEntradaUseCase{txRunner: txRunner}
}

// RegistrarEntrada valida la entrada y la aplica dentro de una transacción.
// Si no existe registro de inventario para (producto, empresa, sucursal) lo
// crea con existencia cero antes de sumar.
func (uc *RegistrarEntradaUseCase) RegistrarEntrada(ctx context.Context, empresaID, usuarioID string, in dto.RegistrarEntradaRequest) error {
	if in.Producto == "" || in.Sucursal == "" {
		return domain.ErrInvalidInput
	}
	if !in.Cantidad.GreaterThan(decimal.Zero) || in.CostoUnit.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}

	ahora := time.Now()
	return uc.txRunner.RunInventario(ctx, func(ctx context.Context, repos Repos) error {
		producto, err := repos.Productos.GetActivoByID(ctx, in.Producto)
		if err != nil {
			return err
		}
		if producto == nil {
			return domain.ErrProductoNoEncontrado
		}
		if producto.EmpresaID != empresaID {
			return domain.ErrForbidden
		}

		inv, err := repos.Inventarios.GetForUpdate(ctx, in.Producto, empresaID, in.Sucursal)
		if err != nil {
			return err
		}
		if inv == nil {
			inv = &entity.Inventario{
				ID:         uuid.New().String(),
				ProductoID: in.Producto,
				EmpresaID:  empresaID,
				SucursalID: in.Sucursal,
				Existencia: decimal.Zero,
				UpdatedAt:  ahora,
			}
			if err := repos.Inventarios.Create(ctx, inv); err != nil {
				return err
			}
		}

		nuevoCosto := domaininv.CostoPromedio(inv.Existencia, producto.PrecioCompra, in.Cantidad, in.CostoUnit)
		if err := repos.Productos.ActualizarPrecioCompra(ctx, in.Producto, nuevoCosto); err != nil {
			return err
		}

		nueva := inv.Existencia.Add(in.Cantidad)
		if err := repos.Inventarios.ActualizarExistencia(ctx, inv.ID, nueva); err != nil {
			return err
		}

		comentario := in.Comentario
		if comentario == "" {
			comentario = "Entrada de inventario"
		}
		mov := &entity.InventarioMovimiento{
			ID:             uuid.New().String(),
			ProductoID:     in.Producto,
			EmpresaID:      empresaID,
			SucursalID:     in.Sucursal,
			UsuarioID:      usuarioID,
			Cantidad:       in.Cantidad,
			TipoMovimiento: entity.MovimientoEntrada,
			Comentario:     comentario,
			PrecioCompra:   in.CostoUnit,
			PrecioVenta:    producto.PrecioVenta,
			Fecha:          ahora,
			CreatedAt:      ahora,
		}
		return repos.Movimientos.Create(ctx, mov)
	})
}
