package venta

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/pkg/logger"
)

// Reintentos de la transacción completa ante conflictos de escritura.
// El backoff es lineal: intento*retryBackoff.
const (
	defaultMaxIntentos = 3
	retryBackoff       = 25 * time.Millisecond
)

// CreateVentaUseCase emite una factura de venta: asigna el correlativo,
// persiste cabecera y detalles, descuenta inventario por cada línea y avanza
// el correlativo de la configuración contable, todo en una sola transacción.
type CreateVentaUseCase struct {
	txRunner    TxRunner
	facturaRepo repository.FacturaRepository
	clock       Clock
	log         *logger.Logger
	maxIntentos int
}

// NewCreateVentaUseCase construye el caso de uso. clock nil usa time.Now.
func NewCreateVentaUseCase(txRunner TxRunner, facturaRepo repository.FacturaRepository, clock Clock, log *logger.Logger) *CreateVentaUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &CreateVentaUseCase{
		txRunner:    txRunner,
		facturaRepo: facturaRepo,
		clock:       clock,
		log:         log,
		maxIntentos: defaultMaxIntentos,
	}
}

// SetMaxIntentos ajusta el tope de reintentos ante conflictos de escritura
// (VENTA_MAX_INTENTOS). Valores no positivos se ignoran.
func (uc *CreateVentaUseCase) SetMaxIntentos(n int) {
	if n > 0 {
		uc.maxIntentos = n
	}
}

// CreateVenta ejecuta el flujo completo y devuelve la factura emitida.
// Si la transacción pierde una carrera (domain.ErrConflictoEscritura) se
// reintenta desde cero, releyendo toda la configuración: reintentar solo el
// sondeo del correlativo con estado cacheado podría reutilizar un número que
// otra transacción ya confirmó.
func (uc *CreateVentaUseCase) CreateVenta(ctx context.Context, in dto.CrearVentaRequest) (*dto.FacturaResponse, error) {
	if in.Sucursal == "" {
		return nil, fmt.Errorf("%w: sucursal", domain.ErrCampoRequerido)
	}

	var out *dto.FacturaResponse
	var err error
	for intento := 1; ; intento++ {
		out, err = uc.emitir(ctx, in)
		if err == nil || !errors.Is(err, domain.ErrConflictoEscritura) || intento >= uc.maxIntentos {
			return out, err
		}
		if uc.log != nil {
			uc.log.Warn().
				Int("intento", intento).
				Str("sucursal", in.Sucursal).
				Msg("conflicto de escritura al emitir factura, reintentando")
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(intento) * retryBackoff):
		}
	}
}

// emitir corre una transacción de venta completa (un intento).
func (uc *CreateVentaUseCase) emitir(ctx context.Context, in dto.CrearVentaRequest) (*dto.FacturaResponse, error) {
	ahora := uc.clock()
	var factura *entity.Factura
	var detalles []*entity.DetalleFactura

	err := uc.txRunner.RunVenta(ctx, func(ctx context.Context, repos Repos) error {
		// 1) Sucursal activa + configuración contable, con la fila del
		// correlativo bloqueada hasta el commit.
		cfg, err := uc.resolverConfig(ctx, repos, in.Sucursal, ahora)
		if err != nil {
			return err
		}

		// 2) Siguiente número válido dentro del rango autorizado.
		correlativo, err := asignarCorrelativo(ctx, repos.Facturas, cfg)
		if err != nil {
			return err
		}

		// 3) Usuario, empresa y productos. Todas las validaciones pasan
		// antes de la primera escritura.
		productos, err := uc.validarEntidades(ctx, repos, in)
		if err != nil {
			return err
		}

		// 4) Cabecera y detalles.
		factura, detalles, err = uc.escribirFactura(ctx, repos, in, cfg, correlativo, productos, ahora)
		if err != nil {
			return err
		}

		// 5) Salidas de inventario por cada línea, en el orden de la venta.
		if err := uc.ajustarInventario(ctx, repos, in, productos, correlativo, ahora); err != nil {
			return err
		}

		// 6) Avanzar el correlativo al número emitido.
		return repos.Configs.ActualizarCorrelativo(ctx, cfg.ID, correlativo)
	})
	if err != nil {
		return nil, err
	}
	return toFacturaResponse(factura, detalles), nil
}

// resolverConfig carga la sucursal activa y su configuración contable y
// valida la ventana de emisión. La comparación es por día: el día de la
// fecha límite todavía se puede facturar.
func (uc *CreateVentaUseCase) resolverConfig(ctx context.Context, repos Repos, sucursalID string, ahora time.Time) (*entity.ConfigContable, error) {
	sucursal, err := repos.Sucursales.GetActivaByID(ctx, sucursalID)
	if err != nil {
		return nil, err
	}
	if sucursal == nil {
		return nil, domain.ErrConfiguracionContable
	}
	cfg, err := repos.Configs.GetBySucursalForUpdate(ctx, sucursal.ID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, domain.ErrConfiguracionContable
	}
	if truncarDia(ahora).After(truncarDia(cfg.FechaLimite)) {
		return nil, domain.ErrFechaLimiteExcedida
	}
	return cfg, nil
}

// validarEntidades valida usuario emisor, empresa y cada producto de la
// venta. Devuelve los productos indexados por ID para copiar su costo a los
// detalles y movimientos.
func (uc *CreateVentaUseCase) validarEntidades(ctx context.Context, repos Repos, in dto.CrearVentaRequest) (map[string]*entity.Producto, error) {
	if in.Usuario == "" {
		return nil, fmt.Errorf("%w: usuario", domain.ErrCampoRequerido)
	}
	usuario, err := repos.Usuarios.GetHabilitadoByID(ctx, in.Usuario)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNoAutorizado
	}

	if in.Empresa == "" {
		return nil, fmt.Errorf("%w: empresa", domain.ErrCampoRequerido)
	}

	if len(in.Productos) == 0 {
		return nil, domain.ErrFacturaVacia
	}
	productos := make(map[string]*entity.Producto, len(in.Productos))
	for _, linea := range in.Productos {
		producto, err := repos.Productos.GetActivoByID(ctx, linea.Producto)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, fmt.Errorf("%w (producto %s)", domain.ErrProductoNoEncontrado, linea.Producto)
		}
		productos[linea.Producto] = producto
	}
	return productos, nil
}

// escribirFactura persiste la cabecera (estado PAGADO) y una línea de
// detalle por producto. Sin validaciones: ya pasaron todas.
func (uc *CreateVentaUseCase) escribirFactura(
	ctx context.Context,
	repos Repos,
	in dto.CrearVentaRequest,
	cfg *entity.ConfigContable,
	correlativo int64,
	productos map[string]*entity.Producto,
	ahora time.Time,
) (*entity.Factura, []*entity.DetalleFactura, error) {
	factura := &entity.Factura{
		ID:               uuid.New().String(),
		NoFactura:        correlativo,
		CodigoNumFactura: cfg.CodigoNumFactura,
		CAI:              cfg.CAI,
		FechaLimite:      cfg.FechaLimite,

		EmpresaID:  in.Empresa,
		SucursalID: in.Sucursal,
		UsuarioID:  in.Usuario,

		RTNCliente:    in.RTNCliente,
		NombreCliente: in.NombreCliente,

		Subtotal:       in.Subtotal,
		TotalImpuestoQ: in.TotalImpuestoQ,
		TotalImpuestoD: in.TotalImpuestoD,
		TotalDescuento: in.TotalDescuento,
		TotalExento:    in.TotalExento,
		TotalExonerado: in.TotalExonerado,
		Total:          in.Total,

		Estado: entity.EstadoPagado,

		NoCompraExenta:      in.NoCompraExenta,
		NoConstRegExonerado: in.NoConstRegExonerado,
		NoSAG:               in.NoSAG,
		Adjunto:             in.Adjunto,

		Fecha:     ahora,
		CreatedAt: ahora,
		UpdatedAt: ahora,
	}
	if err := repos.Facturas.Create(ctx, factura); err != nil {
		return nil, nil, err
	}

	detalles := make([]*entity.DetalleFactura, 0, len(in.Productos))
	for _, linea := range in.Productos {
		detalle := &entity.DetalleFactura{
			ID:             uuid.New().String(),
			FacturaID:      factura.ID,
			ProductoID:     linea.Producto,
			Cantidad:       linea.Cantidad,
			Precio:         linea.Precio,
			ISV:            linea.ISV,
			DescuentoValor: linea.DescuentoValor,
			PrecioCompra:   productos[linea.Producto].PrecioCompra,
		}
		if err := repos.Facturas.CreateDetalle(ctx, detalle); err != nil {
			return nil, nil, err
		}
		detalles = append(detalles, detalle)
	}
	return factura, detalles, nil
}

// ajustarInventario procesa las líneas en orden: verifica existencia
// suficiente contra el estado leído en esta transacción, registra la salida
// y fija la nueva existencia. El chequeo es por producto, no acumulado.
func (uc *CreateVentaUseCase) ajustarInventario(
	ctx context.Context,
	repos Repos,
	in dto.CrearVentaRequest,
	productos map[string]*entity.Producto,
	correlativo int64,
	ahora time.Time,
) error {
	for _, linea := range in.Productos {
		inv, err := repos.Inventarios.GetForUpdate(ctx, linea.Producto, in.Empresa, in.Sucursal)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrInventarioNoEncontrado
		}
		nueva := inv.Existencia.Sub(linea.Cantidad)
		if nueva.IsNegative() {
			return domain.ErrExistenciaInsuficiente
		}

		mov := &entity.InventarioMovimiento{
			ID:             uuid.New().String(),
			ProductoID:     linea.Producto,
			EmpresaID:      in.Empresa,
			SucursalID:     in.Sucursal,
			UsuarioID:      in.Usuario,
			Cantidad:       linea.Cantidad.Neg(),
			TipoMovimiento: entity.MovimientoSalida,
			Comentario:     fmt.Sprintf("Venta factura #%d", correlativo),
			PrecioCompra:   productos[linea.Producto].PrecioCompra,
			PrecioVenta:    linea.Precio,
			Fecha:          ahora,
			CreatedAt:      ahora,
		}
		if err := repos.Movimientos.Create(ctx, mov); err != nil {
			return err
		}
		if err := repos.Inventarios.ActualizarExistencia(ctx, inv.ID, nueva); err != nil {
			return err
		}
	}
	return nil
}

// GetVenta obtiene una factura por ID con su detalle completo.
func (uc *CreateVentaUseCase) GetVenta(ctx context.Context, id string) (*dto.FacturaResponse, error) {
	factura, err := uc.facturaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if factura == nil {
		return nil, domain.ErrNotFound
	}
	detalles, err := uc.facturaRepo.GetDetallesByFacturaID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toFacturaResponse(factura, detalles), nil
}

// ListVentas lista facturas de una sucursal con su detalle, más recientes primero.
func (uc *CreateVentaUseCase) ListVentas(ctx context.Context, sucursalID string, limit, offset int) ([]*dto.FacturaResponse, error) {
	facturas, err := uc.facturaRepo.ListBySucursal(ctx, sucursalID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FacturaResponse, 0, len(facturas))
	for _, f := range facturas {
		detalles, err := uc.facturaRepo.GetDetallesByFacturaID(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toFacturaResponse(f, detalles))
	}
	return out, nil
}

// truncarDia descarta la hora: la ventana de emisión se compara por día.
func truncarDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func toFacturaResponse(f *entity.Factura, detalles []*entity.DetalleFactura) *dto.FacturaResponse {
	resp := &dto.FacturaResponse{
		ID:               f.ID,
		NoFactura:        f.NoFactura,
		CodigoNumFactura: f.CodigoNumFactura,
		CAI:              f.CAI,
		FechaLimite:      f.FechaLimite.Format("2006-01-02"),

		EmpresaID:  f.EmpresaID,
		SucursalID: f.SucursalID,
		UsuarioID:  f.UsuarioID,

		RTNCliente:    f.RTNCliente,
		NombreCliente: f.NombreCliente,

		Subtotal:       f.Subtotal,
		TotalImpuestoQ: f.TotalImpuestoQ,
		TotalImpuestoD: f.TotalImpuestoD,
		TotalDescuento: f.TotalDescuento,
		TotalExento:    f.TotalExento,
		TotalExonerado: f.TotalExonerado,
		Total:          f.Total,

		Estado: f.Estado,
		Fecha:  f.Fecha.Format("2006-01-02"),

		Detalles: make([]dto.DetalleFacturaResponse, 0, len(detalles)),
	}
	for _, d := range detalles {
		resp.Detalles = append(resp.Detalles, dto.DetalleFacturaResponse{
			ID:             d.ID,
			ProductoID:     d.ProductoID,
			Cantidad:       d.Cantidad,
			Precio:         d.Precio,
			ISV:            d.ISV,
			DescuentoValor: d.DescuentoValor,
			PrecioCompra:   d.PrecioCompra,
		})
	}
	return resp
}
