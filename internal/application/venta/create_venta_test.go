package venta

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base
// ──────────────────────────────────────────────────────────────────────────────

const (
	sucursalPrueba = "suc-001"
	empresaPrueba  = "emp-001"
	usuarioPrueba  = "usr-001"
	productoPrueba = "prod-001"
	codigoPrueba   = "000-001-01"
	caiPrueba      = "254F8-612C1-8A0E2-6E21B-0055B-27"
)

// fechaEmision: momento fijo de emisión para todos los tests.
func fechaEmision() time.Time {
	return time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
}

type escenario struct {
	store *memStore
	tx    *fakeTxRunner
	uc    *CreateVentaUseCase
}

// nuevoEscenario arma un estado consistente: sucursal activa con
// configuración contable vigente (rango 1..200, correlativo en 100), usuario
// habilitado, producto activo y 10 unidades en inventario.
func nuevoEscenario(t *testing.T) *escenario {
	t.Helper()
	store := newMemStore()

	store.sucursales[sucursalPrueba] = &entity.Sucursal{
		ID: sucursalPrueba, EmpresaID: empresaPrueba, Nombre: "Principal", Activa: true,
	}
	store.configs[sucursalPrueba] = &entity.ConfigContable{
		ID:                "cfg-001",
		SucursalID:        sucursalPrueba,
		CAI:               caiPrueba,
		CodigoNumFactura:  codigoPrueba,
		RangoInicial:      1,
		RangoFinal:        200,
		CorrelativoActual: 100,
		FechaLimite:       time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	store.usuarios[usuarioPrueba] = &entity.Usuario{
		ID: usuarioPrueba, EmpresaID: empresaPrueba, Email: "cajero@empresa.hn",
		Rol: entity.RolVendedor, Blocked: false, Confirmed: true,
	}
	store.productos[productoPrueba] = &entity.Producto{
		ID: productoPrueba, EmpresaID: empresaPrueba, Codigo: "P-001", Nombre: "Aceite 1L",
		PrecioVenta:  decimal.NewFromInt(150),
		PrecioCompra: decimal.NewFromInt(60),
		ISV:          decimal.NewFromFloat(0.15),
		Activo:       true,
	}
	store.inventarios[invKey(productoPrueba, empresaPrueba, sucursalPrueba)] = &entity.Inventario{
		ID: "inv-001", ProductoID: productoPrueba, EmpresaID: empresaPrueba,
		SucursalID: sucursalPrueba, Existencia: decimal.NewFromInt(10),
	}

	tx := newFakeTxRunner(store)
	uc := NewCreateVentaUseCase(tx, &fakeFacturaRepo{s: store}, fechaEmision, nil)
	return &escenario{store: store, tx: tx, uc: uc}
}

// ventaBase: una venta de 2 unidades del producto de prueba.
func ventaBase() dto.CrearVentaRequest {
	return dto.CrearVentaRequest{
		Sucursal:       sucursalPrueba,
		Usuario:        usuarioPrueba,
		Empresa:        empresaPrueba,
		RTNCliente:     "08011985123960",
		NombreCliente:  "Cliente Prueba",
		Subtotal:       decimal.NewFromInt(300),
		TotalImpuestoQ: decimal.NewFromInt(45),
		Total:          decimal.NewFromInt(345),
		Productos: []dto.VentaProductoRequest{
			{
				Producto: productoPrueba,
				Cantidad: decimal.NewFromInt(2),
				Precio:   decimal.NewFromInt(150),
				ISV:      decimal.NewFromFloat(0.15),
			},
		},
	}
}

// emitirFactura siembra una factura existente con el número dado, como si
// otra venta ya lo hubiera usado.
func emitirFactura(e *escenario, no int64) {
	id := fmt.Sprintf("fac-seed-%d", no)
	e.store.facturas[id] = &entity.Factura{
		ID: id, NoFactura: no, CodigoNumFactura: codigoPrueba,
		SucursalID: sucursalPrueba, EmpresaID: empresaPrueba, Estado: entity.EstadoPagado,
	}
}

func (e *escenario) existencia() decimal.Decimal {
	return e.store.inventarios[invKey(productoPrueba, empresaPrueba, sucursalPrueba)].Existencia
}

func (e *escenario) correlativoActual() int64 {
	return e.store.configs[sucursalPrueba].CorrelativoActual
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateVenta_AsignaSiguienteCorrelativo(t *testing.T) {
	e := nuevoEscenario(t)

	resp, err := e.uc.CreateVenta(context.Background(), ventaBase())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(101), resp.NoFactura, "debe asignar CorrelativoActual+1")
	assert.Equal(t, codigoPrueba, resp.CodigoNumFactura)
	assert.Equal(t, caiPrueba, resp.CAI, "el CAI vigente se copia a la factura")
	assert.Equal(t, entity.EstadoPagado, resp.Estado)
	require.Len(t, resp.Detalles, 1)
	assert.True(t, resp.Detalles[0].PrecioCompra.Equal(decimal.NewFromInt(60)),
		"el costo histórico del producto se copia al detalle")

	assert.Equal(t, int64(101), e.correlativoActual(), "el correlativo avanza al número emitido")
	assert.True(t, e.existencia().Equal(decimal.NewFromInt(8)), "10 - 2 = 8")

	require.Len(t, e.store.movimientos, 1)
	mov := e.store.movimientos[0]
	assert.Equal(t, entity.MovimientoSalida, mov.TipoMovimiento)
	assert.True(t, mov.Cantidad.Equal(decimal.NewFromInt(-2)), "la salida lleva cantidad negativa")
	assert.Equal(t, "Venta factura #101", mov.Comentario)
	assert.True(t, mov.PrecioCompra.Equal(decimal.NewFromInt(60)))
	assert.True(t, mov.PrecioVenta.Equal(decimal.NewFromInt(150)))
}

func TestCreateVenta_SaltaNumerosOcupados(t *testing.T) {
	e := nuevoEscenario(t)
	// El 101 ya fue usado (importación histórica, otra serie migrada, etc.)
	emitirFactura(e, 101)

	resp, err := e.uc.CreateVenta(context.Background(), ventaBase())
	require.NoError(t, err)

	assert.Equal(t, int64(102), resp.NoFactura, "debe sondear y saltar el número ocupado")
	assert.Equal(t, int64(102), e.correlativoActual())
}

func TestCreateVenta_RangoFinalEsEmitible(t *testing.T) {
	e := nuevoEscenario(t)
	e.store.configs[sucursalPrueba].CorrelativoActual = 199

	resp, err := e.uc.CreateVenta(context.Background(), ventaBase())
	require.NoError(t, err)
	assert.Equal(t, int64(200), resp.NoFactura, "el último número del rango todavía se emite")
	assert.Equal(t, int64(200), e.correlativoActual())
}

func TestCreateVenta_VentasDeVariasLineas(t *testing.T) {
	e := nuevoEscenario(t)
	e.store.productos["prod-002"] = &entity.Producto{
		ID: "prod-002", EmpresaID: empresaPrueba, Codigo: "P-002", Nombre: "Harina 5lb",
		PrecioVenta:  decimal.NewFromInt(80),
		PrecioCompra: decimal.NewFromInt(50),
		Activo:       true,
	}
	e.store.inventarios[invKey("prod-002", empresaPrueba, sucursalPrueba)] = &entity.Inventario{
		ID: "inv-002", ProductoID: "prod-002", EmpresaID: empresaPrueba,
		SucursalID: sucursalPrueba, Existencia: decimal.NewFromInt(5),
	}

	in := ventaBase()
	in.Productos = append(in.Productos, dto.VentaProductoRequest{
		Producto: "prod-002",
		Cantidad: decimal.NewFromInt(3),
		Precio:   decimal.NewFromInt(80),
	})

	resp, err := e.uc.CreateVenta(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, resp.Detalles, 2)

	assert.True(t, e.existencia().Equal(decimal.NewFromInt(8)))
	inv2 := e.store.inventarios[invKey("prod-002", empresaPrueba, sucursalPrueba)]
	assert.True(t, inv2.Existencia.Equal(decimal.NewFromInt(2)), "5 - 3 = 2")
	assert.Len(t, e.store.movimientos, 2, "un movimiento SALIDA por línea")
}

// ──────────────────────────────────────────────────────────────────────────────
// Rango y correlativo
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateVenta_RangoAgotado(t *testing.T) {
	e := nuevoEscenario(t)
	e.store.configs[sucursalPrueba].CorrelativoActual = 199
	emitirFactura(e, 200)

	facturasAntes := len(e.store.facturas)
	_, err := e.uc.CreateVenta(context.Background(), ventaBase())

	require.ErrorIs(t, err, domain.ErrRangoAgotado)
	assert.True(t, domain.EsErrorTerminal(err), "rango agotado requiere intervención del contador")
	assert.Equal(t, int64(199), e.correlativoActual(), "el correlativo no se toca")
	assert.Len(t, e.store.facturas, facturasAntes, "no se persiste ninguna factura")
	assert.True(t, e.existencia().Equal(decimal.NewFromInt(10)), "el inventario no se toca")
}

func TestCreateVenta_CorrelativoBajoRangoInicial(t *testing.T) {
	e := nuevoEscenario(t)
	// Configuración corrupta: el correlativo quedó por debajo del rango
	// autorizado (p.ej. rango nuevo cargado sin resetear el contador).
	cfg := e.store.configs[sucursalPrueba]
	cfg.RangoInicial = 500
	cfg.RangoFinal = 700
	cfg.CorrelativoActual = 100

	_, err := e.uc.CreateVenta(context.Background(), ventaBase())
	require.ErrorIs(t, err, domain.ErrCorrelativoInvalido)
	assert.True(t, domain.EsErrorTerminal(err))
	assert.Equal(t, int64(100), e.correlativoActual())
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventana de fecha límite
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateVenta_FechaLimiteExcedida(t *testing.T) {
	e := nuevoEscenario(t)
	e.store.configs[sucursalPrueba].FechaLimite = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := e.uc.CreateVenta(context.Background(), ventaBase())
	require.ErrorIs(t, err, domain.ErrFechaLimiteExcedida)
	assert.Equal(t, int64(100), e.correlativoActual())
}

func TestCreateVenta_DiaDeLaFechaLimiteTodaviaEmite(t *testing.T) {
	e := nuevoEscenario(t)
	// La fecha límite es hoy a medianoche; la emisión es hoy a las 15:30.
	// La comparación es por día, así que todavía se factura.
	e.store.configs[sucursalPrueba].FechaLimite = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	resp, err := e.uc.CreateVenta(context.Background(), ventaBase())
	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.NoFactura)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones de entidades
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateVenta_SinSucursal(t *testing.T) {
	e := nuevoEscenario(t)
	in := ventaBase()
	in.Sucursal = ""

	_, err := e.uc.CreateVenta(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrCampoRequerido)
	assert.Equal(t, 0, e.tx.transacciones, "no debe abrirse transacción sin sucursal")
}

func TestCreateVenta_SucursalInactiva(t *testing.T) {
	e := nuevoEscenario(t)
	e.store.sucursales[sucursalPrueba].Activa = false

	_, err := e.uc.CreateVenta(context.Background(), ventaBase())
	require.ErrorIs(t, err, domain.ErrConfiguracionContable)
}

func TestCreateVenta_SinConfiguracionContable(t *testing.T) {
	e := nuevoEscenario(t)
	delete(e.store.configs, sucursalPrueba)

	_, err := e.uc.CreateVenta(context.Background(), ventaBase())
	require.ErrorIs(t, err, domain.ErrConfiguracionContable)
}

func TestCreateVenta_UsuarioBloqueado(t *testing.T) {
	e := nuevoEscenario(t)
	e.store.usuarios[usuarioPrueba].Blocked = true

	_, err := e.uc.CreateVenta(context.Background(), ventaBase())
	require.ErrorIs(t, err, domain.ErrUsuarioNoAutorizado)
}

func TestCreateVenta_UsuarioSinConfirmar(t *testing.T) {
	e := nuevoEscenario(t)
	e.store.usuarios[usuarioPrueba].Confirmed = false

	_, err := e.uc.CreateVenta(context.Background(), ventaBase())
	require.ErrorIs(t, err, domain.ErrUsuarioNoAutorizado)
}

func TestCreateVenta_SinUsuario(t *testing.T) {
	e := nuevoEscenario(t)
	in := ventaBase()
	in.Usuario = ""

	_, err := e.uc.CreateVenta(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrCampoRequerido)
}

func TestCreateVenta_SinEmpresa(t *testing.T) {
	e := nuevoEscenario(t)
	in := ventaBase()
	in.Empresa = ""

	_, err := e.uc.CreateVenta(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrCampoRequerido)
}

func TestCreateVenta_SinProductos(t *testing.T) {
	e := nuevoEscenario(t)
	in := ventaBase()
	in.Productos = nil

	_, err := e.uc.CreateVenta(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrFacturaVacia)
	assert.Equal(t, int64(100), e.correlativoActual(), "nada se muta con factura vacía")
	assert.Empty(t, e.store.facturas)
}

func TestCreateVenta_ProductoInactivo(t *testing.T) {
	e := nuevoEscenario(t)
	e.store.productos[productoPrueba].Activo = false

	_, err := e.uc.CreateVenta(context.Background(), ventaBase())
	require.ErrorIs(t, err, domain.ErrProductoNoEncontrado)
}

func TestCreateVenta_ProductoInexistente(t *testing.T) {
	e := nuevoEscenario(t)
	in := ventaBase()
	in.Productos[0].Producto = "prod-fantasma"

	_, err := e.uc.CreateVenta(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrProductoNoEncontrado)
	assert.Contains(t, err.Error(), "prod-fantasma", "el error identifica al producto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario y atomicidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateVenta_SinRegistroDeInventario(t *testing.T) {
	e := nuevoEscenario(t)
	delete(e.store.inventarios, invKey(productoPrueba, empresaPrueba, sucursalPrueba))

	_, err := e.uc.CreateVenta(context.Background(), ventaBase())
	require.ErrorIs(t, err, domain.ErrInventarioNoEncontrado)

	// Atomicidad: la cabecera se escribió dentro de la transacción y debe
	// desaparecer con el rollback.
	assert.Empty(t, e.store.facturas)
	assert.Empty(t, e.store.detalles)
	assert.Equal(t, int64(100), e.correlativoActual())
}

func TestCreateVenta_ExistenciaInsuficiente(t *testing.T) {
	e := nuevoEscenario(t)
	in := ventaBase()
	in.Productos[0].Cantidad = decimal.NewFromInt(11) // hay 10

	_, err := e.uc.CreateVenta(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrExistenciaInsuficiente)

	assert.Empty(t, e.store.facturas, "la factura no sobrevive al rollback")
	assert.Empty(t, e.store.detalles)
	assert.Empty(t, e.store.movimientos)
	assert.True(t, e.existencia().Equal(decimal.NewFromInt(10)), "el inventario queda intacto")
	assert.Equal(t, int64(100), e.correlativoActual())
}

func TestCreateVenta_SegundaLineaSinExistencia_RevierteTodo(t *testing.T) {
	e := nuevoEscenario(t)
	e.store.productos["prod-002"] = &entity.Producto{
		ID: "prod-002", EmpresaID: empresaPrueba, Nombre: "Azúcar 2lb",
		PrecioCompra: decimal.NewFromInt(20), PrecioVenta: decimal.NewFromInt(40), Activo: true,
	}
	e.store.inventarios[invKey("prod-002", empresaPrueba, sucursalPrueba)] = &entity.Inventario{
		ID: "inv-002", ProductoID: "prod-002", EmpresaID: empresaPrueba,
		SucursalID: sucursalPrueba, Existencia: decimal.NewFromInt(1),
	}

	in := ventaBase() // primera línea: 2 de prod-001, hay de sobra
	in.Productos = append(in.Productos, dto.VentaProductoRequest{
		Producto: "prod-002",
		Cantidad: decimal.NewFromInt(5), // solo hay 1
		Precio:   decimal.NewFromInt(40),
	})

	_, err := e.uc.CreateVenta(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrExistenciaInsuficiente)

	// La primera línea ya había descontado y registrado su salida; el
	// rollback debe deshacer también eso.
	assert.True(t, e.existencia().Equal(decimal.NewFromInt(10)))
	inv2 := e.store.inventarios[invKey("prod-002", empresaPrueba, sucursalPrueba)]
	assert.True(t, inv2.Existencia.Equal(decimal.NewFromInt(1)))
	assert.Empty(t, e.store.movimientos)
	assert.Empty(t, e.store.facturas)
	assert.Equal(t, int64(100), e.correlativoActual())
}

func TestCreateVenta_ExistenciaExacta(t *testing.T) {
	e := nuevoEscenario(t)
	in := ventaBase()
	in.Productos[0].Cantidad = decimal.NewFromInt(10) // exactamente lo que hay

	resp, err := e.uc.CreateVenta(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, e.existencia().IsZero(), "vender todo deja la existencia en cero, no en negativo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Conflictos de escritura y reintentos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateVenta_ReintentaTrasConflicto(t *testing.T) {
	e := nuevoEscenario(t)
	e.tx.conflictosCommit = 1 // el primer commit pierde la carrera

	resp, err := e.uc.CreateVenta(context.Background(), ventaBase())
	require.NoError(t, err)

	assert.Equal(t, 2, e.tx.transacciones, "un intento fallido + un reintento exitoso")
	assert.Equal(t, int64(101), resp.NoFactura)
	assert.Len(t, e.store.facturas, 1, "solo la factura del intento exitoso sobrevive")
	assert.True(t, e.existencia().Equal(decimal.NewFromInt(8)), "el descuento se aplica una sola vez")
}

func TestCreateVenta_ConflictosAgotanReintentos(t *testing.T) {
	e := nuevoEscenario(t)
	e.tx.conflictosCommit = 10 // más conflictos que intentos permitidos

	_, err := e.uc.CreateVenta(context.Background(), ventaBase())
	require.ErrorIs(t, err, domain.ErrConflictoEscritura)

	assert.Equal(t, 3, e.tx.transacciones, "el tope por defecto son 3 intentos")
	assert.Empty(t, e.store.facturas)
	assert.Equal(t, int64(100), e.correlativoActual())
}

func TestCreateVenta_SetMaxIntentos(t *testing.T) {
	e := nuevoEscenario(t)
	e.uc.SetMaxIntentos(5)
	e.tx.conflictosCommit = 4

	resp, err := e.uc.CreateVenta(context.Background(), ventaBase())
	require.NoError(t, err)
	assert.Equal(t, 5, e.tx.transacciones)
	assert.Equal(t, int64(101), resp.NoFactura)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateVenta_ConcurrenciaNumerosUnicos(t *testing.T) {
	e := nuevoEscenario(t)
	// Suficiente inventario para todas las ventas.
	e.store.inventarios[invKey(productoPrueba, empresaPrueba, sucursalPrueba)].Existencia = decimal.NewFromInt(100)

	const ventas = 20
	var wg sync.WaitGroup
	resultados := make(chan int64, ventas)
	errores := make(chan error, ventas)

	for i := 0; i < ventas; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in := ventaBase()
			in.Productos[0].Cantidad = decimal.NewFromInt(1)
			resp, err := e.uc.CreateVenta(context.Background(), in)
			if err != nil {
				errores <- err
				return
			}
			resultados <- resp.NoFactura
		}()
	}
	wg.Wait()
	close(resultados)
	close(errores)

	for err := range errores {
		t.Fatalf("venta concurrente falló: %v", err)
	}

	vistos := make(map[int64]bool)
	for no := range resultados {
		assert.False(t, vistos[no], "número de factura duplicado: %d", no)
		vistos[no] = true
		assert.GreaterOrEqual(t, no, int64(101))
		assert.LessOrEqual(t, no, int64(100+ventas))
	}
	require.Len(t, vistos, ventas)

	assert.Equal(t, int64(100+ventas), e.correlativoActual(),
		"el correlativo queda en el último número emitido")
	assert.True(t, e.existencia().Equal(decimal.NewFromInt(100-ventas)))
	assert.Len(t, e.store.facturas, ventas)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetVenta_DevuelveDetalleCompleto(t *testing.T) {
	e := nuevoEscenario(t)
	creada, err := e.uc.CreateVenta(context.Background(), ventaBase())
	require.NoError(t, err)

	leida, err := e.uc.GetVenta(context.Background(), creada.ID)
	require.NoError(t, err)
	assert.Equal(t, creada.NoFactura, leida.NoFactura)
	assert.Len(t, leida.Detalles, 1)
}

func TestGetVenta_NoExiste(t *testing.T) {
	e := nuevoEscenario(t)
	_, err := e.uc.GetVenta(context.Background(), "fac-fantasma")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
