package venta

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica transaccional (snapshot + rollback)
// ──────────────────────────────────────────────────────────────────────────────

// memStore guarda todo el estado que tocaría la base de datos. El fake de
// TxRunner toma un snapshot antes de cada callback y lo restaura si el
// callback falla, emulando el rollback de la transacción real.
type memStore struct {
	sucursales  map[string]*entity.Sucursal
	configs     map[string]*entity.ConfigContable // key: sucursalID
	usuarios    map[string]*entity.Usuario
	productos   map[string]*entity.Producto
	facturas    map[string]*entity.Factura
	detalles    []*entity.DetalleFactura
	inventarios map[string]*entity.Inventario // key: producto|empresa|sucursal
	movimientos []*entity.InventarioMovimiento
}

func newMemStore() *memStore {
	return &memStore{
		sucursales:  make(map[string]*entity.Sucursal),
		configs:     make(map[string]*entity.ConfigContable),
		usuarios:    make(map[string]*entity.Usuario),
		productos:   make(map[string]*entity.Producto),
		facturas:    make(map[string]*entity.Factura),
		inventarios: make(map[string]*entity.Inventario),
	}
}

func invKey(productoID, empresaID, sucursalID string) string {
	return productoID + "|" + empresaID + "|" + sucursalID
}

// clone copia el estado completo (structs por valor).
func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.sucursales {
		cp := *v
		c.sucursales[k] = &cp
	}
	for k, v := range s.configs {
		cp := *v
		c.configs[k] = &cp
	}
	for k, v := range s.usuarios {
		cp := *v
		c.usuarios[k] = &cp
	}
	for k, v := range s.productos {
		cp := *v
		c.productos[k] = &cp
	}
	for k, v := range s.facturas {
		cp := *v
		c.facturas[k] = &cp
	}
	for k, v := range s.inventarios {
		cp := *v
		c.inventarios[k] = &cp
	}
	c.detalles = make([]*entity.DetalleFactura, len(s.detalles))
	for i, d := range s.detalles {
		cp := *d
		c.detalles[i] = &cp
	}
	c.movimientos = make([]*entity.InventarioMovimiento, len(s.movimientos))
	for i, m := range s.movimientos {
		cp := *m
		c.movimientos[i] = &cp
	}
	return c
}

// restore reemplaza el estado con el snapshot dado.
func (s *memStore) restore(snap *memStore) {
	s.sucursales = snap.sucursales
	s.configs = snap.configs
	s.usuarios = snap.usuarios
	s.productos = snap.productos
	s.facturas = snap.facturas
	s.detalles = snap.detalles
	s.inventarios = snap.inventarios
	s.movimientos = snap.movimientos
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner fake
// ──────────────────────────────────────────────────────────────────────────────

// fakeTxRunner serializa las "transacciones" con un mutex (el equivalente del
// FOR UPDATE sobre la fila de configuración) y restaura el snapshot ante
// cualquier error del callback. conflictosCommit inyecta conflictos de
// escritura al confirmar para probar los reintentos del caso de uso.
type fakeTxRunner struct {
	mu               sync.Mutex
	store            *memStore
	conflictosCommit int
	transacciones    int // total de callbacks ejecutados
}

func newFakeTxRunner(store *memStore) *fakeTxRunner {
	return &fakeTxRunner{store: store}
}

func (r *fakeTxRunner) RunVenta(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transacciones++

	snap := r.store.clone()
	repos := Repos{
		Sucursales:  &fakeSucursalRepo{s: r.store},
		Configs:     &fakeConfigRepo{s: r.store},
		Usuarios:    &fakeUsuarioRepo{s: r.store},
		Productos:   &fakeProductoRepo{s: r.store},
		Facturas:    &fakeFacturaRepo{s: r.store},
		Inventarios: &fakeInventarioRepo{s: r.store},
		Movimientos: &fakeMovimientoRepo{s: r.store},
	}
	if err := fn(ctx, repos); err != nil {
		r.store.restore(snap)
		return err
	}
	if r.conflictosCommit > 0 {
		r.conflictosCommit--
		r.store.restore(snap)
		return fmt.Errorf("%w: colisión simulada al confirmar", domain.ErrConflictoEscritura)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios fake
// ──────────────────────────────────────────────────────────────────────────────

type fakeSucursalRepo struct{ s *memStore }

func (r *fakeSucursalRepo) Create(_ context.Context, su *entity.Sucursal) error {
	r.s.sucursales[su.ID] = su
	return nil
}

func (r *fakeSucursalRepo) GetByID(_ context.Context, id string) (*entity.Sucursal, error) {
	return r.s.sucursales[id], nil
}

func (r *fakeSucursalRepo) GetActivaByID(_ context.Context, id string) (*entity.Sucursal, error) {
	su := r.s.sucursales[id]
	if su == nil || !su.Activa {
		return nil, nil
	}
	return su, nil
}

func (r *fakeSucursalRepo) ListByEmpresa(_ context.Context, empresaID string) ([]*entity.Sucursal, error) {
	var out []*entity.Sucursal
	for _, su := range r.s.sucursales {
		if su.EmpresaID == empresaID {
			out = append(out, su)
		}
	}
	return out, nil
}

type fakeConfigRepo struct{ s *memStore }

func (r *fakeConfigRepo) Create(_ context.Context, cfg *entity.ConfigContable) error {
	r.s.configs[cfg.SucursalID] = cfg
	return nil
}

func (r *fakeConfigRepo) GetBySucursal(_ context.Context, sucursalID string) (*entity.ConfigContable, error) {
	return r.s.configs[sucursalID], nil
}

func (r *fakeConfigRepo) GetBySucursalForUpdate(_ context.Context, sucursalID string) (*entity.ConfigContable, error) {
	return r.s.configs[sucursalID], nil
}

func (r *fakeConfigRepo) ActualizarCorrelativo(_ context.Context, id string, correlativo int64) error {
	for _, cfg := range r.s.configs {
		if cfg.ID == id {
			cfg.CorrelativoActual = correlativo
			return nil
		}
	}
	return fmt.Errorf("config %s no encontrada", id)
}

type fakeUsuarioRepo struct{ s *memStore }

func (r *fakeUsuarioRepo) Create(_ context.Context, u *entity.Usuario) error {
	r.s.usuarios[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	return r.s.usuarios[id], nil
}

func (r *fakeUsuarioRepo) GetHabilitadoByID(_ context.Context, id string) (*entity.Usuario, error) {
	u := r.s.usuarios[id]
	if u == nil || u.Blocked || !u.Confirmed {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUsuarioRepo) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	for _, u := range r.s.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUsuarioRepo) Update(_ context.Context, u *entity.Usuario) error {
	r.s.usuarios[u.ID] = u
	return nil
}

type fakeProductoRepo struct{ s *memStore }

func (r *fakeProductoRepo) Create(_ context.Context, p *entity.Producto) error {
	r.s.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) GetByID(_ context.Context, id string) (*entity.Producto, error) {
	return r.s.productos[id], nil
}

func (r *fakeProductoRepo) GetActivoByID(_ context.Context, id string) (*entity.Producto, error) {
	p := r.s.productos[id]
	if p == nil || !p.Activo {
		return nil, nil
	}
	return p, nil
}

func (r *fakeProductoRepo) ListByEmpresa(_ context.Context, empresaID string, _, _ int) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range r.s.productos {
		if p.EmpresaID == empresaID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductoRepo) Update(_ context.Context, p *entity.Producto) error {
	r.s.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) ActualizarPrecioCompra(_ context.Context, id string, precioCompra decimal.Decimal) error {
	p := r.s.productos[id]
	if p == nil {
		return domain.ErrProductoNoEncontrado
	}
	p.PrecioCompra = precioCompra
	return nil
}

type fakeFacturaRepo struct{ s *memStore }

func (r *fakeFacturaRepo) Create(_ context.Context, f *entity.Factura) error {
	for _, existing := range r.s.facturas {
		if existing.NoFactura == f.NoFactura && existing.CodigoNumFactura == f.CodigoNumFactura {
			// Mismo comportamiento que el unique de la tabla real.
			return fmt.Errorf("%w: numero %d/%s ya emitido", domain.ErrConflictoEscritura, f.NoFactura, f.CodigoNumFactura)
		}
	}
	r.s.facturas[f.ID] = f
	return nil
}

func (r *fakeFacturaRepo) CreateDetalle(_ context.Context, d *entity.DetalleFactura) error {
	r.s.detalles = append(r.s.detalles, d)
	return nil
}

func (r *fakeFacturaRepo) ExisteNumero(_ context.Context, noFactura int64, codigoNumFactura string) (bool, error) {
	for _, f := range r.s.facturas {
		if f.NoFactura == noFactura && f.CodigoNumFactura == codigoNumFactura {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFacturaRepo) GetByID(_ context.Context, id string) (*entity.Factura, error) {
	return r.s.facturas[id], nil
}

func (r *fakeFacturaRepo) GetDetallesByFacturaID(_ context.Context, facturaID string) ([]*entity.DetalleFactura, error) {
	var out []*entity.DetalleFactura
	for _, d := range r.s.detalles {
		if d.FacturaID == facturaID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeFacturaRepo) ListBySucursal(_ context.Context, sucursalID string, _, _ int) ([]*entity.Factura, error) {
	var out []*entity.Factura
	for _, f := range r.s.facturas {
		if f.SucursalID == sucursalID {
			out = append(out, f)
		}
	}
	return out, nil
}

type fakeInventarioRepo struct{ s *memStore }

func (r *fakeInventarioRepo) Get(_ context.Context, productoID, empresaID, sucursalID string) (*entity.Inventario, error) {
	return r.s.inventarios[invKey(productoID, empresaID, sucursalID)], nil
}

func (r *fakeInventarioRepo) GetForUpdate(_ context.Context, productoID, empresaID, sucursalID string) (*entity.Inventario, error) {
	return r.s.inventarios[invKey(productoID, empresaID, sucursalID)], nil
}

func (r *fakeInventarioRepo) Create(_ context.Context, inv *entity.Inventario) error {
	r.s.inventarios[invKey(inv.ProductoID, inv.EmpresaID, inv.SucursalID)] = inv
	return nil
}

func (r *fakeInventarioRepo) ActualizarExistencia(_ context.Context, id string, existencia decimal.Decimal) error {
	for _, inv := range r.s.inventarios {
		if inv.ID == id {
			inv.Existencia = existencia
			return nil
		}
	}
	return domain.ErrInventarioNoEncontrado
}

type fakeMovimientoRepo struct{ s *memStore }

func (r *fakeMovimientoRepo) Create(_ context.Context, m *entity.InventarioMovimiento) error {
	r.s.movimientos = append(r.s.movimientos, m)
	return nil
}

func (r *fakeMovimientoRepo) ListBySucursal(_ context.Context, sucursalID string, _, _ *time.Time, _, _ int) ([]*entity.InventarioMovimiento, error) {
	var out []*entity.InventarioMovimiento
	for _, m := range r.s.movimientos {
		if m.SucursalID == sucursalID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovimientoRepo) ListByProducto(_ context.Context, productoID string, _, _ *time.Time, _, _ int) ([]*entity.InventarioMovimiento, error) {
	var out []*entity.InventarioMovimiento
	for _, m := range r.s.movimientos {
		if m.ProductoID == productoID {
			out = append(out, m)
		}
	}
	return out, nil
}
