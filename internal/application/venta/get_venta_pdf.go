package venta

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturacion-api/internal/domain"
	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// VentaPDFUseCase arma el documento imprimible de una factura ya emitida.
type VentaPDFUseCase struct {
	facturas   repository.FacturaRepository
	empresas   repository.EmpresaRepository
	sucursales repository.SucursalRepository
	configs    repository.ConfigContableRepository
	productos  repository.ProductoRepository
	generator  FacturaPDFGenerator
}

func NewVentaPDFUseCase(
	facturas repository.FacturaRepository,
	empresas repository.EmpresaRepository,
	sucursales repository.SucursalRepository,
	configs repository.ConfigContableRepository,
	productos repository.ProductoRepository,
	generator FacturaPDFGenerator,
) *VentaPDFUseCase {
	return &VentaPDFUseCase{
		facturas:   facturas,
		empresas:   empresas,
		sucursales: sucursales,
		configs:    configs,
		productos:  productos,
		generator:  generator,
	}
}

// GetVentaPDF resuelve factura, emisor y líneas con nombre de producto y
// devuelve los bytes del PDF.
func (uc *VentaPDFUseCase) GetVentaPDF(ctx context.Context, facturaID string) ([]byte, error) {
	factura, err := uc.facturas.GetByID(ctx, facturaID)
	if err != nil {
		return nil, err
	}
	if factura == nil {
		return nil, domain.ErrNotFound
	}

	empresa, err := uc.empresas.GetByID(ctx, factura.EmpresaID)
	if err != nil {
		return nil, err
	}
	sucursal, err := uc.sucursales.GetByID(ctx, factura.SucursalID)
	if err != nil {
		return nil, err
	}
	cfg, err := uc.configs.GetBySucursal(ctx, factura.SucursalID)
	if err != nil {
		return nil, err
	}

	lineas, err := uc.facturas.GetDetallesByFacturaID(ctx, facturaID)
	if err != nil {
		return nil, err
	}
	detalles := make([]DetalleParaPDF, 0, len(lineas))
	for _, d := range lineas {
		nombre := d.ProductoID
		if p, err := uc.productos.GetByID(ctx, d.ProductoID); err != nil {
			return nil, err
		} else if p != nil {
			nombre = p.Nombre
		}
		detalles = append(detalles, DetalleParaPDF{
			NombreProducto: nombre,
			Cantidad:       d.Cantidad,
			Precio:         d.Precio,
			ISV:            d.ISV,
			DescuentoValor: d.DescuentoValor,
		})
	}

	pdf, err := uc.generator.GenerarFacturaPDF(ctx, factura, empresa, sucursal, cfg, detalles)
	if err != nil {
		return nil, fmt.Errorf("generar pdf factura %s: %w", facturaID, err)
	}
	return pdf, nil
}
