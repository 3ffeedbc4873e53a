// Package pdf implementa la representación impresa de la factura de venta
// bajo el régimen de facturación de Honduras (SAR): CAI, rango autorizado
// y fecha límite de emisión visibles en el documento.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre empresa + RTN  │  N° Factura + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Sucursal / Dirección / Tel / Email                  │
//	│  CLIENTE: Nombre + RTN                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | ISV | Desc | Importe   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / ISV 15% / ISV 18% / Exento / TOTAL      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER SAR: CAI + rango autorizado + fecha límite + leyenda │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturacion-api/internal/application/venta"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ venta.FacturaPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa venta.FacturaPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerarFacturaPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerarFacturaPDF(
	_ context.Context,
	factura *entity.Factura,
	empresa *entity.Empresa,
	sucursal *entity.Sucursal,
	cfg *entity.ConfigContable,
	detalles []venta.DetalleParaPDF,
) ([]byte, error) {
	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de Venta", true)
	if empresa != nil {
		builder = builder.WithAuthor(empresa.Nombre, true)
	}

	m := maroto.New(builder.Build())

	m.AddRows(headerRow(factura, empresa))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(empresa, sucursal))
	m.AddRows(clienteRow(factura))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(detalles) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(factura)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(sarFooterRows(factura, cfg)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la empresa + RTN (izq) y número de factura + fecha (der).
func headerRow(factura *entity.Factura, empresa *entity.Empresa) core.Row {
	nombre, rtn := "—", "—"
	if empresa != nil {
		nombre, rtn = empresa.Nombre, empresa.RTN
	}
	numFac := numeroCompleto(factura)
	fecha := factura.Fecha.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(nombre, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RTN: "+rtn, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(numFac, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha de emisión: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// emisorRow: sucursal emisora y datos de contacto de la empresa.
func emisorRow(empresa *entity.Empresa, sucursal *entity.Sucursal) core.Row {
	nombreSucursal, direccion := "—", "—"
	if sucursal != nil {
		nombreSucursal = sucursal.Nombre
		direccion = nonEmpty(sucursal.Direccion, "—")
	}
	telefono, email := "—", "—"
	if empresa != nil {
		telefono = nonEmpty(empresa.Telefono, "—")
		email = nonEmpty(empresa.Email, "—")
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SUCURSAL EMISORA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Dirección: %s   |   Tel: %s   |   Email: %s",
				nombreSucursal, direccion, telefono, email,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// clienteRow: datos del cliente. Consumidor final si no trae nombre ni RTN.
func clienteRow(factura *entity.Factura) core.Row {
	nombre := nonEmpty(factura.NombreCliente, "Consumidor Final")
	rtn := nonEmpty(factura.RTNCliente, "—")
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nombre, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("RTN: "+rtn, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de detalles.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("ISV%", 1, align.Center),
		h("Desc.", 1, align.Right),
		h("Importe", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea de detalle.
func tableDetailRows(detalles []venta.DetalleParaPDF) []core.Row {
	cien := decimal.NewFromInt(100)
	result := make([]core.Row, 0, len(detalles))
	for _, d := range detalles {
		importe := d.Cantidad.Mul(d.Precio).Sub(d.DescuentoValor)
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				d.Cantidad.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				d.NombreProducto,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				lempiras(d.Precio),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				d.ISV.Mul(cien).StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				lempiras(d.DescuentoValor),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				lempiras(importe),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRows: bloque de totales fiscales alineado a la derecha. Las líneas
// exentas/exoneradas solo aparecen cuando tienen valor.
func totalsRows(factura *entity.Factura) []core.Row {
	type par struct {
		label string
		value decimal.Decimal
	}
	pares := []par{
		{"Subtotal:", factura.Subtotal},
		{"Descuentos y rebajas:", factura.TotalDescuento},
		{"ISV 15%:", factura.TotalImpuestoQ},
		{"ISV 18%:", factura.TotalImpuestoD},
	}
	if !factura.TotalExento.IsZero() {
		pares = append(pares, par{"Importe exento:", factura.TotalExento})
	}
	if !factura.TotalExonerado.IsZero() {
		pares = append(pares, par{"Importe exonerado:", factura.TotalExonerado})
	}

	rows := make([]core.Row, 0, len(pares)+1)
	for _, p := range pares {
		rows = append(rows, row.New(5).Add(
			col.New(6),
			col.New(3).Add(text.New(p.label, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			})),
			col.New(3).Add(text.New(lempiras(p.value), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			})),
		))
	}
	rows = append(rows, row.New(8).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL A PAGAR:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 1,
		})),
		col.New(3).Add(text.New(lempiras(factura.Total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 1,
		})),
	))
	return rows
}

// sarFooterRows: CAI, rango autorizado, fecha límite y leyendas obligatorias.
func sarFooterRows(factura *entity.Factura, cfg *entity.ConfigContable) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("DATOS DE AUTORIZACIÓN (SAR)", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New("CAI: "+factura.CAI, props.Text{Size: 8, Top: 1, Left: 2}),
		)),
	}

	if cfg != nil {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Rango autorizado: del %s al %s",
				formatoNumero(cfg.CodigoNumFactura, cfg.RangoInicial),
				formatoNumero(cfg.CodigoNumFactura, cfg.RangoFinal),
			), props.Text{Size: 8, Top: 1, Left: 2}),
		)))
	}
	rows = append(rows, row.New(5).Add(col.New(12).Add(
		text.New("Fecha límite de emisión: "+factura.FechaLimite.Format("02/01/2006"),
			props.Text{Size: 8, Top: 1, Left: 2}),
	)))

	if factura.NoCompraExenta != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("N° orden de compra exenta: "+factura.NoCompraExenta,
				props.Text{Size: 8, Top: 1, Left: 2}),
		)))
	}
	if factura.NoConstRegExonerado != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("N° constancia registro exonerado: "+factura.NoConstRegExonerado,
				props.Text{Size: 8, Top: 1, Left: 2}),
		)))
	}
	if factura.NoSAG != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("N° registro SAG: "+factura.NoSAG,
				props.Text{Size: 8, Top: 1, Left: 2}),
		)))
	}

	rows = append(rows, row.New(10).Add(col.New(12).Add(
		text.New("La factura es beneficio de todos. ¡Exíjala!", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center,
			Color: colorPrimary, Top: 3,
		}),
	)))
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Original: Cliente  |  Copia: Obligado tributario emisor. "+
				"Conserve este documento como soporte fiscal.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// numeroCompleto arma el número impreso: serie + correlativo con ceros a la
// izquierda (ej: "000-001-01-00000101").
func numeroCompleto(f *entity.Factura) string {
	return formatoNumero(f.CodigoNumFactura, f.NoFactura)
}

func formatoNumero(codigo string, n int64) string {
	if codigo == "" {
		return fmt.Sprintf("%08d", n)
	}
	return fmt.Sprintf("%s-%08d", codigo, n)
}

// lempiras formatea un monto con el símbolo de Lempira y dos decimales.
func lempiras(d decimal.Decimal) string {
	return "L " + d.StringFixed(2)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
