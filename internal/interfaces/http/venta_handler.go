package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/venta"
	"github.com/jhoicas/Facturacion-api/internal/domain"
)

// VentaHandler maneja las peticiones HTTP del flujo de venta (protegido).
type VentaHandler struct {
	createUC *venta.CreateVentaUseCase
	pdfUC    *venta.VentaPDFUseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(createUC *venta.CreateVentaUseCase, pdfUC *venta.VentaPDFUseCase) *VentaHandler {
	return &VentaHandler{createUC: createUC, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Emitir factura de venta
// @Description  Asigna el correlativo dentro del rango autorizado, persiste
//               cabecera y detalles, descuenta inventario y avanza el
//               correlativo, todo en una transacción.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearVentaRequest  true  "sucursal, usuario, empresa, totales, Productos"
// @Success      201   {object}  dto.FacturaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *VentaHandler) Create(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	userID := GetUserID(c)
	if empresaID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CrearVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// El emisor y la empresa salen del token, nunca del body.
	in.Usuario = userID
	in.Empresa = empresaID

	factura, err := h.createUC.CreateVenta(c.Context(), in)
	if err != nil {
		return ventaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(factura)
}

// ventaError traduce los errores del flujo de venta a códigos HTTP.
func ventaError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrCampoRequerido), errors.Is(err, domain.ErrFacturaVacia), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUsuarioNoAutorizado):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "USUARIO_NO_AUTORIZADO", Message: "usuario bloqueado, sin confirmar o inexistente"})
	case errors.Is(err, domain.ErrProductoNoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCTO_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInventarioNoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "INVENTARIO_NOT_FOUND", Message: "no existe registro de inventario para el producto en la sucursal"})
	case errors.Is(err, domain.ErrConfiguracionContable):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CONFIG_CONTABLE", Message: "la sucursal no tiene configuración contable vigente"})
	case errors.Is(err, domain.ErrFechaLimiteExcedida):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "FECHA_LIMITE", Message: "la fecha límite de emisión del CAI ya pasó"})
	case errors.Is(err, domain.ErrRangoAgotado):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "RANGO_AGOTADO", Message: "el rango de facturación autorizado está agotado"})
	case errors.Is(err, domain.ErrCorrelativoInvalido):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CORRELATIVO_INVALIDO", Message: "la configuración contable de la sucursal es inconsistente"})
	case errors.Is(err, domain.ErrExistenciaInsuficiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EXISTENCIA_INSUFICIENTE", Message: "existencia insuficiente para uno de los productos"})
	case errors.Is(err, domain.ErrConflictoEscritura):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICTO", Message: "demasiadas ventas concurrentes, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// GetByID godoc
// @Summary      Obtener factura con detalle
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.FacturaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *VentaHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	factura, err := h.createUC.GetVenta(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(factura)
}

// List godoc
// @Summary      Listar facturas de una sucursal
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        sucursal  query  string  true   "ID de la sucursal"
// @Param        limit     query  int     false  "máx resultados (default 20)"
// @Param        offset    query  int     false  "desplazamiento"
// @Success      200  {array}   dto.FacturaResponse
// @Router       /api/ventas [get]
func (h *VentaHandler) List(c *fiber.Ctx) error {
	sucursalID := c.Query("sucursal")
	if sucursalID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sucursal requerida"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	facturas, err := h.createUC.ListVentas(c.Context(), sucursalID, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(facturas)
}

// GetPDF godoc
// @Summary      Descargar la representación impresa de una factura
// @Tags         ventas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/pdf [get]
func (h *VentaHandler) GetPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	pdfBytes, err := h.pdfUC.GetVentaPDF(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="factura-%s.pdf"`, id))
	return c.Send(pdfBytes)
}
