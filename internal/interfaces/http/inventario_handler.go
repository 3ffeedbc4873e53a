package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
	"github.com/jhoicas/Facturacion-api/internal/application/inventario"
	"github.com/jhoicas/Facturacion-api/internal/domain"
)

// InventarioHandler maneja las peticiones HTTP de inventario (protegido).
type InventarioHandler struct {
	entradaUC *inventario.RegistrarEntradaUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(entradaUC *inventario.RegistrarEntradaUseCase) *InventarioHandler {
	return &InventarioHandler{entradaUC: entradaUC}
}

// RegistrarEntrada godoc
// @Summary      Registrar entrada de inventario
// @Description  Suma existencia, recalcula el costo promedio ponderado del
//               producto y guarda el movimiento ENTRADA.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarEntradaRequest  true  "producto, sucursal, cantidad, costoUnitario"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventario/entradas [post]
func (h *InventarioHandler) RegistrarEntrada(c *fiber.Ctx) error {
	empresaID := GetEmpresaID(c)
	userID := GetUserID(c)
	if empresaID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegistrarEntradaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.entradaUC.RegistrarEntrada(c.Context(), empresaID, userID, in); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		case errors.Is(err, domain.ErrProductoNoEncontrado):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCTO_NOT_FOUND", Message: "producto no encontrado o inactivo"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el producto pertenece a otra empresa"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "entrada registrada"})
}
