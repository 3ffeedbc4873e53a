package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturacion-api/internal/application/auth"
	"github.com/jhoicas/Facturacion-api/internal/application/inventario"
	"github.com/jhoicas/Facturacion-api/internal/application/venta"
	"github.com/jhoicas/Facturacion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateVenta      *venta.CreateVentaUseCase
	VentaPDF         *venta.VentaPDFUseCase
	RegistrarEntrada *inventario.RegistrarEntradaUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ventas (protegido)
	ventas := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.CreateVenta, deps.VentaPDF)
	ventas.Post("/", ventaHandler.Create)
	ventas.Get("/", ventaHandler.List)
	ventas.Get("/:id", ventaHandler.GetByID)
	ventas.Get("/:id/pdf", ventaHandler.GetPDF)

	// Entradas de inventario (protegido; solo admin y contador)
	invGroup := protected.Group("/inventario", RequireRole(entity.RolAdmin, entity.RolContador))
	inventarioHandler := NewInventarioHandler(deps.RegistrarEntrada)
	invGroup.Post("/entradas", inventarioHandler.RegistrarEntrada)
}
