package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oriflame-store/internal/application/auth"
	"github.com/jhoicas/oriflame-store/internal/application/usecase"
	"github.com/jhoicas/oriflame-store/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *usecase.ProductUseCase
	OrderUC       *usecase.OrderUseCase
	MaintenanceUC *usecase.MaintenanceUseCase
	JWTSecret     string
}

// AppConfig configuración de Fiber para la API. Immutable es obligatorio: los strings
// del body terminan en las tablas en memoria y no pueden apuntar al buffer de fasthttp.
func AppConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:      appName,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authn := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleCustomer)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Products: lectura pública, escritura solo admin
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", authn, adminOnly, productHandler.Create)
	products.Put("/:id", authn, adminOnly, productHandler.Update)
	products.Delete("/:id", authn, adminOnly, productHandler.Delete)

	// Orders (protegido)
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := api.Group("/orders", authn)
	orders.Post("/", anyRole, orderHandler.Create)
	orders.Get("/me", anyRole, orderHandler.ListMine)
	orders.Get("/:id/receipt", anyRole, orderHandler.Receipt)
	orders.Get("/", adminOnly, orderHandler.ListAll)
	orders.Patch("/:id/status", adminOnly, orderHandler.UpdateStatus)

	// Users (admin)
	userHandler := NewUserHandler(deps.UserUC)
	api.Get("/users", authn, adminOnly, userHandler.List)

	// Mantenimiento (admin)
	adminHandler := NewAdminHandler(deps.MaintenanceUC)
	admin := api.Group("/admin", authn, adminOnly)
	admin.Get("/stats", adminHandler.Stats)
	admin.Post("/reset", adminHandler.Reset)
	admin.Get("/remote", adminHandler.RemoteStatus)
	admin.Put("/remote", adminHandler.SetRemote)
}
