package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-portal/internal/application/auth"
	"github.com/jhoicas/inventario-portal/internal/application/inventory"
	"github.com/jhoicas/inventario-portal/internal/application/usecase"
	"github.com/jhoicas/inventario-portal/internal/domain/entity"
	"github.com/jhoicas/inventario-portal/pkg/config"
	"github.com/jhoicas/inventario-portal/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ProductUC *usecase.ProductUseCase
	RequestUC *inventory.StockRequestUseCase
	JWTSecret string
	RateLimit config.RateLimitConfig
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	authMW := AuthMiddleware(deps.JWTSecret)
	anyRole := RequireRole(string(entity.RoleStaff), string(entity.RoleAdmin))
	adminOnly := RequireRole(string(entity.RoleAdmin))
	staffOnly := RequireRole(string(entity.RoleStaff))

	// Auth (público salvo /me, con límite por IP)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log.Named("auth"))
	throttle := RateLimitByIP(deps.RateLimit.AuthRPS, deps.RateLimit.AuthBurst)
	authGroup.Post("/register", throttle, authHandler.Register)
	authGroup.Post("/login", throttle, authHandler.Login)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Products: lectura para cualquier rol, escritura solo admin
	products := api.Group("/products", authMW)
	productHandler := NewProductHandler(deps.ProductUC, log.Named("products"))
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Requests: staff crea, admin resuelve
	requests := api.Group("/requests", authMW)
	requestHandler := NewRequestHandler(deps.RequestUC, log.Named("requests"))
	requests.Get("/", adminOnly, requestHandler.ListAll)
	requests.Get("/my", anyRole, requestHandler.ListMine)
	requests.Post("/stockin", staffOnly, requestHandler.CreateStockIn)
	requests.Post("/stockout", staffOnly, requestHandler.CreateStockOut)
	requests.Put("/:id", anyRole, requestHandler.Update)
	requests.Patch("/:id/status", adminOnly, requestHandler.UpdateStatus)
	requests.Delete("/:id", anyRole, requestHandler.Delete)
}
