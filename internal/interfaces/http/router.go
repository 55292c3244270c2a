package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ubicacion-qr/internal/application/auth"
	"github.com/jhoicas/ubicacion-qr/internal/application/catalog"
	"github.com/jhoicas/ubicacion-qr/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC  *catalog.CatalogUseCase
	LocationUC *catalog.LocationUseCase
	QRUC       *catalog.QRUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
	Log        zerolog.Logger
}

// Router registra las rutas de la API.
// Las lecturas son públicas; las escrituras exigen token de operador cuando JWTSecret no está vacío.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Escrituras
	var guard []fiber.Handler
	if deps.JWTSecret != "" {
		guard = []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleOperator)}
	} else {
		deps.Log.Warn().Msg("JWT_SECRET vacío: las rutas de escritura quedan sin autenticación")
	}
	write := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guard...), h)
	}

	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogGroup := api.Group("/catalog")
	catalogGroup.Get("/records", catalogHandler.List)
	catalogGroup.Get("/labels.pdf", catalogHandler.Labels)
	catalogGroup.Post("/upload", write(catalogHandler.Upload)...)
	catalogGroup.Post("/rows", write(catalogHandler.IngestRows)...)

	locationHandler := NewLocationHandler(deps.LocationUC)
	api.Get("/locations/resolve", locationHandler.Resolve)
	api.Get("/settings/fallback-location", locationHandler.GetFallback)
	api.Put("/settings/fallback-location", write(locationHandler.SetFallback)...)

	qrHandler := NewQRHandler(deps.QRUC)
	api.Get("/qr/:kind", qrHandler.Render)
}
