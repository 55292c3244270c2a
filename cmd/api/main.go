package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/ubicacion-qr/docs"
	"github.com/jhoicas/ubicacion-qr/internal/application/auth"
	"github.com/jhoicas/ubicacion-qr/internal/application/catalog"
	"github.com/jhoicas/ubicacion-qr/internal/domain/entity"
	"github.com/jhoicas/ubicacion-qr/internal/domain/location"
	"github.com/jhoicas/ubicacion-qr/internal/domain/repository"
	"github.com/jhoicas/ubicacion-qr/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/ubicacion-qr/internal/infrastructure/pdf"
	"github.com/jhoicas/ubicacion-qr/internal/infrastructure/postgres"
	"github.com/jhoicas/ubicacion-qr/internal/infrastructure/qrimage"
	"github.com/jhoicas/ubicacion-qr/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/ubicacion-qr/internal/interfaces/http"
	"github.com/jhoicas/ubicacion-qr/pkg/config"
	"github.com/jhoicas/ubicacion-qr/pkg/logger"
)

// @title           Ubicación QR API
// @version         1.0
// @description     Carga de hojas de inventario, búsqueda por producto, resolución de ubicaciones de canasta y códigos QR.
// @BasePath        /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	defaultFallback, err := location.Parse(cfg.Location.DefaultFallback)
	if err != nil {
		log.Fatal().Err(err).Msg("LOCATION_DEFAULT inválido")
	}

	ctx := context.Background()

	var (
		txRunner catalog.TxRunner
		records  repository.RecordRepository
		settings repository.SettingRepository
	)
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		txRunner = postgres.NewTxRunner(pool)
		records = postgres.NewRecordRepository(pool)
		settings = postgres.NewSettingRepository(pool)
		log.Info().Msg("almacenamiento: PostgreSQL")
	} else {
		store := memory.NewRecordStore()
		txRunner = memory.NewTxRunner(store)
		records = store
		settings = memory.NewSettingStore()
		log.Warn().Msg("sin base de datos configurada: la lista vive en memoria")
	}

	locationUC := catalog.NewLocationUseCase(settings, defaultFallback, log.Component("location"))
	catalogUC := catalog.NewCatalogUseCase(
		txRunner, records, locationUC,
		spreadsheet.NewParser(), infrapdf.NewMarotoLabelGenerator(),
		log.Component("catalog"),
	)
	qrUC := catalog.NewQRUseCase(qrimage.NewPNGEncoder(), cfg.QR.Size)
	authUC := auth.NewAuthUseCase(entity.Operator{
		Username:     cfg.Operator.Username,
		PasswordHash: cfg.Operator.PasswordHash,
		Role:         entity.RoleOperator,
	}, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.UploadMaxMB << 20,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ubicación QR API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:  catalogUC,
		LocationUC: locationUC,
		QRUC:       qrUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
		Log:        log.Component("router"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
