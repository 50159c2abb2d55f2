package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/hkxdv/pim-api/internal/application/inventory"
	"github.com/hkxdv/pim-api/internal/application/ports"
	"github.com/hkxdv/pim-api/internal/application/sales"
	"github.com/hkxdv/pim-api/internal/application/search"
	"github.com/hkxdv/pim-api/internal/application/usecase"
	infraai "github.com/hkxdv/pim-api/internal/infrastructure/ai"
	"github.com/hkxdv/pim-api/internal/infrastructure/cache"
	"github.com/hkxdv/pim-api/internal/infrastructure/postgres"
	"github.com/hkxdv/pim-api/internal/infrastructure/typesense"
	httpRouter "github.com/hkxdv/pim-api/internal/interfaces/http"
	"github.com/hkxdv/pim-api/pkg/config"
	"github.com/hkxdv/pim-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(cfg.App.Env, cfg.App.LogLevel)
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("search_driver", cfg.Search.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// El backend de búsqueda se resuelve una sola vez en el arranque.
	var remote ports.ProductSearcher
	if cfg.Search.Driver == search.DriverTypesense {
		remote = typesense.NewSearcher(cfg.Search.URL, cfg.Search.APIKey, cfg.Search.Collection)
	}
	searcher := search.Resolve(cfg.Search.Driver, postgres.NewLocalSearcher(productRepo), remote)

	if cfg.Cache.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, búsqueda sin cache")
		} else {
			ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
			searcher = cache.NewSearchCache(searcher, rdb, ttl, logger.ForComponent(log, "search-cache"))
		}
	}

	productUC := usecase.NewProductUseCase(productRepo, searcher)
	applyMovementUC := inventory.NewApplyMovementUseCase(txRunner)
	listMovementsUC := inventory.NewListMovementsUseCase(movementRepo)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner)
	saleQueryUC := sales.NewGetSaleUseCase(saleRepo)
	dashboardUC := usecase.NewDashboardUseCase(analyticsRepo)

	anthropicSvc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	assistantUC := usecase.NewAssistantUseCase(anthropicSvc, productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PIM API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		ApplyMovement: applyMovementUC,
		ListMovements: listMovementsUC,
		CreateSale:    createSaleUC,
		SaleQuery:     saleQueryUC,
		DashboardUC:   dashboardUC,
		AssistantUC:   assistantUC,
		AssistantRL:   httpRouter.NewRateLimiter(0.5, 3),
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
