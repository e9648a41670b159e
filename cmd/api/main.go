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

	appinv "github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/ledger"
	"github.com/jhoicas/kardex-api/internal/application/purchasing"
	"github.com/jhoicas/kardex-api/internal/application/transfer"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/kardex-api/internal/interfaces/http"
	"github.com/jhoicas/kardex-api/pkg/config"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	movRepo := postgres.NewMovementRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	orderRepo := postgres.NewProductionOrderRepository(pool)
	transferRepo := postgres.NewStockTransferRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := appinv.NewResolver()
	ledgerUC := ledger.NewUseCase(txRunner, movRepo, itemRepo, log)
	queryUC := appinv.NewQueryUseCase(movRepo, itemRepo)
	reconcileUC := appinv.NewReconcileUseCase(movRepo, itemRepo, warehouseRepo, log)
	purchaseUC := purchasing.NewPurchaseUseCase(txRunner, ledgerUC, resolver, purchaseRepo, warehouseRepo, log)
	productionUC := purchasing.NewProductionUseCase(txRunner, ledgerUC, resolver, orderRepo, warehouseRepo, log)
	transferUC := transfer.NewUseCase(txRunner, ledgerUC, resolver, itemRepo, warehouseRepo, transferRepo, log)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)

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
		Title:    cfg.App.Name,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:     ledgerUC,
		QueryUC:      queryUC,
		ReconcileUC:  reconcileUC,
		PurchaseUC:   purchaseUC,
		ProductionUC: productionUC,
		TransferUC:   transferUC,
		WarehouseUC:  warehouseUC,
		JWTSecret:    cfg.JWT.Secret,
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
