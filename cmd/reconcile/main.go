// Comando reconcile: reconstruye el stock de los agregados desde el libro de
// movimientos (una pasada, pensado para cron o corrida manual tras un
// incidente). Los ítems con error no detienen el barrido; se reportan al
// final y el proceso termina en 0 igualmente.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	appinv "github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/infrastructure/postgres"
	"github.com/jhoicas/kardex-api/pkg/config"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

func main() {
	itemID := flag.String("item", "", "reconciliar solo este ítem (por defecto: todos)")
	warehouseID := flag.String("warehouse-usage", "", "re-sumar la ocupación de esta bodega")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	movRepo := postgres.NewMovementRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	uc := appinv.NewReconcileUseCase(movRepo, itemRepo, warehouseRepo, log)

	switch {
	case *itemID != "":
		item, err := uc.RecalculateOne(*itemID)
		if err != nil {
			log.Fatal().Err(err).Str("item_id", *itemID).Msg("reconciliación de ítem")
		}
		printJSON(map[string]any{
			"item_id":       item.ID,
			"current_stock": item.CurrentStock,
			"status":        item.Status,
		})
	case *warehouseID != "":
		w, err := uc.RecalculateWarehouseUsage(*warehouseID)
		if err != nil {
			log.Fatal().Err(err).Str("warehouse_id", *warehouseID).Msg("re-suma de ocupación")
		}
		printJSON(map[string]any{
			"warehouse_id":  w.ID,
			"current_usage": w.CurrentUsage,
		})
	default:
		result, err := uc.RecalculateAll()
		if err != nil {
			log.Fatal().Err(err).Msg("reconciliación batch")
		}
		printJSON(map[string]any{
			"total":   result.Total,
			"updated": result.Updated,
			"errors":  result.Errors,
			"detail":  result.ErrorsList,
		})
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
