package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
)

// Precedencia 1: el producto del catálogo manda sobre el match por nombre.
func TestResolveOrCreate_PrefiereVinculoDeCatalogo(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.ProductRepo().Create(&entity.Product{
		ID: "p1", Name: "Azúcar Morena", SKU: "AZU-001", Unit: "kg",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	pid := "p1"
	require.NoError(t, store.ItemRepo().Create(&entity.InventoryItem{
		ID: "i1", ProductID: &pid, WarehouseID: "w1", Name: "Azúcar Morena",
		Code: "AZU-001", Status: entity.ItemStatusActive,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	// Nombre con tildes y espacios distintos: debe resolver al mismo ítem.
	item, err := appinv.NewResolver().ResolveOrCreate(store.ItemRepo(), store.ProductRepo(), appinv.ResolveInput{
		Name:        "azucar  morena",
		WarehouseID: "w1",
	})
	require.NoError(t, err)
	assert.Equal(t, "i1", item.ID)
}

// Precedencia 2: ítem existente por (nombre normalizado, bodega), sin catálogo.
func TestResolveOrCreate_ReusaItemPorNombreEnLaBodega(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.ItemRepo().Create(&entity.InventoryItem{
		ID: "i1", WarehouseID: "w1", Name: "Caja Corrugada",
		Code: "ITM-CAJA", Status: entity.ItemStatusActive,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	item, err := appinv.NewResolver().ResolveOrCreate(store.ItemRepo(), store.ProductRepo(), appinv.ResolveInput{
		Name:        "CAJA CORRUGADA",
		WarehouseID: "w1",
	})
	require.NoError(t, err)
	assert.Equal(t, "i1", item.ID, "mismo nombre normalizado en la misma bodega no crea fila nueva")
}

// Precedencia 3: creación perezosa cuando nada coincide.
func TestResolveOrCreate_CreaPerezosamente(t *testing.T) {
	store := memory.NewStore()

	item, err := appinv.NewResolver().ResolveOrCreate(store.ItemRepo(), store.ProductRepo(), appinv.ResolveInput{
		Name:         "Etiqueta Adhesiva",
		WarehouseID:  "w2",
		MinimumStock: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID)
	assert.Nil(t, item.ProductID)
	assert.Equal(t, "w2", item.WarehouseID)
	assert.True(t, item.CurrentStock.IsZero())
	assert.Equal(t, entity.ItemStatusOutOfStock, item.Status)
	assert.Contains(t, item.Code, "ITM-")
}

// La creación perezosa hereda el SKU y el vínculo cuando el catálogo conoce el nombre.
func TestResolveOrCreate_CreaVinculadoAlCatalogo(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.ProductRepo().Create(&entity.Product{
		ID: "p9", Name: "Café Tostado", SKU: "CAF-900", Unit: "kg",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	item, err := appinv.NewResolver().ResolveOrCreate(store.ItemRepo(), store.ProductRepo(), appinv.ResolveInput{
		Name:        "cafe tostado",
		WarehouseID: "w1",
	})
	require.NoError(t, err)

	require.NotNil(t, item.ProductID)
	assert.Equal(t, "p9", *item.ProductID)
	assert.Equal(t, "CAF-900", item.Code)
}

// El mismo nombre en otra bodega es otro agregado: el stock es por bodega.
func TestResolveOrCreate_BodegasDistintas_ItemsDistintos(t *testing.T) {
	store := memory.NewStore()
	resolver := appinv.NewResolver()

	a, err := resolver.ResolveOrCreate(store.ItemRepo(), store.ProductRepo(), appinv.ResolveInput{
		Name: "Pegante", WarehouseID: "w1",
	})
	require.NoError(t, err)
	b, err := resolver.ResolveOrCreate(store.ItemRepo(), store.ProductRepo(), appinv.ResolveInput{
		Name: "Pegante", WarehouseID: "w2",
	})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestResolveOrCreate_EntradaInvalida(t *testing.T) {
	store := memory.NewStore()
	resolver := appinv.NewResolver()

	_, err := resolver.ResolveOrCreate(store.ItemRepo(), store.ProductRepo(), appinv.ResolveInput{Name: "  ", WarehouseID: "w1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = resolver.ResolveOrCreate(store.ItemRepo(), store.ProductRepo(), appinv.ResolveInput{Name: "Algo", WarehouseID: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
