package service

import (
	"testing"

	"go-saristore-pos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newInventoryFixture() (*memoryProductRepo, InventoryService) {
	products := newMemoryProductRepo()
	return products, NewInventoryService(products, &recorderActivity{})
}

func TestAdjustStockAddAndRemove(t *testing.T) {
	products, svc := newInventoryFixture()
	p := products.add(&model.Product{Name: "Sardinas", Stock: 10, IsActive: true})
	actor := adminActor()

	updated, err := svc.AdjustStock(p.ID, &model.StockAdjustmentRequest{Adjustment: 5, Reason: "delivery"}, actor)
	require.NoError(t, err)
	require.Equal(t, 15.0, updated.Stock)

	updated, err = svc.AdjustStock(p.ID, &model.StockAdjustmentRequest{Adjustment: -8, Reason: "sira"}, actor)
	require.NoError(t, err)
	require.Equal(t, 7.0, updated.Stock)
}

func TestAdjustStockClampedAtZero(t *testing.T) {
	products, svc := newInventoryFixture()
	p := products.add(&model.Product{Name: "Sardinas", Stock: 3, IsActive: true})

	updated, err := svc.AdjustStock(p.ID, &model.StockAdjustmentRequest{Adjustment: -10, Reason: "inventory count"}, adminActor())
	require.NoError(t, err)
	require.Equal(t, 0.0, updated.Stock)
}

func TestAdjustStockNotFound(t *testing.T) {
	_, svc := newInventoryFixture()
	_, err := svc.AdjustStock(uuid.New(), &model.StockAdjustmentRequest{Adjustment: 1}, adminActor())
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetProductByBarcode(t *testing.T) {
	products, svc := newInventoryFixture()
	products.add(&model.Product{Name: "Palmolive Sachet", Barcode: "4800888100009", IsActive: true})

	found, err := svc.GetProductByBarcode("4800888100009")
	require.NoError(t, err)
	require.Equal(t, "Palmolive Sachet", found.Name)

	_, err = svc.GetProductByBarcode("0000000000000")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestLowStockProducts(t *testing.T) {
	products, svc := newInventoryFixture()
	products.add(&model.Product{Name: "A", Stock: 2, ReorderLevel: 5, IsActive: true})
	products.add(&model.Product{Name: "B", Stock: 5, ReorderLevel: 5, IsActive: true})
	products.add(&model.Product{Name: "C", Stock: 20, ReorderLevel: 5, IsActive: true})
	products.add(&model.Product{Name: "D", Stock: 1, ReorderLevel: 5, IsActive: false})

	low, err := svc.LowStockProducts()
	require.NoError(t, err)
	require.Len(t, low, 2)
	for _, p := range low {
		require.True(t, p.IsLowStock())
		require.True(t, p.IsActive)
	}
}
