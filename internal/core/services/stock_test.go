package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/internal/core/services"
	"github.com/ammerola/barstock/test/helpers"
)

func newTestLedger(t *testing.T) (*services.Ledger, *helpers.FixedClock) {
	t.Helper()
	clock := helpers.NewFixedClock(time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC))
	return services.NewLedger(nil,
		services.WithClock(clock.Now),
		services.WithIDGenerator(helpers.SequentialIDs("session")),
	), clock
}

func TestStockScenarios(t *testing.T) {
	at := time.Date(2024, 6, 1, 21, 0, 0, 0, time.UTC)

	t.Run("uncounted_product_is_out_of_stock", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		session := ledger.Session()
		assert.Zero(t, services.StockLevel(session, "P1"))
		assert.Equal(t, domain.StatusOutOfStock, services.StatusOf(session, "P1"))
	})

	t.Run("partial_only_is_low_stock", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		_, err := ledger.UpdateRecord(domain.InventoryRecord{ProductID: "P1", PartialBottle: 0.4, UpdatedAt: at})
		require.NoError(t, err)
		session := ledger.Session()
		assert.InDelta(t, 0.4, services.StockLevel(session, "P1"), 1e-9)
		assert.Equal(t, domain.StatusLowStock, services.StatusOf(session, "P1"))
	})

	t.Run("full_and_partial_is_in_stock", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		_, err := ledger.UpdateRecord(domain.InventoryRecord{ProductID: "P1", FullBottles: 2, PartialBottle: 0.4, UpdatedAt: at})
		require.NoError(t, err)
		session := ledger.Session()
		assert.InDelta(t, 2.4, services.StockLevel(session, "P1"), 1e-9)
		assert.Equal(t, domain.StatusInStock, services.StatusOf(session, "P1"))
	})

	t.Run("out_of_range_partial_leaves_state_unchanged", func(t *testing.T) {
		ledger, _ := newTestLedger(t)
		before, err := ledger.UpdateRecord(domain.InventoryRecord{ProductID: "P1", FullBottles: 1, PartialBottle: 0.2, UpdatedAt: at})
		require.NoError(t, err)

		_, err = ledger.UpdateRecord(domain.InventoryRecord{ProductID: "P1", PartialBottle: 1.5, UpdatedAt: at.Add(time.Minute)})
		assert.ErrorIs(t, err, domain.ErrInvalidRecord)
		assert.Equal(t, before, ledger.GetRecord("P1"))
	})
}

func TestAggregate(t *testing.T) {
	products := helpers.CreateTestProducts(10)
	session := domain.NewSession("s-1", time.Now())
	for i := 0; i < 3; i++ {
		id := products[i].ID
		session.Records[id] = domain.InventoryRecord{ProductID: id}
	}
	for i := 3; i < 5; i++ {
		id := products[i].ID
		session.Records[id] = domain.InventoryRecord{ProductID: id, PartialBottle: 0.5}
	}
	session.Records["ghost"] = domain.InventoryRecord{ProductID: "ghost", PartialBottle: 0.5}

	summary := services.Aggregate(products, session)
	assert.Equal(t, 10, summary.TotalProducts)
	assert.Equal(t, 5, summary.CountedProducts)
	assert.Equal(t, 50, summary.CountedPercent)
	assert.Equal(t, 3, summary.OutOfStockCount)
	assert.Equal(t, 2, summary.LowStockCount)
	require.Len(t, summary.LowStockItems, 5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, products[i].ID, summary.LowStockItems[i].ProductID)
	}
	assert.Zero(t, summary.LowStockItems[0].Amount)
	assert.Equal(t, products[4].Name, summary.LowStockItems[4].Name)
	assert.InDelta(t, 0.5, summary.LowStockItems[3].Amount, 1e-9)
}

func TestAggregate_OutOfStockListedWithLowStock(t *testing.T) {
	products := domain.DefaultProducts()
	session := domain.NewSession("s-1", time.Now())
	session.Records["1"] = domain.InventoryRecord{ProductID: "1"}
	session.Records["2"] = domain.InventoryRecord{ProductID: "2", PartialBottle: 0.4}
	session.Records["3"] = domain.InventoryRecord{ProductID: "3", FullBottles: 1}

	summary := services.Aggregate(products, session)
	assert.Equal(t, 1, summary.OutOfStockCount)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, []domain.LowStockItem{
		{ProductID: "1", Name: "Guinness Draught", Amount: 0},
		{ProductID: "2", Name: "Kilkenny Cream Ale", Amount: 0.4},
	}, summary.LowStockItems)
}

func TestAggregate_Edges(t *testing.T) {
	t.Run("empty_catalog", func(t *testing.T) {
		summary := services.Aggregate(nil, domain.NewSession("s", time.Now()))
		assert.Zero(t, summary.TotalProducts)
		assert.Zero(t, summary.CountedPercent)
		assert.NotNil(t, summary.LowStockItems)
	})

	t.Run("percent_rounds_to_nearest", func(t *testing.T) {
		products := helpers.CreateTestProducts(3)
		session := domain.NewSession("s", time.Now())
		session.Records["p-1"] = domain.InventoryRecord{ProductID: "p-1", FullBottles: 2}
		session.Records["p-2"] = domain.InventoryRecord{ProductID: "p-2", FullBottles: 2}
		assert.Equal(t, 67, services.Aggregate(products, session).CountedPercent)
	})

	t.Run("duplicate_catalog_ids_count_once", func(t *testing.T) {
		p := helpers.CreateTestProduct()
		session := domain.NewSession("s", time.Now())
		session.Records[p.ID] = domain.InventoryRecord{ProductID: p.ID}
		summary := services.Aggregate([]domain.Product{p, p}, session)
		assert.Equal(t, 1, summary.CountedProducts)
		assert.Equal(t, 1, summary.OutOfStockCount)
	})
}

func TestAggregate_CountsPartitionCountedProducts(t *testing.T) {
	products := helpers.CreateTestProducts(25)
	session := domain.NewSession("s", time.Now())
	for i, p := range products {
		if i%4 == 3 {
			continue
		}
		session.Records[p.ID] = domain.InventoryRecord{ProductID: p.ID, FullBottles: i % 3, PartialBottle: float64(i%5) / 4}
	}

	summary := services.Aggregate(products, session)
	inStock := 0
	for _, p := range products {
		if _, ok := session.Record(p.ID); ok && services.StatusOf(session, p.ID) == domain.StatusInStock {
			inStock++
		}
	}
	assert.Equal(t, summary.CountedProducts, summary.OutOfStockCount+summary.LowStockCount+inStock)
	assert.LessOrEqual(t, summary.CountedProducts, summary.TotalProducts)
}

func TestCategoryTotals(t *testing.T) {
	products := []domain.Product{
		{ID: "a", Category: domain.CategoryIrishWhiskey},
		{ID: "b", Category: domain.CategoryIrishWhiskey},
		{ID: "c", Category: domain.CategoryWine},
	}
	session := domain.NewSession("s", time.Now())
	session.Records["a"] = domain.InventoryRecord{ProductID: "a", FullBottles: 1, PartialBottle: 0.15}
	session.Records["b"] = domain.InventoryRecord{ProductID: "b", PartialBottle: 0.1}
	session.Records["c"] = domain.InventoryRecord{ProductID: "c", FullBottles: 4}

	totals := services.CategoryTotals(products, session)
	require.Len(t, totals, len(domain.Categories()))
	for i, c := range domain.Categories() {
		assert.Equal(t, c, totals[i].Category)
		assert.Equal(t, c.Label(), totals[i].Label)
	}
	assert.Equal(t, 1.3, totals[0].Stock)
	assert.Zero(t, totals[1].Stock)
	assert.Equal(t, 4.0, totals[4].Stock)
}

func TestFilterProducts(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Name: "Jameson Original"},
		{ID: "2", Name: "Guinness Draught"},
		{ID: "3", Name: "Jameson Black Barrel"},
	}
	session := domain.NewSession("s", time.Now())
	session.Records["1"] = domain.InventoryRecord{ProductID: "1", PartialBottle: 0.3}
	session.Records["2"] = domain.InventoryRecord{ProductID: "2", FullBottles: 5}

	tests := []struct {
		name    string
		filter  domain.ProductFilter
		wantIDs []string
	}{
		{name: "no_filter", filter: domain.ProductFilter{}, wantIDs: []string{"1", "2", "3"}},
		{name: "search_is_case_insensitive", filter: domain.ProductFilter{SearchTerm: "JAMESON"}, wantIDs: []string{"1", "3"}},
		{name: "out_of_stock", filter: domain.ProductFilter{Status: domain.FilterOut}, wantIDs: []string{"3"}},
		{name: "low_stock", filter: domain.ProductFilter{Status: domain.FilterLow}, wantIDs: []string{"1"}},
		{name: "search_and_status", filter: domain.ProductFilter{SearchTerm: "jameson", Status: domain.FilterLow}, wantIDs: []string{"1"}},
		{name: "no_match", filter: domain.ProductFilter{SearchTerm: "vodka"}, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.FilterProducts(products, session, tt.filter)
			ids := make([]string, 0, len(got))
			for _, ps := range got {
				ids = append(ids, ps.ID)
				assert.Equal(t, domain.ClassifyStock(ps.StockLevel), ps.Status)
			}
			assert.Equal(t, tt.wantIDs, ids, fmt.Sprintf("filter %+v", tt.filter))
		})
	}
}
