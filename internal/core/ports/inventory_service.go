// internal/core/ports/inventory_service.go
package ports

import (
	"context"
	"time"

	"github.com/ammerola/barstock/internal/core/domain"
)

// InventoryService defines the application service port used by the HTTP handlers.
// This interface is implemented by services.InventoryService.
type InventoryService interface {
	AddProduct(ctx context.Context, input domain.NewProductInput) (domain.Product, error)
	ListProducts(ctx context.Context) []domain.Product
	Product(ctx context.Context, id string) (domain.Product, error)
	FilterProducts(ctx context.Context, filter domain.ProductFilter) []domain.ProductStock
	Suggest(ctx context.Context, productName string) (*domain.Suggestion, bool)

	Session(ctx context.Context) *domain.InventorySession
	GetRecord(ctx context.Context, productID string) domain.InventoryRecord
	UpdateRecord(ctx context.Context, record domain.InventoryRecord) (domain.InventoryRecord, error)
	UpdateRecordIfUnmodified(ctx context.Context, record domain.InventoryRecord, expected time.Time) (domain.InventoryRecord, error)
	AdjustFullBottles(ctx context.Context, productID string, delta int) (domain.InventoryRecord, error)
	SetPartialBottle(ctx context.Context, productID string, level float64) (domain.InventoryRecord, error)
	FinishSession(ctx context.Context) (completed, next *domain.InventorySession, err error)
	ResetSession(ctx context.Context) *domain.InventorySession

	Dashboard(ctx context.Context) domain.Dashboard
}
