package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/internal/core/ports"
	"github.com/ammerola/barstock/internal/core/services"
	"github.com/ammerola/barstock/test/helpers"
	"github.com/ammerola/barstock/test/mocks"
)

func TestBuildHistory(t *testing.T) {
	completed := time.Date(2024, 6, 2, 2, 0, 0, 0, time.UTC)
	products := helpers.CreateTestProducts(4)
	session := domain.NewSession("s-1", completed.Add(-4*time.Hour))
	session.CompletedDate = &completed
	session.Status = domain.SessionCompleted
	session.Records["p-1"] = domain.InventoryRecord{ProductID: "p-1", FullBottles: 2, PartialBottle: 0.5, UpdatedAt: completed}
	session.Records["p-2"] = domain.InventoryRecord{ProductID: "p-2", PartialBottle: 0.3, UpdatedAt: completed}
	session.Records["p-3"] = domain.InventoryRecord{ProductID: "p-3", UpdatedAt: completed}

	archivedAt := completed.Add(time.Minute)
	h := services.BuildHistory(domain.ArchivedSession{Session: *session, Products: products}, archivedAt)

	assert.Equal(t, "s-1", h.ID)
	assert.Equal(t, completed, h.CompletedDate)
	assert.Equal(t, archivedAt, h.ArchivedAt)
	assert.Equal(t, 4, h.TotalProducts)
	assert.Equal(t, 3, h.CountedProducts)
	assert.Equal(t, 1, h.OutOfStockCount)
	assert.Equal(t, 1, h.LowStockCount)

	require.Len(t, h.Records, 4)
	assert.Equal(t, "p-1", h.Records[0].ProductID)
	assert.InDelta(t, 2.5, h.Records[0].StockLevel, 1e-9)
	assert.Equal(t, products[3].Name, h.Records[3].ProductName)
	assert.Zero(t, h.Records[3].StockLevel)
	assert.True(t, h.Records[3].UpdatedAt.IsZero())
}

func TestHistoryService_ExportURL(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		setup     func(repo *mocks.MockSessionHistoryRepository, storage *mocks.MockObjectStorage)
		wantURL   string
		wantError error
	}{
		{
			name: "presigns_export_key",
			setup: func(repo *mocks.MockSessionHistoryRepository, storage *mocks.MockObjectStorage) {
				repo.EXPECT().FindByID(gomock.Any(), "s-1").Return(&domain.SessionHistory{ID: "s-1", ExportKey: "exports/s-1.xlsx"}, nil)
				storage.EXPECT().GetPresignedURL(gomock.Any(), "exports/s-1.xlsx", 10*time.Minute).Return("https://example.test/s-1", nil)
			},
			wantURL: "https://example.test/s-1",
		},
		{
			name: "export_pending",
			setup: func(repo *mocks.MockSessionHistoryRepository, _ *mocks.MockObjectStorage) {
				repo.EXPECT().FindByID(gomock.Any(), "s-1").Return(&domain.SessionHistory{ID: "s-1"}, nil)
			},
			wantError: services.ErrExportNotReady,
		},
		{
			name: "unknown_session",
			setup: func(repo *mocks.MockSessionHistoryRepository, _ *mocks.MockObjectStorage) {
				repo.EXPECT().FindByID(gomock.Any(), "s-1").Return(nil, domain.ErrNotFound)
			},
			wantError: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockSessionHistoryRepository(ctrl)
			storage := mocks.NewMockObjectStorage(ctrl)
			tt.setup(repo, storage)

			svc := services.NewHistoryService(repo, storage, 10*time.Minute, helpers.TestLogger())
			url, err := svc.ExportURL(ctx, "s-1")
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, url)
		})
	}
}

func TestHistoryService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSessionHistoryRepository(ctrl)
	svc := services.NewHistoryService(repo, nil, 0, helpers.TestLogger())
	ctx := context.Background()

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, -1, 0)
	_, err := svc.List(ctx, ports.HistoryListParams{From: &from, To: &to})
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)

	repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
	_, err = svc.List(ctx, ports.HistoryListParams{})
	assert.ErrorContains(t, err, "db down")

	repo.EXPECT().List(gomock.Any(), ports.HistoryListParams{Page: 2}).
		Return(&ports.HistoryListResult{Page: 2, TotalCount: 30}, nil)
	res, err := svc.List(ctx, ports.HistoryListParams{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(30), res.TotalCount)
}
