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

func TestNewSnapshotKeys(t *testing.T) {
	keys := services.NewSnapshotKeys("bar")
	assert.Equal(t, "bar:products", keys.Products)
	assert.Equal(t, "bar:current_session", keys.Session)

	bare := services.NewSnapshotKeys("")
	assert.Equal(t, "products", bare.Products)
	assert.Equal(t, "current_session", bare.Session)
}

func TestSessionSnapshot_RoundTrip(t *testing.T) {
	start := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)
	session := domain.NewSession("s-1", start)
	session.Records["1"] = domain.InventoryRecord{ProductID: "1", FullBottles: 2, PartialBottle: 0.4, UpdatedAt: start.Add(time.Hour)}
	session.Records["x"] = domain.InventoryRecord{ProductID: "x", UpdatedAt: start.Add(2 * time.Hour)}

	raw, err := services.EncodeSession(session)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"schemaVersion":1`)

	decoded, err := services.DecodeSession(raw)
	require.NoError(t, err)
	assert.Equal(t, session, decoded)
}

func TestProductsSnapshot_RoundTrip(t *testing.T) {
	products := domain.DefaultProducts()
	raw, err := services.EncodeProducts(products)
	require.NoError(t, err)

	decoded, err := services.DecodeProducts(raw)
	require.NoError(t, err)
	assert.Equal(t, products, decoded)
}

func TestDecodeSession_Legacy(t *testing.T) {
	raw := []byte(`{
		"id": 1717272000000,
		"startDate": 1717272000000,
		"records": {
			"3": {"productId": "3", "fullBottles": 2, "partialBottle": 0.5, "updatedAt": 1717275600000},
			"4": {"productId": "4", "fullBottles": -1, "partialBottle": 1.7, "updatedAt": 1717275600000}
		},
		"status": "active"
	}`)

	session, err := services.DecodeSession(raw)
	require.NoError(t, err)
	assert.Equal(t, "1717272000000", session.ID)
	assert.Equal(t, time.UnixMilli(1717272000000).UTC(), session.StartDate)
	assert.Equal(t, domain.SessionActive, session.Status)

	rec := session.Records["3"]
	assert.Equal(t, 2, rec.FullBottles)
	assert.InDelta(t, 0.5, rec.PartialBottle, 1e-9)
	assert.Equal(t, time.UnixMilli(1717275600000).UTC(), rec.UpdatedAt)

	clamped := session.Records["4"]
	assert.Zero(t, clamped.FullBottles)
	assert.Equal(t, 1.0, clamped.PartialBottle)
}

func TestDecodeSession_LegacyStringID(t *testing.T) {
	session, err := services.DecodeSession([]byte(`{"id":"abc","startDate":0,"records":{}}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", session.ID)
	assert.Equal(t, domain.SessionActive, session.Status)
}

func TestDecodeSession_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "not_json", raw: "garbage"},
		{name: "null", raw: "null"},
		{name: "future_version", raw: `{"schemaVersion":99,"data":{}}`},
		{name: "zero_version_envelope", raw: `{"schemaVersion":0,"data":{}}`},
		{name: "missing_id", raw: `{"schemaVersion":1,"data":{"status":"active","records":{}}}`},
		{name: "bad_record", raw: `{"schemaVersion":1,"data":{"id":"s","status":"active","records":{"1":{"productId":"1","partialBottle":4}}}}`},
		{name: "wrong_types", raw: `{"schemaVersion":1,"data":{"id":5}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.DecodeSession([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestDecodeProducts_Malformed(t *testing.T) {
	for _, raw := range []string{"", "{", `{"schemaVersion":1,"data":{}}`, `[{"name":"no id"}]`} {
		_, err := services.DecodeProducts([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestSnapshotRepository_LoadFallbacks(t *testing.T) {
	ctx := context.Background()
	keys := services.NewSnapshotKeys("test")

	tests := []struct {
		name         string
		setup        func(m *mocks.MockSnapshotStore)
		wantProducts int
		wantFound    bool
		wantSession  bool
		wantErr      bool
	}{
		{
			name: "missing_documents",
			setup: func(m *mocks.MockSnapshotStore) {
				m.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, ports.ErrSnapshotNotFound).Times(2)
			},
			wantProducts: len(domain.DefaultProducts()),
		},
		{
			name: "store_error",
			setup: func(m *mocks.MockSnapshotStore) {
				m.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused")).Times(2)
			},
			wantErr: true,
		},
		{
			name: "malformed_documents",
			setup: func(m *mocks.MockSnapshotStore) {
				m.EXPECT().Load(gomock.Any(), gomock.Any()).Return([]byte("{nope"), nil).Times(2)
			},
			wantProducts: len(domain.DefaultProducts()),
		},
		{
			name: "valid_documents",
			setup: func(m *mocks.MockSnapshotStore) {
				products, _ := services.EncodeProducts(helpers.CreateTestProducts(2))
				session, _ := services.EncodeSession(domain.NewSession("s-9", time.Now().UTC()))
				m.EXPECT().Load(gomock.Any(), keys.Products).Return(products, nil)
				m.EXPECT().Load(gomock.Any(), keys.Session).Return(session, nil)
			},
			wantProducts: 2,
			wantFound:    true,
			wantSession:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockSnapshotStore(ctrl)
			tt.setup(store)

			repo := services.NewSnapshotRepository(store, keys, helpers.TestLogger())
			products, found, err := repo.LoadProducts(ctx)
			session, sessionErr := repo.LoadSession(ctx)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, products)
				assert.Error(t, sessionErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, sessionErr)
			assert.Len(t, products, tt.wantProducts)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantSession, session != nil)
		})
	}
}

func TestSnapshotRepository_SaveErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSnapshotStore(ctrl)
	store.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("read only replica")).Times(2)

	repo := services.NewSnapshotRepository(store, services.NewSnapshotKeys("t"), helpers.TestLogger())
	assert.ErrorContains(t, repo.SaveProducts(context.Background(), nil), "read only replica")
	assert.ErrorContains(t, repo.SaveSession(context.Background(), domain.NewSession("s", time.Now())), "read only replica")
}
