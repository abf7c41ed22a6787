// internal/handlers/health_test.go
package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/barstock/internal/core/ports"
	"github.com/ammerola/barstock/internal/handlers"
	"github.com/ammerola/barstock/test/helpers"
	"github.com/ammerola/barstock/test/mocks"
)

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name           string
		setupDB        func(*mocks.MockDatabase)
		stopRedis      bool
		expectedStatus int
		expectedState  string
	}{
		{
			name: "all_healthy",
			setupDB: func(m *mocks.MockDatabase) {
				m.EXPECT().Ping(gomock.Any()).Return(nil)
				m.EXPECT().Health(gomock.Any()).Return(map[string]interface{}{"total_conns": 1})
			},
			expectedStatus: http.StatusOK,
			expectedState:  "healthy",
		},
		{
			name: "database_down",
			setupDB: func(m *mocks.MockDatabase) {
				m.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "unhealthy",
		},
		{
			name:           "redis_down_without_database",
			stopRedis:      true,
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			testRedis := helpers.SetupTestRedis(t)
			require.NoError(t, testRedis.Client.Set(context.Background(), "barstock:products", "{}", 0).Err())

			var database ports.Database
			if tt.setupDB != nil {
				m := mocks.NewMockDatabase(ctrl)
				tt.setupDB(m)
				database = m
			}
			if tt.stopRedis {
				testRedis.Server.Close()
			}

			h := handlers.NewHealthHandler(database, testRedis.Client, nil, helpers.LoadTestConfig(), helpers.TestLogger(),
				"barstock:products", "barstock:current_session")

			w := httptest.NewRecorder()
			h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var got handlers.HealthReport
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.expectedState, got.Status)
			require.Contains(t, got.Checks, "snapshot_store")
			if tt.stopRedis {
				assert.NotEmpty(t, got.Checks["snapshot_store"].Error)
			} else {
				assert.EqualValues(t, 1, got.Checks["snapshot_store"].Details["snapshot_keys"])
			}
		})
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ctrl := gomock.NewController(t)
	testRedis := helpers.SetupTestRedis(t)
	database := mocks.NewMockDatabase(ctrl)
	database.EXPECT().Ping(gomock.Any()).Return(nil)

	h := handlers.NewHealthHandler(database, testRedis.Client, nil, helpers.LoadTestConfig(), helpers.TestLogger())

	w := httptest.NewRecorder()
	h.Readiness(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var got handlers.ReadinessReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Ready)
	assert.Equal(t, "ready", got.Checks["snapshot_store"])
	assert.Equal(t, "ready", got.Checks["history_db"])
}

func TestHealthHandler_ReadinessFailsWithoutSnapshotStore(t *testing.T) {
	testRedis := helpers.SetupTestRedis(t)
	testRedis.Server.Close()

	h := handlers.NewHealthHandler(nil, testRedis.Client, nil, helpers.LoadTestConfig(), helpers.TestLogger())

	w := httptest.NewRecorder()
	h.Readiness(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var got handlers.ReadinessReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.False(t, got.Ready)
	assert.Equal(t, "not ready", got.Checks["snapshot_store"])
	assert.NotContains(t, got.Checks, "history_db")
}
