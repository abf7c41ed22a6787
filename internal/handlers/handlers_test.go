// internal/handlers/handlers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/barstock/internal/handlers"
	"github.com/ammerola/barstock/test/helpers"
	"github.com/ammerola/barstock/test/mocks"
)

type handlerFixture struct {
	inventory *mocks.MockInventoryService
	history   *mocks.MockHistoryService
	mux       *http.ServeMux
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := helpers.TestLogger()

	f := &handlerFixture{
		inventory: mocks.NewMockInventoryService(ctrl),
		history:   mocks.NewMockHistoryService(ctrl),
		mux:       http.NewServeMux(),
	}
	handlers.RegisterRoutes(f.mux, handlers.Routes{
		Products:  handlers.NewProductHandler(f.inventory, logger),
		Session:   handlers.NewSessionHandler(f.inventory, logger),
		Dashboard: handlers.NewDashboardHandler(f.inventory, logger),
		History:   handlers.NewHistoryHandler(f.history, logger),
	})
	return f
}

func (f *handlerFixture) do(method, target string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handlers.ErrorResponse
	decodeBody(t, w, &resp)
	return resp.Error
}
