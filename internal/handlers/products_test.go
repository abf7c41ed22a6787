// internal/handlers/products_test.go
package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/barstock/internal/core/domain"
)

func TestProductHandler_ListProducts(t *testing.T) {
	catalog := domain.DefaultProducts()[:2]

	tests := []struct {
		name           string
		target         string
		setupMocks     func(*handlerFixture)
		expectedStatus int
		expectedError  string
	}{
		{
			name:   "lists_catalog_without_filters",
			target: "/api/v1/products",
			setupMocks: func(f *handlerFixture) {
				f.inventory.EXPECT().ListProducts(gomock.Any()).Return(catalog)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "filters_by_search_and_status",
			target: "/api/v1/products?search=guin&status=low",
			setupMocks: func(f *handlerFixture) {
				f.inventory.EXPECT().
					FilterProducts(gomock.Any(), domain.ProductFilter{SearchTerm: "guin", Status: domain.FilterLow}).
					Return([]domain.ProductStock{{Product: catalog[0], StockLevel: 0.5, Status: domain.StatusLowStock}})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "search_only_uses_total_filter",
			target: "/api/v1/products?search=jam",
			setupMocks: func(f *handlerFixture) {
				f.inventory.EXPECT().
					FilterProducts(gomock.Any(), domain.ProductFilter{SearchTerm: "jam", Status: domain.FilterTotal}).
					Return([]domain.ProductStock{})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "rejects_unknown_status",
			target:         "/api/v1/products?status=high",
			setupMocks:     func(*handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  `invalid query: unknown status filter "high"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			tt.setupMocks(f)

			w := f.do(http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorMessage(t, w))
			}
		})
	}
}

func TestProductHandler_AddProduct(t *testing.T) {
	created := domain.Product{ID: "p-1", Name: "Powers Gold", Category: domain.CategoryIrishWhiskey, IsActive: true}

	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(*handlerFixture)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "creates_product",
			body: map[string]string{"name": "Powers Gold", "category": "Irish Whiskey"},
			setupMocks: func(f *handlerFixture) {
				f.inventory.EXPECT().
					AddProduct(gomock.Any(), domain.NewProductInput{Name: "Powers Gold", Category: domain.CategoryIrishWhiskey}).
					Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "invalid_product_maps_to_bad_request",
			body: map[string]string{"name": "", "category": "Irish Whiskey"},
			setupMocks: func(f *handlerFixture) {
				f.inventory.EXPECT().AddProduct(gomock.Any(), gomock.Any()).
					Return(domain.Product{}, fmt.Errorf("%w: name is required", domain.ErrInvalidProduct))
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid product: name is required",
		},
		{
			name:           "malformed_body",
			body:           "{not json",
			setupMocks:     func(*handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
		{
			name:           "unknown_field",
			body:           `{"name":"x","category":"Wine","price":3}`,
			setupMocks:     func(*handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
		{
			name: "unexpected_error_is_hidden",
			body: map[string]string{"name": "Powers Gold", "category": "Irish Whiskey"},
			setupMocks: func(f *handlerFixture) {
				f.inventory.EXPECT().AddProduct(gomock.Any(), gomock.Any()).
					Return(domain.Product{}, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to add product",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			tt.setupMocks(f)

			w := f.do(http.MethodPost, "/api/v1/products", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorMessage(t, w))
				return
			}
			var got domain.Product
			decodeBody(t, w, &got)
			assert.Equal(t, created, got)
		})
	}
}

func TestProductHandler_GetProduct(t *testing.T) {
	f := newHandlerFixture(t)
	f.inventory.EXPECT().Product(gomock.Any(), "3").Return(domain.DefaultProducts()[2], nil)
	f.inventory.EXPECT().Product(gomock.Any(), "missing").
		Return(domain.Product{}, fmt.Errorf("product missing: %w", domain.ErrNotFound))

	w := f.do(http.MethodGet, "/api/v1/products/3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var got domain.Product
	decodeBody(t, w, &got)
	assert.Equal(t, "Jameson Original", got.Name)

	w = f.do(http.MethodGet, "/api/v1/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_Suggest(t *testing.T) {
	t.Run("returns_suggestion", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.inventory.EXPECT().Suggest(gomock.Any(), "Teeling Small Batch").
			Return(&domain.Suggestion{Category: domain.CategoryIrishWhiskey, Description: "Rum cask finish"}, true)

		w := f.do(http.MethodPost, "/api/v1/products/suggest", map[string]string{"name": "Teeling Small Batch"})
		assert.Equal(t, http.StatusOK, w.Code)

		var got domain.Suggestion
		decodeBody(t, w, &got)
		assert.Equal(t, domain.CategoryIrishWhiskey, got.Category)
	})

	t.Run("no_suggestion_is_no_content", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.inventory.EXPECT().Suggest(gomock.Any(), "").Return(nil, false)

		w := f.do(http.MethodPost, "/api/v1/products/suggest", map[string]string{"name": ""})
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}
