// internal/handlers/products.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/internal/core/ports"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	service ports.InventoryService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service ports.InventoryService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "products")),
	}
}

// SuggestRequest is the body of POST /api/v1/products/suggest
type SuggestRequest struct {
	Name string `json:"name"`
}

// ListProducts handles GET /api/v1/products.
// With search or status parameters it returns the filtered listing joined with stock.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	search := query.Get("search")
	status := query.Get("status")
	if search == "" && status == "" {
		respondJSON(w, http.StatusOK, h.service.ListProducts(ctx))
		return
	}

	filter, err := domain.ParseStatusFilter(status)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to filter products")
		return
	}

	respondJSON(w, http.StatusOK, h.service.FilterProducts(ctx, domain.ProductFilter{
		SearchTerm: search,
		Status:     filter,
	}))
}

// AddProduct handles POST /api/v1/products
func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input domain.NewProductInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.service.AddProduct(ctx, input)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to add product")
		return
	}

	h.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("category", string(product.Category)))

	respondJSON(w, http.StatusCreated, product)
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Product(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to retrieve product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// Suggest handles POST /api/v1/products/suggest
func (h *ProductHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	suggestion, ok := h.service.Suggest(r.Context(), req.Name)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, suggestion)
}
