// internal/handlers/session.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/internal/core/ports"
)

// SessionHandler handles counting-session HTTP requests
type SessionHandler struct {
	service ports.InventoryService
	logger  *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service ports.InventoryService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "session")),
	}
}

// UpdateRecordRequest is the body of PUT /api/v1/session/records/{productId}.
// When ExpectedUpdatedAt is set the write only applies if the stored record still carries it.
type UpdateRecordRequest struct {
	FullBottles       int        `json:"fullBottles"`
	PartialBottle     float64    `json:"partialBottle"`
	ExpectedUpdatedAt *time.Time `json:"expectedUpdatedAt,omitempty"`
}

// AdjustFullBottlesRequest is the body of POST .../full-bottles
type AdjustFullBottlesRequest struct {
	Delta int `json:"delta"`
}

// SetPartialBottleRequest is the body of PUT .../partial-bottle
type SetPartialBottleRequest struct {
	Level *float64 `json:"level"`
}

// ResetRequest is the body of POST /api/v1/session/reset
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// FinishResponse carries the archived session and its successor
type FinishResponse struct {
	Completed *domain.InventorySession `json:"completed"`
	Session   *domain.InventorySession `json:"session"`
}

// GetSession handles GET /api/v1/session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Session(r.Context()))
}

// GetRecord handles GET /api/v1/session/records/{productId}
func (h *SessionHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.GetRecord(r.Context(), r.PathValue("productId")))
}

// UpdateRecord handles PUT /api/v1/session/records/{productId}
func (h *SessionHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := r.PathValue("productId")

	var req UpdateRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record := domain.InventoryRecord{
		ProductID:     productID,
		FullBottles:   req.FullBottles,
		PartialBottle: req.PartialBottle,
	}

	var (
		stored domain.InventoryRecord
		err    error
	)
	if req.ExpectedUpdatedAt != nil {
		stored, err = h.service.UpdateRecordIfUnmodified(ctx, record, *req.ExpectedUpdatedAt)
	} else {
		stored, err = h.service.UpdateRecord(ctx, record)
	}
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to update record")
		return
	}

	respondJSON(w, http.StatusOK, stored)
}

// AdjustFullBottles handles POST /api/v1/session/records/{productId}/full-bottles
func (h *SessionHandler) AdjustFullBottles(w http.ResponseWriter, r *http.Request) {
	var req AdjustFullBottlesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	stored, err := h.service.AdjustFullBottles(r.Context(), r.PathValue("productId"), req.Delta)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to adjust full bottles")
		return
	}
	respondJSON(w, http.StatusOK, stored)
}

// SetPartialBottle handles PUT /api/v1/session/records/{productId}/partial-bottle
func (h *SessionHandler) SetPartialBottle(w http.ResponseWriter, r *http.Request) {
	var req SetPartialBottleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Level == nil {
		respondError(w, http.StatusBadRequest, "level is required")
		return
	}

	stored, err := h.service.SetPartialBottle(r.Context(), r.PathValue("productId"), *req.Level)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to set partial bottle")
		return
	}
	respondJSON(w, http.StatusOK, stored)
}

// FinishSession handles POST /api/v1/session/finish
func (h *SessionHandler) FinishSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	completed, next, err := h.service.FinishSession(ctx)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to finish session")
		return
	}

	respondJSON(w, http.StatusOK, FinishResponse{
		Completed: completed,
		Session:   next,
	})
}

// ResetSession handles POST /api/v1/session/reset
func (h *SessionHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Confirm {
		respondError(w, http.StatusBadRequest, "reset must be confirmed")
		return
	}

	respondJSON(w, http.StatusOK, h.service.ResetSession(r.Context()))
}
