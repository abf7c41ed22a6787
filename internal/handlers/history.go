// internal/handlers/history.go
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/internal/core/ports"
)

const dateLayout = "2006-01-02"

// HistoryHandler serves archived counting sessions
type HistoryHandler struct {
	service ports.HistoryService
	logger  *slog.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(service ports.HistoryService, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "history")),
	}
}

// ExportResponse carries a presigned count sheet link
type ExportResponse struct {
	URL string `json:"url"`
}

// ListHistory handles GET /api/v1/history
func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	params, err := parseHistoryParams(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.List(r.Context(), params)
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to list sessions")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetHistory handles GET /api/v1/history/{id}
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to retrieve session")
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// ExportHistory handles GET /api/v1/history/{id}/export
func (h *HistoryHandler) ExportHistory(w http.ResponseWriter, r *http.Request) {
	link, err := h.service.ExportURL(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, h.logger, err, "Failed to issue export link")
		return
	}
	respondJSON(w, http.StatusOK, ExportResponse{URL: link})
}

// parseHistoryParams reads from, to, page and pageSize.
// A bare date for "to" covers the whole day.
func parseHistoryParams(q url.Values) (ports.HistoryListParams, error) {
	var params ports.HistoryListParams

	if v := q.Get("from"); v != "" {
		from, _, err := parseTimeParam(v)
		if err != nil {
			return params, fmt.Errorf("invalid from: %w", err)
		}
		params.From = &from
	}
	if v := q.Get("to"); v != "" {
		to, dateOnly, err := parseTimeParam(v)
		if err != nil {
			return params, fmt.Errorf("invalid to: %w", err)
		}
		if dateOnly {
			to = to.AddDate(0, 0, 1)
		}
		params.To = &to
	}
	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		return params, fmt.Errorf("%w: to is before from", domain.ErrInvalidQuery)
	}

	var err error
	if params.Page, err = parseIntParam(q, "page"); err != nil {
		return params, err
	}
	if params.PageSize, err = parseIntParam(q, "pageSize"); err != nil {
		return params, err
	}
	return params, nil
}

func parseTimeParam(v string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, false, nil
	}
	t, err := time.ParseInLocation(dateLayout, v, time.UTC)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("expected RFC 3339 or %s, got %q", dateLayout, v)
	}
	return t, true, nil
}

func parseIntParam(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, v)
	}
	return n, nil
}
