// Package api exposes the quoting context over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/comparador/quote-aggregator/business/quoting/domain"
	"github.com/comparador/quote-aggregator/internal/apperror"
	"github.com/comparador/quote-aggregator/internal/logger"
)

// Quoter runs one aggregation. *app.Aggregator satisfies it.
type Quoter interface {
	Quote(ctx context.Context, req domain.QuoteRequest) (domain.AggregationResult, error)
}

// Handler serves the quote calculation endpoint.
type Handler struct {
	quoter    Quoter
	validator *Validator
	logger    logger.LoggerInterface
}

// NewHandler creates a Handler.
func NewHandler(quoter Quoter, validator *Validator, log logger.LoggerInterface) *Handler {
	if validator == nil {
		validator = NewValidator()
	}
	return &Handler{quoter: quoter, validator: validator, logger: log}
}

// Calculate handles POST /api/v1/calculate.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Error:   "Request too large",
				Message: fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation error", Message: "Unable to read request body"})
		return
	}

	req, err := h.validator.DecodeAndValidate(body)
	if err != nil {
		h.logger.Warn(ctx, "Quote request rejected", "error", apperror.Describe(err))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation error", Message: apperror.Describe(err)})
		return
	}

	result, err := h.quoter.Quote(ctx, req)
	if err != nil {
		h.logger.Error(ctx, "Quote aggregation failed", "error", err)
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.IsValidation() {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation error", Message: appErr.Detail()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch quotes", Message: apperror.Describe(err)})
		return
	}

	writeJSON(w, http.StatusOK, NewCalculateResponse(result))
}

// Healthz is the liveness probe of the API listener.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
