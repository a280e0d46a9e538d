// Package handler wires verification endpoints to the run service.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"assetoracle/internal/platform/middleware"
	"assetoracle/internal/verification"
	"assetoracle/pkg/platform/httputil"
)

// Service defines the interface for verification operations.
type Service interface {
	Run(ctx context.Context, input verification.RunInput) (verification.Run, error)
	Status(ctx context.Context, runID string) (verification.Run, error)
}

// Handler is the thin HTTP layer over the verification service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a verification handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts verification endpoints. Triggering a run requires a valid
// token; status checks are public because run IDs are unguessable.
func (h *Handler) Register(r chi.Router, validator middleware.JWTValidator) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, h.logger))
		r.Post("/api/verification/run", h.HandleRun)
	})
	r.Get("/api/verification/{runID}", h.HandleStatus)
}

type runRequest struct {
	Address string `json:"address"`
	AssetID string `json:"assetId"`
}

// HandleRun handles POST /api/verification/run requests.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[runRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	run, err := h.service.Run(ctx, verification.RunInput{
		Address: req.Address,
		AssetID: req.AssetID,
		Wallet:  middleware.GetWallet(ctx),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "verification run failed",
			"request_id", requestID,
			"asset_id", req.AssetID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "verification run served",
		"request_id", requestID,
		"run_id", run.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, run)
}

// HandleStatus handles GET /api/verification/{runID} requests.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	run, err := h.service.Status(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, run)
}
