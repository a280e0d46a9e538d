// Package handler wires asset endpoints to the asset service.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"assetoracle/internal/asset/models"
	"assetoracle/internal/asset/service"
	"assetoracle/internal/platform/middleware"
	dErrors "assetoracle/pkg/domain-errors"
	"assetoracle/pkg/platform/httputil"
)

// Service defines the interface for asset operations.
type Service interface {
	Register(ctx context.Context, input service.RegisterInput) (models.Asset, error)
	Get(ctx context.Context, id, callerWallet string) (models.Asset, error)
	List(ctx context.Context, filter models.ListFilter, callerWallet string) (models.Page, error)
}

// Handler is the thin HTTP layer over the asset service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an asset handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts asset endpoints on the router. Registration requires a
// valid token; reads work anonymously with reduced visibility.
func (h *Handler) Register(r chi.Router, validator middleware.JWTValidator) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, h.logger))
		r.Post("/api/assets/register", h.HandleRegister)
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(validator))
		r.Get("/api/assets", h.HandleList)
		r.Get("/api/assets/{id}", h.HandleGet)
	})
}

type locationRequest struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

type registerRequest struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	EstimatedValue float64         `json:"estimatedValue"`
	Location       locationRequest `json:"location"`
}

// HandleRegister handles POST /api/assets/register requests.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	wallet := middleware.GetWallet(ctx)
	if wallet == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "wallet claim required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[registerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	asset, err := h.service.Register(ctx, service.RegisterInput{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		EstimatedValue: req.EstimatedValue,
		Location: models.Location{
			Address: req.Location.Address,
			City:    req.Location.City,
			State:   req.Location.State,
			Zip:     req.Location.Zip,
		},
		OwnerWallet: wallet,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "asset registration failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "asset registered",
		"request_id", requestID,
		"asset_id", asset.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, asset)
}

// HandleList handles GET /api/assets requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	filter := models.ListFilter{
		Category: query.Get("category"),
		Search:   query.Get("search"),
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		filter.Limit = limit
	}

	page, err := h.service.List(ctx, filter, middleware.GetWallet(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "asset listing failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if page.Assets == nil {
		page.Assets = []models.Asset{}
	}
	httputil.WriteJSON(w, http.StatusOK, page)
}

// HandleGet handles GET /api/assets/{id} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	asset, err := h.service.Get(ctx, chi.URLParam(r, "id"), middleware.GetWallet(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, asset)
}
