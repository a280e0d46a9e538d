package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"assetoracle/internal/platform/middleware"
	"assetoracle/internal/verification"
	dErrors "assetoracle/pkg/domain-errors"
	"assetoracle/pkg/testutil"
)

const ownerToken = "owner-token"

type stubValidator struct{}

func (stubValidator) ValidateToken(token string) (*middleware.JWTClaims, error) {
	if token == ownerToken {
		return &middleware.JWTClaims{UserID: "u1", Wallet: "0xowner"}, nil
	}
	return nil, errors.New("unknown token")
}

type stubService struct {
	run     verification.Run
	runErr  error
	gotRuns []verification.RunInput
}

func (s *stubService) Run(_ context.Context, input verification.RunInput) (verification.Run, error) {
	s.gotRuns = append(s.gotRuns, input)
	return s.run, s.runErr
}

func (s *stubService) Status(_ context.Context, runID string) (verification.Run, error) {
	if runID == s.run.ID {
		return s.run, nil
	}
	return verification.Run{}, dErrors.New(dErrors.CodeNotFound, "verification run not found")
}

func newRouter(svc *stubService) chi.Router {
	h := New(svc, slog.Default())
	router := chi.NewRouter()
	h.Register(router, stubValidator{})
	return router
}

func TestHandleRunRequiresAuth(t *testing.T) {
	router := newRouter(&stubService{})

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/verification/run", map[string]string{"address": "123 Main St"})
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestHandleRunPassesCallerWallet(t *testing.T) {
	svc := &stubService{run: verification.Run{ID: "run-1", Status: verification.RunFulfilled}}
	router := newRouter(svc)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/verification/run",
		map[string]string{"address": "123 Main St, San Francisco, CA", "assetId": "asset-1"})
	req.Header.Set("Authorization", "Bearer "+ownerToken)
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	if assert.Len(t, svc.gotRuns, 1) {
		assert.Equal(t, "asset-1", svc.gotRuns[0].AssetID)
		assert.Equal(t, "0xowner", svc.gotRuns[0].Wallet)
	}

	var run verification.Run
	testutil.DecodeJSON(t, rr, &run)
	assert.Equal(t, "run-1", run.ID)
}

func TestHandleRunTranslatesDomainErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"bad request", dErrors.New(dErrors.CodeBadRequest, "address or assetId is required"), http.StatusBadRequest},
		{"not found", dErrors.New(dErrors.CodeNotFound, "asset not found"), http.StatusNotFound},
		{"forbidden", dErrors.New(dErrors.CodeForbidden, "caller does not own this asset"), http.StatusForbidden},
		{"conflict", dErrors.New(dErrors.CodeConflict, "asset already VERIFIED"), http.StatusConflict},
		{"persistence", dErrors.New(dErrors.CodeUnavailable, "record run start"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&stubService{runErr: tt.err})
			req := testutil.NewJSONRequest(t, http.MethodPost, "/api/verification/run", map[string]string{"assetId": "asset-1"})
			req.Header.Set("Authorization", "Bearer "+ownerToken)
			rr := testutil.DoRequest(router, req)
			testutil.AssertStatus(t, rr, tt.status)
		})
	}
}

func TestHandleStatus(t *testing.T) {
	record := verification.Record{Status: "VERIFIED", DataSourcesVerified: 3}
	svc := &stubService{run: verification.Run{ID: "run-1", Status: verification.RunFulfilled, Record: &record}}
	router := newRouter(svc)

	t.Run("known run", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/verification/run-1"))
		testutil.AssertStatus(t, rr, http.StatusOK)

		var run verification.Run
		testutil.DecodeJSON(t, rr, &run)
		assert.Equal(t, verification.RunFulfilled, run.Status)
		assert.NotNil(t, run.Record)
	})

	t.Run("unknown run", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/verification/nope"))
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})
}
