package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pribylovaa/tenders-service/internal/service"
	"github.com/pribylovaa/tenders-service/internal/tendersapi"
	"github.com/stretchr/testify/require"
)

func TestToHTTP_BaseMapping(t *testing.T) {
	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"not_ready", fmt.Errorf("op: %w", &service.NotReadyError{RetryAfter: time.Second}), http.StatusServiceUnavailable, "not_ready"},
		{"invalid_argument", fmt.Errorf("op: %w: page", service.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{"not_found", fmt.Errorf("op: %w", service.ErrNotFound), http.StatusNotFound, "not_found"},
		{"conflict", service.ErrRebuildInProgress, http.StatusConflict, "rebuild_in_progress"},
		{"canceled", fmt.Errorf("op: %w", context.Canceled), StatusClientClosedRequest, "canceled"},
		{"deadline", fmt.Errorf("op: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "deadline_exceeded"},
		{"upstream", fmt.Errorf("op: %w", &tendersapi.StatusError{Code: 500}), http.StatusBadGateway, "upstream_error"},
		{"internal", fmt.Errorf("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal", resp.Error.Code)
	require.Equal(t, "internal error", resp.Error.Message)
}

func TestToHTTP_NotReadyRetryAfter(t *testing.T) {
	_, resp := ToHTTP(&service.NotReadyError{RetryAfter: 45 * time.Second})
	require.Equal(t, 45, resp.Error.RetryAfterSeconds)

	// Без собственной паузы — значение по умолчанию.
	_, resp = ToHTTP(service.ErrNotReady)
	require.Equal(t, 30, resp.Error.RetryAfterSeconds)
}

func TestWriteError_EnvelopeAndHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tenders", nil)
	req.Header.Set("X-Request-Id", "rid-1")

	WriteError(rr, req, &service.NotReadyError{RetryAfter: 30 * time.Second})

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	require.Equal(t, "30", rr.Header().Get("Retry-After"))

	var env ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "not_ready", env.Error.Code)
	require.Equal(t, "rid-1", env.Error.RequestID)
	require.Equal(t, 30, env.Error.RetryAfterSeconds)
}

func TestWriteError_NoRetryAfterForOtherErrors(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tenders/1", nil)

	WriteError(rr, req, service.ErrNotFound)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Empty(t, rr.Header().Get("Retry-After"))
}
