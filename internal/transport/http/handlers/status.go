package handlers

import (
	"net/http"

	"github.com/pribylovaa/tenders-service/internal/service"
	apierrors "github.com/pribylovaa/tenders-service/internal/transport/http/errors"
)

// Status — GET /status: готовность индекса и метаданные последней сборки.
func (h *Handlers) Status(w http.ResponseWriter, _ *http.Request) {
	info, tenders, ok := h.svc.Status()
	if !ok {
		writeJSON(w, http.StatusOK, StatusResponse{Ready: false})
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Ready:   true,
		Tenders: tenders,
		Build:   buildInfoFromDomain(info),
	})
}

// Livez — процесс жив.
func (h *Handlers) Livez(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ProbeResponse{Status: "ok"})
}

// Healthz — готовность: 503 + Retry-After, пока снапшот не опубликован.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.svc.Status(); !ok {
		apierrors.WriteError(w, r, &service.NotReadyError{RetryAfter: service.DefaultRetryAfter})
		return
	}

	writeJSON(w, http.StatusOK, ProbeResponse{Status: "ready"})
}
