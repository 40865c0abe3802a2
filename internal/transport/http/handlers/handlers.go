package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/tenders-service/internal/index"
	"github.com/pribylovaa/tenders-service/internal/models"
)

//go:generate mockgen -source=handlers.go -destination=../../../../mocks/mock_tenders_service.go -package=mocks

// TendersService — операции сервиса, нужные HTTP API.
type TendersService interface {
	Search(ctx context.Context, c models.SearchCriteria) (*models.PagedResult, error)
	TenderByID(ctx context.Context, id int) (*models.Tender, error)
	SourceTender(ctx context.Context, id int) (*models.Tender, error)
	TriggerRefresh(ctx context.Context) bool
	Status() (info index.BuildInfo, tenders int, ok bool)
}

// Handlers агрегирует зависимости HTTP-обработчиков.
// baseCtx — контекст процесса для фоновых пересборок: запрос,
// который их запустил, завершится раньше.
type Handlers struct {
	svc     TendersService
	baseCtx context.Context
}

func New(baseCtx context.Context, svc TendersService) *Handlers {
	if baseCtx == nil {
		baseCtx = context.Background()
	}

	return &Handlers{svc: svc, baseCtx: baseCtx}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
