// service содержит бизнес-логику tenders-сервиса: загрузку страниц источника,
// сборку и публикацию снапшота индекса, расписание пересборок и выборки.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pribylovaa/tenders-service/internal/config"
	"github.com/pribylovaa/tenders-service/internal/index"
	"github.com/pribylovaa/tenders-service/internal/metrics"
	"github.com/pribylovaa/tenders-service/internal/models"
	"github.com/pribylovaa/tenders-service/internal/storage"
	"golang.org/x/sync/semaphore"
)

//go:generate mockgen -source=service.go -destination=../../mocks/mock_tenders_source.go -package=mocks

// DefaultRetryAfter — рекомендуемая пауза для клиента, пока индекс не готов.
const DefaultRetryAfter = 30 * time.Second

var (
	// ErrNotFound — тендер отсутствует.
	// Транспорт: 404.
	ErrNotFound = errors.New("not found")
	// ErrNotReady — снапшот ещё ни разу не публиковался.
	// Транспорт: 503 + Retry-After.
	ErrNotReady = errors.New("index is not ready")
	// ErrInvalidArgument - некорректные входные аргументы.
	// Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrSourceNotFound — источник не знает запрошенный id.
	// Реализации TendersSource возвращают её (обёрнутой) на 404.
	ErrSourceNotFound = errors.New("not found in source")
	// ErrRebuildInProgress — пересборка уже идёт, новая не запущена.
	// Транспорт: 409.
	ErrRebuildInProgress = errors.New("rebuild already in progress")
)

// NotReadyError — ErrNotReady с рекомендуемой паузой перед повтором.
type NotReadyError struct {
	RetryAfter time.Duration
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrNotReady, e.RetryAfter)
}

// Is позволяет сравнивать через errors.Is(err, ErrNotReady).
func (e *NotReadyError) Is(target error) bool {
	return target == ErrNotReady
}

// TendersSource — постраничный источник тендеров.
type TendersSource interface {
	// TendersPage загружает одну страницу (нумерация с 1).
	TendersPage(ctx context.Context, pageNumber int) (*models.TendersPage, error)
	// TenderByID загружает один тендер; ErrSourceNotFound, если его нет.
	TenderByID(ctx context.Context, id int) (*models.TenderItem, error)
}

// Service — описывает бизнес-логику tenders-service.
//
// Единственное разделяемое состояние — указатель на текущий снапшот:
// пересборка подменяет его атомарно, читатели никогда не ждут.
// buildLock — единственная блокировка: одна пересборка или прогрев за раз.
type Service struct {
	source  TendersSource
	pages   storage.PagesStorage
	cfg     config.Config
	metrics *metrics.Metrics

	current   atomic.Pointer[index.Snapshot]
	buildLock *semaphore.Weighted
	onPublish func(*index.Snapshot)
	now       func() time.Time

	// background — пересборки, запущенные через TriggerRefresh.
	background sync.WaitGroup
}

// Option настраивает Service.
type Option func(*Service)

// WithMetrics подключает prometheus-метрики.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithPublishHook вызывает fn после каждой публикации снапшота.
func WithPublishHook(fn func(*index.Snapshot)) Option {
	return func(s *Service) { s.onPublish = fn }
}

// WithClock подменяет источник времени для BuildInfo.BuiltAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New создает новый экземпляр Service.
// pages == nil означает выключенное хранение страниц.
func New(source TendersSource, pages storage.PagesStorage, cfg config.Config, opts ...Option) *Service {
	if pages == nil {
		pages = storage.Disabled{}
	}

	s := &Service{
		source:    source,
		pages:     pages,
		cfg:       cfg,
		buildLock: semaphore.NewWeighted(1),
		now:       func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Snapshot возвращает текущий снапшот, не дожидаясь идущей пересборки.
// Если снапшота ещё нет — *NotReadyError (errors.Is(err, ErrNotReady)).
func (s *Service) Snapshot() (*index.Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, &NotReadyError{RetryAfter: DefaultRetryAfter}
	}

	return snap, nil
}

// Wait дожидается фоновых пересборок, запущенных через TriggerRefresh.
func (s *Service) Wait() {
	s.background.Wait()
}

// maxConcurrency — предел одновременных запросов к источнику.
func (s *Service) maxConcurrency() int {
	return max(s.cfg.Source.MaxConcurrency, 1)
}
