package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/tenders-service/internal/index"
	"github.com/pribylovaa/tenders-service/internal/models"
	"github.com/pribylovaa/tenders-service/pkg/log"
)

// Search возвращает страницу тендеров из текущего снапшота.
//
// Правила нормализации:
// - PageNumber <= 0 -> 1;
// - PageSize <= 0 -> cfg.Limits.Default;
// - PageSize > max -> cfg.Limits.Max.
//
// Ошибки:
// - ErrInvalidArgument — supplier id < 1 или неизвестный порядок сортировки;
// - ErrNotReady — снапшот ещё не опубликован (*NotReadyError).
func (s *Service) Search(ctx context.Context, c models.SearchCriteria) (*models.PagedResult, error) {
	const op = "service.queries.Search"

	lg := log.From(ctx)

	if err := validateCriteria(c); err != nil {
		lg.Warn("search_invalid_criteria",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w: %s", op, ErrInvalidArgument, err.Error())
	}

	if c.PageNumber <= 0 {
		c.PageNumber = 1
	}

	if c.PageSize <= 0 {
		c.PageSize = s.cfg.Limits.Default
	}

	if s.cfg.Limits.Max > 0 && c.PageSize > s.cfg.Limits.Max {
		c.PageSize = s.cfg.Limits.Max
	}

	snap, err := s.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := index.Search(snap, c)

	lg.Debug("search_ok",
		slog.String("op", op),
		slog.Int("items", len(res.Items)),
		slog.Int("total_items", res.TotalItems),
		slog.Int("page_number", res.PageNumber),
	)

	return &res, nil
}

// TenderByID возвращает тендер из текущего снапшота.
//
// Ошибки:
// - ErrInvalidArgument — id < 1;
// - ErrNotFound — записи нет в снапшоте;
// - ErrNotReady — снапшот ещё не опубликован.
func (s *Service) TenderByID(ctx context.Context, id int) (*models.Tender, error) {
	const op = "service.queries.TenderByID"

	if id < 1 {
		return nil, fmt.Errorf("%s: %w: id must be >= 1", op, ErrInvalidArgument)
	}

	snap, err := s.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tender, ok := snap.ByID(id)
	if !ok {
		log.From(ctx).Debug("tender_by_id_not_found",
			slog.String("op", op),
			slog.Int("id", id),
		)

		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return &tender, nil
}

// SourceTender читает тендер напрямую из источника в обход индекса.
//
// Ошибки:
// - ErrInvalidArgument — id < 1;
// - ErrNotFound — источник не знает такой id или запись некорректна;
// - прочие ошибки источника — обёрнутые и прокинуты наверх.
func (s *Service) SourceTender(ctx context.Context, id int) (*models.Tender, error) {
	const op = "service.queries.SourceTender"

	lg := log.From(ctx)

	if id < 1 {
		return nil, fmt.Errorf("%s: %w: id must be >= 1", op, ErrInvalidArgument)
	}

	item, err := s.source.TenderByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSourceNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("source_tender_error",
			slog.String("op", op),
			slog.Int("id", id),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if item == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	tender, ok := toDomain(*item)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return &tender, nil
}

// Status возвращает метаданные текущего снапшота; ok=false, если его ещё нет.
func (s *Service) Status() (info index.BuildInfo, tenders int, ok bool) {
	snap := s.current.Load()
	if snap == nil {
		return index.BuildInfo{}, 0, false
	}

	return snap.Info(), snap.Len(), true
}

// validateCriteria проверяет поставщика и порядок сортировки.
// Диапазоны суммы и дат не проверяются: несовместимые границы дают пустую выдачу.
func validateCriteria(c models.SearchCriteria) error {
	if c.SupplierID != nil && *c.SupplierID < 1 {
		return errors.New("supplier id must be >= 1")
	}

	switch c.OrderBy {
	case "", models.OrderByDate, models.OrderByPrice:
	default:
		return fmt.Errorf("unknown order %q", c.OrderBy)
	}

	switch c.Direction {
	case "", models.OrderAsc, models.OrderDesc:
	default:
		return fmt.Errorf("unknown direction %q", c.Direction)
	}

	return nil
}
