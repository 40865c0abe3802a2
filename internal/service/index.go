package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/tenders-service/internal/index"
	"github.com/pribylovaa/tenders-service/internal/metrics"
	"github.com/pribylovaa/tenders-service/pkg/log"
)

// WarmUpStatus — итог прогрева индекса с диска.
type WarmUpStatus int

const (
	// NotWarmed — на диске нет ни одной страницы (или прогрев прерван).
	NotWarmed WarmUpStatus = iota
	// Warmed — снапшот собран из страниц на диске и опубликован.
	Warmed
	// AlreadyWarm — снапшот уже был, прогрев не требовался.
	AlreadyWarm
)

func (w WarmUpStatus) String() string {
	switch w {
	case Warmed:
		return "warmed"
	case AlreadyWarm:
		return "already_warm"
	default:
		return "not_warmed"
	}
}

// Refresh пересобирает индекс из источника и публикует новый снапшот.
//
// Особенности:
//   - одновременно идёт не больше одной пересборки: второй вызов ждёт первую;
//   - ошибка пересборки логируется, прежний снапшот остаётся опубликованным;
//   - если не удалось получить ни одной страницы, публикуется пустой снапшот
//     со всеми страницами в FailedPages;
//   - отмена ctx прерывает пересборку без публикации и без записи в лог ошибок.
func (s *Service) Refresh(ctx context.Context) {
	if err := s.buildLock.Acquire(ctx, 1); err != nil {
		return
	}
	defer s.buildLock.Release(1)

	s.rebuild(ctx)
}

// TriggerRefresh запускает пересборку в фоне, если сейчас никакая не идёт.
// Возвращает false, если пересборка или прогрев уже выполняются.
// ctx должен жить дольше запроса, который инициировал пересборку.
func (s *Service) TriggerRefresh(ctx context.Context) bool {
	if !s.buildLock.TryAcquire(1) {
		return false
	}

	s.background.Add(1)
	go func() {
		defer s.background.Done()
		defer s.buildLock.Release(1)

		s.rebuild(ctx)
	}()

	return true
}

// rebuild — загрузка, сборка и публикация под уже взятой блокировкой.
func (s *Service) rebuild(ctx context.Context) {
	const op = "service.index.rebuild"

	buildID := uuid.NewString()
	ctx, lg := log.With(ctx, slog.String("build_id", buildID))

	limit := s.cfg.Source.PageLimit()
	start := time.Now()

	lg.Info("refresh_start",
		slog.String("op", op),
		slog.Int("page_limit", limit),
		slog.Int("max_concurrency", s.maxConcurrency()),
	)

	snap, err := s.buildFromSource(ctx, buildID, limit)
	took := time.Since(start)

	switch {
	case ctx.Err() != nil:
		lg.Info("refresh_canceled",
			slog.String("op", op),
			slog.Duration("took", took),
		)
		s.metrics.RebuildFinished(metrics.RebuildCanceled, took)

	case err != nil:
		_, hasPrevious := s.currentInfo()
		lg.Warn("refresh_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
			slog.Bool("keeps_previous", hasPrevious),
			slog.Duration("took", took),
		)
		s.metrics.RebuildFinished(metrics.RebuildFailed, took)

	default:
		s.publish(snap)

		info := snap.Info()
		lg.Info("refresh_done",
			slog.String("op", op),
			slog.Int("tenders", snap.Len()),
			slog.Int("pages_loaded", info.PagesLoaded),
			slog.Int("pages_from_disk", info.PagesFromDisk),
			slog.Any("failed_pages", info.FailedPages),
			slog.Bool("degraded", info.Degraded()),
			slog.Duration("took", took),
		)
		s.metrics.RebuildFinished(metrics.RebuildOK, took)
	}
}

// buildFromSource собирает снапшот из источника с добором с диска.
// Паника внутри сборки превращается в ошибку.
func (s *Service) buildFromSource(ctx context.Context, buildID string, limit int) (snap *index.Snapshot, err error) {
	const op = "service.index.buildFromSource"

	defer func() {
		if r := recover(); r != nil {
			snap, err = nil, fmt.Errorf("%s: panic: %v", op, r)
		}
	}()

	pages, failed := s.collectPages(ctx, limit)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(pages) == 0 {
		log.From(ctx).Warn("refresh_no_pages",
			slog.String("op", op),
			slog.Int("failed_pages", len(failed)),
		)
	}

	fromDisk := 0
	for _, p := range pages {
		if p.FromDisk {
			fromDisk++
		}
	}

	snap, skipped := buildSnapshot(pages, index.BuildInfo{
		BuildID:       buildID,
		Source:        index.SourceAPI,
		BuiltAt:       s.now(),
		PageLimit:     limit,
		PagesLoaded:   len(pages),
		PagesFromDisk: fromDisk,
		FailedPages:   failed,
	})

	if skipped > 0 {
		log.From(ctx).Warn("records_skipped",
			slog.String("op", op),
			slog.Int("skipped", skipped),
		)
	}

	return snap, nil
}

// WarmUpFromDisk публикует снапшот из хранилища страниц без обращения к источнику.
// Если снапшот уже есть — AlreadyWarm; если на диске нет страниц — NotWarmed.
func (s *Service) WarmUpFromDisk(ctx context.Context) WarmUpStatus {
	const op = "service.index.WarmUpFromDisk"

	if s.current.Load() != nil {
		return AlreadyWarm
	}

	if err := s.buildLock.Acquire(ctx, 1); err != nil {
		return NotWarmed
	}
	defer s.buildLock.Release(1)

	// Пока ждали блокировку, снапшот мог опубликовать Refresh.
	if s.current.Load() != nil {
		return AlreadyWarm
	}

	buildID := uuid.NewString()
	ctx, lg := log.With(ctx, slog.String("build_id", buildID))

	limit := s.cfg.Source.PageLimit()

	var pages []fetchedPage
	for n := 1; n <= limit; n++ {
		if ctx.Err() != nil {
			return NotWarmed
		}

		if page, ok := s.readPage(ctx, n); ok {
			pages = append(pages, fetchedPage{Number: n, Page: page, FromDisk: true})
		}
	}

	if len(pages) == 0 {
		lg.Info("warmup_no_pages", slog.String("op", op), slog.Int("page_limit", limit))
		return NotWarmed
	}

	snap, err := s.buildFromDisk(ctx, pages, buildID, limit)
	if err != nil {
		lg.Warn("warmup_failed", slog.String("op", op), slog.String("err", err.Error()))
		return NotWarmed
	}

	s.publish(snap)

	lg.Info("warmup_done",
		slog.String("op", op),
		slog.Int("tenders", snap.Len()),
		slog.Int("pages_loaded", len(pages)),
	)

	return Warmed
}

// buildFromDisk собирает снапшот из страниц хранилища.
func (s *Service) buildFromDisk(ctx context.Context, pages []fetchedPage, buildID string, limit int) (snap *index.Snapshot, err error) {
	const op = "service.index.buildFromDisk"

	defer func() {
		if r := recover(); r != nil {
			snap, err = nil, fmt.Errorf("%s: panic: %v", op, r)
		}
	}()

	snap, skipped := buildSnapshot(pages, index.BuildInfo{
		BuildID:       buildID,
		Source:        index.SourceDisk,
		BuiltAt:       s.now(),
		PageLimit:     limit,
		PagesLoaded:   len(pages),
		PagesFromDisk: len(pages),
	})

	if skipped > 0 {
		log.From(ctx).Warn("records_skipped",
			slog.String("op", op),
			slog.Int("skipped", skipped),
		)
	}

	return snap, nil
}

// publish атомарно подменяет текущий снапшот.
func (s *Service) publish(snap *index.Snapshot) {
	s.current.Store(snap)

	info := snap.Info()
	s.metrics.SnapshotPublished(snap.Len(), len(info.FailedPages), info.BuiltAt)

	if s.onPublish != nil {
		s.onPublish(snap)
	}
}

// currentInfo — метаданные опубликованного снапшота, если он есть.
func (s *Service) currentInfo() (index.BuildInfo, bool) {
	snap := s.current.Load()
	if snap == nil {
		return index.BuildInfo{}, false
	}

	return snap.Info(), true
}
