package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/pribylovaa/tenders-service/internal/metrics"
	"github.com/pribylovaa/tenders-service/internal/models"
	"github.com/pribylovaa/tenders-service/pkg/log"
	"golang.org/x/sync/errgroup"
)

// pageStatus — исход загрузки одной страницы.
type pageStatus int

const (
	pageOK pageStatus = iota
	pageFailed
	// pageDropped — загрузка прервана отменой: ни успех, ни ошибка.
	pageDropped
)

// fetchedPage — страница, вошедшая в сборку.
type fetchedPage struct {
	Number   int
	Page     *models.TendersPage
	FromDisk bool
}

type pageOutcome struct {
	fetchedPage
	status pageStatus
}

// fetchResult — итог прохода по диапазону страниц.
// Succeeded упорядочен по номеру, Failed — без повторов и по возрастанию.
type fetchResult struct {
	Succeeded []fetchedPage
	Failed    []int
}

// fetchRange загружает страницы с ограничением maxConcurrency одновременных запросов.
//
// Особенности:
//   - успешная страница сразу пишется в хранилище страниц;
//   - при ошибке источника берётся копия с диска, если она есть;
//   - после отмены ctx новые загрузки не начинаются, прерванные отбрасываются молча.
func (s *Service) fetchRange(ctx context.Context, pageNumbers []int, maxConcurrency int) fetchResult {
	outcomes := make(chan pageOutcome, len(pageNumbers))

	var g errgroup.Group
	g.SetLimit(max(maxConcurrency, 1))

	for _, n := range pageNumbers {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			outcomes <- s.fetchPage(ctx, n)
			return nil
		})
	}

	_ = g.Wait()
	close(outcomes)

	var res fetchResult
	seen := make(map[int]struct{}, len(pageNumbers))

	for out := range outcomes {
		if _, dup := seen[out.Number]; dup {
			continue
		}

		switch out.status {
		case pageOK:
			seen[out.Number] = struct{}{}
			res.Succeeded = append(res.Succeeded, out.fetchedPage)
		case pageFailed:
			seen[out.Number] = struct{}{}
			res.Failed = append(res.Failed, out.Number)
		}
	}

	slices.SortFunc(res.Succeeded, func(a, b fetchedPage) int { return a.Number - b.Number })
	slices.Sort(res.Failed)

	return res
}

// fetchPage — одна страница: источник, затем запись на диск или добор с диска.
func (s *Service) fetchPage(ctx context.Context, pageNumber int) pageOutcome {
	const op = "service.fetcher.fetchPage"

	lg := log.From(ctx)

	// Слот мог освободиться уже после отмены: такую загрузку не начинаем.
	if ctx.Err() != nil {
		s.metrics.PageFetched(metrics.PageDropped)
		return pageOutcome{fetchedPage: fetchedPage{Number: pageNumber}, status: pageDropped}
	}

	start := time.Now()
	page, err := s.fetchRemote(ctx, pageNumber)
	s.metrics.ObservePageRequest(time.Since(start))

	if err == nil {
		s.persist(ctx, pageNumber, page)
		s.metrics.PageFetched(metrics.PageOK)

		return pageOutcome{fetchedPage: fetchedPage{Number: pageNumber, Page: page}, status: pageOK}
	}

	if ctx.Err() != nil {
		s.metrics.PageFetched(metrics.PageDropped)
		return pageOutcome{fetchedPage: fetchedPage{Number: pageNumber}, status: pageDropped}
	}

	lg.Warn("page_fetch_failed",
		slog.String("op", op),
		slog.Int("page", pageNumber),
		slog.String("err", err.Error()),
	)

	if cached, ok := s.readPage(ctx, pageNumber); ok {
		lg.Info("page_from_disk",
			slog.String("op", op),
			slog.Int("page", pageNumber),
		)
		s.metrics.PageFetched(metrics.PageDisk)

		return pageOutcome{fetchedPage: fetchedPage{Number: pageNumber, Page: cached, FromDisk: true}, status: pageOK}
	}

	if ctx.Err() != nil {
		s.metrics.PageFetched(metrics.PageDropped)
		return pageOutcome{fetchedPage: fetchedPage{Number: pageNumber}, status: pageDropped}
	}

	s.metrics.PageFetched(metrics.PageFailed)
	return pageOutcome{fetchedPage: fetchedPage{Number: pageNumber}, status: pageFailed}
}

// fetchRemote вызывает источник; паника и nil-страница превращаются в ошибку.
func (s *Service) fetchRemote(ctx context.Context, pageNumber int) (page *models.TendersPage, err error) {
	defer func() {
		if r := recover(); r != nil {
			page, err = nil, fmt.Errorf("source panic: %v", r)
		}
	}()

	page, err = s.source.TendersPage(ctx, pageNumber)
	if err == nil && page == nil {
		err = errors.New("source returned nil page")
	}

	return page, err
}

// persist пишет страницу в хранилище; ошибка записи только логируется.
func (s *Service) persist(ctx context.Context, pageNumber int, page *models.TendersPage) {
	const op = "service.fetcher.persist"

	defer func() {
		if r := recover(); r != nil {
			log.From(ctx).Error("page_persist_panic",
				slog.String("op", op),
				slog.Int("page", pageNumber),
				slog.Any("panic", r),
			)
		}
	}()

	if err := s.pages.WritePage(ctx, pageNumber, page); err != nil && ctx.Err() == nil {
		log.From(ctx).Warn("page_persist_failed",
			slog.String("op", op),
			slog.Int("page", pageNumber),
			slog.String("err", err.Error()),
		)
	}
}

// readPage читает страницу из хранилища; паника трактуется как отсутствие.
func (s *Service) readPage(ctx context.Context, pageNumber int) (page *models.TendersPage, ok bool) {
	const op = "service.fetcher.readPage"

	defer func() {
		if r := recover(); r != nil {
			log.From(ctx).Error("page_read_panic",
				slog.String("op", op),
				slog.Int("page", pageNumber),
				slog.Any("panic", r),
			)
			page, ok = nil, false
		}
	}()

	page, ok = s.pages.TryReadPage(ctx, pageNumber)
	if page == nil {
		ok = false
	}

	return page, ok
}

// collectPages — полный проход по 1..limit и один повтор упавших страниц
// после паузы cfg.Refresh.RetryDelay. Что не загрузилось и после повтора,
// остаётся в failed: индекс собирается частично.
func (s *Service) collectPages(ctx context.Context, limit int) (pages []fetchedPage, failed []int) {
	const op = "service.fetcher.collectPages"

	lg := log.From(ctx)

	first := s.fetchRange(ctx, pageRange(limit), s.maxConcurrency())
	pages, failed = first.Succeeded, first.Failed

	if len(failed) == 0 || ctx.Err() != nil {
		return pages, failed
	}

	lg.Info("pages_retry",
		slog.String("op", op),
		slog.Int("failed", len(failed)),
		slog.Duration("delay", s.cfg.Refresh.RetryDelay),
	)

	if err := sleepCtx(ctx, s.cfg.Refresh.RetryDelay); err != nil {
		return pages, failed
	}

	retry := s.fetchRange(ctx, failed, s.maxConcurrency())
	pages = append(pages, retry.Succeeded...)
	slices.SortFunc(pages, func(a, b fetchedPage) int { return a.Number - b.Number })

	if len(retry.Failed) > 0 {
		lg.Warn("pages_dropped",
			slog.String("op", op),
			slog.Any("pages", retry.Failed),
		)
	}

	return pages, retry.Failed
}

// pageRange возвращает 1..n.
func pageRange(n int) []int {
	out := make([]int, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		out = append(out, i)
	}

	return out
}

// sleepCtx ждёт d или отмены ctx.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
