package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/tenders-service/pkg/log"
)

// StartRefresh запускает периодическую пересборку индекса.
//
// Особенности:
//   - первая пересборка — через cfg.Refresh.InitialDelay;
//   - следующая — через cfg.Refresh.Interval после завершения предыдущей;
//   - останавливается по ctx и возвращает nil.
func (s *Service) StartRefresh(ctx context.Context) error {
	const op = "service.scheduler.StartRefresh"

	interval := s.cfg.Refresh.Interval
	if interval <= 0 {
		return fmt.Errorf("%s: refresh interval must be > 0", op)
	}

	lg := log.From(ctx)
	lg.Info("refresh_loop_start",
		slog.String("op", op),
		slog.Duration("initial_delay", s.cfg.Refresh.InitialDelay),
		slog.Duration("interval", interval),
	)

	timer := time.NewTimer(max(s.cfg.Refresh.InitialDelay, 0))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			lg.Info("refresh_loop_stop", slog.String("op", op))
			return nil
		case <-timer.C:
			s.Refresh(ctx)
			timer.Reset(interval)
		}
	}
}

// Bootstrap — однократный прогрев индекса с диска при старте процесса.
// Ошибки не фатальны: без прогрева первые запросы получат ErrNotReady.
func (s *Service) Bootstrap(ctx context.Context) WarmUpStatus {
	const op = "service.scheduler.Bootstrap"

	status := s.WarmUpFromDisk(ctx)

	log.From(ctx).Info("bootstrap_done",
		slog.String("op", op),
		slog.String("status", status.String()),
	)

	return status
}
