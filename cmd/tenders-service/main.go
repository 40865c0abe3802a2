package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	health "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/pribylovaa/tenders-service/internal/config"
	"github.com/pribylovaa/tenders-service/internal/index"
	"github.com/pribylovaa/tenders-service/internal/metrics"
	"github.com/pribylovaa/tenders-service/internal/service"
	"github.com/pribylovaa/tenders-service/internal/storage"
	"github.com/pribylovaa/tenders-service/internal/storage/file"
	"github.com/pribylovaa/tenders-service/internal/storage/minio"
	"github.com/pribylovaa/tenders-service/internal/storage/mongo"
	"github.com/pribylovaa/tenders-service/internal/storage/postgres"
	"github.com/pribylovaa/tenders-service/internal/tendersapi"
	httptransport "github.com/pribylovaa/tenders-service/internal/transport/http"
	"github.com/pribylovaa/tenders-service/pkg/interceptors"
	logctx "github.com/pribylovaa/tenders-service/pkg/log"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// indexHealthService — имя в gRPC health, отражающее готовность индекса.
const indexHealthService = "tenders.Index"

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting tenders-service",
		slog.String("env", cfg.Env),
		slog.String("source", cfg.Source.BaseURL),
		slog.Int("page_limit", cfg.Source.PageLimit()),
		slog.Bool("persist_pages", cfg.Pages.Persist),
		slog.String("pages_backend", cfg.Pages.Backend),
	)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	rootCtx = logctx.Into(rootCtx, log)

	storeCtx, storeCancel := context.WithTimeout(rootCtx, 10*time.Second)
	pages, closePages, err := openPages(storeCtx, cfg)
	storeCancel()
	if err != nil {
		log.Error("pages_store_open_failed",
			slog.String("backend", cfg.Pages.Backend),
			slog.String("err", err.Error()),
		)
		rootCancel()
		os.Exit(1)
	}
	log.Info("pages_store_ready", slog.String("backend", cfg.Pages.Backend), slog.Bool("persist", cfg.Pages.Persist))

	source, err := tendersapi.New(
		&http.Client{Timeout: cfg.Source.Timeout},
		cfg.Source.BaseURL,
		tendersapi.WithRateLimit(cfg.Source.RateLimit),
	)
	if err != nil {
		log.Error("source_client_failed", slog.String("err", err.Error()))
		rootCancel()
		closePages()
		os.Exit(1)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	hs := health.NewServer()
	hs.SetServingStatus(indexHealthService, healthpb.HealthCheckResponse_NOT_SERVING)

	svc := service.New(source, pages, *cfg,
		service.WithMetrics(m),
		service.WithPublishHook(func(*index.Snapshot) {
			hs.SetServingStatus(indexHealthService, healthpb.HealthCheckResponse_SERVING)
		}),
	)
	log.Info("service_initialized")

	// Фоновые циклы: прогрев с диска и периодическая пересборка.
	var loops sync.WaitGroup
	loops.Add(2)
	go func() {
		defer loops.Done()
		svc.Bootstrap(rootCtx)
	}()
	go func() {
		defer loops.Done()
		if err := svc.StartRefresh(rootCtx); err != nil {
			log.Error("refresh_start_failed", slog.String("err", err.Error()))
		}
	}()

	// HTTP: read API, status, probes, metrics.
	router := httptransport.NewRouter(svc, httptransport.Options{
		Logger:         log,
		Timeout:        cfg.Timeouts.Service,
		BaseCtx:        rootCtx,
		Metrics:        m,
		MetricsHandler: promhttp.Handler(),
	})

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErrCh := make(chan error, 2)
	go func() {
		log.Info("http_listen_start", slog.String("addr", httpAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
	}()

	// gRPC: только health (+ reflection в local/dev).
	grpc_prometheus.EnableHandlingTimeHistogram()

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			interceptors.Recover(log),
			interceptors.UnaryLoggingInterceptor(log),
			interceptors.WithTimeout(cfg.Timeouts.Service),
			grpc_prometheus.UnaryServerInterceptor,
		),
		grpc.ChainStreamInterceptor(
			grpc_prometheus.StreamServerInterceptor,
		),
	)
	healthpb.RegisterHealthServer(grpcServer, hs)

	if cfg.Env == envLocal || cfg.Env == envDev {
		reflection.Register(grpcServer)
	}

	grpcAddr := cfg.GRPC.Addr()
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("grpc_listen_failed",
			slog.String("addr", grpcAddr),
			slog.String("err", err.Error()),
		)
		rootCancel()
		_ = httpSrv.Close()
		loops.Wait()
		closePages()
		os.Exit(1)
	}
	log.Info("grpc_listen_start", slog.String("addr", grpcAddr))

	grpc_prometheus.Register(grpcServer)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	go func() {
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serveErrCh <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		log.Error("serve_failed", slog.String("err", err.Error()))
	}

	hs.Shutdown()
	rootCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_force_stop", slog.String("err", err.Error()))
		_ = httpSrv.Close()
	} else {
		log.Info("http_stopped")
	}

	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		log.Info("grpc_stopped")
	case <-shutdownCtx.Done():
		log.Warn("grpc_force_stop")
		grpcServer.Stop()
	}

	// Пересборки получают отменённый rootCtx и выходят без публикации.
	loops.Wait()
	svc.Wait()
	closePages()

	log.Info("service_stopped")
}

// openPages выбирает хранилище страниц по конфигурации.
// Возвращает функцию закрытия соединений (no-op для файлов).
func openPages(ctx context.Context, cfg *config.Config) (storage.PagesStorage, func(), error) {
	noop := func() {}

	if !cfg.Pages.Persist {
		return storage.Disabled{}, noop, nil
	}

	switch cfg.Pages.Backend {
	case config.BackendPostgres:
		st, err := postgres.New(ctx, cfg.DB.URL)
		if err != nil {
			return nil, noop, err
		}
		return st, st.Close, nil

	case config.BackendS3:
		st, err := minio.New(ctx, cfg.S3)
		if err != nil {
			return nil, noop, err
		}
		return st, noop, nil

	case config.BackendMongo:
		st, err := mongo.New(ctx, cfg.Mongo)
		if err != nil {
			return nil, noop, err
		}
		return st, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = st.Close(closeCtx)
		}, nil

	default:
		st, err := file.New(cfg.Pages.Dir)
		if err != nil {
			return nil, noop, err
		}
		return st, noop, nil
	}
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}
