package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpcadapter "github.com/glouglou/cashup-backend/internal/adapter/grpc"
	"github.com/glouglou/cashup-backend/internal/adapter/httpapi"
	"github.com/glouglou/cashup-backend/internal/adapter/sheets"
	"github.com/glouglou/cashup-backend/internal/config"
	"github.com/glouglou/cashup-backend/internal/domain"
	"github.com/glouglou/cashup-backend/internal/obs"
	"github.com/glouglou/cashup-backend/internal/usecase/cashup"
)

func main() {
	// 1. Load configuration and logging
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	// 2. Initialize adapters
	metrics := obs.NewCashUpMetrics(cfg.MetricsNamespace, nil)

	submitter := newSubmitter(cfg)
	if submitter == nil {
		logger.Warn().Msg("SHEETS_ENDPOINT not set, cash-up submission disabled")
	}

	// 3. Initialize Services (Use Cases)
	cashUpService := cashup.NewCashUpService(submitter, nil, logger, metrics)

	// 4. Start gRPC Server
	grpcServer := grpclib.NewServer(grpcadapter.UnaryInterceptors(logger, metrics))
	grpcAdapter := grpcadapter.NewServer(cashUpService, cfg.DefaultCurrency, cfg.DefaultFloat)
	grpcadapter.RegisterCashUpServiceServer(grpcServer, grpcAdapter)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(grpcadapter.CashUpServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.GRPCAddr).Msg("failed to listen")
	}

	go func() {
		logger.Info().Str("addr", cfg.GRPCAddr).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal().Err(err).Msg("failed to serve gRPC server")
		}
	}()

	// 5. Start HTTP server for health and metrics
	httpServer := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpapi.Router{
			Logger:            logger,
			SubmissionEnabled: cfg.SubmissionEnabled(),
		}.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to serve HTTP server")
		}
	}()

	// Graceful shutdown
	waitForShutdown(logger, cfg.ShutdownTimeout, grpcServer, healthServer, httpServer)
}

// newSubmitter returns the sheet client, or a nil interface when no endpoint is
// configured. A typed nil *sheets.Client would not disable submission.
func newSubmitter(cfg *config.Config) domain.Submitter {
	if !cfg.SubmissionEnabled() {
		return nil
	}
	return sheets.NewClient(cfg.SheetsEndpoint, cfg.SheetsTimeout)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the servers
func waitForShutdown(logger zerolog.Logger, timeout time.Duration, grpcServer *grpclib.Server, healthServer *health.Server, httpServer *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

	healthServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown")
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		grpcServer.Stop()
	}
	logger.Info().Msg("gRPC server stopped")
}
