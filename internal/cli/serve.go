package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lazypower/lifeclock/internal/config"
	"github.com/lazypower/lifeclock/internal/engine"
	"github.com/lazypower/lifeclock/internal/logging"
	"github.com/lazypower/lifeclock/internal/longevity"
	"github.com/lazypower/lifeclock/internal/metrics"
	"github.com/lazypower/lifeclock/internal/server"
	"github.com/lazypower/lifeclock/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	db, err := store.OpenMemory()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	eng := engine.New(db,
		longevity.NewLedger(cfg.User.LifeExpectancy),
		longevity.NewSeededCalculator(seed),
		log,
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	eng.SetMetrics(metrics.New(reg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := eng.Bootstrap(ctx, store.User{
		Username:      cfg.User.Username,
		Age:           cfg.User.Age,
		Height:        cfg.User.Height,
		Weight:        cfg.User.Weight,
		ActivityLevel: cfg.User.ActivityLevel,
		Gender:        cfg.User.Gender,
	}); err != nil {
		return fmt.Errorf("bootstrap user: %w", err)
	}

	addr := cfg.ListenAddr()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.New(eng, reg, log, VersionString()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("lifeclock serving",
			zap.String("addr", addr),
			zap.Float64("life_expectancy", cfg.User.LifeExpectancy),
			zap.Uint64("seed", seed),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
