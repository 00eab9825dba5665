package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Desarso/tradesummit"
	"github.com/Desarso/tradesummit/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := tradesummit.NewApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.StartReaper(); err != nil {
			return err
		}

		gin.SetMode(gin.ReleaseMode)
		srv := server.New(app.Manager, app.Store, app.Metrics, logger, server.Options{
			RateRPS:   cfg.Server.RateRPS,
			RateBurst: cfg.Server.RateBurst,
		})
		if cfg.Server.RateRPS > 0 && cfg.Widgets.IdleTTL > 0 && cfg.Widgets.ReapSchedule != "" {
			evictAfter := cfg.Widgets.IdleTTL
			if err := app.Manager.AddJob(cfg.Widgets.ReapSchedule, func() { srv.EvictIdleClients(evictAfter) }); err != nil {
				return err
			}
		}
		httpServer := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		var grp errgroup.Group
		grp.Go(func() error {
			logger.Info("listening", zap.String("addr", cfg.Server.Addr))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				stop()
				return err
			}
			return nil
		})
		grp.Go(func() error {
			<-ctx.Done()
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
		return grp.Wait()
	},
}
