package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/dock-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/dock-scheduler/internal/db"
	"github.com/BruksfildServices01/dock-scheduler/internal/logger"
	"github.com/BruksfildServices01/dock-scheduler/internal/routes"
	"github.com/BruksfildServices01/dock-scheduler/internal/timezone"
)

func main() {
	root := &cobra.Command{
		Use:   "dock-scheduler",
		Short: "Agendamento de docas para recebimento de caminhões",
	}
	root.AddCommand(serveCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Sobe a API HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			log := logger.New(cfg)
			defer func() { _ = log.Sync() }()

			if !timezone.IsValid(cfg.Timezone) {
				log.Warn("invalid TIMEZONE, using default",
					zap.String("timezone", cfg.Timezone),
					zap.String("default", timezone.DefaultTimezone),
				)
				cfg.Timezone = timezone.DefaultTimezone
			}

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			if migrate {
				if err := dbpkg.Migrate(db); err != nil {
					return err
				}
			}

			if cfg.Env != "development" {
				gin.SetMode(gin.ReleaseMode)
			}
			r := gin.New()
			r.Use(gin.Recovery())

			r.GET("/health", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})

			shutdown := routes.RegisterRoutes(r, db, cfg, log)
			defer shutdown()

			srv := &http.Server{
				Addr:              cfg.Addr(),
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			// 1️⃣ servidor em goroutine
			errCh := make(chan error, 1)
			go func() {
				log.Info("server running", zap.String("addr", cfg.Addr()))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			// 2️⃣ espera sinal ou falha
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			// 3️⃣ encerramento gracioso
			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "roda o AutoMigrate antes de subir")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Cria/atualiza as tabelas",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.Load()
			log := logger.New(cfg)
			defer func() { _ = log.Sync() }()

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}

			log.Info("migration complete")
			return nil
		},
	}
}
