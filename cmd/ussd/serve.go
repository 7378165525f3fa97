package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/bobcode/ussd"
	"github.com/bobcode/ussd/internal/adapters/httpapi"
	"github.com/bobcode/ussd/internal/config"
	"github.com/bobcode/ussd/internal/logging"
	"github.com/bobcode/ussd/internal/metrics"
	"github.com/bobcode/ussd/pkg/adapters/memory"
	"github.com/bobcode/ussd/pkg/adapters/redis"
	"github.com/bobcode/ussd/pkg/menuyaml"
	"github.com/bobcode/ussd/pkg/ports"
	"github.com/bobcode/ussd/pkg/registry"
	"github.com/bobcode/ussd/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP gateway endpoint",
	Long: `Starts the engine behind POST /ussd. The menu comes from the menu
definition file; handlers must be registered by embedding applications,
so served menus are navigation-only unless you build your own binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		menuPath, _ := cmd.Flags().GetString("menu")
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if menuPath != "" {
			cfg.MenuPath = menuPath
		}

		logger := logging.New(logLevel(cfg.LogLevel))

		menu, err := menuyaml.LoadFile(cfg.MenuPath)
		if err != nil {
			return err
		}

		var store ports.SessionStore
		serializerOpts := []session.Option{session.WithLogger(logger)}
		switch cfg.Store {
		case "redis":
			rstore := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
				redis.WithPrefix(cfg.Redis.Prefix))
			defer rstore.Close()
			store = rstore
		case "memory", "":
			store = memory.NewStore()
		default:
			return fmt.Errorf("unknown store backend %q", cfg.Store)
		}

		promReg := prometheus.NewRegistry()
		app := ussd.New(menu, registry.New(),
			ussd.WithStore(store),
			ussd.WithLogger(logger),
			ussd.WithMetrics(metrics.New(promReg)),
			ussd.WithEngineConfig(cfg.Runtime()),
		)

		handler := httpapi.NewRouter(app,
			httpapi.WithLogger(logger),
			httpapi.WithSerializer(session.NewSerializer(serializerOpts...)),
			httpapi.WithMetricsRegistry(promReg),
		)

		srv := &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("listening", "addr", srv.Addr, "menu", cfg.MenuPath, "store", cfg.Store)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete, closing", "err", err)
				return srv.Close()
			}
		}
		return nil
	},
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
