package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/string-analyzer/internal/console"
	"github.com/ziadkadry99/string-analyzer/internal/logger"
	"github.com/ziadkadry99/string-analyzer/internal/metrics"
	"github.com/ziadkadry99/string-analyzer/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the string analyzer HTTP server",
	Long:  `Starts the REST API, the WebSocket query console and, when enabled, the Prometheus metrics endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		var m *metrics.Metrics
		if cfg.Metrics.Enabled {
			m = metrics.New()
		}

		svc, database, err := openService(cfg, log, m)
		if err != nil {
			return err
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:           cfg.Server.Port,
			AllowAll:       cfg.Server.AllowAllOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
		}, svc, m, log)
		console.RegisterRoutes(srv.Router(), svc, log)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			log.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("shutdown", zap.Error(err))
			}
		}()

		count, err := svc.Count(ctx)
		if err != nil {
			return errors.Wrap(err, "counting stored strings")
		}
		log.Info("stranalyzer server starting",
			zap.String("version", Version),
			zap.String(logger.FieldFile, database.Path()),
			zap.Int(logger.FieldCount, count),
			zap.Bool("metrics", m != nil),
		)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "port to listen on (overrides server.port)")
	rootCmd.AddCommand(serverCmd)
}
