package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/moneyquest/moneyquest/internal/api"
	"github.com/moneyquest/moneyquest/internal/app/engagement"
	"github.com/moneyquest/moneyquest/internal/app/minigame"
	"github.com/moneyquest/moneyquest/internal/infra/catalog"
	"github.com/moneyquest/moneyquest/internal/infra/observability"
	"github.com/moneyquest/moneyquest/internal/infra/sqlite"
	"github.com/moneyquest/moneyquest/internal/logging"
)

const shutdownTimeout = 5 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "", "listen host (overrides [api].host)")
	serveCmd.Flags().Int("port", 0, "listen port (overrides [api].port)")
	serveCmd.Flags().String("catalog", "", "catalog YAML file (overrides [game].catalog_path)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the game core and its HTTP API",
	Long: `Start a fresh game from the catalog and serve it on the local HTTP API.
Progress lives in memory and is gone when the process exits.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if h, _ := cmd.Flags().GetString("host"); h != "" {
		cfg.API.Host = h
	}
	if p, _ := cmd.Flags().GetInt("port"); p != 0 {
		cfg.API.Port = p
	}
	if c, _ := cmd.Flags().GetString("catalog"); c != "" {
		cfg.Game.CatalogPath = c
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	cat, err := catalog.Load(cfg.Game.CatalogPath)
	if err != nil {
		return err
	}
	db, err := sqlite.Open(cfg.Journal.DSN)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer db.Close()

	hub := api.NewNotificationHub(db, log)
	game := engagement.New(cat, cfg.EngagementConfig(), db, log, hub, observability.Observer{})
	sessions := minigame.NewManager(cfg.SessionConfig(), cat, game, log)

	srv := api.NewServer(game, sessions, log)
	srv.SetHub(hub)
	srv.SetLedger(db)
	srv.SetVersion(version)
	if cfg.Metrics.Enabled {
		srv.EnableMetrics()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// SSE streams end with the server context.
		BaseContext: func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		log.Info("listening", zap.String("addr", httpSrv.Addr), zap.Bool("metrics", cfg.Metrics.Enabled))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		sessions.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("serve", zap.Error(err))
		return err
	}
	log.Info("stopped", zap.Int64("balance", game.Balance()))
	return nil
}
