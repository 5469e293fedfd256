package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gridboard/gridboard/pkg/config"
	"github.com/gridboard/gridboard/pkg/errorinfo"
	"github.com/gridboard/gridboard/pkg/events"
	"github.com/gridboard/gridboard/pkg/log"
	"github.com/gridboard/gridboard/pkg/metrics"
	"github.com/gridboard/gridboard/pkg/readiness"
	"github.com/gridboard/gridboard/pkg/storage"
	"github.com/gridboard/gridboard/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard server",
	Long: `Run the gridboard dashboard server.

The server loads the aggregated error data, refreshing it on the
configured interval, and serves the error tables plus the remediation
action forms.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("config", "c", "", "path to the YAML configuration file")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	// A local .env can point GRIDBOARD_CONFIG at the right file
	_ = godotenv.Load()

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("GRIDBOARD_CONFIG")
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// actedWorkflows lists workflows that already have a submitted action,
// so they stay visible on the dashboard even after their errors clear.
func actedWorkflows(store storage.Store) []string {
	records, err := store.ListActions()
	if err != nil {
		log.WithComponent("serve").Warn().Err(err).Msg("could not list acted workflows")
		return nil
	}
	seen := make(map[string]bool)
	var workflows []string
	for _, rec := range records {
		if !seen[rec.Workflow] {
			seen[rec.Workflow] = true
			workflows = append(workflows, rec.Workflow)
		}
	}
	return workflows
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log.Init(log.Config{
		Level:      log.Level(cfg.Log.Level),
		JSONOutput: cfg.Log.JSON,
		Output:     os.Stdout,
	})
	metrics.SetVersion(Version)

	store, err := storage.NewBoltStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()
	metrics.RegisterComponent("history", true, "")

	ready := readiness.NewClient(cfg.Readiness.URL, cfg.Readiness.TTL.Std(), cfg.Readiness.Timeout.Std())

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()
	go events.LogSubscriber(sub)
	defer broker.Unsubscribe(sub)

	cache := errorinfo.NewCache(cfg.DataLocation, cfg.RefreshInterval.Std(), ready, func(info *errorinfo.Info) {
		if cfg.IncludeAllACDCs {
			info.AddEmptySteps(actedWorkflows(store))
		}
		metrics.UpdateComponent("errorinfo", true, "")
		broker.Publish(&events.Event{
			Type:    events.EventCacheRefreshed,
			Message: "error cache refreshed",
		})
	})
	defer cache.Close()

	// Load eagerly so a bad data location fails at startup
	if _, err := cache.Get(false); err != nil {
		return fmt.Errorf("failed to load error data: %w", err)
	}

	server := web.NewServer(cfg, cache, store, broker)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info("shutting down")
	case err := <-errCh:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Stop(ctx)
}
