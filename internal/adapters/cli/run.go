package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Taiyi-94/prun-universe-map/internal/adapters/api"
	"github.com/Taiyi-94/prun-universe-map/internal/adapters/feed"
	"github.com/Taiyi-94/prun-universe-map/internal/adapters/persistence"
	"github.com/Taiyi-94/prun-universe-map/internal/application/mirror"
	"github.com/Taiyi-94/prun-universe-map/internal/application/tracking"
	"github.com/Taiyi-94/prun-universe-map/internal/infrastructure/config"
	"github.com/Taiyi-94/prun-universe-map/internal/infrastructure/database"
)

// NewRunCommand creates the daemon run command
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the refresh daemon and render feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoadConfig(configPath)
			return runDaemon(cfg)
		},
	}
}

func runDaemon(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("connecting to %s mirror store...", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate mirror store: %w", err)
	}

	client := api.NewFIOClient(&cfg.API)
	loader := tracking.NewSnapshotLoader(client, nil)
	enricher := tracking.NewEnricher(nil)
	mirrorService := mirror.NewService(persistence.NewGormContractMirrorRepository(db))

	hub := feed.NewHub()
	go hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc(cfg.Feed.Path, hub.ServeWS)
	server := &http.Server{Addr: cfg.Feed.Address, Handler: mux}
	go func() {
		log.Printf("feed listening on ws://%s%s", cfg.Feed.Address, cfg.Feed.Path)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("feed server error: %v", err)
		}
	}()
	defer server.Shutdown(context.Background())

	refresh := time.NewTicker(cfg.Daemon.RefreshInterval)
	defer refresh.Stop()
	mirrorTick := time.NewTicker(cfg.Daemon.MirrorInterval)
	defer mirrorTick.Stop()

	var current *tracking.Snapshot

	refreshOnce := func() {
		snap, err := loader.Load(ctx)
		if err != nil {
			// The previous snapshot stays valid; retry on the next tick.
			log.Printf("refresh failed: %v", err)
			return
		}
		current = snap

		descriptors := enricher.EnrichAll(snap)
		hub.BroadcastDescriptors(snap.Version, descriptors)
		if verbose {
			log.Printf("snapshot %s: %d ships enriched", snap.Version, len(descriptors))
		}
	}

	refreshOnce()

	for {
		select {
		case <-ctx.Done():
			log.Println("shutting down")
			return nil
		case <-refresh.C:
			refreshOnce()
		case <-mirrorTick.C:
			if current == nil {
				continue
			}
			if err := mirrorService.MirrorSnapshot(ctx, current); err != nil {
				log.Printf("mirror failed: %v", err)
			}
		}
	}
}
