package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Taiyi-94/prun-universe-map/internal/adapters/api"
	"github.com/Taiyi-94/prun-universe-map/internal/application/tracking"
	"github.com/Taiyi-94/prun-universe-map/internal/infrastructure/config"
)

// NewSnapshotCommand creates the one-shot snapshot command: fetch, enrich,
// print the descriptors as JSON, exit. Useful for debugging resolution
// without a renderer attached.
func NewSnapshotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch one snapshot, enrich it and print the descriptors",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoadConfig(configPath)

			client := api.NewFIOClient(&cfg.API)
			loader := tracking.NewSnapshotLoader(client, nil)
			enricher := tracking.NewEnricher(nil)

			snap, err := loader.Load(context.Background())
			if err != nil {
				return fmt.Errorf("failed to load snapshot: %w", err)
			}

			descriptors := enricher.EnrichAll(snap)

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(descriptors); err != nil {
				return fmt.Errorf("failed to encode descriptors: %w", err)
			}

			fmt.Fprintf(os.Stderr, "snapshot %s: %d/%d ships enriched\n",
				snap.Version, len(descriptors), len(snap.Ships))
			return nil
		},
	}
}
