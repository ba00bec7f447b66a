package tracking

import (
	"context"

	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
)

// RecordSource is the data-fetch collaborator at its boundary: it delivers
// raw records and nothing else. Upstream failures are its concern; this
// subsystem only sees complete bundles.
type RecordSource interface {
	Systems(ctx context.Context) ([]shared.Record, error)
	Planets(ctx context.Context) ([]shared.Record, error)
	Ships(ctx context.Context) ([]shared.Record, error)
	Flights(ctx context.Context) ([]shared.Record, error)
	Storage(ctx context.Context) ([]shared.Record, error)
	Contracts(ctx context.Context) ([]shared.Record, error)
}
