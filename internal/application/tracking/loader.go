package tracking

import (
	"context"
	"fmt"

	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
)

// SnapshotLoader pulls one complete raw bundle from the record source and
// parses it into a fresh snapshot.
type SnapshotLoader struct {
	source RecordSource
	clock  shared.Clock
}

// NewSnapshotLoader creates a loader. A nil clock defaults to the real clock.
func NewSnapshotLoader(source RecordSource, clock shared.Clock) *SnapshotLoader {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &SnapshotLoader{source: source, clock: clock}
}

// Load fetches every record kind and builds a snapshot. A failed fetch is a
// transport error, not a data error: the previous snapshot stays valid and
// the caller retries on the next tick.
func (l *SnapshotLoader) Load(ctx context.Context) (*Snapshot, error) {
	raw := RawData{}
	var err error

	if raw.Systems, err = l.source.Systems(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch systems: %w", err)
	}
	if raw.Planets, err = l.source.Planets(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch planets: %w", err)
	}
	if raw.Ships, err = l.source.Ships(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch ships: %w", err)
	}
	if raw.Flights, err = l.source.Flights(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch flights: %w", err)
	}
	if raw.Storage, err = l.source.Storage(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch storage: %w", err)
	}
	if raw.Contracts, err = l.source.Contracts(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch contracts: %w", err)
	}

	return NewSnapshot(raw, l.clock.Now()), nil
}
