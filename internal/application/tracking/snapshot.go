package tracking

import (
	"time"

	"github.com/google/uuid"

	"github.com/Taiyi-94/prun-universe-map/internal/domain/contract"
	"github.com/Taiyi-94/prun-universe-map/internal/domain/fleet"
	"github.com/Taiyi-94/prun-universe-map/internal/domain/flight"
	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
	"github.com/Taiyi-94/prun-universe-map/internal/domain/universe"
)

// Snapshot is one immutable bundle of raw data plus the lookup tables derived
// from it. Tables are pure functions of the snapshot and are built once on
// first use; a new snapshot gets fresh tables. Enrichment is single-threaded
// per snapshot, so the lazy builds need no locking.
type Snapshot struct {
	Version   string
	FetchedAt time.Time

	Systems   []universe.System
	Planets   []universe.Planet
	Ships     []*fleet.Ship
	Flights   []*flight.Flight
	Storage   []*fleet.StorageRecord
	Contracts []*contract.Contract

	resolver    *universe.SystemResolver
	planetIndex *universe.PlanetIndex
	extractor   *universe.LocationExtractor
	shipments   *contract.ShipmentIndex
	storageSel  *fleet.StorageSelector
}

// RawData is the unparsed record bundle delivered by the data-fetch
// collaborator.
type RawData struct {
	Systems   []shared.Record
	Planets   []shared.Record
	Ships     []shared.Record
	Flights   []shared.Record
	Storage   []shared.Record
	Contracts []shared.Record
}

// NewSnapshot parses a raw record bundle into a versioned snapshot. Records
// that cannot be parsed are dropped silently; incompleteness is the normal
// case.
func NewSnapshot(raw RawData, fetchedAt time.Time) *Snapshot {
	snap := &Snapshot{
		Version:   uuid.NewString(),
		FetchedAt: fetchedAt,
	}

	for _, rec := range raw.Systems {
		if sys, ok := universe.SystemFromRecord(rec); ok {
			snap.Systems = append(snap.Systems, sys)
		}
	}
	for _, rec := range raw.Planets {
		if planet, ok := universe.PlanetFromRecord(rec); ok {
			snap.Planets = append(snap.Planets, planet)
		}
	}
	for _, rec := range raw.Ships {
		if ship, ok := fleet.FromRecord(rec); ok {
			snap.Ships = append(snap.Ships, ship)
		}
	}
	for _, rec := range raw.Flights {
		if f, ok := flight.FromRecord(rec); ok {
			snap.Flights = append(snap.Flights, f)
		}
	}
	for _, rec := range raw.Storage {
		if record, ok := fleet.StorageFromRecord(rec); ok {
			snap.Storage = append(snap.Storage, record)
		}
	}
	for _, rec := range raw.Contracts {
		if c, ok := contract.FromRecord(rec); ok {
			snap.Contracts = append(snap.Contracts, c)
		}
	}

	return snap
}

// Resolver returns the snapshot's system resolver, built on first use.
func (s *Snapshot) Resolver() *universe.SystemResolver {
	if s.resolver == nil {
		s.resolver = universe.NewSystemResolver(s.Systems)
	}
	return s.resolver
}

// PlanetIndex returns the snapshot's planet lookup tables.
func (s *Snapshot) PlanetIndex() *universe.PlanetIndex {
	if s.planetIndex == nil {
		s.planetIndex = universe.NewPlanetIndex(s.Planets)
	}
	return s.planetIndex
}

// Extractor returns the snapshot's location extractor.
func (s *Snapshot) Extractor() *universe.LocationExtractor {
	if s.extractor == nil {
		s.extractor = universe.NewLocationExtractor(s.Resolver(), s.PlanetIndex())
	}
	return s.extractor
}

// ShipmentIndex returns the snapshot's shipment-contract index.
func (s *Snapshot) ShipmentIndex() *contract.ShipmentIndex {
	if s.shipments == nil {
		s.shipments = contract.BuildShipmentIndex(s.Contracts)
	}
	return s.shipments
}

// StorageSelector returns the snapshot's storage selector.
func (s *Snapshot) StorageSelector() *fleet.StorageSelector {
	if s.storageSel == nil {
		s.storageSel = fleet.NewStorageSelector(s.Storage)
	}
	return s.storageSel
}

// SystemPosition returns the map-space centerpoint of a resolved system.
func (s *Snapshot) SystemPosition(systemID string) (shared.Vec2, bool) {
	sys, ok := s.Resolver().System(systemID)
	if !ok {
		return shared.Vec2{}, false
	}
	return sys.Pos, true
}
