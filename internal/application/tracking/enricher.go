package tracking

import (
	"github.com/Taiyi-94/prun-universe-map/internal/domain/fleet"
	"github.com/Taiyi-94/prun-universe-map/internal/domain/flight"
	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
	"github.com/Taiyi-94/prun-universe-map/internal/domain/universe"
)

// ShipDescriptor is the render-ready bundle for one vehicle: canonical
// location, load state and interpolated transit position, each possibly
// absent. The rendering collaborator owns every visual decision beyond this.
type ShipDescriptor struct {
	ShipID       string
	Name         string
	Registration string

	Location *universe.LocationDetail
	Load     *fleet.ShipLoadInfo
	Transit  *flight.TransitState
}

// Enricher composes the domain components per vehicle into descriptors.
// Vehicles are processed independently; one vehicle that cannot be rendered
// meaningfully is omitted and never aborts the rest.
type Enricher struct {
	clock shared.Clock
}

// NewEnricher creates an enricher. A nil clock defaults to the real clock.
func NewEnricher(clock shared.Clock) *Enricher {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Enricher{clock: clock}
}

// EnrichAll produces descriptors for every renderable ship in the snapshot.
func (e *Enricher) EnrichAll(snap *Snapshot) []ShipDescriptor {
	flightsByShip := make(map[string]*flight.Flight, len(snap.Flights))
	for _, f := range snap.Flights {
		if _, taken := flightsByShip[f.ShipID]; !taken {
			flightsByShip[f.ShipID] = f
		}
	}

	interpolator := flight.NewPositionInterpolator(e.clock)
	aggregator := fleet.NewLoadAggregator(snap.ShipmentIndex())
	now := e.clock.Now()

	descriptors := make([]ShipDescriptor, 0, len(snap.Ships))
	for _, ship := range snap.Ships {
		activeFlight := flightsByShip[ship.ID]
		if activeFlight == nil && ship.Registration != "" {
			activeFlight = flightsByShip[ship.Registration]
		}

		descriptor := ShipDescriptor{
			ShipID:       ship.ID,
			Name:         ship.DisplayName(),
			Registration: ship.Registration,
		}

		var segments []flight.Segment
		if activeFlight != nil {
			segments = e.resolveSegments(snap, activeFlight)
			journey := withShipHints(activeFlight, ship)
			descriptor.Transit = interpolator.InterpolateAt(journey, segments, now)
			if descriptor.Transit != nil && descriptor.Transit.Arrived {
				descriptor.Transit = nil
			}
		}

		descriptor.Location = e.resolveLocation(snap, ship, activeFlight, segments, descriptor.Transit)

		store := snap.StorageSelector().SelectFor(ship.StoreKeys()...)
		descriptor.Load = aggregator.Aggregate(ship, store)

		if descriptor.Location == nil && descriptor.Load == nil && descriptor.Transit == nil {
			continue
		}
		descriptors = append(descriptors, descriptor)
	}

	return descriptors
}

// withShipHints fills the flight's missing progress/segment-index hints from
// fields reported directly on the vehicle. Hints on the flight itself win;
// the flight is never mutated.
func withShipHints(f *flight.Flight, ship *fleet.Ship) *flight.Flight {
	if f.Progress != nil && f.CurrentSegmentIndex != nil {
		return f
	}

	journey := *f
	if journey.Progress == nil {
		if progress, ok := ship.ProgressHint(); ok {
			journey.Progress = &progress
		}
	}
	if journey.CurrentSegmentIndex == nil {
		if index, ok := ship.SegmentIndexHint(); ok {
			journey.CurrentSegmentIndex = &index
		}
	}
	return &journey
}

// resolveLocation derives LocationDetail candidates from every independent
// source describing the ship's position and lets the selector pick the most
// specific, most complete one.
func (e *Enricher) resolveLocation(
	snap *Snapshot,
	ship *fleet.Ship,
	activeFlight *flight.Flight,
	segments []flight.Segment,
	transit *flight.TransitState,
) *universe.LocationDetail {
	extractor := snap.Extractor()

	candidates := []*universe.LocationDetail{
		extractor.Extract(ship.LocationEntries()...),
	}

	if activeFlight != nil {
		// While mid-transit the destination describes where the ship is
		// headed; once arrived it is where the ship sits.
		if transit != nil && transit.SegmentIndex < len(segments) {
			candidates = append(candidates, segments[transit.SegmentIndex].To)
		}
		if activeFlight.Destination != "" {
			candidates = append(candidates, extractor.Extract(activeFlight.Destination))
		}
		if activeFlight.Origin != "" {
			candidates = append(candidates, extractor.Extract(activeFlight.Origin))
		}
	}

	return universe.BestLocation(candidates...)
}

// resolveSegments attaches resolved endpoints and centerpoints to a flight's
// raw segments, keeping only the legs that cross between two different
// resolved systems.
func (e *Enricher) resolveSegments(snap *Snapshot, f *flight.Flight) []flight.Segment {
	extractor := snap.Extractor()

	var resolved []flight.Segment
	for _, raw := range f.Segments {
		segment := flight.Segment{
			From:      extractor.Extract(raw.OriginLines...),
			To:        extractor.Extract(raw.DestinationLines...),
			Departure: raw.Departure,
			Arrival:   raw.Arrival,
			Duration:  raw.Duration,
		}
		if !segment.CrossesSystems() {
			continue
		}

		fromPos, fromOK := snap.SystemPosition(segment.From.SystemID)
		toPos, toOK := snap.SystemPosition(segment.To.SystemID)
		if !fromOK || !toOK {
			continue
		}
		segment.FromPos = fromPos
		segment.ToPos = toPos

		resolved = append(resolved, segment)
	}

	return resolved
}
