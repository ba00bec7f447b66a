package flight

import (
	"time"

	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
	"github.com/Taiyi-94/prun-universe-map/internal/domain/universe"
)

// Accessor-rule lists for flight and segment fields.
var (
	flightIDKeys       = []string{"FlightId", "flightId", "Id", "id"}
	flightShipIDKeys   = []string{"ShipId", "shipId", "VehicleId", "vehicleId"}
	flightOriginKeys   = []string{"Origin", "origin"}
	flightDestKeys     = []string{"Destination", "destination"}
	flightSegmentKeys  = []string{"Segments", "segments"}
	flightSegIdxKeys   = []string{"CurrentSegmentIndex", "currentSegmentIndex", "SegmentIndex", "segmentIndex"}
	flightProgressKeys = []string{"Progress", "progress", "Completion", "completion"}

	segmentOriginLineKeys = []string{"OriginLines", "originLines"}
	segmentDestLineKeys   = []string{"DestinationLines", "destinationLines"}
	segmentDepartureKeys  = []string{"DepartureTimeEpochMs", "departureTimeEpochMs", "Departure", "departure"}
	segmentArrivalKeys    = []string{"ArrivalTimeEpochMs", "arrivalTimeEpochMs", "Arrival", "arrival"}
	segmentDurationKeys   = []string{"Duration", "duration", "TransferTime", "transferTime"}
)

// RawSegment is one leg of a journey as delivered by the data-fetch layer:
// origin and destination location lines plus discrete timestamps.
type RawSegment struct {
	OriginLines      []any
	DestinationLines []any
	Departure        time.Time
	Arrival          time.Time
	Duration         time.Duration
}

// Segment is a RawSegment whose endpoints have been resolved against the
// snapshot's lookup tables. Only segments that actually cross between two
// different resolved systems participate in interpolation.
type Segment struct {
	From    *universe.LocationDetail
	To      *universe.LocationDetail
	FromPos shared.Vec2
	ToPos   shared.Vec2

	Departure time.Time
	Arrival   time.Time
	Duration  time.Duration
}

// CrossesSystems reports whether the segment runs between two different
// resolved systems.
func (s Segment) CrossesSystems() bool {
	return s.From != nil && s.To != nil &&
		s.From.SystemID != "" && s.To.SystemID != "" &&
		s.From.SystemID != s.To.SystemID
}

// Flight is one vehicle's multi-leg journey.
type Flight struct {
	ID     string
	ShipID string

	Origin      string
	Destination string

	Segments []RawSegment

	// Optional hints reported directly on the flight.
	CurrentSegmentIndex *int
	Progress            *float64
}

// FromRecord builds a Flight from a raw record. Flights without a vehicle
// reference are skipped.
func FromRecord(rec shared.Record) (*Flight, bool) {
	shipID, ok := rec.FirstString(flightShipIDKeys...)
	if !ok {
		return nil, false
	}

	f := &Flight{ShipID: shipID}
	f.ID, _ = rec.FirstString(flightIDKeys...)
	f.Origin, _ = rec.FirstString(flightOriginKeys...)
	f.Destination, _ = rec.FirstString(flightDestKeys...)

	if index, found := rec.FirstInt(flightSegIdxKeys...); found {
		f.CurrentSegmentIndex = &index
	}
	if progress, found := rec.FirstFloat(flightProgressKeys...); found {
		f.Progress = &progress
	}

	rawSegments, _ := rec.FirstSlice(flightSegmentKeys...)
	for _, raw := range rawSegments {
		segRec, isRec := shared.AsRecord(raw)
		if !isRec {
			continue
		}
		f.Segments = append(f.Segments, segmentFromRecord(segRec))
	}

	return f, true
}

func segmentFromRecord(rec shared.Record) RawSegment {
	seg := RawSegment{}
	seg.OriginLines, _ = rec.FirstSlice(segmentOriginLineKeys...)
	seg.DestinationLines, _ = rec.FirstSlice(segmentDestLineKeys...)
	seg.Departure, _ = rec.FirstTime(segmentDepartureKeys...)
	seg.Arrival, _ = rec.FirstTime(segmentArrivalKeys...)

	if seconds, ok := rec.FirstFloat(segmentDurationKeys...); ok && seconds > 0 {
		seg.Duration = time.Duration(seconds * float64(time.Second))
	}

	return seg
}
