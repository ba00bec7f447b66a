package flight_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taiyi-94/prun-universe-map/internal/domain/flight"
	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
	"github.com/Taiyi-94/prun-universe-map/internal/domain/universe"
)

var flightEpoch = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func crossingSegment(from, to shared.Vec2, departure, arrival time.Time) flight.Segment {
	return flight.Segment{
		From:      &universe.LocationDetail{SystemID: "sys-from"},
		To:        &universe.LocationDetail{SystemID: "sys-to"},
		FromPos:   from,
		ToPos:     to,
		Departure: departure,
		Arrival:   arrival,
	}
}

func intHint(v int) *int { return &v }

func progressHint(v float64) *float64 { return &v }

func TestInterpolateAt_MidSegmentByEpochFraction(t *testing.T) {
	// Arrange - two legs, evaluation time halfway through the second
	interp := flight.NewPositionInterpolator(shared.NewMockClock(flightEpoch))
	segments := []flight.Segment{
		crossingSegment(shared.Vec2{X: 0, Y: 0}, shared.Vec2{X: 10, Y: 0},
			flightEpoch.Add(-2*time.Hour), flightEpoch.Add(-time.Hour)),
		crossingSegment(shared.Vec2{X: 10, Y: 0}, shared.Vec2{X: 10, Y: 20},
			flightEpoch.Add(-time.Hour), flightEpoch.Add(time.Hour)),
	}
	journey := &flight.Flight{ShipID: "ship-1", CurrentSegmentIndex: intHint(1)}

	// Act
	state := interp.InterpolateAt(journey, segments, flightEpoch)

	// Assert
	require.NotNil(t, state)
	assert.Equal(t, 1, state.SegmentIndex)
	assert.InDelta(t, 0.5, state.Progress, 1e-9)
	assert.InDelta(t, 10, state.Position.X, 1e-9)
	assert.InDelta(t, 10, state.Position.Y, 1e-9)
	assert.InDelta(t, 0, state.Heading.X, 1e-9)
	assert.InDelta(t, 1, state.Heading.Y, 1e-9)
	assert.False(t, state.Arrived)
}

func TestInterpolateAt_ProgressMonotonicOverTime(t *testing.T) {
	interp := flight.NewPositionInterpolator(nil)
	segments := []flight.Segment{
		crossingSegment(shared.Vec2{X: 0, Y: 0}, shared.Vec2{X: 100, Y: 0},
			flightEpoch, flightEpoch.Add(time.Hour)),
	}
	journey := &flight.Flight{ShipID: "ship-2"}

	previous := -1.0
	for offset := -10 * time.Minute; offset <= 70*time.Minute; offset += time.Minute {
		state := interp.InterpolateAt(journey, segments, flightEpoch.Add(offset))
		require.NotNil(t, state)
		assert.GreaterOrEqual(t, state.Progress, previous)
		assert.GreaterOrEqual(t, state.Progress, 0.0)
		assert.LessOrEqual(t, state.Progress, 1.0)
		previous = state.Progress
	}
}

func TestInterpolateAt_ClampsBeforeDepartureAndAfterArrival(t *testing.T) {
	interp := flight.NewPositionInterpolator(nil)
	segments := []flight.Segment{
		crossingSegment(shared.Vec2{X: 0, Y: 0}, shared.Vec2{X: 8, Y: 6},
			flightEpoch, flightEpoch.Add(time.Hour)),
	}
	journey := &flight.Flight{ShipID: "ship-3"}

	before := interp.InterpolateAt(journey, segments, flightEpoch.Add(-time.Hour))
	after := interp.InterpolateAt(journey, segments, flightEpoch.Add(2*time.Hour))

	require.NotNil(t, before)
	assert.InDelta(t, 0, before.Progress, 1e-9)
	assert.Equal(t, shared.Vec2{X: 0, Y: 0}, before.Position)
	assert.False(t, before.Arrived)

	require.NotNil(t, after)
	assert.InDelta(t, 1, after.Progress, 1e-9)
	assert.Equal(t, shared.Vec2{X: 8, Y: 6}, after.Position)
	assert.True(t, after.Arrived)
}

func TestInterpolateAt_ArrivedOnlyOnFinalSegment(t *testing.T) {
	interp := flight.NewPositionInterpolator(nil)
	segments := []flight.Segment{
		crossingSegment(shared.Vec2{X: 0, Y: 0}, shared.Vec2{X: 10, Y: 0},
			flightEpoch, flightEpoch.Add(time.Hour)),
		crossingSegment(shared.Vec2{X: 10, Y: 0}, shared.Vec2{X: 20, Y: 0},
			flightEpoch.Add(time.Hour), flightEpoch.Add(2*time.Hour)),
	}
	journey := &flight.Flight{ShipID: "ship-4", CurrentSegmentIndex: intHint(0)}

	// Full progress on a non-final segment is not arrival
	state := interp.InterpolateAt(journey, segments, flightEpoch.Add(90*time.Minute))

	require.NotNil(t, state)
	assert.Equal(t, 0, state.SegmentIndex)
	assert.InDelta(t, 1, state.Progress, 1e-9)
	assert.False(t, state.Arrived)
}

func TestInterpolateAt_SegmentHintClampedToRange(t *testing.T) {
	interp := flight.NewPositionInterpolator(nil)
	segments := []flight.Segment{
		crossingSegment(shared.Vec2{X: 0, Y: 0}, shared.Vec2{X: 10, Y: 0},
			flightEpoch, flightEpoch.Add(time.Hour)),
	}

	high := interp.InterpolateAt(&flight.Flight{ShipID: "s", CurrentSegmentIndex: intHint(7)}, segments, flightEpoch)
	low := interp.InterpolateAt(&flight.Flight{ShipID: "s", CurrentSegmentIndex: intHint(-3)}, segments, flightEpoch)

	require.NotNil(t, high)
	assert.Equal(t, 0, high.SegmentIndex)
	require.NotNil(t, low)
	assert.Equal(t, 0, low.SegmentIndex)
}

func TestInterpolateAt_DurationFallbackWhenArrivalMissing(t *testing.T) {
	interp := flight.NewPositionInterpolator(nil)
	segment := crossingSegment(shared.Vec2{X: 0, Y: 0}, shared.Vec2{X: 4, Y: 0}, flightEpoch, time.Time{})
	segment.Duration = 2 * time.Hour

	state := interp.InterpolateAt(&flight.Flight{ShipID: "ship-5"}, []flight.Segment{segment}, flightEpoch.Add(time.Hour))

	require.NotNil(t, state)
	assert.InDelta(t, 0.5, state.Progress, 1e-9)
	assert.InDelta(t, 2, state.Position.X, 1e-9)
}

func TestInterpolateAt_ExplicitProgressHintWhenNoTimes(t *testing.T) {
	interp := flight.NewPositionInterpolator(nil)
	segment := crossingSegment(shared.Vec2{X: 0, Y: 0}, shared.Vec2{X: 10, Y: 0}, time.Time{}, time.Time{})
	journey := &flight.Flight{ShipID: "ship-6", Progress: progressHint(1.7)}

	state := interp.InterpolateAt(journey, []flight.Segment{segment}, flightEpoch)

	require.NotNil(t, state)
	// Hints outside 0-1 are clamped
	assert.InDelta(t, 1, state.Progress, 1e-9)
	assert.True(t, state.Arrived)
}

func TestInterpolateAt_BinaryFallback(t *testing.T) {
	interp := flight.NewPositionInterpolator(nil)
	bare := func(from, to shared.Vec2) flight.Segment {
		return crossingSegment(from, to, time.Time{}, time.Time{})
	}
	segments := []flight.Segment{
		bare(shared.Vec2{X: 0, Y: 0}, shared.Vec2{X: 10, Y: 0}),
		bare(shared.Vec2{X: 10, Y: 0}, shared.Vec2{X: 20, Y: 0}),
	}

	nonFinal := interp.InterpolateAt(&flight.Flight{ShipID: "s", CurrentSegmentIndex: intHint(0)}, segments, flightEpoch)
	final := interp.InterpolateAt(&flight.Flight{ShipID: "s", CurrentSegmentIndex: intHint(1)}, segments, flightEpoch)

	require.NotNil(t, nonFinal)
	assert.InDelta(t, 0, nonFinal.Progress, 1e-9)
	require.NotNil(t, final)
	assert.InDelta(t, 1, final.Progress, 1e-9)
	assert.True(t, final.Arrived)
}

func TestInterpolateAt_NoSegmentsYieldsNil(t *testing.T) {
	interp := flight.NewPositionInterpolator(nil)

	assert.Nil(t, interp.InterpolateAt(&flight.Flight{ShipID: "ship-7"}, nil, flightEpoch))
}

func TestFlightFromRecord(t *testing.T) {
	rec := shared.Record{
		"FlightId":            "fl-1",
		"ShipId":              "ship-8",
		"Origin":              "Promitor",
		"Destination":         "Montem",
		"CurrentSegmentIndex": float64(1),
		"Segments": []any{
			map[string]any{
				"OriginLines":          []any{map[string]any{"LineType": "PLANET", "LineName": "Promitor"}},
				"DestinationLines":     []any{map[string]any{"LineType": "PLANET", "LineName": "Montem"}},
				"DepartureTimeEpochMs": float64(1700000000000),
				"ArrivalTimeEpochMs":   float64(1700003600000),
			},
			map[string]any{
				"Duration": float64(7200),
			},
		},
	}

	parsed, ok := flight.FromRecord(rec)

	require.True(t, ok)
	assert.Equal(t, "fl-1", parsed.ID)
	assert.Equal(t, "ship-8", parsed.ShipID)
	require.NotNil(t, parsed.CurrentSegmentIndex)
	assert.Equal(t, 1, *parsed.CurrentSegmentIndex)
	require.Len(t, parsed.Segments, 2)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), parsed.Segments[0].Departure)
	assert.Equal(t, 2*time.Hour, parsed.Segments[1].Duration)
	require.Len(t, parsed.Segments[0].OriginLines, 1)

	_, ok = flight.FromRecord(shared.Record{"FlightId": "fl-2"})
	assert.False(t, ok)
}
