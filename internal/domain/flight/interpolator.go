package flight

import (
	"time"

	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
)

// A flight whose final segment reaches this progress is treated as arrived:
// the vehicle is idle at its destination, no longer mid-transit.
const arrivalThreshold = 0.999

// TransitState is the continuously-interpolated position of a vehicle along
// its journey at one evaluation time.
type TransitState struct {
	Position     shared.Vec2
	Heading      shared.Vec2
	SegmentIndex int
	Progress     float64
	Arrived      bool
}

// PositionInterpolator computes a vehicle's current position, heading and
// transit status from a flight's resolved segments and the current time.
type PositionInterpolator struct {
	clock shared.Clock
}

// NewPositionInterpolator creates an interpolator. A nil clock defaults to
// the real clock.
func NewPositionInterpolator(clock shared.Clock) *PositionInterpolator {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &PositionInterpolator{clock: clock}
}

// Interpolate computes the transit state for a flight over its resolved,
// cross-system segments. Returns nil when there are no usable segments;
// an uninterpolatable flight is an expected outcome, not a defect.
func (p *PositionInterpolator) Interpolate(f *Flight, segments []Segment) *TransitState {
	return p.InterpolateAt(f, segments, p.clock.Now())
}

// InterpolateAt is Interpolate with an explicit evaluation time.
func (p *PositionInterpolator) InterpolateAt(f *Flight, segments []Segment, now time.Time) *TransitState {
	if len(segments) == 0 {
		return nil
	}

	// Active segment: explicit hint clamped to range, else the last segment.
	active := len(segments) - 1
	if f != nil && f.CurrentSegmentIndex != nil {
		active = clampInt(*f.CurrentSegmentIndex, 0, len(segments)-1)
	}
	segment := segments[active]
	onFinal := active == len(segments)-1

	progress := p.segmentProgress(f, segment, now, onFinal)

	position := shared.Lerp(segment.FromPos, segment.ToPos, progress)
	heading := segment.ToPos.Sub(segment.FromPos).Normalize()

	return &TransitState{
		Position:     position,
		Heading:      heading,
		SegmentIndex: active,
		Progress:     progress,
		Arrived:      onFinal && progress >= arrivalThreshold,
	}
}

// segmentProgress computes 0-1 progress within the active segment, in
// priority order:
//
//	(a) linear time-fraction between departure and arrival epochs
//	(b) time elapsed over reported duration
//	(c) the flight's explicit progress/completion hint
//	(d) binary fallback: 0 before the final segment, 1 on it
func (p *PositionInterpolator) segmentProgress(f *Flight, segment Segment, now time.Time, onFinal bool) float64 {
	if !segment.Departure.IsZero() && !segment.Arrival.IsZero() && segment.Arrival.After(segment.Departure) {
		elapsed := now.Sub(segment.Departure).Seconds()
		total := segment.Arrival.Sub(segment.Departure).Seconds()
		return clamp01(elapsed / total)
	}

	if segment.Duration > 0 && !segment.Departure.IsZero() {
		elapsed := now.Sub(segment.Departure).Seconds()
		return clamp01(elapsed / segment.Duration.Seconds())
	}

	if f != nil && f.Progress != nil {
		return clamp01(*f.Progress)
	}

	if onFinal {
		return 1
	}
	return 0
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func clampInt(v, low, high int) int {
	switch {
	case v < low:
		return low
	case v > high:
		return high
	default:
		return v
	}
}
