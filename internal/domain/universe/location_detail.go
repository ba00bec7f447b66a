package universe

// DisplayKind classifies which level of detail a location's display label
// describes.
type DisplayKind string

const (
	KindPlanet  DisplayKind = "planet"
	KindStation DisplayKind = "station"
	KindSystem  DisplayKind = "system"
)

// Priority ranks specificity: planet beats station beats system.
// Lower is more specific.
func (k DisplayKind) Priority() int {
	switch k {
	case KindPlanet:
		return 0
	case KindStation:
		return 1
	case KindSystem:
		return 2
	default:
		return 3
	}
}

// LocationDetail is the normalized, render-ready description of one physical
// place, derived fresh per resolution pass and never persisted. Fields are
// filled from whichever raw sources carried them; absent fields stay empty.
type LocationDetail struct {
	SystemID   string
	SystemName string

	PlanetID        string
	PlanetNaturalID string
	PlanetName      string

	StationID        string
	StationNaturalID string
	StationName      string

	DisplayName string
	DisplayKind DisplayKind
}

// DisplayPriority is the specificity rank of the chosen display label.
func (d *LocationDetail) DisplayPriority() int {
	return d.DisplayKind.Priority()
}

// HasExplicitID reports whether the detail carries a station or planet
// identifier, as opposed to labels alone.
func (d *LocationDetail) HasExplicitID() bool {
	return d.StationNaturalID != "" || d.StationID != "" ||
		d.PlanetNaturalID != "" || d.PlanetID != ""
}

// IsEmpty reports whether nothing at all was resolved.
func (d *LocationDetail) IsEmpty() bool {
	return d.SystemID == "" && d.SystemName == "" &&
		d.PlanetID == "" && d.PlanetNaturalID == "" && d.PlanetName == "" &&
		d.StationID == "" && d.StationNaturalID == "" && d.StationName == "" &&
		d.DisplayName == ""
}

// fill merges another partial detail into this one, first non-empty wins per
// field. Later entries never overwrite an already-filled field.
func (d LocationDetail) fill(other LocationDetail) LocationDetail {
	d.SystemID = firstNonEmpty(d.SystemID, other.SystemID)
	d.SystemName = firstNonEmpty(d.SystemName, other.SystemName)
	d.PlanetID = firstNonEmpty(d.PlanetID, other.PlanetID)
	d.PlanetNaturalID = firstNonEmpty(d.PlanetNaturalID, other.PlanetNaturalID)
	d.PlanetName = firstNonEmpty(d.PlanetName, other.PlanetName)
	d.StationID = firstNonEmpty(d.StationID, other.StationID)
	d.StationNaturalID = firstNonEmpty(d.StationNaturalID, other.StationNaturalID)
	d.StationName = firstNonEmpty(d.StationName, other.StationName)
	return d
}

func firstNonEmpty(current, candidate string) string {
	if current != "" {
		return current
	}
	return candidate
}
