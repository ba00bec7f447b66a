package universe

import "strings"

// genericLabels are display labels that carry no information beyond the kind
// itself. A candidate with a real name beats one labelled literally "station".
var genericLabels = map[string]struct{}{
	"planet":  {},
	"station": {},
	"system":  {},
}

// Label-length tie-break threshold. Tunable heuristic; only the relative
// ordering it produces matters.
const labelLengthMargin = 2

// BestLocation picks the most specific, most complete LocationDetail among
// candidates describing the same physical place from different raw sources
// (a flight's textual origin label, a structured segment line, a vehicle's
// cached location). Returns nil when every candidate is nil.
//
// Tie-break order:
//  1. lower display priority (planet beats station beats system)
//  2. an explicit station/planet identifier beats none
//  3. among labelled candidates, a non-generic label beats a generic one
//  4. any label beats no label
//  5. a label longer by more than 2 characters beats a shorter one
//
// When no rule differentiates, the earlier candidate is kept.
func BestLocation(candidates ...*LocationDetail) *LocationDetail {
	var best *LocationDetail
	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}
		if best == nil || beats(candidate, best) {
			best = candidate
		}
	}
	return best
}

// beats reports whether challenger should replace incumbent. Rules are
// evaluated in order; the first one that differentiates decides.
func beats(challenger, incumbent *LocationDetail) bool {
	if challenger.DisplayPriority() != incumbent.DisplayPriority() {
		return challenger.DisplayPriority() < incumbent.DisplayPriority()
	}

	if challenger.HasExplicitID() != incumbent.HasExplicitID() {
		return challenger.HasExplicitID()
	}

	challengerLabelled := challenger.DisplayName != ""
	incumbentLabelled := incumbent.DisplayName != ""

	// Genericness only differentiates two labelled candidates; a generic
	// label still carries more than no label at all.
	if challengerLabelled && incumbentLabelled {
		challengerGeneric := isGenericLabel(challenger.DisplayName)
		incumbentGeneric := isGenericLabel(incumbent.DisplayName)
		if challengerGeneric != incumbentGeneric {
			return incumbentGeneric
		}
	}

	if challengerLabelled != incumbentLabelled {
		return challengerLabelled
	}

	if len(challenger.DisplayName) > len(incumbent.DisplayName)+labelLengthMargin {
		return true
	}

	return false
}

func isGenericLabel(label string) bool {
	_, generic := genericLabels[strings.ToLower(strings.TrimSpace(label))]
	return generic
}
