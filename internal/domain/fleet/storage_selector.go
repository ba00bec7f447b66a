package fleet

import (
	"strings"

	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
)

// Score weights for storage selection. Tunable heuristics: only the relative
// ordering they produce matters, not the exact values. A vehicle's true cargo
// hold is one of several structurally similar records sharing keys with
// warehouses and fuel tanks; the richest, most specific record must win.
const (
	scoreShipStoreTag = 100
	scoreShipTag      = 40
	scoreFuelTag      = 30
	scoreStoreTag     = 20
	scoreNotFixed     = 10
	scoreNumericField = 2
	scoreHasName      = 1
)

// StorageSelector picks the single storage record that actually belongs to a
// vehicle among candidates sharing overlapping keys. Built once per storage
// snapshot.
type StorageSelector struct {
	records []*StorageRecord
	byKey   map[string][]int
}

// NewStorageSelector indexes every record under each of its identifying keys.
func NewStorageSelector(records []*StorageRecord) *StorageSelector {
	s := &StorageSelector{
		records: records,
		byKey:   make(map[string][]int),
	}

	for i, record := range records {
		if record == nil {
			continue
		}
		for _, key := range []string{record.ID, record.NaturalID, record.OwnerID, record.Name} {
			if normalized, ok := normalizeStoreKey(key); ok {
				s.byKey[normalized] = append(s.byKey[normalized], i)
			}
		}
	}

	return s
}

// SelectFor returns the best storage record matching any of the vehicle's
// candidate keys, or nil. The choice is deterministic for a fixed candidate
// set regardless of input order: highest score wins, ties go to the most
// recently updated record, remaining ties to the lexicographically smallest
// record id.
func (s *StorageSelector) SelectFor(keys ...string) *StorageRecord {
	seen := make(map[int]struct{})
	var candidates []*StorageRecord
	for _, key := range keys {
		normalized, ok := normalizeStoreKey(key)
		if !ok {
			continue
		}
		for _, idx := range s.byKey[normalized] {
			if _, dup := seen[idx]; dup {
				continue
			}
			seen[idx] = struct{}{}
			candidates = append(candidates, s.records[idx])
		}
	}

	// Score side-table scoped to this resolution pass.
	scores := make(map[*StorageRecord]float64, len(candidates))

	var best *StorageRecord
	for _, candidate := range candidates {
		if best == nil || outranks(candidate, best, scores) {
			best = candidate
		}
	}
	return best
}

// ScoreRecord computes the additive selection score for one record, memoized
// in the pass-scoped side-table.
func ScoreRecord(record *StorageRecord, scores map[*StorageRecord]float64) float64 {
	if cached, ok := scores[record]; ok {
		return cached
	}

	score := typeTagScore(record.Type)

	if record.HasFixed && !record.Fixed {
		score += scoreNotFixed
	}
	for _, field := range []*float64{
		record.WeightCapacity, record.VolumeCapacity,
		record.WeightLoad, record.VolumeLoad,
	} {
		if field != nil {
			score += scoreNumericField
		}
	}
	if record.Name != "" {
		score += scoreHasName
	}

	scores[record] = score
	return score
}

// typeTagScore ranks the record's type tag, strongest matching tier only.
func typeTagScore(tag string) float64 {
	normalized := shared.FoldTag(tag)
	switch {
	case strings.Contains(normalized, "SHIPSTORE"):
		return scoreShipStoreTag
	case strings.Contains(normalized, "SHIP"):
		return scoreShipTag
	case strings.Contains(normalized, "FUEL"):
		return scoreFuelTag
	case strings.Contains(normalized, "STORE"):
		return scoreStoreTag
	default:
		return 0
	}
}

func outranks(challenger, incumbent *StorageRecord, scores map[*StorageRecord]float64) bool {
	challengerScore := ScoreRecord(challenger, scores)
	incumbentScore := ScoreRecord(incumbent, scores)
	if challengerScore != incumbentScore {
		return challengerScore > incumbentScore
	}

	// Missing timestamps sort as earliest possible.
	if !challenger.Timestamp.Equal(incumbent.Timestamp) {
		return challenger.Timestamp.After(incumbent.Timestamp)
	}

	// Final order-independence tie-break; equal ids keep the first-seen
	// record.
	return challenger.ID < incumbent.ID
}

func normalizeStoreKey(key string) (string, bool) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", false
	}
	return strings.ToUpper(trimmed), true
}
