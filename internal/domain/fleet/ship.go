package fleet

import (
	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
)

// Accessor-rule lists for ship fields. Ships arrive with several redundant,
// inconsistently-named identity and location fields; each concept is read
// through one ordered list, first present wins.
var (
	shipIDKeys           = []string{"ShipId", "shipId", "Id", "id"}
	shipAltIDKeys        = []string{"IdShip", "AddressableId", "addressableId"}
	shipRegistrationKeys = []string{"Registration", "registration"}
	shipNameKeys         = []string{"Name", "name", "ShipName", "shipName"}
	shipBlueprintKeys    = []string{"BlueprintNaturalId", "blueprintNaturalId", "Blueprint", "blueprint"}
	shipStoreIDKeys      = []string{"StoreId", "storeId", "StorageId", "storageId"}
	shipStoreRecordKeys  = []string{"Store", "store", "Storage", "storage"}
	shipLocationLineKeys = []string{"AddressLines", "addressLines", "CurrentLocationLines", "Lines", "lines"}
	shipLocationTextKeys = []string{"Location", "location", "CurrentLocation", "LastLocation", "lastLocation"}
	shipProgressKeys     = []string{"Progress", "progress", "Completion", "completion"}
	shipSegIdxKeys       = []string{"CurrentSegmentIndex", "currentSegmentIndex", "SegmentIndex", "segmentIndex"}
)

// Ship is one tracked vehicle. Identity fields are parsed eagerly; the raw
// record is retained because capacity, location and storage concepts keep
// being fished from it with fallback chains during enrichment.
type Ship struct {
	ID           string
	AltID        string
	Registration string
	Name         string
	Blueprint    string

	rec shared.Record
}

// FromRecord builds a Ship from a raw record. Ships without any identity are
// skipped, not errors.
func FromRecord(rec shared.Record) (*Ship, bool) {
	id, hasID := rec.FirstString(shipIDKeys...)
	registration, hasReg := rec.FirstString(shipRegistrationKeys...)
	if !hasID && !hasReg {
		return nil, false
	}

	ship := &Ship{ID: id, Registration: registration, rec: rec}
	ship.AltID, _ = rec.FirstString(shipAltIDKeys...)
	ship.Name, _ = rec.FirstString(shipNameKeys...)
	ship.Blueprint, _ = rec.FirstString(shipBlueprintKeys...)

	if ship.ID == "" {
		ship.ID = ship.Registration
	}

	return ship, true
}

// Record exposes the retained raw record for fallback-chain reads.
func (s *Ship) Record() shared.Record {
	return s.rec
}

// DisplayName is the label a renderer would show for the ship.
func (s *Ship) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Registration
}

// StoreKeys returns every candidate key that might reference the ship's
// storage record: direct ids, registration, and ids/names nested in the
// embedded storage sub-record.
func (s *Ship) StoreKeys() []string {
	var keys []string
	appendKey := func(key string, ok bool) {
		if ok && key != "" {
			keys = append(keys, key)
		}
	}

	appendKey(s.ID, true)
	appendKey(s.AltID, true)
	appendKey(s.Registration, true)
	appendKey(s.rec.FirstString(shipStoreIDKeys...))

	if store, ok := s.rec.FirstRecord(shipStoreRecordKeys...); ok {
		appendKey(store.FirstString(storageIDKeys...))
		appendKey(store.FirstString(storageNaturalIDKeys...))
		appendKey(store.FirstString(storageNameKeys...))
	}

	return keys
}

// EmbeddedStore parses the ship's embedded storage sub-record, if present.
func (s *Ship) EmbeddedStore() (*StorageRecord, bool) {
	store, ok := s.rec.FirstRecord(shipStoreRecordKeys...)
	if !ok {
		return nil, false
	}
	return StorageFromRecord(store)
}

// ProgressHint returns a transit progress fraction reported directly on the
// ship, if any. Some sources put the hint on the vehicle instead of its
// flight.
func (s *Ship) ProgressHint() (float64, bool) {
	return s.rec.FirstFloat(shipProgressKeys...)
}

// SegmentIndexHint returns a current-segment index reported directly on the
// ship, if any.
func (s *Ship) SegmentIndexHint() (int, bool) {
	return s.rec.FirstInt(shipSegIdxKeys...)
}

// LocationEntries returns the ship's own raw location references, structured
// lines first, textual fields after.
func (s *Ship) LocationEntries() []any {
	var entries []any
	if lines, ok := s.rec.FirstSlice(shipLocationLineKeys...); ok {
		entries = append(entries, lines...)
	}
	for _, key := range shipLocationTextKeys {
		if text, ok := shared.CoerceString(s.rec[key]); ok {
			entries = append(entries, text)
			break
		}
	}
	return entries
}
