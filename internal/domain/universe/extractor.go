package universe

import (
	"strings"

	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
)

// Accessor-rule lists for the fields a location line may carry. Ordered by
// how specific the source usually is; the first present value wins.
var (
	lineTypeKeys    = []string{"LineType", "lineType", "Type", "type"}
	lineIDKeys      = []string{"LineId", "lineId", "Id", "id"}
	lineNaturalKeys = []string{"LineNaturalId", "lineNaturalId", "NaturalId", "naturalId"}
	lineNameKeys    = []string{"LineName", "lineName", "Name", "name"}
)

// LocationExtractor turns heterogeneous location lines (strings or tagged
// records) into one normalized LocationDetail. It holds the per-snapshot
// lookup tables but no mutable state; every Extract call is independent.
type LocationExtractor struct {
	systems *SystemResolver
	planets *PlanetIndex
}

// NewLocationExtractor creates an extractor over the snapshot's lookup tables.
func NewLocationExtractor(systems *SystemResolver, planets *PlanetIndex) *LocationExtractor {
	return &LocationExtractor{systems: systems, planets: planets}
}

// fragment is one pure merge step: the fields a single entry contributed,
// plus its display-label candidate.
type fragment struct {
	detail LocationDetail
	label  string
	kind   DisplayKind
	ok     bool
}

// displayCandidate tracks the highest-priority non-empty label seen so far.
// Among equal priority the first non-empty label wins.
type displayCandidate struct {
	label string
	kind  DisplayKind
	set   bool
}

func (c *displayCandidate) consider(label string, kind DisplayKind) {
	if label == "" {
		return
	}
	if !c.set || kind.Priority() < c.kind.Priority() {
		c.label = label
		c.kind = kind
		c.set = true
	}
}

// Extract builds one LocationDetail from an ordered list of location lines.
// Fields accumulate left-to-right, first non-empty value per field wins. A
// nested list entry is flattened one level. Returns nil when nothing at all
// could be resolved.
func (e *LocationExtractor) Extract(entries ...any) *LocationDetail {
	flattened := make([]any, 0, len(entries))
	for _, entry := range entries {
		if nested, ok := entry.([]any); ok {
			flattened = append(flattened, nested...)
			continue
		}
		flattened = append(flattened, entry)
	}

	detail := LocationDetail{}
	var display displayCandidate

	for _, entry := range flattened {
		frag := e.classify(entry)
		if !frag.ok {
			continue
		}
		detail = detail.fill(frag.detail)
		display.consider(frag.label, frag.kind)
	}

	// Last resort: no entry yielded a system id directly, rescan purely for
	// a resolvable system reference.
	if detail.SystemID == "" {
		for _, entry := range flattened {
			if id, ok := e.resolveSystemRef(entry); ok {
				detail.SystemID = id
				detail.SystemName = firstNonEmpty(detail.SystemName, e.systems.NameOf(id))
				break
			}
		}
	}

	if display.set {
		detail.DisplayName = display.label
		detail.DisplayKind = display.kind
	}

	if detail.IsEmpty() {
		return nil
	}
	return &detail
}

// classify produces the merge fragment for one entry. Records are classified
// by their explicit type tag when present; bare strings are tried first as a
// planet identifier, then as a resolvable system reference.
func (e *LocationExtractor) classify(entry any) fragment {
	if rec, ok := shared.AsRecord(entry); ok {
		tag, _ := rec.FirstString(lineTypeKeys...)
		switch strings.ToLower(strings.TrimSpace(tag)) {
		case "planet":
			return e.planetFragment(rec)
		case "station":
			return e.stationFragment(rec)
		case "system":
			return e.systemFragment(rec)
		}
		// Untagged record: fish its best identifier and classify it like a
		// bare string.
		for _, keys := range [][]string{lineNaturalKeys, lineIDKeys, lineNameKeys} {
			if key, found := rec.FirstString(keys...); found {
				return e.stringFragment(key)
			}
		}
		return fragment{}
	}

	if key, ok := NormalizeKey(entry); ok {
		return e.stringFragment(key)
	}
	return fragment{}
}

func (e *LocationExtractor) planetFragment(rec shared.Record) fragment {
	detail := LocationDetail{}
	detail.PlanetID, _ = rec.FirstString(lineIDKeys...)
	detail.PlanetNaturalID, _ = rec.FirstString(lineNaturalKeys...)
	detail.PlanetName, _ = rec.FirstString(lineNameKeys...)

	// Enrich from the planet table: the line rarely carries the owning system.
	for _, candidate := range []string{detail.PlanetID, detail.PlanetNaturalID, detail.PlanetName} {
		if candidate == "" {
			continue
		}
		if planet, found := e.planets.Lookup(candidate); found {
			detail.PlanetID = firstNonEmpty(detail.PlanetID, planet.ID)
			detail.PlanetNaturalID = firstNonEmpty(detail.PlanetNaturalID, planet.NaturalID)
			detail.PlanetName = firstNonEmpty(detail.PlanetName, planet.Name)
			detail.SystemID = planet.SystemID
			detail.SystemName = e.systems.NameOf(planet.SystemID)
			break
		}
	}

	label := firstNonEmpty(detail.PlanetName, detail.PlanetNaturalID)
	return fragment{detail: detail, label: label, kind: KindPlanet, ok: true}
}

func (e *LocationExtractor) stationFragment(rec shared.Record) fragment {
	detail := LocationDetail{}
	detail.StationID, _ = rec.FirstString(lineIDKeys...)
	detail.StationNaturalID, _ = rec.FirstString(lineNaturalKeys...)
	detail.StationName, _ = rec.FirstString(lineNameKeys...)

	// Station names embed their system ("Benten Station"); the resolver's
	// cleaning step recovers it.
	for _, candidate := range []string{detail.StationName, detail.StationNaturalID} {
		if candidate == "" {
			continue
		}
		if id, found := e.systems.Resolve(candidate); found {
			detail.SystemID = id
			detail.SystemName = e.systems.NameOf(id)
			break
		}
	}

	label := firstNonEmpty(detail.StationName, detail.StationNaturalID)
	return fragment{detail: detail, label: label, kind: KindStation, ok: true}
}

func (e *LocationExtractor) systemFragment(rec shared.Record) fragment {
	detail := LocationDetail{}

	name, _ := rec.FirstString(lineNameKeys...)
	for _, candidate := range []any{first(rec, lineIDKeys), first(rec, lineNaturalKeys), name} {
		if candidate == "" || candidate == nil {
			continue
		}
		if id, found := e.systems.Resolve(candidate); found {
			detail.SystemID = id
			break
		}
	}
	detail.SystemName = firstNonEmpty(e.systems.NameOf(detail.SystemID), name)

	label := firstNonEmpty(detail.SystemName, name)
	return fragment{detail: detail, label: label, kind: KindSystem, ok: detail.SystemID != "" || name != ""}
}

func (e *LocationExtractor) stringFragment(key string) fragment {
	if planet, found := e.planets.Lookup(key); found {
		detail := LocationDetail{
			PlanetID:        planet.ID,
			PlanetNaturalID: planet.NaturalID,
			PlanetName:      planet.Name,
			SystemID:        planet.SystemID,
			SystemName:      e.systems.NameOf(planet.SystemID),
		}
		label := firstNonEmpty(planet.Name, key)
		return fragment{detail: detail, label: label, kind: KindPlanet, ok: true}
	}

	if id, found := e.systems.Resolve(key); found {
		detail := LocationDetail{
			SystemID:   id,
			SystemName: e.systems.NameOf(id),
		}
		label := firstNonEmpty(detail.SystemName, key)
		return fragment{detail: detail, label: label, kind: KindSystem, ok: true}
	}

	return fragment{}
}

// resolveSystemRef tries an entry purely as a system reference.
func (e *LocationExtractor) resolveSystemRef(entry any) (string, bool) {
	if rec, ok := shared.AsRecord(entry); ok {
		for _, keys := range [][]string{lineIDKeys, lineNaturalKeys, lineNameKeys} {
			if value, found := rec.FirstString(keys...); found {
				if id, resolved := e.systems.Resolve(value); resolved {
					return id, true
				}
			}
		}
		return "", false
	}
	return e.systems.Resolve(entry)
}

func first(rec shared.Record, keys []string) string {
	value, _ := rec.FirstString(keys...)
	return value
}
