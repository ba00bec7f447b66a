package universe

// SystemResolver maps an arbitrary candidate value to a canonical system id.
// The lookup tables are pure functions of one data snapshot; build a fresh
// resolver whenever the snapshot changes.
type SystemResolver struct {
	byID      map[string]System
	byName    map[string]string
	byClean   map[string]string
	byNatural map[string]string
}

// NewSystemResolver builds the id, name and natural-id lookup tables once for
// the given snapshot of systems.
func NewSystemResolver(systems []System) *SystemResolver {
	r := &SystemResolver{
		byID:      make(map[string]System, len(systems)),
		byName:    make(map[string]string, len(systems)),
		byClean:   make(map[string]string, len(systems)),
		byNatural: make(map[string]string, len(systems)),
	}

	for _, sys := range systems {
		if sys.ID == "" {
			continue
		}
		if _, seen := r.byID[sys.ID]; seen {
			continue
		}
		r.byID[sys.ID] = sys

		if name := FoldName(sys.Name); name != "" {
			if _, taken := r.byName[name]; !taken {
				r.byName[name] = sys.ID
			}
		}
		if clean := CleanName(sys.Name); clean != "" {
			if _, taken := r.byClean[clean]; !taken {
				r.byClean[clean] = sys.ID
			}
		}
		if natural := FoldNatural(sys.NaturalID); natural != "" {
			if _, taken := r.byNatural[natural]; !taken {
				r.byNatural[natural] = sys.ID
			}
		}
	}

	return r
}

// Resolve maps a candidate value (id, display name, name with trailing
// parenthesized code, noisy station name, natural id in any case) to a
// canonical system id. First match wins:
//
//  1. exact match against known system ids
//  2. case-insensitive match in the name table
//  3. candidate cleaned of "station" noise, retried against the name table
//  4. trailing parenthesized code matched against the natural-id table
//  5. whole candidate upper-cased and matched against the natural-id table
//
// An unresolved candidate is a valid, expected outcome, not a defect.
func (r *SystemResolver) Resolve(candidate any) (string, bool) {
	key, ok := NormalizeKey(candidate)
	if !ok {
		return "", false
	}

	if _, known := r.byID[key]; known {
		return key, true
	}

	if id, found := r.byName[FoldName(key)]; found {
		return id, true
	}

	if clean := CleanName(key); clean != "" {
		if id, found := r.byClean[clean]; found {
			return id, true
		}
	}

	if code, found := TrailingParenCode(key); found {
		if id, matched := r.byNatural[FoldNatural(code)]; matched {
			return id, true
		}
	}

	if id, found := r.byNatural[FoldNatural(key)]; found {
		return id, true
	}

	return "", false
}

// System returns the canonical system for an already-resolved id.
func (r *SystemResolver) System(id string) (System, bool) {
	sys, ok := r.byID[id]
	return sys, ok
}

// NameOf returns the display name for a canonical system id.
func (r *SystemResolver) NameOf(id string) string {
	return r.byID[id].Name
}

// PlanetIndex looks planets up by id, natural id or display name.
// Like the resolver, it is built once per snapshot.
type PlanetIndex struct {
	byID      map[string]Planet
	byNatural map[string]Planet
	byName    map[string]Planet
}

// NewPlanetIndex builds the planet lookup tables for one snapshot.
func NewPlanetIndex(planets []Planet) *PlanetIndex {
	idx := &PlanetIndex{
		byID:      make(map[string]Planet, len(planets)),
		byNatural: make(map[string]Planet, len(planets)),
		byName:    make(map[string]Planet, len(planets)),
	}

	for _, planet := range planets {
		if planet.ID == "" {
			continue
		}
		if _, seen := idx.byID[planet.ID]; seen {
			continue
		}
		idx.byID[planet.ID] = planet

		if natural := FoldNatural(planet.NaturalID); natural != "" {
			if _, taken := idx.byNatural[natural]; !taken {
				idx.byNatural[natural] = planet
			}
		}
		if name := FoldName(planet.Name); name != "" {
			if _, taken := idx.byName[name]; !taken {
				idx.byName[name] = planet
			}
		}
	}

	return idx
}

// Lookup tries a candidate value as a planet id, then natural id, then name.
func (idx *PlanetIndex) Lookup(candidate any) (Planet, bool) {
	key, ok := NormalizeKey(candidate)
	if !ok {
		return Planet{}, false
	}

	if planet, found := idx.byID[key]; found {
		return planet, true
	}
	if planet, found := idx.byNatural[FoldNatural(key)]; found {
		return planet, true
	}
	if planet, found := idx.byName[FoldName(key)]; found {
		return planet, true
	}

	return Planet{}, false
}
