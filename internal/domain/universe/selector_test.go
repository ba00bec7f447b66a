package universe_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taiyi-94/prun-universe-map/internal/domain/universe"
)

func TestBestLocation_AllNilYieldsNil(t *testing.T) {
	assert.Nil(t, universe.BestLocation())
	assert.Nil(t, universe.BestLocation(nil, nil))
}

func TestBestLocation_MoreSpecificKindWins(t *testing.T) {
	system := &universe.LocationDetail{
		SystemID: "sys-benten", DisplayName: "Benten", DisplayKind: universe.KindSystem,
	}
	station := &universe.LocationDetail{
		SystemID: "sys-benten", StationName: "Benten Station",
		DisplayName: "Benten Station", DisplayKind: universe.KindStation,
	}
	planet := &universe.LocationDetail{
		SystemID: "sys-benten", PlanetID: "pl-1",
		DisplayName: "Promitor", DisplayKind: universe.KindPlanet,
	}

	assert.Same(t, station, universe.BestLocation(system, station))
	assert.Same(t, planet, universe.BestLocation(station, planet, system))
	// Order of arguments must not matter for the kind rule
	assert.Same(t, planet, universe.BestLocation(system, planet, station))
}

func TestBestLocation_NeverLessSpecificThanAnyInput(t *testing.T) {
	// Property: output priority <= every input priority
	pool := []*universe.LocationDetail{
		{DisplayName: "Promitor", DisplayKind: universe.KindPlanet, PlanetID: "pl-1"},
		{DisplayName: "Benten Station", DisplayKind: universe.KindStation},
		{DisplayName: "Benten", DisplayKind: universe.KindSystem},
		nil,
	}

	for i := 0; i < 50; i++ {
		shuffled := make([]*universe.LocationDetail, len(pool))
		copy(shuffled, pool)
		rand.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		best := universe.BestLocation(shuffled...)
		require.NotNil(t, best)
		for _, candidate := range shuffled {
			if candidate != nil {
				assert.LessOrEqual(t, best.DisplayPriority(), candidate.DisplayPriority())
			}
		}
	}
}

func TestBestLocation_ExplicitIdentifierBreaksTies(t *testing.T) {
	labelled := &universe.LocationDetail{
		DisplayName: "Moria Station", DisplayKind: universe.KindStation,
	}
	identified := &universe.LocationDetail{
		DisplayName: "Moria Station", DisplayKind: universe.KindStation,
		StationNaturalID: "MOR",
	}

	assert.Same(t, identified, universe.BestLocation(labelled, identified))
	assert.Same(t, identified, universe.BestLocation(identified, labelled))
}

func TestBestLocation_NonGenericLabelBeatsGeneric(t *testing.T) {
	generic := &universe.LocationDetail{
		DisplayName: "station", DisplayKind: universe.KindStation, StationID: "st-1",
	}
	named := &universe.LocationDetail{
		DisplayName: "Hortus Station", DisplayKind: universe.KindStation, StationID: "st-1",
	}

	assert.Same(t, named, universe.BestLocation(generic, named))
}

func TestBestLocation_AnyLabelBeatsNoLabel(t *testing.T) {
	unlabelled := &universe.LocationDetail{
		DisplayKind: universe.KindStation, StationID: "st-1",
	}
	named := &universe.LocationDetail{
		DisplayName: "Hortus Station", DisplayKind: universe.KindStation, StationID: "st-1",
	}
	generic := &universe.LocationDetail{
		DisplayName: "station", DisplayKind: universe.KindStation, StationID: "st-1",
	}

	assert.Same(t, named, universe.BestLocation(unlabelled, named))
	// Even a generic label carries more than no label at all
	assert.Same(t, generic, universe.BestLocation(unlabelled, generic))
	assert.Same(t, generic, universe.BestLocation(generic, unlabelled))
}

func TestBestLocation_LongerLabelNeedsMoreThanTwoCharacters(t *testing.T) {
	short := &universe.LocationDetail{DisplayName: "Montem", DisplayKind: universe.KindPlanet, PlanetID: "pl-2"}
	slightlyLonger := &universe.LocationDetail{DisplayName: "Montem B", DisplayKind: universe.KindPlanet, PlanetID: "pl-2"}
	muchLonger := &universe.LocationDetail{DisplayName: "Montem (OT-580c)", DisplayKind: universe.KindPlanet, PlanetID: "pl-2"}

	// Two extra characters are not enough to displace the incumbent
	assert.Same(t, short, universe.BestLocation(short, slightlyLonger))
	assert.Same(t, muchLonger, universe.BestLocation(short, muchLonger))
}
