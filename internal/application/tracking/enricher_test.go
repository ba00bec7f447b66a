package tracking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taiyi-94/prun-universe-map/internal/application/tracking"
	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
	"github.com/Taiyi-94/prun-universe-map/internal/domain/universe"
)

var enrichEpoch = time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)

// snapshotFixture is a small universe: two systems, a planet each, one ship
// mid-flight between them with a cargo hold and one contract shipment aboard.
func snapshotFixture() tracking.RawData {
	departure := float64(enrichEpoch.Add(-time.Hour).UnixMilli())
	arrival := float64(enrichEpoch.Add(time.Hour).UnixMilli())

	return tracking.RawData{
		Systems: []shared.Record{
			{"SystemId": "sys-benten", "Name": "Benten", "NaturalId": "UV-351", "PositionX": float64(0), "PositionY": float64(0)},
			{"SystemId": "sys-moria", "Name": "Moria", "NaturalId": "OT-580", "PositionX": float64(100), "PositionY": float64(0)},
		},
		Planets: []shared.Record{
			{"PlanetId": "pl-promitor", "NaturalId": "UV-351b", "Name": "Promitor", "SystemId": "sys-benten"},
			{"PlanetId": "pl-montem", "NaturalId": "OT-580c", "Name": "Montem", "SystemId": "sys-moria"},
		},
		Ships: []shared.Record{
			{
				"ShipId":       "ship-1",
				"Registration": "AB-001X",
				"Name":         "Long Haul",
			},
		},
		Flights: []shared.Record{
			{
				"FlightId":    "fl-1",
				"ShipId":      "ship-1",
				"Origin":      "Promitor",
				"Destination": "Montem",
				"Segments": []any{
					map[string]any{
						"OriginLines":          []any{map[string]any{"LineType": "PLANET", "LineName": "Promitor"}},
						"DestinationLines":     []any{map[string]any{"LineType": "PLANET", "LineName": "Montem"}},
						"DepartureTimeEpochMs": departure,
						"ArrivalTimeEpochMs":   arrival,
					},
				},
			},
		},
		Storage: []shared.Record{
			{
				"StorageId":      "st-hold",
				"AddressableId":  "ship-1",
				"Type":           "SHIP_STORE",
				"WeightCapacity": float64(500),
				"WeightLoad":     float64(250),
				"StorageItems": []any{
					map[string]any{"MaterialTicker": "RAT", "ShipmentItemId": "itm-1"},
				},
			},
		},
		Contracts: []shared.Record{
			{
				"ContractId": "ct-1",
				"Type":       "SHIPPING",
				"Partner":    "Kawa Logistics",
				"Conditions": []any{
					map[string]any{
						"ConditionId":    "c-1",
						"Type":           "DELIVERY",
						"ShipmentItemId": "itm-1",
						"Destination":    "Montem",
					},
				},
			},
		},
	}
}

func TestEnrichAll_MidFlightDescriptor(t *testing.T) {
	// Arrange
	snap := tracking.NewSnapshot(snapshotFixture(), enrichEpoch)
	enricher := tracking.NewEnricher(shared.NewMockClock(enrichEpoch))

	// Act
	descriptors := enricher.EnrichAll(snap)

	// Assert
	require.Len(t, descriptors, 1)
	d := descriptors[0]
	assert.Equal(t, "ship-1", d.ShipID)
	assert.Equal(t, "Long Haul", d.Name)

	require.NotNil(t, d.Transit)
	assert.InDelta(t, 0.5, d.Transit.Progress, 1e-9)
	assert.InDelta(t, 50, d.Transit.Position.X, 1e-9)
	assert.InDelta(t, 1, d.Transit.Heading.X, 1e-9)
	assert.False(t, d.Transit.Arrived)

	// Mid-transit the destination planet is the most specific location
	require.NotNil(t, d.Location)
	assert.Equal(t, universe.KindPlanet, d.Location.DisplayKind)
	assert.Equal(t, "Montem", d.Location.DisplayName)
	assert.Equal(t, "sys-moria", d.Location.SystemID)

	require.NotNil(t, d.Load)
	require.NotNil(t, d.Load.WeightRatio)
	assert.InDelta(t, 0.5, *d.Load.WeightRatio, 1e-9)
	require.Len(t, d.Load.Shipments, 1)
	require.Len(t, d.Load.Shipments[0].Conditions, 1)
	assert.Equal(t, "ct-1", d.Load.Shipments[0].Conditions[0].ContractID)
}

func TestEnrichAll_ArrivedFlightClearsTransit(t *testing.T) {
	// Evaluate well after the single segment's arrival time
	snap := tracking.NewSnapshot(snapshotFixture(), enrichEpoch)
	enricher := tracking.NewEnricher(shared.NewMockClock(enrichEpoch.Add(3 * time.Hour)))

	descriptors := enricher.EnrichAll(snap)

	require.Len(t, descriptors, 1)
	assert.Nil(t, descriptors[0].Transit)
	// The location survives: the ship now sits at its destination
	require.NotNil(t, descriptors[0].Location)
	assert.Equal(t, "Montem", descriptors[0].Location.DisplayName)
}

func TestEnrichAll_FlightMatchedByRegistration(t *testing.T) {
	raw := snapshotFixture()
	raw.Flights[0]["ShipId"] = "AB-001X"
	snap := tracking.NewSnapshot(raw, enrichEpoch)
	enricher := tracking.NewEnricher(shared.NewMockClock(enrichEpoch))

	descriptors := enricher.EnrichAll(snap)

	require.Len(t, descriptors, 1)
	assert.NotNil(t, descriptors[0].Transit)
}

func TestEnrichAll_ShipProgressHintUsedWhenFlightHasNone(t *testing.T) {
	// Arrange - the segment carries no timestamps and the flight no hints;
	// the only transit signal is the progress field on the ship itself
	raw := snapshotFixture()
	raw.Ships[0]["Progress"] = 0.25
	raw.Flights[0]["Segments"] = []any{
		map[string]any{
			"OriginLines":      []any{map[string]any{"LineType": "PLANET", "LineName": "Promitor"}},
			"DestinationLines": []any{map[string]any{"LineType": "PLANET", "LineName": "Montem"}},
		},
	}
	snap := tracking.NewSnapshot(raw, enrichEpoch)
	enricher := tracking.NewEnricher(shared.NewMockClock(enrichEpoch))

	// Act
	descriptors := enricher.EnrichAll(snap)

	// Assert - the ship renders mid-transit instead of being treated as
	// arrived and dropped
	require.Len(t, descriptors, 1)
	d := descriptors[0]
	require.NotNil(t, d.Transit)
	assert.InDelta(t, 0.25, d.Transit.Progress, 1e-9)
	assert.InDelta(t, 25, d.Transit.Position.X, 1e-9)
	assert.False(t, d.Transit.Arrived)
}

func TestEnrichAll_FlightHintWinsOverShipHint(t *testing.T) {
	raw := snapshotFixture()
	raw.Ships[0]["Progress"] = 0.25
	raw.Flights[0]["Progress"] = 0.75
	raw.Flights[0]["Segments"] = []any{
		map[string]any{
			"OriginLines":      []any{map[string]any{"LineType": "PLANET", "LineName": "Promitor"}},
			"DestinationLines": []any{map[string]any{"LineType": "PLANET", "LineName": "Montem"}},
		},
	}
	snap := tracking.NewSnapshot(raw, enrichEpoch)
	enricher := tracking.NewEnricher(shared.NewMockClock(enrichEpoch))

	descriptors := enricher.EnrichAll(snap)

	require.Len(t, descriptors, 1)
	require.NotNil(t, descriptors[0].Transit)
	assert.InDelta(t, 0.75, descriptors[0].Transit.Progress, 1e-9)
}

func TestEnrichAll_OmitsShipsWithNothingToRender(t *testing.T) {
	raw := snapshotFixture()
	raw.Ships = append(raw.Ships, shared.Record{"ShipId": "ship-ghost"})
	snap := tracking.NewSnapshot(raw, enrichEpoch)
	enricher := tracking.NewEnricher(shared.NewMockClock(enrichEpoch))

	descriptors := enricher.EnrichAll(snap)

	// The ghost ship has no location, load or flight and is dropped
	require.Len(t, descriptors, 1)
	assert.Equal(t, "ship-1", descriptors[0].ShipID)
}

func TestEnrichAll_ShipOwnLocationWhenNoFlight(t *testing.T) {
	raw := snapshotFixture()
	raw.Flights = nil
	raw.Ships[0]["Location"] = "Promitor"
	snap := tracking.NewSnapshot(raw, enrichEpoch)
	enricher := tracking.NewEnricher(shared.NewMockClock(enrichEpoch))

	descriptors := enricher.EnrichAll(snap)

	require.Len(t, descriptors, 1)
	d := descriptors[0]
	assert.Nil(t, d.Transit)
	require.NotNil(t, d.Location)
	assert.Equal(t, "pl-promitor", d.Location.PlanetID)
	assert.Equal(t, "sys-benten", d.Location.SystemID)
}

func TestNewSnapshot_DropsUnparseableRecordsAndVersions(t *testing.T) {
	raw := tracking.RawData{
		Systems: []shared.Record{{"Name": "no id"}},
		Ships:   []shared.Record{{"Name": "no identity"}},
	}

	first := tracking.NewSnapshot(raw, enrichEpoch)
	second := tracking.NewSnapshot(raw, enrichEpoch)

	assert.Empty(t, first.Systems)
	assert.Empty(t, first.Ships)
	assert.NotEmpty(t, first.Version)
	assert.NotEqual(t, first.Version, second.Version)
}
