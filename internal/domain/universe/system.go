package universe

import (
	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
)

// System is a canonical star system for one data snapshot. Immutable once
// built; every alias observed in raw data resolves back to its ID.
type System struct {
	ID        string
	Name      string
	NaturalID string
	Pos       shared.Vec2
}

// Planet belongs to exactly one system. Raw data references planets by id,
// natural id or display name interchangeably.
type Planet struct {
	ID        string
	NaturalID string
	Name      string
	SystemID  string
}

// SystemFromRecord builds a System from a raw record. Records without any
// usable identifier are skipped, not errors.
func SystemFromRecord(rec shared.Record) (System, bool) {
	id, ok := rec.FirstString("SystemId", "systemId", "Id", "id")
	if !ok {
		return System{}, false
	}

	name, _ := rec.FirstString("Name", "name", "SystemName", "systemName")
	naturalID, _ := rec.FirstString("NaturalId", "naturalId", "SystemNaturalId")

	x, _ := rec.FirstFloat("PositionX", "positionX", "X", "x")
	y, _ := rec.FirstFloat("PositionY", "positionY", "Y", "y")

	return System{
		ID:        id,
		Name:      name,
		NaturalID: naturalID,
		Pos:       shared.Vec2{X: x, Y: y},
	}, true
}

// PlanetFromRecord builds a Planet from a raw record.
func PlanetFromRecord(rec shared.Record) (Planet, bool) {
	id, ok := rec.FirstString("PlanetId", "planetId", "Id", "id")
	if !ok {
		return Planet{}, false
	}

	naturalID, _ := rec.FirstString("PlanetNaturalId", "planetNaturalId", "NaturalId", "naturalId")
	name, _ := rec.FirstString("PlanetName", "planetName", "Name", "name")
	systemID, _ := rec.FirstString("SystemId", "systemId")

	return Planet{
		ID:        id,
		NaturalID: naturalID,
		Name:      name,
		SystemID:  systemID,
	}, true
}
