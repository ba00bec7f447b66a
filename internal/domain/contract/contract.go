package contract

import (
	"time"

	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
)

// Condition is one obligation inside a contract. Only conditions whose type
// denotes a delivery or shipment obligation participate in shipment matching.
type Condition struct {
	ID             string
	Type           string
	ShipmentItemID string
	Destination    string
	Deadline       time.Time
	Weight         float64
	Volume         float64
	Index          *int
	Dependencies   []string
}

// Contract is a commercial agreement with a partner, carrying an ordered
// list of conditions.
type Contract struct {
	ID         string
	LocalID    string
	Type       string
	Partner    string
	Conditions []Condition
}

// Accessor-rule lists for the condition fields, ordered most- to
// least-specific source spelling.
var (
	conditionIDKeys       = []string{"ConditionId", "conditionId", "Id", "id"}
	conditionTypeKeys     = []string{"Type", "type", "ConditionType", "conditionType"}
	shipmentItemKeys      = []string{"ShipmentItemId", "shipmentItemId", "ShipmentId", "shipmentId"}
	destinationKeys       = []string{"Destination", "destination", "Address", "address"}
	deadlineKeys          = []string{"DeadlineEpochMs", "deadlineEpochMs", "Deadline", "deadline"}
	conditionWeightKeys   = []string{"Weight", "weight"}
	conditionVolumeKeys   = []string{"Volume", "volume"}
	conditionIndexKeys    = []string{"ConditionIndex", "conditionIndex", "Index", "index"}
	conditionDepKeys      = []string{"Dependencies", "dependencies"}
	contractIDKeys        = []string{"ContractId", "contractId", "Id", "id"}
	contractLocalIDKeys   = []string{"ContractLocalId", "contractLocalId", "LocalId", "localId"}
	contractTypeKeys      = []string{"Type", "type", "ContractType", "contractType"}
	contractPartnerKeys   = []string{"PartnerName", "partnerName", "Partner", "partner", "PartnerCompanyCode"}
	contractConditionKeys = []string{"Conditions", "conditions"}
)

// FromRecord builds a Contract from a raw record. Records without a usable
// id are skipped.
func FromRecord(rec shared.Record) (*Contract, bool) {
	id, ok := rec.FirstString(contractIDKeys...)
	if !ok {
		return nil, false
	}

	c := &Contract{ID: id}
	c.LocalID, _ = rec.FirstString(contractLocalIDKeys...)
	c.Type, _ = rec.FirstString(contractTypeKeys...)
	c.Partner, _ = rec.FirstString(contractPartnerKeys...)

	rawConditions, _ := rec.FirstSlice(contractConditionKeys...)
	for _, raw := range rawConditions {
		condRec, isRec := shared.AsRecord(raw)
		if !isRec {
			continue
		}
		c.Conditions = append(c.Conditions, conditionFromRecord(condRec))
	}

	return c, true
}

func conditionFromRecord(rec shared.Record) Condition {
	cond := Condition{}
	cond.ID, _ = rec.FirstString(conditionIDKeys...)
	cond.Type, _ = rec.FirstString(conditionTypeKeys...)
	cond.ShipmentItemID, _ = rec.FirstString(shipmentItemKeys...)
	cond.Destination, _ = rec.FirstString(destinationKeys...)
	cond.Deadline, _ = rec.FirstTime(deadlineKeys...)
	cond.Weight, _ = rec.FirstFloat(conditionWeightKeys...)
	cond.Volume, _ = rec.FirstFloat(conditionVolumeKeys...)

	if index, found := rec.FirstInt(conditionIndexKeys...); found {
		cond.Index = &index
	}

	if deps, found := rec.FirstSlice(conditionDepKeys...); found {
		for _, dep := range deps {
			if s, coerced := shared.CoerceString(dep); coerced {
				cond.Dependencies = append(cond.Dependencies, s)
			}
		}
	}

	return cond
}
