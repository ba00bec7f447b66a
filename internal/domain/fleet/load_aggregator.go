package fleet

import (
	"strings"

	"github.com/Taiyi-94/prun-universe-map/internal/domain/contract"
	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
)

// Percentage fields above this value are assumed to be on a 0-100 scale.
const percentScaleThreshold = 1.5

var shipPercentKeys = []string{"CargoPercent", "cargoPercent", "LoadPercent", "loadPercent", "Percent", "percent"}

// ShipmentMatch pairs a stored cargo item with the contract delivery
// conditions referencing the same shipment-item id.
type ShipmentMatch struct {
	Item       StorageItem
	Conditions []contract.ConditionRef
}

// ShipLoadInfo is the derived load-state summary for one vehicle. Ratios are
// >= 0 and deliberately uncapped above 1.0 to signal overload.
type ShipLoadInfo struct {
	Store *StorageRecord

	WeightCapacity *float64
	VolumeCapacity *float64
	WeightLoad     *float64
	VolumeLoad     *float64

	WeightRatio  *float64
	VolumeRatio  *float64
	OverallRatio *float64

	Shipments []ShipmentMatch
}

// LoadAggregator combines a vehicle's chosen storage record, its own fields,
// and the shipment-contract index into one ShipLoadInfo.
type LoadAggregator struct {
	shipments *contract.ShipmentIndex
}

// NewLoadAggregator creates an aggregator over the snapshot's shipment index.
func NewLoadAggregator(shipments *contract.ShipmentIndex) *LoadAggregator {
	return &LoadAggregator{shipments: shipments}
}

// Aggregate builds the load summary for a ship and its resolved storage
// record (which may be nil). Returns nil when the vehicle has no capacity or
// load signal and no matched shipments; absence is expected for vehicles
// without cargo telemetry, not a defect.
func (a *LoadAggregator) Aggregate(ship *Ship, store *StorageRecord) *ShipLoadInfo {
	embedded, _ := ship.EmbeddedStore()

	info := &ShipLoadInfo{Store: store}
	info.WeightCapacity = a.numericField(store, embedded, ship, weightCapacityKeys, storeWeightCapacity)
	info.VolumeCapacity = a.numericField(store, embedded, ship, volumeCapacityKeys, storeVolumeCapacity)
	info.WeightLoad = a.numericField(store, embedded, ship, weightLoadKeys, storeWeightLoad)
	info.VolumeLoad = a.numericField(store, embedded, ship, volumeLoadKeys, storeVolumeLoad)

	info.WeightRatio = ratio(info.WeightLoad, info.WeightCapacity)
	info.VolumeRatio = ratio(info.VolumeLoad, info.VolumeCapacity)
	info.OverallRatio = a.overallRatio(ship, info.WeightRatio, info.VolumeRatio)

	info.Shipments = a.matchShipments(store, embedded)

	if !info.hasSignal() {
		return nil
	}
	return info
}

// numericField reads one load concept with the priority fallback: resolved
// storage record, then the ship's embedded sub-record, then the ship's own
// top-level fields.
func (a *LoadAggregator) numericField(
	store, embedded *StorageRecord,
	ship *Ship,
	shipKeys []string,
	fromStore func(*StorageRecord) *float64,
) *float64 {
	if store != nil {
		if value := fromStore(store); value != nil {
			return value
		}
	}
	if embedded != nil {
		if value := fromStore(embedded); value != nil {
			return value
		}
	}
	if value, ok := ship.Record().FirstFloat(shipKeys...); ok {
		return &value
	}
	return nil
}

func storeWeightCapacity(r *StorageRecord) *float64 { return r.WeightCapacity }
func storeVolumeCapacity(r *StorageRecord) *float64 { return r.VolumeCapacity }
func storeWeightLoad(r *StorageRecord) *float64     { return r.WeightLoad }
func storeVolumeLoad(r *StorageRecord) *float64     { return r.VolumeLoad }

// ratio computes load/capacity when both are present and capacity > 0.
func ratio(load, capacity *float64) *float64 {
	if load == nil || capacity == nil || *capacity <= 0 {
		return nil
	}
	value := *load / *capacity
	if value < 0 {
		value = 0
	}
	return &value
}

// overallRatio is the maximum of the per-dimension ratios and any directly
// reported percentage field. Percentages above 1.5 are assumed 0-100 scale.
func (a *LoadAggregator) overallRatio(ship *Ship, ratios ...*float64) *float64 {
	var best *float64
	consider := func(value float64) {
		if value < 0 {
			value = 0
		}
		if best == nil || value > *best {
			best = &value
		}
	}

	for _, r := range ratios {
		if r != nil {
			consider(*r)
		}
	}

	if percent, ok := ship.Record().FirstFloat(shipPercentKeys...); ok {
		if percent > percentScaleThreshold {
			percent /= 100
		}
		consider(percent)
	}

	return best
}

// matchShipments scans the items of both storage sources for delivery
// shipments, via the contract index or an explicit shipment-like type tag.
// Duplicate items resolving to the same key are suppressed.
func (a *LoadAggregator) matchShipments(store, embedded *StorageRecord) []ShipmentMatch {
	var matches []ShipmentMatch
	seen := make(map[string]struct{})

	scan := func(record *StorageRecord) {
		if record == nil {
			return
		}
		for _, item := range record.Items {
			key := item.MatchKey()
			if key == "" {
				continue
			}
			if _, dup := seen[strings.ToUpper(key)]; dup {
				continue
			}

			var conditions []contract.ConditionRef
			matched := false
			if a.shipments != nil && item.ShipmentItemID != "" {
				conditions, matched = a.shipments.Lookup(item.ShipmentItemID)
			}
			if !matched && !strings.Contains(shared.FoldTag(item.Type), "SHIPMENT") {
				continue
			}

			seen[strings.ToUpper(key)] = struct{}{}
			matches = append(matches, ShipmentMatch{Item: item, Conditions: conditions})
		}
	}

	scan(store)
	scan(embedded)
	return matches
}

func (info *ShipLoadInfo) hasSignal() bool {
	return info.WeightCapacity != nil || info.VolumeCapacity != nil ||
		info.WeightLoad != nil || info.VolumeLoad != nil ||
		info.OverallRatio != nil || len(info.Shipments) > 0
}
