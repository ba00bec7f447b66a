package fleet

import (
	"time"

	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
)

// Accessor-rule lists for storage records and their items.
var (
	storageIDKeys        = []string{"StorageId", "storageId", "StoreId", "storeId", "Id", "id"}
	storageNaturalIDKeys = []string{"NaturalId", "naturalId", "StorageNaturalId"}
	storageNameKeys      = []string{"Name", "name", "StorageName"}
	storageOwnerKeys     = []string{"AddressableId", "addressableId", "OwnerId", "ownerId", "ParentId", "parentId"}
	storageTypeKeys      = []string{"Type", "type", "StorageType", "storageType"}
	storageFixedKeys     = []string{"FixedStore", "fixedStore", "Fixed", "fixed"}
	storageTimestampKeys = []string{"Timestamp", "timestamp", "LastUpdated", "lastUpdated"}
	weightCapacityKeys   = []string{"WeightCapacity", "weightCapacity", "MaxWeight", "maxWeight"}
	volumeCapacityKeys   = []string{"VolumeCapacity", "volumeCapacity", "MaxVolume", "maxVolume"}
	weightLoadKeys       = []string{"WeightLoad", "weightLoad", "Weight", "weight"}
	volumeLoadKeys       = []string{"VolumeLoad", "volumeLoad", "Volume", "volume"}
	storageItemsKeys     = []string{"StorageItems", "storageItems", "Items", "items"}

	itemMaterialIDKeys = []string{"MaterialId", "materialId", "Id", "id"}
	itemTickerKeys     = []string{"MaterialTicker", "materialTicker", "Ticker", "ticker"}
	itemAmountKeys     = []string{"MaterialAmount", "materialAmount", "Amount", "amount", "Units", "units"}
	itemWeightKeys     = []string{"TotalWeight", "totalWeight", "Weight", "weight"}
	itemVolumeKeys     = []string{"TotalVolume", "totalVolume", "Volume", "volume"}
	itemShipmentKeys   = []string{"ShipmentItemId", "shipmentItemId", "ContentId", "contentId"}
	itemTypeKeys       = []string{"Type", "type"}
)

// StorageItem is one stored cargo entry. Items referencing a shipment-item id
// exist to fulfill a contract delivery condition.
type StorageItem struct {
	MaterialID     string
	Ticker         string
	Amount         float64
	Weight         float64
	Volume         float64
	ShipmentItemID string
	Type           string
}

// MatchKey is the deduplication key for an item: the shipment-item id when
// present, else the material identity.
func (i StorageItem) MatchKey() string {
	if i.ShipmentItemID != "" {
		return i.ShipmentItemID
	}
	if i.MaterialID != "" {
		return i.MaterialID
	}
	return i.Ticker
}

// StorageRecord is one storage container (ship hold, warehouse, fuel tank).
// Capacity and load fields keep pointer types because their presence, not
// just their value, feeds the selection score.
type StorageRecord struct {
	ID        string
	NaturalID string
	Name      string
	OwnerID   string
	Type      string
	Fixed     bool
	HasFixed  bool
	Timestamp time.Time

	WeightCapacity *float64
	VolumeCapacity *float64
	WeightLoad     *float64
	VolumeLoad     *float64

	Items []StorageItem
}

// StorageFromRecord builds a StorageRecord from a raw record. Records with no
// identifier at all are skipped.
func StorageFromRecord(rec shared.Record) (*StorageRecord, bool) {
	record := &StorageRecord{}
	record.ID, _ = rec.FirstString(storageIDKeys...)
	record.NaturalID, _ = rec.FirstString(storageNaturalIDKeys...)
	record.Name, _ = rec.FirstString(storageNameKeys...)
	record.OwnerID, _ = rec.FirstString(storageOwnerKeys...)

	if record.ID == "" && record.NaturalID == "" && record.OwnerID == "" {
		return nil, false
	}

	record.Type, _ = rec.FirstString(storageTypeKeys...)
	record.Fixed, record.HasFixed = rec.FirstBool(storageFixedKeys...)
	record.Timestamp, _ = rec.FirstTime(storageTimestampKeys...)

	record.WeightCapacity = optionalFloat(rec, weightCapacityKeys)
	record.VolumeCapacity = optionalFloat(rec, volumeCapacityKeys)
	record.WeightLoad = optionalFloat(rec, weightLoadKeys)
	record.VolumeLoad = optionalFloat(rec, volumeLoadKeys)

	if rawItems, ok := rec.FirstSlice(storageItemsKeys...); ok {
		for _, raw := range rawItems {
			itemRec, isRec := shared.AsRecord(raw)
			if !isRec {
				continue
			}
			record.Items = append(record.Items, itemFromRecord(itemRec))
		}
	}

	return record, true
}

func itemFromRecord(rec shared.Record) StorageItem {
	item := StorageItem{}
	item.MaterialID, _ = rec.FirstString(itemMaterialIDKeys...)
	item.Ticker, _ = rec.FirstString(itemTickerKeys...)
	item.Amount, _ = rec.FirstFloat(itemAmountKeys...)
	item.Weight, _ = rec.FirstFloat(itemWeightKeys...)
	item.Volume, _ = rec.FirstFloat(itemVolumeKeys...)
	item.ShipmentItemID, _ = rec.FirstString(itemShipmentKeys...)
	item.Type, _ = rec.FirstString(itemTypeKeys...)
	return item
}

func optionalFloat(rec shared.Record, keys []string) *float64 {
	if value, ok := rec.FirstFloat(keys...); ok {
		return &value
	}
	return nil
}
