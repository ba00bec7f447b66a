package contract

import (
	"sort"
	"strings"
	"time"

	"github.com/Taiyi-94/prun-universe-map/internal/domain/shared"
)

// deliveryToken is the canonical token a normalized condition type must match
// to count as a delivery/shipment obligation.
const deliveryToken = "DELIVERY"

// ConditionRef is a denormalized view of a delivery condition, ready for
// matching against stored cargo without chasing the owning contract.
type ConditionRef struct {
	ContractID      string
	ContractLocalID string
	Partner         string
	ConditionID     string
	Type            string
	Destination     string
	Deadline        time.Time
	Weight          float64
	Volume          float64
	Index           *int
	Dependencies    []string
}

// ShipmentIndex maps a normalized shipment-item id to the delivery conditions
// referencing it. Built once per contract snapshot; per-key lists are always
// sorted by condition index ascending (missing index last), then type.
type ShipmentIndex struct {
	byItem map[string][]ConditionRef
}

// IsDeliveryType reports whether a raw type string denotes a delivery or
// shipment obligation. Type strings are folded (upper-cased, non-letters
// stripped) before matching the canonical token.
func IsDeliveryType(s string) bool {
	normalized := shared.FoldTag(s)
	return normalized == deliveryToken || strings.Contains(normalized, "SHIPMENT")
}

// BuildShipmentIndex indexes every qualifying delivery condition by the cargo
// item it references. Contracts qualify when their own type, or at least one
// condition's type, denotes a delivery obligation.
func BuildShipmentIndex(contracts []*Contract) *ShipmentIndex {
	idx := &ShipmentIndex{byItem: make(map[string][]ConditionRef)}

	for _, c := range contracts {
		if c == nil || !qualifies(c) {
			continue
		}
		for _, cond := range c.Conditions {
			if !IsDeliveryType(cond.Type) {
				continue
			}
			key, ok := normalizeItemKey(cond.ShipmentItemID)
			if !ok {
				continue
			}
			idx.byItem[key] = append(idx.byItem[key], ConditionRef{
				ContractID:      c.ID,
				ContractLocalID: c.LocalID,
				Partner:         c.Partner,
				ConditionID:     cond.ID,
				Type:            cond.Type,
				Destination:     cond.Destination,
				Deadline:        cond.Deadline,
				Weight:          cond.Weight,
				Volume:          cond.Volume,
				Index:           cond.Index,
				Dependencies:    cond.Dependencies,
			})
		}
	}

	for key := range idx.byItem {
		sortConditionRefs(idx.byItem[key])
	}

	return idx
}

// Lookup returns the sorted delivery conditions for a shipment-item id.
func (idx *ShipmentIndex) Lookup(shipmentItemID any) ([]ConditionRef, bool) {
	key, ok := normalizeItemKey(shipmentItemID)
	if !ok {
		return nil, false
	}
	refs, found := idx.byItem[key]
	return refs, found
}

// Len returns the number of indexed shipment items.
func (idx *ShipmentIndex) Len() int {
	return len(idx.byItem)
}

func qualifies(c *Contract) bool {
	if IsDeliveryType(c.Type) {
		return true
	}
	for _, cond := range c.Conditions {
		if IsDeliveryType(cond.Type) {
			return true
		}
	}
	return false
}

// sortConditionRefs orders by condition index ascending with missing indices
// last, ties broken by type lexicographically. Stable so equal refs keep
// their insertion order.
func sortConditionRefs(refs []ConditionRef) {
	sort.SliceStable(refs, func(i, j int) bool {
		left, right := refs[i].Index, refs[j].Index
		switch {
		case left != nil && right != nil && *left != *right:
			return *left < *right
		case left == nil && right != nil:
			return false
		case left != nil && right == nil:
			return true
		}
		return refs[i].Type < refs[j].Type
	})
}

func normalizeItemKey(v any) (string, bool) {
	key, ok := shared.CoerceString(v)
	if !ok {
		return "", false
	}
	return strings.ToUpper(key), true
}
