package model

import "fmt"

// ResourceBundle holds resource quantities. Quantities are never negative;
// translators reject negative values instead of storing them.
type ResourceBundle struct {
	Metal     int64 `json:"metal"`
	Crystal   int64 `json:"crystal"`
	Deuterium int64 `json:"deuterium"`
	Energy    int64 `json:"energy"`
}

// Total is the lootable value: metal + crystal + deuterium. Energy is not
// transportable and does not count.
func (r ResourceBundle) Total() int64 {
	return r.Metal + r.Crystal + r.Deuterium
}

func (r ResourceBundle) String() string {
	return fmt.Sprintf("metal=%d crystal=%d deuterium=%d energy=%d", r.Metal, r.Crystal, r.Deuterium, r.Energy)
}

// ItemLevel is the level (or count, for ships and defenses) of a buildable or
// researchable item. Code is the stable cross-page key.
type ItemLevel struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	Level          int    `json:"level"`
	InConstruction bool   `json:"inConstruction,omitempty"` // upgrade in progress
}

// FindItem returns the item with the given code.
func FindItem(items []ItemLevel, code string) (ItemLevel, bool) {
	for _, it := range items {
		if it.Code == code {
			return it, true
		}
	}
	return ItemLevel{}, false
}
