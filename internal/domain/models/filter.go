package models

import "fmt"

// FilterState is the set of active user-chosen inclusion predicates over
// skips. Price bounds are kept as the raw strings the user typed; a
// non-numeric bound means "no constraint", never "reject everything".
type FilterState struct {
	Sizes          []int  `json:"sizes"`
	PriceMin       string `json:"price_min"`
	PriceMax       string `json:"price_max"`
	RoadLegalOnly  bool   `json:"road_legal_only"`
	HeavyWasteOnly bool   `json:"heavy_waste_only"`
}

// SortKey is the single active ordering rule applied to the filtered list.
type SortKey string

const (
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortSizeAsc   SortKey = "size_asc"
	SortSizeDesc  SortKey = "size_desc"
)

// DefaultSortKey orders offers cheapest first.
const DefaultSortKey = SortPriceAsc

// ParseSortKey validates a raw sort option coming from the client.
func ParseSortKey(raw string) (SortKey, error) {
	switch SortKey(raw) {
	case SortPriceAsc, SortPriceDesc, SortSizeAsc, SortSizeDesc:
		return SortKey(raw), nil
	default:
		return "", fmt.Errorf("unknown sort option %q", raw)
	}
}
