// Package pipeline holds the pure filter/sort/pricing transforms applied to
// the raw offer list before rendering. Every function is synchronous,
// side-effect-free and safe to re-run on identical inputs.
package pipeline

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/skiphire/skip-browser/internal/domain/models"
)

// TotalPrice is the authoritative comparison and display value for an offer:
// base price plus VAT plus the transport surcharge when present. The
// per-tonne surcharge is deliberately excluded.
func TotalPrice(s models.Skip) float64 {
	total := s.PriceBeforeVAT * (1 + s.VATRate()/100)
	if s.TransportCost != nil {
		total += *s.TransportCost
	}
	return total
}

// VATAmount returns the VAT portion of an offer's price.
func VATAmount(s models.Skip) float64 {
	return s.PriceBeforeVAT * s.VATRate() / 100
}

// Filter returns the subset of skips admitted by the filter state, preserving
// input order. Forbidden offers are excluded unconditionally, before any user
// predicate. The input slice is never modified.
func Filter(skips []models.Skip, f models.FilterState) []models.Skip {
	minPrice, hasMin := parseBound(f.PriceMin)
	maxPrice, hasMax := parseBound(f.PriceMax)

	out := make([]models.Skip, 0, len(skips))
	for _, s := range skips {
		if s.Forbidden {
			continue
		}
		if len(f.Sizes) > 0 && !containsInt(f.Sizes, s.Size) {
			continue
		}
		total := TotalPrice(s)
		if hasMin && total < minPrice {
			continue
		}
		if hasMax && total > maxPrice {
			continue
		}
		if f.RoadLegalOnly && !s.AllowedOnRoad {
			continue
		}
		if f.HeavyWasteOnly && !s.AllowsHeavyWaste {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Sort returns a copy of skips ordered by the given key. Equal keys keep
// their input order, so repeated sorts of the same list are identical.
func Sort(skips []models.Skip, key models.SortKey) []models.Skip {
	out := make([]models.Skip, len(skips))
	copy(out, skips)

	switch key {
	case models.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return TotalPrice(out[i]) < TotalPrice(out[j]) })
	case models.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return TotalPrice(out[i]) > TotalPrice(out[j]) })
	case models.SortSizeAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Size < out[j].Size })
	case models.SortSizeDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Size > out[j].Size })
	}

	return out
}

// BuildQuote computes the detail-view pricing breakdown for one offer,
// rounded to two decimal places.
func BuildQuote(s models.Skip) models.Quote {
	var transport float64
	if s.TransportCost != nil {
		transport = *s.TransportCost
	}

	return models.Quote{
		SkipID:         s.ID,
		Size:           s.Size,
		HirePeriodDays: s.HirePeriodDays,
		PriceBeforeVAT: s.PriceBeforeVAT,
		VATRate:        s.VATRate(),
		VATAmount:      RoundPence(VATAmount(s)),
		TransportCost:  transport,
		PerTonneCost:   s.PerTonneCost,
		Total:          RoundPence(TotalPrice(s)),
	}
}

// BuildCard produces the whole-pound list view of one offer.
func BuildCard(s models.Skip, selected bool) models.SkipCard {
	return models.SkipCard{
		ID:               s.ID,
		Size:             s.Size,
		HirePeriodDays:   s.HirePeriodDays,
		PriceBeforeVAT:   s.PriceBeforeVAT,
		VATRate:          s.VATRate(),
		VATAmount:        RoundPounds(VATAmount(s)),
		TotalPrice:       RoundPounds(TotalPrice(s)),
		AllowedOnRoad:    s.AllowedOnRoad,
		AllowsHeavyWaste: s.AllowsHeavyWaste,
		Selected:         selected,
	}
}

// RoundPounds rounds a monetary value to whole currency units for card views.
func RoundPounds(v float64) int {
	return int(math.Round(v))
}

// RoundPence rounds a monetary value to two decimal places for detail views.
func RoundPence(v float64) float64 {
	return math.Round(v*100) / 100
}

// parseBound interprets a raw price bound. Empty or non-numeric input means
// the bound is absent.
func parseBound(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func containsInt(values []int, target int) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
