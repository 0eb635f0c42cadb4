package models

// Quote is the itemized pricing breakdown for a selected skip, shown in the
// detail view. Monetary fields are rounded to two decimal places for display;
// the underlying Skip values are never mutated.
type Quote struct {
	SkipID         int      `json:"skip_id"`
	Size           int      `json:"size"`
	HirePeriodDays int      `json:"hire_period_days"`
	PriceBeforeVAT float64  `json:"price_before_vat"`
	VATRate        float64  `json:"vat_rate"`
	VATAmount      float64  `json:"vat_amount"`
	TransportCost  float64  `json:"transport_cost"`
	PerTonneCost   *float64 `json:"per_tonne_cost,omitempty"`
	Total          float64  `json:"total"`
}
