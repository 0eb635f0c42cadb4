package models

// Skip is one rental-unit offer returned by the catalogue service for a
// location. Field names mirror the upstream JSON exactly. TransportCost,
// PerTonneCost and VAT may be absent in the payload; PerTonneCost is carried
// for forward compatibility and never enters any total.
type Skip struct {
	ID               int      `json:"id"`
	Size             int      `json:"size"`
	HirePeriodDays   int      `json:"hire_period_days"`
	TransportCost    *float64 `json:"transport_cost"`
	PerTonneCost     *float64 `json:"per_tonne_cost"`
	PriceBeforeVAT   float64  `json:"price_before_vat"`
	VAT              *float64 `json:"vat"`
	Postcode         string   `json:"postcode"`
	Area             string   `json:"area"`
	Forbidden        bool     `json:"forbidden"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
	AllowedOnRoad    bool     `json:"allowed_on_road"`
	AllowsHeavyWaste bool     `json:"allows_heavy_waste"`
}

// DefaultVATRate is substituted when the catalogue omits the vat field.
const DefaultVATRate = 20.0

// VATRate returns the offer's VAT percentage, applying the default once here
// rather than at every call site.
func (s Skip) VATRate() float64 {
	if s.VAT == nil {
		return DefaultVATRate
	}
	return *s.VAT
}
