package models

// LocationRequest carries the user-entered postcode/area pair. No format
// validation is applied beyond presence; malformed values are forwarded to
// the catalogue service as-is.
type LocationRequest struct {
	Postcode string `json:"postcode" binding:"required"`
	Area     string `json:"area" binding:"required"`
}

// SortRequest sets the active sort key.
type SortRequest struct {
	Sort string `json:"sort" binding:"required"`
}

// SelectionRequest marks one skip as the current selection.
type SelectionRequest struct {
	SkipID int `json:"skip_id" binding:"required"`
}

// SkipCard is the list/grid view of one offer. VATAmount and TotalPrice are
// rounded to whole pounds for card display; the detail Quote keeps pence.
type SkipCard struct {
	ID               int     `json:"id"`
	Size             int     `json:"size"`
	HirePeriodDays   int     `json:"hire_period_days"`
	PriceBeforeVAT   float64 `json:"price_before_vat"`
	VATRate          float64 `json:"vat_rate"`
	VATAmount        int     `json:"vat_amount"`
	TotalPrice       int     `json:"total_price"`
	AllowedOnRoad    bool    `json:"allowed_on_road"`
	AllowsHeavyWaste bool    `json:"allows_heavy_waste"`
	Selected         bool    `json:"selected"`
}

// SkipListResponse is the rendered browse surface for a session.
type SkipListResponse struct {
	Status   FetchStatus `json:"status"`
	Postcode string      `json:"postcode"`
	Area     string      `json:"area"`
	Message  string      `json:"message,omitempty"`
	Skips    []SkipCard  `json:"skips"`
}

// CheckoutResponse names the next (unimplemented) step of the booking funnel.
type CheckoutResponse struct {
	NextStep string `json:"next_step"`
	Message  string `json:"message"`
}

// ContentResponse carries the static page content: contact details, the
// disclaimer notice and the booking funnel steps.
type ContentResponse struct {
	Phone      string   `json:"phone"`
	Email      string   `json:"email"`
	Disclaimer string   `json:"disclaimer"`
	Steps      []string `json:"steps"`
}
