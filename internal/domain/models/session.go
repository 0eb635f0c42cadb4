package models

// FetchStatus describes the state of the catalogue lookup for a session.
type FetchStatus string

const (
	// FetchIdle means no location has been submitted yet.
	FetchIdle FetchStatus = "idle"
	// FetchLoading means a lookup is in flight; consumers must treat the
	// offer list as empty and suppress "no results" messaging.
	FetchLoading FetchStatus = "loading"
	// FetchError means the last lookup failed; the offer list is empty.
	FetchError FetchStatus = "error"
	// FetchSuccess means the last lookup resolved, possibly with zero offers.
	FetchSuccess FetchStatus = "success"
)

// SessionSnapshot is the read-only view of a browse session returned by the
// API.
type SessionSnapshot struct {
	ID             string      `json:"id"`
	Postcode       string      `json:"postcode"`
	Area           string      `json:"area"`
	Status         FetchStatus `json:"status"`
	Filters        FilterState `json:"filters"`
	Sort           SortKey     `json:"sort"`
	SelectedSkipID *int        `json:"selected_skip_id,omitempty"`
}
