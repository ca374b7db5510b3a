package shipping

// SyncResult summarizes one synchronization run.
type SyncResult struct {
	Deleted  int64 `json:"deleted"`
	Created  int   `json:"created"`
	Failed   int   `json:"failed"`
	Carriers int   `json:"carriers"`
	Zones    int   `json:"zones"`
	Profiles int   `json:"profiles"`
}

// RateQuery is the input to rate aggregation. Zero values mean "not given".
type RateQuery struct {
	CartID       string
	WeightGrams  int64
	CurrencyCode string
}

// RateOption is one aggregated shipping rate in storefront display form.
type RateOption struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	AmountPerKg     int64  `json:"amount_per_kg"`
	AmountFormatted string `json:"amount_formatted"`
	EstimatedDays   string `json:"estimated_days"`
	Provider        string `json:"provider"`
}

// RateSet is the aggregation result. IsFallback distinguishes synthetic
// rates from live carrier data and must survive to the end user.
type RateSet struct {
	Options    []RateOption `json:"options"`
	IsFallback bool         `json:"is_fallback"`
	Message    string       `json:"message,omitempty"`
}
