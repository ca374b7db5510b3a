package shipping

import "sort"

// CarrierQuote is a single priced shipping service returned by the external
// rate API. Quotes are produced fresh on every call and are never persisted
// verbatim; they are either consumed immediately or turned into a
// ShippingOption by the synchronizer.
type CarrierQuote struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Amount           int64  `json:"amount"` // minor currency units
	CurrencyCode     string `json:"currency_code"`
	EstimatedDaysMin int    `json:"estimated_days_min,omitempty"`
	EstimatedDaysMax int    `json:"estimated_days_max,omitempty"`
}

// IsPriced returns true if the quote carries a usable positive amount.
// A zero amount means "unavailable" everywhere except the pay-on-collection
// charge override, which is applied downstream and never stored on a quote.
func (q CarrierQuote) IsPriced() bool {
	return q.Amount > 0
}

// CarrierOption is the {id, name} discovery pair exposed by the provider's
// option listing. The authoritative option catalog lives in the local store,
// populated by the synchronizer; this is a best-effort aid.
type CarrierOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FilterPriced returns only the quotes with a positive amount, preserving
// input order.
func FilterPriced(quotes []CarrierQuote) []CarrierQuote {
	filtered := make([]CarrierQuote, 0, len(quotes))
	for _, q := range quotes {
		if q.IsPriced() {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

// SortByAmount sorts quotes ascending by amount, cheapest first.
func SortByAmount(quotes []CarrierQuote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Amount < quotes[j].Amount
	})
}
