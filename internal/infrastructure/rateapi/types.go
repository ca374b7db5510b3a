package rateapi

import (
	"github.com/storefront/backend/internal/domain/shipping"
)

// quoteRequest is the payload sent to the calculate endpoint.
type quoteRequest struct {
	Weight             int64  `json:"weight"`
	CurrencyCode       string `json:"currency_code"`
	OriginCountry      string `json:"origin_country"`
	DestinationCountry string `json:"destination_country"`
}

// quotePayload is a single carrier quote as the rate API returns it. The API
// has shipped several shapes over time, so every pricing field has a sibling
// and normalizeQuote picks whichever is present.
type quotePayload struct {
	ID               string            `json:"id"`
	ShippingOptionID string            `json:"shipping_option_id"`
	Name             string            `json:"name"`
	OptionName       string            `json:"shipping_option_name"`
	Amount           int64             `json:"amount"`
	Price            int64             `json:"price"`
	CurrencyCode     string            `json:"currency_code"`
	EstimatedDaysMin int               `json:"estimated_days_min"`
	EstimatedDaysMax int               `json:"estimated_days_max"`
	Data             *quotePayloadData `json:"data"`
}

// quotePayloadData carries the nested variant of the pricing fields.
type quotePayloadData struct {
	DisplayPrice     int64 `json:"display_price"`
	EstimatedDaysMin int   `json:"estimated_days_min"`
	EstimatedDaysMax int   `json:"estimated_days_max"`
}

// quoteResponse tolerates both a bare array and an object wrapper.
type quoteResponse struct {
	Quotes []quotePayload `json:"quotes"`
	Data   []quotePayload `json:"data"`
}

// packageResponse is the create-package endpoint response.
type packageResponse struct {
	ID             string `json:"id"`
	PackageID      string `json:"package_id"`
	TrackingNumber string `json:"tracking_number"`
	LabelURL       string `json:"label_url"`
}

// normalizeQuote maps a raw payload onto the domain quote, resolving the
// field variants. The calculated total lives in data.display_price and wins
// over the top-level amount/price pair when both are present.
// fallbackCurrency fills in when the API omits the currency.
func normalizeQuote(p quotePayload, fallbackCurrency string) shipping.CarrierQuote {
	q := shipping.CarrierQuote{
		ID:               p.ID,
		Name:             p.Name,
		Amount:           p.Amount,
		CurrencyCode:     p.CurrencyCode,
		EstimatedDaysMin: p.EstimatedDaysMin,
		EstimatedDaysMax: p.EstimatedDaysMax,
	}
	if q.ID == "" {
		q.ID = p.ShippingOptionID
	}
	if q.Name == "" {
		q.Name = p.OptionName
	}
	if q.Amount == 0 {
		q.Amount = p.Price
	}
	if p.Data != nil {
		if p.Data.DisplayPrice != 0 {
			q.Amount = p.Data.DisplayPrice
		}
		if q.EstimatedDaysMin == 0 {
			q.EstimatedDaysMin = p.Data.EstimatedDaysMin
		}
		if q.EstimatedDaysMax == 0 {
			q.EstimatedDaysMax = p.Data.EstimatedDaysMax
		}
	}
	if q.CurrencyCode == "" {
		q.CurrencyCode = fallbackCurrency
	}
	return q
}
