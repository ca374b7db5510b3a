package rateapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shipping"
)

// maxResponseBytes caps how much of a rate API response we are willing to
// read. The calculate endpoint returns a handful of quotes; anything larger
// is a broken upstream.
const maxResponseBytes = 1 << 20

// Client talks to the external rate API. It implements shipping.RateGateway.
type Client struct {
	cfg        *Config
	httpClient *http.Client
	logger     *zap.Logger
}

var _ shipping.RateGateway = (*Client)(nil)

// NewClient creates a rate API client.
func NewClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

// Quote requests carrier quotes for a shipment of the given weight.
func (c *Client) Quote(ctx context.Context, weightGrams int64, currencyCode string) ([]shipping.CarrierQuote, error) {
	if weightGrams <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive, got %d", shipping.ErrRateAPIRequestFailed, weightGrams)
	}

	req := quoteRequest{
		Weight:             weightGrams,
		CurrencyCode:       currencyCode,
		OriginCountry:      c.cfg.OriginCountry,
		DestinationCountry: c.cfg.DefaultCountry,
	}

	body, err := c.doRequest(ctx, "calculate", req)
	if err != nil {
		return nil, err
	}

	payloads, err := decodeQuotes(body)
	if err != nil {
		return nil, err
	}

	quotes := make([]shipping.CarrierQuote, 0, len(payloads))
	for _, p := range payloads {
		quotes = append(quotes, normalizeQuote(p, currencyCode))
	}

	c.logger.Debug("rate api quote",
		zap.Int64("weight_grams", weightGrams),
		zap.String("currency", currencyCode),
		zap.Int("quotes", len(quotes)))

	return quotes, nil
}

// CreatePackage books a shipment with the carrier.
func (c *Client) CreatePackage(ctx context.Context, req shipping.PackageRequest) (*shipping.PackageResult, error) {
	body, err := c.doRequest(ctx, "create-package", req)
	if err != nil {
		return nil, err
	}

	var resp packageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", shipping.ErrRateAPIInvalidResponse, err)
	}

	externalID := resp.ID
	if externalID == "" {
		externalID = resp.PackageID
	}
	if externalID == "" {
		return nil, fmt.Errorf("%w: create-package response has no package id", shipping.ErrRateAPIInvalidResponse)
	}

	return &shipping.PackageResult{
		ExternalID:     externalID,
		TrackingNumber: resp.TrackingNumber,
		LabelURL:       resp.LabelURL,
	}, nil
}

// CancelPackage cancels a previously booked shipment.
func (c *Client) CancelPackage(ctx context.Context, externalID string) error {
	if externalID == "" {
		return fmt.Errorf("%w: external package id is required", shipping.ErrRateAPIRequestFailed)
	}
	payload := map[string]string{"package_id": externalID}
	_, err := c.doRequest(ctx, "cancel-package", payload)
	return err
}

// doRequest POSTs a JSON payload to the resolved endpoint and returns the
// raw response body. Auth headers follow the hosting mode of the base URL.
func (c *Client) doRequest(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", shipping.ErrRateAPIRequestFailed, err)
	}

	url := c.cfg.Endpoint(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", shipping.ErrRateAPIRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.IsGateway() {
		req.Header.Set("apikey", c.cfg.anonKey())
		req.Header.Set("Authorization", "Bearer "+c.cfg.anonKey())
	} else {
		req.Header.Set("x-api-key", c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("rate api unreachable", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", shipping.ErrRateAPIUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", shipping.ErrRateAPIInvalidResponse, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("rate api request failed",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: HTTP %d", shipping.ErrRateAPIRequestFailed, resp.StatusCode)
	}

	return body, nil
}

// decodeQuotes accepts both the bare-array and wrapped response shapes.
func decodeQuotes(body []byte) ([]quotePayload, error) {
	var direct []quotePayload
	if err := json.Unmarshal(body, &direct); err == nil {
		return direct, nil
	}

	var wrapped quoteResponse
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %v", shipping.ErrRateAPIInvalidResponse, err)
	}
	if wrapped.Quotes != nil {
		return wrapped.Quotes, nil
	}
	if wrapped.Data != nil {
		return wrapped.Data, nil
	}
	return nil, fmt.Errorf("%w: unrecognized quote response shape", shipping.ErrRateAPIInvalidResponse)
}
