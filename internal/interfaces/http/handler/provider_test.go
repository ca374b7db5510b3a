package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appshipping "github.com/storefront/backend/internal/application/shipping"
	"github.com/storefront/backend/internal/domain/shipping"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

// bookingGateway records booking traffic so tests can assert what reached
// the carrier.
type bookingGateway struct {
	quotes       []shipping.CarrierQuote
	quoteErr     error
	createResult *shipping.PackageResult
	createErr    error
	createReqs   []shipping.PackageRequest
	cancelErr    error
	cancelled    []string
}

func (g *bookingGateway) Quote(ctx context.Context, weightGrams int64, currencyCode string) ([]shipping.CarrierQuote, error) {
	return g.quotes, g.quoteErr
}

func (g *bookingGateway) CreatePackage(ctx context.Context, req shipping.PackageRequest) (*shipping.PackageResult, error) {
	g.createReqs = append(g.createReqs, req)
	return g.createResult, g.createErr
}

func (g *bookingGateway) CancelPackage(ctx context.Context, packageID string) error {
	g.cancelled = append(g.cancelled, packageID)
	return g.cancelErr
}

func providerFixture(gateway shipping.RateGateway) *ProviderHandler {
	prices := appshipping.NewPriceService(gateway, "usd", false, nil)
	svc := appshipping.NewProviderService(gateway, prices, appshipping.ProviderConfig{
		OriginCountry:  "CN",
		DefaultCountry: "ZW",
	}, nil)
	return NewProviderHandler(svc, nil)
}

func newProviderRequest(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBuffer(nil)
	} else {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return w, c
}

func TestProviderHandlerListOptions(t *testing.T) {
	gateway := &bookingGateway{quotes: []shipping.CarrierQuote{
		{ID: "dhl", Name: "DHL Express", Amount: 3000},
		{ID: "free", Name: "Unpriced", Amount: 0},
	}}
	h := providerFixture(gateway)

	w, c := newProviderRequest(t, http.MethodGet, "/provider/shipping-options", "")
	h.ListOptions(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "external-shipping", data["provider_id"])
	options := data["options"].([]interface{})
	require.Len(t, options, 1)
}

func TestProviderHandlerValidateDataExplicitCountry(t *testing.T) {
	h := providerFixture(&bookingGateway{})

	body := `{"data":{"id":"c1","name":"Standard","country_code":"de"},"context":{"shipping_country":"ke"}}`
	w, c := newProviderRequest(t, http.MethodPost, "/provider/validate-data", body)
	h.ValidateData(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "c1", data["id"])
	assert.Equal(t, "DE", data["country_code"])
}

func TestProviderHandlerValidateDataCartFallback(t *testing.T) {
	h := providerFixture(&bookingGateway{})

	body := `{"data":{"id":"c1","name":"Standard"},"context":{"shipping_country":"ke"}}`
	w, c := newProviderRequest(t, http.MethodPost, "/provider/validate-data", body)
	h.ValidateData(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "KE", data["country_code"])
}

func TestProviderHandlerCalculatePrice(t *testing.T) {
	gateway := &bookingGateway{quotes: []shipping.CarrierQuote{
		{ID: "c1", Name: "Standard", Amount: 1020},
	}}
	h := providerFixture(gateway)

	body := `{"data":{"id":"c1","name":"Standard"},"context":{"currency_code":"usd","items":[{"title":"Mug","quantity":2,"weight":400}]}}`
	w, c := newProviderRequest(t, http.MethodPost, "/provider/calculate-price", body)
	h.CalculatePrice(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1020), data["calculated_amount"])
	assert.Equal(t, "live", data["source"])
}

func TestProviderHandlerCreateFulfillment(t *testing.T) {
	gateway := &bookingGateway{createResult: &shipping.PackageResult{
		ExternalID:     "pkg_42",
		TrackingNumber: "TRK42",
	}}
	h := providerFixture(gateway)

	body := `{"data":{"id":"c1","name":"Standard"},"order_id":"order_1","items":[{"title":"Mug","quantity":2,"weight":400}]}`
	w, c := newProviderRequest(t, http.MethodPost, "/provider/fulfillments", body)
	h.CreateFulfillment(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "pkg_42", data["external_id"])
	assert.Equal(t, "pending", data["status"])

	require.Len(t, gateway.createReqs, 1)
	assert.Equal(t, "order_1", gateway.createReqs[0].Reference)
	assert.Equal(t, int64(800), gateway.createReqs[0].WeightGrams)
}

func TestProviderHandlerCreateFulfillmentPlaceholderOnFailure(t *testing.T) {
	gateway := &bookingGateway{createErr: shipping.ErrRateAPIUnavailable}
	h := providerFixture(gateway)

	body := `{"data":{"id":"c1","name":"Standard"},"order_id":"order_1"}`
	w, c := newProviderRequest(t, http.MethodPost, "/provider/fulfillments", body)
	h.CreateFulfillment(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.True(t, strings.HasPrefix(data["external_id"].(string), "manual-"))
	assert.Equal(t, "requires_action", data["status"])
	assert.Equal(t, true, data["requires_manual_intervention"])
}

func TestProviderHandlerCreateFulfillmentRejectsMissingOrder(t *testing.T) {
	h := providerFixture(&bookingGateway{})

	w, c := newProviderRequest(t, http.MethodPost, "/provider/fulfillments", `{"data":{"id":"c1"}}`)
	h.CreateFulfillment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProviderHandlerCancelFulfillment(t *testing.T) {
	gateway := &bookingGateway{}
	h := providerFixture(gateway)

	w, c := newProviderRequest(t, http.MethodPost, "/provider/fulfillments/pkg_42/cancel", "")
	c.Params = gin.Params{{Key: "external_id", Value: "pkg_42"}}
	h.CancelFulfillment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"pkg_42"}, gateway.cancelled)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "cancelled", data["status"])
}

func TestProviderHandlerCancelManualSkipsCarrier(t *testing.T) {
	gateway := &bookingGateway{cancelErr: shipping.ErrRateAPIUnavailable}
	h := providerFixture(gateway)

	w, c := newProviderRequest(t, http.MethodPost, "/provider/fulfillments/manual-abc/cancel", "")
	c.Params = gin.Params{{Key: "external_id", Value: "manual-abc"}}
	h.CancelFulfillment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, gateway.cancelled)
}

func TestProviderHandlerRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	r := router.NewRouter(engine)
	r.Register(providerFixture(&bookingGateway{}))
	r.Setup()

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/provider/shipping-options", nil)
	require.NoError(t, err)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
