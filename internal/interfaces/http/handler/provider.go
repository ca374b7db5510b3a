package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shipping"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

// cartLinePayload is the wire form of one cart line.
type cartLinePayload struct {
	Title       string `json:"title"`
	Quantity    int64  `json:"quantity"`
	WeightGrams int64  `json:"weight"`
}

// cartContextPayload is the wire form of the cart-derived pricing input.
type cartContextPayload struct {
	CurrencyCode    string            `json:"currency_code"`
	ShippingCountry string            `json:"shipping_country,omitempty"`
	Items           []cartLinePayload `json:"items"`
}

func (p cartContextPayload) toDomain() shipping.CartContext {
	lines := make([]shipping.CartLine, 0, len(p.Items))
	for _, item := range p.Items {
		lines = append(lines, shipping.CartLine{
			Title:       item.Title,
			Quantity:    item.Quantity,
			WeightGrams: item.WeightGrams,
		})
	}
	return shipping.CartContext{
		CurrencyCode:    p.CurrencyCode,
		ShippingCountry: p.ShippingCountry,
		Lines:           lines,
	}
}

// optionDataRequest pairs a stored option's carrier payload with the cart
// context; it serves both validation and price calculation.
type optionDataRequest struct {
	Data    shipping.OptionData `json:"data" binding:"required"`
	Context cartContextPayload  `json:"context"`
}

// calculatedPriceResponse is the wire form of a resolved price.
type calculatedPriceResponse struct {
	CalculatedAmount int64  `json:"calculated_amount"`
	DisplayRate      int64  `json:"display_rate"`
	IsTaxInclusive   bool   `json:"is_calculated_price_tax_inclusive"`
	Source           string `json:"source"`
}

// createFulfillmentRequest books a shipment for an order.
type createFulfillmentRequest struct {
	Data     shipping.OptionData        `json:"data" binding:"required"`
	OrderID  string                     `json:"order_id" binding:"required"`
	Sender   shipping.Address           `json:"sender"`
	Receiver shipping.Address           `json:"receiver"`
	Items    []shipping.FulfillmentItem `json:"items"`
}

// ProviderHandler exposes the fulfillment provider's capability set over
// HTTP so the commerce platform can drive option discovery, validation,
// pricing and the fulfillment lifecycle.
type ProviderHandler struct {
	BaseHandler
	provider shipping.FulfillmentProvider
	logger   *zap.Logger
}

// NewProviderHandler creates a provider handler
func NewProviderHandler(provider shipping.FulfillmentProvider, logger *zap.Logger) *ProviderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProviderHandler{
		BaseHandler: NewBaseHandler(),
		provider:    provider,
		logger:      logger,
	}
}

// RegisterRoutes registers the provider lifecycle routes
func (h *ProviderHandler) RegisterRoutes(r *router.Router) {
	group := r.Provider()
	group.GET("/shipping-options", h.ListOptions)
	group.POST("/validate-data", h.ValidateData)
	group.POST("/calculate-price", h.CalculatePrice)
	group.POST("/fulfillments", h.CreateFulfillment)
	group.POST("/fulfillments/:external_id/cancel", h.CancelFulfillment)
}

// ListOptions returns the live carrier catalog. Discovery is best effort,
// so an upstream failure yields an empty list rather than an error.
func (h *ProviderHandler) ListOptions(c *gin.Context) {
	options := h.provider.ListOptions(c.Request.Context())
	h.Success(c, gin.H{
		"provider_id": h.provider.Identifier(),
		"options":     options,
	})
}

// ValidateData resolves the destination country for a fulfillment record
func (h *ProviderHandler) ValidateData(c *gin.Context) {
	var req optionDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	validated := h.provider.ValidateData(c.Request.Context(), req.Data, req.Context.toDomain())
	h.Success(c, validated)
}

// CalculatePrice resolves a stored option's price for the given cart
func (h *ProviderHandler) CalculatePrice(c *gin.Context) {
	var req optionDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cartCtx := req.Context.toDomain()
	validated := h.provider.ValidateData(c.Request.Context(), req.Data, cartCtx)
	price, err := h.provider.CalculatePrice(c.Request.Context(), req.Data, validated, cartCtx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, calculatedPriceResponse{
		CalculatedAmount: price.ChargedAmount,
		DisplayRate:      price.DisplayRate,
		IsTaxInclusive:   price.TaxInclusive,
		Source:           string(price.Source),
	})
}

// CreateFulfillment books a shipment with the carrier. A booking failure
// still answers 201: the provider substitutes a placeholder fulfillment
// flagged for manual intervention.
func (h *ProviderHandler) CreateFulfillment(c *gin.Context) {
	var req createFulfillmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fulfillment, err := h.provider.CreateFulfillment(c.Request.Context(), shipping.CreateFulfillmentRequest{
		OptionData: req.Data,
		OrderID:    req.OrderID,
		Sender:     req.Sender,
		Receiver:   req.Receiver,
		Items:      req.Items,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if fulfillment.RequiresManualIntervention {
		h.logger.Warn("fulfillment requires manual intervention",
			zap.String("order_id", req.OrderID),
			zap.String("external_id", fulfillment.ExternalID))
	}
	h.Created(c, fulfillment)
}

// CancelFulfillment propagates cancellation to the carrier
func (h *ProviderHandler) CancelFulfillment(c *gin.Context) {
	externalID := c.Param("external_id")
	if externalID == "" {
		h.BadRequest(c, "external_id is required")
		return
	}

	fulfillment := &shipping.Fulfillment{ExternalID: externalID}
	if err := h.provider.CancelFulfillment(c.Request.Context(), fulfillment); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, fulfillment)
}
