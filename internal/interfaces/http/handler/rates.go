package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appshipping "github.com/storefront/backend/internal/application/shipping"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

// rateResponse is the storefront rate contract. Unlike the admin envelope it
// is flat: the widget consumes options and is_fallback at the top level.
type rateResponse struct {
	Success    bool                     `json:"success"`
	Options    []appshipping.RateOption `json:"options"`
	IsFallback bool                     `json:"is_fallback,omitempty"`
	Message    string                   `json:"message,omitempty"`
}

// RatesHandler serves the public shipping-rate aggregation endpoint
type RatesHandler struct {
	BaseHandler
	rates  *appshipping.RateService
	logger *zap.Logger
}

// NewRatesHandler creates a rates handler
func NewRatesHandler(rates *appshipping.RateService, logger *zap.Logger) *RatesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RatesHandler{
		BaseHandler: NewBaseHandler(),
		rates:       rates,
		logger:      logger,
	}
}

// RegisterRoutes registers the public rate routes
func (h *RatesHandler) RegisterRoutes(r *router.Router) {
	r.Public().GET("/shipping-rates", h.GetRates)
}

// GetRates aggregates shipping rates for the storefront widget.
// Provider failures still answer 200 with the fallback family; only a
// malformed cart id is a client error.
func (h *RatesHandler) GetRates(c *gin.Context) {
	query := appshipping.RateQuery{
		CartID:       c.Query("cart_id"),
		CurrencyCode: c.Query("currency_code"),
	}

	if raw := c.Query("weight"); raw != "" {
		weight, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || weight <= 0 {
			h.BadRequest(c, "weight must be a positive integer number of grams")
			return
		}
		query.WeightGrams = weight
	}

	set, err := h.rates.GetRates(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, appshipping.ErrInvalidCartID) {
			h.Error(c, dto.ErrCodeInvalidCartID, appshipping.ErrInvalidCartID.Message)
			return
		}
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, rateResponse{
		Success:    true,
		Options:    set.Options,
		IsFallback: set.IsFallback,
		Message:    set.Message,
	})
}
