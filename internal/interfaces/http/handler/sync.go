package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appshipping "github.com/storefront/backend/internal/application/shipping"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

// catalogEntry is one carrier in the dry-run catalog listing.
type catalogEntry struct {
	CarrierID string `json:"carrier_id"`
	Name      string `json:"name"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency_code"`
}

// SyncHandler exposes the shipping-option synchronization run and its
// dry-run preview to operators
type SyncHandler struct {
	BaseHandler
	sync   *appshipping.SyncService
	logger *zap.Logger
}

// NewSyncHandler creates a sync handler
func NewSyncHandler(sync *appshipping.SyncService, logger *zap.Logger) *SyncHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncHandler{
		BaseHandler: NewBaseHandler(),
		sync:        sync,
		logger:      logger,
	}
}

// RegisterRoutes registers the admin sync routes
func (h *SyncHandler) RegisterRoutes(r *router.Router) {
	admin := r.Admin()
	admin.GET("/sync-shipping-options", h.PreviewCatalog)
	admin.POST("/sync-shipping-options", h.RunSync)
}

// PreviewCatalog fetches and normalizes the live carrier catalog without
// touching local options.
func (h *SyncHandler) PreviewCatalog(c *gin.Context) {
	catalog, err := h.sync.FetchCatalog(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	entries := make([]catalogEntry, 0, len(catalog))
	for _, q := range catalog {
		entries = append(entries, catalogEntry{
			CarrierID: q.ID,
			Name:      q.Name,
			Amount:    q.Amount,
			Currency:  q.CurrencyCode,
		})
	}

	h.Success(c, gin.H{"carriers": entries})
}

// RunSync executes a full synchronization run and returns its summary.
func (h *SyncHandler) RunSync(c *gin.Context) {
	result, err := h.sync.Sync(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("shipping option sync completed via admin endpoint",
		zap.Int64("deleted", result.Deleted),
		zap.Int("created", result.Created),
		zap.Int("failed", result.Failed))

	h.Success(c, result)
}
