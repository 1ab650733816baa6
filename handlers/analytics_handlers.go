package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gatekeeper/api/store"
)

type AnalyticsHandlers struct {
	Catalog *store.CatalogStore
	Clicks  *store.ClickStore
}

func NewAnalyticsHandlers(catalog *store.CatalogStore, clicks *store.ClickStore) *AnalyticsHandlers {
	return &AnalyticsHandlers{Catalog: catalog, Clicks: clicks}
}

// GetAnalytics aggregates fresh snapshots of the catalog and the click log.
// Nothing is cached between requests.
func (h *AnalyticsHandlers) GetAnalytics(c *gin.Context) {
	products, err := h.Catalog.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	clicks, err := h.Clicks.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	report := store.BuildAnalytics(products, clicks, time.Now().UTC())
	c.JSON(http.StatusOK, report)
}
