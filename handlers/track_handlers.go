package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gatekeeper/api/models"
	"gatekeeper/api/store"
)

type TrackHandlers struct {
	Clicks *store.ClickStore
}

func NewTrackHandlers(clicks *store.ClickStore) *TrackHandlers {
	return &TrackHandlers{Clicks: clicks}
}

// TrackClick appends one interaction to the click log. The log is
// best-effort and append-only; repeated identical clicks are all recorded.
func (h *TrackHandlers) TrackClick(c *gin.Context) {
	var event models.ClickEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	event.IP = c.ClientIP()

	recorded, err := h.Clicks.Append(c.Request.Context(), event)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "event": recorded})
}
