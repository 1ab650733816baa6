package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"gatekeeper/api/models"
	"gatekeeper/api/store"
)

type WisdomHandlers struct {
	Wisdom *store.WisdomStore
}

func NewWisdomHandlers(wisdom *store.WisdomStore) *WisdomHandlers {
	return &WisdomHandlers{Wisdom: wisdom}
}

func (h *WisdomHandlers) ListWisdom(c *gin.Context) {
	notes, err := h.Wisdom.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"json": notes})
}

func (h *WisdomHandlers) AddWisdom(c *gin.Context) {
	var note models.WisdomNote
	if err := c.ShouldBindJSON(&note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	notes, err := h.Wisdom.Append(c.Request.Context(), note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "json": notes})
}

func (h *WisdomHandlers) ReplaceWisdom(c *gin.Context) {
	var body json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing body"})
		return
	}

	notes, err := h.Wisdom.ReplaceAll(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "json": notes})
}
