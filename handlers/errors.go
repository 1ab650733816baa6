package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gatekeeper/api/database"
	"gatekeeper/api/generator"
	"gatekeeper/api/store"
)

// respondError maps the error taxonomy onto HTTP statuses. Validation is the
// only class whose message is echoed to the caller.
func respondError(c *gin.Context, err error) {
	var validation *store.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
		return
	}

	if errors.Is(err, database.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "Document was modified concurrently, please retry"})
		return
	}

	var upstream *generator.UpstreamError
	if errors.As(err, &upstream) {
		log.Printf("Generative service failure: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Generative service request failed", "upstream_status": upstream.StatusCode})
		return
	}

	var api *database.APIError
	if errors.As(err, &api) {
		log.Printf("Remote store failure: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Remote store request failed", "upstream_status": api.StatusCode})
		return
	}

	log.Printf("Unhandled error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
