package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gatekeeper/api/generator"
	"gatekeeper/api/models"
	"gatekeeper/api/store"
)

type ProductHandlers struct {
	Catalog   *store.CatalogStore
	Generator *generator.Generator
}

func NewProductHandlers(catalog *store.CatalogStore, gen *generator.Generator) *ProductHandlers {
	return &ProductHandlers{Catalog: catalog, Generator: gen}
}

func (h *ProductHandlers) ListProducts(c *gin.Context) {
	products, err := h.Catalog.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"json": products})
}

func (h *ProductHandlers) AddProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	products, err := h.Catalog.Append(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("Product %q added, catalog now holds %d entries", product.ID, len(products))
	c.JSON(http.StatusOK, gin.H{"ok": true, "json": products})
}

func (h *ProductHandlers) ReplaceProducts(c *gin.Context) {
	var body json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing body"})
		return
	}

	products, err := h.Catalog.ReplaceAll(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("Catalog replaced with %d entries", len(products))
	c.JSON(http.StatusOK, gin.H{"ok": true, "json": products})
}

// AutoUpdate asks the generator for fresh candidates and merges them in.
// Merge, not replace: entries whose id already exists are dropped silently.
func (h *ProductHandlers) AutoUpdate(c *gin.Context) {
	candidates, err := h.Generator.Generate(c.Request.Context(), 2)
	if err != nil {
		respondError(c, err)
		return
	}

	products, err := h.Catalog.MergeGenerated(c.Request.Context(), candidates)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("Auto-update merged %d candidates, catalog now holds %d entries", len(candidates), len(products))
	c.JSON(http.StatusOK, gin.H{"ok": true, "merged": len(candidates), "json": products})
}
