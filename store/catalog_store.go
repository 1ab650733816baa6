package store

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"gatekeeper/api/models"
)

// CatalogStore maintains the products document. Every mutation is a full
// read-modify-write of the document; ordering is descending by dateAdded
// after any write this store produces.
type CatalogStore struct {
	docs DocumentStore
	path string
	now  func() time.Time
}

func NewCatalogStore(docs DocumentStore, path string) *CatalogStore {
	return &CatalogStore{
		docs: docs,
		path: path,
		now:  time.Now,
	}
}

// List returns the current catalog, newest first. A missing document is an
// empty catalog.
func (s *CatalogStore) List(ctx context.Context) ([]models.Product, error) {
	products, _, err := readDocument[models.Product](ctx, s.docs, s.path)
	return products, err
}

// Append normalizes the product and adds it to the catalog. There is no
// dedup on this path: the endpoint's contract is "always add".
func (s *CatalogStore) Append(ctx context.Context, product models.Product) ([]models.Product, error) {
	product.Normalize(s.now())
	if product.Category != "" && !models.IsKnownCategory(product.Category) {
		log.Printf("Product %q uses uncommon category %q", product.ID, product.Category)
	}

	return updateDocument(ctx, s.docs, s.path, "Add product via Gatekeeper",
		func(current []models.Product) ([]models.Product, error) {
			updated := append(current, product)
			sortByDateDesc(updated)
			return updated, nil
		})
}

// ReplaceAll swaps the whole catalog for the caller-supplied one. This is the
// bulk-editor surface: last writer wins on purpose, so the mutation ignores
// whatever the concurrent state was and only re-reads for the revision SHA.
func (s *CatalogStore) ReplaceAll(ctx context.Context, body json.RawMessage) ([]models.Product, error) {
	// A top-level null also decodes without error, as a nil slice; committing
	// it would wipe the catalog and store the literal document "null".
	var incoming []models.Product
	if err := json.Unmarshal(body, &incoming); err != nil || incoming == nil {
		return nil, &ValidationError{Message: "body must be a JSON array of product objects"}
	}

	now := s.now()
	for i := range incoming {
		incoming[i].Normalize(now)
	}
	sortByDateDesc(incoming)

	return updateDocument(ctx, s.docs, s.path, "Replace products via Gatekeeper",
		func([]models.Product) ([]models.Product, error) {
			return incoming, nil
		})
}

// MergeGenerated folds generated candidates into the catalog, skipping any
// id that already exists. Applying the same batch twice yields the same id
// set, and append order of the survivors is preserved (no re-sort).
func (s *CatalogStore) MergeGenerated(ctx context.Context, candidates []models.Product) ([]models.Product, error) {
	now := s.now()
	for i := range candidates {
		candidates[i].Normalize(now)
	}

	return updateDocument(ctx, s.docs, s.path, "Merge generated products via Gatekeeper",
		func(current []models.Product) ([]models.Product, error) {
			existing := make(map[string]bool, len(current))
			for _, p := range current {
				existing[p.ID] = true
			}

			updated := current
			for _, candidate := range candidates {
				if existing[candidate.ID] {
					continue
				}
				existing[candidate.ID] = true
				updated = append(updated, candidate)
			}
			return updated, nil
		})
}

func sortByDateDesc(products []models.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].DateAdded > products[j].DateAdded
	})
}
