package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"gatekeeper/api/models"
)

// ClickStore is the append-only interaction log. Events are never mutated or
// deduplicated once recorded.
type ClickStore struct {
	docs DocumentStore
	path string
	now  func() time.Time
}

func NewClickStore(docs DocumentStore, path string) *ClickStore {
	return &ClickStore{
		docs: docs,
		path: path,
		now:  time.Now,
	}
}

// List returns every recorded event; a missing log is a cold start, not a
// fault, and reads as empty.
func (s *ClickStore) List(ctx context.Context) ([]models.ClickEvent, error) {
	events, _, err := readDocument[models.ClickEvent](ctx, s.docs, s.path)
	return events, err
}

// Append records one event. Validation happens before any store access.
func (s *ClickStore) Append(ctx context.Context, event models.ClickEvent) (models.ClickEvent, error) {
	if strings.TrimSpace(event.ProductID) == "" {
		return models.ClickEvent{}, &ValidationError{Message: "product_id is required"}
	}

	event.EventID = uuid.New().String()
	if event.Type == "" {
		event.Type = "click"
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = models.FlexTime(s.now().UnixMilli())
	}

	_, err := updateDocument(ctx, s.docs, s.path, "Record click via Gatekeeper",
		func(current []models.ClickEvent) ([]models.ClickEvent, error) {
			return append(current, event), nil
		})
	if err != nil {
		return models.ClickEvent{}, err
	}
	return event, nil
}
