package store

import (
	"context"
	"encoding/json"
	"time"

	"gatekeeper/api/models"
)

// WisdomStore keeps the curated notes document. Notes are free-form; the
// only server-side touch is stamping dateAdded. Unlike the catalog there is
// no id-uniqueness invariant.
type WisdomStore struct {
	docs DocumentStore
	path string
	now  func() time.Time
}

func NewWisdomStore(docs DocumentStore, path string) *WisdomStore {
	return &WisdomStore{
		docs: docs,
		path: path,
		now:  time.Now,
	}
}

func (s *WisdomStore) List(ctx context.Context) ([]models.WisdomNote, error) {
	notes, _, err := readDocument[models.WisdomNote](ctx, s.docs, s.path)
	return notes, err
}

func (s *WisdomStore) Append(ctx context.Context, note models.WisdomNote) ([]models.WisdomNote, error) {
	if note == nil {
		return nil, &ValidationError{Message: "body must be a JSON object"}
	}
	note["dateAdded"] = s.now().UnixMilli()

	return updateDocument(ctx, s.docs, s.path, "Add wisdom note via Gatekeeper",
		func(current []models.WisdomNote) ([]models.WisdomNote, error) {
			return append(current, note), nil
		})
}

func (s *WisdomStore) ReplaceAll(ctx context.Context, body json.RawMessage) ([]models.WisdomNote, error) {
	var incoming []models.WisdomNote
	if err := json.Unmarshal(body, &incoming); err != nil || incoming == nil {
		return nil, &ValidationError{Message: "body must be a JSON array of note objects"}
	}

	now := s.now().UnixMilli()
	for _, note := range incoming {
		// A null element decodes as a nil map; stamping it would panic.
		if note == nil {
			return nil, &ValidationError{Message: "every note must be a JSON object"}
		}
		if _, ok := note["dateAdded"]; !ok {
			note["dateAdded"] = now
		}
	}

	return updateDocument(ctx, s.docs, s.path, "Replace wisdom notes via Gatekeeper",
		func([]models.WisdomNote) ([]models.WisdomNote, error) {
			return incoming, nil
		})
}
