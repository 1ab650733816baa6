package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gatekeeper/api/database"
)

// DocumentStore is the slice of the remote client the stores need. The
// concrete implementation is database.GitHubClient; tests substitute an
// in-memory fake with the same conflict semantics.
type DocumentStore interface {
	ReadFile(ctx context.Context, path string) ([]byte, string, error)
	WriteFile(ctx context.Context, path string, data []byte, sha, message string) (string, error)
}

// ValidationError is malformed caller input, detected before any store
// access. The message names the offending field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// readDocument loads and decodes a JSON-array document. A missing document
// decodes as an empty collection with an empty SHA; that is the cold-start
// state, not an error.
func readDocument[T any](ctx context.Context, docs DocumentStore, path string) ([]T, string, error) {
	raw, sha, err := docs.ReadFile(ctx, path)
	if errors.Is(err, database.ErrNotFound) {
		return []T{}, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, "", fmt.Errorf("failed to decode document %s: %w", path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, sha, nil
}

// updateDocument runs one read-modify-write cycle against path and commits
// the result of mutate. The read happens immediately before the write to keep
// the lost-update window small; when the write still loses the race it is
// retried exactly once against the refreshed SHA, then ErrConflict surfaces
// to the caller.
func updateDocument[T any](ctx context.Context, docs DocumentStore, path, message string, mutate func(current []T) ([]T, error)) ([]T, error) {
	items, err := writeOnce[T](ctx, docs, path, message, mutate)
	if !errors.Is(err, database.ErrConflict) {
		return items, err
	}

	log.Printf("Conflict writing %s, retrying once against refreshed revision", path)
	return writeOnce[T](ctx, docs, path, message, mutate)
}

func writeOnce[T any](ctx context.Context, docs DocumentStore, path, message string, mutate func(current []T) ([]T, error)) ([]T, error) {
	current, sha, err := readDocument[T](ctx, docs, path)
	if err != nil {
		return nil, err
	}

	updated, err := mutate(current)
	if err != nil {
		return nil, err
	}

	encoded, err := json.MarshalIndent(updated, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document %s: %w", path, err)
	}

	if _, err := docs.WriteFile(ctx, path, encoded, sha, message); err != nil {
		return nil, err
	}
	return updated, nil
}
