package store

import (
	"context"
	"strconv"
	"sync"

	"gatekeeper/api/database"
)

// fakeDocs is an in-memory DocumentStore with the same conditional-write
// semantics as the GitHub client: a write must present the SHA of the
// revision it read, or it conflicts. forcedConflicts rejects that many
// upcoming writes outright to simulate losing the read-write race.
type fakeDocs struct {
	mu              sync.Mutex
	files           map[string][]byte
	revs            map[string]int
	writes          int
	forcedConflicts int
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{
		files: make(map[string][]byte),
		revs:  make(map[string]int),
	}
}

func (f *fakeDocs) ReadFile(_ context.Context, path string) ([]byte, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.files[path]
	if !ok {
		return nil, "", database.ErrNotFound
	}
	return data, strconv.Itoa(f.revs[path]), nil
}

func (f *fakeDocs) WriteFile(_ context.Context, path string, data []byte, sha, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.forcedConflicts > 0 {
		f.forcedConflicts--
		return "", database.ErrConflict
	}

	if _, exists := f.files[path]; exists && sha != strconv.Itoa(f.revs[path]) {
		return "", database.ErrConflict
	}

	f.files[path] = data
	f.revs[path]++
	f.writes++
	return strconv.Itoa(f.revs[path]), nil
}
