package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatekeeper/api/models"
)

const wisdomPath = "data/product-wisdom.json"

func testWisdom(docs *fakeDocs) *WisdomStore {
	s := NewWisdomStore(docs, wisdomPath)
	s.now = func() time.Time { return time.UnixMilli(5000).UTC() }
	return s
}

func TestWisdomListMissingDocumentIsEmpty(t *testing.T) {
	wisdom := testWisdom(newFakeDocs())

	notes, err := wisdom.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestWisdomAppendStampsDateAdded(t *testing.T) {
	wisdom := testWisdom(newFakeDocs())

	notes, err := wisdom.Append(context.Background(), models.WisdomNote{"text": "breathe"})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "breathe", notes[0]["text"])
	assert.Equal(t, int64(5000), notes[0]["dateAdded"])
}

func TestWisdomAppendRejectsNilNote(t *testing.T) {
	docs := newFakeDocs()
	wisdom := testWisdom(docs)

	_, err := wisdom.Append(context.Background(), nil)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Zero(t, docs.writes)
}

func TestWisdomReplaceAllRejectsNonArray(t *testing.T) {
	docs := newFakeDocs()
	wisdom := testWisdom(docs)

	for _, body := range []string{`{"text":"one"}`, `null`, `"notes"`, `not json`} {
		_, err := wisdom.ReplaceAll(context.Background(), json.RawMessage(body))

		var validation *ValidationError
		require.ErrorAs(t, err, &validation, body)
	}
	assert.Zero(t, docs.writes)
}

func TestWisdomReplaceAllRejectsNullElement(t *testing.T) {
	docs := newFakeDocs()
	wisdom := testWisdom(docs)

	_, err := wisdom.ReplaceAll(context.Background(), json.RawMessage(`[{"text":"one"},null]`))

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, "object")
	assert.Zero(t, docs.writes)
}

func TestWisdomReplaceAllStampsAndIsIdempotent(t *testing.T) {
	wisdom := testWisdom(newFakeDocs())
	body := json.RawMessage(`[{"text":"one"},{"text":"two","dateAdded":123}]`)

	first, err := wisdom.ReplaceAll(context.Background(), body)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, int64(5000), first[0]["dateAdded"])
	// A caller-supplied dateAdded is left alone.
	assert.Equal(t, float64(123), first[1]["dateAdded"])

	second, err := wisdom.ReplaceAll(context.Background(), body)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	listed, err := wisdom.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}