package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatekeeper/api/models"
)

const clicksPath = "data/clicks.json"

func testClicks(docs *fakeDocs) *ClickStore {
	s := NewClickStore(docs, clicksPath)
	s.now = func() time.Time { return time.UnixMilli(9000).UTC() }
	return s
}

func TestClickAppendRequiresProductID(t *testing.T) {
	docs := newFakeDocs()
	clicks := testClicks(docs)

	for _, productID := range []string{"", "   "} {
		_, err := clicks.Append(context.Background(), models.ClickEvent{ProductID: productID})

		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Message, "product_id")
	}

	// Validation short-circuits before any store access.
	assert.Zero(t, docs.writes)
}

func TestClickAppendDefaultsAndRecords(t *testing.T) {
	docs := newFakeDocs()
	clicks := testClicks(docs)

	recorded, err := clicks.Append(context.Background(), models.ClickEvent{ProductID: "a"})
	require.NoError(t, err)

	assert.Equal(t, "click", recorded.Type)
	assert.Equal(t, models.FlexTime(9000), recorded.Timestamp)
	assert.NotEmpty(t, recorded.EventID)

	stored, err := clicks.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, recorded.EventID, stored[0].EventID)
}

func TestClickAppendKeepsDuplicates(t *testing.T) {
	clicks := testClicks(newFakeDocs())

	for i := 0; i < 3; i++ {
		_, err := clicks.Append(context.Background(), models.ClickEvent{ProductID: "a"})
		require.NoError(t, err)
	}

	stored, err := clicks.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestClickListMissingLogIsEmpty(t *testing.T) {
	clicks := testClicks(newFakeDocs())

	stored, err := clicks.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}
