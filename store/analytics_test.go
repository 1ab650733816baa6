package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gatekeeper/api/models"
)

func click(productID string, ts time.Time) models.ClickEvent {
	return models.ClickEvent{
		ProductID: productID,
		Type:      "click",
		Timestamp: models.FlexTime(ts.UnixMilli()),
	}
}

func TestAnalyticsEmptyClicksIsNeutral(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	report := BuildAnalytics([]models.Product{{ID: "a", Category: "Air"}}, nil, now)

	assert.Zero(t, report.TotalClicks)
	assert.Empty(t, report.ProductClicks)
	assert.Empty(t, report.TopProduct)
	assert.Empty(t, report.BottomProduct)
	assert.Empty(t, report.CategoryClicks)
	assert.Contains(t, report.Insights, "No clicks recorded yet.")
	assert.Len(t, report.LastSevenDays, 8)
	for _, bucket := range report.LastSevenDays {
		assert.Zero(t, bucket.Count)
	}
}

func TestAnalyticsCountsAndPerformers(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	clicks := []models.ClickEvent{
		click("a", now),
		click("a", now),
		click("b", now),
	}

	report := BuildAnalytics(nil, clicks, now)

	assert.Equal(t, 3, report.TotalClicks)
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, report.ProductClicks)
	assert.Equal(t, "a", report.TopProduct)
	assert.Equal(t, "b", report.BottomProduct)
}

func TestAnalyticsTieBreaksOnFirstEncounter(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	clicks := []models.ClickEvent{
		click("b", now),
		click("a", now),
	}

	report := BuildAnalytics(nil, clicks, now)

	assert.Equal(t, "b", report.TopProduct)
	assert.Equal(t, "b", report.BottomProduct)
}

func TestAnalyticsCategoryTotals(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	products := []models.Product{
		{ID: "a", Category: "Air"},
		{ID: "b", Category: "Sleep"},
		{ID: "quiet", Category: "Body"},
	}
	clicks := []models.ClickEvent{
		click("a", now),
		click("a", now),
		click("b", now),
		click("ghost", now), // unknown id contributes nothing
	}

	report := BuildAnalytics(products, clicks, now)

	assert.Equal(t, map[string]int{"Air": 2, "Sleep": 1}, report.CategoryClicks)
}

func TestAnalyticsSevenDayWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	clicks := []models.ClickEvent{
		click("a", now.Add(-1*time.Hour)),
		click("a", now.Add(-2*24*time.Hour)),
		click("a", now.Add(-2*24*time.Hour)),
		click("a", now.Add(-10*24*time.Hour)), // outside the window
	}

	report := BuildAnalytics(nil, clicks, now)

	byDate := make(map[string]int)
	total := 0
	for _, bucket := range report.LastSevenDays {
		byDate[bucket.Date] = bucket.Count
		total += bucket.Count
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, byDate["2026-08-28"])
	assert.Equal(t, 2, byDate["2026-08-26"])
	assert.Contains(t, report.Insights, "3 clicks in the last 7 days.")
}

func TestAnalyticsWindowCoversOldestPartialDay(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	clicks := []models.ClickEvent{
		// Window starts 2026-08-21T12:00Z; this click is inside it but on
		// the eighth (partial) UTC date.
		click("a", time.Date(2026, 8, 21, 18, 0, 0, 0, time.UTC)),
		click("a", now.Add(-1*time.Hour)),
		// Same date as the window start, but before it.
		click("a", time.Date(2026, 8, 21, 6, 0, 0, 0, time.UTC)),
	}

	report := BuildAnalytics(nil, clicks, now)

	byDate := make(map[string]int)
	total := 0
	for _, bucket := range report.LastSevenDays {
		byDate[bucket.Date] = bucket.Count
		total += bucket.Count
	}
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, byDate["2026-08-21"])
	assert.Equal(t, "2026-08-21", report.LastSevenDays[0].Date)
	assert.Contains(t, report.Insights, "2 clicks in the last 7 days.")
}

func TestAnalyticsInsightWording(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	products := []models.Product{{ID: "a", Category: "Air"}}
	clicks := []models.ClickEvent{click("a", now), click("a", now)}

	report := BuildAnalytics(products, clicks, now)

	assert.Contains(t, report.Insights, "Top performer: a with 2 clicks.")
	assert.Contains(t, report.Insights, "Strongest category: Air with 2 clicks.")
}
