package store

import (
	"fmt"
	"time"

	"gatekeeper/api/models"
)

// DayCount is one bucket of the rolling 7-day histogram.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// AnalyticsReport is derived entirely from the two snapshots it was built
// from; it holds no references back into the stores.
type AnalyticsReport struct {
	TotalClicks    int            `json:"totalClicks"`
	ProductClicks  map[string]int `json:"productClicks"`
	TopProduct     string         `json:"topProduct,omitempty"`
	BottomProduct  string         `json:"bottomProduct,omitempty"`
	CategoryClicks map[string]int `json:"categoryClicks"`
	LastSevenDays  []DayCount     `json:"lastSevenDays"`
	Insights       []string       `json:"insights"`
}

// BuildAnalytics aggregates the product and click snapshots as of now.
// When counts tie, top/bottom fall to the first product id encountered in
// click iteration order; callers get determinism for a fixed input order and
// nothing more.
func BuildAnalytics(products []models.Product, clicks []models.ClickEvent, now time.Time) AnalyticsReport {
	report := AnalyticsReport{
		ProductClicks:  make(map[string]int),
		CategoryClicks: make(map[string]int),
	}

	var idOrder []string
	for _, click := range clicks {
		if _, seen := report.ProductClicks[click.ProductID]; !seen {
			idOrder = append(idOrder, click.ProductID)
		}
		report.ProductClicks[click.ProductID]++
		report.TotalClicks++
	}

	topCount, bottomCount := -1, -1
	for _, id := range idOrder {
		count := report.ProductClicks[id]
		if count > topCount {
			topCount = count
			report.TopProduct = id
		}
		if bottomCount == -1 || count < bottomCount {
			bottomCount = count
			report.BottomProduct = id
		}
	}

	// Category totals only consider products actually in the catalog; click
	// records pointing at unknown ids contribute nothing.
	for _, product := range products {
		if count := report.ProductClicks[product.ID]; count > 0 {
			report.CategoryClicks[product.Category] += count
		}
	}

	report.LastSevenDays = sevenDayHistogram(clicks, now)
	report.Insights = buildInsights(report)
	return report
}

func sevenDayHistogram(clicks []models.ClickEvent, now time.Time) []DayCount {
	const day = 24 * time.Hour
	windowStart := now.Add(-7 * day)

	counts := make(map[string]int)
	for _, click := range clicks {
		ts := click.Timestamp.Time()
		if ts.Before(windowStart) || ts.After(now) {
			continue
		}
		counts[ts.UTC().Format("2006-01-02")]++
	}

	// A 7x24h window reaches back onto an eighth, partial UTC date. Emit
	// every date the window touches, oldest first, so quiet days show as
	// zero and no in-window click lands in an unlisted bucket.
	buckets := make([]DayCount, 0, 8)
	for i := 7; i >= 0; i-- {
		date := now.UTC().Add(-time.Duration(i) * day).Format("2006-01-02")
		buckets = append(buckets, DayCount{Date: date, Count: counts[date]})
	}
	return buckets
}

func buildInsights(report AnalyticsReport) []string {
	if report.TotalClicks == 0 {
		return []string{
			"No clicks recorded yet.",
			"Top performer: not enough data.",
			"Strongest category: not enough data.",
		}
	}

	insights := []string{
		fmt.Sprintf("Top performer: %s with %d clicks.", report.TopProduct, report.ProductClicks[report.TopProduct]),
		fmt.Sprintf("Bottom performer: %s with %d clicks.", report.BottomProduct, report.ProductClicks[report.BottomProduct]),
	}

	bestCategory := ""
	bestCount := 0
	for category, count := range report.CategoryClicks {
		if count > bestCount {
			bestCategory, bestCount = category, count
		}
	}
	if bestCategory != "" {
		insights = append(insights, fmt.Sprintf("Strongest category: %s with %d clicks.", bestCategory, bestCount))
	} else {
		insights = append(insights, "Strongest category: not enough data.")
	}

	weekTotal := 0
	for _, bucket := range report.LastSevenDays {
		weekTotal += bucket.Count
	}
	insights = append(insights, fmt.Sprintf("%d clicks in the last 7 days.", weekTotal))

	return insights
}
