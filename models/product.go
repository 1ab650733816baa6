package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// DefaultProvider is stamped onto products that arrive without one.
const DefaultProvider = "1000HomeVibes"

// EpochMillis is a millisecond timestamp that tolerates legacy documents
// where the value was written as a string. Anything non-numeric decodes to 0
// so ordering stays deterministic instead of failing the whole document.
type EpochMillis int64

func (m *EpochMillis) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*m = EpochMillis(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*m = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		*m = 0
		return nil
	}
	*m = EpochMillis(n)
	return nil
}

func (m EpochMillis) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(m), 10)), nil
}

func (m EpochMillis) Time() time.Time {
	return time.UnixMilli(int64(m)).UTC()
}

type Product struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Category    string      `json:"category"`
	Image       string      `json:"image"`
	Image2      string      `json:"image2"`
	Image3      string      `json:"image3"`
	Video       string      `json:"video"`
	Description string      `json:"description"`
	BuyLink     string      `json:"buy_link"`
	Provider    string      `json:"provider"`
	DateAdded   EpochMillis `json:"dateAdded"`
}

// Normalize fills the defaulted fields in place. now is the write time used
// when the caller did not supply dateAdded.
func (p *Product) Normalize(now time.Time) {
	if p.Provider == "" {
		p.Provider = DefaultProvider
	}
	if p.DateAdded == 0 {
		p.DateAdded = EpochMillis(now.UnixMilli())
	}
}

// KnownCategories is the commonly used set; the field is an open enum, so
// values outside this list are accepted and merely logged by callers.
var KnownCategories = []string{"Air", "Sleep", "Body", "Home", "Calm"}

func IsKnownCategory(category string) bool {
	for _, c := range KnownCategories {
		if c == category {
			return true
		}
	}
	return false
}

// WisdomNote is caller-defined free-form content; the service only stamps
// dateAdded on append.
type WisdomNote map[string]any
