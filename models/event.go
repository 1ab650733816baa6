package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// FlexTime decodes the click timestamp however clients send it: epoch
// milliseconds as a number, a numeric string, or an RFC3339 string. It always
// marshals back out as epoch milliseconds. A value that cannot be parsed
// decodes as zero.
type FlexTime int64

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*t = FlexTime(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = 0
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		*t = FlexTime(parsed.UnixMilli())
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*t = FlexTime(n)
		return nil
	}
	*t = 0
	return nil
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(t), 10)), nil
}

func (t FlexTime) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

func (t FlexTime) IsZero() bool {
	return t == 0
}

// ClickEvent is one recorded interaction. The log is append-only and a
// multiset: repeated identical clicks are all kept.
type ClickEvent struct {
	EventID   string   `json:"event_id,omitempty"`
	ProductID string   `json:"product_id"`
	Type      string   `json:"type"`
	Timestamp FlexTime `json:"timestamp"`
	IP        string   `json:"ip,omitempty"`
}
