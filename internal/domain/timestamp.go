package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// lenientTime decodes backend dates. Besides ISO strings it accepts unix
// milliseconds and a few common layouts; anything else decodes to the zero time
// so one bad record never fails a whole snapshot load.
type lenientTime time.Time

func (t *lenientTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = lenientTime{}
		return nil
	}

	if data[0] != '"' {
		if ms, err := strconv.ParseFloat(string(data), 64); err == nil {
			*t = lenientTime(time.UnixMilli(int64(ms)).UTC())
			return nil
		}
		*t = lenientTime{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = lenientTime{}
		return nil
	}
	*t = lenientTime(ParseTimestamp(s))
	return nil
}

// ParseTimestamp parses a backend date string, returning the zero time when no
// known layout matches.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if i := strings.Index(s, " ("); i > 0 {
		s = s[:i] // "GMT+0000 (Coordinated Universal Time)"
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}

func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	aux := struct {
		*plain
		CreatedAt lenientTime `json:"createdAt"`
		UpdatedAt lenientTime `json:"updatedAt"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u.CreatedAt = time.Time(aux.CreatedAt)
	u.UpdatedAt = time.Time(aux.UpdatedAt)
	return nil
}

func (tx *Transaction) UnmarshalJSON(data []byte) error {
	type plain Transaction
	aux := struct {
		*plain
		CreatedAt lenientTime `json:"createdAt"`
		UpdatedAt lenientTime `json:"updatedAt"`
	}{plain: (*plain)(tx)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	tx.CreatedAt = time.Time(aux.CreatedAt)
	tx.UpdatedAt = time.Time(aux.UpdatedAt)
	return nil
}
