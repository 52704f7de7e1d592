package model

import (
	"bytes"
	"encoding/json"
	"time"
)

const localDateTimeLayout = "2006-01-02T15:04:05.999999999"

// naiveLayouts are the zone-less forms the backend is known to emit.
var naiveLayouts = []string{
	localDateTimeLayout,
	"2006-01-02 15:04:05.999999999",
}

// Timestamp accepts both RFC 3339 values and zone-less local date-times as
// the backend emits them. A zone-less value is Naive: its wall clock is
// shown as-is instead of being converted to the display location.
// Any other value decodes as the zero Timestamp, which renders as absent.
type Timestamp struct {
	time.Time
	Naive bool
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	*t = Timestamp{}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil || raw == "" {
		return nil
	}

	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		*t = Timestamp{Time: parsed}
		return nil
	}

	for _, layout := range naiveLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			*t = Timestamp{Time: parsed, Naive: true}
			return nil
		}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	if t.Naive {
		return json.Marshal(t.Time.Format(localDateTimeLayout))
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// In returns the time to display in loc.
func (t Timestamp) In(loc *time.Location) time.Time {
	if t.Naive || loc == nil {
		return t.Time
	}
	return t.Time.In(loc)
}
