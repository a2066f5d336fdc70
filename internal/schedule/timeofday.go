package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay is a local time of day stored as minutes since midnight.
// It has no date or timezone component.
type TimeOfDay int

const minutesPerDay = 24 * 60

// ParseTimeOfDay parses an "HH:MM" string (24-hour clock).
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: expected HH:MM", raw)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value stores the minute-of-day integer (smallint column).
func (t TimeOfDay) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*t = TimeOfDay(v)
		return nil
	case int32:
		*t = TimeOfDay(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

const dateLayout = "2006-01-02"

// SameDate reports whether two timestamps fall on the same calendar day.
// Dates are compared by their Y-M-D rendering, so a visit never matches
// one on an adjacent day regardless of clock component.
func SameDate(a, b time.Time) bool {
	return a.Format(dateLayout) == b.Format(dateLayout)
}
