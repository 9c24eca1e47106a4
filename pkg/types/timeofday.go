package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// TimeOfDay represents a wall-clock time without a date component,
// stored as minutes since midnight. The zero value is midnight.
//
// Two textual forms are supported:
//   - clock form "9:00 AM" (no leading zero on the hour, two-digit minutes) —
//     used in customer-facing slot lists
//   - military form "09:00" (24-hour HH:MM) — used for opening hours and storage
type TimeOfDay int

// NewTimeOfDay creates a TimeOfDay from hour (0-23) and minute (0-59)
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour %d: must be in [0, 23]", hour)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute %d: must be in [0, 59]", minute)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// MustTimeOfDay is like NewTimeOfDay but panics on invalid input.
// Intended for package-level constants and tests.
func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseClock parses the clock form, e.g. "9:00 AM", "12:30 PM"
func ParseClock(s string) (TimeOfDay, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected \"H:MM AM|PM\"", s)
	}

	meridiem := strings.ToUpper(fields[1])
	if meridiem != "AM" && meridiem != "PM" {
		return 0, fmt.Errorf("invalid meridiem %q: expected AM or PM", fields[1])
	}

	hourStr, minuteStr, ok := strings.Cut(fields[0], ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: expected \"H:MM AM|PM\"", s)
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("invalid hour %q: must be in [1, 12]", hourStr)
	}

	minute, err := strconv.Atoi(minuteStr)
	if err != nil || len(minuteStr) != 2 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute %q: must be two digits in [00, 59]", minuteStr)
	}

	// 12 AM — полночь, 12 PM — полдень
	if hour == 12 {
		hour = 0
	}
	if meridiem == "PM" {
		hour += 12
	}

	return TimeOfDay(hour*60 + minute), nil
}

// ParseMilitary parses the 24-hour form, e.g. "09:00", "18:30"
func ParseMilitary(s string) (TimeOfDay, error) {
	hourStr, minuteStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: expected \"HH:MM\"", s)
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour %q: must be in [00, 23]", hourStr)
	}

	minute, err := strconv.Atoi(minuteStr)
	if err != nil || len(minuteStr) != 2 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute %q: must be two digits in [00, 59]", minuteStr)
	}

	return TimeOfDay(hour*60 + minute), nil
}

// Hour returns the hour component (0-23)
func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

// Minute returns the minute component (0-59)
func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// Minutes returns the value as minutes since midnight
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// String returns the clock form, e.g. "9:00 AM".
// No leading zero on the hour, exactly two digits for minutes.
func (t TimeOfDay) String() string {
	hour := t.Hour()
	meridiem := "AM"

	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		hour -= 12
		meridiem = "PM"
	}

	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), meridiem)
}

// Military returns the 24-hour form, e.g. "09:00"
func (t TimeOfDay) Military() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// AddMinutes returns the time shifted forward by n minutes.
// The result may equal exactly MinutesPerDay (end of day) but never exceed it.
func (t TimeOfDay) AddMinutes(n int) (TimeOfDay, error) {
	result := int(t) + n
	if result < 0 || result > MinutesPerDay {
		return 0, fmt.Errorf("time %s + %d minutes is out of day range", t, n)
	}
	return TimeOfDay(result), nil
}

// Before reports whether t is strictly before other
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

// After reports whether t is strictly after other
func (t TimeOfDay) After(other TimeOfDay) bool {
	return t > other
}

// Validate checks that the value is within a single day
func (t TimeOfDay) Validate() error {
	if t < 0 || int(t) >= MinutesPerDay {
		return fmt.Errorf("time of day %d minutes is out of range", int(t))
	}
	return nil
}

// MarshalJSON renders the clock form
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts the clock form
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer, storing minutes since midnight
func (t TimeOfDay) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return int64(t), nil
}

// Scan implements sql.Scanner from an integer minute count
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*t = TimeOfDay(v)
	case []byte:
		n, err := strconv.Atoi(string(v))
		if err != nil {
			return fmt.Errorf("cannot scan %q into TimeOfDay: %v", string(v), err)
		}
		*t = TimeOfDay(n)
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
	return t.Validate()
}
