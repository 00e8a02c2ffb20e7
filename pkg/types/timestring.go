package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat is returned when a wall-clock time string is not in HH:MM format
var ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

// ErrTimeOutOfRange is returned when minute arithmetic leaves the 00:00-23:59 day range
var ErrTimeOutOfRange = errors.New("types: time out of day range")

const timeLayout = "15:04"

// TimeString represents a wall-clock time of day ("10:30") without a date.
// It is the unit of all opening-hours and slot arithmetic: comparisons and
// minute math stay inside a single calendar day.
type TimeString string

// NewTimeString creates a TimeString from the time-of-day part of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and validates an HH:MM string
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate checks that the value is a well-formed HH:MM time
func (ts TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(ts))
	}
	return nil
}

// IsZero returns true if the value is empty
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// String returns the HH:MM representation
func (ts TimeString) String() string {
	return string(ts)
}

// Minutes returns the number of minutes since midnight
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(ts))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsBefore reports whether ts is strictly earlier in the day than other.
// Malformed values compare lexicographically, which matches HH:MM ordering
// for valid inputs; callers are expected to Validate first.
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter reports whether ts is strictly later in the day than other
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// AddMinutes returns the time-of-day minutes later in the same day.
// Crossing midnight in either direction is an error: slots never span days.
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := ts.Minutes()
	if err != nil {
		return "", err
	}
	m += minutes
	if m < 0 || m > 24*60 {
		return "", fmt.Errorf("%w: %s %+d minutes", ErrTimeOutOfRange, ts, minutes)
	}
	if m == 24*60 {
		// Exactly midnight is representable as the exclusive end of a day
		return TimeString("24:00"), nil
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// On combines the wall-clock time with a calendar date in the given location.
// The instant is built from the explicit local midnight of that date, never
// from the host timezone, so day boundaries do not drift with the process
// environment.
func (ts TimeString) On(date time.Time, loc *time.Location) (time.Time, error) {
	m, err := ts.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return midnight.Add(time.Duration(m) * time.Minute), nil
}

// Value implements driver.Valuer for storing as TIME / text columns
func (ts TimeString) Value() (driver.Value, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan implements sql.Scanner. Postgres TIME columns come back either as
// strings ("10:30:00") or time.Time values depending on the driver path.
func (ts *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		return ts.scanString(string(v))
	case string:
		return ts.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeFormat, value)
	}
}

func (ts *TimeString) scanString(s string) error {
	// Trim seconds from "10:30:00"
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// MarshalJSON renders the value as a plain "HH:MM" string
func (ts TimeString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(ts))
}

// UnmarshalJSON parses and validates a plain "HH:MM" string
func (ts *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*ts = ""
		return nil
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
