package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

// Date is a calendar date stored in a DATE column.
type Date struct {
	time.Time
}

func ParseDate(raw string) (Date, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: parsed}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d *Date) Scan(src interface{}) error {
	switch value := src.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case string:
		return d.scanString(value)
	case []byte:
		return d.scanString(string(value))
	}
	return fmt.Errorf("date: cannot scan %T", src)
}

func (d *Date) scanString(raw string) error {
	if len(raw) > len(DateLayout) {
		raw = raw[:len(DateLayout)]
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(DateLayout), nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// Clock is a time of day stored in a TIME column.
type Clock struct {
	Hour, Minute, Second int
}

// ParseClock accepts HH:MM and HH:MM:SS.
func ParseClock(raw string) (Clock, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{ClockLayout, "15:04"} {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return Clock{Hour: parsed.Hour(), Minute: parsed.Minute(), Second: parsed.Second()}, nil
		}
	}
	return Clock{}, fmt.Errorf("clock: invalid time of day %q", raw)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

func (c *Clock) Scan(src interface{}) error {
	switch value := src.(type) {
	case nil:
		*c = Clock{}
		return nil
	case time.Time:
		*c = Clock{Hour: value.Hour(), Minute: value.Minute(), Second: value.Second()}
		return nil
	case string:
		return c.scanString(value)
	case []byte:
		return c.scanString(string(value))
	}
	return fmt.Errorf("clock: cannot scan %T", src)
}

func (c *Clock) scanString(raw string) error {
	// TIME values may carry fractional seconds.
	if idx := strings.IndexByte(raw, '.'); idx >= 0 {
		raw = raw[:idx]
	}
	parsed, err := ParseClock(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Clock) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}
