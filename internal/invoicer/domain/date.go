package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// DateLayout is the only accepted wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("domain: date must be in YYYY-MM-DD format")

// Date is a calendar date without a time of day or zone.
type Date struct {
	t time.Time
}

// ParseDate parses s strictly as YYYY-MM-DD. Out of range parts such as
// month 13 are rejected rather than normalised.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{t: t}, nil
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string { return d.t.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
