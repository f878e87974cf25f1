package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// wireLayout matches JavaScript's Date.toISOString output
const wireLayout = "2006-01-02T15:04:05.000Z"

// InputLayout is the layout users type due dates in
const InputLayout = "2006-01-02"

var acceptedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999", // zone-less, as emitted by ASP.NET
	InputLayout,
}

// DueDate is a calendar date carried on the wire as an ISO-8601 date-time
type DueDate struct {
	time.Time
}

// NewDueDate returns the due date for the calendar day of t
func NewDueDate(t time.Time) DueDate {
	y, m, d := t.Date()
	return DueDate{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDueDate parses user input in YYYY-MM-DD form. An empty string yields nil.
func ParseDueDate(s string) (*DueDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(InputLayout, s)
	if err != nil {
		return nil, fmt.Errorf("due date %q: expected YYYY-MM-DD", s)
	}
	d := NewDueDate(t)
	return &d, nil
}

// Input formats the date the way ParseDueDate reads it
func (d *DueDate) Input() string {
	if d.IsSet() {
		return d.Format(InputLayout)
	}
	return ""
}

// IsSet reports whether d holds a date
func (d *DueDate) IsSet() bool {
	return d != nil && !d.IsZero()
}

// Equal compares two optional due dates by calendar day
func (d *DueDate) Equal(other *DueDate) bool {
	if !d.IsSet() || !other.IsSet() {
		return d.IsSet() == other.IsSet()
	}
	return d.Format(InputLayout) == other.Format(InputLayout)
}

func (d DueDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.UTC().Format(wireLayout))
}

func (d *DueDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("due date: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			// the calendar day is read in UTC, as MarshalJSON writes it
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("due date: unrecognised format %q", s)
}
