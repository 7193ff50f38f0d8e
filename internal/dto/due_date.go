package dto

import (
	"fmt"
	"strconv"
	"time"
)

var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DueDate decodes the due dates clients send. Besides RFC 3339 it accepts a
// local date-time without zone and a bare date, both read as UTC.
type DueDate struct {
	time.Time
}

// NewDueDate wraps t; a nil t yields nil.
func NewDueDate(t *time.Time) *DueDate {
	if t == nil {
		return nil
	}
	return &DueDate{Time: *t}
}

// ParseDueDate parses text in any of the accepted layouts.
func ParseDueDate(text string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid due date %q", text)
}

// Ptr returns the wrapped time, or nil for a nil receiver.
func (d *DueDate) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func (d *DueDate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	text, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("due date must be a string: %w", err)
	}
	t, err := ParseDueDate(text)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d DueDate) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.Time.Format(time.RFC3339Nano))), nil
}
