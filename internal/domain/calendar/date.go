package calendar

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/example/hotel-booking/internal/internaltypes"
)

const (
	// Layout is the canonical rendering of a Date.
	Layout   = "2006-01-02"
	usLayout = "01/02/2006"
)

// Accepted layouts, in the order they are tried. The first one that parses wins,
// even when the text was meant in the other layout.
var layouts = []string{usLayout, Layout}

// Date is a calendar day. The zero value is not a valid date.
type Date struct {
	t time.Time
}

func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime drops the clock part of t, keeping the day as seen in t's location.
func FromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Today is the current date in loc.
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return FromTime(now.In(loc))
}

// Normalize parses text as MM/DD/YYYY, falling back to YYYY-MM-DD.
func Normalize(text string) (Date, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Date{}, fmt.Errorf("%w: empty date", internaltypes.ErrInvalidDateFormat)
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, text); err == nil {
			return FromTime(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q (want MM/DD/YYYY or YYYY-MM-DD)", internaltypes.ErrInvalidDateFormat, text)
}

func (d Date) Time() time.Time { return d.t }
func (d Date) IsZero() bool    { return d.t.IsZero() }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(Layout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %s", internaltypes.ErrInvalidDateFormat, err)
	}
	parsed, err := Normalize(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
