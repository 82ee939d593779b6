package market

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the layout used in trade logs and CLI boundaries,
// e.g. "2017-01-01 00:00:00+00:00".
const TimeLayout = "2006-01-02 15:04:05-07:00"

// ErrInvalidWindow is returned when a window's start is not before its end.
var ErrInvalidWindow = errors.New("invalid time window")

// location is the calendar every date computation is done in (day
// boundaries, long-term thresholds). Set it once at startup via SetLocation.
var location = time.UTC

// Location returns the application time zone.
func Location() *time.Location { return location }

// SetLocation changes the application time zone. A nil loc resets it to UTC.
func SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}
	location = loc
}

// LoadLocation resolves an IANA zone name; "" and "UTC" map to time.UTC.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "UTC") {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// ParseTime parses s with TimeLayout and converts it into the application zone.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t.In(location), nil
}

// FormatTime renders t in the application zone using TimeLayout.
func FormatTime(t time.Time) string {
	return t.In(location).Format(TimeLayout)
}

// StartOfDay returns midnight of t's calendar day in the application zone.
func StartOfDay(t time.Time) time.Time {
	t = t.In(location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, location)
}

// EndOfDay returns 23:59:59.999 of t's calendar day in the application zone.
func EndOfDay(t time.Time) time.Time {
	t = t.In(location)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), location)
}

// Window is a half-open time range [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// NewWindow validates that from is strictly before to.
func NewWindow(from, to time.Time) (Window, error) {
	w := Window{From: from, To: to}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

func (w Window) Validate() error {
	if !w.From.Before(w.To) {
		return fmt.Errorf("%w: from %s must be before to %s",
			ErrInvalidWindow, FormatTime(w.From), FormatTime(w.To))
	}
	return nil
}

// Contains reports whether From <= t < To.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", FormatTime(w.From), FormatTime(w.To))
}
