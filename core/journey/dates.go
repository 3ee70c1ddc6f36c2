package journey

import (
	"database/sql/driver"
	"encoding/json"
	"regexp"
	"time"

	"github.com/volatiletech/null/v8"
)

const (
	sourceDateLayout  = "2006-01-02"
	displayDateLayout = "2 Jan 2006"
)

// sourceDateRegex is the strict form of a normalized source date; anything
// else is free text the upstream data pipeline could not normalize
// (e.g. "October Week 6") and is carried through untouched.
var sourceDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DateValue is a journey date as found in the source data: either a proper
// calendar date, a free-text placeholder, or absent. Only proper dates take
// part in aggregate computations; free text remains displayable as-is.
type DateValue struct {
	raw    string
	t      time.Time
	parsed bool
	absent bool
}

func NewDate(raw null.String) DateValue {
	if !raw.Valid || raw.String == "" {
		return DateValue{absent: true}
	}
	d := DateValue{raw: raw.String}
	if sourceDateRegex.MatchString(raw.String) {
		if t, err := time.ParseInLocation(sourceDateLayout, raw.String, time.Local); err == nil {
			d.t = t
			d.parsed = true
		}
	}
	return d
}

func DateFromString(raw string) DateValue {
	return NewDate(null.NewString(raw, raw != ""))
}

func (d DateValue) IsAbsent() bool { return d.absent }

// Time returns the calendar date at local midnight; ok is false for
// absent and free-text values.
func (d DateValue) Time() (time.Time, bool) { return d.t, d.parsed }

// Raw returns the source value verbatim, null when absent.
func (d DateValue) Raw() null.String {
	return null.NewString(d.raw, !d.absent)
}

// Display returns the user-facing form: parsed dates as "2 Jan 2006",
// free text unchanged, null when absent.
func (d DateValue) Display() null.String {
	if d.absent {
		return null.String{}
	}
	if d.parsed {
		return null.StringFrom(d.t.Format(displayDateLayout))
	}
	return null.StringFrom(d.raw)
}

// JSON round-trips the raw source value (string or null) so cached and
// re-read views stay identical.

func (d DateValue) MarshalJSON() ([]byte, error) {
	return d.Raw().MarshalJSON()
}

func (d *DateValue) UnmarshalJSON(data []byte) error {
	var raw null.String
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	*d = NewDate(raw)
	return nil
}

// Scan/Value let DateValue map directly onto the textual date columns.

func (d *DateValue) Scan(value interface{}) error {
	var raw null.String
	if err := raw.Scan(value); err != nil {
		return err
	}
	*d = NewDate(raw)
	return nil
}

func (d DateValue) Value() (driver.Value, error) {
	return d.Raw().Value()
}

var _ json.Marshaler = DateValue{}

// ParseDisplayDate normalizes a raw source date into its display form:
// null/empty in, null out; strict "YYYY-MM-DD" becomes "2 Jan 2006";
// anything else passes through unchanged.
func ParseDisplayDate(raw null.String) null.String {
	return NewDate(raw).Display()
}

type DateRange struct {
	Start null.String `json:"start"`
	End   null.String `json:"end"`
}

// ComputeOverallDateRange returns the program's overall span: the pooled
// min/max over every parseable start and end date of the given items, each
// formatted for display. Both bounds are null when no item carries a
// parseable date. Pure and order-independent.
func ComputeOverallDateRange(items []Item) DateRange {
	var min, max time.Time
	var found bool
	for _, it := range items {
		for _, d := range [2]DateValue{it.StartDate, it.EndDate} {
			t, ok := d.Time()
			if !ok {
				continue
			}
			if !found {
				min, max = t, t
				found = true
				continue
			}
			if t.Before(min) {
				min = t
			}
			if t.After(max) {
				max = t
			}
		}
	}
	if !found {
		return DateRange{}
	}
	return DateRange{
		Start: null.StringFrom(min.Format(displayDateLayout)),
		End:   null.StringFrom(max.Format(displayDateLayout)),
	}
}
