package report

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used in requests and filenames
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate     = errors.New("dates must use the YYYY-MM-DD format")
	ErrInvertedRange   = errors.New("start date must not be after end date")
	ErrMissingDateSpan = errors.New("start and end dates are required")
)

// DateRange is an inclusive range of whole UTC calendar days.
// Start is midnight of the first day; End is 23:59:59.999 of the last day.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange builds a range from two calendar days. Only the date part of
// start and end is used, interpreted in UTC.
func NewDateRange(start, end time.Time) (DateRange, error) {
	s := StartOfDay(start)
	e := StartOfDay(end)
	if s.After(e) {
		return DateRange{}, ErrInvertedRange
	}
	return DateRange{Start: s, End: EndOfDay(e)}, nil
}

// ParseDateRange parses two YYYY-MM-DD strings
func ParseDateRange(start, end string) (DateRange, error) {
	if start == "" || end == "" {
		return DateRange{}, ErrMissingDateSpan
	}
	s, err := time.ParseInLocation(DateLayout, start, time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: %q", ErrInvalidDate, start)
	}
	e, err := time.ParseInLocation(DateLayout, end, time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: %q", ErrInvalidDate, end)
	}
	return NewDateRange(s, e)
}

// StartOfDay truncates t to midnight UTC of its UTC calendar day
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns 23:59:59.999 UTC of t's UTC calendar day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Millisecond)
}

// StartDate returns the first day as YYYY-MM-DD
func (r DateRange) StartDate() string {
	return r.Start.Format(DateLayout)
}

// EndDate returns the last day as YYYY-MM-DD
func (r DateRange) EndDate() string {
	return r.End.Format(DateLayout)
}

// Days returns the number of calendar days covered
func (r DateRange) Days() int {
	return int(StartOfDay(r.End).Sub(r.Start).Hours()/24) + 1
}

// Filename returns "sales-report-<start>-to-<end>.<ext>"
func (r DateRange) Filename(ext string) string {
	return fmt.Sprintf("sales-report-%s-to-%s.%s", r.StartDate(), r.EndDate(), ext)
}
