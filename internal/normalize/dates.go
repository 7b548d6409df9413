package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	yearPattern  = regexp.MustCompile(`(?:^|\D)(20\d{2})(?:\D|$)`)
	monthPattern = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\b`)
)

// Months lists the month bucket keys in calendar order.
var Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var monthByAbbrev = map[string]string{
	"jan": "Jan", "feb": "Feb", "mar": "Mar", "apr": "Apr",
	"may": "May", "jun": "Jun", "jul": "Jul", "aug": "Aug",
	"sep": "Sep", "oct": "Oct", "nov": "Nov", "dec": "Dec",
}

// ExtractYear returns the first four-digit year in [2000, 2099] found in s.
// The same extractor decides both "read in year" and "added in year".
func ExtractYear(s string) (int, bool) {
	m := yearPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}

// InYear reports whether the date string carries the given year.
func InYear(s string, year int) bool {
	y, ok := ExtractYear(s)
	return ok && y == year
}

// MonthOf returns the month bucket ("Jan".."Dec") named in s.
// Only month names count; numeric dates yield no bucket.
func MonthOf(s string) (string, bool) {
	m := monthPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	month, ok := monthByAbbrev[strings.ToLower(m[1])]
	return month, ok
}

// ParseDate parses a loosely formatted date such as
// "Mon, 15 Jan 2024 00:00:00 -0800" or "2024/01/15".
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysBetween returns whole days from start to end, and false if either date
// is unparsable or end precedes start.
func DaysBetween(start, end string) (int, bool) {
	s, ok := ParseDate(start)
	if !ok {
		return 0, false
	}
	e, ok := ParseDate(end)
	if !ok {
		return 0, false
	}
	// Compare calendar days so time zones in the feed don't shave a day off.
	sd := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	ed := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC)
	if ed.Before(sd) {
		return 0, false
	}
	return int(ed.Sub(sd).Hours() / 24), true
}
