package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractYear(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{in: "Mon, 15 Jan 2024 00:00:00 -0800", want: 2024, wantOK: true},
		{in: "2023/12/31", want: 2023, wantOK: true},
		{in: "read in 2000", want: 2000, wantOK: true},
		{in: "Dec 2099", want: 2099, wantOK: true},
		{in: "1999-05-01", wantOK: false},
		{in: "21000", wantOK: false},
		{in: "", wantOK: false},
		{in: "not a date", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ExtractYear(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInYear(t *testing.T) {
	assert.True(t, InYear("Fri, 01 Mar 2024 00:00:00 +0000", 2024))
	assert.False(t, InYear("Fri, 01 Mar 2024 00:00:00 +0000", 2023))
	assert.False(t, InYear("", 2024))
}

func TestMonthOf(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "Mon, 15 Jan 2024 00:00:00 -0800", want: "Jan", wantOK: true},
		{in: "September 3, 2024", want: "Sep", wantOK: true},
		{in: "03 DEC 2024", want: "Dec", wantOK: true},
		{in: "Sat, 09 Mar 2024", want: "Mar", wantOK: true},
		{in: "2024/01/15", wantOK: false},
		{in: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := MonthOf(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
		wantOK     bool
	}{
		{name: "same day", start: "Mon, 15 Jan 2024 09:00:00 -0800", end: "Mon, 15 Jan 2024 22:00:00 -0800", want: 0, wantOK: true},
		{name: "two weeks", start: "Mon, 01 Jan 2024 00:00:00 -0800", end: "Mon, 15 Jan 2024 00:00:00 -0800", want: 14, wantOK: true},
		{name: "across leap day", start: "2024/02/28", end: "2024/03/01", want: 2, wantOK: true},
		{name: "end before start", start: "2024/03/01", end: "2024/02/01", wantOK: false},
		{name: "missing start", start: "", end: "2024/02/01", wantOK: false},
		{name: "garbage end", start: "2024/02/01", end: "whenever", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DaysBetween(tt.start, tt.end)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
