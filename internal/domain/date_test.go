package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.June, d.Month())
	assert.Equal(t, 1, d.Day())
	assert.Equal(t, "2024-06-01", d.String())

	_, err = ParseDate("01/06/2024")
	assert.Error(t, err)

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
}

func TestDateOf_StripsTimeAndZone(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	instant := time.Date(2024, 5, 31, 23, 30, 0, 0, loc)

	d := DateOf(instant)
	assert.Equal(t, "2024-06-01", d.String())
}

func TestDateComparisons(t *testing.T) {
	a := NewDate(2024, 5, 10)
	b := NewDate(2024, 5, 20)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(NewDate(2024, 5, 10)))
}

func TestDateDaysSince(t *testing.T) {
	due := NewDate(2024, 5, 10)

	assert.Equal(t, 10, NewDate(2024, 5, 20).DaysSince(due))
	assert.Equal(t, 0, due.DaysSince(due))
	assert.Equal(t, -9, NewDate(2024, 5, 1).DaysSince(due))

	// Crosses a month boundary.
	assert.Equal(t, 31, NewDate(2024, 6, 10).DaysSince(due))
}

func TestDateAddMonths(t *testing.T) {
	d := NewDate(2024, 6, 1)

	assert.Equal(t, "2024-07-01", d.AddMonths(1).String())
	assert.Equal(t, "2024-08-01", d.AddMonths(2).String())
	assert.Equal(t, "2025-01-01", d.AddMonths(7).String())

	// time package normalization for short months.
	assert.Equal(t, "2024-03-02", NewDate(2024, 1, 31).AddMonths(1).String())
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 6, 5)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-05"`, string(raw))

	var parsed Date
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.True(t, parsed.Equal(d))

	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &parsed))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "2024-06-01", d.String())

	require.NoError(t, d.Scan("2024-07-01"))
	assert.Equal(t, "2024-07-01", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestStatusDerive(t *testing.T) {
	today := NewDate(2024, 5, 20)

	tests := []struct {
		name    string
		status  Status
		dueDate Date
		want    Status
	}{
		{"pending past due becomes overdue", StatusPending, NewDate(2024, 5, 10), StatusOverdue},
		{"pending due today stays pending", StatusPending, today, StatusPending},
		{"pending due later stays pending", StatusPending, NewDate(2024, 6, 1), StatusPending},
		{"paid is never rewritten", StatusPaid, NewDate(2024, 5, 10), StatusPaid},
		{"written-off is never rewritten", StatusWrittenOff, NewDate(2024, 5, 10), StatusWrittenOff},
		{"overdue stays overdue", StatusOverdue, NewDate(2024, 5, 10), StatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Derive(tt.dueDate, today))
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusPaid, StatusOverdue, StatusWrittenOff} {
		assert.True(t, s.Valid(), "%s should be valid", s)
	}
	assert.False(t, Status("cancelled").Valid())
	assert.False(t, Status("").Valid())
}
