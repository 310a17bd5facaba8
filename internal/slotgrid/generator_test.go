package slotgrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rangeOf(start, end time.Time) Range {
	return Range{Start: &start, End: &end}
}

func TestGenerate_TwoDays(t *testing.T) {
	got, err := Generate(rangeOf(date(2024, 6, 1), date(2024, 6, 2)), "10:00", "11:00", 30, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"2024-06-01T10:00:00.000Z",
		"2024-06-01T10:30:00.000Z",
		"2024-06-02T10:00:00.000Z",
		"2024-06-02T10:30:00.000Z",
	}, got)
}

func TestGenerate_ClientTimezone(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)

	got, err := Generate(rangeOf(date(2024, 6, 1), date(2024, 6, 1)), "10:00", "11:00", 60, moscow)
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-06-01T07:00:00.000Z"}, got)
}

func TestGenerate_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 6, 1, 17, 45, 12, 0, time.UTC)
	end := time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)

	got, err := Generate(rangeOf(start, end), "09:00", "10:00", 20, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"2024-06-01T09:00:00.000Z",
		"2024-06-01T09:20:00.000Z",
		"2024-06-01T09:40:00.000Z",
	}, got)
}

func TestGenerate_CountAndSpacing(t *testing.T) {
	cases := []struct {
		name     string
		days     int
		start    string
		end      string
		interval int
	}{
		{"full day hourly", 3, "10:00", "18:00", 60},
		{"uneven interval", 2, "10:00", "11:00", 25},
		{"single slot", 1, "08:15", "08:16", 1},
		{"interval longer than window", 4, "10:00", "10:30", 45},
		{"week of quarters", 7, "09:00", "12:00", 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := date(2024, 3, 4)
			e := s.AddDate(0, 0, tc.days-1)

			got, err := Generate(rangeOf(s, e), tc.start, tc.end, tc.interval, time.UTC)
			require.NoError(t, err)

			sh, sm, _ := ParseClock(tc.start)
			eh, em, _ := ParseClock(tc.end)
			window := (eh*60 + em) - (sh*60 + sm)
			assert.Len(t, got, tc.days*(window/tc.interval))

			lower := s.Add(time.Duration(sh*60+sm) * time.Minute)
			upper := e.Add(time.Duration(eh*60+em) * time.Minute)

			var prev time.Time
			for i, raw := range got {
				ts, err := time.Parse(time.RFC3339Nano, raw)
				require.NoError(t, err)
				assert.False(t, ts.Before(lower), raw)
				assert.True(t, ts.Before(upper), raw)
				if i > 0 {
					assert.True(t, ts.After(prev), "not strictly increasing at %s", raw)
					if ts.YearDay() == prev.YearDay() {
						assert.Equal(t, time.Duration(tc.interval)*time.Minute, ts.Sub(prev))
					}
				}
				prev = ts
			}
		})
	}
}

func TestGenerate_EmptyWindow(t *testing.T) {
	for _, window := range [][2]string{{"18:00", "10:00"}, {"12:00", "12:00"}} {
		got, err := Generate(rangeOf(date(2024, 6, 1), date(2024, 6, 5)), window[0], window[1], 30, time.UTC)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	r := rangeOf(date(2024, 1, 30), date(2024, 2, 2))
	first, err := Generate(r, "10:00", "13:00", 40, time.UTC)
	require.NoError(t, err)
	second, err := Generate(r, "10:00", "13:00", 40, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerate_Errors(t *testing.T) {
	full := rangeOf(date(2024, 6, 1), date(2024, 6, 2))
	start := date(2024, 6, 1)

	_, err := Generate(Range{Start: &start}, "10:00", "11:00", 30, time.UTC)
	assert.ErrorIs(t, err, ErrRangeIncomplete)

	_, err = Generate(full, "10:00", "11:00", 0, time.UTC)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = Generate(full, "25:00", "11:00", 30, time.UTC)
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = Generate(full, "10:00", "noon", 30, time.UTC)
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = Generate(rangeOf(date(2024, 6, 3), date(2024, 6, 1)), "10:00", "11:00", 30, time.UTC)
	assert.ErrorIs(t, err, ErrInvalidRange)
}
