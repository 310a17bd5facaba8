package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPluralizeSlots(t *testing.T) {
	tests := map[int]string{
		1:   "слот",
		2:   "слота",
		4:   "слота",
		5:   "слотов",
		11:  "слотов",
		12:  "слотов",
		21:  "слот",
		22:  "слота",
		111: "слотов",
	}
	for n, want := range tests {
		assert.Equal(t, want, PluralizeSlots(n), n)
	}
}

func TestPluralizeDays(t *testing.T) {
	assert.Equal(t, "день", PluralizeDays(1))
	assert.Equal(t, "дня", PluralizeDays(3))
	assert.Equal(t, "дней", PluralizeDays(7))
}

func TestFormatSlotTime(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)

	assert.Equal(t, "10:00", FormatSlotTime("2024-06-01T07:00:00.000Z", msk))
	assert.Equal(t, "garbage", FormatSlotTime("garbage", msk))
}

func TestFormatDateKey(t *testing.T) {
	assert.Equal(t, "01.06.2024 (Сб)", FormatDateKey("2024-06-01"))
	assert.Equal(t, "bad", FormatDateKey("bad"))
}

func TestFormatMonthTitle(t *testing.T) {
	assert.Equal(t, "Июнь 2024", FormatMonthTitle(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-06", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), m)

	_, err = ParseMonth("june", time.UTC)
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30 мин", FormatDuration(30))
	assert.Equal(t, "1 ч", FormatDuration(60))
	assert.Equal(t, "1 ч 30 мин", FormatDuration(90))
}
