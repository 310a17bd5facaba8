package slotstore

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var msk = time.FixedZone("MSK", 3*60*60)

func TestGroupByDateThenSort(t *testing.T) {
	store := SlotMap{
		"Москва": {
			"2024-06-02T08:00:00.000Z",
			"2024-06-01T12:00:00.000Z",
			"2024-06-01T07:00:00.000Z",
		},
		OnlineKey: {"2024-06-01T22:00:00.000Z"}, // 02.06 01:00 по Москве
		"Тула":    {},
	}

	got := GroupByDateThenSort(store, msk)

	assert.Equal(t, map[string][]string{
		"2024-06-01": {"2024-06-01T07:00:00.000Z", "2024-06-01T12:00:00.000Z"},
		"2024-06-02": {"2024-06-02T08:00:00.000Z"},
	}, got["Москва"])
	assert.Equal(t, map[string][]string{
		"2024-06-02": {"2024-06-01T22:00:00.000Z"},
	}, got[OnlineKey])
	assert.NotContains(t, got, "Тула")

	assert.Equal(t, "2024-06-02T08:00:00.000Z", store["Москва"][0], "input must not change")
}

func TestMergeThenGroup_EveryTimestampOnce(t *testing.T) {
	merged := MergeAppend(SlotMap{}, "Казань", []string{
		"2024-06-03T09:00:00.000Z",
		"2024-06-01T09:00:00.000Z",
		"2024-06-03T07:00:00.000Z",
		"2024-06-02T15:30:00.000Z",
	})

	grouped := GroupByDateThenSort(merged, time.UTC)["Казань"]

	seen := map[string]int{}
	for _, slots := range grouped {
		assert.True(t, sort.StringsAreSorted(slots))
		for _, s := range slots {
			seen[s]++
		}
	}
	for _, s := range merged["Казань"] {
		assert.Equal(t, 1, seen[s], s)
	}
	assert.Len(t, seen, 4)
}

func TestGroupByDate_SkipsUnparseable(t *testing.T) {
	got := GroupByDateThenSort(SlotMap{"Москва": {"garbage", "2024-06-01T07:00:00.000Z"}}, time.UTC)
	assert.Equal(t, map[string][]string{"2024-06-01": {"2024-06-01T07:00:00.000Z"}}, got["Москва"])
}

func TestSlotsOnDate(t *testing.T) {
	store := SlotMap{"Москва": {
		"2024-06-01T12:00:00.000Z",
		"2024-06-02T08:00:00.000Z",
		"2024-06-01T07:00:00.000Z",
	}}

	assert.Equal(t,
		[]string{"2024-06-01T07:00:00.000Z", "2024-06-01T12:00:00.000Z"},
		SlotsOnDate(store, "Москва", "2024-06-01", msk))
	assert.Empty(t, SlotsOnDate(store, "Москва", "2024-06-05", msk))
	assert.Empty(t, SlotsOnDate(store, "Тула", "2024-06-01", msk))
}

func TestAvailableDates(t *testing.T) {
	store := SlotMap{"Москва": {
		"2024-06-02T08:00:00.000Z",
		"2024-06-01T12:00:00.000Z",
		"2024-06-01T07:00:00.000Z",
	}}

	first := AvailableDates(store, "Москва", msk)
	second := AvailableDates(store, "Москва", msk)

	assert.Equal(t, []string{"2024-06-01", "2024-06-02"}, first)
	assert.Equal(t, first, second)
}

func TestAvailableDates_AfterRemoveAll(t *testing.T) {
	store := RemoveAll(SlotMap{"Москва": {"2024-06-01T07:00:00.000Z"}}, "Москва")

	_, ok := store["Москва"]
	assert.False(t, ok)
	assert.Empty(t, AvailableDates(store, "Москва", msk))
}
