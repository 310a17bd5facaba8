package common

import (
	"testing"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/slotgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore map[string]interface{}

func (m memStore) GetData(_ int64, key string) (interface{}, bool) {
	v, ok := m[key]
	return v, ok
}

func (m memStore) SetData(_ int64, key string, value interface{}) {
	m[key] = value
}

func TestLoadDraft_Defaults(t *testing.T) {
	draft := LoadDraft(memStore{}, 1, time.UTC)

	assert.Equal(t, slotgrid.DefaultConfig(), draft.Config)
	assert.False(t, draft.Range.Complete())
	assert.Equal(t, 1, draft.Month.Day())
}

func TestSaveDraft_RoundTrip(t *testing.T) {
	store := memStore{}
	draft := LoadDraft(store, 1, time.UTC)
	draft.Config.Kind = model.SessionOnline
	draft.Config.Interval = 45
	SaveDraft(store, 1, draft)

	loaded := LoadDraft(store, 1, time.UTC)
	assert.Equal(t, model.SessionOnline, loaded.Config.Kind)
	assert.Equal(t, 45, loaded.Config.Interval)
}

func TestLoadMonth(t *testing.T) {
	store := memStore{}
	_, ok := LoadMonth(store, 1)
	assert.False(t, ok)

	june := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	store.SetData(1, DataMonth, june)
	month, ok := LoadMonth(store, 1)
	require.True(t, ok)
	assert.Equal(t, june, month)

	store.SetData(1, DataMonth, "2024-06")
	_, ok = LoadMonth(store, 1)
	assert.False(t, ok)
}

func TestInitialMonth(t *testing.T) {
	dates := []string{"2024-07-03", "2024-08-01"}

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		InitialMonth("2024-06-15", dates, time.UTC))
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		InitialMonth("", dates, time.UTC))

	now := InitialMonth("", nil, time.UTC)
	assert.Equal(t, 1, now.Day())
	assert.Equal(t, time.Now().UTC().Month(), now.Month())
}
