package script

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSlots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "getSlots", r.URL.Query().Get("action"))
		assert.Equal(t, "abc", r.URL.Query().Get("key"))
		w.Write([]byte(`{"slots":{"Москва":["2024-06-01T07:00:00.000Z"]}}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL+"?key=abc", srv.Client()).FetchSlots(context.Background())

	require.NoError(t, err)
	assert.Equal(t, slotstore.SlotMap{"Москва": {"2024-06-01T07:00:00.000Z"}}, got)
}

func TestFetchSlots_MissingSlotsIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, srv.Client()).FetchSlots(context.Background())

	require.NoError(t, err)
	assert.Equal(t, slotstore.SlotMap{}, got)
}

func TestFetchSlots_Errors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"slots":{}}`},
		{"malformed", http.StatusOK, `<html>`},
		{"wrong shape", http.StatusOK, `{"slots":["a"]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, srv.Client()).FetchSlots(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestFetchSlots_NoURL(t *testing.T) {
	_, err := NewClient("", nil).FetchSlots(context.Background())
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestSaveSlots(t *testing.T) {
	var received slotstore.SlotMap
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "saveSlots", r.PostForm.Get("action"))
		require.NoError(t, json.Unmarshal([]byte(r.PostForm.Get("slots")), &received))
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	ok, err := NewClient(srv.URL, srv.Client()).SaveSlots(context.Background(), slotstore.SlotMap{"online": {"x"}})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, slotstore.SlotMap{"online": {"x"}}, received)
}

func TestSaveSlots_NotSuccess(t *testing.T) {
	for _, body := range []string{`{"error":"Invalid action"}`, `{"success":"true"}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		ok, _ := NewClient(srv.URL, srv.Client()).SaveSlots(context.Background(), nil)
		assert.False(t, ok, body)
		srv.Close()
	}
}

func TestCreateBooking(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "createBooking", r.PostForm.Get("action"))
		assert.Equal(t, "Online", r.PostForm.Get("type"))
		assert.Equal(t, "Онлайн", r.PostForm.Get("city"))
		assert.Equal(t, "01.06.2024 10:00", r.PostForm.Get("slot"))
		assert.Equal(t, "Иван Петров", r.PostForm.Get("full_name"))
		assert.Equal(t, "+79990001122", r.PostForm.Get("phone"))
		assert.Equal(t, "42", r.PostForm.Get("external_id"))
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	ok, err := NewClient(srv.URL, srv.Client()).CreateBooking(context.Background(), model.BookingRequest{
		Type:       model.SessionOnline,
		City:       model.OnlineCityLabel,
		Slot:       "01.06.2024 10:00",
		FullName:   "Иван Петров",
		Phone:      "+79990001122",
		ExternalID: "42",
	})

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateBooking_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ok, err := NewClient(srv.URL, srv.Client()).CreateBooking(ctx, model.BookingRequest{})

	assert.False(t, ok)
	assert.Error(t, err)
}
