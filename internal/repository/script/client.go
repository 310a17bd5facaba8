// Package script клиент веб-эндпоинта таблицы, в которой хранятся слоты и записи.
package script

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/model"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
)

// DefaultTimeout таймаут одного запроса к эндпоинту
const DefaultTimeout = 30 * time.Second

const (
	actionGetSlots      = "getSlots"
	actionSaveSlots     = "saveSlots"
	actionCreateBooking = "createBooking"
)

var ErrInvalidURL = errors.New("script url is not configured")

// Client ходит в эндпоинт таблицы по HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = DefaultHTTPClient()
	}
	return &Client{
		baseURL:    strings.TrimSpace(baseURL),
		httpClient: httpClient,
	}
}

func DefaultHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

type slotsResponse struct {
	Slots slotstore.SlotMap `json:"slots"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// FetchSlots читает SlotMap
func (c *Client) FetchSlots(ctx context.Context) (slotstore.SlotMap, error) {
	if c.baseURL == "" {
		return nil, ErrInvalidURL
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse script url: %w", err)
	}
	q := u.Query()
	q.Set("action", actionGetSlots)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get slots: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("get slots: unexpected status %d", resp.StatusCode)
	}

	var body slotsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}
	if body.Slots == nil {
		return slotstore.SlotMap{}, nil
	}
	return body.Slots, nil
}

// SaveSlots перезаписывает SlotMap целиком
func (c *Client) SaveSlots(ctx context.Context, slots slotstore.SlotMap) (bool, error) {
	if slots == nil {
		slots = slotstore.SlotMap{}
	}
	payload, err := json.Marshal(slots)
	if err != nil {
		return false, fmt.Errorf("encode slots: %w", err)
	}

	form := url.Values{}
	form.Set("action", actionSaveSlots)
	form.Set("slots", string(payload))

	return c.post(ctx, form)
}

// CreateBooking отправляет запись в таблицу
func (c *Client) CreateBooking(ctx context.Context, booking model.BookingRequest) (bool, error) {
	form := url.Values{}
	form.Set("action", actionCreateBooking)
	form.Set("type", string(booking.Type))
	form.Set("city", booking.City)
	form.Set("slot", booking.Slot)
	form.Set("full_name", booking.FullName)
	form.Set("phone", booking.Phone)
	form.Set("external_id", booking.ExternalID)

	return c.post(ctx, form)
}

func (c *Client) post(ctx context.Context, form url.Values) (bool, error) {
	if c.baseURL == "" {
		return false, ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("post %s: %w", form.Get("action"), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("read %s response: %w", form.Get("action"), err)
	}

	var body successResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return false, fmt.Errorf("decode %s response: %w", form.Get("action"), err)
	}
	return body.Success, nil
}
