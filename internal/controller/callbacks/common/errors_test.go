package common

import (
	"fmt"
	"testing"

	"github.com/Freeeeeet/citybooking_bot/internal/service"
	"github.com/Freeeeeet/citybooking_bot/internal/slotgrid"
	"github.com/Freeeeeet/citybooking_bot/internal/wizard"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{service.ErrRequestInFlight, "⏳ Запись уже отправляется, подождите"},
		{fmt.Errorf("submit: %w", service.ErrSlotUnavailable), "❌ Это время уже занято, выберите другое"},
		{wizard.ErrSubmitFailed, "❌ Ошибка записи. Пожалуйста, попробуйте еще раз."},
		{fmt.Errorf("%w: back on succeeded", wizard.ErrInvalidTransition), "⚠️ Этот экран устарел. Начните заново: /start"},
		{slotgrid.ErrCityRequired, "🏙 Укажите город"},
		{fmt.Errorf("unexpected"), "❌ Произошла ошибка"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorMessage(tt.err), tt.err.Error())
	}
}

func TestParseIndexFromCallback(t *testing.T) {
	idx, err := ParseIndexFromCallback("adm:loc:3", "adm:loc:")
	assert.NoError(t, err)
	assert.Equal(t, 3, idx)

	idx, err = ParseIndexFromCallback("adm:date:2:2024-06-01", "adm:date:")
	assert.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = ParseIndexFromCallback("adm:loc:x", "adm:loc:")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseIndexFromCallback("other", "adm:loc:")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestSplitCallback(t *testing.T) {
	parts, err := SplitCallback("adm:del:1:2024-06-01T10:00:00.000Z", "adm:del:", 2)
	assert.NoError(t, err)
	assert.Equal(t, []string{"1", "2024-06-01T10:00:00.000Z"}, parts)

	_, err = SplitCallback("adm:del:1", "adm:del:", 2)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
