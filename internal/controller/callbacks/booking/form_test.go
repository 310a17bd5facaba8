package booking

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/state"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/telegramtest"
	"github.com/Freeeeeet/citybooking_bot/internal/service"
	"github.com/Freeeeeet/citybooking_bot/internal/wizard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const userID int64 = 42

type submitCall struct {
	telegramID, chatID int64
}

func newFormFixture(t *testing.T, session wizard.Session) (*callbacktypes.Handler, *state.Manager, *[]submitCall) {
	t.Helper()

	manager := state.NewManager()
	manager.SetSession(userID, session)

	var submits []submitCall
	h := &callbacktypes.Handler{
		Slots:        service.NewSlotService(nil, time.UTC, time.Second, zap.NewNop()),
		StateManager: state.NewAdapter(manager),
		Logger:       zap.NewNop(),
		SubmitForm: func(ctx context.Context, b *bot.Bot, telegramID, chatID int64) {
			submits = append(submits, submitCall{telegramID: telegramID, chatID: chatID})
		},
	}
	return h, manager, &submits
}

func formCallback(data string) *models.CallbackQuery {
	return &models.CallbackQuery{
		ID:   "cb-1",
		From: models.User{ID: userID},
		Data: data,
		Message: models.MaybeInaccessibleMessage{
			Message: &models.Message{ID: 7, Chat: models.Chat{ID: userID}},
		},
	}
}

func filledForm() wizard.Session {
	return wizard.Session{
		Screen:       wizard.ScreenFillingForm,
		City:         "Москва",
		LocationKey:  "Москва",
		SelectedDate: "2024-06-01",
		SelectedSlot: "2024-06-01T10:00:00.000Z",
	}
}

func TestHandleFormRetry_WithoutContactsAsksAgain(t *testing.T) {
	tg := telegramtest.NewServer(t)
	h, manager, submits := newFormFixture(t, filledForm())
	manager.SetData(userID, common.DataFormName, "Иван")

	HandleFormRetry(context.Background(), tg.Bot(t), formCallback(common.FormRetry), h)

	assert.Len(t, tg.Calls("answerCallbackQuery"), 1)
	require.Len(t, tg.Calls("editMessageText"), 1)
	assert.Contains(t, tg.Calls("editMessageText")[0].Params["text"], "Введите имя и фамилию")

	assert.Equal(t, state.StateEnteringName, manager.GetState(userID))
	_, ok := manager.GetData(userID, common.DataFormName)
	assert.False(t, ok)
	assert.Empty(t, *submits)
}

func TestHandleFormRetry_ResubmitsFilledForm(t *testing.T) {
	tg := telegramtest.NewServer(t)
	session := filledForm()
	session.Name = "Иван"
	session.Phone = "+79990000000"
	h, _, submits := newFormFixture(t, session)

	HandleFormRetry(context.Background(), tg.Bot(t), formCallback(common.FormRetry), h)

	assert.Len(t, tg.Calls("answerCallbackQuery"), 1)
	assert.Len(t, tg.Calls("deleteMessage"), 1)
	assert.Empty(t, tg.Calls("editMessageText"))
	assert.Equal(t, []submitCall{{telegramID: userID, chatID: userID}}, *submits)
}

func TestHandleFormRetry_StaleScreen(t *testing.T) {
	tg := telegramtest.NewServer(t)
	h, _, submits := newFormFixture(t, wizard.New())

	HandleFormRetry(context.Background(), tg.Bot(t), formCallback(common.FormRetry), h)

	answers := tg.Calls("answerCallbackQuery")
	require.Len(t, answers, 1)
	assert.Equal(t, "true", answers[0].Params["show_alert"])
	assert.Empty(t, *submits)
}
