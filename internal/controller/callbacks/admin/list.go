package admin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/citybooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/citybooking_bot/internal/slotstore"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Slot List & Removal
// ========================

// HandleList список локаций со слотами
func HandleList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		renderList(hc)
		hc.Answer("")
	})
}

// HandleLocation даты выбранной локации
func HandleLocation(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		idx, err := common.ParseIndexFromCallback(callback.Data, common.AdminLocation)
		if err != nil {
			common.HandleError(hc, err, "admin_location")
			return
		}
		key, err := locationKey(hc, idx)
		if err != nil {
			common.HandleError(hc, err, "admin_location")
			return
		}

		text, kb := common.BuildAdminLocationScreen(idx, key, h.Slots.Grouped()[key])
		common.RenderScreen(hc, text, kb)
	})
}

// HandleDate слоты локации на дату
func HandleDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		idx, key, value, err := splitLocation(hc, common.AdminDate)
		if err != nil {
			common.HandleError(hc, err, "admin_date")
			return
		}

		renderDate(hc, idx, key, value)
		hc.Answer("")
	})
}

// HandleDelete удаляет один слот
func HandleDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		idx, key, slot, err := splitLocation(hc, common.AdminDelete)
		if err != nil {
			common.HandleError(hc, err, "admin_delete")
			return
		}

		date, ok := slotstore.SlotDate(slot, h.Slots.Location())
		if !ok {
			common.HandleError(hc, common.ErrInvalidFormat, "admin_delete")
			return
		}

		if err := h.Slots.RemoveSlot(ctx, key, slot); err != nil {
			common.HandleError(hc, err, "admin_delete")
			return
		}

		h.Logger.Info("Slot removed by admin",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("location", key),
			zap.String("slot", slot))

		if len(h.Slots.SlotsOnDate(key, date)) == 0 {
			// Дата опустела: возвращаемся к списку дат
			text, kb := common.BuildAdminLocationScreen(idx, key, h.Slots.Grouped()[key])
			if err := hc.EditMessage(text, kb); err != nil {
				common.HandleError(hc, err, "admin_delete")
				return
			}
		} else {
			renderDate(hc, idx, key, date)
		}
		hc.Answer("🗑 Слот удалён")
	})
}

// HandleDeleteAll просит подтвердить удаление всех слотов локации
func HandleDeleteAll(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		idx, err := common.ParseIndexFromCallback(callback.Data, common.AdminDeleteAll)
		if err != nil {
			common.HandleError(hc, err, "admin_delete_all")
			return
		}
		key, err := locationKey(hc, idx)
		if err != nil {
			common.HandleError(hc, err, "admin_delete_all")
			return
		}

		text, kb := common.BuildAdminDeleteAllScreen(idx, key, h.Slots.Snapshot().Count(key))
		common.RenderScreen(hc, text, kb)
	})
}

// HandleDeleteAllConfirm удаляет локацию целиком
func HandleDeleteAllConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		idx, err := common.ParseIndexFromCallback(callback.Data, common.AdminDeleteAllConfirm)
		if err != nil {
			common.HandleError(hc, err, "admin_delete_all")
			return
		}
		key, err := locationKey(hc, idx)
		if err != nil {
			common.HandleError(hc, err, "admin_delete_all")
			return
		}

		if err := h.Slots.RemoveLocation(ctx, key); err != nil {
			common.HandleError(hc, err, "admin_delete_all")
			return
		}

		h.Logger.Info("Location removed by admin",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("location", key))

		renderList(hc)
		hc.Answer("🗑 Все слоты удалены")
	})
}

// renderList перерисовывает список и запоминает порядок локаций для индексов кнопок
func renderList(hc *common.HandlerContext) {
	snapshot := hc.Handler.Slots.Snapshot()
	keys := snapshot.Keys()
	hc.SetData(common.DataAdminKeys, keys)

	text, kb := common.BuildAdminListScreen(keys, snapshot)
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to render admin list", zap.Error(err))
	}
}

func renderDate(hc *common.HandlerContext, idx int, key, date string) {
	slots := hc.Handler.Slots
	text, kb := common.BuildAdminDateScreen(idx, key, date, slots.SlotsOnDate(key, date), slots.Location())
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to render admin date", zap.Error(err))
	}
}

// locationKey возвращает локацию по индексу кнопки из последнего показанного списка
func locationKey(hc *common.HandlerContext, idx int) (string, error) {
	v, ok := hc.GetData(common.DataAdminKeys)
	if !ok {
		return "", common.ErrSessionExpired
	}
	keys, ok := v.([]string)
	if !ok || idx < 0 || idx >= len(keys) {
		return "", fmt.Errorf("%w: location %d", common.ErrSessionExpired, idx)
	}
	return keys[idx], nil
}

// splitLocation разбирает "<prefix><idx>:<value>"
func splitLocation(hc *common.HandlerContext, prefix string) (int, string, string, error) {
	parts, err := common.SplitCallback(hc.Callback.Data, prefix, 2)
	if err != nil {
		return 0, "", "", err
	}
	idx, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", "", fmt.Errorf("%w: %q", common.ErrInvalidFormat, hc.Callback.Data)
	}
	key, err := locationKey(hc, idx)
	if err != nil {
		return 0, "", "", err
	}
	return idx, key, parts[1], nil
}
