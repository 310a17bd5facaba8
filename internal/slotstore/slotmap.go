// Package slotstore хранит доступные слоты по ключу локации и операции над ними.
//
// Все функции пакета чистые: входной SlotMap никогда не изменяется,
// результатом всегда является новое значение.
package slotstore

import (
	"sort"
	"strings"
)

// OnlineKey зарезервированный ключ для онлайн-сессий
const OnlineKey = "online"

// SlotMap ключ локации ("online" или название города) -> ISO-таймстемпы слотов
type SlotMap map[string][]string

// Clone возвращает глубокую копию
func (m SlotMap) Clone() SlotMap {
	out := make(SlotMap, len(m))
	for key, slots := range m {
		out[key] = append([]string(nil), slots...)
	}
	return out
}

// Contains проверяет что слот есть у локации
func (m SlotMap) Contains(key, slot string) bool {
	for _, s := range m[key] {
		if s == slot {
			return true
		}
	}
	return false
}

// Count возвращает количество слотов у локации
func (m SlotMap) Count(key string) int {
	return len(m[key])
}

// Cities возвращает отсортированный список городов (без онлайн-ключа)
func (m SlotMap) Cities() []string {
	cities := make([]string, 0, len(m))
	for key := range m {
		if key == OnlineKey {
			continue
		}
		cities = append(cities, key)
	}
	sort.Strings(cities)
	return cities
}

// Keys возвращает все ключи локаций, онлайн первым
func (m SlotMap) Keys() []string {
	keys := m.Cities()
	if _, ok := m[OnlineKey]; ok {
		keys = append([]string{OnlineKey}, keys...)
	}
	return keys
}

// MergeAppend добавляет новые слоты к локации, создавая ключ при необходимости.
// Таймстемп, который уже есть у локации, повторно не добавляется.
func MergeAppend(store SlotMap, key string, newSlots []string) SlotMap {
	out := store.Clone()
	existing := out[key]

	seen := make(map[string]struct{}, len(existing)+len(newSlots))
	for _, s := range existing {
		seen[s] = struct{}{}
	}

	merged := make([]string, 0, len(existing)+len(newSlots))
	merged = append(merged, existing...)
	for _, s := range newSlots {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		merged = append(merged, s)
	}

	out[key] = merged
	return out
}

// RemoveOne удаляет первое точное совпадение слота.
// Опустевший ключ удаляется целиком.
func RemoveOne(store SlotMap, key, slot string) SlotMap {
	out := store.Clone()
	slots, ok := out[key]
	if !ok {
		return out
	}

	for i, s := range slots {
		if s == slot {
			slots = append(slots[:i], slots[i+1:]...)
			break
		}
	}

	if len(slots) == 0 {
		delete(out, key)
		return out
	}
	out[key] = slots
	return out
}

// RemoveAll удаляет локацию вместе со всеми слотами
func RemoveAll(store SlotMap, key string) SlotMap {
	out := store.Clone()
	delete(out, key)
	return out
}

// CityLookup результат поиска города
type CityLookup struct {
	City      string // ключ в том виде, в каком он хранится
	Found     bool
	Available bool // город найден и у него есть слоты
}

// LookupCity ищет город без учёта регистра. Онлайн-ключ городом не считается.
func LookupCity(store SlotMap, input string) CityLookup {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return CityLookup{}
	}

	for _, key := range store.Cities() {
		if strings.ToLower(key) == needle {
			return CityLookup{
				City:      key,
				Found:     true,
				Available: len(store[key]) > 0,
			}
		}
	}
	return CityLookup{}
}
