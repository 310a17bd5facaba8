// Package auth проверяет доступ к админке бота и HTTP API.
package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Gate проверяет секрет администратора и, если задан, список разрешённых Telegram ID
type Gate struct {
	secretHash []byte
	allowed    map[int64]struct{}
}

// NewGate создаёт проверку доступа. Пустой хэш отключает админку.
func NewGate(secretHash string, allowedIDs []int64) *Gate {
	g := &Gate{
		secretHash: []byte(strings.TrimSpace(secretHash)),
		allowed:    make(map[int64]struct{}, len(allowedIDs)),
	}
	for _, id := range allowedIDs {
		g.allowed[id] = struct{}{}
	}
	return g
}

// Enabled сообщает что админка включена
func (g *Gate) Enabled() bool {
	return g != nil && len(g.secretHash) > 0
}

// Check проверяет ввод пользователя бота как секрет администратора
func (g *Gate) Check(telegramID int64, input string) bool {
	if !g.Allowed(telegramID) {
		return false
	}
	return g.CheckSecret(input)
}

// Allowed проверяет Telegram ID по списку. Пустой список пропускает всех.
func (g *Gate) Allowed(telegramID int64) bool {
	if !g.Enabled() {
		return false
	}
	if len(g.allowed) == 0 {
		return true
	}
	_, ok := g.allowed[telegramID]
	return ok
}

// CheckSecret сравнивает секрет с хэшем без учёта регистра и пробелов по краям
func (g *Gate) CheckSecret(input string) bool {
	if !g.Enabled() {
		return false
	}
	secret := normalize(input)
	if secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(g.secretHash, []byte(secret)) == nil
}

// HashSecret возвращает bcrypt-хэш секрета для ADMIN_SECRET_HASH
func HashSecret(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(normalize(secret)), bcrypt.DefaultCost)
	return string(b), err
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
