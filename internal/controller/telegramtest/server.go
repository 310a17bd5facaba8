// Package telegramtest поднимает фейковый Bot API для тестов обработчиков.
package telegramtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
)

// Call один запрос к Bot API
type Call struct {
	Method string
	Params map[string]string
}

// Server записывает вызовы и на всё отвечает успехом
type Server struct {
	srv *httptest.Server

	mu    sync.Mutex
	calls []Call
}

func NewServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.srv.Close)
	return s
}

// Bot клиент, направленный на фейковый сервер
func (s *Server) Bot(t *testing.T) *bot.Bot {
	t.Helper()

	b, err := bot.New("test-token", bot.WithServerURL(s.srv.URL), bot.WithSkipGetMe())
	if err != nil {
		t.Fatalf("create bot: %v", err)
	}
	return b
}

// Calls вызовы метода в порядке поступления
func (s *Server) Calls(method string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Call
	for _, c := range s.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	method := path.Base(r.URL.Path)

	// Запросы без параметров приходят без тела
	_ = r.ParseMultipartForm(1 << 20)

	params := make(map[string]string, len(r.Form))
	for k := range r.Form {
		params[k] = r.Form.Get(k)
	}

	s.mu.Lock()
	s.calls = append(s.calls, Call{Method: method, Params: params})
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch method {
	case "sendMessage", "editMessageText":
		chatID := params["chat_id"]
		if chatID == "" {
			chatID = "0"
		}
		fmt.Fprintf(w, `{"ok":true,"result":{"message_id":1,"date":1717236000,"chat":{"id":%s,"type":"private"}}}`, chatID)
	default:
		fmt.Fprint(w, `{"ok":true,"result":true}`)
	}
}
