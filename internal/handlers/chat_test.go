package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Soulima01/Pranaya/internal/assistant"
	"github.com/Soulima01/Pranaya/internal/chat"
	"github.com/Soulima01/Pranaya/internal/store"
)

type fakeProfileStore struct {
	profile store.Profile
}

func (f fakeProfileStore) Profile(userID string) (store.Profile, error) {
	return f.profile, nil
}

func TestSendMessageClearsSuggestionsWhenAssistantFails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sessions := chat.NewSessionManager()
	sess := sessions.Get("u1", "Asha")
	sess.SetSuggestions([]string{"How much water should I drink?"})

	// Nothing listens here, so the call fails fast.
	client := assistant.NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	h := NewChatHandler(
		fakeProfileStore{profile: store.Profile{Name: "Asha"}},
		sessions, client, chat.NewRouter(nil, nil),
	)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(`{"message":"hi"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userID", "u1")

	h.SendMessage(c)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
	if got := sess.Suggestions(); len(got) != 0 {
		t.Errorf("stale suggestions survived the failed turn: %v", got)
	}

	// The user's message stays in the transcript; no reply was appended.
	msgs := sess.Messages()
	if msgs[len(msgs)-1].Role != chat.RoleUser || msgs[len(msgs)-1].Content != "hi" {
		t.Errorf("transcript tail = %+v", msgs[len(msgs)-1])
	}
}
