package chat

import (
	"testing"
)

func TestSessionGreeting(t *testing.T) {
	sess := newSession("Asha")
	msgs := sess.Messages()
	if len(msgs) != 1 {
		t.Fatalf("new session has %d messages", len(msgs))
	}
	if msgs[0].Role != RoleBot {
		t.Errorf("greeting role = %q", msgs[0].Role)
	}
	if msgs[0].Content != "Namaste Asha! I am Pranaya. I'm listening." {
		t.Errorf("greeting = %q", msgs[0].Content)
	}
}

func TestSessionHistoryFormat(t *testing.T) {
	sess := newSession("Asha")
	sess.Append(Message{Role: RoleUser, Content: "I have a headache"})
	sess.Append(Message{Role: RoleBot, Content: "Since when?"})

	history := sess.History()
	want := []string{
		"Bot: Namaste Asha! I am Pranaya. I'm listening.",
		"User: I have a headache",
		"Bot: Since when?",
	}
	if len(history) != len(want) {
		t.Fatalf("history = %v", history)
	}
	for i := range want {
		if history[i] != want[i] {
			t.Errorf("history[%d] = %q, want %q", i, history[i], want[i])
		}
	}
}

func TestSessionManagerPerUser(t *testing.T) {
	m := NewSessionManager()
	a := m.Get("u1", "Asha")
	b := m.Get("u2", "Ravi")
	if a == b {
		t.Fatal("sessions shared between users")
	}
	if m.Get("u1", "ignored") != a {
		t.Error("second access did not return the same session")
	}

	a.SetEmergency(true)
	m.Clear("u1")
	if m.Get("u1", "Asha").Emergency() {
		t.Error("cleared session kept its emergency flag")
	}
}

func TestSessionMessagesAreCopies(t *testing.T) {
	sess := newSession("Asha")
	msgs := sess.Messages()
	msgs[0].Content = "tampered"
	if sess.Messages()[0].Content == "tampered" {
		t.Error("Messages() exposes internal slice")
	}
}
