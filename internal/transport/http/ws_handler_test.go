package http

import (
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestWebSocketConversationFlow(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Greeting arrives before any user message.
	payload := readReply(conn, t, "reply")
	if payload["currentStep"] != "welcome" {
		t.Fatalf("expected welcome greeting, got %+v", payload)
	}

	sendMessage(conn, t, "start")
	payload = readReply(conn, t, "reply")
	if payload["currentStep"] != "email" {
		t.Fatalf("expected email step, got %+v", payload)
	}

	sendMessage(conn, t, "tester@example.com")
	payload = readReply(conn, t, "reply")
	if payload["currentStep"] != "topic" {
		t.Fatalf("expected topic step, got %+v", payload)
	}

	// An unknown topic re-prompts; state stays on the topic step.
	sendMessage(conn, t, "underwater basket weaving")
	payload = readReply(conn, t, "reply")
	if payload["currentStep"] != "topic" {
		t.Fatalf("expected to stay on topic step, got %+v", payload)
	}

	sendMessage(conn, t, "health")
	payload = readReply(conn, t, "reply")
	if payload["currentStep"] != "questions" || payload["selectedTopic"] != "Health" {
		t.Fatalf("expected first question for Health, got %+v", payload)
	}

	sendMessage(conn, t, "b")
	payload = readReply(conn, t, "reply")
	if payload["currentStep"] != "questions" {
		t.Fatalf("expected second question, got %+v", payload)
	}

	sendMessage(conn, t, "d")
	payload = readReply(conn, t, "reply")
	if payload["currentStep"] != "results" {
		t.Fatalf("expected results, got %+v", payload)
	}
	if score, ok := payload["score"].(float64); !ok || int(score) != 8 {
		t.Fatalf("expected score 8, got %+v", payload["score"])
	}
	if pct, ok := payload["percentage"].(float64); !ok || int(pct) != 62 {
		t.Fatalf("expected 62 percent, got %+v", payload["percentage"])
	}
}

func TestWebSocketRejectsUnknownFrameType(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	readReply(conn, t, "reply")

	if err := conn.WriteJSON(map[string]any{"type": "ping"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	typ, _ := readNext(conn, t)
	if typ != "error" {
		t.Fatalf("expected error frame, got %s", typ)
	}
}

func sendMessage(conn *websocket.Conn, t *testing.T, message string) {
	t.Helper()
	frame := map[string]any{
		"type":    "message",
		"payload": map[string]any{"message": message},
	}
	if err := conn.WriteJSON(frame); err != nil {
		t.Fatalf("write %q: %v", message, err)
	}
}

func readReply(conn *websocket.Conn, t *testing.T, expect string) map[string]any {
	t.Helper()
	typ, payload := readNext(conn, t)
	if typ != expect {
		t.Fatalf("expected type %s, got %s", expect, typ)
	}
	return payload
}

func readNext(conn *websocket.Conn, t *testing.T) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	return msg.Type, msg.Payload
}
