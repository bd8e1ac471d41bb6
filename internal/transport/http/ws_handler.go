package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"assessment-chat-service/internal/app"
	"assessment-chat-service/internal/domain"
)

// WSHandler runs the same conversation turns over a websocket. The connection
// owns the conversation state for its lifetime; nothing is persisted.
type WSHandler struct {
	service  *app.ChatService
	upgrader websocket.Upgrader
	log      zerolog.Logger
	now      func() time.Time
}

func NewWSHandler(service *app.ChatService, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log,
		now: time.Now,
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type turnPayload struct {
	Message string `json:"message"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type replyPayload struct {
	Messages      []wireMessage  `json:"messages"`
	CurrentStep   string         `json:"currentStep"`
	Email         string         `json:"email,omitempty"`
	SelectedTopic string         `json:"selectedTopic,omitempty"`
	Answers       map[int]string `json:"answers"`
	Score         *int           `json:"score,omitempty"`
	Percentage    *int           `json:"percentage,omitempty"`
}

// ServeWS upgrades the request and drives a conversation per connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	state := domain.Conversation{Step: domain.StepWelcome}.Normalized()

	// Greet before the first user message.
	welcome, err := h.service.Advance(r.Context(), state, "")
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	state = welcome.State
	if err := conn.WriteJSON(h.reply(welcome)); err != nil {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "message":
			var payload turnPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "invalid message payload"}})
				continue
			}
			turn, err := h.service.Advance(r.Context(), state, payload.Message)
			if err != nil {
				// State stays at its last accepted value.
				_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
				continue
			}
			state = turn.State
			if err := conn.WriteJSON(h.reply(turn)); err != nil {
				return
			}
		default:
			_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}
}

func (h *WSHandler) reply(turn domain.Turn) outboundMessage[replyPayload] {
	payload := replyPayload{
		Messages:      wireMessages(turn.Messages, h.now),
		CurrentStep:   string(turn.State.Step),
		Email:         turn.State.Email,
		SelectedTopic: turn.State.Topic,
		Answers:       wireAnswers(turn.State.Answers),
	}
	if turn.State.Step == domain.StepResults {
		score, percentage := turn.State.Score, turn.State.Percentage
		payload.Score = &score
		payload.Percentage = &percentage
	}
	return outboundMessage[replyPayload]{Type: "reply", Payload: payload}
}
