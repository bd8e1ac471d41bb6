package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"assessment-chat-service/internal/app"
	"assessment-chat-service/internal/domain"
	"assessment-chat-service/internal/render"
)

// ChatHandler serves the single-turn chat endpoint. Each request carries the
// full conversation state and each response returns the complete next state.
type ChatHandler struct {
	service *app.ChatService
	log     zerolog.Logger
	now     func() time.Time
}

func NewChatHandler(service *app.ChatService, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{service: service, log: log, now: time.Now}
}

type chatRequest struct {
	Message       string         `json:"message"`
	Email         string         `json:"email"`
	SelectedTopic string         `json:"selectedTopic"`
	Answers       map[int]string `json:"answers"`
	CurrentStep   string         `json:"currentStep"`
}

type wireMessage struct {
	Kind      domain.MessageKind     `json:"kind"`
	Content   string                 `json:"content"`
	IsUser    bool                   `json:"isUser"`
	Timestamp string                 `json:"timestamp"`
	Topics    []string               `json:"topics,omitempty"`
	Prompt    *domain.QuestionPrompt `json:"prompt,omitempty"`
	Report    *domain.Report         `json:"report,omitempty"`
}

type chatResponse struct {
	Success       bool           `json:"success"`
	Messages      []wireMessage  `json:"messages"`
	CurrentStep   string         `json:"currentStep"`
	Email         string         `json:"email,omitempty"`
	SelectedTopic string         `json:"selectedTopic,omitempty"`
	Answers       map[int]string `json:"answers"`
	Score         *int           `json:"score,omitempty"`
	Percentage    *int           `json:"percentage,omitempty"`
}

// ServeChat handles POST /api/chat.
func (h *ChatHandler) ServeChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := decodeRequest(r.Body)
	if err != nil {
		h.writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	turn, err := h.service.Advance(r.Context(), toState(req), req.Message)
	if err != nil {
		h.log.Warn().Err(err).Str("step", req.CurrentStep).Msg("turn rejected")
		h.writeError(w, err.Error(), statusFor(err))
		return
	}

	h.writeTurn(w, turn)
}

// decodeRequest applies boundary defaults: an empty body is a fresh welcome
// turn, and absent fields become their zero values before normalization.
func decodeRequest(body io.Reader) (chatRequest, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return chatRequest{}, err
	}

	req := chatRequest{}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return req, nil
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return chatRequest{}, err
	}
	return req, nil
}

func toState(req chatRequest) domain.Conversation {
	answers := make(map[int]domain.Level, len(req.Answers))
	for id, level := range req.Answers {
		answers[id] = domain.Level(level)
	}
	return domain.Conversation{
		Step:    domain.Step(req.CurrentStep),
		Email:   req.Email,
		Topic:   req.SelectedTopic,
		Answers: answers,
	}.Normalized()
}

// statusFor maps validation sentinels to 400; anything else, including
// catalog load failures, is a server-side 500.
func statusFor(err error) int {
	if errors.Is(err, domain.ErrMessageRequired) ||
		errors.Is(err, domain.ErrTopicRequired) ||
		errors.Is(err, domain.ErrInvalidStep) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *ChatHandler) writeTurn(w http.ResponseWriter, turn domain.Turn) {
	state := turn.State
	resp := chatResponse{
		Success:       true,
		Messages:      wireMessages(turn.Messages, h.now),
		CurrentStep:   string(state.Step),
		Email:         state.Email,
		SelectedTopic: state.Topic,
		Answers:       wireAnswers(state.Answers),
	}
	if state.Step == domain.StepResults {
		score, percentage := state.Score, state.Percentage
		resp.Score = &score
		resp.Percentage = &percentage
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ChatHandler) writeError(w http.ResponseWriter, message string, status int) {
	msg := domain.Message{Kind: domain.KindError, Text: message}
	writeJSON(w, status, chatResponse{
		Success:     false,
		Messages:    wireMessages([]domain.Message{msg}, h.now),
		CurrentStep: string(domain.StepError),
		Answers:     map[int]string{},
	})
}

func wireMessages(messages []domain.Message, now func() time.Time) []wireMessage {
	timestamp := now().Format("15:04")
	out := make([]wireMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, wireMessage{
			Kind:      m.Kind,
			Content:   render.Render(m),
			IsUser:    false,
			Timestamp: timestamp,
			Topics:    m.Topics,
			Prompt:    m.Prompt,
			Report:    m.Report,
		})
	}
	return out
}

func wireAnswers(answers map[int]domain.Level) map[int]string {
	out := make(map[int]string, len(answers))
	for id, level := range answers {
		out[id] = string(level)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
