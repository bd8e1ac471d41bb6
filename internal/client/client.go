// Package client holds one conversation state across turns and talks to the
// chat endpoint. It is the programmatic stand-in for the browser UI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// ErrBusy is returned when a turn is submitted while another is in flight.
// Input stays disabled until the outstanding request settles.
var ErrBusy = errors.New("a request is already in flight")

// Message is one transcript entry, user or bot.
type Message struct {
	Kind      string `json:"kind,omitempty"`
	Content   string `json:"content"`
	IsUser    bool   `json:"isUser"`
	Timestamp string `json:"timestamp"`
}

// State mirrors the server's full conversation state. The server returns the
// complete state each turn and the client replaces its copy wholesale.
type State struct {
	CurrentStep   string         `json:"currentStep"`
	Email         string         `json:"email,omitempty"`
	SelectedTopic string         `json:"selectedTopic,omitempty"`
	Answers       map[int]string `json:"answers"`
	Score         *int           `json:"score,omitempty"`
	Percentage    *int           `json:"percentage,omitempty"`
}

type chatRequest struct {
	Message       string         `json:"message,omitempty"`
	Email         string         `json:"email,omitempty"`
	SelectedTopic string         `json:"selectedTopic,omitempty"`
	Answers       map[int]string `json:"answers"`
	CurrentStep   string         `json:"currentStep"`
}

type chatResponse struct {
	Success       bool           `json:"success"`
	Messages      []Message      `json:"messages"`
	CurrentStep   string         `json:"currentStep"`
	Email         string         `json:"email,omitempty"`
	SelectedTopic string         `json:"selectedTopic,omitempty"`
	Answers       map[int]string `json:"answers"`
	Score         *int           `json:"score,omitempty"`
	Percentage    *int           `json:"percentage,omitempty"`
}

// Client owns one conversation against a chat endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	now      func() time.Time

	mu         sync.Mutex
	state      State
	transcript []Message
	pending    bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
		now:      time.Now,
		state:    State{CurrentStep: "welcome", Answers: map[int]string{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send runs one turn: it appends the user message to the transcript
// immediately, posts the message with the full current state, then replaces
// the local state with the server's response and appends the bot messages.
// On failure the last good state is kept; the optimistic user message stays.
func (c *Client) Send(ctx context.Context, message string) ([]Message, error) {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	c.pending = true
	if message != "" {
		c.transcript = append(c.transcript, Message{
			Content:   message,
			IsUser:    true,
			Timestamp: c.now().Format("15:04"),
		})
	}
	req := chatRequest{
		Message:       message,
		Email:         c.state.Email,
		SelectedTopic: c.state.SelectedTopic,
		Answers:       c.state.Answers,
		CurrentStep:   c.state.CurrentStep,
	}
	c.mu.Unlock()

	resp, err := c.post(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false
	if err != nil {
		return nil, err
	}

	c.state = State{
		CurrentStep:   resp.CurrentStep,
		Email:         resp.Email,
		SelectedTopic: resp.SelectedTopic,
		Answers:       resp.Answers,
		Score:         resp.Score,
		Percentage:    resp.Percentage,
	}
	if c.state.Answers == nil {
		c.state.Answers = map[int]string{}
	}
	c.transcript = append(c.transcript, resp.Messages...)
	return resp.Messages, nil
}

func (c *Client) post(ctx context.Context, payload chatRequest) (chatResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return chatResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return chatResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(req)
	if err != nil {
		return chatResponse{}, err
	}
	defer httpResp.Body.Close()

	var resp chatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return chatResponse{}, fmt.Errorf("decode response: %w", err)
	}
	if !resp.Success {
		msg := "request failed"
		if len(resp.Messages) > 0 {
			msg = resp.Messages[0].Content
		}
		return chatResponse{}, fmt.Errorf("%s (status %d)", msg, httpResp.StatusCode)
	}
	return resp, nil
}

// State returns a copy of the current conversation state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.state
	answers := make(map[int]string, len(state.Answers))
	for id, level := range state.Answers {
		answers[id] = level
	}
	state.Answers = answers
	return state
}

// Transcript returns a copy of all messages exchanged so far.
func (c *Client) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.transcript...)
}

// Busy reports whether a request is outstanding.
func (c *Client) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Reset discards the conversation and transcript.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{CurrentStep: "welcome", Answers: map[int]string{}}
	c.transcript = nil
}
