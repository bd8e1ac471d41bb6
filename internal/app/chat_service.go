package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"assessment-chat-service/internal/domain"
)

// CatalogRepository loads the read-only topic/question catalog (from cache or
// backing store).
type CatalogRepository interface {
	Catalog(ctx context.Context) (domain.Catalog, error)
}

// SmallTalker answers free text outside the structured assessment flow.
type SmallTalker interface {
	// Canned returns the scripted reply for an exact suggestion prompt.
	Canned(message string) (string, bool)
	// Answer returns a best-effort reply for arbitrary text.
	Answer(query string) string
}

// ChatService is the conversation state machine. Advance is a pure function of
// (state, message): it never stores anything between turns, so the caller must
// echo back the full state it was last given.
type ChatService struct {
	catalog   CatalogRepository
	smallTalk SmallTalker
}

func NewChatService(catalog CatalogRepository, smallTalk SmallTalker) *ChatService {
	return &ChatService{catalog: catalog, smallTalk: smallTalk}
}

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Advance runs one conversation turn and returns the complete next state with
// the messages to display.
func (s *ChatService) Advance(ctx context.Context, state domain.Conversation, message string) (domain.Turn, error) {
	state = state.Normalized()
	msg := strings.TrimSpace(message)

	// Canned replies and the start command apply at any step.
	if msg != "" {
		if reply, ok := s.smallTalk.Canned(msg); ok {
			return turn(state, domain.Message{Kind: domain.KindSmallTalk, Text: reply}), nil
		}
		if isStartCommand(msg) {
			fresh := domain.Conversation{Step: domain.StepEmail}.Normalized()
			return turn(fresh, domain.Message{Kind: domain.KindEmailPrompt}), nil
		}
	}

	switch state.Step {
	case domain.StepWelcome:
		if msg == "" {
			return turn(state, domain.Message{Kind: domain.KindWelcome}), nil
		}
		return turn(state, domain.Message{Kind: domain.KindSmallTalk, Text: s.smallTalk.Answer(msg)}), nil
	case domain.StepEmail:
		return s.advanceEmail(ctx, state, msg)
	case domain.StepTopic:
		return s.advanceTopic(ctx, state, msg)
	case domain.StepQuestions:
		return s.advanceQuestions(ctx, state, msg)
	default:
		return domain.Turn{}, domain.ErrInvalidStep
	}
}

func (s *ChatService) advanceEmail(ctx context.Context, state domain.Conversation, msg string) (domain.Turn, error) {
	if msg == "" {
		return domain.Turn{}, domain.ErrMessageRequired
	}

	email := strings.ToLower(msg)
	if !emailPattern.MatchString(email) {
		return turn(state, domain.Message{Kind: domain.KindEmailPrompt}), nil
	}

	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return domain.Turn{}, fmt.Errorf("load catalog: %w", err)
	}

	next := domain.Conversation{Step: domain.StepTopic, Email: email}.Normalized()
	return turn(next, domain.Message{Kind: domain.KindTopicPrompt, Topics: catalog.Names()}), nil
}

func (s *ChatService) advanceTopic(ctx context.Context, state domain.Conversation, msg string) (domain.Turn, error) {
	if msg == "" {
		return domain.Turn{}, domain.ErrMessageRequired
	}

	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return domain.Turn{}, fmt.Errorf("load catalog: %w", err)
	}

	topic, ok := catalog.Find(msg)
	if !ok {
		return turn(state, domain.Message{Kind: domain.KindInvalidTopic, Topics: catalog.Names()}), nil
	}
	if len(topic.Questions) == 0 {
		return domain.Turn{}, domain.ErrNoQuestions
	}

	next := domain.Conversation{
		Step:  domain.StepQuestions,
		Email: state.Email,
		Topic: topic.Name,
	}.Normalized()
	prompt := promptFor(topic, topic.Questions[0])
	return turn(next, domain.Message{Kind: domain.KindQuestion, Prompt: &prompt}), nil
}

func (s *ChatService) advanceQuestions(ctx context.Context, state domain.Conversation, msg string) (domain.Turn, error) {
	if msg == "" {
		return domain.Turn{}, domain.ErrMessageRequired
	}
	if state.Topic == "" {
		return domain.Turn{}, domain.ErrTopicRequired
	}

	if strings.EqualFold(msg, "exit") {
		next := state
		next.Step = domain.StepWelcome
		return turn(next, domain.Message{Kind: domain.KindExit}), nil
	}

	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return domain.Turn{}, fmt.Errorf("load catalog: %w", err)
	}
	topic, ok := catalog.Find(state.Topic)
	if !ok || len(topic.Questions) == 0 {
		return domain.Turn{}, domain.ErrNoQuestions
	}

	// Answers reference stable question IDs, so the current question is the
	// first one without a recorded answer. A replayed or stale request lands
	// on the same question instead of shifting the pointer.
	current, ok := pendingQuestion(topic, state.Answers)
	if !ok {
		return domain.Turn{}, domain.ErrNoPendingQuestion
	}

	level, ok := domain.ParseLevel(msg)
	if !ok {
		prompt := promptFor(topic, current)
		return turn(state, domain.Message{Kind: domain.KindInvalidAnswer, Prompt: &prompt}), nil
	}

	answers := state.CloneAnswers()
	answers[current.ID] = level
	next := state
	next.Answers = answers

	if nextQuestion, more := pendingQuestion(topic, answers); more {
		prompt := promptFor(topic, nextQuestion)
		return turn(next, domain.Message{Kind: domain.KindQuestion, Prompt: &prompt}), nil
	}

	report := buildReport(topic, answers, state.Email)
	next.Step = domain.StepResults
	next.Score = report.Score
	next.Percentage = report.Percentage
	return turn(next, domain.Message{Kind: domain.KindResults, Report: &report}), nil
}

// pendingQuestion returns the first catalog-ordered question without an answer.
func pendingQuestion(topic domain.Topic, answers map[int]domain.Level) (domain.Question, bool) {
	for _, q := range topic.Questions {
		if _, done := answers[q.ID]; !done {
			return q, true
		}
	}
	return domain.Question{}, false
}

func promptFor(topic domain.Topic, question domain.Question) domain.QuestionPrompt {
	number := 1
	for i, q := range topic.Questions {
		if q.ID == question.ID {
			number = i + 1
			break
		}
	}
	return domain.QuestionPrompt{
		Topic:    topic.Name,
		Number:   number,
		Total:    len(topic.Questions),
		Question: question,
	}
}

func isStartCommand(msg string) bool {
	lower := strings.ToLower(msg)
	return lower == "start" || lower == "start assessment"
}

func turn(state domain.Conversation, messages ...domain.Message) domain.Turn {
	return domain.Turn{State: state, Messages: messages}
}
