package domain

import "strings"

// Step identifies where a conversation sits in the assessment flow.
type Step string

const (
	StepWelcome   Step = "welcome"
	StepEmail     Step = "email"
	StepTopic     Step = "topic"
	StepQuestions Step = "questions"
	StepResults   Step = "results"
	StepError     Step = "error"
)

// Level is an option letter within a question.
type Level string

const (
	LevelA Level = "A"
	LevelB Level = "B"
	LevelC Level = "C"
	LevelD Level = "D"
)

// ParseLevel normalizes a raw token to an option letter.
func ParseLevel(raw string) (Level, bool) {
	switch upper := strings.ToUpper(strings.TrimSpace(raw)); upper {
	case "A", "B", "C", "D":
		return Level(upper), true
	}
	return "", false
}

// Option is one possible answer to a question. Score is independent of the
// letter: the best option is the one with the highest score, not letter A.
type Option struct {
	Level Level  `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
	Score int    `json:"score" yaml:"score"`
}

// Question is an MCQ question with four lettered options.
type Question struct {
	ID      int      `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Options []Option `json:"options" yaml:"options"`
}

// Option returns the option carrying the given letter.
func (q Question) Option(level Level) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Level == level {
			return opt, true
		}
	}
	return Option{}, false
}

// Best returns the highest-scoring option.
func (q Question) Best() Option {
	var best Option
	for i, opt := range q.Options {
		if i == 0 || opt.Score > best.Score {
			best = opt
		}
	}
	return best
}

// Topic is one assessable life domain with its ordered question list.
type Topic struct {
	Name      string     `json:"name" yaml:"name"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Catalog is the full read-only question dataset.
type Catalog struct {
	Topics []Topic `json:"topics" yaml:"topics"`
}

// Names lists topic names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c.Topics))
	for _, t := range c.Topics {
		names = append(names, t.Name)
	}
	return names
}

// Find matches a topic name case-insensitively and returns the canonical entry.
func (c Catalog) Find(name string) (Topic, bool) {
	for _, t := range c.Topics {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Topic{}, false
}

// Conversation is the full assessment state, round-tripped through the client
// on every turn. The server keeps no copy between requests.
type Conversation struct {
	Step       Step          `json:"currentStep"`
	Email      string        `json:"email,omitempty"`
	Topic      string        `json:"selectedTopic,omitempty"`
	Answers    map[int]Level `json:"answers"`
	Score      int           `json:"score,omitempty"`
	Percentage int           `json:"percentage,omitempty"`
}

// Normalized fills boundary defaults so the transition function always sees a
// fully specified state: empty step becomes welcome, the answer map is never
// nil and every stored letter is upper-cased.
func (c Conversation) Normalized() Conversation {
	if c.Step == "" {
		c.Step = StepWelcome
	}
	answers := make(map[int]Level, len(c.Answers))
	for id, level := range c.Answers {
		answers[id] = Level(strings.ToUpper(string(level)))
	}
	c.Answers = answers
	return c
}

// CloneAnswers copies the answer map so a turn never mutates its input state.
func (c Conversation) CloneAnswers() map[int]Level {
	answers := make(map[int]Level, len(c.Answers)+1)
	for id, level := range c.Answers {
		answers[id] = level
	}
	return answers
}

// Turn is the complete outcome of one conversation turn: the full next state
// plus the bot messages to display. Never a partial patch.
type Turn struct {
	State    Conversation
	Messages []Message
}
