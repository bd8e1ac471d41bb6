// Package render turns structured conversation messages into display text.
// Keeping presentation here leaves the state machine free of markup concerns.
package render

import (
	"fmt"
	"sort"
	"strings"

	"assessment-chat-service/internal/domain"
)

// Render returns the display text for a structured message.
func Render(m domain.Message) string {
	switch m.Kind {
	case domain.KindWelcome:
		return welcomeText
	case domain.KindEmailPrompt:
		return "Please enter a valid email address to continue:"
	case domain.KindTopicPrompt:
		return "Thank you! Please select a topic:\n" + topicList(m.Topics)
	case domain.KindInvalidTopic:
		return "Please select one of these topics:\n" + topicList(m.Topics)
	case domain.KindQuestion:
		return question(m.Prompt)
	case domain.KindInvalidAnswer:
		return "Please respond with only A, B, C, or D\nOr type 'exit' to cancel assessment\n\n" + question(m.Prompt)
	case domain.KindExit:
		return "Assessment canceled. Type 'start' to begin again.\nOr ask me anything like:\n- What can you do?\n- Tell me about yourself"
	case domain.KindResults:
		return report(m.Report)
	case domain.KindError:
		return "Error: " + m.Text
	default:
		return m.Text
	}
}

const welcomeText = "Welcome to Your Life Assessment!\n" +
	"Here's how this works:\n" +
	"1. You'll provide your email\n" +
	"2. Select a topic\n" +
	"3. Answer the questions (choose A/B/C/D)\n" +
	"4. Receive your personalized report\n" +
	"Let's get started! Type 'start' to begin."

func topicList(topics []string) string {
	var b strings.Builder
	for _, t := range topics {
		fmt.Fprintf(&b, "- %s\n", t)
	}
	return strings.TrimRight(b.String(), "\n")
}

// question lists options by descending score, keeping each option's letter.
func question(p *domain.QuestionPrompt) string {
	if p == nil {
		return ""
	}

	options := append([]domain.Option(nil), p.Question.Options...)
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Score > options[j].Score
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%s Assessment\n", p.Topic)
	fmt.Fprintf(&b, "Question %d/%d:\n%s\n", p.Number, p.Total, p.Question.Text)
	for _, opt := range options {
		fmt.Fprintf(&b, "  %s: %s\n", opt.Level, opt.Text)
	}
	b.WriteString("Reply with A, B, C, or D\n")
	b.WriteString("Type 'exit' to cancel")
	return b.String()
}

func report(r *domain.Report) string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Assessment Report: %s\n", r.Topic)
	fmt.Fprintf(&b, "Score: %d/%d (%d%%) Grade: %s\n", r.Score, r.MaxScore, r.Percentage, r.Grade)
	if r.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", r.Email)
	}
	b.WriteString("Question Breakdown:\n")
	for i, entry := range r.Breakdown {
		fmt.Fprintf(&b, "Q%d: %s\n", i+1, entry.Question)
		if entry.Chosen.Level != "" {
			fmt.Fprintf(&b, "  Your answer:  %s: %s (score %d/%d)\n",
				entry.Chosen.Level, entry.Chosen.Text, entry.Chosen.Score, entry.Best.Score)
		} else {
			fmt.Fprintf(&b, "  Your answer:  not answered (score 0/%d)\n", entry.Best.Score)
		}
		fmt.Fprintf(&b, "  Best answer:  %s: %s\n", entry.Best.Level, entry.Best.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}
