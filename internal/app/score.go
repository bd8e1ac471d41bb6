package app

import (
	"math"

	"assessment-chat-service/internal/domain"
)

// scoreAnswers sums the score of every chosen option. Unknown letters count
// zero, matching how a missing option contributes nothing.
func scoreAnswers(topic domain.Topic, answers map[int]domain.Level) int {
	total := 0
	for _, q := range topic.Questions {
		level, ok := answers[q.ID]
		if !ok {
			continue
		}
		if opt, found := q.Option(level); found {
			total += opt.Score
		}
	}
	return total
}

// maxScore sums each question's highest option score. The maximum is taken by
// value, not by letter.
func maxScore(topic domain.Topic) int {
	total := 0
	for _, q := range topic.Questions {
		total += q.Best().Score
	}
	return total
}

func percentageOf(score, max int) int {
	if max <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(max) * 100))
}

// gradeFor buckets a percentage into a letter grade. This scale is separate
// from the A-D option levels.
func gradeFor(percentage int) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}

func buildReport(topic domain.Topic, answers map[int]domain.Level, email string) domain.Report {
	score := scoreAnswers(topic, answers)
	max := maxScore(topic)
	percentage := percentageOf(score, max)

	breakdown := make([]domain.ReportEntry, 0, len(topic.Questions))
	for _, q := range topic.Questions {
		entry := domain.ReportEntry{
			QuestionID: q.ID,
			Question:   q.Text,
			Best:       q.Best(),
		}
		if level, ok := answers[q.ID]; ok {
			if chosen, found := q.Option(level); found {
				entry.Chosen = chosen
			}
		}
		breakdown = append(breakdown, entry)
	}

	return domain.Report{
		Topic:      topic.Name,
		Email:      email,
		Score:      score,
		MaxScore:   max,
		Percentage: percentage,
		Grade:      gradeFor(percentage),
		Breakdown:  breakdown,
	}
}
