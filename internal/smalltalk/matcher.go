// Package smalltalk answers free text that falls outside the assessment flow.
// It is a lookup table with fuzzy matching, separate from the conversation
// state machine.
package smalltalk

import "strings"

// QA pairs a known user utterance with its scripted reply.
type QA struct {
	Question string
	Answer   string
}

const fallbackAnswer = "I'm not certain I understand. Could you rephrase or ask about our assessment features?"

// Matcher resolves user text to a canned answer: exact match first, then
// substring inclusion, then bigram similarity above a threshold.
type Matcher struct {
	canned    map[string]string
	pairs     []QA
	fallback  string
	threshold float64
}

// NewMatcher builds a matcher over the default canned and QA tables.
func NewMatcher() *Matcher {
	return &Matcher{
		canned:    cannedResponses,
		pairs:     basicQA,
		fallback:  fallbackAnswer,
		threshold: 0.7,
	}
}

// Canned returns the scripted reply for an exact suggestion prompt such as
// "What can you do?". These work at any conversation step.
func (m *Matcher) Canned(message string) (string, bool) {
	reply, ok := m.canned[message]
	return reply, ok
}

// Answer resolves arbitrary text to the closest known reply, falling back to a
// fixed line when nothing comes close enough.
func (m *Matcher) Answer(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, pair := range m.pairs {
		if strings.ToLower(pair.Question) == q {
			return pair.Answer
		}
	}

	for _, pair := range m.pairs {
		known := strings.ToLower(pair.Question)
		if strings.Contains(q, known) || strings.Contains(known, q) {
			return pair.Answer
		}
	}

	best := ""
	bestScore := 0.0
	for _, pair := range m.pairs {
		score := similarity(q, strings.ToLower(pair.Question))
		if score > bestScore && score >= m.threshold {
			bestScore = score
			best = pair.Answer
		}
	}
	if best != "" {
		return best
	}
	return m.fallback
}

// similarity computes the Sørensen–Dice coefficient over character bigrams.
func similarity(s1, s2 string) float64 {
	longer, shorter := s1, s2
	if len(s2) > len(s1) {
		longer, shorter = s2, s1
	}
	if longer == shorter {
		return 1.0
	}
	if len(longer) < 2 || len(shorter) < 2 {
		return 0.0
	}

	bigrams := make(map[string]struct{}, len(shorter))
	for i := 0; i < len(shorter)-1; i++ {
		bigrams[shorter[i:i+2]] = struct{}{}
	}

	intersection := 0
	for i := 0; i < len(longer)-1; i++ {
		if _, ok := bigrams[longer[i:i+2]]; ok {
			intersection++
		}
	}

	return 2.0 * float64(intersection) / float64(len(longer)+len(shorter)-2)
}
