package smalltalk

import (
	"strings"
	"testing"
)

func TestCannedIsExact(t *testing.T) {
	m := NewMatcher()

	if _, ok := m.Canned("What can you do?"); !ok {
		t.Fatalf("expected canned reply for suggestion prompt")
	}
	// Canned lookups are exact; free text goes through Answer instead.
	if _, ok := m.Canned("what can you do?"); ok {
		t.Fatalf("did not expect case-insensitive canned match")
	}
}

func TestAnswerExactMatch(t *testing.T) {
	m := NewMatcher()

	reply := m.Answer("  Hello ")
	if !strings.Contains(reply, "Greetings") {
		t.Fatalf("expected greeting, got %q", reply)
	}
}

func TestAnswerInclusionMatch(t *testing.T) {
	m := NewMatcher()

	reply := m.Answer("tell me who are you exactly")
	if !strings.Contains(reply, "Life Essentials Assistant") {
		t.Fatalf("expected identity answer via inclusion, got %q", reply)
	}
}

func TestAnswerSimilarityMatch(t *testing.T) {
	m := NewMatcher()

	// One transposition away from "how are you"; bigram similarity stays
	// above the 0.7 threshold.
	reply := m.Answer("how aer you")
	if !strings.Contains(reply, "functioning optimally") {
		t.Fatalf("expected similarity match, got %q", reply)
	}
}

func TestAnswerFallsBack(t *testing.T) {
	m := NewMatcher()

	reply := m.Answer("quantum flux capacitor maintenance schedule")
	if reply != fallbackAnswer {
		t.Fatalf("expected fallback, got %q", reply)
	}
}

func TestSimilarityBounds(t *testing.T) {
	if got := similarity("night", "night"); got != 1.0 {
		t.Fatalf("identical strings should score 1.0, got %f", got)
	}
	if got := similarity("night", "nacht"); got <= 0 || got >= 1 {
		t.Fatalf("expected partial overlap score in (0,1), got %f", got)
	}
	if got := similarity("a", "b"); got != 0 {
		t.Fatalf("single characters share no bigrams, got %f", got)
	}
}
