// internal/content/validator.go
package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/faithplay/hilo/internal/models"
)

// ParseGameContent parses raw generator output into a validated GameContent.
// The generator often wraps its output in a fenced code block; that wrapper is
// tolerated. Checks run in order and the first failure wins; content that
// fails here is discarded, never partially accepted.
func ParseGameContent(raw string) (*models.GameContent, error) {
	payload := StripCodeFence(raw)

	var gc models.GameContent
	if err := json.Unmarshal([]byte(payload), &gc); err != nil {
		return nil, fmt.Errorf("could not parse AI response: %w", err)
	}

	if strings.TrimSpace(gc.CoreQuestion) == "" {
		return nil, fmt.Errorf("core_question is missing or empty")
	}
	if len(gc.Answers) == 0 {
		return nil, fmt.Errorf("answers array is missing")
	}
	if len(gc.HistoricalFacts) != 3 {
		return nil, fmt.Errorf("historical_facts must contain exactly 3 entries, got %d", len(gc.HistoricalFacts))
	}
	if len(gc.FunFacts) != 3 {
		return nil, fmt.Errorf("fun_facts must contain exactly 3 entries, got %d", len(gc.FunFacts))
	}
	for i, f := range gc.HistoricalFacts {
		if strings.TrimSpace(f.Fact) == "" || strings.TrimSpace(f.Source) == "" {
			return nil, fmt.Errorf("historical_facts[%d] needs a non-empty fact and source", i)
		}
	}
	for i, f := range gc.FunFacts {
		if strings.TrimSpace(f.Fact) == "" {
			return nil, fmt.Errorf("fun_facts[%d] has an empty fact", i)
		}
	}

	if err := ValidateGameAnswers(gc.Answers); err != nil {
		return nil, err
	}
	return &gc, nil
}

// ValidateGameAnswers checks the structural invariants of a game's answer
// list: exactly 200 entries whose ranks are a permutation of 1..200, with
// pairwise-distinct answers under case- and whitespace-insensitive
// comparison and no empty answer text. It is usable on its own, outside the
// full-document parse.
func ValidateGameAnswers(answers []models.RankedAnswer) error {
	if len(answers) != models.AnswerListSize {
		return fmt.Errorf("expected exactly 200 answers, got %d", len(answers))
	}

	seenRanks := make(map[int]bool, len(answers))
	seenAnswers := make(map[string]bool, len(answers))
	for i, a := range answers {
		if strings.TrimSpace(a.Answer) == "" {
			return fmt.Errorf("answer at index %d is empty", i)
		}
		if a.Rank < 1 || a.Rank > models.AnswerListSize {
			return fmt.Errorf("rank %d is outside the valid range 1-200", a.Rank)
		}
		if seenRanks[a.Rank] {
			return fmt.Errorf("duplicate rank value %d", a.Rank)
		}
		seenRanks[a.Rank] = true

		key := foldAnswer(a.Answer)
		if seenAnswers[key] {
			return fmt.Errorf("duplicate answer %q", strings.TrimSpace(a.Answer))
		}
		seenAnswers[key] = true
	}
	return nil
}

// foldAnswer collapses an answer to its comparison key: trimmed, lowercased,
// internal whitespace runs reduced to single spaces.
func foldAnswer(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
