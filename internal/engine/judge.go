// internal/engine/judge.go
package engine

import (
	"context"
	"math"

	"github.com/faithplay/hilo/internal/models"
)

// Arbiter is the external free-text evaluator consulted when a player's
// answer has no exact match on the ranked list. Implementations return the
// model's raw response text; parsing it defensively is the judge's job.
type Arbiter interface {
	Judge(ctx context.Context, question, answer string) (string, error)
}

// Judgment is the validated outcome of evaluating one submitted answer
// against a game's ranked list.
type Judgment struct {
	// OnList is true when the answer resolved to one of the game's 200
	// ranked answers, either exactly or via the arbiter.
	OnList bool
	// Rank is the resolved rank, clamped to [1, MaxArbiterRank]. Nil when
	// the answer matched nothing; a rank above 200 means "plausible but not
	// on the list" and never scores.
	Rank *int
	// Reason carries the arbiter's explanation; empty for exact matches.
	Reason string
}

// AnswerJudge resolves normalized player answers against a fixed ranked list,
// falling back to an arbiter consult for non-exact matches.
type AnswerJudge struct {
	arbiter Arbiter
	maxRank int
}

// NewAnswerJudge builds a judge backed by the given arbiter.
func NewAnswerJudge(a Arbiter) *AnswerJudge {
	return &AnswerJudge{arbiter: a, maxRank: MaxArbiterRank}
}

// Evaluate judges a submitted answer. The exact-match fast path is
// deterministic and makes no external call; only misses consult the arbiter.
// Arbiter responses are parsed defensively and any provided rank is clamped,
// so a malformed or wild response degrades to a miss rather than an error.
// The arbiter transport error, if any, is surfaced to the caller.
func (j *AnswerJudge) Evaluate(ctx context.Context, question string, answers []models.RankedAnswer, submitted string) (Judgment, error) {
	norm := Normalize(submitted)
	if norm == "" {
		return Judgment{OnList: false}, nil
	}

	for _, a := range answers {
		if Normalize(a.Answer) == norm {
			rank := a.Rank
			return Judgment{OnList: true, Rank: &rank}, nil
		}
	}

	raw, err := j.arbiter.Judge(ctx, question, norm)
	if err != nil {
		return Judgment{}, err
	}
	verdict := ParseVerdict(raw)
	if !verdict.Valid || verdict.Rank == nil {
		// A rank is never fabricated for an invalid answer.
		return Judgment{OnList: false, Reason: verdict.Reason}, nil
	}

	rank := clampRank(*verdict.Rank, j.maxRank)
	return Judgment{
		OnList: rank >= 1 && rank <= models.AnswerListSize,
		Rank:   &rank,
		Reason: verdict.Reason,
	}, nil
}

// clampRank rounds half away from zero and clamps into [1, max].
func clampRank(v float64, max int) int {
	r := int(math.Round(v))
	if r < 1 {
		return 1
	}
	if r > max {
		return max
	}
	return r
}
