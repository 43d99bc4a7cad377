// internal/content/validator_test.go
package content

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faithplay/hilo/internal/models"
)

// makeAnswers builds a valid 200-entry ranked list.
func makeAnswers() []models.RankedAnswer {
	answers := make([]models.RankedAnswer, 0, models.AnswerListSize)
	for i := 1; i <= models.AnswerListSize; i++ {
		answers = append(answers, models.RankedAnswer{
			Answer: fmt.Sprintf("answer %d", i),
			Rank:   i,
		})
	}
	return answers
}

func makeContent() models.GameContent {
	return models.GameContent{
		CoreQuestion:    "Name a food mentioned in the Bible",
		ScriptureVerses: "John 21:9-13",
		HistoricalFacts: []models.Fact{
			{Fact: "Bread was a staple food.", Source: "Easton's Bible Dictionary"},
			{Fact: "Fish was widely traded in Galilee.", Source: "Josephus, Antiquities"},
			{Fact: "Olives were pressed for oil.", Source: "Smith's Bible Dictionary"},
		},
		FunFacts: []models.Fact{
			{Fact: "Figs appear in the very first chapters of Genesis."},
			{Fact: "Honey is mentioned over 60 times."},
			{Fact: "Pomegranates decorated the temple pillars."},
		},
		Answers: makeAnswers(),
	}
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestParseGameContentValid(t *testing.T) {
	raw := mustJSON(t, makeContent())

	gc, err := ParseGameContent(raw)
	require.NoError(t, err)
	assert.Equal(t, "Name a food mentioned in the Bible", gc.CoreQuestion)
	assert.Len(t, gc.Answers, 200)
	assert.Len(t, gc.HistoricalFacts, 3)
	assert.Len(t, gc.FunFacts, 3)
}

func TestParseGameContentFenced(t *testing.T) {
	body := mustJSON(t, makeContent())

	for _, raw := range []string{
		"```json\n" + body + "\n```",
		"```\n" + body + "\n```",
		"  ```json\n" + body + "\n```  ",
	} {
		gc, err := ParseGameContent(raw)
		require.NoError(t, err, "input: %.40q", raw)
		assert.Len(t, gc.Answers, 200)
	}
}

func TestParseGameContentUnparsable(t *testing.T) {
	_, err := ParseGameContent("I'm sorry, I can't produce that list.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse AI response")
}

func TestParseGameContentMissingFields(t *testing.T) {
	base := makeContent()

	t.Run("empty core question", func(t *testing.T) {
		gc := base
		gc.CoreQuestion = "   "
		_, err := ParseGameContent(mustJSON(t, gc))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "core_question")
	})

	t.Run("missing answers", func(t *testing.T) {
		gc := base
		gc.Answers = nil
		_, err := ParseGameContent(mustJSON(t, gc))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "answers")
	})

	t.Run("wrong historical fact count", func(t *testing.T) {
		gc := base
		gc.HistoricalFacts = gc.HistoricalFacts[:2]
		_, err := ParseGameContent(mustJSON(t, gc))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "historical_facts")
	})

	t.Run("wrong fun fact count", func(t *testing.T) {
		gc := base
		gc.FunFacts = append(gc.FunFacts, models.Fact{Fact: "extra"})
		_, err := ParseGameContent(mustJSON(t, gc))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fun_facts")
	})
}

func TestValidateGameAnswersValid(t *testing.T) {
	require.NoError(t, ValidateGameAnswers(makeAnswers()))
}

func TestValidateGameAnswersCount(t *testing.T) {
	answers := makeAnswers()[:199]
	err := ValidateGameAnswers(answers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "200")

	err = ValidateGameAnswers(append(makeAnswers(), models.RankedAnswer{Answer: "extra", Rank: 201}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "200")
}

func TestValidateGameAnswersDuplicateRank(t *testing.T) {
	answers := makeAnswers()
	answers[10].Rank = answers[20].Rank
	err := ValidateGameAnswers(answers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rank")
}

func TestValidateGameAnswersDuplicateAnswer(t *testing.T) {
	answers := makeAnswers()
	// Differ only in case and spacing; still a duplicate.
	answers[5].Answer = "  ANSWER   7 "
	err := ValidateGameAnswers(answers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestValidateGameAnswersRankRange(t *testing.T) {
	for _, bad := range []int{0, 201, -5} {
		answers := makeAnswers()
		answers[0].Rank = bad
		err := ValidateGameAnswers(answers)
		require.Error(t, err, "rank %d should be rejected", bad)
		assert.Contains(t, err.Error(), "rank")
	}
}

func TestValidateGameAnswersEmptyAnswer(t *testing.T) {
	answers := makeAnswers()
	answers[42].Answer = "   "
	err := ValidateGameAnswers(answers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripCodeFence(`{"a":1}`))
	assert.Equal(t, "plain text", StripCodeFence("  plain text  "))
}
