// internal/models/content.go
package models

// AnswerListSize is the fixed number of ranked answers every game carries.
const AnswerListSize = 200

// RankedAnswer is a single entry in a game's fixed answer list. Rank 1 is the
// most common answer to the core question; rank 200 is the most obscure.
type RankedAnswer struct {
	Answer string `json:"answer"`
	Rank   int    `json:"rank"`
}

// Fact is one narrative item shown to players between rounds. Source is only
// populated for historical facts.
type Fact struct {
	Fact   string `json:"fact"`
	Source string `json:"source,omitempty"`
}

// GameContent is the immutable body of one game: the core question, its
// supporting narrative content, and the 200-item ranked answer list. It is
// produced by the content generator and only persisted after passing the
// content validator.
type GameContent struct {
	CoreQuestion    string         `json:"core_question"`
	ScriptureVerses string         `json:"scripture_verses"`
	HistoricalFacts []Fact         `json:"historical_facts"`
	FunFacts        []Fact         `json:"fun_facts"`
	Answers         []RankedAnswer `json:"answers"`
}
