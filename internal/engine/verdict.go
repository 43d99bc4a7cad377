// internal/engine/verdict.go
package engine

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/faithplay/hilo/internal/content"
)

// Verdict is the coerced form of an arbiter response before clamping.
type Verdict struct {
	Valid  bool
	Rank   *float64
	Reason string
}

// ParseVerdict parses a raw arbiter response. The model may wrap its output
// in a fenced code block and is not trusted to emit clean types, so fields
// are coerced: valid to boolean, rank to a number or nil, reason to a string.
// Anything unparsable yields {Valid:false, Rank:nil, Reason:"parse error"}
// rather than an error.
func ParseVerdict(raw string) Verdict {
	payload := content.StripCodeFence(raw)

	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return Verdict{Valid: false, Reason: "parse error"}
	}

	v := Verdict{}
	switch val := fields["valid"].(type) {
	case bool:
		v.Valid = val
	case string:
		v.Valid = strings.EqualFold(strings.TrimSpace(val), "true")
	case float64:
		v.Valid = val != 0
	}

	switch r := fields["rank"].(type) {
	case float64:
		v.Rank = &r
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(r), 64); err == nil {
			v.Rank = &f
		}
	}

	if reason, ok := fields["reason"].(string); ok {
		v.Reason = reason
	}
	return v
}
