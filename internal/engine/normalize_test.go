package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  WiNe  ", "wine"},
		{"", ""},
		{"   ", ""},
		{"Loaves  and\tFishes", "loaves and fishes"},
		{"already normal", "already normal"},
		{"MIXED Case   Words", "mixed case words"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Normalize(c.in), "Normalize(%q)", c.in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"  WiNe  ", "Loaves  and Fishes", "", "x", "  A  B  C  "}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize should be idempotent for %q", in)
	}
}
