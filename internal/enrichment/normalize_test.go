package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "diacritics", input: "Pokémon Red", want: "pokemon red"},
		{name: "punctuation", input: "Halo: Combat Evolved!", want: "halo combat evolved"},
		{name: "whitespace", input: "  The   Last\tof\nUs  ", want: "the last of us"},
		{name: "apostrophe", input: "Assassin's Creed", want: "assassin s creed"},
		{name: "underscore kept", input: "snake_case", want: "snake_case"},
		{name: "digits kept", input: "FIFA 23", want: "fifa 23"},
		{name: "only punctuation", input: "!!! ...", want: ""},
		{name: "empty", input: "", want: ""},
		{name: "non latin letters kept", input: "ファイナル", want: "ファイナル"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_CaseAndAccentInsensitive(t *testing.T) {
	assert.Equal(t, Normalize("pokemon red"), Normalize("Pokémon Red"))
	assert.Equal(t, Normalize("Ōkami"), Normalize("okami"))
}

func TestStripParenthetical(t *testing.T) {
	assert.Equal(t, "Doom", StripParenthetical("Doom (2016 video game)"))
	assert.Equal(t, "Halo 3", StripParenthetical("Halo (series) 3"))
	assert.Equal(t, "Portal", StripParenthetical("Portal"))
}

func TestPropertyNormalizeIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.StringMatching(`[A-Za-zÀ-ÿ0-9 :'!.,\-()\t]{0,40}`).Draw(t, "input")
		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q -> %q", input, once, twice)
		}
	})
}

func TestPropertyNormalizeHasNoEdgeOrDoubleSpaces(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.StringMatching(`[a-zA-Z0-9 \-_:]{0,30}`).Draw(t, "input")
		got := Normalize(input)
		if got == "" {
			return
		}
		if got[0] == ' ' || got[len(got)-1] == ' ' {
			t.Fatalf("Normalize(%q) = %q has edge whitespace", input, got)
		}
		for i := 1; i < len(got); i++ {
			if got[i] == ' ' && got[i-1] == ' ' {
				t.Fatalf("Normalize(%q) = %q has a double space", input, got)
			}
		}
	})
}
