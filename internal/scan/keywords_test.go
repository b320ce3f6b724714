package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordsBaseTokens(t *testing.T) {
	set := Keywords("Democrats take back the House?")

	assert.True(t, set.Contains("democrats"))
	assert.True(t, set.Contains("take"))
	assert.True(t, set.Contains("back"))
	assert.True(t, set.Contains("the"))
	assert.True(t, set.Contains("house"))
	// Question mark is stripped, not kept as a token.
	assert.False(t, set.Contains("house?"))
}

func TestKeywordsDropsShortTokens(t *testing.T) {
	set := Keywords("GOP up in PA by 2")

	assert.False(t, set.Contains("up"), "len<=2 tokens are dropped")
	assert.False(t, set.Contains("in"))
	assert.False(t, set.Contains("pa"))
	assert.True(t, set.Contains("gop"))
}

func TestKeywordsPunctuationBecomesSpace(t *testing.T) {
	set := Keywords("Trump-vs-Harris: swing-state blowout")

	assert.True(t, set.Contains("swing"))
	assert.True(t, set.Contains("state"))
	assert.True(t, set.Contains("blowout"))
	assert.False(t, set.Contains("swing-state"))
}

func TestKeywordsCompoundMarkers(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		token string
	}{
		{"presidential normalizes to president", "2024 Presidential Election", "president"},
		{"president kept as-is", "Next president of France", "president"},
		{"win yields winner", "Who wins Michigan?", "winner"},
		{"winner yields winner", "Election winner announced", "winner"},
		{"candidate surname", "Will Trump carry Ohio?", "trump"},
		{"year literal", "Balanced budget by 2025?", "2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Keywords(tt.text).Contains(tt.token))
		})
	}
}

func TestKeywordsEmptyText(t *testing.T) {
	assert.Empty(t, Keywords(""))
	assert.Empty(t, Keywords("  \t "))
}

func TestKeywordsDeterministic(t *testing.T) {
	const text = "Trump wins the 2024 presidential election"
	first := Keywords(text)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Keywords(text))
	}
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Trump Wins PA?", "trump wins pa"},
		{"  Fed   cuts -- rates  ", "fed cuts rates"},
		{"U.S. Senate", "us senate"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalKey(tt.in), "input %q", tt.in)
	}
}
