package couplethammer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		content  string
		expected string
		bad      bool
	}{
		{`<@1234> -query "cats"`, "cats", false},
		{`<@!1234> -query "the big dog"`, "the big dog", false},
		{`<@1234> "cats"`, "cats", false},
		{`-query "cats" <@1234>`, "cats", false},
		{`<@1234>`, "", false},
		{`<@1234> <@&5678>`, "", false},
		{"", "", false},
		{`<@1234> -query cats`, "", true},
		{`<@1234> -query "cats" "dogs"`, "", true},
		{`<@1234> -q "cats"`, "", true},
		{`<@1234> -query "  "`, "", true},
		{`<@1234> hello there`, "", true},
		{`<@1234> -query "cats`, "", true},
	}
	for _, tt := range tests {
		query, err := ParseQuery(tt.content)
		if tt.bad {
			assert.True(t, errors.Is(err, ErrBadQuery), tt.content)
			continue
		}
		assert.NoError(t, err, tt.content)
		assert.Equal(t, tt.expected, query, tt.content)
	}
}

func TestSplitIgnoreQuotes(t *testing.T) {
	assert.Equal(t, []string{"-query", "the big dog"}, splitIgnoreQuotes(`-query "the big dog"`))
	assert.Equal(t, []string{"a", "b c", "d"}, splitIgnoreQuotes(`a "b c" d`))
	assert.Equal(t, []string{""}, splitIgnoreQuotes(`""`))
	assert.Nil(t, splitIgnoreQuotes("no quotes"))
	assert.Nil(t, splitIgnoreQuotes(`"one" "two"`))
}

func TestBadQueryHelp(t *testing.T) {
	help := BadQueryHelp("<@42>")
	assert.Contains(t, help, "BAD QUERY")
	assert.Contains(t, help, `<@42> -query "query"`)
}
