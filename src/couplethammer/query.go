package couplethammer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrBadQuery = errors.New("bad query")

var mentionRegex = regexp.MustCompile(`<@[!&]?\d+>`)

// ParseQuery extracts the search phrase from a request. Requests look like
// `@CoupletHammer -query "some words"`; the `-query` flag may be left out. A request
// with nothing but mentions has no query and returns "" with a nil error.
func ParseQuery(content string) (string, error) {
	content = strings.TrimSpace(mentionRegex.ReplaceAllString(content, ""))
	if content == "" {
		return "", nil
	}
	parts := splitIgnoreQuotes(content)
	if parts == nil {
		return "", fmt.Errorf("%w: the query must be in quotes", ErrBadQuery)
	}
	switch {
	case len(parts) == 1:
		if query := strings.TrimSpace(parts[0]); query != "" {
			return query, nil
		}
	case len(parts) == 2 && parts[0] == "-query":
		if query := strings.TrimSpace(parts[1]); query != "" {
			return query, nil
		}
	}
	return "", fmt.Errorf("%w: could not understand %q", ErrBadQuery, content)
}

// splitIgnoreQuotes splits on spaces, except that a double-quoted section is kept as
// one item. It returns nil when text does not contain exactly one quoted section.
func splitIgnoreQuotes(text string) []string {
	parts := strings.Split(text, `"`)
	if len(parts) != 3 {
		return nil
	}
	result := strings.Fields(parts[0])
	result = append(result, parts[1])
	return append(result, strings.Fields(parts[2])...)
}

// BadQueryHelp explains the request format to a user.
func BadQueryHelp(botMention string) string {
	return fmt.Sprintf("BAD QUERY - request must be in the format:\n%s -query \"query\", where \"query\" must be in quotes", botMention)
}
