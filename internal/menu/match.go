package menu

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Matcher decides whether a row matches the filter query.
type Matcher interface {
	Match(query, target string) bool
}

// Matcher names accepted by MatcherByName.
const (
	MatchSubstring = "substring"
	MatchFuzzy     = "fuzzy"
)

// SubstringMatcher matches when every word of the query appears in the
// target, ignoring case.
type SubstringMatcher struct{}

func (SubstringMatcher) Match(query, target string) bool {
	target = strings.ToLower(target)
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if !strings.Contains(target, word) {
			return false
		}
	}
	return true
}

// FuzzyMatcher matches when the query characters appear in order in the target.
type FuzzyMatcher struct{}

func (FuzzyMatcher) Match(query, target string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return len(fuzzy.Find(query, []string{target})) > 0
}

// MatcherByName returns the matcher registered under name.
func MatcherByName(name string) (Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", MatchSubstring:
		return SubstringMatcher{}, nil
	case MatchFuzzy:
		return FuzzyMatcher{}, nil
	default:
		return nil, fmt.Errorf("unknown matcher %q (expected %s|%s)", name, MatchSubstring, MatchFuzzy)
	}
}
