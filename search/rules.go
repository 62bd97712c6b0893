package search

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidQuery is returned when the query does not compile as a pattern.
var ErrInvalidQuery = errors.New("invalid query")

// Rule is one row of the ranking table. Pattern builds an anchored RE2
// expression around the (already grouped) query.
type Rule struct {
	Name    string
	Points  int
	Pattern func(q string) string
}

// Delimiters that bound a whole token.
const tokenDelims = `[ |.,;:]`

// DefaultRules returns the ranking table. Rules are additive and each fires at
// most once per field.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "exact",
			Points:  200,
			Pattern: func(q string) string { return `^` + q + `$` },
		},
		{
			// query is one whole |-delimited synonym
			Name:    "synonym",
			Points:  200,
			Pattern: func(q string) string { return `^(?:.*\|)?` + q + `(?:\||$)` },
		},
		{
			Name:    "token",
			Points:  10,
			Pattern: func(q string) string { return `^(?:.*` + tokenDelims + `)?` + q + `(?:` + tokenDelims + `|$)` },
		},
		{
			// query starts a synonym, which then runs without spaces to | or end
			Name:    "prefix",
			Points:  8,
			Pattern: func(q string) string { return `^(?:.*\|)?` + q + `[^ ]*(?:\||$)` },
		},
		{
			Name:    "right",
			Points:  2,
			Pattern: func(q string) string { return `^(?:.*[ |])?` + q },
		},
		{
			Name:    "left",
			Points:  2,
			Pattern: func(q string) string { return q + `(?:$|` + tokenDelims + `)` },
		},
		{
			Name:    "contains",
			Points:  1,
			Pattern: func(q string) string { return q },
		},
	}
}

type compiledRule struct {
	name   string
	points int
	re     *regexp.Regexp
}

// matcher holds the compiled rules for one query. It is built per call and
// never shared.
type matcher struct {
	contains *regexp.Regexp
	rules    []compiledRule
}

func compile(query string, caseSensitive bool, rules []Rule) (*matcher, error) {
	flags := ""
	if !caseSensitive {
		flags = "(?i)"
	}
	grouped := "(?:" + query + ")"

	contains, err := regexp.Compile(flags + grouped)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	m := &matcher{contains: contains, rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		re, err := regexp.Compile(flags + r.Pattern(grouped))
		if err != nil {
			return nil, fmt.Errorf("%w: rule %s: %v", ErrInvalidQuery, r.Name, err)
		}
		m.rules = append(m.rules, compiledRule{name: r.Name, points: r.Points, re: re})
	}
	return m, nil
}

// score sums the points of every rule that matches value.
func (m *matcher) score(value string) int {
	total := 0
	for _, r := range m.rules {
		if r.re.MatchString(value) {
			total += r.points
		}
	}
	return total
}

// Rank scores a single value against query with the default rules.
func Rank(value, query string, caseSensitive bool) (int, error) {
	m, err := compile(query, caseSensitive, DefaultRules())
	if err != nil {
		return 0, err
	}
	return m.score(value), nil
}
