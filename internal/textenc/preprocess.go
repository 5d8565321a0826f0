// Package textenc turns free-text shape descriptions into the
// fixed-vocabulary bag-of-words features the regression model consumes.
package textenc

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Decimal literals, in order of occurrence.
	numberPattern = regexp.MustCompile(`\d+\.?\d*`)

	// The closed keyword vocabulary of shape and attribute words.
	keywordPattern = regexp.MustCompile(
		`\b(plane|box|cylinder|cone|sphere|ellipsoid|torus|prism|` +
			`wedge|helix|spiral|circle|ellipse|point|line|polygon|radius|` +
			`height|tall|diameter|width|length|units|angle|degrees|radians|` +
			`pitch)\b`,
	)
)

// Preprocess reduces a description to the token stream the vectorizer
// is fitted on: keyword matches in order of occurrence followed by
// numeric literals in order of occurrence. Absence of matches yields an
// empty part; there are no error conditions.
func Preprocess(description string) string {
	keywords := keywordPattern.FindAllString(strings.ToLower(description), -1)
	numbers := numberPattern.FindAllString(description, -1)

	parts := make([]string, 0, len(keywords)+len(numbers))
	parts = append(parts, keywords...)
	for _, lit := range numbers {
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			continue
		}
		parts = append(parts, formatNumber(v))
	}
	return strings.Join(parts, " ")
}

// formatNumber renders a parsed literal the way the training corpus
// stores it: integral values keep a trailing ".0", so "5.00" becomes
// "5.0" rather than "5".
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
