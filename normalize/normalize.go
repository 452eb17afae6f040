// Package normalize parses raw numeric tokens scraped from PSX pages.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Parenthesised values like (4.74) denote negatives on the portal.
var parenPattern = regexp.MustCompile(`^\(([0-9,.\s]+)\)$`)

// Clean strips commas, whitespace, and percent signs from a numeric token.
// Parenthesised values become minus-prefixed. Returns "" when the token
// carries no value ("", "-", "--").
func Clean(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || text == "-" || text == "--" {
		return ""
	}
	if m := parenPattern.FindStringSubmatch(text); m != nil {
		text = "-" + m[1]
	}
	text = strings.ReplaceAll(text, ",", "")
	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, "%", "")
	return text
}

// Float parses a scraped token into a float. Returns nil rather than an
// error for absent or unparseable values so callers never have to branch.
func Float(text string) *float64 {
	cleaned := Clean(text)
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Int parses a scraped token into an integer, truncating any decimal
// portion after the float parse.
func Int(text string) *int64 {
	f := Float(text)
	if f == nil {
		return nil
	}
	v := int64(*f)
	return &v
}
