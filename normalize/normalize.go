// Package normalize provides the field normalizers shared by extraction rules.
//
// Every function is total: degenerate input yields an empty string, never an
// error. Callers decide whether an empty value is acceptable.
package normalize

import "strings"

// CollapseSpace trims s and collapses every run of whitespace to one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripQuotes removes one pair of surrounding single or double quotes.
func StripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '\'' || first == '"') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Tokens splits s on whitespace.
func Tokens(s string) []string {
	return strings.Fields(s)
}

// TailOrJoin returns the third token when s splits into exactly three tokens
// (the "Warmmiete: 650 €" label pattern) and all tokens joined by a single
// space otherwise.
func TailOrJoin(s string) string {
	tokens := strings.Fields(s)
	if len(tokens) == 3 {
		return tokens[2]
	}
	return strings.Join(tokens, " ")
}

// FirstLineOrJoin trims s and splits it into lines. Exactly two lines yield
// the first line; any other count yields JoinLines.
func FirstLineOrJoin(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 2 {
		return strings.TrimSpace(lines[0])
	}
	return JoinLines(lines...)
}

// JoinLines trims each line, drops blank ones, and joins the rest with spaces.
func JoinLines(lines ...string) string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, " ")
}

var euro = strings.NewReplacer("&euro;", "€", "&euro", "€", "&#8364;", "€")

// Euro replaces HTML-escaped euro signs with the literal symbol.
func Euro(s string) string {
	return euro.Replace(s)
}

// FirstToken returns the first whitespace-separated token of s, or "".
// Used to pull the numeric prefix out of values like "650,00 €".
func FirstToken(s string) string {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// FirstTokens joins at most n leading tokens of s.
func FirstTokens(s string, n int) string {
	tokens := strings.Fields(s)
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	return strings.Join(tokens, " ")
}
