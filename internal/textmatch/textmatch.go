// Package textmatch normalizes free text into lowercase tokens and answers
// token-bounded phrase queries against it.
package textmatch

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a normalized word together with its byte span in the source text.
type Token struct {
	Value string
	Start int
	End   int
}

// Tokenize splits s into lowercase tokens. Letters, digits, '+' and '#' are
// token characters; '.' and '/' are kept only between two letters or digits
// (so "node.js" and "ci/cd" stay whole while "python." loses its period).
// Everything else, '-' included, separates tokens.
func Tokenize(s string) []Token {
	tokens := make([]Token, 0, len(s)/5)

	var b strings.Builder
	start := -1

	flush := func(end int) {
		if start >= 0 && b.Len() > 0 {
			tokens = append(tokens, Token{Value: b.String(), Start: start, End: end})
		}
		b.Reset()
		start = -1
	}

	for i, r := range s {
		switch {
		case isWordRune(r):
			if start < 0 {
				start = i
			}
			b.WriteRune(unicode.ToLower(r))
		case (r == '.' || r == '/') && start >= 0 && isAlnum(prevRune(s, i)) && isAlnum(nextRune(s, i)):
			b.WriteRune(r)
		default:
			flush(i)
		}
	}
	flush(len(s))

	return tokens
}

// Normalize returns the tokens of s joined by single spaces.
func Normalize(s string) string {
	tokens := Tokenize(s)
	values := make([]string, len(tokens))
	for i, t := range tokens {
		values[i] = t.Value
	}
	return strings.Join(values, " ")
}

// Text is a normalized, read-only view over a piece of free text.
type Text struct {
	padded string
}

// New normalizes s for phrase lookups.
func New(s string) Text {
	n := Normalize(s)
	if n == "" {
		return Text{}
	}
	return Text{padded: " " + n + " "}
}

// Join builds a Text from several fields separated by token boundaries.
func Join(parts ...string) Text {
	return New(strings.Join(parts, " \n "))
}

// Empty reports whether the text had no tokens at all.
func (t Text) Empty() bool { return t.padded == "" }

// String returns the normalized text.
func (t Text) String() string { return strings.TrimSpace(t.padded) }

// Has reports whether phrase occurs in the text on token boundaries.
func (t Text) Has(phrase string) bool {
	p := Normalize(phrase)
	if p == "" || t.padded == "" {
		return false
	}
	return strings.Contains(t.padded, " "+p+" ")
}

func (t Text) hasNormalized(p string) bool {
	if p == "" || t.padded == "" {
		return false
	}
	return strings.Contains(t.padded, " "+p+" ")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#'
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func prevRune(s string, i int) rune {
	if i == 0 {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return r
}

func nextRune(s string, i int) rune {
	_, size := utf8.DecodeRuneInString(s[i:])
	if i+size >= len(s) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s[i+size:])
	return r
}
