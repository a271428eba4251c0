package dictionary

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	DefaultMinTokenLen = 2
	DefaultMaxTokenLen = 15
)

// Tokenizer splits text into the same tokens the training corpus was
// built from: maximal runs of word characters other than decimal digits.
// Combining marks and decimal digits break a token. Tokens are optionally
// lowercased and stripped of accents, filtered by rune length. Tokens
// starting with an underscore are markup leftovers and are dropped.
type Tokenizer struct {
	MinLen   int
	MaxLen   int
	Lower    bool
	Deaccent bool
}

func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		MinLen: DefaultMinTokenLen,
		MaxLen: DefaultMaxTokenLen,
		Lower:  true,
	}
}

func (t *Tokenizer) Tokenize(text string) []string {
	if t.Lower {
		text = strings.ToLower(text)
	}
	if t.Deaccent {
		text = deaccent(text)
	}

	var tokens []string
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		tok := text[start:end]
		start = -1
		if strings.HasPrefix(tok, "_") {
			return
		}
		if n := utf8.RuneCountInString(tok); n < t.MinLen || n > t.MaxLen {
			return
		}
		tokens = append(tokens, tok)
	}

	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(text))
	return tokens
}

// letters, underscore and numerics that are not decimal digits, such
// as superscripts and vulgar fractions
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || (unicode.IsNumber(r) && !unicode.IsDigit(r))
}

func deaccent(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
