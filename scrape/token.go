package scrape

import (
	"regexp"
	"strconv"
	"strings"
)

// Token is a classified text fragment: IntToken or TextToken.
type Token interface {
	token()
	String() string
}

// IntToken is a fragment made only of decimal digits.
type IntToken struct {
	Value int64
}

// TextToken is any other fragment, kept verbatim.
type TextToken struct {
	Text string
}

func (IntToken) token()  {}
func (TextToken) token() {}

func (t IntToken) String() string  { return strconv.FormatInt(t.Value, 10) }
func (t TextToken) String() string { return t.Text }

var (
	spaceRuns     = regexp.MustCompile(` {2,}`)
	groupedNumber = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)
	digitsOnly    = regexp.MustCompile(`^\d+$`)
	nonDigits     = regexp.MustCompile(`[^0-9]`)
)

// Tokenize splits raw element text into fragments: tabs are stripped, runs of
// two or more spaces removed, the rest split on newlines and empty fragments
// dropped.
func Tokenize(raw string) []string {
	s := strings.ReplaceAll(raw, "\t", "")
	s = spaceRuns.ReplaceAllString(s, "")
	var out []string
	for _, frag := range strings.Split(s, "\n") {
		if frag != "" {
			out = append(out, frag)
		}
	}
	return out
}

// Classify tags a fragment. Only all-digit fragments that fit an int64 become
// IntTokens; everything else, including the empty string, is text.
func Classify(fragment string) Token {
	if digitsOnly.MatchString(fragment) {
		if v, err := strconv.ParseInt(fragment, 10, 64); err == nil {
			return IntToken{Value: v}
		}
	}
	return TextToken{Text: fragment}
}

// Tokens is Tokenize followed by Classify.
func Tokens(raw string) []Token {
	frags := Tokenize(raw)
	toks := make([]Token, 0, len(frags))
	for _, f := range frags {
		toks = append(toks, Classify(f))
	}
	return toks
}

// tokenQuantity reads a count from a token. Dot-grouped thousands ("1.234")
// are accepted since counts above 999 render that way.
func tokenQuantity(t Token) (int64, bool) {
	switch t := t.(type) {
	case IntToken:
		return t.Value, true
	case TextToken:
		s := strings.TrimSpace(t.Text)
		if groupedNumber.MatchString(s) {
			v, err := strconv.ParseInt(strings.ReplaceAll(s, ".", ""), 10, 64)
			return v, err == nil
		}
	}
	return 0, false
}

// quantity parses a displayed amount: surrounding space ignored, thousands
// dots removed. A leading minus yields ErrNegativeQuantity.
func quantity(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ".", ""))
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if !digitsOnly.MatchString(s) {
		return 0, ErrNotNumeric
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrNotNumeric
	}
	if neg && v != 0 {
		return 0, ErrNegativeQuantity
	}
	return v, nil
}
