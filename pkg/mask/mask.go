// Package mask formats free-form input against positional templates such as
// "(99) 99999-9999".
//
// Pattern syntax:
//
//	9  one decimal digit
//	A  one ASCII letter
//	*  any single character
//
// Every other rune is a literal separator that is always emitted.
package mask

import (
	"strings"
	"unicode/utf8"
)

// Kind identifies a template token.
type Kind uint8

const (
	Literal Kind = iota
	Digit
	Letter
	Any
)

// Pattern placeholders.
const (
	DigitPlaceholder  = '9'
	LetterPlaceholder = 'A'
	AnyPlaceholder    = '*'
)

// Token is a single template position.
type Token struct {
	Kind Kind
	// Rune is the separator for Literal tokens and the placeholder otherwise.
	Rune rune
}

// accepts reports whether r satisfies a placeholder token.
func (t Token) accepts(r rune) bool {
	switch t.Kind {
	case Digit:
		return r >= '0' && r <= '9'
	case Letter:
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	case Any:
		return true
	}
	return false
}

// Template is an immutable sequence of tokens.
type Template struct {
	pattern string
	tokens  []Token
}

// Parse builds a template from pattern syntax.
func Parse(pattern string) Template {
	tokens := make([]Token, 0, utf8.RuneCountInString(pattern))
	for _, r := range pattern {
		switch r {
		case DigitPlaceholder:
			tokens = append(tokens, Token{Kind: Digit, Rune: r})
		case LetterPlaceholder:
			tokens = append(tokens, Token{Kind: Letter, Rune: r})
		case AnyPlaceholder:
			tokens = append(tokens, Token{Kind: Any, Rune: r})
		default:
			tokens = append(tokens, Token{Kind: Literal, Rune: r})
		}
	}
	return Template{pattern: pattern, tokens: tokens}
}

// MustParse is like Parse but panics on an empty pattern.
func MustParse(pattern string) Template {
	if pattern == "" {
		panic("mask: empty pattern")
	}
	return Parse(pattern)
}

// String returns the pattern the template was built from.
func (t Template) String() string { return t.pattern }

// Len returns the number of tokens.
func (t Template) Len() int { return len(t.tokens) }

// Tokens returns a copy of the template tokens.
func (t Template) Tokens() []Token {
	out := make([]Token, len(t.tokens))
	copy(out, t.tokens)
	return out
}

// Apply formats raw against the template.
//
// Literals are always written and swallow an identical input rune, so an
// already formatted value is left unchanged. Input runes that do not fit a
// placeholder are dropped. Formatting stops when the template runs out or
// a placeholder finds no input left.
func (t Template) Apply(raw string) string {
	in := []rune(raw)
	pos := 0

	var b strings.Builder
	b.Grow(len(t.pattern))

	for _, tok := range t.tokens {
		if tok.Kind == Literal {
			b.WriteRune(tok.Rune)
			if pos < len(in) && in[pos] == tok.Rune {
				pos++
			}
			continue
		}

		for pos < len(in) && !tok.accepts(in[pos]) {
			pos++
		}
		if pos >= len(in) {
			break
		}
		b.WriteRune(in[pos])
		pos++
	}

	return b.String()
}

// Apply formats raw against t.
func Apply(raw string, t Template) string {
	return t.Apply(raw)
}

// ApplyTyping formats raw the way a form field shows it while the user
// types. Separators after the last input rune are left off, otherwise a
// backspace would delete a separator only to have it written back. Empty
// input stays empty.
func (t Template) ApplyTyping(raw string) string {
	if raw == "" {
		return ""
	}
	out := []rune(t.Apply(raw))
	for len(out) > 0 && t.tokens[len(out)-1].Kind == Literal {
		out = out[:len(out)-1]
	}
	return string(out)
}
