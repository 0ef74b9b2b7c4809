// Package token defines the mask token registry: the mapping from a single
// mask-pattern symbol to the predicate deciding which input characters may
// fill a slot governed by that symbol.
//
// A pattern character that has no registry entry is a literal.
package token

import (
	"cmp"
	"fmt"
	"maps"
	"regexp"
	"slices"
)

// Built-in token symbols. These are part of the public contract and stable.
const (
	Digit        rune = 'N'
	Letter       rune = 'S'
	Alphanumeric rune = 'A'
	Any          rune = 'X'
)

// Predicate reports whether r may fill a slot.
type Predicate func(r rune) bool

// Token is a registry entry.
type Token struct {
	Symbol      rune
	Description string
	Accept      Predicate
}

// Registry maps token symbols to predicates.
//
// Registry is a value type. With and Without return modified copies and never
// touch the receiver, so a registry handed to an engine cannot change under it.
// The zero Registry has no tokens.
type Registry struct {
	tokens map[rune]Token
}

// Default returns a new registry holding the built-in tokens N, S, A and X.
// Each call returns an independent registry.
func Default() Registry {
	return Registry{tokens: map[rune]Token{
		Digit:        {Symbol: Digit, Description: "digit 0-9", Accept: isDigit},
		Letter:       {Symbol: Letter, Description: "ASCII letter a-z, A-Z", Accept: isLetter},
		Alphanumeric: {Symbol: Alphanumeric, Description: "digit or ASCII letter", Accept: isAlphanumeric},
		Any:          {Symbol: Any, Description: "any character", Accept: acceptAll},
	}}
}

// With returns a copy of r where symbol maps to accept.
// An existing entry for symbol is overridden in the copy only.
func (r Registry) With(symbol rune, description string, accept Predicate) Registry {
	next := make(map[rune]Token, len(r.tokens)+1)
	maps.Copy(next, r.tokens)
	next[symbol] = Token{Symbol: symbol, Description: description, Accept: accept}
	return Registry{tokens: next}
}

// Without returns a copy of r with symbol removed, turning it into a literal.
func (r Registry) Without(symbol rune) Registry {
	next := make(map[rune]Token, len(r.tokens))
	maps.Copy(next, r.tokens)
	delete(next, symbol)
	return Registry{tokens: next}
}

// IsToken reports whether symbol is registered.
func (r Registry) IsToken(symbol rune) bool {
	tok, ok := r.tokens[symbol]
	return ok && tok.Accept != nil
}

// Accepts reports whether char may fill a slot governed by symbol.
// Unregistered symbols accept nothing.
func (r Registry) Accepts(symbol, char rune) bool {
	tok, ok := r.tokens[symbol]
	if !ok || tok.Accept == nil {
		return false
	}
	return tok.Accept(char)
}

// Lookup returns the entry for symbol.
func (r Registry) Lookup(symbol rune) (Token, bool) {
	tok, ok := r.tokens[symbol]
	return tok, ok
}

// Len returns the number of registered tokens.
func (r Registry) Len() int {
	return len(r.tokens)
}

// Symbols returns the registered symbols in sorted order.
func (r Registry) Symbols() []rune {
	return slices.Sorted(maps.Keys(r.tokens))
}

// Tokens returns all entries sorted by symbol.
func (r Registry) Tokens() []Token {
	result := slices.Collect(maps.Values(r.tokens))
	slices.SortFunc(result, func(a, b Token) int {
		return cmp.Compare(a.Symbol, b.Symbol)
	})
	return result
}

// FromRegexp compiles expr into a predicate matching a single rune.
// The expression is anchored, so "[0-9a-f]" accepts exactly one hex digit.
func FromRegexp(expr string) (Predicate, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, fmt.Errorf("compile token pattern %q: %w", expr, err)
	}
	return func(r rune) bool {
		return re.MatchString(string(r))
	}, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isAlphanumeric(r rune) bool {
	return isDigit(r) || isLetter(r)
}

func acceptAll(rune) bool {
	return true
}
