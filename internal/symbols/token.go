// Package symbols implements the printed-timetable footnote notation.
package symbols

import "unicode"

type Token string

const (
	Workdays      Token = "D"
	SchoolDays    Token = "S"
	WeekendsOnly  Token = "C"
	BreaksOnly    Token = "M"
	Saturdays     Token = "6"
	Sundays       Token = "7"
	MarketSundays Token = "7G"
	NewYearOnly   Token = "&"
	NotXmasEve    Token = "g"
	NotNYEve      Token = "l"
	NotEves       Token = "m"
	NotHolySatEve Token = "h"
	NotEasterXmas Token = "a"
	NotNYEaster   Token = "b"
	NotFeastDays  Token = "d"
	NotEasterDec  Token = "p"
	NotMay3rd2025 Token = "ź"
	NotSummer     Token = "e"
	PublicService Token = "U"
	Express       Token = "Ex"
	TwoLines      Token = "~W"
)

var twoCharTokens = map[string]Token{
	string(TwoLines):      TwoLines,
	string(Express):       Express,
	string(MarketSundays): MarketSundays,
}

// Tokenize scans raw left to right, preferring two-character tokens.
// Unknown characters become single-rune tokens; spaces and commas separate.
func Tokenize(raw string) []Token {
	runes := []rune(raw)
	out := make([]Token, 0, len(runes))
	for i := 0; i < len(runes); {
		if unicode.IsSpace(runes[i]) || runes[i] == ',' {
			i++
			continue
		}
		if i+1 < len(runes) {
			if t, ok := twoCharTokens[string(runes[i:i+2])]; ok {
				out = append(out, t)
				i += 2
				continue
			}
		}
		out = append(out, Token(runes[i]))
		i++
	}
	return out
}

type tokenSet map[Token]struct{}

func newTokenSet(tokens []Token) tokenSet {
	s := make(tokenSet, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

func (s tokenSet) has(t Token) bool {
	_, ok := s[t]
	return ok
}

func Contains(tokens []Token, t Token) bool {
	for _, tok := range tokens {
		if tok == t {
			return true
		}
	}
	return false
}
