package symbols

import (
	"sort"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

var descriptions = map[Token]string{
	NewYearOnly:   "kursuje w dniu 1 stycznia",
	TwoLines:      "połączenie składa się z 2 linii",
	Saturdays:     "kursuje w soboty",
	MarketSundays: "kursuje w niedziele giełdowe",
	NotEasterXmas: "nie kursuje w pierwszy dzień Świąt Wielkanocnych oraz w dniu 25 XII",
	NotNYEaster:   "nie kursuje w dniu 1.I, w pierwszy dzień Świąt Wielkanocnych i w dniu 25 XII",
	WeekendsOnly:  "kursuje w soboty, niedziele i święta",
	Workdays:      "kursuje od poniedziałku do piątku oprócz świąt",
	NotFeastDays:  "nie kursuje w dniu 1.I, w pierwszy i drugi dzień Świąt Wielkanocnych oraz w dniach 25 i 26 XII",
	NotSummer:     "nie kursuje w okresie ferii letnich",
	Express:       "kurs ekspresowy",
	NotXmasEve:    "nie kursuje w dniu 24.XII",
	NotHolySatEve: "nie kursuje w Wielką Sobotę oraz w dniu 24.XII",
	NotNYEve:      "nie kursuje w dniu 31.XII",
	BreaksOnly:    "kurs. od pn. do pt. w okresie ferii letnich i zimowych oraz szkolnych przerw świątecznych oprócz św.",
	NotEves:       "nie kursuje w dniach 24 i 31.XII",
	NotEasterDec:  "nie kursuje w pierwszy dzień Świąt Wielkanocnych oraz 25.XII",
	SchoolDays:    "kursuje w dni nauki szkolnej",
	PublicService: "przewóz o charakterze użyteczności publicznej",
	NotMay3rd2025: "nie kursuje 03.05.2025r.",
}

// Describe returns the printed description of t, or t itself when unknown.
func Describe(t Token) string {
	if d, ok := descriptions[t]; ok {
		return d
	}
	return string(t)
}

// Legend lists each distinct token of the given symbol strings once, sorted.
func Legend(raw ...string) []models.LegendEntry {
	seen := make(map[Token]struct{})
	var tokens []string
	for _, r := range raw {
		for _, t := range Tokenize(r) {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tokens = append(tokens, string(t))
		}
	}
	sort.Strings(tokens)

	out := make([]models.LegendEntry, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, models.LegendEntry{Symbol: t, Description: Describe(Token(t))})
	}
	return out
}
