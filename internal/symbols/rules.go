package symbols

import (
	"fmt"
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/calendar"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

// Verdict is the outcome of the rule table for one entry on one date.
type Verdict struct {
	Hidden bool
	Reason string
}

var shown = Verdict{}

func hide(reason string) Verdict {
	return Verdict{Hidden: true, Reason: reason}
}

// day holds the calendar facts every rule reads.
type day struct {
	date         time.Time
	holiday      models.HolidayInfo
	saturday     bool
	sunday       bool
	anyHoliday   bool
	brk          models.BreakInfo
	forceHoliday bool
	forceBreak   bool
}

func newDay(date time.Time, o models.CalendarOverrides) day {
	wd := date.Weekday()
	h := calendar.IsHoliday(date)
	return day{
		date:         date,
		holiday:      h,
		saturday:     wd == time.Saturday,
		sunday:       wd == time.Sunday,
		anyHoliday:   h.IsHoliday,
		brk:          calendar.IsSchoolBreak(date),
		forceHoliday: o.ForceHoliday,
		forceBreak:   o.ForceBreak,
	}
}

type rule struct {
	tokens  []Token
	enabled func(s tokenSet) bool
	check   func(d day) Verdict
	// decisive rules settle the verdict either way; later rules are not consulted.
	decisive bool
}

func always(tokenSet) bool { return true }

var rules = []rule{
	{tokens: []Token{Workdays}, enabled: always, check: func(d day) Verdict {
		if d.saturday || d.sunday || d.anyHoliday {
			return hide("Symbol D - kurs nie kursuje w weekendy i święta")
		}
		return shown
	}},
	{tokens: []Token{SchoolDays}, enabled: always, check: checkSchoolDays},
	{tokens: []Token{WeekendsOnly}, enabled: func(s tokenSet) bool {
		return !s.has(Workdays) && !s.has(SchoolDays)
	}, check: func(d day) Verdict {
		if !d.saturday && !d.sunday && !d.anyHoliday && !d.forceHoliday {
			return hide("Symbol C - kurs kursuje tylko w weekendy i święta")
		}
		return shown
	}},
	{tokens: []Token{BreaksOnly}, enabled: always, check: func(d day) Verdict {
		if !d.brk.IsBreak && !d.forceBreak {
			return hide("Symbol M - kurs kursuje tylko w okresie ferii i wakacji")
		}
		return shown
	}},
	{tokens: []Token{Saturdays}, enabled: func(s tokenSet) bool {
		return !s.has(Workdays)
	}, check: func(d day) Verdict {
		if !d.saturday {
			return hide("Symbol 6 - kurs kursuje tylko w soboty")
		}
		return shown
	}},
	{tokens: []Token{Sundays, MarketSundays}, enabled: always, check: func(d day) Verdict {
		if !d.sunday {
			return hide("Symbol 7/7G - kurs kursuje tylko w niedziele")
		}
		return shown
	}},
	{tokens: []Token{NewYearOnly}, enabled: always, decisive: true, check: func(d day) Verdict {
		if calendar.IsSpecificDate(d.date, time.January, 1) {
			return shown
		}
		return hide("Kurs & kursuje tylko 1 stycznia")
	}},
	{tokens: []Token{NotXmasEve}, enabled: always, check: func(d day) Verdict {
		if calendar.IsChristmasEve(d.date) {
			return hide("Symbol g - nie kursuje w Wigilię (24.XII)")
		}
		return shown
	}},
	{tokens: []Token{NotNYEve}, enabled: always, check: func(d day) Verdict {
		if calendar.IsNewYearsEve(d.date) {
			return hide("Symbol l - nie kursuje w Sylwestra (31.XII)")
		}
		return shown
	}},
	{tokens: []Token{NotEves}, enabled: always, check: func(d day) Verdict {
		if calendar.IsChristmasEve(d.date) || calendar.IsNewYearsEve(d.date) {
			return hide("Symbol m - nie kursuje 24 i 31.XII")
		}
		return shown
	}},
	{tokens: []Token{NotHolySatEve}, enabled: always, check: func(d day) Verdict {
		if calendar.IsHolySaturday(d.date) || calendar.IsChristmasEve(d.date) {
			return hide("Symbol h - nie kursuje w Wielką Sobotę i Wigilię")
		}
		return shown
	}},
	{tokens: []Token{NotEasterXmas}, enabled: always, check: func(d day) Verdict {
		if calendar.IsEasterSunday(d.date) || calendar.IsSpecificDate(d.date, time.December, 25) {
			return hide("Symbol a - nie kursuje w pierwszy dzień Wielkanocy i 25.XII")
		}
		return shown
	}},
	{tokens: []Token{NotNYEaster}, enabled: always, check: func(d day) Verdict {
		if calendar.IsSpecificDate(d.date, time.January, 1) ||
			calendar.IsEasterSunday(d.date) ||
			calendar.IsSpecificDate(d.date, time.December, 25) {
			return hide("Symbol b - nie kursuje 1.I, pierwszy dzień Wielkanocy i 25.XII")
		}
		return shown
	}},
	{tokens: []Token{NotFeastDays}, enabled: always, check: func(d day) Verdict {
		if calendar.IsSpecificDate(d.date, time.January, 1) ||
			calendar.IsEasterSunday(d.date) ||
			calendar.IsEasterMonday(d.date) ||
			calendar.IsSpecificDate(d.date, time.December, 25) ||
			calendar.IsSpecificDate(d.date, time.December, 26) {
			return hide("Symbol d - nie kursuje 1.I, pierwszy i drugi dzień Wielkanocy, 25 i 26.XII")
		}
		return shown
	}},
	{tokens: []Token{NotEasterDec}, enabled: always, check: func(d day) Verdict {
		if calendar.IsEasterSunday(d.date) || calendar.IsSpecificDate(d.date, time.December, 25) {
			return hide("Symbol p - nie kursuje w pierwszy dzień Wielkanocy i 25.XII")
		}
		return shown
	}},
	{tokens: []Token{NotMay3rd2025}, enabled: always, check: func(d day) Verdict {
		if d.date.Year() == 2025 && calendar.IsSpecificDate(d.date, time.May, 3) {
			return hide("Symbol ź - nie kursuje 3.05.2025")
		}
		return shown
	}},
	{tokens: []Token{NotSummer}, enabled: always, check: func(d day) Verdict {
		if m := d.date.Month(); m >= time.June && m <= time.August {
			return hide("Symbol e - nie kursuje w okresie ferii letnich")
		}
		return shown
	}},
}

func checkSchoolDays(d day) Verdict {
	if d.forceBreak {
		return hide("Wymuszony tryb feryjny - kursy szkolne (S) nie kursują")
	}
	if d.forceHoliday {
		return hide("Wymuszony tryb świąteczny - kursy szkolne (S) nie kursują")
	}
	if calendar.IsSchoolDay(d.date) {
		return shown
	}
	switch {
	case d.holiday.Name != "":
		return hide(fmt.Sprintf("Święto: %s - kursy szkolne (S) nie kursują", d.holiday.Name))
	case d.saturday || d.sunday:
		return hide("Weekend - kursy szkolne (S) nie kursują")
	default:
		return hide(fmt.Sprintf("%s - kursy szkolne (S) nie kursują", d.brk.PeriodName))
	}
}

// Evaluate runs the rules in table order; the first veto wins.
// The & rule comes after the day-kind vetoes and settles the date-exception rules below it.
func Evaluate(tokens []Token, date time.Time, overrides models.CalendarOverrides) Verdict {
	if len(tokens) == 0 {
		return shown
	}
	set := newTokenSet(tokens)
	d := newDay(date, overrides)

	for _, r := range rules {
		if !r.enabled(set) || !hasAny(set, r.tokens) {
			continue
		}
		v := r.check(d)
		if v.Hidden || r.decisive {
			return v
		}
	}
	return shown
}

func hasAny(s tokenSet, tokens []Token) bool {
	for _, t := range tokens {
		if s.has(t) {
			return true
		}
	}
	return false
}
