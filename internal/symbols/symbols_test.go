package symbols

import (
	"strings"
	"testing"
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var noOverrides = models.CalendarOverrides{}

func TestTokenize(t *testing.T) {
	tests := []struct {
		raw  string
		want []Token
	}{
		{"", []Token{}},
		{"DS", []Token{Workdays, SchoolDays}},
		{"~WEx", []Token{TwoLines, Express}},
		{"7G", []Token{MarketSundays}},
		{"77G", []Token{Sundays, MarketSundays}},
		{"źe", []Token{NotMay3rd2025, NotSummer}},
		{"S, D", []Token{SchoolDays, Workdays}},
		{"~", []Token{"~"}},
		{"EXx", []Token{"E", "X", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.raw))
		})
	}
}

func TestEvaluate_NoTokens(t *testing.T) {
	assert.False(t, Evaluate(nil, date(2026, time.December, 25), noOverrides).Hidden)
}

func TestEvaluate_DAndSOnBreakSaturday(t *testing.T) {
	v := Evaluate(Tokenize("DS"), date(2026, time.July, 4), noOverrides)
	require.True(t, v.Hidden)
	assert.Equal(t, "Symbol D - kurs nie kursuje w weekendy i święta", v.Reason)
}

func TestEvaluate_SchoolDays(t *testing.T) {
	tests := []struct {
		name      string
		day       time.Time
		overrides models.CalendarOverrides
		hidden    bool
		reason    string
	}{
		{"school day", date(2026, time.March, 17), noOverrides, false, ""},
		{"forced break", date(2026, time.March, 17), models.CalendarOverrides{ForceBreak: true}, true, "Wymuszony tryb feryjny - kursy szkolne (S) nie kursują"},
		{"forced holiday", date(2026, time.March, 17), models.CalendarOverrides{ForceHoliday: true}, true, "Wymuszony tryb świąteczny - kursy szkolne (S) nie kursują"},
		{"both forced", date(2026, time.March, 17), models.CalendarOverrides{ForceHoliday: true, ForceBreak: true}, true, "Wymuszony tryb feryjny - kursy szkolne (S) nie kursują"},
		{"named holiday", date(2026, time.November, 11), noOverrides, true, "Święto: Narodowe Święto Niepodległości - kursy szkolne (S) nie kursują"},
		{"saturday", date(2026, time.March, 14), noOverrides, true, "Weekend - kursy szkolne (S) nie kursują"},
		{"sunday", date(2026, time.March, 15), noOverrides, true, "Weekend - kursy szkolne (S) nie kursują"},
		{"winter break", date(2026, time.January, 21), noOverrides, true, "Ferie zimowe (woj. mazowieckie) - kursy szkolne (S) nie kursują"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Evaluate([]Token{SchoolDays}, tt.day, tt.overrides)
			assert.Equal(t, tt.hidden, v.Hidden)
			assert.Equal(t, tt.reason, v.Reason)
		})
	}
}

func TestEvaluate_WeekendsOnlyIgnoredWithDOrS(t *testing.T) {
	tuesday := date(2026, time.March, 17)

	assert.True(t, Evaluate(Tokenize("C"), tuesday, noOverrides).Hidden)
	assert.False(t, Evaluate(Tokenize("C"), tuesday, models.CalendarOverrides{ForceHoliday: true}).Hidden)
	assert.False(t, Evaluate(Tokenize("CS"), tuesday, noOverrides).Hidden)
	assert.False(t, Evaluate(Tokenize("C"), date(2026, time.March, 14), noOverrides).Hidden)
}

func TestEvaluate_BreaksOnly(t *testing.T) {
	assert.True(t, Evaluate(Tokenize("M"), date(2026, time.March, 17), noOverrides).Hidden)
	assert.False(t, Evaluate(Tokenize("M"), date(2026, time.July, 1), noOverrides).Hidden)
	assert.False(t, Evaluate(Tokenize("M"), date(2026, time.March, 17), models.CalendarOverrides{ForceBreak: true}).Hidden)
}

func TestEvaluate_SaturdaysAndSundays(t *testing.T) {
	assert.True(t, Evaluate(Tokenize("6"), date(2026, time.March, 17), noOverrides).Hidden)
	assert.False(t, Evaluate(Tokenize("6"), date(2026, time.March, 14), noOverrides).Hidden)
	// 6 is not checked alongside D.
	assert.False(t, Evaluate(Tokenize("6D"), date(2026, time.March, 17), noOverrides).Hidden)

	assert.True(t, Evaluate(Tokenize("7G"), date(2026, time.March, 14), noOverrides).Hidden)
	assert.False(t, Evaluate(Tokenize("7G"), date(2026, time.March, 15), noOverrides).Hidden)
	assert.False(t, Evaluate(Tokenize("7"), date(2026, time.March, 15), noOverrides).Hidden)
}

func TestEvaluate_DateExceptions(t *testing.T) {
	tests := []struct {
		symbols string
		day     time.Time
		hidden  bool
	}{
		{"g", date(2026, time.December, 24), true},
		{"g", date(2026, time.December, 23), false},
		{"l", date(2026, time.December, 31), true},
		{"m", date(2026, time.December, 24), true},
		{"m", date(2026, time.December, 31), true},
		{"h", date(2026, time.April, 4), true},
		{"h", date(2026, time.December, 24), true},
		{"h", date(2026, time.April, 5), false},
		{"a", date(2026, time.April, 5), true},
		{"a", date(2026, time.December, 25), true},
		{"a", date(2026, time.April, 6), false},
		{"b", date(2026, time.January, 1), true},
		{"d", date(2026, time.April, 6), true},
		{"d", date(2026, time.December, 26), true},
		{"p", date(2026, time.April, 5), true},
		{"ź", date(2025, time.May, 3), true},
		{"ź", date(2026, time.May, 3), false},
		{"e", date(2026, time.June, 1), true},
		{"e", date(2026, time.August, 31), true},
		{"e", date(2026, time.September, 1), false},
		{"UEx~W", date(2026, time.December, 25), false},
		{"?", date(2026, time.December, 25), false},
	}
	for _, tt := range tests {
		t.Run(tt.symbols+" "+tt.day.Format("2006-01-02"), func(t *testing.T) {
			v := Evaluate(Tokenize(tt.symbols), tt.day, noOverrides)
			assert.Equal(t, tt.hidden, v.Hidden)
			if tt.hidden {
				assert.True(t, strings.HasPrefix(v.Reason, "Symbol "+tt.symbols), v.Reason)
			}
		})
	}
}

func TestEvaluate_NewYearOnly(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		assert.False(t, Evaluate(Tokenize("&"), date(year, time.January, 1), noOverrides).Hidden)
		v := Evaluate(Tokenize("&"), date(year, time.January, 2), noOverrides)
		assert.True(t, v.Hidden)
		assert.Equal(t, "Kurs & kursuje tylko 1 stycznia", v.Reason)
	}
}

func TestEvaluate_NewYearOnlyAfterDayKindVetoes(t *testing.T) {
	newYear := date(2026, time.January, 1) // Thursday, named holiday

	v := Evaluate(Tokenize("&7"), newYear, noOverrides)
	assert.True(t, v.Hidden)
	assert.Equal(t, "Symbol 7/7G - kurs kursuje tylko w niedziele", v.Reason)

	v = Evaluate(Tokenize("&D"), newYear, noOverrides)
	assert.True(t, v.Hidden)
	assert.Equal(t, "Symbol D - kurs nie kursuje w weekendy i święta", v.Reason)

	// & settles the date exceptions: b would otherwise hide 1 January.
	assert.False(t, Evaluate(Tokenize("&b"), newYear, noOverrides).Hidden)
	assert.Equal(t, "Kurs & kursuje tylko 1 stycznia", Evaluate(Tokenize("&g"), date(2026, time.December, 24), noOverrides).Reason)
}

func TestLegend(t *testing.T) {
	legend := Legend("SD", "D~W", "", "Q")

	require.Len(t, legend, 4)
	assert.Equal(t, "D", legend[0].Symbol)
	assert.Equal(t, "kursuje od poniedziałku do piątku oprócz świąt", legend[0].Description)
	assert.Equal(t, "Q", legend[1].Symbol)
	assert.Equal(t, "Q", legend[1].Description)
	assert.Equal(t, "S", legend[2].Symbol)
	assert.Equal(t, "~W", legend[3].Symbol)
}
