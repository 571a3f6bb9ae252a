package calendar

import (
	"testing"
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEaster_KnownYears(t *testing.T) {
	cases := map[int]time.Time{
		2000: date(2000, time.April, 23),
		2019: date(2019, time.April, 21),
		2024: date(2024, time.March, 31),
		2025: date(2025, time.April, 20),
		2026: date(2026, time.April, 5),
		2027: date(2027, time.March, 28),
		2038: date(2038, time.April, 25),
	}
	for year, want := range cases {
		assert.Truef(t, SameDay(Easter(year), want), "year %d: expected %s, got %s", year, want.Format(DateLayout), Easter(year).Format(DateLayout))
	}
}

func TestEaster_RelativeHolidaysAcrossYears(t *testing.T) {
	for year := 1900; year <= 2100; year++ {
		e := Easter(year)
		require.Equal(t, time.Sunday, e.Weekday(), "year %d", year)

		monday := e.AddDate(0, 0, 1)
		assert.Equal(t, "Poniedziałek Wielkanocny", IsHoliday(monday).Name, "year %d", year)
		assert.True(t, IsEasterMonday(monday))

		corpus := e.AddDate(0, 0, 60)
		assert.Equal(t, time.Thursday, corpus.Weekday(), "year %d", year)
		assert.Equal(t, "Boże Ciało", IsHoliday(corpus).Name, "year %d", year)

		assert.True(t, IsHolySaturday(e.AddDate(0, 0, -1)))
	}
}

func TestIsHoliday_Easter2026(t *testing.T) {
	easter := IsHoliday(date(2026, time.April, 5))
	assert.Equal(t, models.HolidayInfo{Name: "Wielkanoc", IsHoliday: true}, easter)

	monday := IsHoliday(date(2026, time.April, 6))
	assert.Equal(t, models.HolidayInfo{Name: "Poniedziałek Wielkanocny", IsHoliday: true}, monday)
}

func TestIsHoliday_SundayIsUnnamedHoliday(t *testing.T) {
	info := IsHoliday(date(2026, time.March, 15))
	assert.True(t, info.IsHoliday)
	assert.Empty(t, info.Name)
}

func TestIsHoliday_PlainWeekday(t *testing.T) {
	assert.Equal(t, models.HolidayInfo{}, IsHoliday(date(2026, time.March, 17)))
}

func TestIsHoliday_IgnoresLocationOffset(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)

	// 00:30 in Warsaw is still 10 November in UTC.
	local := time.Date(2026, time.November, 11, 0, 30, 0, 0, loc)
	assert.Equal(t, "Narodowe Święto Niepodległości", IsHoliday(local).Name)
}

func TestHolidays_OrderedAndComplete(t *testing.T) {
	list := Holidays(2026)
	require.Len(t, list, 12)

	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].Date.Before(list[i-1].Date), "holidays out of order at %d", i)
	}

	assert.Equal(t, "Nowy Rok", list[0].Name)
	assert.True(t, list[0].Fixed)
	assert.Equal(t, "Drugi Dzień Bożego Narodzenia", list[len(list)-1].Name)

	for _, h := range list {
		if h.Name == "Boże Ciało" {
			assert.False(t, h.Fixed)
			assert.True(t, SameDay(h.Date, date(2026, time.June, 4)))
		}
	}
}

func TestIsSchoolBreak_Bounds(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want models.BreakInfo
	}{
		{"winter start", date(2026, time.January, 20), models.BreakInfo{IsBreak: true, PeriodName: "Ferie zimowe (woj. mazowieckie)"}},
		{"winter end", date(2026, time.February, 2), models.BreakInfo{IsBreak: true, PeriodName: "Ferie zimowe (woj. mazowieckie)"}},
		{"after winter", date(2026, time.February, 3), models.BreakInfo{}},
		{"before summer", date(2026, time.June, 20), models.BreakInfo{}},
		{"summer start", date(2026, time.June, 21), models.BreakInfo{IsBreak: true, PeriodName: "Wakacje letnie"}},
		{"summer end", date(2026, time.August, 31), models.BreakInfo{IsBreak: true, PeriodName: "Wakacje letnie"}},
		{"september", date(2026, time.September, 1), models.BreakInfo{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSchoolBreak(tt.day))
		})
	}
}

func TestIsSchoolDay_Property(t *testing.T) {
	for d := date(2026, time.January, 1); d.Year() == 2026; d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		want := wd != time.Saturday && wd != time.Sunday && !IsHoliday(d).IsHoliday && !IsSchoolBreak(d).IsBreak
		assert.Equal(t, want, IsSchoolDay(d), d.Format(DateLayout))
	}
}

func TestClassifyDayFilterBucket(t *testing.T) {
	for d := date(2026, time.January, 1); d.Year() == 2026; d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday:
			assert.Equal(t, models.Saturdays, ClassifyDayFilterBucket(d))
		case time.Sunday:
			assert.Equal(t, models.SundaysAndHolidays, ClassifyDayFilterBucket(d))
		}
	}

	// Święto Konstytucji 3 Maja falls on a Saturday in 2025.
	assert.Equal(t, models.Saturdays, ClassifyDayFilterBucket(date(2025, time.May, 3)))
	// Boże Ciało is always a Thursday.
	assert.Equal(t, models.SundaysAndHolidays, ClassifyDayFilterBucket(date(2026, time.June, 4)))
	assert.Equal(t, models.Workdays, ClassifyDayFilterBucket(date(2026, time.June, 3)))
}

func TestClassifyWeekday(t *testing.T) {
	assert.Equal(t, models.HolidayDT, ClassifyWeekday(date(2026, time.January, 6)))
	assert.Equal(t, models.Sunday, ClassifyWeekday(date(2026, time.January, 11)))
	assert.Equal(t, models.Wednesday, ClassifyWeekday(date(2026, time.January, 7)))
}

func TestClassify(t *testing.T) {
	info := Classify(time.Date(2026, time.July, 1, 14, 20, 0, 0, time.UTC))

	assert.True(t, SameDay(info.Date, date(2026, time.July, 1)))
	assert.Equal(t, 0, info.Date.Hour())
	assert.Equal(t, models.Workdays, info.Bucket)
	assert.Equal(t, models.Wednesday, info.DayType)
	assert.False(t, info.SchoolDay)
	assert.Equal(t, "Wakacje letnie", info.Break.PeriodName)
}

func TestParseDate(t *testing.T) {
	loc, err := LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	d, err := ParseDate(" 2026-12-24 ", loc)
	require.NoError(t, err)
	assert.True(t, IsChristmasEve(d))
	assert.Equal(t, loc, d.Location())

	_, err = ParseDate("24.12.2026", loc)
	assert.Error(t, err)
}

func TestLoadLocation_Invalid(t *testing.T) {
	_, err := LoadLocation("Mars/Olympus")
	assert.Error(t, err)
}
