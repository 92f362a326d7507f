package utils

import (
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/aa"
)

// Slovak public holidays. Scheme-based bulk applications skip these
// days entirely.
var skHolidays = cal.NewBusinessCalendar()

func fixedHoliday(name string, month time.Month, day int) *cal.Holiday {
	return &cal.Holiday{
		Name:  name,
		Type:  cal.ObservancePublic,
		Month: month,
		Day:   day,
		Func:  cal.CalcDayOfMonth,
	}
}

func init() {
	skHolidays.AddHoliday(
		aa.NewYear,
		aa.Epiphany,
		aa.GoodFriday,
		aa.EasterMonday,
		aa.WorkersDay,
		aa.AssumptionOfMary,
		aa.AllSaintsDay,
		aa.ChristmasDay,
		aa.ChristmasDay2,

		fixedHoliday("Victory over Fascism Day", time.May, 8),
		fixedHoliday("St. Cyril and Methodius Day", time.July, 5),
		fixedHoliday("Slovak National Uprising Anniversary", time.August, 29),
		fixedHoliday("Constitution Day", time.September, 1),
		fixedHoliday("Our Lady of Sorrows", time.September, 15),
		fixedHoliday("Struggle for Freedom and Democracy Day", time.November, 17),
		fixedHoliday("Christmas Eve", time.December, 24),
	)
}

func IsPublicHoliday(t time.Time) bool {
	ok, _, _ := skHolidays.IsHoliday(t)
	return ok
}
