package dateutil

import (
	"time"
)

// Age calculates the age in whole years at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// AddYears adds a specified number of years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}

// CalendarYearAfter returns the calendar year that is years after date.
func CalendarYearAfter(date time.Time, years int) int {
	return AddYears(date, years).Year()
}

// AcademicYearStart returns August 1st of the calendar year in which a
// student turns targetAge, the conventional start of the first college term.
func AcademicYearStart(birthDate time.Time, targetAge int) time.Time {
	return time.Date(birthDate.Year()+targetAge, time.August, 1, 0, 0, 0, 0, birthDate.Location())
}
