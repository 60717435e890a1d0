package astro

import (
	"math"
	"time"
)

// Date is a civil calendar date interpreted at UTC. The engine anchors all
// solar computations at UTC midnight of this date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf extracts the UTC calendar date of an instant.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns UTC midnight of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DayOfYear returns the 1-based ordinal day of the year.
func (d Date) DayOfYear() int {
	return d.Time().YearDay()
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// JulianDay converts a civil date plus decimal UTC hours to a Julian day
// using the standard civil-to-JD reduction (Meeus ch. 7).
func JulianDay(year, month, day int, hours float64) float64 {
	y := year
	m := month
	if m <= 2 {
		y--
		m += 12
	}

	a := y / 100
	b := 2 - a + a/4

	return math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + float64(b) - 1524.5 +
		hours/24
}

// JulianDayOf returns the Julian day at UTC midnight of the date.
func JulianDayOf(d Date) float64 {
	return JulianDay(d.Year, int(d.Month), d.Day, 0)
}

// JulianCentury returns Julian centuries since the J2000.0 epoch.
func JulianCentury(jd float64) float64 {
	return (jd - 2451545.0) / 36525
}
