package calc

import (
	"math"

	"github.com/smokyabdulrahman/salat/internal/astro"
	"github.com/smokyabdulrahman/salat/internal/method"
)

// The Moonsighting Committee's seasonal twilight model: instead of a fixed
// depression angle, morning and evening twilight duration is a piecewise
// linear function of the days elapsed since the winter solstice, scaled by
// latitude. Used as the safe Fajr/Isha bound for the Moonsighting method at
// any latitude; at 55° and above the primary rule is one seventh of the
// night, still bounded by this model.

// daysSinceSolstice maps a day of year onto days elapsed since the local
// winter solstice: offset 10 in the northern hemisphere, 172 (173 in leap
// years) in the southern.
func daysSinceSolstice(dayOfYear, year int, latitude float64) int {
	daysInYear := 365
	if astro.IsLeapYear(year) {
		daysInYear = 366
	}

	if latitude >= 0 {
		days := dayOfYear + 10
		if days >= daysInYear {
			days -= daysInYear
		}
		return days
	}

	southernOffset := 172
	if astro.IsLeapYear(year) {
		southernOffset = 173
	}
	days := dayOfYear - southernOffset
	if days < 0 {
		days += daysInYear
	}
	return days
}

// twilightBlend linearly interpolates the four seasonal coefficients across
// the six segments with breakpoints at 91, 137, 183, 229, and 275 days since
// solstice (a -> b -> c -> d -> c -> b -> a). Result is minutes.
func twilightBlend(dyy int, a, b, c, d float64) float64 {
	n := float64(dyy)
	switch {
	case dyy < 91:
		return a + (b-a)/91*n
	case dyy < 137:
		return b + (c-b)/46*(n-91)
	case dyy < 183:
		return c + (d-c)/46*(n-137)
	case dyy < 229:
		return d + (c-d)/46*(n-183)
	case dyy < 275:
		return c + (b-c)/46*(n-229)
	default:
		return b + (a-b)/91*(n-275)
	}
}

// morningTwilightMinutes returns the seasonal morning twilight duration in
// minutes before sunrise for the given latitude and date.
func morningTwilightMinutes(latitude float64, date astro.Date) float64 {
	phi := math.Abs(latitude) / 55
	a := 75 + 28.65*phi
	b := 75 + 19.44*phi
	c := 75 + 32.74*phi
	d := 75 + 48.10*phi

	dyy := daysSinceSolstice(date.DayOfYear(), date.Year, latitude)
	return twilightBlend(dyy, a, b, c, d)
}

// eveningTwilightMinutes returns the seasonal evening twilight duration in
// minutes after sunset for the given latitude, date, and shafaq.
func eveningTwilightMinutes(latitude float64, date astro.Date, shafaq method.Shafaq) float64 {
	phi := math.Abs(latitude) / 55

	var a, b, c, d float64
	switch shafaq {
	case method.ShafaqAhmer:
		a = 62 + 17.40*phi
		b = 62 - 7.16*phi
		c = 62 + 5.12*phi
		d = 62 + 19.44*phi
	default: // Abyad and General share a coefficient set.
		a = 75 + 25.60*phi
		b = 75 + 7.16*phi
		c = 75 + 36.84*phi
		d = 75 + 81.84*phi
	}

	dyy := daysSinceSolstice(date.DayOfYear(), date.Year, latitude)
	return twilightBlend(dyy, a, b, c, d)
}
