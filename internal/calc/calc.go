package calc

import (
	"math"
	"time"

	"github.com/smokyabdulrahman/salat/internal/astro"
	"github.com/smokyabdulrahman/salat/internal/method"
)

// moonsightingRuleLatitude is the absolute latitude at and above which the
// Moonsighting method switches Fajr and Isha to the one-seventh-of-night
// rule outright.
const moonsightingRuleLatitude = 55

// Options selects the calculation convention and its user-level knobs.
// The zero value computes MWL, Standard Asr, NightMiddle fallback.
type Options struct {
	Method      method.ID
	School      method.AsrSchool
	HighLatRule method.HighLatitudeRule
	// Overrides replace individual method parameters before computing.
	Overrides method.Overrides
	// Adjustments are user minute offsets, composed additively on top of
	// the method's built-in adjustments.
	Adjustments method.Adjustments
}

// resolved returns the effective parameter tuple for the options.
func (o Options) resolved() method.Params {
	return o.Method.Params().Apply(o.Overrides)
}

// PrayerTimes are the computed instants for one date and observer, UTC at
// whole-minute precision. Sunset is the raw horizon crossing Maghrib is
// derived from, kept for the night-length derivations and display.
//
// A zero instant means the value could not be computed (polar condition with
// no fallback); the accompanying error says which.
type PrayerTimes struct {
	Date astro.Date

	Fajr    time.Time
	Sunrise time.Time
	Dhuhr   time.Time
	Asr     time.Time
	Sunset  time.Time
	Maghrib time.Time
	Isha    time.Time

	// Warnings are non-fatal diagnostics: applied fallbacks and failed
	// sanity checks. They never alter the times.
	Warnings []Warning
}

// Times computes the prayer times for the civil date (UTC) at the observer
// coordinates.
//
// On PolarUnresolved and Validation errors the returned PrayerTimes is still
// populated with best-effort values (unresolvable instants are zero); on
// InvalidInput it is nil, and so it is on PolarUnresolved when no date within
// the rescue window has both a sunrise and a sunset.
func Times(date astro.Date, coords astro.Coordinates, opts Options) (*PrayerTimes, error) {
	if err := coords.Validate(); err != nil {
		return nil, invalidInput("coordinates", "%v", err)
	}
	if !opts.Method.Valid() {
		return nil, invalidInput("method", "unknown method id %d", int(opts.Method))
	}

	params := opts.resolved()
	if params.FajrAngle <= 0 || params.FajrAngle >= 90 {
		return nil, invalidInput("fajr_angle", "%v° outside (0, 90)", params.FajrAngle)
	}
	if a, ok := params.Isha.Angle(); ok && (a <= 0 || a >= 90) {
		return nil, invalidInput("isha_angle", "%v° outside (0, 90)", a)
	}
	if params.Isha.IsSunset() {
		return nil, invalidInput("isha", "isha requires an angle or an interval")
	}

	day := astro.NewSolarDay(date, coords)

	pt := &PrayerTimes{Date: date}

	// In polar night/day the horizon events have no solution on the date
	// itself; substitute the nearest date on which the sun still rises and
	// sets, keeping the actual date's transit. Beyond the rescue window the
	// calculation is unresolvable.
	solve := day
	if math.IsNaN(day.Sunrise) || math.IsNaN(day.Sunset) {
		rescued := rescueSolarDay(date, coords)
		if rescued == nil {
			return nil, polarUnresolved("sunrise",
				"sun does not cross the horizon at latitude %.4f near %s", coords.Latitude, date)
		}
		solve = rescued
		pt.Warnings = append(pt.Warnings, warnf(WarnFallback,
			"no sunrise/sunset on %s; horizon events taken from %s", date, rescued.Date()))
	}

	nextSolve := astro.NewSolarDay(date.AddDays(1), coords)
	if math.IsNaN(nextSolve.Sunrise) {
		if rescued := rescueSolarDay(date.AddDays(1), coords); rescued != nil {
			nextSolve = rescued
		}
	}

	sunrise, okRise := astro.TimeAtHours(date, solve.Sunrise)
	sunset, okSet := astro.TimeAtHours(date, solve.Sunset)
	dhuhr, okTransit := day.TimeAt(day.Transit)
	nextSunrise, okNext := astro.TimeAtHours(date.AddDays(1), nextSolve.Sunrise)
	if !okRise || !okSet || !okTransit || !okNext {
		return nil, polarUnresolved("sunrise",
			"sun does not cross the horizon at latitude %.4f near %s", coords.Latitude, date)
	}
	night := nextSunrise.Sub(sunset)

	var polarErr *CalculationError
	isMoonsighting := opts.Method == method.Moonsighting

	// Fajr: hour angle below the eastern horizon, bounded by the safe
	// night-fraction (or seasonal) window.
	fajr, okFajr := astro.TimeAtHours(date, solve.HourAngle(-params.FajrAngle, false))
	if isMoonsighting && math.Abs(coords.Latitude) >= moonsightingRuleLatitude {
		fajr, okFajr = sunrise.Add(-night/7), true
	}
	safeFajr, haveSafeFajr := safeFajrBound(isMoonsighting, params, opts.HighLatRule, coords, date, sunrise, night)
	switch {
	case !okFajr && !haveSafeFajr:
		polarErr = polarUnresolved("fajr",
			"sun never reaches %.4g° below the horizon and high latitude rule is None", params.FajrAngle)
		fajr = time.Time{}
	case !okFajr:
		fajr = safeFajr
		pt.Warnings = append(pt.Warnings, warnf(WarnFallback,
			"fajr angle unreachable; applied %s", fallbackName(isMoonsighting, opts.HighLatRule)))
	case haveSafeFajr && fajr.Before(safeFajr):
		fajr = safeFajr
		pt.Warnings = append(pt.Warnings, warnf(WarnFallback,
			"fajr bounded by %s", fallbackName(isMoonsighting, opts.HighLatRule)))
	}

	// Isha: fixed interval from sunset, or hour angle below the western
	// horizon bounded the same way.
	var isha time.Time
	if interval, ok := params.Isha.Interval(); ok {
		isha = sunset.Add(minutesDuration(interval))
	} else {
		angle, _ := params.Isha.Angle()
		t, okIsha := astro.TimeAtHours(date, solve.HourAngle(-angle, true))
		if isMoonsighting && math.Abs(coords.Latitude) >= moonsightingRuleLatitude {
			t, okIsha = sunset.Add(night/7), true
		}
		safeIsha, haveSafeIsha := safeIshaBound(isMoonsighting, params, opts.HighLatRule, coords, date, sunset, night)
		switch {
		case !okIsha && !haveSafeIsha:
			polarErr = polarUnresolved("isha",
				"sun never reaches %.4g° below the horizon and high latitude rule is None", angle)
		case !okIsha:
			t = safeIsha
			pt.Warnings = append(pt.Warnings, warnf(WarnFallback,
				"isha angle unreachable; applied %s", fallbackName(isMoonsighting, opts.HighLatRule)))
			isha = t
		case haveSafeIsha && t.After(safeIsha):
			t = safeIsha
			pt.Warnings = append(pt.Warnings, warnf(WarnFallback,
				"isha bounded by %s", fallbackName(isMoonsighting, opts.HighLatRule)))
			isha = t
		default:
			isha = t
		}
	}

	// Maghrib: sunset, a fixed interval after it, or (Shia methods) a small
	// angle below the western horizon, accepted only between sunset and Isha.
	maghrib := sunset
	if angle, ok := params.Maghrib.Angle(); ok {
		t, okMaghrib := astro.TimeAtHours(date, solve.HourAngle(-angle, true))
		switch {
		case okMaghrib && sunset.Before(t) && (isha.IsZero() || t.Before(isha)):
			maghrib = t
		case !okMaghrib:
			pt.Warnings = append(pt.Warnings, warnf(WarnFallback,
				"maghrib angle unreachable; using sunset"))
		}
	} else if interval, ok := params.Maghrib.Interval(); ok {
		maghrib = sunset.Add(minutesDuration(interval))
	}

	// Asr: shadow-length geometry. Solvable whenever the sun crosses the
	// horizon, which the rescue above guarantees for the solve day.
	asr, _ := astro.TimeAtHours(date, solve.Afternoon(opts.School.ShadowLength()))

	adjust := params.Adjustments.Add(opts.Adjustments)
	pt.Fajr = finalize(fajr, adjust.Fajr)
	pt.Sunrise = finalize(sunrise, adjust.Sunrise)
	pt.Dhuhr = finalize(dhuhr, adjust.Dhuhr)
	pt.Asr = finalize(asr, adjust.Asr)
	pt.Sunset = finalize(sunset, 0)
	pt.Maghrib = finalize(maghrib, adjust.Maghrib)
	pt.Isha = finalize(isha, adjust.Isha)

	vwarns, verr := validateTimes(pt, coords)
	pt.Warnings = append(pt.Warnings, vwarns...)

	if polarErr != nil {
		return pt, polarErr
	}
	if verr != nil {
		return pt, verr
	}
	return pt, nil
}

// rescueWindowDays bounds the search for a substitute day in polar
// conditions. The longest polar night/day at inhabited latitudes ends within
// this window; at the poles themselves nothing is found and the calculation
// fails.
const rescueWindowDays = 66

// rescueSolarDay finds the nearest date, searching outward day by day in
// both directions, on which both sunrise and sunset have solutions. Returns
// nil when the window is exhausted.
func rescueSolarDay(date astro.Date, coords astro.Coordinates) *astro.SolarDay {
	for offset := 1; offset <= rescueWindowDays; offset++ {
		for _, delta := range [2]int{-offset, offset} {
			d := astro.NewSolarDay(date.AddDays(delta), coords)
			if !math.IsNaN(d.Sunrise) && !math.IsNaN(d.Sunset) {
				return d
			}
		}
	}
	return nil
}

// safeFajrBound returns the earliest acceptable Fajr under the fallback
// policy, or ok=false when rule None leaves no bound.
func safeFajrBound(isMoonsighting bool, params method.Params, rule method.HighLatitudeRule,
	coords astro.Coordinates, date astro.Date, sunrise time.Time, night time.Duration) (time.Time, bool) {

	if isMoonsighting {
		return sunrise.Add(-minutesDuration(morningTwilightMinutes(coords.Latitude, date))), true
	}
	portion, ok := nightPortion(rule, params.FajrAngle)
	if !ok {
		return time.Time{}, false
	}
	return sunrise.Add(-nightFraction(night, portion)), true
}

// safeIshaBound returns the latest acceptable Isha under the fallback
// policy, or ok=false when rule None leaves no bound.
func safeIshaBound(isMoonsighting bool, params method.Params, rule method.HighLatitudeRule,
	coords astro.Coordinates, date astro.Date, sunset time.Time, night time.Duration) (time.Time, bool) {

	if isMoonsighting {
		return sunset.Add(minutesDuration(eveningTwilightMinutes(coords.Latitude, date, params.Shafaq))), true
	}
	angle := 0.0
	if a, ok := params.Isha.Angle(); ok {
		angle = a
	}
	portion, ok := nightPortion(rule, angle)
	if !ok {
		return time.Time{}, false
	}
	return sunset.Add(nightFraction(night, portion)), true
}

// nightPortion maps a high latitude rule to the fraction of the night it
// allots to twilight. ok=false for rule None.
func nightPortion(rule method.HighLatitudeRule, angle float64) (float64, bool) {
	switch rule {
	case method.NightMiddle:
		return 1.0 / 2, true
	case method.AngleBased:
		return angle / 60, true
	case method.OneSeventh:
		return 1.0 / 7, true
	}
	return 0, false
}

func nightFraction(night time.Duration, portion float64) time.Duration {
	return time.Duration(float64(night) * portion)
}

func fallbackName(isMoonsighting bool, rule method.HighLatitudeRule) string {
	if isMoonsighting {
		return "Moonsighting seasonal twilight"
	}
	return rule.String() + " rule"
}

// minutesDuration converts fractional minutes to a Duration at second
// resolution.
func minutesDuration(minutes float64) time.Duration {
	return time.Duration(math.Round(minutes*60)) * time.Second
}

// finalize applies a minute adjustment and rounds to the nearest whole
// minute (30 seconds and above round up). Zero times pass through.
func finalize(t time.Time, adjustMinutes float64) time.Time {
	if t.IsZero() {
		return t
	}
	return t.Add(minutesDuration(adjustMinutes)).Round(time.Minute)
}

func roundMinute(t time.Time) time.Time {
	return t.Round(time.Minute)
}
