package calc

import (
	"math"
	"time"

	"github.com/smokyabdulrahman/salat/internal/astro"
)

// Latitude bands for the sanity thresholds.
const (
	highLatitude    = 48
	extremeLatitude = 60
)

// Gap and day-length thresholds per band, minutes and hours.
var (
	fajrGapLimits = [3]time.Duration{180 * time.Minute, 240 * time.Minute, 300 * time.Minute}
	ishaGapLimits = [3]time.Duration{240 * time.Minute, 300 * time.Minute, 360 * time.Minute}
)

// latitudeBand returns 0 (moderate), 1 (high), or 2 (extreme).
func latitudeBand(latitude float64) int {
	switch abs := math.Abs(latitude); {
	case abs >= extremeLatitude:
		return 2
	case abs >= highLatitude:
		return 1
	}
	return 0
}

// validateTimes checks ordering, twilight gap sizes, and day length. Gap
// violations are fatal at moderate latitudes and warnings at high and
// extreme ones; ordering and day-length issues are always warnings.
func validateTimes(pt *PrayerTimes, coords astro.Coordinates) ([]Warning, *CalculationError) {
	var warns []Warning
	band := latitudeBand(coords.Latitude)

	sequence := []struct {
		name string
		t    time.Time
	}{
		{"fajr", pt.Fajr},
		{"sunrise", pt.Sunrise},
		{"dhuhr", pt.Dhuhr},
		{"asr", pt.Asr},
		{"maghrib", pt.Maghrib},
		{"isha", pt.Isha},
	}
	var prevName string
	var prev time.Time
	for _, s := range sequence {
		if s.t.IsZero() {
			continue
		}
		if !prev.IsZero() && s.t.Before(prev) {
			warns = append(warns, warnf(WarnOrdering,
				"%s (%s) earlier than %s (%s)",
				s.name, s.t.Format("15:04"), prevName, prev.Format("15:04")))
		}
		prevName, prev = s.name, s.t
	}

	var fatal *CalculationError
	checkGap := func(name string, gap, limit time.Duration) {
		if gap <= limit {
			return
		}
		if band == 0 {
			fatal = &CalculationError{
				Kind:   Validation,
				Field:  name,
				Reason: warnf(WarnGap, "%s gap %v exceeds %v at moderate latitude", name, gap.Round(time.Minute), limit).Message,
			}
			return
		}
		warns = append(warns, warnf(WarnGap,
			"%s gap %v exceeds %v", name, gap.Round(time.Minute), limit))
	}

	if !pt.Fajr.IsZero() && !pt.Sunrise.IsZero() {
		checkGap("fajr-sunrise", pt.Sunrise.Sub(pt.Fajr), fajrGapLimits[band])
	}
	if !pt.Maghrib.IsZero() && !pt.Isha.IsZero() {
		checkGap("maghrib-isha", pt.Isha.Sub(pt.Maghrib), ishaGapLimits[band])
	}

	if !pt.Sunrise.IsZero() && !pt.Sunset.IsZero() {
		dayLength := pt.Sunset.Sub(pt.Sunrise)
		lo, hi := 4*time.Hour, 20*time.Hour
		if band == 2 {
			lo, hi = 2*time.Hour, 22*time.Hour
		}
		if dayLength < lo || dayLength > hi {
			warns = append(warns, warnf(WarnDayLength,
				"day length %v outside [%v, %v]", dayLength.Round(time.Minute), lo, hi))
		}
	}

	return warns, fatal
}
