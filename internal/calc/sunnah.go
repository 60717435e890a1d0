package calc

import (
	"math"
	"time"

	"github.com/smokyabdulrahman/salat/internal/astro"
	"github.com/smokyabdulrahman/salat/internal/method"
)

// SunnahTimes are the voluntary-observance times derived from one day's
// prayer times and the next day's Fajr. UTC, whole-minute precision.
type SunnahTimes struct {
	// Night thirds, measured maghrib to next fajr.
	FirstThirdOfNight time.Time
	MiddleOfNight     time.Time
	LastThirdOfNight  time.Time

	// Midnight honors the method's midnight mode: sunset-to-sunrise for
	// Standard, maghrib-to-fajr for Jafari.
	Midnight time.Time

	// Duha window: 15 minutes after sunrise to 15 minutes before dhuhr.
	DuhaStart time.Time
	DuhaEnd   time.Time

	// NightDuration is next fajr minus maghrib, whole minutes.
	NightDuration int
}

// Sunnah derives the Sunnah times for the date by computing the date and the
// following day. It fails when either day's prayer times cannot be computed,
// or when tomorrow's Fajr is unresolvable (polar condition with rule None).
func Sunnah(date astro.Date, coords astro.Coordinates, opts Options) (*SunnahTimes, error) {
	today, err := Times(date, coords, opts)
	if err != nil {
		return nil, err
	}

	tomorrow, err := Times(date.AddDays(1), coords, opts)
	if err != nil {
		return nil, err
	}
	if tomorrow.Fajr.IsZero() || today.Maghrib.IsZero() {
		return nil, polarUnresolved("sunnah", "tomorrow's fajr cannot be derived for %s", date)
	}

	night := tomorrow.Fajr.Sub(today.Maghrib)

	st := &SunnahTimes{
		FirstThirdOfNight: roundMinute(today.Maghrib.Add(night / 3)),
		MiddleOfNight:     roundMinute(today.Maghrib.Add(night / 2)),
		LastThirdOfNight:  roundMinute(today.Maghrib.Add(night * 2 / 3)),
		DuhaStart:         roundMinute(today.Sunrise.Add(15 * time.Minute)),
		DuhaEnd:           roundMinute(today.Dhuhr.Add(-15 * time.Minute)),
		NightDuration:     int(math.Round(night.Minutes())),
	}

	if opts.resolved().Midnight == method.MidnightJafari {
		st.Midnight = st.MiddleOfNight
	} else {
		solarNight := tomorrow.Sunrise.Sub(today.Sunset)
		st.Midnight = roundMinute(today.Sunset.Add(solarNight / 2))
	}

	return st, nil
}
