package calc

import (
	"testing"
	"time"

	"github.com/smokyabdulrahman/salat/internal/astro"
	"github.com/smokyabdulrahman/salat/internal/method"
)

func mustSunnah(t *testing.T, d astro.Date, c astro.Coordinates, opts Options) *SunnahTimes {
	t.Helper()
	st, err := Sunnah(d, c, opts)
	if err != nil {
		t.Fatalf("Sunnah(%s) unexpected error: %v", d, err)
	}
	return st
}

func TestSunnahDuhaWindow(t *testing.T) {
	d := date(2024, time.June, 21)
	opts := Options{Method: method.MWL}

	pt := mustTimes(t, d, makkah, opts)
	st := mustSunnah(t, d, makkah, opts)

	// Duha start = sunrise + 15 min, end = dhuhr - 15 min, within a minute
	// of rounding slack.
	wantStart := pt.Sunrise.Add(15 * time.Minute)
	if diff := st.DuhaStart.Sub(wantStart); diff < -time.Minute || diff > time.Minute {
		t.Errorf("duha start = %v, want %v ±1m", st.DuhaStart, wantStart)
	}

	wantEnd := pt.Dhuhr.Add(-15 * time.Minute)
	if diff := st.DuhaEnd.Sub(wantEnd); diff < -time.Minute || diff > time.Minute {
		t.Errorf("duha end = %v, want %v ±1m", st.DuhaEnd, wantEnd)
	}

	if !st.DuhaStart.Before(st.DuhaEnd) {
		t.Errorf("duha window inverted: %v .. %v", st.DuhaStart, st.DuhaEnd)
	}
}

func TestSunnahNightThirds(t *testing.T) {
	d := date(2024, time.June, 21)
	opts := Options{Method: method.MWL}

	pt := mustTimes(t, d, makkah, opts)
	tomorrow := mustTimes(t, d.AddDays(1), makkah, opts)
	st := mustSunnah(t, d, makkah, opts)

	night := tomorrow.Fajr.Sub(pt.Maghrib)

	// Thirds are exact fractions of next fajr - maghrib.
	wantFirst := pt.Maghrib.Add(night / 3)
	if diff := st.FirstThirdOfNight.Sub(wantFirst); diff < -time.Minute || diff > time.Minute {
		t.Errorf("first third = %v, want %v ±1m", st.FirstThirdOfNight, wantFirst)
	}

	// Partition evenness: the two gaps between thirds match within a minute.
	gap1 := st.MiddleOfNight.Sub(st.FirstThirdOfNight)
	gap2 := st.LastThirdOfNight.Sub(st.MiddleOfNight)
	if diff := gap1 - gap2; diff < -time.Minute || diff > time.Minute {
		t.Errorf("uneven thirds: %v vs %v", gap1, gap2)
	}

	// Ordering inside the night.
	if !(pt.Maghrib.Before(st.FirstThirdOfNight) &&
		st.FirstThirdOfNight.Before(st.MiddleOfNight) &&
		st.MiddleOfNight.Before(st.LastThirdOfNight) &&
		st.LastThirdOfNight.Before(tomorrow.Fajr)) {
		t.Error("night thirds out of order")
	}

	// Night duration in whole minutes.
	if diff := st.NightDuration - int(night.Minutes()); diff < -1 || diff > 1 {
		t.Errorf("night duration = %d min, want ~%d", st.NightDuration, int(night.Minutes()))
	}
}

func TestSunnahMidnightModes(t *testing.T) {
	d := date(2024, time.June, 21)

	// Standard midnight halves the sunset-to-sunrise night.
	std := mustSunnah(t, d, makkah, Options{Method: method.MWL})
	pt := mustTimes(t, d, makkah, Options{Method: method.MWL})
	tomorrow := mustTimes(t, d.AddDays(1), makkah, Options{Method: method.MWL})

	wantStd := pt.Sunset.Add(tomorrow.Sunrise.Sub(pt.Sunset) / 2)
	if diff := std.Midnight.Sub(wantStd); diff < -time.Minute || diff > time.Minute {
		t.Errorf("standard midnight = %v, want %v ±1m", std.Midnight, wantStd)
	}

	// Jafari midnight halves maghrib-to-fajr, i.e. the middle of the night.
	jafari := mustSunnah(t, d, makkah, Options{Method: method.Jafari})
	if !jafari.Midnight.Equal(jafari.MiddleOfNight) {
		t.Errorf("jafari midnight %v != middle of night %v", jafari.Midnight, jafari.MiddleOfNight)
	}

	// The two conventions genuinely differ.
	if std.Midnight.Equal(std.MiddleOfNight) {
		t.Log("standard midnight coincides with middle of night; acceptable only by coincidence")
	}
}

func TestSunnahCannotDerive(t *testing.T) {
	// White nights with rule None: tomorrow's fajr is unresolvable.
	coords := astro.Coordinates{Latitude: 65, Longitude: 25}
	_, err := Sunnah(date(2024, time.June, 21), coords,
		Options{Method: method.France18, HighLatRule: method.None})
	if err == nil {
		t.Fatal("expected error deriving sunnah times in white nights with rule None")
	}
}
