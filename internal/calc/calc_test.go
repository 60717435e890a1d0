package calc

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/smokyabdulrahman/salat/internal/astro"
	"github.com/smokyabdulrahman/salat/internal/method"
)

var (
	makkah   = astro.Coordinates{Latitude: 21.4225, Longitude: 39.8262}
	riyadh   = astro.Coordinates{Latitude: 24.7136, Longitude: 46.6753}
	toronto  = astro.Coordinates{Latitude: 43.589, Longitude: -79.6441}
	damascus = astro.Coordinates{Latitude: 33.5138, Longitude: 36.2765}
	tromso   = astro.Coordinates{Latitude: 70, Longitude: 20}
)

func date(y int, m time.Month, d int) astro.Date {
	return astro.Date{Year: y, Month: m, Day: d}
}

func mustTimes(t *testing.T, d astro.Date, c astro.Coordinates, opts Options) *PrayerTimes {
	t.Helper()
	pt, err := Times(d, c, opts)
	if err != nil {
		t.Fatalf("Times(%s, %+v) unexpected error: %v", d, c, err)
	}
	return pt
}

func assertOrdered(t *testing.T, pt *PrayerTimes) {
	t.Helper()
	seq := []struct {
		name string
		tm   time.Time
	}{
		{"fajr", pt.Fajr}, {"sunrise", pt.Sunrise}, {"dhuhr", pt.Dhuhr},
		{"asr", pt.Asr}, {"maghrib", pt.Maghrib}, {"isha", pt.Isha},
	}
	for i := 1; i < len(seq); i++ {
		if !seq[i-1].tm.Before(seq[i].tm) {
			t.Errorf("%s (%v) not before %s (%v)",
				seq[i-1].name, seq[i-1].tm, seq[i].name, seq[i].tm)
		}
	}
}

// MWL at Makkah on the June solstice.
func TestMWLMakkahSolstice(t *testing.T) {
	pt := mustTimes(t, date(2024, time.June, 21), makkah, Options{Method: method.MWL})

	assertOrdered(t, pt)

	// Dhuhr lands near Makkah solar noon, around 09:2x UTC.
	noon := time.Date(2024, 6, 21, 9, 22, 0, 0, time.UTC)
	if d := pt.Dhuhr.Sub(noon); d < -20*time.Minute || d > 20*time.Minute {
		t.Errorf("dhuhr = %v, want near %v", pt.Dhuhr, noon)
	}

	// Every instant is whole-minute aligned.
	for _, tm := range []time.Time{pt.Fajr, pt.Sunrise, pt.Dhuhr, pt.Asr, pt.Maghrib, pt.Isha} {
		if tm.Second() != 0 || tm.Nanosecond() != 0 {
			t.Errorf("instant %v not minute-aligned", tm)
		}
	}
}

// The UmmAlQura and Qatar 90-minute Isha interval.
func TestIntervalIsha(t *testing.T) {
	tests := []struct {
		id method.ID
	}{
		{method.UmmAlQura},
		{method.Qatar},
	}

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			pt := mustTimes(t, date(2024, time.June, 21), riyadh, Options{Method: tt.id})

			gap := pt.Isha.Sub(pt.Maghrib)
			if gap < 88*time.Minute || gap > 91*time.Minute {
				t.Errorf("isha - maghrib = %v, want ~90min", gap)
			}
		})
	}
}

// ISNA around the North American DST change; the engine is UTC-only so
// nothing special may happen.
func TestISNATorontoDSTBoundary(t *testing.T) {
	before := mustTimes(t, date(2024, time.March, 8), toronto, Options{Method: method.ISNA})
	after := mustTimes(t, date(2024, time.March, 9), toronto, Options{Method: method.ISNA})

	assertOrdered(t, before)
	assertOrdered(t, after)

	// Adjacent days shift by day-length change only: under 5 minutes.
	delta := after.Dhuhr.Sub(before.Dhuhr.Add(24 * time.Hour))
	if delta < -5*time.Minute || delta > 5*time.Minute {
		t.Errorf("dhuhr drift across days = %v", delta)
	}
}

// Polar night at 70°N with AngleBased; the rescue path plus fallback
// must produce a complete, NaN-free result.
func TestPolarNightAngleBased(t *testing.T) {
	pt, err := Times(date(2024, time.December, 21), tromso,
		Options{Method: method.MWL, HighLatRule: method.AngleBased})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, tm := range map[string]time.Time{
		"fajr": pt.Fajr, "sunrise": pt.Sunrise, "dhuhr": pt.Dhuhr,
		"asr": pt.Asr, "maghrib": pt.Maghrib, "isha": pt.Isha,
	} {
		if tm.IsZero() {
			t.Errorf("%s is zero in polar rescue result", name)
		}
	}

	if !pt.Fajr.Before(pt.Sunrise) {
		t.Errorf("fajr %v not before sunrise %v", pt.Fajr, pt.Sunrise)
	}
	if !pt.Isha.After(pt.Maghrib) {
		t.Errorf("isha %v not after maghrib %v", pt.Isha, pt.Maghrib)
	}

	if !hasWarning(pt.Warnings, WarnFallback) {
		t.Errorf("expected a fallback warning, got %v", pt.Warnings)
	}
}

// Moonsighting switches to the one-seventh rule at |lat| >= 55.
func TestMoonsightingSeventhRule(t *testing.T) {
	coords := astro.Coordinates{Latitude: 55, Longitude: 0}
	d := date(2024, time.June, 21)

	pt := mustTimes(t, d, coords, Options{Method: method.Moonsighting})

	day := astro.NewSolarDay(d, coords)
	next := astro.NewSolarDay(d.AddDays(1), coords)
	sunrise, _ := day.TimeAt(day.Sunrise)
	sunset, _ := day.TimeAt(day.Sunset)
	nextSunrise, _ := astro.TimeAtHours(d.AddDays(1), next.Sunrise)
	night := nextSunrise.Sub(sunset)

	wantFajr := sunrise.Add(-night / 7)
	if d := pt.Fajr.Sub(wantFajr); d < -2*time.Minute || d > 2*time.Minute {
		t.Errorf("fajr = %v, want sunrise - night/7 = %v", pt.Fajr, wantFajr)
	}

	// Isha carries the method's +0 adjustment but maghrib's +3 does not
	// affect it; it hangs off sunset.
	wantIsha := sunset.Add(night / 7)
	if d := pt.Isha.Sub(wantIsha); d < -2*time.Minute || d > 2*time.Minute {
		t.Errorf("isha = %v, want sunset + night/7 = %v", pt.Isha, wantIsha)
	}
}

// Jafari maghrib is an hour-angle solution below the horizon, after
// sunset; midnight mode is Jafari.
func TestJafariMaghrib(t *testing.T) {
	coords := astro.Coordinates{Latitude: 32.0, Longitude: 44.35}
	d := date(2025, time.September, 15)

	pt := mustTimes(t, d, coords, Options{Method: method.Jafari})
	assertOrdered(t, pt)

	gap := pt.Maghrib.Sub(pt.Sunset)
	if gap < 10*time.Minute || gap > 30*time.Minute {
		t.Errorf("maghrib - sunset = %v, want a 4° descent (roughly 10-30min)", gap)
	}

	sunnah, err := Sunnah(d, coords, Options{Method: method.Jafari})
	if err != nil {
		t.Fatalf("Sunnah error: %v", err)
	}
	if !sunnah.Midnight.Equal(sunnah.MiddleOfNight) {
		t.Errorf("Jafari midnight %v != middle of night %v", sunnah.Midnight, sunnah.MiddleOfNight)
	}
}

// Hanafi Asr is 30-90 minutes after Standard Asr at mid-latitudes in
// summer.
func TestHanafiAsrDelta(t *testing.T) {
	d := date(2024, time.June, 21)

	standard := mustTimes(t, d, damascus, Options{Method: method.MWL, School: method.Standard})
	hanafi := mustTimes(t, d, damascus, Options{Method: method.MWL, School: method.Hanafi})

	delta := hanafi.Asr.Sub(standard.Asr)
	if delta < 30*time.Minute || delta > 90*time.Minute {
		t.Errorf("hanafi - standard asr = %v, want [30m, 90m]", delta)
	}
}

func TestDeterminism(t *testing.T) {
	d := date(2024, time.June, 21)
	opts := Options{Method: method.Egypt, School: method.Hanafi}

	a := mustTimes(t, d, makkah, opts)
	b := mustTimes(t, d, makkah, opts)

	if !a.Fajr.Equal(b.Fajr) || !a.Dhuhr.Equal(b.Dhuhr) || !a.Isha.Equal(b.Isha) {
		t.Errorf("identical inputs produced different outputs: %+v vs %+v", a, b)
	}
}

func TestAdjustmentComposition(t *testing.T) {
	d := date(2024, time.June, 21)

	base := mustTimes(t, d, makkah, Options{Method: method.MWL})
	shifted := mustTimes(t, d, makkah, Options{
		Method:      method.MWL,
		Adjustments: method.Adjustments{Fajr: 10, Isha: -7},
	})

	if got := shifted.Fajr.Sub(base.Fajr); got != 10*time.Minute {
		t.Errorf("fajr shift = %v, want 10m", got)
	}
	if got := shifted.Isha.Sub(base.Isha); got != -7*time.Minute {
		t.Errorf("isha shift = %v, want -7m", got)
	}
	// Unadjusted prayers are untouched.
	if !shifted.Dhuhr.Equal(base.Dhuhr) {
		t.Errorf("dhuhr moved: %v vs %v", shifted.Dhuhr, base.Dhuhr)
	}
}

func TestOverridesReplaceMethodParams(t *testing.T) {
	d := date(2024, time.June, 21)

	isha := method.MinutesAfterSunset(90)
	pt := mustTimes(t, d, riyadh, Options{
		Method:    method.Custom,
		Overrides: method.Overrides{Isha: &isha},
	})

	gap := pt.Isha.Sub(pt.Sunset)
	if gap < 89*time.Minute || gap > 91*time.Minute {
		t.Errorf("isha - sunset = %v, want ~90m via override", gap)
	}
}

func TestInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		coords astro.Coordinates
		opts   Options
	}{
		{"latitude", astro.Coordinates{Latitude: 95, Longitude: 0}, Options{Method: method.MWL}},
		{"longitude", astro.Coordinates{Latitude: 0, Longitude: 181}, Options{Method: method.MWL}},
		{"elevation", astro.Coordinates{Latitude: 0, Longitude: 0, Elevation: -501}, Options{Method: method.MWL}},
		{"method", astro.Coordinates{Latitude: 21, Longitude: 39}, Options{Method: method.ID(99)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt, err := Times(date(2024, time.June, 21), tt.coords, tt.opts)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var calcErr *CalculationError
			if !errors.As(err, &calcErr) || calcErr.Kind != InvalidInput {
				t.Errorf("error = %v, want InvalidInput", err)
			}
			if pt != nil {
				t.Error("invalid input returned a result")
			}
		})
	}
}

// White nights: 18° twilight unreachable at 65°N midsummer. Rule None
// surfaces the polar error with best-effort values; NightMiddle resolves it.
func TestWhiteNights(t *testing.T) {
	coords := astro.Coordinates{Latitude: 65, Longitude: 25}
	d := date(2024, time.June, 21)

	t.Run("rule None", func(t *testing.T) {
		pt, err := Times(d, coords, Options{Method: method.France18, HighLatRule: method.None})
		if err == nil {
			t.Fatal("expected PolarUnresolved, got nil")
		}
		var calcErr *CalculationError
		if !errors.As(err, &calcErr) || calcErr.Kind != PolarUnresolved {
			t.Fatalf("error = %v, want PolarUnresolved", err)
		}
		// Best-effort values still come back.
		if pt == nil || pt.Dhuhr.IsZero() || pt.Sunrise.IsZero() {
			t.Error("best-effort result missing computable instants")
		}
	})

	t.Run("rule NightMiddle", func(t *testing.T) {
		pt, err := Times(d, coords, Options{Method: method.France18, HighLatRule: method.NightMiddle})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pt.Fajr.IsZero() || pt.Isha.IsZero() {
			t.Fatal("fallback left fajr/isha unset")
		}
		if !hasWarning(pt.Warnings, WarnFallback) {
			t.Errorf("expected fallback warning, got %v", pt.Warnings)
		}
		if !pt.Fajr.Before(pt.Sunrise) || !pt.Isha.After(pt.Maghrib) {
			t.Error("fallback times out of order")
		}
	})
}

func TestElevationMonotonic(t *testing.T) {
	d := date(2024, time.June, 21)
	sea := mustTimes(t, d, makkah, Options{Method: method.MWL})

	elevated := makkah
	elevated.Elevation = 3000
	high := mustTimes(t, d, elevated, Options{Method: method.MWL})

	if high.Sunrise.After(sea.Sunrise) {
		t.Errorf("elevated sunrise %v after sea-level %v", high.Sunrise, sea.Sunrise)
	}
	if high.Sunset.Before(sea.Sunset) {
		t.Errorf("elevated sunset %v before sea-level %v", high.Sunset, sea.Sunset)
	}
}

func TestMoonsightingMidLatitudeUsesAngles(t *testing.T) {
	// Below 55° the Moonsighting method computes angles normally; the
	// seasonal formula only bounds them.
	d := date(2024, time.March, 10)
	pt := mustTimes(t, d, makkah, Options{Method: method.Moonsighting})
	assertOrdered(t, pt)

	if math.Abs(float64(pt.Dhuhr.Sub(pt.Sunrise))) < float64(time.Hour) {
		t.Error("suspicious schedule geometry")
	}
}

func hasWarning(warnings []Warning, code WarningCode) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
