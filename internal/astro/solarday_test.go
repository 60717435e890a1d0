package astro

import (
	"fmt"
	"math"
	"testing"
	"time"
)

// raleigh matches the classic worked example for the corrected hour-angle
// method: 2015-07-12 at (35°47'N, 78°39'W).
var raleigh = Coordinates{Latitude: 35 + 47.0/60, Longitude: -78 - 39.0/60}

func hourString(t *testing.T, hours float64) string {
	t.Helper()
	if math.IsNaN(hours) {
		return "NaN"
	}
	total := int(math.Round(hours * 60))
	h, m := total/60, total%60
	return fmt.Sprintf("%d:%02d", h, m)
}

func TestSolarDayRaleigh(t *testing.T) {
	day := NewSolarDay(Date{Year: 2015, Month: time.July, Day: 12}, raleigh)

	tests := []struct {
		name  string
		hours float64
		want  string
	}{
		{"civil dawn", day.HourAngle(-6, false), "9:38"},
		{"sunrise", day.Sunrise, "10:08"},
		{"transit", day.Transit, "17:20"},
		{"sunset", day.Sunset, "24:32"},
		{"civil dusk", day.HourAngle(-6, true), "25:02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hourString(t, tt.hours); got != tt.want {
				t.Errorf("%s = %s (%.5f h), want %s", tt.name, got, tt.hours, tt.want)
			}
		})
	}
}

func TestSolarDayOrdering(t *testing.T) {
	day := NewSolarDay(Date{Year: 2024, Month: time.March, Day: 9}, Coordinates{Latitude: 43.589, Longitude: -79.6441})

	if !(day.Sunrise < day.Transit && day.Transit < day.Sunset) {
		t.Fatalf("events out of order: sunrise %v transit %v sunset %v",
			day.Sunrise, day.Transit, day.Sunset)
	}

	fajr := day.HourAngle(-18, false)
	dusk := day.HourAngle(-18, true)
	if !(fajr < day.Sunrise) || !(dusk > day.Sunset) {
		t.Errorf("twilight outside day: %v / %v", fajr, dusk)
	}
}

func TestAfternoonShadowFactors(t *testing.T) {
	day := NewSolarDay(Date{Year: 2024, Month: time.June, Day: 21}, Coordinates{Latitude: 33.5138, Longitude: 36.2765})

	standard := day.Afternoon(1)
	hanafi := day.Afternoon(2)
	if math.IsNaN(standard) || math.IsNaN(hanafi) {
		t.Fatal("afternoon returned NaN for a mid-latitude summer day")
	}
	// The longer shadow is always later, and falls between transit and sunset.
	if hanafi <= standard {
		t.Errorf("hanafi asr %v not after standard asr %v", hanafi, standard)
	}
	if standard <= day.Transit || hanafi >= day.Sunset {
		t.Errorf("asr outside (transit, sunset): %v / %v", standard, hanafi)
	}
	// At mid-latitudes in summer the delta is 30-90 minutes.
	delta := (hanafi - standard) * 60
	if delta < 30 || delta > 90 {
		t.Errorf("hanafi-standard delta = %.1f min, want [30, 90]", delta)
	}
}

func TestPolarNightReturnsNaN(t *testing.T) {
	day := NewSolarDay(Date{Year: 2024, Month: time.December, Day: 21}, Coordinates{Latitude: 70, Longitude: 20})

	if !math.IsNaN(day.Sunrise) || !math.IsNaN(day.Sunset) {
		t.Errorf("polar night sunrise/sunset = %v/%v, want NaN", day.Sunrise, day.Sunset)
	}
	if math.IsNaN(day.Transit) {
		t.Error("transit must remain defined during polar night")
	}
	// At 70°N the sun stays only ~3.4° below the horizon at noon, so the
	// 18° depression is still crossed.
	if math.IsNaN(day.HourAngle(-18, false)) {
		t.Error("18° twilight must remain defined during polar night at 70°N")
	}
}

func TestMidnightSunReturnsNaN(t *testing.T) {
	day := NewSolarDay(Date{Year: 2024, Month: time.June, Day: 21}, Coordinates{Latitude: 70, Longitude: 20})

	if !math.IsNaN(day.Sunrise) || !math.IsNaN(day.Sunset) {
		t.Errorf("midnight sun sunrise/sunset = %v/%v, want NaN", day.Sunrise, day.Sunset)
	}
}

func TestElevationAdvancesSunrise(t *testing.T) {
	date := Date{Year: 2024, Month: time.June, Day: 21}
	base := Coordinates{Latitude: 27.98, Longitude: 86.92}

	sea := NewSolarDay(date, base)
	high := NewSolarDay(date, Coordinates{Latitude: base.Latitude, Longitude: base.Longitude, Elevation: 5500})

	if !(high.Sunrise <= sea.Sunrise) {
		t.Errorf("elevated sunrise %v later than sea level %v", high.Sunrise, sea.Sunrise)
	}
	if !(high.Sunset >= sea.Sunset) {
		t.Errorf("elevated sunset %v earlier than sea level %v", high.Sunset, sea.Sunset)
	}
	// Bounded effect: under 15 minutes even at 5500m.
	if (sea.Sunrise-high.Sunrise)*60 > 15 {
		t.Errorf("elevation advanced sunrise by %.1f min, want <= 15", (sea.Sunrise-high.Sunrise)*60)
	}
}

func TestCoordinatesValidate(t *testing.T) {
	tests := []struct {
		name    string
		coords  Coordinates
		wantErr bool
	}{
		{"valid", Coordinates{Latitude: 21.4, Longitude: 39.8}, false},
		{"valid extreme", Coordinates{Latitude: -90, Longitude: 180, Elevation: 10000}, false},
		{"bad latitude", Coordinates{Latitude: 95, Longitude: 0}, true},
		{"bad longitude", Coordinates{Latitude: 0, Longitude: -181}, true},
		{"bad elevation", Coordinates{Latitude: 0, Longitude: 0, Elevation: 10001}, true},
		{"nan latitude", Coordinates{Latitude: math.NaN(), Longitude: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coords.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.coords, err, tt.wantErr)
			}
		})
	}
}

func TestTimeAtMapsOntoDate(t *testing.T) {
	date := Date{Year: 2015, Month: time.July, Day: 12}
	day := NewSolarDay(date, raleigh)

	got, ok := day.TimeAt(day.Transit)
	if !ok {
		t.Fatal("TimeAt(transit) not ok")
	}
	if DateOf(got) != date {
		t.Errorf("transit instant %v not on %s", got, date)
	}
	if got.Nanosecond() != 0 {
		// TimeAt rounds to whole seconds.
		t.Errorf("transit instant %v not second-aligned", got)
	}
}
