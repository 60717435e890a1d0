package calc

import (
	"math"
	"testing"
	"time"

	"github.com/smokyabdulrahman/salat/internal/astro"
	"github.com/smokyabdulrahman/salat/internal/method"
)

func TestDaysSinceSolstice(t *testing.T) {
	tests := []struct {
		name      string
		dayOfYear int
		year      int
		latitude  float64
		want      int
	}{
		{"north new year", 1, 2023, 51, 11},
		{"north late december", 360, 2023, 51, 5},
		{"north wraps at year end", 355, 2023, 51, 0},
		{"north leap year", 1, 2024, 51, 11},
		{"south new year", 1, 2023, -35, 194},
		{"south leap year", 1, 2024, -35, 194},
		{"south after solstice", 200, 2023, -35, 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := daysSinceSolstice(tt.dayOfYear, tt.year, tt.latitude)
			if got != tt.want {
				t.Errorf("daysSinceSolstice(%d, %d, %v) = %d, want %d",
					tt.dayOfYear, tt.year, tt.latitude, got, tt.want)
			}
		})
	}
}

func TestTwilightBlendSegments(t *testing.T) {
	const a, b, c, d = 100, 110, 120, 130

	tests := []struct {
		dyy  int
		want float64
	}{
		{0, a},
		{91, b},
		{137, c},
		{183, d},
		{229, c},
		{275, b},
	}

	for _, tt := range tests {
		if got := twilightBlend(tt.dyy, a, b, c, d); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("twilightBlend(%d) = %v, want %v", tt.dyy, got, tt.want)
		}
	}

	// Midpoints interpolate linearly.
	if got := twilightBlend(45, a, b, c, d); math.Abs(got-(a+(b-a)/91.0*45)) > 1e-9 {
		t.Errorf("twilightBlend(45) = %v, not linear", got)
	}
	// The tail approaches a again.
	if got := twilightBlend(365, a, b, c, d); got < a-1e-9 || got > a+1.5 {
		t.Errorf("twilightBlend(365) = %v, want near %v", got, a)
	}
}

func TestMorningTwilightAtEquator(t *testing.T) {
	// All four coefficients collapse to 75 at latitude 0.
	for _, d := range []astro.Date{
		{Year: 2024, Month: time.January, Day: 15},
		{Year: 2024, Month: time.June, Day: 21},
		{Year: 2024, Month: time.October, Day: 1},
	} {
		if got := morningTwilightMinutes(0, d); math.Abs(got-75) > 1e-9 {
			t.Errorf("morningTwilightMinutes(0, %s) = %v, want 75", d, got)
		}
	}
}

func TestMorningTwilightScalesWithLatitude(t *testing.T) {
	d := astro.Date{Year: 2024, Month: time.June, Day: 21}

	low := morningTwilightMinutes(20, d)
	high := morningTwilightMinutes(55, d)
	if high <= low {
		t.Errorf("twilight should lengthen with latitude: %v vs %v", low, high)
	}

	// dyy(June 21, north) = 183: the d coefficient, 75 + 48.10 at 55°.
	if math.Abs(high-(75+48.10)) > 1e-9 {
		t.Errorf("morningTwilightMinutes(55, Jun 21) = %v, want %v", high, 75+48.10)
	}
}

func TestEveningTwilightShafaq(t *testing.T) {
	d := astro.Date{Year: 2024, Month: time.June, Day: 21} // dyy = 183, the d coefficient
	lat := 55.0

	general := eveningTwilightMinutes(lat, d, method.ShafaqGeneral)
	abyad := eveningTwilightMinutes(lat, d, method.ShafaqAbyad)
	ahmer := eveningTwilightMinutes(lat, d, method.ShafaqAhmer)

	if general != abyad {
		t.Errorf("General (%v) and Abyad (%v) share a coefficient table", general, abyad)
	}
	if math.Abs(general-(75+81.84)) > 1e-9 {
		t.Errorf("General evening twilight = %v, want %v", general, 75+81.84)
	}
	if math.Abs(ahmer-(62+19.44)) > 1e-9 {
		t.Errorf("Ahmer evening twilight = %v, want %v", ahmer, 62+19.44)
	}
	if ahmer >= general {
		t.Errorf("red twilight %v should end before white %v", ahmer, general)
	}
}

// The latitude symmetry: a southern observer six months out of phase gets
// the same seasonal twilight as a northern one.
func TestTwilightHemisphereSymmetry(t *testing.T) {
	north := morningTwilightMinutes(51, astro.Date{Year: 2023, Month: time.June, Day: 21})
	south := morningTwilightMinutes(-51, astro.Date{Year: 2023, Month: time.December, Day: 20})

	if math.Abs(north-south) > 2 {
		t.Errorf("north %v vs south %v, want within 2 minutes", north, south)
	}
}
