package astro

import (
	"math"
	"testing"
)

// Meeus example 25.a: the sun on 1992 October 13 at 0h TD.
func TestSolarCoordinatesMeeus25a(t *testing.T) {
	jd := JulianDay(1992, 10, 13, 0)
	if math.Abs(jd-2448908.5) > 1e-9 {
		t.Fatalf("julian day = %v, want 2448908.5", jd)
	}

	solar := NewSolarCoordinates(jd)

	// Apparent declination -7.78507°, apparent right ascension 198.38083°.
	almostEqual(t, solar.Declination, -7.78507, 0.01, "declination")
	almostEqual(t, solar.RightAscension, 198.38083, 0.01, "right ascension")
}

// Meeus example 12.a: sidereal time on 1987 April 10 at 0h UT.
func TestSiderealTimeMeeus12a(t *testing.T) {
	jd := 2446895.5
	theta0 := meanSiderealTime(JulianCentury(jd))
	almostEqual(t, theta0, 197.693195, 1e-4, "mean sidereal time")

	// Apparent sidereal time differs by the nutation correction (about
	// -0.001°; the four-term abbreviation is good to a few 1e-5 degrees).
	solar := NewSolarCoordinates(jd)
	almostEqual(t, solar.ApparentSiderealTime, 197.6922296, 1e-3, "apparent sidereal time")
}

func TestMeanSolarLongitudeAtEpoch(t *testing.T) {
	// At J2000 the mean longitude is the leading coefficient, unwound.
	almostEqual(t, meanSolarLongitude(0), 280.4664567, 1e-9, "L0(0)")
	almostEqual(t, meanSolarAnomaly(0), 357.52911, 1e-9, "M(0)")
	almostEqual(t, meanObliquityOfTheEcliptic(0), 23.439291, 1e-9, "eps0(0)")
}

func TestRightAscensionRange(t *testing.T) {
	// RA stays in [0, 360) across a full year.
	jd := JulianDay(2024, 1, 1, 0)
	for i := 0; i < 366; i++ {
		solar := NewSolarCoordinates(jd + float64(i))
		if solar.RightAscension < 0 || solar.RightAscension >= 360 {
			t.Fatalf("day %d: right ascension %v outside [0, 360)", i, solar.RightAscension)
		}
		if math.Abs(solar.Declination) > 23.5 {
			t.Fatalf("day %d: declination %v outside solar band", i, solar.Declination)
		}
	}
}

func TestDeclinationAtSolstices(t *testing.T) {
	summer := NewSolarCoordinates(JulianDay(2024, 6, 20, 12))
	almostEqual(t, summer.Declination, 23.44, 0.05, "summer solstice declination")

	winter := NewSolarCoordinates(JulianDay(2024, 12, 21, 12))
	almostEqual(t, winter.Declination, -23.44, 0.05, "winter solstice declination")
}

func TestAltitudeOfCelestialBody(t *testing.T) {
	// Body on the meridian: altitude = 90 - |phi - delta|.
	almostEqual(t, altitudeOfCelestialBody(40, 20, 0), 70, 1e-9, "transit altitude")
	// Body at the anti-meridian of an equatorial observer is at the nadir
	// side: altitude -(90 - |delta|).
	almostEqual(t, altitudeOfCelestialBody(0, 0, 180), -90, 1e-6, "anti-transit altitude")
}
