package astro

// The formulas below are from Jean Meeus, "Astronomical Algorithms" (2nd
// ed.), with coefficients kept verbatim. Chapter/page references are noted
// per function. T is Julian centuries since J2000.0.

// meanSolarLongitude returns the geometric mean longitude of the sun
// (Meeus 25.2).
func meanSolarLongitude(t float64) float64 {
	l0 := 280.4664567 + t*(36000.76983+t*0.0003032)
	return Unwind(l0)
}

// meanLunarLongitude returns the mean longitude of the moon (Meeus 47.1,
// truncated). Only consumed by the nutation terms.
func meanLunarLongitude(t float64) float64 {
	lp := 218.3165 + t*481267.8813
	return Unwind(lp)
}

// ascendingLunarNodeLongitude returns the longitude of the moon's mean
// ascending node (Meeus 47.7).
func ascendingLunarNodeLongitude(t float64) float64 {
	omega := 125.04452 + t*(-1934.136261+t*(0.0020708+t/450000))
	return Unwind(omega)
}

// meanSolarAnomaly returns the mean anomaly of the sun (Meeus 25.3).
func meanSolarAnomaly(t float64) float64 {
	m := 357.52911 + t*(35999.05029-t*0.0001537)
	return Unwind(m)
}

// solarEquationOfCenter returns the sun's equation of center (Meeus p. 164)
// for the mean anomaly m.
func solarEquationOfCenter(t, m float64) float64 {
	return (1.914602-t*(0.004817+t*0.000014))*Sin(m) +
		(0.019993-t*0.000101)*Sin(2*m) +
		0.000289*Sin(3*m)
}

// apparentSolarLongitude corrects the true longitude for nutation and
// aberration (Meeus p. 164). l0 is the mean solar longitude.
func apparentSolarLongitude(t, l0 float64) float64 {
	longitude := l0 + solarEquationOfCenter(t, meanSolarAnomaly(t))
	omega := 125.04 - 1934.136*t
	lambda := longitude - 0.00569 - 0.00478*Sin(omega)
	return Unwind(lambda)
}

// meanObliquityOfTheEcliptic returns the mean obliquity (Meeus 22.2).
func meanObliquityOfTheEcliptic(t float64) float64 {
	return 23.439291 - t*(0.013004167+t*(0.0000001639-t*0.0000005036))
}

// apparentObliquityOfTheEcliptic corrects the mean obliquity eps0 for
// nutation (Meeus p. 165).
func apparentObliquityOfTheEcliptic(t, eps0 float64) float64 {
	omega := 125.04 - 1934.136*t
	return eps0 + 0.00256*Cos(omega)
}

// meanSiderealTime returns the apparent-epoch mean sidereal time at
// Greenwich in degrees (Meeus 12.4, the full four-term expression).
func meanSiderealTime(t float64) float64 {
	jd := t*36525 + 2451545.0
	theta := 280.46061837 +
		360.98564736629*(jd-2451545) +
		t*t*(0.000387933-t/38710000)
	return Unwind(theta)
}

// nutationInLongitude returns the nutation in longitude in degrees, from the
// four-term abbreviation of the full series (Meeus p. 144). l0 is the mean
// solar longitude, lp the mean lunar longitude, omega the node longitude.
func nutationInLongitude(l0, lp, omega float64) float64 {
	term1 := -17.2 / 3600 * Sin(omega)
	term2 := 1.32 / 3600 * Sin(2*l0)
	term3 := 0.23 / 3600 * Sin(2*lp)
	term4 := 0.21 / 3600 * Sin(2*omega)
	return term1 - term2 - term3 + term4
}

// nutationInObliquity returns the nutation in obliquity in degrees, from the
// four-term abbreviation (Meeus p. 144).
func nutationInObliquity(l0, lp, omega float64) float64 {
	term1 := 9.2 / 3600 * Cos(omega)
	term2 := 0.57 / 3600 * Cos(2*l0)
	term3 := 0.10 / 3600 * Cos(2*lp)
	term4 := 0.09 / 3600 * Cos(2*omega)
	return term1 + term2 + term3 - term4
}

// altitudeOfCelestialBody returns the altitude of a body at declination
// delta and local hour angle h for an observer at latitude phi (Meeus 13.6).
func altitudeOfCelestialBody(phi, delta, h float64) float64 {
	return Arcsin(Sin(phi)*Sin(delta) + Cos(phi)*Cos(delta)*Cos(h))
}

// approximateTransit returns the fraction of the day [0, 1) at which the sun
// transits the observer's meridian (Meeus p. 102). longitude is the
// observer's east-positive longitude; theta0 the apparent sidereal time and
// alpha2 the sun's right ascension at 0h.
func approximateTransit(longitude, theta0, alpha2 float64) float64 {
	lw := -longitude
	return normalizeToScale((alpha2+lw-theta0)/360, 1)
}

// correctedTransit refines the approximate transit m0 into decimal UTC hours
// using the right ascensions of the previous, current, and next day
// (Meeus p. 102).
func correctedTransit(m0, longitude, theta0, alpha2, alpha1, alpha3 float64) float64 {
	lw := -longitude
	theta := Unwind(theta0 + 360.985647*m0)
	a := Unwind(InterpolateAngles(alpha2, alpha1, alpha3, m0))
	h := QuadrantShift(theta - lw - a)
	dm := h / -360
	return (m0 + dm) * 24
}

// correctedHourAngle returns the decimal UTC hour at which the sun reaches
// the target altitude angle before or after transit m0 (Meeus p. 102–103).
// It interpolates right ascension and declination across the three adjacent
// days and applies the altitude correction once. NaN means the sun never
// reaches the altitude.
func correctedHourAngle(m0, angle float64, observer Coordinates, afterTransit bool,
	theta0, alpha2, alpha1, alpha3, delta2, delta1, delta3 float64) float64 {

	lw := -observer.Longitude

	term := (Sin(angle) - Sin(observer.Latitude)*Sin(delta2)) /
		(Cos(observer.Latitude) * Cos(delta2))
	h0 := Arccos(term) // NaN when |term| > 1

	m := m0 - h0/360
	if afterTransit {
		m = m0 + h0/360
	}

	theta := Unwind(theta0 + 360.985647*m)
	a := Unwind(InterpolateAngles(alpha2, alpha1, alpha3, m))
	delta := Interpolate(delta2, delta1, delta3, m)
	h := theta - lw - a
	altitude := altitudeOfCelestialBody(observer.Latitude, delta, h)

	dm := (altitude - angle) / (360 * Cos(delta) * Cos(observer.Latitude) * Sin(h))
	return (m + dm) * 24
}

// SolarCoordinates are the sun's equatorial coordinates plus the apparent
// sidereal time at Greenwich for a given Julian day. Derived purely from the
// Julian day; there is no observer dependency.
type SolarCoordinates struct {
	// Declination of the sun, degrees.
	Declination float64
	// RightAscension of the sun, degrees in [0, 360).
	RightAscension float64
	// ApparentSiderealTime at Greenwich, degrees.
	ApparentSiderealTime float64
}

// NewSolarCoordinates computes the sun's apparent coordinates at the given
// Julian day.
func NewSolarCoordinates(jd float64) SolarCoordinates {
	t := JulianCentury(jd)
	l0 := meanSolarLongitude(t)
	lp := meanLunarLongitude(t)
	omega := ascendingLunarNodeLongitude(t)
	lambda := apparentSolarLongitude(t, l0)

	theta0 := meanSiderealTime(t)
	dPsi := nutationInLongitude(l0, lp, omega)
	dEpsilon := nutationInObliquity(l0, lp, omega)

	eps0 := meanObliquityOfTheEcliptic(t)
	epsApp := apparentObliquityOfTheEcliptic(t, eps0)

	return SolarCoordinates{
		Declination:          Arcsin(Sin(epsApp) * Sin(lambda)),
		RightAscension:       Unwind(Arctan2(Cos(epsApp)*Sin(lambda), Cos(lambda))),
		ApparentSiderealTime: theta0 + dPsi*Cos(eps0+dEpsilon),
	}
}
