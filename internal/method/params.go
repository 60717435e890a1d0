package method

import "fmt"

// Boundary is the angle-or-interval union carried by the Isha and Maghrib
// parameters: either a solar depression angle in degrees, or a fixed number
// of minutes after sunset. The zero Boundary means "at sunset" (only
// meaningful for Maghrib).
type Boundary struct {
	kind  boundaryKind
	value float64
}

type boundaryKind int

const (
	boundarySunset boundaryKind = iota
	boundaryAngle
	boundaryInterval
)

// Angle builds a Boundary at the given depression angle in degrees below the
// horizon (stored positive).
func Angle(degrees float64) Boundary {
	return Boundary{kind: boundaryAngle, value: degrees}
}

// MinutesAfterSunset builds a Boundary at a fixed offset from sunset.
func MinutesAfterSunset(minutes float64) Boundary {
	return Boundary{kind: boundaryInterval, value: minutes}
}

// Angle returns the depression angle and whether the boundary is angular.
func (b Boundary) Angle() (float64, bool) {
	return b.value, b.kind == boundaryAngle
}

// Interval returns the minutes after sunset and whether the boundary is a
// fixed interval.
func (b Boundary) Interval() (float64, bool) {
	return b.value, b.kind == boundaryInterval
}

// IsSunset reports whether the boundary is plain sunset (the zero value).
func (b Boundary) IsSunset() bool {
	return b.kind == boundarySunset
}

func (b Boundary) String() string {
	switch b.kind {
	case boundaryAngle:
		return fmt.Sprintf("%g°", b.value)
	case boundaryInterval:
		return fmt.Sprintf("sunset+%gmin", b.value)
	}
	return "sunset"
}

// Adjustments are per-prayer minute offsets. Minutes are float64 because the
// canonical registry uses half-minute granularity.
type Adjustments struct {
	Fajr    float64
	Sunrise float64
	Dhuhr   float64
	Asr     float64
	Maghrib float64
	Isha    float64
}

// Add composes two adjustment sets additively.
func (a Adjustments) Add(o Adjustments) Adjustments {
	return Adjustments{
		Fajr:    a.Fajr + o.Fajr,
		Sunrise: a.Sunrise + o.Sunrise,
		Dhuhr:   a.Dhuhr + o.Dhuhr,
		Asr:     a.Asr + o.Asr,
		Maghrib: a.Maghrib + o.Maghrib,
		Isha:    a.Isha + o.Isha,
	}
}

// IsZero reports whether every offset is zero.
func (a Adjustments) IsZero() bool {
	return a == Adjustments{}
}

// Params is the full parameter tuple of a calculation convention.
type Params struct {
	// FajrAngle is the solar depression angle for Fajr, degrees.
	FajrAngle float64
	// Isha is either an angle or a fixed interval after sunset.
	Isha Boundary
	// Maghrib is sunset (zero value), an angle (Shia methods), or a fixed
	// interval after sunset.
	Maghrib Boundary
	// Midnight selects the night definition for the midnight derivation.
	Midnight MidnightMode
	// Shafaq parameterizes the Moonsighting seasonal Isha fallback.
	Shafaq Shafaq
	// Adjustments are the convention's built-in minute offsets.
	Adjustments Adjustments
}

// Overrides are user-supplied replacements applied on top of a method's
// defaults before computing. Nil fields keep the method value.
type Overrides struct {
	FajrAngle *float64
	Isha      *Boundary
	Maghrib   *Boundary
	Midnight  *MidnightMode
	Shafaq    *Shafaq
}

// Apply returns a copy of p with the overrides folded in.
func (p Params) Apply(o Overrides) Params {
	if o.FajrAngle != nil {
		p.FajrAngle = *o.FajrAngle
	}
	if o.Isha != nil {
		p.Isha = *o.Isha
	}
	if o.Maghrib != nil {
		p.Maghrib = *o.Maghrib
	}
	if o.Midnight != nil {
		p.Midnight = *o.Midnight
	}
	if o.Shafaq != nil {
		p.Shafaq = *o.Shafaq
	}
	return p
}
