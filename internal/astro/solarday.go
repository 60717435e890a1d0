package astro

import (
	"fmt"
	"math"
	"time"
)

// Coordinates is an observer position on the Earth. Latitude and longitude
// are degrees (north/east positive); Elevation is meters above sea level.
type Coordinates struct {
	Latitude  float64
	Longitude float64
	Elevation float64
}

// Validate checks the coordinate ranges the engine accepts.
func (c Coordinates) Validate() error {
	switch {
	case math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90:
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Latitude)
	case math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180:
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Longitude)
	case math.IsNaN(c.Elevation) || c.Elevation < -500 || c.Elevation > 10000:
		return fmt.Errorf("elevation %vm out of range [-500, 10000]", c.Elevation)
	}
	return nil
}

// riseSetAngle is the solar altitude at rise/set under standard refraction:
// -50 arcminutes (34' refraction + 16' solar semidiameter).
const riseSetAngle = -50.0 / 60

// riseSetAltitude returns the rise/set target altitude, depressed further by
// 0.0347*sqrt(elevation) degrees for observers above sea level.
func riseSetAltitude(elevation float64) float64 {
	if elevation <= 0 {
		return riseSetAngle
	}
	return riseSetAngle - 0.0347*math.Sqrt(elevation)
}

// SolarDay solves sun events for one observer and one civil date. All event
// results are decimal UTC hours on that date; NaN marks an event that does
// not occur (polar day or night).
type SolarDay struct {
	date     Date
	observer Coordinates

	prev, today, next SolarCoordinates
	approxTransit     float64

	// Transit is the corrected solar transit (Dhuhr), decimal UTC hours.
	Transit float64
	// Sunrise and Sunset at the standard rise/set altitude, adjusted for
	// observer elevation. Decimal UTC hours; NaN in polar conditions.
	Sunrise float64
	Sunset  float64
}

// NewSolarDay computes the solar coordinates for the date and its two
// neighbors and solves transit, sunrise, and sunset.
func NewSolarDay(date Date, observer Coordinates) *SolarDay {
	jd := JulianDayOf(date)

	d := &SolarDay{
		date:     date,
		observer: observer,
		prev:     NewSolarCoordinates(jd - 1),
		today:    NewSolarCoordinates(jd),
		next:     NewSolarCoordinates(jd + 1),
	}

	d.approxTransit = approximateTransit(observer.Longitude,
		d.today.ApparentSiderealTime, d.today.RightAscension)
	d.Transit = correctedTransit(d.approxTransit, observer.Longitude,
		d.today.ApparentSiderealTime,
		d.today.RightAscension, d.prev.RightAscension, d.next.RightAscension)

	alt := riseSetAltitude(observer.Elevation)
	d.Sunrise = d.HourAngle(alt, false)
	d.Sunset = d.HourAngle(alt, true)

	return d
}

// Date returns the civil date the day was solved for.
func (d *SolarDay) Date() Date { return d.date }

// Observer returns the coordinates the day was solved for.
func (d *SolarDay) Observer() Coordinates { return d.observer }

// Declination returns the sun's declination at 0h UTC of the date.
func (d *SolarDay) Declination() float64 { return d.today.Declination }

// HourAngle returns the decimal UTC hour at which the sun reaches the given
// altitude (degrees; negative below the horizon), before or after transit.
// NaN when the sun never reaches the altitude on this date.
func (d *SolarDay) HourAngle(angle float64, afterTransit bool) float64 {
	return correctedHourAngle(d.approxTransit, angle, d.observer, afterTransit,
		d.today.ApparentSiderealTime,
		d.today.RightAscension, d.prev.RightAscension, d.next.RightAscension,
		d.today.Declination, d.prev.Declination, d.next.Declination)
}

// Afternoon returns the decimal UTC hour at which an object's shadow equals
// shadowLength times its height plus its noon shadow: the Asr geometry.
// shadowLength is 1 for the standard school, 2 for Hanafi.
func (d *SolarDay) Afternoon(shadowLength float64) float64 {
	tangent := math.Abs(d.observer.Latitude - d.today.Declination)
	inverse := shadowLength + Tan(tangent)
	angle := Arctan(1 / inverse)
	return d.HourAngle(angle, true)
}

// TimeAt converts decimal UTC hours on the solved date into an instant,
// rounded to the nearest second. ok is false when hours is NaN.
func (d *SolarDay) TimeAt(hours float64) (t time.Time, ok bool) {
	return TimeAtHours(d.date, hours)
}

// TimeAtHours converts decimal UTC hours on the given date into an instant,
// rounded to the nearest second. Hours outside [0, 24) roll the date over.
func TimeAtHours(date Date, hours float64) (t time.Time, ok bool) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return time.Time{}, false
	}
	sec := int64(math.Round(hours * 3600))
	return date.Time().Add(time.Duration(sec) * time.Second), true
}
