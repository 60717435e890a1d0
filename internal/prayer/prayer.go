package prayer

import (
	"fmt"
	"time"

	"github.com/smokyabdulrahman/salat/internal/calc"
)

// Prayer represents a single prayer or derived event with its name and time.
type Prayer struct {
	Name string
	Time time.Time
}

// AllPrayerNames lists every prayer/event the engine can produce: the daily
// instants in chronological order, then the Sunnah-derived night points.
var AllPrayerNames = []string{
	"Fajr", "Sunrise", "Dhuhr", "Asr", "Sunset", "Maghrib", "Isha",
	"Midnight", "Firstthird", "Lastthird",
}

// DefaultPrayerNames are the prayers tracked by default.
var DefaultPrayerNames = []string{
	"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha",
}

// ShortNames maps full prayer names to abbreviations for the compact
// status-bar formats.
var ShortNames = map[string]string{
	"Fajr":       "F",
	"Sunrise":    "S",
	"Dhuhr":      "D",
	"Asr":        "A",
	"Sunset":     "St",
	"Maghrib":    "M",
	"Isha":       "I",
	"Midnight":   "Mi",
	"Firstthird": "F3",
	"Lastthird":  "L3",
}

// IsValidName reports whether name is a known prayer/event name.
func IsValidName(name string) bool {
	for _, n := range AllPrayerNames {
		if n == name {
			return true
		}
	}
	return false
}

// isSunnahName reports whether the entry is derived from Sunnah times.
func isSunnahName(name string) bool {
	switch name {
	case "Midnight", "Firstthird", "Lastthird":
		return true
	}
	return false
}

// TimesByName maps every entry the computed day actually resolved to its
// instant in the given location's wall clock. Unresolved instants (zero
// times from polar best-effort results) and, when sunnah is nil, the
// Sunnah-derived entries are absent from the map.
func TimesByName(times *calc.PrayerTimes, sunnah *calc.SunnahTimes, loc *time.Location) map[string]time.Time {
	entries := map[string]time.Time{
		"Fajr":    times.Fajr,
		"Sunrise": times.Sunrise,
		"Dhuhr":   times.Dhuhr,
		"Asr":     times.Asr,
		"Sunset":  times.Sunset,
		"Maghrib": times.Maghrib,
		"Isha":    times.Isha,
	}
	if sunnah != nil {
		entries["Midnight"] = sunnah.Midnight
		entries["Firstthird"] = sunnah.FirstThirdOfNight
		entries["Lastthird"] = sunnah.LastThirdOfNight
	}

	byName := make(map[string]time.Time, len(entries))
	for name, t := range entries {
		if !t.IsZero() {
			byName[name] = t.In(loc)
		}
	}
	return byName
}

// Schedule assembles the selected prayers from a computed day, rendered in
// the given location's wall clock. sunnah may be nil when no Sunnah-derived
// entry is selected; selecting one without it is an error, as is selecting
// an entry the day could not compute.
func Schedule(times *calc.PrayerTimes, sunnah *calc.SunnahTimes, loc *time.Location, selected []string) ([]Prayer, error) {
	byName := TimesByName(times, sunnah, loc)

	var prayers []Prayer
	for _, name := range selected {
		if !IsValidName(name) {
			return nil, fmt.Errorf("unknown prayer name: %s", name)
		}
		t, ok := byName[name]
		if !ok {
			if isSunnahName(name) && sunnah == nil {
				return nil, fmt.Errorf("%s requires sunnah times, which were not derived", name)
			}
			return nil, fmt.Errorf("%s could not be computed for this date and location", name)
		}
		prayers = append(prayers, Prayer{Name: name, Time: t})
	}

	return prayers, nil
}

// BestEffortSchedule is Schedule for partial results: selected entries the
// day could not resolve are dropped instead of failing, so a polar
// best-effort result still renders whatever it carries.
func BestEffortSchedule(times *calc.PrayerTimes, sunnah *calc.SunnahTimes, loc *time.Location, selected []string) []Prayer {
	byName := TimesByName(times, sunnah, loc)

	var prayers []Prayer
	for _, name := range selected {
		if t, ok := byName[name]; ok {
			prayers = append(prayers, Prayer{Name: name, Time: t})
		}
	}
	return prayers
}

// NextPrayer finds the next upcoming prayer from the given slice, relative
// to now. If all prayers have passed, it returns nil (caller should derive
// tomorrow's first prayer).
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// CurrentPrayer returns the most recent prayer at or before now, or nil when
// the day's first prayer is still ahead.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var current *Prayer
	for i := range prayers {
		if prayers[i].Time.After(now) {
			break
		}
		current = &prayers[i]
	}
	return current
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(prayer Prayer, now time.Time) time.Duration {
	return prayer.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
