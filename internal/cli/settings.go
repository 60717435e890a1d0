package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salat/internal/astro"
	"github.com/smokyabdulrahman/salat/internal/calc"
	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/method"
	"github.com/smokyabdulrahman/salat/internal/prayer"
	"github.com/spf13/cobra"
)

// settings is the fully resolved per-invocation state every subcommand
// computes with: observer, calculation options, display timezone/format, and
// the date to compute.
type settings struct {
	coords   astro.Coordinates
	opts     calc.Options
	loc      *time.Location
	timeFmt  string // Go layout: "15:04" or "3:04 PM"
	selected []string
	date     astro.Date
	now      time.Time
}

// resolveSettings merges flags, config file, and defaults into settings.
func resolveSettings(cmd *cobra.Command) (*settings, error) {
	cfg := effectiveConfig(cmd)

	if cfg.Latitude == 0 && cfg.Longitude == 0 {
		return nil, fmt.Errorf("no location configured; pass --latitude/--longitude or run 'salat config set latitude <deg>'")
	}
	coords := astro.Coordinates{
		Latitude:  cfg.Latitude,
		Longitude: cfg.Longitude,
		Elevation: cfg.Elevation,
	}
	if err := coords.Validate(); err != nil {
		return nil, err
	}

	id, err := method.Parse(cfg.Method)
	if err != nil {
		return nil, fmt.Errorf("invalid method: %w (see 'salat methods')", err)
	}
	school, err := method.ParseAsrSchool(cfg.School)
	if err != nil {
		return nil, err
	}
	rule, err := method.ParseHighLatitudeRule(cfg.HighLat)
	if err != nil {
		return nil, err
	}
	shafaq, err := method.ParseShafaq(cfg.Shafaq)
	if err != nil {
		return nil, err
	}

	opts := calc.Options{
		Method:      id,
		School:      school,
		HighLatRule: rule,
	}
	if shafaq != method.ShafaqGeneral {
		opts.Overrides.Shafaq = &shafaq
	}

	loc := time.Local
	if cfg.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
		}
	}

	goTimeFmt := "15:04"
	if cfg.TimeFormat == "12h" {
		goTimeFmt = "3:04 PM"
	}

	selected := prayer.DefaultPrayerNames
	if cfg.Prayers != "" {
		selected = splitPrayerList(cfg.Prayers)
	}

	now := time.Now().In(loc)
	date := astro.Date{Year: now.Year(), Month: now.Month(), Day: now.Day()}
	if FlagDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", FlagDate, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", FlagDate)
		}
		date = astro.Date{Year: parsed.Year(), Month: parsed.Month(), Day: parsed.Day()}
	}

	return &settings{
		coords:   coords,
		opts:     opts,
		loc:      loc,
		timeFmt:  goTimeFmt,
		selected: selected,
		date:     date,
		now:      now,
	}, nil
}

// splitPrayerList splits a comma-separated prayer list, trimming whitespace.
func splitPrayerList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// needsSunnah reports whether any selected entry requires derived Sunnah
// times (and therefore a second day's calculation).
func needsSunnah(selected []string) bool {
	for _, name := range selected {
		switch name {
		case "Midnight", "Firstthird", "Lastthird":
			return true
		}
	}
	return false
}

// computeDay computes the prayer times for a date, deriving Sunnah times
// only when the selection needs them.
//
// On PolarUnresolved/Validation errors the engine usually still returns
// best-effort times with the unresolvable instants zeroed (nil when no
// sunrise/sunset is found within the rescue window); those are passed through
// alongside the error so commands can render the partial schedule.
func computeDay(st *settings, date astro.Date) (*calc.PrayerTimes, *calc.SunnahTimes, error) {
	times, err := calc.Times(date, st.coords, st.opts)
	if err != nil {
		return times, nil, err
	}

	var sunnah *calc.SunnahTimes
	if needsSunnah(st.selected) {
		sunnah, err = calc.Sunnah(date, st.coords, st.opts)
		if err != nil {
			return times, nil, err
		}
	}
	return times, sunnah, nil
}

// reportBestEffort prints the calculation error to stderr and reports
// whether a partial result is available to render in its place.
func reportBestEffort(times *calc.PrayerTimes, err error) bool {
	if err == nil {
		return true
	}
	if times == nil {
		return false
	}
	fmt.Fprintln(os.Stderr, display.Red(fmt.Sprintf("error: %v (showing best-effort times)", err)))
	return true
}

// printWarnings writes calculation warnings to stderr, one per line.
func printWarnings(warnings []calc.Warning) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, display.Warnf("warning: %s", w))
	}
}

// locationLabel renders the observer coordinates for headers.
func locationLabel(coords astro.Coordinates) string {
	label := fmt.Sprintf("%.4f, %.4f", coords.Latitude, coords.Longitude)
	if coords.Elevation != 0 {
		label += fmt.Sprintf(" (%.0fm)", coords.Elevation)
	}
	return label
}
