package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/salat/internal/calc"
	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/prayer"
	"github.com/spf13/cobra"
)

func runToday(cmd *cobra.Command, args []string) error {
	st, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	times, sunnah, calcErr := computeDay(st, st.date)
	if !reportBestEffort(times, calcErr) {
		return calcErr
	}

	// A best-effort result renders whatever it carries; a clean one must
	// resolve every selected entry.
	var prayers []prayer.Prayer
	if calcErr != nil {
		prayers = prayer.BestEffortSchedule(times, sunnah, st.loc, st.selected)
	} else {
		var err error
		prayers, err = prayer.Schedule(times, sunnah, st.loc, st.selected)
		if err != nil {
			return err
		}
	}

	// Find current and next prayers.
	current := prayer.CurrentPrayer(prayers, st.now)
	next := prayer.NextPrayer(prayers, st.now)

	if FlagJSON {
		return printTodayJSON(st, times, prayers, current, next, calcErr)
	}

	printTodayRich(st, prayers, current, next)
	printWarnings(times.Warnings)
	return nil
}

// printTodayRich renders the colored terminal output for the day's prayer
// schedule.
func printTodayRich(st *settings, prayers []prayer.Prayer, current, next *prayer.Prayer) {
	fmt.Println()
	fmt.Printf("  %s\n", display.Bold("Prayer Times"))
	fmt.Println()

	fmt.Printf("  %s\n", locationLabel(st.coords))
	fmt.Printf("  %s · %s\n", st.loc.String(), st.opts.Method)
	fmt.Printf("  %s\n", st.date.Time().Format("02 Jan 2006"))

	fmt.Println()

	// Find the max prayer name length for alignment.
	maxNameLen := 0
	for _, p := range prayers {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	// Print each prayer.
	for _, p := range prayers {
		timeStr := p.Time.Format(st.timeFmt)
		line := fmt.Sprintf("  %-*s  %s", maxNameLen, p.Name, timeStr)

		switch {
		case current != nil && p.Name == current.Name:
			// Current prayer: dimmed.
			fmt.Println(display.Dim(line))
		case next != nil && p.Name == next.Name:
			// Next prayer: accent color + countdown.
			remaining := prayer.FormatRemaining(prayer.TimeRemaining(p, st.now))
			suffix := fmt.Sprintf("  <- next in %s", remaining)
			fmt.Println(display.Accent(line) + display.Accent(suffix))
		default:
			fmt.Println(line)
		}
	}

	fmt.Println()
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location jsonLocation      `json:"location"`
	Date     string            `json:"date"`
	Method   string            `json:"method"`
	Timings  map[string]string `json:"timings"`
	Current  string            `json:"current,omitempty"`
	Next     *jsonNext         `json:"next,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
	// Error is set when the timings are a best-effort partial result.
	Error string `json:"error,omitempty"`
}

type jsonLocation struct {
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation,omitempty"`
}

type jsonNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(st *settings, times *calc.PrayerTimes, prayers []prayer.Prayer, current, next *prayer.Prayer, calcErr error) error {
	timings := make(map[string]string)
	for _, p := range prayers {
		timings[strings.ToLower(p.Name)] = p.Time.Format(st.timeFmt)
	}

	out := todayJSON{
		Location: jsonLocation{
			Timezone:  st.loc.String(),
			Latitude:  st.coords.Latitude,
			Longitude: st.coords.Longitude,
			Elevation: st.coords.Elevation,
		},
		Date:    st.date.String(),
		Method:  st.opts.Method.String(),
		Timings: timings,
	}

	for _, w := range times.Warnings {
		out.Warnings = append(out.Warnings, w.String())
	}
	if calcErr != nil {
		out.Error = calcErr.Error()
	}

	if current != nil {
		out.Current = strings.ToLower(current.Name)
	}

	if next != nil {
		remaining := prayer.FormatRemaining(prayer.TimeRemaining(*next, st.now))
		out.Next = &jsonNext{
			Prayer:    strings.ToLower(next.Name),
			Time:      next.Time.Format(st.timeFmt),
			Remaining: remaining,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
