package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salat/internal/astro"
	"github.com/smokyabdulrahman/salat/internal/calc"
	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/prayer"
	"github.com/spf13/cobra"
)

// placeholderTime marks entries a best-effort day could not resolve.
const placeholderTime = "--:--"

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days (default: 7).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, 7)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'. Display a grid of prayer times for 7 days.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the next 30 days",
		Long:  "Alias for 'list 30'. Display a grid of prayer times for 30 days.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 30)
		},
	}
}

// dayResult holds a single computed day for list/query output. Err is
// non-nil when the day carries best-effort times only.
type dayResult struct {
	Date   astro.Date
	Times  *calc.PrayerTimes
	Sunnah *calc.SunnahTimes
	Err    error
}

// formatCell formats one named entry, falling back to a placeholder when
// the day could not resolve it.
func formatCell(byName map[string]time.Time, name, timeFmt string) string {
	if t, ok := byName[name]; ok {
		return t.Format(timeFmt)
	}
	return placeholderTime
}

// runList is the handler for the list subcommand.
func runList(cmd *cobra.Command, args []string, defaultDays int) error {
	days := defaultDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid number of days: %q (must be a positive integer)", args[0])
		}
		days = n
	}

	st, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	results, err := computeDays(st, st.date, days)
	if err != nil {
		return err
	}

	if FlagJSON {
		return printListJSON(st, results)
	}

	// Rich terminal output.
	fmt.Println()
	fmt.Printf("  %s\n", display.Bold(fmt.Sprintf("Prayer Times — %d Days", days)))
	fmt.Println()
	fmt.Printf("  %s · %s\n", locationLabel(st.coords), st.opts.Method)
	fmt.Println()

	todayStr := st.now.Format("2006-01-02")

	headers := []string{"Date"}
	headers = append(headers, st.selected...)
	tbl := display.NewTable(headers)

	var warnings []calc.Warning
	var dayErrors []string
	for i, dr := range results {
		byName := prayer.TimesByName(dr.Times, dr.Sunnah, st.loc)

		row := []string{dr.Date.Time().Format("Mon 02 Jan")}
		for _, name := range st.selected {
			row = append(row, formatCell(byName, name, st.timeFmt))
		}
		tbl.AddRow(row)

		// Highlight today's row.
		if dr.Date.String() == todayStr {
			tbl.SetHighlightRow(i)
		}
		warnings = append(warnings, dr.Times.Warnings...)
		if dr.Err != nil {
			dayErrors = append(dayErrors, dr.Err.Error())
		}
	}

	fmt.Print(tbl.Render())
	fmt.Println()
	for _, msg := range dedupeStrings(dayErrors) {
		fmt.Fprintln(os.Stderr, display.Red(fmt.Sprintf("error: %s (best-effort rows shown as %s)", msg, placeholderTime)))
	}
	printWarnings(dedupeWarnings(warnings))
	return nil
}

// computeDays computes `days` consecutive days starting from `start`.
// Best-effort days (polar conditions) are kept with their error attached;
// only days with nothing to show abort the run.
func computeDays(st *settings, start astro.Date, days int) ([]dayResult, error) {
	results := make([]dayResult, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDays(i)
		times, sunnah, err := computeDay(st, date)
		if err != nil && times == nil {
			return nil, fmt.Errorf("failed to compute %s: %w", date, err)
		}

		results = append(results, dayResult{Date: date, Times: times, Sunnah: sunnah, Err: err})
	}
	return results, nil
}

// dedupeWarnings collapses identical warning messages from adjacent days.
func dedupeWarnings(warnings []calc.Warning) []calc.Warning {
	seen := make(map[string]bool)
	var out []calc.Warning
	for _, w := range warnings {
		if seen[w.Message] {
			continue
		}
		seen[w.Message] = true
		out = append(out, w)
	}
	return out
}

// dedupeStrings collapses identical messages, preserving order.
func dedupeStrings(msgs []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range msgs {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// listJSONOutput is the JSON structure for the list command.
type listJSONOutput struct {
	Location jsonLocation  `json:"location"`
	Method   string        `json:"method"`
	Days     []listJSONDay `json:"days"`
}

type listJSONDay struct {
	Date    string            `json:"date"`
	Timings map[string]string `json:"timings"`
	// Error is set when the day's timings are a best-effort partial result.
	Error string `json:"error,omitempty"`
}

func printListJSON(st *settings, results []dayResult) error {
	out := listJSONOutput{
		Location: jsonLocation{
			Timezone:  st.loc.String(),
			Latitude:  st.coords.Latitude,
			Longitude: st.coords.Longitude,
			Elevation: st.coords.Elevation,
		},
		Method: st.opts.Method.String(),
	}

	for _, dr := range results {
		byName := prayer.TimesByName(dr.Times, dr.Sunnah, st.loc)

		timings := make(map[string]string)
		for _, name := range st.selected {
			if t, ok := byName[name]; ok {
				timings[strings.ToLower(name)] = t.Format(st.timeFmt)
			}
		}

		day := listJSONDay{
			Date:    dr.Date.Time().Format("02 Jan 2006"),
			Timings: timings,
		}
		if dr.Err != nil {
			day.Error = dr.Err.Error()
		}
		out.Days = append(out.Days, day)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
