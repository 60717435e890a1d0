package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/prayer"
	"github.com/spf13/cobra"
)

var flagQueryDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long:  "Query a specific prayer time for today, or across multiple days with --days.\n\nValid prayer names: " + strings.Join(prayer.AllPrayerNames, ", "),
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}

	cmd.Flags().StringVar(&flagQueryDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	prayerName := args[0]

	// Validate and normalize the prayer name.
	valid := false
	for _, name := range prayer.AllPrayerNames {
		if strings.EqualFold(name, prayerName) {
			prayerName = name
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown prayer %q; valid names: %s", args[0], strings.Join(prayer.AllPrayerNames, ", "))
	}

	st, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	st.selected = []string{prayerName}

	// Determine number of days.
	days := 1
	if flagQueryDays != "" {
		switch flagQueryDays {
		case "week":
			days = 7
		case "month":
			days = 30
		default:
			n, err := fmt.Sscanf(flagQueryDays, "%d", &days)
			if err != nil || n != 1 || days < 1 {
				return fmt.Errorf("invalid --days value %q: must be a positive integer, 'week', or 'month'", flagQueryDays)
			}
		}
	}

	results, err := computeDays(st, st.date, days)
	if err != nil {
		return err
	}

	// Single day: plain "Name HH:MM" output.
	if days == 1 {
		dr := results[0]
		byName := prayer.TimesByName(dr.Times, dr.Sunnah, st.loc)
		t, ok := byName[prayerName]
		if !ok {
			if dr.Err != nil {
				return fmt.Errorf("%s could not be computed: %w", prayerName, dr.Err)
			}
			return fmt.Errorf("%s could not be computed for this date and location", prayerName)
		}
		timeStr := t.Format(st.timeFmt)

		if FlagJSON {
			out := queryJSONSingle{
				Prayer: strings.ToLower(prayerName),
				Time:   timeStr,
				Date:   dr.Date.Time().Format("02 Jan 2006"),
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("%s %s\n", prayerName, timeStr)
		printWarnings(dr.Times.Warnings)
		return nil
	}

	if FlagJSON {
		return printQueryJSON(st, results, prayerName)
	}

	// Multi-day table.
	fmt.Println()
	fmt.Printf("  %s\n", display.Bold(fmt.Sprintf("%s — %d Days", prayerName, days)))
	fmt.Println()

	todayStr := st.now.Format("2006-01-02")
	tbl := display.NewTable([]string{"Date", prayerName})

	for i, dr := range results {
		byName := prayer.TimesByName(dr.Times, dr.Sunnah, st.loc)
		tbl.AddRow([]string{
			dr.Date.Time().Format("Mon 02 Jan"),
			formatCell(byName, prayerName, st.timeFmt),
		})

		if dr.Date.String() == todayStr {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Print(tbl.Render())
	fmt.Println()
	return nil
}

type queryJSONSingle struct {
	Prayer string `json:"prayer"`
	Time   string `json:"time"`
	Date   string `json:"date"`
}

type queryJSONMulti struct {
	Location jsonLocation   `json:"location"`
	Prayer   string         `json:"prayer"`
	Days     []queryJSONDay `json:"days"`
}

type queryJSONDay struct {
	Date string `json:"date"`
	Time string `json:"time,omitempty"`
	// Error is set when the entry could not be computed for that day.
	Error string `json:"error,omitempty"`
}

func printQueryJSON(st *settings, results []dayResult, prayerName string) error {
	out := queryJSONMulti{
		Location: jsonLocation{
			Timezone:  st.loc.String(),
			Latitude:  st.coords.Latitude,
			Longitude: st.coords.Longitude,
			Elevation: st.coords.Elevation,
		},
		Prayer: strings.ToLower(prayerName),
	}

	for _, dr := range results {
		byName := prayer.TimesByName(dr.Times, dr.Sunnah, st.loc)

		day := queryJSONDay{Date: dr.Date.Time().Format("02 Jan 2006")}
		if t, ok := byName[prayerName]; ok {
			day.Time = t.Format(st.timeFmt)
		} else if dr.Err != nil {
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
