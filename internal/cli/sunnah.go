package cli

import (
	"encoding/json"
	"fmt"

	"github.com/smokyabdulrahman/salat/internal/calc"
	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/spf13/cobra"
)

func newSunnahCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sunnah",
		Short: "Show Sunnah times (night thirds, Duha)",
		Long:  "Display the voluntary-observance times derived from today's Maghrib and tomorrow's Fajr:\nnight thirds, middle of the night, midnight, and the Duha window.",
		RunE:  runSunnah,
	}
}

func runSunnah(cmd *cobra.Command, args []string) error {
	st, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	sunnah, err := calc.Sunnah(st.date, st.coords, st.opts)
	if err != nil {
		return err
	}

	if FlagJSON {
		return printSunnahJSON(st, sunnah)
	}

	fmt.Println()
	fmt.Printf("  %s\n", display.Bold("Sunnah Times"))
	fmt.Println()
	fmt.Printf("  %s · %s\n", locationLabel(st.coords), st.opts.Method)
	fmt.Printf("  %s\n", st.date.Time().Format("02 Jan 2006"))
	fmt.Println()

	rows := []struct {
		name  string
		value string
	}{
		{"Duha start", sunnah.DuhaStart.In(st.loc).Format(st.timeFmt)},
		{"Duha end", sunnah.DuhaEnd.In(st.loc).Format(st.timeFmt)},
		{"First third", sunnah.FirstThirdOfNight.In(st.loc).Format(st.timeFmt)},
		{"Middle of night", sunnah.MiddleOfNight.In(st.loc).Format(st.timeFmt)},
		{"Midnight", sunnah.Midnight.In(st.loc).Format(st.timeFmt)},
		{"Last third", sunnah.LastThirdOfNight.In(st.loc).Format(st.timeFmt)},
		{"Night length", fmt.Sprintf("%dh %dm", sunnah.NightDuration/60, sunnah.NightDuration%60)},
	}

	for _, r := range rows {
		fmt.Printf("  %-16s %s\n", r.name, r.value)
	}
	fmt.Println()
	return nil
}

type sunnahJSON struct {
	Location      jsonLocation `json:"location"`
	Date          string       `json:"date"`
	DuhaStart     string       `json:"duha_start"`
	DuhaEnd       string       `json:"duha_end"`
	FirstThird    string       `json:"first_third_of_night"`
	MiddleOfNight string       `json:"middle_of_night"`
	Midnight      string       `json:"midnight"`
	LastThird     string       `json:"last_third_of_night"`
	NightMinutes  int          `json:"night_duration_minutes"`
}

func printSunnahJSON(st *settings, sunnah *calc.SunnahTimes) error {
	out := sunnahJSON{
		Location: jsonLocation{
			Timezone:  st.loc.String(),
			Latitude:  st.coords.Latitude,
			Longitude: st.coords.Longitude,
			Elevation: st.coords.Elevation,
		},
		Date:          st.date.String(),
		DuhaStart:     sunnah.DuhaStart.In(st.loc).Format(st.timeFmt),
		DuhaEnd:       sunnah.DuhaEnd.In(st.loc).Format(st.timeFmt),
		FirstThird:    sunnah.FirstThirdOfNight.In(st.loc).Format(st.timeFmt),
		MiddleOfNight: sunnah.MiddleOfNight.In(st.loc).Format(st.timeFmt),
		Midnight:      sunnah.Midnight.In(st.loc).Format(st.timeFmt),
		LastThird:     sunnah.LastThirdOfNight.In(st.loc).Format(st.timeFmt),
		NightMinutes:  sunnah.NightDuration,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
