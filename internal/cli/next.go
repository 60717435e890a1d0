package cli

import (
	"fmt"

	"github.com/smokyabdulrahman/salat/internal/prayer"
	"github.com/spf13/cobra"
)

var (
	flagFormat  string
	flagPrayers string
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with a countdown.\nThe compact formats are designed for status bars (tmux, i3, etc.).",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template")
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	st, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	// Priority: --prayers flag > config > defaults.
	if cmd.Flags().Changed("prayers") && flagPrayers != "" {
		st.selected = splitPrayerList(flagPrayers)
	}

	times, sunnah, calcErr := computeDay(st, st.date)
	if !reportBestEffort(times, calcErr) {
		return calcErr
	}

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

	// Find the next prayer.
	next := prayer.NextPrayer(prayers, st.now)

	// If all today's prayers have passed, compute tomorrow's first prayer.
	if next == nil {
		tTimes, tSunnah, tErr := computeDay(st, st.date.AddDays(1))
		if !reportBestEffort(tTimes, tErr) {
			return fmt.Errorf("failed to compute tomorrow's times: %w", tErr)
		}

		tomorrowPrayers := prayer.BestEffortSchedule(tTimes, tSunnah, st.loc, st.selected)
		if len(tomorrowPrayers) > 0 {
			next = &tomorrowPrayers[0]
		}
	}

	if next == nil {
		return fmt.Errorf("could not determine next prayer")
	}

	// Format and print.
	ctx := prayer.FormatContext{
		Method: st.opts.Method.String(),
		School: st.opts.School.String(),
	}
	output := prayer.FormatOutput(*next, st.now, flagFormat, st.timeFmt, ctx)
	fmt.Print(output)

	return nil
}
