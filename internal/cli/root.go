package cli

import (
	"fmt"

	"github.com/smokyabdulrahman/salat/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Global flags shared across all subcommands.
var (
	FlagLatitude   float64
	FlagLongitude  float64
	FlagElevation  float64
	FlagMethod     string
	FlagSchool     string
	FlagHighLat    string
	FlagShafaq     string
	FlagTimezone   string
	FlagDate       string
	FlagJSON       bool
	FlagTimeFormat string
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// NewRootCmd creates the root command for the salat CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "salat",
		Short:   "Islamic prayer times CLI",
		Long:    "A full-featured CLI for Islamic prayer times, computed locally from solar astronomy.\nNo network access is required; times come from a Meeus solar position model.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loadedConfig = cfg
			return nil
		},
		// Default action: show today's prayer schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Observer latitude in degrees (overrides config)")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Observer longitude in degrees (overrides config)")
	pf.Float64Var(&FlagElevation, "elevation", 0, "Observer elevation in meters (overrides config)")
	pf.StringVar(&FlagMethod, "method", "", "Calculation method name (see 'salat methods')")
	pf.StringVar(&FlagSchool, "school", "", "Asr school: Standard or Hanafi")
	pf.StringVar(&FlagHighLat, "highlat", "", "High latitude rule: NightMiddle, AngleBased, OneSeventh, None")
	pf.StringVar(&FlagShafaq, "shafaq", "", "Twilight for Moonsighting Isha: General, Ahmer, Abyad")
	pf.StringVar(&FlagTimezone, "timezone", "", "IANA timezone for display (default: system local)")
	pf.StringVar(&FlagDate, "date", "", "Date to compute (YYYY-MM-DD, default: today)")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")

	// Register subcommands.
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newSunnahCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// PrintVersion prints the version string in the expected format.
func PrintVersion(version string) string {
	return fmt.Sprintf("salat %s\n", version)
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) *config.Config {
	cfg := loadedConfig
	if cfg == nil {
		empty := config.Config{}
		cfg = &empty
	}

	defaults := config.Defaults()
	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "latitude") {
		cfg.Latitude = FlagLatitude
	}
	if flagWasSet(flags, root, "longitude") {
		cfg.Longitude = FlagLongitude
	}
	if flagWasSet(flags, root, "elevation") {
		cfg.Elevation = FlagElevation
	}
	if flagWasSet(flags, root, "method") {
		cfg.Method = FlagMethod
	} else if cfg.Method == "" {
		cfg.Method = defaults.Method
	}
	if flagWasSet(flags, root, "school") {
		cfg.School = FlagSchool
	} else if cfg.School == "" {
		cfg.School = defaults.School
	}
	if flagWasSet(flags, root, "highlat") {
		cfg.HighLat = FlagHighLat
	} else if cfg.HighLat == "" {
		cfg.HighLat = defaults.HighLat
	}
	if flagWasSet(flags, root, "shafaq") {
		cfg.Shafaq = FlagShafaq
	} else if cfg.Shafaq == "" {
		cfg.Shafaq = defaults.Shafaq
	}
	if flagWasSet(flags, root, "timezone") {
		cfg.Timezone = FlagTimezone
	}

	// Time format: CLI flag > config > default ("24h").
	if flagWasSet(flags, root, "time-format") {
		cfg.TimeFormat = FlagTimeFormat
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaults.TimeFormat
	}

	return cfg
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}
