package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/method"
	"github.com/spf13/cobra"
)

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Display every supported calculation method with its twilight angles, intervals, and built-in adjustments.",
		RunE:  runMethods,
	}
}

func runMethods(cmd *cobra.Command, args []string) error {
	if FlagJSON {
		return printMethodsJSON()
	}

	fmt.Println()
	fmt.Printf("  %s\n", display.Bold("Calculation Methods"))
	fmt.Println()

	tbl := display.NewTable([]string{"Method", "Fajr", "Isha", "Maghrib", "Midnight", "Adjustments"})
	for _, id := range method.IDs() {
		p := id.Params()
		tbl.AddRow([]string{
			id.String(),
			fmt.Sprintf("%g°", p.FajrAngle),
			p.Isha.String(),
			p.Maghrib.String(),
			p.Midnight.String(),
			formatAdjustments(p.Adjustments),
		})
	}

	fmt.Print(tbl.Render())
	fmt.Println()
	return nil
}

// formatAdjustments renders the non-zero built-in offsets compactly,
// e.g. "dhuhr +5, maghrib +3".
func formatAdjustments(a method.Adjustments) string {
	if a.IsZero() {
		return "—"
	}

	var parts []string
	add := func(name string, v float64) {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%s %+g", name, v))
		}
	}
	add("fajr", a.Fajr)
	add("sunrise", a.Sunrise)
	add("dhuhr", a.Dhuhr)
	add("asr", a.Asr)
	add("maghrib", a.Maghrib)
	add("isha", a.Isha)
	return strings.Join(parts, ", ")
}

type methodJSON struct {
	Name        string             `json:"name"`
	FajrAngle   float64            `json:"fajr_angle"`
	Isha        string             `json:"isha"`
	Maghrib     string             `json:"maghrib"`
	Midnight    string             `json:"midnight"`
	Shafaq      string             `json:"shafaq"`
	Adjustments map[string]float64 `json:"adjustments,omitempty"`
}

func printMethodsJSON() error {
	var out []methodJSON
	for _, id := range method.IDs() {
		p := id.Params()
		m := methodJSON{
			Name:      id.String(),
			FajrAngle: p.FajrAngle,
			Isha:      p.Isha.String(),
			Maghrib:   p.Maghrib.String(),
			Midnight:  p.Midnight.String(),
			Shafaq:    p.Shafaq.String(),
		}
		if !p.Adjustments.IsZero() {
			m.Adjustments = adjustmentsMap(p.Adjustments)
		}
		out = append(out, m)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func adjustmentsMap(a method.Adjustments) map[string]float64 {
	m := make(map[string]float64)
	set := func(name string, v float64) {
		if v != 0 {
			m[name] = v
		}
	}
	set("fajr", a.Fajr)
	set("sunrise", a.Sunrise)
	set("dhuhr", a.Dhuhr)
	set("asr", a.Asr)
	set("maghrib", a.Maghrib)
	set("isha", a.Isha)
	return m
}
