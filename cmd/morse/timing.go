package morse

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/cwtrain/cmd/common"
	"github.com/gigurra/cwtrain/cmd/common/config"
	"github.com/gigurra/cwtrain/cmd/morse/cw"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

type TimingParams struct {
	Text    []string `pos:"true" optional:"true" help:"Optional text to measure."`
	WPM     float64  `short:"w" help:"Element (character) speed in words per minute." default:"20"`
	Overall float64  `short:"o" help:"Overall speed in words per minute." default:"10"`
	Adjust  float64  `short:"a" help:"Timing adjustment multiplier." default:"1.0"`
}

func TimingCmd() *cobra.Command {
	return boa.CmdT[TimingParams]{
		Use:         "timing",
		Short:       "Show Morse element and spacing durations",
		Long:        "Print the dot, dash and gap durations for the given speeds, and optionally how long a text takes to send.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *TimingParams, cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "timing: failed to load config: %v\n", err)
				os.Exit(1)
			}
			changed := cmd.Flags().Changed
			if m := cfg.Morse; m != nil {
				if !changed("wpm") {
					params.WPM = m.ElementWPM
				}
				if !changed("overall") {
					params.Overall = m.OverallWPM
				}
				if !changed("adjust") {
					params.Adjust = m.Adjustment
				}
			}
			if err := RunTiming(params, os.Stdout); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "timing: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// RunTiming writes the timing table for params to out.
func RunTiming(params *TimingParams, out io.Writer) error {
	speed := cw.SpeedConfig{ElementWPM: params.WPM, OverallWPM: params.Overall, Adjustment: params.Adjust}
	if err := speed.Validate(); err != nil {
		return err
	}
	ts := cw.ComputeTimings(speed)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Element", "Seconds", "Dot units"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	rows := []struct {
		name    string
		seconds float64
	}{
		{"dot", ts.Dot},
		{"dash", ts.Dash},
		{"intra-character gap", ts.IntraCharGap},
		{"inter-character gap", ts.InterCharGap},
		{"word gap", ts.WordGap},
	}
	for _, r := range rows {
		t.AppendRow(table.Row{r.name, fmt.Sprintf("%.3f", r.seconds), fmt.Sprintf("%.2f", r.seconds/ts.Dot)})
	}

	t.AppendSeparator()
	t.AppendRow(table.Row{"slowdown factor", "", fmt.Sprintf("%.2f", ts.SlowdownFactor)})
	t.AppendRow(table.Row{"effective WPM", "", fmt.Sprintf("%.1f", ts.EffectiveWPM())})

	if len(params.Text) > 0 {
		msg := strings.Join(params.Text, " ")
		events := cw.NewEncoder(ts).Encode(msg)
		t.AppendSeparator()
		t.AppendRow(table.Row{"events", "", fmt.Sprintf("%d", len(events))})
		t.AppendRow(table.Row{"total", fmt.Sprintf("%.3f", cw.TotalSeconds(events)), ""})
	}

	t.Render()
	return nil
}
