package morse

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/cwtrain/cmd/common"
	"github.com/gigurra/cwtrain/cmd/common/config"
	"github.com/gigurra/cwtrain/cmd/morse/cw"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type Params struct {
	Text        []string `pos:"true" optional:"true" help:"Text to send. If none provided, reads one message per line from stdin."`
	Decode      bool     `short:"d" help:"Decode dot/dash notation back to text." default:"false"`
	Print       bool     `short:"p" help:"Print the dot/dash notation of each message." default:"false"`
	NoAudio     bool     `short:"n" help:"Do not play audio." default:"false"`
	ShowText    bool     `short:"s" help:"Print each word after it has been sent." default:"false"`
	WPM         float64  `short:"w" help:"Element (character) speed in words per minute." default:"20"`
	Overall     float64  `short:"o" help:"Overall speed in words per minute; lower than --wpm stretches the spacing (Farnsworth)." default:"10"`
	Adjust      float64  `short:"a" help:"Timing adjustment multiplier, >1.0 lengthens elements." default:"1.0"`
	Freq        float64  `short:"f" help:"Tone frequency in Hz." default:"700"`
	SampleRate  int      `help:"Audio sample rate in Hz." default:"44100"`
	Ramp        float64  `help:"Fade in/out length of each tone in seconds, 0 disables." default:"0"`
	Pause       float64  `help:"Pause between messages in seconds." default:"1.0"`
	Out         string   `help:"Write audio to this WAV file instead of the speaker." optional:"true"`
	SkipUnknown bool     `help:"Drop characters without a Morse code instead of sending them as silent characters." default:"false"`
	Save        bool     `help:"Save the speed and audio settings as defaults in the config file." default:"false"`
	Verbose     bool     `short:"v" help:"Enable debug logging." default:"false"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "morse",
		Short:       "Send text as Morse code audio",
		Long:        "Play text as Morse code using Farnsworth timing. Defaults come from ~/.cwtrain/config.json; flags override them.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			common.SetupLogging(os.Stderr, params.Verbose)
			if err := loadDefaults(params, cmd.Flags().Changed); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "morse: %v\n", err)
				os.Exit(1)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			// After the first signal, a second one gets the default behaviour and kills the process.
			context.AfterFunc(ctx, stop)

			if err := Run(ctx, params, os.Stdin, os.Stdout); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "morse: %v\n", err)
				stop()
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// loadDefaults fills every setting not given on the command line from the config file.
func loadDefaults(params *Params, changed func(string) bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyConfig(params, cfg.Morse, changed)

	if params.Save {
		saved := &config.Config{Morse: settingsOf(params)}
		if err := config.Save(saved); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		slog.Info("saved defaults", "path", config.ConfigPath())
	}
	return nil
}

func applyConfig(params *Params, m *config.MorseConfig, changed func(string) bool) {
	if m == nil {
		return
	}
	if !changed("wpm") {
		params.WPM = m.ElementWPM
	}
	if !changed("overall") {
		params.Overall = m.OverallWPM
	}
	if !changed("adjust") {
		params.Adjust = m.Adjustment
	}
	if !changed("freq") {
		params.Freq = m.Frequency
	}
	if !changed("sample-rate") {
		params.SampleRate = m.SampleRate
	}
	if !changed("ramp") {
		params.Ramp = m.Ramp
	}
	if !changed("pause") {
		params.Pause = m.PauseSeconds()
	}
	if !changed("show-text") {
		params.ShowText = m.ShowText
	}
}

func settingsOf(params *Params) *config.MorseConfig {
	return &config.MorseConfig{
		ElementWPM: params.WPM,
		OverallWPM: params.Overall,
		Adjustment: params.Adjust,
		Frequency:  params.Freq,
		SampleRate: params.SampleRate,
		Ramp:       params.Ramp,
		ShowText:   params.ShowText,
		Pause:      lo.ToPtr(params.Pause),
	}
}

func (p *Params) speed() cw.SpeedConfig {
	return cw.SpeedConfig{ElementWPM: p.WPM, OverallWPM: p.Overall, Adjustment: p.Adjust}
}

func (p *Params) rendererConfig() cw.RendererConfig {
	return cw.RendererConfig{Frequency: p.Freq, SampleRate: p.SampleRate, Ramp: p.Ramp}
}

// Run sends the positional text, or each line read from in, as Morse code.
func Run(ctx context.Context, params *Params, in io.Reader, out io.Writer) error {
	if params.Decode {
		return forEachMessage(ctx, params, in, func(i int, msg string) error {
			_, err := fmt.Fprintln(out, cw.FromMorse(msg))
			return err
		})
	}

	speed := params.speed()
	if err := speed.Validate(); err != nil {
		return err
	}
	renderer, err := cw.NewRenderer(params.rendererConfig())
	if err != nil {
		return err
	}
	timing := cw.ComputeTimings(speed)
	slog.Debug("computed timings",
		"dot", timing.Dot,
		"dash", timing.Dash,
		"interCharGap", timing.InterCharGap,
		"wordGap", timing.WordGap,
		"effectiveWPM", timing.EffectiveWPM())

	var player *cw.Player
	if !params.NoAudio {
		var echo *cw.Echo
		if params.ShowText {
			echo = cw.NewEcho(out)
		}
		sink, closeSink, err := openSink(params, renderer, echo)
		if err != nil {
			return err
		}
		defer closeSink()

		var opts []cw.EncoderOption
		if params.SkipUnknown {
			opts = append(opts, cw.SkipUnknown())
		}
		player = cw.NewPlayer(timing, renderer, sink, opts...)
	}

	return forEachMessage(ctx, params, in, func(i int, msg string) error {
		if params.Print {
			if _, err := fmt.Fprintln(out, cw.ToMorse(msg)); err != nil {
				return err
			}
		}
		if player == nil {
			return nil
		}
		if i > 0 {
			if err := player.Pause(ctx, params.Pause); err != nil {
				return err
			}
		}
		return player.Play(ctx, msg)
	})
}

func openSink(params *Params, renderer *cw.Renderer, echo *cw.Echo) (cw.Sink, func(), error) {
	if params.Out == "" {
		sink, err := cw.OpenDevice(renderer, echo)
		if err != nil {
			return nil, nil, err
		}
		slog.Debug("opened audio device", "backend", cw.AudioBackend)
		return sink, func() {}, nil
	}

	f, err := os.Create(params.Out)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", params.Out, err)
	}
	sink := cw.NewWavSink(f, renderer, echo)
	return sink, func() {
		if err := sink.Close(); err != nil {
			slog.Error("failed to finish wav file", "file", params.Out, "error", err)
		}
		if err := f.Close(); err != nil {
			slog.Error("failed to close wav file", "file", params.Out, "error", err)
		}
	}, nil
}

// forEachMessage calls fn with the joined positional text, or with every non-empty line of in.
// It returns ctx.Err() as soon as ctx is done, even while waiting for input.
func forEachMessage(ctx context.Context, params *Params, in io.Reader, fn func(i int, msg string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(params.Text) > 0 {
		return fn(0, strings.Join(params.Text, " "))
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprintln(os.Stderr, "Type a message and press Enter. Ctrl-D to quit.")
	}

	// A blocked read cannot be interrupted, so lines are read on their own goroutine.
	// If ctx ends first, that goroutine exits with the next line or EOF.
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	i := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case text, ok := <-lines:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				return <-scanErr
			}
			line := strings.TrimSpace(text)
			if line == "" {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i, line); err != nil {
				return err
			}
			i++
		}
	}
}
