package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/olivier-w/wavescope/internal/config"
	"github.com/olivier-w/wavescope/internal/oscctl"
	"github.com/olivier-w/wavescope/internal/outlet"
	"github.com/olivier-w/wavescope/internal/source"
	"github.com/olivier-w/wavescope/internal/ui"
)

var flags struct {
	config    string
	rate      float64
	log       string
	oscSend   string
	oscListen string
	rms       bool
	labels    bool
	height    int
	chunk     int
	period    int
}

var rootCmd = &cobra.Command{
	Use:   "wavescope [FILE|DIR...]",
	Short: "Terminal waveform view with cursor and range selection",
	Long: `wavescope shows audio files as waveforms in the terminal.

Click to place the cursor, shift- or alt-drag to select a range. The cursor
and selection are sent as OSC messages and can be set over OSC.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flags.config, "config", "c", "", "YAML configuration file")
	f.Float64Var(&flags.rate, "rate", 44100, "sample rate for time units and audition")
	f.StringVarP(&flags.log, "log", "l", "", "write debug logs to the specified file (empty disables)")
	f.StringVar(&flags.oscSend, "osc-send", "", "send output to host:port over OSC")
	f.StringVar(&flags.oscListen, "osc-listen", "", "accept OSC commands on this address, e.g. :9001")
	f.BoolVar(&flags.rms, "rms", false, "draw the rms envelope")
	f.BoolVar(&flags.labels, "labels", false, "show corner labels")
	f.IntVar(&flags.height, "height", 12, "waveform height in terminal rows")
	f.IntVar(&flags.chunk, "chunk", 0, "samples refined per chunk (default 5 s at 44.1 kHz)")
	f.IntVar(&flags.period, "period", 0, "milliseconds between chunks (default 100)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if flags.config != "" {
		var err error
		if cfg, err = config.Load(flags.config); err != nil {
			return nil, err
		}
	}

	f := cmd.Flags()
	if f.Changed("rate") {
		cfg.SampleRate = flags.rate
	}
	if f.Changed("log") {
		cfg.Log.File = flags.log
	}
	if f.Changed("osc-send") {
		cfg.OSC.Send = flags.oscSend
	}
	if f.Changed("osc-listen") {
		cfg.OSC.Listen = flags.oscListen
	}
	if f.Changed("rms") {
		cfg.View.ShowRMS = flags.rms
	}
	if f.Changed("labels") {
		cfg.View.ShowLabels = flags.labels
	}
	if f.Changed("height") {
		cfg.View.Height = flags.height
	}
	if f.Changed("chunk") {
		cfg.Render.ChunkSize = flags.chunk
	}
	if f.Changed("period") {
		cfg.Render.ChunkPeriodMs = flags.period
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "wavescope")
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetOutput(io.Discard)
	}
	logger := log.Default()

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}
	reg := source.NewRegistry()
	if err := loadTables(reg, paths, logger); err != nil {
		return err
	}

	viewOpts, err := cfg.ViewOptions()
	if err != nil {
		return err
	}
	viewOpts.Logger = logger

	var sink outlet.Multi
	if cfg.OSC.Send != "" {
		host, port, err := cfg.SendAddr()
		if err != nil {
			return err
		}
		sink = append(sink, outlet.NewOSC(host, port, cfg.OSC.Prefix, logger))
		logger.Printf("sending OSC to %s:%d", host, port)
	}

	model := ui.New(reg, ui.Options{
		View:     viewOpts,
		Rows:     cfg.View.Height,
		Sink:     sink,
		Audition: cfg.Audition.Enabled,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if cfg.OSC.Listen != "" {
		srv := oscctl.New(cfg.OSC.Prefix, p.Send, logger)
		if err := srv.Listen(cfg.OSC.Listen); err != nil {
			return err
		}
		defer srv.Close()
	}

	_, err = p.Run()
	return err
}
