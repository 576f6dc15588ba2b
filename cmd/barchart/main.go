package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/phanxgames/barchart"
	"github.com/phanxgames/barchart/feed"
	"github.com/spf13/cobra"
)

var (
	configFile string
	scriptFile string
	feedFile   string
	debug      bool
	seed       uint64
	showFPS    bool

	// headless
	frames     int
	sampleRate int
	plotWidth  int
	plotHeight int
	noColor    bool
)

// main registers the commands and runs the root command, which opens the
// chart window. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "barchart",
		Short:         "live 3D bar chart",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runWindow,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&scriptFile, "script", "", "script of data, wait and screenshot steps (yaml or json)")
	rootCmd.PersistentFlags().StringVar(&feedFile, "feed", "", "replay record batches from a file instead of random data")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging and checks")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (0 uses the config seed or the clock)")
	rootCmd.Flags().BoolVar(&showFPS, "fps", false, "show the FPS overlay")

	headlessCmd := &cobra.Command{
		Use:   "headless",
		Short: "run without a window and plot bar heights",
		RunE:  runHeadless,
	}
	headlessCmd.Flags().IntVar(&frames, "frames", 600, "number of ticks to simulate")
	headlessCmd.Flags().IntVar(&sampleRate, "every", 6, "sample bar heights every n ticks")
	headlessCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	headlessCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")
	headlessCmd.Flags().BoolVar(&noColor, "no-color", false, "plain summary output")

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(headlessCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func loadConfig() (*barchart.Config, error) {
	cfg := barchart.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = barchart.LoadConfig(configFile); err != nil {
			return nil, err
		}
	}
	if debug {
		cfg.Debug = true
	}
	if showFPS {
		cfg.ShowFPS = true
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return cfg, cfg.Validate()
}

func newFeed(cfg *barchart.Config) (barchart.Feed, error) {
	if feedFile == "" {
		r := feed.NewRandom(cfg.Seed, cfg.Records)
		r.Churn = cfg.Churn
		return r, nil
	}
	data, err := os.ReadFile(feedFile)
	if err != nil {
		return nil, err
	}
	return feed.LoadScript(data)
}

// setup builds the scene and app shared by the window and headless commands.
func setup(interactive bool) (*barchart.Config, *barchart.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := barchart.NewLogger(os.Stderr, cfg.Debug)
	slog.SetDefault(logger)

	src, err := newFeed(cfg)
	if err != nil {
		return nil, nil, err
	}

	scene := barchart.NewScene()
	scene.SetLogger(logger)
	scene.SetDebugMode(cfg.Debug)
	cfg.ApplyScene(scene)

	opts := cfg.AppOptions()
	opts.Logger = logger
	opts.Interactive = interactive
	app := barchart.NewApp(scene, src, opts)

	if scriptFile != "" {
		data, err := os.ReadFile(scriptFile)
		if err != nil {
			return nil, nil, err
		}
		runner, err := barchart.LoadScript(data)
		if err != nil {
			return nil, nil, err
		}
		app.AttachScript(runner)
	}

	if err := app.Start(); err != nil {
		return nil, nil, err
	}
	logger.Debug("config", "seed", cfg.Seed, "easing", cfg.Easing, "duplicates", cfg.Duplicates)
	return cfg, app, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, app, err := setup(true)
	if err != nil {
		return err
	}
	defer app.Stop()

	err = barchart.Run(app.Scene(), cfg.RunConfig())
	if errors.Is(err, barchart.ErrSurfaceUnavailable) {
		return fmt.Errorf("%w (try `barchart headless`)", err)
	}
	return err
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, app, err := setup(false)
	if err != nil {
		return err
	}
	defer app.Stop()

	rec := barchart.NewRecorder(app.Chart(), sampleRate)
	dt := float32(1.0 / float64(cfg.TPS))
	for range frames {
		if err := app.Scene().Step(dt); err != nil {
			return err
		}
		rec.Sample()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, rec.Plot(plotWidth, plotHeight))
	printSummary(out, app.Chart())
	fmt.Fprintf(out, "%d joins, %d bars, %d samples\n", app.Chart().Pass(), app.Chart().Len(), rec.Len())
	return nil
}

// printSummary lists the final bars left to right. Exiting bars are dimmed.
func printSummary(w io.Writer, chart *barchart.Chart) {
	if noColor {
		color.NoColor = true
	}
	key := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)
	for _, b := range chart.Bars() {
		p := b.Position()
		if b.Exiting() {
			dim.Fprintf(w, "  %-10s x=%5.2f  exiting\n", b.Key, p.X)
			continue
		}
		key.Fprintf(w, "  %-10s", b.Key)
		fmt.Fprintf(w, " x=%5.2f  height=%.3f  opacity=%.2f\n", p.X, b.Height(), b.Opacity())
	}
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg := barchart.DefaultConfig()
	if len(args) == 0 {
		data, err := barchart.MarshalConfig(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := barchart.SaveConfig(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}
