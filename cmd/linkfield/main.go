package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/linkfield/internal/config"
	"github.com/san-kum/linkfield/internal/counter"
	"github.com/san-kum/linkfield/internal/ebitenhost"
	"github.com/san-kum/linkfield/internal/export"
	"github.com/san-kum/linkfield/internal/field"
	"github.com/san-kum/linkfield/internal/gui"
	"github.com/san-kum/linkfield/internal/logx"
	"github.com/san-kum/linkfield/internal/metrics"
	"github.com/san-kum/linkfield/internal/storage"
	"github.com/san-kum/linkfield/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool

	// window
	backend string

	// counter
	incBy int

	// snapshot / bench
	snapFrames  int
	outFile     string
	keep        int
	benchFrames int
	benchFPS    int
	benchRuns   int

	showFormat string
)

// main registers the linkfield commands. With no subcommand it opens the
// terminal view.
func main() {
	rootCmd := &cobra.Command{
		Use:           "linkfield",
		Short:         "animated link field with a persisted click counter",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DataDir(), "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		RunE:  runTUI,
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run in a desktop window",
		RunE:  runWindow,
	}
	windowCmd.Flags().StringVar(&backend, "backend", "", "window backend (raylib|ebiten)")

	counterCmd := &cobra.Command{
		Use:   "counter",
		Short: "inspect or change the resolved-events counter",
	}
	counterCmd.AddCommand(
		&cobra.Command{Use: "show", Short: "print the counter", RunE: counterShow},
		&cobra.Command{Use: "reset", Short: "reset the counter to 605", RunE: counterReset},
	)
	incCmd := &cobra.Command{Use: "inc", Short: "increment the counter", RunE: counterInc}
	incCmd.Flags().IntVar(&incBy, "by", 1, "number of clicks")
	counterCmd.AddCommand(incCmd)

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render frames headlessly and write the last ones as svg",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 120, "frames to render")
	snapshotCmd.Flags().StringVar(&outFile, "out", "linkfield.svg", "output file")
	snapshotCmd.Flags().IntVar(&keep, "trail", 20, "frames of trail to keep")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the frame loop",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 1000, "frames to render")
	benchCmd.Flags().IntVar(&benchFPS, "fps", 0, "frame rate (0 for unthrottled)")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 1, "parallel runs over consecutive seeds")

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "print the effective configuration",
		RunE:  configShow,
	}
	configShowCmd.Flags().StringVar(&showFormat, "format", "yaml", "output format (yaml|toml)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration",
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "init [path]",
			Short: "write the effective configuration to a file (.toml for TOML)",
			Args:  cobra.MaximumNArgs(1),
			RunE:  configInit,
		},
		configShowCmd,
	)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFPS\tTHEME\tSTORE\tWINDOW")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s %dx%d\n",
					name, p.FPS, p.Theme, p.Store.Backend, p.Window.Backend, p.Window.Width, p.Window.Height)
			}
			return w.Flush()
		},
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list terminal themes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range viz.ThemeNames() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(tuiCmd, windowCmd, counterCmd, snapshotCmd, benchCmd, configCmd, presetsCmd, themesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	base := config.DefaultConfig()
	if preset != "" {
		base = config.GetPreset(preset)
		if base == nil {
			return nil, fmt.Errorf("unknown preset %q (have %v)", preset, config.ListPresets())
		}
	}
	cfg, err := config.LoadWith(configFile, base)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Log.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (storage.KV, error) {
	st, err := storage.Open(cfg.Store.Backend, cfg.StorePath(dataDir))
	if err != nil {
		return nil, fmt.Errorf("open counter store: %w", err)
	}
	return st, nil
}

func newRand(seed int64) field.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, err := logx.Setup(cfg.Log.Debug, cfg.LogPath(dataDir))
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	return viz.Run(viz.Options{
		FPS:   cfg.FPS,
		Seed:  cfg.Seed,
		Theme: cfg.Theme,
		Store: st,
		Key:   cfg.Store.Key,
	})
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logx.Stderr(cfg.Log.Debug)

	if backend != "" {
		cfg.Window.Backend = backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	switch cfg.Window.Backend {
	case "ebiten":
		return ebitenhost.Run(ebitenhost.Options{
			Width: cfg.Window.Width, Height: cfg.Window.Height,
			FPS: cfg.FPS, Seed: cfg.Seed, Store: st, Key: cfg.Store.Key,
		})
	default:
		return gui.Run(gui.Options{
			Width: cfg.Window.Width, Height: cfg.Window.Height,
			FPS: cfg.FPS, Seed: cfg.Seed, Store: st, Key: cfg.Store.Key,
		})
	}
}

// textDisplay receives counter updates on the command line.
type textDisplay struct{ text string }

func (d *textDisplay) SetText(text string) { d.text = text }
func (d *textDisplay) SetScale(float64)    {}

// clicker lets a command press the counter's control.
type clicker struct{ click func() }

func (c *clicker) OnClick(fn func()) { c.click = fn }

func mountCounter(cfg *config.Config, st counter.Store) (*counter.Widget, *textDisplay, *clicker, error) {
	d, c := &textDisplay{}, &clicker{}
	w, err := counter.Mount(d, c, st, nil, counter.WithKey(cfg.Store.Key))
	if err != nil {
		return nil, nil, nil, err
	}
	return w, d, c, nil
}

func counterShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logx.Stderr(cfg.Log.Debug)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	raw, ok, err := st.Get(cfg.Store.Key)
	if err != nil {
		return fmt.Errorf("read counter: %w", err)
	}
	if !ok {
		raw = "(unset)"
	}
	fmt.Printf("key:     %s\n", cfg.Store.Key)
	fmt.Printf("stored:  %s\n", raw)
	fmt.Printf("value:   %d\n", counter.Parse(raw))
	return nil
}

func counterInc(cmd *cobra.Command, args []string) error {
	if incBy < 1 {
		return fmt.Errorf("--by must be at least 1, got %d", incBy)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logx.Stderr(cfg.Log.Debug)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	_, d, c, err := mountCounter(cfg, st)
	if err != nil {
		return err
	}
	for i := 0; i < incBy; i++ {
		c.click()
	}
	fmt.Println(d.text)
	return nil
}

func counterReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logx.Stderr(cfg.Log.Debug)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	w, d, _, err := mountCounter(cfg, st)
	if err != nil {
		return err
	}
	w.Reset()
	fmt.Println(d.text)
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logx.Stderr(cfg.Log.Debug)

	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)
	f, err := field.New(w, h, newRand(cfg.Seed))
	if err != nil {
		return err
	}
	rec := export.NewRecorder(w, h, keep)

	n, err := field.Run(cmd.Context(), f, rec, field.RunConfig{Frames: snapFrames})
	if err != nil {
		return err
	}
	if err := rec.WriteFile(outFile); err != nil {
		return err
	}

	circles, lines := rec.Counts()
	fmt.Printf("rendered %d frames, wrote %s (%d points, %d links in last frame)\n", n, outFile, circles, lines)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchFrames < 1 {
		return fmt.Errorf("--frames must be at least 1, got %d", benchFrames)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logx.Stderr(cfg.Log.Debug)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)
	f, err := field.New(w, h, newRand(cfg.Seed))
	if err != nil {
		return err
	}
	set := metrics.Default(benchFrames)

	fmt.Printf("benchmarking %d frames on %.0fx%.0f\n\n", benchFrames, w, h)
	start := time.Now()
	n, err := field.Run(ctx, f, field.Discard, field.RunConfig{FPS: benchFPS, Frames: benchFrames}, set)
	elapsed := time.Since(start)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if hist := set.History(); len(hist) > 1 {
		fmt.Println(asciigraph.Plot(hist,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("links per frame"),
		))
		fmt.Println()
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tVALUE")
	fmt.Fprintf(tw, "frames\t%d\n", n)
	fmt.Fprintf(tw, "elapsed\t%v\n", elapsed)
	fmt.Fprintf(tw, "frames/sec\t%.0f\n", float64(n)/elapsed.Seconds())
	vals := set.Values()
	names := make([]string, 0, len(vals))
	for name := range vals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%.3f\n", name, vals[name])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if benchRuns > 1 {
		return benchEnsemble(ctx, w, h, cfg.Seed)
	}
	return nil
}

// benchEnsemble repeats the run over consecutive seeds in parallel.
func benchEnsemble(ctx context.Context, w, h float64, seed int64) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e := field.Ensemble{
		Width:     w,
		Height:    h,
		Runs:      benchRuns,
		SeedStart: seed,
		Config:    field.RunConfig{Frames: benchFrames},
	}
	start := time.Now()
	results, err := e.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\nensemble: %d runs in %v\n\n", len(results), time.Since(start))
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEED\tFRAMES\tLINKS/FRAME\tSATURATED/FRAME")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%.2f\n", r.Seed, r.Frames, r.MeanLinks(), r.MeanSaturated())
	}
	return tw.Flush()
}

func configInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := "linkfield.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func configShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if showFormat != "yaml" && showFormat != "toml" {
		return fmt.Errorf("unknown format %q", showFormat)
	}
	data, err := config.Encode("config."+showFormat, cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	fmt.Printf("# store: %s\n", cfg.StorePath(dataDir))
	return nil
}
