package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"starfield/internal/canvas"
	"starfield/internal/idle"
	"starfield/internal/log"
	"starfield/internal/screen"
	"starfield/internal/sky"
	"starfield/internal/ticker"
)

const envPrefix = "STARFIELD"

func main() {
	rootCmd, _ := newRootCommand()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ParseAndRun(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func ffOptions() []ff.Option {
	return []ff.Option{
		ff.WithEnvVarPrefix(envPrefix),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithAllowMissingConfigFile(true),
	}
}

// newRootCommand builds the command tree. The bare command takes the same
// flags, env vars and config file as run, whose options are returned.
func newRootCommand() (*ffcli.Command, *runOptions) {
	rootFlagSet := flag.NewFlagSet("starfield", flag.ExitOnError)
	rootOpts := registerRunFlags(rootFlagSet)

	// Run command flags
	runFlagSet := flag.NewFlagSet("starfield run", flag.ExitOnError)
	runOpts := registerRunFlags(runFlagSet)

	// Idle command flags
	idleFlagSet := flag.NewFlagSet("starfield idle", flag.ExitOnError)
	idleTimeout := idleFlagSet.Duration("timeout", idle.DefaultTimeout, "Idle time before triggering the screensaver")
	idlePoll := idleFlagSet.Duration("poll", idle.DefaultPoll, "Interval between tmux activity checks")
	idleOnce := idleFlagSet.Bool("once", false, "Trigger the screensaver immediately and exit")
	idleTicker := idleFlagSet.Bool("ticker", false, "Show the git commit ticker in the screensaver")
	idleLogLevel := idleFlagSet.String("log-level", "info", "Log level: debug, info, warn, error, none")

	// Snapshot command flags
	snapFlagSet := flag.NewFlagSet("starfield snapshot", flag.ExitOnError)
	snapOpts := registerSnapshotFlags(snapFlagSet)

	runCmd := &ffcli.Command{
		Name:       "run",
		ShortUsage: "starfield run [flags]",
		ShortHelp:  "Run the starfield screensaver",
		FlagSet:    runFlagSet,
		Options:    ffOptions(),
		Exec: func(ctx context.Context, args []string) error {
			return execRun(ctx, runOpts)
		},
	}

	idleCmd := &ffcli.Command{
		Name:       "idle",
		ShortUsage: "starfield idle [flags]",
		ShortHelp:  "Run the tmux idle watcher daemon",
		FlagSet:    idleFlagSet,
		Options:    []ff.Option{ff.WithEnvVarPrefix(envPrefix)},
		Exec: func(ctx context.Context, args []string) error {
			var runArgs []string
			if *idleTicker {
				runArgs = append(runArgs, "--ticker")
			}
			return execIdle(ctx, idle.Config{
				Timeout: *idleTimeout,
				Poll:    *idlePoll,
				Args:    runArgs,
				Logger:  log.New(os.Stdout, log.LevelFromString(*idleLogLevel)),
			}, *idleOnce)
		},
	}

	snapCmd := &ffcli.Command{
		Name:       "snapshot",
		ShortUsage: "starfield snapshot [flags]",
		ShortHelp:  "Simulate the sky headlessly and write a PNG",
		FlagSet:    snapFlagSet,
		Options:    ffOptions(),
		Exec: func(ctx context.Context, args []string) error {
			return execSnapshot(snapOpts)
		},
	}

	// Root command - runs the screensaver
	rootCmd := &ffcli.Command{
		ShortUsage:  "starfield [flags] <subcommand>",
		ShortHelp:   "A terminal starfield with twinkling stars and comets",
		LongHelp:    "Controls:\n  Arrow Up/Down   More or fewer comets\n  m               Toggle reduced motion\n  Any other key   Exit",
		FlagSet:     rootFlagSet,
		Options:     ffOptions(),
		Subcommands: []*ffcli.Command{runCmd, idleCmd, snapCmd},
		Exec: func(ctx context.Context, args []string) error {
			return execRun(ctx, rootOpts)
		},
	}
	return rootCmd, rootOpts
}

// ============================================================================
// Screensaver (run) command
// ============================================================================

type runOptions struct {
	sky        *skyFlags
	cellWidth  float64
	cellHeight float64
	dpr        float64
	fps        int
	filter     string
	cadence    string
	ticker     bool
	gitDir     string
	logFile    string
	logLevel   string
}

func registerRunFlags(fs *flag.FlagSet) *runOptions {
	def := screen.DefaultOptions()
	o := &runOptions{sky: registerSkyFlags(fs)}
	fs.Float64Var(&o.cellWidth, "cell-width", def.CellWidth, "Layout px per terminal column")
	fs.Float64Var(&o.cellHeight, "cell-height", def.CellHeight, "Layout px per terminal row")
	fs.Float64Var(&o.dpr, "dpr", def.DPR, "Device pixel ratio, 1-2 (2 supersamples)")
	fs.IntVar(&o.fps, "fps", def.FPS, "Frames per second")
	fs.StringVar(&o.filter, "filter", def.Filter.String(), "Cell sampling filter: max or box")
	fs.StringVar(&o.cadence, "cadence", "", "Comet cadence preset: calm, normal, storm (overrides -comet-every)")
	fs.BoolVar(&o.ticker, "ticker", false, "Show a git commit ticker along the bottom")
	fs.StringVar(&o.gitDir, "dir", "", "Git directory for the ticker (defaults to current dir or "+ticker.EnvGitDir+")")
	fs.StringVar(&o.logFile, "log-file", "", "Append logs to this file")
	fs.StringVar(&o.logLevel, "log-level", "info", "Log level: debug, info, warn, error, none")
	fs.String("config", "", "Config file with one 'flag value' per line")
	return o
}

func execRun(ctx context.Context, o *runOptions) error {
	logger, closeLog, err := log.OpenFile(o.logFile, log.LevelFromString(o.logLevel))
	if err != nil {
		return err
	}
	defer closeLog()

	const maxTickerCommits = 20
	var tk *ticker.Ticker
	if o.ticker {
		tk, err = ticker.Load(o.gitDir, maxTickerCommits)
		if err != nil {
			logger.Warnf("ticker disabled: %v", err)
		}
	}

	field := sky.NewField(o.sky.config(), sky.WithRand(o.sky.newRand()), sky.WithLogger(logger))
	field.SetReducedMotion(o.sky.reducedMotion)

	cadence := sky.DefaultCadence
	if o.cadence != "" {
		cadence = sky.Cadence(o.cadence)
		if !cadence.Apply(field) {
			return fmt.Errorf("unknown cadence %q", o.cadence)
		}
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer s.Fini()

	p := screen.New(s, field, screen.Options{
		CellWidth:  o.cellWidth,
		CellHeight: o.cellHeight,
		DPR:        o.dpr,
		FPS:        o.fps,
		Filter:     canvas.ParseFilter(o.filter),
		Cadence:    cadence,
		Ticker:     tk,
		Logger:     logger,
	})
	logger.Infof("starfield started (seed %d)", o.sky.seed)
	defer func() { logger.Infof("starfield stopped after %d comets", field.Spawned()) }()
	return p.Run(ctx)
}

// ============================================================================
// Idle watcher command
// ============================================================================

func execIdle(ctx context.Context, cfg idle.Config, once bool) error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("finding executable path: %w", err)
	}
	if once {
		return idle.Trigger(ctx, exePath, cfg.Args)
	}
	return idle.Watch(ctx, exePath, cfg)
}

// ============================================================================
// Snapshot command
// ============================================================================

type snapshotOptions struct {
	sky      *skyFlags
	width    float64
	height   float64
	dpr      float64
	duration time.Duration
	fps      int
	out      string
}

func registerSnapshotFlags(fs *flag.FlagSet) *snapshotOptions {
	o := &snapshotOptions{sky: registerSkyFlags(fs)}
	fs.Float64Var(&o.width, "width", 1280, "Viewport width in px")
	fs.Float64Var(&o.height, "height", 720, "Viewport height in px")
	fs.Float64Var(&o.dpr, "dpr", 1, "Device pixel ratio, 1-2")
	fs.DurationVar(&o.duration, "duration", 8*time.Second, "Simulated time before the snapshot")
	fs.IntVar(&o.fps, "fps", 60, "Simulation frames per second")
	fs.StringVar(&o.out, "out", "starfield.png", "Output PNG path")
	fs.String("config", "", "Config file with one 'flag value' per line")
	return o
}

// simulate steps a fresh field for the configured duration and returns it.
func (o *snapshotOptions) simulate() *sky.Field {
	field := sky.NewField(o.sky.config(), sky.WithRand(o.sky.newRand()))
	field.SetReducedMotion(o.sky.reducedMotion)
	field.Resize(o.width, o.height, o.dpr)

	step := time.Second / time.Duration(screen.ClampFPS(o.fps))
	for now := time.Duration(0); now <= o.duration; now += step {
		field.Frame(now)
	}
	return field
}

func execSnapshot(o *snapshotOptions) error {
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("viewport must be positive, got %gx%g", o.width, o.height)
	}
	field := o.simulate()

	if dir := filepath.Dir(o.out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(o.out)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	if err := png.Encode(f, field.Surface().Image()); err != nil {
		f.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	w, h := field.Surface().Size()
	fmt.Printf("wrote %s (%dx%d, %d stars, %d comets in flight)\n", o.out, w, h, len(field.Stars()), len(field.Comets()))
	return nil
}
