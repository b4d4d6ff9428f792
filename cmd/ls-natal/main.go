// Command ls-natal computes natal charts and shows them in a terminal UI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-natal/internal/chart"
	"github.com/litescript/ls-natal/internal/config"
	"github.com/litescript/ls-natal/internal/houses"
	"github.com/litescript/ls-natal/internal/logging"
	"github.com/litescript/ls-natal/internal/report"
	"github.com/litescript/ls-natal/internal/ui"
	"github.com/litescript/ls-natal/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode bool
	jsonPath    string
	compareMode bool
	watchMode   bool
)

func main() {
	configPath := flag.String("config", "", "YAML config file (LS_NATAL_* env vars override it)")
	date := flag.String("date", "", "Birth date YYYY-MM-DD (default: today)")
	clock := flag.String("time", "", "Local birth time HH:MM[:SS] (default: now, or noon when -date is set)")
	tz := flag.Float64("tz", 0, "UTC offset in hours, e.g. -5 or 5.5 (default: config location)")
	lat := flag.Float64("lat", 0, "Latitude in degrees, north positive (default: config location)")
	lon := flag.Float64("lon", 0, "Longitude in degrees, east positive (default: config location)")
	location := flag.String("location", "", "Place name shown with the chart")
	system := flag.String("houses", "", "House system: placidus, koch, equal (default: config)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write logs to this file while the TUI runs")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.StringVar(&jsonPath, "json", "", "Export chart JSON to file (use - for stdout)")
	flag.BoolVar(&compareMode, "compare", false, "Print cusps for every house system side by side")
	flag.BoolVar(&watchMode, "watch", false, "Reload the config file when it changes")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ls-natal v%s\n", version.Version)
		return
	}

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags given explicitly win over the config file.
	overrides := flagOverrides{
		set:      map[string]bool{},
		tz:       *tz,
		lat:      *lat,
		lon:      *lon,
		location: *location,
		system:   *system,
		logLevel: *logLevel,
	}
	flag.Visit(func(f *flag.Flag) { overrides.set[f.Name] = true })
	overrides.apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	logger := logging.New(logging.ParseLevel(cfg.Log.Level))
	logger.SetFormat(logging.ParseFormat(cfg.Log.Format))

	moment, err := parseMoment(*date, *clock, cfg.Location.TZOffset, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts, err := cfg.ChartOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	place := cfg.Place()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	var watcher *config.Watcher
	if watchMode {
		if *configPath == "" {
			fmt.Fprintln(os.Stderr, "Error: -watch needs -config")
			os.Exit(1)
		}
		watcher, err = config.NewWatcher(*configPath, config.DefaultDebounce)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		watcher.Override(overrides.apply)
		go watcher.Run(ctx)
	}

	// Headless mode: no TUI. Without a terminal there is nothing to draw on.
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	headless := summaryMode || jsonPath != "" || compareMode || !isTTY
	if headless {
		if !summaryMode && jsonPath == "" && !compareMode {
			summaryMode = true
		}
		if err := runHeadless(ctx, moment, place, cfg.Location.Name, opts, watcher, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	c, err := chart.Compute(moment, place, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Logs would tear the alt screen; send them to a file or drop them.
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else {
		logger = logging.Discard()
	}

	model := ui.New(c, opts, cfg.Location.Name, logger)
	if watcher != nil {
		model = model.WithWatcher(watcher)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless prints the requested outputs once, then again after every
// config reload while a watcher is active.
func runHeadless(ctx context.Context, moment chart.BirthMoment, place chart.GeoCoordinate, location string, opts chart.Options, watcher *config.Watcher, logger *logging.Logger) error {
	outputOnce := func(opts chart.Options) error {
		start := time.Now()
		c, err := chart.Compute(moment, place, opts)
		if err != nil {
			return err
		}
		logger.Debug("chart computed",
			logging.Str("moment", moment.String()),
			logging.Str("houses", c.HouseSystem.String()),
			logging.Dur("took", time.Since(start)))

		// Export JSON if requested
		if jsonPath != "" {
			export := report.Export(c, location)
			if jsonPath == "-" {
				if err := export.WriteJSON(os.Stdout); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				f, err := os.Create(jsonPath)
				if err != nil {
					return fmt.Errorf("create JSON file: %w", err)
				}
				defer f.Close()
				if err := export.WriteJSON(f); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
				logger.Info("chart exported", logging.Str("path", jsonPath))
			}
		}

		// Print summary table if requested
		if summaryMode {
			report.WriteSummary(os.Stdout, c, location)
		}

		if compareMode {
			if summaryMode {
				fmt.Println()
			}
			charts, err := compareSystems(ctx, moment, place, opts)
			if err != nil {
				return err
			}
			report.WriteCuspComparison(os.Stdout, charts)
		}
		return nil
	}

	if err := outputOnce(opts); err != nil {
		return err
	}
	if watcher == nil {
		return nil
	}

	// Watch mode: repeat after each reload
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-watcher.Errors():
			logger.Warn("config reload failed", logging.Err(err))
		case cfg := <-watcher.Changes():
			next, err := applyReload(cfg, logger)
			if err != nil {
				logger.Warn("config reload failed", logging.Err(err))
				continue
			}
			logger.Info("config reloaded", logging.Str("houses", next.HouseSystem.String()))
			fmt.Println()
			if err := outputOnce(next); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// flagOverrides holds the flag values and the names of the flags given
// explicitly on the command line.
type flagOverrides struct {
	set      map[string]bool
	tz       float64
	lat      float64
	lon      float64
	location string
	system   string
	logLevel string
}

// apply writes the explicit flags over cfg. It runs on the initial load and
// on every reload.
func (o flagOverrides) apply(cfg *config.Config) {
	if o.set["tz"] {
		cfg.Location.TZOffset = o.tz
	}
	if o.set["lat"] || o.set["lon"] {
		cfg.Location.Name = ""
	}
	if o.set["lat"] {
		cfg.Location.Latitude = o.lat
	}
	if o.set["lon"] {
		cfg.Location.Longitude = o.lon
	}
	if o.set["location"] {
		cfg.Location.Name = o.location
	}
	if o.system != "" {
		cfg.Chart.HouseSystem = strings.ToLower(o.system)
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
}

// applyReload switches the logger to a reloaded configuration and returns
// its chart options.
func applyReload(cfg *config.Config, logger *logging.Logger) (chart.Options, error) {
	opts, err := cfg.ChartOptions()
	if err != nil {
		return chart.Options{}, err
	}
	logger.SetLevel(logging.ParseLevel(cfg.Log.Level))
	logger.SetFormat(logging.ParseFormat(cfg.Log.Format))
	return opts, nil
}

// compareSystems computes the chart once per house system, concurrently.
func compareSystems(ctx context.Context, moment chart.BirthMoment, place chart.GeoCoordinate, opts chart.Options) ([]*chart.Chart, error) {
	reqs := make([]chart.Request, 0, len(houses.Systems))
	for _, sys := range houses.Systems {
		o := opts
		o.HouseSystem = sys
		reqs = append(reqs, chart.Request{Moment: moment, Place: place, Options: o})
	}
	return chart.ComputeMany(ctx, reqs, len(reqs))
}

// parseMoment builds a birth moment from -date and -time. Missing parts are
// taken from now, read at the given UTC offset.
func parseMoment(date, clock string, tz float64, now time.Time) (chart.BirthMoment, error) {
	local := now.In(time.FixedZone("", int(tz*3600)))
	m := chart.MomentFromTime(local)
	m.TZOffset = tz

	if date != "" {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			return chart.BirthMoment{}, fmt.Errorf("invalid -date %q: want YYYY-MM-DD", date)
		}
		m.Year, m.Month, m.Day = d.Year(), int(d.Month()), d.Day()
	}
	if clock != "" {
		t, err := time.Parse("15:04:05", clock)
		if err != nil {
			t, err = time.Parse("15:04", clock)
		}
		if err != nil {
			return chart.BirthMoment{}, fmt.Errorf("invalid -time %q: want HH:MM or HH:MM:SS", clock)
		}
		m.Hour, m.Minute, m.Second = t.Hour(), t.Minute(), t.Second()
	} else if date != "" {
		m.Hour, m.Minute, m.Second = 12, 0, 0
	}
	return m, nil
}
