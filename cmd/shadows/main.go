// Command shadows reads a flatland description and prints the total length
// of ground covered by the flatlanders' shadows.
//
// Input (stdin by default):
//
//	<angle> <count>
//	<position> <height>   (count lines)
//
// The result is printed to stdout with 13 decimals. Invalid input prints
// Error: "<kind>" to stderr and exits with status 1.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/banshee-data/flatland/internal/config"
	"github.com/banshee-data/flatland/internal/db"
	"github.com/banshee-data/flatland/internal/fsutil"
	"github.com/banshee-data/flatland/internal/input"
	"github.com/banshee-data/flatland/internal/monitoring"
	"github.com/banshee-data/flatland/internal/report"
	"github.com/banshee-data/flatland/internal/shadow"
	"github.com/banshee-data/flatland/internal/timeutil"
	"github.com/banshee-data/flatland/internal/version"
)

// Exit codes
const (
	exitOK         = 0
	exitInvalid    = 1 // input rejected
	exitUsageError = 2 // bad flags or config
)

// Config holds the command line options.
type Config struct {
	InputPath  string
	ConfigPath string
	DBPath     string
	PlotPath   string
	ChartPath  string
	Summary    bool
	Verbose    bool
	Version    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, fsutil.OSFileSystem{}))
}

func parseFlags(args []string, stderr io.Writer) (Config, error) {
	cfg := Config{}

	fs := flag.NewFlagSet("shadows", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.InputPath, "input", "", "Read the flatland from this file instead of stdin")
	fs.StringVar(&cfg.ConfigPath, "config", "", "Path to a JSON run config (bounds, precision, angle units)")
	fs.StringVar(&cfg.DBPath, "db", "", "Record the run in this sqlite database")
	fs.StringVar(&cfg.PlotPath, "plot", "", "Write a PNG coverage plot to this path")
	fs.StringVar(&cfg.ChartPath, "chart", "", "Write an HTML chart of the merged spans to this path")
	fs.BoolVar(&cfg.Summary, "summary", false, "Print coverage statistics to stderr")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cfg.Version, "version", false, "Print version and exit")

	err := fs.Parse(args)
	return cfg, err
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, fsys fsutil.FileSystem) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return exitUsageError
	}
	monitoring.SetVerbose(opts.Verbose)

	if opts.Version {
		fmt.Fprintln(stdout, version.String())
		return exitOK
	}

	runCfg, err := loadRunConfig(fsys, opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsageError
	}

	source := "stdin"
	r := stdin
	if opts.InputPath != "" {
		source = opts.InputPath
		f, err := fsys.Open(opts.InputPath)
		if err != nil {
			monitoring.Logf("failed to open input: %v", err)
			fmt.Fprintf(stderr, "Error: %q\n", input.ErrIO.Error())
			return exitInvalid
		}
		defer f.Close()
		r = f
	}

	clock := timeutil.RealClock{}
	start := clock.Now()

	problem, err := input.Parse(r, runCfg.Limits())
	if err != nil {
		monitoring.Logf("input rejected: %v", err)
		fmt.Fprintf(stderr, "Error: %q\n", input.Kind(err))
		return exitInvalid
	}

	shadows := shadow.Project(problem.Obstacles, problem.AngleDegrees)
	total := shadow.TotalUnionLength(shadows)
	monitoring.Logf("computed %d shadows at %g degrees in %v", len(shadows), problem.AngleDegrees, clock.Since(start))

	fmt.Fprintln(stdout, report.FormatTotal(total, runCfg.GetPrecision()))

	if !opts.Summary && opts.PlotPath == "" && opts.ChartPath == "" && opts.DBPath == "" {
		return exitOK
	}

	summary := report.Summarize(shadows)
	if opts.Summary {
		fmt.Fprintln(stderr, summary.String())
	}

	if opts.PlotPath != "" {
		if err := report.WritePlot(fsys, opts.PlotPath, shadows, summary.Spans); err != nil {
			fmt.Fprintf(stderr, "Warning: failed to write plot: %v\n", err)
		} else {
			monitoring.Logf("plot written to %s", opts.PlotPath)
		}
	}

	if opts.ChartPath != "" {
		if err := report.WriteChart(fsys, opts.ChartPath, summary.Spans); err != nil {
			fmt.Fprintf(stderr, "Warning: failed to write chart: %v\n", err)
		} else {
			monitoring.Logf("chart written to %s", opts.ChartPath)
		}
	}

	if opts.DBPath != "" {
		if err := recordRun(opts.DBPath, source, problem, total, summary.Spans); err != nil {
			fmt.Fprintf(stderr, "Warning: failed to record run: %v\n", err)
		}
	}

	return exitOK
}

// loadRunConfig reads path when set and falls back to the embedded defaults.
func loadRunConfig(fsys fsutil.FileSystem, path string) (*config.RunConfig, error) {
	if path == "" {
		return config.DefaultRunConfig()
	}
	cfg, err := config.LoadRunConfig(fsys, path)
	if err != nil {
		return nil, err
	}
	monitoring.Logf("loaded run config from %s", path)
	return cfg, nil
}

func recordRun(path, source string, problem *input.Problem, total float64, spans []shadow.Interval) error {
	d, err := db.NewDB(path)
	if err != nil {
		return err
	}
	defer d.Close()

	run := &db.Run{
		Source:        source,
		AngleDegrees:  problem.AngleDegrees,
		ObstacleCount: len(problem.Obstacles),
		TotalLength:   total,
		Spans:         spans,
	}
	if err := db.NewRunStore(d).Insert(run); err != nil {
		return err
	}
	monitoring.Logf("recorded run %s in %s", run.RunID, path)
	return nil
}
