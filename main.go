// hostpulse is a live monitor for local host resources.
//
// It samples CPU, memory, disk and battery usage once per interval, keeps a
// rolling one-minute history of each, and shows them in an interactive
// terminal dashboard, as plain text lines, or as Prometheus metrics.
//
// Usage:
//
//	hostpulse [flags]
//
// Flags:
//
//	    --config string          Path to configuration file (default: ~/.config/hostpulse/config.yaml)
//	    --interval duration      Sampling interval (default 1s)
//	    --cpu-mode string        CPU usage mode: delta|cumulative
//	    --disk-path string       Path on the volume to measure (default: $HOME)
//	    --plain                  Print one line per tick instead of the TUI
//	    --once                   Take one sample, print it and exit
//	    --json                   Print JSON (with --plain or --once)
//	    --metrics-listen string  Serve Prometheus metrics on this address
//	    --log-level string       debug|info|warn|error
//	    --version                Print version and exit
//	-h, --help                   Show help
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/pflag"

	"gitlab.com/tinyland/lab/hostpulse/collectors/sysmetrics"
	"gitlab.com/tinyland/lab/hostpulse/config"
	"gitlab.com/tinyland/lab/hostpulse/monitor"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "hostpulse: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	configPath    string
	interval      string
	cpuMode       string
	diskPath      string
	plain         bool
	once          bool
	json          bool
	metricsListen string
	logLevel      string
	version       bool
	help          bool

	// changed records which flags were set explicitly.
	changed func(name string) bool
}

func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("hostpulse", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.configPath, "config", "", "path to configuration file (default: ~/.config/hostpulse/config.yaml)")
	fs.StringVar(&opts.interval, "interval", "", "sampling interval, e.g. 1s or 500ms")
	fs.StringVar(&opts.cpuMode, "cpu-mode", "", "CPU usage mode: delta|cumulative")
	fs.StringVar(&opts.diskPath, "disk-path", "", "path on the volume to measure (default: $HOME)")
	fs.BoolVar(&opts.plain, "plain", false, "print one line per tick instead of the TUI")
	fs.BoolVar(&opts.once, "once", false, "take one sample, print it and exit")
	fs.BoolVar(&opts.json, "json", false, "print JSON (with --plain or --once)")
	fs.StringVar(&opts.metricsListen, "metrics-listen", "", "serve Prometheus metrics on this address, e.g. 127.0.0.1:9109")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug|info|warn|error")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	fs.BoolVarP(&opts.help, "help", "h", false, "show help")
	opts.changed = fs.Changed
	return fs
}

// parseArgs parses the command line into options.
func parseArgs(args []string) (*options, *pflag.FlagSet, error) {
	opts := &options{}
	fs := newFlagSet(opts)
	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, fs, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	return opts, fs, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, fs, err := parseArgs(args)
	if errors.Is(err, pflag.ErrHelp) || (err == nil && opts.help) {
		printHelp(stderr, fs)
		return nil
	}
	if err != nil {
		return err
	}

	if opts.version {
		fmt.Fprintf(stdout, "hostpulse %s (%s) built %s\n", version, commit, date)
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	cpuMode, err := sysmetrics.ParseCPUMode(cfg.Monitor.CPUMode)
	if err != nil {
		return err
	}

	// The TUI needs a terminal; anything else gets line output.
	interactive := !opts.plain && !opts.once && term.IsTerminal(os.Stdout.Fd())

	logger, closeLog, err := newLogger(cfg.Log, !interactive, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	sampler := sysmetrics.NewOSSampler(sysmetrics.Config{
		CPUMode:  cpuMode,
		DiskPath: cfg.Monitor.DiskPath,
		Logger:   logger,
	})
	mon := monitor.New(sampler, monitor.Options{
		Interval: cfg.Interval(),
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("hostpulse starting",
		"version", version,
		"interval", mon.Interval(),
		"cpu_mode", sampler.Mode(),
		"disk_path", sampler.DiskPath(),
	)

	if opts.once {
		return runOnce(ctx, stdout, mon, opts.json)
	}

	if cfg.Metrics.Listen != "" {
		_, stopMetrics, err := serveMetrics(cfg.Metrics.Listen, mon, logger)
		if err != nil {
			return err
		}
		defer stopMetrics()
	}

	if err := mon.Start(ctx); err != nil {
		return err
	}
	defer mon.Stop()

	if !interactive {
		return runPlain(ctx, stdout, mon.Store(), opts.json)
	}
	return runTUI(ctx, sampler, mon, cfg)
}

// loadConfig reads the config file and applies explicit flag overrides.
func loadConfig(opts *options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadConfig(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.changed("interval") {
		cfg.Monitor.Interval = opts.interval
	}
	if opts.changed("cpu-mode") {
		cfg.Monitor.CPUMode = opts.cpuMode
	}
	if opts.changed("disk-path") {
		cfg.Monitor.DiskPath = opts.diskPath
	}
	if opts.changed("metrics-listen") {
		cfg.Metrics.Listen = opts.metricsListen
	}
	if opts.changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, `hostpulse %s: live CPU, memory, disk and battery monitor.

Shows an interactive dashboard when stdout is a terminal and prints one
line per tick otherwise.

Usage:
  hostpulse [flags]

Flags:
%s`, version, fs.FlagUsages())
}
