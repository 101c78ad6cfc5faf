// Command graphstats loads an undirected edge list and reports its degree
// distribution, average degree and connected components.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/cluso-graphstats/pkg/analyzer"
	"github.com/dd0wney/cluso-graphstats/pkg/config"
	"github.com/dd0wney/cluso-graphstats/pkg/logging"
	"github.com/dd0wney/cluso-graphstats/pkg/metrics"
	"github.com/dd0wney/cluso-graphstats/pkg/pipeline"
	"github.com/dd0wney/cluso-graphstats/pkg/stats"
)

type flags struct {
	configPath string
	input      string
	report     string
	mmap       bool
	workers    int
	logLevel   string
	plain      bool
	query      string
	textfile   string
}

func parseFlags(fs *flag.FlagSet, args []string) (*flags, map[string]bool, error) {
	f := &flags{}
	fs.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&f.input, "input", config.DefaultInput, "Edge-list CSV (.snappy or .sz for snappy framing)")
	fs.StringVar(&f.report, "report", config.DefaultReport, "Degree distribution report path")
	fs.BoolVar(&f.mmap, "mmap", false, "Read the input through a memory mapping")
	fs.IntVar(&f.workers, "workers", 1, "Goroutines used to tally degrees")
	fs.StringVar(&f.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.BoolVar(&f.plain, "plain", false, "Disable console styling")
	fs.StringVar(&f.query, "query", "", "Print the result of a GraphQL query over the statistics instead of reporting")
	fs.StringVar(&f.textfile, "metrics-textfile", "", "Write Prometheus metrics to this textfile")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set, nil
}

// resolve layers the config file, the environment and explicit flags.
func resolve(f *flags, set map[string]bool) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return config.Config{}, err
	}

	if set["input"] {
		cfg.Input.Path = f.input
	}
	if set["report"] {
		cfg.Report.Path = f.report
	}
	if set["mmap"] {
		cfg.Input.Mmap = f.mmap
	}
	if set["workers"] {
		cfg.Analysis.Workers = f.workers
	}
	if set["log-level"] {
		cfg.Log.Level = f.logLevel
	}
	if f.plain {
		cfg.Report.Styled = false
	}
	if set["metrics-textfile"] {
		cfg.Metrics.Textfile = f.textfile
	}
	return cfg, cfg.Validate()
}

func runQuery(cfg config.Config, logger logging.Logger, reg *metrics.Registry, query string) error {
	a, err := analyzer.Load(cfg.Input.Path,
		analyzer.WithOpenOptions(cfg.Input.OpenOptions()),
		analyzer.WithWorkers(cfg.Analysis.Workers),
		analyzer.WithLogger(logger),
		analyzer.WithMetrics(reg),
	)
	if err != nil {
		return err
	}

	result, err := stats.Query(a.Summary(), query)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if result.HasErrors() {
		return fmt.Errorf("query failed: %v", result.Errors)
	}
	return nil
}

func run() int {
	f, set, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		return 2
	}

	cfg, err := resolve(f, set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.Log.Level))
	reg := metrics.DefaultRegistry()

	if f.query != "" {
		if err := runQuery(cfg, logger, reg, f.query); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := pipeline.Run(ctx, cfg,
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(reg),
	)
	if err != nil {
		return 1
	}
	if result.Err() != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
