// Command ledgerstream reads a CSV transaction stream and writes the
// resulting per-client account balances as CSV.
//
// Usage:
//
//	ledgerstream <input.csv> [output.csv]
//
// If no output path is given, the account summary is written to stdout.
// After a successful run, a summary of processed/rejected transaction
// counts is logged at info level to stderr, so it never interleaves with
// the CSV output on stdout.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/alecthomas/kong"

	"github.com/dreamware/ledgerstream/internal/engine"
	"github.com/dreamware/ledgerstream/internal/ioformat"
	"github.com/dreamware/ledgerstream/internal/logging"
	"github.com/dreamware/ledgerstream/internal/metrics"
)

// cli is the command-line surface, parsed by kong.
type cli struct {
	Input  string `arg:"" type:"existingfile" help:"Input CSV transaction stream."`
	Output string `arg:"" optional:"" help:"Output CSV path; defaults to stdout."`

	Workers  int    `help:"Number of shard workers." default:"0"`
	LogLevel string `help:"Logging level: debug, info, warn, error." default:"info" enum:"debug,info,warn,error"`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("ledgerstream"),
		kong.Description("Processes a CSV stream of client transactions into final account balances."),
	)

	log := logging.New(&logging.Config{Level: c.LogLevel})
	if err := run(c, log); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(c cli, log *logging.Logger) error {
	in, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out := os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	dec, err := ioformat.NewDecoder(in)
	if err != nil {
		return fmt.Errorf("open transaction stream: %w", err)
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	registry := metrics.NewRegistry()
	eng, err := engine.New(workers,
		engine.WithLogger(log),
		engine.WithMetrics(registry),
	)
	if err != nil {
		return fmt.Errorf("start engine: %w", err)
	}
	eng.Start()

	for {
		tx, err := dec.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("decode transaction stream: %w", err)
		}
		eng.Feed(tx)
	}

	accounts, err := eng.Finish()
	if err != nil {
		return fmt.Errorf("finish engine: %w", err)
	}

	if err := ioformat.NewEncoder(out).WriteAccounts(accounts); err != nil {
		return fmt.Errorf("write account summary: %w", err)
	}

	log.Infof("%s", registry.Summary())
	return nil
}
