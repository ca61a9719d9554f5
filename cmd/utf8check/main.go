// Copyright 2026 Benoit Pereira da Silva
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command utf8check validates UTF-8 files and reports every malformed
// sequence with its byte offset, line and column.
//
// Usage:
//
//	utf8check [flags] [file ...]
//
// With no file, or "-", standard input is read. Files ending in .gz or .zst
// are decompressed first. The exit status is 0 when every file is valid,
// 1 when some file holds malformed UTF-8 and 2 on operational failure.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benoit-pereira-da-silva/utf8scan/internal/check"
	"github.com/benoit-pereira-da-silva/utf8scan/internal/config"
	"github.com/benoit-pereira-da-silva/utf8scan/internal/logging"
	"github.com/benoit-pereira-da-silva/utf8scan/internal/metrics"
)

const (
	exitValid   = 0
	exitInvalid = 1
	exitFailure = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, checks the inputs and prints the report to stdout. Logs
// go to stderr.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("utf8check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML configuration file")
	asJSON := fs.Bool("json", false, "print the report as JSON")
	concurrency := fs.Int("concurrency", 0, "files checked at the same time")
	elements := fs.String("elements", "", "textual elements to count: codepoint, combining or all")
	maxErrors := fs.Int("max-errors", 0, "malformed sequences reported per line (0 = all)")
	maxTokenSize := fs.Int("max-token-size", 0, "longest accepted line in bytes")
	timeout := fs.Duration("timeout", 0, "time limit per file (0 = none)")
	textfile := fs.String("metrics-textfile", "", "write Prometheus metrics to this file")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	logFormat := fs.String("log-format", "", "text or json")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitValid
		}
		return exitFailure
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(stderr, "utf8check: %v\n", err)
			return exitFailure
		}
	}

	// Flags given explicitly win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "concurrency":
			cfg.Check.Concurrency = *concurrency
		case "elements":
			cfg.Check.Elements = *elements
		case "max-errors":
			cfg.Check.MaxErrorsPerLine = *maxErrors
		case "max-token-size":
			cfg.Check.MaxTokenSize = *maxTokenSize
		case "timeout":
			cfg.Check.Timeout = *timeout
		case "metrics-textfile":
			cfg.Metrics.Textfile = *textfile
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = *logFormat
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "utf8check: invalid configuration: %v\n", err)
		return exitFailure
	}

	logger := logging.New(cfg.Log, stderr)
	checker, err := check.New(cfg.Check, logger)
	if err != nil {
		fmt.Fprintf(stderr, "utf8check: %v\n", err)
		return exitFailure
	}
	m := metrics.New()
	checker.SetMetrics(m)

	sources := sourcesFor(fs.Args(), stdin)
	started := time.Now()
	logger.Info("run started", "run_id", checker.RunID(), "files", len(sources))

	report, err := checker.Check(ctx, sources)
	if err != nil {
		logger.Error("run interrupted", "run_id", checker.RunID(), "error", err)
	}

	if cfg.Metrics.Textfile != "" {
		if werr := m.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			logger.Error("metrics not written", "error", werr)
			err = errors.Join(err, werr)
		}
	}

	if *asJSON {
		err = errors.Join(err, report.WriteJSON(stdout))
	} else {
		err = errors.Join(err, report.WriteText(stdout))
	}
	logger.Info("run finished", "run_id", checker.RunID(), "valid", report.Valid(), "elapsed", time.Since(started))

	switch {
	case err != nil || report.Failed():
		return exitFailure
	case !report.Valid():
		return exitInvalid
	default:
		return exitValid
	}
}

func sourcesFor(paths []string, stdin io.Reader) []check.Source {
	if len(paths) == 0 {
		return []check.Source{check.ReaderSource("-", stdin)}
	}
	sources := make([]check.Source, 0, len(paths))
	for _, p := range paths {
		if p == "-" {
			sources = append(sources, check.ReaderSource("-", stdin))
			continue
		}
		sources = append(sources, check.FileSource(p))
	}
	return sources
}
