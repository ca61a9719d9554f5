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

// Package check validates files with the utf8scan pipeline and gathers a
// report. One pipeline runs per file:
//
//	IOReaderProcessor -> ValidateProcessor -> If(HasError).Then(Slog) -> Measure
//
// Files are checked concurrently, each under its own span and deadline.
package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/benoit-pereira-da-silva/utf8scan/internal/config"
	"github.com/benoit-pereira-da-silva/utf8scan/internal/metrics"
	"github.com/benoit-pereira-da-silva/utf8scan/pkg/carrier"
	"github.com/benoit-pereira-da-silva/utf8scan/pkg/textual"
	"github.com/benoit-pereira-da-silva/utf8scan/pkg/utf8scan"
)

// ErrTimeout is reported for a file whose deadline expired.
var ErrTimeout = errors.New("check timed out")

// Checker validates sources with one pipeline per source and aggregates
// the outcome in a Report. It is safe to share across goroutines: Check
// runs its sources concurrently.
type Checker struct {
	cfg       config.Check
	keepGoing utf8scan.ContinuationFunc
	runID     string
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// New validates cfg and returns a Checker with a fresh run id. A nil logger
// uses slog.Default().
func New(cfg config.Check, logger *slog.Logger) (*Checker, error) {
	keepGoing, ok := utf8scan.ContinuationByName(cfg.Elements)
	if !ok {
		return nil, fmt.Errorf("unknown element kind %q", cfg.Elements)
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.NewString()
	return &Checker{
		cfg:       cfg,
		keepGoing: keepGoing,
		runID:     runID,
		logger:    logger.With("run_id", runID),
		tracer:    otel.Tracer("utf8check"),
	}, nil
}

// RunID returns the uuid identifying this checker's run in logs, reports
// and spans.
func (c *Checker) RunID() string {
	return c.runID
}

// SetMetrics makes the checker record every file in m.
func (c *Checker) SetMetrics(m *metrics.Metrics) {
	c.metrics = m
}

// SetTracer replaces the global otel tracer.
func (c *Checker) SetTracer(t trace.Tracer) {
	if t != nil {
		c.tracer = t
	}
}

// Check runs every source and returns the report. Failures to read a source
// are part of its FileReport; the returned error is only set when ctx ends
// before every source was checked.
func (c *Checker) Check(ctx context.Context, sources []Source) (*Report, error) {
	report := &Report{
		RunID: c.runID,
		Files: make([]FileReport, len(sources)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)
	for i, src := range sources {
		g.Go(func() error {
			report.Files[i] = c.CheckSource(gctx, src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, ctx.Err()
}

// CheckSource checks a single source.
func (c *Checker) CheckSource(ctx context.Context, src Source) FileReport {
	started := time.Now()
	ctx, span := c.tracer.Start(ctx, "utf8check.file",
		trace.WithAttributes(attribute.String("file.name", src.Name)))
	defer span.End()

	logger := c.logger.With("file", src.Name)
	fr := FileReport{Name: src.Name}

	if err := c.scan(ctx, src, logger, &fr); err != nil {
		fr.Error = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "check failed", slog.Any("error", err))
	} else if !fr.Valid {
		span.SetStatus(codes.Error, "invalid UTF-8")
	}
	fr.Duration = time.Since(started)

	span.SetAttributes(
		attribute.Int("file.bytes", fr.Bytes),
		attribute.Int("file.lines", fr.Lines),
		attribute.Int("utf8.errors", len(fr.Issues)),
	)
	c.observe(fr)
	logger.InfoContext(ctx, "file checked",
		slog.Bool("valid", fr.Valid),
		slog.Int("bytes", fr.Bytes),
		slog.Int("issues", len(fr.Issues)),
		slog.Duration("elapsed", fr.Duration))
	return fr
}

func (c *Checker) scan(ctx context.Context, src Source, logger *slog.Logger, fr *FileReport) error {
	var cancel context.CancelFunc
	if c.cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	rc, err := src.Open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			logger.WarnContext(ctx, "failed to close input", slog.Any("error", cerr))
		}
	}()

	// The reader and every stage share one PanicStore: a panicking stage
	// stops the reader instead of leaving it blocked.
	ctx, ps := textual.EnsurePanicStore(ctx)
	validate := textual.NewChain[carrier.String](
		textual.ValidateProcessor[carrier.String](c.cfg.MaxErrorsPerLine),
		textual.If[carrier.String](textual.HasError[carrier.String]).
			Then(textual.Slog[carrier.String](logger, "invalid line")),
	)
	stage := textual.StickRight[carrier.String, Line](validate, Measure(c.keepGoing))

	ioProc := textual.NewIOReaderProcessor[carrier.String](textual.IdentityProcessor[carrier.String]{}, rc)
	ioProc.SetContext(ctx)
	ioProc.SetMaxTokenSize(c.cfg.MaxTokenSize)
	defer ioProc.Stop()

	var lines []Line
	for l := range stage.Apply(ctx, ioProc.Start()) {
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Index < lines[j].Index })

	for _, l := range lines {
		fr.Lines++
		fr.Bytes += len(l.Value)
		fr.Codepoints += l.Codepoints
		fr.Elements += l.Elements
		for _, e := range textual.UTF8Errors(l.Error) {
			fr.Issues = append(fr.Issues, Issue{
				Offset:  e.Offset,
				Line:    l.Index + 1,
				Column:  e.Offset - l.Offset + 1,
				Kind:    e.Kind.String(),
				Message: e.Err.Error(),
			})
		}
	}
	fr.Valid = len(fr.Issues) == 0

	if info, ok := ps.Load(); ok {
		fr.Valid = false
		return fmt.Errorf("pipeline panic: %v", info.Value)
	}
	if err := ioProc.Err(); err != nil {
		fr.Valid = false
		return fmt.Errorf("failed to read %s: %w", src.Name, err)
	}
	if err := ctx.Err(); err != nil {
		fr.Valid = false
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return err
	}
	return nil
}

func (c *Checker) observe(fr FileReport) {
	if c.metrics == nil {
		return
	}
	result := metrics.ResultValid
	switch {
	case fr.Failed():
		result = metrics.ResultFailed
	case !fr.Valid:
		result = metrics.ResultInvalid
	}
	kinds := make(map[string]int)
	for _, is := range fr.Issues {
		kinds[is.Kind]++
	}
	c.metrics.ObserveFile(result, int64(fr.Bytes), kinds, fr.Duration)
}
