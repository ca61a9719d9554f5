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

// Package metrics holds the Prometheus collectors of a utf8check run.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values of FilesTotal.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultFailed  = "failed"
)

// Metrics is a set of collectors registered on a private registry, so that
// several runs (and tests) never share state.
type Metrics struct {
	registry *prometheus.Registry

	// FilesTotal counts checked files by result.
	FilesTotal *prometheus.CounterVec
	// BytesTotal counts the bytes read.
	BytesTotal prometheus.Counter
	// ErrorsTotal counts malformed sequences by kind.
	ErrorsTotal *prometheus.CounterVec
	// FileDuration measures the time spent per file.
	FileDuration prometheus.Histogram
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FilesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "utf8check_files_total",
				Help: "Number of files checked, by result",
			},
			[]string{"result"},
		),
		BytesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "utf8check_bytes_total",
				Help: "Number of bytes read",
			},
		),
		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "utf8check_errors_total",
				Help: "Number of malformed UTF-8 sequences, by kind",
			},
			[]string{"kind"},
		),
		FileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "utf8check_file_duration_seconds",
				Help:    "Time spent checking a file in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
		),
	}
	m.registry.MustRegister(m.FilesTotal, m.BytesTotal, m.ErrorsTotal, m.FileDuration)
	return m
}

// Registry exposes the private registry, for gathering or serving.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFile records the outcome of one file.
func (m *Metrics) ObserveFile(result string, bytes int64, errorKinds map[string]int, elapsed time.Duration) {
	m.FilesTotal.WithLabelValues(result).Inc()
	m.BytesTotal.Add(float64(bytes))
	for kind, n := range errorKinds {
		m.ErrorsTotal.WithLabelValues(kind).Add(float64(n))
	}
	m.FileDuration.Observe(elapsed.Seconds())
}

// WriteTextfile writes the registry in the Prometheus text format, the way
// the node_exporter textfile collector expects it.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
