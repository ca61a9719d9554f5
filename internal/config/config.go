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

// Package config loads the utf8check configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/benoit-pereira-da-silva/utf8scan/pkg/utf8scan"
)

// Config is the root of the YAML document.
type Config struct {
	Check   Check   `yaml:"check"`
	Log     Log     `yaml:"log"`
	Metrics Metrics `yaml:"metrics"`
}

type Check struct {
	// Concurrency bounds the files checked at the same time.
	Concurrency int `yaml:"concurrency"`
	// MaxErrorsPerLine bounds the failures reported per line; 0 is unlimited.
	MaxErrorsPerLine int `yaml:"max_errors_per_line"`
	// MaxTokenSize bounds a line length in bytes; 0 keeps the scanner default.
	MaxTokenSize int `yaml:"max_token_size"`
	// Elements names the continuation predicate used to count textual
	// elements: "codepoint" or "combining".
	Elements string `yaml:"elements"`
	// Timeout bounds the time spent on a single file; 0 disables it.
	Timeout time.Duration `yaml:"timeout"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Metrics struct {
	// Textfile is the path of a Prometheus text file written after a run.
	Textfile string `yaml:"textfile"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Check: Check{
			Concurrency: 4,
			Elements:    "codepoint",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path on top of Default and validates it.
func Load(path string) (*Config, error) {
	// #nosec G304 -- path comes from the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document on top of Default and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Check.Concurrency <= 0 {
		errs = append(errs, errors.New("check.concurrency must be positive"))
	}
	if c.Check.MaxErrorsPerLine < 0 {
		errs = append(errs, errors.New("check.max_errors_per_line must not be negative"))
	}
	if c.Check.MaxTokenSize < 0 {
		errs = append(errs, errors.New("check.max_token_size must not be negative"))
	}
	if c.Check.Timeout < 0 {
		errs = append(errs, errors.New("check.timeout must not be negative"))
	}
	if _, ok := utf8scan.ContinuationByName(c.Check.Elements); !ok {
		errs = append(errs, fmt.Errorf("check.elements %q is not one of codepoint, combining, all", c.Check.Elements))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json", c.Log.Format))
	}
	return errors.Join(errs...)
}
