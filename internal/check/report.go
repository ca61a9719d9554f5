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

package check

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Issue is one malformed sequence. Offset is absolute in the file, Line and
// Column are 1-based, Column counting bytes.
type Issue struct {
	Offset  int    `json:"offset"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// FileReport summarizes the check of one source. Error is set when the
// source could not be checked to the end; the counts then cover what was
// read.
type FileReport struct {
	Name       string        `json:"name"`
	Valid      bool          `json:"valid"`
	Bytes      int           `json:"bytes"`
	Lines      int           `json:"lines"`
	Codepoints int           `json:"codepoints"`
	Elements   int           `json:"elements"`
	Issues     []Issue       `json:"issues,omitempty"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
}

// Failed reports an operational failure, as opposed to invalid content.
func (f FileReport) Failed() bool {
	return f.Error != ""
}

// Report is the outcome of a run, files in the order they were given.
type Report struct {
	RunID string       `json:"run_id"`
	Files []FileReport `json:"files"`
}

// Valid reports whether every file was checked and well-formed.
func (r *Report) Valid() bool {
	for _, f := range r.Files {
		if !f.Valid {
			return false
		}
	}
	return true
}

// Failed reports whether some file could not be checked.
func (r *Report) Failed() bool {
	for _, f := range r.Files {
		if f.Failed() {
			return true
		}
	}
	return false
}

// WriteJSON encodes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText prints one line per issue, in the file:line:column form editors
// understand, then one summary line per file.
func (r *Report) WriteText(w io.Writer) error {
	for _, f := range r.Files {
		for _, is := range f.Issues {
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s (byte %d)\n", f.Name, is.Line, is.Column, is.Message, is.Offset); err != nil {
				return err
			}
		}
		status := "ok"
		switch {
		case f.Failed():
			status = "error: " + f.Error
		case !f.Valid:
			status = fmt.Sprintf("%d invalid sequence(s)", len(f.Issues))
		}
		if _, err := fmt.Fprintf(w, "%s: %s, %d bytes, %d lines, %d codepoints, %d elements\n",
			f.Name, status, f.Bytes, f.Lines, f.Codepoints, f.Elements); err != nil {
			return err
		}
	}
	return nil
}
