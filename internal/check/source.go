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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Source is a named input. Open is called once, by the goroutine checking
// the source.
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileSource opens path, decompressing .gz and .zst files on the fly.
// Offsets and line numbers then refer to the decompressed text.
func FileSource(path string) Source {
	return Source{
		Name: path,
		Open: func() (io.ReadCloser, error) {
			// #nosec G304 -- path comes from the command line
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("failed to open %s: %w", path, err)
			}
			rc, err := decompress(path, f)
			if err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("failed to open %s: %w", path, err)
			}
			return rc, nil
		},
	}
}

// ReaderSource wraps an already opened reader, such as os.Stdin. Closing the
// source does not close r.
func ReaderSource(name string, r io.Reader) Source {
	return Source{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(r), nil
		},
	}
}

func decompress(path string, f *os.File) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case ".zst", ".zstd":
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		return &stackedCloser{Reader: dec, closers: []io.Closer{dec.IOReadCloser(), f}}, nil
	default:
		return f, nil
	}
}

// stackedCloser closes a decoder then the file beneath it.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
