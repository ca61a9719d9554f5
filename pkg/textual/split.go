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

package textual

import (
	"bufio"
	"bytes"

	"github.com/benoit-pereira-da-silva/utf8scan/pkg/utf8scan"
)

// ScanLines is a split function for a bufio.Scanner that returns each line of
// text, keeping any trailing end-of-line marker. Unlike bufio.ScanLines it
// drops nothing, so concatenating the tokens reproduces the input and token
// offsets stay exact. A newline byte never occurs inside a multi-byte UTF-8
// sequence, so lines can be validated independently.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// ScanCodepoints returns a split function yielding one codepoint per token.
// See ScanElements for the error behaviour.
func ScanCodepoints() bufio.SplitFunc {
	return ScanElements(utf8scan.Never)
}

// ScanElements returns a split function yielding one textual element per
// token, as delimited by utf8scan.NextElement with keepGoing.
//
// Tokens never end inside a sequence or an element: when the buffered data
// ends on a truncated sequence, or on an element that could still grow, the
// function asks for more data and only decides at EOF.
//
// Malformed input stops the scan with a *utf8scan.Error whose offset is
// absolute in the stream; the well-formed element preceding it is delivered
// first. The returned function is stateful (it counts consumed bytes) and
// must serve a single scanner.
func ScanElements(keepGoing utf8scan.ContinuationFunc) bufio.SplitFunc {
	consumed := 0
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if len(data) == 0 {
			return 0, nil, nil
		}

		n, reason := utf8scan.NextElement(data, keepGoing)
		if reason.Failed() {
			if reason.Kind == utf8scan.EndOfInputInContinuation && !atEOF {
				return 0, nil, nil
			}
			if _, _, first := utf8scan.Decode(data); first.Failed() {
				return 0, nil, reason.Shift(consumed).Err()
			}
			// The element ends before the malformed codepoint.
			consumed += n
			return n, data[:n], nil
		}

		if n == len(data) && !atEOF {
			return 0, nil, nil
		}
		consumed += n
		return n, data[:n], nil
	}
}
