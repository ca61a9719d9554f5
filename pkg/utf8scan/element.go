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

package utf8scan

import "iter"

// NextElement scans the textual element at the start of b and returns the
// offset just past it.
//
// The first codepoint always belongs to the element, whatever keepGoing
// says. Each following codepoint is absorbed while keepGoing reports true;
// the first rejected codepoint is left in place so the next call starts
// with it. A nil keepGoing behaves like Never.
//
// Failures carry an offset absolute in b:
//
//   - if the first codepoint is malformed, next points right after the
//     failing bytes so a caller looping on NextElement always progresses;
//   - if a later codepoint is malformed, next points at its start: the bad
//     bytes are excluded from the element and reported again by the next
//     call.
//
// Empty input returns 0 and an empty reason.
func NextElement[B Bytes](b B, keepGoing ContinuationFunc) (next int, reason Reason) {
	next, reason, _ = scanElement(b, keepGoing)
	return next, reason
}

// scanElement implements NextElement. Its boolean result reports whether a
// failure hit a codepoint after the first one, in which case the returned
// prefix is a complete well-formed element.
func scanElement[B Bytes](b B, keepGoing ContinuationFunc) (int, Reason, bool) {
	if keepGoing == nil {
		keepGoing = Never
	}
	pos := 0
	for {
		r, size, reason := Decode(b[pos:])
		if reason.Failed() {
			reason = reason.Shift(pos)
			if pos == 0 {
				return size, reason, false
			}
			return pos, reason, true
		}
		if pos != 0 && !keepGoing(r) {
			return pos, Reason{}, false
		}
		pos += size
		if pos >= len(b) {
			return pos, Reason{}, false
		}
	}
}

// Elements iterates over the textual elements of b. Each step yields the
// element's bytes and the reason returned by NextElement, with a Position
// absolute in b. Iteration continues after failures: a malformed first
// codepoint is yielded on its own as a failed element.
func Elements[B Bytes](b B, keepGoing ContinuationFunc) iter.Seq2[B, Reason] {
	return func(yield func(B, Reason) bool) {
		start := 0
		for start < len(b) {
			n, reason, trailing := scanElement(b[start:], keepGoing)
			if trailing {
				// The failure belongs to the next element: emit the valid
				// prefix now, the following step reports the failure.
				if !yield(b[start:start+n], Reason{}) {
					return
				}
				start += n
				continue
			}
			if !yield(b[start:start+n], reason.Shift(start)) {
				return
			}
			start += n
		}
	}
}

// CountElements returns the number of textual elements in b. It stops at
// the first malformed sequence and returns the elements counted so far with
// the failure as *Error.
func CountElements[B Bytes](b B, keepGoing ContinuationFunc) (int, error) {
	count := 0
	for _, reason := range Elements(b, keepGoing) {
		if reason.Failed() {
			return count, reason.Err()
		}
		count++
	}
	return count, nil
}
