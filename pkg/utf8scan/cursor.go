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

// Cursor decodes a byte range one codepoint at a time.
//
// The end of the input is an explicit step: the Advance call made once the
// position has reached the end sets Exhausted, so a buffer of n codepoints
// takes n+1 calls to exhaust. An empty buffer is exhausted by its first
// Advance, without producing any codepoint.
//
//	c := utf8scan.NewCursor(data)
//	for c.Advance(); !c.Exhausted(); c.Advance() {
//		if c.Failed() {
//			// c.Reason().Position is absolute in data.
//			continue
//		}
//		use(c.Current())
//	}
//
// A Cursor borrows its input and must not be used from several goroutines.
type Cursor[B Bytes] struct {
	data      B
	position  int
	last      rune
	exhausted bool
	reason    Reason
}

// NewCursor returns a cursor positioned at the start of b. No codepoint is
// available until the first Advance.
func NewCursor[B Bytes](b B) *Cursor[B] {
	return &Cursor[B]{data: b}
}

// Advance decodes the next codepoint.
//
// The position always moves forward, on success and on failure. When the
// step fails, Current returns Replacement and Reason holds the failure with
// an offset absolute in the cursor's input.
func (c *Cursor[B]) Advance() {
	if c.exhausted {
		return
	}
	if c.position == len(c.data) {
		c.exhausted = true
		c.last = 0
		c.reason = Reason{}
		return
	}
	next, r, reason := DecodeAt(c.data, c.position)
	c.last = r
	c.reason = reason
	c.position = next
}

// Current returns the codepoint decoded by the last Advance. It is
// meaningful only while the cursor is neither exhausted nor failed.
func (c *Cursor[B]) Current() rune {
	return c.last
}

// Failed reports whether the last Advance hit malformed input.
func (c *Cursor[B]) Failed() bool {
	return c.reason.Failed()
}

// Exhausted reports whether the end of the input has been stepped over.
func (c *Cursor[B]) Exhausted() bool {
	return c.exhausted
}

// Reason returns the outcome of the last Advance.
func (c *Cursor[B]) Reason() Reason {
	return c.reason
}

// Err returns the failure of the last Advance as *Error, or nil.
func (c *Cursor[B]) Err() error {
	return c.reason.Err()
}

// Position returns the byte offset of the next undecoded byte.
func (c *Cursor[B]) Position() int {
	return c.position
}

// Codepoints iterates over b, yielding the offset of each decode step and
// its codepoint. Malformed sequences yield Replacement; use a Cursor when
// the failure details matter.
func Codepoints[B Bytes](b B) iter.Seq2[int, rune] {
	return func(yield func(int, rune) bool) {
		c := NewCursor(b)
		for {
			start := c.Position()
			c.Advance()
			if c.Exhausted() {
				return
			}
			if !yield(start, c.Current()) {
				return
			}
		}
	}
}
