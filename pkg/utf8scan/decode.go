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

// minValue holds, per sequence length, the smallest codepoint that needs that
// many bytes. Anything below is an overlong form.
var minValue = [...]rune{2: 0x80, 3: 0x800, 4: 0x10000}

// Decode decodes the codepoint at the start of p.
//
// It returns the codepoint, the number of bytes consumed and a Reason whose
// Position is relative to p[0]:
//
//   - empty p: (0, 0, empty reason); callers check for emptiness first.
//   - success: size covers exactly the consumed bytes, reason is empty.
//   - failure: r is Replacement and size >= 1. size stops right after the
//     byte that triggered detection, so the next call never starts inside
//     the sequence that failed. A non-continuation byte found where a
//     continuation was expected is not consumed: it may start the next
//     sequence.
//
// Failure positions:
//
//   - EndOfInputInContinuation: len(p), just past the last available byte.
//   - UnexpectedByte: the offending byte.
//   - OverlongEncoding, CodepointOutOfRange: the last byte of the sequence.
//   - InvalidLeadByte: 0, with size 1.
//
// Overlong forms are detected on the decoded value, not on the lead byte.
func Decode[B Bytes](p B) (r rune, size int, reason Reason) {
	if len(p) == 0 {
		return 0, 0, Reason{}
	}

	lead := p[0]
	mask, n := leadMask(lead)
	switch n {
	case 0:
		return Replacement, 1, failure(InvalidLeadByte, 0)
	case 1:
		return rune(lead), 1, Reason{}
	}

	r = ExtractDataBits(lead, mask) << (6 * (n - 1))
	for i := 1; i < n; i++ {
		if i >= len(p) {
			return Replacement, i, failure(EndOfInputInContinuation, i)
		}
		c := p[i]
		if !IsContinuation(c) {
			return Replacement, i, failure(UnexpectedByte, i)
		}
		r |= ContinuationData(c) << (6 * (n - 1 - i))
	}

	if r < minValue[n] {
		return Replacement, n, failure(OverlongEncoding, n-1)
	}
	// Only a four-byte sequence can carry more than 16 bits.
	if r > MaxCodepoint {
		return Replacement, n, failure(CodepointOutOfRange, n-1)
	}
	return r, n, Reason{}
}

// DecodeAt decodes the codepoint starting at b[pos], the end being len(b).
//
// It returns the position following the decoded bytes. On failure the
// reason's Position is absolute in b (Decode's offset plus pos). When pos
// equals len(b), next is pos and the reason is empty.
//
// DecodeAt panics if pos is outside [0, len(b)].
func DecodeAt[B Bytes](b B, pos int) (next int, r rune, reason Reason) {
	r, size, reason := Decode(b[pos:])
	return pos + size, r, reason.Shift(pos)
}
