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

// Package utf8scan is a validating UTF-8 decoder.
//
// It turns a read-only byte range into Unicode scalar values and rejects
// malformed input with byte-accurate error locations:
//
//   - Decode / DecodeAt decode exactly one codepoint.
//   - Valid / ValidReason (and the string adapters) walk a whole buffer and
//     report the first failure.
//   - Cursor exposes the same walk step by step, with explicit exhaustion.
//   - NextElement groups codepoints into textual elements (for example a base
//     character followed by its combining marks) using a caller-supplied
//     ContinuationFunc.
//
// Every function works on any type satisfying Bytes, so []byte and string
// share a single implementation and strings are never copied.
//
// On failure the decoded codepoint is always Replacement (U+FFFD) and the
// returned position is strictly past the lead byte, so scanning an N-byte
// buffer terminates in O(N) steps whatever its content. A run of invalid
// bytes yields one failure per byte; failures are never coalesced.
//
// The decoder does not reject surrogate codepoints (U+D800..U+DFFF): only
// truncation, unexpected bytes, overlong forms, values beyond U+10FFFF and
// invalid lead bytes are errors.
//
// All functions are pure and safe for concurrent use on the same buffer. A
// Cursor carries mutable state and must not be shared between goroutines.
package utf8scan

// Bytes is the read-only byte view every decoder entry point accepts.
type Bytes interface {
	~string | ~[]byte
}
