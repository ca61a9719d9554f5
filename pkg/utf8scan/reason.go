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

import (
	"errors"
	"fmt"
)

// Replacement is the codepoint reported for every decode failure.
const Replacement rune = '\uFFFD'

// MaxCodepoint is the largest Unicode scalar value (RFC 3629).
const MaxCodepoint rune = 0x10FFFF

// Kind classifies a decode failure. The taxonomy is closed: every malformed
// input maps to exactly one of the non-zero kinds.
type Kind uint8

const (
	KindNone Kind = iota
	// EndOfInputInContinuation: a multi-byte sequence is truncated by the end
	// of the input.
	EndOfInputInContinuation
	// UnexpectedByte: a continuation byte was expected, something else was found.
	UnexpectedByte
	// OverlongEncoding: the decoded value is below the minimum for its length.
	OverlongEncoding
	// CodepointOutOfRange: a four-byte sequence decodes beyond U+10FFFF.
	CodepointOutOfRange
	// InvalidLeadByte: the first byte matches no 1, 2, 3 or 4-byte pattern.
	InvalidLeadByte
)

// Sentinel errors, one per Kind. *Error unwraps to them.
var (
	ErrEndOfInput     = errors.New("expected continuation byte, saw end of input")
	ErrUnexpectedByte = errors.New("expected continuation byte, saw something else")
	ErrOverlong       = errors.New("overlong encoding seen")
	ErrOutOfRange     = errors.New("non-Unicode character encoded (beyond U+10FFFF)")
	ErrInvalidLead    = errors.New("invalid initial byte seen")
)

var kindErrors = [...]error{
	KindNone:                 nil,
	EndOfInputInContinuation: ErrEndOfInput,
	UnexpectedByte:           ErrUnexpectedByte,
	OverlongEncoding:         ErrOverlong,
	CodepointOutOfRange:      ErrOutOfRange,
	InvalidLeadByte:          ErrInvalidLead,
}

var kindNames = [...]string{
	KindNone:                 "none",
	EndOfInputInContinuation: "end_of_input_in_continuation",
	UnexpectedByte:           "unexpected_byte",
	OverlongEncoding:         "overlong_encoding",
	CodepointOutOfRange:      "codepoint_out_of_range",
	InvalidLeadByte:          "invalid_lead_byte",
}

// String returns a stable snake_case name, suitable as a metric label.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Err returns the sentinel error of k, or nil for KindNone.
func (k Kind) Err() error {
	if int(k) < len(kindErrors) {
		return kindErrors[k]
	}
	return nil
}

// Kinds lists every failure kind, in declaration order.
func Kinds() []Kind {
	return []Kind{
		EndOfInputInContinuation,
		UnexpectedByte,
		OverlongEncoding,
		CodepointOutOfRange,
		InvalidLeadByte,
	}
}

// Reason describes the outcome of a decode step.
//
// Explanation is empty if and only if the step succeeded. Position is a byte
// offset; its origin depends on the function that produced the Reason (see
// Decode, DecodeAt, ValidReason, Cursor and NextElement).
type Reason struct {
	Kind        Kind
	Explanation string
	Position    int
}

// OK reports whether the reason describes a success.
func (r Reason) OK() bool {
	return r.Explanation == ""
}

// Failed reports whether the reason describes a failure.
func (r Reason) Failed() bool {
	return r.Explanation != ""
}

// Shift returns r with its position moved by delta. Successful reasons are
// returned unchanged so their position stays 0.
func (r Reason) Shift(delta int) Reason {
	if r.OK() {
		return r
	}
	r.Position += delta
	return r
}

// Err converts r into an error: nil on success, *Error otherwise.
func (r Reason) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Kind: r.Kind, Offset: r.Position, Err: r.Kind.Err()}
}

func (r Reason) String() string {
	if r.OK() {
		return "ok"
	}
	return fmt.Sprintf("%s at byte %d", r.Explanation, r.Position)
}

func failure(kind Kind, position int) Reason {
	return Reason{Kind: kind, Explanation: kind.Err().Error(), Position: position}
}

// Error reports malformed UTF-8 at a byte offset.
type Error struct {
	Kind   Kind
	Offset int
	Err    error
}

// Error formats the failure with its offset.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("invalid UTF-8 at byte %d: %v", e.Offset, e.Err)
}

// Unwrap exposes the sentinel error of the failure kind.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Reason converts e back into a Reason.
func (e *Error) Reason() Reason {
	if e == nil {
		return Reason{}
	}
	return failure(e.Kind, e.Offset)
}
