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

package carrier

// UTF8String is a symbolic alias used throughout the pipeline.
//
// Tokens are read as raw bytes and are not guaranteed to be well-formed:
// validation stages (see textual.ValidateProcessor) attach the decoding
// failures to the carrier instead of rejecting the token.
type UTF8String = string

// Carrier is the contract of the values flowing through the textual
// pipeline. The stack (Processor, Chain, IOReaderProcessor, ...) is
// parameterized by a type S that implements Carrier[S].
//
// Method expectations:
//
//   - UTF8String returns the token text.
//
//   - FromUTF8String creates a new carrier from a token. The receiver is
//     treated as a prototype: most code calls it on the zero value of S, so it
//     must not rely on receiver state.
//
//   - WithIndex / GetIndex attach and retrieve the token sequence number.
//
//   - WithOffset / GetOffset attach and retrieve the byte offset of the token
//     in its source stream. Stages that report positions inside a token
//     (decoding failures, for instance) add it to obtain stream offsets.
//
//   - Aggregate combines several carriers into one.
//
//   - WithError / GetError attach and retrieve non-fatal, per-item errors.
//     Errors carried by S are data, not control-flow: the stack keeps
//     streaming error-carrying items and leaves the decision to the consumer.
//
// Implementations should be cheap to copy and safe to call on the zero value.
type Carrier[S any] interface {
	UTF8String() UTF8String
	FromUTF8String(s UTF8String) S
	WithIndex(index int) S
	GetIndex() int
	WithOffset(offset int) S
	GetOffset() int
	Aggregate(items []S) S
	WithError(err error) S
	GetError() error
}
