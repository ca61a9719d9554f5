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
	"context"
	"errors"

	"github.com/benoit-pereira-da-silva/utf8scan/pkg/carrier"
	"github.com/benoit-pereira-da-silva/utf8scan/pkg/utf8scan"
)

// ValidateProcessor returns a stage that decodes the text of every carrier
// and attaches each malformed sequence to it as a *utf8scan.Error (joined
// with errors.Join). Offsets are absolute in the stream: the carrier's
// GetOffset is added to the position inside the token.
//
// maxErrors bounds the failures attached per carrier; 0 means unlimited.
// Well-formed carriers pass through untouched.
func ValidateProcessor[S carrier.Carrier[S]](maxErrors int) ProcessorFunc[S] {
	return func(ctx context.Context, in <-chan S) <-chan S {
		return Async(ctx, in, func(_ context.Context, item S) S {
			errs := DecodeErrors(item.UTF8String(), item.GetOffset(), maxErrors)
			if len(errs) == 0 {
				return item
			}
			return item.WithError(errors.Join(errs...))
		})
	}
}

// DecodeErrors walks s with a utf8scan.Cursor and returns up to max failures
// (0 = all), their offsets shifted by base. Consecutive invalid bytes are
// reported one by one.
func DecodeErrors(s string, base, max int) []error {
	var errs []error
	c := utf8scan.NewCursor(s)
	for c.Advance(); !c.Exhausted(); c.Advance() {
		if !c.Failed() {
			continue
		}
		errs = append(errs, c.Reason().Shift(base).Err())
		if max > 0 && len(errs) >= max {
			break
		}
	}
	return errs
}

// UTF8Errors extracts every *utf8scan.Error from err, walking through
// errors.Join trees and wrapped errors, in order.
func UTF8Errors(err error) []*utf8scan.Error {
	var out []*utf8scan.Error
	var walk func(error)
	walk = func(e error) {
		switch x := e.(type) {
		case nil:
		case *utf8scan.Error:
			out = append(out, x)
		case interface{ Unwrap() []error }:
			for _, inner := range x.Unwrap() {
				walk(inner)
			}
		default:
			walk(errors.Unwrap(e))
		}
	}
	walk(err)
	return out
}
