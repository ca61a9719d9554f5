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
	"runtime/debug"

	"github.com/benoit-pereira-da-silva/utf8scan/pkg/carrier"
)

// ProcessorFunc is a function adapter that implements Processor.
//
//	p := ProcessorFunc[carrier.String](func(ctx context.Context, in <-chan carrier.String) <-chan carrier.String {
//		return Async(ctx, in, func(ctx context.Context, s carrier.String) carrier.String {
//			s.Value = strings.ToUpper(s.Value)
//			return s
//		})
//	})
type ProcessorFunc[S carrier.Carrier[S]] func(ctx context.Context, in <-chan S) <-chan S

// Apply calls f(ctx, in).
//
// Apply enforces the Processor contract that the returned channel is never
// nil. If f panics (including the case where f is nil), the panic is
// recovered, recorded into the PanicStore carried by ctx (ensured via
// EnsurePanicStore), and a closed channel is returned.
func (f ProcessorFunc[S]) Apply(ctx context.Context, in <-chan S) (out <-chan S) {
	ctx, ps := EnsurePanicStore(ctx)

	defer func() {
		if r := recover(); r != nil {
			ps.Store(r, debug.Stack())
			out = closedChan[S]()
		}
	}()

	out = f(ctx, in)
	if out == nil {
		ps.Store("textual: ProcessorFunc returned a nil channel", debug.Stack())
		out = closedChan[S]()
	}
	return out
}

// Chain composes one or more processors after this processor.
//
//	out := p2.Apply(ctx, p1.Apply(ctx, f.Apply(ctx, in)))
//
// Nil processors are ignored.
func (f ProcessorFunc[S]) Chain(p ...Processor[S]) Processor[S] {
	return NewChain[S](append([]Processor[S]{f}, p...)...)
}
