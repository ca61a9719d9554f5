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

	"github.com/benoit-pereira-da-silva/utf8scan/pkg/carrier"
)

// Chain is a Processor that runs multiple processors sequentially.
//
//	chain := NewChain(ValidateProcessor[carrier.String](0), Slog[carrier.String](logger, "line"))
//
//	ioProc := NewIOReaderProcessor[carrier.String](chain, reader)
//	for item := range ioProc.Start() {
//		_ = item.GetError()
//	}
//
// Nil processors are ignored.
type Chain[S carrier.Carrier[S]] struct {
	processors []Processor[S]
}

func NewChain[S carrier.Carrier[S]](processors ...Processor[S]) *Chain[S] {
	return &Chain[S]{
		processors: processors,
	}
}

// Apply wires the processors into a linear pipeline. If a stage panics or
// returns a nil channel, the fault is stored in the context's PanicStore and
// the remaining stages are skipped: the returned channel is closed.
//
// With no processors, Apply returns the input channel unchanged.
func (c *Chain[S]) Apply(ctx context.Context, in <-chan S) <-chan S {
	ctx, ps := EnsurePanicStore(ctx)

	out := in
	for _, p := range c.processors {
		var ok bool
		out, ok = safeApplyProcessor(ctx, ps, p, out)
		if !ok {
			return out
		}
	}
	return out
}
