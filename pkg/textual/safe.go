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

// closedChan returns a channel that is already closed. It replaces the
// output of a stage that panicked or returned a nil channel.
func closedChan[T any]() <-chan T {
	ch := make(chan T)
	close(ch)
	return ch
}

// safeCloseChan closes ch and captures any panic into ps, so a stage that
// closed a channel it did not own cannot crash the reader goroutine.
func safeCloseChan[T any](ps *PanicStore, ch chan T) {
	if ch == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			ps.Store(r, debug.Stack())
		}
	}()
	close(ch)
}

// safeApplyProcessor calls p.Apply(ctx, in), recovering panics into ps and
// substituting a closed channel for a nil output. ok is false when the stage
// failed.
func safeApplyProcessor[S carrier.Carrier[S]](ctx context.Context, ps *PanicStore, p Processor[S], in <-chan S) (out <-chan S, ok bool) {
	if p == nil {
		return in, true
	}

	ok = true
	defer func() {
		if r := recover(); r != nil {
			ok = false
			ps.Store(r, debug.Stack())
			out = closedChan[S]()
		}
	}()

	out = p.Apply(ctx, in)
	if out == nil {
		ok = false
		ps.Store("textual: Processor.Apply returned a nil channel", debug.Stack())
		out = closedChan[S]()
	}
	return out, ok
}

// safeApplyTranscoder is safeApplyProcessor for a Transcoder.
func safeApplyTranscoder[S1 carrier.Carrier[S1], S2 carrier.Carrier[S2]](ctx context.Context, ps *PanicStore, t Transcoder[S1, S2], in <-chan S1) (out <-chan S2, ok bool) {
	ok = true
	defer func() {
		if r := recover(); r != nil {
			ok = false
			ps.Store(r, debug.Stack())
			out = closedChan[S2]()
		}
	}()

	out = t.Apply(ctx, in)
	if out == nil {
		ok = false
		ps.Store("textual: Transcoder.Apply returned a nil channel", debug.Stack())
		out = closedChan[S2]()
	}
	return out, ok
}
