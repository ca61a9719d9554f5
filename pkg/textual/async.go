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
)

// Async starts a single-worker streaming "map" stage: it applies f to every
// value received from in and sends the results, in order, on the returned
// channel.
//
// Streaming contract:
//
//   - Async never closes in; it closes the returned channel exactly once.
//   - The worker exits when ctx is done, when in is closed, or when f panics.
//   - Every receive and every send also watches ctx.Done(), so a consumer
//     that stops early must cancel ctx to release the upstream goroutines.
//   - The output channel is unbuffered: a slow consumer slows the pipeline
//     down instead of growing memory.
//
// f receives the stage context so it can honour cancellation in long work.
//
// A panic in f is recovered and stored in the PanicStore carried by ctx
// (one is attached when ctx has none, in which case the caller cannot
// observe it: attach a store at the pipeline boundary with WithPanicStore).
// The panic is not rethrown; the stage simply stops and closes its output.
//
//	ctx, ps := WithPanicStore(base)
//	for v := range Async(ctx, in, f) {
//		_ = v
//	}
//	if info, ok := ps.Load(); ok {
//		// fatal: surface info.Value and info.Stack
//	}
func Async[T1 any, T2 any](ctx context.Context, in <-chan T1, f func(ctx context.Context, t T1) T2) <-chan T2 {
	ctx, _ = EnsurePanicStore(ctx)

	// A cancellable child keeps ctx.Done() non-nil and is released on exit.
	ctx, cancel := context.WithCancel(ctx)

	out := make(chan T2)
	go func() {
		defer close(out)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				PanicStoreFromContext(ctx).Store(r, debug.Stack())
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-in:
				if !ok {
					return
				}
				res := f(ctx, s)
				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}
	}()
	return out
}
