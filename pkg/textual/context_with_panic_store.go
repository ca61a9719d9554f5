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
	"sync"
)

// PanicInfo holds a recovered panic value and the stack captured where it
// was recovered.
type PanicInfo struct {
	Value any
	Stack []byte
}

// PanicStore records the first panic recovered by any stage of a pipeline.
//
// Stages run in goroutines and have no error return path, so panics are
// captured out-of-band: a stage recovers and stores, the supervisor checks
// the store once the output has been drained.
//
// Store is write-once and safe for concurrent use; Load returns a copy.
// All methods are no-ops on a nil store.
type PanicStore struct {
	mu   sync.Mutex
	info PanicInfo
	set  bool
	done chan struct{}
}

// Store records value and a copy of stack, unless a panic is already stored.
func (ps *PanicStore) Store(value any, stack []byte) {
	if ps == nil {
		return
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.set {
		return
	}
	ps.info = PanicInfo{Value: value, Stack: append([]byte(nil), stack...)}
	ps.set = true
	if ps.done == nil {
		ps.done = make(chan struct{})
	}
	close(ps.done)
}

// Done returns a channel closed once a panic is stored. Producers select on
// it so they stop feeding a pipeline whose consumer died. A nil store
// returns a nil channel.
func (ps *PanicStore) Done() <-chan struct{} {
	if ps == nil {
		return nil
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.done == nil {
		ps.done = make(chan struct{})
	}
	return ps.done
}

// Load returns the stored panic, if any.
func (ps *PanicStore) Load() (PanicInfo, bool) {
	if ps == nil {
		return PanicInfo{}, false
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if !ps.set {
		return PanicInfo{}, false
	}
	info := ps.info
	info.Stack = append([]byte(nil), ps.info.Stack...)
	return info, true
}

type panicStoreKey struct{}

// WithPanicStore returns a derived context carrying a new PanicStore, plus
// the store. A nil parent falls back to context.Background().
func WithPanicStore(parent context.Context) (context.Context, *PanicStore) {
	if parent == nil {
		parent = context.Background()
	}
	ps := &PanicStore{}
	return context.WithValue(parent, panicStoreKey{}, ps), ps
}

// PanicStoreFromContext returns the PanicStore attached to ctx, or nil.
func PanicStoreFromContext(ctx context.Context) *PanicStore {
	if ctx == nil {
		return nil
	}
	ps, _ := ctx.Value(panicStoreKey{}).(*PanicStore)
	return ps
}

// EnsurePanicStore returns ctx and its PanicStore, attaching a new store
// when ctx carries none. A nil ctx falls back to context.Background().
func EnsurePanicStore(ctx context.Context) (context.Context, *PanicStore) {
	if ps := PanicStoreFromContext(ctx); ps != nil {
		return ctx, ps
	}
	return WithPanicStore(ctx)
}
