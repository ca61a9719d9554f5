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

	"github.com/benoit-pereira-da-silva/utf8scan/pkg/carrier"
)

// RoutingStrategy selects which of the eligible routes receive an item.
type RoutingStrategy int

const (
	// RoutingStrategyFirstMatch sends each item to the first eligible route,
	// in registration order.
	RoutingStrategyFirstMatch RoutingStrategy = iota

	// RoutingStrategyBroadcast sends each item to every eligible route.
	RoutingStrategyBroadcast

	// RoutingStrategyRoundRobin spreads items over the eligible routes.
	RoutingStrategyRoundRobin
)

type route[S carrier.Carrier[S]] struct {
	processor Processor[S]
	predicate Predicate[S] // nil means always eligible
}

// Router dispatches each incoming item to one or more processors and merges
// their outputs. Items no route accepts are forwarded unchanged.
//
// Output order across routes is not preserved: use the carrier index to
// restore it downstream.
type Router[S carrier.Carrier[S]] struct {
	routes   []route[S]
	strategy RoutingStrategy

	mu      sync.Mutex
	counter uint64
}

func NewRouter[S carrier.Carrier[S]](strategy RoutingStrategy, processors ...Processor[S]) *Router[S] {
	r := &Router[S]{strategy: strategy}
	for _, p := range processors {
		r.AddProcessor(p)
	}
	return r
}

// AddRoute registers processor behind predicate. Nil processors are ignored.
func (r *Router[S]) AddRoute(predicate Predicate[S], processor Processor[S]) {
	if processor == nil {
		return
	}
	r.routes = append(r.routes, route[S]{
		processor: processor,
		predicate: predicate,
	})
}

func (r *Router[S]) AddProcessor(processor Processor[S]) {
	r.AddRoute(nil, processor)
}

// Apply fans items out to the selected routes and fans their outputs back in.
// When ctx is canceled the router stops reading, closes every route input
// and drains the route outputs before closing the returned channel.
func (r *Router[S]) Apply(ctx context.Context, in <-chan S) <-chan S {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(r.routes) == 0 {
		return IdentityProcessor[S]{}.Apply(ctx, in)
	}

	childIns := make([]chan S, len(r.routes))
	childOuts := make([]<-chan S, len(r.routes))
	for i, rt := range r.routes {
		ch := make(chan S)
		childIns[i] = ch
		childOuts[i] = rt.processor.Apply(ctx, ch)
	}

	out := make(chan S)

	var wg sync.WaitGroup
	wg.Add(len(childOuts))
	for _, ch := range childOuts {
		go func(ch <-chan S) {
			defer wg.Done()
			for item := range ch {
				select {
				case out <- item:
				case <-ctx.Done():
					// Keep draining so the route can terminate.
					for range ch {
					}
					return
				}
			}
		}(ch)
	}

	go func() {
		defer func() {
			for _, ch := range childIns {
				close(ch)
			}
			wg.Wait()
			close(out)
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case item, ok := <-in:
				if !ok {
					return
				}
				indices := r.selectRoutes(ctx, item)
				if len(indices) == 0 {
					select {
					case <-ctx.Done():
						return
					case out <- item:
					}
					continue
				}
				for _, idx := range indices {
					select {
					case <-ctx.Done():
						return
					case childIns[idx] <- item:
					}
				}
			}
		}
	}()

	return out
}

func (r *Router[S]) eligibleRoutes(ctx context.Context, item S) []int {
	indices := make([]int, 0, len(r.routes))
	for i, rt := range r.routes {
		if rt.predicate == nil || rt.predicate(ctx, item) {
			indices = append(indices, i)
		}
	}
	return indices
}

func (r *Router[S]) selectRoutes(ctx context.Context, item S) []int {
	eligible := r.eligibleRoutes(ctx, item)
	if len(eligible) == 0 {
		return nil
	}

	switch r.strategy {
	case RoutingStrategyFirstMatch:
		return eligible[:1]
	case RoutingStrategyRoundRobin:
		r.mu.Lock()
		chosen := eligible[int(r.counter%uint64(len(eligible)))]
		r.counter++
		r.mu.Unlock()
		return []int{chosen}
	default:
		return eligible
	}
}
