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

// ConditionalProc routes each item to the processor of the first branch whose
// predicate matches:
//
//	If(HasError[carrier.String]).
//		Then(Slog[carrier.String](logger, "invalid line")).
//		Else(nil)
//
// A nil predicate always matches. A nil processor forwards the item
// unchanged. Items matching no branch, with no Else, are forwarded unchanged.
// Indices are never rewritten by the stage itself.
type ConditionalProc[S carrier.Carrier[S]] struct {
	branches      []ifBranch[S]
	elseProcessor Processor[S]
}

type ifBranch[S carrier.Carrier[S]] struct {
	predicate Predicate[S]
	processor Processor[S]
}

func If[S carrier.Carrier[S]](predicate Predicate[S]) *ConditionalProc[S] {
	return &ConditionalProc[S]{
		branches: []ifBranch[S]{{predicate: predicate}},
	}
}

func (c *ConditionalProc[S]) Then(processor Processor[S]) *ConditionalProc[S] {
	c.branches[0].processor = processor
	return c
}

func (c *ConditionalProc[S]) ElseIf(predicate Predicate[S], processor Processor[S]) *ConditionalProc[S] {
	c.branches = append(c.branches, ifBranch[S]{
		predicate: predicate,
		processor: processor,
	})
	return c
}

func (c *ConditionalProc[S]) Else(processor Processor[S]) *ConditionalProc[S] {
	c.elseProcessor = processor
	return c
}

// Apply builds a first-match Router from the branches.
func (c *ConditionalProc[S]) Apply(ctx context.Context, in <-chan S) <-chan S {
	r := NewRouter[S](RoutingStrategyFirstMatch)
	pt := IdentityProcessor[S]{}
	for _, br := range c.branches {
		var proc Processor[S] = pt
		if br.processor != nil {
			proc = br.processor
		}
		r.AddRoute(br.predicate, proc)
	}
	if c.elseProcessor != nil {
		r.AddProcessor(c.elseProcessor)
	}
	return r.Apply(ctx, in)
}
