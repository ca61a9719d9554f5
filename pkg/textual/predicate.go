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

// Predicate evaluates whether an item satisfies a condition.
type Predicate[S carrier.Carrier[S]] func(ctx context.Context, item S) bool

// HasError matches carriers holding a non-nil error.
func HasError[S carrier.Carrier[S]](_ context.Context, item S) bool {
	return item.GetError() != nil
}

// Not negates p. A nil p matches everything, so Not(nil) matches nothing.
func Not[S carrier.Carrier[S]](p Predicate[S]) Predicate[S] {
	return func(ctx context.Context, item S) bool {
		if p == nil {
			return false
		}
		return !p(ctx, item)
	}
}
