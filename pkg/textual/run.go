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

// Run feeds a single text to p and returns its output stream.
//
// If ctx is canceled before the text is handed over, the processor sees a
// closed, empty input.
func Run[S carrier.Carrier[S], P Processor[S]](ctx context.Context, text carrier.UTF8String, p P) <-chan S {
	if ctx == nil {
		ctx = context.Background()
	}
	in := make(chan S, 1)
	go func() {
		defer close(in)
		select {
		case <-ctx.Done():
		case in <- (*new(S)).FromUTF8String(text):
		}
	}()
	return p.Apply(ctx, in)
}
