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

// Transcoder is a stage converting a stream of carriers from S1 to S2.
//
//   - Processor[S]     : S  -> S
//   - Transcoder[S1,S2]: S1 -> S2
//
// Implementations follow the Processor contract: return a non-nil channel
// quickly, stop on ctx.Done(), close the output when done and never close
// the input.
type Transcoder[S1 carrier.Carrier[S1], S2 carrier.Carrier[S2]] interface {
	Apply(ctx context.Context, in <-chan S1) <-chan S2
}

// TranscoderFunc adapts a function to Transcoder.
//
//	toLine := TranscoderFunc[carrier.String, check.Line](func(ctx context.Context, in <-chan carrier.String) <-chan check.Line {
//		return Async(ctx, in, func(_ context.Context, s carrier.String) check.Line {
//			return check.Measure(s)
//		})
//	})
type TranscoderFunc[S1 carrier.Carrier[S1], S2 carrier.Carrier[S2]] func(ctx context.Context, in <-chan S1) <-chan S2

func (f TranscoderFunc[S1, S2]) Apply(ctx context.Context, in <-chan S1) <-chan S2 {
	return f(ctx, in)
}
