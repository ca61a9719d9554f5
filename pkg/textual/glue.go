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

// StickLeft returns transcoder followed by processor, as one Transcoder:
//
//	Transcoder[S1,S2] + Processor[S2] => Transcoder[S1,S2]
//
// A nil processor returns transcoder itself; a nil transcoder returns nil.
// Both stages share the context's PanicStore. If either one panics in Apply
// or returns a nil channel, the fault is stored and the returned channel is
// closed without output.
func StickLeft[S1 carrier.Carrier[S1], S2 carrier.Carrier[S2]](transcoder Transcoder[S1, S2], processor Processor[S2]) Transcoder[S1, S2] {
	if transcoder == nil {
		return nil
	}
	if processor == nil {
		return transcoder
	}
	return TranscoderFunc[S1, S2](func(ctx context.Context, in <-chan S1) <-chan S2 {
		ctx, ps := EnsurePanicStore(ctx)
		mid, ok := safeApplyTranscoder(ctx, ps, transcoder, in)
		if !ok {
			return mid
		}
		out, _ := safeApplyProcessor(ctx, ps, processor, mid)
		return out
	})
}

// StickRight returns processor followed by transcoder, as one Transcoder:
//
//	Processor[S1] + Transcoder[S1,S2] => Transcoder[S1,S2]
//
// This is how same-type stages (validation, logging) are placed in front of
// a carrier conversion. Nil handling and panic capture follow StickLeft.
func StickRight[S1 carrier.Carrier[S1], S2 carrier.Carrier[S2]](processor Processor[S1], transcoder Transcoder[S1, S2]) Transcoder[S1, S2] {
	if transcoder == nil {
		return nil
	}
	if processor == nil {
		return transcoder
	}
	return TranscoderFunc[S1, S2](func(ctx context.Context, in <-chan S1) <-chan S2 {
		ctx, ps := EnsurePanicStore(ctx)
		mid, ok := safeApplyProcessor(ctx, ps, processor, in)
		if !ok {
			return closedChan[S2]()
		}
		out, _ := safeApplyTranscoder(ctx, ps, transcoder, mid)
		return out
	})
}
