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
	"log/slog"

	"github.com/benoit-pereira-da-silva/utf8scan/pkg/carrier"
)

// Slog is a processor that logs every carrier it forwards: items carrying an
// error at Warn level, with the error, the others at Debug level. A nil
// logger uses slog.Default().
func Slog[S carrier.Carrier[S]](logger *slog.Logger, label string) ProcessorFunc[S] {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, in <-chan S) <-chan S {
		return Async(ctx, in, func(ctx context.Context, p S) S {
			attrs := []any{
				slog.Int("index", p.GetIndex()),
				slog.Int("offset", p.GetOffset()),
				slog.Int("bytes", len(p.UTF8String())),
			}
			if err := p.GetError(); err != nil {
				logger.WarnContext(ctx, label, append(attrs, slog.Any("error", err))...)
			} else {
				logger.DebugContext(ctx, label, attrs...)
			}
			return p
		})
	}
}
