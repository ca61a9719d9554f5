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
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/benoit-pereira-da-silva/utf8scan/pkg/carrier"
	"github.com/benoit-pereira-da-silva/utf8scan/pkg/utf8scan"
)

func TestValidateProcessor_AttachesAbsoluteErrors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	in := feed(
		carrier.StringAt("fine\n", 0, 0),
		carrier.StringAt("b\x80\x81d\xC0\x80\n", 1, 5),
	)
	items, err := collectWithContext(ctx, ValidateProcessor[carrier.String](0).Apply(ctx, in))
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	sortByIndex(items)

	if items[0].GetError() != nil {
		t.Fatalf("valid line carries an error: %v", items[0].GetError())
	}

	got := UTF8Errors(items[1].GetError())
	want := []struct {
		kind   utf8scan.Kind
		offset int
	}{
		{utf8scan.InvalidLeadByte, 6},
		{utf8scan.InvalidLeadByte, 7},
		{utf8scan.OverlongEncoding, 10},
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected error count: got %d want %d (%v)", len(got), len(want), items[1].GetError())
	}
	for i, w := range want {
		if got[i].Kind != w.kind || got[i].Offset != w.offset {
			t.Fatalf("error %d: got %v@%d want %v@%d", i, got[i].Kind, got[i].Offset, w.kind, w.offset)
		}
	}
	if !errors.Is(items[1].GetError(), utf8scan.ErrOverlong) {
		t.Fatalf("joined error does not match ErrOverlong")
	}
}

func TestValidateProcessor_MaxErrors(t *testing.T) {
	item := carrier.StringFrom(strings.Repeat("\xFF", 10))
	res := SyncApply(context.Background(), ValidateProcessor[carrier.String](3), item)

	if got := len(UTF8Errors(res.GetError())); got != 3 {
		t.Fatalf("unexpected error count: got %d want 3", got)
	}
}

func TestDecodeErrors_ValidInput(t *testing.T) {
	if errs := DecodeErrors("plain ascii and é", 100, 0); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestUTF8Errors_WalksWrappedAndJoined(t *testing.T) {
	a := &utf8scan.Error{Kind: utf8scan.InvalidLeadByte, Offset: 1, Err: utf8scan.ErrInvalidLead}
	b := &utf8scan.Error{Kind: utf8scan.UnexpectedByte, Offset: 4, Err: utf8scan.ErrUnexpectedByte}

	err := errors.Join(fmt.Errorf("line 1: %w", a), errors.New("unrelated"), errors.Join(b))
	got := UTF8Errors(err)
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("unexpected errors: %#v", got)
	}
	if UTF8Errors(nil) != nil {
		t.Fatalf("expected nil for a nil error")
	}
}

func TestChain_ValidateThenSlog(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	chain := NewChain[carrier.String](
		ValidateProcessor[carrier.String](0),
		nil,
		Slog[carrier.String](logger, "line"),
	)
	p := NewIOReaderProcessor[carrier.String](chain, strings.NewReader("ok\nbad\xFF\n"))
	p.SetContext(ctx)

	items, err := collectWithContext(ctx, p.Start())
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("unexpected output count: %d", len(items))
	}

	out := logs.String()
	if !strings.Contains(out, "level=DEBUG msg=line index=0 offset=0 bytes=3") {
		t.Fatalf("missing debug record:\n%s", out)
	}
	if !strings.Contains(out, "level=WARN msg=line index=1 offset=3 bytes=5") ||
		!strings.Contains(out, "invalid UTF-8 at byte 6") {
		t.Fatalf("missing warn record:\n%s", out)
	}
}

func TestChain_PanickingStageIsRecorded(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ctx, ps := WithPanicStore(ctx)

	broken := ProcessorFunc[carrier.String](func(context.Context, <-chan carrier.String) <-chan carrier.String {
		return nil
	})
	chain := NewChain[carrier.String](broken, ValidateProcessor[carrier.String](0))

	items, err := collectWithContext(ctx, chain.Apply(ctx, feed(carrier.StringFrom("x"))))
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no output, got %#v", items)
	}
	if _, ok := ps.Load(); !ok {
		t.Fatalf("expected the nil channel to be recorded")
	}
}

type panickingProcessor struct{}

func (panickingProcessor) Apply(context.Context, <-chan carrier.String) <-chan carrier.String {
	panic("apply")
}

// waitGoroutines polls until at most limit goroutines remain.
func waitGoroutines(t *testing.T, limit int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > limit {
		if time.Now().After(deadline) {
			t.Fatalf("goroutines leaked: got %d want <= %d", runtime.NumGoroutine(), limit)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestIOReaderProcessor_FailingStageReleasesReader(t *testing.T) {
	stages := map[string]Processor[carrier.String]{
		"panic in Apply": panickingProcessor{},
		"panic in func": ProcessorFunc[carrier.String](func(context.Context, <-chan carrier.String) <-chan carrier.String {
			panic("func")
		}),
		"nil channel": ProcessorFunc[carrier.String](func(context.Context, <-chan carrier.String) <-chan carrier.String {
			return nil
		}),
		"panic on second item": ProcessorFunc[carrier.String](func(ctx context.Context, in <-chan carrier.String) <-chan carrier.String {
			return Async(ctx, in, func(_ context.Context, s carrier.String) carrier.String {
				if s.Index == 1 {
					panic("item")
				}
				return s
			})
		}),
	}

	for name, stage := range stages {
		t.Run(name, func(t *testing.T) {
			before := runtime.NumGoroutine()
			for i := 0; i < 20; i++ {
				p := NewIOReaderProcessor[carrier.String](stage, strings.NewReader("a\nb\nc\nd\n"))
				p.SetContext(context.Background())
				for range p.Start() {
				}
				if _, ok := p.PanicStore().Load(); !ok {
					t.Fatalf("run %d: expected the failure to be recorded", i)
				}
			}
			waitGoroutines(t, before+1)
		})
	}
}

func TestSyncApply_PassThroughAndAggregate(t *testing.T) {
	ctx := context.Background()
	in := carrier.StringAt("x", 4, 9)

	drop := ProcessorFunc[carrier.String](func(ctx context.Context, in <-chan carrier.String) <-chan carrier.String {
		out := make(chan carrier.String)
		go func() {
			defer close(out)
			for range in {
			}
		}()
		return out
	})
	if got := SyncApply(ctx, drop, in); got != in {
		t.Fatalf("expected pass-through, got %#v", got)
	}

	split := ProcessorFunc[carrier.String](func(ctx context.Context, in <-chan carrier.String) <-chan carrier.String {
		out := make(chan carrier.String, 2)
		go func() {
			defer close(out)
			for s := range in {
				out <- carrier.StringAt("b", 1, s.Offset+1)
				out <- carrier.StringAt("a", 0, s.Offset)
			}
		}()
		return out
	})
	got := SyncApply(ctx, split, in)
	if got.Value != "ab" || got.Offset != 9 {
		t.Fatalf("unexpected aggregate: %#v", got)
	}
}
