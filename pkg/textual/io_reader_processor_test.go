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
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/benoit-pereira-da-silva/utf8scan/pkg/carrier"
	"github.com/benoit-pereira-da-silva/utf8scan/pkg/utf8scan"
)

func upperProcessor() ProcessorFunc[carrier.String] {
	return func(ctx context.Context, in <-chan carrier.String) <-chan carrier.String {
		return Async(ctx, in, func(_ context.Context, s carrier.String) carrier.String {
			s.Value = strings.ToUpper(s.Value)
			return s
		})
	}
}

func TestIOReaderProcessor_Start_ScanLinesIndexesAndOffsets(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	p := NewIOReaderProcessor[carrier.String](upperProcessor(), strings.NewReader("a\nbb\nccc"))
	p.SetContext(ctx)

	items, err := collectWithContext(ctx, p.Start())
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	sortByIndex(items)

	want := []carrier.String{
		{Value: "A\n", Index: 0, Offset: 0},
		{Value: "BB\n", Index: 1, Offset: 2},
		{Value: "CCC", Index: 2, Offset: 5},
	}
	if len(items) != len(want) {
		t.Fatalf("unexpected output count: got %d want %d items=%#v", len(items), len(want), items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("unexpected item[%d]: got %#v want %#v", i, items[i], want[i])
		}
	}
	if err := p.Err(); err != nil {
		t.Fatalf("unexpected scanner error: %v", err)
	}
	if _, ok := p.PanicStore().Load(); ok {
		t.Fatalf("unexpected panic recorded")
	}
}

func TestIOReaderProcessor_CodepointSplitReconstructsInput(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	const input = "héllo\nwörld 😀"
	p := NewIOReaderProcessor[carrier.String](NewChain[carrier.String](), strings.NewReader(input))
	p.SetContext(ctx)
	p.SetSplitFunc(ScanCodepoints())

	items, err := collectWithContext(ctx, p.Start())
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	var b strings.Builder
	for i, it := range items {
		if it.Offset != b.Len() {
			t.Fatalf("item %d: offset %d, want %d", i, it.Offset, b.Len())
		}
		b.WriteString(it.UTF8String())
	}
	if got := b.String(); got != input {
		t.Fatalf("reconstructed text mismatch:\n got: %q\nwant: %q", got, input)
	}
	if got, want := len(items), len([]rune(input)); got != want {
		t.Fatalf("unexpected token count: got %d want %d", got, want)
	}
}

func TestIOReaderProcessor_ErrReportsSplitFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	p := NewIOReaderProcessor[carrier.String](NewChain[carrier.String](), strings.NewReader("ok\xC0\x80"))
	p.SetContext(ctx)
	p.SetSplitFunc(ScanCodepoints())

	items, err := collectWithContext(ctx, p.Start())
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected the two valid codepoints before the failure, got %#v", items)
	}

	var uerr *utf8scan.Error
	if !errors.As(p.Err(), &uerr) {
		t.Fatalf("expected *utf8scan.Error, got %v", p.Err())
	}
	if uerr.Kind != utf8scan.OverlongEncoding || uerr.Offset != 3 {
		t.Fatalf("unexpected failure: %+v", uerr)
	}
}

func TestIOReaderProcessor_MaxTokenSize(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	p := NewIOReaderProcessor[carrier.String](NewChain[carrier.String](), strings.NewReader(strings.Repeat("x", 64)+"\n"))
	p.SetContext(ctx)
	p.SetMaxTokenSize(16)

	if _, err := collectWithContext(ctx, p.Start()); err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if !errors.Is(p.Err(), bufio.ErrTooLong) {
		t.Fatalf("expected bufio.ErrTooLong, got %v", p.Err())
	}
}

func TestIOReaderProcessor_StopCancels(t *testing.T) {
	waitCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// An endless reader: only Stop can end the pipeline.
	p := NewIOReaderProcessor[carrier.String](upperProcessor(), endless{})
	out := p.StartWithTimeout(time.Minute)
	<-out
	p.Stop()

	if _, err := collectWithContext(waitCtx, out); err != nil {
		t.Fatalf("pipeline did not stop: %v", err)
	}
}

type endless struct{}

func (endless) Read(b []byte) (int, error) {
	for i := range b {
		b[i] = 'z'
		if i%8 == 7 {
			b[i] = '\n'
		}
	}
	return len(b), nil
}
