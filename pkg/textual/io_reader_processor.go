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
	"io"
	"runtime/debug"
	"sync"
	"time"

	"github.com/benoit-pereira-da-silva/utf8scan/pkg/carrier"
)

// IOReaderProcessor connects an io.Reader to a Processor by scanning the input
// stream into tokens.
//
// Tokenization is controlled by a bufio.SplitFunc (default: ScanLines).
// Each token is converted into the carrier type S via:
//
//	prototype.FromUTF8String(token).WithIndex(i).WithOffset(offset)
//
// where prototype is the zero value of S, i is the token sequence number and
// offset is the number of bytes consumed from the reader before the token.
// The offset is exact for split functions that emit tokens starting at the
// scan position (ScanLines, ScanCodepoints, ScanElements, bufio.ScanRunes).
//
// The scanner yields bytes as-is: tokens are not guaranteed to be valid
// UTF-8. Chain a ValidateProcessor to detect malformed input.
//
// Usage pattern:
//
//	p := NewIOReaderProcessor[carrier.String](myProcessor, reader)
//	p.SetContext(ctx)        // optional, must be called before Start
//	p.SetSplitFunc(...)      // optional, must be called before Start
//	p.SetMaxTokenSize(1<<20) // optional, must be called before Start
//	for item := range p.Start() { /* consume */ }
//	if err := p.Err(); err != nil { /* reading or splitting failed */ }
//	if info, ok := p.PanicStore().Load(); ok { /* a stage panicked */ }
//
// Start / StartWithTimeout spawn a goroutine that scans the input and feeds
// the processor's input channel. Stop cancels the context.
type IOReaderProcessor[S carrier.Carrier[S], P Processor[S]] struct {
	reader       io.Reader
	splitFunc    bufio.SplitFunc
	maxTokenSize int
	processor    P

	// ctx and cancel control the lifetime of the scanning / processing loop.
	ctx    context.Context
	cancel context.CancelFunc

	panicStore *PanicStore

	mu  sync.Mutex
	err error
}

// NewIOReaderProcessor constructs a new IOReaderProcessor using the provided
// processor and reader, splitting lines with ScanLines.
func NewIOReaderProcessor[S carrier.Carrier[S], P Processor[S]](processor P, reader io.Reader) *IOReaderProcessor[S, P] {
	return &IOReaderProcessor[S, P]{
		splitFunc: ScanLines,
		reader:    reader,
		processor: processor,
	}
}

// SetContext sets the base context used by Start / StartWithTimeout.
//
// The provided context is wrapped in a cancellable child so that Stop can
// terminate the loop even if the parent context is still alive.
func (p *IOReaderProcessor[S, P]) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	if p.cancel != nil {
		p.cancel()
	}
	p.ctx = ctx
	p.cancel = nil
	p.ensureContext()
}

// SetSplitFunc customizes the tokenization strategy.
func (p *IOReaderProcessor[S, P]) SetSplitFunc(splitFunc bufio.SplitFunc) {
	p.splitFunc = splitFunc
}

// SetMaxTokenSize raises (or lowers) the largest token the scanner accepts.
// Values <= 0 keep bufio.MaxScanTokenSize. Longer tokens stop the scan with
// bufio.ErrTooLong, reported by Err.
func (p *IOReaderProcessor[S, P]) SetMaxTokenSize(n int) {
	p.maxTokenSize = n
}

// PanicStore returns the PanicStore attached to the processing context.
// It is nil until SetContext or Start has been called.
func (p *IOReaderProcessor[S, P]) PanicStore() *PanicStore {
	return p.panicStore
}

// Err returns the error that stopped the scanner (a read error, a split
// function error or bufio.ErrTooLong), or nil. Call it after the output
// channel has been drained.
func (p *IOReaderProcessor[S, P]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *IOReaderProcessor[S, P]) setErr(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

// ensureContext initializes ctx / cancel if needed and ensures a PanicStore
// is attached.
func (p *IOReaderProcessor[S, P]) ensureContext() {
	if p.ctx == nil {
		p.ctx = context.Background()
	}
	p.ctx, p.panicStore = EnsurePanicStore(p.ctx)
	if p.cancel == nil {
		p.ctx, p.cancel = context.WithCancel(p.ctx)
	}
}

// Start reads from the reader, splits it according to the split function,
// converts each token into an S, and sends it into the processor.
//
// Scanning stops at EOF, on a scanner error (see Err) or when the context
// is done.
func (p *IOReaderProcessor[S, P]) Start() <-chan S {
	p.ensureContext()

	split := p.splitFunc
	if split == nil {
		split = ScanLines
	}

	// consumed counts the bytes the scanner advanced past; tokenOffset is the
	// value it had when the split function produced the last token.
	consumed, tokenOffset := 0, 0
	scanner := bufio.NewScanner(p.reader)
	scanner.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		advance, token, err := split(data, atEOF)
		if token != nil {
			tokenOffset = consumed
		}
		consumed += advance
		return advance, token, err
	})
	if p.maxTokenSize > 0 {
		initial := bufio.MaxScanTokenSize
		if p.maxTokenSize < initial {
			initial = p.maxTokenSize
		}
		scanner.Buffer(make([]byte, 0, initial), p.maxTokenSize)
	}

	in := make(chan S)
	out, ok := safeApplyProcessor[S](p.ctx, p.panicStore, p.processor, in)
	if _, panicked := p.panicStore.Load(); !ok || panicked {
		// Nothing will ever read in: stop before feeding it.
		p.cancel()
	}

	go func() {
		prototype := *new(S)

		defer safeCloseChan(p.panicStore, in)
		defer func() {
			if r := recover(); r != nil {
				p.panicStore.Store(r, debug.Stack())
				p.cancel()
			}
		}()

		counter := 0
		for {
			select {
			case <-p.ctx.Done():
				return
			default:
			}

			if !scanner.Scan() {
				p.setErr(scanner.Err())
				return
			}

			item := prototype.FromUTF8String(scanner.Text()).
				WithIndex(counter).
				WithOffset(tokenOffset)
			counter++

			select {
			case <-p.ctx.Done():
				return
			case <-p.panicStore.Done():
				// A stage died and may no longer read its input.
				p.cancel()
				return
			case in <- item:
			}
		}
	}()
	return out
}

// StartWithTimeout is like Start but cancels the context when the timeout
// elapses. If timeout <= 0, it delegates to Start.
func (p *IOReaderProcessor[S, P]) StartWithTimeout(timeout time.Duration) <-chan S {
	if timeout <= 0 {
		return p.Start()
	}
	parent := p.ctx
	if parent == nil {
		parent = context.Background()
	}
	p.ctx, p.cancel = context.WithTimeout(parent, timeout)
	return p.Start()
}

// Stop cancels the current processing context, if any. It is a no-op before
// Start.
func (p *IOReaderProcessor[S, P]) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
}
