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

package check

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/benoit-pereira-da-silva/utf8scan/pkg/carrier"
	"github.com/benoit-pereira-da-silva/utf8scan/pkg/textual"
	"github.com/benoit-pereira-da-silva/utf8scan/pkg/utf8scan"
)

// Line is a measured line of input. Codepoints and Elements count what a
// lossy decoder would produce: each malformed sequence counts as one
// replacement codepoint forming its own element.
type Line struct {
	Value      string
	Index      int
	Offset     int
	Error      error
	Codepoints int
	Elements   int
}

func (l Line) UTF8String() carrier.UTF8String {
	return l.Value
}

func (l Line) FromUTF8String(s carrier.UTF8String) Line {
	return Line{Value: s}
}

func (l Line) WithIndex(idx int) Line {
	l.Index = idx
	return l
}

func (l Line) GetIndex() int {
	return l.Index
}

func (l Line) WithOffset(offset int) Line {
	l.Offset = offset
	return l
}

func (l Line) GetOffset() int {
	return l.Offset
}

// Aggregate concatenates lines in index order and sums their counts.
func (l Line) Aggregate(lines []Line) Line {
	if len(lines) == 0 {
		return Line{}
	}
	items := make([]Line, len(lines))
	copy(items, lines)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Index < items[j].Index
	})

	var b strings.Builder
	res := Line{Index: items[0].Index, Offset: items[0].Offset}
	for _, it := range items {
		b.WriteString(it.Value)
		res.Codepoints += it.Codepoints
		res.Elements += it.Elements
		if it.Error != nil {
			res.Error = errors.Join(res.Error, it.Error)
		}
	}
	res.Value = b.String()
	return res
}

func (l Line) WithError(err error) Line {
	if err == nil {
		return l
	}
	l.Error = errors.Join(l.Error, err)
	return l
}

func (l Line) GetError() error {
	return l.Error
}

var _ carrier.Carrier[Line] = Line{}

// Measure converts validated strings into Lines, counting codepoints and
// the textual elements delimited by keepGoing. Index, offset and errors are
// preserved.
func Measure(keepGoing utf8scan.ContinuationFunc) textual.TranscoderFunc[carrier.String, Line] {
	return func(ctx context.Context, in <-chan carrier.String) <-chan Line {
		return textual.Async(ctx, in, func(_ context.Context, s carrier.String) Line {
			l := Line{
				Value:  s.Value,
				Index:  s.Index,
				Offset: s.Offset,
				Error:  s.Error,
			}
			for range utf8scan.Codepoints(s.Value) {
				l.Codepoints++
			}
			for range utf8scan.Elements(s.Value, keepGoing) {
				l.Elements++
			}
			return l
		})
	}
}
