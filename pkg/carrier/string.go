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

package carrier

import (
	"errors"
	"sort"
	"strings"
)

// String is the minimal Carrier implementation.
//
// Index is the token sequence number and Offset the token's byte offset in
// its stream (both set by IOReaderProcessor). Value carries the raw token
// text. Error carries non-fatal errors attached by processors.
type String struct {
	Value  string
	Index  int
	Offset int
	Error  error
}

func (s String) UTF8String() UTF8String {
	return s.Value
}

func (s String) FromUTF8String(str UTF8String) String {
	return String{Value: str}
}

func (s String) WithIndex(idx int) String {
	s.Index = idx
	return s
}

func (s String) GetIndex() int {
	return s.Index
}

func (s String) WithOffset(offset int) String {
	s.Offset = offset
	return s
}

func (s String) GetOffset() int {
	return s.Offset
}

// Aggregate concatenates multiple String values into one.
//
// The input slice is copied and stably sorted by Index, so callers can emit
// out-of-order fragments and still obtain a deterministic output. The result
// starts at the offset of the first fragment.
//
// Errors from all inputs are merged with errors.Join.
func (s String) Aggregate(stringers []String) String {
	if len(stringers) == 0 {
		return String{}
	}
	items := make([]String, len(stringers))
	copy(items, stringers)

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Index < items[j].Index
	})

	total := 0
	for _, it := range items {
		total += len(it.Value)
	}

	var b strings.Builder
	b.Grow(total)

	var aggErr error
	for _, it := range items {
		b.WriteString(it.Value)
		if it.Error != nil {
			aggErr = errors.Join(aggErr, it.Error)
		}
	}

	return String{Value: b.String(), Index: items[0].Index, Offset: items[0].Offset, Error: aggErr}
}

func (s String) WithError(err error) String {
	if err == nil {
		return s
	}
	if s.Error == nil {
		s.Error = err
	} else {
		s.Error = errors.Join(s.Error, err)
	}
	return s
}

func (s String) GetError() error {
	return s.Error
}

var _ Carrier[String] = String{}
