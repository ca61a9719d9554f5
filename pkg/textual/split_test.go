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
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/benoit-pereira-da-silva/utf8scan/pkg/utf8scan"
)

func scanAll(r io.Reader, split bufio.SplitFunc) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(split)
	var tokens []string
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	return tokens, scanner.Err()
}

func TestScanLines_KeepsTerminators(t *testing.T) {
	tokens, err := scanAll(strings.NewReader("a\r\nb\n\nc"), ScanLines)
	if err != nil {
		t.Fatalf("scanner error: %v", err)
	}
	want := []string{"a\r\n", "b\n", "\n", "c"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("unexpected tokens:\n got: %#v\nwant: %#v", tokens, want)
	}
}

// TestScanElements_OneByteReads feeds the scanner one byte at a time so that
// every sequence and every element straddles a read boundary.
func TestScanElements_OneByteReads(t *testing.T) {
	const input = "e\u0301a\u0300\u0302 \U0001F600x"

	tokens, err := scanAll(iotest.OneByteReader(strings.NewReader(input)), ScanElements(utf8scan.IsCombiningMark))
	if err != nil {
		t.Fatalf("scanner error: %v", err)
	}
	want := []string{"e\u0301", "a\u0300\u0302", " ", "\U0001F600", "x"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("unexpected tokens:\n got: %#v\nwant: %#v", tokens, want)
	}
}

func TestScanCodepoints_OneByteReads(t *testing.T) {
	const input = "a€😀"
	tokens, err := scanAll(iotest.OneByteReader(strings.NewReader(input)), ScanCodepoints())
	if err != nil {
		t.Fatalf("scanner error: %v", err)
	}
	want := []string{"a", "€", "😀"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("unexpected tokens:\n got: %#v\nwant: %#v", tokens, want)
	}
}

func TestScanElements_MalformedInputStopsWithAbsoluteOffset(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		tokens []string
		kind   utf8scan.Kind
		offset int
	}{
		{name: "invalid lead", input: "ab\x80cd", tokens: []string{"ab"}, kind: utf8scan.InvalidLeadByte, offset: 2},
		{name: "truncated at EOF", input: "ab\xE2\x82", tokens: []string{"ab"}, kind: utf8scan.EndOfInputInContinuation, offset: 4},
		{name: "unexpected byte", input: "x\xC3y", tokens: []string{"x"}, kind: utf8scan.UnexpectedByte, offset: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := scanAll(iotest.OneByteReader(strings.NewReader(tt.input)), ScanElements(utf8scan.Always))
			if !reflect.DeepEqual(tokens, tt.tokens) {
				t.Fatalf("unexpected tokens:\n got: %#v\nwant: %#v", tokens, tt.tokens)
			}
			var uerr *utf8scan.Error
			if !errors.As(err, &uerr) {
				t.Fatalf("expected *utf8scan.Error, got %v", err)
			}
			if uerr.Kind != tt.kind || uerr.Offset != tt.offset {
				t.Fatalf("unexpected failure: got %v@%d want %v@%d", uerr.Kind, uerr.Offset, tt.kind, tt.offset)
			}
		})
	}
}
