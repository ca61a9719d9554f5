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

package utf8scan

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type element struct {
	Text   string
	Kind   Kind
	Offset int
}

func collectElements(s string, keepGoing ContinuationFunc) []element {
	var out []element
	for e, reason := range Elements(s, keepGoing) {
		out = append(out, element{Text: e, Kind: reason.Kind, Offset: reason.Position})
	}
	return out
}

func TestNextElement_Empty(t *testing.T) {
	next, reason := NextElement([]byte{}, Always)
	assert.Zero(t, next)
	assert.True(t, reason.OK())
}

func TestNextElement_FirstCodepointIsFree(t *testing.T) {
	// A leading combining mark still forms an element on its own.
	next, reason := NextElement("\u0301a", IsCombiningMark)
	require.True(t, reason.OK())
	assert.Equal(t, 2, next)

	next, reason = NextElement("\u00e9", Never)
	require.True(t, reason.OK())
	assert.Equal(t, 2, next)
}

func TestNextElement_AlwaysTakesWholeBuffer(t *testing.T) {
	s := "h\u00e9llo, w\u00f6rld \U0001F600"
	next, reason := NextElement(s, Always)
	require.True(t, reason.OK())
	assert.Equal(t, len(s), next)
}

func TestNextElement_NilPredicateIsNever(t *testing.T) {
	next, reason := NextElement("ab", nil)
	require.True(t, reason.OK())
	assert.Equal(t, 1, next)
}

func TestNextElement_FailureOnFirstCodepointProgresses(t *testing.T) {
	next, reason := NextElement([]byte("\x80abc"), Always)
	assert.Equal(t, 1, next)
	assert.Equal(t, InvalidLeadByte, reason.Kind)
	assert.Equal(t, 0, reason.Position)

	next, reason = NextElement([]byte("\xE2\x82"), Always)
	assert.Equal(t, 2, next)
	assert.Equal(t, EndOfInputInContinuation, reason.Kind)
	assert.Equal(t, 2, reason.Position)
}

func TestNextElement_FailureOnLaterCodepointStopsBeforeIt(t *testing.T) {
	next, reason := NextElement([]byte("ab\x80c"), Always)
	assert.Equal(t, 2, next)
	assert.Equal(t, InvalidLeadByte, reason.Kind)
	assert.Equal(t, 2, reason.Position)

	next, reason = NextElement([]byte("ab\xE2\x82"), Always)
	assert.Equal(t, 2, next)
	assert.Equal(t, EndOfInputInContinuation, reason.Kind)
	assert.Equal(t, 4, reason.Position)
}

func TestElements_NeverSplitsPerCodepoint(t *testing.T) {
	s := "a\u00e9\u20ac\U0001F600\u0301"
	got := collectElements(s, Never)
	assert.Len(t, got, utf8.RuneCountInString(s))
	for _, e := range got {
		assert.Equal(t, 1, utf8.RuneCountInString(e.Text))
		assert.Equal(t, KindNone, e.Kind)
	}
}

func TestElements_CombiningMarks(t *testing.T) {
	got := collectElements("e\u0301a\u0300\u0302b", IsCombiningMark)
	want := []element{
		{Text: "e\u0301"},
		{Text: "a\u0300\u0302"},
		{Text: "b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("elements mismatch (-want +got):\n%s", diff)
	}
}

func TestElements_MalformedBytesFormTheirOwnElement(t *testing.T) {
	got := collectElements("ab\x80c", Always)
	want := []element{
		{Text: "ab"},
		{Text: "\x80", Kind: InvalidLeadByte, Offset: 2},
		{Text: "c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("elements mismatch (-want +got):\n%s", diff)
	}
}

func TestCountElements(t *testing.T) {
	n, err := CountElements("e\u0301te\u0301", IsCombiningMark)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = CountElements([]byte("a\u0301\x80"), IsCombiningMark)
	assert.Equal(t, 1, n)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLead))
	var uerr *Error
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, 3, uerr.Offset)
}

func TestContinuationByName(t *testing.T) {
	for _, name := range []string{"", "codepoint", "combining", "all"} {
		f, ok := ContinuationByName(name)
		assert.Truef(t, ok, "name %q", name)
		assert.NotNil(t, f)
	}
	_, ok := ContinuationByName("grapheme")
	assert.False(t, ok)

	assert.True(t, IsCombiningMark('\u0301'))
	assert.True(t, IsCombiningMark('\u20dd'))
	assert.False(t, IsCombiningMark('a'))
}
