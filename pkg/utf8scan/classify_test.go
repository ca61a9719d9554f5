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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_EveryByteHasAtMostOneClass(t *testing.T) {
	for i := 0; i < 256; i++ {
		c := byte(i)
		classes := 0
		for _, is := range []func(byte) bool{IsASCII, IsTwoByteLead, IsThreeByteLead, IsFourByteLead, IsContinuation} {
			if is(c) {
				classes++
			}
		}
		if c >= 0xF8 {
			assert.Zerof(t, classes, "byte %#x", c)
			continue
		}
		assert.Equalf(t, 1, classes, "byte %#x", c)
	}
}

func TestClassifier_Boundaries(t *testing.T) {
	assert.True(t, IsASCII(0x00))
	assert.True(t, IsASCII(0x7F))
	assert.False(t, IsASCII(0x80))

	assert.True(t, IsContinuation(0x80))
	assert.True(t, IsContinuation(0xBF))
	assert.False(t, IsContinuation(0xC0))

	assert.True(t, IsTwoByteLead(0xC0))
	assert.True(t, IsTwoByteLead(0xDF))
	assert.True(t, IsThreeByteLead(0xE0))
	assert.True(t, IsThreeByteLead(0xEF))
	assert.True(t, IsFourByteLead(0xF0))
	assert.True(t, IsFourByteLead(0xF7))
	assert.False(t, IsFourByteLead(0xF8))
}

func TestExtractDataBits(t *testing.T) {
	assert.Equal(t, rune(0x03), ExtractDataBits(0xC3, 0xE0))
	assert.Equal(t, rune(0x02), ExtractDataBits(0xE2, 0xF0))
	assert.Equal(t, rune(0x04), ExtractDataBits(0xF4, 0xF8))
	assert.Equal(t, rune(0x29), ContinuationData(0xA9))
	assert.Equal(t, rune(0x3F), ContinuationData(0xBF))
}
