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

// Marker masks. A lead byte of an n-byte sequence has its n high bits set
// followed by a zero bit; a continuation byte starts with 10.
const (
	highBit       byte = 0x80
	highTwoBits   byte = 0xC0
	highThreeBits byte = 0xE0
	highFourBits  byte = 0xF0
	highFiveBits  byte = 0xF8
)

// IsASCII reports whether c is a single-byte sequence (0xxxxxxx).
func IsASCII(c byte) bool {
	return c&highBit == 0
}

// IsTwoByteLead reports whether c starts a two-byte sequence (110xxxxx).
func IsTwoByteLead(c byte) bool {
	return c&highThreeBits == highTwoBits
}

// IsThreeByteLead reports whether c starts a three-byte sequence (1110xxxx).
func IsThreeByteLead(c byte) bool {
	return c&highFourBits == highThreeBits
}

// IsFourByteLead reports whether c starts a four-byte sequence (11110xxx).
func IsFourByteLead(c byte) bool {
	return c&highFiveBits == highFourBits
}

// IsContinuation reports whether c is a continuation byte (10xxxxxx).
func IsContinuation(c byte) bool {
	return c&highTwoBits == highBit
}

// ExtractDataBits strips the marker bits selected by mask from c and
// returns the remaining payload.
func ExtractDataBits(c byte, mask byte) rune {
	return rune(c &^ mask)
}

// ContinuationData returns the 6 payload bits of a continuation byte.
func ContinuationData(c byte) rune {
	return ExtractDataBits(c, highTwoBits)
}

// leadMask returns the marker mask and the sequence length announced by
// lead, or (0, 0) when lead is not a valid lead byte.
func leadMask(lead byte) (mask byte, length int) {
	switch {
	case IsASCII(lead):
		return 0, 1
	case IsTwoByteLead(lead):
		return highThreeBits, 2
	case IsThreeByteLead(lead):
		return highFourBits, 3
	case IsFourByteLead(lead):
		return highFiveBits, 4
	default:
		return 0, 0
	}
}
