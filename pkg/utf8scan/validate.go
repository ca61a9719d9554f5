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

// Valid reports whether b is entirely well-formed UTF-8. Empty input is valid.
func Valid[B Bytes](b B) bool {
	ok, _ := ValidReason(b)
	return ok
}

// ValidReason is like Valid but also returns the first failure. Its Position
// is absolute in b. On success the reason is empty.
func ValidReason[B Bytes](b B) (bool, Reason) {
	pos := 0
	for pos < len(b) {
		_, size, reason := Decode(b[pos:])
		if reason.Failed() {
			return false, reason.Shift(pos)
		}
		pos += size
	}
	return true, Reason{}
}

// ValidString validates a Go string in place, without converting it to a
// byte slice.
func ValidString(s string) bool {
	return Valid(s)
}

// ValidStringReason is the string counterpart of ValidReason.
func ValidStringReason(s string) (bool, Reason) {
	return ValidReason(s)
}

// Validate returns nil for well-formed input, or the first failure as *Error.
func Validate[B Bytes](b B) error {
	_, reason := ValidReason(b)
	return reason.Err()
}
