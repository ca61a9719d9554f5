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

import "unicode"

// ContinuationFunc decides whether a codepoint extends the current textual
// element. It must be pure: NextElement may call it on any codepoint, in any
// order, any number of times.
type ContinuationFunc func(r rune) bool

// IsCombiningMark extends an element with Unicode marks (categories Mn, Mc
// and Me), grouping a base character with the accents that follow it.
func IsCombiningMark(r rune) bool {
	return unicode.Is(unicode.M, r)
}

// Always absorbs every codepoint: the whole input is one element.
func Always(rune) bool { return true }

// Never absorbs nothing: every codepoint is its own element.
func Never(rune) bool { return false }

// ContinuationByName resolves the names used in configuration files:
// "codepoint" (Never, also the default for an empty name), "combining"
// (IsCombiningMark) and "all" (Always).
func ContinuationByName(name string) (ContinuationFunc, bool) {
	switch name {
	case "codepoint", "":
		return Never, true
	case "combining":
		return IsCombiningMark, true
	case "all":
		return Always, true
	default:
		return nil, false
	}
}
