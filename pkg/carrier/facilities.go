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

// StringFrom builds a String from a token, using the zero value as prototype.
func StringFrom(from UTF8String) String {
	return (*new(String)).FromUTF8String(from)
}

// StringAt builds a String for a token found at offset in its stream.
func StringAt(from UTF8String, index, offset int) String {
	return StringFrom(from).WithIndex(index).WithOffset(offset)
}
