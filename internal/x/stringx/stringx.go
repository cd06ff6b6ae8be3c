// Copyright 2025 Dimitrij Drus <dadrus@gmx.de>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package stringx

import (
	"strconv"
	"unicode/utf8"
	"unsafe"
)

func ToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

func ToBytes(str string) []byte {
	return unsafe.Slice(unsafe.StringData(str), len(str))
}

// Printable returns b as is if it is valid UTF-8 without control characters.
// Otherwise, b is rendered as a quoted Go string literal.
func Printable(b []byte) string {
	if !utf8.Valid(b) {
		return strconv.Quote(ToString(b))
	}

	for _, r := range ToString(b) {
		if !strconv.IsPrint(r) {
			return strconv.Quote(ToString(b))
		}
	}

	return string(b)
}
