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

package keyfilter

import (
	"time"

	"github.com/dlclark/regexp2"

	"github.com/dadrus/rtrie/internal/x/stringx"
)

const regexMatchTimeout = 100 * time.Millisecond

type regexFilter struct {
	compiled *regexp2.Regexp
}

func newRegexFilter(pattern string) (*regexFilter, error) {
	if len(pattern) == 0 {
		return nil, ErrNoPatternDefined
	}

	compiled, err := regexp2.Compile(pattern, regexp2.RE2)
	if err != nil {
		return nil, err
	}

	compiled.MatchTimeout = regexMatchTimeout

	return &regexFilter{compiled: compiled}, nil
}

func (f *regexFilter) Match(key []byte) bool {
	// the error is only set on timeouts, which is treated as a miss
	ok, _ := f.compiled.MatchString(stringx.ToString(key))

	return ok
}
