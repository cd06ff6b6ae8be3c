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
	"github.com/gobwas/glob"

	"github.com/dadrus/rtrie/internal/x/stringx"
)

type globFilter struct {
	compiled glob.Glob
}

func (f *globFilter) Match(key []byte) bool {
	return f.compiled.Match(stringx.ToString(key))
}

// newGlobFilter compiles the pattern with '/' as separator. So * does not
// match across a '/', ** does.
func newGlobFilter(pattern string) (*globFilter, error) {
	if len(pattern) == 0 {
		return nil, ErrNoPatternDefined
	}

	compiled, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, err
	}

	return &globFilter{compiled: compiled}, nil
}
