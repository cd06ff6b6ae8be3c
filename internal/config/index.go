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

package config

import "github.com/inhies/go-bytesize"

type LimitPolicy string

const (
	// LimitPolicySkip drops records violating a limit and logs a warning.
	LimitPolicySkip LimitPolicy = "skip"
	// LimitPolicyFail aborts index building on the first violation.
	LimitPolicyFail LimitPolicy = "fail"
)

type DuplicatePolicy string

const (
	DuplicatesKeepFirst DuplicatePolicy = "keep_first"
	DuplicatesKeepLast  DuplicatePolicy = "keep_last"
)

// IndexConfig describes how the index is built. If Watch is set, long running sessions
// rebuild the index whenever a watchable source changes.
type IndexConfig struct {
	Source     SourceConfig    `koanf:"source"`
	Filter     FilterConfig    `koanf:"filter"`
	Limits     Limits          `koanf:"limits"`
	OnLimit    LimitPolicy     `koanf:"on_limit"   validate:"oneof=skip fail"`
	Duplicates DuplicatePolicy `koanf:"duplicates" validate:"oneof=keep_first keep_last"`
	Watch      bool            `koanf:"watch"`
}

// SourceConfig selects the source of the records to index. Config is decoded by the
// factory registered for Type.
type SourceConfig struct {
	Type   string         `koanf:"type"   validate:"required,source_type"`
	Config map[string]any `koanf:"config"`
}

// FilterConfig restricts indexed records to those with matching keys. An empty Type
// disables filtering.
type FilterConfig struct {
	Type    string `koanf:"type"    validate:"omitempty,oneof=glob regex"`
	Pattern string `koanf:"pattern" validate:"required_with=Type"`
}

type Limits struct {
	MaxKeySize bytesize.ByteSize `koanf:"max_key_size"`
	MaxEntries int               `koanf:"max_entries"  validate:"gte=0"`
}
