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

package file

import (
	"github.com/inhies/go-bytesize"

	"github.com/dadrus/rtrie/internal/source"
)

type Format string

const (
	// FormatLines expects one record per line, the key separated from the value by Separator.
	FormatLines Format = "lines"
	// FormatYAML expects a single mapping. Keys are taken in document order.
	FormatYAML Format = "yaml"
	// FormatJSONL expects one JSON document per line.
	FormatJSONL Format = "jsonl"
)

const defaultMaxLineSize = 64 * bytesize.KB

type Config struct {
	Path        string             `mapstructure:"path"          validate:"required"`
	Format      Format             `mapstructure:"format"        validate:"omitempty,oneof=lines yaml jsonl"`
	KeyEncoding source.KeyEncoding `mapstructure:"key_encoding"  validate:"omitempty,oneof=raw hex base64"`
	Separator   string             `mapstructure:"separator"`
	KeyPath     string             `mapstructure:"key_path"      validate:"required_if=Format jsonl"`
	ValuePath   string             `mapstructure:"value_path"`
	MaxLineSize bytesize.ByteSize  `mapstructure:"max_line_size" validate:"gt=0"`
}

func defaultConfig() Config {
	return Config{
		Format:      FormatLines,
		KeyEncoding: source.KeyEncodingRaw,
		Separator:   "\t",
		MaxLineSize: defaultMaxLineSize,
	}
}
