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

package source

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/dadrus/rtrie/internal/apperr"
	"github.com/dadrus/rtrie/internal/config"
	"github.com/dadrus/rtrie/internal/validation"
	"github.com/dadrus/rtrie/internal/x/errorchain"
)

// DecodeConfig decodes the source specific configuration into output and validates it.
// Unknown properties are rejected.
func DecodeConfig(typ string, input any, output any) error {
	dec, err := mapstructure.NewDecoder(
		&mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				config.StringToByteSizeHookFunc(),
			),
			Result:      output,
			ErrorUnused: true,
		})
	if err != nil {
		return errorchain.NewWithMessagef(apperr.ErrInternal,
			"failed creating decoder for %s source config", typ).CausedBy(err)
	}

	if err = dec.Decode(input); err != nil {
		return errorchain.NewWithMessagef(apperr.ErrConfiguration,
			"failed decoding %s source config", typ).CausedBy(err)
	}

	if err = validation.ValidateStruct(output); err != nil {
		return errorchain.NewWithMessagef(apperr.ErrConfiguration,
			"failed validating %s source config", typ).CausedBy(err)
	}

	return nil
}
