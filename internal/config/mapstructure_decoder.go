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

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/inhies/go-bytesize"

	"github.com/dadrus/rtrie/internal/apperr"
	"github.com/dadrus/rtrie/internal/x/errorchain"
)

// StringToByteSizeHookFunc decodes strings like "4KB" or "1.5 MB" into bytesize.ByteSize.
func StringToByteSizeHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}

		if to != reflect.TypeOf(bytesize.ByteSize(0)) {
			return data, nil
		}

		result, err := bytesize.Parse(reflect.ValueOf(data).String())
		if err != nil {
			return nil, errorchain.NewWithMessagef(apperr.ErrConfiguration,
				"failed parsing %q as byte size", data).CausedBy(err)
		}

		return result, nil
	}
}
