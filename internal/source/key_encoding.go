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
	"encoding/base64"
	"encoding/hex"

	"github.com/dadrus/rtrie/internal/apperr"
	"github.com/dadrus/rtrie/internal/x/errorchain"
	"github.com/dadrus/rtrie/internal/x/stringx"
)

// KeyEncoding describes how keys are represented in textual input and output.
type KeyEncoding string

const (
	KeyEncodingRaw    KeyEncoding = "raw"
	KeyEncodingHex    KeyEncoding = "hex"
	KeyEncodingBase64 KeyEncoding = "base64"
)

func (e KeyEncoding) Decode(value string) ([]byte, error) {
	var (
		key []byte
		err error
	)

	switch e {
	case KeyEncodingHex:
		key, err = hex.DecodeString(value)
	case KeyEncodingBase64:
		key, err = base64.StdEncoding.DecodeString(value)
	case KeyEncodingRaw, "":
		key = []byte(value)
	default:
		return nil, errorchain.NewWithMessagef(apperr.ErrArgument, "unsupported key encoding '%s'", e)
	}

	if err != nil {
		return nil, errorchain.NewWithMessagef(apperr.ErrArgument,
			"%q is not a valid %s encoded key", value, e).CausedBy(err)
	}

	return key, nil
}

// Encode renders the key. Raw keys, which are not printable, are quoted.
func (e KeyEncoding) Encode(key []byte) string {
	switch e {
	case KeyEncodingHex:
		return hex.EncodeToString(key)
	case KeyEncodingBase64:
		return base64.StdEncoding.EncodeToString(key)
	default:
		return stringx.Printable(key)
	}
}
