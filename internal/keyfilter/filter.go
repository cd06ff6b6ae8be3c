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
	"errors"

	"github.com/dadrus/rtrie/internal/apperr"
	"github.com/dadrus/rtrie/internal/config"
	"github.com/dadrus/rtrie/internal/x/errorchain"
)

var (
	ErrUnsupportedFilterType = errors.New("unsupported filter type")
	ErrNoPatternDefined      = errors.New("no pattern defined")
)

// Filter decides whether a record with the given key should be indexed.
type Filter interface {
	Match(key []byte) bool
}

type matchAll struct{}

func (matchAll) Match([]byte) bool { return true }

// New creates the filter described by conf. A configuration without a type results
// in a filter accepting every key.
func New(conf config.FilterConfig) (Filter, error) {
	var (
		filter Filter
		err    error
	)

	switch conf.Type {
	case "":
		return matchAll{}, nil
	case "glob":
		filter, err = newGlobFilter(conf.Pattern)
	case "regex":
		filter, err = newRegexFilter(conf.Pattern)
	default:
		err = errorchain.NewWithMessagef(ErrUnsupportedFilterType, "'%s'", conf.Type)
	}

	if err != nil {
		return nil, errorchain.NewWithMessage(apperr.ErrConfiguration, "failed creating key filter").CausedBy(err)
	}

	return filter, nil
}
