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
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dadrus/rtrie/internal/x/errorchain"
)

var (
	ErrUnsupportedSourceType = errors.New("source type unsupported")

	// by intention. Used only during application bootstrap.
	factories   = make(map[string]Factory) //nolint:gochecknoglobals
	factoriesMu sync.RWMutex               //nolint:gochecknoglobals
)

func Register(typ string, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	if factory == nil {
		panic("source factory is nil")
	}

	factories[typ] = factory
}

func Create(typ string, conf map[string]any, logger zerolog.Logger) (Source, error) {
	factoriesMu.RLock()
	factory, ok := factories[typ]
	factoriesMu.RUnlock()

	if !ok {
		return nil, errorchain.NewWithMessagef(ErrUnsupportedSourceType, "'%s'", typ)
	}

	return factory.Create(conf, logger.With().Str("_source", typ).Logger())
}

// Types returns the sorted names of all registered source types.
func Types() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	return slices.Sorted(maps.Keys(factories))
}

func isRegistered(typ string) bool {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	_, ok := factories[typ]

	return ok
}
