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
	"context"

	"github.com/rs/zerolog"
)

// Record is a single key/value pair delivered by a source. Key may be reused by the
// source after yield returns.
type Record struct {
	Key   []byte
	Value string
}

type Source interface {
	// ID identifies the source in logs and reports.
	ID() string
	// Records calls yield for every record of the source. Iteration stops on the
	// first error returned by yield, which is then returned by Records.
	Records(ctx context.Context, yield func(Record) error) error
	Close() error
}

// Watchable is implemented by sources reading local files, which can be watched for
// modifications.
type Watchable interface {
	WatchedPaths() []string
}

type Factory interface {
	Create(conf map[string]any, logger zerolog.Logger) (Source, error)
}

type FactoryFunc func(conf map[string]any, logger zerolog.Logger) (Source, error)

func (f FactoryFunc) Create(conf map[string]any, logger zerolog.Logger) (Source, error) {
	return f(conf, logger)
}
