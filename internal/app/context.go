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

package app

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dadrus/rtrie/internal/config"
	"github.com/dadrus/rtrie/internal/index"
	"github.com/dadrus/rtrie/internal/source"
	"github.com/dadrus/rtrie/internal/watcher"
)

// Context gives commands access to the loaded index and the things it was built with.
type Context interface {
	Index() *index.Index
	Report() index.BuildReport
	Logger() zerolog.Logger
	Config() *config.Configuration

	// Reload rebuilds the index from the configured source. The index stays unchanged
	// if that fails.
	Reload(ctx context.Context) error
	// Watch reloads the index whenever a file of a watchable source is modified. It does
	// nothing if watching is disabled. The returned function stops watching.
	Watch(ctx context.Context) (func() error, error)
}

type appContext struct {
	idx     *index.Index
	l       zerolog.Logger
	c       *config.Configuration
	watched []string

	reloadMu sync.Mutex

	mu     sync.RWMutex
	report index.BuildReport
}

func (c *appContext) Index() *index.Index           { return c.idx }
func (c *appContext) Logger() zerolog.Logger        { return c.l }
func (c *appContext) Config() *config.Configuration { return c.c }

func (c *appContext) Report() index.BuildReport {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.report
}

func (c *appContext) Reload(ctx context.Context) error {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	idx, report, _, err := build(ctx, c.c, c.l)
	if err != nil {
		return err
	}

	c.idx.ReplaceWith(idx)

	c.mu.Lock()
	c.report = report
	c.mu.Unlock()

	return nil
}

func (c *appContext) Watch(ctx context.Context) (func() error, error) {
	if !c.c.Index.Watch || len(c.watched) == 0 {
		return func() error { return nil }, nil
	}

	fw, err := watcher.New(c.l)
	if err != nil {
		return nil, err
	}

	listener := watcher.ChangeListenerFunc(func(logger zerolog.Logger) {
		if err := c.Reload(ctx); err != nil {
			var src source.Source
			if errors.As(err, &src) {
				logger = logger.With().Str("_source", src.ID()).Logger()
			}

			logger.Warn().Err(err).Msg("Index reload failed, keeping the current one")

			return
		}

		logger.Info().Int("_keys", c.idx.Len()).Msg("Index reloaded")
	})

	for _, path := range c.watched {
		if err = fw.Add(path, listener); err != nil {
			_ = fw.Stop()

			return nil, err
		}
	}

	fw.Start(ctx)

	return fw.Stop, nil
}
