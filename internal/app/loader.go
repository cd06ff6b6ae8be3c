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

	"github.com/rs/zerolog"

	"github.com/dadrus/rtrie/internal/config"
	"github.com/dadrus/rtrie/internal/index"
	"github.com/dadrus/rtrie/internal/logging"
	"github.com/dadrus/rtrie/internal/source"
	_ "github.com/dadrus/rtrie/internal/source/blob"  // registers the blob source
	_ "github.com/dadrus/rtrie/internal/source/file"  // registers the file source
	_ "github.com/dadrus/rtrie/internal/source/redis" // registers the redis source
	"github.com/dadrus/rtrie/internal/validation"
)

// NewValidator returns a validator aware of the registered source types.
func NewValidator() (validation.Validator, error) {
	return validation.NewValidator(
		validation.WithTagValidator(source.TypeValidator{}),
		validation.WithErrorTranslator(source.TypeValidator{}),
	)
}

func LoadConfig(envPrefix config.EnvVarPrefix, configPath config.ConfigurationPath) (*config.Configuration, error) {
	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}

	return config.NewConfiguration(envPrefix, configPath, validator)
}

// Load reads the configuration and builds the index from the configured source.
func Load(
	ctx context.Context,
	envPrefix config.EnvVarPrefix,
	configPath config.ConfigurationPath,
) (Context, error) {
	conf, err := LoadConfig(envPrefix, configPath)
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(conf.Log)

	idx, report, watched, err := build(ctx, conf, logger)
	if err != nil {
		return nil, err
	}

	return &appContext{idx: idx, report: report, watched: watched, l: logger, c: conf}, nil
}

func build(
	ctx context.Context,
	conf *config.Configuration,
	logger zerolog.Logger,
) (*index.Index, index.BuildReport, []string, error) {
	src, err := source.Create(conf.Index.Source.Type, conf.Index.Source.Config, logger)
	if err != nil {
		return nil, index.BuildReport{}, nil, err
	}

	defer func() {
		if err := src.Close(); err != nil {
			logger.Warn().Err(err).Str("_source", src.ID()).Msg("Failed closing source")
		}
	}()

	var watched []string
	if ws, ok := src.(source.Watchable); ok {
		watched = ws.WatchedPaths()
	}

	idx, report, err := index.Build(ctx, src, conf.Index, logger)
	if err != nil {
		return nil, report, nil, err
	}

	return idx, report, watched, nil
}
