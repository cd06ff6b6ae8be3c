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
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"

	"github.com/dadrus/rtrie/internal/apperr"
	"github.com/dadrus/rtrie/internal/config/parser"
	"github.com/dadrus/rtrie/internal/validation"
	"github.com/dadrus/rtrie/internal/x/errorchain"
)

type (
	EnvVarPrefix      string
	ConfigurationPath string
)

type Configuration struct {
	Log   LoggingConfig `koanf:"log"`
	Index IndexConfig   `koanf:"index"`
}

// NewConfiguration loads the configuration from the given file (optional) and the
// environment variables starting with the given prefix on top of the defaults and
// validates the result.
func NewConfiguration(
	envPrefix EnvVarPrefix,
	configFile ConfigurationPath,
	validator validation.Validator,
) (*Configuration, error) {
	result := defaultConfig()

	err := parser.New(
		parser.WithDecodeHookFunc(mapstructure.StringToTimeDurationHookFunc()),
		parser.WithDecodeHookFunc(StringToByteSizeHookFunc()),
		parser.WithDecodeHookFunc(logLevelDecodeHookFunc),
		parser.WithDecodeHookFunc(logFormatDecodeHookFunc),
		parser.WithConfigFile(string(configFile)),
		parser.WithConfigLookupPath("rtrie.yaml"),
		parser.WithConfigLookupPath(filepath.Join(userConfigDir(), "rtrie.yaml")),
		parser.WithConfigLookupPath("/etc/rtrie/rtrie.yaml"),
		parser.WithEnvPrefix(string(envPrefix)),
	).Load(&result)
	if err != nil {
		return nil, errorchain.NewWithMessage(apperr.ErrConfiguration,
			"failed to load configuration").CausedBy(err)
	}

	if err = validator.ValidateStruct(result); err != nil {
		return nil, errorchain.NewWithMessage(apperr.ErrConfiguration,
			"configuration is invalid").CausedBy(err)
	}

	return &result, nil
}

func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config")
}
