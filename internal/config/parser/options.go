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

package parser

import (
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

type opts struct {
	configFile        string
	configLookupPaths []string
	envPrefix         string
	decodeHooks       []mapstructure.DecodeHookFunc
}

// nolint: gochecknoglobals
var defaultOptions = opts{
	envPrefix: "RTRIE_",
}

type Option func(*opts)

// WithConfigFile sets the configuration file to load. Loading fails if it does not exist.
func WithConfigFile(file string) Option {
	return func(o *opts) {
		configFile := strings.TrimSpace(file)
		if len(configFile) != 0 {
			o.configFile = configFile
		}
	}
}

// WithConfigLookupPath adds a path to check for a configuration file if none has been
// set explicitly. The first existing one wins.
func WithConfigLookupPath(path string) Option {
	return func(o *opts) {
		path = strings.TrimSpace(path)
		if len(path) != 0 {
			o.configLookupPaths = append(o.configLookupPaths, path)
		}
	}
}

func WithEnvPrefix(prefix string) Option {
	return func(o *opts) {
		prefix = strings.TrimSpace(prefix)
		if len(prefix) != 0 {
			o.envPrefix = prefix
		}
	}
}

func WithDecodeHookFunc(hook mapstructure.DecodeHookFunc) Option {
	return func(o *opts) {
		if hook != nil {
			o.decodeHooks = append(o.decodeHooks, hook)
		}
	}
}
