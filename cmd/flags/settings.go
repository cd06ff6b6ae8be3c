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

package flags

import (
	"github.com/spf13/cobra"

	"github.com/dadrus/rtrie/cmd/output"
	"github.com/dadrus/rtrie/internal/config"
	"github.com/dadrus/rtrie/internal/source"
	"github.com/dadrus/rtrie/internal/x"
)

type Settings struct {
	EnvPrefix   config.EnvVarPrefix
	ConfigPath  config.ConfigurationPath
	KeyEncoding source.KeyEncoding
	Format      output.Format
}

// GlobalSettings reads the flags registered by RegisterGlobalFlags.
func GlobalSettings(cmd *cobra.Command) (Settings, error) {
	envPrefix, _ := cmd.Flags().GetString(EnvironmentConfigPrefix)
	configPath, _ := cmd.Flags().GetString(Config)
	hexKeys, _ := cmd.Flags().GetBool(HexKeys)
	outputFormat, _ := cmd.Flags().GetString(Output)

	format, err := output.ParseFormat(x.OrDefault(outputFormat, string(output.FormatText)))
	if err != nil {
		return Settings{}, err
	}

	enc := source.KeyEncodingRaw
	if hexKeys {
		enc = source.KeyEncodingHex
	}

	return Settings{
		EnvPrefix:   config.EnvVarPrefix(envPrefix),
		ConfigPath:  config.ConfigurationPath(configPath),
		KeyEncoding: enc,
		Format:      format,
	}, nil
}

// PrintError writes err to the error stream of cmd, rendered as JSON if json output
// has been requested.
func PrintError(cmd *cobra.Command, err error) {
	format := output.FormatText

	if value, _ := cmd.Flags().GetString(Output); value == string(output.FormatJSON) {
		format = output.FormatJSON
	}

	output.NewPrinter(cmd.ErrOrStderr(), format, source.KeyEncodingRaw).Error(err)
}
