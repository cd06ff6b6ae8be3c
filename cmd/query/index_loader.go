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

package query

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dadrus/rtrie/cmd/flags"
	"github.com/dadrus/rtrie/cmd/output"
	"github.com/dadrus/rtrie/internal/app"
)

type loadedIndex struct {
	ctx      app.Context
	settings flags.Settings
	printer  *output.Printer
}

func loadIndex(cmd *cobra.Command) (*loadedIndex, error) {
	settings, err := flags.GlobalSettings(cmd)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	appCtx, err := app.Load(ctx, settings.EnvPrefix, settings.ConfigPath)
	if err != nil {
		return nil, err
	}

	return &loadedIndex{
		ctx:      appCtx,
		settings: settings,
		printer:  output.NewPrinter(cmd.OutOrStdout(), settings.Format, settings.KeyEncoding),
	}, nil
}

// decodeKeys decodes all arguments. An empty argument list results in a single empty key.
func (li *loadedIndex) decodeKeys(args []string) ([][]byte, error) {
	if len(args) == 0 {
		return [][]byte{nil}, nil
	}

	keys := make([][]byte, len(args))

	for i, arg := range args {
		key, err := li.settings.KeyEncoding.Decode(arg)
		if err != nil {
			return nil, err
		}

		keys[i] = key
	}

	return keys, nil
}
