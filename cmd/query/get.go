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
	"os"

	"github.com/spf13/cobra"

	"github.com/dadrus/rtrie/cmd/flags"
)

// NewGetCommand represents the "query get" command.
func NewGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "get KEY...",
		Short:   "Prints the values stored for the given keys",
		Example: "rtrie query get -c config.yaml user/1",
		Args:    cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := runGet(cmd, args); err != nil {
				flags.PrintError(cmd, err)

				os.Exit(1)
			}
		},
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	li, err := loadIndex(cmd)
	if err != nil {
		return err
	}

	keys, err := li.decodeKeys(args)
	if err != nil {
		return err
	}

	for _, key := range keys {
		value, found := li.ctx.Index().Lookup(key)
		li.printer.Value(key, value, found)
	}

	return nil
}
