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

// NewStatsCommand represents the "query stats" command.
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		Short:   "Builds the index and prints statistics about it",
		Example: "rtrie query stats -c config.yaml -o json",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := runStats(cmd); err != nil {
				flags.PrintError(cmd, err)

				os.Exit(1)
			}
		},
	}
}

func runStats(cmd *cobra.Command) error {
	li, err := loadIndex(cmd)
	if err != nil {
		return err
	}

	li.printer.Stats(li.ctx.Report(), li.ctx.Index().Stats())

	return nil
}
