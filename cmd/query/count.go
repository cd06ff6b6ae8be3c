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

// NewCountCommand represents the "query count" command.
func NewCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "count [PREFIX...]",
		Short:   "Counts the keys starting with the given prefixes",
		Example: "rtrie query count -c config.yaml user/ group/",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runCount(cmd, args); err != nil {
				flags.PrintError(cmd, err)

				os.Exit(1)
			}
		},
	}
}

func runCount(cmd *cobra.Command, args []string) error {
	li, err := loadIndex(cmd)
	if err != nil {
		return err
	}

	prefixes, err := li.decodeKeys(args)
	if err != nil {
		return err
	}

	for _, prefix := range prefixes {
		li.printer.Count(prefix, li.ctx.Index().Count(prefix))
	}

	return nil
}
