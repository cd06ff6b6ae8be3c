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

package shell

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/dadrus/rtrie/cmd/flags"
	"github.com/dadrus/rtrie/cmd/output"
	"github.com/dadrus/rtrie/internal/app"
	"github.com/dadrus/rtrie/internal/apperr"
	"github.com/dadrus/rtrie/internal/x/errorchain"
)

type lineReader interface {
	Readline() (string, error)
}

// NewShellCommand represents the "shell" command.
func NewShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "shell",
		Short:   "Builds the index and starts an interactive session working on it",
		Example: "rtrie shell -c config.yaml",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := runShell(cmd); err != nil {
				flags.PrintError(cmd, err)

				os.Exit(1)
			}
		},
	}
}

func runShell(cmd *cobra.Command) error {
	settings, err := flags.GlobalSettings(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	appCtx, err := app.Load(ctx, settings.EnvPrefix, settings.ConfigPath)
	if err != nil {
		return err
	}

	stopWatching, err := appCtx.Watch(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if err := stopWatching(); err != nil {
			logger := appCtx.Logger()
			logger.Warn().Err(err).Msg("Failed to stop watching the index source")
		}
	}()

	session := NewSession(appCtx.Index(), appCtx.Report, settings.KeyEncoding,
		output.NewPrinter(cmd.OutOrStdout(), settings.Format, settings.KeyEncoding))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "rtrie> ",
		AutoComplete:    session.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return errorchain.NewWithMessage(apperr.ErrInternal, "failed to create readline instance").CausedBy(err)
	}

	defer rl.Close()

	return loop(rl, session)
}

func loop(in lineReader, session *Session) error {
	for {
		line, err := in.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil
		}

		if err != nil {
			return errorchain.NewWithMessage(apperr.ErrInternal, "failed to read input").CausedBy(err)
		}

		if !session.Execute(line) {
			return nil
		}
	}
}
