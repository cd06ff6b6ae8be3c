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
	"errors"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"

	"github.com/dadrus/rtrie/cmd/output"
	"github.com/dadrus/rtrie/internal/apperr"
	"github.com/dadrus/rtrie/internal/index"
	"github.com/dadrus/rtrie/internal/source"
	"github.com/dadrus/rtrie/internal/x/errorchain"
)

var errUnknownCommand = errors.New("unknown command")

type command struct {
	name  string
	usage string
	args  int // -1 if optional single argument
	exec  func(s *Session, args []string) error
}

func commands() []command {
	return []command{
		{name: "get", usage: "get KEY", args: 1, exec: (*Session).get},
		{name: "set", usage: "set KEY VALUE", args: 2, exec: (*Session).set},
		{name: "append", usage: "append KEY VALUE", args: 2, exec: (*Session).appendValue},
		{name: "del", usage: "del KEY", args: 1, exec: (*Session).del},
		{name: "count", usage: "count [PREFIX]", args: -1, exec: (*Session).count},
		{name: "len", usage: "len", args: 0, exec: (*Session).size},
		{name: "stats", usage: "stats", args: 0, exec: (*Session).stats},
		{name: "help", usage: "help", args: 0, exec: (*Session).help},
	}
}

func (s *Session) completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(s.commands)+1)
	for _, cmd := range s.commands {
		items = append(items, readline.PcItem(cmd.name))
	}

	items = append(items, readline.PcItem("exit"))

	return readline.NewPrefixCompleter(items...)
}

// Session executes shell commands against an index.
type Session struct {
	commands []command

	idx     *index.Index
	report  func() index.BuildReport
	enc     source.KeyEncoding
	printer *output.Printer
}

// NewSession creates a session working on idx. report is consulted on each stats command,
// since the index might have been rebuilt in between.
func NewSession(
	idx *index.Index,
	report func() index.BuildReport,
	enc source.KeyEncoding,
	printer *output.Printer,
) *Session {
	return &Session{commands: commands(), idx: idx, report: report, enc: enc, printer: printer}
}

// Execute runs a single input line. It returns false if the session should end.
// Errors are printed and do not end the session.
func (s *Session) Execute(line string) bool {
	args, err := shellquote.Split(line)
	if err != nil {
		s.printer.Error(errorchain.NewWithMessage(apperr.ErrArgument, "failed to parse arguments").CausedBy(err))

		return true
	}

	if len(args) == 0 {
		return true
	}

	name := strings.ToLower(args[0])
	if name == "exit" || name == "quit" {
		return false
	}

	if err = s.dispatch(name, args[1:]); err != nil {
		s.printer.Error(err)
	}

	return true
}

func (s *Session) dispatch(name string, args []string) error {
	for _, cmd := range s.commands {
		if cmd.name != name {
			continue
		}

		if (cmd.args >= 0 && len(args) != cmd.args) || (cmd.args < 0 && len(args) > 1) {
			return errorchain.NewWithMessagef(apperr.ErrArgument, "usage: %s", cmd.usage)
		}

		return cmd.exec(s, args)
	}

	return errorchain.NewWithMessagef(errUnknownCommand, "'%s', try help", name)
}

func (s *Session) get(args []string) error {
	key, err := s.enc.Decode(args[0])
	if err != nil {
		return err
	}

	value, found := s.idx.Lookup(key)
	s.printer.Value(key, value, found)

	return nil
}

func (s *Session) set(args []string) error {
	key, err := s.enc.Decode(args[0])
	if err != nil {
		return err
	}

	previous, replaced := s.idx.Put(key, args[1])
	if replaced {
		s.printer.Message("replaced " + strconv.Quote(previous))
	} else {
		s.printer.Message("inserted")
	}

	return nil
}

func (s *Session) appendValue(args []string) error {
	key, err := s.enc.Decode(args[0])
	if err != nil {
		return err
	}

	s.printer.Value(key, s.idx.Append(key, args[1]), true)

	return nil
}

func (s *Session) del(args []string) error {
	key, err := s.enc.Decode(args[0])
	if err != nil {
		return err
	}

	value, found := s.idx.Delete(key)
	s.printer.Value(key, value, found)

	return nil
}

func (s *Session) count(args []string) error {
	var prefix []byte

	if len(args) == 1 {
		var err error

		if prefix, err = s.enc.Decode(args[0]); err != nil {
			return err
		}
	}

	s.printer.Count(prefix, s.idx.Count(prefix))

	return nil
}

func (s *Session) size([]string) error {
	s.printer.Message(strconv.Itoa(s.idx.Len()))

	return nil
}

func (s *Session) stats([]string) error {
	s.printer.Stats(s.report(), s.idx.Stats())

	return nil
}

func (s *Session) help([]string) error {
	usages := make([]string, 0, len(s.commands)+1)
	for _, cmd := range s.commands {
		usages = append(usages, cmd.usage)
	}

	usages = append(usages, "exit")

	s.printer.Message(strings.Join(usages, "\n"))

	return nil
}
