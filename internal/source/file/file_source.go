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

package file

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/ccoveille/go-safecast"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/dadrus/rtrie/internal/apperr"
	"github.com/dadrus/rtrie/internal/source"
	"github.com/dadrus/rtrie/internal/x/errorchain"
)

var ErrMalformedRecord = errors.New("malformed record")

// nolint: gochecknoinits
func init() {
	source.Register("file", source.FactoryFunc(func(conf map[string]any, logger zerolog.Logger) (source.Source, error) {
		return newSource(conf, logger)
	}))
}

type fileSource struct {
	conf Config
	l    zerolog.Logger
}

func newSource(rawConf map[string]any, logger zerolog.Logger) (*fileSource, error) {
	conf := defaultConfig()
	if err := source.DecodeConfig("file", rawConf, &conf); err != nil {
		return nil, err
	}

	if len(conf.Separator) == 0 {
		return nil, errorchain.NewWithMessage(apperr.ErrConfiguration,
			"separator of the file source must not be empty")
	}

	return &fileSource{conf: conf, l: logger}, nil
}

func (s *fileSource) ID() string { return "file:" + s.conf.Path }

func (s *fileSource) Close() error { return nil }

func (s *fileSource) WatchedPaths() []string { return []string{s.conf.Path} }

func (s *fileSource) Records(ctx context.Context, yield func(source.Record) error) error {
	s.l.Debug().Str("_path", s.conf.Path).Str("_format", string(s.conf.Format)).Msg("Reading records")

	file, err := os.Open(s.conf.Path)
	if err != nil {
		return errorchain.NewWithMessagef(apperr.ErrCommunication, "failed opening %s", s.conf.Path).
			CausedBy(err)
	}

	defer file.Close()

	switch s.conf.Format {
	case FormatYAML:
		return s.readYAML(ctx, file, yield)
	case FormatJSONL:
		return s.readLines(ctx, file, s.parseJSONLine, yield)
	default:
		return s.readLines(ctx, file, s.parseLine, yield)
	}
}

type lineParser func(line []byte) (source.Record, error)

func (s *fileSource) readLines(
	ctx context.Context, in io.Reader, parse lineParser, yield func(source.Record) error,
) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(nil, safecast.MustConvert[int](uint64(s.conf.MaxLineSize)))

	lineNo := 0

	for scanner.Scan() {
		lineNo++

		if err := ctx.Err(); err != nil {
			return err
		}

		line := bytes.TrimRight(scanner.Bytes(), "\r")
		if len(line) == 0 {
			continue
		}

		rec, err := parse(line)
		if err != nil {
			return errorchain.NewWithMessagef(ErrMalformedRecord, "%s:%d", s.conf.Path, lineNo).CausedBy(err)
		}

		if err = yield(rec); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return errorchain.NewWithMessagef(ErrMalformedRecord,
				"%s:%d exceeds max line size of %s", s.conf.Path, lineNo+1, s.conf.MaxLineSize).CausedBy(err)
		}

		return errorchain.NewWithMessagef(apperr.ErrCommunication, "failed reading %s", s.conf.Path).
			CausedBy(err)
	}

	return nil
}

func (s *fileSource) parseLine(line []byte) (source.Record, error) {
	rawKey, value, _ := strings.Cut(string(line), s.conf.Separator)

	key, err := s.conf.KeyEncoding.Decode(rawKey)
	if err != nil {
		return source.Record{}, err
	}

	return source.Record{Key: key, Value: value}, nil
}

func (s *fileSource) parseJSONLine(line []byte) (source.Record, error) {
	if !gjson.ValidBytes(line) {
		return source.Record{}, errors.New("invalid json")
	}

	keyRes := gjson.GetBytes(line, s.conf.KeyPath)
	if !keyRes.Exists() {
		return source.Record{}, errorchain.NewWithMessagef(apperr.ErrArgument, "no key at '%s'", s.conf.KeyPath)
	}

	key, err := s.conf.KeyEncoding.Decode(keyRes.String())
	if err != nil {
		return source.Record{}, err
	}

	if len(s.conf.ValuePath) == 0 {
		return source.Record{Key: key, Value: string(line)}, nil
	}

	valRes := gjson.GetBytes(line, s.conf.ValuePath)

	switch {
	case !valRes.Exists():
		return source.Record{Key: key}, nil
	case valRes.Type == gjson.String:
		return source.Record{Key: key, Value: valRes.Str}, nil
	default:
		return source.Record{Key: key, Value: valRes.Raw}, nil
	}
}

func (s *fileSource) readYAML(ctx context.Context, in io.Reader, yield func(source.Record) error) error {
	var doc yaml.Node

	if err := yaml.NewDecoder(in).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		return errorchain.NewWithMessagef(ErrMalformedRecord, "%s is not a valid yaml document", s.conf.Path).
			CausedBy(err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) != 0 {
		root = root.Content[0]
	}

	if root.Kind != yaml.MappingNode {
		return errorchain.NewWithMessagef(ErrMalformedRecord, "%s does not contain a mapping", s.conf.Path)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		if err := ctx.Err(); err != nil {
			return err
		}

		keyNode, valNode := root.Content[i], root.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return errorchain.NewWithMessagef(ErrMalformedRecord,
				"%s:%d non scalar key", s.conf.Path, keyNode.Line)
		}

		key, err := s.conf.KeyEncoding.Decode(keyNode.Value)
		if err != nil {
			return errorchain.NewWithMessagef(ErrMalformedRecord, "%s:%d", s.conf.Path, keyNode.Line).
				CausedBy(err)
		}

		value, err := yamlValue(valNode)
		if err != nil {
			return errorchain.NewWithMessagef(ErrMalformedRecord, "%s:%d", s.conf.Path, valNode.Line).
				CausedBy(err)
		}

		if err = yield(source.Record{Key: key, Value: value}); err != nil {
			return err
		}
	}

	return nil
}

// yamlValue returns scalars as is and renders everything else back to yaml.
func yamlValue(node *yaml.Node) (string, error) {
	if node.Kind == yaml.ScalarNode {
		if node.Tag == "!!null" {
			return "", nil
		}

		return node.Value, nil
	}

	raw, err := yaml.Marshal(node)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(string(raw), "\n"), nil
}
