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
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/rtrie/internal/apperr"
	"github.com/dadrus/rtrie/internal/source"
	"github.com/dadrus/rtrie/internal/x/testsupport"
)

func collect(ctx context.Context, src source.Source) ([]source.Record, error) {
	var records []source.Record

	err := src.Records(ctx, func(rec source.Record) error {
		records = append(records, source.Record{Key: bytes.Clone(rec.Key), Value: rec.Value})

		return nil
	})

	return records, err
}

func TestNewSource(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc     string
		conf   map[string]any
		assert func(t *testing.T, err error, src *fileSource)
	}{
		{
			uc:   "without path",
			conf: map[string]any{},
			assert: func(t *testing.T, err error, _ *fileSource) {
				t.Helper()

				require.ErrorIs(t, err, apperr.ErrConfiguration)
				require.ErrorContains(t, err, "'path' is a required field")
			},
		},
		{
			uc:   "unsupported format",
			conf: map[string]any{"path": "foo.txt", "format": "csv"},
			assert: func(t *testing.T, err error, _ *fileSource) {
				t.Helper()

				require.ErrorIs(t, err, apperr.ErrConfiguration)
				require.ErrorContains(t, err, "'format' must be one of [lines yaml jsonl]")
			},
		},
		{
			uc:   "jsonl without key path",
			conf: map[string]any{"path": "foo.jsonl", "format": "jsonl"},
			assert: func(t *testing.T, err error, _ *fileSource) {
				t.Helper()

				require.ErrorIs(t, err, apperr.ErrConfiguration)
				require.ErrorContains(t, err, "'key_path'")
			},
		},
		{
			uc:   "unknown property",
			conf: map[string]any{"path": "foo.txt", "foo": "bar"},
			assert: func(t *testing.T, err error, _ *fileSource) {
				t.Helper()

				require.ErrorIs(t, err, apperr.ErrConfiguration)
				require.ErrorContains(t, err, "failed decoding file source config")
			},
		},
		{
			uc:   "empty separator",
			conf: map[string]any{"path": "foo.txt", "separator": ""},
			assert: func(t *testing.T, err error, _ *fileSource) {
				t.Helper()

				require.ErrorIs(t, err, apperr.ErrConfiguration)
				require.ErrorContains(t, err, "separator")
			},
		},
		{
			uc:   "defaults",
			conf: map[string]any{"path": "foo.txt"},
			assert: func(t *testing.T, err error, src *fileSource) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "file:foo.txt", src.ID())
				assert.Equal(t, FormatLines, src.conf.Format)
				assert.Equal(t, source.KeyEncodingRaw, src.conf.KeyEncoding)
				assert.Equal(t, "\t", src.conf.Separator)
				assert.Equal(t, defaultMaxLineSize, src.conf.MaxLineSize)
			},
		},
		{
			uc: "fully configured",
			conf: map[string]any{
				"path":          "foo.jsonl",
				"format":        "jsonl",
				"key_encoding":  "hex",
				"key_path":      "id",
				"value_path":    "data",
				"max_line_size": "1MB",
			},
			assert: func(t *testing.T, err error, src *fileSource) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, FormatJSONL, src.conf.Format)
				assert.Equal(t, source.KeyEncodingHex, src.conf.KeyEncoding)
				assert.Equal(t, "id", src.conf.KeyPath)
				assert.Equal(t, "data", src.conf.ValuePath)
				assert.EqualValues(t, 1024*1024, src.conf.MaxLineSize)
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// WHEN
			src, err := newSource(tc.conf, zerolog.Nop())

			// THEN
			tc.assert(t, err, src)
		})
	}
}

func TestFileSourceRecords(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc       string
		conf     map[string]any
		contents string
		assert   func(t *testing.T, err error, records []source.Record)
	}{
		{
			uc:       "lines with raw keys",
			contents: "foo\tbar\nfoobar\tbaz\r\n\nnovalue\nsplit\ta\tb\n",
			assert: func(t *testing.T, err error, records []source.Record) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, []source.Record{
					{Key: []byte("foo"), Value: "bar"},
					{Key: []byte("foobar"), Value: "baz"},
					{Key: []byte("novalue"), Value: ""},
					{Key: []byte("split"), Value: "a\tb"},
				}, records)
			},
		},
		{
			uc:       "lines with hex keys and custom separator",
			conf:     map[string]any{"key_encoding": "hex", "separator": " => "},
			contents: "00ff => zero\n6162 => ab\n",
			assert: func(t *testing.T, err error, records []source.Record) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, []source.Record{
					{Key: []byte{0x00, 0xff}, Value: "zero"},
					{Key: []byte("ab"), Value: "ab"},
				}, records)
			},
		},
		{
			uc:       "lines with malformed key",
			conf:     map[string]any{"key_encoding": "hex"},
			contents: "00\tok\nzz\tnot ok\n",
			assert: func(t *testing.T, err error, records []source.Record) {
				t.Helper()

				require.ErrorIs(t, err, ErrMalformedRecord)
				require.ErrorIs(t, err, apperr.ErrArgument)
				require.ErrorContains(t, err, ":2")
				assert.Len(t, records, 1)
			},
		},
		{
			uc:       "line exceeding max line size",
			conf:     map[string]any{"max_line_size": "1KB"},
			contents: "foo\tbar\n" + strings.Repeat("x", 2048) + "\n",
			assert: func(t *testing.T, err error, records []source.Record) {
				t.Helper()

				require.ErrorIs(t, err, ErrMalformedRecord)
				require.ErrorContains(t, err, "exceeds max line size")
				assert.Len(t, records, 1)
			},
		},
		{
			uc:       "yaml mapping",
			conf:     map[string]any{"format": "yaml"},
			contents: "b: 1\na: two\nc:\n  d: e\nn: ~\n",
			assert: func(t *testing.T, err error, records []source.Record) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, []source.Record{
					{Key: []byte("b"), Value: "1"},
					{Key: []byte("a"), Value: "two"},
					{Key: []byte("c"), Value: "d: e"},
					{Key: []byte("n"), Value: ""},
				}, records)
			},
		},
		{
			uc:       "empty yaml document",
			conf:     map[string]any{"format": "yaml"},
			contents: "",
			assert: func(t *testing.T, err error, records []source.Record) {
				t.Helper()

				require.NoError(t, err)
				assert.Empty(t, records)
			},
		},
		{
			uc:       "yaml sequence",
			conf:     map[string]any{"format": "yaml"},
			contents: "- a\n- b\n",
			assert: func(t *testing.T, err error, _ []source.Record) {
				t.Helper()

				require.ErrorIs(t, err, ErrMalformedRecord)
				require.ErrorContains(t, err, "does not contain a mapping")
			},
		},
		{
			uc:       "invalid yaml",
			conf:     map[string]any{"format": "yaml"},
			contents: "foo: [bar\n",
			assert: func(t *testing.T, err error, _ []source.Record) {
				t.Helper()

				require.ErrorIs(t, err, ErrMalformedRecord)
				require.ErrorContains(t, err, "not a valid yaml document")
			},
		},
		{
			uc:   "jsonl with value path",
			conf: map[string]any{"format": "jsonl", "key_path": "k", "value_path": "v"},
			contents: `{"k":"foo","v":{"x":1}}` + "\n" +
				`{"k":"bar","v":"plain"}` + "\n" +
				`{"k":"baz"}` + "\n",
			assert: func(t *testing.T, err error, records []source.Record) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, []source.Record{
					{Key: []byte("foo"), Value: `{"x":1}`},
					{Key: []byte("bar"), Value: "plain"},
					{Key: []byte("baz"), Value: ""},
				}, records)
			},
		},
		{
			uc:       "jsonl without value path",
			conf:     map[string]any{"format": "jsonl", "key_path": "meta.id"},
			contents: `{"meta":{"id":"foo"},"n":1}` + "\n",
			assert: func(t *testing.T, err error, records []source.Record) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, []source.Record{
					{Key: []byte("foo"), Value: `{"meta":{"id":"foo"},"n":1}`},
				}, records)
			},
		},
		{
			uc:       "jsonl without key",
			conf:     map[string]any{"format": "jsonl", "key_path": "k"},
			contents: `{"k":"foo"}` + "\n" + `{"v":"bar"}` + "\n",
			assert: func(t *testing.T, err error, records []source.Record) {
				t.Helper()

				require.ErrorIs(t, err, ErrMalformedRecord)
				require.ErrorContains(t, err, ":2")
				require.ErrorContains(t, err, "no key at 'k'")
				assert.Len(t, records, 1)
			},
		},
		{
			uc:       "invalid jsonl",
			conf:     map[string]any{"format": "jsonl", "key_path": "k"},
			contents: `{"k":` + "\n",
			assert: func(t *testing.T, err error, records []source.Record) {
				t.Helper()

				require.ErrorIs(t, err, ErrMalformedRecord)
				require.ErrorContains(t, err, "invalid json")
				assert.Empty(t, records)
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// GIVEN
			conf := map[string]any{"path": testsupport.WriteFile(t, "records", tc.contents)}
			for k, v := range tc.conf {
				conf[k] = v
			}

			src, err := source.Create("file", conf, zerolog.Nop())
			require.NoError(t, err)

			defer src.Close()

			// WHEN
			records, err := collect(t.Context(), src)

			// THEN
			tc.assert(t, err, records)
		})
	}
}

func TestFileSourceRecordsStops(t *testing.T) {
	t.Parallel()

	// GIVEN
	errStop := errors.New("stop")
	path := testsupport.WriteFile(t, "records", "a\t1\nb\t2\nc\t3\n")

	src, err := newSource(map[string]any{"path": path}, zerolog.Nop())
	require.NoError(t, err)

	t.Run("on yield error", func(t *testing.T) {
		var seen int

		// WHEN
		err := src.Records(t.Context(), func(source.Record) error {
			seen++

			if seen == 2 {
				return errStop
			}

			return nil
		})

		// THEN
		require.ErrorIs(t, err, errStop)
		assert.Equal(t, 2, seen)
	})

	t.Run("on canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		// WHEN
		records, err := collect(ctx, src)

		// THEN
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, records)
	})
}

func TestFileSourceRecordsWithMissingFile(t *testing.T) {
	t.Parallel()

	// GIVEN
	src, err := newSource(map[string]any{"path": "/does/not/exist"}, zerolog.Nop())
	require.NoError(t, err)

	// WHEN
	_, err = collect(t.Context(), src)

	// THEN
	require.ErrorIs(t, err, apperr.ErrCommunication)
	require.ErrorContains(t, err, "/does/not/exist")
}
