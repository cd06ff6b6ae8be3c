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

package output

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/rtrie/internal/apperr"
	"github.com/dadrus/rtrie/internal/index"
	"github.com/dadrus/rtrie/internal/source"
	"github.com/dadrus/rtrie/internal/x/errorchain"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	format, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	format, err = ParseFormat("text")
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	_, err = ParseFormat("xml")
	require.ErrorIs(t, err, apperr.ErrArgument)
}

func TestPrinter(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc     string
		format Format
		enc    source.KeyEncoding
		print  func(p *Printer)
		expect string
	}{
		{
			uc:     "count as text",
			format: FormatText,
			enc:    source.KeyEncodingRaw,
			print:  func(p *Printer) { p.Count([]byte("rom"), 3) },
			expect: "rom\t3\n",
		},
		{
			uc:     "count of empty prefix as json",
			format: FormatJSON,
			enc:    source.KeyEncodingRaw,
			print:  func(p *Printer) { p.Count(nil, 7) },
			expect: `{"prefix":"","count":7}` + "\n",
		},
		{
			uc:     "found value as text with hex key",
			format: FormatText,
			enc:    source.KeyEncodingHex,
			print:  func(p *Printer) { p.Value([]byte{0x00, 0x01}, "foo", true) },
			expect: "0001\tfoo\n",
		},
		{
			uc:     "missing value as text",
			format: FormatText,
			enc:    source.KeyEncodingRaw,
			print:  func(p *Printer) { p.Value([]byte("bar"), "", false) },
			expect: "bar\tnot found\n",
		},
		{
			uc:     "found value as json",
			format: FormatJSON,
			enc:    source.KeyEncodingRaw,
			print:  func(p *Printer) { p.Value([]byte("bar"), "", true) },
			expect: `{"key":"bar","found":true,"value":""}` + "\n",
		},
		{
			uc:     "missing value as json",
			format: FormatJSON,
			enc:    source.KeyEncodingBase64,
			print:  func(p *Printer) { p.Value([]byte{0xff}, "", false) },
			expect: `{"key":"/w==","found":false}` + "\n",
		},
		{
			uc:     "message as json",
			format: FormatJSON,
			print:  func(p *Printer) { p.Message("ok") },
			expect: `{"message":"ok"}` + "\n",
		},
		{
			uc:     "plain error as json",
			format: FormatJSON,
			print:  func(p *Printer) { p.Error(errors.New("boom")) },
			expect: `{"message":"boom"}` + "\n",
		},
		{
			uc:     "error chain as text",
			format: FormatText,
			print: func(p *Printer) {
				p.Error(errorchain.NewWithMessage(apperr.ErrArgument, "bad key"))
			},
			expect: "error: argument error: bad key\n",
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// GIVEN
			buf := &bytes.Buffer{}
			printer := NewPrinter(buf, tc.format, tc.enc)

			// WHEN
			tc.print(printer)

			// THEN
			assert.Equal(t, tc.expect, buf.String())
		})
	}
}

func TestPrinterErrorChainAsJSON(t *testing.T) {
	t.Parallel()

	// GIVEN
	buf := &bytes.Buffer{}
	printer := NewPrinter(buf, FormatJSON, source.KeyEncodingRaw)

	// WHEN
	printer.Error(errorchain.NewWithMessage(apperr.ErrArgument, "bad key").CausedBy(errors.New("odd length")))

	// THEN
	assert.JSONEq(t, `{"code":"argumentError","message":"bad key","causes":["odd length"]}`, buf.String())
}

func TestPrinterStats(t *testing.T) {
	t.Parallel()

	report := index.BuildReport{Source: "file:data.txt", Read: 4, Inserted: 3, Duplicates: 1, Duration: time.Second}
	stats := index.Stats{Keys: 3, Nodes: 5, MaxDepth: 2, SegmentBytes: 9, Footprint: 2048}

	t.Run("as text", func(t *testing.T) {
		buf := &bytes.Buffer{}

		// WHEN
		NewPrinter(buf, FormatText, source.KeyEncodingRaw).Stats(report, stats)

		// THEN
		out := buf.String()
		assert.Contains(t, out, "source:")
		assert.Contains(t, out, "file:data.txt")
		assert.Contains(t, out, "records read:   4")
		assert.Contains(t, out, "build time:     1s")
		assert.Contains(t, out, "footprint:      2.00KB")
	})

	t.Run("as json", func(t *testing.T) {
		buf := &bytes.Buffer{}

		// WHEN
		NewPrinter(buf, FormatJSON, source.KeyEncodingRaw).Stats(report, stats)

		// THEN
		assert.JSONEq(t, `{
			"report": {"source":"file:data.txt","read":4,"inserted":3,"duplicates":1,"filtered":0,"skipped":0,"duration":1000000000},
			"stats": {"keys":3,"nodes":5,"max_depth":2,"segment_bytes":9,"footprint":2048}
		}`, buf.String())
	})
}
