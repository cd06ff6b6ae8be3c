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
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/dadrus/rtrie/internal/apperr"
	"github.com/dadrus/rtrie/internal/index"
	"github.com/dadrus/rtrie/internal/source"
	"github.com/dadrus/rtrie/internal/x/errorchain"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatText, FormatJSON:
		return Format(value), nil
	default:
		return "", errorchain.NewWithMessagef(apperr.ErrArgument,
			"unsupported output format '%s', use text or json", value)
	}
}

// Printer renders query results either as tab separated text or as JSON lines.
type Printer struct {
	w      io.Writer
	format Format
	enc    source.KeyEncoding
}

func NewPrinter(w io.Writer, format Format, enc source.KeyEncoding) *Printer {
	return &Printer{w: w, format: format, enc: enc}
}

type countResult struct {
	Prefix string `json:"prefix"`
	Count  int    `json:"count"`
}

type valueResult struct {
	Key   string  `json:"key"`
	Found bool    `json:"found"`
	Value *string `json:"value,omitempty"`
}

type statsResult struct {
	Report index.BuildReport `json:"report"`
	Stats  index.Stats       `json:"stats"`
}

type messageResult struct {
	Message string `json:"message"`
}

func (p *Printer) Count(prefix []byte, count int) {
	if p.format == FormatJSON {
		p.json(countResult{Prefix: p.enc.Encode(prefix), Count: count})

		return
	}

	fmt.Fprintf(p.w, "%s\t%d\n", p.enc.Encode(prefix), count)
}

func (p *Printer) Value(key []byte, value string, found bool) {
	if p.format == FormatJSON {
		res := valueResult{Key: p.enc.Encode(key), Found: found}
		if found {
			res.Value = &value
		}

		p.json(res)

		return
	}

	if !found {
		fmt.Fprintf(p.w, "%s\tnot found\n", p.enc.Encode(key))

		return
	}

	fmt.Fprintf(p.w, "%s\t%s\n", p.enc.Encode(key), value)
}

func (p *Printer) Stats(report index.BuildReport, stats index.Stats) {
	if p.format == FormatJSON {
		p.json(statsResult{Report: report, Stats: stats})

		return
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0) //nolint:mnd

	fmt.Fprintf(tw, "source:\t%s\n", report.Source)
	fmt.Fprintf(tw, "records read:\t%d\n", report.Read)
	fmt.Fprintf(tw, "inserted:\t%d\n", report.Inserted)
	fmt.Fprintf(tw, "duplicates:\t%d\n", report.Duplicates)
	fmt.Fprintf(tw, "filtered:\t%d\n", report.Filtered)
	fmt.Fprintf(tw, "skipped:\t%d\n", report.Skipped)
	fmt.Fprintf(tw, "build time:\t%s\n", report.Duration)
	fmt.Fprintf(tw, "keys:\t%d\n", stats.Keys)
	fmt.Fprintf(tw, "nodes:\t%d\n", stats.Nodes)
	fmt.Fprintf(tw, "max depth:\t%d\n", stats.MaxDepth)
	fmt.Fprintf(tw, "segment bytes:\t%d\n", stats.SegmentBytes)
	fmt.Fprintf(tw, "footprint:\t%s\n", stats.Footprint)

	_ = tw.Flush()
}

func (p *Printer) Message(msg string) {
	if p.format == FormatJSON {
		p.json(messageResult{Message: msg})

		return
	}

	fmt.Fprintln(p.w, msg)
}

// Error renders err. Error chains are rendered with their code and causes in JSON format.
func (p *Printer) Error(err error) {
	if p.format != FormatJSON {
		fmt.Fprintf(p.w, "error: %v\n", err)

		return
	}

	var ec *errorchain.ErrorChain
	if errors.As(err, &ec) {
		p.json(ec)

		return
	}

	p.json(messageResult{Message: err.Error()})
}

func (p *Printer) json(v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(p.w, "error: %v\n", err)

		return
	}

	fmt.Fprintf(p.w, "%s\n", raw)
}
