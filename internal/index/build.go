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

package index

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dadrus/rtrie/internal/apperr"
	"github.com/dadrus/rtrie/internal/config"
	"github.com/dadrus/rtrie/internal/keyfilter"
	"github.com/dadrus/rtrie/internal/source"
	"github.com/dadrus/rtrie/internal/x/errorchain"
	"github.com/dadrus/rtrie/internal/x/stringx"
)

// BuildReport summarizes what happened to the records delivered by a source.
type BuildReport struct {
	Source     string        `json:"source"`
	Read       int           `json:"read"`
	Inserted   int           `json:"inserted"`
	Duplicates int           `json:"duplicates"`
	Filtered   int           `json:"filtered"`
	Skipped    int           `json:"skipped"`
	Duration   time.Duration `json:"duration"`
}

type builder struct {
	idx    *Index
	conf   config.IndexConfig
	filter keyfilter.Filter
	report BuildReport
	l      zerolog.Logger
}

// Build reads all records of src into a new index. Records violating the configured
// limits are skipped or abort the build, depending on the limit policy.
func Build(
	ctx context.Context,
	src source.Source,
	conf config.IndexConfig,
	logger zerolog.Logger,
) (*Index, BuildReport, error) {
	filter, err := keyfilter.New(conf.Filter)
	if err != nil {
		return nil, BuildReport{}, err
	}

	bld := &builder{
		idx:    New(),
		conf:   conf,
		filter: filter,
		report: BuildReport{Source: src.ID()},
		l:      logger,
	}

	logger.Info().Str("_source", src.ID()).Msg("Building index")

	start := time.Now()

	err = src.Records(ctx, func(rec source.Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		return bld.add(rec)
	})

	bld.report.Duration = time.Since(start)

	if err != nil {
		return nil, bld.report, errorchain.NewWithMessagef(apperr.ErrInternal,
			"failed building index from %s", src.ID()).CausedBy(err).WithErrorContext(src)
	}

	logger.Info().
		Str("_source", src.ID()).
		Int("_inserted", bld.report.Inserted).
		Int("_duplicates", bld.report.Duplicates).
		Int("_skipped", bld.report.Skipped).
		Dur("_duration", bld.report.Duration).
		Msg("Index built")

	return bld.idx, bld.report, nil
}

func (b *builder) add(rec source.Record) error {
	b.report.Read++

	if !b.filter.Match(rec.Key) {
		b.report.Filtered++

		return nil
	}

	if maxSize := uint64(b.conf.Limits.MaxKeySize); maxSize != 0 && uint64(len(rec.Key)) > maxSize {
		return b.limitExceeded(rec.Key, "key size exceeds "+b.conf.Limits.MaxKeySize.String())
	}

	// no locking required, the index is not shared until built
	entry := b.idx.t.Entry(rec.Key)

	if occupied, ok := entry.Occupied(); ok {
		b.report.Duplicates++

		if b.conf.Duplicates == config.DuplicatesKeepLast {
			occupied.Insert(rec.Value)
		}

		return nil
	}

	if b.conf.Limits.MaxEntries != 0 && b.report.Inserted >= b.conf.Limits.MaxEntries {
		return b.limitExceeded(rec.Key, "max entries reached")
	}

	vacant, _ := entry.Vacant()
	vacant.Insert(rec.Value)

	b.report.Inserted++

	return nil
}

func (b *builder) limitExceeded(key []byte, reason string) error {
	if b.conf.OnLimit == config.LimitPolicyFail {
		return errorchain.NewWithMessagef(apperr.ErrLimitExceeded,
			"%s for key %s", reason, stringx.Printable(truncate(key)))
	}

	b.report.Skipped++

	b.l.Warn().
		Str("_key", stringx.Printable(truncate(key))).
		Str("_reason", reason).
		Msg("Record skipped")

	return nil
}

func truncate(key []byte) []byte {
	const maxLoggedKeyLen = 64

	if len(key) > maxLoggedKeyLen {
		return key[:maxLoggedKeyLen]
	}

	return key
}
