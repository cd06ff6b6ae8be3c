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

package blob

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/ccoveille/go-safecast"
	"github.com/inhies/go-bytesize"
	"github.com/rs/zerolog"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/dadrus/rtrie/internal/apperr"
	"github.com/dadrus/rtrie/internal/source"
	"github.com/dadrus/rtrie/internal/x/errorchain"
)

const defaultMaxValueSize = 1 * bytesize.MB

// nolint: gochecknoinits
func init() {
	source.Register("blob", source.FactoryFunc(func(conf map[string]any, logger zerolog.Logger) (source.Source, error) {
		return newSource(conf, logger)
	}))
}

type bucketOpener func(ctx context.Context, url string) (*blob.Bucket, error)

type Config struct {
	URL          string            `mapstructure:"url"            validate:"required"`
	Prefix       string            `mapstructure:"prefix"`
	TrimPrefix   bool              `mapstructure:"trim_prefix"`
	WithValues   bool              `mapstructure:"with_values"`
	MaxValueSize bytesize.ByteSize `mapstructure:"max_value_size" validate:"gt=0"`
}

// blobSource uses the object keys of a bucket as keys and, if requested, the
// object contents as values.
type blobSource struct {
	conf Config
	open bucketOpener
	l    zerolog.Logger
}

func newSource(rawConf map[string]any, logger zerolog.Logger) (*blobSource, error) {
	conf := Config{MaxValueSize: defaultMaxValueSize}

	if err := source.DecodeConfig("blob", rawConf, &conf); err != nil {
		return nil, err
	}

	return &blobSource{conf: conf, open: blob.OpenBucket, l: logger}, nil
}

func (s *blobSource) ID() string {
	return "blob:" + s.conf.URL + "/" + s.conf.Prefix
}

func (s *blobSource) Close() error { return nil }

func (s *blobSource) Records(ctx context.Context, yield func(source.Record) error) error {
	bucket, err := s.open(ctx, s.conf.URL)
	if err != nil {
		return errorchain.NewWithMessage(apperr.ErrCommunication, "failed to open bucket").CausedBy(err)
	}

	defer bucket.Close()

	it := bucket.List(&blob.ListOptions{Prefix: s.conf.Prefix})

	for {
		obj, err := it.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return errorchain.NewWithMessage(apperr.ErrCommunication, "failed iterating blobs").CausedBy(err)
		}

		if obj.IsDir {
			continue
		}

		rec := source.Record{Key: []byte(obj.Key)}
		if s.conf.TrimPrefix {
			rec.Key = []byte(strings.TrimPrefix(obj.Key, s.conf.Prefix))
		}

		if s.conf.WithValues {
			if rec.Value, err = s.readValue(ctx, bucket, obj); err != nil {
				return err
			}
		}

		if err = yield(rec); err != nil {
			return err
		}
	}
}

func (s *blobSource) readValue(ctx context.Context, bucket *blob.Bucket, obj *blob.ListObject) (string, error) {
	limit := safecast.MustConvert[int64](uint64(s.conf.MaxValueSize))

	if obj.Size > limit {
		return "", errorchain.NewWithMessagef(apperr.ErrLimitExceeded,
			"blob '%s' is larger than %s", obj.Key, s.conf.MaxValueSize)
	}

	reader, err := bucket.NewReader(ctx, obj.Key, nil)
	if err != nil {
		return "", errorchain.NewWithMessagef(apperr.ErrCommunication,
			"failed reading blob '%s'", obj.Key).CausedBy(err)
	}

	defer reader.Close()

	contents, err := io.ReadAll(io.LimitReader(reader, limit+1))
	if err != nil {
		return "", errorchain.NewWithMessagef(apperr.ErrCommunication,
			"failed reading blob '%s'", obj.Key).CausedBy(err)
	}

	if int64(len(contents)) > limit {
		return "", errorchain.NewWithMessagef(apperr.ErrLimitExceeded,
			"blob '%s' is larger than %s", obj.Key, s.conf.MaxValueSize)
	}

	s.l.Debug().Str("_blob", obj.Key).Int("_size", len(contents)).Msg("Blob read")

	return string(contents), nil
}
