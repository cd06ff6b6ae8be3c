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

package redis

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/ccoveille/go-safecast"
	"github.com/redis/rueidis"
	"github.com/rs/zerolog"

	"github.com/dadrus/rtrie/internal/apperr"
	"github.com/dadrus/rtrie/internal/source"
	"github.com/dadrus/rtrie/internal/x/errorchain"
)

const (
	defaultMatch     = "*"
	defaultScanCount = 100
	defaultTimeout   = 5 * time.Second
)

// nolint: gochecknoinits
func init() {
	source.Register("redis", source.FactoryFunc(func(conf map[string]any, logger zerolog.Logger) (source.Source, error) {
		return newSource(conf, logger)
	}))
}

type credentials struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password" validate:"required"`
}

type Config struct {
	Address     string        `mapstructure:"address"      validate:"required"`
	DB          int           `mapstructure:"db"           validate:"gte=0"`
	Credentials *credentials  `mapstructure:"credentials"`
	Match       string        `mapstructure:"match"`
	Count       int           `mapstructure:"count"        validate:"gt=0"`
	TrimPrefix  string        `mapstructure:"trim_prefix"`
	WithValues  bool          `mapstructure:"with_values"`
	Timeout     time.Duration `mapstructure:"timeout"      validate:"gt=0"`
}

// redisSource indexes the keys of a Redis database found by SCAN. A key may be
// reported more than once if the keyspace changes during the scan. If values are
// requested, only string keys are reported.
type redisSource struct {
	conf Config
	c    rueidis.Client
	l    zerolog.Logger
}

func newSource(rawConf map[string]any, logger zerolog.Logger) (*redisSource, error) {
	conf := Config{Match: defaultMatch, Count: defaultScanCount, Timeout: defaultTimeout}

	if err := source.DecodeConfig("redis", rawConf, &conf); err != nil {
		return nil, err
	}

	opts := rueidis.ClientOption{
		ClientName:       "rtrie",
		InitAddress:      []string{conf.Address},
		SelectDB:         conf.DB,
		DisableCache:     true,
		ConnWriteTimeout: conf.Timeout,
		Dialer:           net.Dialer{Timeout: conf.Timeout},
	}

	if conf.Credentials != nil {
		opts.Username = conf.Credentials.Username
		opts.Password = conf.Credentials.Password
	}

	client, err := rueidis.NewClient(opts)
	if err != nil {
		return nil, errorchain.NewWithMessagef(apperr.ErrCommunication,
			"failed connecting to redis at %s", conf.Address).CausedBy(err)
	}

	return &redisSource{conf: conf, c: client, l: logger}, nil
}

func (s *redisSource) ID() string { return "redis:" + s.conf.Address }

func (s *redisSource) Close() error {
	s.c.Close()

	return nil
}

func (s *redisSource) Records(ctx context.Context, yield func(source.Record) error) error {
	var cursor uint64

	count := safecast.MustConvert[int64](s.conf.Count)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry, err := s.scan(ctx, cursor, count)
		if err != nil {
			return errorchain.NewWithMessage(apperr.ErrCommunication, "failed scanning keys").CausedBy(err)
		}

		s.l.Debug().Uint64("_cursor", cursor).Int("_keys", len(entry.Elements)).Msg("Scanned keys")

		if err = s.emit(ctx, entry.Elements, yield); err != nil {
			return err
		}

		cursor = entry.Cursor
		if cursor == 0 {
			return nil
		}
	}
}

func (s *redisSource) scan(ctx context.Context, cursor uint64, count int64) (rueidis.ScanEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.conf.Timeout)
	defer cancel()

	return s.c.Do(ctx, s.c.B().Scan().Cursor(cursor).Match(s.conf.Match).Count(count).Build()).AsScanEntry()
}

func (s *redisSource) emit(ctx context.Context, keys []string, yield func(source.Record) error) error {
	if len(keys) == 0 {
		return nil
	}

	if !s.conf.WithValues {
		for _, key := range keys {
			if err := yield(source.Record{Key: s.recordKey(key)}); err != nil {
				return err
			}
		}

		return nil
	}

	cmds := make(rueidis.Commands, 0, len(keys))
	for _, key := range keys {
		cmds = append(cmds, s.c.B().Get().Key(key).Build())
	}

	ctx, cancel := context.WithTimeout(ctx, s.conf.Timeout)
	defer cancel()

	for idx, resp := range s.c.DoMulti(ctx, cmds...) {
		value, err := resp.ToString()
		if err != nil {
			if rueidis.IsRedisNil(err) {
				// removed after the scan
				continue
			}

			if _, ok := rueidis.IsRedisErr(err); ok {
				s.l.Debug().Str("_key", keys[idx]).Err(err).Msg("Skipping key")

				continue
			}

			return errorchain.NewWithMessagef(apperr.ErrCommunication,
				"failed retrieving value of '%s'", keys[idx]).CausedBy(err)
		}

		if err = yield(source.Record{Key: s.recordKey(keys[idx]), Value: value}); err != nil {
			return err
		}
	}

	return nil
}

func (s *redisSource) recordKey(key string) []byte {
	return []byte(strings.TrimPrefix(key, s.conf.TrimPrefix))
}
