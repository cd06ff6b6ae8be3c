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

package config

import (
	"slices"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/inhies/go-bytesize"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/rtrie/internal/apperr"
	"github.com/dadrus/rtrie/internal/validation"
	"github.com/dadrus/rtrie/internal/x/testsupport"
)

type sourceTypeValidator []string

func (v sourceTypeValidator) Tag() string          { return "source_type" }
func (v sourceTypeValidator) AlwaysValidate() bool { return false }
func (v sourceTypeValidator) Validate(fl validator.FieldLevel) bool {
	return slices.Contains(v, fl.Field().String())
}
func (v sourceTypeValidator) MessageTemplate() string { return "{0} is not supported" }
func (v sourceTypeValidator) Translate(ut ut.Translator, fe validator.FieldError) string {
	msg, _ := ut.T(fe.Tag(), fe.Field())

	return msg
}

func newTestValidator(t *testing.T) validation.Validator {
	t.Helper()

	types := sourceTypeValidator{"file", "redis"}

	v, err := validation.NewValidator(
		validation.WithTagValidator(types),
		validation.WithErrorTranslator(types),
	)
	require.NoError(t, err)

	return v
}

func TestNewConfiguration(t *testing.T) {
	for _, tc := range []struct {
		uc     string
		config string
		env    map[string]string
		assert func(t *testing.T, err error, conf *Configuration)
	}{
		{
			uc: "defaults only",
			assert: func(t *testing.T, err error, conf *Configuration) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, zerolog.ErrorLevel, conf.Log.Level)
				assert.Equal(t, LogTextFormat, conf.Log.Format)
				assert.Equal(t, "file", conf.Index.Source.Type)
				assert.Empty(t, conf.Index.Source.Config)
				assert.Equal(t, 4*bytesize.KB, conf.Index.Limits.MaxKeySize)
				assert.Zero(t, conf.Index.Limits.MaxEntries)
				assert.Equal(t, LimitPolicySkip, conf.Index.OnLimit)
				assert.Equal(t, DuplicatesKeepLast, conf.Index.Duplicates)
			},
		},
		{
			uc: "full configuration",
			config: `
log:
  level: debug
  format: gelf
index:
  source:
    type: redis
    config:
      address: ${REDIS_ADDRESS}
      match: "user:*"
  filter:
    type: glob
    pattern: "user:*"
  limits:
    max_key_size: 1KB
    max_entries: 1000
  on_limit: fail
  duplicates: keep_first
`,
			env: map[string]string{"REDIS_ADDRESS": "localhost:6379"},
			assert: func(t *testing.T, err error, conf *Configuration) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, zerolog.DebugLevel, conf.Log.Level)
				assert.Equal(t, LogGelfFormat, conf.Log.Format)
				assert.Equal(t, "redis", conf.Index.Source.Type)
				assert.Equal(t, map[string]any{"address": "localhost:6379", "match": "user:*"},
					conf.Index.Source.Config)
				assert.Equal(t, FilterConfig{Type: "glob", Pattern: "user:*"}, conf.Index.Filter)
				assert.Equal(t, bytesize.KB, conf.Index.Limits.MaxKeySize)
				assert.Equal(t, 1000, conf.Index.Limits.MaxEntries)
				assert.Equal(t, LimitPolicyFail, conf.Index.OnLimit)
				assert.Equal(t, DuplicatesKeepFirst, conf.Index.Duplicates)
			},
		},
		{
			uc: "environment overrides file",
			config: `
index:
  source:
    config:
      path: /tmp/keys.txt
  limits:
    max_entries: 10
`,
			env: map[string]string{
				"CONFTEST_INDEX_LIMITS_MAX__ENTRIES": "20",
				"CONFTEST_INDEX_LIMITS_MAX__KEY__SIZE": "2KB",
				"CONFTEST_LOG_LEVEL":                   "warn",
			},
			assert: func(t *testing.T, err error, conf *Configuration) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, zerolog.WarnLevel, conf.Log.Level)
				assert.Equal(t, "file", conf.Index.Source.Type)
				assert.Equal(t, map[string]any{"path": "/tmp/keys.txt"}, conf.Index.Source.Config)
				assert.Equal(t, 20, conf.Index.Limits.MaxEntries)
				assert.Equal(t, 2*bytesize.KB, conf.Index.Limits.MaxKeySize)
			},
		},
		{
			uc: "unsupported source type",
			config: `
index:
  source:
    type: ftp
`,
			assert: func(t *testing.T, err error, _ *Configuration) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, apperr.ErrConfiguration)
				assert.Contains(t, err.Error(), "'type' is not supported")
			},
		},
		{
			uc: "invalid policies",
			config: `
index:
  on_limit: ignore
  duplicates: keep_all
  filter:
    type: glob
`,
			assert: func(t *testing.T, err error, _ *Configuration) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, apperr.ErrConfiguration)
				assert.Contains(t, err.Error(), "'on_limit' must be one of [skip fail]")
				assert.Contains(t, err.Error(), "'duplicates' must be one of [keep_first keep_last]")
				assert.Contains(t, err.Error(), "'pattern' is a required field")
			},
		},
		{
			uc: "malformed byte size",
			config: `
index:
  limits:
    max_key_size: lots
`,
			assert: func(t *testing.T, err error, _ *Configuration) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, apperr.ErrConfiguration)
				assert.Contains(t, err.Error(), "failed to load configuration")
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// GIVEN
			for key, val := range tc.env {
				t.Setenv(key, val)
			}

			var configFile string
			if len(tc.config) != 0 {
				configFile = testsupport.WriteFile(t, "config.yaml", tc.config)
			}

			// WHEN
			conf, err := NewConfiguration("CONFTEST_", ConfigurationPath(configFile), newTestValidator(t))

			// THEN
			tc.assert(t, err, conf)
		})
	}
}

func TestStringToByteSizeHookFunc(t *testing.T) {
	t.Parallel()

	type testStruct struct {
		Size bytesize.ByteSize `mapstructure:"size"`
		Name string            `mapstructure:"name"`
	}

	for _, tc := range []struct {
		uc       string
		input    map[string]any
		expected testStruct
		err      bool
	}{
		{uc: "kilobytes", input: map[string]any{"size": "4KB"}, expected: testStruct{Size: 4 * bytesize.KB}},
		{uc: "megabytes with space", input: map[string]any{"size": "1 MB"}, expected: testStruct{Size: bytesize.MB}},
		{uc: "plain number", input: map[string]any{"size": 512}, expected: testStruct{Size: 512}},
		{uc: "other string fields untouched", input: map[string]any{"name": "4KB"}, expected: testStruct{Name: "4KB"}},
		{uc: "malformed", input: map[string]any{"size": "four"}, err: true},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// GIVEN
			var result testStruct

			dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				DecodeHook: StringToByteSizeHookFunc(),
				Result:     &result,
			})
			require.NoError(t, err)

			// WHEN
			err = dec.Decode(tc.input)

			// THEN
			if tc.err {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, result)
			}
		})
	}
}

func TestLogDecodeHooks(t *testing.T) {
	t.Parallel()

	type testStruct struct {
		Level  zerolog.Level `mapstructure:"level"`
		Format LogFormat     `mapstructure:"format"`
	}

	for _, tc := range []struct {
		level  string
		format string
		expLvl zerolog.Level
		expFmt LogFormat
	}{
		{level: "trace", format: "gelf", expLvl: zerolog.TraceLevel, expFmt: LogGelfFormat},
		{level: "debug", format: "text", expLvl: zerolog.DebugLevel, expFmt: LogTextFormat},
		{level: "warn", format: "foo", expLvl: zerolog.WarnLevel, expFmt: LogTextFormat},
		{level: "error", expLvl: zerolog.ErrorLevel},
		{level: "disabled", expLvl: zerolog.Disabled},
		{level: "unknown", expLvl: zerolog.InfoLevel},
	} {
		t.Run(tc.level, func(t *testing.T) {
			var result testStruct

			dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				DecodeHook: mapstructure.ComposeDecodeHookFunc(logLevelDecodeHookFunc, logFormatDecodeHookFunc),
				Result:     &result,
			})
			require.NoError(t, err)

			require.NoError(t, dec.Decode(map[string]any{"level": tc.level, "format": tc.format}))

			assert.Equal(t, tc.expLvl, result.Level)
			assert.Equal(t, tc.expFmt, result.Format)
		})
	}
}
