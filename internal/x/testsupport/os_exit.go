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
package testsupport

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/undefinedlabs/go-mpatch"
)

// ExitRecorder captures os.Exit calls instead of terminating the test binary.
type ExitRecorder struct {
	Called bool
	// code of the first call. Execution continues after a recorded exit, so
	// later calls are ignored.
	Code int
}

// RecordOSExit replaces os.Exit with a recorder until the test finishes.
func RecordOSExit(t *testing.T) *ExitRecorder {
	t.Helper()

	rec := &ExitRecorder{}

	patch, err := mpatch.PatchMethod(os.Exit, func(code int) {
		if !rec.Called {
			rec.Called = true
			rec.Code = code
		}
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = patch.Unpatch() })

	return rec
}
