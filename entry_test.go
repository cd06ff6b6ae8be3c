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

package rtrie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryOrInsert(t *testing.T) {
	t.Parallel()

	// GIVEN
	trie := New[int]()

	// WHEN
	ref := trie.Entry([]byte("foo")).OrInsert(1)

	// THEN
	require.NotNil(t, ref)
	assert.Equal(t, 1, *ref)

	// WHEN
	ref = trie.Entry([]byte("foo")).OrInsert(2)

	// THEN
	assert.Equal(t, 1, *ref)

	*ref++

	value, ok := trie.Get([]byte("foo"))
	require.True(t, ok)
	assert.Equal(t, 2, value)
	assert.Equal(t, 1, trie.Len())
}

func TestEntryOrInsertWith(t *testing.T) {
	t.Parallel()

	trie := New[string]()
	calls := 0
	create := func() string {
		calls++

		return "created"
	}

	ref := trie.Entry([]byte("foo")).OrInsertWith(create)
	assert.Equal(t, "created", *ref)
	assert.Equal(t, 1, calls)

	ref = trie.Entry([]byte("foo")).OrInsertWith(create)
	assert.Equal(t, "created", *ref)
	assert.Equal(t, 1, calls)
}

func TestEntryKind(t *testing.T) {
	t.Parallel()

	trie := New[int]()
	trie.Insert([]byte("abc"), 1)

	for _, tc := range []struct {
		uc       string
		key      string
		occupied bool
	}{
		{uc: "existing key", key: "abc", occupied: true},
		{uc: "key ending within a segment", key: "ab"},
		{uc: "key extending an existing one", key: "abcd"},
		{uc: "diverging key", key: "abd"},
		{uc: "empty key", key: ""},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// WHEN
			entry := trie.Entry([]byte(tc.key))

			// THEN
			occupied, isOccupied := entry.Occupied()
			vacant, isVacant := entry.Vacant()

			assert.Equal(t, tc.occupied, isOccupied)
			assert.Equal(t, !tc.occupied, isVacant)
			assert.Equal(t, []byte(tc.key), entry.Key())

			if tc.occupied {
				assert.NotNil(t, occupied)
				assert.Nil(t, vacant)
			} else {
				assert.Nil(t, occupied)
				assert.NotNil(t, vacant)
			}
		})
	}
}

func TestVacantEntryInsert(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc       string
		existing []string
		key      string
	}{
		{uc: "into empty trie", key: "foo"},
		{uc: "new child of the root", existing: []string{"foo"}, key: "bar"},
		{uc: "at existing valueless node", existing: []string{"abc", "abd"}, key: "ab"},
		{uc: "splitting a segment at key end", existing: []string{"abc"}, key: "a"},
		{uc: "splitting a segment with remaining key", existing: []string{"abc"}, key: "axy"},
		{uc: "below an existing leaf", existing: []string{"abc"}, key: "abcdef"},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// GIVEN
			trie := New[string]()
			for _, key := range tc.existing {
				trie.Insert([]byte(key), key)
			}

			vacant, ok := trie.Entry([]byte(tc.key)).Vacant()
			require.True(t, ok)

			// WHEN
			ref := vacant.Insert(tc.key)

			// THEN
			require.NotNil(t, ref)
			assert.Equal(t, tc.key, *ref)
			assert.Equal(t, len(tc.existing)+1, trie.Len())

			for _, key := range append(tc.existing, tc.key) {
				value, ok := trie.Get([]byte(key))
				require.True(t, ok)
				assert.Equal(t, key, value)
			}

			requireValidStructure(t, &trie.root, true)
		})
	}
}

func TestVacantEntryUsedRepeatedly(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc       string
		existing []string
		key      string
	}{
		{uc: "child position", key: "x"},
		{uc: "child position next to sibling", existing: []string{"foo"}, key: "bar"},
		{uc: "edge position with remaining key", existing: []string{"abc"}, key: "abd"},
		{uc: "edge position at key end", existing: []string{"abc"}, key: "a"},
		{uc: "leaf position", existing: []string{"abc", "abd"}, key: "ab"},
	} {
		t.Run(tc.uc+" via Insert", func(t *testing.T) {
			// GIVEN
			trie := New[int]()
			for _, key := range tc.existing {
				trie.Insert([]byte(key), 0)
			}

			vacant, ok := trie.Entry([]byte(tc.key)).Vacant()
			require.True(t, ok)

			// WHEN
			first := vacant.Insert(1)
			second := vacant.Insert(2)

			// THEN
			assert.Same(t, first, second)
			assert.Equal(t, len(tc.existing)+1, trie.Len())
			assert.Equal(t, trie.PrefixLen([]byte(tc.key)), vacant.PrefixLen())

			value, ok := trie.Get([]byte(tc.key))
			require.True(t, ok)
			assert.Equal(t, 2, value)

			requireValidStructure(t, &trie.root, true)
		})

		t.Run(tc.uc+" via OrInsert", func(t *testing.T) {
			// GIVEN
			trie := New[int]()
			for _, key := range tc.existing {
				trie.Insert([]byte(key), 0)
			}

			entry := trie.Entry([]byte(tc.key))

			// WHEN
			*entry.OrInsert(1) += 10
			*entry.OrInsertWith(func() int { return 1 }) += 10

			// THEN
			assert.Equal(t, len(tc.existing)+1, trie.Len())

			value, ok := trie.Get([]byte(tc.key))
			require.True(t, ok)
			assert.Equal(t, 21, value)

			requireValidStructure(t, &trie.root, true)
		})
	}
}

func TestVacantEntryPrefixLen(t *testing.T) {
	t.Parallel()

	trie := New[int]()
	trie.Insert([]byte("abc"), 1)
	trie.Insert([]byte("abd"), 2)
	trie.Insert([]byte("x"), 3)

	for _, tc := range []struct {
		key   string
		count int
	}{
		{key: "", count: 3},
		{key: "a", count: 2},
		{key: "ab", count: 2},
		{key: "abe", count: 0},
		{key: "ax", count: 0},
		{key: "xy", count: 0},
	} {
		t.Run(tc.key, func(t *testing.T) {
			vacant, ok := trie.Entry([]byte(tc.key)).Vacant()
			require.True(t, ok)

			assert.Equal(t, tc.count, vacant.PrefixLen())
			assert.Equal(t, tc.count, trie.PrefixLen([]byte(tc.key)))
		})
	}
}

func TestOccupiedEntry(t *testing.T) {
	t.Parallel()

	// GIVEN
	trie := New[string]()
	trie.Insert([]byte("foo"), "bar")
	trie.Insert([]byte("foobar"), "baz")

	occupied, ok := trie.Entry([]byte("foo")).Occupied()
	require.True(t, ok)

	// WHEN & THEN
	assert.Equal(t, []byte("foo"), occupied.Key())
	assert.Equal(t, "bar", occupied.Get())

	*occupied.GetMut() = "BAR"
	assert.Equal(t, "BAR", occupied.Get())

	previous := occupied.Insert("bar2")
	assert.Equal(t, "BAR", previous)
	assert.Equal(t, "bar2", occupied.Get())

	key, value := occupied.RemoveEntry()
	assert.Equal(t, []byte("foo"), key)
	assert.Equal(t, "bar2", value)

	_, ok = trie.Get([]byte("foo"))
	assert.False(t, ok)

	value, ok = trie.Get([]byte("foobar"))
	require.True(t, ok)
	assert.Equal(t, "baz", value)

	occupied, ok = trie.Entry([]byte("foobar")).Occupied()
	require.True(t, ok)
	assert.Equal(t, "baz", occupied.Remove())
	assert.True(t, trie.IsEmpty())
}

func TestOccupiedEntryOfRemovedValuePanics(t *testing.T) {
	t.Parallel()

	trie := New[int]()
	trie.Insert([]byte("foo"), 1)

	occupied, ok := trie.Entry([]byte("foo")).Occupied()
	require.True(t, ok)

	occupied.Remove()

	assert.Panics(t, func() { occupied.Get() })
}
