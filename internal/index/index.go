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
	"sync"

	"github.com/DmitriyVTitov/size"
	"github.com/inhies/go-bytesize"

	"github.com/dadrus/rtrie"
)

// Index is a key/value store backed by a radix trie. It is safe for concurrent use.
type Index struct {
	mu sync.RWMutex
	t  *rtrie.Trie[string]
}

type Stats struct {
	Keys         int               `json:"keys"`
	Nodes        int               `json:"nodes"`
	MaxDepth     int               `json:"max_depth"`
	SegmentBytes int               `json:"segment_bytes"`
	Footprint    bytesize.ByteSize `json:"footprint"`
}

func New() *Index {
	return &Index{t: rtrie.New[string]()}
}

func (i *Index) Lookup(key []byte) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.t.Get(key)
}

// Count returns the number of keys starting with prefix.
func (i *Index) Count(prefix []byte) int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.t.PrefixLen(prefix)
}

func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.t.Len()
}

// Put stores value for key and returns the replaced value if there was one.
func (i *Index) Put(key []byte, value string) (string, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.t.Insert(key, value)
}

// Append adds value to the one stored for key, or stores it if the key is new.
// It returns the resulting value.
func (i *Index) Append(key []byte, value string) string {
	i.mu.Lock()
	defer i.mu.Unlock()

	ref := i.t.Entry(key).OrInsert("")
	*ref += value

	return *ref
}

func (i *Index) Delete(key []byte) (string, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.t.Remove(key)
}

// ReplaceWith makes the contents of other the contents of i. other must not be used afterwards.
func (i *Index) ReplaceWith(other *Index) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.t = other.t
}

// Stats reports the shape of the underlying trie and its approximate memory footprint.
func (i *Index) Stats() Stats {
	i.mu.RLock()
	defer i.mu.RUnlock()

	st := i.t.Stats()

	return Stats{
		Keys:         st.Keys,
		Nodes:        st.Nodes,
		MaxDepth:     st.MaxDepth,
		SegmentBytes: st.SegmentBytes,
		Footprint:    bytesize.ByteSize(max(size.Of(i.t), 0)),
	}
}
