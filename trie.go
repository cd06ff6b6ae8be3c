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

// Trie maps byte string keys to values of type V. The zero value is an empty
// trie ready to use.
//
// A Trie is not safe for concurrent use by multiple goroutines. Pointers to
// values returned by GetMut, Entry or Insert methods stay valid only until the
// next modification of the trie.
type Trie[V any] struct {
	root node[V]
}

// New creates an empty trie.
func New[V any]() *Trie[V] {
	return &Trie[V]{}
}

// Entry looks the key up and returns a handle allowing to conditionally insert,
// update or remove the value stored for it. The key is not retained.
func (t *Trie[V]) Entry(key []byte) Entry[V] {
	return newEntry(search(&t.root, newSearchKey(key), true))
}

// Get returns the value stored for the key.
func (t *Trie[V]) Get(key []byte) (V, bool) {
	var zero V

	res := search(&t.root, newSearchKey(key), false)
	if !res.found {
		return zero, false
	}

	return *res.node.valueRef(), true
}

// GetMut returns a pointer to the value stored for the key, or nil if there is none.
func (t *Trie[V]) GetMut(key []byte) *V {
	res := search(&t.root, newSearchKey(key), false)
	if !res.found {
		return nil
	}

	return res.node.valueRef()
}

// Insert stores the value for the key. If there was a value already, it is
// replaced and returned together with true.
func (t *Trie[V]) Insert(key []byte, value V) (V, bool) {
	var zero V

	entry := t.Entry(key)
	if occupied, ok := entry.Occupied(); ok {
		return occupied.Insert(value), true
	}

	vacant, _ := entry.Vacant()
	vacant.Insert(value)

	return zero, false
}

// Remove removes the value stored for the key and returns it together with true.
// Nodes, which do not hold a value and do not have children after that, are pruned.
func (t *Trie[V]) Remove(key []byte) (V, bool) {
	var zero V

	occupied, ok := t.Entry(key).Occupied()
	if !ok {
		return zero, false
	}

	return occupied.Remove(), true
}

// Len returns the number of stored values. It traverses the whole trie.
func (t *Trie[V]) Len() int {
	return t.root.count()
}

// PrefixLen returns the number of stored keys having the given prefix.
// PrefixLen(nil) equals Len().
func (t *Trie[V]) PrefixLen(prefix []byte) int {
	res := search(&t.root, newSearchKey(prefix), false)

	return res.prefixLen()
}

// IsEmpty reports whether the trie holds neither values nor nodes.
func (t *Trie[V]) IsEmpty() bool {
	return t.root.empty()
}

// Clone returns a deep copy of the trie structure. Values are copied by assignment.
func (t *Trie[V]) Clone() *Trie[V] {
	out := &Trie[V]{}

	t.root.cloneInto(&out.root)

	return out
}
