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

import "bytes"

// Entry is the result of a single lookup of a key. It is either vacant (no value
// stored for the key) or occupied.
//
// An Entry, as well as the VacantEntry or OccupiedEntry it wraps, is only valid
// until the trie is modified through any other path. A VacantEntry places its
// value once. Inserting through it again, directly or via OrInsert, updates the
// value placed before and never adds a second node for the key.
type Entry[V any] struct {
	vacant   *VacantEntry[V]
	occupied *OccupiedEntry[V]
}

func newEntry[V any](res searchResult[V]) Entry[V] {
	if res.found {
		return Entry[V]{occupied: &OccupiedEntry[V]{node: res.node, key: res.key.base, chain: res.chain}}
	}

	return Entry[V]{vacant: &VacantEntry[V]{node: res.node, pos: res.pos, at: res.at, key: res.key}}
}

// Vacant returns the wrapped VacantEntry if no value is stored for the key.
func (e Entry[V]) Vacant() (*VacantEntry[V], bool) { return e.vacant, e.vacant != nil }

// Occupied returns the wrapped OccupiedEntry if a value is stored for the key.
func (e Entry[V]) Occupied() (*OccupiedEntry[V], bool) { return e.occupied, e.occupied != nil }

// Key returns the key the entry has been looked up for.
func (e Entry[V]) Key() []byte {
	if e.occupied != nil {
		return e.occupied.Key()
	}

	return e.vacant.Key()
}

// OrInsert stores value if the entry is vacant. It returns a pointer to the
// value stored for the key.
func (e Entry[V]) OrInsert(value V) *V {
	if e.occupied != nil {
		return e.occupied.GetMut()
	}

	if e.vacant.inserted != nil {
		return e.vacant.inserted.valueRef()
	}

	return e.vacant.Insert(value)
}

// OrInsertWith is like OrInsert, but calls create only if the entry is vacant.
func (e Entry[V]) OrInsertWith(create func() V) *V {
	if e.occupied != nil {
		return e.occupied.GetMut()
	}

	if e.vacant.inserted != nil {
		return e.vacant.inserted.valueRef()
	}

	return e.vacant.Insert(create())
}

// VacantEntry represents a key without a value. It knows where in the trie the
// value has to be placed.
type VacantEntry[V any] struct {
	node *node[V]
	pos  position
	at   int
	key  searchKey

	// set once the value has been placed. pos and at are stale from then on.
	inserted *node[V]
}

// Key returns the key of the entry.
func (e *VacantEntry[V]) Key() []byte { return e.key.base }

// PrefixLen returns the number of values stored for keys having the entry's key as prefix.
func (e *VacantEntry[V]) PrefixLen() int {
	if e.inserted != nil {
		return e.inserted.count()
	}

	res := searchResult[V]{node: e.node, pos: e.pos, at: e.at, key: e.key}

	return res.prefixLen()
}

// Insert stores the value for the key and returns a pointer to it.
func (e *VacantEntry[V]) Insert(value V) *V {
	if e.inserted != nil {
		ref := e.inserted.valueRef()
		*ref = value

		return ref
	}

	target := e.node
	idx := e.at

	switch e.pos {
	case posLeaf:
		e.inserted = target

		return target.setValue(value)
	case posEdge:
		tail := target.split(e.at)

		if e.key.empty() {
			e.inserted = target

			return target.setValue(value)
		}

		// key and the tail diverge at their first byte
		idx = 0
		if tail.segment[0] < e.key.first() {
			idx = 1
		}
	case posChild:
	}

	child := &node[V]{segment: bytes.Clone(e.key.rest())}
	ref := child.setValue(value)

	target.insertChild(idx, child)
	e.inserted = child

	return ref
}

// OccupiedEntry represents a key with a stored value.
type OccupiedEntry[V any] struct {
	node  *node[V]
	key   []byte
	chain []ancestor[V]
}

// Key returns the key of the entry.
func (e *OccupiedEntry[V]) Key() []byte { return e.key }

// Get returns the stored value.
func (e *OccupiedEntry[V]) Get() V { return *e.node.valueRef() }

// GetMut returns a pointer to the stored value.
func (e *OccupiedEntry[V]) GetMut() *V { return e.node.valueRef() }

// Insert replaces the stored value and returns the previous one.
func (e *OccupiedEntry[V]) Insert(value V) V {
	ref := e.node.valueRef()
	previous := *ref
	*ref = value

	return previous
}

// Remove removes the value from the trie and returns it.
func (e *OccupiedEntry[V]) Remove() V {
	_, value := e.RemoveEntry()

	return value
}

// RemoveEntry removes the value from the trie and returns the key together with it.
// Nodes, which became useless by that, are pruned. The entry must not be used afterwards.
func (e *OccupiedEntry[V]) RemoveEntry() ([]byte, V) {
	value := e.node.takeValue()

	if len(e.chain) == 0 || len(e.node.children) != 0 {
		// node still routes other keys (or is the root)
		return e.key, value
	}

	for i := len(e.chain) - 1; i >= 0; i-- {
		anc := e.chain[i]
		anc.parent.deleteChild(anc.idx)

		if !anc.parent.empty() {
			break
		}
	}

	e.chain = nil

	return e.key, value
}
