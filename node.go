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
	"bytes"
	"slices"
	"sort"
)

type node[V any] struct {
	// label of the edge leading from the parent to this node.
	// Empty only for the root.
	segment []byte

	// sorted by the first byte of their segments. First bytes are unique.
	children []*node[V]

	value    V
	hasValue bool
}

// childIndex returns the index of the child, the segment of which starts with b.
// If there is no such child, the returned index is the position a child starting
// with b has to be inserted at to keep the children sorted.
func (n *node[V]) childIndex(b byte) (int, bool) {
	idx := sort.Search(len(n.children), func(i int) bool {
		return n.children[i].segment[0] >= b
	})

	return idx, idx < len(n.children) && n.children[idx].segment[0] == b
}

func (n *node[V]) insertChild(idx int, child *node[V]) {
	n.children = slices.Insert(n.children, idx, child)
}

func (n *node[V]) deleteChild(idx int) {
	n.children = slices.Delete(n.children, idx, idx+1)

	if len(n.children) == 0 {
		n.children = nil
	}
}

func (n *node[V]) setValue(value V) *V {
	n.value = value
	n.hasValue = true

	return &n.value
}

func (n *node[V]) valueRef() *V {
	if !n.hasValue {
		panic("rtrie: node referenced as occupied holds no value")
	}

	return &n.value
}

func (n *node[V]) takeValue() V {
	var zero V

	value := *n.valueRef()
	n.value = zero
	n.hasValue = false

	return value
}

func (n *node[V]) empty() bool {
	return !n.hasValue && len(n.children) == 0
}

// split divides the segment at the given offset. The node keeps segment[:at]
// and gets a single child, which takes over the tail of the segment, the
// children and the value.
func (n *node[V]) split(at int) *node[V] {
	var zero V

	tail := &node[V]{
		segment:  n.segment[at:],
		children: n.children,
		value:    n.value,
		hasValue: n.hasValue,
	}

	// capacity is capped so that both halves never share writable memory.
	n.segment = n.segment[:at:at]
	n.children = []*node[V]{tail}
	n.value = zero
	n.hasValue = false

	return tail
}

// count returns the number of values stored in the subtree rooted at n.
func (n *node[V]) count() int {
	var (
		total int
		stack = []*node[V]{n}
	)

	for len(stack) != 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur.hasValue {
			total++
		}

		stack = append(stack, cur.children...)
	}

	return total
}

func (n *node[V]) cloneInto(out *node[V]) {
	*out = *n

	if len(n.segment) != 0 {
		out.segment = bytes.Clone(n.segment)
	}

	if len(n.children) != 0 {
		out.children = make([]*node[V], len(n.children))

		for idx, child := range n.children {
			newChild := &node[V]{}

			child.cloneInto(newChild)
			out.children[idx] = newChild
		}
	}
}
