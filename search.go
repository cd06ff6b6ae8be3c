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

type position int

const (
	// the key ended at an existing node, which holds no value.
	posLeaf position = iota
	// the key diverges from (or ends within) the node's segment at offset at.
	posEdge
	// the node has no child for the next key byte. at is the insertion index.
	posChild
)

// ancestor identifies the edge taken during the descent: the child at idx of parent.
type ancestor[V any] struct {
	parent *node[V]
	idx    int
}

type searchResult[V any] struct {
	node  *node[V]
	found bool

	// valid only if not found
	pos position
	at  int

	// the key with all matched bytes consumed
	key searchKey

	// ancestors of node ordered from the root downwards. Only recorded for
	// found results and only if requested.
	chain []ancestor[V]
}

// search locates the node the key routes to, or the exact place a node for
// the key has to be created at.
func search[V any](root *node[V], key searchKey, trackAncestors bool) searchResult[V] {
	var chain []ancestor[V]

	cur := root

	for {
		matched := commonPrefixLen(cur.segment, key.rest())
		key.consume(matched)

		if matched != len(cur.segment) {
			return searchResult[V]{node: cur, pos: posEdge, at: matched, key: key}
		}

		if key.empty() {
			if !cur.hasValue {
				return searchResult[V]{node: cur, pos: posLeaf, key: key}
			}

			return searchResult[V]{node: cur, found: true, key: key, chain: chain}
		}

		idx, ok := cur.childIndex(key.first())
		if !ok {
			return searchResult[V]{node: cur, pos: posChild, at: idx, key: key}
		}

		if trackAncestors {
			chain = append(chain, ancestor[V]{parent: cur, idx: idx})
		}

		cur = cur.children[idx]
	}
}

// prefixLen returns the number of values stored below the searched prefix.
func (r *searchResult[V]) prefixLen() int {
	switch {
	case r.found:
		return r.node.count()
	case r.pos == posLeaf:
		return r.node.count()
	case r.pos == posEdge && r.key.empty():
		// the prefix ends within the segment of the node.
		return r.node.count()
	default:
		return 0
	}
}
