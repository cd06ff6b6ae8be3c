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

// Stats describes the shape of a trie.
type Stats struct {
	// Keys is the number of stored values, same as Len.
	Keys int
	// Nodes is the number of nodes including the root.
	Nodes int
	// MaxDepth is the largest number of edges between the root and a node.
	MaxDepth int
	// SegmentBytes is the sum of all segment lengths.
	SegmentBytes int
}

// Stats walks the whole trie and collects its structural statistics.
func (t *Trie[V]) Stats() Stats {
	type item struct {
		n     *node[V]
		depth int
	}

	var (
		stats Stats
		stack = []item{{n: &t.root}}
	)

	for len(stack) != 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		stats.Nodes++
		stats.SegmentBytes += len(cur.n.segment)
		stats.MaxDepth = max(stats.MaxDepth, cur.depth)

		if cur.n.hasValue {
			stats.Keys++
		}

		for _, child := range cur.n.children {
			stack = append(stack, item{n: child, depth: cur.depth + 1})
		}
	}

	return stats
}
