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

/*
Package rtrie implements a compact prefix tree (radix trie) mapping byte
string keys to arbitrary values.

Edges are labeled with byte sequences (segments) instead of single bytes,
so chains of single child nodes are stored as one edge. Children of a node
are kept sorted by the first byte of their segment, and no two siblings
share a first byte.

Every operation performs exactly one descent from the root. The Entry API
exposes the result of that descent, so a caller can look a key up and then
insert, replace or remove its value without walking the tree a second time:

	t := rtrie.New[int]()

	counter := t.Entry([]byte("foo")).OrInsert(0)
	*counter++

Removing a value prunes nodes which became both valueless and childless,
walking upwards until the first ancestor still holding a value or another
child is reached.

A Trie is not safe for concurrent use. Callers sharing a trie between
goroutines must guard all accesses, e.g. with a sync.RWMutex, and must not
keep Entry handles or value pointers across a lock release.
*/
package rtrie
