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

// searchKey is a view over a key with the already matched bytes skipped.
type searchKey struct {
	base   []byte
	offset int
}

func newSearchKey(key []byte) searchKey {
	return searchKey{base: key}
}

// rest returns the not yet consumed part of the key.
func (k *searchKey) rest() []byte { return k.base[k.offset:] }

func (k *searchKey) consume(size int) { k.offset += size }

func (k *searchKey) first() byte { return k.base[k.offset] }

func (k *searchKey) empty() bool { return len(k.base) == k.offset }
