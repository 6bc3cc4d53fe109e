// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bloom provides a small bloom filter used to reject, in constant
// time, full request paths that are definitely not one of the module's
// registered pure-static routes, before falling back to the general DFS
// matcher.
package bloom

import "hash/fnv"

// Filter is a fixed-size bloom filter over FNV-1a hashes, each re-seeded by
// XOR to cheaply derive several independent-enough hash functions from one
// base hash computation.
type Filter struct {
	bits  []uint64
	size  uint64
	seeds []uint64
}

// New creates a Filter with size bits and numHashFuncs hash functions.
func New(size uint64, numHashFuncs int) *Filter {
	if size == 0 {
		size = 1024
	}
	if numHashFuncs <= 0 {
		numHashFuncs = 3
	}
	f := &Filter{
		bits:  make([]uint64, (size+63)/64),
		size:  size,
		seeds: make([]uint64, numHashFuncs),
	}
	for i := range numHashFuncs {
		f.seeds[i] = uint64(i + 1)
	}
	return f
}

func (f *Filter) positions(data []byte) []uint64 {
	h := fnv.New64a()
	h.Write(data)
	base := h.Sum64()

	positions := make([]uint64, len(f.seeds))
	for i, seed := range f.seeds {
		positions[i] = (base ^ seed) % f.size
	}
	return positions
}

// Add records data as present.
func (f *Filter) Add(data []byte) {
	for _, pos := range f.positions(data) {
		f.bits[pos/64] |= 1 << (pos % 64)
	}
}

// Test reports whether data might be present. A false result is certain; a
// true result may be a false positive.
func (f *Filter) Test(data []byte) bool {
	for _, pos := range f.positions(data) {
		if f.bits[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}
	return true
}
