// The MIT License (MIT)

// Copyright (c) 2016, 2017 Fabian Wenzelmann

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package goel

import "github.com/bits-and-blooms/bitset"

// BCSet is a set of normalized concept ids, used for the sets S(C).
// It is not safe for concurrent use.
type BCSet struct {
	b *bitset.BitSet
}

// NewBCSet returns an empty set, initialCapacity is the expected largest id + 1.
func NewBCSet(initialCapacity uint) *BCSet {
	return &BCSet{b: bitset.New(initialCapacity)}
}

// Contains reports whether id is in the set.
func (s *BCSet) Contains(id uint) bool {
	return s.b.Test(id)
}

// Add adds id to the set and reports whether it was not contained before.
func (s *BCSet) Add(id uint) bool {
	if s.b.Test(id) {
		return false
	}
	s.b.Set(id)
	return true
}

// Union adds all elements of other and reports whether s changed.
func (s *BCSet) Union(other *BCSet) bool {
	oldLen := s.b.Count()
	s.b.InPlaceUnion(other.b)
	return oldLen != s.b.Count()
}

// IsSubset tests if s ⊆ other.
func (s *BCSet) IsSubset(other *BCSet) bool {
	return other.b.IsSuperSet(s.b)
}

// Equals checks if s = other.
func (s *BCSet) Equals(other *BCSet) bool {
	return s.b.Count() == other.b.Count() && s.IsSubset(other)
}

// Copy returns a copy of s.
func (s *BCSet) Copy() *BCSet {
	return &BCSet{b: s.b.Clone()}
}

// Len returns the number of elements.
func (s *BCSet) Len() uint {
	return s.b.Count()
}

// Each calls f for each id in increasing order until f returns false.
func (s *BCSet) Each(f func(id uint) bool) {
	for i, ok := s.b.NextSet(0); ok; i, ok = s.b.NextSet(i + 1) {
		if !f(i) {
			return
		}
	}
}

// IDs returns all elements in increasing order.
func (s *BCSet) IDs() []uint {
	res := make([]uint, 0, s.b.Count())
	s.Each(func(id uint) bool {
		res = append(res, id)
		return true
	})
	return res
}
