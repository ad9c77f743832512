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

import "github.com/hashicorp/go-set/v3"

// Relation stores the pairs (C, D) of R(r) for one role r, meaning that C
// implies ∃r.D. Pairs are indexed in both directions.
// It is not safe for concurrent use.
type Relation struct {
	mapping        map[uint]*set.Set[uint]
	reverseMapping map[uint]*set.Set[uint]
	size           int
}

// NewRelation returns an empty relation.
func NewRelation(initialCapacity uint) *Relation {
	return &Relation{
		mapping:        make(map[uint]*set.Set[uint], initialCapacity),
		reverseMapping: make(map[uint]*set.Set[uint], initialCapacity),
	}
}

func addToRelation(m map[uint]*set.Set[uint], first, second uint) bool {
	inner, has := m[first]
	if !has {
		inner = set.New[uint](4)
		m[first] = inner
	}
	return inner.Insert(second)
}

// Add adds (c, d) and reports whether it was not contained before.
func (r *Relation) Add(c, d uint) bool {
	if !addToRelation(r.mapping, c, d) {
		return false
	}
	addToRelation(r.reverseMapping, d, c)
	r.size++
	return true
}

// Contains reports whether (c, d) is in the relation.
func (r *Relation) Contains(c, d uint) bool {
	inner, has := r.mapping[c]
	return has && inner.Contains(d)
}

// Successors returns all d with (c, d) in the relation.
func (r *Relation) Successors(c uint) []uint {
	inner, has := r.mapping[c]
	if !has {
		return nil
	}
	return inner.Slice()
}

// Predecessors returns all c with (c, d) in the relation.
func (r *Relation) Predecessors(d uint) []uint {
	inner, has := r.reverseMapping[d]
	if !has {
		return nil
	}
	return inner.Slice()
}

// Len returns the number of pairs.
func (r *Relation) Len() int {
	return r.size
}

// Each calls f for each pair until f returns false.
func (r *Relation) Each(f func(c, d uint) bool) {
	for c, inner := range r.mapping {
		for d := range inner.Items() {
			if !f(c, d) {
				return
			}
		}
	}
}
