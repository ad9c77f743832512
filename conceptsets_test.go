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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBCSet(t *testing.T) {
	s := NewBCSet(4)
	assert.True(t, s.Add(1))
	assert.False(t, s.Add(1))
	// grows beyond the initial capacity
	assert.True(t, s.Add(100))
	assert.True(t, s.Contains(100))
	assert.False(t, s.Contains(2))
	assert.False(t, s.Contains(1000))
	assert.Equal(t, uint(2), s.Len())
	assert.Equal(t, []uint{1, 100}, s.IDs())

	other := NewBCSet(4)
	other.Add(1)
	assert.True(t, other.IsSubset(s))
	assert.False(t, s.IsSubset(other))
	assert.False(t, s.Equals(other))
	assert.True(t, other.Union(s))
	assert.False(t, other.Union(s))
	assert.True(t, s.Equals(other))

	cp := s.Copy()
	cp.Add(5)
	assert.False(t, s.Contains(5))
}

func TestBCSetEach(t *testing.T) {
	s := NewBCSet(10)
	for _, id := range []uint{7, 0, 3} {
		s.Add(id)
	}
	var visited []uint
	s.Each(func(id uint) bool {
		visited = append(visited, id)
		return id < 3
	})
	assert.Equal(t, []uint{0, 3}, visited)
}

// global result variables to prevent compiler optimisation
var (
	setRes   *BCSet
	contains bool
)

func benchmarkSets() (*BCSet, *BCSet) {
	a, b := NewBCSet(300000), NewBCSet(300000)
	var i uint
	for ; i < 50000; i++ {
		a.Add(i)
		b.Add(i)
	}
	for i = 50000; i < 100000; i++ {
		a.Add(200000 + i)
		b.Add(i)
	}
	return a, b
}

func BenchmarkBCSetUnion(b *testing.B) {
	aSet, bSet := benchmarkSets()
	var r *BCSet
	for n := 0; n < b.N; n++ {
		r = aSet.Copy()
		r.Union(bSet)
	}
	setRes = r
}

func BenchmarkBCSetContains(b *testing.B) {
	aSet, _ := benchmarkSets()
	var r bool
	for n := 0; n < b.N; n++ {
		r = aSet.Contains(40000)
	}
	contains = r
}
