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
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type animals struct {
	animal, cat, dog, puppy, youngDog, thing, unicorn Concept
}

func newAnimals() animals {
	return animals{
		animal:   NewNamedConcept("Animal"),
		cat:      NewNamedConcept("Cat"),
		dog:      NewNamedConcept("Dog"),
		puppy:    NewNamedConcept("Puppy"),
		youngDog: NewNamedConcept("YoungDog"),
		thing:    NewNamedConcept("Thing"),
		unicorn:  NewNamedConcept("Unicorn"),
	}
}

func (a animals) ontology() *Ontology {
	return NewOntology(NewTBox(
		NewGCIConstraint(a.dog, a.animal),
		NewGCIConstraint(a.cat, a.animal),
		NewEquivalence(a.puppy, a.youngDog),
		NewGCIConstraint(a.youngDog, a.dog),
		NewEquivalence(Top, a.thing),
		NewGCIConstraint(a.unicorn, a.animal),
		NewGCIConstraint(a.unicorn, Bottom),
	))
}

func classifyAnimals(t *testing.T) (animals, *Hierarchy) {
	a := newAnimals()
	h, err := Classify(context.Background(), a.ontology(), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return a, h
}

func TestHierarchyNodes(t *testing.T) {
	a, h := classifyAnimals(t)
	require.Equal(t, 6, h.Len())
	nodes := h.Nodes()
	assert.Same(t, h.Top(), nodes[0])
	assert.Same(t, h.Bottom(), nodes[len(nodes)-1])
	assert.Equal(t, []Concept{Top, a.thing}, h.Top().Concepts())
	assert.Equal(t, []Concept{Bottom, a.unicorn}, h.Bottom().Concepts())
	assert.Equal(t, Top, h.Top().Representative())

	eq, err := h.Equivalents(a.youngDog)
	require.NoError(t, err)
	assert.Equal(t, []Concept{a.puppy, a.youngDog}, eq)

	n, err := h.Node(a.puppy)
	require.NoError(t, err)
	assert.True(t, n.Contains(a.youngDog))
	assert.Equal(t, "{Puppy, YoungDog}", n.String())

	_, err = h.Node(NewNamedConcept("Nope"))
	assert.ErrorIs(t, err, ErrUnknownConcept)
}

func TestHierarchyDirectEdges(t *testing.T) {
	a, h := classifyAnimals(t)
	tests := []struct {
		c        Concept
		parents  []Concept
		children []Concept
	}{
		{Top, nil, []Concept{a.animal}},
		{a.animal, []Concept{Top, a.thing}, []Concept{a.cat, a.dog}},
		{a.cat, []Concept{a.animal}, []Concept{Bottom, a.unicorn}},
		{a.dog, []Concept{a.animal}, []Concept{a.puppy, a.youngDog}},
		{a.puppy, []Concept{a.dog}, []Concept{Bottom, a.unicorn}},
		{a.unicorn, []Concept{a.cat, a.puppy, a.youngDog}, nil},
	}
	for _, test := range tests {
		t.Run(test.c.String(), func(t *testing.T) {
			parents, err := h.DirectSubsumers(test.c)
			require.NoError(t, err)
			assert.Equal(t, test.parents, parents)
			children, err := h.DirectSubsumees(test.c)
			require.NoError(t, err)
			assert.Equal(t, test.children, children)
		})
	}
}

func TestHierarchyTraversal(t *testing.T) {
	a, h := classifyAnimals(t)
	ancestors, err := h.Ancestors(a.puppy)
	require.NoError(t, err)
	assert.Equal(t, []Concept{Top, a.animal, a.dog, a.thing}, ancestors)

	descendants, err := h.Descendants(a.dog)
	require.NoError(t, err)
	assert.Equal(t, []Concept{Bottom, a.puppy, a.unicorn, a.youngDog}, descendants)

	descendants, err = h.Descendants(Bottom)
	require.NoError(t, err)
	assert.Empty(t, descendants)

	tests := []struct {
		c, d     Concept
		expected bool
	}{
		{a.animal, a.puppy, true},
		{a.cat, a.dog, false},
		{a.puppy, a.youngDog, true},
		{Top, a.unicorn, true},
		{a.cat, a.unicorn, true},
		{a.unicorn, a.cat, false},
		{a.thing, Top, true},
	}
	for _, test := range tests {
		actual, err := h.Subsumes(test.c, test.d)
		require.NoError(t, err)
		assert.Equal(t, test.expected, actual, "Subsumes(%v, %v)", test.c, test.d)
	}
}

func TestHierarchyTopologicalOrder(t *testing.T) {
	_, h := classifyAnimals(t)
	order, err := h.TopologicalOrder()
	require.NoError(t, err)
	require.Len(t, order, h.Len())
	assert.Same(t, h.Top(), order[0])
	assert.Same(t, h.Bottom(), order[len(order)-1])
	for i, n := range order {
		for _, p := range n.Parents() {
			assert.Less(t, slices.Index(order, p), i, "%v must come before %v", p, n)
		}
	}
}

func TestHierarchyPairs(t *testing.T) {
	a, h := classifyAnimals(t)
	pairs := h.Pairs()
	assert.Contains(t, pairs, [2]Concept{a.puppy, a.youngDog})
	assert.Contains(t, pairs, [2]Concept{a.youngDog, a.puppy})
	assert.Contains(t, pairs, [2]Concept{a.puppy, a.animal})
	assert.Contains(t, pairs, [2]Concept{a.animal, a.thing})
	assert.Contains(t, pairs, [2]Concept{a.unicorn, a.cat})
	assert.NotContains(t, pairs, [2]Concept{a.animal, a.dog})
	assert.NotContains(t, pairs, [2]Concept{a.dog, a.dog})
}

func TestHierarchyInconsistent(t *testing.T) {
	a, b := NewNamedConcept("A"), NewNamedConcept("B")
	h, err := Classify(context.Background(), NewOntology(NewTBox(
		NewGCIConstraint(a, b),
		NewGCIConstraint(Top, Bottom),
	)))
	require.NoError(t, err)
	assert.Equal(t, 1, h.Len())
	assert.Same(t, h.Top(), h.Bottom())
	assert.Equal(t, []Concept{Top, Bottom, a, b}, h.Top().Concepts())
	order, err := h.TopologicalOrder()
	require.NoError(t, err)
	assert.Len(t, order, 1)
}

func TestHierarchyMatchesSubsumers(t *testing.T) {
	builder := NewRandomELBuilder(3, 12, 2)
	builder.BottomProbability = 0.02
	o := builder.GenerateRandomOntology(10, 10, 25, 3)
	r, err := NewReasoner(context.Background(), o)
	require.NoError(t, err)
	h, err := r.Classify(context.Background())
	require.NoError(t, err)
	for _, c := range o.ConceptNames() {
		for _, d := range o.ConceptNames() {
			subs, err := r.Subsumers(context.Background(), c)
			require.NoError(t, err)
			expected := slices.Contains(subs, d)
			actual, err := h.Subsumes(d, c)
			require.NoError(t, err)
			assert.Equal(t, expected, actual, "%v ⊑ %v", c, d)
		}
	}
}
