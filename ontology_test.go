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
	"github.com/stretchr/testify/require"
)

func TestOntologyAccessors(t *testing.T) {
	a, b, c := NewNamedConcept("A"), NewNamedConcept("B"), NewNamedConcept("C")
	ex := NewExistentialConcept("r", NewConjunction(c, a))
	o := NewOntology(NewTBox(
		NewGCIConstraint(c, ex),
		NewEquivalence(b, NewExistentialConcept("s", Top)),
	))
	assert.Equal(t, []Concept{a, b, c}, o.ConceptNames())
	assert.Equal(t, []Role{"r", "s"}, o.Roles())
	assert.True(t, o.ContainsName(a))
	assert.False(t, o.ContainsName(NewNamedConcept("D")))
	assert.False(t, o.ContainsName(Top))

	got, has := o.LookupName("B")
	assert.True(t, has)
	assert.Equal(t, b, got)
	_, has = o.LookupName("D")
	assert.False(t, has)

	assert.Equal(t, []Concept{
		c, ex, NewConjunction(c, a), a, b, NewExistentialConcept("s", Top), Top,
	}, o.SubConcepts())
	assert.Equal(t, 2, o.TBox().Len())
}

func TestOntologyWithAxioms(t *testing.T) {
	a, b, c := NewNamedConcept("A"), NewNamedConcept("B"), NewNamedConcept("C")
	o := NewOntology(NewTBox(NewGCIConstraint(a, b)))
	extended := o.WithAxioms(NewGCIConstraint(b, c))
	assert.Equal(t, []Concept{a, b}, o.ConceptNames())
	assert.Equal(t, []Concept{a, b, c}, extended.ConceptNames())
	assert.Equal(t, 2, extended.TBox().Len())
}

func TestConvertToBinaryConjunctions(t *testing.T) {
	a, b, c, d := NewNamedConcept("A"), NewNamedConcept("B"), NewNamedConcept("C"), NewNamedConcept("D")
	nary := NewMultiConjunction(a, b, c, d)
	o := NewOntology(NewTBox(
		NewGCIConstraint(nary, NewExistentialConcept("r", NewMultiConjunction(b, c, d))),
		NewEquivalence(NewMultiConjunction(a), b),
	))
	converted := ConvertToBinaryConjunctions(o)
	axioms := converted.TBox().Axioms()
	require.Len(t, axioms, 2)
	expected := NewGCIConstraint(
		NewConjunction(NewConjunction(NewConjunction(a, b), c), d),
		NewExistentialConcept("r", NewConjunction(NewConjunction(b, c), d)),
	)
	assert.True(t, expected.Equal(axioms[0]), "got %v", axioms[0])
	assert.True(t, NewEquivalence(a, b).Equal(axioms[1]), "got %v", axioms[1])
	// the input is not changed
	assert.True(t, o.TBox().Axioms()[0].LHS() == nary)
	for _, sub := range converted.SubConcepts() {
		if sub.Kind() == ConjunctionKind {
			assert.Len(t, sub.Operands(), 2)
		}
	}
}
