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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNormalizeNested(t *testing.T) {
	a, b, c := NewNamedConcept("A"), NewNamedConcept("B"), NewNamedConcept("C")
	r, s := NewRole("r"), NewRole("s")
	inner := NewExistentialConcept(s, c)
	conj := NewConjunction(b, inner)
	o := NewOntology(NewTBox(NewGCIConstraint(a, NewExistentialConcept(r, conj))))

	tbox, err := NewNormalizer(zaptest.NewLogger(t)).Normalize(o)
	require.NoError(t, err)
	aux0, aux1 := newAuxiliaryConcept(0), newAuxiliaryConcept(1)

	assert.Equal(t, []Concept{a, b, c, aux0, aux1}, tbox.Names)
	assert.Equal(t, []Role{r, s}, tbox.Roles)
	assert.Equal(t, uint(2), tbox.NumAuxiliary())
	got, has := tbox.Auxiliary(conj)
	require.True(t, has)
	assert.Equal(t, aux0, got)
	got, has = tbox.Auxiliary(inner)
	require.True(t, has)
	assert.Equal(t, aux1, got)

	assert.Equal(t, []NormalizedCI{
		{C1: b, C2: aux1, D: aux0},
		{C1: aux0, D: b},
	}, tbox.CIs)
	assert.Equal(t, []NormalizedCILeftEx{{R: s, C1: c, D: aux1}}, tbox.CILeft)
	assert.Equal(t, []NormalizedCIRightEx{
		{C1: aux1, R: s, C2: c},
		{C1: aux0, R: s, C2: c},
		{C1: a, R: r, C2: aux0},
	}, tbox.CIRight)
	assert.Equal(t, 6, tbox.Len())
}

func TestNormalizeSharesAuxiliaryNames(t *testing.T) {
	a, b, c, d := NewNamedConcept("A"), NewNamedConcept("B"), NewNamedConcept("C"), NewNamedConcept("D")
	ex := NewExistentialConcept("r", NewConjunction(a, b))
	tbox, err := Normalize(NewOntology(NewTBox(
		NewGCIConstraint(c, ex),
		NewGCIConstraint(d, ex),
	)))
	require.NoError(t, err)
	assert.Equal(t, uint(1), tbox.NumAuxiliary())
}

func TestNormalizeEquivalence(t *testing.T) {
	x, y, z := NewNamedConcept("X"), NewNamedConcept("Y"), NewNamedConcept("Z")
	tbox, err := Normalize(NewOntology(NewTBox(NewEquivalence(x, y, z))))
	require.NoError(t, err)
	assert.Equal(t, []NormalizedCI{
		{C1: x, D: y}, {C1: y, D: z}, {C1: z, D: x},
		{C1: y, D: x}, {C1: z, D: y}, {C1: x, D: z},
	}, tbox.CIs)
	assert.Empty(t, tbox.CIRight)
	assert.Empty(t, tbox.CILeft)
}

func TestNormalizeBinarization(t *testing.T) {
	a, b, c, d := NewNamedConcept("A"), NewNamedConcept("B"), NewNamedConcept("C"), NewNamedConcept("D")
	tbox, err := Normalize(NewOntology(NewTBox(NewGCIConstraint(NewMultiConjunction(a, b, c), d))))
	require.NoError(t, err)
	aux := newAuxiliaryConcept(0)
	assert.Equal(t, []NormalizedCI{
		{C1: a, C2: b, D: aux},
		{C1: aux, D: a},
		{C1: aux, D: b},
		{C1: aux, C2: c, D: d},
	}, tbox.CIs)
	got, has := tbox.Auxiliary(NewConjunction(a, b))
	require.True(t, has)
	assert.Equal(t, aux, got)
}

func TestNormalizeRightConjunction(t *testing.T) {
	a, b, c := NewNamedConcept("A"), NewNamedConcept("B"), NewNamedConcept("C")
	tbox, err := Normalize(NewOntology(NewTBox(
		NewGCIConstraint(a, NewMultiConjunction(b, c, Top)),
		NewGCIConstraint(NewConjunction(a, b), Top),
		NewGCIConstraint(Bottom, NewExistentialConcept("r", c)),
		NewGCIConstraint(Bottom, a),
		NewGCIConstraint(NewMultiConjunction(c), a),
	)))
	require.NoError(t, err)
	// A ⊑ ⊤ is kept because A is atomic, A ⊓ B ⊑ ⊤ and the ⊥ axioms are dropped
	assert.Equal(t, []NormalizedCI{
		{C1: a, D: b}, {C1: a, D: c}, {C1: a, D: Top}, {C1: c, D: a},
	}, tbox.CIs)
	assert.Empty(t, tbox.CIRight)
	// the role is still known
	assert.Equal(t, []Role{"r"}, tbox.Roles)
	assert.Equal(t, uint(0), tbox.NumAuxiliary())
}

func TestNormalizeInvalidAxiom(t *testing.T) {
	a, b := NewNamedConcept("A"), NewNamedConcept("B")
	bad := NewGCIConstraint(a, NewExistentialConcept("", b))
	o := NewOntology(NewTBox(NewGCIConstraint(a, b), bad))

	tbox, err := Normalize(o)
	assert.Nil(t, tbox)
	require.ErrorIs(t, err, ErrInvalidAxiom)
	var invalid *InvalidAxiomError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 1, invalid.Index)
	assert.True(t, invalid.Axiom.Equal(bad))
	assert.Contains(t, invalid.Reason, "empty role")
}

func TestNormalizeInvalidConcepts(t *testing.T) {
	a := NewNamedConcept("A")
	for name, ax := range map[string]Axiom{
		"empty conjunction": NewGCIConstraint(NewMultiConjunction(), a),
		"empty name":        NewGCIConstraint(a, NewNamedConcept("")),
		"zero concept":      NewGCIConstraint(a, Concept{}),
		"short equivalence": NewEquivalence(a),
		"nested":            NewGCIConstraint(NewExistentialConcept("r", NewConjunction(a, NewExistentialConcept("", a))), a),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Normalize(NewOntology(NewTBox(ax)))
			assert.ErrorIs(t, err, ErrInvalidAxiom)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	builder := NewRandomELBuilder(42, 10, 2)
	builder.MaxConjuncts = 4
	o := builder.GenerateRandomOntology(12, 12, 20, 3)
	first, err := Normalize(o)
	require.NoError(t, err)

	second, err := Normalize(NewOntology(NewTBox(first.Axioms()...)))
	require.NoError(t, err)
	assert.Equal(t, uint(0), second.NumAuxiliary())
	require.Equal(t, first.Len(), second.Len())
	firstAxioms, secondAxioms := first.Axioms(), second.Axioms()
	for i := range firstAxioms {
		assert.True(t, firstAxioms[i].Equal(secondAxioms[i]), "%v != %v", firstAxioms[i], secondAxioms[i])
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	o := NewRandomELBuilder(7, 8, 2).GenerateRandomOntology(10, 10, 15, 2)
	first, err := Normalize(o)
	require.NoError(t, err)
	second, err := Normalize(o)
	require.NoError(t, err)
	assert.Equal(t, first.Axioms(), second.Axioms())
	assert.Equal(t, first.Names, second.Names)
}

func TestNormalizerExtend(t *testing.T) {
	a, b, c := NewNamedConcept("A"), NewNamedConcept("B"), NewNamedConcept("C")
	n := NewNormalizer(nil)
	tbox, err := n.Normalize(NewOntology(NewTBox(NewGCIConstraint(NewConjunction(a, b), c))))
	require.NoError(t, err)
	before := tbox.Len()

	extended, err := n.Extend(tbox, NewGCIConstraint(NewExistentialConcept("r", NewConjunction(b, c)), a))
	require.NoError(t, err)
	assert.Equal(t, before, tbox.Len())
	assert.Greater(t, extended.Len(), before)
	assert.Equal(t, uint(1), extended.NumAuxiliary())

	_, err = n.Extend(tbox, NewGCIConstraint(a, NewExistentialConcept("", b)))
	require.ErrorIs(t, err, ErrInvalidAxiom)
	assert.Equal(t, before, tbox.Len())
}

func TestNormalizeConcept(t *testing.T) {
	a, b := NewNamedConcept("A"), NewNamedConcept("B")
	conj := NewConjunction(a, b)
	n := NewNormalizer(nil)
	tbox, err := n.Normalize(NewOntology(NewTBox(NewGCIConstraint(NewExistentialConcept("r", conj), a))))
	require.NoError(t, err)

	box, atom, err := n.NormalizeConcept(tbox, a)
	require.NoError(t, err)
	assert.Same(t, tbox, box)
	assert.Equal(t, a, atom)

	// already replaced during normalization
	box, atom, err = n.NormalizeConcept(tbox, conj)
	require.NoError(t, err)
	assert.Same(t, tbox, box)
	assert.Equal(t, newAuxiliaryConcept(0), atom)

	fresh := NewExistentialConcept("s", b)
	box, atom, err = n.NormalizeConcept(tbox, fresh)
	require.NoError(t, err)
	assert.NotSame(t, tbox, box)
	assert.True(t, atom.IsAuxiliary())
	assert.True(t, box.ContainsName(atom))
	assert.False(t, tbox.ContainsName(atom))

	_, _, err = n.NormalizeConcept(tbox, NewExistentialConcept("", a))
	assert.ErrorIs(t, err, ErrInvalidAxiom)
}
