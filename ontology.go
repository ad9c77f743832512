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
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// Ontology owns a TBox together with the concept names and roles occurring in
// it. The name and role sets are derived from the TBox and can't be changed,
// an Ontology is immutable once created.
type Ontology struct {
	tbox        *TBox
	names       *set.TreeSet[Concept]
	roles       *set.TreeSet[Role]
	subConcepts []Concept
}

func compareRoles(a, b Role) int {
	return strings.Compare(string(a), string(b))
}

// NewOntology returns the ontology for the given TBox.
func NewOntology(tbox *TBox) *Ontology {
	if tbox == nil {
		tbox = NewTBox()
	}
	res := &Ontology{
		tbox:        tbox,
		names:       set.NewTreeSet[Concept](CompareConcepts),
		roles:       set.NewTreeSet[Role](compareRoles),
		subConcepts: make([]Concept, 0, 2*tbox.Len()),
	}
	seen := set.New[Concept](2 * tbox.Len())
	var visit func(c Concept)
	visit = func(c Concept) {
		if c.IsZero() || !seen.Insert(c) {
			return
		}
		res.subConcepts = append(res.subConcepts, c)
		switch c.Kind() {
		case NameKind:
			res.names.Insert(c)
		case ConjunctionKind:
			for _, op := range c.t.operands {
				visit(op)
			}
		case ExistentialKind:
			res.roles.Insert(c.Role())
			visit(c.Filler())
		}
	}
	for _, ax := range tbox.axioms {
		for _, c := range ax.concepts {
			visit(c)
		}
	}
	return res
}

// TBox returns the TBox of the ontology.
func (o *Ontology) TBox() *TBox {
	return o.tbox
}

// ConceptNames returns all concept names occurring in the ontology, ordered by
// name.
func (o *Ontology) ConceptNames() []Concept {
	return o.names.Slice()
}

// ContainsName reports whether the concept name c occurs in the ontology.
func (o *Ontology) ContainsName(c Concept) bool {
	return c.Kind() == NameKind && o.names.Contains(c)
}

// LookupName returns the concept name with the given id if it occurs in the
// ontology.
func (o *Ontology) LookupName(id string) (Concept, bool) {
	c := NewNamedConcept(id)
	return c, o.names.Contains(c)
}

// Roles returns all roles occurring in the ontology, ordered by name.
func (o *Ontology) Roles() []Role {
	return o.roles.Slice()
}

// SubConcepts returns every concept occurring in the ontology (including
// nested ones) in order of first occurrence.
func (o *Ontology) SubConcepts() []Concept {
	res := make([]Concept, len(o.subConcepts))
	copy(res, o.subConcepts)
	return res
}

// WithAxioms returns a new ontology containing the axioms of o followed by
// the additional axioms. o itself is not changed.
func (o *Ontology) WithAxioms(axioms ...Axiom) *Ontology {
	all := make([]Axiom, 0, o.tbox.Len()+len(axioms))
	all = append(all, o.tbox.axioms...)
	all = append(all, axioms...)
	return NewOntology(NewTBox(all...))
}

// ConvertToBinaryConjunctions returns a new ontology in which each conjunction
// with more than two operands is replaced by left associated binary
// conjunctions, ((C1 ⊓ C2) ⊓ C3) ⊓ .... Conjunctions with a single operand
// are replaced by the operand. Conjunctions without operands are kept, the
// Normalizer reports them.
func ConvertToBinaryConjunctions(o *Ontology) *Ontology {
	memo := make(map[Concept]Concept)
	axioms := make([]Axiom, len(o.tbox.axioms))
	for i, ax := range o.tbox.axioms {
		concepts := make([]Concept, len(ax.concepts))
		for j, c := range ax.concepts {
			concepts[j] = binarize(c, memo)
		}
		axioms[i] = Axiom{kind: ax.kind, concepts: concepts}
	}
	return NewOntology(NewTBox(axioms...))
}

func binarize(c Concept, memo map[Concept]Concept) Concept {
	if res, has := memo[c]; has {
		return res
	}
	res := c
	switch c.Kind() {
	case ConjunctionKind:
		ops := c.t.operands
		switch len(ops) {
		case 0:
			// invalid, left for the normalizer
		case 1:
			res = binarize(ops[0], memo)
		default:
			res = NewConjunction(binarize(ops[0], memo), binarize(ops[1], memo))
			for _, op := range ops[2:] {
				res = NewConjunction(res, binarize(op, memo))
			}
		}
	case ExistentialKind:
		res = NewExistentialConcept(c.Role(), binarize(c.Filler(), memo))
	}
	memo[c] = res
	return res
}
