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
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
)

//// Concepts ////

// ConceptKind is the tag of a Concept. Concepts form a closed set of variants,
// every consumer switches over the kind.
type ConceptKind uint8

const (
	// InvalidConcept is the kind of the zero Concept.
	InvalidConcept ConceptKind = iota
	// TopKind is the kind of ⊤.
	TopKind
	// BottomKind is the kind of ⊥.
	BottomKind
	// NameKind is the kind of concept names A ∈ N_C.
	NameKind
	// ConjunctionKind is the kind of C1 ⊓ ... ⊓ Cn.
	ConjunctionKind
	// ExistentialKind is the kind of ∃r.C.
	ExistentialKind
)

func (kind ConceptKind) String() string {
	switch kind {
	case TopKind:
		return "top"
	case BottomKind:
		return "bottom"
	case NameKind:
		return "name"
	case ConjunctionKind:
		return "conjunction"
	case ExistentialKind:
		return "existential"
	default:
		return "invalid"
	}
}

// Role is an EL role r ∈ N_R, identified by its name.
type Role string

// NewRole returns the role with the given name.
func NewRole(name string) Role {
	return Role(name)
}

func (role Role) String() string {
	return string(role)
}

// AuxiliaryPrefix is the prefix of all concept names introduced during
// normalization. Auxiliary names are also flagged internally, so a source
// name that happens to start with this prefix is still a different concept.
const AuxiliaryPrefix = "_:aux"

// term is the shared representation of a concept. Each structurally distinct
// concept has exactly one term.
type term struct {
	id       uint64
	kind     ConceptKind
	name     string
	aux      bool
	role     Role
	operands []Concept
}

// Concept is a handle to an interned EL concept.
// Concepts are immutable and hash-consed: building the same concept twice
// yields the same handle, so two concepts are equal iff they are == equal.
// The zero value is not a valid concept.
type Concept struct {
	t *term
}

// termKey identifies the structure of a term. Operands are encoded by the ids
// of their (already interned) terms.
type termKey struct {
	kind     ConceptKind
	name     string
	aux      bool
	operands string
}

// conceptTable is the process wide interning table. It only ever grows.
type conceptTable struct {
	mutex sync.Mutex
	terms map[termKey]*term
	next  uint64
}

var table = &conceptTable{terms: make(map[termKey]*term, 128)}

func encodeOperands(operands []Concept) string {
	var b strings.Builder
	for i, op := range operands {
		if i > 0 {
			b.WriteByte(',')
		}
		if op.t == nil {
			b.WriteByte('-')
		} else {
			b.WriteString(strconv.FormatUint(op.t.id, 10))
		}
	}
	return b.String()
}

func (tbl *conceptTable) intern(kind ConceptKind, name string, aux bool, role Role, operands []Concept) Concept {
	key := termKey{kind: kind, name: name, aux: aux, operands: encodeOperands(operands)}
	if kind == ExistentialKind {
		key.name = string(role)
	}
	tbl.mutex.Lock()
	defer tbl.mutex.Unlock()
	if t, has := tbl.terms[key]; has {
		return Concept{t}
	}
	var ops []Concept
	if len(operands) > 0 {
		ops = make([]Concept, len(operands))
		copy(ops, operands)
	}
	t := &term{id: tbl.next, kind: kind, name: name, aux: aux, role: role, operands: ops}
	tbl.next++
	tbl.terms[key] = t
	return Concept{t}
}

// Top is the top concept ⊤.
var Top = table.intern(TopKind, "", false, "", nil)

// Bottom is the bottom concept ⊥.
var Bottom = table.intern(BottomKind, "", false, "", nil)

// NewNamedConcept returns the concept name with the given id.
func NewNamedConcept(id string) Concept {
	return table.intern(NameKind, id, false, "", nil)
}

// newAuxiliaryConcept returns the n-th auxiliary concept name.
func newAuxiliaryConcept(n uint) Concept {
	return table.intern(NameKind, AuxiliaryPrefix+strconv.FormatUint(uint64(n), 10), true, "", nil)
}

// NewConjunction returns the concept C ⊓ D.
func NewConjunction(c, d Concept) Concept {
	return table.intern(ConjunctionKind, "", false, "", []Concept{c, d})
}

// NewMultiConjunction returns the conjunction C1 ⊓ ... ⊓ Cn.
// Conjunctions with more than two operands are binarized during
// normalization. A conjunction without operands can be built but is rejected
// by the Normalizer.
func NewMultiConjunction(concepts ...Concept) Concept {
	return table.intern(ConjunctionKind, "", false, "", concepts)
}

// NewExistentialConcept returns the concept ∃r.C.
func NewExistentialConcept(r Role, c Concept) Concept {
	return table.intern(ExistentialKind, "", false, r, []Concept{c})
}

// IsZero reports whether c is the zero Concept.
func (c Concept) IsZero() bool {
	return c.t == nil
}

// Kind returns the variant of c.
func (c Concept) Kind() ConceptKind {
	if c.t == nil {
		return InvalidConcept
	}
	return c.t.kind
}

// IsAtomic reports whether c is ⊤, ⊥ or a concept name.
func (c Concept) IsAtomic() bool {
	switch c.Kind() {
	case TopKind, BottomKind, NameKind:
		return true
	default:
		return false
	}
}

// Name returns the id of a concept name, and "" for all other concepts.
func (c Concept) Name() string {
	if c.Kind() != NameKind {
		return ""
	}
	return c.t.name
}

// IsAuxiliary reports whether c is a name introduced by the Normalizer.
func (c Concept) IsAuxiliary() bool {
	return c.t != nil && c.t.aux
}

// Role returns the role r of ∃r.C.
func (c Concept) Role() Role {
	if c.Kind() != ExistentialKind {
		return ""
	}
	return c.t.role
}

// Filler returns the filler C of ∃r.C, and the zero Concept otherwise.
func (c Concept) Filler() Concept {
	if c.Kind() != ExistentialKind {
		return Concept{}
	}
	return c.t.operands[0]
}

// Operands returns the conjuncts of a conjunction.
func (c Concept) Operands() []Concept {
	if c.Kind() != ConjunctionKind {
		return nil
	}
	res := make([]Concept, len(c.t.operands))
	copy(res, c.t.operands)
	return res
}

func (c Concept) String() string {
	switch c.Kind() {
	case TopKind:
		return "⊤"
	case BottomKind:
		return "⊥"
	case NameKind:
		return c.t.name
	case ConjunctionKind:
		strs := make([]string, len(c.t.operands))
		for i, op := range c.t.operands {
			strs[i] = op.String()
		}
		return fmt.Sprintf("(%s)", strings.Join(strs, " ⊓ "))
	case ExistentialKind:
		return fmt.Sprintf("∃%v.%v", c.t.role, c.t.operands[0])
	default:
		return "<invalid>"
	}
}

// CompareConcepts orders concepts: ⊤ first, then ⊥, then source names by
// name, then auxiliary names, then compound concepts in creation order.
func CompareConcepts(a, b Concept) int {
	ka, kb := a.Kind(), b.Kind()
	if ka != kb {
		if ka < kb {
			return -1
		}
		return 1
	}
	switch ka {
	case InvalidConcept, TopKind, BottomKind:
		return 0
	case NameKind:
		if a.t.aux != b.t.aux {
			if b.t.aux {
				return -1
			}
			return 1
		}
		if a.t.aux {
			return compareAuxNames(a.t.name, b.t.name)
		}
		return strings.Compare(a.t.name, b.t.name)
	default:
		switch {
		case a.t.id < b.t.id:
			return -1
		case a.t.id > b.t.id:
			return 1
		default:
			return 0
		}
	}
}

// compareAuxNames compares auxiliary names by their counter value.
func compareAuxNames(a, b string) int {
	na, errA := strconv.ParseUint(strings.TrimPrefix(a, AuxiliaryPrefix), 10, 64)
	nb, errB := strconv.ParseUint(strings.TrimPrefix(b, AuxiliaryPrefix), 10, 64)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	default:
		return 0
	}
}

func sortConcepts(concepts []Concept) {
	slices.SortFunc(concepts, CompareConcepts)
}

//// TBox ////

// AxiomKind is the tag of an Axiom.
type AxiomKind uint8

const (
	// GCIAxiom is a general concept inclusion C ⊑ D.
	GCIAxiom AxiomKind = iota
	// EquivalenceAxiom is C1 ≡ ... ≡ Cn.
	EquivalenceAxiom
)

// Axiom is a TBox axiom, either a GCI or an equivalence.
type Axiom struct {
	kind     AxiomKind
	concepts []Concept
}

// NewGCIConstraint returns a new general concept inclusion C ⊑ D.
func NewGCIConstraint(c, d Concept) Axiom {
	return Axiom{kind: GCIAxiom, concepts: []Concept{c, d}}
}

// NewEquivalence returns the axiom C1 ≡ ... ≡ Cn.
// At least two concepts are required, this is checked during normalization.
func NewEquivalence(concepts ...Concept) Axiom {
	cs := make([]Concept, len(concepts))
	copy(cs, concepts)
	return Axiom{kind: EquivalenceAxiom, concepts: cs}
}

// Kind returns the variant of the axiom.
func (ax Axiom) Kind() AxiomKind {
	return ax.kind
}

// LHS returns C for a GCI C ⊑ D.
func (ax Axiom) LHS() Concept {
	if ax.kind != GCIAxiom {
		return Concept{}
	}
	return ax.concepts[0]
}

// RHS returns D for a GCI C ⊑ D.
func (ax Axiom) RHS() Concept {
	if ax.kind != GCIAxiom {
		return Concept{}
	}
	return ax.concepts[1]
}

// Concepts returns all concepts of the axiom, for a GCI that is [C, D].
func (ax Axiom) Concepts() []Concept {
	res := make([]Concept, len(ax.concepts))
	copy(res, ax.concepts)
	return res
}

// GCIs splits the axiom into GCIs. A GCI is returned as it is, an equivalence
// C1 ≡ ... ≡ Cn becomes the 2n GCIs Ci ⊑ C(i+1 mod n) and C(i+1 mod n) ⊑ Ci.
func (ax Axiom) GCIs() []Axiom {
	if ax.kind == GCIAxiom {
		return []Axiom{ax}
	}
	n := len(ax.concepts)
	res := make([]Axiom, 0, 2*n)
	for i, c := range ax.concepts {
		next := ax.concepts[(i+1)%n]
		res = append(res, NewGCIConstraint(c, next))
	}
	for i, c := range ax.concepts {
		next := ax.concepts[(i+1)%n]
		res = append(res, NewGCIConstraint(next, c))
	}
	return res
}

// Equal reports whether both axioms are structurally equal.
func (ax Axiom) Equal(other Axiom) bool {
	if ax.kind != other.kind || len(ax.concepts) != len(other.concepts) {
		return false
	}
	for i, c := range ax.concepts {
		if c != other.concepts[i] {
			return false
		}
	}
	return true
}

func (ax Axiom) String() string {
	strs := make([]string, len(ax.concepts))
	for i, c := range ax.concepts {
		strs[i] = c.String()
	}
	if ax.kind == GCIAxiom {
		return strings.Join(strs, " ⊑ ")
	}
	return strings.Join(strs, " ≡ ")
}

// TBox is an ordered set of axioms. The order does not matter for the
// semantics but makes normalization reproducible.
type TBox struct {
	axioms []Axiom
}

// NewTBox returns a new TBox.
func NewTBox(axioms ...Axiom) *TBox {
	res := make([]Axiom, len(axioms))
	copy(res, axioms)
	return &TBox{axioms: res}
}

// Axioms returns the axioms of the TBox in insertion order.
func (tbox *TBox) Axioms() []Axiom {
	res := make([]Axiom, len(tbox.axioms))
	copy(res, tbox.axioms)
	return res
}

// Len returns the number of axioms.
func (tbox *TBox) Len() int {
	return len(tbox.axioms)
}
