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
	"github.com/hashicorp/go-set/v3"
	"go.uber.org/zap"
)

// NormalizedCI is a normalized CI of the form C1 ⊑ D or C1 ⊓ C2 ⊑ D.
// For the first form C2 is the zero Concept.
// C1, C2 and D are always atomic (a name, ⊤ or ⊥).
type NormalizedCI struct {
	C1, C2, D Concept
}

// IsBinary reports whether ci is of the form C1 ⊓ C2 ⊑ D.
func (ci NormalizedCI) IsBinary() bool {
	return !ci.C2.IsZero()
}

// NormalizedCIRightEx is a normalized CI of the form C1 ⊑ ∃r.C2.
type NormalizedCIRightEx struct {
	C1 Concept
	R  Role
	C2 Concept
}

// NormalizedCILeftEx is a normalized CI of the form ∃r.C1 ⊑ D.
type NormalizedCILeftEx struct {
	R  Role
	C1 Concept
	D  Concept
}

// NormalizedTBox is a TBox in normal form, that is it only contains CIs of
// the four forms A ⊑ B, A1 ⊓ A2 ⊑ B, A ⊑ ∃r.B and ∃r.A ⊑ B.
//
// Each slice keeps the order in which the CIs were produced, duplicates are
// dropped.
type NormalizedTBox struct {
	CIs     []NormalizedCI
	CIRight []NormalizedCIRightEx
	CILeft  []NormalizedCILeftEx

	// Names contains all concept names of the TBox, first the names of the
	// source ontology (in order of occurrence), then the auxiliary names in the
	// order they were introduced.
	Names []Concept
	// Roles contains all roles, in order of occurrence.
	Roles []Role

	nameSet    *set.Set[Concept]
	roleSet    *set.Set[Role]
	ciSet      *set.Set[NormalizedCI]
	ciRightSet *set.Set[NormalizedCIRightEx]
	ciLeftSet  *set.Set[NormalizedCILeftEx]

	// auxiliary maps each compound concept that was replaced to its name.
	auxiliary map[Concept]Concept
	numAux    uint
}

func newNormalizedTBox(initialCapacity int) *NormalizedTBox {
	return &NormalizedTBox{
		CIs:        make([]NormalizedCI, 0, initialCapacity),
		CIRight:    make([]NormalizedCIRightEx, 0, initialCapacity),
		CILeft:     make([]NormalizedCILeftEx, 0, initialCapacity),
		Names:      make([]Concept, 0, initialCapacity),
		Roles:      make([]Role, 0, 10),
		nameSet:    set.New[Concept](initialCapacity),
		roleSet:    set.New[Role](10),
		ciSet:      set.New[NormalizedCI](initialCapacity),
		ciRightSet: set.New[NormalizedCIRightEx](initialCapacity),
		ciLeftSet:  set.New[NormalizedCILeftEx](initialCapacity),
		auxiliary:  make(map[Concept]Concept),
	}
}

func (tbox *NormalizedTBox) clone() *NormalizedTBox {
	res := &NormalizedTBox{
		CIs:        append([]NormalizedCI(nil), tbox.CIs...),
		CIRight:    append([]NormalizedCIRightEx(nil), tbox.CIRight...),
		CILeft:     append([]NormalizedCILeftEx(nil), tbox.CILeft...),
		Names:      append([]Concept(nil), tbox.Names...),
		Roles:      append([]Role(nil), tbox.Roles...),
		nameSet:    tbox.nameSet.Copy(),
		roleSet:    tbox.roleSet.Copy(),
		ciSet:      tbox.ciSet.Copy(),
		ciRightSet: tbox.ciRightSet.Copy(),
		ciLeftSet:  tbox.ciLeftSet.Copy(),
		auxiliary:  make(map[Concept]Concept, len(tbox.auxiliary)),
		numAux:     tbox.numAux,
	}
	for k, v := range tbox.auxiliary {
		res.auxiliary[k] = v
	}
	return res
}

// Len returns the number of normalized CIs.
func (tbox *NormalizedTBox) Len() int {
	return len(tbox.CIs) + len(tbox.CIRight) + len(tbox.CILeft)
}

// NumAuxiliary returns the number of auxiliary names introduced.
func (tbox *NormalizedTBox) NumAuxiliary() uint {
	return tbox.numAux
}

// Auxiliary returns the auxiliary name that was introduced for the compound
// concept c, if there is one. The name is equivalent to c.
func (tbox *NormalizedTBox) Auxiliary(c Concept) (Concept, bool) {
	aux, has := tbox.auxiliary[c]
	return aux, has
}

// ContainsName reports whether the concept name c occurs in the TBox.
func (tbox *NormalizedTBox) ContainsName(c Concept) bool {
	return tbox.nameSet.Contains(c)
}

// Axioms returns the normalized TBox as a list of GCIs: first all CIs, then
// all CIs with an existential on the right, then those with an existential
// on the left.
func (tbox *NormalizedTBox) Axioms() []Axiom {
	res := make([]Axiom, 0, tbox.Len())
	for _, ci := range tbox.CIs {
		if ci.IsBinary() {
			res = append(res, NewGCIConstraint(NewConjunction(ci.C1, ci.C2), ci.D))
		} else {
			res = append(res, NewGCIConstraint(ci.C1, ci.D))
		}
	}
	for _, ex := range tbox.CIRight {
		res = append(res, NewGCIConstraint(ex.C1, NewExistentialConcept(ex.R, ex.C2)))
	}
	for _, ex := range tbox.CILeft {
		res = append(res, NewGCIConstraint(NewExistentialConcept(ex.R, ex.C1), ex.D))
	}
	return res
}

func (tbox *NormalizedTBox) addName(c Concept) {
	if c.Kind() == NameKind && tbox.nameSet.Insert(c) {
		tbox.Names = append(tbox.Names, c)
	}
}

func (tbox *NormalizedTBox) addRole(r Role) {
	if tbox.roleSet.Insert(r) {
		tbox.Roles = append(tbox.Roles, r)
	}
}

func (tbox *NormalizedTBox) addCI(c1, c2, d Concept) {
	ci := NormalizedCI{C1: c1, C2: c2, D: d}
	if tbox.ciSet.Insert(ci) {
		tbox.CIs = append(tbox.CIs, ci)
	}
}

func (tbox *NormalizedTBox) addRightEx(c1 Concept, r Role, c2 Concept) {
	tbox.addRole(r)
	ex := NormalizedCIRightEx{C1: c1, R: r, C2: c2}
	if tbox.ciRightSet.Insert(ex) {
		tbox.CIRight = append(tbox.CIRight, ex)
	}
}

func (tbox *NormalizedTBox) addLeftEx(r Role, c1, d Concept) {
	tbox.addRole(r)
	ex := NormalizedCILeftEx{R: r, C1: c1, D: d}
	if tbox.ciLeftSet.Insert(ex) {
		tbox.CILeft = append(tbox.CILeft, ex)
	}
}

// Normalizer transforms a TBox into normal form.
//
// Compound concepts nested inside other compound concepts are replaced by
// fresh auxiliary names X, for each of them the two CIs X ⊑ C and C ⊑ X are
// added. Conjunctions with more than two operands are binarized left to
// right. The counter for auxiliary names belongs to a single run, normalizing
// the same ontology twice yields the same result.
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer returns a new Normalizer. logger may be nil.
func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{logger: logger}
}

// Normalize normalizes the TBox of the ontology.
// It fails with an *InvalidAxiomError for the first malformed axiom.
func (n *Normalizer) Normalize(o *Ontology) (*NormalizedTBox, error) {
	box := newNormalizedTBox(2 * o.tbox.Len())
	// register all source names and roles first, they must get an id even if
	// they only occur in tautologies
	for _, c := range o.subConcepts {
		switch c.Kind() {
		case NameKind:
			box.addName(c)
		case ExistentialKind:
			box.addRole(c.Role())
		}
	}
	if err := n.normalizeInto(box, o.tbox.axioms); err != nil {
		return nil, err
	}
	n.logger.Debug("normalized TBox",
		zap.Int("axioms", o.tbox.Len()),
		zap.Int("normalized", box.Len()),
		zap.Int("names", len(box.Names)),
		zap.Uint("auxiliary", box.numAux))
	return box, nil
}

// Extend returns a copy of tbox with the additional axioms normalized into it.
// Auxiliary names continue the numbering of tbox, tbox itself is not changed.
func (n *Normalizer) Extend(tbox *NormalizedTBox, axioms ...Axiom) (*NormalizedTBox, error) {
	box := tbox.clone()
	if err := n.normalizeInto(box, axioms); err != nil {
		return nil, err
	}
	return box, nil
}

func (n *Normalizer) normalizeInto(box *NormalizedTBox, axioms []Axiom) error {
	run := normalizeRun{box: box}
	for i, ax := range axioms {
		if reason := validateAxiom(ax); reason != "" {
			n.logger.Debug("rejecting axiom", zap.Int("index", i), zap.String("reason", reason))
			return &InvalidAxiomError{Index: i, Axiom: ax, Reason: reason}
		}
		for _, gci := range ax.GCIs() {
			run.addGCI(gci.concepts[0], gci.concepts[1])
		}
	}
	return nil
}

// Normalize normalizes the TBox of the ontology with a default Normalizer.
func Normalize(o *Ontology) (*NormalizedTBox, error) {
	return NewNormalizer(nil).Normalize(o)
}

// validateAxiom returns a description of what is wrong with the axiom, or ""
// if it is well formed.
func validateAxiom(ax Axiom) string {
	switch ax.kind {
	case GCIAxiom:
		if len(ax.concepts) != 2 {
			return "a GCI needs exactly two concepts"
		}
	case EquivalenceAxiom:
		if len(ax.concepts) < 2 {
			return "an equivalence needs at least two concepts"
		}
	default:
		return "unknown axiom kind"
	}
	for _, c := range ax.concepts {
		if reason := validateConcept(c); reason != "" {
			return reason
		}
	}
	return ""
}

func validateConcept(c Concept) string {
	switch c.Kind() {
	case TopKind, BottomKind:
		return ""
	case NameKind:
		if c.t.name == "" {
			return "empty concept name"
		}
		return ""
	case ConjunctionKind:
		if len(c.t.operands) == 0 {
			return "conjunction without operands"
		}
		for _, op := range c.t.operands {
			if reason := validateConcept(op); reason != "" {
				return reason
			}
		}
		return ""
	case ExistentialKind:
		if c.t.role == "" {
			return "empty role identifier in existential restriction"
		}
		return validateConcept(c.t.operands[0])
	default:
		return "missing concept"
	}
}

// leftAssociate returns ((C1 ⊓ C2) ⊓ C3) ⊓ ... for at least two operands.
func leftAssociate(ops []Concept) Concept {
	res := NewConjunction(ops[0], ops[1])
	for _, op := range ops[2:] {
		res = NewConjunction(res, op)
	}
	return res
}

// normalizeRun holds the state of one normalization, all axioms passed to it
// must be valid.
type normalizeRun struct {
	box *NormalizedTBox
}

// addGCI adds the normal form of C ⊑ D.
func (run *normalizeRun) addGCI(c, d Concept) {
	switch d.Kind() {
	case TopKind:
		// C ⊑ ⊤ holds anyway, but keep it if it is already in normal form
		if c.IsAtomic() {
			run.addLHS(c, d)
		}
	case BottomKind, NameKind:
		run.addLHS(c, d)
	case ConjunctionKind:
		for _, op := range d.t.operands {
			run.addGCI(c, op)
		}
	case ExistentialKind:
		if c.Kind() == BottomKind {
			return
		}
		run.box.addRightEx(run.atom(c), d.Role(), run.atom(d.Filler()))
	}
}

// addLHS adds the normal form of C ⊑ D where D is atomic.
func (run *normalizeRun) addLHS(c, d Concept) {
	switch c.Kind() {
	case BottomKind:
		// ⊥ ⊑ D is a tautology
	case TopKind, NameKind:
		run.box.addName(d)
		run.box.addCI(c, Concept{}, d)
	case ConjunctionKind:
		ops := c.t.operands
		switch len(ops) {
		case 1:
			run.addLHS(ops[0], d)
		case 2:
			run.box.addName(d)
			run.box.addCI(run.atom(ops[0]), run.atom(ops[1]), d)
		default:
			run.box.addName(d)
			left := leftAssociate(ops[:len(ops)-1])
			run.box.addCI(run.atom(left), run.atom(ops[len(ops)-1]), d)
		}
	case ExistentialKind:
		run.box.addName(d)
		run.box.addLeftEx(c.Role(), run.atom(c.Filler()), d)
	}
}

// atom returns an atomic concept equivalent to c. For compound concepts this
// is an auxiliary name, created on first use.
func (run *normalizeRun) atom(c Concept) Concept {
	if c.IsAtomic() {
		run.box.addName(c)
		return c
	}
	if c.Kind() == ConjunctionKind {
		ops := c.t.operands
		switch {
		case len(ops) == 1:
			return run.atom(ops[0])
		case len(ops) > 2:
			c = leftAssociate(ops)
		}
	}
	if aux, has := run.box.auxiliary[c]; has {
		return aux
	}
	aux := newAuxiliaryConcept(run.box.numAux)
	run.box.numAux++
	run.box.auxiliary[c] = aux
	run.box.addName(aux)
	run.addGCI(c, aux)
	run.addGCI(aux, c)
	return aux
}

// NormalizeConcept returns a copy of tbox extended by the normal form of the
// concept c, together with an atomic concept that is equivalent to c in the
// extended TBox. tbox itself is not changed. If c is atomic or was already
// replaced by an auxiliary name during normalization no copy is made.
func (n *Normalizer) NormalizeConcept(tbox *NormalizedTBox, c Concept) (*NormalizedTBox, Concept, error) {
	if reason := validateConcept(c); reason != "" {
		return nil, Concept{}, &InvalidAxiomError{Index: -1, Axiom: NewGCIConstraint(c, Top), Reason: reason}
	}
	if c.IsAtomic() && (c.Kind() != NameKind || tbox.ContainsName(c)) {
		return tbox, c, nil
	}
	if aux, has := tbox.Auxiliary(c); has {
		return tbox, aux, nil
	}
	box := tbox.clone()
	run := normalizeRun{box: box}
	res := run.atom(c)
	return box, res, nil
}
