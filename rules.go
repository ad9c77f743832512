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

// SNotification is a rule that waits for some concept to be added to some
// S(C). It reports whether it derived a new fact.
type SNotification interface {
	// GetSNotification is called once C' was added to S(C).
	GetSNotification(state SolverState, c, cPrime uint) bool
	// Rule returns the completion rule the notification implements.
	Rule() Rule
}

// RNotification is a rule that waits for pairs added to some R(r).
type RNotification interface {
	// GetRNotification is called once (C, D) was added to R(r).
	GetRNotification(state SolverState, r, c, d uint) bool
	Rule() Rule
}

// CR1Notification adds D to S(C), uint stands for the D in the rule.
type CR1Notification uint

func NewCR1Notification(d uint) CR1Notification {
	return CR1Notification(d)
}

func (n CR1Notification) GetSNotification(state SolverState, c, cPrime uint) bool {
	return state.AddConcept(c, uint(n))
}

func (n CR1Notification) Rule() Rule {
	return CR1
}

// CR2Notification is registered for both conjuncts of C1 ⊓ C2 ⊑ D. Other is
// the conjunct the notification is not registered for.
type CR2Notification struct {
	other, d uint
}

func NewCR2Notification(other, d uint) CR2Notification {
	return CR2Notification{other: other, d: d}
}

func (n CR2Notification) GetSNotification(state SolverState, c, cPrime uint) bool {
	return state.ContainsConcept(c, n.other) && state.AddConcept(c, n.d)
}

func (n CR2Notification) Rule() Rule {
	return CR2
}

// CR3Notification adds (C, D) to R(r) for C1 ⊑ ∃r.D.
type CR3Notification struct {
	r, d uint
}

func NewCR3Notification(r, d uint) CR3Notification {
	return CR3Notification{r: r, d: d}
}

func (n CR3Notification) GetSNotification(state SolverState, c, cPrime uint) bool {
	return state.AddRole(n.r, c, n.d)
}

func (n CR3Notification) Rule() Rule {
	return CR3
}

// CR4Notification implements ∃r.D' ⊑ E for both premises.
// As an SNotification it is registered for D' and adds E to S(C) for all
// (C, D) ∈ R(r) once D' was added to S(D).
// As an RNotification it is registered for r and adds E to S(C) if D' is
// already in S(D).
type CR4Notification struct {
	r, dPrime, e uint
}

func NewCR4Notification(r, dPrime, e uint) CR4Notification {
	return CR4Notification{r: r, dPrime: dPrime, e: e}
}

func (n CR4Notification) GetSNotification(state SolverState, d, dPrime uint) bool {
	res := false
	for _, c := range state.Predecessors(n.r, d) {
		res = state.AddConcept(c, n.e) || res
	}
	return res
}

func (n CR4Notification) GetRNotification(state SolverState, r, c, d uint) bool {
	return state.ContainsConcept(d, n.dPrime) && state.AddConcept(c, n.e)
}

func (n CR4Notification) Rule() Rule {
	return CR4
}

// CR5Notification propagates ⊥ backwards along all roles.
type CR5Notification struct{}

func (n CR5Notification) GetSNotification(state SolverState, d, bot uint) bool {
	res := false
	numRoles := state.NumRoles()
	var r uint
	for ; r < numRoles; r++ {
		for _, c := range state.Predecessors(r, d) {
			res = state.AddConcept(c, BottomID) || res
		}
	}
	return res
}

func (n CR5Notification) GetRNotification(state SolverState, r, c, d uint) bool {
	return state.ContainsConcept(d, BottomID) && state.AddConcept(c, BottomID)
}

func (n CR5Notification) Rule() Rule {
	return CR5
}

// RuleMap indexes the rules of a normalized TBox by their premises.
// The rules do not depend on the concept C they are applied for, so
// SRules[D] holds every rule that must fire when D is added to some S(C) and
// RRules[r] every rule that must fire when a pair is added to R(r).
type RuleMap struct {
	SRules [][]SNotification
	RRules [][]RNotification
}

// NewRuleMap builds the rule index for tbox.
func NewRuleMap(tbox *NormalizedTBox, idx *conceptIndex) *RuleMap {
	res := &RuleMap{
		SRules: make([][]SNotification, idx.NumBCD()),
		RRules: make([][]RNotification, idx.NumRoles()),
	}
	for _, ci := range tbox.CIs {
		c1, d := idx.mustID(ci.C1), idx.mustID(ci.D)
		if !ci.IsBinary() {
			res.addS(c1, NewCR1Notification(d))
			continue
		}
		c2 := idx.mustID(ci.C2)
		res.addS(c1, NewCR2Notification(c2, d))
		if c1 != c2 {
			res.addS(c2, NewCR2Notification(c1, d))
		}
	}
	for _, ex := range tbox.CIRight {
		r, _ := idx.RoleID(ex.R)
		res.addS(idx.mustID(ex.C1), NewCR3Notification(r, idx.mustID(ex.C2)))
	}
	for _, ex := range tbox.CILeft {
		r, _ := idx.RoleID(ex.R)
		n := NewCR4Notification(r, idx.mustID(ex.C1), idx.mustID(ex.D))
		res.addS(n.dPrime, n)
		res.RRules[r] = append(res.RRules[r], n)
	}
	if idx.NumRoles() > 0 {
		res.addS(BottomID, CR5Notification{})
		for r := range res.RRules {
			res.RRules[r] = append(res.RRules[r], CR5Notification{})
		}
	}
	return res
}

func (rules *RuleMap) addS(d uint, n SNotification) {
	rules.SRules[d] = append(rules.SRules[d], n)
}

// NumRules returns the number of registered notifications.
func (rules *RuleMap) NumRules() int {
	res := 0
	for _, ns := range rules.SRules {
		res += len(ns)
	}
	for _, ns := range rules.RRules {
		res += len(ns)
	}
	return res
}
