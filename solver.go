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
	"sync"
)

const (
	// BottomID is the normalized id of ⊥.
	BottomID uint = 0
	// TopID is the normalized id of ⊤.
	TopID uint = 1
)

// conceptIndex assigns the normalized ids used by the solvers: ⊥ is 0, ⊤ is 1
// and the names of the normalized TBox follow from 2 on in the order of
// NormalizedTBox.Names. Roles are numbered from 0.
type conceptIndex struct {
	ids       map[Concept]uint
	concepts  []Concept
	roleIDs   map[Role]uint
	roleNames []Role
}

func newConceptIndex(tbox *NormalizedTBox) *conceptIndex {
	// we use + 2 here because ⊥ and ⊤ are not part of the names
	numBCD := len(tbox.Names) + 2
	idx := &conceptIndex{
		ids:       make(map[Concept]uint, numBCD),
		concepts:  make([]Concept, 0, numBCD),
		roleIDs:   make(map[Role]uint, len(tbox.Roles)),
		roleNames: make([]Role, 0, len(tbox.Roles)),
	}
	idx.add(Bottom)
	idx.add(Top)
	for _, name := range tbox.Names {
		idx.add(name)
	}
	for _, r := range tbox.Roles {
		if _, has := idx.roleIDs[r]; !has {
			idx.roleIDs[r] = uint(len(idx.roleNames))
			idx.roleNames = append(idx.roleNames, r)
		}
	}
	return idx
}

func (idx *conceptIndex) add(c Concept) {
	if _, has := idx.ids[c]; has {
		return
	}
	idx.ids[c] = uint(len(idx.concepts))
	idx.concepts = append(idx.concepts, c)
}

// NumBCD returns the number of ids, including ⊥ and ⊤.
func (idx *conceptIndex) NumBCD() uint {
	return uint(len(idx.concepts))
}

// NumRoles returns the number of roles.
func (idx *conceptIndex) NumRoles() uint {
	return uint(len(idx.roleNames))
}

func (idx *conceptIndex) ID(c Concept) (uint, bool) {
	id, has := idx.ids[c]
	return id, has
}

// mustID returns the id of a concept that is known to be in the index.
func (idx *conceptIndex) mustID(c Concept) uint {
	id, has := idx.ids[c]
	if !has {
		panic("goel: concept " + c.String() + " is not part of the normalized TBox")
	}
	return id
}

func (idx *conceptIndex) Concept(id uint) Concept {
	return idx.concepts[id]
}

func (idx *conceptIndex) RoleID(r Role) (uint, bool) {
	id, has := idx.roleIDs[r]
	return id, has
}

// Rule identifies one of the completion rules.
type Rule uint8

const (
	// CR1 is A ⊑ B: A ∈ S(X) ⟹ B ∈ S(X).
	CR1 Rule = iota
	// CR2 is A1 ⊓ A2 ⊑ B: A1, A2 ∈ S(X) ⟹ B ∈ S(X).
	CR2
	// CR3 is A ⊑ ∃r.B: A ∈ S(X) ⟹ (X, B) ∈ R(r).
	CR3
	// CR4 is ∃r.A ⊑ B: (X, Y) ∈ R(r), A ∈ S(Y) ⟹ B ∈ S(X).
	CR4
	// CR5: (X, Y) ∈ R(r), ⊥ ∈ S(Y) ⟹ ⊥ ∈ S(X).
	CR5
	// NumRules is the number of completion rules.
	NumRules
)

func (rule Rule) String() string {
	switch rule {
	case CR1:
		return "cr1"
	case CR2:
		return "cr2"
	case CR3:
		return "cr3"
	case CR4:
		return "cr4"
	case CR5:
		return "cr5"
	default:
		return "unknown"
	}
}

// SolverStats describes the work done by a solver.
type SolverStats struct {
	// SUpdates is the number of facts B ∈ S(X) derived, including the initial ones.
	SUpdates uint64
	// RUpdates is the number of facts (X, Y) ∈ R(r) derived.
	RUpdates uint64
	// Rounds is the number of passes (naive solver) or bulks (concurrent solver).
	Rounds uint
	// Applications counts the rule applications that derived a new fact.
	Applications [NumRules]uint64
}

func (stats *SolverStats) merge(other *SolverStats) {
	stats.SUpdates += other.SUpdates
	stats.RUpdates += other.RUpdates
	for i, n := range other.Applications {
		stats.Applications[i] += n
	}
}

// Solver computes the saturation of a normalized TBox.
// All solvers compute the same fixed point. If ctx is done before the fixed
// point is reached the solver returns a *CancelledError and no saturation.
type Solver interface {
	Solve(ctx context.Context, tbox *NormalizedTBox) (*Saturation, error)
	Name() string
}

// SolverState is the view of the saturation state the completion rules work
// on. Concepts and roles are identified by their normalized ids.
type SolverState interface {
	// ContainsConcept reports whether D ∈ S(C).
	ContainsConcept(c, d uint) bool
	// AddConcept adds D to S(C) and reports whether it was new.
	AddConcept(c, d uint) bool
	// AddRole adds (C, D) to R(r) and reports whether it was new.
	AddRole(r, c, d uint) bool
	// Predecessors returns all C with (C, D) ∈ R(r).
	Predecessors(r, d uint) []uint
	// NumRoles returns the number of roles.
	NumRoles() uint
}

// NCSolverState is a SolverState without any synchronization.
type NCSolverState struct {
	S []*BCSet
	R []*Relation
}

// NewNCSolverState returns a state with empty S and R for all ids.
func NewNCSolverState(numBCD, numRoles uint) *NCSolverState {
	res := &NCSolverState{
		S: make([]*BCSet, numBCD),
		R: make([]*Relation, numRoles),
	}
	var i uint
	for ; i < numBCD; i++ {
		res.S[i] = NewBCSet(numBCD)
	}
	for i = 0; i < numRoles; i++ {
		res.R[i] = NewRelation(10)
	}
	return res
}

func (state *NCSolverState) ContainsConcept(c, d uint) bool {
	return state.S[c].Contains(d)
}

func (state *NCSolverState) AddConcept(c, d uint) bool {
	return state.S[c].Add(d)
}

func (state *NCSolverState) AddRole(r, c, d uint) bool {
	return state.R[r].Add(c, d)
}

func (state *NCSolverState) Predecessors(r, d uint) []uint {
	return state.R[r].Predecessors(d)
}

func (state *NCSolverState) NumRoles() uint {
	return uint(len(state.R))
}

// LockedSolverState is a SolverState that is safe for concurrent use.
// Each S(C) and each R(r) is protected by its own RWMutex.
// No method holds more than one lock at a time.
type LockedSolverState struct {
	*NCSolverState

	sMutex []sync.RWMutex
	rMutex []sync.RWMutex
}

// NewLockedSolverState returns a state with empty S and R for all ids.
func NewLockedSolverState(numBCD, numRoles uint) *LockedSolverState {
	return &LockedSolverState{
		NCSolverState: NewNCSolverState(numBCD, numRoles),
		sMutex:        make([]sync.RWMutex, numBCD),
		rMutex:        make([]sync.RWMutex, numRoles),
	}
}

// ContainsConcept reports whether D ∈ S(C).
func (state *LockedSolverState) ContainsConcept(c, d uint) bool {
	state.sMutex[c].RLock()
	res := state.S[c].Contains(d)
	state.sMutex[c].RUnlock()
	return res
}

// AddConcept adds D to S(C).
func (state *LockedSolverState) AddConcept(c, d uint) bool {
	state.sMutex[c].Lock()
	res := state.S[c].Add(d)
	state.sMutex[c].Unlock()
	return res
}

// AddRole adds (C, D) to R(r).
func (state *LockedSolverState) AddRole(r, c, d uint) bool {
	state.rMutex[r].Lock()
	res := state.R[r].Add(c, d)
	state.rMutex[r].Unlock()
	return res
}

// Predecessors returns a copy of all C with (C, D) ∈ R(r).
func (state *LockedSolverState) Predecessors(r, d uint) []uint {
	state.rMutex[r].RLock()
	res := state.R[r].Predecessors(d)
	state.rMutex[r].RUnlock()
	return res
}

// Saturation is the completed saturation state of a normalized TBox.
// It must not be changed after the solver returned it.
type Saturation struct {
	tbox  *NormalizedTBox
	index *conceptIndex
	S     []*BCSet
	R     []*Relation
	Stats SolverStats
}

func newSaturation(tbox *NormalizedTBox, idx *conceptIndex, state *NCSolverState, stats SolverStats) *Saturation {
	return &Saturation{tbox: tbox, index: idx, S: state.S, R: state.R, Stats: stats}
}

// TBox returns the normalized TBox that was saturated.
func (sat *Saturation) TBox() *NormalizedTBox {
	return sat.tbox
}

// Contains reports whether D ∈ S(C). Both concepts must be atomic concepts
// of the normalized TBox, otherwise false is returned.
func (sat *Saturation) Contains(c, d Concept) bool {
	cID, hasC := sat.index.ID(c)
	dID, hasD := sat.index.ID(d)
	return hasC && hasD && sat.S[cID].Contains(dID)
}

// IsUnsatisfiable reports whether ⊥ ∈ S(C).
func (sat *Saturation) IsUnsatisfiable(c Concept) bool {
	return sat.Contains(c, Bottom)
}

// Subsumers returns S(C), including auxiliary names, ordered by
// CompareConcepts. The second result is false if c is not an atomic concept
// of the normalized TBox.
func (sat *Saturation) Subsumers(c Concept) ([]Concept, bool) {
	id, has := sat.index.ID(c)
	if !has {
		return nil, false
	}
	ids := sat.S[id].IDs()
	res := make([]Concept, len(ids))
	for i, d := range ids {
		res[i] = sat.index.Concept(d)
	}
	sortConcepts(res)
	return res, true
}

// Successors returns all D with (C, D) ∈ R(r).
func (sat *Saturation) Successors(r Role, c Concept) []Concept {
	rID, hasR := sat.index.RoleID(r)
	cID, hasC := sat.index.ID(c)
	if !hasR || !hasC {
		return nil
	}
	ids := sat.R[rID].Successors(cID)
	res := make([]Concept, len(ids))
	for i, d := range ids {
		res[i] = sat.index.Concept(d)
	}
	sortConcepts(res)
	return res
}

// initialUpdates calls add for the initial facts: S(⊥) = {⊥}, S(⊤) = {⊤} and
// S(C) = {C, ⊤} for all names C.
func initialUpdates(numBCD uint, add func(c, d uint) bool) {
	add(BottomID, BottomID)
	add(TopID, TopID)
	for c := TopID + 1; c < numBCD; c++ {
		add(c, c)
		add(c, TopID)
	}
}

// checkInterval is the number of updates processed between two checks of the
// context.
const checkInterval = 1024

func cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return &CancelledError{Cause: err}
	}
	return nil
}
