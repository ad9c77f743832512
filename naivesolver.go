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

	"go.uber.org/zap"
)

// Functions that check if a rule is applicable, all ids are normalized ids.

func CheckCR1(c1 uint, sc *BCSet) bool {
	return sc.Contains(c1)
}

func CheckCR2(c1, c2 uint, sc *BCSet) bool {
	return sc.Contains(c1) && sc.Contains(c2)
}

func CheckCR3(c1 uint, sc *BCSet) bool {
	return sc.Contains(c1)
}

func CheckCR4(dPrime, c, d uint, sd *BCSet, sr *Relation) bool {
	return sr.Contains(c, d) && sd.Contains(dPrime)
}

func CheckCR5(c, d uint, sd *BCSet, sr *Relation) bool {
	return sd.Contains(BottomID) && sr.Contains(c, d)
}

// idCI is a NormalizedCI translated to normalized ids, c2 == 0 (⊥) means
// there is no second conjunct.
type idCI struct {
	c1, c2, d uint
	binary    bool
}

type idExCI struct {
	r, c, d uint
}

// NaiveSolver applies all rules to all concepts until nothing changes.
// It is slow but simple and serves as reference for the other solvers.
type NaiveSolver struct {
	logger *zap.Logger
}

// NewNaiveSolver returns a new naive solver, logger may be nil.
func NewNaiveSolver(logger *zap.Logger) *NaiveSolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NaiveSolver{logger: logger}
}

func (solver *NaiveSolver) Name() string {
	return "naive"
}

// Solve saturates tbox. The context is checked once per pass.
func (solver *NaiveSolver) Solve(ctx context.Context, tbox *NormalizedTBox) (*Saturation, error) {
	idx := newConceptIndex(tbox)
	numBCD := idx.NumBCD()
	state := NewNCSolverState(numBCD, idx.NumRoles())
	var stats SolverStats
	initialUpdates(numBCD, func(c, d uint) bool {
		if state.AddConcept(c, d) {
			stats.SUpdates++
			return true
		}
		return false
	})
	cis := make([]idCI, len(tbox.CIs))
	for i, ci := range tbox.CIs {
		cis[i] = idCI{c1: idx.mustID(ci.C1), d: idx.mustID(ci.D), binary: ci.IsBinary()}
		if ci.IsBinary() {
			cis[i].c2 = idx.mustID(ci.C2)
		}
	}
	right := make([]idExCI, len(tbox.CIRight))
	for i, ex := range tbox.CIRight {
		r, _ := idx.RoleID(ex.R)
		right[i] = idExCI{r: r, c: idx.mustID(ex.C1), d: idx.mustID(ex.C2)}
	}
	left := make([]idExCI, len(tbox.CILeft))
	for i, ex := range tbox.CILeft {
		r, _ := idx.RoleID(ex.R)
		left[i] = idExCI{r: r, c: idx.mustID(ex.C1), d: idx.mustID(ex.D)}
	}
	addS := func(rule Rule, sc *BCSet, d uint) bool {
		if sc.Add(d) {
			stats.SUpdates++
			stats.Applications[rule]++
			return true
		}
		return false
	}
	changed := true
	for changed {
		if err := cancelled(ctx); err != nil {
			return nil, err
		}
		stats.Rounds++
		changed = false
		// first try to apply rules CR1 and CR2, for each gci there is only one
		// rule we can apply here
		for _, gci := range cis {
			for _, sc := range state.S {
				if gci.binary {
					if CheckCR2(gci.c1, gci.c2, sc) && addS(CR2, sc, gci.d) {
						changed = true
					}
				} else if CheckCR1(gci.c1, sc) && addS(CR1, sc, gci.d) {
					changed = true
				}
			}
		}
		// now try rule CR3
		for _, gci := range right {
			for c, sc := range state.S {
				if CheckCR3(gci.c, sc) && state.AddRole(gci.r, uint(c), gci.d) {
					stats.RUpdates++
					stats.Applications[CR3]++
					changed = true
				}
			}
		}
		// now try rule CR4, instead of CheckCR4 for each C, D we iterate each
		// pair (C, D) in R(r) and only check if D' is in S(D)
		for _, gci := range left {
			state.R[gci.r].Each(func(c, d uint) bool {
				if state.S[d].Contains(gci.c) && addS(CR4, state.S[c], gci.d) {
					changed = true
				}
				return true
			})
		}
		// now try rule CR5
		for _, sr := range state.R {
			sr.Each(func(c, d uint) bool {
				if CheckCR5(c, d, state.S[d], sr) && addS(CR5, state.S[c], BottomID) {
					changed = true
				}
				return true
			})
		}
	}
	solver.logger.Debug("naive saturation done", zap.Uint("rounds", stats.Rounds))
	return newSaturation(tbox, idx, state, stats), nil
}
