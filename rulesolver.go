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

type sUpdate struct {
	c, d uint
}

type rUpdate struct {
	r, c, d uint
}

// RuleSolver is the sequential solver. New facts are pushed on stacks of
// pending updates and each update triggers exactly the rules indexed for it.
type RuleSolver struct {
	logger *zap.Logger
}

// NewRuleSolver returns a new sequential solver, logger may be nil.
func NewRuleSolver(logger *zap.Logger) *RuleSolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuleSolver{logger: logger}
}

func (solver *RuleSolver) Name() string {
	return "rule"
}

// ruleSolverRun is the state of a single Solve call.
type ruleSolverRun struct {
	*NCSolverState
	rules *RuleMap

	pendingSUpdates []sUpdate
	pendingRUpdates []rUpdate
	stats           SolverStats
}

func (run *ruleSolverRun) AddConcept(c, d uint) bool {
	res := run.NCSolverState.AddConcept(c, d)
	if res {
		run.stats.SUpdates++
		run.pendingSUpdates = append(run.pendingSUpdates, sUpdate{c: c, d: d})
	}
	return res
}

func (run *ruleSolverRun) AddRole(r, c, d uint) bool {
	res := run.NCSolverState.AddRole(r, c, d)
	if res {
		run.stats.RUpdates++
		run.pendingRUpdates = append(run.pendingRUpdates, rUpdate{r: r, c: c, d: d})
	}
	return res
}

// Solve saturates tbox.
func (solver *RuleSolver) Solve(ctx context.Context, tbox *NormalizedTBox) (*Saturation, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	idx := newConceptIndex(tbox)
	run := &ruleSolverRun{
		NCSolverState:   NewNCSolverState(idx.NumBCD(), idx.NumRoles()),
		rules:           NewRuleMap(tbox, idx),
		pendingSUpdates: make([]sUpdate, 0, 2*idx.NumBCD()),
		pendingRUpdates: make([]rUpdate, 0, 10),
	}
	initialUpdates(idx.NumBCD(), run.AddConcept)
	steps := 0
	// while there are still pending updates apply those updates
L:
	for {
		steps++
		if steps%checkInterval == 0 {
			if err := cancelled(ctx); err != nil {
				solver.logger.Debug("saturation cancelled", zap.Int("steps", steps))
				return nil, err
			}
		}
		switch {
		case len(run.pendingSUpdates) != 0:
			n := len(run.pendingSUpdates)
			next := run.pendingSUpdates[n-1]
			run.pendingSUpdates = run.pendingSUpdates[:n-1]
			for _, notification := range run.rules.SRules[next.d] {
				if notification.GetSNotification(run, next.c, next.d) {
					run.stats.Applications[notification.Rule()]++
				}
			}
		case len(run.pendingRUpdates) != 0:
			n := len(run.pendingRUpdates)
			next := run.pendingRUpdates[n-1]
			run.pendingRUpdates = run.pendingRUpdates[:n-1]
			for _, notification := range run.rules.RRules[next.r] {
				if notification.GetRNotification(run, next.r, next.c, next.d) {
					run.stats.Applications[notification.Rule()]++
				}
			}
		default:
			break L
		}
	}
	solver.logger.Debug("saturation done",
		zap.Int("steps", steps),
		zap.Uint64("s_updates", run.stats.SUpdates),
		zap.Uint64("r_updates", run.stats.RUpdates))
	return newSaturation(tbox, idx, run.NCSolverState, run.stats), nil
}
