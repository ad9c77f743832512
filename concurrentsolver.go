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
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultBulkSize is the number of pending updates a single BulkWorker
// processes in one round.
const DefaultBulkSize = 256

// BulkWorker applies the rules for a bulk of updates. New facts are written
// to the shared state immediately and collected in ComputedS and ComputedR,
// they're processed in the next round.
type BulkWorker struct {
	*LockedSolverState
	rules *RuleMap

	ComputedS []sUpdate
	ComputedR []rUpdate
	stats     SolverStats
}

func newBulkWorker(state *LockedSolverState, rules *RuleMap) *BulkWorker {
	return &BulkWorker{LockedSolverState: state, rules: rules}
}

func (worker *BulkWorker) AddConcept(c, d uint) bool {
	res := worker.LockedSolverState.AddConcept(c, d)
	if res {
		worker.stats.SUpdates++
		worker.ComputedS = append(worker.ComputedS, sUpdate{c: c, d: d})
	}
	return res
}

func (worker *BulkWorker) AddRole(r, c, d uint) bool {
	res := worker.LockedSolverState.AddRole(r, c, d)
	if res {
		worker.stats.RUpdates++
		worker.ComputedR = append(worker.ComputedR, rUpdate{r: r, c: c, d: d})
	}
	return res
}

// Run applies all notifications waiting for the given updates.
func (worker *BulkWorker) Run(ctx context.Context, sUpdates []sUpdate, rUpdates []rUpdate) error {
	for i, update := range sUpdates {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for _, notification := range worker.rules.SRules[update.d] {
			if notification.GetSNotification(worker, update.c, update.d) {
				worker.stats.Applications[notification.Rule()]++
			}
		}
	}
	for i, update := range rUpdates {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for _, notification := range worker.rules.RRules[update.r] {
			if notification.GetRNotification(worker, update.r, update.c, update.d) {
				worker.stats.Applications[notification.Rule()]++
			}
		}
	}
	return nil
}

// ConcurrentSolver saturates in rounds. All pending updates of a round are
// split into bulks that are processed concurrently by at most Workers
// goroutines, the facts they derive are the pending updates of the next
// round. The solver terminates once a round derives nothing new.
type ConcurrentSolver struct {
	// Workers is the number of concurrent workers, a value <= 0 means
	// GOMAXPROCS.
	Workers int
	// BulkSize is the maximal number of updates per worker and round, a value
	// <= 0 means DefaultBulkSize.
	BulkSize int

	logger *zap.Logger
}

// NewConcurrentSolver returns a new concurrent solver, logger may be nil.
func NewConcurrentSolver(workers int, logger *zap.Logger) *ConcurrentSolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConcurrentSolver{Workers: workers, BulkSize: DefaultBulkSize, logger: logger}
}

func (solver *ConcurrentSolver) Name() string {
	return "concurrent"
}

func (solver *ConcurrentSolver) workers() int {
	if solver.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return solver.Workers
}

func (solver *ConcurrentSolver) bulkSize() int {
	if solver.BulkSize <= 0 {
		return DefaultBulkSize
	}
	return solver.BulkSize
}

// Solve saturates tbox.
func (solver *ConcurrentSolver) Solve(ctx context.Context, tbox *NormalizedTBox) (*Saturation, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	idx := newConceptIndex(tbox)
	state := NewLockedSolverState(idx.NumBCD(), idx.NumRoles())
	rules := NewRuleMap(tbox, idx)
	// the initial facts are computed by a worker that never runs
	initial := newBulkWorker(state, rules)
	initialUpdates(idx.NumBCD(), initial.AddConcept)
	var stats SolverStats
	stats.merge(&initial.stats)
	pendingS, pendingR := initial.ComputedS, initial.ComputedR
	workers, bulkSize := solver.workers(), solver.bulkSize()
	for len(pendingS)+len(pendingR) > 0 {
		stats.Rounds++
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		var bulks []*BulkWorker
		for len(pendingS) > 0 || len(pendingR) > 0 {
			n := min(len(pendingS), bulkSize)
			m := min(len(pendingR), bulkSize-n)
			sUpdates, rUpdates := pendingS[:n], pendingR[:m]
			pendingS, pendingR = pendingS[n:], pendingR[m:]
			worker := newBulkWorker(state, rules)
			bulks = append(bulks, worker)
			g.Go(func() error {
				return worker.Run(gCtx, sUpdates, rUpdates)
			})
		}
		if err := g.Wait(); err != nil {
			solver.logger.Debug("concurrent saturation cancelled", zap.Uint("rounds", stats.Rounds))
			return nil, &CancelledError{Cause: err}
		}
		// ctx may be done while all workers finished their bulks
		if err := cancelled(ctx); err != nil {
			return nil, err
		}
		for _, worker := range bulks {
			pendingS = append(pendingS, worker.ComputedS...)
			pendingR = append(pendingR, worker.ComputedR...)
			stats.merge(&worker.stats)
		}
	}
	solver.logger.Debug("concurrent saturation done",
		zap.Uint("rounds", stats.Rounds),
		zap.Int("workers", workers),
		zap.Uint64("s_updates", stats.SUpdates),
		zap.Uint64("r_updates", stats.RUpdates))
	return newSaturation(tbox, idx, state.NCSolverState, stats), nil
}
