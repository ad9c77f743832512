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
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Reasoner answers subsumption queries for an ontology. The ontology is
// normalized and saturated once by NewReasoner, all queries work on that
// saturation. A Reasoner is safe for concurrent use.
type Reasoner struct {
	ontology   *Ontology
	normalizer *Normalizer
	tbox       *NormalizedTBox
	sat        *Saturation
	opts       *options
	// cache holds the results of compound queries that required a scratch
	// saturation, nil if disabled
	cache *lru.Cache[Concept, []Concept]

	mutex     sync.Mutex
	hierarchy *Hierarchy
}

// NewReasoner normalizes and saturates the ontology.
// It fails with an *InvalidAxiomError for malformed axioms and with a
// *CancelledError if ctx is done or the configured timeout expires.
func NewReasoner(ctx context.Context, o *Ontology, opts ...Option) (*Reasoner, error) {
	options := newOptions(opts)
	if err := options.cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Reasoner{
		ontology:   o,
		normalizer: NewNormalizer(options.logger),
		opts:       options,
	}
	if options.cfg.QueryCacheSize > 0 {
		cache, err := lru.New[Concept, []Concept](options.cfg.QueryCacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating query cache: %w", err)
		}
		r.cache = cache
	}
	ctx, span := options.tracer.Start(ctx, "goel.NewReasoner",
		trace.WithAttributes(
			attribute.Int("axioms", o.TBox().Len()),
			attribute.String("solver", options.solver.Name()),
		),
	)
	defer span.End()

	start := time.Now()
	tbox, err := r.normalizer.Normalize(o)
	options.metrics.ObservePhase(PhaseNormalize, start)
	if err != nil {
		options.metrics.RecordClassification(options.solver.Name(), "error")
		recordSpanError(span, err)
		return nil, fmt.Errorf("normalizing ontology: %w", err)
	}
	span.SetAttributes(attribute.Int("normalized_axioms", tbox.Len()))
	r.tbox = tbox
	sat, err := r.saturate(ctx, tbox)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	r.sat = sat
	options.logger.Info("ontology saturated",
		zap.Int("names", len(o.ConceptNames())),
		zap.Int("normalized_axioms", tbox.Len()),
		zap.Uint("auxiliary", tbox.NumAuxiliary()),
		zap.String("solver", options.solver.Name()),
		zap.Duration("took", time.Since(start)))
	return r, nil
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// saturate runs the solver on tbox, bounded by the configured timeout.
func (r *Reasoner) saturate(ctx context.Context, tbox *NormalizedTBox) (*Saturation, error) {
	if r.opts.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.cfg.Timeout)
		defer cancel()
	}
	solverName := r.opts.solver.Name()
	start := time.Now()
	sat, err := r.opts.solver.Solve(ctx, tbox)
	r.opts.metrics.ObservePhase(PhaseSaturate, start)
	switch {
	case errors.Is(err, ErrCancelled):
		r.opts.metrics.RecordClassification(solverName, "cancelled")
		r.opts.logger.Warn("saturation cancelled", zap.String("solver", solverName), zap.Error(err))
		return nil, err
	case err != nil:
		r.opts.metrics.RecordClassification(solverName, "error")
		return nil, fmt.Errorf("saturating with %s solver: %w", solverName, err)
	}
	r.opts.metrics.RecordClassification(solverName, "ok")
	r.opts.metrics.RecordStats(sat.Stats)
	r.opts.logger.Debug("saturation finished",
		zap.String("solver", solverName),
		zap.Uint64("s_updates", sat.Stats.SUpdates),
		zap.Uint64("r_updates", sat.Stats.RUpdates),
		zap.Duration("took", time.Since(start)))
	return sat, nil
}

// Ontology returns the ontology the reasoner was created for.
func (r *Reasoner) Ontology() *Ontology {
	return r.ontology
}

// NormalizedTBox returns the normal form of the ontology.
func (r *Reasoner) NormalizedTBox() *NormalizedTBox {
	return r.tbox
}

// Saturation returns the saturation of the normalized TBox.
func (r *Reasoner) Saturation() *Saturation {
	return r.sat
}

// everything returns ⊤, ⊥ and all concept names of the ontology.
func (r *Reasoner) everything() []Concept {
	return append([]Concept{Top, Bottom}, r.ontology.ConceptNames()...)
}

// visible returns S(c) restricted to ⊤ and the names of the ontology. For
// unsatisfiable concepts this is everything.
func (r *Reasoner) visible(sat *Saturation, c Concept) []Concept {
	if sat.IsUnsatisfiable(c) {
		return r.everything()
	}
	all, _ := sat.Subsumers(c)
	res := make([]Concept, 0, len(all))
	for _, d := range all {
		if d.Kind() == TopKind || r.ontology.ContainsName(d) {
			res = append(res, d)
		}
	}
	return res
}

func invalidQuery(c Concept) error {
	if reason := validateConcept(c); reason != "" {
		return &InvalidAxiomError{Index: -1, Axiom: NewGCIConstraint(c, Top), Reason: reason}
	}
	return nil
}

// checkQuery validates c and makes sure that a concept name occurs in the
// ontology.
func (r *Reasoner) checkQuery(c Concept) error {
	if err := invalidQuery(c); err != nil {
		return err
	}
	if c.Kind() == NameKind && !r.ontology.ContainsName(c) {
		return &UnknownConceptError{Name: c.Name()}
	}
	return nil
}

// Subsumers returns all concept names of the ontology that subsume c,
// including c itself if it is a name, and ⊤. The result is ordered by
// CompareConcepts. If c is unsatisfiable the result contains ⊤, ⊥ and all
// names.
//
// For a compound concept that was not replaced by an auxiliary name during
// normalization the concept is normalized into a scratch copy of the TBox
// which is then saturated, the reasoner itself is not changed.
func (r *Reasoner) Subsumers(ctx context.Context, c Concept) ([]Concept, error) {
	if err := r.checkQuery(c); err != nil {
		return nil, err
	}
	if c.IsAtomic() {
		return r.visible(r.sat, c), nil
	}
	if r.cache != nil {
		if res, has := r.cache.Get(c); has {
			r.opts.metrics.RecordCacheLookup(true)
			return slices.Clone(res), nil
		}
	}
	box, atom, err := r.normalizer.NormalizeConcept(r.tbox, c)
	if err != nil {
		return nil, err
	}
	if box == r.tbox {
		return r.visible(r.sat, atom), nil
	}
	r.opts.metrics.RecordCacheLookup(false)
	ctx, span := r.opts.tracer.Start(ctx, "goel.Reasoner.Subsumers",
		trace.WithAttributes(attribute.String("concept", c.String())))
	defer span.End()
	start := time.Now()
	defer r.opts.metrics.ObservePhase(PhaseQuery, start)
	sat, err := r.saturate(ctx, box)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	res := r.visible(sat, atom)
	if r.cache != nil {
		r.cache.Add(c, slices.Clone(res))
	}
	return res, nil
}

// SubsumersOf returns the subsumers of the concept name with the given id.
func (r *Reasoner) SubsumersOf(name string) ([]Concept, error) {
	c, has := r.ontology.LookupName(name)
	if !has {
		return nil, &UnknownConceptError{Name: name}
	}
	return r.visible(r.sat, c), nil
}

// IsSubsumedBy reports whether c ⊑ d. Both may be compound concepts.
func (r *Reasoner) IsSubsumedBy(ctx context.Context, c, d Concept) (bool, error) {
	if err := r.checkQuery(c); err != nil {
		return false, err
	}
	if err := r.checkQuery(d); err != nil {
		return false, err
	}
	if d.IsAtomic() {
		subsumers, err := r.Subsumers(ctx, c)
		if err != nil {
			return false, err
		}
		return slices.Contains(subsumers, d), nil
	}
	box, cAtom, err := r.normalizer.NormalizeConcept(r.tbox, c)
	if err != nil {
		return false, err
	}
	box, dAtom, err := r.normalizer.NormalizeConcept(box, d)
	if err != nil {
		return false, err
	}
	sat := r.sat
	if box != r.tbox {
		start := time.Now()
		sat, err = r.saturate(ctx, box)
		r.opts.metrics.ObservePhase(PhaseQuery, start)
		if err != nil {
			return false, err
		}
	}
	return sat.Contains(cAtom, dAtom) || sat.IsUnsatisfiable(cAtom), nil
}

// reasonerOracle restricts a saturation to the names of the ontology.
type reasonerOracle struct {
	r   *Reasoner
	sat *Saturation
}

func (o reasonerOracle) subsumersOf(c Concept) []Concept {
	return o.r.visible(o.sat, c)
}

func (o reasonerOracle) subsumes(c, d Concept) bool {
	return o.sat.Contains(c, d)
}

// Classify computes the subsumption hierarchy over all concept names of the
// ontology. The hierarchy is computed once and shared by all calls.
func (r *Reasoner) Classify(ctx context.Context) (*Hierarchy, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.hierarchy != nil {
		return r.hierarchy, nil
	}
	_, span := r.opts.tracer.Start(ctx, "goel.Reasoner.Classify")
	defer span.End()
	start := time.Now()
	r.hierarchy = buildHierarchy(r.ontology.ConceptNames(), reasonerOracle{r: r, sat: r.sat})
	r.opts.metrics.ObservePhase(PhaseHierarchy, start)
	span.SetAttributes(attribute.Int("nodes", r.hierarchy.Len()))
	r.opts.logger.Debug("hierarchy built",
		zap.Int("nodes", r.hierarchy.Len()),
		zap.Duration("took", time.Since(start)))
	return r.hierarchy, nil
}

// Classify normalizes, saturates and classifies the ontology in one go.
func Classify(ctx context.Context, o *Ontology, opts ...Option) (*Hierarchy, error) {
	r, err := NewReasoner(ctx, o, opts...)
	if err != nil {
		return nil, err
	}
	return r.Classify(ctx)
}
