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
	"fmt"
)

var (
	// ErrInvalidAxiom is matched by all errors for malformed axioms.
	ErrInvalidAxiom = errors.New("invalid axiom")
	// ErrUnknownConcept is matched by queries for names not in the ontology.
	ErrUnknownConcept = errors.New("unknown concept")
	// ErrCancelled is matched when a classification was stopped by its context.
	ErrCancelled = errors.New("classification cancelled")
)

// InvalidAxiomError is returned by the Normalizer for an axiom it rejects.
// The axiom is never partially added to the normalized TBox.
type InvalidAxiomError struct {
	// Index is the position of the axiom in its TBox, -1 if unknown.
	Index  int
	Axiom  Axiom
	Reason string
}

func (err *InvalidAxiomError) Error() string {
	if err.Index < 0 {
		return fmt.Sprintf("invalid axiom %v: %s", err.Axiom, err.Reason)
	}
	return fmt.Sprintf("invalid axiom %d (%v): %s", err.Index, err.Axiom, err.Reason)
}

func (err *InvalidAxiomError) Is(target error) bool {
	return target == ErrInvalidAxiom
}

// UnknownConceptError is returned when a query references a concept name that
// doesn't occur in the ontology.
type UnknownConceptError struct {
	Name string
}

func (err *UnknownConceptError) Error() string {
	return fmt.Sprintf("unknown concept %q", err.Name)
}

func (err *UnknownConceptError) Is(target error) bool {
	return target == ErrUnknownConcept
}

// CancelledError is returned when a context is done before the saturation
// reached its fixed point. No partial result is returned with it.
type CancelledError struct {
	Cause error
}

func (err *CancelledError) Error() string {
	return fmt.Sprintf("classification cancelled: %v", err.Cause)
}

func (err *CancelledError) Is(target error) bool {
	return target == ErrCancelled
}

func (err *CancelledError) Unwrap() error {
	return err.Cause
}
