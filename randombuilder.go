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
	"math/rand"
)

// RandomELBuilder generates random EL ontologies, mostly for tests and
// benchmarks. The same seed yields the same ontology.
type RandomELBuilder struct {
	NumConceptNames uint
	NumRoles        uint
	// MaxConjuncts is the maximal number of operands of a conjunction, values
	// below 2 mean 2.
	MaxConjuncts uint
	// BottomProbability is the probability that ⊥ is used as an operand.
	BottomProbability float64

	rnd *rand.Rand
}

// NewRandomELBuilder returns a builder with the given seed.
func NewRandomELBuilder(seed int64, numConceptNames, numRoles uint) *RandomELBuilder {
	return &RandomELBuilder{
		NumConceptNames: numConceptNames,
		NumRoles:        numRoles,
		MaxConjuncts:    2,
		rnd:             rand.New(rand.NewSource(seed)),
	}
}

func (builder *RandomELBuilder) pick(concepts []Concept) Concept {
	if builder.BottomProbability > 0 && builder.rnd.Float64() < builder.BottomProbability {
		return Bottom
	}
	return concepts[builder.rnd.Intn(len(concepts))]
}

// GenerateRandomTBox creates numConjunctions conjunctions and
// numExistentialRestrictions existential restrictions over the concept names
// and ⊤, and numGCI GCIs and numEquivalences equivalences between random
// concepts. It returns all concepts it created and the TBox.
func (builder *RandomELBuilder) GenerateRandomTBox(numConjunctions, numExistentialRestrictions,
	numGCI, numEquivalences uint) ([]Concept, *TBox) {
	concepts := make([]Concept, 0, 1+builder.NumConceptNames+numConjunctions+numExistentialRestrictions)
	concepts = append(concepts, Top)
	var i uint
	for ; i < builder.NumConceptNames; i++ {
		concepts = append(concepts, NewNamedConcept(fmt.Sprintf("A%d", i)))
	}
	roles := make([]Role, builder.NumRoles)
	for j := range roles {
		roles[j] = NewRole(fmt.Sprintf("r%d", j))
	}
	maxConjuncts := max(builder.MaxConjuncts, 2)
	// we create conjunctions and existential restrictions in one loop, s.t.
	// they get mixed up a bit
	var currentConjunctions, currentExistentials uint
	for currentConjunctions < numConjunctions || currentExistentials < numExistentialRestrictions {
		isNextConjunction := builder.rnd.Intn(2) == 0
		if isNextConjunction && currentConjunctions >= numConjunctions {
			isNextConjunction = false
		} else if !isNextConjunction && (currentExistentials >= numExistentialRestrictions || len(roles) == 0) {
			isNextConjunction = true
		}
		if isNextConjunction {
			n := 2 + builder.rnd.Intn(int(maxConjuncts)-1)
			ops := make([]Concept, n)
			for j := range ops {
				ops[j] = builder.pick(concepts)
			}
			concepts = append(concepts, NewMultiConjunction(ops...))
			currentConjunctions++
		} else {
			r := roles[builder.rnd.Intn(len(roles))]
			concepts = append(concepts, NewExistentialConcept(r, builder.pick(concepts)))
			currentExistentials++
		}
		if len(roles) == 0 && currentConjunctions >= numConjunctions {
			break
		}
	}
	axioms := make([]Axiom, 0, numGCI+numEquivalences)
	for i = 0; i < numGCI; i++ {
		axioms = append(axioms, NewGCIConstraint(builder.pick(concepts), builder.pick(concepts)))
	}
	for i = 0; i < numEquivalences; i++ {
		axioms = append(axioms, NewEquivalence(builder.pick(concepts), builder.pick(concepts)))
	}
	return concepts, NewTBox(axioms...)
}

// GenerateRandomOntology is GenerateRandomTBox wrapped in an Ontology.
func (builder *RandomELBuilder) GenerateRandomOntology(numConjunctions, numExistentialRestrictions,
	numGCI, numEquivalences uint) *Ontology {
	_, tbox := builder.GenerateRandomTBox(numConjunctions, numExistentialRestrictions, numGCI, numEquivalences)
	return NewOntology(tbox)
}
