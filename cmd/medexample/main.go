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

// Command medexample classifies a small medical ontology about endocarditis.
package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/FabianWe/goel/v2"
	"go.uber.org/zap"
)

func medicalOntology() *goel.Ontology {
	endocardium := goel.NewNamedConcept("Endocardium")
	tissue := goel.NewNamedConcept("Tissue")
	heartWall := goel.NewNamedConcept("HeartWall")
	heartValve := goel.NewNamedConcept("HeartValve")
	bodyWall := goel.NewNamedConcept("BodyWall")
	heart := goel.NewNamedConcept("Heart")
	bodyValve := goel.NewNamedConcept("BodyValve")
	endocarditis := goel.NewNamedConcept("Endocarditis")
	inflammation := goel.NewNamedConcept("Inflammation")
	disease := goel.NewNamedConcept("Disease")
	heartDisease := goel.NewNamedConcept("HeartDisease")
	criticalDisease := goel.NewNamedConcept("CriticalDisease")

	actsOn := goel.NewRole("actsOn")
	partOf := goel.NewRole("partOf")
	contIn := goel.NewRole("contIn")
	hasLoc := goel.NewRole("hasLoc")

	return goel.NewOntology(goel.NewTBox(
		goel.NewGCIConstraint(endocardium, goel.NewMultiConjunction(tissue,
			goel.NewExistentialConcept(contIn, heartWall),
			goel.NewExistentialConcept(contIn, heartValve))),
		goel.NewGCIConstraint(heartWall, goel.NewMultiConjunction(bodyWall,
			goel.NewExistentialConcept(partOf, heart))),
		goel.NewGCIConstraint(heartValve, goel.NewMultiConjunction(bodyValve,
			goel.NewExistentialConcept(partOf, heart))),
		goel.NewGCIConstraint(endocarditis, goel.NewMultiConjunction(inflammation,
			goel.NewExistentialConcept(hasLoc, endocardium))),
		goel.NewGCIConstraint(inflammation, goel.NewMultiConjunction(disease,
			goel.NewExistentialConcept(actsOn, tissue))),
		goel.NewGCIConstraint(goel.NewMultiConjunction(heartDisease,
			goel.NewExistentialConcept(hasLoc, heartValve)), criticalDisease),
		goel.NewEquivalence(heartDisease, goel.NewMultiConjunction(disease,
			goel.NewExistentialConcept(hasLoc, heart))),
		// without role inclusions the location has to be spelled out
		goel.NewGCIConstraint(goel.NewExistentialConcept(hasLoc, endocardium),
			goel.NewExistentialConcept(hasLoc, heart)),
	))
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := goel.DefaultConfig()
	cfg.Solver = goel.SolverConcurrent
	ctx := context.Background()
	r, err := goel.NewReasoner(ctx, medicalOntology(), goel.WithConfig(cfg), goel.WithLogger(logger))
	if err != nil {
		logger.Fatal("classification failed", zap.Error(err))
	}
	for _, name := range r.Ontology().ConceptNames() {
		subsumers, err := r.Subsumers(ctx, name)
		if err != nil {
			logger.Fatal("query failed", zap.Error(err))
		}
		fmt.Printf("%v ⊑ {%s}\n", name, join(subsumers))
	}
	h, err := r.Classify(ctx)
	if err != nil {
		logger.Fatal("building hierarchy failed", zap.Error(err))
	}
	fmt.Println()
	for _, n := range h.Nodes() {
		if children := n.Children(); len(children) > 0 {
			fmt.Printf("%v ⊒ %v\n", n, children)
		}
	}
}

func join(concepts []goel.Concept) string {
	strs := make([]string, len(concepts))
	for i, c := range concepts {
		strs[i] = c.String()
	}
	return strings.Join(strs, ", ")
}
