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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/FabianWe/goel/v2"
	"gopkg.in/yaml.v3"
)

// An ontology file lists axioms, each either a GCI or an equivalence:
//
//	axioms:
//	  - sub: Endocarditis
//	    sup: {and: [Inflammation, {some: {role: hasLoc, filler: Endocardium}}]}
//	  - equiv: [HeartDisease, {and: [Disease, {some: {role: hasLoc, filler: Heart}}]}]
//
// A concept is a name, "Top", "Bottom", a mapping {and: [...]} or a mapping
// {some: {role: r, filler: C}}.
type ontologyFile struct {
	Axioms []axiomNode `yaml:"axioms"`
}

type axiomNode struct {
	Sub   *conceptNode  `yaml:"sub"`
	Sup   *conceptNode  `yaml:"sup"`
	Equiv []conceptNode `yaml:"equiv"`
}

type conceptNode struct {
	goel.Concept
}

type existentialNode struct {
	Role   string      `yaml:"role"`
	Filler conceptNode `yaml:"filler"`
}

func (c *conceptNode) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		switch value.Value {
		case "Top", "⊤":
			c.Concept = goel.Top
		case "Bottom", "⊥":
			c.Concept = goel.Bottom
		default:
			c.Concept = goel.NewNamedConcept(value.Value)
		}
		return nil
	case yaml.MappingNode:
		var m struct {
			And  []conceptNode    `yaml:"and"`
			Some *existentialNode `yaml:"some"`
		}
		if err := value.Decode(&m); err != nil {
			return err
		}
		switch {
		case m.Some != nil && m.And != nil:
			return fmt.Errorf("line %d: concept has both and and some", value.Line)
		case m.Some != nil:
			c.Concept = goel.NewExistentialConcept(goel.NewRole(m.Some.Role), m.Some.Filler.Concept)
		default:
			ops := make([]goel.Concept, len(m.And))
			for i, op := range m.And {
				ops[i] = op.Concept
			}
			c.Concept = goel.NewMultiConjunction(ops...)
		}
		return nil
	default:
		return fmt.Errorf("line %d: expected a concept name or mapping", value.Line)
	}
}

func (ax axiomNode) axiom(i int) (goel.Axiom, error) {
	switch {
	case ax.Sub != nil && ax.Sup != nil && ax.Equiv == nil:
		return goel.NewGCIConstraint(ax.Sub.Concept, ax.Sup.Concept), nil
	case ax.Sub == nil && ax.Sup == nil && ax.Equiv != nil:
		concepts := make([]goel.Concept, len(ax.Equiv))
		for j, c := range ax.Equiv {
			concepts[j] = c.Concept
		}
		return goel.NewEquivalence(concepts...), nil
	default:
		return goel.Axiom{}, fmt.Errorf("axiom %d: need either sub and sup or equiv", i)
	}
}

func parseOntology(r io.Reader) (*goel.Ontology, error) {
	var f ontologyFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding ontology: %w", err)
	}
	axioms := make([]goel.Axiom, 0, len(f.Axioms))
	for i, node := range f.Axioms {
		ax, err := node.axiom(i)
		if err != nil {
			return nil, err
		}
		axioms = append(axioms, ax)
	}
	return goel.NewOntology(goel.NewTBox(axioms...)), nil
}

func readOntology(path string) (*goel.Ontology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	o, err := parseOntology(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}
