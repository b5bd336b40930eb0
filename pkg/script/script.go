// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Script is a proof script.  This declares some free variables and axioms,
// optionally derives further facts by explicit steps, and then lists goals
// which are to be discharged by proof search.  For example:
//
//	name: socrates
//	axioms:
//	  - "∀x. Man(x) → Mortal(x)"
//	  - "Man(socrates)"
//	goals:
//	  - "Mortal(socrates)"
type Script struct {
	// Name of this script, used when reporting.
	Name string `yaml:"name"`
	// Maximum search depth for goals which do not specify one.
	Depth uint `yaml:"depth"`
	// Ordering family used by transitivity and symmetry ("numeric" or
	// "subset").
	Order string `yaml:"order"`
	// Free variables which may be referred to by name.
	Variables []string `yaml:"variables"`
	// Facts which hold unconditionally.
	Axioms []Fact `yaml:"axioms"`
	// Explicit derivations, applied in order.
	Steps []Step `yaml:"steps"`
	// Goals to be discharged by search, in order.
	Goals []Goal `yaml:"goals"`
}

// Fact is a proposition with an optional name, by which later steps may refer
// to it.  A fact is written as either a plain string, or a mapping with "name"
// and "prop" keys.
type Fact struct {
	Name string `yaml:"name"`
	Prop string `yaml:"prop"`
}

// UnmarshalYAML implementation for the yaml.Unmarshaler interface.
func (p *Fact) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		p.Prop = value.Value
		return nil
	}
	//
	type plain Fact
	//
	return value.Decode((*plain)(p))
}

// Goal is a proposition which should (or should not) be derivable.  A goal is
// written as either a plain string, or a mapping with a "prove" key.
type Goal struct {
	Prove string `yaml:"prove"`
	// Optional override of the script's search depth.
	Depth uint `yaml:"depth"`
	// Set when the goal is expected not to be derivable.
	Refute bool `yaml:"refute"`
}

// UnmarshalYAML implementation for the yaml.Unmarshaler interface.
func (p *Goal) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		p.Prove = value.Value
		return nil
	}
	//
	type plain Goal
	//
	return value.Decode((*plain)(p))
}

// Step is an explicit derivation.  Exactly one of Let, Assume, Rule or Context
// must be given:
//
//   - "let" introduces a free variable within the enclosing context.
//   - "assume" introduces an assumption.
//   - "rule" applies a named tactic to the named premises.
//   - "context" opens an assumption context, runs the nested steps and then
//     closes it, producing the synthesised statement.
//
// The result of a step is bound to its name (if any).
type Step struct {
	Name     string   `yaml:"name"`
	Let      string   `yaml:"let"`
	Assume   string   `yaml:"assume"`
	Rule     string   `yaml:"rule"`
	Context  []Step   `yaml:"context"`
	Premises []string `yaml:"premises"`
	// Term argument, for rules which instantiate or generalise.
	Term string `yaml:"term"`
	// Name of the variable bound by thus_there_exists.
	Bind string `yaml:"bind"`
	// Relation derived by transitive.
	Relation string `yaml:"relation"`
	// The proposition this step is expected to derive.  Some rules require
	// this, because they derive a given statement.
	Proves string `yaml:"proves"`
	// Marks the result as a conclusion of the enclosing context.
	Conclude bool `yaml:"conclude"`
}

// Kind returns which of the alternative forms this step takes, or an error
// if it is not exactly one of them.
func (p *Step) Kind() (string, error) {
	var kinds []string
	//
	if p.Let != "" {
		kinds = append(kinds, "let")
	}
	//
	if p.Assume != "" {
		kinds = append(kinds, "assume")
	}
	//
	if p.Rule != "" {
		kinds = append(kinds, "rule")
	}
	//
	if len(p.Context) != 0 {
		kinds = append(kinds, "context")
	}
	//
	if len(kinds) != 1 {
		return "", fmt.Errorf("step %s must have exactly one of let, assume, rule or context (found %s)",
			p.label(), strings.Join(kinds, ", "))
	}
	//
	return kinds[0], nil
}

func (p *Step) label() string {
	if p.Name != "" {
		return fmt.Sprintf("\"%s\"", p.Name)
	}
	//
	return "(unnamed)"
}

// Parse a proof script from its YAML encoding.  Unknown keys are reported as
// errors.
func Parse(contents []byte) (*Script, error) {
	var (
		script  Script
		decoder = yaml.NewDecoder(bytes.NewReader(contents))
	)
	//
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(&script); err != nil {
		return nil, err
	} else if err := script.validate(); err != nil {
		return nil, err
	}
	//
	return &script, nil
}

// ReadFile reads and parses a proof script from a given file.  A script
// without a name is named after its file.
func ReadFile(filename string) (*Script, error) {
	contents, err := os.ReadFile(filename)
	//
	if err != nil {
		return nil, err
	}
	//
	script, err := Parse(contents)
	//
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	} else if script.Name == "" {
		script.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	//
	return script, nil
}

func (p *Script) validate() error {
	var errs []error
	//
	for i, g := range p.Goals {
		if strings.TrimSpace(g.Prove) == "" {
			errs = append(errs, fmt.Errorf("goal %d is empty", i+1))
		}
	}
	//
	errs = append(errs, validateSteps(p.Steps, false)...)
	//
	return errors.Join(errs...)
}

func validateSteps(steps []Step, nested bool) []error {
	var errs []error
	//
	for _, s := range steps {
		kind, err := s.Kind()
		//
		switch {
		case err != nil:
			errs = append(errs, err)
		case kind == "let" && !nested:
			errs = append(errs, fmt.Errorf("step %s introduces a variable outside of a context", s.label()))
		case s.Conclude && !nested:
			errs = append(errs, fmt.Errorf("step %s concludes outside of a context", s.label()))
		case kind == "context":
			errs = append(errs, validateSteps(s.Context, true)...)
		}
	}
	//
	return errs
}
