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
package kernel

import (
	"strings"
)

// notation determines the symbols used when rendering propositions.
type notation struct {
	not, and, or, exor, implies, iff, forall, exists, in, bottom, dot string
	relations                                                        map[string]string
}

var plain = notation{
	not: "¬", and: " ∧ ", or: " ∨ ", exor: " ⊕ ", implies: " → ", iff: " ↔ ",
	forall: "∀", exists: "∃", in: "∈", bottom: "⊥", dot: ". ",
	relations: map[string]string{
		EQUALS: "=", NOT_EQUALS: "≠", LESS_THAN: "<", LESS_THAN_EQUALS: "≤",
		GREATER_THAN: ">", GREATER_THAN_EQUALS: "≥", ELEMENT_OF: "∈",
		PROPER_SUBSET: "⊂", SUBSET: "⊆", PROPER_SUPERSET: "⊃", SUPERSET: "⊇",
	},
}

var latex = notation{
	not: "\\neg ", and: " \\land ", or: " \\lor ", exor: " \\oplus ", implies: " \\rightarrow ",
	iff: " \\leftrightarrow ", forall: "\\forall ", exists: "\\exists ", in: " \\in ", bottom: "\\bot", dot: ".\\, ",
	relations: map[string]string{
		EQUALS: "=", NOT_EQUALS: "\\neq", LESS_THAN: "<", LESS_THAN_EQUALS: "\\leq",
		GREATER_THAN: ">", GREATER_THAN_EQUALS: "\\geq", ELEMENT_OF: "\\in",
		PROPER_SUBSET: "\\subset", SUBSET: "\\subseteq", PROPER_SUPERSET: "\\supset", SUPERSET: "\\supseteq",
	},
}

// String returns a human-readable rendering of this proposition.
func (p *Proposition) String() string {
	var builder strings.Builder
	//
	plain.write(&builder, p)
	//
	return builder.String()
}

// Markup returns a LaTeX rendering of this proposition, suitable for
// diagnostics.
func (p *Proposition) Markup() string {
	var builder strings.Builder
	//
	latex.write(&builder, p)
	//
	return builder.String()
}

func (n *notation) write(builder *strings.Builder, p *Proposition) {
	if p == nil {
		builder.WriteString("<nil>")
		return
	}
	//
	switch p.kind {
	case RELATION:
		n.writeRelation(builder, p)
	case NOT:
		builder.WriteString(n.not)
		n.writeNested(builder, p.Inner())
	case AND:
		n.writeJunction(builder, n.and, p.children)
	case OR:
		n.writeJunction(builder, n.or, p.children)
	case EXOR:
		n.writeJunction(builder, n.exor, p.children)
	case IMPLIES:
		n.writeJunction(builder, n.implies, p.children)
	case IFF:
		n.writeJunction(builder, n.iff, p.children)
	case FORALL, FORALL_IN_SET, EXISTS, EXISTS_IN_SET:
		if p.kind == FORALL || p.kind == FORALL_IN_SET {
			builder.WriteString(n.forall)
		} else {
			builder.WriteString(n.exists)
		}
		//
		builder.WriteString(p.variable.String())
		//
		if p.set != nil {
			builder.WriteString(n.in)
			builder.WriteString(p.set.String())
		}
		//
		builder.WriteString(n.dot)
		n.write(builder, p.Inner())
	case CONTRADICTION:
		builder.WriteString(n.bottom)
	default:
		panic("unreachable")
	}
}

func (n *notation) writeRelation(builder *strings.Builder, p *Proposition) {
	if symbol, ok := n.relations[p.name]; ok && len(p.args) == 2 {
		builder.WriteString(p.args[0].String())
		builder.WriteString(" ")
		builder.WriteString(symbol)
		builder.WriteString(" ")
		builder.WriteString(p.args[1].String())
		//
		return
	}
	//
	builder.WriteString(p.name)
	//
	if len(p.args) > 0 {
		builder.WriteString("(")
		//
		for i, arg := range p.args {
			if i != 0 {
				builder.WriteString(", ")
			}
			//
			builder.WriteString(arg.String())
		}
		//
		builder.WriteString(")")
	}
}

func (n *notation) writeJunction(builder *strings.Builder, sep string, children []*Proposition) {
	for i, child := range children {
		if i != 0 {
			builder.WriteString(sep)
		}
		//
		n.writeNested(builder, child)
	}
}

// Write a child proposition, adding braces unless it binds tightly enough to
// be unambiguous.
func (n *notation) writeNested(builder *strings.Builder, p *Proposition) {
	switch p.kind {
	case RELATION, NOT, CONTRADICTION:
		n.write(builder, p)
	default:
		builder.WriteString("(")
		n.write(builder, p)
		builder.WriteString(")")
	}
}
