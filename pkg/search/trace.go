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
package search

import (
	"fmt"
	"strings"

	"github.com/consensys/go-deduce/pkg/kernel"
)

// Trace records how a proposition was derived during a search.  A trace with
// no rule is a leaf, corresponding to one of the facts the search started
// from.
type Trace struct {
	Rule     kernel.Rule
	Premises []*Trace
	Result   *kernel.Proposition
}

func leaf(p *kernel.Proposition) *Trace {
	return &Trace{Result: p}
}

// IsLeaf checks whether this trace is one of the starting facts.
func (t *Trace) IsLeaf() bool {
	return t.Rule == ""
}

// Depth returns the number of derivation steps on the longest path from this
// trace to a leaf.
func (t *Trace) Depth() uint {
	var depth uint
	//
	for _, p := range t.Premises {
		depth = max(depth, p.Depth()+1)
	}
	//
	return depth
}

// Leaves returns the starting facts on which this trace depends, in the
// order they are first used and without duplicates.
func (t *Trace) Leaves() []*kernel.Proposition {
	var leaves []*kernel.Proposition
	//
	t.leaves(&leaves)
	//
	return leaves
}

func (t *Trace) leaves(leaves *[]*kernel.Proposition) {
	if t.IsLeaf() {
		for _, l := range *leaves {
			if l == t.Result {
				return
			}
		}
		//
		*leaves = append(*leaves, t.Result)
	}
	//
	for _, p := range t.Premises {
		p.leaves(leaves)
	}
}

// String renders this trace as an indented tree, with the conclusion first.
func (t *Trace) String() string {
	var builder strings.Builder
	//
	t.write(&builder, 0)
	//
	return builder.String()
}

func (t *Trace) write(builder *strings.Builder, indent int) {
	builder.WriteString(strings.Repeat("  ", indent))
	//
	if t.IsLeaf() {
		builder.WriteString(fmt.Sprintf("%s [given]\n", t.Result))
	} else {
		builder.WriteString(fmt.Sprintf("%s [%s]\n", t.Result, t.Rule))
	}
	//
	for _, p := range t.Premises {
		p.write(builder, indent+1)
	}
}
