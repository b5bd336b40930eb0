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
package term

import (
	"math/big"
	"slices"
	"strings"
)

// monomial represents a single product within a polynomial, such as "2*x*y".
// The atoms are kept sorted so that two monomials over the same atoms can be
// matched positionally.
type monomial struct {
	coefficient big.Int
	atoms       []atom
}

// atom is an indivisible sub-term of an arithmetic expression (e.g. a
// variable, a constant or an uninterpreted function application).  The key
// identifies the atom structurally, whilst the term is retained so the
// polynomial can be turned back into a term.
type atom struct {
	key  string
	term Term
}

func newMonomial(coefficient *big.Int, atoms ...atom) monomial {
	var m monomial
	//
	m.coefficient.Set(coefficient)
	m.atoms = slices.Clone(atoms)
	slices.SortFunc(m.atoms, func(a, b atom) int { return strings.Compare(a.key, b.key) })
	//
	return m
}

func (p monomial) clone() monomial {
	return newMonomial(&p.coefficient, p.atoms...)
}

// matches determines whether or not the atoms of this monomial match those
// of the other.
func (p monomial) matches(other monomial) bool {
	if len(p.atoms) != len(other.atoms) {
		return false
	}
	//
	for i := range p.atoms {
		if p.atoms[i].key != other.atoms[i].key {
			return false
		}
	}
	//
	return true
}

func (p monomial) mul(other monomial) monomial {
	var (
		coeff big.Int
		atoms = append(slices.Clone(p.atoms), other.atoms...)
	)
	//
	coeff.Mul(&p.coefficient, &other.coefficient)
	//
	return newMonomial(&coeff, atoms...)
}

// polynomial is a sum of monomials in which no two monomials match.  An empty
// polynomial corresponds with zero.
type polynomial struct {
	terms []monomial
}

func constantPoly(val *big.Int) polynomial {
	if val.BitLen() == 0 {
		return polynomial{}
	}
	//
	return polynomial{[]monomial{newMonomial(val)}}
}

func atomPoly(a atom) polynomial {
	return polynomial{[]monomial{newMonomial(big.NewInt(1), a)}}
}

func (p polynomial) clone() polynomial {
	terms := make([]monomial, len(p.terms))
	//
	for i := range terms {
		terms[i] = p.terms[i].clone()
	}
	//
	return polynomial{terms}
}

func (p polynomial) add(other polynomial) polynomial {
	var res = p.clone()
	//
	for _, t := range other.terms {
		res.addTerm(t, false)
	}
	//
	return res
}

func (p polynomial) sub(other polynomial) polynomial {
	var res = p.clone()
	//
	for _, t := range other.terms {
		res.addTerm(t, true)
	}
	//
	return res
}

func (p polynomial) mul(other polynomial) polynomial {
	var res polynomial
	//
	for _, ith := range p.terms {
		for _, jth := range other.terms {
			res.addTerm(ith.mul(jth), false)
		}
	}
	//
	return res
}

func (p *polynomial) addTerm(other monomial, negate bool) {
	var coeff big.Int
	//
	if negate {
		coeff.Neg(&other.coefficient)
	} else {
		coeff.Set(&other.coefficient)
	}
	//
	for i := range p.terms {
		if p.terms[i].matches(other) {
			ith := &p.terms[i]
			ith.coefficient.Add(&ith.coefficient, &coeff)
			// Remove any monomial which cancelled out
			if ith.coefficient.BitLen() == 0 {
				p.terms = slices.Delete(p.terms, i, i+1)
			}
			//
			return
		}
	}
	//
	p.terms = append(p.terms, newMonomial(&coeff, other.atoms...))
}

// constant returns the value of this polynomial if it has no atoms.
func (p polynomial) constant() (*big.Int, bool) {
	switch {
	case len(p.terms) == 0:
		return big.NewInt(0), true
	case len(p.terms) == 1 && len(p.terms[0].atoms) == 0:
		var val big.Int
		return val.Set(&p.terms[0].coefficient), true
	default:
		return nil, false
	}
}

// toTerm converts this polynomial back into a term.  Monomials are ordered by
// their atoms so that equivalent polynomials produce equal terms.
func (p polynomial) toTerm() Term {
	var (
		terms   = slices.Clone(p.terms)
		summand []Term
	)
	//
	if val, ok := p.constant(); ok {
		return NewNumber(val)
	}
	//
	slices.SortFunc(terms, func(a, b monomial) int { return compareAtoms(a.atoms, b.atoms) })
	//
	for _, t := range terms {
		var factors []Term
		//
		if len(t.atoms) == 0 || t.coefficient.Cmp(big.NewInt(1)) != 0 {
			factors = append(factors, NewNumber(&t.coefficient))
		}
		//
		for _, a := range t.atoms {
			factors = append(factors, a.term)
		}
		//
		if len(factors) == 1 {
			summand = append(summand, factors[0])
		} else {
			summand = append(summand, Mul(factors...))
		}
	}
	//
	if len(summand) == 1 {
		return summand[0]
	}
	//
	return Add(summand...)
}

func compareAtoms(lhs []atom, rhs []atom) int {
	for i := 0; i < min(len(lhs), len(rhs)); i++ {
		if c := strings.Compare(lhs[i].key, rhs[i].key); c != 0 {
			return c
		}
	}
	//
	return len(lhs) - len(rhs)
}
