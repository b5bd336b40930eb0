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
package syntax

import (
	"math/big"
	"slices"

	"github.com/consensys/go-deduce/pkg/kernel"
	"github.com/consensys/go-deduce/pkg/term"
)

// Parse a given input string into a proposition.  Identifiers are resolved
// against the enclosing quantifiers first, then the variables declared in the
// environment.  Any other identifier is a constant (in term position) or a
// predicate symbol (in formula position).
func Parse(input string, env *Environment) (*kernel.Proposition, []SyntaxError) {
	return ParseFile(NewSourceFile("expr", []byte(input)), env)
}

// ParseFile parses the contents of a given source file into a proposition.
func ParseFile(srcfile *File, env *Environment) (*kernel.Proposition, []SyntaxError) {
	parser, errs := newParser(srcfile, env)
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	p, errs := parser.parseFormula()
	//
	if len(errs) == 0 && !parser.Done() {
		return nil, parser.syntaxErrors(parser.lookahead(), "unknown token")
	}
	//
	return p, errs
}

// ParseTerm parses a given input string into a term, resolving identifiers
// as for Parse.
func ParseTerm(input string, env *Environment) (term.Term, []SyntaxError) {
	return ParseTermFile(NewSourceFile("expr", []byte(input)), env)
}

// ParseTermFile parses the contents of a given source file into a term.
func ParseTermFile(srcfile *File, env *Environment) (term.Term, []SyntaxError) {
	parser, errs := newParser(srcfile, env)
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	t, errs := parser.parseTerm()
	//
	if len(errs) == 0 && !parser.Done() {
		return nil, parser.syntaxErrors(parser.lookahead(), "unknown token")
	}
	//
	return t, errs
}

// Environment determines the free variables which may be referred to by
// name.
type Environment struct {
	variables map[string]*term.Variable
}

// NewEnvironment constructs an environment declaring the given variables.
func NewEnvironment(vars ...*term.Variable) *Environment {
	env := &Environment{make(map[string]*term.Variable)}
	//
	for _, v := range vars {
		env.Declare(v)
	}
	//
	return env
}

// Declare a variable, returning false if its name is already taken.
func (e *Environment) Declare(v *term.Variable) bool {
	if _, ok := e.variables[v.Name()]; ok {
		return false
	}
	//
	e.variables[v.Name()] = v
	//
	return true
}

// Extend constructs a new environment declaring everything declared in this
// one, together with the given variables (which take precedence).
func (e *Environment) Extend(vars ...*term.Variable) *Environment {
	env := NewEnvironment(vars...)
	//
	for name, v := range e.variables {
		if _, ok := env.variables[name]; !ok {
			env.variables[name] = v
		}
	}
	//
	return env
}

// Lookup the variable declared with a given name.
func (e *Environment) Lookup(name string) (*term.Variable, bool) {
	if e == nil {
		return nil, false
	}
	//
	v, ok := e.variables[name]
	//
	return v, ok
}

// ============================================================================
// Tokens
// ============================================================================

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// LBRACE signals "left brace"
const LBRACE uint = 2

// RBRACE signals "right brace"
const RBRACE uint = 3

// COMMA separates arguments
const COMMA uint = 4

// DOT separates a quantified variable from its body
const DOT uint = 5

// NUMBER signals an integer number
const NUMBER uint = 6

// IDENTIFIER signals a variable, constant, function or predicate name.
const IDENTIFIER uint = 7

// EQUALS signals an equality
const EQUALS uint = 8

// NOT_EQUALS signals a non-equality
const NOT_EQUALS uint = 9

// LESSTHAN signals a (strict) inequality X < Y
const LESSTHAN uint = 10

// LESSTHAN_EQUALS signals a (non-strict) inequality X <= Y
const LESSTHAN_EQUALS uint = 11

// GREATERTHAN signals a (strict) inequality X > Y
const GREATERTHAN uint = 12

// GREATERTHAN_EQUALS signals a (non-strict) inequality X >= Y
const GREATERTHAN_EQUALS uint = 13

// ELEMENTOF signals set membership, or the domain of a quantifier
const ELEMENTOF uint = 14

// PROPER_SUBSET signals X ⊂ Y
const PROPER_SUBSET uint = 15

// SUBSET signals X ⊆ Y
const SUBSET uint = 16

// PROPER_SUPERSET signals X ⊃ Y
const PROPER_SUPERSET uint = 17

// SUPERSET signals X ⊇ Y
const SUPERSET uint = 18

// ADD represents integer addition
const ADD uint = 19

// SUB represents integer subtraction
const SUB uint = 20

// MUL represents integer multiplication
const MUL uint = 21

// UNION represents set union
const UNION uint = 22

// INTERSECTION represents set intersection
const INTERSECTION uint = 23

// NOT represents logical negation
const NOT uint = 24

// AND represents logical conjunction
const AND uint = 25

// OR represents logical disjunction
const OR uint = 26

// EXOR represents exclusive disjunction
const EXOR uint = 27

// IMPLIES represents logical implication
const IMPLIES uint = 28

// IFF represents logical equivalence
const IFF uint = 29

// FORALL represents universal quantification
const FORALL uint = 30

// EXISTS represents existential quantification
const EXISTS uint = 31

// RELATIONS maps each binary relation token to the relation it represents.
var RELATIONS = map[uint]string{
	EQUALS:             kernel.EQUALS,
	NOT_EQUALS:         kernel.NOT_EQUALS,
	LESSTHAN:           kernel.LESS_THAN,
	LESSTHAN_EQUALS:    kernel.LESS_THAN_EQUALS,
	GREATERTHAN:        kernel.GREATER_THAN,
	GREATERTHAN_EQUALS: kernel.GREATER_THAN_EQUALS,
	ELEMENTOF:          kernel.ELEMENT_OF,
	PROPER_SUBSET:      kernel.PROPER_SUBSET,
	SUBSET:             kernel.SUBSET,
	PROPER_SUPERSET:    kernel.PROPER_SUPERSET,
	SUPERSET:           kernel.SUPERSET,
}

// BINOPS maps each binary operation token to the function symbol it
// represents.
var BINOPS = map[uint]string{
	ADD:          "+",
	SUB:          "-",
	MUL:          "*",
	UNION:        "∪",
	INTERSECTION: "∩",
}

// CONNECTIVES captures the set of n-ary logical connectives.
var CONNECTIVES = []uint{AND, OR, EXOR}

// Words which cannot be used as identifiers.
var keywords = map[string]uint{
	"forall":  FORALL,
	"exists":  EXISTS,
	"in":      ELEMENTOF,
	"not":     NOT,
	"and":     AND,
	"or":      OR,
	"xor":     EXOR,
	"implies": IMPLIES,
	"iff":     IFF,
}

var whitespace Scanner = Many(Or(Word(" "), Word("\t"), Word("\n"), Word("\r")))

var number Scanner = Then(Within('0', '9'), Many(Within('0', '9')))

var identifier Scanner = Then(
	Or(Word("_"), Within('a', 'z'), Within('A', 'Z')),
	Many(Or(Word("_"), Word("'"), Within('0', '9'), Within('a', 'z'), Within('A', 'Z'))))

// lexing rules, where the first rule to match wins.
var rules []LexRule = []LexRule{
	Rule(Word("("), LBRACE),
	Rule(Word(")"), RBRACE),
	Rule(Word(","), COMMA),
	Rule(Word("."), DOT),
	Rule(Word("<->"), IFF),
	Rule(Word("↔"), IFF),
	Rule(Word("->"), IMPLIES),
	Rule(Word("→"), IMPLIES),
	Rule(Word("<="), LESSTHAN_EQUALS),
	Rule(Word("≤"), LESSTHAN_EQUALS),
	Rule(Word("<"), LESSTHAN),
	Rule(Word(">="), GREATERTHAN_EQUALS),
	Rule(Word("≥"), GREATERTHAN_EQUALS),
	Rule(Word(">"), GREATERTHAN),
	Rule(Word("!="), NOT_EQUALS),
	Rule(Word("≠"), NOT_EQUALS),
	Rule(Word("="), EQUALS),
	Rule(Word("!"), NOT),
	Rule(Word("¬"), NOT),
	Rule(Word("&&"), AND),
	Rule(Word("∧"), AND),
	Rule(Word("||"), OR),
	Rule(Word("∨"), OR),
	Rule(Word("^"), EXOR),
	Rule(Word("⊕"), EXOR),
	Rule(Word("∀"), FORALL),
	Rule(Word("∃"), EXISTS),
	Rule(Word("∈"), ELEMENTOF),
	Rule(Word("⊂"), PROPER_SUBSET),
	Rule(Word("⊆"), SUBSET),
	Rule(Word("⊃"), PROPER_SUPERSET),
	Rule(Word("⊇"), SUPERSET),
	Rule(Word("+"), ADD),
	Rule(Word("-"), SUB),
	Rule(Word("*"), MUL),
	Rule(Word("∪"), UNION),
	Rule(Word("∩"), INTERSECTION),
	Rule(whitespace, WHITESPACE),
	Rule(number, NUMBER),
	Rule(identifier, IDENTIFIER),
	Rule(Eof(), END_OF),
}

// ============================================================================
// Parser
// ============================================================================

// Parser is a recursive-descent parser for propositions and the terms they
// contain.
type Parser struct {
	env     *Environment
	srcfile *File
	tokens  []Token
	// Position within the tokens
	index int
	// Variables bound by the enclosing quantifiers (innermost last)
	scope []*term.Variable
}

func newParser(srcfile *File, env *Environment) (*Parser, []SyntaxError) {
	var (
		lexer  = NewLexer(srcfile.Contents(), rules...)
		tokens = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start, end := lexer.Index(), lexer.Index()+lexer.Remaining()
		err := srcfile.SyntaxError(NewSpan(start, end), "unknown text encountered")
		//
		return nil, []SyntaxError{*err}
	}
	// Remove any whitespace
	tokens = slices.DeleteFunc(tokens, func(t Token) bool { return t.Kind == WHITESPACE })
	//
	parser := &Parser{env, srcfile, tokens, 0, nil}
	// Reclassify keywords
	for i, t := range parser.tokens {
		if kind, ok := keywords[parser.string(t)]; ok && t.Kind == IDENTIFIER {
			parser.tokens[i].Kind = kind
		}
	}
	//
	return parser, nil
}

// Done determines whether or not the parser has parsed all the available
// tokens.
func (p *Parser) Done() bool {
	return p.index+1 >= len(p.tokens)
}

// Formula := Implication [ "↔" Implication ]
func (p *Parser) parseFormula() (*kernel.Proposition, []SyntaxError) {
	lhs, errs := p.parseImplication()
	//
	if len(errs) != 0 || !p.match(IFF) {
		return lhs, errs
	}
	//
	rhs, errs := p.parseImplication()
	//
	if len(errs) != 0 {
		return nil, errs
	} else if p.follows(IFF) {
		return nil, p.syntaxErrors(p.lookahead(), "braces required")
	}
	//
	return kernel.Iff(lhs, rhs), nil
}

// Implication := Junction [ "→" Implication ]
func (p *Parser) parseImplication() (*kernel.Proposition, []SyntaxError) {
	lhs, errs := p.parseJunction()
	//
	if len(errs) != 0 || !p.match(IMPLIES) {
		return lhs, errs
	}
	//
	rhs, errs := p.parseImplication()
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	return kernel.Implies(lhs, rhs), nil
}

// Junction := Unary { Connective Unary }, where the connectives must all be
// the same.
func (p *Parser) parseJunction() (*kernel.Proposition, []SyntaxError) {
	var (
		prop, errs = p.parseUnary()
		// initialise lookahead
		kind  = p.lookahead().Kind
		props = []*kernel.Proposition{prop}
	)
	//
	for len(errs) == 0 && p.follows(CONNECTIVES...) {
		var tmp *kernel.Proposition
		// Sanity check
		if !p.follows(kind) {
			return nil, p.syntaxErrors(p.lookahead(), "braces required")
		}
		// Consume connective
		p.expect(kind)
		//
		tmp, errs = p.parseUnary()
		props = append(props, tmp)
	}
	//
	switch {
	case len(errs) != 0:
		return nil, errs
	case len(props) == 1:
		return prop, nil
	case kind == AND:
		return kernel.And(props...), nil
	case kind == OR:
		return kernel.Or(props...), nil
	case kind == EXOR:
		return kernel.ExOr(props...), nil
	}
	//
	panic("unreachable")
}

func (p *Parser) parseUnary() (*kernel.Proposition, []SyntaxError) {
	switch p.lookahead().Kind {
	case NOT:
		p.expect(NOT)
		//
		prop, errs := p.parseUnary()
		//
		if len(errs) != 0 {
			return nil, errs
		}
		//
		return kernel.Not(prop), nil
	case FORALL, EXISTS:
		return p.parseQuantifier()
	case LBRACE:
		return p.parseBracketedFormula()
	}
	//
	return p.parseAtom()
}

// Quantifier := ("∀" | "∃") Identifier [ "∈" Term ] "." Formula
func (p *Parser) parseQuantifier() (*kernel.Proposition, []SyntaxError) {
	var (
		set  term.Term
		errs []SyntaxError
		kind = p.expect(p.lookahead().Kind).Kind
		id   = p.lookahead()
	)
	//
	if !p.match(IDENTIFIER) {
		return nil, p.syntaxErrors(id, "expected variable")
	}
	//
	name := p.string(id)
	//
	if _, ok := p.bound(name); ok {
		return nil, p.syntaxErrors(id, "variable already bound")
	}
	// Quantifying a declared variable binds that variable.
	v, ok := p.env.Lookup(name)
	if !ok {
		v = term.NewVariable(name)
	}
	//
	if p.match(ELEMENTOF) {
		if set, errs = p.parseTerm(); len(errs) != 0 {
			return nil, errs
		}
	}
	//
	if !p.match(DOT) {
		return nil, p.syntaxErrors(p.lookahead(), "expected '.'")
	}
	//
	p.scope = append(p.scope, v)
	body, errs := p.parseFormula()
	p.scope = p.scope[:len(p.scope)-1]
	//
	switch {
	case len(errs) != 0:
		return nil, errs
	case kind == FORALL && set == nil:
		return kernel.Forall(v, body), nil
	case kind == FORALL:
		return kernel.ForallIn(v, set, body), nil
	case set == nil:
		return kernel.Exists(v, body), nil
	default:
		return kernel.ExistsIn(v, set, body), nil
	}
}

// A bracket either encloses a formula, or begins a term as in "(x+1) = y".
// Both are attempted, and the error which got furthest is reported.
func (p *Parser) parseBracketedFormula() (*kernel.Proposition, []SyntaxError) {
	start := p.index
	//
	p.expect(LBRACE)
	//
	prop, errs := p.parseFormula()
	//
	if len(errs) == 0 {
		if !p.match(RBRACE) {
			errs = p.syntaxErrors(p.lookahead(), "expected ')'")
		} else if _, ok := RELATIONS[p.lookahead().Kind]; !ok && !p.isBinop(p.lookahead().Kind) {
			return prop, nil
		} else {
			// Bracketed term, as in "(x) ∈ S"
			errs = p.syntaxErrors(p.lookahead(), "unexpected relation")
		}
	}
	// Try again as an atom
	p.index = start
	//
	atom, atomErrs := p.parseAtom()
	//
	if len(atomErrs) == 0 {
		return atom, nil
	} else if atomErrs[0].span.start > errs[0].span.start {
		return nil, atomErrs
	}
	//
	return nil, errs
}

// Atom := Term Relation Term | Identifier [ "(" Term { "," Term } ")" ]
func (p *Parser) parseAtom() (*kernel.Proposition, []SyntaxError) {
	start := p.lookahead()
	//
	lhs, errs := p.parseTerm()
	//
	if len(errs) != 0 {
		return nil, errs
	} else if relation, ok := RELATIONS[p.lookahead().Kind]; ok {
		p.expect(p.lookahead().Kind)
		//
		rhs, errs := p.parseTerm()
		//
		if len(errs) != 0 {
			return nil, errs
		}
		//
		return kernel.Rel(relation, lhs, rhs), nil
	}
	// Otherwise, must be a predicate
	switch t := lhs.(type) {
	case term.Constant:
		return kernel.Rel(t.Name()), nil
	case *term.Apply:
		if !p.isInfix(t.Head()) {
			return kernel.Rel(t.Head(), t.Args()...), nil
		}
	}
	//
	return nil, p.syntaxErrors(start, "relation expected")
}

// Term := UnitTerm { BinOp UnitTerm }, where the operations must all be the
// same.
func (p *Parser) parseTerm() (term.Term, []SyntaxError) {
	var (
		lhs, errs = p.parseUnitTerm()
		// initialise lookahead
		kind  = p.lookahead().Kind
		terms = []term.Term{lhs}
	)
	//
	for len(errs) == 0 && p.isBinop(p.lookahead().Kind) {
		var tmp term.Term
		// Sanity check
		if !p.follows(kind) {
			return nil, p.syntaxErrors(p.lookahead(), "braces required")
		}
		// Consume operator
		p.expect(kind)
		//
		tmp, errs = p.parseUnitTerm()
		terms = append(terms, tmp)
	}
	//
	switch {
	case len(errs) != 0:
		return nil, errs
	case len(terms) == 1:
		return lhs, nil
	default:
		return term.NewApply(BINOPS[kind], terms...), nil
	}
}

func (p *Parser) parseUnitTerm() (term.Term, []SyntaxError) {
	token := p.lookahead()
	//
	switch token.Kind {
	case LBRACE:
		p.expect(LBRACE)
		//
		t, errs := p.parseTerm()
		//
		if len(errs) == 0 && !p.match(RBRACE) {
			return nil, p.syntaxErrors(p.lookahead(), "expected ')'")
		}
		//
		return t, errs
	case IDENTIFIER:
		return p.parseIdentifier()
	case NUMBER:
		return p.parseNumber(), nil
	}
	//
	return nil, p.syntaxErrors(token, "unknown expression")
}

func (p *Parser) parseIdentifier() (term.Term, []SyntaxError) {
	var (
		id   = p.expect(IDENTIFIER)
		name = p.string(id)
		args []term.Term
	)
	//
	if !p.match(LBRACE) {
		if v, ok := p.bound(name); ok {
			return v, nil
		} else if v, ok := p.env.Lookup(name); ok {
			return v, nil
		}
		//
		return term.NewConstant(name), nil
	}
	// Application
	for !p.match(RBRACE) {
		if len(args) != 0 && !p.match(COMMA) {
			return nil, p.syntaxErrors(p.lookahead(), "expected ','")
		}
		//
		arg, errs := p.parseTerm()
		//
		if len(errs) != 0 {
			return nil, errs
		}
		//
		args = append(args, arg)
	}
	//
	return term.NewApply(name, args...), nil
}

func (p *Parser) parseNumber() term.Term {
	var (
		number big.Int
		token  = p.expect(NUMBER)
	)
	//
	number.SetString(p.string(token), 10)
	//
	return term.NewNumber(&number)
}

// Find the innermost variable of a given name bound by an enclosing
// quantifier.
func (p *Parser) bound(name string) (*term.Variable, bool) {
	for i := len(p.scope) - 1; i >= 0; i-- {
		if p.scope[i].Name() == name {
			return p.scope[i], true
		}
	}
	//
	return nil, false
}

func (p *Parser) isBinop(kind uint) bool {
	_, ok := BINOPS[kind]
	return ok
}

// Check whether a function symbol is one of the infix operations.
func (p *Parser) isInfix(head string) bool {
	for _, op := range BINOPS {
		if op == head {
			return true
		}
	}
	//
	return false
}

// Get the text representing the given token as a string.
func (p *Parser) string(token Token) string {
	start, end := token.Span.Start(), token.Span.End()
	return string(p.srcfile.Contents()[start:end])
}

// Follows checks whether one of the given token kinds is next.
func (p *Parser) follows(options ...uint) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() Token {
	return p.tokens[p.index]
}

func (p *Parser) expect(kind uint) Token {
	if p.lookahead().Kind != kind {
		panic("internal failure")
	}
	//
	token := p.tokens[p.index]
	p.index++
	//
	return token
}

func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

func (p *Parser) syntaxErrors(token Token, msg string) []SyntaxError {
	return []SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}
