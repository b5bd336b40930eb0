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

// Token associates a kind with a given range of characters in the text being
// scanned.
type Token struct {
	Kind uint
	Span Span
}

// Scanner is a function which accepts some prefix of the given characters,
// returning its length (or 0 if nothing is accepted).
type Scanner func(items []rune) uint

// Or combines zero or more scanners such that the first to succeed (from left
// to right) determines the result.
func Or(scanners ...Scanner) Scanner {
	return func(items []rune) uint {
		for _, scanner := range scanners {
			if n := scanner(items); n > 0 {
				return n
			}
		}
		// fail
		return 0
	}
}

// Then combines two scanners so the second must match immediately after the
// first.  The second is permitted to match nothing.
func Then(first Scanner, rest Scanner) Scanner {
	return func(items []rune) uint {
		n := first(items)
		//
		if n == 0 {
			return 0
		}
		//
		return n + rest(items[n:])
	}
}

// Word accepts exactly the given sequence of characters.
func Word(word string) Scanner {
	chars := []rune(word)
	//
	return func(items []rune) uint {
		if len(items) < len(chars) {
			return 0
		}
		//
		for i, c := range chars {
			if items[i] != c {
				return 0
			}
		}
		//
		return uint(len(chars))
	}
}

// Within accepts any character within a given (inclusive) range.
func Within(lowest rune, highest rune) Scanner {
	return func(items []rune) uint {
		if len(items) != 0 && lowest <= items[0] && items[0] <= highest {
			return 1
		}
		// fail
		return 0
	}
}

// Many matches zero or more repetitions of a given scanner.
func Many(acceptor Scanner) Scanner {
	return func(items []rune) uint {
		index := uint(0)
		//
		for index < uint(len(items)) {
			n := acceptor(items[index:])
			//
			if n == 0 {
				break
			}
			//
			index += n
		}
		//
		return index
	}
}

// Eof matches the end of the input.
func Eof() Scanner {
	return func(items []rune) uint {
		if len(items) == 0 {
			return 1
		}
		//
		return 0
	}
}

// LexRule associates the characters accepted by a scanner with a given kind
// of token.
type LexRule struct {
	scanner Scanner
	kind    uint
}

// Rule constructs a new lexing rule.
func Rule(scanner Scanner, kind uint) LexRule {
	return LexRule{scanner, kind}
}

// Lexer splits a given input into tokens, by repeatedly applying the first
// matching rule.
type Lexer struct {
	items []rune
	index int
	rules []LexRule
}

// NewLexer constructs a new lexer with a given set of lexing rules.
func NewLexer(input []rune, rules ...LexRule) *Lexer {
	return &Lexer{input, 0, rules}
}

// Index returns the current position within the input.
func (p *Lexer) Index() int {
	return p.index
}

// Remaining determines how many characters of the input are yet to be
// tokenised.
func (p *Lexer) Remaining() int {
	return max(0, len(p.items)-p.index)
}

// Next returns the next token, or false if no rule matches.  The end of the
// input is matched at most once.
func (p *Lexer) Next() (Token, bool) {
	if p.index > len(p.items) {
		return Token{}, false
	}
	//
	for _, r := range p.rules {
		if n := r.scanner(p.items[p.index:]); n > 0 {
			end := min(len(p.items), p.index+int(n))
			token := Token{r.kind, NewSpan(p.index, end)}
			// Eof consumes nothing, so step past the end
			if p.index == len(p.items) {
				p.index++
			} else {
				p.index = end
			}
			//
			return token, true
		}
	}
	//
	return Token{}, false
}

// Collect tokenises as much of the remaining input as possible.
func (p *Lexer) Collect() []Token {
	var tokens []Token
	//
	for {
		token, ok := p.Next()
		//
		if !ok {
			return tokens
		}
		//
		tokens = append(tokens, token)
	}
}
