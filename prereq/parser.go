package prereq

import (
	"fmt"

	"github.com/banweb/crawler/catalog"
)

// Parse tree produced by the recursive-descent grammar:
//
//	expression := term (OR term)*
//	term       := atom (AND atom)*
//	atom       := course | TEST | LPAREN expression RPAREN
//	course     := SUBJECT NUMBER [GRADE]
//
// OR binds more loosely than AND, so "A and B or C" is (A and B) or C.

type exprNode struct {
	terms []*termNode
}

type termNode struct {
	atoms []atomNode
}

type atomNode interface {
	isAtom()
}

type courseAtom struct {
	subject string
	number  string
	grade   string
}

type testAtom struct {
	phrase string
}

type groupAtom struct {
	expr *exprNode
}

func (courseAtom) isAtom() {}
func (testAtom) isAtom()   {}
func (groupAtom) isAtom()  {}

type parser struct {
	course catalog.CourseID
	tokens []Token
	pos    int
	issues []Issue
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	token := p.tokens[p.pos]
	if token.Type != TokenEnd {
		p.pos++
	}
	return token
}

func (p *parser) syntaxIssue(pos int, format string, args ...any) {
	p.issues = append(p.issues, Issue{
		Course:  p.course,
		Kind:    IssueSyntax,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	})
}

// parse consumes the whole stream, never stopping at the first bad token:
// after an offending token is reported and skipped, any further well-formed
// clauses are gathered as additional top-level alternatives.
func (p *parser) parse() *exprNode {
	root := p.expression()
	for p.peek().Type != TokenEnd {
		offending := p.next()
		p.syntaxIssue(offending.Pos, "unexpected %q", offending.Value)

		more := p.expression()
		root.terms = append(root.terms, more.terms...)
	}
	return root
}

func (p *parser) expression() *exprNode {
	node := &exprNode{}
	if term := p.term(); term != nil {
		node.terms = append(node.terms, term)
	}
	for p.peek().Type == TokenOr {
		or := p.next()
		term := p.term()
		if term == nil {
			p.syntaxIssue(or.Pos, "expected a course or group after %q", or.Value)
			continue
		}
		node.terms = append(node.terms, term)
	}
	return node
}

func (p *parser) term() *termNode {
	atom := p.atom()
	if atom == nil {
		return nil
	}

	node := &termNode{atoms: []atomNode{atom}}
	for p.peek().Type == TokenAnd {
		and := p.next()
		atom := p.atom()
		if atom == nil {
			p.syntaxIssue(and.Pos, "expected a course or group after %q", and.Value)
			break
		}
		node.atoms = append(node.atoms, atom)
	}
	return node
}

// atom returns nil without consuming anything when the next token cannot
// start one; the caller decides whether that is an error.
func (p *parser) atom() atomNode {
	switch p.peek().Type {
	case TokenSubject:
		return p.courseRef()
	case TokenTest:
		token := p.next()
		return testAtom{phrase: token.Value}
	case TokenLParen:
		lparen := p.next()
		expr := p.expression()
		if p.peek().Type != TokenRParen {
			p.syntaxIssue(lparen.Pos, "unmatched opening parenthesis")
		} else {
			p.next()
		}
		return groupAtom{expr: expr}
	default:
		return nil
	}
}

func (p *parser) courseRef() atomNode {
	subject := p.next()
	if p.peek().Type != TokenNumber {
		p.syntaxIssue(subject.Pos, "course subject %q missing catalog number", subject.Value)
		return nil
	}
	number := p.next()

	atom := courseAtom{subject: subject.Value, number: number.Value}
	if p.peek().Type == TokenGrade {
		atom.grade = p.next().Value
	}
	return atom
}
