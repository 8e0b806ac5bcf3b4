package prereq

import (
	"fmt"
	"strings"

	"github.com/banweb/crawler/catalog"
)

type TokenType int

const (
	TokenSubject TokenType = iota
	TokenNumber
	TokenGrade
	TokenAnd
	TokenOr
	TokenLParen
	TokenRParen
	TokenTest
	TokenEnd
)

type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Words that mark an opaque placement-test requirement. A phrase containing
// one of these becomes a single TokenTest the parser treats as ignorable.
var testWords = map[string]bool{
	"test":       true,
	"exam":       true,
	"placement":  true,
	"diagnostic": true,
}

// All-uppercase words that start a test phrase rather than a course subject.
var testStarters = map[string]bool{
	"SAT":   true,
	"ACT":   true,
	"CLEP":  true,
	"ALEKS": true,
	"TOEFL": true,
}

const gradeLetters = "ABCDFSTUV"

func isGradeLetter(b byte) bool {
	return strings.IndexByte(gradeLetters, b) >= 0
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isAllUpper(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < 'A' || word[i] > 'Z' {
			return false
		}
	}
	return len(word) > 0
}

type lexer struct {
	course catalog.CourseID
	text   string
	pos    int
	tokens []Token
	issues []Issue
}

// tokenize lexes cleaned prerequisite prose into a terminated token stream.
// Unrecognized input is skipped with a lexical issue so the parser always
// receives a stream ending in TokenEnd.
func tokenize(course catalog.CourseID, text string) ([]Token, []Issue) {
	l := &lexer{course: course, text: text}
	l.run()
	return l.tokens, l.issues
}

func (l *lexer) run() {
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			l.pos++
		case c == '(':
			l.lparenOrGrade()
		case c == ')':
			l.emit(TokenRParen, ")", l.pos)
			l.pos++
		case isLetter(c):
			l.word()
		case isDigit(c):
			l.number()
		default:
			l.unrecognized()
		}
	}
	l.emit(TokenEnd, "", len(l.text))
}

func (l *lexer) emit(tokenType TokenType, value string, pos int) {
	l.tokens = append(l.tokens, Token{Type: tokenType, Value: value, Pos: pos})
}

func (l *lexer) lexicalIssue(pos int, excerpt string) {
	l.issues = append(l.issues, Issue{
		Course:  l.course,
		Kind:    IssueLexical,
		Pos:     pos,
		Message: fmt.Sprintf("unrecognized input %q", excerpt),
	})
}

func (l *lexer) lastType() TokenType {
	if len(l.tokens) == 0 {
		return TokenEnd
	}
	return l.tokens[len(l.tokens)-1].Type
}

// A "(C)" immediately after a course number is a parenthesized minimum
// grade, not a group.
func (l *lexer) lparenOrGrade() {
	if l.lastType() == TokenNumber && l.pos+2 < len(l.text) &&
		isGradeLetter(l.text[l.pos+1]) && l.text[l.pos+2] == ')' {
		l.emit(TokenGrade, string(l.text[l.pos+1]), l.pos)
		l.pos += 3
		return
	}
	l.emit(TokenLParen, "(", l.pos)
	l.pos++
}

// peekChunk reads the next maximal run of letters or digits starting at or
// after offset, skipping spaces. A digit run absorbs a trailing letter
// suffix ("1551L"). Returns "" when the next character is neither.
func (l *lexer) peekChunk(offset int) (chunk string, start, end int) {
	for offset < len(l.text) && l.text[offset] == ' ' {
		offset++
	}
	start = offset
	end = offset
	if end < len(l.text) && isDigit(l.text[end]) {
		for end < len(l.text) && isDigit(l.text[end]) {
			end++
		}
		for end < len(l.text) && isLetter(l.text[end]) {
			end++
		}
		return l.text[start:end], start, end
	}
	for end < len(l.text) && isLetter(l.text[end]) {
		end++
	}
	return l.text[start:end], start, end
}

func (l *lexer) word() {
	word, start, end := l.peekChunk(l.pos)
	l.pos = end

	switch {
	case strings.EqualFold(word, "and"):
		l.emit(TokenAnd, word, start)
	case strings.EqualFold(word, "or"):
		l.emit(TokenOr, word, start)
	case strings.EqualFold(word, "minimum"):
		l.gradePhrase(word, start)
	case isAllUpper(word):
		switch {
		case testStarters[word]:
			l.phrase(word, start, end, true)
		case len(word) == 1 && l.lastType() == TokenNumber && isGradeLetter(word[0]):
			l.emit(TokenGrade, word, start)
		default:
			l.emit(TokenSubject, word, start)
		}
	default:
		l.phrase(word, start, end, testWords[strings.ToLower(word)])
	}
}

func (l *lexer) number() {
	chunk, start, end := l.peekChunk(l.pos)
	l.pos = end
	l.emit(TokenNumber, chunk, start)
}

// gradePhrase matches "minimum grade of X". An incomplete phrase drops
// just the leading word with a lexical issue and rescans from there.
func (l *lexer) gradePhrase(word string, start int) {
	next, _, afterGrade := l.peekChunk(l.pos)
	if !strings.EqualFold(next, "grade") {
		l.lexicalIssue(start, word)
		return
	}
	next, _, afterOf := l.peekChunk(afterGrade)
	if !strings.EqualFold(next, "of") {
		l.lexicalIssue(start, word)
		return
	}
	letter, letterStart, afterLetter := l.peekChunk(afterOf)
	if len(letter) != 1 || !isGradeLetter(strings.ToUpper(letter)[0]) {
		l.lexicalIssue(start, word)
		return
	}
	l.emit(TokenGrade, strings.ToUpper(letter), letterStart)
	l.pos = afterLetter
}

// phrase absorbs a run of filler or test-phrase words: lowercase and
// mixed-case words plus bare numbers, stopping at keywords, parentheses,
// and all-uppercase words (a likely course subject). The whole run becomes
// one TokenTest when any word marks a placement test, otherwise one
// lexical issue.
func (l *lexer) phrase(first string, start, end int, isTest bool) {
	for {
		chunk, _, chunkEnd := l.peekChunk(end)
		if chunk == "" {
			break
		}
		if strings.EqualFold(chunk, "and") || strings.EqualFold(chunk, "or") {
			break
		}
		if isLetter(chunk[0]) && isAllUpper(chunk) && !testStarters[chunk] {
			break
		}
		if testWords[strings.ToLower(chunk)] || testStarters[chunk] {
			isTest = true
		}
		end = chunkEnd
	}

	value := strings.TrimSpace(l.text[start:end])
	if isTest {
		l.emit(TokenTest, value, start)
	} else {
		l.lexicalIssue(start, value)
	}
	l.pos = end
}

// unrecognized skips a run of characters no token can start with.
func (l *lexer) unrecognized() {
	start := l.pos
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		if c == ' ' || c == '(' || c == ')' || isLetter(c) || isDigit(c) {
			break
		}
		l.pos++
	}
	l.lexicalIssue(start, l.text[start:l.pos])
}
