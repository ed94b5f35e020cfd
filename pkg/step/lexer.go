package step

import (
	"strings"
)

// Lexer tokenizes an exchange file on demand
type Lexer struct {
	src    Source
	pos    int
	line   int
	column int
}

// NewLexer creates a new lexer
func NewLexer(src Source) *Lexer {
	return &Lexer{
		src:    src,
		pos:    0,
		line:   1,
		column: 1,
	}
}

// Tokenize reads the remaining input and returns every token up to and
// including the EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	tokens := make([]Token, 0)
	for {
		token, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		if token.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// Next returns the next token, skipping whitespace and comments
func (l *Lexer) Next() (Token, error) {
	for l.pos < l.src.Len() {
		ch := l.peek()
		if isSpace(ch) {
			l.skipWhitespace()
			continue
		}
		if ch == '/' && l.peekAhead(1) == '*' {
			if err := l.skipComment(); err != nil {
				return Token{}, err
			}
			continue
		}
		return l.nextToken()
	}

	return Token{Type: TokenEOF, Pos: l.pos, Line: l.line, Column: l.column}, nil
}

// nextToken reads the next token
func (l *Lexer) nextToken() (Token, error) {
	ch := l.peek()

	switch ch {
	case '(':
		return l.makeToken(TokenLeftParen, string(l.advance())), nil
	case ')':
		return l.makeToken(TokenRightParen, string(l.advance())), nil
	case ',':
		return l.makeToken(TokenComma, string(l.advance())), nil
	case ';':
		return l.makeToken(TokenSemicolon, string(l.advance())), nil
	case '=':
		return l.makeToken(TokenEquals, string(l.advance())), nil
	case '$':
		return l.makeToken(TokenDollar, string(l.advance())), nil
	case '*':
		return l.makeToken(TokenStar, string(l.advance())), nil
	case '#':
		return l.readInstanceName()
	case '\'':
		return l.readString()
	case '"':
		return l.readBinary()
	case '.':
		if isLetter(l.peekAhead(1)) {
			return l.readEnum()
		}
	case '-', '+':
		if isDigit(l.peekAhead(1)) {
			return l.readNumber()
		}
	}

	if isDigit(ch) {
		return l.readNumber()
	}

	if isLetter(ch) || ch == '_' || ch == '!' {
		return l.readKeyword()
	}

	return Token{}, l.errorf("unexpected character '%c'", ch)
}

// readKeyword reads an entity name, typed parameter name or section marker.
// Hyphens are accepted so that ISO-10303-21 and END-ISO-10303-21 lex as one keyword.
func (l *Lexer) readKeyword() (Token, error) {
	start := l.pos
	startLine, startCol := l.line, l.column

	l.advance()
	for l.pos < l.src.Len() {
		ch := l.peek()
		if !isLetter(ch) && !isDigit(ch) && ch != '_' && ch != '-' {
			break
		}
		l.advance()
	}

	return Token{
		Type:   TokenKeyword,
		Value:  strings.ToUpper(l.slice(start, l.pos)),
		Pos:    start,
		Line:   startLine,
		Column: startCol,
	}, nil
}

// readInstanceName reads #<digits>
func (l *Lexer) readInstanceName() (Token, error) {
	start := l.pos
	startLine, startCol := l.line, l.column
	l.advance() // '#'

	digits := l.pos
	for l.pos < l.src.Len() && isDigit(l.peek()) {
		l.advance()
	}
	if l.pos == digits {
		return Token{}, l.errorf("instance name without digits")
	}

	return Token{
		Type:   TokenInstanceName,
		Value:  l.slice(digits, l.pos),
		Pos:    start,
		Line:   startLine,
		Column: startCol,
	}, nil
}

// readNumber reads an integer or real literal
func (l *Lexer) readNumber() (Token, error) {
	start := l.pos
	startLine, startCol := l.line, l.column
	tokenType := TokenInteger

	if ch := l.peek(); ch == '-' || ch == '+' {
		l.advance()
	}
	for l.pos < l.src.Len() && isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' {
		tokenType = TokenReal
		l.advance()
		for l.pos < l.src.Len() && isDigit(l.peek()) {
			l.advance()
		}
	}
	if ch := l.peek(); tokenType == TokenReal && (ch == 'E' || ch == 'e') {
		l.advance()
		if ch := l.peek(); ch == '-' || ch == '+' {
			l.advance()
		}
		if !isDigit(l.peek()) {
			return Token{}, l.errorf("malformed exponent")
		}
		for l.pos < l.src.Len() && isDigit(l.peek()) {
			l.advance()
		}
	}

	return Token{
		Type:   tokenType,
		Value:  l.slice(start, l.pos),
		Pos:    start,
		Line:   startLine,
		Column: startCol,
	}, nil
}

// readString reads a quoted string and decodes its control directives
func (l *Lexer) readString() (Token, error) {
	start := l.pos
	startLine, startCol := l.line, l.column
	l.advance() // opening quote

	var raw strings.Builder
	for {
		if l.pos >= l.src.Len() {
			return Token{}, &SyntaxError{Line: startLine, Column: startCol, Msg: "unterminated string"}
		}
		ch := l.advance()
		if ch == '\'' {
			if l.peek() == '\'' {
				l.advance()
				raw.WriteByte('\'')
				continue
			}
			break
		}
		if ch == '\n' || ch == '\r' {
			// Writers wrap long lines; the line break is not part of the value.
			continue
		}
		raw.WriteByte(ch)
	}

	value, err := DecodeString(raw.String())
	if err != nil {
		return Token{}, &SyntaxError{Line: startLine, Column: startCol, Msg: err.Error()}
	}

	return Token{
		Type:   TokenString,
		Value:  value,
		Pos:    start,
		Line:   startLine,
		Column: startCol,
	}, nil
}

// readBinary reads "<hex>"
func (l *Lexer) readBinary() (Token, error) {
	start := l.pos
	startLine, startCol := l.line, l.column
	l.advance() // opening quote

	body := l.pos
	for l.pos < l.src.Len() && l.peek() != '"' {
		if !isHex(l.peek()) {
			return Token{}, l.errorf("invalid binary digit '%c'", l.peek())
		}
		l.advance()
	}
	if l.pos >= l.src.Len() {
		return Token{}, &SyntaxError{Line: startLine, Column: startCol, Msg: "unterminated binary"}
	}
	value := l.slice(body, l.pos)
	l.advance() // closing quote

	return Token{
		Type:   TokenBinary,
		Value:  value,
		Pos:    start,
		Line:   startLine,
		Column: startCol,
	}, nil
}

// readEnum reads .NAME.
func (l *Lexer) readEnum() (Token, error) {
	start := l.pos
	startLine, startCol := l.line, l.column
	l.advance() // leading dot

	body := l.pos
	for l.pos < l.src.Len() && (isLetter(l.peek()) || isDigit(l.peek()) || l.peek() == '_') {
		l.advance()
	}
	if l.peek() != '.' {
		return Token{}, l.errorf("unterminated enumeration")
	}
	value := strings.ToUpper(l.slice(body, l.pos))
	l.advance() // trailing dot

	return Token{
		Type:   TokenEnum,
		Value:  value,
		Pos:    start,
		Line:   startLine,
		Column: startCol,
	}, nil
}

// Helper functions

func (l *Lexer) peek() byte {
	if l.pos >= l.src.Len() {
		return 0
	}
	return l.src.At(l.pos)
}

func (l *Lexer) peekAhead(n int) byte {
	pos := l.pos + n
	if pos >= l.src.Len() {
		return 0
	}
	return l.src.At(pos)
}

func (l *Lexer) advance() byte {
	if l.pos >= l.src.Len() {
		return 0
	}
	ch := l.src.At(l.pos)
	l.pos++
	l.column++
	if ch == '\n' {
		l.line++
		l.column = 1
	}
	return ch
}

func (l *Lexer) skipWhitespace() {
	for l.pos < l.src.Len() && isSpace(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) skipComment() error {
	line, col := l.line, l.column
	l.advance()
	l.advance()
	for l.pos < l.src.Len() {
		if l.peek() == '*' && l.peekAhead(1) == '/' {
			l.advance()
			l.advance()
			return nil
		}
		l.advance()
	}
	return &SyntaxError{Line: line, Column: col, Msg: "unterminated comment"}
}

// slice copies src[start:end] out of the source
func (l *Lexer) slice(start, end int) string {
	if end <= start {
		return ""
	}
	buf := make([]byte, end-start)
	if _, err := l.src.ReadAt(buf, int64(start)); err != nil {
		// start and end are always within bounds; fall back to byte reads
		for i := range buf {
			buf[i] = l.src.At(start + i)
		}
	}
	return string(buf)
}

func (l *Lexer) makeToken(tokenType TokenType, value string) Token {
	return Token{
		Type:   tokenType,
		Value:  value,
		Pos:    l.pos - len(value),
		Line:   l.line,
		Column: l.column - len(value),
	}
}

func (l *Lexer) errorf(format string, args ...any) error {
	return newSyntaxError(l.line, l.column, format, args...)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isHex(ch byte) bool {
	return isDigit(ch) || (ch >= 'A' && ch <= 'F') || (ch >= 'a' && ch <= 'f')
}
