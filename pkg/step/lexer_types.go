package step

import (
	"fmt"
	"io"
)

// Token represents a lexical token of an ISO 10303-21 exchange file
type Token struct {
	Type   TokenType
	Value  string
	Pos    int
	Line   int
	Column int
}

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Keywords: section markers, entity names, typed parameter names
	TokenKeyword

	// Literals
	TokenInstanceName // #123
	TokenString       // 'text'
	TokenInteger      // 42, -7
	TokenReal         // 1., -2.5E-3
	TokenEnum         // .ELEMENT., .T.
	TokenBinary       // "0A1F"

	// Omitted values
	TokenDollar // $
	TokenStar   // *

	// Delimiters
	TokenLeftParen  // (
	TokenRightParen // )
	TokenComma      // ,
	TokenSemicolon  // ;
	TokenEquals     // =
)

// Section and file markers
const (
	KeywordISO    = "ISO-10303-21"
	KeywordEndISO = "END-ISO-10303-21"
	KeywordHeader = "HEADER"
	KeywordData   = "DATA"
	KeywordEndSec = "ENDSEC"
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "ERROR"
	case TokenKeyword:
		return "KEYWORD"
	case TokenInstanceName:
		return "INSTANCE_NAME"
	case TokenString:
		return "STRING"
	case TokenInteger:
		return "INTEGER"
	case TokenReal:
		return "REAL"
	case TokenEnum:
		return "ENUM"
	case TokenBinary:
		return "BINARY"
	case TokenDollar:
		return "$"
	case TokenStar:
		return "*"
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	case TokenComma:
		return ","
	case TokenSemicolon:
		return ";"
	case TokenEquals:
		return "="
	default:
		return fmt.Sprintf("Token(%d)", t)
	}
}

// Source is the byte-addressable input a Lexer reads from.
// *mmap.ReaderAt from golang.org/x/exp/mmap satisfies it.
type Source interface {
	At(i int) byte
	Len() int
	ReadAt(p []byte, off int64) (int, error)
}

// Bytes adapts an in-memory buffer to Source.
type Bytes []byte

func (b Bytes) At(i int) byte { return b[i] }

func (b Bytes) Len() int { return len(b) }

func (b Bytes) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b)) {
		return 0, io.EOF
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
