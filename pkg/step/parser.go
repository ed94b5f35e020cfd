package step

import (
	"fmt"
	"strconv"
)

// Parser builds a File from a token stream
type Parser struct {
	lexer   *Lexer
	current Token
}

// NewParser creates a new parser
func NewParser(lexer *Lexer) *Parser {
	return &Parser{lexer: lexer}
}

// Parse reads a complete exchange file
func (p *Parser) Parse() (*File, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.current.Type != TokenKeyword || p.current.Value != KeywordISO {
		return nil, &SyntaxError{Line: p.current.Line, Column: p.current.Column, Msg: "missing ISO-10303-21 marker", Cause: ErrNotExchangeFile}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}

	file := newFile()

	for {
		token := p.current
		switch {
		case token.Type == TokenKeyword && token.Value == KeywordHeader:
			if err := p.parseHeader(file); err != nil {
				return nil, err
			}

		case token.Type == TokenKeyword && token.Value == KeywordData:
			if err := p.parseData(file); err != nil {
				return nil, err
			}

		case token.Type == TokenKeyword && token.Value == KeywordEndISO:
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.expect(TokenSemicolon); err != nil {
				return nil, err
			}
			return file, nil

		case token.Type == TokenEOF:
			// Truncated trailers are common in hand-edited files.
			return file, nil

		case token.Type == TokenKeyword:
			// Unknown sections (ANCHOR, REFERENCE, SIGNATURE) are skipped.
			if err := p.skipSection(); err != nil {
				return nil, err
			}

		default:
			return nil, p.unexpected("section keyword")
		}
	}
}

// parseHeader parses HEADER; record* ENDSEC;
func (p *Parser) parseHeader(file *File) error {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return err
	}

	for !p.isKeyword(KeywordEndSec) {
		if p.current.Type != TokenKeyword {
			return p.unexpected("header entity")
		}
		name := p.current.Value
		if err := p.advance(); err != nil {
			return err
		}
		params, err := p.parseParamList()
		if err != nil {
			return err
		}
		if err := p.expect(TokenSemicolon); err != nil {
			return err
		}
		file.Header.apply(name, params)
	}

	return p.endSection()
}

// parseData parses DATA [(params)]; instance* ENDSEC;
func (p *Parser) parseData(file *File) error {
	if err := p.advance(); err != nil {
		return err
	}
	if p.current.Type == TokenLeftParen {
		if _, err := p.parseParamList(); err != nil {
			return err
		}
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return err
	}

	for !p.isKeyword(KeywordEndSec) {
		inst, err := p.parseInstance()
		if err != nil {
			return err
		}
		if err := file.add(inst); err != nil {
			return err
		}
	}

	return p.endSection()
}

// parseInstance parses #id = RECORD(params); or #id = (RECORD(...) RECORD(...));
func (p *Parser) parseInstance() (*Instance, error) {
	if p.current.Type != TokenInstanceName {
		return nil, p.unexpected("instance name")
	}
	id, err := strconv.Atoi(p.current.Value)
	if err != nil {
		return nil, p.unexpected("instance name")
	}
	line := p.current.Line
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(TokenEquals); err != nil {
		return nil, err
	}

	inst := &Instance{ID: id, Line: line}

	if p.current.Type == TokenLeftParen {
		// Complex instance: a parenthesised sequence of partial records.
		if err := p.advance(); err != nil {
			return nil, err
		}
		for p.current.Type == TokenKeyword {
			part := Record{Type: p.current.Value}
			if err := p.advance(); err != nil {
				return nil, err
			}
			if part.Params, err = p.parseParamList(); err != nil {
				return nil, err
			}
			inst.Parts = append(inst.Parts, part)
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
	} else {
		if p.current.Type != TokenKeyword {
			return nil, p.unexpected("entity name")
		}
		inst.Type = p.current.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		if inst.Params, err = p.parseParamList(); err != nil {
			return nil, err
		}
	}

	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return inst, nil
}

// parseParamList parses ( [param {, param}] )
func (p *Parser) parseParamList() ([]Param, error) {
	if err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}

	params := make([]Param, 0, 8)
	if p.current.Type == TokenRightParen {
		return params, p.advance()
	}

	for {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)

		switch p.current.Type {
		case TokenComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case TokenRightParen:
			return params, p.advance()
		default:
			return nil, p.unexpected("',' or ')'")
		}
	}
}

// parseParam parses a single parameter
func (p *Parser) parseParam() (Param, error) {
	token := p.current

	var param Param
	switch token.Type {
	case TokenDollar:
		param = Param{Kind: ParamNull}
	case TokenStar:
		param = Param{Kind: ParamDerived}
	case TokenString:
		param = StringParam(token.Value)
	case TokenEnum:
		param = EnumParam(token.Value)
	case TokenBinary:
		param = Param{Kind: ParamBinary, Str: token.Value}
	case TokenInteger:
		i, err := strconv.ParseInt(token.Value, 10, 64)
		if err != nil {
			return Param{}, newSyntaxError(token.Line, token.Column, "invalid integer %q", token.Value)
		}
		param = IntegerParam(i)
	case TokenReal:
		f, err := strconv.ParseFloat(token.Value, 64)
		if err != nil {
			return Param{}, newSyntaxError(token.Line, token.Column, "invalid real %q", token.Value)
		}
		param = RealParam(f)
	case TokenInstanceName:
		id, err := strconv.Atoi(token.Value)
		if err != nil {
			return Param{}, newSyntaxError(token.Line, token.Column, "invalid instance name %q", token.Value)
		}
		param = RefParam(id)
	case TokenLeftParen:
		items, err := p.parseParamList()
		if err != nil {
			return Param{}, err
		}
		return ListParam(items...), nil
	case TokenKeyword:
		if err := p.advance(); err != nil {
			return Param{}, err
		}
		items, err := p.parseParamList()
		if err != nil {
			return Param{}, err
		}
		return Param{Kind: ParamTyped, Str: token.Value, List: items}, nil
	default:
		return Param{}, p.unexpected("parameter")
	}

	return param, p.advance()
}

// skipSection consumes tokens up to and including the next ENDSEC;
func (p *Parser) skipSection() error {
	for !p.isKeyword(KeywordEndSec) {
		if p.current.Type == TokenEOF {
			return p.unexpected(KeywordEndSec)
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
	return p.endSection()
}

func (p *Parser) endSection() error {
	if err := p.advance(); err != nil {
		return err
	}
	return p.expect(TokenSemicolon)
}

// Helper methods

func (p *Parser) advance() error {
	token, err := p.lexer.Next()
	if err != nil {
		return err
	}
	p.current = token
	return nil
}

func (p *Parser) expect(tokenType TokenType) error {
	if p.current.Type != tokenType {
		return p.unexpected(tokenType.String())
	}
	return p.advance()
}

func (p *Parser) isKeyword(value string) bool {
	return p.current.Type == TokenKeyword && p.current.Value == value
}

func (p *Parser) unexpected(want string) error {
	got := p.current.Type.String()
	if p.current.Value != "" && p.current.Type != TokenEOF {
		got = fmt.Sprintf("%s %q", got, p.current.Value)
	}
	return newSyntaxError(p.current.Line, p.current.Column, "expected %s, got %s", want, got)
}
