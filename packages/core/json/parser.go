package json

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxDepth bounds object/array nesting. Documents deeper than this fail
// with DepthExceeded instead of risking unbounded stack growth.
const MaxDepth = 1000

type Parser struct {
	lexer *Lexer
	tok   Token
	depth int
}

// Parse turns a complete JSON document into a Value tree. Errors are
// always *ParseError; on failure no partial tree is returned.
func Parse(input string) (*Value, error) {
	p := &Parser{lexer: NewLexer(input)}
	if err := p.next(); err != nil {
		return nil, err
	}

	v, err := p.parseValue("")
	if err != nil {
		// A value alongside an error means the top-level value parsed
		// completely and the lexer choked on what follows it, so the
		// document has trailing garbage rather than a malformed value.
		if v != nil {
			return nil, &ParseError{
				Kind:    TrailingContent,
				Line:    err.Line,
				Column:  err.Column,
				Message: "unparseable content after top-level value",
			}
		}
		return nil, err
	}

	if p.tok.Type != TokenEOF {
		return nil, &ParseError{
			Kind:    TrailingContent,
			Line:    p.tok.Line,
			Column:  p.tok.Column,
			Message: fmt.Sprintf("unexpected %s after top-level value", p.tok.Type),
		}
	}
	return v, nil
}

func (p *Parser) next() *ParseError {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) parseValue(path string) (*Value, *ParseError) {
	switch p.tok.Type {
	case TokenString:
		v := NewString(p.tok.Value)
		v.path = path
		return v, p.next()
	case TokenNumber:
		v := numberValue(p.tok.Value)
		v.path = path
		return v, p.next()
	case TokenTrue:
		v := NewBool(true)
		v.path = path
		return v, p.next()
	case TokenFalse:
		v := NewBool(false)
		v.path = path
		return v, p.next()
	case TokenNull:
		v := NewNull()
		v.path = path
		return v, p.next()
	case TokenLeftBrace:
		return p.parseObject(path)
	case TokenLeftBracket:
		return p.parseArray(path)
	case TokenEOF:
		return nil, p.errAt(UnexpectedEnd, p.tok, "expected a value")
	default:
		return nil, p.errAt(UnexpectedToken, p.tok, fmt.Sprintf("expected a value, found %s", p.tok.Type))
	}
}

func (p *Parser) parseObject(path string) (*Value, *ParseError) {
	open := p.tok
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxDepth {
		return nil, p.errAt(DepthExceeded, open, fmt.Sprintf("nesting deeper than %d levels", MaxDepth))
	}

	if err := p.next(); err != nil { // consume '{'
		return nil, err
	}

	obj := NewObject()
	obj.path = path

	if p.tok.Type == TokenRightBrace {
		return obj, p.next()
	}

	for {
		if p.tok.Type != TokenString {
			if p.tok.Type == TokenEOF {
				return nil, p.errAt(UnexpectedEnd, p.tok, "expected object key")
			}
			return nil, p.errAt(UnexpectedToken, p.tok, fmt.Sprintf("expected object key, found %s", p.tok.Type))
		}
		key := p.tok.Value
		if err := p.next(); err != nil {
			return nil, err
		}

		if p.tok.Type != TokenColon {
			if p.tok.Type == TokenEOF {
				return nil, p.errAt(UnexpectedEnd, p.tok, "expected ':' after object key")
			}
			return nil, p.errAt(UnexpectedToken, p.tok, fmt.Sprintf("expected ':' after object key, found %s", p.tok.Type))
		}
		if err := p.next(); err != nil {
			return nil, err
		}

		child, err := p.parseValue(childPath(path, key))
		if err != nil {
			return nil, err
		}
		obj.setMember(key, child)

		switch p.tok.Type {
		case TokenComma:
			comma := p.tok
			if err := p.next(); err != nil {
				return nil, err
			}
			if p.tok.Type == TokenRightBrace {
				return nil, p.errAt(UnexpectedToken, comma, "trailing comma before '}'")
			}
		case TokenRightBrace:
			return obj, p.next()
		case TokenEOF:
			return nil, p.errAt(UnexpectedEnd, p.tok, "expected ',' or '}'")
		default:
			return nil, p.errAt(UnexpectedToken, p.tok, fmt.Sprintf("expected ',' or '}', found %s", p.tok.Type))
		}
	}
}

func (p *Parser) parseArray(path string) (*Value, *ParseError) {
	open := p.tok
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxDepth {
		return nil, p.errAt(DepthExceeded, open, fmt.Sprintf("nesting deeper than %d levels", MaxDepth))
	}

	if err := p.next(); err != nil { // consume '['
		return nil, err
	}

	arr := NewArray()
	arr.path = path

	if p.tok.Type == TokenRightBracket {
		return arr, p.next()
	}

	for {
		child, err := p.parseValue(indexPath(path, len(arr.items)))
		if err != nil {
			return nil, err
		}
		arr.items = append(arr.items, child)

		switch p.tok.Type {
		case TokenComma:
			comma := p.tok
			if err := p.next(); err != nil {
				return nil, err
			}
			if p.tok.Type == TokenRightBracket {
				return nil, p.errAt(UnexpectedToken, comma, "trailing comma before ']'")
			}
		case TokenRightBracket:
			return arr, p.next()
		case TokenEOF:
			return nil, p.errAt(UnexpectedEnd, p.tok, "expected ',' or ']'")
		default:
			return nil, p.errAt(UnexpectedToken, p.tok, fmt.Sprintf("expected ',' or ']', found %s", p.tok.Type))
		}
	}
}

// setMember inserts with last-write-wins semantics: a duplicated key
// keeps a single member whose position is that of the second write.
func (v *Value) setMember(key string, child *Value) {
	for i, m := range v.members {
		if m.Key == key {
			v.members = append(v.members[:i], v.members[i+1:]...)
			break
		}
	}
	v.members = append(v.members, Member{Key: key, Value: child})
}

func numberValue(lexeme string) *Value {
	if !strings.ContainsAny(lexeme, ".eE") {
		if i, err := strconv.ParseInt(lexeme, 10, 64); err == nil {
			return NewInt(i)
		}
		// Integral literal outside the int64 range: fall back to the
		// float representation.
	}
	f, _ := strconv.ParseFloat(lexeme, 64)
	return NewFloat(f)
}

func (p *Parser) errAt(kind ErrorKind, tok Token, message string) *ParseError {
	return &ParseError{
		Kind:    kind,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: message,
	}
}
