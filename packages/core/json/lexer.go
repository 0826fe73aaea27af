package json

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Lexer scans JSON source text one token at a time. It owns no state
// beyond the input string and its cursor; restarting a scan means
// constructing a fresh Lexer.
type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
	line    int
	column  int
}

func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// NextToken produces the next token, skipping insignificant whitespace.
func (l *Lexer) NextToken() (Token, *ParseError) {
	l.skipWhitespace()

	tok := Token{Line: l.line, Column: l.column, Offset: l.pos}

	if l.atEOF() {
		tok.Type = TokenEOF
		return tok, nil
	}

	switch l.ch {
	case '{':
		tok.Type = TokenLeftBrace
		l.readChar()
	case '}':
		tok.Type = TokenRightBrace
		l.readChar()
	case '[':
		tok.Type = TokenLeftBracket
		l.readChar()
	case ']':
		tok.Type = TokenRightBracket
		l.readChar()
	case ':':
		tok.Type = TokenColon
		l.readChar()
	case ',':
		tok.Type = TokenComma
		l.readChar()
	case '"':
		return l.readString(tok)
	default:
		if l.ch == '-' || isDigit(l.ch) {
			return l.readNumber(tok)
		}
		if isLetter(l.ch) {
			return l.readKeyword(tok)
		}
		return tok, l.errorHere(UnexpectedToken, fmt.Sprintf("unexpected character %q", l.ch))
	}

	return tok, nil
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readString(tok Token) (Token, *ParseError) {
	l.readChar() // opening quote

	var builder strings.Builder
	for {
		if l.atEOF() {
			return tok, l.errorHere(UnterminatedString, "unterminated string")
		}
		switch {
		case l.ch == '"':
			l.readChar()
			tok.Type = TokenString
			tok.Value = builder.String()
			return tok, nil
		case l.ch == '\\':
			if err := l.readEscape(&builder); err != nil {
				return tok, err
			}
		case l.ch < 0x20:
			return tok, l.errorHere(UnexpectedToken, fmt.Sprintf("control character %#02x in string", l.ch))
		default:
			builder.WriteByte(l.ch)
			l.readChar()
		}
	}
}

func (l *Lexer) readEscape(builder *strings.Builder) *ParseError {
	escLine, escColumn := l.line, l.column
	l.readChar() // backslash

	switch l.ch {
	case '"':
		builder.WriteByte('"')
	case '\\':
		builder.WriteByte('\\')
	case '/':
		builder.WriteByte('/')
	case 'b':
		builder.WriteByte('\b')
	case 'f':
		builder.WriteByte('\f')
	case 'n':
		builder.WriteByte('\n')
	case 'r':
		builder.WriteByte('\r')
	case 't':
		builder.WriteByte('\t')
	case 'u':
		return l.readUnicodeEscape(builder, escLine, escColumn)
	default:
		if l.atEOF() {
			return l.errorHere(UnterminatedString, "unterminated string")
		}
		return &ParseError{
			Kind:    InvalidEscape,
			Line:    escLine,
			Column:  escColumn,
			Message: fmt.Sprintf("invalid escape sequence \\%c", l.ch),
		}
	}
	l.readChar()
	return nil
}

func (l *Lexer) readUnicodeEscape(builder *strings.Builder, escLine, escColumn int) *ParseError {
	l.readChar() // 'u'

	code, err := l.readHex4(escLine, escColumn)
	if err != nil {
		return err
	}

	r := rune(code)
	if utf16.IsSurrogate(r) {
		// A high surrogate must be followed by \uXXXX holding the low
		// half. Anything else decodes to U+FFFD, matching the standard
		// library's lenient handling.
		if l.ch == '\\' && l.readPos < len(l.input) && l.input[l.readPos] == 'u' {
			l.readChar()
			l.readChar()
			low, err := l.readHex4(escLine, escColumn)
			if err != nil {
				return err
			}
			if combined := utf16.DecodeRune(r, rune(low)); combined != utf8.RuneError {
				builder.WriteRune(combined)
				return nil
			}
			builder.WriteRune(utf8.RuneError)
			builder.WriteRune(utf8.RuneError)
			return nil
		}
		builder.WriteRune(utf8.RuneError)
		return nil
	}

	builder.WriteRune(r)
	return nil
}

func (l *Lexer) readHex4(escLine, escColumn int) (int, *ParseError) {
	code := 0
	for i := 0; i < 4; i++ {
		if l.atEOF() {
			return 0, l.errorHere(UnterminatedString, "unterminated string")
		}
		d := hexDigit(l.ch)
		if d < 0 {
			return 0, &ParseError{
				Kind:    InvalidEscape,
				Line:    escLine,
				Column:  escColumn,
				Message: fmt.Sprintf("invalid character %q in \\u escape", l.ch),
			}
		}
		code = code<<4 | d
		l.readChar()
	}
	return code, nil
}

func (l *Lexer) readNumber(tok Token) (Token, *ParseError) {
	start := l.pos

	if l.ch == '-' {
		l.readChar()
		if !isDigit(l.ch) {
			return tok, l.errorHere(InvalidNumber, "expected digit after '-'")
		}
	}

	if l.ch == '0' {
		l.readChar()
		if isDigit(l.ch) {
			return tok, l.errorHere(InvalidNumber, "leading zeros are not permitted")
		}
	} else {
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == '.' {
		l.readChar()
		if !isDigit(l.ch) {
			return tok, l.errorHere(InvalidNumber, "expected digit after decimal point")
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if !isDigit(l.ch) {
			return tok, l.errorHere(InvalidNumber, "expected digit in exponent")
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	tok.Type = TokenNumber
	tok.Value = l.input[start:l.pos]
	return tok, nil
}

func (l *Lexer) readKeyword(tok Token) (Token, *ParseError) {
	start := l.pos
	for isLetter(l.ch) {
		l.readChar()
	}
	word := l.input[start:l.pos]

	switch word {
	case "true":
		tok.Type = TokenTrue
	case "false":
		tok.Type = TokenFalse
	case "null":
		tok.Type = TokenNull
	default:
		return tok, &ParseError{
			Kind:    UnexpectedToken,
			Line:    tok.Line,
			Column:  tok.Column,
			Message: fmt.Sprintf("unexpected literal %q", word),
		}
	}
	return tok, nil
}

func (l *Lexer) errorHere(kind ErrorKind, message string) *ParseError {
	return &ParseError{
		Kind:    kind,
		Line:    l.line,
		Column:  l.column,
		Message: message,
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func hexDigit(ch byte) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10
	}
	return -1
}
