package json

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLeftBrace
	TokenRightBrace
	TokenLeftBracket
	TokenRightBracket
	TokenColon
	TokenComma
	TokenString
	TokenNumber
	TokenTrue
	TokenFalse
	TokenNull
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenLeftBrace:
		return "'{'"
	case TokenRightBrace:
		return "'}'"
	case TokenLeftBracket:
		return "'['"
	case TokenRightBracket:
		return "']'"
	case TokenColon:
		return "':'"
	case TokenComma:
		return "','"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenTrue:
		return "'true'"
	case TokenFalse:
		return "'false'"
	case TokenNull:
		return "'null'"
	}
	return "unknown token"
}

// Token is a single lexical unit of a JSON document. Value holds the
// decoded payload for string tokens and the raw lexeme for number tokens.
type Token struct {
	Type   TokenType
	Value  string
	Line   int
	Column int
	Offset int
}
