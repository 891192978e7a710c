package lexer

type TokenKind = string

const (

	// Type declarations
	TokenInteiro TokenKind = "inteiro"
	TokenReal    TokenKind = "real"

	// Decision
	TokenSe    TokenKind = "se"
	TokenEntao TokenKind = "entao"
	TokenSenao TokenKind = "senao"

	// Loops
	TokenEnquanto TokenKind = "enquanto"
	TokenRepita   TokenKind = "repita"
	TokenAte      TokenKind = "ate"

	// Built-in routines
	TokenLer     TokenKind = "ler"
	TokenMostrar TokenKind = "mostrar"

	// Arithmetic Operators
	TokenPlus     TokenKind = "+"
	TokenMinus    TokenKind = "-"
	TokenMultiply TokenKind = "*"
	TokenSlash    TokenKind = "/"

	// Logical Operators
	TokenAnd TokenKind = "&&"
	TokenOr  TokenKind = "||"

	// Relational Operators
	TokenLess           TokenKind = "<"
	TokenLessOrEqual    TokenKind = "<="
	TokenGreater        TokenKind = ">"
	TokenGreaterOrEqual TokenKind = ">="
	TokenEquals         TokenKind = "=="
	TokenNotEquals      TokenKind = "!="

	// Bind Operators
	TokenAssign TokenKind = "="

	// Separators
	TokenSemicolon TokenKind = ";"
	TokenComma     TokenKind = ","

	// Units
	TokenBraceOpen       TokenKind = "("
	TokenBraceClose      TokenKind = ")"
	TokenCurlyBraceOpen  TokenKind = "{"
	TokenCurlyBraceClose TokenKind = "}"

	// number types
	TokenInt   TokenKind = "integer literal"
	TokenFloat TokenKind = "real literal"

	// Var Naming
	TokenIdentifier TokenKind = "identifier"

	// Error
	TokenError TokenKind = "error"

	// EOF
	TokenEOF TokenKind = "end of file"
)

// Category groups token kinds the way the grammar talks about them.
type Category int

const (
	CategoryKeyword Category = iota
	CategoryOperator
	CategorySeparator
	CategoryInteger
	CategoryReal
	CategoryIdentifier
	CategoryEOF
	CategoryError
)

func (c Category) String() string {
	switch c {
	case CategoryKeyword:
		return "keyword"
	case CategoryOperator:
		return "operator"
	case CategorySeparator:
		return "separator"
	case CategoryInteger:
		return "integer literal"
	case CategoryReal:
		return "real literal"
	case CategoryIdentifier:
		return "identifier"
	case CategoryEOF:
		return "end of file"
	default:
		return "error"
	}
}

type LiteralToken struct {
	Text string
	Kind TokenKind
}

type Token struct {
	LiteralToken
	Row int
	Col int
}

// Category reports which lexical class the token belongs to.
func (t Token) Category() Category {
	return CategoryOf(t.Kind)
}
