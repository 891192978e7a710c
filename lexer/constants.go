package lexer

type Operator = string

// reservedWords is scanned linearly, in declaration order, after every identifier.
var reservedWords = []LiteralToken{
	{Text: "inteiro", Kind: TokenInteiro},
	{Text: "real", Kind: TokenReal},
	{Text: "se", Kind: TokenSe},
	{Text: "entao", Kind: TokenEntao},
	{Text: "senao", Kind: TokenSenao},
	{Text: "enquanto", Kind: TokenEnquanto},
	{Text: "repita", Kind: TokenRepita},
	{Text: "ate", Kind: TokenAte},
	{Text: "ler", Kind: TokenLer},
	{Text: "mostrar", Kind: TokenMostrar},
}

var (
	// Operators that may appear inside an expression.
	BinOperators = map[TokenKind]Operator{
		TokenPlus:           "+",
		TokenMinus:          "-",
		TokenMultiply:       "*",
		TokenSlash:          "/",
		TokenAnd:            "&&",
		TokenOr:             "||",
		TokenLess:           "<",
		TokenLessOrEqual:    "<=",
		TokenGreater:        ">",
		TokenGreaterOrEqual: ">=",
		TokenEquals:         "==",
		TokenNotEquals:      "!=",
	}

	// RelOperators always yield a boolean.
	RelOperators = map[TokenKind]Operator{
		TokenLess:           "<",
		TokenLessOrEqual:    "<=",
		TokenGreater:        ">",
		TokenGreaterOrEqual: ">=",
		TokenEquals:         "==",
		TokenNotEquals:      "!=",
	}

	Separators = map[TokenKind]Operator{
		TokenSemicolon:       ";",
		TokenComma:           ",",
		TokenBraceOpen:       "(",
		TokenBraceClose:      ")",
		TokenCurlyBraceOpen:  "{",
		TokenCurlyBraceClose: "}",
	}
)

// LookupIdent returns the keyword kind for text, or TokenIdentifier.
func LookupIdent(text string) TokenKind {
	for _, word := range reservedWords {
		if word.Text == text {
			return word.Kind
		}
	}
	return TokenIdentifier
}

// IsKeyword reports whether kind is one of the reserved words.
func IsKeyword(kind TokenKind) bool {
	for _, word := range reservedWords {
		if word.Kind == kind {
			return true
		}
	}
	return false
}

func CategoryOf(kind TokenKind) Category {
	switch {
	case IsKeyword(kind):
		return CategoryKeyword
	case kind == TokenAssign:
		return CategoryOperator
	case kind == TokenInt:
		return CategoryInteger
	case kind == TokenFloat:
		return CategoryReal
	case kind == TokenIdentifier:
		return CategoryIdentifier
	case kind == TokenEOF:
		return CategoryEOF
	}
	if _, ok := BinOperators[kind]; ok {
		return CategoryOperator
	}
	if _, ok := Separators[kind]; ok {
		return CategorySeparator
	}
	return CategoryError
}
