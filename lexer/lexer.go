package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

const (
	// MaxTokenLen bounds a saved lexeme, extra characters are dropped.
	MaxTokenLen = 40

	// BufLen is the line buffer size. A source line is read at most
	// BufLen-2 characters at a time and every refill advances Row, so a
	// longer line is counted as several lines.
	BufLen = 256
)

type stateType int

const (
	stateStart stateType = iota
	stateInAssign
	stateInInteger
	stateInReal
	stateInIdentifier
	stateInComment
	stateDone
)

const eof rune = -1

type Lexer struct {
	// help mainly in error detection when having multi file execution
	FilePath string
	Row      int
	Col      int

	// listing receives the echoed source and the token trace
	Listing    io.Writer
	EchoSource bool
	TraceScan  bool

	source  *bufio.Reader
	lineBuf []rune
	linePos int
	eofFlag bool
	err     error
}

func NewLexer(filePath string, content string) *Lexer {
	return NewReaderLexer(filePath, strings.NewReader(content))
}

func NewReaderLexer(filePath string, src io.Reader) *Lexer {
	lexer := Lexer{
		FilePath: filePath,
		source:   bufio.NewReader(src),
		lineBuf:  make([]rune, 0, BufLen),
	}
	return &lexer
}

// Err returns the first read error other than io.EOF.
func (l *Lexer) Err() error {
	return l.err
}

func (l *Lexer) readLine() bool {
	l.lineBuf = l.lineBuf[:0]
	for len(l.lineBuf) < BufLen-2 {
		char, _, err := l.source.ReadRune()
		if err != nil {
			if err != io.EOF && l.err == nil {
				l.err = err
			}
			break
		}
		l.lineBuf = append(l.lineBuf, char)
		if char == '\n' {
			break
		}
	}
	return len(l.lineBuf) > 0
}

func (l *Lexer) getNextChar() rune {
	if l.linePos >= len(l.lineBuf) {
		if l.eofFlag || !l.readLine() {
			l.eofFlag = true
			return eof
		}
		l.Row++
		l.linePos = 0
		l.echo()
	}
	char := l.lineBuf[l.linePos]
	l.linePos++
	l.Col = l.linePos
	return char
}

// ungetNextChar pushes back exactly one character; it is a no-op once the
// source is exhausted.
func (l *Lexer) ungetNextChar() {
	if !l.eofFlag {
		l.linePos--
		l.Col = l.linePos
	}
}

// follows consumes the next character when it equals want.
func (l *Lexer) follows(want rune) bool {
	if l.getNextChar() == want {
		return true
	}
	l.ungetNextChar()
	return false
}

func (l *Lexer) echo() {
	if !l.EchoSource || l.Listing == nil {
		return
	}
	line := string(l.lineBuf)
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	fmt.Fprintf(l.Listing, "%4d: %s", l.Row, line)
}

func (l *Lexer) NextToken() Token {
	text := make([]rune, 0, MaxTokenLen)
	state := stateStart
	kind := TokenError
	token := Token{}

	for state != stateDone {
		char := l.getNextChar()
		row, col := l.Row, l.Col
		save := true
		var pending rune

		switch state {
		case stateStart:
			switch {
			case isDigit(char):
				state = stateInInteger
			case char == '.':
				state = stateInReal
			case isLetter(char):
				state = stateInIdentifier
			case char == ':':
				state = stateInAssign
			case isBlank(char):
				save = false
			default:
				state = stateDone
				switch char {
				case eof:
					save = false
					kind = TokenEOF
				case '{':
					kind = TokenCurlyBraceOpen
				case '}':
					kind = TokenCurlyBraceClose
				case '(':
					kind = TokenBraceOpen
				case ')':
					kind = TokenBraceClose
				case ';':
					kind = TokenSemicolon
				case ',':
					kind = TokenComma
				case '+':
					kind = TokenPlus
				case '-':
					kind = TokenMinus
				case '*':
					kind = TokenMultiply
				case '=':
					kind = TokenAssign
					if l.follows('=') {
						kind, pending = TokenEquals, '='
					}
				case '<':
					kind = TokenLess
					if l.follows('=') {
						kind, pending = TokenLessOrEqual, '='
					}
				case '>':
					kind = TokenGreater
					if l.follows('=') {
						kind, pending = TokenGreaterOrEqual, '='
					}
				case '!':
					if l.follows('=') {
						kind, pending = TokenNotEquals, '='
					}
				case '&':
					if l.follows('&') {
						kind, pending = TokenAnd, '&'
					}
				case '|':
					if l.follows('|') {
						kind, pending = TokenOr, '|'
					}
				case '/':
					kind = TokenSlash
					if l.follows('*') {
						save = false
						state = stateInComment
					}
				}
			}

		case stateInComment:
			save = false
			if char == eof {
				state = stateDone
				kind = TokenEOF
			} else if char == '*' && l.follows('/') {
				state = stateStart
				kind = TokenError
			}

		case stateInAssign:
			state = stateDone
			if char == '=' {
				kind = TokenAssign
			} else {
				l.ungetNextChar()
				save = false
				kind = TokenError
			}

		case stateInInteger:
			if char == '.' {
				state = stateInReal
			} else if !isDigit(char) {
				l.ungetNextChar()
				save = false
				state = stateDone
				kind = TokenInt
			}

		case stateInReal:
			if !isDigit(char) {
				l.ungetNextChar()
				save = false
				state = stateDone
				kind = TokenFloat
			}

		case stateInIdentifier:
			if !isLetter(char) && !isDigit(char) {
				l.ungetNextChar()
				save = false
				state = stateDone
				kind = TokenIdentifier
			}
		}

		if save {
			if len(text) == 0 {
				token.Row, token.Col = row, col
			}
			if len(text) < MaxTokenLen {
				text = append(text, char)
			}
			if pending != 0 && len(text) < MaxTokenLen {
				text = append(text, pending)
			}
		}
	}

	if kind == TokenEOF {
		token.Row, token.Col = l.Row, l.Col
	}

	token.Text = string(text)
	if kind == TokenIdentifier {
		kind = LookupIdent(token.Text)
	}
	token.Kind = kind

	if l.TraceScan && l.Listing != nil {
		fmt.Fprintf(l.Listing, "\t%d: %s\n", token.Row, FormatToken(token))
	}

	return token
}

func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	return tokens
}

// FormatToken renders a token the way the scan trace and syntax errors show it.
func FormatToken(tok Token) string {
	switch tok.Kind {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "ERROR: " + tok.Text
	default:
		return tok.Text
	}
}

func isLetter(char rune) bool {
	return char != eof && unicode.IsLetter(char)
}

func isDigit(char rune) bool {
	return char >= '0' && char <= '9'
}

func isBlank(char rune) bool {
	return char == ' ' || char == '\t' || char == '\n' || char == '\r'
}
