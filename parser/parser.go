package parser

import (
	"fmt"
	"pminus/ast"
	"pminus/internals"
	"pminus/lexer"
	"strconv"
)

// relational and logical operators are accepted at every precedence level
var relOperators = map[lexer.TokenKind]bool{
	lexer.TokenGreater:        true,
	lexer.TokenGreaterOrEqual: true,
	lexer.TokenLess:           true,
	lexer.TokenLessOrEqual:    true,
	lexer.TokenEquals:         true,
	lexer.TokenNotEquals:      true,
	lexer.TokenAnd:            true,
	lexer.TokenOr:             true,
}

var addOperators = map[lexer.TokenKind]bool{
	lexer.TokenPlus:  true,
	lexer.TokenMinus: true,
}

var mulOperators = map[lexer.TokenKind]bool{
	lexer.TokenMultiply: true,
	lexer.TokenSlash:    true,
}

type Parser struct {
	lexer     *lexer.Lexer
	FilePath  string
	collector *internals.ErrorCollector

	curToken lexer.Token
}

func NewParser(lex *lexer.Lexer, collector *internals.ErrorCollector) *Parser {
	if collector == nil {
		collector = internals.NewErrorCollector()
	}
	p := Parser{
		lexer:     lex,
		FilePath:  lex.FilePath,
		collector: collector,
	}
	return &p
}

// Errors returns every diagnostic reported so far.
func (p *Parser) Errors() []error {
	return p.collector.Errors
}

func (p *Parser) nextToken() {
	p.curToken = p.lexer.NextToken()
}

func (p *Parser) curTokenKindIs(kind lexer.TokenKind) bool {
	return p.curToken.Kind == kind
}

func (p *Parser) error(tok lexer.Token, msg ...interface{}) {
	kind := internals.SyntaxError
	if tok.Kind == lexer.TokenError {
		kind = internals.LexicalError
	}
	p.collector.Report(kind, tok.Row, tok.Col, fmt.Sprint(msg...))
}

func (p *Parser) unexpected(expected string) {
	if expected == "" {
		p.error(p.curToken, "unexpected token -> ", lexer.FormatToken(p.curToken))
		return
	}
	p.error(p.curToken, "unexpected token -> ", lexer.FormatToken(p.curToken), ", expected ", expected)
}

// match consumes the current token when it has the expected kind. Otherwise
// it reports and leaves the token in place for the caller to resync on.
func (p *Parser) match(expected lexer.TokenKind) {
	if p.curTokenKindIs(expected) {
		p.nextToken()
		return
	}
	p.unexpected(strconv.Quote(expected))
}

// recover is the single resynchronisation routine: report the current token
// and discard it so parsing resumes with the next one.
func (p *Parser) recover() {
	if p.curTokenKindIs(lexer.TokenEOF) {
		p.error(p.curToken, "unexpected end of file")
		return
	}
	p.unexpected("")
	p.nextToken()
}

// Parse builds the syntax tree of the whole program. The returned tree may be
// partial when Errors is not empty.
func (p *Parser) Parse() *ast.TreeNode {
	p.nextToken()
	tree := p.parseStmtSequence()

	last := tree
	for last != nil && last.Sibling != nil {
		last = last.Sibling
	}

	// a stray senao/ate/} ends a sequence early, skip it and keep going
	for !p.curTokenKindIs(lexer.TokenEOF) {
		p.recover()
		rest := p.parseStmtSequence()
		if rest == nil {
			continue
		}
		if tree == nil {
			tree = rest
		} else {
			last.Sibling = rest
		}
		for last = rest; last.Sibling != nil; last = last.Sibling {
		}
	}

	return tree
}

func (p *Parser) endsSequence() bool {
	switch p.curToken.Kind {
	case lexer.TokenEOF, lexer.TokenCurlyBraceClose, lexer.TokenSenao, lexer.TokenAte:
		return true
	}
	return false
}

// stmt-sequence -> statement { [ ';' ] statement }
func (p *Parser) parseStmtSequence() *ast.TreeNode {
	head := p.parseStatement()
	tail := head

	for !p.endsSequence() {
		if p.curTokenKindIs(lexer.TokenSemicolon) {
			p.match(lexer.TokenSemicolon)
		}
		if p.endsSequence() {
			break
		}
		stmt := p.parseStatement()
		if stmt == nil {
			continue
		}
		if head == nil {
			head, tail = stmt, stmt
		} else {
			tail.Sibling = stmt
			tail = stmt
		}
	}

	return head
}

func (p *Parser) parseStatement() *ast.TreeNode {
	switch p.curToken.Kind {
	case lexer.TokenInteiro, lexer.TokenReal:
		return p.parseDeclaration()
	case lexer.TokenSe:
		return p.parseIfStatement()
	case lexer.TokenEnquanto:
		return p.parseWhileStatement()
	case lexer.TokenRepita:
		return p.parseRepeatStatement()
	case lexer.TokenIdentifier:
		return p.parseAssignStatement()
	case lexer.TokenLer:
		return p.parseReadStatement()
	case lexer.TokenMostrar:
		return p.parseWriteStatement()
	case lexer.TokenEOF:
		return nil
	default:
		p.recover()
		return nil
	}
}

// decl -> ('inteiro'|'real') expr { ',' expr }
func (p *Parser) parseDeclaration() *ast.TreeNode {
	stmt := ast.NewStmtNode(ast.DeclareStmt, p.curToken.Row)
	stmt.Name = p.curToken.Text
	stmt.Type = ast.Integer
	if p.curTokenKindIs(lexer.TokenReal) {
		stmt.Type = ast.Real
	}
	p.nextToken()

	first := p.parseExpression()
	if first == nil {
		return stmt
	}
	first.Type = stmt.Type
	stmt.Child[0] = first

	current := first
	for p.curTokenKindIs(lexer.TokenComma) {
		p.match(lexer.TokenComma)
		next := p.parseExpression()
		if next == nil {
			continue
		}
		next.Type = stmt.Type
		current.Sibling = next
		current = next
	}

	return stmt
}

// block-or-stmt -> '{' stmt-sequence '}' | if-stmt | statement
func (p *Parser) parseBlockOrStatement() *ast.TreeNode {
	switch p.curToken.Kind {
	case lexer.TokenCurlyBraceOpen:
		p.match(lexer.TokenCurlyBraceOpen)
		body := p.parseStmtSequence()
		p.match(lexer.TokenCurlyBraceClose)
		return body
	case lexer.TokenSe:
		return p.parseIfStatement()
	default:
		return p.parseStatement()
	}
}

// if-stmt -> 'se' expr [ 'entao' ] block-or-stmt [ 'senao' block-or-stmt ]
func (p *Parser) parseIfStatement() *ast.TreeNode {
	stmt := ast.NewStmtNode(ast.IfStmt, p.curToken.Row)
	stmt.Name = p.curToken.Text
	p.match(lexer.TokenSe)

	stmt.Child[0] = p.parseExpression()

	if p.curTokenKindIs(lexer.TokenEntao) {
		p.match(lexer.TokenEntao)
	}

	stmt.Child[1] = p.parseBlockOrStatement()

	if p.curTokenKindIs(lexer.TokenSenao) {
		p.match(lexer.TokenSenao)
		stmt.Child[2] = p.parseBlockOrStatement()
	}

	return stmt
}

// while-stmt -> 'enquanto' expr block-or-stmt
func (p *Parser) parseWhileStatement() *ast.TreeNode {
	stmt := ast.NewStmtNode(ast.WhileStmt, p.curToken.Row)
	stmt.Name = p.curToken.Text
	p.match(lexer.TokenEnquanto)

	stmt.Child[0] = p.parseExpression()
	stmt.Child[1] = p.parseBlockOrStatement()

	return stmt
}

// repeat-stmt -> 'repita' [ '{' ] stmt-sequence [ '}' ] 'ate' expr
func (p *Parser) parseRepeatStatement() *ast.TreeNode {
	stmt := ast.NewStmtNode(ast.RepeatStmt, p.curToken.Row)
	stmt.Name = p.curToken.Text
	p.match(lexer.TokenRepita)

	if p.curTokenKindIs(lexer.TokenCurlyBraceOpen) {
		p.match(lexer.TokenCurlyBraceOpen)
	}
	stmt.Child[0] = p.parseStmtSequence()
	if p.curTokenKindIs(lexer.TokenCurlyBraceClose) {
		p.match(lexer.TokenCurlyBraceClose)
	}

	p.match(lexer.TokenAte)
	stmt.Child[1] = p.parseExpression()

	return stmt
}

// assign-stmt -> identifier '=' expr
func (p *Parser) parseAssignStatement() *ast.TreeNode {
	stmt := ast.NewStmtNode(ast.AssignStmt, p.curToken.Row)
	stmt.Name = p.curToken.Text
	p.match(lexer.TokenIdentifier)
	p.match(lexer.TokenAssign)

	stmt.Child[0] = p.parseExpression()

	return stmt
}

// read-stmt -> 'ler' '(' identifier ')'
func (p *Parser) parseReadStatement() *ast.TreeNode {
	stmt := ast.NewStmtNode(ast.ReadStmt, p.curToken.Row)
	p.match(lexer.TokenLer)
	p.match(lexer.TokenBraceOpen)

	if p.curTokenKindIs(lexer.TokenIdentifier) {
		stmt.Name = p.curToken.Text
	}
	p.match(lexer.TokenIdentifier)
	p.match(lexer.TokenBraceClose)

	return stmt
}

// write-stmt -> 'mostrar' '(' expr ')'
func (p *Parser) parseWriteStatement() *ast.TreeNode {
	stmt := ast.NewStmtNode(ast.WriteStmt, p.curToken.Row)
	p.match(lexer.TokenMostrar)
	p.match(lexer.TokenBraceOpen)

	stmt.Child[0] = p.parseExpression()

	p.match(lexer.TokenBraceClose)

	return stmt
}

func (p *Parser) newOperation(left *ast.TreeNode) *ast.TreeNode {
	op := ast.NewExpNode(ast.OpExp, p.curToken.Row)
	op.Op = p.curToken.Kind
	op.Child[0] = left
	p.nextToken()
	return op
}

// expr -> simple-expr [ rel-op simple-expr ]
func (p *Parser) parseExpression() *ast.TreeNode {
	left := p.parseSimpleExpression()
	if relOperators[p.curToken.Kind] {
		op := p.newOperation(left)
		op.Child[1] = p.parseSimpleExpression()
		return op
	}
	return left
}

// simple-expr -> term { (add-op | rel-op) term }
func (p *Parser) parseSimpleExpression() *ast.TreeNode {
	left := p.parseTerm()
	for addOperators[p.curToken.Kind] || relOperators[p.curToken.Kind] {
		op := p.newOperation(left)
		op.Child[1] = p.parseTerm()
		left = op
	}
	return left
}

// term -> factor { (mul-op | rel-op) factor }
func (p *Parser) parseTerm() *ast.TreeNode {
	left := p.parseFactor()
	for mulOperators[p.curToken.Kind] || relOperators[p.curToken.Kind] {
		op := p.newOperation(left)
		op.Child[1] = p.parseFactor()
		left = op
	}
	return left
}

// factor -> '(' expr ')' | integer-lit | real-lit | identifier
func (p *Parser) parseFactor() *ast.TreeNode {
	tok := p.curToken

	switch tok.Kind {
	case lexer.TokenInt:
		node := ast.NewExpNode(ast.ConstExp, tok.Row)
		node.Type = ast.Integer
		// an out of range literal saturates at the largest int64
		num, _ := strconv.ParseInt(tok.Text, 10, 64)
		node.IntVal = num
		p.nextToken()
		return node

	case lexer.TokenFloat:
		node := ast.NewExpNode(ast.ConstExp, tok.Row)
		node.Type = ast.Real
		// a lone "." scans as a real literal and reads as zero
		num, _ := strconv.ParseFloat(tok.Text, 64)
		node.RealVal = num
		p.nextToken()
		return node

	case lexer.TokenIdentifier:
		node := ast.NewExpNode(ast.IdExp, tok.Row)
		node.Name = tok.Text
		p.nextToken()
		return node

	case lexer.TokenBraceOpen:
		p.match(lexer.TokenBraceOpen)
		node := p.parseExpression()
		p.match(lexer.TokenBraceClose)
		return node

	default:
		p.recover()
		return nil
	}
}
