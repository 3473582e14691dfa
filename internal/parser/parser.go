// Package parser turns a nyx token stream into an *ast.Scope. Overall
// shape — curToken/peekToken lookahead, expectPeek-driven error
// recovery, and a Pratt expression parser with a precedence table and
// prefix/infix function maps — follows the teacher's expression parser
// (btouchard-gmx/internal/compiler/script/parser.go); the statement
// grammar itself (create/set/func/return) is nyx's own, per spec.md
// §4.1.
package parser

import (
	"github.com/nyxlang/nyxc/internal/ast"
	"github.com/nyxlang/nyxc/internal/diag"
	"github.com/nyxlang/nyxc/internal/lexer"
	"github.com/nyxlang/nyxc/internal/span"
	"github.com/nyxlang/nyxc/internal/token"
)

// Precedence levels for the expression Pratt parser. Only additive,
// multiplicative, unary, and call positions exist in nyx — `<`/`>`
// never appear as binary comparison operators, they exclusively open
// and close a call's or type's explicit generic argument list.
const (
	_ int = iota
	LOWEST
	SUM     // + -
	PRODUCT // * /
	UNARY   // -x
	CALLPOS // f(...), f<T>(...)
)

var precedences = map[token.Type]int{
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.LPAREN:   CALLPOS,
	token.LT:       CALLPOS,
}

type prefixParseFn func() ast.Expr
type infixParseFn func(ast.Expr) ast.Expr

type Parser struct {
	l      *lexer.Lexer
	fileID int
	diags  *diag.Bag

	curToken   token.Token
	peekToken  token.Token
	// peek2Token gives create-statement parsing the extra lookahead it
	// needs to tell `mut ident = expr` (sugar) apart from `mut type
	// ident ...` (full form) before committing to either shape.
	peek2Token token.Token

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New constructs a Parser over l, attaching diagnostics to diags under
// the given fileID (used to build every span.Span the parser emits).
func New(l *lexer.Lexer, fileID int, diags *diag.Bag) *Parser {
	p := &Parser{l: l, fileID: fileID, diags: diags}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:   p.parseIdentExpr,
		token.DISCARD: p.parseIdentExpr,
		token.NUMBER:  p.parseNumberLiteral,
		token.MINUS:   p.parseUnaryExpr,
		token.LPAREN:  p.parseGroupedExpr,
		token.LBRACE:  p.parseScopeExpr,
	}
	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:     p.parseBinaryExpr,
		token.MINUS:    p.parseBinaryExpr,
		token.ASTERISK: p.parseBinaryExpr,
		token.SLASH:    p.parseBinaryExpr,
		token.LPAREN:   p.parseCallExpr,
		token.LT:       p.parseGenericCallExpr,
	}

	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// ParseScope parses a bare top-level scope (the whole file) up to EOF.
func (p *Parser) ParseScope() *ast.Scope {
	start := p.curToken.Pos
	scope := &ast.Scope{}
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStmt()
		if stmt != nil {
			scope.Stmts = append(scope.Stmts, stmt)
		}
		// Every parseStmt path leaves curToken on the statement's last
		// consumed token (an expression's final token, or a `;`/`}`
		// already consumed via expectPeek) — advance once unconditionally
		// before skipSemicolons looks for any further terminators. This
		// also bounds error recovery: a nil stmt still moves past the
		// offending token instead of spinning on it forever.
		if !p.curTokenIs(token.EOF) {
			p.nextToken()
		}
		p.skipSemicolons()
	}
	scope.Sp = p.spanFrom(start)
	return scope
}

// Diagnostics returns every diagnostic recorded in this parser's bag.
func (p *Parser) Diagnostics() []diag.Diagnostic { return p.diags.All() }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.peek2Token
	p.peek2Token = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.diags.Add(diag.UnexpectedToken(p.tokenSpan(p.peekToken), []string{string(t)}, string(p.peekToken.Type)))
	return false
}

func (p *Parser) skipSemicolons() {
	for p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

func (p *Parser) tokenSpan(t token.Token) span.Span {
	return span.New(p.fileID, t.Pos.Offset, t.End)
}

func (p *Parser) spanFrom(start token.Position) span.Span {
	return span.New(p.fileID, start.Offset, p.curToken.End)
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// --- statements ---

func (p *Parser) parseStmt() ast.Stmt {
	switch p.curToken.Type {
	case token.RETURN, token.YIELD:
		return p.parseReturnStmt()
	case token.LET:
		return p.parseCreateSugarStmt()
	case token.MUT:
		// `mut ident = expr` (sugar) vs `mut type ident (= expr)?`
		// (full form) both start with `mut` then an identifier; the
		// token after that identifier tells them apart.
		if p.peek2Token.Type == token.ASSIGN {
			return p.parseCreateSugarStmt()
		}
		return p.parseMutFullCreateStmt()
	case token.IDENT, token.DISCARD:
		return p.parseCreateOrSetStmt()
	case token.EXTERN, token.FUNC:
		return p.parseFuncStmt()
	default:
		p.diags.Add(diag.UnexpectedToken(p.tokenSpan(p.curToken),
			[]string{"return", "yield", "let", "mut", "identifier", "extern", "func"}, string(p.curToken.Type)))
		return nil
	}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.curToken.Pos
	isYield := p.curTokenIs(token.YIELD)
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return &ast.ReturnStmt{Sp: p.spanFrom(start), Value: value, IsYield: isYield}
}

// parseCreateSugarStmt handles the `let`/`mut`-sugar forms: `let ident
// = expr` and `mut ident = expr`. Both always carry a value and an
// Inferred type.
func (p *Parser) parseCreateSugarStmt() ast.Stmt {
	start := p.curToken.Pos
	mutable := p.curTokenIs(token.MUT)

	name := p.expectBindIdent()

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)

	return &ast.CreateStmt{
		Sp:      p.spanFrom(start),
		TyIdent: ast.TypedIdent{Ty: ast.NewInferredType(), Ident: name},
		Mutable: mutable,
		Value:   value,
	}
}

// expectBindIdent consumes the next token as a binding name (IDENT or
// DISCARD), rejecting `_` with "discarded ident used where disallowed"
// per spec.md §4.1 — but still returns a usable placeholder so parsing
// can continue.
func (p *Parser) expectBindIdent() ast.Ident {
	if p.peekTokenIs(token.DISCARD) {
		p.nextToken()
		p.diags.Add(diag.DiscardedIdentDisallowed(p.tokenSpan(p.curToken)))
		return ast.DiscardedIdent
	}
	if !p.expectPeek(token.IDENT) {
		return ast.DiscardedIdent
	}
	return ast.NewNamed(p.curToken.Literal)
}

// parseCreateOrSetStmt disambiguates the productions that start with a
// bare identifier: the full `type ident (= expr)?` create form, a
// `set` statement (`ident = expr`, or the compound-assign sugar `ident
// op= expr`), and a bare call used as a statement (`foo();`) — not one
// of the grammar's four named statement kinds, but required for a
// forward-referencing call with no assignment target (see scenario 6
// in spec.md §8: `func main() { foo(); } func foo() {}` must parse
// clean). The full create form is recognized when the leading
// identifier is used as a type name: immediately followed by another
// identifier (or discard), by a `.` of a qualified path, or by a
// `<...>` generic argument list that is itself followed by an
// identifier (or discard) rather than a call's `(`; an assignment or
// compound-assignment operator means `set`; anything else parses as a
// plain expression statement.
func (p *Parser) parseCreateOrSetStmt() ast.Stmt {
	if p.peekTokenIs(token.IDENT) || p.peekTokenIs(token.DISCARD) || p.peekTokenIs(token.DOT) {
		return p.parseFullCreateStmt()
	}
	if p.peekTokenIs(token.LT) {
		scan := *p.l
		depth, tok := 1, p.peek2Token
		for depth > 0 && tok.Type != token.EOF {
			switch tok.Type {
			case token.LT:
				depth++
			case token.GT:
				depth--
			}
			tok = scan.NextToken()
		}
		if tok.Type == token.IDENT || tok.Type == token.DISCARD {
			return p.parseFullCreateStmt()
		}
	}
	isCompoundAssign := token.IsBinaryOperator(p.peekToken.Type) && p.peek2Token.Type == token.ASSIGN
	if p.peekTokenIs(token.ASSIGN) || isCompoundAssign {
		return p.parseSetStmt()
	}
	return p.parseExprStmt()
}

// parseExprStmt parses a bare expression used as a statement, curToken
// already sitting on its first token.
func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.curToken.Pos
	value := p.parseExpression(LOWEST)
	return &ast.ExprStmt{Sp: p.spanFrom(start), Value: value}
}

// parseFullCreateStmt parses `type ident (= expr)?`, curToken already
// sitting on the leading type name.
func (p *Parser) parseFullCreateStmt() ast.Stmt {
	return p.finishFullCreateStmt(p.curToken.Pos, false)
}

// parseMutFullCreateStmt parses `mut type ident (= expr)?`, curToken
// sitting on the `mut` keyword.
func (p *Parser) parseMutFullCreateStmt() ast.Stmt {
	start := p.curToken.Pos
	p.nextToken() // consume 'mut', curToken now on the type name
	return p.finishFullCreateStmt(start, true)
}

func (p *Parser) finishFullCreateStmt(start token.Position, mutable bool) ast.Stmt {
	ty := p.parseType()
	name := p.expectBindIdent()

	var value ast.Expr
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		value = p.parseExpression(LOWEST)
	}

	return &ast.CreateStmt{
		Sp:      p.spanFrom(start),
		TyIdent: ast.TypedIdent{Ty: ty, Ident: name},
		Mutable: mutable,
		Value:   value,
	}
}

func (p *Parser) parseSetStmt() ast.Stmt {
	start := p.curToken.Pos
	target := p.bindIdentFromCurrent()

	var op string
	if token.IsBinaryOperator(p.peekToken.Type) {
		p.nextToken()
		op = p.curToken.Literal
		if !p.expectPeek(token.ASSIGN) {
			return nil
		}
	} else if !p.expectPeek(token.ASSIGN) {
		return nil
	}

	p.nextToken()
	value := p.parseExpression(LOWEST)

	if op != "" {
		// Desugar `id op= expr` into `id = id op expr`.
		value = &ast.BinaryOp{
			Sp:  value.NodeSpan(),
			LHS: &ast.IdentExpr{Sp: p.tokenSpan(p.curToken), Ident: target},
			Op:  op,
			RHS: value,
		}
	}

	return &ast.SetStmt{Sp: p.spanFrom(start), ID: target, Value: value}
}

// bindIdentFromCurrent treats curToken (an IDENT) as a binding name
// that must not be discarded — used for set targets, where `_` is
// disallowed per spec.md §4.1's "value-bearing Set target" rule.
func (p *Parser) bindIdentFromCurrent() ast.Ident {
	if p.curTokenIs(token.DISCARD) {
		p.diags.Add(diag.DiscardedIdentDisallowed(p.tokenSpan(p.curToken)))
		return ast.DiscardedIdent
	}
	return ast.NewNamed(p.curToken.Literal)
}

// parseFuncStmt parses a function definition or extern declaration:
// `extern`? `func` ident generics? `(` args `)` attribs* (`->` type)?
// ( `{` scope `}` | `=>` expr `;` | `;` )
func (p *Parser) parseFuncStmt() ast.Stmt {
	start := p.curToken.Pos
	linkage := ast.DefaultLinkage
	if p.curTokenIs(token.EXTERN) {
		linkage = ast.ExternalLinkage
		if !p.expectPeek(token.FUNC) {
			return nil
		}
	}

	if !p.peekTokenIs(token.IDENT) && !p.peekTokenIs(token.DISCARD) {
		p.diags.Add(diag.UnexpectedToken(p.tokenSpan(p.peekToken), []string{"identifier"}, string(p.peekToken.Type)))
		return nil
	}
	p.nextToken()
	name := p.bindIdentFromCurrent()
	if name.IsDiscarded() {
		p.diags.Add(diag.DiscardedIdentDisallowed(p.tokenSpan(p.curToken)))
	}

	generics := p.parseOptionalGenerics()
	args := p.parseFuncArgs()
	attribs := p.parseAttribs()

	returnTy := ast.NewInferredType()
	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		returnTy = p.parseType()
	}

	var body *ast.Scope
	switch {
	case p.peekTokenIs(token.FATARROW):
		p.nextToken()
		p.nextToken()
		exprStart := p.curToken.Pos
		value := p.parseExpression(LOWEST)
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
		body = &ast.Scope{
			Sp:    p.spanFrom(exprStart),
			Stmts: []ast.Stmt{&ast.ReturnStmt{Sp: value.NodeSpan(), Value: value, IsYield: false}},
		}
	case p.peekTokenIs(token.LBRACE):
		p.nextToken()
		body = p.parseBracedScope()
	default:
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
		body = nil
	}

	return &ast.FuncStmt{
		Sp: p.spanFrom(start),
		ID: name,
		Signature: ast.Signature{
			Attribs:  attribs,
			Linkage:  linkage,
			ReturnTy: returnTy,
			Args:     args,
			Generics: generics,
		},
		Body: body,
	}
}

func (p *Parser) parseOptionalGenerics() []ast.Ident {
	if !p.peekTokenIs(token.LT) {
		return nil
	}
	p.nextToken() // consume '<'
	var generics []ast.Ident
	if p.peekTokenIs(token.GT) {
		p.nextToken()
		return generics
	}
	p.nextToken()
	generics = append(generics, ast.NewNamed(p.curToken.Literal))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		generics = append(generics, ast.NewNamed(p.curToken.Literal))
	}
	p.expectPeek(token.GT)
	return generics
}

func (p *Parser) parseFuncArgs() []ast.TypedIdent {
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	var args []ast.TypedIdent
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args
	}
	p.nextToken()
	args = append(args, p.parseTypedArg())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseTypedArg())
	}
	p.expectPeek(token.RPAREN)
	return args
}

// parseTypedArg parses `type ident`, where ident may be `_` — function
// arguments are the one place a discarded binding name is legal.
func (p *Parser) parseTypedArg() ast.TypedIdent {
	start := p.curToken.Pos
	ty := p.parseType()
	var ident ast.Ident
	if p.peekTokenIs(token.DISCARD) {
		p.nextToken()
		ident = ast.DiscardedIdent
	} else if p.expectPeek(token.IDENT) {
		ident = ast.NewNamed(p.curToken.Literal)
	}
	return ast.TypedIdent{Sp: p.spanFrom(start), Ty: ty, Ident: ident}
}

func (p *Parser) parseAttribs() ast.Attribs {
	var a ast.Attribs
	for {
		switch p.peekToken.Type {
		case token.PURE:
			p.nextToken()
			if a.Pure {
				p.diags.Add(diag.DuplicateAttribute(p.tokenSpan(p.curToken), "pure"))
			}
			a.Pure = true
		case token.UNSAFE:
			p.nextToken()
			if a.Unsafe {
				p.diags.Add(diag.DuplicateAttribute(p.tokenSpan(p.curToken), "unsafe"))
			}
			a.Unsafe = true
		default:
			return a
		}
	}
}

// parseType parses a type name in prefix (current-token) position:
// either a plain/builtin identifier, a dotted qualified path, or a
// generic instantiation `Ident<Type, ...>`.
func (p *Parser) parseType() ast.Type {
	name := p.curToken.Literal

	var id ast.Ident
	if p.peekTokenIs(token.DOT) {
		parts := []ast.Ident{ast.NewNamed(name)}
		for p.peekTokenIs(token.DOT) {
			p.nextToken() // consume '.'
			if !p.expectPeek(token.IDENT) {
				break
			}
			parts = append(parts, ast.NewNamed(p.curToken.Literal))
		}
		id = ast.NewQualified(parts)
	} else {
		id = ast.NewNamed(name)
	}

	var base ast.Type
	if id.Kind == ast.Named {
		if b, ok := ast.BuiltInFromName(id.Name); ok {
			base = ast.NewBuiltInType(b)
		} else {
			base = ast.NewUserType(id)
		}
	} else {
		base = ast.NewUserType(id)
	}

	if p.peekTokenIs(token.LT) {
		p.nextToken() // consume '<'
		var argTypes []ast.Type
		p.nextToken()
		argTypes = append(argTypes, p.parseType())
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			argTypes = append(argTypes, p.parseType())
		}
		p.expectPeek(token.GT)
		return ast.NewGenericType(base, argTypes)
	}

	return base
}

func (p *Parser) parseBracedScope() *ast.Scope {
	start := p.curToken.Pos // curToken == LBRACE
	scope := &ast.Scope{}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStmt()
		if stmt != nil {
			scope.Stmts = append(scope.Stmts, stmt)
		}
		// As in ParseScope, curToken is the statement's last consumed
		// token (possibly a nested block's own `}`), so always advance.
		if !p.curTokenIs(token.EOF) {
			p.nextToken()
		}
		p.skipSemicolons()
	}
	if !p.curTokenIs(token.RBRACE) {
		p.diags.Add(diag.UnexpectedToken(p.tokenSpan(p.curToken), []string{"}"}, string(p.curToken.Type)))
	}
	scope.Sp = p.spanFrom(start)
	return scope
}

// --- expressions ---

func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.diags.Add(diag.UnexpectedToken(p.tokenSpan(p.curToken), []string{"expression"}, string(p.curToken.Type)))
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.SEMICOLON) && !p.peekTokenIs(token.EOF) && !p.peekTokenIs(token.RBRACE) &&
		precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentExpr() ast.Expr {
	var id ast.Ident
	if p.curTokenIs(token.DISCARD) {
		id = ast.DiscardedIdent
	} else {
		id = ast.NewNamed(p.curToken.Literal)
	}
	return &ast.IdentExpr{Sp: p.tokenSpan(p.curToken), Ident: id}
}

func (p *Parser) parseNumberLiteral() ast.Expr {
	return &ast.NumberLiteral{Sp: p.tokenSpan(p.curToken), Literal: p.curToken.Literal}
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	start := p.curToken.Pos
	op := p.curToken.Literal
	p.nextToken()
	operand := p.parseExpression(UNARY)
	return &ast.UnaryOp{Sp: p.spanFrom(start), Op: op, Operand: operand}
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	p.expectPeek(token.RPAREN)
	return expr
}

func (p *Parser) parseScopeExpr() ast.Expr {
	start := p.curToken.Pos
	scope := p.parseBracedScope()
	return &ast.ScopeExpr{Sp: p.spanFrom(start), Scope: scope}
}

func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	start := left.NodeSpan().Start
	op := p.curToken.Literal
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.BinaryOp{Sp: span.New(p.fileID, start, p.curToken.End), LHS: left, Op: op, RHS: right}
}

// parseCallExpr parses `callee(args)` with no explicit generic
// argument list.
func (p *Parser) parseCallExpr(left ast.Expr) ast.Expr {
	return p.finishCall(left, false, nil)
}

// parseGenericCallExpr parses `callee<Type, ...>(args)`; curToken is
// the `<` that triggered this infix dispatch.
func (p *Parser) parseGenericCallExpr(left ast.Expr) ast.Expr {
	var generics []ast.Type
	if !p.peekTokenIs(token.GT) {
		p.nextToken()
		generics = append(generics, p.parseType())
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			generics = append(generics, p.parseType())
		}
	}
	if !p.expectPeek(token.GT) {
		return left
	}
	if !p.expectPeek(token.LPAREN) {
		return left
	}
	return p.finishCall(left, true, generics)
}

func (p *Parser) finishCall(left ast.Expr, hasGenerics bool, generics []ast.Type) ast.Expr {
	start := left.NodeSpan().Start
	call := &ast.CallExpr{Callee: left, HasGenerics: hasGenerics, Generics: generics}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		call.Sp = span.New(p.fileID, start, p.curToken.End)
		return call
	}
	p.nextToken()
	call.Args = append(call.Args, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		call.Args = append(call.Args, p.parseExpression(LOWEST))
	}
	p.expectPeek(token.RPAREN)
	call.Sp = span.New(p.fileID, start, p.curToken.End)
	return call
}
