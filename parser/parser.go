// Package parser converts a flat token sequence into expression trees.
//
// The grammar is recursive descent with a precedence-climbing expression
// chain. Input tokens come from an external tokenizer; output is one
// tree root per semicolon-delimited statement. Parsing is synchronous,
// does no backtracking beyond one token of lookahead, and aborts on the
// first failure.
package parser

import (
	"strings"

	"github.com/sqlshift/sqlshift/ast"
	"github.com/sqlshift/sqlshift/token"
)

// Parser parses token sequences into expression trees.
//
// The function table is fixed at construction and safe to share; the
// cursor state is per call, so a single Parser must not be used from
// multiple goroutines at once. Distinct Parser values are independent.
type Parser struct {
	functions map[string]FunctionBuilder

	tokens []token.Token
	index  int
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithFunction registers a builder under the given name, overriding any
// built-in with the same name. Names are case-insensitive.
func WithFunction(name string, build FunctionBuilder) Option {
	return func(p *Parser) {
		p.functions[strings.ToUpper(name)] = build
	}
}

// WithFunctions registers every builder in the map, overriding built-ins
// on name collision.
func WithFunctions(functions map[string]FunctionBuilder) Option {
	return func(p *Parser) {
		for name, build := range functions {
			p.functions[strings.ToUpper(name)] = build
		}
	}
}

// New returns a Parser with the built-in function table merged under any
// caller-supplied entries.
func New(opts ...Option) *Parser {
	p := &Parser{functions: builtinFunctions()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses tokens with a default Parser.
func Parse(tokens []token.Token) ([]ast.Expr, error) {
	return New().Parse(tokens)
}

// Parse splits tokens into semicolon-delimited statements and parses
// each one, returning one root per statement in source order. Statement
// chunks are independent: a token in one statement never influences the
// parse of the next. The first failure aborts the whole call and no
// partial results are returned.
func (p *Parser) Parse(tokens []token.Token) ([]ast.Expr, error) {
	var expressions []ast.Expr

	for _, chunk := range split(tokens) {
		if empty(chunk) {
			continue
		}
		p.tokens = chunk
		p.index = 0

		root, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		p.match(token.SEMICOLON)
		if tok, ok := p.curr(); ok {
			return nil, p.errAt(ErrUnconsumedInput, tok, "invalid expression %s", tok)
		}
		expressions = append(expressions, root)
	}

	return expressions, nil
}

// split breaks the token sequence into statement chunks. The terminator
// stays at the end of the chunk it closes.
func split(tokens []token.Token) [][]token.Token {
	chunks := [][]token.Token{nil}
	for _, tok := range tokens {
		last := len(chunks) - 1
		chunks[last] = append(chunks[last], tok)
		if tok.Kind == token.SEMICOLON {
			chunks = append(chunks, nil)
		}
	}
	return chunks
}

// empty reports whether a chunk holds no statement. A chunk consisting
// of a lone terminator arises from consecutive or leading semicolons and
// parses to nothing rather than erroring.
func empty(chunk []token.Token) bool {
	switch len(chunk) {
	case 0:
		return true
	case 1:
		return chunk[0].Kind == token.SEMICOLON
	}
	return false
}

// -----------------------------------------------------------------------------
// Cursor
//
// A single forward index over the current chunk. Grammar productions use
// only prev, curr, peek, and match; match is the only way to consume.

func (p *Parser) advance() { p.index++ }

func (p *Parser) at(i int) (token.Token, bool) {
	if i < 0 || i >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[i], true
}

// prev returns the most recently consumed token. Valid only after a
// successful match.
func (p *Parser) prev() token.Token {
	tok, _ := p.at(p.index - 1)
	return tok
}

func (p *Parser) curr() (token.Token, bool) { return p.at(p.index) }

func (p *Parser) peek() (token.Token, bool) { return p.at(p.index + 1) }

// match advances past the current token and reports true if its kind is
// among kinds; otherwise the cursor does not move.
func (p *Parser) match(kinds ...token.Kind) bool {
	cur, ok := p.curr()
	if !ok {
		return false
	}
	for _, k := range kinds {
		if cur.Kind == k {
			p.advance()
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Statements

func (p *Parser) parseStatement() (ast.Expr, error) {
	if !p.match(token.WITH) {
		return p.parseSelect()
	}

	expressions, err := p.parseCSV(p.parseCTE)
	if err != nil {
		return nil, err
	}
	this, err := p.parseSelect()
	if err != nil {
		return nil, err
	}
	return &ast.CTE{This: this, Expressions: expressions}, nil
}

func (p *Parser) parseCTE() (ast.Expr, error) {
	if !p.match(token.IDENTIFIER, token.VAR) {
		return nil, p.errorf(ErrSyntax, "expected alias after WITH, got %s", p.got())
	}
	alias := p.prev()

	if !p.match(token.AS) {
		return nil, p.errorf(ErrSyntax, "expected AS after WITH %s, got %s", alias.Text, p.got())
	}

	this, err := p.parseTable()
	if err != nil {
		return nil, err
	}
	return &ast.Alias{This: this, To: alias}, nil
}

func (p *Parser) parseSelect() (ast.Expr, error) {
	if !p.match(token.SELECT) {
		return nil, p.errorf(ErrSyntax, "expected SELECT, got %s", p.got())
	}

	expressions, err := p.parseCSV(p.parseExpression)
	if err != nil {
		return nil, err
	}

	var this ast.Expr = &ast.Select{Expressions: expressions}
	if this, err = p.parseFrom(this); err != nil {
		return nil, err
	}
	if this, err = p.parseJoin(this); err != nil {
		return nil, err
	}
	if this, err = p.parseWhere(this); err != nil {
		return nil, err
	}
	if this, err = p.parseGroup(this); err != nil {
		return nil, err
	}
	if this, err = p.parseHaving(this); err != nil {
		return nil, err
	}
	if this, err = p.parseOrder(this); err != nil {
		return nil, err
	}
	return p.parseUnion(this)
}

func (p *Parser) parseFrom(this ast.Expr) (ast.Expr, error) {
	if !p.match(token.FROM) {
		return this, nil
	}
	table, err := p.parseTable()
	if err != nil {
		return nil, err
	}
	return &ast.From{This: table, Expression: this}, nil
}

// parseJoin recurses on its own output so that chained joins left-nest:
// each Join wraps the accumulated chain as Expression and the newly
// parsed table as This.
func (p *Parser) parseJoin(this ast.Expr) (ast.Expr, error) {
	var side, kind *token.Token

	if p.match(token.LEFT, token.RIGHT, token.FULL) {
		s := p.prev()
		side = &s
	}
	if p.match(token.INNER, token.OUTER, token.CROSS) {
		k := p.prev()
		kind = &k
	}

	if !p.match(token.JOIN) {
		if side != nil || kind != nil {
			return nil, p.errorf(ErrSyntax, "expected JOIN, got %s", p.got())
		}
		return this, nil
	}

	expression, err := p.parseTable()
	if err != nil {
		return nil, err
	}
	var on ast.Expr
	if p.match(token.ON) {
		if on, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	return p.parseJoin(&ast.Join{This: expression, Expression: this, Side: side, Kind: kind, On: on})
}

func (p *Parser) parseTable() (ast.Expr, error) {
	var expression ast.Expr

	if p.match(token.LPAREN) {
		nested, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		if !p.match(token.RPAREN) {
			return nil, p.errorf(ErrSyntax, "expected ) after subquery, got %s", p.got())
		}
		expression = nested
	} else {
		if !p.match(token.VAR, token.IDENTIFIER) {
			return nil, p.errorf(ErrSyntax, "expected table name, got %s", p.got())
		}
		name := p.prev()

		var db *token.Token
		if p.match(token.DOT) {
			d := name
			db = &d
			if !p.match(token.VAR, token.IDENTIFIER) {
				return nil, p.errorf(ErrSyntax, "expected table name after %s., got %s", d.Text, p.got())
			}
			name = p.prev()
		}
		expression = &ast.Table{This: name, DB: db}
	}

	return p.parseAlias(expression)
}

func (p *Parser) parseWhere(this ast.Expr) (ast.Expr, error) {
	if !p.match(token.WHERE) {
		return this, nil
	}
	expression, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	return &ast.Where{This: this, Expression: expression}, nil
}

func (p *Parser) parseGroup(this ast.Expr) (ast.Expr, error) {
	if !p.match(token.GROUP) {
		return this, nil
	}
	if !p.match(token.BY) {
		return nil, p.errorf(ErrSyntax, "expected BY after GROUP, got %s", p.got())
	}
	expressions, err := p.parseCSV(p.parsePrimary)
	if err != nil {
		return nil, err
	}
	return &ast.Group{This: this, Expressions: expressions}, nil
}

func (p *Parser) parseHaving(this ast.Expr) (ast.Expr, error) {
	if !p.match(token.HAVING) {
		return this, nil
	}
	expression, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	return &ast.Having{This: this, Expression: expression}, nil
}

// parseOrder also serves window specifications, which pass a nil this.
func (p *Parser) parseOrder(this ast.Expr) (ast.Expr, error) {
	if !p.match(token.ORDER) {
		return this, nil
	}
	if !p.match(token.BY) {
		return nil, p.errorf(ErrSyntax, "expected BY after ORDER, got %s", p.got())
	}
	expressions, err := p.parseCSV(p.parsePrimary)
	if err != nil {
		return nil, err
	}
	return &ast.Order{This: this, Expressions: expressions, Desc: p.match(token.DESC)}, nil
}

// parseUnion recurses through parseSelect, so unions right-associate.
// Distinctness defaults to true unless ALL follows the keyword.
func (p *Parser) parseUnion(this ast.Expr) (ast.Expr, error) {
	if !p.match(token.UNION) {
		return this, nil
	}
	distinct := !p.match(token.ALL)

	expression, err := p.parseSelect()
	if err != nil {
		return nil, err
	}
	return &ast.Union{This: this, Expression: expression, Distinct: distinct}, nil
}

// parseCSV parses a comma-separated list with the given production.
func (p *Parser) parseCSV(parse func() (ast.Expr, error)) ([]ast.Expr, error) {
	item, err := parse()
	if err != nil {
		return nil, err
	}
	items := []ast.Expr{item}

	for p.match(token.COMMA) {
		if item, err = parse(); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
