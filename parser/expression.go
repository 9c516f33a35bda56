package parser

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/sqlshift/sqlshift/ast"
	"github.com/sqlshift/sqlshift/token"
)

// binary pairs an operator kind with the constructor for its node. Each
// precedence tier is an ordered list of these pairs fed to parseBinary,
// which keeps the climbing loop in one place.
type binary struct {
	kind  token.Kind
	build func(this, expression ast.Expr) ast.Expr
}

var (
	conjunctionOps = []binary{
		{token.AND, func(l, r ast.Expr) ast.Expr { return &ast.And{This: l, Expression: r} }},
		{token.OR, func(l, r ast.Expr) ast.Expr { return &ast.Or{This: l, Expression: r} }},
	}
	equalityOps = []binary{
		{token.EQ, func(l, r ast.Expr) ast.Expr { return &ast.EQ{This: l, Expression: r} }},
		{token.NEQ, func(l, r ast.Expr) ast.Expr { return &ast.NEQ{This: l, Expression: r} }},
		{token.IS, func(l, r ast.Expr) ast.Expr { return &ast.Is{This: l, Expression: r} }},
	}
	comparisonOps = []binary{
		{token.GT, func(l, r ast.Expr) ast.Expr { return &ast.GT{This: l, Expression: r} }},
		{token.GTE, func(l, r ast.Expr) ast.Expr { return &ast.GTE{This: l, Expression: r} }},
		{token.LT, func(l, r ast.Expr) ast.Expr { return &ast.LT{This: l, Expression: r} }},
		{token.LTE, func(l, r ast.Expr) ast.Expr { return &ast.LTE{This: l, Expression: r} }},
	}
	termOps = []binary{
		{token.MINUS, func(l, r ast.Expr) ast.Expr { return &ast.Minus{This: l, Expression: r} }},
		{token.PLUS, func(l, r ast.Expr) ast.Expr { return &ast.Plus{This: l, Expression: r} }},
	}
	factorOps = []binary{
		{token.SLASH, func(l, r ast.Expr) ast.Expr { return &ast.Slash{This: l, Expression: r} }},
		{token.STAR, func(l, r ast.Expr) ast.Expr { return &ast.Star{This: l, Expression: r} }},
	}
)

// parseBinary parses one operand at the next-tighter tier, then folds
// operands left-associatively while the current token is one of the
// tier's operators.
func (p *Parser) parseBinary(next func() (ast.Expr, error), ops []binary) (ast.Expr, error) {
	this, err := next()
	if err != nil {
		return nil, err
	}
	for {
		var build func(this, expression ast.Expr) ast.Expr
		for _, op := range ops {
			if p.match(op.kind) {
				build = op.build
				break
			}
		}
		if build == nil {
			return this, nil
		}
		expression, err := next()
		if err != nil {
			return nil, err
		}
		this = build(this, expression)
	}
}

// parseExpression is the loosest entry point: the full precedence chain,
// then an optional window specification, then an optional alias.
func (p *Parser) parseExpression() (ast.Expr, error) {
	this, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	if this, err = p.parseWindow(this); err != nil {
		return nil, err
	}
	return p.parseAlias(this)
}

func (p *Parser) parseConjunction() (ast.Expr, error) {
	return p.parseBinary(p.parseEquality, conjunctionOps)
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseBinary(p.parseComparison, equalityOps)
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	return p.parseBinary(p.parseRange, comparisonOps)
}

// parseRange handles IN and BETWEEN, which are not plain binary tiers:
// IN takes a parenthesized list and BETWEEN takes two primaries with the
// separating AND absorbed rather than represented.
func (p *Parser) parseRange() (ast.Expr, error) {
	this, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	if p.match(token.IN) {
		if !p.match(token.LPAREN) {
			return nil, p.errorf(ErrSyntax, "expected ( after IN, got %s", p.got())
		}
		expressions, err := p.parseCSV(p.parsePrimary)
		if err != nil {
			return nil, err
		}
		if !p.match(token.RPAREN) {
			return nil, p.errorf(ErrSyntax, "expected ) after IN list, got %s", p.got())
		}
		return &ast.In{This: this, Expressions: expressions}, nil
	}

	if p.match(token.BETWEEN) {
		low, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		p.match(token.AND)
		high, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.Between{This: this, Low: low, High: high}, nil
	}

	return this, nil
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	return p.parseBinary(p.parseFactor, termOps)
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	return p.parseBinary(p.parseUnary, factorOps)
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.match(token.NOT) {
		this, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Not{This: this}, nil
	}
	if p.match(token.MINUS) {
		this, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Neg{This: this}, nil
	}
	return p.parseSpecial()
}

// parseSpecial dispatches the keyword-introduced forms that bind tighter
// than unary operators.
func (p *Parser) parseSpecial() (ast.Expr, error) {
	if p.match(token.CAST) {
		return p.parseCast()
	}
	if p.match(token.CASE) {
		return p.parseCase()
	}
	if p.match(token.COUNT) {
		return p.parseCount()
	}
	return p.parsePrimary()
}

func (p *Parser) parseCase() (ast.Expr, error) {
	var ifs []*ast.If
	var def ast.Expr

	for p.match(token.WHEN) {
		condition, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		p.match(token.THEN)
		then, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		ifs = append(ifs, &ast.If{Condition: condition, True: then})
	}

	if p.match(token.ELSE) {
		var err error
		if def, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}

	if !p.match(token.END) {
		return nil, p.errorf(ErrSyntax, "expected END after CASE, got %s", p.got())
	}
	return &ast.Case{Ifs: ifs, Default: def}, nil
}

// parseCount is its own special form rather than a registry entry
// because COUNT alone carries the DISTINCT modifier.
func (p *Parser) parseCount() (ast.Expr, error) {
	if !p.match(token.LPAREN) {
		return nil, p.errorf(ErrSyntax, "expected ( after COUNT, got %s", p.got())
	}
	distinct := p.match(token.DISTINCT)

	this, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	if !p.match(token.RPAREN) {
		return nil, p.errorf(ErrSyntax, "expected ) after COUNT, got %s", p.got())
	}
	return &ast.Count{This: this, Distinct: distinct}, nil
}

func (p *Parser) parseCast() (ast.Expr, error) {
	if !p.match(token.LPAREN) {
		return nil, p.errorf(ErrSyntax, "expected ( after CAST, got %s", p.got())
	}
	this, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	if !p.match(token.AS) {
		return nil, p.errorf(ErrSyntax, "expected AS after CAST expression, got %s", p.got())
	}
	if !p.match(typeKinds...) {
		return nil, p.errorf(ErrUnknownType, "expected type after AS, got %s", p.got())
	}
	to := p.prev()

	if !p.match(token.RPAREN) {
		return nil, p.errorf(ErrSyntax, "expected ) after CAST, got %s", p.got())
	}
	return &ast.Cast{This: this, To: to}, nil
}

// typeKinds is the closed set of recognized CAST targets. Any other
// token after AS is a hard failure.
var typeKinds = []token.Kind{
	token.BOOLEAN, token.TINYINT, token.SMALLINT, token.INT, token.BIGINT,
	token.FLOAT, token.DOUBLE, token.DECIMAL, token.CHAR, token.VARCHAR,
	token.TEXT, token.BINARY, token.JSON,
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	if p.match(token.STRING, token.NUMBER, token.STAR, token.NULL) {
		return p.parseBrackets(&ast.Literal{Token: p.prev()})
	}

	if p.match(token.LPAREN) {
		this, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if !p.match(token.RPAREN) {
			return nil, p.errorf(ErrSyntax, "expected ), got %s", p.got())
		}
		return p.parseBrackets(&ast.Paren{This: this})
	}

	return p.parseColumn()
}

// parseColumn resolves a column reference with up to two qualifiers. A
// name directly followed by ( is a function call instead; the one-token
// peek is what disambiguates the two without consuming anything.
func (p *Parser) parseColumn() (ast.Expr, error) {
	if next, ok := p.peek(); ok && next.Kind == token.LPAREN {
		if cur, ok := p.curr(); ok && (cur.Kind == token.VAR || cur.Kind == token.IDENTIFIER) {
			return p.parseFunction()
		}
	}

	if !p.match(token.VAR, token.IDENTIFIER) {
		return nil, p.errorf(ErrSyntax, "expected expression, got %s", p.got())
	}
	this := p.prev()

	var db, table *token.Token
	if p.match(token.DOT) {
		t := this
		table = &t
		if !p.match(columnKinds...) {
			return nil, p.errorf(ErrSyntax, "expected column name after %s., got %s", t.Text, p.got())
		}
		this = p.prev()

		// A third dot is left unconsumed; the top level reports it as
		// unconsumed input.
		if p.match(token.DOT) {
			db = table
			t2 := this
			table = &t2
			if !p.match(columnKinds...) {
				return nil, p.errorf(ErrSyntax, "expected column name after %s., got %s", t2.Text, p.got())
			}
			this = p.prev()
		}
	}

	return p.parseBrackets(&ast.Column{This: this, Table: table, DB: db})
}

// columnKinds are the tokens allowed after a dot qualifier; STAR admits
// the table.* form.
var columnKinds = []token.Kind{token.VAR, token.IDENTIFIER, token.STAR}

// parseFunction parses name(args...) through the registry. Quoted names
// cannot denote functions, and an unregistered name fails naming the
// offending text.
func (p *Parser) parseFunction() (ast.Expr, error) {
	p.match(token.VAR, token.IDENTIFIER)
	name := p.prev()
	p.match(token.LPAREN)

	if name.Kind == token.IDENTIFIER {
		return nil, p.errAt(ErrQuotedFunction, name, "quoted identifier %q cannot be called", name.Text)
	}
	build, ok := p.functions[strings.ToUpper(name.Text)]
	if !ok {
		return nil, p.errAt(ErrUnknownFunction, name, "unrecognized function name %s", name.Text)
	}

	var args []ast.Expr
	if cur, ok := p.curr(); ok && cur.Kind != token.RPAREN {
		var err error
		if args, err = p.parseCSV(p.parseExpression); err != nil {
			return nil, err
		}
	}
	if !p.match(token.RPAREN) {
		return nil, p.errorf(ErrSyntax, "expected ) after function %s, got %s", name.Text, p.got())
	}

	this, err := build(args)
	if err != nil {
		return nil, errors.Wrapf(err, "function %s at line %d, column %d",
			name.Text, name.Pos.Line, name.Pos.Column)
	}
	return this, nil
}

func (p *Parser) parseBrackets(this ast.Expr) (ast.Expr, error) {
	if !p.match(token.LBRACKET) {
		return this, nil
	}
	expressions, err := p.parseCSV(p.parsePrimary)
	if err != nil {
		return nil, err
	}
	if !p.match(token.RBRACKET) {
		return nil, p.errorf(ErrSyntax, "expected ], got %s", p.got())
	}
	return &ast.Bracket{This: this, Expressions: expressions}, nil
}

func (p *Parser) parseWindow(this ast.Expr) (ast.Expr, error) {
	if !p.match(token.OVER) {
		return this, nil
	}
	if !p.match(token.LPAREN) {
		return nil, p.errorf(ErrSyntax, "expected ( after OVER, got %s", p.got())
	}

	var partition []ast.Expr
	if p.match(token.PARTITION) {
		if !p.match(token.BY) {
			return nil, p.errorf(ErrSyntax, "expected BY after PARTITION, got %s", p.got())
		}
		var err error
		if partition, err = p.parseCSV(p.parsePrimary); err != nil {
			return nil, err
		}
	}

	order, err := p.parseOrder(nil)
	if err != nil {
		return nil, err
	}

	if !p.match(token.RPAREN) {
		return nil, p.errorf(ErrSyntax, "expected ) after window, got %s", p.got())
	}
	return &ast.Window{This: this, Partition: partition, Order: order}, nil
}

// parseAlias absorbs a stray AS even without a following name, then
// binds the alias if a name is present.
func (p *Parser) parseAlias(this ast.Expr) (ast.Expr, error) {
	p.match(token.AS)

	if p.match(token.IDENTIFIER, token.VAR) {
		return &ast.Alias{This: this, To: p.prev()}, nil
	}
	return this, nil
}
