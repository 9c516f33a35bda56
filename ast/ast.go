// Package ast defines the expression trees produced by the parser.
//
// The node set is closed: consumers (the SQL generator, analyzers)
// type-switch on the concrete node types rather than calling methods on
// them. Every node is immutable once built, child references are always
// fully resolved, and trees are strictly hierarchical.
package ast

import "github.com/sqlshift/sqlshift/token"

// Expr is the interface implemented by all expression tree nodes.
type Expr interface {
	exprNode()
}

// -----------------------------------------------------------------------------
// Statement-level nodes
//
// A select statement threads through its clauses outside-in: the root of
// "SELECT a FROM t WHERE x" is a Where whose This is a From whose
// Expression is the Select. Each clause node keeps the accumulated
// statement in This (or Expression for From and Join) so a consumer can
// unwind the chain in clause order.

// Select holds the projection list.
type Select struct {
	Expressions []Expr
}

// From attaches a table reference to the select in Expression.
type From struct {
	This       Expr // table reference
	Expression Expr // accumulated select
}

// Join attaches a joined table to the accumulated from/join chain in
// Expression. Side is LEFT/RIGHT/FULL, Kind is INNER/OUTER/CROSS, both
// optional.
type Join struct {
	This       Expr // joined table
	Expression Expr // accumulated chain
	Side       *token.Token
	Kind       *token.Token
	On         Expr
}

// Where attaches a filter condition.
type Where struct {
	This       Expr
	Expression Expr
}

// Group attaches GROUP BY expressions.
type Group struct {
	This        Expr
	Expressions []Expr
}

// Having attaches a post-aggregation filter.
type Having struct {
	This       Expr
	Expression Expr
}

// Order attaches ORDER BY expressions. Inside a window specification it
// stands alone and This is nil.
type Order struct {
	This        Expr
	Expressions []Expr
	Desc        bool
}

// Union combines two selects. Distinct is true unless ALL was present.
type Union struct {
	This       Expr
	Expression Expr
	Distinct   bool
}

// CTE wraps a select with its WITH bindings. Each binding is an Alias
// over a parenthesized select.
type CTE struct {
	This        Expr
	Expressions []Expr
}

// Table is a possibly db-qualified table name.
type Table struct {
	This token.Token
	DB   *token.Token
}

// Alias binds a name to an expression or table reference.
type Alias struct {
	This Expr
	To   token.Token
}

// -----------------------------------------------------------------------------
// Binary operators, each {left, right} as {This, Expression}

type And struct{ This, Expression Expr }

type Or struct{ This, Expression Expr }

type EQ struct{ This, Expression Expr }

type NEQ struct{ This, Expression Expr }

type Is struct{ This, Expression Expr }

type GT struct{ This, Expression Expr }

type GTE struct{ This, Expression Expr }

type LT struct{ This, Expression Expr }

type LTE struct{ This, Expression Expr }

type Minus struct{ This, Expression Expr }

type Plus struct{ This, Expression Expr }

type Slash struct{ This, Expression Expr }

type Star struct{ This, Expression Expr }

// -----------------------------------------------------------------------------
// Unary operators

type Not struct{ This Expr }

type Neg struct{ This Expr }

// -----------------------------------------------------------------------------
// Structural expressions

// In tests membership of This in a literal list.
type In struct {
	This        Expr
	Expressions []Expr
}

// Between holds two independent bounds; the separating AND keyword is
// consumed during parsing and never becomes a node.
type Between struct {
	This Expr
	Low  Expr
	High Expr
}

// Paren preserves explicit grouping.
type Paren struct{ This Expr }

// Bracket is an index or subscript: this[e1, e2, ...].
type Bracket struct {
	This        Expr
	Expressions []Expr
}

// Column is a column reference with up to two qualifiers:
// column, table.column, or db.table.column.
type Column struct {
	This  token.Token
	Table *token.Token
	DB    *token.Token
}

// Window attaches an OVER specification to the expression in This.
type Window struct {
	This      Expr
	Partition []Expr
	Order     Expr // *Order with nil This, or nil
}

// Case is a searched CASE expression. Each entry in Ifs lacks a False
// branch; Default holds the ELSE expression if present.
type Case struct {
	Ifs     []*If
	Default Expr
}

// If is one condition/result pair, also built by the IF function.
type If struct {
	Condition Expr
	True      Expr
	False     Expr
}

// Cast converts This to the type named by the To token.
type Cast struct {
	This Expr
	To   token.Token
}

// -----------------------------------------------------------------------------
// Function nodes

type Avg struct{ This Expr }

type Ceil struct{ This Expr }

type Coalesce struct{ Expressions []Expr }

// Count is parsed as a special form rather than through the function
// registry: it alone carries a DISTINCT modifier.
type Count struct {
	This     Expr
	Distinct bool
}

type First struct{ This Expr }

type Floor struct{ This Expr }

type Last struct{ This Expr }

type LN struct{ This Expr }

type Max struct{ This Expr }

type Min struct{ This Expr }

type Sum struct{ This Expr }

// Rank and RowNumber take an optional argument; This is nil for the
// bare RANK() / ROW_NUMBER() forms.
type Rank struct{ This Expr }

type RowNumber struct{ This Expr }

// -----------------------------------------------------------------------------
// Leaves

// Literal wraps a STRING, NUMBER, STAR, or NULL token serving directly
// as a leaf of the tree.
type Literal struct {
	Token token.Token
}

func (*Select) exprNode()    {}
func (*From) exprNode()      {}
func (*Join) exprNode()      {}
func (*Where) exprNode()     {}
func (*Group) exprNode()     {}
func (*Having) exprNode()    {}
func (*Order) exprNode()     {}
func (*Union) exprNode()     {}
func (*CTE) exprNode()       {}
func (*Table) exprNode()     {}
func (*Alias) exprNode()     {}
func (*And) exprNode()       {}
func (*Or) exprNode()        {}
func (*EQ) exprNode()        {}
func (*NEQ) exprNode()       {}
func (*Is) exprNode()        {}
func (*GT) exprNode()        {}
func (*GTE) exprNode()       {}
func (*LT) exprNode()        {}
func (*LTE) exprNode()       {}
func (*Minus) exprNode()     {}
func (*Plus) exprNode()      {}
func (*Slash) exprNode()     {}
func (*Star) exprNode()      {}
func (*Not) exprNode()       {}
func (*Neg) exprNode()       {}
func (*In) exprNode()        {}
func (*Between) exprNode()   {}
func (*Paren) exprNode()     {}
func (*Bracket) exprNode()   {}
func (*Column) exprNode()    {}
func (*Window) exprNode()    {}
func (*Case) exprNode()      {}
func (*If) exprNode()        {}
func (*Cast) exprNode()      {}
func (*Avg) exprNode()       {}
func (*Ceil) exprNode()      {}
func (*Coalesce) exprNode()  {}
func (*Count) exprNode()     {}
func (*First) exprNode()     {}
func (*Floor) exprNode()     {}
func (*Last) exprNode()      {}
func (*LN) exprNode()        {}
func (*Max) exprNode()       {}
func (*Min) exprNode()       {}
func (*Sum) exprNode()       {}
func (*Rank) exprNode()      {}
func (*RowNumber) exprNode() {}
func (*Literal) exprNode()   {}
