// Package token defines the lexical tokens consumed by the parser. Tokens
// are produced by an external tokenizer; this package only gives them a
// shared vocabulary of kinds and a source position.
package token

import "fmt"

// Kind identifies the lexical category of a token.
type Kind int

const (
	// ILLEGAL is the zero Kind. No valid token carries it, which makes it
	// usable as an absence marker.
	ILLEGAL Kind = iota

	// Literals and names
	STRING
	NUMBER
	VAR        // unquoted identifier
	IDENTIFIER // quoted identifier

	// Operators
	EQ    // =
	NEQ   // <>
	GT    // >
	GTE   // >=
	LT    // <
	LTE   // <=
	MINUS // -
	PLUS  // +
	SLASH // /
	STAR  // *, both the multiply operator and the select wildcard

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	DOT       // .
	SEMICOLON // ;

	// Keywords
	keyword_beg
	ALL
	AND
	AS
	BETWEEN
	BY
	CASE
	CAST
	COUNT
	CROSS
	DESC
	DISTINCT
	ELSE
	END
	FROM
	FULL
	GROUP
	HAVING
	IN
	INNER
	IS
	JOIN
	LEFT
	NOT
	NULL
	ON
	OR
	ORDER
	OUTER
	OVER
	PARTITION
	RIGHT
	SELECT
	THEN
	UNION
	WHEN
	WHERE
	WITH

	// Type keywords, the closed set of CAST targets
	type_beg
	BOOLEAN
	TINYINT
	SMALLINT
	INT
	BIGINT
	FLOAT
	DOUBLE
	DECIMAL
	CHAR
	VARCHAR
	TEXT
	BINARY
	JSON
	type_end
	keyword_end
)

var names = [...]string{
	ILLEGAL: "ILLEGAL",

	STRING:     "STRING",
	NUMBER:     "NUMBER",
	VAR:        "VAR",
	IDENTIFIER: "IDENTIFIER",

	EQ:    "=",
	NEQ:   "<>",
	GT:    ">",
	GTE:   ">=",
	LT:    "<",
	LTE:   "<=",
	MINUS: "-",
	PLUS:  "+",
	SLASH: "/",
	STAR:  "*",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	COMMA:     ",",
	DOT:       ".",
	SEMICOLON: ";",

	ALL:       "ALL",
	AND:       "AND",
	AS:        "AS",
	BETWEEN:   "BETWEEN",
	BY:        "BY",
	CASE:      "CASE",
	CAST:      "CAST",
	COUNT:     "COUNT",
	CROSS:     "CROSS",
	DESC:      "DESC",
	DISTINCT:  "DISTINCT",
	ELSE:      "ELSE",
	END:       "END",
	FROM:      "FROM",
	FULL:      "FULL",
	GROUP:     "GROUP",
	HAVING:    "HAVING",
	IN:        "IN",
	INNER:     "INNER",
	IS:        "IS",
	JOIN:      "JOIN",
	LEFT:      "LEFT",
	NOT:       "NOT",
	NULL:      "NULL",
	ON:        "ON",
	OR:        "OR",
	ORDER:     "ORDER",
	OUTER:     "OUTER",
	OVER:      "OVER",
	PARTITION: "PARTITION",
	RIGHT:     "RIGHT",
	SELECT:    "SELECT",
	THEN:      "THEN",
	UNION:     "UNION",
	WHEN:      "WHEN",
	WHERE:     "WHERE",
	WITH:      "WITH",

	BOOLEAN:  "BOOLEAN",
	TINYINT:  "TINYINT",
	SMALLINT: "SMALLINT",
	INT:      "INT",
	BIGINT:   "BIGINT",
	FLOAT:    "FLOAT",
	DOUBLE:   "DOUBLE",
	DECIMAL:  "DECIMAL",
	CHAR:     "CHAR",
	VARCHAR:  "VARCHAR",
	TEXT:     "TEXT",
	BINARY:   "BINARY",
	JSON:     "JSON",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(names) && names[k] != "" {
		return names[k]
	}
	return "ILLEGAL"
}

// IsKeyword returns true if the kind is a keyword, including type keywords.
func (k Kind) IsKeyword() bool {
	return k > keyword_beg && k < keyword_end
}

// IsType returns true if the kind is one of the recognized CAST target types.
func (k Kind) IsType() bool {
	return k > type_beg && k < type_end
}

// Keywords maps uppercase keyword strings to their kinds.
var Keywords map[string]Kind

func init() {
	Keywords = make(map[string]Kind)
	for k := keyword_beg + 1; k < keyword_end && int(k) < len(names); k++ {
		if names[k] != "" {
			Keywords[names[k]] = k
		}
	}
}

// Lookup returns the kind for an unquoted name: the keyword kind if name
// is an uppercase keyword, VAR otherwise.
func Lookup(name string) Kind {
	if k, ok := Keywords[name]; ok {
		return k
	}
	return VAR
}

// Position is a source location attached to a token by the tokenizer.
type Position struct {
	Offset int // byte offset
	Line   int // line number (1-based)
	Column int // column number (1-based)
}

// Token is an immutable lexical unit. The parser reads tokens by index
// and never modifies them.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

func (t Token) String() string {
	if t.Kind.IsKeyword() || t.Text == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}
