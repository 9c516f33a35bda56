package parser_test

import (
	"strings"
	"testing"

	"github.com/sqlshift/sqlshift/token"
)

// lex turns fixture SQL into a token sequence so tests stay readable.
// It is test scaffolding only; tokenizing raw text is the job of an
// external collaborator, never of the shipped packages.
func lex(t *testing.T, sql string) []token.Token {
	t.Helper()

	var tokens []token.Token
	line, col := 1, 1
	i := 0

	emit := func(kind token.Kind, text string, offset, l, c int) {
		tokens = append(tokens, token.Token{
			Kind: kind,
			Text: text,
			Pos:  token.Position{Offset: offset, Line: l, Column: c},
		})
	}

	for i < len(sql) {
		ch := sql[i]
		start, startLine, startCol := i, line, col

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			i++
			col++
		case ch == '\n':
			i++
			line++
			col = 1
		case ch == '\'' || ch == '"':
			quote := ch
			j := i + 1
			for j < len(sql) && sql[j] != quote {
				j++
			}
			if j >= len(sql) {
				t.Fatalf("unterminated %q in fixture %q", string(quote), sql)
			}
			kind := token.STRING
			if quote == '"' {
				kind = token.IDENTIFIER
			}
			emit(kind, sql[i+1:j], start, startLine, startCol)
			col += j + 1 - i
			i = j + 1
		case ch >= '0' && ch <= '9':
			j := i
			for j < len(sql) && (sql[j] >= '0' && sql[j] <= '9' || sql[j] == '.') {
				j++
			}
			emit(token.NUMBER, sql[i:j], start, startLine, startCol)
			col += j - i
			i = j
		case isWordByte(ch):
			j := i
			for j < len(sql) && (isWordByte(sql[j]) || sql[j] >= '0' && sql[j] <= '9') {
				j++
			}
			text := sql[i:j]
			emit(token.Lookup(strings.ToUpper(text)), text, start, startLine, startCol)
			col += j - i
			i = j
		default:
			kind, width := lexOperator(sql[i:])
			if kind == token.ILLEGAL {
				t.Fatalf("unexpected character %q in fixture %q", string(ch), sql)
			}
			emit(kind, sql[i:i+width], start, startLine, startCol)
			col += width
			i += width
		}
	}

	return tokens
}

func isWordByte(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func lexOperator(s string) (token.Kind, int) {
	if len(s) >= 2 {
		switch s[:2] {
		case ">=":
			return token.GTE, 2
		case "<=":
			return token.LTE, 2
		case "<>":
			return token.NEQ, 2
		}
	}
	switch s[0] {
	case '=':
		return token.EQ, 1
	case '>':
		return token.GT, 1
	case '<':
		return token.LT, 1
	case '-':
		return token.MINUS, 1
	case '+':
		return token.PLUS, 1
	case '/':
		return token.SLASH, 1
	case '*':
		return token.STAR, 1
	case '(':
		return token.LPAREN, 1
	case ')':
		return token.RPAREN, 1
	case '[':
		return token.LBRACKET, 1
	case ']':
		return token.RBRACKET, 1
	case ',':
		return token.COMMA, 1
	case '.':
		return token.DOT, 1
	case ';':
		return token.SEMICOLON, 1
	}
	return token.ILLEGAL, 0
}
