package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sqlshift/sqlshift/token"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "SELECT", token.SELECT.String())
	assert.Equal(t, "=", token.EQ.String())
	assert.Equal(t, ";", token.SEMICOLON.String())
	assert.Equal(t, "VARCHAR", token.VARCHAR.String())
	assert.Equal(t, "ILLEGAL", token.ILLEGAL.String())
	assert.Equal(t, "ILLEGAL", token.Kind(-1).String())
	assert.Equal(t, "ILLEGAL", token.Kind(10000).String())
}

func TestLookup(t *testing.T) {
	assert.Equal(t, token.SELECT, token.Lookup("SELECT"))
	assert.Equal(t, token.GROUP, token.Lookup("GROUP"))
	assert.Equal(t, token.INT, token.Lookup("INT"))
	assert.Equal(t, token.VAR, token.Lookup("my_column"))
	assert.Equal(t, token.VAR, token.Lookup(""))

	// Lookup is exact: keyword matching is the caller's casing problem.
	assert.Equal(t, token.VAR, token.Lookup("select"))
}

// The keywords table is built by walking the keyword range at init, and
// the last named kind sits at the very end of the name table. Pin the
// full table so a range marker slipping past the names is caught here
// rather than at import time.
func TestKeywordsTable(t *testing.T) {
	assert.Len(t, token.Keywords, 50)
	assert.NotContains(t, token.Keywords, "")

	// Highest named kind; resolving it exercises the table boundary.
	assert.Equal(t, token.JSON, token.Lookup("JSON"))

	for name, kind := range token.Keywords {
		assert.True(t, kind.IsKeyword(), "Keywords[%q] = %v is not a keyword", name, kind)
		assert.Equal(t, name, kind.String())
	}
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, token.SELECT.IsKeyword())
	assert.True(t, token.INT.IsKeyword())
	assert.False(t, token.IDENTIFIER.IsKeyword())
	assert.False(t, token.SEMICOLON.IsKeyword())
}

func TestIsType(t *testing.T) {
	assert.True(t, token.INT.IsType())
	assert.True(t, token.VARCHAR.IsType())
	assert.False(t, token.SELECT.IsType())
	assert.False(t, token.NUMBER.IsType())
}

func TestTokenString(t *testing.T) {
	kw := token.Token{Kind: token.SELECT, Text: "SELECT"}
	assert.Equal(t, "SELECT", kw.String())

	lit := token.Token{Kind: token.NUMBER, Text: "42"}
	assert.Equal(t, `NUMBER "42"`, lit.String())

	name := token.Token{Kind: token.VAR, Text: "users"}
	assert.Equal(t, `VAR "users"`, name.String())
}
