package parser

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/sqlshift/sqlshift/token"
)

// Failure classes. Every error returned by Parse wraps exactly one of
// these, so callers can discriminate with errors.Is. Messages name the
// offending token and its position.
var (
	// ErrSyntax covers missing or unexpected keywords and delimiters.
	ErrSyntax = errors.New("syntax error")

	// ErrUnknownFunction reports a call to a name absent from the
	// function registry.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrQuotedFunction reports a quoted identifier used as a function
	// name; quoted names never denote functions.
	ErrQuotedFunction = errors.New("quoted identifier used as function")

	// ErrUnknownType reports a CAST target outside the recognized set.
	ErrUnknownType = errors.New("unrecognized type")

	// ErrUnconsumedInput reports leftover tokens after an otherwise
	// complete statement.
	ErrUnconsumedInput = errors.New("unconsumed input")
)

// errorf wraps a failure class with a message and the position of the
// current token.
func (p *Parser) errorf(class error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if tok, ok := p.curr(); ok {
		return errors.Wrapf(class, "%s at line %d, column %d", msg, tok.Pos.Line, tok.Pos.Column)
	}
	return errors.Wrapf(class, "%s at end of statement", msg)
}

// errAt is errorf anchored to a specific token rather than the cursor.
func (p *Parser) errAt(class error, tok token.Token, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return errors.Wrapf(class, "%s at line %d, column %d", msg, tok.Pos.Line, tok.Pos.Column)
}

// got describes the current token for error messages.
func (p *Parser) got() string {
	if tok, ok := p.curr(); ok {
		return tok.String()
	}
	return "end of statement"
}
