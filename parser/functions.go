package parser

import (
	"github.com/pkg/errors"

	"github.com/sqlshift/sqlshift/ast"
)

// FunctionBuilder turns a parsed argument list into a function node. The
// parser consults the registry once per function-shaped primary; a
// non-nil error aborts the parse.
type FunctionBuilder func(args []ast.Expr) (ast.Expr, error)

// builtinFunctions returns a fresh copy of the default registry, so
// caller overrides on one Parser never leak into another.
func builtinFunctions() map[string]FunctionBuilder {
	return map[string]FunctionBuilder{
		"AVG":   oneArg("AVG", func(e ast.Expr) ast.Expr { return &ast.Avg{This: e} }),
		"CEIL":  oneArg("CEIL", func(e ast.Expr) ast.Expr { return &ast.Ceil{This: e} }),
		"FIRST": oneArg("FIRST", func(e ast.Expr) ast.Expr { return &ast.First{This: e} }),
		"FLOOR": oneArg("FLOOR", func(e ast.Expr) ast.Expr { return &ast.Floor{This: e} }),
		"LAST":  oneArg("LAST", func(e ast.Expr) ast.Expr { return &ast.Last{This: e} }),
		"LN":    oneArg("LN", func(e ast.Expr) ast.Expr { return &ast.LN{This: e} }),
		"MAX":   oneArg("MAX", func(e ast.Expr) ast.Expr { return &ast.Max{This: e} }),
		"MIN":   oneArg("MIN", func(e ast.Expr) ast.Expr { return &ast.Min{This: e} }),
		"SUM":   oneArg("SUM", func(e ast.Expr) ast.Expr { return &ast.Sum{This: e} }),

		// RANK() and ROW_NUMBER() are usually argumentless.
		"RANK":       maybeArg("RANK", func(e ast.Expr) ast.Expr { return &ast.Rank{This: e} }),
		"ROW_NUMBER": maybeArg("ROW_NUMBER", func(e ast.Expr) ast.Expr { return &ast.RowNumber{This: e} }),

		"COALESCE": func(args []ast.Expr) (ast.Expr, error) {
			return &ast.Coalesce{Expressions: args}, nil
		},
		"IF": func(args []ast.Expr) (ast.Expr, error) {
			switch len(args) {
			case 2:
				return &ast.If{Condition: args[0], True: args[1]}, nil
			case 3:
				return &ast.If{Condition: args[0], True: args[1], False: args[2]}, nil
			}
			return nil, errors.Wrapf(ErrSyntax, "IF expects 2 or 3 arguments, got %d", len(args))
		},
	}
}

func oneArg(name string, build func(ast.Expr) ast.Expr) FunctionBuilder {
	return func(args []ast.Expr) (ast.Expr, error) {
		if len(args) != 1 {
			return nil, errors.Wrapf(ErrSyntax, "%s expects 1 argument, got %d", name, len(args))
		}
		return build(args[0]), nil
	}
}

func maybeArg(name string, build func(ast.Expr) ast.Expr) FunctionBuilder {
	return func(args []ast.Expr) (ast.Expr, error) {
		switch len(args) {
		case 0:
			return build(nil), nil
		case 1:
			return build(args[0]), nil
		}
		return nil, errors.Wrapf(ErrSyntax, "%s expects at most 1 argument, got %d", name, len(args))
	}
}
