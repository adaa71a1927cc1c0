package userstore

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprMatcherOption configures an expr matcher instance.
type ExprMatcherOption func(*exprMatcher)

// ExprWithProgramCache wires a ProgramCache into the expr matcher.
func ExprWithProgramCache(cache ProgramCache) ExprMatcherOption {
	return func(e *exprMatcher) {
		e.cache = cache
	}
}

// exprMatcher evaluates predicates using github.com/expr-lang/expr.
type exprMatcher struct {
	cache ProgramCache
}

// NewExprMatcher constructs a Matcher backed by expr-lang/expr.
func NewExprMatcher(opts ...ExprMatcherOption) Matcher {
	e := &exprMatcher{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Match compiles and runs expression against ctx.User.
func (e *exprMatcher) Match(ctx MatchContext, expression string) (bool, error) {
	if expression == "" {
		return false, wrapMatcherError("expr", fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaults()
	env := ctx.binding()
	if e.cache == nil {
		result, err := exprlang.Eval(expression, env)
		if err != nil {
			return false, wrapMatchEvalError("expr", expression, err)
		}
		return matchResult("expr", expression, result)
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return false, err
	}
	result, err := exprlang.Run(program, env)
	if err != nil {
		return false, wrapMatchEvalError("expr", expression, err)
	}
	return matchResult("expr", expression, result)
}

// Compile returns a compiled predicate evaluating expression per invocation.
func (e *exprMatcher) Compile(expression string) (CompiledMatch, error) {
	if expression == "" {
		return nil, wrapMatcherError("expr", fmt.Errorf("expression must not be empty"))
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &exprCompiledMatch{
		matcher:    e,
		program:    program,
		expression: expression,
	}, nil
}

func (e *exprMatcher) loadOrCompile(expression string) (*exprvm.Program, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get(expression); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	program, err := exprlang.Compile(expression,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, wrapMatchEvalError("expr", expression, err)
	}
	if e.cache != nil {
		e.cache.Set(expression, program)
	}
	return program, nil
}

type exprCompiledMatch struct {
	matcher    *exprMatcher
	program    *exprvm.Program
	expression string
}

func (m *exprCompiledMatch) Match(ctx MatchContext) (bool, error) {
	if m.matcher == nil {
		return false, wrapMatcherError("expr", fmt.Errorf("compiled match missing matcher"))
	}
	ctx = ctx.withDefaults()
	result, err := exprlang.Run(m.program, ctx.binding())
	if err != nil {
		return false, wrapMatchEvalError("expr", m.expression, err)
	}
	return matchResult("expr", m.expression, result)
}
