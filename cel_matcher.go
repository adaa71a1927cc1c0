package userstore

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
)

// CELMatcherOption configures the CEL matcher.
type CELMatcherOption func(*celMatcher)

// CELWithProgramCache wires a ProgramCache into the CEL matcher.
func CELWithProgramCache(cache ProgramCache) CELMatcherOption {
	return func(e *celMatcher) {
		e.cache = cache
	}
}

type celProgram struct {
	env     *celgo.Env
	program celgo.Program
}

type celMatcher struct {
	cache ProgramCache
}

// NewCELMatcher constructs a Matcher backed by cel-go.
func NewCELMatcher(opts ...CELMatcherOption) Matcher {
	e := &celMatcher{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celMatcher) Match(ctx MatchContext, expression string) (bool, error) {
	if expression == "" {
		return false, wrapMatcherError("cel", fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaults()
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return false, err
	}
	out, _, err := program.program.Eval(ctx.binding())
	if err != nil {
		return false, wrapMatchEvalError("cel", expression, err)
	}
	return matchResult("cel", expression, out.Value())
}

func (e *celMatcher) Compile(expression string) (CompiledMatch, error) {
	if expression == "" {
		return nil, wrapMatcherError("cel", fmt.Errorf("expression must not be empty"))
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &celCompiledMatch{
		program:    program,
		expression: expression,
	}, nil
}

func (e *celMatcher) loadOrCompile(expression string) (*celProgram, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get(expression); ok {
			if program, ok := cached.(*celProgram); ok {
				return program, nil
			}
		}
	}

	env, err := celgo.NewEnv(
		celgo.Variable("user", celgo.DynType),
		celgo.Variable("now", celgo.TimestampType),
		celgo.Variable("args", celgo.DynType),
	)
	if err != nil {
		return nil, wrapMatcherError("cel", err)
	}
	ast, issues := env.Parse(expression)
	if issues != nil && issues.Err() != nil {
		return nil, wrapMatchEvalError("cel", expression, issues.Err())
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, wrapMatchEvalError("cel", expression, issues.Err())
	}
	prg, err := env.Program(checked)
	if err != nil {
		return nil, wrapMatchEvalError("cel", expression, err)
	}

	bundle := &celProgram{
		env:     env,
		program: prg,
	}
	if e.cache != nil {
		e.cache.Set(expression, bundle)
	}
	return bundle, nil
}

type celCompiledMatch struct {
	program    *celProgram
	expression string
}

func (m *celCompiledMatch) Match(ctx MatchContext) (bool, error) {
	if m.program == nil {
		return false, wrapMatcherError("cel", fmt.Errorf("compiled match missing program"))
	}
	ctx = ctx.withDefaults()
	out, _, err := m.program.program.Eval(ctx.binding())
	if err != nil {
		return false, wrapMatchEvalError("cel", m.expression, err)
	}
	return matchResult("cel", m.expression, out.Value())
}
