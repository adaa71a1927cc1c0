//go:build js_eval

package userstore

import (
	"fmt"

	"github.com/dop251/goja"
)

type jsMatcher struct {
	cache ProgramCache
}

// NewJSMatcher constructs a Matcher backed by goja.
func NewJSMatcher(opts ...JSMatcherOption) Matcher {
	cfg := applyJSMatcherOptions(opts)
	return &jsMatcher{
		cache: cfg.cache,
	}
}

func (e *jsMatcher) Match(ctx MatchContext, expression string) (bool, error) {
	if expression == "" {
		return false, wrapMatcherError("js", fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaults()
	if e.cache == nil {
		return e.run(ctx, expression, nil)
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return false, err
	}
	return e.run(ctx, expression, program)
}

func (e *jsMatcher) Compile(expression string) (CompiledMatch, error) {
	if expression == "" {
		return nil, wrapMatcherError("js", fmt.Errorf("expression must not be empty"))
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, err
	}
	return &jsCompiledMatch{
		matcher:    e,
		expression: expression,
		program:    program,
	}, nil
}

func (e *jsMatcher) loadOrCompile(expression string) (*goja.Program, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get(expression); ok {
			if program, ok := cached.(*goja.Program); ok {
				return program, nil
			}
		}
	}
	program, err := goja.Compile("", e.wrapExpression(expression), false)
	if err != nil {
		return nil, wrapMatchEvalError("js", expression, err)
	}
	if e.cache != nil {
		e.cache.Set(expression, program)
	}
	return program, nil
}

func (e *jsMatcher) run(ctx MatchContext, expression string, program *goja.Program) (bool, error) {
	vm := goja.New()
	for key, value := range ctx.binding() {
		vm.Set(key, value)
	}
	if program != nil {
		value, err := vm.RunProgram(program)
		if err != nil {
			return false, wrapMatchEvalError("js", expression, err)
		}
		return matchResult("js", expression, value.Export())
	}
	value, err := vm.RunString(e.wrapExpression(expression))
	if err != nil {
		return false, wrapMatchEvalError("js", expression, err)
	}
	return matchResult("js", expression, value.Export())
}

func (e *jsMatcher) wrapExpression(expression string) string {
	return fmt.Sprintf("(function(){ return (%s); })()", expression)
}

type jsCompiledMatch struct {
	matcher    *jsMatcher
	expression string
	program    *goja.Program
}

func (m *jsCompiledMatch) Match(ctx MatchContext) (bool, error) {
	if m.matcher == nil {
		return false, wrapMatcherError("js", fmt.Errorf("compiled match missing matcher"))
	}
	ctx = ctx.withDefaults()
	return m.matcher.run(ctx, m.expression, m.program)
}

func jsMatcherAvailable() bool {
	return true
}
