package userstore

import (
	"context"
	"fmt"
	"time"
)

// ProgramCache stores compiled predicate programs keyed by expression
// strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// MatchContext carries the inputs for one predicate evaluation.
type MatchContext struct {
	User User
	Now  *time.Time
	Args map[string]any
}

func (ctx MatchContext) withDefaults() MatchContext {
	if ctx.Now == nil {
		now := time.Now()
		ctx.Now = &now
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	return ctx
}

func (ctx MatchContext) timestamp() time.Time {
	ctx = ctx.withDefaults()
	return *ctx.Now
}

// binding exposes the candidate user to expression engines under a stable
// shape shared by every engine.
func (ctx MatchContext) binding() map[string]any {
	return map[string]any{
		"user": map[string]any{
			"id":        ctx.User.ID,
			"firstname": ctx.User.Firstname,
			"lastname":  ctx.User.Lastname,
			"fullname":  ctx.User.FullName(),
			"email":     ctx.User.Email,
			"role":      string(ctx.User.Role),
			"comment":   ctx.User.Comment,
		},
		"now":  ctx.timestamp(),
		"args": ctx.Args,
	}
}

// Matcher evaluates predicate expressions against single users.
type Matcher interface {
	Match(ctx MatchContext, expression string) (bool, error)
	Compile(expression string) (CompiledMatch, error)
}

// CompiledMatch is a predicate prepared for repeated evaluation.
type CompiledMatch interface {
	Match(ctx MatchContext) (bool, error)
}

// FilterByExpr recomputes the filtered view as the subsequence of the full
// collection matching the predicate expression. It replaces any active
// name/role criteria, since an expression is a complete predicate on its
// own. Evaluation errors leave the filtered view untouched.
func (s *Store) FilterByExpr(ctx context.Context, expression string) ([]User, error) {
	start := s.now()
	if s.matcher == nil {
		return nil, ErrNoMatcher
	}

	compiled, err := s.matcher.Compile(expression)
	if err != nil {
		s.logOp("filter.expr", "", start, err)
		return nil, err
	}

	s.mu.RLock()
	users := cloneUsers(s.users)
	s.mu.RUnlock()

	now := s.now()
	matched := make([]User, 0, len(users))
	for _, user := range users {
		ok, err := compiled.Match(MatchContext{User: user, Now: &now})
		if err != nil {
			s.logOp("filter.expr", user.ID, start, err)
			return nil, err
		}
		if ok {
			matched = append(matched, user)
		}
	}

	s.mu.Lock()
	s.criteria = Criteria{}
	s.filtered = cloneUsers(matched)
	s.mu.Unlock()

	s.logOp("filter.expr", "", start, nil)
	return matched, nil
}

// matchResult coerces an engine result into the predicate outcome.
func matchResult(engine, expression string, value any) (bool, error) {
	ok, isBool := value.(bool)
	if !isBool {
		return false, wrapMatchEvalError(engine, expression, fmt.Errorf("expression must evaluate to a boolean, got %T", value))
	}
	return ok, nil
}
