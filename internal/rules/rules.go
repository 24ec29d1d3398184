package rules

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/agentx-labs/recordx/internal/record"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrEmptyExpression is returned when an expression string is blank.
var ErrEmptyExpression = errors.New("expression must not be empty")

// matchEnv is what match expressions see. Matchers are not told the scope.
type matchEnv struct {
	Arg   string            `expr:"arg"`
	Name  string            `expr:"name"`
	Key   string            `expr:"key"`
	ID    string            `expr:"id"`
	New   bool              `expr:"new"`
	Attrs map[string]string `expr:"attrs"`
}

type modifyEnv struct {
	Arg   string            `expr:"arg"`
	Name  string            `expr:"name"`
	Key   string            `expr:"key"`
	ID    string            `expr:"id"`
	New   bool              `expr:"new"`
	Attrs map[string]string `expr:"attrs"`
	Scope string            `expr:"scope"`
}

func envFor(arg string, rec *record.Record) matchEnv {
	return matchEnv{
		Arg:   arg,
		Name:  rec.Name,
		Key:   rec.Key(),
		ID:    string(rec.ID),
		New:   rec.NewRecord,
		Attrs: rec.Attrs,
	}
}

func scopedEnvFor(scope string, rec *record.Record) modifyEnv {
	return modifyEnv{
		Arg:   rec.Arg,
		Name:  rec.Name,
		Key:   rec.Key(),
		ID:    string(rec.ID),
		New:   rec.NewRecord,
		Attrs: rec.Attrs,
		Scope: scope,
	}
}

// NameEquals matches records whose name is exactly arg.
func NameEquals(arg string, rec *record.Record) (bool, error) {
	return rec.Name == arg, nil
}

// Match compiles a boolean expression into a Matcher.
func Match(expression string) (record.Matcher, error) {
	program, err := compile(expression, matchEnv{}, expr.AsBool())
	if err != nil {
		return nil, err
	}
	return func(arg string, rec *record.Record) (bool, error) {
		out, err := expr.Run(program, envFor(arg, rec))
		if err != nil {
			return false, fmt.Errorf("evaluating %q: %w", expression, err)
		}
		return out.(bool), nil
	}, nil
}

// Rename compiles a string expression into a Modifier that sets the record
// name to the expression's result.
func Rename(expression string) (record.Modifier, error) {
	program, err := compile(expression, modifyEnv{}, expr.AsKind(reflect.String))
	if err != nil {
		return nil, err
	}
	return func(_ context.Context, scope string, rec *record.Record) (*record.Record, error) {
		out, err := expr.Run(program, scopedEnvFor(scope, rec))
		if err != nil {
			return nil, fmt.Errorf("evaluating %q: %w", expression, err)
		}
		name := out.(string)
		if name == "" {
			return nil, fmt.Errorf("rename %q produced an empty name for %q", expression, rec.Key())
		}
		c := rec.Clone()
		c.Name = name
		return c, nil
	}, nil
}

// Annotate compiles a string expression into a Modifier that stores the
// result under attrs[attr].
func Annotate(attr, expression string) (record.Modifier, error) {
	if attr == "" {
		return nil, errors.New("attribute name must not be empty")
	}
	program, err := compile(expression, modifyEnv{}, expr.AsKind(reflect.String))
	if err != nil {
		return nil, err
	}
	return func(_ context.Context, scope string, rec *record.Record) (*record.Record, error) {
		out, err := expr.Run(program, scopedEnvFor(scope, rec))
		if err != nil {
			return nil, fmt.Errorf("evaluating %q: %w", expression, err)
		}
		c := rec.Clone()
		if c.Attrs == nil {
			c.Attrs = make(map[string]string, 1)
		}
		c.Attrs[attr] = out.(string)
		return c, nil
	}, nil
}

// Chain applies mods in order, feeding each result to the next. Nil entries
// are skipped; a chain of nothing returns nil.
func Chain(mods ...record.Modifier) record.Modifier {
	var active []record.Modifier
	for _, m := range mods {
		if m != nil {
			active = append(active, m)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(ctx context.Context, scope string, rec *record.Record) (*record.Record, error) {
		var err error
		for _, m := range active {
			if rec, err = m(ctx, scope, rec); err != nil {
				return nil, err
			}
			if rec == nil {
				return nil, record.ErrNilRecord
			}
		}
		return rec, nil
	}
}

func compile(expression string, env any, opts ...expr.Option) (*vm.Program, error) {
	if expression == "" {
		return nil, ErrEmptyExpression
	}
	opts = append([]expr.Option{expr.Env(env)}, opts...)
	program, err := expr.Compile(expression, opts...)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", expression, err)
	}
	return program, nil
}
