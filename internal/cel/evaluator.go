// Package cel compiles CEL expressions into row predicates for the
// --where flag. Each row is bound to the variable "row" as a map keyed by
// column id, e.g. `row.salary > 90000 && row.department == "Books"`.
package cel

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/dirtab/internal/rowmodel"
)

// RowVar is the variable name rows are bound to.
const RowVar = "row"

// ErrNotBoolean is returned when an expression does not yield a bool.
var ErrNotBoolean = errors.New("expression must evaluate to a bool")

// Evaluator compiles predicates against a fixed set of columns.
type Evaluator struct {
	env     *cel.Env
	columns []string
}

// NewEvaluator creates an evaluator for rows with the given column ids.
func NewEvaluator(columns []string) (*Evaluator, error) {
	env, err := newRowEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env, columns: append([]string(nil), columns...)}, nil
}

func newRowEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 3+len(opts))
	allOpts = append(allOpts,
		cel.Variable(RowVar, cel.MapType(cel.StringType, cel.DynType)),
		celext.Strings(),
		celext.Math(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

// Compile parses and type-checks expr. Expressions whose static type is not
// bool (or dyn) are rejected up front.
func (e *Evaluator) Compile(expr string) (*Predicate, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	out := ast.OutputType()
	if !out.IsExactType(types.BoolType) && !out.IsExactType(types.DynType) {
		return nil, fmt.Errorf("%w, got %s", ErrNotBoolean, out)
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Predicate{expr: expr, prg: prg, columns: e.columns}, nil
}

// Predicate is a compiled row filter.
type Predicate struct {
	expr    string
	prg     cel.Program
	columns []string
}

// String returns the source expression.
func (p *Predicate) String() string { return p.expr }

// Match evaluates the predicate for one row.
func (p *Predicate) Match(r rowmodel.Record) (bool, error) {
	row := make(map[string]any, len(p.columns))
	for _, id := range p.columns {
		row[id] = r.Field(id)
	}
	val, _, err := p.prg.Eval(map[string]any{RowVar: row})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := val.(types.Bool)
	if !ok {
		return false, fmt.Errorf("%w, got %s", ErrNotBoolean, val.Type().TypeName())
	}
	return bool(b), nil
}
