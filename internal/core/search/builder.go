package search

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// CompiledFilter is the conjunction of all accumulated criteria expressed as a
// parameterized SQL fragment. A nil filter means "match everything".
type CompiledFilter = sq.Sqlizer

// Builder accumulates filter criteria for a single search request and compiles
// them into one conjunctive predicate. Not safe for concurrent use; scope one
// builder per request.
type Builder struct {
	criteria []Criterion
}

// NewBuilder returns an empty criteria builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// With appends a criterion and returns the builder for chaining.
func (b *Builder) With(field Field, op Operator, value any) *Builder {
	b.criteria = append(b.criteria, Criterion{Field: field, Operator: op, Value: value})
	return b
}

// Criteria returns a copy of the accumulated criteria in insertion order.
func (b *Builder) Criteria() []Criterion {
	out := make([]Criterion, len(b.criteria))
	copy(out, b.criteria)
	return out
}

// Build compiles the accumulated criteria into a single AND predicate.
// An empty builder yields nil, meaning an unconstrained scan.
func (b *Builder) Build() CompiledFilter {
	if len(b.criteria) == 0 {
		return nil
	}

	conj := make(sq.And, 0, len(b.criteria))
	for _, criterion := range b.criteria {
		conj = append(conj, compile(criterion))
	}
	return conj
}

// compile maps one criterion onto a squirrel fragment. Unknown fields and
// operators indicate a bug in the calling code, so they panic instead of
// surfacing as user errors.
func compile(c Criterion) sq.Sqlizer {
	column, ok := columns[c.Field]
	if !ok {
		panic(fmt.Sprintf("search: unknown filter field %q", c.Field))
	}

	switch c.Operator {
	case OpEqualsLike:
		return sq.ILike{column: fmt.Sprintf("%%%v%%", c.Value)}
	case OpGreaterOrEqual:
		return sq.GtOrEq{column: c.Value}
	case OpLessOrEqual:
		return sq.LtOrEq{column: c.Value}
	default:
		panic(fmt.Sprintf("search: unknown filter operator %q", c.Operator))
	}
}
