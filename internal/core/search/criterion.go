package search

// Field names an offer attribute the filter engine can constrain or sort by.
type Field string

const (
	FieldTitle     Field = "title"
	FieldDate      Field = "date"
	FieldBasePrice Field = "basePrice"
)

// columns maps API-facing field names to offer table columns. Fields outside
// this map are a programmer error, never client input.
var columns = map[Field]string{
	FieldTitle:     "title",
	FieldDate:      "date",
	FieldBasePrice: "base_price",
}

// Operator enumerates the supported comparison operations.
type Operator string

const (
	OpEqualsLike     Operator = "LIKE"
	OpGreaterOrEqual Operator = ">="
	OpLessOrEqual    Operator = "<="
)

// Criterion is one immutable field/operator/value filter condition.
type Criterion struct {
	Field    Field
	Operator Operator
	Value    any
}
