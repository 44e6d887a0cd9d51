package record

// Condition is a single WHERE predicate: <column> <op> <literal>.
// Op is one of =, !=, <, >, <=, >=. Anything else never matches.
type Condition struct {
	Column string
	Op     string
	Value  Value
}

// Matches evaluates the condition against a row under the given columns.
// A condition naming an unknown column is false, never an error.
func (c Condition) Matches(row Row, cols []Column) bool {
	idx := -1
	for i := range cols {
		if cols[i].Name == c.Column {
			idx = i
			break
		}
	}
	if idx < 0 || idx >= len(row) {
		return false
	}

	got := row[idx]
	switch c.Op {
	case "=":
		return Equal(got, c.Value)
	case "!=":
		return !Equal(got, c.Value)
	case "<":
		return Less(got, c.Value)
	case ">":
		return !Less(got, c.Value) && !Equal(got, c.Value)
	case "<=":
		return Less(got, c.Value) || Equal(got, c.Value)
	case ">=":
		return !Less(got, c.Value)
	default:
		return false
	}
}

// MatchesAll reports whether the row satisfies every condition.
// An empty condition list matches every row.
func MatchesAll(conds []Condition, row Row, cols []Column) bool {
	for _, c := range conds {
		if !c.Matches(row, cols) {
			return false
		}
	}
	return true
}
