package executor

import (
	"strconv"
	"strings"

	"github.com/stellnox/toydb/internal/record"
	"github.com/stellnox/toydb/internal/sql/parser"
)

// coerceValue converts a raw SQL literal into a typed value for the target
// column type:
//   - the literal NULL (any case) becomes NULL;
//   - a string wrapped in matching single or double quotes becomes text with
//     the quotes stripped;
//   - otherwise the literal is parsed as the expected type, falling back to
//     text when the parse fails (for INT/FLOAT columns the fallback is then
//     rejected at insert as a type mismatch).
func coerceValue(raw string, target record.ColumnType) record.Value {
	if strings.EqualFold(raw, "NULL") {
		return record.Null()
	}

	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return record.Text(raw[1 : len(raw)-1])
		}
	}

	switch target {
	case record.ColInt:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return record.Int(n)
		}
		return record.Text(raw)
	case record.ColFloat:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return record.Float(f)
		}
		return record.Text(raw)
	case record.ColText:
		return record.Text(raw)
	default:
		return record.Null()
	}
}

// coerceCondition types a parsed WHERE predicate against the schema. For a
// condition naming an unknown column the literal is coerced as text; the
// predicate evaluates to false downstream regardless.
func coerceCondition(cond parser.Condition, schema record.Schema) record.Condition {
	target := record.ColText
	if idx, ok := schema.ColumnIndex(cond.Column); ok {
		target = schema.Cols[idx].Type
	}
	return record.Condition{
		Column: cond.Column,
		Op:     cond.Op,
		Value:  coerceValue(cond.Value, target),
	}
}
