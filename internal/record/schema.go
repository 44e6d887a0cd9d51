package record

import "strings"

// ColumnType is the declared type of a table column.
type ColumnType uint8

const (
	ColNull ColumnType = iota
	ColInt
	ColFloat
	ColText
)

func (t ColumnType) String() string {
	switch t {
	case ColNull:
		return "NULL"
	case ColInt:
		return "INT"
	case ColFloat:
		return "FLOAT"
	case ColText:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// ParseColumnType maps a SQL type name to a ColumnType. Unrecognized names map
// to ColNull: the column is accepted but can only ever hold NULL.
func ParseColumnType(s string) ColumnType {
	switch strings.ToUpper(s) {
	case "INT", "INTEGER":
		return ColInt
	case "FLOAT", "REAL":
		return ColFloat
	case "TEXT", "VARCHAR", "CHAR":
		return ColText
	default:
		return ColNull
	}
}

// Kind returns the value kind a non-NULL cell of this column must carry.
func (t ColumnType) Kind() ValueKind {
	switch t {
	case ColInt:
		return KindInt64
	case ColFloat:
		return KindFloat64
	case ColText:
		return KindText
	default:
		return KindNull
	}
}

type Column struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool
	NotNull    bool
}

type Schema struct {
	Cols []Column
}

func (s Schema) NumCols() int { return len(s.Cols) }

// ColumnIndex resolves a column name to its position by linear search.
func (s Schema) ColumnIndex(name string) (int, bool) {
	for i := range s.Cols {
		if s.Cols[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// Row is one table row; position i holds a value of column i's type, or NULL.
type Row []Value

// CloneRow returns an independent copy of r.
func CloneRow(r Row) Row {
	cp := make(Row, len(r))
	copy(cp, r)
	return cp
}

// CloneRows deep-copies a row sequence. Used for transaction pre-images and
// for handing scan results to callers without aliasing table storage.
func CloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = CloneRow(r)
	}
	return out
}
