package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testCols() []Column {
	return []Column{
		{Name: "id", Type: ColInt, PrimaryKey: true},
		{Name: "name", Type: ColText},
		{Name: "score", Type: ColFloat},
	}
}

func TestCondition_Operators(t *testing.T) {
	cols := testCols()
	row := Row{Int(5), Text("ada"), Float(1.5)}

	cases := []struct {
		op    string
		value Value
		want  bool
	}{
		{"=", Int(5), true},
		{"=", Int(6), false},
		{"!=", Int(6), true},
		{"!=", Int(5), false},
		{"<", Int(6), true},
		{"<", Int(5), false},
		{">", Int(4), true},
		{">", Int(5), false},
		{"<=", Int(5), true},
		{"<=", Int(4), false},
		{">=", Int(5), true},
		{">=", Int(6), false},
	}
	for _, tc := range cases {
		c := Condition{Column: "id", Op: tc.op, Value: tc.value}
		require.Equal(t, tc.want, c.Matches(row, cols), "id %s %s", tc.op, tc.value)
	}
}

func TestCondition_UnknownOperatorIsFalse(t *testing.T) {
	row := Row{Int(5), Text("ada"), Float(1.5)}
	c := Condition{Column: "id", Op: "LIKE", Value: Int(5)}
	require.False(t, c.Matches(row, testCols()))
}

func TestCondition_UnknownColumnIsFalse(t *testing.T) {
	row := Row{Int(5), Text("ada"), Float(1.5)}
	c := Condition{Column: "missing", Op: "=", Value: Int(5)}
	require.False(t, c.Matches(row, testCols()))
}

func TestMatchesAll(t *testing.T) {
	cols := testCols()
	row := Row{Int(5), Text("ada"), Float(1.5)}

	require.True(t, MatchesAll(nil, row, cols), "empty list matches every row")

	both := []Condition{
		{Column: "id", Op: ">", Value: Int(1)},
		{Column: "name", Op: "=", Value: Text("ada")},
	}
	require.True(t, MatchesAll(both, row, cols))

	oneFails := []Condition{
		{Column: "id", Op: ">", Value: Int(1)},
		{Column: "name", Op: "=", Value: Text("linus")},
	}
	require.False(t, MatchesAll(oneFails, row, cols))
}
