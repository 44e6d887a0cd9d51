package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stellnox/toydb/internal/record"
)

func usersTable(t *testing.T) *Table {
	t.Helper()
	return NewTable("users", record.Schema{Cols: []record.Column{
		{Name: "id", Type: record.ColInt, PrimaryKey: true},
		{Name: "name", Type: record.ColText, NotNull: true},
		{Name: "score", Type: record.ColFloat},
	}}, NewTxnManager())
}

func mustInsert(t *testing.T, tbl *Table, rows ...record.Row) {
	t.Helper()
	for _, r := range rows {
		require.NoError(t, tbl.Insert(r, 0))
	}
}

func TestTable_InsertAndSelectAll(t *testing.T) {
	tbl := usersTable(t)
	mustInsert(t, tbl,
		record.Row{record.Int(1), record.Text("ada"), record.Float(9.5)},
		record.Row{record.Int(2), record.Text("linus"), record.Null()},
	)

	rows := tbl.Select(nil)
	require.Len(t, rows, 2)
	require.True(t, record.Equal(record.Text("ada"), rows[0][1]))
	require.True(t, record.Equal(record.Text("linus"), rows[1][1]))
}

func TestTable_InsertRejectsColumnCountMismatch(t *testing.T) {
	tbl := usersTable(t)
	err := tbl.Insert(record.Row{record.Int(1)}, 0)
	require.ErrorIs(t, err, ErrColumnCountMismatch)
	require.Zero(t, tbl.NumRows())
}

func TestTable_InsertRejectsNullInNotNullColumn(t *testing.T) {
	tbl := usersTable(t)
	err := tbl.Insert(record.Row{record.Int(1), record.Null(), record.Null()}, 0)
	require.ErrorIs(t, err, ErrNotNullViolation)
	require.Zero(t, tbl.NumRows())
}

func TestTable_InsertRejectsTypeMismatch(t *testing.T) {
	tbl := usersTable(t)
	err := tbl.Insert(record.Row{record.Text("one"), record.Text("ada"), record.Null()}, 0)
	require.ErrorIs(t, err, ErrTypeMismatch)
	require.Zero(t, tbl.NumRows())
}

func TestTable_InsertRejectsDuplicatePrimaryKey(t *testing.T) {
	tbl := usersTable(t)
	mustInsert(t, tbl, record.Row{record.Int(1), record.Text("ada"), record.Null()})

	err := tbl.Insert(record.Row{record.Int(1), record.Text("grace"), record.Null()}, 0)
	require.ErrorIs(t, err, ErrDuplicateKey)
	require.Equal(t, 1, tbl.NumRows())

	rows := tbl.Select(nil)
	require.True(t, record.Equal(record.Text("ada"), rows[0][1]))
}

func TestTable_SelectByPrimaryKeyUsesIndex(t *testing.T) {
	tbl := usersTable(t)
	for i := int64(1); i <= 100; i++ {
		mustInsert(t, tbl, record.Row{record.Int(i), record.Text("u"), record.Null()})
	}

	rows := tbl.Select([]record.Condition{{Column: "id", Op: "=", Value: record.Int(37)}})
	require.Len(t, rows, 1)
	require.True(t, record.Equal(record.Int(37), rows[0][0]))
}

// A PK-equality probe with a literal of the wrong kind returns the empty set,
// not an error.
func TestTable_SelectPKTypeMismatchReturnsEmpty(t *testing.T) {
	tbl := usersTable(t)
	mustInsert(t, tbl, record.Row{record.Int(1), record.Text("ada"), record.Null()})

	rows := tbl.Select([]record.Condition{{Column: "id", Op: "=", Value: record.Text("1")}})
	require.Empty(t, rows)
}

func TestTable_SelectFullScanPreservesInsertionOrder(t *testing.T) {
	tbl := usersTable(t)
	mustInsert(t, tbl,
		record.Row{record.Int(3), record.Text("c"), record.Float(1)},
		record.Row{record.Int(1), record.Text("a"), record.Float(1)},
		record.Row{record.Int(2), record.Text("b"), record.Float(2)},
	)

	rows := tbl.Select([]record.Condition{{Column: "score", Op: "=", Value: record.Float(1)}})
	require.Len(t, rows, 2)
	require.True(t, record.Equal(record.Int(3), rows[0][0]))
	require.True(t, record.Equal(record.Int(1), rows[1][0]))
}

func TestTable_SelectReturnsCopies(t *testing.T) {
	tbl := usersTable(t)
	mustInsert(t, tbl, record.Row{record.Int(1), record.Text("ada"), record.Null()})

	rows := tbl.Select(nil)
	rows[0][1] = record.Text("mutated")

	again := tbl.Select(nil)
	require.True(t, record.Equal(record.Text("ada"), again[0][1]))
}

func TestTable_Update(t *testing.T) {
	tbl := usersTable(t)
	mustInsert(t, tbl,
		record.Row{record.Int(1), record.Text("ada"), record.Null()},
		record.Row{record.Int(2), record.Text("linus"), record.Null()},
	)

	n := tbl.Update(
		map[string]record.Value{"name": record.Text("ada l.")},
		[]record.Condition{{Column: "id", Op: "=", Value: record.Int(1)}},
		0,
	)
	require.Equal(t, 1, n)

	rows := tbl.Select([]record.Condition{{Column: "id", Op: "=", Value: record.Int(1)}})
	require.True(t, record.Equal(record.Text("ada l."), rows[0][1]))
}

func TestTable_UpdateIgnoresUnknownColumns(t *testing.T) {
	tbl := usersTable(t)
	mustInsert(t, tbl, record.Row{record.Int(1), record.Text("ada"), record.Null()})

	n := tbl.Update(map[string]record.Value{"nope": record.Int(9)}, nil, 0)
	require.Equal(t, 1, n, "row still counts; the unknown column is just dropped")
}

// A field assignment whose value kind does not match the column type is
// skipped silently without aborting the rest of the row.
func TestTable_UpdateSkipsMismatchedFieldOnly(t *testing.T) {
	tbl := usersTable(t)
	mustInsert(t, tbl, record.Row{record.Int(1), record.Text("ada"), record.Float(1)})

	n := tbl.Update(map[string]record.Value{
		"name":  record.Int(99), // wrong kind, skipped
		"score": record.Float(2),
	}, nil, 0)
	require.Equal(t, 1, n)

	rows := tbl.Select(nil)
	require.True(t, record.Equal(record.Text("ada"), rows[0][1]))
	require.True(t, record.Equal(record.Float(2), rows[0][2]))
}

// Updating the PK to a value held by a different row skips that row entirely
// and does not count it.
func TestTable_UpdateSkipsRowOnDuplicateNewPK(t *testing.T) {
	tbl := usersTable(t)
	mustInsert(t, tbl,
		record.Row{record.Int(1), record.Text("ada"), record.Null()},
		record.Row{record.Int(2), record.Text("linus"), record.Null()},
	)

	n := tbl.Update(
		map[string]record.Value{"id": record.Int(2)},
		[]record.Condition{{Column: "id", Op: "=", Value: record.Int(1)}},
		0,
	)
	require.Zero(t, n)

	rows := tbl.Select(nil)
	require.True(t, record.Equal(record.Int(1), rows[0][0]))
	require.True(t, record.Equal(record.Int(2), rows[1][0]))
}

// After a PK change both the old and the new key may resolve through the
// index; the new key must land on the row, the old one goes stale.
func TestTable_UpdatePKLeavesOldIndexEntry(t *testing.T) {
	tbl := usersTable(t)
	mustInsert(t, tbl, record.Row{record.Int(1), record.Text("ada"), record.Null()})

	n := tbl.Update(map[string]record.Value{"id": record.Int(10)}, nil, 0)
	require.Equal(t, 1, n)

	rows := tbl.Select([]record.Condition{{Column: "id", Op: "=", Value: record.Int(10)}})
	require.Len(t, rows, 1)
	require.True(t, record.Equal(record.Int(10), rows[0][0]))

	// Stale entry: the old key still resolves to the same (valid) slot, so the
	// lookup returns the row now holding id=10. Accepted source behavior.
	stale := tbl.Select([]record.Condition{{Column: "id", Op: "=", Value: record.Int(1)}})
	require.Len(t, stale, 1)
	require.True(t, record.Equal(record.Int(10), stale[0][0]))
}

func TestTable_Delete(t *testing.T) {
	tbl := usersTable(t)
	mustInsert(t, tbl,
		record.Row{record.Int(1), record.Text("ada"), record.Null()},
		record.Row{record.Int(2), record.Text("linus"), record.Null()},
		record.Row{record.Int(3), record.Text("grace"), record.Null()},
	)

	n := tbl.Delete([]record.Condition{{Column: "id", Op: "<=", Value: record.Int(2)}}, 0)
	require.Equal(t, 2, n)
	require.Equal(t, 1, tbl.NumRows())

	rows := tbl.Select(nil)
	require.True(t, record.Equal(record.Int(3), rows[0][0]))
}

// Delete does not touch the PK index; a lookup that lands on a slot past the
// current row count is treated as not found.
func TestTable_DeleteLeavesIndexStaleButBounded(t *testing.T) {
	tbl := usersTable(t)
	mustInsert(t, tbl,
		record.Row{record.Int(1), record.Text("ada"), record.Null()},
		record.Row{record.Int(2), record.Text("linus"), record.Null()},
	)

	n := tbl.Delete([]record.Condition{{Column: "id", Op: "=", Value: record.Int(2)}}, 0)
	require.Equal(t, 1, n)

	// id=2's entry points at slot 1, which is now out of range.
	rows := tbl.Select([]record.Condition{{Column: "id", Op: "=", Value: record.Int(2)}})
	require.Empty(t, rows)
}

func TestTable_NoPrimaryKeyFullScanOnly(t *testing.T) {
	tbl := NewTable("logs", record.Schema{Cols: []record.Column{
		{Name: "msg", Type: record.ColText},
	}}, NewTxnManager())

	require.NoError(t, tbl.Insert(record.Row{record.Text("a")}, 0))
	require.NoError(t, tbl.Insert(record.Row{record.Text("a")}, 0))

	rows := tbl.Select([]record.Condition{{Column: "msg", Op: "=", Value: record.Text("a")}})
	require.Len(t, rows, 2)
}

func TestTable_TextPrimaryKey(t *testing.T) {
	tbl := NewTable("kv", record.Schema{Cols: []record.Column{
		{Name: "key", Type: record.ColText, PrimaryKey: true},
		{Name: "val", Type: record.ColInt},
	}}, NewTxnManager())

	require.NoError(t, tbl.Insert(record.Row{record.Text("a"), record.Int(1)}, 0))
	err := tbl.Insert(record.Row{record.Text("a"), record.Int(2)}, 0)
	require.ErrorIs(t, err, ErrDuplicateKey)

	rows := tbl.Select([]record.Condition{{Column: "key", Op: "=", Value: record.Text("a")}})
	require.Len(t, rows, 1)
	require.True(t, record.Equal(record.Int(1), rows[0][1]))
}
