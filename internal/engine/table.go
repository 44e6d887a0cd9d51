package engine

import (
	"fmt"

	"github.com/stellnox/toydb/internal/btree"
	"github.com/stellnox/toydb/internal/record"
)

// Table couples a row heap with an optional primary-key index. The index maps
// the PK value to the row's logical slot; slots are only valid until the next
// compacting delete, so every index hit is bounds-checked before use. At most
// one of intIndex/textIndex is non-nil, depending on the PK column type.
type Table struct {
	name   string
	schema record.Schema
	rows   []record.Row

	pkCol     int // -1 when the table has no primary key
	intIndex  *btree.Tree[int64, int]
	textIndex *btree.Tree[string, int]

	txn *TxnManager
}

func NewTable(name string, schema record.Schema, txn *TxnManager) *Table {
	t := &Table{
		name:   name,
		schema: schema,
		pkCol:  -1,
		txn:    txn,
	}
	for i, col := range schema.Cols {
		if !col.PrimaryKey {
			continue
		}
		t.pkCol = i
		switch col.Type {
		case record.ColInt:
			t.intIndex = btree.New[int64, int]()
		case record.ColText:
			t.textIndex = btree.New[string, int]()
		}
		break
	}
	return t
}

func (t *Table) Name() string          { return t.name }
func (t *Table) Schema() record.Schema { return t.schema }
func (t *Table) NumRows() int          { return len(t.rows) }

// ColumnIndex resolves a column name to its position.
func (t *Table) ColumnIndex(name string) (int, bool) {
	return t.schema.ColumnIndex(name)
}

func (t *Table) hasIndex() bool {
	return t.intIndex != nil || t.textIndex != nil
}

// pkLookup queries the PK index for a slot. A value whose kind does not match
// the indexed key type is simply not found.
func (t *Table) pkLookup(v record.Value) (int, bool) {
	switch {
	case t.intIndex != nil && v.Kind() == record.KindInt64:
		return t.intIndex.Find(v.Int64())
	case t.textIndex != nil && v.Kind() == record.KindText:
		return t.textIndex.Find(v.Text())
	}
	return 0, false
}

// pkUpsert maps a PK value to a row slot.
func (t *Table) pkUpsert(v record.Value, slot int) {
	switch {
	case t.intIndex != nil && v.Kind() == record.KindInt64:
		t.intIndex.Insert(v.Int64(), slot)
	case t.textIndex != nil && v.Kind() == record.KindText:
		t.textIndex.Insert(v.Text(), slot)
	}
}

// Insert appends one row after validating it against the schema: exact column
// count, NOT NULL, exact type match for non-NULL values, and PK uniqueness.
// Any violation rejects the whole row with no state change. A txID > 0 stashes
// the table's pre-image with the transaction manager first.
func (t *Table) Insert(row record.Row, txID uint64) error {
	if len(row) != t.schema.NumCols() {
		return fmt.Errorf("%w: table %s has %d columns, got %d values",
			ErrColumnCountMismatch, t.name, t.schema.NumCols(), len(row))
	}

	for i, col := range t.schema.Cols {
		v := row[i]
		if v.IsNull() {
			if col.NotNull {
				return fmt.Errorf("%w: column %s", ErrNotNullViolation, col.Name)
			}
			continue
		}
		if v.Kind() != col.Type.Kind() {
			return fmt.Errorf("%w: column %s expects %s, got %s",
				ErrTypeMismatch, col.Name, col.Type, v.Kind())
		}
		if col.PrimaryKey && t.hasIndex() {
			if _, taken := t.pkLookup(v); taken {
				return fmt.Errorf("%w: %s", ErrDuplicateKey, v)
			}
		}
	}

	t.txn.Capture(txID, t.name, t.rows)

	slot := len(t.rows)
	t.rows = append(t.rows, record.CloneRow(row))
	if t.pkCol >= 0 {
		t.pkUpsert(row[t.pkCol], slot)
	}
	return nil
}

// pkEqualityLookup reports whether conds is exactly one PK-equality condition
// whose literal kind matches the PK column type, the precondition for
// answering a select with a single index probe.
func (t *Table) pkEqualityLookup(conds []record.Condition) (record.Value, bool) {
	if !t.hasIndex() || len(conds) != 1 {
		return record.Value{}, false
	}
	c := conds[0]
	pk := t.schema.Cols[t.pkCol]
	if c.Column != pk.Name || c.Op != "=" {
		return record.Value{}, false
	}
	if c.Value.Kind() != pk.Type.Kind() {
		return record.Value{}, false
	}
	return c.Value, true
}

// Select returns copies of the rows satisfying every condition, in insertion
// order. A single PK-equality condition is answered from the index; a stale
// index entry pointing past the current row count is treated as not found.
func (t *Table) Select(conds []record.Condition) []record.Row {
	if key, ok := t.pkEqualityLookup(conds); ok {
		var out []record.Row
		if slot, found := t.pkLookup(key); found && slot < len(t.rows) {
			out = append(out, record.CloneRow(t.rows[slot]))
		}
		return out
	}

	var out []record.Row
	for _, row := range t.rows {
		if record.MatchesAll(conds, row, t.schema.Cols) {
			out = append(out, record.CloneRow(row))
		}
	}
	return out
}

// Update applies assigns to every row matching conds, in insertion order, and
// returns the number of rows updated. Unknown assignment columns are ignored.
// Per matching row:
//   - a new PK value already indexed to a different slot skips the row
//     entirely and does not count it;
//   - a non-NULL value whose kind does not match the column type skips that
//     single field, not the row;
//   - a PK change upserts the new key at the same slot; the old key's entry
//     stays behind until superseded (accepted staleness, see Select).
func (t *Table) Update(assigns map[string]record.Value, conds []record.Condition, txID uint64) int {
	resolved := make(map[int]record.Value, len(assigns))
	for name, v := range assigns {
		if idx, ok := t.schema.ColumnIndex(name); ok {
			resolved[idx] = v
		}
	}

	t.txn.Capture(txID, t.name, t.rows)

	count := 0
	for i, row := range t.rows {
		if !record.MatchesAll(conds, row, t.schema.Cols) {
			continue
		}

		newPK, touchesPK := resolved[t.pkCol]
		touchesPK = touchesPK && t.pkCol >= 0
		if touchesPK && t.hasIndex() {
			if slot, taken := t.pkLookup(newPK); taken && slot != i {
				continue
			}
		}

		for idx, v := range resolved {
			if !v.IsNull() && v.Kind() != t.schema.Cols[idx].Type.Kind() {
				continue
			}
			row[idx] = v
		}

		if touchesPK {
			t.pkUpsert(row[t.pkCol], i)
		}
		count++
	}
	return count
}

// Delete removes every row matching conds, compacting the row sequence, and
// returns the number removed. The PK index is not touched: entries for
// removed rows go stale and are filtered by the bounds check on lookup.
func (t *Table) Delete(conds []record.Condition, txID uint64) int {
	t.txn.Capture(txID, t.name, t.rows)

	kept := t.rows[:0]
	removed := 0
	for _, row := range t.rows {
		if record.MatchesAll(conds, row, t.schema.Cols) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	t.rows = kept
	return removed
}

// restoreRows replaces the row sequence with a transaction pre-image. The PK
// index is left as-is; it may disagree with the restored rows until later
// mutations supersede its entries (see Select's bounds check).
func (t *Table) restoreRows(rows []record.Row) {
	t.rows = rows
}
