// Package executor dispatches parsed statements to the engine and shapes the
// outcome into a Result. One Executor is one session: it remembers the
// transaction opened by BEGIN and runs subsequent mutations under it.
package executor

import (
	"fmt"
	"log/slog"

	"github.com/stellnox/toydb/internal/engine"
	"github.com/stellnox/toydb/internal/record"
	"github.com/stellnox/toydb/internal/sql/parser"
)

type Executor struct {
	db *engine.Database

	// txnID is the session's current transaction, 0 when none. Mutations pass
	// it to the engine so pre-images are captured; COMMIT/ABORT without an
	// explicit id target it.
	txnID uint64
}

func NewExecutor(db *engine.Database) *Executor {
	return &Executor{db: db}
}

// ExecSQL is the top-level entry: SQL string -> Result.
func (e *Executor) ExecSQL(sql string) (*Result, error) {
	stmt, err := parser.Parse(sql)
	if err != nil {
		return nil, err
	}
	return e.Execute(stmt)
}

// Execute dispatches one parsed statement. The type switch is exhaustive over
// the closed statement set; an unknown variant is a programming error.
func (e *Executor) Execute(stmt parser.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *parser.CreateTableStmt:
		return e.execCreateTable(s)
	case *parser.InsertStmt:
		return e.execInsert(s)
	case *parser.SelectStmt:
		return e.execSelect(s)
	case *parser.UpdateStmt:
		return e.execUpdate(s)
	case *parser.DeleteStmt:
		return e.execDelete(s)
	case *parser.DropTableStmt:
		return e.execDropTable(s)
	case *parser.ShowTablesStmt:
		return e.execShowTables(s)
	case *parser.BeginTransactionStmt:
		return e.execBeginTransaction(s)
	case *parser.CommitTransactionStmt:
		return e.execCommitTransaction(s)
	case *parser.AbortTransactionStmt:
		return e.execAbortTransaction(s)
	default:
		return nil, fmt.Errorf("executor: unsupported statement type %T", stmt)
	}
}

func (e *Executor) execCreateTable(s *parser.CreateTableStmt) (*Result, error) {
	cols := make([]record.Column, 0, len(s.Columns))
	for _, def := range s.Columns {
		cols = append(cols, record.Column{
			Name:       def.Name,
			Type:       record.ParseColumnType(def.Type),
			PrimaryKey: def.PrimaryKey,
			NotNull:    def.NotNull,
		})
	}
	if err := e.db.CreateTable(s.TableName, cols); err != nil {
		return nil, err
	}
	return &Result{}, nil
}

func (e *Executor) execInsert(s *parser.InsertStmt) (*Result, error) {
	tbl, err := e.db.GetTable(s.TableName)
	if err != nil {
		return nil, err
	}

	var inserted int64
	for _, valueRow := range s.Values {
		row, err := buildRow(valueRow, s.Columns, tbl.Schema())
		if err != nil {
			slog.Debug("executor: skipping insert row", "table", s.TableName, "err", err)
			continue
		}
		if err := tbl.Insert(row, e.txnID); err != nil {
			slog.Debug("executor: insert rejected", "table", s.TableName, "err", err)
			continue
		}
		inserted++
	}
	return &Result{AffectedRows: inserted}, nil
}

// buildRow constructs a typed row from raw value strings. With named columns,
// unspecified columns default to NULL; positionally, every column must be
// supplied.
func buildRow(values []string, colNames []string, schema record.Schema) (record.Row, error) {
	if len(colNames) == 0 {
		if len(values) != schema.NumCols() {
			return nil, fmt.Errorf("expected %d values, got %d", schema.NumCols(), len(values))
		}
		row := make(record.Row, len(values))
		for i, raw := range values {
			row[i] = coerceValue(raw, schema.Cols[i].Type)
		}
		return row, nil
	}

	if len(values) != len(colNames) {
		return nil, fmt.Errorf("expected %d values for %d named columns, got %d",
			len(colNames), len(colNames), len(values))
	}
	row := make(record.Row, schema.NumCols())
	for i := range row {
		row[i] = record.Null()
	}
	for i, name := range colNames {
		idx, ok := schema.ColumnIndex(name)
		if !ok {
			return nil, fmt.Errorf("unknown column %q", name)
		}
		row[idx] = coerceValue(values[i], schema.Cols[idx].Type)
	}
	return row, nil
}

func (e *Executor) execSelect(s *parser.SelectStmt) (*Result, error) {
	tbl, err := e.db.GetTable(s.TableName)
	if err != nil {
		return nil, err
	}
	schema := tbl.Schema()

	conds := make([]record.Condition, 0, len(s.Conditions))
	for _, c := range s.Conditions {
		conds = append(conds, coerceCondition(c, schema))
	}
	rows := tbl.Select(conds)

	// SELECT * : all columns in schema order.
	if len(s.Columns) == 0 {
		return &Result{
			Columns:      schema.Cols,
			Rows:         rows,
			AffectedRows: int64(len(rows)),
		}, nil
	}

	// Explicit projection; unknown column names are dropped.
	var proj []int
	var cols []record.Column
	for _, name := range s.Columns {
		if idx, ok := schema.ColumnIndex(name); ok {
			proj = append(proj, idx)
			cols = append(cols, schema.Cols[idx])
		}
	}
	out := make([]record.Row, 0, len(rows))
	for _, row := range rows {
		p := make(record.Row, 0, len(proj))
		for _, idx := range proj {
			p = append(p, row[idx])
		}
		out = append(out, p)
	}
	return &Result{
		Columns:      cols,
		Rows:         out,
		AffectedRows: int64(len(out)),
	}, nil
}

func (e *Executor) execUpdate(s *parser.UpdateStmt) (*Result, error) {
	tbl, err := e.db.GetTable(s.TableName)
	if err != nil {
		return nil, err
	}
	schema := tbl.Schema()

	assigns := make(map[string]record.Value, len(s.Assignments))
	for _, a := range s.Assignments {
		idx, ok := schema.ColumnIndex(a.Column)
		if !ok {
			// Unknown assignment columns are ignored, matching Table.Update.
			slog.Debug("executor: ignoring assignment to unknown column",
				"table", s.TableName, "column", a.Column)
			continue
		}
		assigns[a.Column] = coerceValue(a.Value, schema.Cols[idx].Type)
	}

	conds := make([]record.Condition, 0, len(s.Conditions))
	for _, c := range s.Conditions {
		conds = append(conds, coerceCondition(c, schema))
	}

	updated := tbl.Update(assigns, conds, e.txnID)
	return &Result{AffectedRows: int64(updated)}, nil
}

func (e *Executor) execDelete(s *parser.DeleteStmt) (*Result, error) {
	tbl, err := e.db.GetTable(s.TableName)
	if err != nil {
		return nil, err
	}
	schema := tbl.Schema()

	conds := make([]record.Condition, 0, len(s.Conditions))
	for _, c := range s.Conditions {
		conds = append(conds, coerceCondition(c, schema))
	}

	removed := tbl.Delete(conds, e.txnID)
	return &Result{AffectedRows: int64(removed)}, nil
}

func (e *Executor) execDropTable(s *parser.DropTableStmt) (*Result, error) {
	if err := e.db.DropTable(s.TableName); err != nil {
		return nil, err
	}
	return &Result{}, nil
}

func (e *Executor) execShowTables(_ *parser.ShowTablesStmt) (*Result, error) {
	names := e.db.ListTables()
	rows := make([]record.Row, 0, len(names))
	for _, name := range names {
		rows = append(rows, record.Row{record.Text(name)})
	}
	return &Result{
		Columns:      []record.Column{{Name: "table_name", Type: record.ColText}},
		Rows:         rows,
		AffectedRows: int64(len(rows)),
	}, nil
}

func (e *Executor) execBeginTransaction(_ *parser.BeginTransactionStmt) (*Result, error) {
	id := e.db.BeginTransaction()
	e.txnID = id
	return &Result{TxnID: id}, nil
}

func (e *Executor) execCommitTransaction(s *parser.CommitTransactionStmt) (*Result, error) {
	id := s.TxnID
	if id == 0 {
		id = e.txnID
	}
	if id == 0 {
		return nil, fmt.Errorf("executor: no transaction to commit")
	}
	if err := e.db.CommitTransaction(id); err != nil {
		return nil, err
	}
	if id == e.txnID {
		e.txnID = 0
	}
	return &Result{TxnID: id}, nil
}

func (e *Executor) execAbortTransaction(s *parser.AbortTransactionStmt) (*Result, error) {
	id := s.TxnID
	if id == 0 {
		id = e.txnID
	}
	if id == 0 {
		return nil, fmt.Errorf("executor: no transaction to abort")
	}
	if err := e.db.AbortTransaction(id); err != nil {
		return nil, err
	}
	if id == e.txnID {
		e.txnID = 0
	}
	return &Result{TxnID: id}, nil
}
