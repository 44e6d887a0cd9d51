// Package parser turns a single SQL statement into its parsed form. The
// dialect is deliberately small: CREATE TABLE, INSERT, SELECT, UPDATE,
// DELETE, DROP TABLE, SHOW TABLES and the transaction statements. Literals
// are left as raw strings for the executor to coerce.
package parser

import (
	"fmt"
	"strconv"
	"strings"
)

type cursor struct {
	toks []string
	pos  int
}

func (c *cursor) done() bool { return c.pos >= len(c.toks) }

func (c *cursor) peek() string {
	if c.done() {
		return ""
	}
	return c.toks[c.pos]
}

func (c *cursor) peekUpper() string { return strings.ToUpper(c.peek()) }

func (c *cursor) next() string {
	t := c.peek()
	if !c.done() {
		c.pos++
	}
	return t
}

// accept consumes the next token if it equals the keyword, case-insensitively.
func (c *cursor) accept(kw string) bool {
	if c.peekUpper() == kw {
		c.pos++
		return true
	}
	return false
}

func (c *cursor) expect(kw string) error {
	if !c.accept(kw) {
		return fmt.Errorf("expected %s, got %q", kw, c.peek())
	}
	return nil
}

// skipTerminator consumes a trailing ';' if present.
func (c *cursor) skipTerminator() {
	c.accept(";")
}

// Parse parses one SQL statement.
func Parse(sql string) (Statement, error) {
	c := &cursor{toks: tokenize(sql)}
	if c.done() {
		return nil, fmt.Errorf("empty statement")
	}

	switch c.peekUpper() {
	case "CREATE":
		return parseCreateTable(c)
	case "INSERT":
		return parseInsert(c)
	case "SELECT":
		return parseSelect(c)
	case "UPDATE":
		return parseUpdate(c)
	case "DELETE":
		return parseDelete(c)
	case "DROP":
		return parseDropTable(c)
	case "SHOW":
		return parseShowTables(c)
	case "BEGIN":
		return parseBeginTransaction(c)
	case "COMMIT":
		return parseEndTransaction(c, false)
	case "ABORT", "ROLLBACK":
		return parseEndTransaction(c, true)
	default:
		return nil, fmt.Errorf("unsupported statement: %q", c.peek())
	}
}

func parseCreateTable(c *cursor) (Statement, error) {
	c.next() // CREATE
	if err := c.expect("TABLE"); err != nil {
		return nil, fmt.Errorf("invalid CREATE syntax: %w", err)
	}

	name := c.next()
	if name == "" {
		return nil, fmt.Errorf("expected table name after CREATE TABLE")
	}
	if err := c.expect("("); err != nil {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax: %w", err)
	}

	var cols []ColumnDef
	for !c.done() && c.peek() != ")" {
		col := ColumnDef{Name: c.next()}
		col.Type = strings.ToUpper(c.next())
		if col.Name == "" || col.Type == "" {
			return nil, fmt.Errorf("invalid column definition")
		}

		// Constraints until ',' or ')'.
		for !c.done() && c.peek() != "," && c.peek() != ")" {
			switch c.peekUpper() {
			case "PRIMARY":
				c.next()
				if err := c.expect("KEY"); err != nil {
					return nil, fmt.Errorf("invalid PRIMARY KEY clause: %w", err)
				}
				col.PrimaryKey = true
			case "NOT":
				c.next()
				if err := c.expect("NULL"); err != nil {
					return nil, fmt.Errorf("invalid NOT NULL clause: %w", err)
				}
				col.NotNull = true
			default:
				return nil, fmt.Errorf("unknown column constraint: %q", c.peek())
			}
		}

		cols = append(cols, col)
		c.accept(",")
	}

	if err := c.expect(")"); err != nil {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax: %w", err)
	}
	c.skipTerminator()

	if len(cols) == 0 {
		return nil, fmt.Errorf("no columns defined in CREATE TABLE")
	}
	return &CreateTableStmt{TableName: name, Columns: cols}, nil
}

func parseInsert(c *cursor) (Statement, error) {
	c.next() // INSERT
	if err := c.expect("INTO"); err != nil {
		return nil, fmt.Errorf("invalid INSERT syntax: %w", err)
	}

	stmt := &InsertStmt{TableName: c.next()}
	if stmt.TableName == "" {
		return nil, fmt.Errorf("expected table name after INSERT INTO")
	}

	// Optional column name list.
	if c.accept("(") {
		for !c.done() && c.peek() != ")" {
			stmt.Columns = append(stmt.Columns, c.next())
			c.accept(",")
		}
		if err := c.expect(")"); err != nil {
			return nil, fmt.Errorf("invalid INSERT column list: %w", err)
		}
	}

	if err := c.expect("VALUES"); err != nil {
		return nil, fmt.Errorf("invalid INSERT syntax: %w", err)
	}

	for c.accept("(") {
		var row []string
		for !c.done() && c.peek() != ")" {
			row = append(row, c.next())
			c.accept(",")
		}
		if err := c.expect(")"); err != nil {
			return nil, fmt.Errorf("invalid INSERT values: %w", err)
		}
		stmt.Values = append(stmt.Values, row)

		if !c.accept(",") {
			break
		}
	}
	c.skipTerminator()

	if len(stmt.Values) == 0 {
		return nil, fmt.Errorf("no value rows in INSERT")
	}
	return stmt, nil
}

func parseSelect(c *cursor) (Statement, error) {
	c.next() // SELECT

	stmt := &SelectStmt{}
	for !c.done() && c.peekUpper() != "FROM" {
		if c.peek() == "*" {
			// Empty column list means all columns.
			c.next()
			break
		}
		stmt.Columns = append(stmt.Columns, c.next())
		if !c.accept(",") {
			break
		}
	}

	if err := c.expect("FROM"); err != nil {
		return nil, fmt.Errorf("invalid SELECT syntax: %w", err)
	}
	stmt.TableName = c.next()
	if stmt.TableName == "" {
		return nil, fmt.Errorf("expected table name after FROM")
	}

	conds, err := parseConditions(c)
	if err != nil {
		return nil, err
	}
	stmt.Conditions = conds
	c.skipTerminator()

	return stmt, nil
}

func parseUpdate(c *cursor) (Statement, error) {
	c.next() // UPDATE

	stmt := &UpdateStmt{TableName: c.next()}
	if stmt.TableName == "" {
		return nil, fmt.Errorf("expected table name after UPDATE")
	}
	if err := c.expect("SET"); err != nil {
		return nil, fmt.Errorf("invalid UPDATE syntax: %w", err)
	}

	for !c.done() && c.peekUpper() != "WHERE" && c.peek() != ";" {
		col := c.next()
		if err := c.expect("="); err != nil {
			return nil, fmt.Errorf("invalid SET clause: %w", err)
		}
		val := c.next()
		if col == "" || val == "" {
			return nil, fmt.Errorf("invalid SET clause")
		}
		stmt.Assignments = append(stmt.Assignments, Assignment{Column: col, Value: val})

		if !c.accept(",") {
			break
		}
	}
	if len(stmt.Assignments) == 0 {
		return nil, fmt.Errorf("no assignments in UPDATE")
	}

	conds, err := parseConditions(c)
	if err != nil {
		return nil, err
	}
	stmt.Conditions = conds
	c.skipTerminator()

	return stmt, nil
}

func parseDelete(c *cursor) (Statement, error) {
	c.next() // DELETE
	if err := c.expect("FROM"); err != nil {
		return nil, fmt.Errorf("invalid DELETE syntax: %w", err)
	}

	stmt := &DeleteStmt{TableName: c.next()}
	if stmt.TableName == "" {
		return nil, fmt.Errorf("expected table name after DELETE FROM")
	}

	conds, err := parseConditions(c)
	if err != nil {
		return nil, err
	}
	stmt.Conditions = conds
	c.skipTerminator()

	return stmt, nil
}

func parseDropTable(c *cursor) (Statement, error) {
	c.next() // DROP
	if err := c.expect("TABLE"); err != nil {
		return nil, fmt.Errorf("invalid DROP syntax: %w", err)
	}
	name := c.next()
	if name == "" {
		return nil, fmt.Errorf("expected table name after DROP TABLE")
	}
	c.skipTerminator()
	return &DropTableStmt{TableName: name}, nil
}

func parseShowTables(c *cursor) (Statement, error) {
	c.next() // SHOW
	if err := c.expect("TABLES"); err != nil {
		return nil, fmt.Errorf("invalid SHOW syntax: %w", err)
	}
	c.skipTerminator()
	return &ShowTablesStmt{}, nil
}

func parseBeginTransaction(c *cursor) (Statement, error) {
	c.next() // BEGIN
	c.accept("TRANSACTION")
	c.skipTerminator()
	return &BeginTransactionStmt{}, nil
}

// parseEndTransaction handles COMMIT and ABORT/ROLLBACK. The transaction ID
// is optional; without one the executor targets the session's current
// transaction.
func parseEndTransaction(c *cursor, abort bool) (Statement, error) {
	c.next() // COMMIT / ABORT / ROLLBACK
	c.accept("TRANSACTION")

	var id uint64
	if !c.done() && c.peek() != ";" {
		parsed, err := strconv.ParseUint(c.next(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid transaction id: %w", err)
		}
		id = parsed
	}
	c.skipTerminator()

	if abort {
		return &AbortTransactionStmt{TxnID: id}, nil
	}
	return &CommitTransactionStmt{TxnID: id}, nil
}

// parseConditions parses an optional WHERE clause: cond (AND cond)*.
func parseConditions(c *cursor) ([]Condition, error) {
	if !c.accept("WHERE") {
		return nil, nil
	}

	var conds []Condition
	for {
		col := c.next()
		op := c.next()
		val := c.next()
		if col == "" || op == "" || val == "" {
			return nil, fmt.Errorf("invalid WHERE clause")
		}
		conds = append(conds, Condition{Column: col, Op: op, Value: val})

		if !c.accept("AND") {
			break
		}
	}
	return conds, nil
}
