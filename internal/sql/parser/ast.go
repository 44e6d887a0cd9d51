package parser

// Statement is the root interface for all SQL statements. The set of variants
// is closed: the executor dispatches with an exhaustive type switch, so adding
// a statement kind is a compile-time visible change there.
type Statement interface {
	stmtNode()
}

// ColumnDef is a column clause in CREATE TABLE. Type is the raw SQL type name
// (INT, TEXT, ...); the executor resolves it to a record.ColumnType.
type ColumnDef struct {
	Name       string
	Type       string
	PrimaryKey bool
	NotNull    bool
}

type CreateTableStmt struct {
	TableName string
	Columns   []ColumnDef
}

func (*CreateTableStmt) stmtNode() {}

// InsertStmt holds raw value strings; quoted literals keep their quotes until
// the executor coerces them against the target column types. Columns is empty
// for positional inserts.
type InsertStmt struct {
	TableName string
	Columns   []string
	Values    [][]string
}

func (*InsertStmt) stmtNode() {}

// Condition is one WHERE predicate with the literal still in source form.
type Condition struct {
	Column string
	Op     string
	Value  string
}

// SelectStmt projects Columns from a table; an empty Columns list means *.
type SelectStmt struct {
	Columns    []string
	TableName  string
	Conditions []Condition
}

func (*SelectStmt) stmtNode() {}

type Assignment struct {
	Column string
	Value  string
}

type UpdateStmt struct {
	TableName   string
	Assignments []Assignment
	Conditions  []Condition
}

func (*UpdateStmt) stmtNode() {}

type DeleteStmt struct {
	TableName  string
	Conditions []Condition
}

func (*DeleteStmt) stmtNode() {}

type DropTableStmt struct {
	TableName string
}

func (*DropTableStmt) stmtNode() {}

type ShowTablesStmt struct{}

func (*ShowTablesStmt) stmtNode() {}

type BeginTransactionStmt struct{}

func (*BeginTransactionStmt) stmtNode() {}

// TxnID 0 on commit/abort means "the session's current transaction".
type CommitTransactionStmt struct {
	TxnID uint64
}

func (*CommitTransactionStmt) stmtNode() {}

type AbortTransactionStmt struct {
	TxnID uint64
}

func (*AbortTransactionStmt) stmtNode() {}
