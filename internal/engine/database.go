// Package engine is the storage and execution core: tables over an in-memory
// row heap with an optional B+ tree primary-key index, a named table catalog,
// and snapshot-rollback transactions. Nothing here touches disk; durability is
// out of scope by design.
package engine

import (
	"fmt"
	"sort"

	"github.com/stellnox/toydb/internal/record"
)

// Database is a catalog of named tables plus the transaction manager that
// serves them. It exclusively owns its tables; tables own their rows and
// indexes. The catalog itself is not synchronized: the execution model assumes
// a single statement executor mutates at any instant.
type Database struct {
	name   string
	tables map[string]*Table
	txn    *TxnManager
}

func New(name string) *Database {
	return &Database{
		name:   name,
		tables: make(map[string]*Table),
		txn:    NewTxnManager(),
	}
}

func (db *Database) Name() string     { return db.name }
func (db *Database) Txn() *TxnManager { return db.txn }

// CreateTable registers a new table. It rejects duplicate table names, more
// than one PRIMARY KEY declaration, and primary keys of a type the index
// cannot carry (only INT and TEXT keys are indexable; FLOAT keys would drag
// IEEE NaN into the comparator).
func (db *Database) CreateTable(name string, cols []record.Column) error {
	if _, exists := db.tables[name]; exists {
		return fmt.Errorf("%w: %s", ErrTableExists, name)
	}

	pkSeen := false
	for _, col := range cols {
		if !col.PrimaryKey {
			continue
		}
		if pkSeen {
			return fmt.Errorf("%w: table %s", ErrMultiplePrimaryKeys, name)
		}
		pkSeen = true
		if col.Type != record.ColInt && col.Type != record.ColText {
			return fmt.Errorf("%w: column %s is %s", ErrBadPrimaryKeyType, col.Name, col.Type)
		}
	}

	db.tables[name] = NewTable(name, record.Schema{Cols: cols}, db.txn)
	return nil
}

// DropTable removes a table from the catalog.
func (db *Database) DropTable(name string) error {
	if _, exists := db.tables[name]; !exists {
		return fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	delete(db.tables, name)
	return nil
}

func (db *Database) GetTable(name string) (*Table, error) {
	t, ok := db.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return t, nil
}

func (db *Database) TableExists(name string) bool {
	_, ok := db.tables[name]
	return ok
}

// ListTables returns all table names in sorted order.
func (db *Database) ListTables() []string {
	names := make([]string, 0, len(db.tables))
	for name := range db.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BeginTransaction starts a transaction and returns its ID.
func (db *Database) BeginTransaction() uint64 {
	return db.txn.Begin()
}

// CommitTransaction makes the transaction's changes permanent by discarding
// its pre-images.
func (db *Database) CommitTransaction(id uint64) error {
	return db.txn.Commit(id)
}

// AbortTransaction rolls the transaction back: every table it touched gets its
// row sequence replaced by the captured pre-image. Tables dropped since the
// capture are skipped. The PK index is not rebuilt from the restored rows;
// stale entries are tolerated the same way deletes leave them (bounds-checked
// on lookup).
func (db *Database) AbortTransaction(id uint64) error {
	preImages, err := db.txn.Abort(id)
	if err != nil {
		return err
	}
	for name, rows := range preImages {
		if t, ok := db.tables[name]; ok {
			t.restoreRows(rows)
		}
	}
	return nil
}
