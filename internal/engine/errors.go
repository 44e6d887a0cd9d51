package engine

import "errors"

var (
	ErrTableNotFound       = errors.New("toydb: table not found")
	ErrTableExists         = errors.New("toydb: table already exists")
	ErrMultiplePrimaryKeys = errors.New("toydb: multiple primary key columns")
	ErrBadPrimaryKeyType   = errors.New("toydb: primary key must be INT or TEXT")

	ErrColumnCountMismatch = errors.New("toydb: column count mismatch")
	ErrNotNullViolation    = errors.New("toydb: NULL value in NOT NULL column")
	ErrTypeMismatch        = errors.New("toydb: value type does not match column type")
	ErrDuplicateKey        = errors.New("toydb: duplicate primary key")

	ErrTxnNotFound = errors.New("toydb: transaction not found")
)
