package executor

import "github.com/stellnox/toydb/internal/record"

// Result is the envelope returned for every executed statement. Read queries
// fill Columns and Rows; mutations fill AffectedRows; BEGIN TRANSACTION fills
// TxnID with the new transaction's ID.
type Result struct {
	Columns []record.Column `json:"columns,omitempty"`
	Rows    []record.Row    `json:"rows,omitempty"`

	AffectedRows int64 `json:"affected_rows"`

	TxnID uint64 `json:"txn_id,omitempty"`
}
