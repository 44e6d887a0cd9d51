package engine

import (
	"fmt"
	"sync"

	"github.com/stellnox/toydb/internal/record"
)

// TxnState is the lifecycle state of a transaction.
type TxnState uint8

const (
	TxnActive TxnState = iota
	TxnCommitted
	TxnAborted
)

func (s TxnState) String() string {
	switch s {
	case TxnActive:
		return "ACTIVE"
	case TxnCommitted:
		return "COMMITTED"
	case TxnAborted:
		return "ABORTED"
	default:
		return "UNKNOWN"
	}
}

// Transaction records, per touched table, the full row sequence as it stood
// the first time this transaction mutated that table. Commit discards the
// pre-images; abort restores them.
type Transaction struct {
	ID    uint64
	State TxnState

	preImages map[string][]record.Row
}

// TxnManager issues monotonically increasing transaction IDs and owns all live
// transaction records. A single mutex guards every state change; transaction
// ID 0 means "no transaction" and is never issued.
type TxnManager struct {
	mu     sync.Mutex
	nextID uint64
	txns   map[uint64]*Transaction
}

func NewTxnManager() *TxnManager {
	return &TxnManager{
		nextID: 1,
		txns:   make(map[uint64]*Transaction),
	}
}

// Begin creates a new active transaction and returns its ID.
func (tm *TxnManager) Begin() uint64 {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	id := tm.nextID
	tm.nextID++
	tm.txns[id] = &Transaction{
		ID:        id,
		State:     TxnActive,
		preImages: make(map[string][]record.Row),
	}
	return id
}

// Commit terminates the transaction, discarding its pre-images.
func (tm *TxnManager) Commit(id uint64) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tx, ok := tm.txns[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrTxnNotFound, id)
	}
	tx.State = TxnCommitted
	delete(tm.txns, id)
	return nil
}

// Abort terminates the transaction and returns its pre-images for the caller
// to restore. The record is removed; a second abort of the same ID fails.
func (tm *TxnManager) Abort(id uint64) (map[string][]record.Row, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tx, ok := tm.txns[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrTxnNotFound, id)
	}
	tx.State = TxnAborted
	delete(tm.txns, id)
	return tx.preImages, nil
}

// Capture stores a deep copy of rows as the pre-image of table for txID.
// First write wins: the snapshot must reflect the table as the transaction
// first saw it, so later mutations within the same transaction are no-ops
// here. Unknown or terminated transactions are ignored, as is txID 0.
func (tm *TxnManager) Capture(txID uint64, table string, rows []record.Row) {
	if txID == 0 {
		return
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	tx, ok := tm.txns[txID]
	if !ok || tx.State != TxnActive {
		return
	}
	if _, captured := tx.preImages[table]; captured {
		return
	}
	tx.preImages[table] = record.CloneRows(rows)
}
