package common

// DBReader is a read-only view of the backend pinned to the committed state
// at the moment it was opened. Callers must Discard it when done.
type DBReader interface {
	// Get fetches the value of the given key, or nil if it does not exist.
	// CONTRACT: key readonly []byte
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists.
	// CONTRACT: key readonly []byte
	Has(key []byte) (bool, error)

	// Iterator returns an iterator over a domain of keys, in ascending
	// order. start is inclusive, end exclusive; nil means unbounded.
	// CONTRACT: start, end readonly []byte
	Iterator(start, end []byte) (Iterator, error)

	// Discard releases the view. It is idempotent.
	Discard() error
}

// DBWriter is the write half of a backend transaction. Writes are invisible
// to readers until Commit; Discard drops them all.
type DBWriter interface {
	// Set sets the value for the given key, overwriting it if it already exists.
	// CONTRACT: key, value readonly []byte
	Set(key, value []byte) error

	// Delete deletes the key, or does nothing if the key does not exist.
	// CONTRACT: key readonly []byte
	Delete(key []byte) error

	// Commit flushes pending writes atomically and closes the transaction.
	Commit() error

	// Discard drops pending writes and closes the transaction. It is
	// idempotent, and safe to call after Commit.
	Discard() error
}

// DBReadWriter is a transaction that reads its own uncommitted writes.
type DBReadWriter interface {
	DBReader
	DBWriter
}

// Iterator walks a key range. Next must be called before the first
// Key/Value access. Callers must Close when done.
type Iterator interface {
	// Next advances the iterator; returns false when exhausted.
	Next() bool

	// Key returns the key at the current position.
	// CONTRACT: key readonly []byte
	Key() []byte

	// Value returns the value at the current position.
	// CONTRACT: value readonly []byte
	Value() []byte

	// Error returns the last error encountered by the iterator, if any.
	Error() error

	// Close closes the iterator, releasing any allocated resources.
	Close() error
}
