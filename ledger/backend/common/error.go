package common

import (
	"errors"
)

var (
	// ErrTransactionClosed is returned when a committed or discarded transaction is used.
	ErrTransactionClosed = errors.New("transaction has been committed or discarded")

	// ErrKeyEmpty is returned when attempting to use an empty or nil key.
	ErrKeyEmpty = errors.New("key cannot be empty")

	// ErrValueNil is returned when attempting to set a nil value.
	ErrValueNil = errors.New("value cannot be nil")

	// ErrReadOnly is returned when a write operation is attempted on a read-only view.
	ErrReadOnly = errors.New("cannot modify read-only view")
)

func ValidateKv(key, value []byte) error {
	if len(key) == 0 {
		return ErrKeyEmpty
	}
	if value == nil {
		return ErrValueNil
	}
	return nil
}
