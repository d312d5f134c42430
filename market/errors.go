package market

import (
	"errors"
)

// Every failure below is rejection-and-rollback: the enclosing operation
// discards all of its pending state changes before returning the error.
var (
	// ErrNotSupported is returned when an operation references a token with no active listing.
	ErrNotSupported = errors.New("token not supported")

	// ErrUnauthorized is returned when the caller is not the listing's creator.
	ErrUnauthorized = errors.New("caller is not the token creator")

	// ErrInvalidAmount is returned when a zero quantity is supplied.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrArithmeticOverflow is returned when the price multiplication would wrap.
	ErrArithmeticOverflow = errors.New("total cost computation overflow")

	// ErrIncorrectPayment is returned when the paid value does not exactly equal the computed cost.
	ErrIncorrectPayment = errors.New("paid value does not equal total cost")

	// ErrPaymentForwardingFailed is returned when the native payment can't be moved to the creator.
	ErrPaymentForwardingFailed = errors.New("payment forwarding to creator failed")

	// ErrTransferFailed is returned when the token asset rejects a transfer.
	ErrTransferFailed = errors.New("token asset transfer failed")

	// ErrInsufficientBalance is returned when a withdrawal exceeds the market's held balance.
	ErrInsufficientBalance = errors.New("insufficient market balance")

	// ErrDirectPaymentRejected is returned for native currency sent outside of a purchase.
	ErrDirectPaymentRejected = errors.New("direct payment rejected")
)
