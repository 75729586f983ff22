package domain

import "errors"

var (
	// ErrEmptyInventory is returned when a demand host reports no payment
	// details for a transaction.
	ErrEmptyInventory = errors.New("empty inventory")

	// ErrUnexpectedResponse is returned when a remote peer responds with a
	// payload the client cannot interpret.
	ErrUnexpectedResponse = errors.New("unexpected response")

	// ErrInsufficientFunds is returned by the node when the operator account
	// cannot cover a transfer plus its fee.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnknownHost is returned when a payment's source address does not
	// resolve to a registered demand host.
	ErrUnknownHost = errors.New("unknown demand host")

	// ErrLockBusy is returned when a job lock is already held elsewhere.
	ErrLockBusy = errors.New("job lock already held")

	// ErrStatusConflict is returned when a guarded status transition finds the
	// row in a different state than expected.
	ErrStatusConflict = errors.New("status conflict")
)
