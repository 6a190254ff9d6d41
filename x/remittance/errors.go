package remittance

import "github.com/remitchain/remit/errors"

// remittance takes 1100-1199
var (
	ErrInvalidRecipient  = errors.Register(1101, "invalid recipient")
	ErrZeroAmount        = errors.Register(1102, "zero amount")
	ErrInvalidTransferID = errors.Register(1103, "invalid transfer id")
	ErrAlreadyWithdrawn  = errors.Register(1104, "already withdrawn")
	ErrNotAdmin          = errors.Register(1105, "caller is not admin")
	ErrNotVerified       = errors.Register(1106, "sender not kyc verified")
	ErrNotPayable        = errors.Register(1107, "call is not payable")
)
