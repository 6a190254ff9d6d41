package sigs

import "github.com/remitchain/remit/errors"

// Reserved codes 120~129
var (
	ErrInvalidSequence = errors.Register(120, "invalid sequence number")
	ErrInvalidPubkey   = errors.Register(121, "invalid public key")
)
