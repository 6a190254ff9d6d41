package x

import (
	"github.com/remitchain/remit"
)

// Authenticator tells a handler who authorized the transaction. Handlers
// take one in their constructor so the source of signatures (x/sigs in
// remitd, a mock in tests) can be swapped.
type Authenticator interface {
	// GetConditions returns the fulfilled conditions, main signer first.
	GetConditions(remit.Context) []remit.Condition
	// HasAddress reports whether any fulfilled condition has addr.
	HasAddress(remit.Context, remit.Address) bool
}

// MultiAuth merges the conditions of several authenticators.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

// ChainAuth returns an authenticator asking each of auths in order.
func ChainAuth(auths ...Authenticator) MultiAuth {
	return MultiAuth(auths)
}

// GetConditions returns the conditions of all authenticators in order. A
// condition reported twice is returned once.
func (m MultiAuth) GetConditions(ctx remit.Context) []remit.Condition {
	var res []remit.Condition
	for _, a := range m {
	next:
		for _, c := range a.GetConditions(ctx) {
			for _, seen := range res {
				if seen.Equals(c) {
					continue next
				}
			}
			res = append(res, c)
		}
	}
	return res
}

func (m MultiAuth) HasAddress(ctx remit.Context, addr remit.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first fulfilled condition, the sender of a
// deposit or the caller of setKycStatus. It is nil for unsigned
// transactions.
func MainSigner(ctx remit.Context, auth Authenticator) remit.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}
