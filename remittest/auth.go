package remittest

import (
	"context"

	"github.com/remitchain/remit"
)

// Auth authenticates a fixed set of conditions: Signers followed by
// Signer, when set.
type Auth struct {
	Signer  remit.Condition
	Signers []remit.Condition
}

func (a *Auth) GetConditions(remit.Context) []remit.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append(a.Signers, a.Signer)
}

func (a *Auth) HasAddress(ctx remit.Context, addr remit.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context under Key,
// so a test can sign each call differently.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

// SetConditions returns a context authenticating conds.
func (a *CtxAuth) SetConditions(ctx remit.Context, conds ...remit.Condition) remit.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx remit.Context) []remit.Condition {
	conds, _ := ctx.Value(ctxAuthKey(a.Key)).([]remit.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx remit.Context, addr remit.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []remit.Condition, addr remit.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
