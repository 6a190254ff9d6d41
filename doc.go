/*
Package remit defines the common interfaces that tie together the
application, its storage and its extensions, as well as the simple
types shared by all of them (addresses, conditions, events).

We pass context through context.Context between app, middleware
and handlers. This package defines the keys for the information
that is valid for a whole block (height, chain id, block time,
logger). Each extension may add its own keys, for example x/sigs
stores the transaction signers.

There should exist two functions for every XYZ of type T that we
want to support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid
lower-level modules overwriting the value (eg. height, chain id).
*/
package remit
