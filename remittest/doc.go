/*
Package remittest provides mocks and helpers for testing extensions and
applications built on top of the remit framework.

Mocks count their calls and return whatever they are configured with, so
that a test can focus on the component under test:

	h := &remittest.Handler{DeliverErr: errors.ErrNotFound}
	stack := remittest.Decorate(h, myDecorator)

Runner drives a complete ABCI application block by block.
*/
package remittest
