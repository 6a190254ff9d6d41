/*
Package x contains the standard extensions of a remit application.

Extensions implement common functionality (Handler, Decorator,
Initializer, query handlers) and are combined together to construct
an application. This package itself only defines how extensions learn
who authorized a transaction.

Sub-packages:

	sigs        ed25519 signatures and replay protection
	cash        native value held by addresses
	utils       decorators shared by every application stack
	remittance  the KYC gated escrow ledger
*/
package x
