/*
Package sigs provides basic authentication
middleware to verify the ed25519 signatures on the transaction,
and maintain nonces for replay protection.

Every signature covers

	version | len(chainID) | chainID | sequence | tx without signatures

prehashed with sha512. The sequence of every signer is stored in the
"sigs" bucket and must match the one used for signing, after which it
is incremented.
*/
package sigs
