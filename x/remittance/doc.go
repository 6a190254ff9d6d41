/*
Package remittance implements an escrow ledger for cross border
remittances.

A sender deposits native value for a recipient together with the quoted
exchange rate and the currency pair. The value is kept in a custody
account until anyone calls withdraw for the transfer, which pays the
recipient recorded at deposit. Each transfer can be withdrawn exactly
once.

An admin set at genesis maintains a KYC allow-list. When enforce_kyc is
set in the genesis, only verified accounts can deposit.

Messages are encoded as Solidity ABI calldata and events carry Ethereum
log topics, so existing tooling can build and read them.
*/
package remittance
