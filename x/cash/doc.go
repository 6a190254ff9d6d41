/*
Package cash keeps the native value balance of every account.

There is no logic in the value itself, except that the balance of an
account may never go below zero nor above 2^256-1. Moving value debits
the source, credits the destination and then notifies the receiver
registered for the destination, if any. A receiver may reject the value,
in which case the whole move fails.
*/
package cash
