/*
Package coin defines the amount types used to move value around.

Native value is counted in the smallest indivisible unit and may hold any
value of an unsigned 256 bit integer, the same range the ABI uses for its
uint256 type. Arithmetic never wraps: results that would not fit are
reported as an overflow error.
*/
package coin
