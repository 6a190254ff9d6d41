/*
Package orm stores typed objects in prefixed sections of a KVStore called
Buckets.

Each bucket holds one type of object under its primary key, may keep
secondary indexes from an index value to the set of primary keys sharing it
(transfers by sender or by recipient), and hands out named Sequences for
auto-increment ids. Buckets and their indexes register themselves on a
QueryRouter so the node can answer key and prefix queries.
*/
package orm
