/*
Package utils contains decorators that are not tied to a single extension
but are useful for every application: logging, panic recovery, state
savepoints, prometheus metrics and action events.
*/
package utils
