/*
Package utils contains decorators that every application stack needs.

Savepoint makes each operation atomic: all of its writes are applied or
none are. Recovery turns a panic into an error, Logging reports the outcome
of every operation and ActionTagger labels delivered transactions with the
path of their message.
*/
package utils
