/*
Package gconf stores per extension configuration in the database.

Each extension owns one configuration singleton, saved under the
"_c:<package>" key. A configuration is created from the genesis file and
can later be patched by its owner with an update message.
*/
package gconf
