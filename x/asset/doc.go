/*
Package asset implements a registry of unique, non-fungible assets.

Each asset carries two opaque unsigned attributes, magic and strength, and
is owned by exactly one address at any time. Assets are created by the
issuer administrator and can be transferred by their owner. Other
extensions reassign ownership through the Controller, which always reads
the current owner from the store.
*/
package asset
