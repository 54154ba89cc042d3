/*
Package swap implements a two party asset exchange through a trusted
intermediary.

Each party deposits a single asset together with a fee into a wrapper held
by the intermediary. While pending, the asset and the fee are owned by the
custody address of the wrapper, which nobody can sign for. The intermediary
executes a pair of wrappers in one transaction: each asset is delivered to
the original owner of the other wrapper, both fees are paid to the
intermediary and both wrappers are destroyed.

Asset records stay public state: an asset held in custody is still listed
under /assets and /assets/owner with the custody address as its owner.
What a pending wrapper prevents is taking the asset or the fee back out.
A wrapper cannot be cancelled and is consumed exactly once.
*/
package swap
