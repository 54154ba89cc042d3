/*
Package x contains the extensions of the swap chain.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together to construct an application.

  cash   balances of fungible coins, used to pay deposit fees
  asset  the registry of unique assets and their owners
  swap   escrow wrappers and the two party exchange of assets
  sigs   signature verification and replay protection
  utils  decorators shared by every application stack

This package itself holds the authentication helpers that
all extensions use to check who signed a transaction.
*/
package x
