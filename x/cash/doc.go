/*
Package cash keeps fungible balances of the accounts.

Swaps only ever move a fee in a single currency, so there is no logic in
the coins except that the balance of any coin may not go below zero. Thus,
this implementation is referred to as cash. Simple and safe.
*/
package cash
