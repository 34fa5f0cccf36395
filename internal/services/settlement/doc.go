/*
Package settlement pays out completed payments.

Each MakePayments call fetches the store's COMPLETED payments, drops those
with a non-positive available amount, sorts the rest ascending by available
amount and pays the first BatchSize of them. Payments left behind stay
COMPLETED for a later call. Once nothing is eligible the call returns a
zero payout without error.

Every payout gets a reference that is stamped on its payments together with
the time they were paid.
*/
package settlement
