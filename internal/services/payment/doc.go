/*
Package payment implements the payment lifecycle.

A payment is created ACCEPTED and then moves one step at a time:

	ACCEPTED -> PROCESSED -> COMPLETED -> PAID

ProcessPayments and CompletePayments work on batches. A batch is applied
all-or-nothing: every id is loaded and checked before any status changes,
and the updates run in one repository transaction. Each update is
conditional on the payment still being in its predecessor status, so two
concurrent batches touching the same payment cannot both succeed.

Errors:
  - ErrInvalidInput for a non-positive amount or a duplicate id in a batch
  - ErrNotFound for an unknown store or payment id
  - ErrInvalidTransition when a payment is not in the predecessor status

The PAID step belongs to the settlement package.
*/
package payment
