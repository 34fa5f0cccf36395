/*
Package fee computes the amounts fixed on a payment at acceptance.

The global schedule carries three parameters:
  - A, a fixed fee per payment
  - B, a rate applied to the amount
  - D, the blocking rate used for the reserved amount

Each store adds its own rate C. For an accepted amount:

	available     = amount - (A + amount*B + amount*C)
	tempBlockingD = amount * D

Usage:

	schedule, err := fee.NewSchedule(initial, repo, logger)
	if err := schedule.Load(ctx); err != nil { ... }

	acc, err := fee.ComputeAcceptance(amount, store.FeeC, schedule.Current())

A schedule change only affects payments accepted afterwards. Each payment
records the schedule version it was accepted under.
*/
package fee
