package settlement

import (
	"sort"

	"payout/internal/models"

	"github.com/shopspring/decimal"
)

// BatchSize is the number of payments paid out per call.
const BatchSize = 2

// Selection is the outcome of Select: the chosen payments in payout order
// and the sum of their available amounts.
type Selection struct {
	Payments []models.Payment
	Total    decimal.Decimal
}

// Select picks up to limit payable payments with the smallest available
// amounts. Equal amounts keep their input order.
func Select(payments []models.Payment, limit int) Selection {
	eligible := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if p.Payable() {
			eligible = append(eligible, p)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].AvailableAmount.LessThan(eligible[j].AvailableAmount)
	})

	if limit >= 0 && len(eligible) > limit {
		eligible = eligible[:limit]
	}

	total := decimal.Zero
	for _, p := range eligible {
		total = total.Add(p.AvailableAmount)
	}
	return Selection{Payments: eligible, Total: total}
}
