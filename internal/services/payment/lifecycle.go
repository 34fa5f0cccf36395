package payment

import (
	"strings"

	domainerrors "payout/internal/errors"
	"payout/internal/models"
)

// predecessor maps each status to the only status it may be entered from.
var predecessor = map[models.PaymentStatus]models.PaymentStatus{
	models.PaymentStatusProcessed: models.PaymentStatusAccepted,
	models.PaymentStatusCompleted: models.PaymentStatusProcessed,
	models.PaymentStatusPaid:      models.PaymentStatusCompleted,
}

// CanTransition reports whether a payment may move from one status to another.
// Every move is a single step forward.
func CanTransition(from, to models.PaymentStatus) bool {
	required, ok := predecessor[to]
	return ok && required == from
}

// ParseStatus accepts a status name in any case. An empty string yields an
// empty status, which list filters treat as "any".
func ParseStatus(s string) (models.PaymentStatus, error) {
	if s == "" {
		return "", nil
	}
	status := models.PaymentStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case models.PaymentStatusAccepted, models.PaymentStatusProcessed,
		models.PaymentStatusCompleted, models.PaymentStatusPaid:
		return status, nil
	}
	return "", domainerrors.ErrInvalidInput.Withf("unknown status %q", s)
}
