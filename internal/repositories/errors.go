package repositories

import "errors"

var (
	ErrStoreNotFound       = errors.New("store not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrFeeScheduleNotFound = errors.New("fee schedule not found")
)
