package errors

var (
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "not found",
	}
	ErrInvalidInput = &DomainError{
		Code:    CodeInvalidInput,
		Message: "invalid input",
	}
	ErrInvalidTransition = &DomainError{
		Code:    CodeInvalidTransition,
		Message: "invalid status transition",
	}
	ErrConflict = &DomainError{
		Code:    CodeConflict,
		Message: "concurrent modification",
	}
)

var (
	ErrStoreNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "store not found",
	}
	ErrPaymentNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "payment not found",
	}
	ErrInvalidAmount = &DomainError{
		Code:    CodeInvalidInput,
		Message: "amount must be positive",
	}
	ErrInvalidFeeRate = &DomainError{
		Code:    CodeInvalidInput,
		Message: "fee rate must not be negative",
	}
	ErrTooManyDecimals = &DomainError{
		Code:    CodeInvalidInput,
		Message: "too many decimal places",
	}
	ErrDuplicatePaymentID = &DomainError{
		Code:    CodeInvalidInput,
		Message: "duplicate payment id in batch",
	}
	ErrSettlementConflict = &DomainError{
		Code:    CodeConflict,
		Message: "payment changed during settlement",
	}
)
