package validation

const (
	// MaxStoreNameLength bounds the registered store name.
	MaxStoreNameLength = 255

	// MaxBatchSize bounds the ids in one process or complete request.
	MaxBatchSize = 500

	// MaxIdempotencyKeyLength bounds the Idempotency-Key header.
	MaxIdempotencyKeyLength = 128
)
