package usecase

// Pagination defaults applied by list operations.
const (
	defaultPageSize = 20
	maxPageSize     = 100

	// integrityScanPageSize bounds how many rows a single verification
	// scan loads; larger sets are paged by the caller.
	integrityScanPageSize = 10000
)
