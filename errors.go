package costoflife

import "errors"

// Error kinds returned by parsing and record construction.
//
// Returned errors wrap one of them and should be tested with errors.Is.
var (
	ErrInvalidLifetimeFormat = errors.New("invalid lifetime format")
	ErrInvalidDateFormat     = errors.New("invalid date format")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrGeneric               = errors.New("invalid record")
)
