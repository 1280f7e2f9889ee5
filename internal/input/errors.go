package input

import "errors"

// Error kinds reported by the reader. Every error returned by this package
// wraps exactly one of them.
var (
	ErrIO            = errors.New("IO")
	ErrMissingLine   = errors.New("missing line")
	ErrMissingValue  = errors.New("missing value")
	ErrInvalidNumber = errors.New("invalid number")
	ErrOutOfRange    = errors.New("out of range")
)

var kinds = []error{ErrIO, ErrMissingLine, ErrMissingValue, ErrInvalidNumber, ErrOutOfRange}

// Kind returns the short name of the error kind wrapped by err, or "" if err
// is nil or not one of ours.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return ""
}
