package format

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned by Detect when there is no explicit flag,
// no usable filename, and no content to sniff.
var ErrEmptyInput = errors.New("cannot determine input format: input is empty")

// ShapeError reports that a query result does not have the shape the
// chosen output format requires. The message names the concrete
// expectation so the user knows how to reshape the query.
type ShapeError struct {
	Format Format
	Need   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s output requires %s", e.Format, e.Need)
}

// UnsupportedError reports an output format that is declared but not
// implemented. The message states the contract a future implementation
// would have to satisfy.
type UnsupportedError struct {
	Format   Format
	Contract string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s output is not supported (it would require %s)", e.Format, e.Contract)
}
