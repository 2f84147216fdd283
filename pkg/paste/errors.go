package paste

import (
	"errors"
	"fmt"
)

// Parse failures. A *ParseError wraps one of these.
var (
	ErrEmptyInput     = errors.New("paste is empty")
	ErrEmptyBlock     = errors.New("empty block")
	ErrMissingName    = errors.New("block has no species name")
	ErrMalformedStats = errors.New("malformed EV/IV string")
	ErrMalformedLine  = errors.New("malformed line")
	ErrPattern        = errors.New("header pattern failed to compile")
)

// ParseError carries the position of a parse failure. Block is 1-based and
// zero when the failure is not tied to a block.
type ParseError struct {
	Err   error
	Block int
	Line  string
}

func (e *ParseError) Error() string {
	switch {
	case e.Block == 0:
		return e.Err.Error()
	case e.Line == "":
		return fmt.Sprintf("block %d: %v", e.Block, e.Err)
	default:
		return fmt.Sprintf("block %d: %v: %q", e.Block, e.Err, e.Line)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
