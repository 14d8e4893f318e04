package index

import (
	"errors"
	"fmt"
)

// ErrEmptyDocument signals that a document contained no heading lines at
// all. Building such a document still yields a valid zero-node index; the
// entry points decide whether that is acceptable.
var ErrEmptyDocument = errors.New("document contains no headings")

// NotFoundError is returned by lookup operations when an identifier does
// not resolve to any node. It carries the offending identifier so callers
// can report it without further context.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such node: %q", e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
