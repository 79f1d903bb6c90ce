package archive

import (
	"errors"
	"fmt"
)

var (
	ErrWorldNotFound    = errors.New("world not found")
	ErrInvalidWorldName = errors.New("invalid world name")
)

// Op names the step of a transfer that failed.
type Op string

const (
	OpCreate   Op = "create archive"
	OpWalk     Op = "read world files"
	OpRead     Op = "read file"
	OpAdd      Op = "add entry"
	OpWrite    Op = "write archive"
	OpFinalize Op = "finalize archive"
	OpOpen     Op = "open archive"
	OpExtract  Op = "read archive entry"
	OpMkdir    Op = "create directory"
	OpDelete   Op = "delete existing world"
	OpOutput   Op = "write file"
)

// Error wraps the underlying OS or archive error with the failing step.
type Error struct {
	Op   Op
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(op Op, path string, err error) error {
	return &Error{Op: op, Path: path, Err: err}
}
