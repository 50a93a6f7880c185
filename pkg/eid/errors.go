package eid

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvalidUsage reports a programmer error: malformed Pattern construction,
// a non-monotonic Cursor probe, or a Pattern/table length mismatch. It is
// never expected to occur against a well-formed caller and must not be
// swallowed (spec: propagation policy).
type InvalidUsage struct {
	msg string
}

func (e *InvalidUsage) Error() string { return e.msg }

func invalidUsage(format string, args ...interface{}) error {
	return &InvalidUsage{msg: fmt.Sprintf(format, args...)}
}

// ReadError wraps an I/O failure encountered while opening a file,
// refilling the Cursor's buffer, or closing the file. The original cause is
// preserved so callers can still unwrap with errors.Is/As.
type ReadError struct {
	Path string
	Op   string
	err  error
}

func (e *ReadError) Error() string {
	return errors.Wrapf(e.err, "eid: %s %s", e.Op, e.Path).Error()
}

func (e *ReadError) Unwrap() error { return e.err }

func readError(path, op string, cause error) error {
	return &ReadError{Path: path, Op: op, err: cause}
}
