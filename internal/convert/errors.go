// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
)

// ErrSourceRoot is returned when the source root is missing, unreadable or
// not a directory. It is the only condition that aborts a whole run.
var ErrSourceRoot = errors.New("source root not readable")

// ErrorKind classifies per-file failures.
type ErrorKind string

const (
	// KindIO covers read, write and directory failures.
	KindIO ErrorKind = "io"
	// KindEncoding covers input that is not valid UTF-8 text.
	KindEncoding ErrorKind = "encoding"
)

// FileError wraps a per-file failure with the operation, its kind and the
// path relative to the source root.
type FileError struct {
	Op   string
	Kind ErrorKind
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *FileError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is a FileError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}
