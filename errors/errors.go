// This file is part of sixfiveoh.
//
// sixfiveoh is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// sixfiveoh is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with sixfiveoh.  If not, see <https://www.gnu.org/licenses/>.

package errors

import (
	stderrors "errors"
	"fmt"
)

// Errno identifies a specific error condition raised by the core.
type Errno int

// Values carries the arguments substituted into a Errno's message format.
type Values []interface{}

// CoreError is the error type returned by every package in this module.
type CoreError struct {
	Errno  Errno
	Values Values
}

// New creates a CoreError for the given Errno and formatting arguments.
func New(errno Errno, values ...interface{}) CoreError {
	return CoreError{Errno: errno, Values: values}
}

func (e CoreError) Error() string {
	msg, ok := messages[e.Errno]
	if !ok {
		return fmt.Sprintf("unknown error (%d)", e.Errno)
	}
	return fmt.Sprintf(msg, e.Values...)
}

// Is reports whether err (or any error it wraps via errors.As) is a
// CoreError with the given Errno.
func Is(err error, errno Errno) bool {
	var ce CoreError
	return stderrors.As(err, &ce) && ce.Errno == errno
}
