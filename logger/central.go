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

package logger

import "io"

// maxCentral is the capacity of the single process-wide logger.
const maxCentral = 512

var central = NewLogger(maxCentral)

// Log adds an entry to the central logger.
func Log(perm Permission, tag string, detail interface{}) {
	central.Log(perm, tag, detail)
}

// Logf adds a formatted entry to the central logger.
func Logf(perm Permission, tag, format string, args ...interface{}) {
	central.Logf(perm, tag, format, args...)
}

// Clear removes every entry from the central logger.
func Clear() {
	central.Clear()
}

// Write writes every entry in the central logger to w.
func Write(w io.Writer) {
	central.Write(w)
}

// Tail writes the last n entries in the central logger to w.
func Tail(w io.Writer, n int) {
	central.Tail(w, n)
}

// SetEcho mirrors every future entry in the central logger to w as it
// is logged, in addition to its usual ring-buffer entry. Passing a nil
// w stops echoing.
func SetEcho(w io.Writer, writeRecent bool) {
	central.SetEcho(w, writeRecent)
}
