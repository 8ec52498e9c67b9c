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

// Package assert holds small invariant checks used by the dynarec and
// repository packages to catch programmer errors early rather than let
// them corrupt executable memory or the cache silently.
package assert

import (
	"bytes"
	"runtime"
	"strconv"
)

// GoroutineID returns an identifier that is different between goroutines
// and consistent for a given goroutine. The emulation core is specified as
// single-threaded cooperative (no guest-observable concurrency); this is
// used by Confined to catch a core or the Repository being driven from more
// than one goroutine.
func GoroutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Confinement records the goroutine an object was created on so that later
// calls can assert they are still on that goroutine.
type Confinement struct {
	id uint64
}

// NewConfinement captures the calling goroutine.
func NewConfinement() Confinement {
	return Confinement{id: GoroutineID()}
}

// Check panics if the calling goroutine differs from the one that created
// c. Intended for objects (the Repository, an ExecutableMemory block) whose
// contract assumes single-threaded cooperative use.
func (c Confinement) Check() {
	if id := GoroutineID(); id != c.id {
		panic("object accessed from a different goroutine than it was created on")
	}
}
