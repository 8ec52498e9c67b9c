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

package dynarec

import "github.com/sixfiveoh/sixfiveoh/registers"

// invoke is the one hand-written boundary between Go and a compiled
// function: it loads state's registers into the fixed assignment
// translate.go emits against, calls entry, and writes the result back
// into state. Nothing outside this package ever calls into generated
// code any other way.
//
// Generated code does call back into Go, through the memRead/memWrite
// trampolines in bridge_amd64.s, for any access translate/body.go
// couldn't prove RAM-resident. Go's ABIInternal reserves R14 as the
// current goroutine pointer g, which collides with RegS (the 6502
// stack pointer's fixed register); invoke stashes the real g here
// before loading RegS over it, and the trampolines load it back into
// R14 for the duration of their call into Go so the runtime sees a
// valid g, restoring RegS's value once the call returns.
var savedG uintptr

//go:noescape
func invoke(entry uintptr, state *registers.State)
