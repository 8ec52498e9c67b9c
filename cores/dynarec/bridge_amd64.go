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

import "unsafe"

// hostMemRead and hostMemWrite are the Go-side halves of the memory
// translator's slow path: translate/body.go's resolveAddress and
// readMemory/writeMemory emit a call into memReadTrampoline or
// memWriteTrampoline for any effective address eligible couldn't
// prove RAM-resident, passing the owning Core back as handle the same
// way translate.Translator baked it in at TranslateFunction time.
//
// These run on an ordinary Go stack with a live g, same as any other
// method on Core; the register gymnastics needed to get here safely
// from a compiled function live entirely in bridge_amd64.s.
func hostMemRead(handle uintptr, addr uintptr) uintptr {
	c := (*Core)(unsafe.Pointer(handle))
	v, _ := c.bus.Read(uint16(addr))
	return uintptr(v)
}

func hostMemWrite(handle uintptr, addr uintptr, value uintptr) {
	c := (*Core)(unsafe.Pointer(handle))
	_ = c.bus.Write(uint16(addr), uint8(value))
}

// memReadTrampoline and memWriteTrampoline are the symbols
// translate.Translator's emitHostCall links compiled code against
// (as "memRead" and "memWrite"); see bridge_amd64.s. Neither has a Go
// body: CALL reaches them directly from generated machine code, not
// through a Go call expression, so there is nothing for the compiler
// to inline or elide.
func memReadTrampoline()
func memWriteTrampoline()
