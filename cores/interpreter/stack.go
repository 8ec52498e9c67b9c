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

package interpreter

// stackBase is the fixed page the stack pointer indexes into. The 6502
// never banks this out and never corrects for S wrapping across it.
const stackBase = 0x100

// push writes v at 0x100+S, then decrements S, wrapping within the
// stack page with no bounds checking: a full stack simply overwrites its
// own bottom.
func (i *Interpreter) push(v uint8) {
	i.bus.Write(stackBase+uint16(i.state.S), v)
	i.state.S--
}

// pull increments S, then reads 0x100+S.
func (i *Interpreter) pull() uint8 {
	i.state.S++
	v, _ := i.bus.Read(stackBase + uint16(i.state.S))
	return v
}

// push16 pushes a 16-bit value high byte first, so a matching pull16
// reads it back low byte first.
func (i *Interpreter) push16(v uint16) {
	i.push(uint8(v >> 8))
	i.push(uint8(v))
}

// pull16 reads a 16-bit value low byte first, the mirror of push16.
func (i *Interpreter) pull16() uint16 {
	lo := i.pull()
	hi := i.pull()
	return uint16(lo) | uint16(hi)<<8
}
