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

import "github.com/sixfiveoh/sixfiveoh/instructions"

// read16 reads a little-endian word with no wrap-around correction: the
// low byte from addr, the high byte from addr+1.
func (i *Interpreter) read16(addr uint16) uint16 {
	lo, _ := i.bus.Read(addr)
	hi, _ := i.bus.Read(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// read16ZpWrap reads a little-endian word from the zero page, wrapping
// the high byte's address back to 0x00 rather than crossing into page
// one: the indexed-indirect and indirect-indexed addressing rule.
func (i *Interpreter) read16ZpWrap(zp uint8) uint16 {
	lo, _ := i.bus.Read(uint16(zp))
	hi, _ := i.bus.Read(uint16(zp + 1))
	return uint16(lo) | uint16(hi)<<8
}

// read16IndBug reads a little-endian word the way the indirect JMP
// does, including its page-crossing bug: the high byte is read from
// (addr & 0xFF00) | ((addr+1) & 0x00FF), never from the next page, so a
// pointer stored at the last byte of a page wraps to the start of the
// same page instead of spilling into the next one.
func (i *Interpreter) read16IndBug(addr uint16) uint16 {
	lo, _ := i.bus.Read(addr)
	hiAddr := (addr & 0xFF00) | ((addr + 1) & 0x00FF)
	hi, _ := i.bus.Read(hiAddr)
	return uint16(lo) | uint16(hi)<<8
}

// resolve computes the effective address an instruction's operand
// refers to, for every addressing mode that names a memory location.
// Imm and Rel are handled by their callers directly: Imm's "address" is
// the operand byte itself, and Rel's target depends on the instruction's
// own NextAddress, which resolve has no way to know.
func (i *Interpreter) resolve(mode instructions.AddressingMode, operand uint16) uint16 {
	switch mode {
	case instructions.Zp:
		return operand & 0xFF
	case instructions.ZpX:
		return (operand + uint16(i.state.X)) & 0xFF
	case instructions.ZpY:
		return (operand + uint16(i.state.Y)) & 0xFF
	case instructions.Abs:
		return operand
	case instructions.AbsX:
		return operand + uint16(i.state.X)
	case instructions.AbsY:
		return operand + uint16(i.state.Y)
	case instructions.Ind:
		return i.read16IndBug(operand)
	case instructions.IndX:
		return i.read16ZpWrap(uint8(operand) + i.state.X)
	case instructions.IndY:
		return i.read16ZpWrap(uint8(operand)) + uint16(i.state.Y)
	}
	return operand
}

// loadOperand returns the byte an instruction's operand denotes: the
// operand itself for Imm, or the byte at the resolved address for every
// other memory-referencing mode.
func (i *Interpreter) loadOperand(mode instructions.AddressingMode, operand uint16) uint8 {
	if mode == instructions.Imm {
		return uint8(operand)
	}
	v, _ := i.bus.Read(i.resolve(mode, operand))
	return v
}
