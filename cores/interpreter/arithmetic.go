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

import "github.com/sixfiveoh/sixfiveoh/registers"

// setNz updates the Negative and Zero flags from a result byte. Every
// instruction that leaves a value in a register or in memory runs its
// result through this.
func (i *Interpreter) setNz(v uint8) uint8 {
	i.state.P = registers.SetNZ(i.state.P, v)
	return v
}

// setNvzc updates Carry from the 9-bit sum, Overflow from the sign
// behavior of the two operands against the result, and NZ from the
// truncated result. l and r are the pre-truncation operands: ADC/SBC's
// addend and augend.
func (i *Interpreter) setNvzc(l, r uint8, v16 uint16) uint8 {
	i.state.P = registers.SetFlag(i.state.P, registers.FlagCarry, v16 > 0xFF)
	overflow := (^(l ^ r) & (l ^ uint8(v16)) & 0x80) != 0
	i.state.P = registers.SetFlag(i.state.P, registers.FlagOverflow, overflow)
	return i.setNz(uint8(v16))
}

// adc adds rhs and the carry flag into A.
func (i *Interpreter) adc(rhs uint8) {
	carry := uint16(0)
	if registers.Flag(i.state.P, registers.FlagCarry) {
		carry = 1
	}
	sum := uint16(i.state.A) + uint16(rhs) + carry
	i.state.A = i.setNvzc(i.state.A, rhs, sum)
}

// sbc is adc against the ones' complement of rhs.
func (i *Interpreter) sbc(rhs uint8) {
	i.adc(rhs ^ 0xFF)
}

// compare sets Carry when reg >= op and updates NZ from reg - op,
// without writing the subtraction result anywhere.
func (i *Interpreter) compare(reg, op uint8) {
	i.state.P = registers.SetFlag(i.state.P, registers.FlagCarry, reg >= op)
	i.setNz(reg - op)
}
