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

package registers

// AddCarryOverflow performs an 8 bit binary addition of a and val, with an
// incoming carry, and reports the resulting carry and overflow flags
// alongside the sum. Decimal mode is out of scope: the target hardware
// runs with the decimal flag permanently disabled.
//
// Overflow detection follows Ken Shirriff's derivation of the 6502
// overflow flag: the two operands agree in sign, and the result disagrees
// with both.
func AddCarryOverflow(a, val uint8, carryIn bool) (result uint8, carryOut, overflowOut bool) {
	result = a + val
	if carryIn {
		result++
	}

	overflowOut = ((a ^ result) & (val ^ result) & 0x80) != 0

	if result == a {
		carryOut = carryIn
	} else {
		carryOut = result < a
	}

	return result, carryOut, overflowOut
}

// SubtractCarryOverflow performs an 8 bit binary subtraction of val from a,
// expressed as addition of val's ones' complement, which is how the 6502's
// ALU actually implements SBC.
func SubtractCarryOverflow(a, val uint8, carryIn bool) (result uint8, carryOut, overflowOut bool) {
	return AddCarryOverflow(a, ^val, carryIn)
}

// ShiftLeft performs the ASL operation: shift v one bit left, returning
// the bit shifted out as the new carry.
func ShiftLeft(v uint8) (result uint8, carryOut bool) {
	carryOut = v&0x80 == 0x80
	return v << 1, carryOut
}

// ShiftRight performs the LSR operation: shift v one bit right, returning
// the bit shifted out as the new carry.
func ShiftRight(v uint8) (result uint8, carryOut bool) {
	carryOut = v&0x01 == 0x01
	return v >> 1, carryOut
}

// RotateLeft performs the ROL operation: shift v one bit left, feeding
// carryIn into the vacated low bit, and returning the bit shifted out as
// the new carry.
func RotateLeft(v uint8, carryIn bool) (result uint8, carryOut bool) {
	carryOut = v&0x80 == 0x80
	result = v << 1
	if carryIn {
		result |= 0x01
	}
	return result, carryOut
}

// RotateRight performs the ROR operation: shift v one bit right, feeding
// carryIn into the vacated high bit, and returning the bit shifted out as
// the new carry.
func RotateRight(v uint8, carryIn bool) (result uint8, carryOut bool) {
	carryOut = v&0x01 == 0x01
	result = v >> 1
	if carryIn {
		result |= 0x80
	}
	return result, carryOut
}
