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

// Bit positions of the P register. The unused bit is always read back as
// set; nothing in this package or above it ever clears it.
const (
	FlagCarry            uint8 = 0x01
	FlagZero             uint8 = 0x02
	FlagInterruptDisable uint8 = 0x04
	FlagDecimal          uint8 = 0x08
	FlagBreak            uint8 = 0x10
	FlagUnused           uint8 = 0x20
	FlagOverflow         uint8 = 0x40
	FlagSign             uint8 = 0x80
)

// Flag reports whether every bit in mask is set in p.
func Flag(p, mask uint8) bool {
	return p&mask == mask
}

// SetFlag returns p with the bits in mask set to v.
func SetFlag(p, mask uint8, v bool) uint8 {
	if v {
		return p | mask
	}
	return p &^ mask
}

// SetNZ returns p with Sign and Zero updated to reflect the value of v,
// as every load, transfer and most ALU instructions do.
func SetNZ(p, v uint8) uint8 {
	p = SetFlag(p, FlagZero, v == 0)
	p = SetFlag(p, FlagSign, v&0x80 == 0x80)
	return p
}
