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

package cartridge

import "github.com/sixfiveoh/sixfiveoh/errors"

// Mapper is the contract every cartridge mapper implements, and the one
// thing memory.Bus ever calls into the cartridge through. Read/Write
// cover the CPU-visible PRG window from memory.CartridgeBase upward;
// ReadCHR/WriteCHR cover the 14-bit pattern/name-table bus the PPU
// walks; Tag fingerprints whatever mutable state (bank selection) could
// change what a cached function at a given address actually is.
type Mapper interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
	Tag() uint64
	NameTableMirroring() Mirroring
}

// New builds the concrete mapper named by rom.MapperID. Mapper 0 is
// NROM (fixed, unbanked); mapper 1 is MMC1 (banked PRG and CHR). Any
// other id fails the load with a user-visible message, per spec's file
// format error handling.
func New(rom *ROM) (Mapper, error) {
	switch rom.MapperID {
	case 0:
		return newNROM(rom), nil
	case 1:
		return newMMC1(rom), nil
	default:
		return nil, errors.New(errors.UnsupportedMapper, rom.MapperID)
	}
}
