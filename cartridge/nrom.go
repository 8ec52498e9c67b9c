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

// nrom is the simplest mapper: up to 32 KiB of fixed PRG (16 KiB images
// are mirrored into both halves of the CPU window) and up to 8 KiB of
// fixed CHR. Nothing about it is writable, so its tag never changes.
type nrom struct {
	prg       []uint8
	chr       []uint8
	mirroring Mirroring
}

func newNROM(rom *ROM) *nrom {
	return &nrom{prg: rom.PRG, chr: rom.CHR, mirroring: rom.Mirroring}
}

func (m *nrom) Read(address uint16) (uint8, error) {
	offset := int(address-0x8000) % len(m.prg)
	return m.prg[offset], nil
}

// Write is a no-op: NROM has no PRG RAM and no bank-select registers.
func (m *nrom) Write(address uint16, data uint8) error {
	return nil
}

func (m *nrom) ReadCHR(address uint16) uint8 {
	if len(m.chr) == 0 {
		return 0
	}
	return m.chr[int(address)%len(m.chr)]
}

// WriteCHR is a no-op: NROM's CHR is ROM, not RAM.
func (m *nrom) WriteCHR(address uint16, value uint8) {}

// Tag is a constant zero: NROM has no writable PRG, so a function
// compiled against it can never be invalidated by mapper state. This is
// correct for NROM specifically and would be unsafe for any mapper with
// writable PRG.
func (m *nrom) Tag() uint64 {
	return 0
}

func (m *nrom) NameTableMirroring() Mirroring {
	return m.mirroring
}
