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

package ppu_test

import (
	"testing"

	"github.com/sixfiveoh/sixfiveoh/cartridge"
	"github.com/sixfiveoh/sixfiveoh/ppu"
)

type stubMapper struct {
	chr       [0x2000]uint8
	mirroring cartridge.Mirroring
}

func (m *stubMapper) ReadCHR(addr uint16) uint8         { return m.chr[addr] }
func (m *stubMapper) WriteCHR(addr uint16, v uint8)     { m.chr[addr] = v }
func (m *stubMapper) NameTableMirroring() cartridge.Mirroring { return m.mirroring }

func TestStatusReadClearsVBlankAndLatch(t *testing.T) {
	p := ppu.New(&stubMapper{})
	p.SetVBlank(true)

	p.WriteRegister(ppu.Addr, 0x20) // first half of the latch

	v := p.ReadRegister(ppu.Status)
	if v&0x80 == 0 {
		t.Fatal("expected VBlank bit set before the read cleared it")
	}

	if v2 := p.ReadRegister(ppu.Status); v2&0x80 != 0 {
		t.Error("expected VBlank cleared after the read")
	}

	// the latch reset by the Status read means this Addr write lands in
	// the high byte again, and the second completes a fresh pair rather
	// than being read as the stray low byte of the first.
	p.WriteRegister(ppu.Addr, 0x30)
	p.WriteRegister(ppu.Addr, 0x00)
	p.WriteRegister(ppu.Data, 0x42)
	if got := p.ReadRegister(ppu.Status); got&0x80 != 0 {
		t.Error("VBlank should stay clear; writing Addr/Data must not resurrect it")
	}
}

func TestDataReadBelowPaletteIsBufferedOneByteLate(t *testing.T) {
	mapper := &stubMapper{}
	mapper.chr[0x0010] = 0xAA
	mapper.chr[0x0011] = 0xBB
	p := ppu.New(mapper)

	p.WriteRegister(ppu.Addr, 0x00)
	p.WriteRegister(ppu.Addr, 0x10)

	first := p.ReadRegister(ppu.Data)
	second := p.ReadRegister(ppu.Data)

	if first != 0 {
		t.Errorf("first buffered read = %#02x, want 0 (buffer primed, not yet filled)", first)
	}
	if second != 0xAA {
		t.Errorf("second read = %#02x, want 0xAA (the byte primed by the first read)", second)
	}
}

func TestDataReadAtOrAbovePaletteIsImmediate(t *testing.T) {
	p := ppu.New(&stubMapper{})
	p.WriteRegister(ppu.Addr, 0x3F)
	p.WriteRegister(ppu.Addr, 0x00)
	p.WriteRegister(ppu.Data, 0x16)

	p.WriteRegister(ppu.Addr, 0x3F)
	p.WriteRegister(ppu.Addr, 0x00)
	if v := p.ReadRegister(ppu.Data); v != 0x16 {
		t.Errorf("palette read = %#02x, want 0x16 (no buffering above palette base)", v)
	}
}

func TestOAMDataWriteAdvancesAddress(t *testing.T) {
	p := ppu.New(&stubMapper{})
	p.WriteRegister(ppu.OAMAddr, 0x10)
	p.WriteRegister(ppu.OAMData, 0x77)
	p.WriteRegister(ppu.OAMData, 0x88)

	p.WriteRegister(ppu.OAMAddr, 0x10)
	if v := p.ReadRegister(ppu.OAMData); v != 0x77 {
		t.Errorf("oam[0x10] = %#02x, want 0x77", v)
	}
	p.WriteRegister(ppu.OAMAddr, 0x11)
	if v := p.ReadRegister(ppu.OAMData); v != 0x88 {
		t.Errorf("oam[0x11] = %#02x, want 0x88", v)
	}
}

func TestHorizontalMirroringFoldsTopAndBottomNameTables(t *testing.T) {
	p := ppu.New(&stubMapper{mirroring: cartridge.Horizontal})

	p.WriteRegister(ppu.Addr, 0x20)
	p.WriteRegister(ppu.Addr, 0x00)
	p.WriteRegister(ppu.Data, 0x01)

	// table 1 (0x2400) mirrors table 0 under horizontal mirroring.
	p.WriteRegister(ppu.Addr, 0x24)
	p.WriteRegister(ppu.Addr, 0x00)
	p.ReadRegister(ppu.Data) // prime the buffer past the write
	if v := p.ReadRegister(ppu.Data); v != 0x01 {
		t.Errorf("mirrored name table read = %#02x, want 0x01", v)
	}
}

func TestTriggerDMAWritesSuccessiveOAMBytes(t *testing.T) {
	p := ppu.New(&stubMapper{})
	for i := 0; i < 4; i++ {
		p.TriggerDMA(uint8(i + 1))
	}
	p.WriteRegister(ppu.OAMAddr, 0)
	for i := 0; i < 4; i++ {
		if v := p.ReadRegister(ppu.OAMData); v != uint8(i+1) {
			t.Errorf("oam[%d] = %d, want %d", i, v, i+1)
		}
		p.WriteRegister(ppu.OAMAddr, uint8(i+1))
	}
}
