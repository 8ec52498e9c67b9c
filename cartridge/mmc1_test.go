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

package cartridge_test

import (
	"testing"

	"github.com/sixfiveoh/sixfiveoh/cartridge"
)

func writeSerial(t *testing.T, m cartridge.Mapper, address uint16, value uint8) {
	t.Helper()
	for i := 0; i < 5; i++ {
		bit := (value >> i) & 0x01
		if err := m.Write(address, bit); err != nil {
			t.Fatal(err)
		}
	}
}

func newBankedROM(banks int) *cartridge.ROM {
	prg := make([]uint8, banks*16384)
	for b := 0; b < banks; b++ {
		prg[b*16384] = uint8(b)
	}
	return &cartridge.ROM{MapperID: 1, PRG: prg}
}

func TestMMC1TagChangesOnBankSelect(t *testing.T) {
	rom := newBankedROM(4)
	m, err := cartridge.New(rom)
	if err != nil {
		t.Fatal(err)
	}

	before := m.Tag()
	writeSerial(t, m, 0xE000, 0x01) // select PRG bank 1
	if m.Tag() == before {
		t.Error("expected Tag() to change after a bank-select write")
	}
}

func TestMMC1SwitchesFirstBankFixesLast(t *testing.T) {
	rom := newBankedROM(4)
	m, err := cartridge.New(rom)
	if err != nil {
		t.Fatal(err)
	}

	// reset default (control bits 2-3 = 3): last bank fixed at 0xC000,
	// switchable bank at 0x8000.
	last, err := m.Read(0xC000)
	if err != nil {
		t.Fatal(err)
	}
	if last != 3 {
		t.Errorf("expected last bank (3) fixed at 0xC000, got %d", last)
	}

	writeSerial(t, m, 0xE000, 0x02) // select PRG bank 2
	selected, err := m.Read(0x8000)
	if err != nil {
		t.Fatal(err)
	}
	if selected != 2 {
		t.Errorf("expected bank 2 switched in at 0x8000, got %d", selected)
	}

	stillLast, err := m.Read(0xC000)
	if err != nil {
		t.Fatal(err)
	}
	if stillLast != 3 {
		t.Errorf("expected last bank to remain fixed at 0xC000, got %d", stillLast)
	}
}

func TestMMC1ResetClearsShiftRegister(t *testing.T) {
	rom := newBankedROM(4)
	m, err := cartridge.New(rom)
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Write(0x8000, 0x01); err != nil {
		t.Fatal(err)
	}
	if err := m.Write(0x8000, 0x80); err != nil { // reset bit
		t.Fatal(err)
	}
	before := m.Tag()
	// partial writes after a reset must not latch until a full five bits
	// have been shifted in again.
	if err := m.Write(0x8000, 0x01); err != nil {
		t.Fatal(err)
	}
	if m.Tag() != before {
		t.Error("a lone bit after reset must not latch a register")
	}
}
