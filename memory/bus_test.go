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

package memory_test

import (
	"testing"

	"github.com/sixfiveoh/sixfiveoh/memory"
)

type stubPPU struct {
	registers [8]uint8
	written   []uint8
}

func (p *stubPPU) ReadRegister(n uint8) uint8 { return p.registers[n&0x07] }
func (p *stubPPU) WriteRegister(n uint8, value uint8) {
	p.registers[n&0x07] = value
	if n&0x07 == 4 {
		p.written = append(p.written, value)
	}
}

type stubMapper struct {
	tag  uint64
	data map[uint16]uint8
}

func (m *stubMapper) Tag() uint64 { return m.tag }
func (m *stubMapper) Read(address uint16) (uint8, error) {
	return m.data[address], nil
}
func (m *stubMapper) Write(address uint16, data uint8) error {
	m.data[address] = data
	return nil
}

func TestRAMMirroring(t *testing.T) {
	bus := memory.NewBus(&stubPPU{}, &stubMapper{data: map[uint16]uint8{}}, nil, nil)

	if err := bus.Write(0x0001, 0x42); err != nil {
		t.Fatal(err)
	}
	for _, mirror := range []uint16{0x0001, 0x0801, 0x1001, 0x1801} {
		got, err := bus.Read(mirror)
		if err != nil {
			t.Fatal(err)
		}
		if got != 0x42 {
			t.Errorf("mirror %#04x = %#02x, want 0x42", mirror, got)
		}
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	ppu := &stubPPU{}
	bus := memory.NewBus(ppu, &stubMapper{data: map[uint16]uint8{}}, nil, nil)

	if err := bus.Write(0x2000, 0x80); err != nil {
		t.Fatal(err)
	}
	got, err := bus.Read(0x2008)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x80 {
		t.Errorf("mirrored PPU register read = %#02x, want 0x80", got)
	}
}

func TestCartridgeDelegation(t *testing.T) {
	mapper := &stubMapper{tag: 7, data: map[uint16]uint8{0x8000: 0x99}}
	bus := memory.NewBus(&stubPPU{}, mapper, nil, nil)

	got, err := bus.Read(0x8000)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x99 {
		t.Errorf("cartridge read = %#02x, want 0x99", got)
	}
	if bus.Tag() != 7 {
		t.Errorf("Tag() = %d, want 7", bus.Tag())
	}
}

func TestOAMDMACopiesFullPage(t *testing.T) {
	ppu := &stubPPU{}
	bus := memory.NewBus(ppu, &stubMapper{data: map[uint16]uint8{}}, nil, nil)

	for i := uint16(0); i < 256; i++ {
		if err := bus.Write(0x0300+i, uint8(i)); err != nil {
			t.Fatal(err)
		}
	}
	if err := bus.Write(0x4014, 0x03); err != nil {
		t.Fatal(err)
	}

	if len(ppu.written) != 256 {
		t.Fatalf("OAM DMA wrote %d bytes, want 256", len(ppu.written))
	}
	for i, v := range ppu.written {
		if v != uint8(i) {
			t.Fatalf("OAM byte %d = %#02x, want %#02x", i, v, uint8(i))
		}
	}
}

func TestGamepadShiftOrder(t *testing.T) {
	pad := &memory.Controller{}
	pad.SetButton(0, true)  // A
	pad.SetButton(3, true)  // Start
	pad.SetButton(7, true)  // Right

	bus := memory.NewBus(&stubPPU{}, &stubMapper{data: map[uint16]uint8{}}, pad, nil)

	if err := bus.Write(0x4016, 0x01); err != nil {
		t.Fatal(err)
	}
	if err := bus.Write(0x4016, 0x00); err != nil {
		t.Fatal(err)
	}

	want := []uint8{0x41, 0x40, 0x40, 0x41, 0x40, 0x40, 0x40, 0x41}
	for i, w := range want {
		got, err := bus.Read(0x4016)
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Errorf("shift %d = %#02x, want %#02x", i, got, w)
		}
	}

	got, err := bus.Read(0x4016)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0xFF {
		t.Errorf("read past exhaustion = %#02x, want 0xff", got)
	}
}

func TestMissingMapperIsReported(t *testing.T) {
	bus := memory.NewBus(&stubPPU{}, nil, nil, nil)
	if _, err := bus.MustMapper(); err == nil {
		t.Fatal("expected an error with no mapper attached")
	}
}

func TestCacheabilityBoundary(t *testing.T) {
	if memory.IsCacheable(memory.CartridgeBase - 1) {
		t.Error("address just below CartridgeBase must not be cacheable")
	}
	if !memory.IsCacheable(memory.CartridgeBase) {
		t.Error("CartridgeBase itself must be cacheable")
	}
}
