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

package memory

import "github.com/sixfiveoh/sixfiveoh/errors"

// addresses within [0x4000, 0x4018) that Bus itself handles, rather than
// passing through to the cartridge.
const (
	registerOAMDMA        = 0x4014
	registerGamepadStrobe = 0x4016
	registerGamepadTwo    = 0x4017
)

// Bus is the whole CPU-visible address space: internal RAM mirrored
// through 0x2000, the PPU's eight registers mirrored through 0x4000,
// gamepad and OAM DMA I/O up to 0x4018, and the cartridge mapper beyond
// that. It is the only thing any core ever talks to.
type Bus struct {
	ram      ram
	ppu      PPUPorts
	gamepad1 Gamepad
	gamepad2 Gamepad
	mapper   Mapper
}

// NewBus builds a Bus over the given PPU, cartridge mapper and up to two
// gamepads. Either gamepad may be nil, in which case reads from its
// register return the open-bus value.
func NewBus(ppu PPUPorts, mapper Mapper, gamepad1, gamepad2 Gamepad) *Bus {
	return &Bus{
		ppu:      ppu,
		mapper:   mapper,
		gamepad1: gamepad1,
		gamepad2: gamepad2,
	}
}

// Tag implements Data by delegating to the cartridge mapper: everything
// below CartridgeBase is writable RAM/PPU/IO and is never cached, so
// only the mapper's tag can invalidate a cached function.
func (b *Bus) Tag() uint64 {
	return b.mapper.Tag()
}

// Read implements CPUBus.
func (b *Bus) Read(address uint16) (uint8, error) {
	switch {
	case address < 0x2000:
		return b.ram.read(address), nil
	case address < 0x4000:
		return b.ppu.ReadRegister(uint8(address & 0x0007)), nil
	case address == registerGamepadStrobe:
		return b.readGamepad(b.gamepad1), nil
	case address == registerGamepadTwo:
		return b.readGamepad(b.gamepad2), nil
	case address < 0x4018:
		return 0, nil
	default:
		return b.mapper.Read(address)
	}
}

// Write implements CPUBus. A write to 0x4014 triggers OAM DMA: the byte
// written selects the high byte of a 256-byte page, which is copied into
// the PPU's OAM through 256 writes to PPU register 4 (OAMDATA).
func (b *Bus) Write(address uint16, data uint8) error {
	switch {
	case address < 0x2000:
		b.ram.write(address, data)
		return nil
	case address < 0x4000:
		b.ppu.WriteRegister(uint8(address&0x0007), data)
		return nil
	case address == registerOAMDMA:
		b.runOAMDMA(data)
		return nil
	case address == registerGamepadStrobe:
		if b.gamepad1 != nil {
			b.gamepad1.Strobe(data)
		}
		if b.gamepad2 != nil {
			b.gamepad2.Strobe(data)
		}
		return nil
	case address == registerGamepadTwo:
		return nil
	case address < 0x4018:
		return nil
	default:
		return b.mapper.Write(address, data)
	}
}

func (b *Bus) readGamepad(g Gamepad) uint8 {
	if g == nil {
		return 0x40
	}
	return g.Shift()
}

func (b *Bus) runOAMDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		value, _ := b.Read(base + uint16(i))
		b.ppu.WriteRegister(4, value)
	}
}

// RAMBytes exposes the bus's internal RAM as a flat slice, mirrored
// region included. It exists for the dynarec core's memory translator,
// which needs a stable pointer it can bake straight into generated
// machine code rather than going through Read/Write per access; nothing
// else should call it.
func (b *Bus) RAMBytes() []byte {
	return b.ram.data[:]
}

// MustMapper returns b's cartridge mapper, failing with an errors.CoreError
// if none has been attached. Cores call this during reset to seed the
// program counter from the mapper's reset vector.
func (b *Bus) MustMapper() (Mapper, error) {
	if b.mapper == nil {
		return nil, errors.New(errors.CartridgeMissing)
	}
	return b.mapper, nil
}
