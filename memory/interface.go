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

// Package memory implements the CPU-visible address space: 2 KiB of
// internal RAM, the eight-register PPU window, gamepad and OAM DMA I/O,
// and the cartridge mapper beyond 0x4018. The Bus type is the single
// thing a core ever talks to; nothing above it knows how an address
// maps to a concrete memory area.
package memory

// CPUBus is the interface every core executes against: plain 16-bit
// addressed read/write, with no notion of which memory area an address
// falls into.
type CPUBus interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// Data is a CPUBus that can also report a tag: a fingerprint of whatever
// mutable mapper state could change what a given address disassembles
// to. The disassembler and the repository key their cache on this tag
// together with an address.
type Data interface {
	CPUBus
	Tag() uint64
}

// PPUPorts is implemented by the PPU and consumed by Bus for the eight
// CPU-visible registers at [0x2000, 0x2008) (mirrored through 0x3FFF)
// and for OAM DMA, which writes 256 bytes through register 4 (OAMDATA).
type PPUPorts interface {
	ReadRegister(n uint8) uint8
	WriteRegister(n uint8, value uint8)
}

// Gamepad is implemented by a controller and consumed by Bus for the
// serial shift-register protocol at 0x4016/0x4017.
type Gamepad interface {
	Strobe(value uint8)
	Shift() uint8
}

// Mapper is the cartridge side of the bus: CPU-bus access from 0x4018
// upward, and the tag the cacheability rule invalidates against.
type Mapper interface {
	CPUBus
	Tag() uint64
}

// CartridgeBase is the first address owned by the cartridge mapper.
// Everything below it is RAM, PPU registers or I/O — writable by the
// running program, so functions entered there are never cached.
const CartridgeBase = 0x4018

// IsCacheable reports whether a function entered at addr may be cached:
// true only for addresses at or above CartridgeBase.
func IsCacheable(addr uint16) bool {
	return addr >= CartridgeBase
}
