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

// Package ppu implements the eight CPU-visible picture-processing-unit
// registers: the shared SCROLL/ADDR address latch, the VBlank flag read
// in STATUS, OAM access for sprite DMA, and the one-byte-delayed DATA
// read below palette range. It has no teacher analogue — the machine
// this module's teacher emulated has no PPU — so its register
// semantics are written directly from the external-interface contract
// rather than adapted from an existing file.
package ppu

import "github.com/sixfiveoh/sixfiveoh/cartridge"

// Register offsets into the eight CPU-visible ports at [0x2000, 0x2008).
const (
	Ctrl = iota
	Mask
	Status
	OAMAddr
	OAMData
	Scroll
	Addr
	Data
)

const (
	statusVBlank = 0x80

	ctrlVRAMIncrement = 0x04
	ctrlNameTableMask  = 0x03

	paletteBase = 0x3F00
	vramSize    = 0x0800
	oamSize     = 256
	paletteSize = 32
)

// Mapper is the cartridge-side surface the PPU needs: pattern-table
// access and the mirroring mode the cartridge's wiring selects.
type Mapper interface {
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
	NameTableMirroring() cartridge.Mirroring
}

// PPU holds the register file and the VRAM/OAM/palette backing it.
// NMI, rendering and scan-line timing live in the runner, which raises
// and lowers VBlank through SetVBlank and asks NMIEnabled whether to
// deliver an NMI; PPU itself never advances time.
type PPU struct {
	mapper Mapper

	ctrl   uint8
	mask   uint8
	status uint8

	oamAddr uint8
	oam     [oamSize]uint8

	vram    [vramSize]uint8
	palette [paletteSize]uint8

	latch       bool   // shared between SCROLL and ADDR writes
	scrollX     uint8
	scrollY     uint8
	addr        uint16
	readBuffer  uint8 // one-byte delay on DATA reads below palette range
}

// New returns a PPU with its registers at power-on defaults, reading
// pattern tables through mapper.
func New(mapper Mapper) *PPU {
	return &PPU{mapper: mapper}
}

// ReadRegister reads CPU-visible register n (already reduced mod 8 by
// the bus's mirroring). Reading Status clears VBlank and the shared
// latch; reading Data returns the buffered byte from the previous read
// and primes the buffer with the new one, except at or above palette
// range, which reads through immediately.
func (p *PPU) ReadRegister(n uint8) uint8 {
	switch n {
	case Status:
		v := p.status
		p.status &^= statusVBlank
		p.latch = false
		return v
	case OAMData:
		return p.oam[p.oamAddr]
	case Data:
		return p.readData()
	}
	return 0
}

func (p *PPU) readData() uint8 {
	addr := p.addr
	p.advanceAddr()

	if addr >= paletteBase {
		return p.readVRAM(addr)
	}

	v := p.readBuffer
	p.readBuffer = p.readVRAM(addr)
	return v
}

// WriteRegister writes CPU-visible register n. Scroll and Addr share
// one latch: the first write after a Status read (or after the latch
// was last consumed) sets the high part, the second the low part.
func (p *PPU) WriteRegister(n uint8, value uint8) {
	switch n {
	case Ctrl:
		p.ctrl = value
	case Mask:
		p.mask = value
	case OAMAddr:
		p.oamAddr = value
	case OAMData:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case Scroll:
		if !p.latch {
			p.scrollX = value
		} else {
			p.scrollY = value
		}
		p.latch = !p.latch
	case Addr:
		if !p.latch {
			p.addr = uint16(value)<<8 | p.addr&0x00FF
		} else {
			p.addr = p.addr&0xFF00 | uint16(value)
		}
		p.latch = !p.latch
	case Data:
		p.writeVRAM(p.addr, value)
		p.advanceAddr()
	}
}

// advanceAddr steps the VRAM address pointer by 1 or 32 depending on
// Ctrl bit 2, as every DATA access does regardless of direction.
func (p *PPU) advanceAddr() {
	if p.ctrl&ctrlVRAMIncrement != 0 {
		p.addr += 32
	} else {
		p.addr++
	}
}

// SetVBlank sets or clears the VBlank status bit. The runner calls this
// at the start and end of the vertical blanking interval; NMI
// generation (Ctrl bit 7) is the runner's concern, not the register
// file's.
func (p *PPU) SetVBlank(v bool) {
	if v {
		p.status |= statusVBlank
	} else {
		p.status &^= statusVBlank
	}
}

// NMIEnabled reports whether Ctrl bit 7 requests an NMI at the start of
// VBlank.
func (p *PPU) NMIEnabled() bool {
	return p.ctrl&0x80 != 0
}

// TriggerDMA writes v into OAM at the current OAM address and advances
// it, the effect of each of the 256 CPU-bus writes memory.Bus's OAM DMA
// makes through register 4.
func (p *PPU) TriggerDMA(v uint8) {
	p.WriteRegister(OAMData, v)
}

// readVRAM dispatches a 14-bit PPU-bus address to pattern table,
// mirrored name table, or palette RAM.
func (p *PPU) readVRAM(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.mapper.ReadCHR(addr)
	case addr < 0x3F00:
		return p.vram[p.mirrorNameTable(addr)]
	default:
		return p.palette[p.mirrorPalette(addr)]
	}
}

func (p *PPU) writeVRAM(addr uint16, v uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.mapper.WriteCHR(addr, v)
	case addr < 0x3F00:
		p.vram[p.mirrorNameTable(addr)] = v
	default:
		p.palette[p.mirrorPalette(addr)] = v
	}
}

// mirrorNameTable folds a name-table address into the PPU's 2 KiB of
// physical VRAM according to the cartridge's wiring.
func (p *PPU) mirrorNameTable(addr uint16) uint16 {
	offset := (addr - 0x2000) % 0x1000
	table := offset / 0x0400
	inTable := offset % 0x0400

	switch p.mapper.NameTableMirroring() {
	case cartridge.Horizontal:
		table /= 2
	case cartridge.Vertical:
		table %= 2
	case cartridge.Single:
		table = 0
	case cartridge.Four:
		// all four tables distinct; nothing to fold, but there are
		// only two physical KiB here, so wrap into them anyway.
		table %= 2
	}
	return table*0x0400 + inTable
}

func (p *PPU) mirrorPalette(addr uint16) uint16 {
	i := (addr - paletteBase) % paletteSize
	// $3F10/$3F14/$3F18/$3F1C mirror their background-color counterparts.
	if i >= 16 && i%4 == 0 {
		i -= 16
	}
	return i
}
