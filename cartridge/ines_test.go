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
	"github.com/sixfiveoh/sixfiveoh/errors"
)

func buildImage(prgBanks, chrBanks int, flags1, flags2 uint8, trainer bool) []byte {
	data := []byte{'N', 'E', 'S', 0x1A, byte(prgBanks), byte(chrBanks), flags1, flags2, 0, 0, 0, 0, 0, 0, 0, 0}
	if trainer {
		data = append(data, make([]byte, 512)...)
	}
	data = append(data, make([]byte, prgBanks*16384)...)
	data = append(data, make([]byte, chrBanks*8192)...)
	return data
}

func TestLoadRejectsBadMagic(t *testing.T) {
	data := buildImage(1, 1, 0, 0, false)
	data[0] = 'X'

	_, err := cartridge.Load(data)
	if !errors.Is(err, errors.InvalidROMMagic) {
		t.Fatalf("expected InvalidROMMagic, got %v", err)
	}
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	data := buildImage(2, 1, 0, 0, false)
	data = data[:len(data)-100]

	_, err := cartridge.Load(data)
	if !errors.Is(err, errors.ROMTruncated) {
		t.Fatalf("expected ROMTruncated, got %v", err)
	}
}

func TestLoadRejectsMissingHeader(t *testing.T) {
	_, err := cartridge.Load([]byte{'N', 'E'})
	if !errors.Is(err, errors.ROMTruncated) {
		t.Fatalf("expected ROMTruncated, got %v", err)
	}
}

func TestMapperIDFromFlags(t *testing.T) {
	// mapper 0x13: low nibble 3 from flags1 bits4-7, high nibble 1 from flags2 bits4-7
	data := buildImage(1, 1, 0x30, 0x10, false)

	rom, err := cartridge.Load(data)
	if err != nil {
		t.Fatal(err)
	}
	if rom.MapperID != 0x13 {
		t.Errorf("MapperID = %#02x, want 0x13", rom.MapperID)
	}
}

func TestTrainerIsSkipped(t *testing.T) {
	data := buildImage(1, 1, 0x04, 0, true)
	for i := range data[16:528] {
		data[16+i] = 0xAA
	}
	for i := range data[528:] {
		data[528+i] = byte(i)
	}

	rom, err := cartridge.Load(data)
	if err != nil {
		t.Fatal(err)
	}
	if rom.PRG[0] != 0 || rom.PRG[1] != 1 {
		t.Errorf("expected PRG to start after the trainer, got %#02x %#02x", rom.PRG[0], rom.PRG[1])
	}
}

func TestMirroringFromFlags(t *testing.T) {
	vertical, err := cartridge.Load(buildImage(1, 1, 0x01, 0, false))
	if err != nil {
		t.Fatal(err)
	}
	if vertical.Mirroring != cartridge.Vertical {
		t.Errorf("expected vertical mirroring, got %s", vertical.Mirroring)
	}

	four, err := cartridge.Load(buildImage(1, 1, 0x08, 0, false))
	if err != nil {
		t.Fatal(err)
	}
	if four.Mirroring != cartridge.Four {
		t.Errorf("expected four-screen mirroring, got %s", four.Mirroring)
	}
}

func TestUnsupportedMapperIsRejected(t *testing.T) {
	rom, err := cartridge.Load(buildImage(1, 1, 0xF0, 0xF0, false))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cartridge.New(rom); !errors.Is(err, errors.UnsupportedMapper) {
		t.Fatalf("expected UnsupportedMapper, got %v", err)
	}
}
