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

package translate

import (
	"strings"
	"testing"

	"github.com/sixfiveoh/sixfiveoh/cores/dynarec/asm"
	"github.com/sixfiveoh/sixfiveoh/disassembly"
)

type flatBus struct {
	bytes [0x10000]uint8
	tag   uint64
}

func (b *flatBus) Read(addr uint16) (uint8, error)  { return b.bytes[addr], nil }
func (b *flatBus) Write(addr uint16, v uint8) error { b.bytes[addr] = v; return nil }
func (b *flatBus) Tag() uint64                      { return b.tag }

func (b *flatBus) load(addr uint16, program ...uint8) {
	for i, v := range program {
		b.bytes[int(addr)+i] = v
	}
}

// hasHostCall reports whether any section references symbol, the way
// a compiled slow-path memory access does.
func hasHostCall(sections []*asm.Section, symbol string) bool {
	for _, s := range sections {
		for _, ref := range s.References {
			if ref.Name == symbol {
				return true
			}
		}
	}
	return false
}

func TestTranslateFunctionNamesTheEntrySectionAfterTheEntryAddress(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0xA9, 0x05, 0x60) // LDA #$05 ; RTS

	fn, err := disassembly.New(bus).Disassemble(0x8000)
	if err != nil {
		t.Fatal(err)
	}

	tr := New(0x1000, 0x2000)
	sections, entry, err := tr.TranslateFunction(fn)
	if err != nil {
		t.Fatal(err)
	}
	if entry != "fn_8000" {
		t.Errorf("entry = %q, want fn_8000", entry)
	}
	if len(sections) < 2 {
		t.Fatalf("got %d sections, want at least 2 (entry + one per instruction)", len(sections))
	}
	if sections[0].Name != entry {
		t.Errorf("sections[0].Name = %q, want %q", sections[0].Name, entry)
	}
}

func TestTranslateFunctionCompilesIndirectXAddressingAsAHostCall(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0xA1, 0x10) // LDA ($10,X)

	fn, err := disassembly.New(bus).Disassemble(0x8000)
	if err != nil {
		t.Fatal(err)
	}

	tr := New(0x1000, 0x2000)
	sections, _, err := tr.TranslateFunction(fn)
	if err != nil {
		t.Fatalf("did not expect an error translating (indirect,X) addressing: %s", err)
	}
	if !hasHostCall(sections, "memRead") {
		t.Error("expected a memRead host call resolving the zero-page pointer and loading the byte")
	}
}

func TestTranslateFunctionRejectsIndirectJmp(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0x6C, 0x00, 0x10) // JMP ($1000)

	fn, err := disassembly.New(bus).Disassemble(0x8000)
	if err != nil {
		t.Fatal(err)
	}

	tr := New(0x1000, 0x2000)
	if _, _, err := tr.TranslateFunction(fn); err == nil {
		t.Error("expected an error translating an indirect JMP")
	}
}

func TestTranslateFunctionCompilesAbsoluteAddressAboveRAMBarrierAsAHostCall(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0x8D, 0x00, 0x40) // STA $4000 (outside RAM)

	fn, err := disassembly.New(bus).Disassemble(0x8000)
	if err != nil {
		t.Fatal(err)
	}

	tr := New(0x1000, 0x2000)
	sections, _, err := tr.TranslateFunction(fn)
	if err != nil {
		t.Fatalf("did not expect an error translating a store above the RAM barrier: %s", err)
	}
	if !hasHostCall(sections, "memWrite") {
		t.Error("expected a memWrite host call for a store outside the RAM fast path")
	}
}

func TestTranslateFunctionAcceptsAbsoluteAddressBelowRAMBarrier(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0x8D, 0x00, 0x00, 0x60) // STA $0000 ; RTS

	fn, err := disassembly.New(bus).Disassemble(0x8000)
	if err != nil {
		t.Fatal(err)
	}

	tr := New(0x1000, 0x2000)
	if _, _, err := tr.TranslateFunction(fn); err != nil {
		t.Errorf("did not expect an error translating a RAM-resident store: %s", err)
	}
}

func TestTranslateConditionalBranchEmitsATrapSectionForCycleExhaustion(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0xF0, 0x02) // BEQ +2
	bus.load(0x8002, 0xEA)       // NOP
	bus.load(0x8003, 0x60)       // RTS
	bus.load(0x8004, 0x60)       // RTS

	fn, err := disassembly.New(bus).Disassemble(0x8000)
	if err != nil {
		t.Fatal(err)
	}

	tr := New(0x1000, 0x2000)
	sections, _, err := tr.TranslateFunction(fn)
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, s := range sections {
		if strings.HasPrefix(s.Name, "cycexh_") {
			found = true
		}
	}
	if !found {
		t.Error("expected a cycexh_ trap section for the conditional branch")
	}
}
