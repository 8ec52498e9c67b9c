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

package disassembly_test

import (
	"testing"

	"github.com/sixfiveoh/sixfiveoh/disassembly"
)

// flatData is a minimal memory.Data backed by a flat byte slice, for
// tests that only need to feed a fixed program to the disassembler.
type flatData struct {
	bytes [0x10000]uint8
	tag   uint64
}

func (d *flatData) Read(address uint16) (uint8, error) { return d.bytes[address], nil }
func (d *flatData) Write(address uint16, data uint8) error {
	d.bytes[address] = data
	return nil
}
func (d *flatData) Tag() uint64 { return d.tag }

func (d *flatData) load(addr uint16, program ...uint8) {
	for i, b := range program {
		d.bytes[int(addr)+i] = b
	}
}

func TestDisassembleStraightLineFunction(t *testing.T) {
	data := &flatData{}
	// LDA #$01 ; RTS
	data.load(0x8000, 0xA9, 0x01, 0x60)

	f, err := disassembly.New(data).Disassemble(0x8000)
	if err != nil {
		t.Fatal(err)
	}

	if f.NumBranches() != 1 {
		t.Fatalf("expected a single branch, got %d", f.NumBranches())
	}
	root := f.Root()
	if root.Start != 0x8000 {
		t.Errorf("root branch starts at %#04x, want 0x8000", root.Start)
	}
	if len(root.Instructions) != 2 {
		t.Fatalf("expected 2 instructions, got %d", len(root.Instructions))
	}
	if root.Instructions[1].Instr.Command.String() != "RTS" {
		t.Errorf("expected the branch to end on RTS, got %s", root.Instructions[1].Instr.Command)
	}
}

func TestDisassembleConditionalBranchSplitsIntoThreeBranches(t *testing.T) {
	data := &flatData{}
	// BEQ +2 ; (falls through to 0x8002) NOP ; (target 0x8004) RTS
	data.load(0x8000, 0xF0, 0x02)
	data.load(0x8002, 0xEA)
	data.load(0x8003, 0x60)
	data.load(0x8004, 0x60)

	f, err := disassembly.New(data).Disassemble(0x8000)
	if err != nil {
		t.Fatal(err)
	}

	// root (BEQ), falsy fall-through (NOP;RTS at 0x8002) and truthy
	// target (RTS at 0x8004) are three distinct straight-line runs.
	if f.NumBranches() != 3 {
		t.Fatalf("expected 3 branches, got %d", f.NumBranches())
	}

	root := f.Root()
	last := root.Instructions[len(root.Instructions)-1]
	if !last.IsConditional() {
		t.Fatal("expected the root branch to end on a conditional instruction")
	}
	if last.Truthy == last.Falsy {
		t.Error("expected distinct truthy/falsy successor indices")
	}
}

func TestDisassembleSupportsCyclicBranches(t *testing.T) {
	data := &flatData{}
	// loop: BEQ loop ; (never reached directly) RTS
	data.load(0x8000, 0xF0, 0xFE) // BEQ -2 -> targets 0x8000 itself
	data.load(0x8002, 0x60)

	f, err := disassembly.New(data).Disassemble(0x8000)
	if err != nil {
		t.Fatal(err)
	}

	root := f.Root()
	last := root.Instructions[len(root.Instructions)-1]
	if last.Truthy != 0 {
		t.Errorf("expected the self-branch to resolve back to branch 0, got %d", last.Truthy)
	}
}

func TestCacheabilityFollowsEntryAddress(t *testing.T) {
	data := &flatData{}
	data.load(0x0100, 0x60) // RTS, inside RAM
	data.load(0x8000, 0x60) // RTS, inside cartridge space

	ramFunc, err := disassembly.New(data).Disassemble(0x0100)
	if err != nil {
		t.Fatal(err)
	}
	if ramFunc.Cacheable {
		t.Error("a function entered below CartridgeBase must not be cacheable")
	}

	cartFunc, err := disassembly.New(data).Disassemble(0x8000)
	if err != nil {
		t.Fatal(err)
	}
	if !cartFunc.Cacheable {
		t.Error("a function entered at or above CartridgeBase must be cacheable")
	}
}

func TestBranchGraphClosure(t *testing.T) {
	data := &flatData{}
	data.load(0x8000, 0xF0, 0x02) // BEQ +2
	data.load(0x8002, 0xEA)       // NOP
	data.load(0x8003, 0x60)       // RTS

	f, err := disassembly.New(data).Disassemble(0x8000)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < f.NumBranches(); i++ {
		for _, instr := range f.Branch(i).Instructions {
			if !instr.IsConditional() {
				continue
			}
			if instr.Truthy < 0 || instr.Truthy >= f.NumBranches() {
				t.Errorf("truthy successor %d out of range", instr.Truthy)
			}
			if instr.Falsy < 0 || instr.Falsy >= f.NumBranches() {
				t.Errorf("falsy successor %d out of range", instr.Falsy)
			}
		}
	}
}
