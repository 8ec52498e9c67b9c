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

package interpreter_test

import (
	"testing"

	"github.com/sixfiveoh/sixfiveoh/cores/interpreter"
	"github.com/sixfiveoh/sixfiveoh/instructions"
	"github.com/sixfiveoh/sixfiveoh/registers"
)

// flatBus is a minimal memory.Data backed by a flat byte slice, enough
// to drive the interpreter through a fixed program without any of the
// bus's address-range dispatch.
type flatBus struct {
	bytes [0x10000]uint8
}

func (b *flatBus) Read(address uint16) (uint8, error) { return b.bytes[address], nil }
func (b *flatBus) Write(address uint16, data uint8) error {
	b.bytes[address] = data
	return nil
}
func (b *flatBus) Tag() uint64 { return 0 }

func (b *flatBus) load(addr uint16, program ...uint8) {
	for i, v := range program {
		b.bytes[int(addr)+i] = v
	}
}

func TestADCSetsOverflowAndSignOnSignedCrossing(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0x69, 0x5A) // ADC #$5A

	cpu := interpreter.New(bus)
	cpu.State().A = 0x3C
	cpu.State().P = 0x00
	cpu.Jump(0x8000)

	if _, err := cpu.Run(2); err != nil {
		t.Fatal(err)
	}

	s := cpu.State()
	if s.A != 0x96 {
		t.Errorf("A = %#02x, want 0x96", s.A)
	}
	if registers.Flag(s.P, registers.FlagCarry) {
		t.Error("expected Carry clear")
	}
	if registers.Flag(s.P, registers.FlagZero) {
		t.Error("expected Zero clear")
	}
	if !registers.Flag(s.P, registers.FlagOverflow) {
		t.Error("expected Overflow set")
	}
	if !registers.Flag(s.P, registers.FlagSign) {
		t.Error("expected Sign set")
	}
}

func TestSBCWithCarrySetBorrowsCorrectly(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0xE9, 0x01) // SBC #$01

	cpu := interpreter.New(bus)
	cpu.State().A = 0x80
	cpu.State().P = registers.FlagCarry
	cpu.Jump(0x8000)

	if _, err := cpu.Run(2); err != nil {
		t.Fatal(err)
	}

	s := cpu.State()
	if s.A != 0x7F {
		t.Errorf("A = %#02x, want 0x7F", s.A)
	}
	if !registers.Flag(s.P, registers.FlagCarry) {
		t.Error("expected Carry set")
	}
	if !registers.Flag(s.P, registers.FlagOverflow) {
		t.Error("expected Overflow set")
	}
	if registers.Flag(s.P, registers.FlagZero) {
		t.Error("expected Zero clear")
	}
	if registers.Flag(s.P, registers.FlagSign) {
		t.Error("expected Sign clear")
	}
}

func TestIndirectJMPPageCrossingBug(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0x6C, 0xFF, 0x02) // JMP ($02FF)
	bus.load(0x02FF, 0x00)
	bus.load(0x0300, 0x20) // if the bug were absent, the high byte would come from here
	bus.load(0x0200, 0x40) // the buggy high byte actually comes from here
	bus.load(0x4000, 0x4C, 0x00, 0x40) // JMP $4000, to freeze PC once we land

	cpu := interpreter.New(bus)
	cpu.Jump(0x8000)

	if _, err := cpu.Run(100); err != nil {
		t.Fatal(err)
	}

	if got, want := cpu.State().PC, uint16(0x4000); got != want {
		t.Errorf("PC = %#04x, want %#04x", got, want)
	}
}

func TestIndirectXWrapsWithinZeroPage(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0xA1, 0x80) // LDA ($80,X)
	bus.load(0x007F, 0x34, 0x12) // (0x80+0xFF)&0xFF == 0x7F
	bus.load(0x1234, 0x42)

	cpu := interpreter.New(bus)
	cpu.State().X = 0xFF
	cpu.Jump(0x8000)

	if _, err := cpu.Run(6); err != nil {
		t.Fatal(err)
	}

	if cpu.State().A != 0x42 {
		t.Errorf("A = %#02x, want 0x42", cpu.State().A)
	}
}

func TestStackWrapsWithoutPageCorrection(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0x68) // PLA, with S already at 0xFF

	cpu := interpreter.New(bus)
	cpu.State().S = 0xFF
	bus.load(0x0100, 0x11)
	cpu.Jump(0x8000)

	if _, err := cpu.Run(4); err != nil {
		t.Fatal(err)
	}

	if cpu.State().A != 0x11 {
		t.Errorf("A = %#02x, want 0x11 (read from 0x100 after S wrapped)", cpu.State().A)
	}
	if cpu.State().S != 0x00 {
		t.Errorf("S = %#02x, want 0x00", cpu.State().S)
	}
}

func TestPHPPLPRoundTripSetsAlwaysOneAndBreak(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0x08, 0x28) // PHP ; PLP

	cpu := interpreter.New(bus)
	cpu.State().P = 0x00
	cpu.Jump(0x8000)

	if _, err := cpu.Run(7); err != nil {
		t.Fatal(err)
	}

	if got, want := cpu.State().P, uint8(0x30); got != want {
		t.Errorf("P = %#02x, want %#02x", got, want)
	}
}

func TestPHAPLAIsIdentityOnA(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0x48, 0x68) // PHA ; PLA

	cpu := interpreter.New(bus)
	cpu.State().A = 0x77
	cpu.Jump(0x8000)

	if _, err := cpu.Run(7); err != nil {
		t.Fatal(err)
	}

	if cpu.State().A != 0x77 {
		t.Errorf("A = %#02x, want 0x77", cpu.State().A)
	}
}

func TestJSRRTSReturnsToCallPlusThree(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0x20, 0x00, 0x90) // JSR $9000
	bus.load(0x8003, 0x4C, 0x03, 0x80) // JMP $8003, so control halts right at the return address
	bus.load(0x9000, 0x60)             // RTS

	cpu := interpreter.New(bus)
	cpu.Jump(0x8000)

	if _, err := cpu.Run(100); err != nil {
		t.Fatal(err)
	}

	if got, want := cpu.State().PC, uint16(0x8003); got != want {
		t.Errorf("PC = %#04x, want %#04x", got, want)
	}
	if cpu.State().Reason != registers.InfiniteLoop {
		t.Errorf("Reason = %s, want InfiniteLoop", cpu.State().Reason)
	}
}

func TestCycleExhaustionAtConditionalBranchLeavesPCAtBranch(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0xA9, 0x00) // LDA #$00, 2 cycles
	bus.load(0x8002, 0xF0, 0x10) // BEQ +16, 2 cycles

	cpu := interpreter.New(bus)
	cpu.Jump(0x8000)

	left, err := cpu.Run(4)
	if err != nil {
		t.Fatal(err)
	}
	if left != 0 {
		t.Errorf("cyclesLeft = %d, want 0", left)
	}
	if got, want := cpu.State().PC, uint16(0x8002); got != want {
		t.Errorf("PC = %#04x, want %#04x (the branch's own address)", got, want)
	}
	if cpu.State().Reason != registers.CyclesExhausted {
		t.Errorf("Reason = %s, want CyclesExhausted", cpu.State().Reason)
	}
}

func TestJMPToSelfIsInfiniteLoop(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0x4C, 0x00, 0x80) // JMP $8000

	cpu := interpreter.New(bus)
	cpu.Jump(0x8000)

	left, err := cpu.Run(100)
	if err != nil {
		t.Fatal(err)
	}
	if left != 0 {
		t.Errorf("cyclesLeft = %d, want 0", left)
	}
	if cpu.State().Reason != registers.InfiniteLoop {
		t.Errorf("Reason = %s, want InfiniteLoop", cpu.State().Reason)
	}
	if cpu.State().PC != 0x8000 {
		t.Errorf("PC = %#04x, want 0x8000", cpu.State().PC)
	}
}

func TestUnknownOpcodeIsFatal(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0x02) // undocumented opcode

	cpu := interpreter.New(bus)
	cpu.Jump(0x8000)

	if _, err := cpu.Run(10); err == nil {
		t.Fatal("expected an error for an undecoded opcode")
	}
	if cpu.State().Reason != registers.UnknownInstruction {
		t.Errorf("Reason = %s, want UnknownInstruction", cpu.State().Reason)
	}
}

func TestInstructionHookSeesEveryDecodedInstruction(t *testing.T) {
	bus := &flatBus{}
	bus.load(0x8000, 0xEA, 0xEA, 0x60) // NOP ; NOP ; RTS

	cpu := interpreter.New(bus)
	cpu.State().S = 0xFF
	cpu.Jump(0x8000)

	var seen int
	cpu.SetHook(func(instructions.Instruction) { seen++ })

	if _, err := cpu.Run(20); err != nil {
		t.Fatal(err)
	}
	if seen < 2 {
		t.Errorf("hook saw %d instructions, want at least 2", seen)
	}
}
