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

package registers_test

import (
	"testing"

	"github.com/sixfiveoh/sixfiveoh/registers"
)

func TestResetShape(t *testing.T) {
	s := registers.State{A: 1, X: 2, Y: 3, S: 4, P: 0xFF, Cycles: 99, PC: 0x1234, Reason: registers.Break}
	s.Reset()

	if s.A != 0 || s.X != 0 || s.Y != 0 {
		t.Errorf("expected general purpose registers to be cleared, got %s", s)
	}
	if s.S != 0xFD {
		t.Errorf("expected stack pointer to reset to 0xFD, got %#02x", s.S)
	}
	if s.P != registers.FlagUnused {
		t.Errorf("expected flags to reset to just the unused bit, got %#02x", s.P)
	}
	if s.Cycles != 0 {
		t.Errorf("expected cycles to reset to 0, got %d", s.Cycles)
	}
	if s.Reason != registers.Return {
		t.Errorf("expected reason to reset to Return, got %s", s.Reason)
	}
	if s.PC != 0x1234 {
		t.Error("did not expect Reset to touch the program counter")
	}
}

func TestFlagString(t *testing.T) {
	got := registers.FlagString(registers.FlagUnused | registers.FlagCarry | registers.FlagZero)
	want := "nv1bdiZC"
	if got != want {
		t.Errorf("FlagString() = %q, want %q", got, want)
	}
}

func TestExitReasonAdjacency(t *testing.T) {
	// native code computes Jump + (dest == own_address) to distinguish an
	// ordinary jump from a self-jump, so these two values must stay
	// adjacent.
	if registers.InfiniteLoop != registers.Jump+1 {
		t.Fatal("Jump and InfiniteLoop must be numerically adjacent")
	}
}
