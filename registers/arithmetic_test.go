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
	"github.com/sixfiveoh/sixfiveoh/test"
)

func TestAddCarryOverflowBoundary(t *testing.T) {
	result, carry, overflow := registers.AddCarryOverflow(255, 1, false)
	if result != 0 {
		t.Errorf("expected 255+1 to wrap to 0, got %#02x", result)
	}
	test.Equate(t, carry, true)
	test.Equate(t, overflow, false)

	result, carry, overflow = registers.AddCarryOverflow(127, 1, false)
	if result != 128 {
		t.Errorf("expected 127+1 to be 128, got %#02x", result)
	}
	test.Equate(t, carry, false)
	test.Equate(t, overflow, true)
}

func TestAddCarryOverflowWithIncomingCarry(t *testing.T) {
	result, carry, overflow := registers.AddCarryOverflow(254, 1, true)
	if result != 0 {
		t.Errorf("expected 254+1+1 to wrap to 0, got %#02x", result)
	}
	test.Equate(t, carry, true)
	test.Equate(t, overflow, false)
}

func TestSubtractCarryOverflow(t *testing.T) {
	result, carry, _ := registers.SubtractCarryOverflow(11, 1, true)
	if result != 10 {
		t.Errorf("expected 11-1 to be 10, got %#02x", result)
	}
	test.Equate(t, carry, true)

	// borrow: subtracting with no incoming carry subtracts one extra
	result, carry, _ = registers.SubtractCarryOverflow(12, 1, false)
	if result != 10 {
		t.Errorf("expected 12-1 with borrow to be 10, got %#02x", result)
	}
	test.Equate(t, carry, true)
}

func TestShiftAndRotate(t *testing.T) {
	result, carry := registers.ShiftLeft(0x80)
	if result != 0 {
		t.Errorf("expected 0x80<<1 to be 0, got %#02x", result)
	}
	test.Equate(t, carry, true)

	result, carry = registers.ShiftRight(0x01)
	if result != 0 {
		t.Errorf("expected 0x01>>1 to be 0, got %#02x", result)
	}
	test.Equate(t, carry, true)

	result, carry = registers.RotateLeft(0x80, true)
	if result != 0x01 {
		t.Errorf("expected ROL(0x80, carry=true) to be 0x01, got %#02x", result)
	}
	test.Equate(t, carry, true)

	result, carry = registers.RotateRight(0x01, true)
	if result != 0x80 {
		t.Errorf("expected ROR(0x01, carry=true) to be 0x80, got %#02x", result)
	}
	test.Equate(t, carry, true)
}

func TestSetNZ(t *testing.T) {
	p := registers.SetNZ(0, 0)
	if !registers.Flag(p, registers.FlagZero) {
		t.Error("expected zero flag to be set for a zero value")
	}
	if registers.Flag(p, registers.FlagSign) {
		t.Error("did not expect sign flag to be set for a zero value")
	}

	p = registers.SetNZ(0, 0x80)
	if registers.Flag(p, registers.FlagZero) {
		t.Error("did not expect zero flag to be set for 0x80")
	}
	if !registers.Flag(p, registers.FlagSign) {
		t.Error("expected sign flag to be set for 0x80")
	}
}
