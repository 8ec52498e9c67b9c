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

// Package registers describes the 6502 CPU state as a single flat
// struct. Every core (interpreter, transpiler, dynarec) reads and writes
// through the same field layout, which matters most for the dynarec: it
// addresses A, X, Y, S, P, Cycles, PC and Reason by fixed byte offset
// from a base register rather than through any accessor. The struct is
// not packed: Go's alignment leaves three padding bytes after P and one
// after Reason, so Cycles sits at offset 8, PC at 12 and Reason at 14,
// and the struct is 16 bytes long.
package registers

import (
	"fmt"
	"strings"
)

// ExitReason records why a core's dispatch loop returned control to the
// Runner. The numeric values are part of the contract: native code
// computes Jump + (dest == own_address) to distinguish an ordinary jump
// from a self-jump, so Jump and InfiniteLoop must stay adjacent.
type ExitReason uint8

const (
	Return             ExitReason = 0
	Break              ExitReason = 1
	CyclesExhausted    ExitReason = 2
	Jump               ExitReason = 3
	InfiniteLoop       ExitReason = 4
	UnknownInstruction ExitReason = 5
)

func (r ExitReason) String() string {
	switch r {
	case Return:
		return "return"
	case Break:
		return "break"
	case CyclesExhausted:
		return "cyclesExhausted"
	case Jump:
		return "jump"
	case InfiniteLoop:
		return "infiniteLoop"
	case UnknownInstruction:
		return "unknownInstruction"
	}
	return "unknown exit reason"
}

// State is the complete CPU state record. Field order is part of the
// contract described by the data model: cores/dynarec/translate computes
// offsets into this struct directly, so fields must not be reordered,
// renamed or wrapped in any intermediate type.
type State struct {
	A      uint8
	X      uint8
	Y      uint8
	S      uint8
	P      uint8
	Cycles int32
	PC     uint16
	Reason ExitReason
}

// Reset returns the state to its power-on shape: registers cleared, flags
// cleared but for the always-set unused bit, and the stack pointer at the
// top of its page. PC is left untouched; callers load it from the reset
// vector separately.
func (s *State) Reset() {
	s.A = 0
	s.X = 0
	s.Y = 0
	s.S = 0xFD
	s.P = FlagUnused
	s.Cycles = 0
	s.Reason = Return
}

func (s State) String() string {
	return fmt.Sprintf("A=%#02x X=%#02x Y=%#02x S=%#02x PC=%#04x P=%s cycles=%d reason=%s",
		s.A, s.X, s.Y, s.S, s.PC, FlagString(s.P), s.Cycles, s.Reason)
}

// FlagString renders a status byte in the conventional 6502 debugger
// notation: upper case for a set flag, lower case for a clear one, in the
// order negative, overflow, unused, break, decimal, interrupt, zero,
// carry.
func FlagString(p uint8) string {
	s := strings.Builder{}
	for _, f := range []struct {
		mask uint8
		set  rune
		clr  rune
	}{
		{FlagSign, 'N', 'n'},
		{FlagOverflow, 'V', 'v'},
		{FlagUnused, '1', '0'},
		{FlagBreak, 'B', 'b'},
		{FlagDecimal, 'D', 'd'},
		{FlagInterruptDisable, 'I', 'i'},
		{FlagZero, 'Z', 'z'},
		{FlagCarry, 'C', 'c'},
	} {
		if p&f.mask == f.mask {
			s.WriteRune(f.set)
		} else {
			s.WriteRune(f.clr)
		}
	}
	return s.String()
}
