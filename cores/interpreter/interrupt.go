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

package interpreter

import "github.com/sixfiveoh/sixfiveoh/registers"

// interruptKind names one of the three entry points into the vector
// table. Reset is only ever jumped to directly; it never goes through
// interrupt() because there is no prior state worth pushing.
type interruptKind int

const (
	nmiInterrupt interruptKind = iota
	resetInterrupt
	serviceInterrupt // IRQ and BRK share this vector.
)

// vector is the address of the 16-bit pointer for each interrupt kind.
func (k interruptKind) vector() uint16 {
	switch k {
	case nmiInterrupt:
		return 0xFFFA
	case resetInterrupt:
		return 0xFFFC
	default:
		return 0xFFFE
	}
}

// jumpToVector reads the 16-bit pointer stored at kind's vector and sets
// PC to it.
func (i *Interpreter) jumpToVector(kind interruptKind) {
	i.state.PC = i.read16(kind.vector())
}

// interrupt services kind unless it is maskable, the Interrupt-disable
// flag is set, and force is false. Servicing pushes PC, then a status
// byte with the unused bit forced on and the Break bit set only for a
// software BRK, sets Interrupt-disable, and jumps through kind's vector.
func (i *Interpreter) interrupt(kind interruptKind, brk, force bool) {
	maskable := kind == serviceInterrupt
	if maskable && registers.Flag(i.state.P, registers.FlagInterruptDisable) && !force {
		return
	}

	i.push16(i.state.PC)

	psw := i.state.P | registers.FlagUnused
	psw = registers.SetFlag(psw, registers.FlagBreak, brk)
	i.push(psw)

	i.state.P = registers.SetFlag(i.state.P, registers.FlagInterruptDisable, true)
	i.jumpToVector(kind)
}

// NMI services a non-maskable interrupt raised from outside the
// instruction stream, between Run calls at a scan-line boundary. It is
// not part of the Core contract: callers that need it assert for it
// with a local interface, the way the runner does for the PPU's
// VBlank-start notification.
func (i *Interpreter) NMI() {
	i.interrupt(nmiInterrupt, false, true)
	i.state.Reason = registers.Jump
}
