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

// Package interpreter is the reference execution core: a direct
// fetch-decode-execute loop against the bus, with no compilation step.
// It is also the arithmetic and addressing ground truth the transpiler
// and dynarec back-ends are tested against.
package interpreter

import (
	"github.com/sixfiveoh/sixfiveoh/cores"
	"github.com/sixfiveoh/sixfiveoh/disassembly"
	"github.com/sixfiveoh/sixfiveoh/memory"
	"github.com/sixfiveoh/sixfiveoh/registers"
)

func init() {
	cores.Register(cores.Interpreter, func(bus memory.Data) (cores.Core, error) {
		return New(bus), nil
	})
}

// Interpreter steps one 6502 instruction at a time against bus. Unlike
// the transpiler and dynarec cores it never compiles a function: a
// basic block's internal branches are not a unit of caching here, only
// of disassembly.
type Interpreter struct {
	state registers.State
	bus   memory.Data
	hook  cores.InstructionHook
}

// New returns an Interpreter over bus with its state zeroed as if by
// Reset.
func New(bus memory.Data) *Interpreter {
	i := &Interpreter{bus: bus}
	i.state.Reset()
	return i
}

// State returns the live register record.
func (i *Interpreter) State() *registers.State {
	return &i.state
}

// Jump sets PC directly, bypassing the exit-reason dispatch. Used to
// seed execution from the reset vector and to service interrupts raised
// from outside the instruction stream.
func (i *Interpreter) Jump(addr uint16) {
	i.state.PC = addr
}

// SetHook installs or clears the per-instruction trace hook.
func (i *Interpreter) SetHook(hook cores.InstructionHook) {
	i.hook = hook
}

// Run executes instructions until budget cycles are spent or an
// instruction sets a terminal exit reason: a self-jump (InfiniteLoop) or
// an undecoded opcode (UnknownInstruction, returned as an error). Every
// other branching instruction — conditional branches, JMP, JSR, RTS,
// RTI, BRK — updates PC and Reason but does not stop the loop; BRK
// services its own interrupt before Run ever sees it.
//
// When a branching instruction would itself exhaust the budget, Run stops before
// executing it and leaves PC at that instruction's own address, so a
// later call re-fetches and commits it cleanly rather than resuming
// mid-effect.
func (i *Interpreter) Run(budget int32) (int32, error) {
	i.state.Cycles = budget

	for {
		if i.state.Cycles <= 0 {
			i.state.Reason = registers.CyclesExhausted
			break
		}

		instr, err := disassembly.Decode(i.bus, i.state.PC)
		if err != nil {
			return i.state.Cycles, err
		}
		if i.hook != nil {
			i.hook(instr)
		}

		cost := int32(instr.Cycles)
		if i.state.Cycles-cost <= 0 && instr.IsBranching() {
			i.state.Cycles = 0
			i.state.Reason = registers.CyclesExhausted
			break
		}
		i.state.Cycles -= cost

		stop, err := i.execute(instr)
		if err != nil {
			return 0, err
		}
		if bool(stop) || (instr.IsConditionalBranch() && i.state.Reason == registers.InfiniteLoop) {
			break
		}
	}

	if i.state.Cycles < 0 {
		i.state.Cycles = 0
	}
	return i.state.Cycles, nil
}
