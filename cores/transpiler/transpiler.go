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

// Package transpiler is the scripting execution back-end: it recovers a
// Function the same way the interpreter's disassembler does, emits it
// as Lua source, compiles that source once into a registered Lua global
// function, and calls the compiled function on every dispatch
// thereafter. Compiled functions are cached by the shared Repository,
// keyed on cartridge tag and entry address exactly like the dynarec
// core's.
package transpiler

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/sixfiveoh/sixfiveoh/cores"
	"github.com/sixfiveoh/sixfiveoh/disassembly"
	"github.com/sixfiveoh/sixfiveoh/errors"
	"github.com/sixfiveoh/sixfiveoh/memory"
	"github.com/sixfiveoh/sixfiveoh/registers"
	"github.com/sixfiveoh/sixfiveoh/repository"
)

func init() {
	cores.Register(cores.Transpiler, func(bus memory.Data) (cores.Core, error) {
		return New(bus), nil
	})
}

// compiledFunction is the artifact the Repository caches for this
// back-end: the name the generator registered in the Lua global table,
// and the compiled *lua.LFunction value itself, fetched back out once
// rather than re-resolved by name on every call.
type compiledFunction struct {
	name string
	fn   *lua.LFunction
}

// Transpiler is a cores.Core that dispatches through compiled Lua.
type Transpiler struct {
	state registers.State
	bus   memory.Data
	hook  cores.InstructionHook

	L    *lua.LState
	repo *repository.Repository[*compiledFunction]
}

// New returns a Transpiler over bus, with its own Lua VM and its own
// Repository of compiled functions.
func New(bus memory.Data) *Transpiler {
	L := lua.NewState()
	register(L, bus)

	t := &Transpiler{bus: bus, L: L}
	t.state.Reset()

	disasm := disassemblerAdapter{fd: disassembly.New(bus)}
	t.repo = repository.New(repository.DefaultCapacity, disasm, t.pack, t.finalize)

	return t
}

// pack compiles a recovered function into Lua source, loads it into
// this Transpiler's Lua state under a unique global name, and returns
// the resolved *lua.LFunction ready to call.
func (t *Transpiler) pack(fn repository.Function) (*compiledFunction, error) {
	df, ok := fn.(*disassembly.Function)
	if !ok {
		return nil, errors.New(errors.CartridgeMissing)
	}

	name, src := generateSource(df)
	if err := t.L.DoString(src); err != nil {
		return nil, err
	}

	lv := t.L.GetGlobal(name)
	f, ok := lv.(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("transpiler: %s did not compile to a function", name)
	}
	return &compiledFunction{name: name, fn: f}, nil
}

// finalize drops an evicted artifact's global, freeing the compiled
// chunk for the Lua garbage collector once nothing references it.
func (t *Transpiler) finalize(cf *compiledFunction) {
	t.L.SetGlobal(cf.name, lua.LNil)
}

// State returns the live CPU state register record.
func (t *Transpiler) State() *registers.State { return &t.state }

// Jump sets the program counter directly.
func (t *Transpiler) Jump(addr uint16) { t.state.PC = addr }

// SetHook installs an instruction-level trace hook. Because a compiled
// function runs a whole recovered block per call rather than one
// instruction at a time, the hook only fires once per call, against the
// block's entry instruction — callers that need true per-instruction
// tracing should run the interpreter back-end instead.
func (t *Transpiler) SetHook(hook cores.InstructionHook) { t.hook = hook }

// Run dispatches compiled functions until the cycle budget is spent or
// a terminal exit reason is reached, per §4.12's loop: Break is
// self-serviced as a maskable-by-force interrupt before the next
// dispatch, CyclesExhausted ends the loop, InfiniteLoop clamps the
// remaining budget to zero, and UnknownInstruction is fatal.
func (t *Transpiler) Run(budget int32) (int32, error) {
	t.state.Cycles = budget

	for t.state.Cycles > 0 {
		if t.hook != nil {
			if instr, err := disassembly.Decode(t.bus, t.state.PC); err == nil {
				t.hook(instr)
			}
		}

		cf, err := t.repo.Get(t.bus.Tag(), t.state.PC)
		if err != nil {
			return 0, err
		}

		a, x, y, s, p, cycles, pc, reason, err := t.call(cf, t.state)
		if err != nil {
			return 0, err
		}
		t.state.A, t.state.X, t.state.Y, t.state.S, t.state.P = a, x, y, s, p
		t.state.Cycles = cycles
		t.state.PC = pc
		t.state.Reason = reason

		switch t.state.Reason {
		case registers.UnknownInstruction:
			return 0, errors.New(errors.UnknownInstructionTrap)
		case registers.InfiniteLoop:
			t.state.Cycles = 0
			return 0, nil
		case registers.Break:
			t.serviceBreak()
		}
	}

	if t.state.Cycles < 0 {
		t.state.Cycles = 0
	}
	return t.state.Cycles, nil
}

// call invokes cf with the given register state and unpacks its eight
// return values back into Go types.
func (t *Transpiler) call(cf *compiledFunction, s registers.State) (a, x, y, st, p uint8, cycles int32, pc uint16, reason registers.ExitReason, err error) {
	err = t.L.CallByParam(lua.P{Fn: cf.fn, NRet: 8, Protect: true},
		lua.LNumber(s.A), lua.LNumber(s.X), lua.LNumber(s.Y),
		lua.LNumber(s.S), lua.LNumber(s.P), lua.LNumber(s.Cycles))
	if err != nil {
		return
	}
	defer t.L.Pop(8)

	a = uint8(lua.LVAsNumber(t.L.Get(-8)))
	x = uint8(lua.LVAsNumber(t.L.Get(-7)))
	y = uint8(lua.LVAsNumber(t.L.Get(-6)))
	st = uint8(lua.LVAsNumber(t.L.Get(-5)))
	p = uint8(lua.LVAsNumber(t.L.Get(-4)))
	cycles = int32(lua.LVAsNumber(t.L.Get(-3)))
	pc = uint16(lua.LVAsNumber(t.L.Get(-2)))
	reason = registers.ExitReason(lua.LVAsNumber(t.L.Get(-1)))
	return
}

// serviceBreak mirrors the interpreter's own BRK handling: push the
// return address BRK already left in PC, push a status byte with the
// Break bit set, mask further maskable interrupts, and jump through the
// shared IRQ/BRK vector. Folding this into the core itself, the same
// way cores/interpreter does, keeps the Runner's dispatch loop ignorant
// of interrupt mechanics entirely.
func (t *Transpiler) serviceBreak() {
	h := host{bus: t.bus}
	t.state.S = h.push16(t.state.S, t.state.PC)
	psw := t.state.P | registers.FlagUnused | registers.FlagBreak
	t.state.S = h.push(t.state.S, psw)
	t.state.P = registers.SetFlag(t.state.P, registers.FlagInterruptDisable, true)
	t.state.PC = h.read16(0xFFFE)
}
