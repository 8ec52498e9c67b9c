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

// Package cores describes the single capability every execution
// back-end implements — interpreter, transpiler, dynarec — and the
// factory that picks one by name. Dispatch above this package is
// entirely configuration-driven: nothing outside the factory knows the
// set of back-ends that exist.
package cores

import (
	"github.com/sixfiveoh/sixfiveoh/instructions"
	"github.com/sixfiveoh/sixfiveoh/memory"
	"github.com/sixfiveoh/sixfiveoh/registers"
)

// InstructionHook is called by a core immediately before it executes
// each instruction, for tracing and debugging. It is optional; a nil
// hook disables the call site entirely rather than calling a no-op.
type InstructionHook func(instructions.Instruction)

// Core is the capability shared by every execution back-end: run a
// cycle budget to exhaustion or an exit reason, jump to an address
// without going through the normal dispatch path (used for interrupts
// and resets), and expose the live CPU state.
type Core interface {
	// Run executes guest code against State until state.Cycles reaches
	// zero or the current function yields a terminal ExitReason. It
	// returns the number of cycles left unspent (zero unless the guest
	// returned control voluntarily with cycles to spare).
	Run(budget int32) (cyclesLeft int32, err error)

	// Jump sets the program counter directly, bypassing the normal
	// exit-reason dispatch. Used by the Runner to service interrupts
	// and to seed the program counter from the reset vector.
	Jump(addr uint16)

	// State returns the live CPU state register record.
	State() *registers.State

	// SetHook installs an instruction-level trace hook, or clears it if
	// hook is nil.
	SetHook(hook InstructionHook)
}

// Backend names a concrete Core implementation the factory can build.
type Backend string

const (
	Interpreter Backend = "interpreter"
	Transpiler  Backend = "transpiler"
	Dynarec     Backend = "dynarec"
)

// Builder constructs a Core of one backend kind over the given bus.
type Builder func(bus memory.Data) (Core, error)

var registry = map[Backend]Builder{}

// aliases maps the alternative configuration names onto the backend
// each one selects.
var aliases = map[Backend]Backend{
	"interpret": Interpreter,
	"lua":       Transpiler,
	"amd64":     Dynarec,
}

// Register adds a backend builder to the factory. Concrete back-ends
// call this from an init function so the factory stays the one place
// that knows the full set.
func Register(name Backend, build Builder) {
	registry[name] = build
}

// New builds a Core of the named backend over bus. The names interpret,
// lua and amd64 select Interpreter, Transpiler and Dynarec respectively.
// It returns an error naming the backend if nothing registered under
// that name.
func New(name Backend, bus memory.Data) (Core, error) {
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	build, ok := registry[name]
	if !ok {
		return nil, unknownBackendError(name)
	}
	return build(bus)
}

type unknownBackendError Backend

func (e unknownBackendError) Error() string {
	return "cores: unknown backend " + string(e)
}
