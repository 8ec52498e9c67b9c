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

// Package dynarec is the native execution back-end: it recovers a
// Function exactly as cores/transpiler does, lowers it to x86-64 with
// cores/dynarec/translate, links it into executable memory with
// cores/dynarec/link and cores/dynarec/jitmem, and calls it directly
// rather than through any interpreter loop. Memory access outside the
// translator's RAM fast path still compiles, as a call back into Go
// through bridge_amd64.s; only a Function with a runtime-dependent
// jump target (indirect JMP) is rejected outright, and falls back to
// cores/interpreter for the remainder of the current Run rather than
// failing the dispatch.
package dynarec

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"unsafe"

	"github.com/sixfiveoh/sixfiveoh/cores"
	"github.com/sixfiveoh/sixfiveoh/cores/dynarec/jitmem"
	"github.com/sixfiveoh/sixfiveoh/cores/dynarec/link"
	"github.com/sixfiveoh/sixfiveoh/cores/dynarec/trace"
	"github.com/sixfiveoh/sixfiveoh/cores/dynarec/translate"
	"github.com/sixfiveoh/sixfiveoh/cores/interpreter"
	"github.com/sixfiveoh/sixfiveoh/disassembly"
	"github.com/sixfiveoh/sixfiveoh/errors"
	"github.com/sixfiveoh/sixfiveoh/memory"
	"github.com/sixfiveoh/sixfiveoh/registers"
	"github.com/sixfiveoh/sixfiveoh/repository"
)

// memReadAddr and memWriteAddr are the addresses of the bridge
// trampolines bridge_amd64.s implements, resolved once via reflect
// rather than hand-computed: the linker's symbol Registry needs a
// plain uintptr, not a func value, for every compiled function's
// memRead/memWrite call to resolve against.
var (
	memReadAddr  = reflect.ValueOf(memReadTrampoline).Pointer()
	memWriteAddr = reflect.ValueOf(memWriteTrampoline).Pointer()
)

// hostRegistry is the symbol table every Linker resolves a compiled
// function's slow-path memRead/memWrite call against.
var hostRegistry = link.Registry{
	"memRead":  {Value: uint64(memReadAddr), Pointer: true},
	"memWrite": {Value: uint64(memWriteAddr), Pointer: true},
}

func init() {
	cores.Register(cores.Dynarec, func(bus memory.Data) (cores.Core, error) {
		return New(bus)
	})
}

// ramSource is the optional capability New needs from bus: a stable,
// directly addressable view of guest RAM to bake into generated code
// as a pointer. memory.Bus satisfies it; a bus that doesn't is simply
// incompatible with this back-end. The pattern mirrors runner's own
// nmiSource: a locally-scoped interface asserted against whatever
// concrete bus was handed in.
type ramSource interface {
	RAMBytes() []byte
}

// compiledBlock is the artifact cached per function entry. A nil entry
// marks a function the translator rejected: cached anyway, so a
// permanently ineligible block (one instruction with a runtime-
// dependent jump target) is not re-translated on every dispatch, only
// recognised as uncompilable and handed to the fallback interpreter
// each time.
type compiledBlock struct {
	entry  uintptr
	handle jitmem.Handle
}

// Core is a cores.Core that dispatches through natively compiled
// functions, falling back to an embedded interpreter.Interpreter for
// anything translate.Translator won't lower.
type Core struct {
	state registers.State
	bus   memory.Data
	hook  cores.InstructionHook

	mem        *jitmem.MemoryManager
	translator *translate.Translator
	repo       *repository.Repository[*compiledBlock]
	fallback   *interpreter.Interpreter
}

// New returns a dynarec Core over bus. bus must additionally satisfy
// ramSource; every other back-end is indifferent to the concrete bus
// type, but this one bakes a RAM pointer straight into machine code
// and has no way to do that through the narrow memory.Data interface
// alone.
func New(bus memory.Data) (cores.Core, error) {
	rs, ok := bus.(ramSource)
	if !ok {
		return nil, fmt.Errorf("dynarec: bus %T does not expose RAMBytes", bus)
	}
	ram := rs.RAMBytes()
	if len(ram) == 0 {
		return nil, fmt.Errorf("dynarec: RAMBytes returned an empty slice")
	}
	ramBase := uintptr(unsafe.Pointer(&ram[0]))

	c := &Core{
		bus:      bus,
		mem:      jitmem.New(),
		fallback: interpreter.New(bus),
	}
	// The translator bakes c's own address in as the handle its
	// compiled slow-path calls pass back to hostMemRead/hostMemWrite,
	// so it can only be built once c itself exists.
	c.translator = translate.New(ramBase, uintptr(unsafe.Pointer(c)))
	c.state.Reset()

	disasm := disassemblerAdapter{fd: disassembly.New(bus)}
	c.repo = repository.New(repository.DefaultCapacity, disasm, c.pack, c.finalize)

	return c, nil
}

// pack lowers a recovered function to machine code and links it into
// executable memory. A function the translator rejects is not an
// error: it is cached as an empty compiledBlock, which Run recognises
// and routes to the fallback interpreter instead.
func (c *Core) pack(fn repository.Function) (*compiledBlock, error) {
	df, ok := fn.(*disassembly.Function)
	if !ok {
		return nil, errors.New(errors.CartridgeMissing)
	}

	sections, entryName, err := c.translator.TranslateFunction(df)
	if err != nil {
		return &compiledBlock{}, nil
	}

	if trace.Enabled {
		var raw bytes.Buffer
		for _, s := range sections {
			raw.Write(s.Code)
		}
		trace.Dump(os.Stderr, entryName, raw.Bytes())
	}

	linker := link.New(hostRegistry, c.mem)
	entry, h, err := linker.Link(sections, entryName)
	if err != nil {
		return nil, err
	}
	return &compiledBlock{entry: entry, handle: h}, nil
}

// finalize releases an evicted block's executable memory. A block that
// never compiled (handle == nil) holds nothing to release.
func (c *Core) finalize(b *compiledBlock) {
	if b.handle != nil {
		c.mem.Free(b.handle)
	}
}

// State returns the live CPU state register record.
func (c *Core) State() *registers.State { return &c.state }

// Jump sets the program counter directly.
func (c *Core) Jump(addr uint16) { c.state.PC = addr }

// SetHook installs or clears the per-instruction trace hook. As with
// cores/transpiler, the hook fires once per compiled block rather than
// once per instruction, except while execution has fallen back to the
// interpreter, where it fires at the interpreter's own per-instruction
// granularity.
func (c *Core) SetHook(hook cores.InstructionHook) {
	c.hook = hook
	c.fallback.SetHook(hook)
}

// Run dispatches compiled functions until the cycle budget is spent or
// a terminal exit reason is reached. The exit-reason handling mirrors
// cores/transpiler.Run exactly: Break is self-serviced before the next
// dispatch, CyclesExhausted ends the loop, InfiniteLoop clamps the
// remaining budget to zero, and UnknownInstruction is fatal. A block
// the translator rejected hands the whole remaining budget to the
// fallback interpreter and returns whatever it returns.
func (c *Core) Run(budget int32) (int32, error) {
	c.state.Cycles = budget

	for c.state.Cycles > 0 {
		if c.hook != nil {
			if instr, err := disassembly.Decode(c.bus, c.state.PC); err == nil {
				c.hook(instr)
			}
		}

		blk, err := c.repo.Get(c.bus.Tag(), c.state.PC)
		if err != nil {
			return 0, err
		}
		if blk.entry == 0 {
			return c.runFallback()
		}

		invoke(blk.entry, &c.state)

		switch c.state.Reason {
		case registers.UnknownInstruction:
			return 0, errors.New(errors.UnknownInstructionTrap)
		case registers.InfiniteLoop:
			c.state.Cycles = 0
			return 0, nil
		case registers.Break:
			c.serviceBreak()
		}
	}

	if c.state.Cycles < 0 {
		c.state.Cycles = 0
	}
	return c.state.Cycles, nil
}

// runFallback hands the current register state to the embedded
// interpreter for the remainder of the cycle budget, then copies its
// final state back. registers.State is a flat value type, so the
// handoff in both directions is a single struct copy.
func (c *Core) runFallback() (int32, error) {
	*c.fallback.State() = c.state
	left, err := c.fallback.Run(c.state.Cycles)
	c.state = *c.fallback.State()
	return left, err
}

// serviceBreak mirrors cores/transpiler's own BRK handling: push the
// return address BRK left in PC, push a status byte with the Break bit
// set, mask further maskable interrupts, and jump through the shared
// IRQ/BRK vector.
func (c *Core) serviceBreak() {
	hi := uint8(c.state.PC >> 8)
	lo := uint8(c.state.PC)
	c.push(hi)
	c.push(lo)
	c.push(c.state.P | registers.FlagUnused | registers.FlagBreak)
	c.state.P = registers.SetFlag(c.state.P, registers.FlagInterruptDisable, true)
	c.state.PC = c.read16(0xFFFE)
}

// NMI services a non-maskable interrupt raised between Run calls at a
// scan-line boundary, the same entry point cores/interpreter exposes
// and the runner calls at VBlank through its nmiSource interface. It is not part of the Core
// contract; callers assert for it with a local interface.
func (c *Core) NMI() {
	c.push(uint8(c.state.PC >> 8))
	c.push(uint8(c.state.PC))
	c.push(c.state.P | registers.FlagUnused)
	c.state.P = registers.SetFlag(c.state.P, registers.FlagInterruptDisable, true)
	c.state.PC = c.read16(0xFFFA)
	c.state.Reason = registers.Jump
}

func (c *Core) push(v uint8) {
	c.bus.Write(0x0100+uint16(c.state.S), v)
	c.state.S--
}

func (c *Core) read16(addr uint16) uint16 {
	lo, _ := c.bus.Read(addr)
	hi, _ := c.bus.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}
