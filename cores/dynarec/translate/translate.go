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

// Package translate is the native instruction, memory and function
// translator: it walks a recovered disassembly.Function the same way
// cores/transpiler's codegen.go walks one, but emits asm.Sections of
// x86-64 instead of Lua source.
//
// Every 6502 register gets its own dedicated, callee-saved host
// register rather than packing two into one register's byte halves,
// sidestepping the legacy AH/BH/CH/DH-versus-REX clash entirely:
//
//	A -> RBX   X -> R12   Y -> R13   S -> R14   P -> R15
//	Cycles -> RBP (sign-extended int32)   RAM base -> RSI
//
// Every instruction still has a fast path: when an effective address
// is provably RAM-resident at translate time (zero page always,
// absolute/absolute-indexed when the barrier test in eligible proves
// it), the access compiles to a flat pointer dereference against the
// RAM base baked into the code at link time. Anything eligible can't
// prove — (indirect,X), (indirect),Y and an absolute access that might
// reach outside RAM — instead compiles a call into the host memRead or
// memWrite trampoline, passing the Translator's handle and the
// computed address (and, for a write, the value) across the native/Go
// boundary the same way the call bridge's own doc comment describes.
// Only a genuinely unresolvable control-flow target — indirect JMP —
// still forces the whole function back to the interpreter; see
// controlFlowEligible.
package translate

import (
	"fmt"

	"github.com/sixfiveoh/sixfiveoh/cores/dynarec/asm"
	"github.com/sixfiveoh/sixfiveoh/disassembly"
	"github.com/sixfiveoh/sixfiveoh/instructions"
	"github.com/sixfiveoh/sixfiveoh/registers"
)

// Fixed register assignment. See the package doc for the reasoning.
const (
	RegA       = asm.RBX
	RegX       = asm.R12
	RegY       = asm.R13
	RegS       = asm.R14
	RegP       = asm.R15
	RegCycles  = asm.RBP
	RegRAMBase = asm.RSI
)

// ramMask reproduces memory.ram's own address&(ramSize-1) mirroring
// rule (2 KiB of RAM mirrored through 0x2000): every fast-path address
// this package computes is masked with it before being added to the
// RAM base pointer, so a compiled AbsX/AbsY access that lands in a
// mirror behaves exactly as memory.Bus.Read/Write would.
const ramMask = 0x07FF

// ramBarrier is the first address Bus routes away from RAM (to the PPU
// ports at 0x2000). An Abs/AbsX/AbsY access is only fast-path eligible
// if its effective address is provably below this line at translate
// time.
const ramBarrier = 0x2000

// Translator lowers a recovered Function into native Sections, with
// ramBase baked in as the fixed pointer every fast-path memory access
// computes against, and handle baked in as the Core pointer the slow
// path's host call passes back to hostMemRead/hostMemWrite so they
// know which bus to dispatch against.
type Translator struct {
	ramBase uintptr
	handle  uintptr
}

// New returns a Translator that compiles fast-path memory access
// against ramBase and slow-path memory access as a call into the host
// bridge, tagged with handle (the owning Core's own address).
func New(ramBase, handle uintptr) *Translator {
	return &Translator{ramBase: ramBase, handle: handle}
}

func fnName(entry uint16) string      { return fmt.Sprintf("fn_%04x", entry) }
func instrLabel(addr uint16) string   { return fmt.Sprintf("instr_%04x", addr) }
func cycexhLabel(addr uint16) string  { return fmt.Sprintf("cycexh_%04x", addr) }

// TranslateFunction lowers every branch of fn into named Sections and
// returns them together with the name of the entry section the Linker
// should start from. It fails the moment any instruction in fn cannot
// be compiled at all (see controlFlowEligible) or has no native
// lowering; an instruction that is only not fast-path eligible is
// compiled with a host call instead. On failure the caller is expected
// to fall back to the interpreter for that function rather than
// partially compile it.
func (t *Translator) TranslateFunction(fn *disassembly.Function) ([]*asm.Section, string, error) {
	entry := asm.NewSection(fnName(fn.Entry))
	entry.EmitMovRegImm64(asm.RSI, uint64(t.ramBase))
	entry.EmitJmpLabel(instrLabel(fn.Entry))

	sections := []*asm.Section{entry}
	for i := 0; i < fn.NumBranches(); i++ {
		br := fn.Branch(i)
		for _, bi := range br.Instructions {
			secs, err := t.translateInstruction(fn, bi, bi.Instr)
			if err != nil {
				return nil, "", err
			}
			sections = append(sections, secs...)
		}
	}
	return sections, entry.Name, nil
}

// eligible reports whether instr's effective address is provably
// RAM-resident at translate time — the fast-path test body.go's
// readMemory/writeMemory use to decide between a flat pointer
// dereference and a host call. It says nothing about whether instr
// can be compiled at all; see controlFlowEligible for that.
func eligible(instr instructions.Instruction) bool {
	switch instr.Effect {
	case instructions.Read, instructions.Write, instructions.RMW:
		switch instr.AddressingMode {
		case instructions.Ind, instructions.IndX, instructions.IndY:
			return false
		case instructions.Abs:
			return instr.Operand < ramBarrier
		case instructions.AbsX, instructions.AbsY:
			return int(instr.Operand)+0xFF < ramBarrier
		}
		return true
	default:
		return true
	}
}

// controlFlowEligible reports whether instr can be compiled at all.
// Every Read/Write/RMW instruction now has a valid compiled form, fast
// or slow (see eligible and body.go's readMemory/writeMemory), so the
// only instruction this package still refuses outright is an indirect
// JMP: its jump target is itself a runtime-dependent memory read, and
// resolving that is a separate, still-unaddressed problem from the
// data-access slow path — a compiled function can call back into Go
// to fetch a byte, but it has nowhere to jump to once it has one
// without either a runtime indirect-branch table or another interpreter
// round-trip, neither of which this package implements yet.
func controlFlowEligible(instr instructions.Instruction) bool {
	switch instr.Effect {
	case instructions.Read, instructions.Write, instructions.RMW:
		return true
	default:
		return instr.AddressingMode != instructions.Ind
	}
}

func (t *Translator) translateInstruction(fn *disassembly.Function, bi disassembly.BranchInstruction, instr instructions.Instruction) ([]*asm.Section, error) {
	if !controlFlowEligible(instr) {
		return nil, fmt.Errorf("translate: instruction at %#04x has a runtime-dependent jump target the translator cannot resolve", instr.Address)
	}

	sec := asm.NewSection(instrLabel(instr.Address))
	sec.EmitAluImm32(asm.AluSub, RegCycles, uint32(instr.Cycles))

	if instr.IsConditionalBranch() {
		return t.translateConditionalBranch(sec, fn, bi, instr)
	}

	if err := t.emitBody(sec, instr); err != nil {
		return nil, err
	}
	if !instr.IsBranching() {
		sec.EmitJmpLabel(instrLabel(instr.NextAddress()))
	}
	return []*asm.Section{sec}, nil
}

func (t *Translator) translateConditionalBranch(sec *asm.Section, fn *disassembly.Function, bi disassembly.BranchInstruction, instr instructions.Instruction) ([]*asm.Section, error) {
	bit, cond, ok := branchTest(instr.Command)
	if !ok {
		return nil, fmt.Errorf("translate: unsupported conditional branch %s", instr.Command)
	}

	trapName := cycexhLabel(instr.Address)
	sec.EmitAluImm32(asm.AluCmp, RegCycles, 0)
	sec.EmitJcc(asm.CondLE, trapName)

	truthy := instrLabel(fn.Branch(bi.Truthy).Start)
	falsy := instrLabel(fn.Branch(bi.Falsy).Start)
	sec.EmitBt(RegP, bit)
	sec.EmitJcc(cond, truthy)
	sec.EmitJmpLabel(falsy)

	trap := asm.NewSection(trapName)
	trap.EmitMovRegImm64(asm.RAX, uint64(instr.Address))
	trap.EmitMovRegImm64(asm.RCX, uint64(registers.CyclesExhausted))
	trap.EmitRet()

	return []*asm.Section{sec, trap}, nil
}

// branchTest returns which P bit a conditional branch tests and which
// x86 condition, once that bit has been loaded into the carry flag by
// EmitBt, means "branch taken".
func branchTest(cmd instructions.Command) (bit uint8, cond asm.Cond, ok bool) {
	switch cmd {
	case instructions.BCC:
		return 0, asm.CondAE, true
	case instructions.BCS:
		return 0, asm.CondB, true
	case instructions.BEQ:
		return 1, asm.CondB, true
	case instructions.BNE:
		return 1, asm.CondAE, true
	case instructions.BVC:
		return 6, asm.CondAE, true
	case instructions.BVS:
		return 6, asm.CondB, true
	case instructions.BMI:
		return 7, asm.CondB, true
	case instructions.BPL:
		return 7, asm.CondAE, true
	}
	return 0, 0, false
}
