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

package translate

import (
	"fmt"

	"github.com/sixfiveoh/sixfiveoh/cores/dynarec/asm"
	"github.com/sixfiveoh/sixfiveoh/instructions"
	"github.com/sixfiveoh/sixfiveoh/registers"
)

// addrScratch, valueScratch and rhsScratch name the scratch
// registers a single instruction's body is free to clobber. None of
// them carry a standing zero-extension invariant the way RegA/X/Y/S/P
// do — EmitLoadByteMem only ever touches a register's low byte, so
// anything read out of memory into one of these must be re-masked
// before it is used in any 64-bit-wide arithmetic. Every body emitter
// below either stays at byte width throughout, or masks explicitly
// where it doesn't (RTS's return-address assembly is the one case that
// needs to).
const (
	addrScratch  = asm.RAX
	valueScratch = asm.RDX
	rhsScratch   = asm.RCX
)

// emitEffectiveAddr computes instr's RAM pointer into addrScratch,
// applying the zero-page wraparound or RAM-mirror mask the addressing
// mode calls for. Callers only reach this for instructions eligible()
// has already confirmed stay within RAM.
func emitEffectiveAddr(sec *asm.Section, instr instructions.Instruction) {
	switch instr.AddressingMode {
	case instructions.Zp:
		sec.EmitMovRegImm64(addrScratch, uint64(instr.Operand&0xFF))
	case instructions.ZpX:
		sec.EmitMovRegImm64(addrScratch, uint64(instr.Operand&0xFF))
		sec.EmitAdd(addrScratch, RegX)
		sec.EmitAluImm32(asm.AluAnd, addrScratch, 0xFF)
	case instructions.ZpY:
		sec.EmitMovRegImm64(addrScratch, uint64(instr.Operand&0xFF))
		sec.EmitAdd(addrScratch, RegY)
		sec.EmitAluImm32(asm.AluAnd, addrScratch, 0xFF)
	case instructions.Abs:
		sec.EmitMovRegImm64(addrScratch, uint64(instr.Operand))
	case instructions.AbsX:
		sec.EmitMovRegImm64(addrScratch, uint64(instr.Operand))
		sec.EmitAdd(addrScratch, RegX)
	case instructions.AbsY:
		sec.EmitMovRegImm64(addrScratch, uint64(instr.Operand))
		sec.EmitAdd(addrScratch, RegY)
	}
	sec.EmitAluImm32(asm.AluAnd, addrScratch, ramMask)
	sec.EmitAdd(addrScratch, RegRAMBase)
}

// emitStackAddr computes ramBase+0x100+S into addrScratch, the stack
// page's address for the current value of S. Stack push/pull is
// always fast-path: the stack page is guaranteed RAM-resident by
// construction, never routed through the host call bridge.
func emitStackAddr(sec *asm.Section) {
	sec.EmitMovRegImm64(addrScratch, 0x0100)
	sec.EmitAdd(addrScratch, RegS)
	sec.EmitAluImm32(asm.AluAnd, addrScratch, ramMask)
	sec.EmitAdd(addrScratch, RegRAMBase)
}

// resolveAddress computes instr's raw 16-bit effective address into
// addrScratch, with no RAM-mirror mask or base pointer applied — the
// form the slow path's host call needs, since the mask/base only make
// sense once an address is known to land inside the RAM window.
// IndX/IndY additionally need a pointer fetched out of zero page
// before the final address is known, which is itself a memory read
// and so always goes through emitSlowPointerFetch16.
func (t *Translator) resolveAddress(sec *asm.Section, instr instructions.Instruction) {
	switch instr.AddressingMode {
	case instructions.Abs:
		sec.EmitMovRegImm64(addrScratch, uint64(instr.Operand))
	case instructions.AbsX:
		sec.EmitMovRegImm64(addrScratch, uint64(instr.Operand))
		sec.EmitAdd(addrScratch, RegX)
		sec.EmitAluImm32(asm.AluAnd, addrScratch, 0xFFFF)
	case instructions.AbsY:
		sec.EmitMovRegImm64(addrScratch, uint64(instr.Operand))
		sec.EmitAdd(addrScratch, RegY)
		sec.EmitAluImm32(asm.AluAnd, addrScratch, 0xFFFF)
	case instructions.IndX:
		sec.EmitMovRegImm64(addrScratch, uint64(instr.Operand&0xFF))
		sec.EmitAdd(addrScratch, RegX)
		sec.EmitAluImm32(asm.AluAnd, addrScratch, 0xFF)
		t.emitSlowPointerFetch16(sec)
	case instructions.IndY:
		sec.EmitMovRegImm64(addrScratch, uint64(instr.Operand&0xFF))
		t.emitSlowPointerFetch16(sec)
		sec.EmitAdd(addrScratch, RegY)
		sec.EmitAluImm32(asm.AluAnd, addrScratch, 0xFFFF)
	}
}

// emitSlowPointerFetch16 replaces a zero-page pointer address held in
// addrScratch with the 16-bit value stored there, preserving the
// 6502's zero-page pointer wraparound (the high byte wraps within page
// zero, never carrying into page one). The host bridge only exposes
// memRead/memWrite (spec's Memory Translator names exactly those two),
// so this decomposes into two single-byte reads rather than one
// 16-bit read.
func (t *Translator) emitSlowPointerFetch16(sec *asm.Section) {
	sec.EmitPush(addrScratch) // stash the pointer's zero-page address

	t.emitHostCall(sec, "memRead") // addrScratch <- low byte
	sec.EmitPush(addrScratch)      // stash the low byte

	sec.EmitPop(valueScratch) // valueScratch = low byte
	sec.EmitPop(addrScratch)  // addrScratch = pointer address again
	sec.EmitAluImm32(asm.AluAdd, addrScratch, 1)
	sec.EmitAluImm32(asm.AluAnd, addrScratch, 0xFF) // zero-page wrap
	sec.EmitPush(valueScratch)                      // re-stash the low byte across the next call

	t.emitHostCall(sec, "memRead") // addrScratch <- high byte
	sec.EmitShl(addrScratch, 8)
	sec.EmitPop(valueScratch)
	sec.EmitAdd(addrScratch, valueScratch) // combine into the final 16-bit address
}

// callSaved lists the fixed 6502-state registers a host call must
// leave intact. RegS (R14) is handled separately inside the bridge's
// own trampolines, since Go's ABI reserves R14 for the goroutine
// pointer and the trampoline must restore the real one before calling
// into Go; RDI/RAX/RDX are the call's own argument/result registers
// and are never relied on to survive it.
var callSaved = []asm.Reg{RegA, RegX, RegY, RegP, RegCycles, RegRAMBase}

// emitHostCall saves every live 6502-state register, rematerialises
// t.handle into RDI (the Core pointer hostMemRead/hostMemWrite cast
// back from an unsafe.Pointer), calls the named bridge trampoline —
// "memRead" or "memWrite", resolved through the Linker's symbol
// registry — and restores the saved registers. memRead's result comes
// back in addrScratch; memWrite takes its value in valueScratch and
// returns nothing.
func (t *Translator) emitHostCall(sec *asm.Section, symbol string) {
	for _, r := range callSaved {
		sec.EmitPush(r)
	}
	sec.EmitMovRegImm64(asm.RDI, uint64(t.handle))
	// The trampolines live in the Go binary, outside rel32 reach of
	// jitmem's pages, so the call goes through their absolute address.
	sec.Code = append(sec.Code, 0x49, 0xBB) // mov r11, imm64
	sec.EmitSymbolRefAbs(symbol, 8)
	sec.EmitCallAbs(asm.R11)
	for i := len(callSaved) - 1; i >= 0; i-- {
		sec.EmitPop(callSaved[i])
	}
}

// readMemory loads instr's effective byte into dst. Zero page is
// always RAM-resident and takes the fast path unconditionally;
// Abs/AbsX/AbsY take the fast path when eligible proves the address
// stays in RAM and the slow host-call path otherwise; Ind/IndX/IndY
// always take the slow path, since resolving their pointer already
// needs one.
func (t *Translator) readMemory(sec *asm.Section, instr instructions.Instruction, dst asm.Reg) {
	switch instr.AddressingMode {
	case instructions.Zp, instructions.ZpX, instructions.ZpY:
		emitEffectiveAddr(sec, instr)
		sec.EmitLoadByteMem(dst, addrScratch)
		return
	}
	if eligible(instr) {
		emitEffectiveAddr(sec, instr)
		sec.EmitLoadByteMem(dst, addrScratch)
		return
	}
	t.resolveAddress(sec, instr)
	t.emitHostCall(sec, "memRead")
	if dst != addrScratch {
		sec.EmitMovByteRegReg(dst, addrScratch)
	}
}

// writeMemory stores src to instr's effective address, taking the
// fast or slow path by the same rule as readMemory.
func (t *Translator) writeMemory(sec *asm.Section, instr instructions.Instruction, src asm.Reg) {
	switch instr.AddressingMode {
	case instructions.Zp, instructions.ZpX, instructions.ZpY:
		emitEffectiveAddr(sec, instr)
		sec.EmitStoreByteMem(addrScratch, src)
		return
	}
	if eligible(instr) {
		emitEffectiveAddr(sec, instr)
		sec.EmitStoreByteMem(addrScratch, src)
		return
	}
	t.resolveAddress(sec, instr)
	if src != valueScratch {
		sec.EmitMovByteRegReg(valueScratch, src)
	}
	t.emitHostCall(sec, "memWrite")
}

// emitLoadRhs loads instr's operand into rhsScratch: the literal for
// Imm, or a memory fetch (fast or slow) for every other mode.
func (t *Translator) emitLoadRhs(sec *asm.Section, instr instructions.Instruction) {
	if instr.AddressingMode == instructions.Imm {
		sec.EmitMovByteRegImm8(rhsScratch, uint8(instr.Operand))
		return
	}
	t.readMemory(sec, instr, rhsScratch)
}

// applyNZ recomputes P's Zero and Sign bits from value's current
// 8-bit contents. It clobbers RAX and RCX; callers must not rely on
// either still holding something live afterwards.
func applyNZ(sec *asm.Section, value asm.Reg) {
	sec.EmitTestByte(value, value)
	sec.EmitSetcc(asm.CondE, asm.RAX)
	sec.EmitSetcc(asm.CondS, asm.RCX)
	sec.EmitShlByte(asm.RAX, 1) // Zero -> bit 1
	sec.EmitShlByte(asm.RCX, 7) // Sign -> bit 7
	sec.EmitAluImm8(asm.AluAnd, RegP, ^(registers.FlagZero | registers.FlagSign))
	sec.EmitOrByte(RegP, asm.RAX)
	sec.EmitOrByte(RegP, asm.RCX)
}

func (t *Translator) emitBody(sec *asm.Section, instr instructions.Instruction) error {
	switch instr.Command {
	case instructions.LDA:
		t.emitLoad(sec, instr, RegA)
	case instructions.LDX:
		t.emitLoad(sec, instr, RegX)
	case instructions.LDY:
		t.emitLoad(sec, instr, RegY)
	case instructions.STA:
		t.emitStore(sec, instr, RegA)
	case instructions.STX:
		t.emitStore(sec, instr, RegX)
	case instructions.STY:
		t.emitStore(sec, instr, RegY)

	case instructions.ADC:
		t.emitAdcSbc(sec, instr, false)
	case instructions.SBC:
		t.emitAdcSbc(sec, instr, true)
	case instructions.CMP:
		t.emitCompare(sec, instr, RegA)
	case instructions.CPX:
		t.emitCompare(sec, instr, RegX)
	case instructions.CPY:
		t.emitCompare(sec, instr, RegY)
	case instructions.AND:
		t.emitLoadRhs(sec, instr)
		sec.EmitAndByte(RegA, rhsScratch)
		applyNZ(sec, RegA)
	case instructions.ORA:
		t.emitLoadRhs(sec, instr)
		sec.EmitOrByte(RegA, rhsScratch)
		applyNZ(sec, RegA)
	case instructions.EOR:
		t.emitLoadRhs(sec, instr)
		sec.EmitXorByte(RegA, rhsScratch)
		applyNZ(sec, RegA)
	case instructions.BIT:
		t.emitBit(sec, instr)

	case instructions.ASL:
		t.emitShiftRotate(sec, instr, func(s *asm.Section, r asm.Reg) { s.EmitShlByte(r, 1) })
	case instructions.LSR:
		t.emitShiftRotate(sec, instr, func(s *asm.Section, r asm.Reg) { s.EmitShrByte(r, 1) })
	case instructions.ROL:
		t.emitShiftRotate(sec, instr, func(s *asm.Section, r asm.Reg) {
			s.EmitBt(RegP, 0)
			s.EmitRclByte(r, 1)
		})
	case instructions.ROR:
		t.emitShiftRotate(sec, instr, func(s *asm.Section, r asm.Reg) {
			s.EmitBt(RegP, 0)
			s.EmitRcrByte(r, 1)
		})
	case instructions.INC:
		t.emitIncDecMem(sec, instr, true)
	case instructions.DEC:
		t.emitIncDecMem(sec, instr, false)

	case instructions.INX:
		sec.EmitIncByte(RegX)
		applyNZ(sec, RegX)
	case instructions.DEX:
		sec.EmitDecByte(RegX)
		applyNZ(sec, RegX)
	case instructions.INY:
		sec.EmitIncByte(RegY)
		applyNZ(sec, RegY)
	case instructions.DEY:
		sec.EmitDecByte(RegY)
		applyNZ(sec, RegY)
	case instructions.TAX:
		sec.EmitMovByteRegReg(RegX, RegA)
		applyNZ(sec, RegX)
	case instructions.TAY:
		sec.EmitMovByteRegReg(RegY, RegA)
		applyNZ(sec, RegY)
	case instructions.TXA:
		sec.EmitMovByteRegReg(RegA, RegX)
		applyNZ(sec, RegA)
	case instructions.TYA:
		sec.EmitMovByteRegReg(RegA, RegY)
		applyNZ(sec, RegA)
	case instructions.TSX:
		sec.EmitMovByteRegReg(RegX, RegS)
		applyNZ(sec, RegX)
	case instructions.TXS:
		sec.EmitMovByteRegReg(RegS, RegX)

	case instructions.PHA:
		emitStackAddr(sec)
		sec.EmitStoreByteMem(addrScratch, RegA)
		sec.EmitDecByte(RegS)
	case instructions.PLA:
		sec.EmitIncByte(RegS)
		emitStackAddr(sec)
		sec.EmitLoadByteMem(RegA, addrScratch)
		applyNZ(sec, RegA)
	case instructions.PHP:
		emitStackAddr(sec)
		sec.EmitMovByteRegReg(rhsScratch, RegP)
		sec.EmitAluImm8(asm.AluOr, rhsScratch, registers.FlagBreak|registers.FlagUnused)
		sec.EmitStoreByteMem(addrScratch, rhsScratch)
		sec.EmitDecByte(RegS)
	case instructions.PLP:
		sec.EmitIncByte(RegS)
		emitStackAddr(sec)
		sec.EmitLoadByteMem(RegP, addrScratch)
		sec.EmitAluImm8(asm.AluOr, RegP, registers.FlagUnused)

	case instructions.CLC:
		sec.EmitAluImm8(asm.AluAnd, RegP, ^registers.FlagCarry)
	case instructions.SEC:
		sec.EmitAluImm8(asm.AluOr, RegP, registers.FlagCarry)
	case instructions.CLD:
		sec.EmitAluImm8(asm.AluAnd, RegP, ^registers.FlagDecimal)
	case instructions.SED:
		sec.EmitAluImm8(asm.AluOr, RegP, registers.FlagDecimal)
	case instructions.CLI:
		sec.EmitAluImm8(asm.AluAnd, RegP, ^registers.FlagInterruptDisable)
	case instructions.SEI:
		sec.EmitAluImm8(asm.AluOr, RegP, registers.FlagInterruptDisable)
	case instructions.CLV:
		sec.EmitAluImm8(asm.AluAnd, RegP, ^registers.FlagOverflow)
	case instructions.NOP:
		// nothing to emit

	case instructions.JMP:
		emitJmp(sec, instr)
	case instructions.JSR:
		emitJsr(sec, instr)
	case instructions.RTS:
		emitRts(sec)
	case instructions.BRK:
		emitExit(sec, instr.NextAddress(), registers.Break)
	case instructions.Unknown:
		emitExit(sec, instr.Address, registers.UnknownInstruction)

	default:
		return fmt.Errorf("translate: %s has no native lowering", instr.Command)
	}
	return nil
}

func (t *Translator) emitLoad(sec *asm.Section, instr instructions.Instruction, dst asm.Reg) {
	if instr.AddressingMode == instructions.Imm {
		sec.EmitMovByteRegImm8(dst, uint8(instr.Operand))
	} else {
		t.readMemory(sec, instr, dst)
	}
	applyNZ(sec, dst)
}

func (t *Translator) emitStore(sec *asm.Section, instr instructions.Instruction, src asm.Reg) {
	t.writeMemory(sec, instr, src)
}

// emitAdcSbc implements ADC, and SBC by XOR-ing the operand with 0xFF
// first, mirroring cores/transpiler/host.go's sbc(p,a,rhs) ==
// adc(p,a,rhs^0xFF). The host ADC instruction's own CF/OF/SF/ZF are,
// for an 8-bit operation, exactly the 6502's new C/V/N/Z — no manual
// overflow computation is needed, only a BT beforehand to load the
// carry-in and four SETcc afterwards to read the results back out,
// none of which disturb the flags ADC just left behind.
func (t *Translator) emitAdcSbc(sec *asm.Section, instr instructions.Instruction, subtract bool) {
	t.emitLoadRhs(sec, instr)
	if subtract {
		sec.EmitAluImm8(asm.AluXor, rhsScratch, 0xFF)
	}

	sec.EmitBt(RegP, 0)
	sec.EmitAdcByte(RegA, rhsScratch)

	const c, v, n, z = asm.R8, asm.R9, asm.R10, asm.R11
	sec.EmitSetcc(asm.CondB, c)
	sec.EmitSetcc(asm.CondO, v)
	sec.EmitSetcc(asm.CondS, n)
	sec.EmitSetcc(asm.CondE, z)

	mask := ^(registers.FlagCarry | registers.FlagOverflow | registers.FlagSign | registers.FlagZero)
	sec.EmitAluImm8(asm.AluAnd, RegP, mask)
	sec.EmitShlByte(v, 6)
	sec.EmitShlByte(n, 7)
	sec.EmitShlByte(z, 1)
	sec.EmitOrByte(RegP, c)
	sec.EmitOrByte(RegP, v)
	sec.EmitOrByte(RegP, n)
	sec.EmitOrByte(RegP, z)
}

// emitCompare implements CMP/CPX/CPY: host CMP leaves SF/ZF matching
// reg-rhs directly, and CondAE (not-carry, i.e. no borrow) is exactly
// the 6502's "reg >= rhs" carry rule.
func (t *Translator) emitCompare(sec *asm.Section, instr instructions.Instruction, reg asm.Reg) {
	t.emitLoadRhs(sec, instr)
	sec.EmitCmpByte(reg, rhsScratch)

	const c, n, z = asm.R8, asm.R10, asm.R11
	sec.EmitSetcc(asm.CondAE, c)
	sec.EmitSetcc(asm.CondS, n)
	sec.EmitSetcc(asm.CondE, z)

	mask := ^(registers.FlagCarry | registers.FlagSign | registers.FlagZero)
	sec.EmitAluImm8(asm.AluAnd, RegP, mask)
	sec.EmitShlByte(n, 7)
	sec.EmitShlByte(z, 1)
	sec.EmitOrByte(RegP, c)
	sec.EmitOrByte(RegP, n)
	sec.EmitOrByte(RegP, z)
}

func (t *Translator) emitBit(sec *asm.Section, instr instructions.Instruction) {
	t.emitLoadRhs(sec, instr)

	sec.EmitMovByteRegReg(asm.RAX, RegA)
	sec.EmitAndByte(asm.RAX, rhsScratch) // ZF <- (A & rhs) == 0

	const n, v, z = asm.R8, asm.R9, asm.R10
	sec.EmitSetcc(asm.CondE, z)
	sec.EmitBt(rhsScratch, 7)
	sec.EmitSetcc(asm.CondB, n)
	sec.EmitBt(rhsScratch, 6)
	sec.EmitSetcc(asm.CondB, v)

	mask := ^(registers.FlagSign | registers.FlagOverflow | registers.FlagZero)
	sec.EmitAluImm8(asm.AluAnd, RegP, mask)
	sec.EmitShlByte(n, 7)
	sec.EmitShlByte(v, 6)
	sec.EmitShlByte(z, 1)
	sec.EmitOrByte(RegP, n)
	sec.EmitOrByte(RegP, v)
	sec.EmitOrByte(RegP, z)
}

// emitShiftRotate implements ASL/LSR/ROL/ROR for both Acc and memory
// addressing: op is expected to shift-or-rotate-by-one r, leaving the
// host carry flag as the new 6502 carry, exactly as x86 guarantees for
// any 1-bit shift or rotate. applyNZ and the carry merge both run
// before the memory store-back (fast or slow): applyNZ needs target's
// shifted value intact, and a slow store-back's host call is free to
// clobber anything not explicitly saved, so nothing can still be
// needed out of target or the carry capture once that call happens.
func (t *Translator) emitShiftRotate(sec *asm.Section, instr instructions.Instruction, op func(*asm.Section, asm.Reg)) {
	target := RegA
	if instr.AddressingMode != instructions.Acc {
		t.readMemory(sec, instr, valueScratch)
		target = valueScratch
	}

	op(sec, target)
	const carry = asm.R8
	sec.EmitSetcc(asm.CondB, carry)

	applyNZ(sec, target)
	sec.EmitAluImm8(asm.AluAnd, RegP, ^registers.FlagCarry)
	sec.EmitOrByte(RegP, carry)

	if instr.AddressingMode != instructions.Acc {
		t.writeMemory(sec, instr, target)
	}
}

func (t *Translator) emitIncDecMem(sec *asm.Section, instr instructions.Instruction, increment bool) {
	t.readMemory(sec, instr, valueScratch)
	if increment {
		sec.EmitIncByte(valueScratch)
	} else {
		sec.EmitDecByte(valueScratch)
	}
	applyNZ(sec, valueScratch)
	t.writeMemory(sec, instr, valueScratch)
}

// emitJmp exploits JMP Abs's target being a translate-time constant
// (indirect JMP is never fast-path eligible) to decide the self-jump
// upgrade at compile time rather than with the runtime PC==own_addr
// check a variable target would need.
func emitJmp(sec *asm.Section, instr instructions.Instruction) {
	reason := registers.Jump
	if instr.Operand == instr.Address {
		reason = registers.InfiniteLoop
	}
	emitExit(sec, instr.Operand, reason)
}

func emitJsr(sec *asm.Section, instr instructions.Instruction) {
	ret := instr.NextAddress() - 1
	pushByte := func(v uint8) {
		emitStackAddr(sec)
		sec.EmitMovByteRegImm8(rhsScratch, v)
		sec.EmitStoreByteMem(addrScratch, rhsScratch)
		sec.EmitDecByte(RegS)
	}
	pushByte(uint8(ret >> 8))
	pushByte(uint8(ret))
	emitExit(sec, instr.Operand, registers.Jump)
}

func emitRts(sec *asm.Section) {
	const lo, hi = asm.RCX, asm.RDX

	sec.EmitIncByte(RegS)
	emitStackAddr(sec)
	sec.EmitLoadByteMem(lo, addrScratch)
	sec.EmitAluImm32(asm.AluAnd, lo, 0xFF)

	sec.EmitIncByte(RegS)
	emitStackAddr(sec)
	sec.EmitLoadByteMem(hi, addrScratch)
	sec.EmitAluImm32(asm.AluAnd, hi, 0xFF)

	sec.EmitMovRegReg(asm.RAX, hi)
	sec.EmitShl(asm.RAX, 8)
	sec.EmitAdd(asm.RAX, lo)
	sec.EmitAluImm32(asm.AluAdd, asm.RAX, 1)
	sec.EmitMovRegImm64(asm.RCX, uint64(registers.Return))
	sec.EmitRet()
}

// emitExit places pc in AX and reason in CX, the convention invoke
// reads back out of after its CALL, and returns.
func emitExit(sec *asm.Section, pc uint16, reason registers.ExitReason) {
	sec.EmitMovRegImm64(asm.RAX, uint64(pc))
	sec.EmitMovRegImm64(asm.RCX, uint64(reason))
	sec.EmitRet()
}
