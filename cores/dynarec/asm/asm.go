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

// Package asm is the native x86-64 assembler and encoder: high-level
// emitters that write opcodes, REX prefixes and ModR/M bytes into named
// Sections, recording a Reference wherever an operand needs a label the
// linker resolves once every section has a final address.
package asm

import "fmt"

// Reg names a general-purpose register by its canonical 64-bit alias
// (RAX=0, RCX=1, RDX=2, RBX=3, RSP=4, RBP=5, RSI=6, RDI=7, R8..R15=8..15),
// plus the four legacy high-byte names (AH/CH/DH/BH) that only exist
// without a REX prefix.
type Reg uint8

const (
	RAX Reg = 0
	RCX Reg = 1
	RDX Reg = 2
	RBX Reg = 3
	RSP Reg = 4
	RBP Reg = 5
	RSI Reg = 6
	RDI Reg = 7
	R8  Reg = 8
	R9  Reg = 9
	R10 Reg = 10
	R11 Reg = 11
	R12 Reg = 12
	R13 Reg = 13
	R14 Reg = 14
	R15 Reg = 15

	// AH/CH/DH/BH address the high byte of RAX/RCX/RDX/RBX's low 16
	// bits. A REX prefix repurposes this exact 3-bit ModR/M encoding
	// for SPL/BPL/SIL/DIL instead, so the two namings can never
	// appear together in one instruction — see requiresREX and
	// legacyHighByte.
	AH Reg = 16
	CH Reg = 17
	DH Reg = 18
	BH Reg = 19
)

// requiresREX reports whether r can only be encoded with a REX prefix
// present, per §4.5: SPL/BPL/SIL/DIL (the low-byte names of RSP/RBP/RSI/RDI)
// and every R8-R15 register.
func requiresREX(r Reg, byteWidth bool) bool {
	if r >= R8 && r <= R15 {
		return true
	}
	return byteWidth && (r == RSP || r == RBP || r == RSI || r == RDI)
}

// legacyHighByte reports whether r is one of the AH/CH/DH/BH names
// that collide with a REX prefix's SPL/BPL/SIL/DIL encoding.
func legacyHighByte(r Reg) bool { return r >= AH && r <= BH }

// highByteField returns r's 3-bit ModR/M field for the legacy
// high-byte encoding, distinct from its ordinal position in Reg.
func highByteField(r Reg) byte {
	switch r {
	case AH:
		return 4
	case CH:
		return 5
	case DH:
		return 6
	case BH:
		return 7
	default:
		return 0
	}
}

func rexByte(w, r, x, b bool) byte {
	rex := byte(0x40)
	if w {
		rex |= 0x08
	}
	if r {
		rex |= 0x04
	}
	if x {
		rex |= 0x02
	}
	if b {
		rex |= 0x01
	}
	return rex
}

func modrm(mod, reg, rm byte) byte {
	return (mod << 6) | ((reg & 7) << 3) | (rm & 7)
}

// RefKind distinguishes a PC-relative displacement from an absolute
// pointer value written into a Reference's byte range.
type RefKind uint8

const (
	RefRelative RefKind = iota
	RefAbsolute
)

// Reference names a label (another Section's name, or a symbol the
// Linker's symbol registry resolves) that an emitted operand needs
// filled in once final addresses are known. Offset is where the value
// starts within the Section's bytes; Size is how many bytes to write;
// Base is the offset of the instruction's own end, used to compute a
// PC-relative displacement (target - (section_base + Base)). Base == 0
// means the Reference is absolute, matching §4.6's "reference.base > 0"
// test.
type Reference struct {
	Name   string
	Offset int
	Size   int
	Base   int
	Kind   RefKind
}

// Section is one named, independently relocatable stretch of machine
// code: an instruction's emitted bytes, or a whole function body once
// the FunctionTranslator concatenates its instruction sections.
type Section struct {
	Name       string
	Code       []byte
	References []Reference
}

// NewSection returns an empty, named Section ready for emission.
func NewSection(name string) *Section {
	return &Section{Name: name}
}

func (s *Section) emit(b ...byte) {
	s.Code = append(s.Code, b...)
}

func (s *Section) ref(name string, size int, relative bool) {
	kind := RefAbsolute
	base := 0
	if relative {
		kind = RefRelative
		base = len(s.Code) + size
	}
	s.References = append(s.References, Reference{
		Name: name, Offset: len(s.Code), Size: size, Base: base, Kind: kind,
	})
	for i := 0; i < size; i++ {
		s.Code = append(s.Code, 0)
	}
}

// regFields splits a register into the single REX-extension bit and the
// 3-bit ModR/M field, the split every encoding below needs for both the
// reg and the rm operand.
func regFields(r Reg) (ext bool, field byte) {
	return r >= R8, byte(r) & 7
}

// EmitMovRegImm64 emits `mov reg, imm64` (REX.W B8+r id64).
func (s *Section) EmitMovRegImm64(dst Reg, imm uint64) {
	ext, field := regFields(dst)
	s.emit(rexByte(true, false, false, ext), 0xB8+field)
	for i := 0; i < 8; i++ {
		s.emit(byte(imm >> (8 * i)))
	}
}

// EmitMovRegReg emits `mov dst, src` (REX.W 89 /r) for full 64-bit regs.
func (s *Section) EmitMovRegReg(dst, src Reg) {
	dext, dfield := regFields(dst)
	sext, sfield := regFields(src)
	s.emit(rexByte(true, sext, false, dext), 0x89, modrm(3, sfield, dfield))
}

// EmitMovByteRegReg emits `mov dst8, src8` (88 /r), the low byte of
// each register. Only the AL/BL/CL/DL/SPL/BPL/SIL/DIL/R8B-R15B naming
// is addressed here — the legacy AH/BH/CH/DH high-byte names never
// appear in this translator's fixed register assignment, so the
// REX-prefix clash §4.5 calls out never arises.
func (s *Section) EmitMovByteRegReg(dst, src Reg) {
	needREX := requiresREX(dst, true) || requiresREX(src, true)
	dext, dfield := regFields(dst)
	sext, sfield := regFields(src)
	if needREX {
		s.emit(rexByte(false, sext, false, dext))
	}
	s.emit(0x88, modrm(3, sfield, dfield))
}

func (s *Section) aluRegReg(opcode byte, dst, src Reg, w bool) {
	dext, dfield := regFields(dst)
	sext, sfield := regFields(src)
	s.emit(rexByte(w, sext, false, dext), opcode, modrm(3, sfield, dfield))
}

// EmitAdd emits `add dst, src` (REX.W 01 /r).
func (s *Section) EmitAdd(dst, src Reg) { s.aluRegReg(0x01, dst, src, true) }

// EmitSub emits `sub dst, src` (REX.W 29 /r).
func (s *Section) EmitSub(dst, src Reg) { s.aluRegReg(0x29, dst, src, true) }

// EmitAnd emits `and dst, src` (REX.W 21 /r).
func (s *Section) EmitAnd(dst, src Reg) { s.aluRegReg(0x21, dst, src, true) }

// EmitOr emits `or dst, src` (REX.W 09 /r).
func (s *Section) EmitOr(dst, src Reg) { s.aluRegReg(0x09, dst, src, true) }

// EmitXor emits `xor dst, src` (REX.W 31 /r).
func (s *Section) EmitXor(dst, src Reg) { s.aluRegReg(0x31, dst, src, true) }

// EmitCmp emits `cmp lhs, rhs` (REX.W 39 /r), left-hand side unmodified.
func (s *Section) EmitCmp(lhs, rhs Reg) { s.aluRegReg(0x39, lhs, rhs, true) }

// EmitTest emits `test a, b` (REX.W 85 /r).
func (s *Section) EmitTest(a, b Reg) { s.aluRegReg(0x85, a, b, true) }

// EmitShl emits `shl reg, imm8` (REX.W C1 /4 ib).
func (s *Section) EmitShl(r Reg, imm uint8) { s.shiftImm(0x04, r, imm) }

// EmitShr emits `shr reg, imm8` (REX.W C1 /5 ib).
func (s *Section) EmitShr(r Reg, imm uint8) { s.shiftImm(0x05, r, imm) }

// EmitRol emits `rol reg, imm8` (REX.W C1 /0 ib).
func (s *Section) EmitRol(r Reg, imm uint8) { s.shiftImm(0x00, r, imm) }

// EmitRor emits `ror reg, imm8` (REX.W C1 /1 ib).
func (s *Section) EmitRor(r Reg, imm uint8) { s.shiftImm(0x01, r, imm) }

// EmitRcl emits `rcl reg, imm8` (REX.W C1 /2 ib).
func (s *Section) EmitRcl(r Reg, imm uint8) { s.shiftImm(0x02, r, imm) }

// EmitRcr emits `rcr reg, imm8` (REX.W C1 /3 ib).
func (s *Section) EmitRcr(r Reg, imm uint8) { s.shiftImm(0x03, r, imm) }

func (s *Section) shiftImm(field byte, r Reg, imm uint8) {
	ext, rfield := regFields(r)
	s.emit(rexByte(true, false, false, ext), 0xC1, modrm(3, field, rfield), imm)
}

// EmitInc emits `inc reg` (REX.W FF /0).
func (s *Section) EmitInc(r Reg) { s.incDec(0x00, r) }

// EmitDec emits `dec reg` (REX.W FF /1).
func (s *Section) EmitDec(r Reg) { s.incDec(0x01, r) }

func (s *Section) incDec(field byte, r Reg) {
	ext, rfield := regFields(r)
	s.emit(rexByte(true, false, false, ext), 0xFF, modrm(3, field, rfield))
}

// EmitBt emits `bt reg, imm8` (REX.W 0F BA /4 ib), testing a single bit
// without modifying reg.
func (s *Section) EmitBt(r Reg, bit uint8) {
	ext, rfield := regFields(r)
	s.emit(rexByte(true, false, false, ext), 0x0F, 0xBA, modrm(3, 0x04, rfield), bit)
}

// Cond is an x86 condition code, used by Jcc and Setcc.
type Cond uint8

const (
	CondO  Cond = 0x0 // overflow
	CondNO Cond = 0x1
	CondB  Cond = 0x2 // below / carry
	CondAE Cond = 0x3 // above-or-equal / not carry
	CondE  Cond = 0x4 // equal / zero
	CondNE Cond = 0x5
	CondS  Cond = 0x8 // sign / negative
	CondNS Cond = 0x9
	CondL  Cond = 0xC // signed less-than
	CondGE Cond = 0xD
	CondLE Cond = 0xE
	CondG  Cond = 0xF
)

// EmitSetcc emits `setcc reg8` (0F 9x /r), storing the flag test into
// the low byte of reg as 0 or 1.
func (s *Section) EmitSetcc(cond Cond, r Reg) {
	ext, rfield := regFields(r)
	if ext {
		s.emit(rexByte(false, false, false, ext))
	}
	s.emit(0x0F, 0x90+byte(cond), modrm(3, 0, rfield))
}

// EmitPush emits `push reg` (50+r, REX.B if needed).
func (s *Section) EmitPush(r Reg) {
	ext, field := regFields(r)
	if ext {
		s.emit(rexByte(false, false, false, ext))
	}
	s.emit(0x50 + field)
}

// EmitPop emits `pop reg` (58+r, REX.B if needed).
func (s *Section) EmitPop(r Reg) {
	ext, field := regFields(r)
	if ext {
		s.emit(rexByte(false, false, false, ext))
	}
	s.emit(0x58 + field)
}

// EmitRet emits `ret` (C3).
func (s *Section) EmitRet() { s.emit(0xC3) }

// EmitEnter emits the standard `push rbp; mov rbp, rsp` prologue.
func (s *Section) EmitEnter() {
	s.EmitPush(RBP)
	s.EmitMovRegReg(RBP, RSP)
}

// EmitLeave emits `leave` (C9): `mov rsp, rbp; pop rbp`.
func (s *Section) EmitLeave() { s.emit(0xC9) }

// EmitCallLabel emits a near `call rel32` (E8 id) to a named label,
// recording a relative Reference the Linker fills in once the target's
// final address is known.
func (s *Section) EmitCallLabel(name string) {
	s.emit(0xE8)
	s.ref(name, 4, true)
}

// EmitCallAbs emits an indirect `call reg` against a register loaded
// beforehand (FF /2), used to call a fixed host helper whose address
// was resolved once and is not itself label-addressable.
func (s *Section) EmitCallAbs(r Reg) {
	ext, field := regFields(r)
	if ext {
		s.emit(rexByte(false, false, false, ext))
	}
	s.emit(0xFF, modrm(3, 0x02, field))
}

// EmitJmpLabel emits a near unconditional `jmp rel32` (E9 id) to name.
func (s *Section) EmitJmpLabel(name string) {
	s.emit(0xE9)
	s.ref(name, 4, true)
}

// EmitJcc emits a near conditional `jcc rel32` (0F 8x id) to name.
func (s *Section) EmitJcc(cond Cond, name string) {
	s.emit(0x0F, 0x80+byte(cond))
	s.ref(name, 4, true)
}

// EmitLeaLabel emits `lea reg, [rip+disp32]` (REX.W 8D /r, mod=00 rm=101)
// loading the absolute address of a label into reg, used to materialise
// a host helper's resolved address before EmitCallAbs.
func (s *Section) EmitLeaLabel(dst Reg, name string) {
	ext, field := regFields(dst)
	s.emit(rexByte(true, false, false, ext), 0x8D, modrm(0, field, 0x05))
	s.ref(name, 4, true)
}

// EmitSymbolRefAbs appends an 8-byte absolute Reference, used for
// wiring a host helper's raw address in directly rather than loading it
// relative to RIP (e.g. into a jump table slot a CALL Abs then reads
// back out of memory).
func (s *Section) EmitSymbolRefAbs(name string, size int) {
	s.ref(name, size, false)
}

// --- byte-width forms, used throughout the instruction translator for
// operating on a 6502 register's value without disturbing the rest of
// its host register (every host register holding a 6502 byte value is
// kept zero-extended, so an 8-bit op leaves that invariant intact).

func (s *Section) aluByteRegReg(opcode32 byte, dst, src Reg) {
	dext, dfield := regFields(dst)
	sext, sfield := regFields(src)
	if dext || sext {
		s.emit(rexByte(false, sext, false, dext))
	}
	s.emit(opcode32-1, modrm(3, sfield, dfield))
}

// EmitAddByte emits `add dst8, src8` (00 /r).
func (s *Section) EmitAddByte(dst, src Reg) { s.aluByteRegReg(0x01, dst, src) }

// EmitOrByte emits `or dst8, src8` (08 /r).
func (s *Section) EmitOrByte(dst, src Reg) { s.aluByteRegReg(0x09, dst, src) }

// EmitAdcByte emits `adc dst8, src8` (10 /r), consuming the host carry
// flag — paired with EmitBt against the guest carry bit, this replays
// 6502 ADC's carry-in using the host ALU's own carry chain.
func (s *Section) EmitAdcByte(dst, src Reg) { s.aluByteRegReg(0x11, dst, src) }

// EmitAndByte emits `and dst8, src8` (20 /r).
func (s *Section) EmitAndByte(dst, src Reg) { s.aluByteRegReg(0x21, dst, src) }

// EmitSubByte emits `sub dst8, src8` (28 /r).
func (s *Section) EmitSubByte(dst, src Reg) { s.aluByteRegReg(0x29, dst, src) }

// EmitXorByte emits `xor dst8, src8` (30 /r).
func (s *Section) EmitXorByte(dst, src Reg) { s.aluByteRegReg(0x31, dst, src) }

// EmitCmpByte emits `cmp lhs8, rhs8` (38 /r).
func (s *Section) EmitCmpByte(lhs, rhs Reg) { s.aluByteRegReg(0x39, lhs, rhs) }

// EmitTestByte emits `test a8, b8` (84 /r): ZF/SF come out set from
// exactly the tested byte, unlike a full-width TEST on a zero-extended
// register, which would only get ZF right.
func (s *Section) EmitTestByte(a, b Reg) { s.aluByteRegReg(0x85, a, b) }

// aluImm8 field values for EmitAluImm8, matching the 80 /r ib encoding.
const (
	AluAdd = 0x00
	AluOr  = 0x01
	AluAdc = 0x02
	AluSbb = 0x03
	AluAnd = 0x04
	AluSub = 0x05
	AluXor = 0x06
	AluCmp = 0x07
)

// EmitAluImm8 emits an 8-bit ALU op against an immediate (80 /field ib).
func (s *Section) EmitAluImm8(field byte, dst Reg, imm uint8) {
	ext, dfield := regFields(dst)
	if ext {
		s.emit(rexByte(false, false, false, ext))
	}
	s.emit(0x80, modrm(3, field, dfield), imm)
}

// EmitAluImm32 emits a 64-bit-register ALU op against a sign-extended
// 32-bit immediate (REX.W 81 /field id), using the same field numbering
// as EmitAluImm8. Used for cycle-count bookkeeping held in a full
// 64-bit register.
func (s *Section) EmitAluImm32(field byte, dst Reg, imm uint32) {
	ext, dfield := regFields(dst)
	s.emit(rexByte(true, false, false, ext), 0x81, modrm(3, field, dfield))
	for i := 0; i < 4; i++ {
		s.emit(byte(imm >> (8 * i)))
	}
}

// EmitIncByte emits `inc reg8` (FE /0).
func (s *Section) EmitIncByte(r Reg) { s.incDecByte(0x00, r) }

// EmitDecByte emits `dec reg8` (FE /1).
func (s *Section) EmitDecByte(r Reg) { s.incDecByte(0x01, r) }

func (s *Section) incDecByte(field byte, r Reg) {
	ext, rfield := regFields(r)
	if ext {
		s.emit(rexByte(false, false, false, ext))
	}
	s.emit(0xFE, modrm(3, field, rfield))
}

// EmitShlByte emits `shl reg8, imm8` (C0 /4 ib).
func (s *Section) EmitShlByte(r Reg, imm uint8) { s.shiftImm8(0x04, r, imm) }

// EmitShrByte emits `shr reg8, imm8` (C0 /5 ib).
func (s *Section) EmitShrByte(r Reg, imm uint8) { s.shiftImm8(0x05, r, imm) }

// EmitRolByte emits `rol reg8, imm8` (C0 /0 ib).
func (s *Section) EmitRolByte(r Reg, imm uint8) { s.shiftImm8(0x00, r, imm) }

// EmitRorByte emits `ror reg8, imm8` (C0 /1 ib).
func (s *Section) EmitRorByte(r Reg, imm uint8) { s.shiftImm8(0x01, r, imm) }

// EmitRclByte emits `rcl reg8, imm8` (C0 /2 ib), consuming the host
// carry flag exactly as EmitAdcByte does.
func (s *Section) EmitRclByte(r Reg, imm uint8) { s.shiftImm8(0x02, r, imm) }

// EmitRcrByte emits `rcr reg8, imm8` (C0 /3 ib).
func (s *Section) EmitRcrByte(r Reg, imm uint8) { s.shiftImm8(0x03, r, imm) }

func (s *Section) shiftImm8(field byte, r Reg, imm uint8) {
	ext, rfield := regFields(r)
	if ext {
		s.emit(rexByte(false, false, false, ext))
	}
	s.emit(0xC0, modrm(3, field, rfield), imm)
}

// EmitMovByteRegImm8 emits `mov reg8, imm8` (B0+r ib).
func (s *Section) EmitMovByteRegImm8(dst Reg, imm uint8) {
	ext, field := regFields(dst)
	if ext {
		s.emit(rexByte(false, false, false, ext))
	}
	s.emit(0xB0+field, imm)
}

// EmitLoadByteMem emits `mov dst8, [addr]` (8A /r, mod=00, no SIB),
// register-indirect with no displacement. Callers must choose addr
// from RAX/RCX/RDX/RDI: those are the only four registers whose 3-bit
// ModR/M field neither collides with the SIB-escape encoding (field 4,
// RSP/R12) nor the RIP/disp32-only encoding (field 5, RBP/R13) in the
// mod=00, no-index form this emitter always uses.
func (s *Section) EmitLoadByteMem(dst, addr Reg) { s.memByte(0x8A, dst, addr) }

// EmitStoreByteMem emits `mov [addr], src8` (88 /r, mod=00, no SIB).
// Same addr-register restriction as EmitLoadByteMem.
func (s *Section) EmitStoreByteMem(addr, src Reg) { s.memByte(0x88, src, addr) }

func (s *Section) memByte(opcode byte, reg, addr Reg) {
	rext, rfield := regFields(reg)
	aext, afield := regFields(addr)
	if rext || aext {
		s.emit(rexByte(false, rext, false, aext))
	}
	s.emit(opcode, modrm(0, rfield, afield))
}

// Scale is a SIB index scale factor.
type Scale uint8

const (
	Scale1 Scale = 1
	Scale2 Scale = 2
	Scale4 Scale = 4
	Scale8 Scale = 8
)

func (sc Scale) bits() (byte, bool) {
	switch sc {
	case Scale1:
		return 0, true
	case Scale2:
		return 1, true
	case Scale4:
		return 2, true
	case Scale8:
		return 3, true
	default:
		return 0, false
	}
}

// Width selects an operand's size for the general MemReg encoders:
// Width8 never takes a 0x66 prefix, Width16 always does, Width64 sets
// REX.W. There is no Width32 name here because nothing in this package
// needs a default-32-bit operand independent of REX.W.
type Width uint8

const (
	Width8 Width = iota
	Width16
	Width64
)

// MemReg is a general memory operand: a base register, an optional
// scaled index (Scale one of 1/2/4/8), and a numeric and/or named
// (symbolic, 32-bit relocatable, resolved through the same Reference
// mechanism as a label) displacement. Deref false addresses Base
// itself as a register operand rather than dereferencing it, so the
// same value can stand in wherever an operand might be either a
// register or a memory location. Addr32 requests the 0x67 address-size
// override, for the rare case a base/index is meant to be read as a
// 32-bit address.
type MemReg struct {
	Base     Reg
	HasIndex bool
	Index    Reg
	Scale    Scale
	Disp     int32
	Symbol   string
	Addr32   bool
	Deref    bool
}

// validate checks the field combinations §4.5 requires this encoder to
// reject rather than silently mis-encode: an index's scale must be one
// of 1, 2, 4 or 8.
func (m MemReg) validate() error {
	if !m.Deref && m.HasIndex {
		return fmt.Errorf("asm: MemReg index/scale only apply when Deref is set")
	}
	if m.HasIndex {
		if _, ok := m.Scale.bits(); !ok {
			return fmt.Errorf("asm: MemReg index scale %d is not one of 1, 2, 4, 8", m.Scale)
		}
	}
	return nil
}

// clashesWithREX reports whether mem and the instruction's other
// register operand would need a REX prefix for one while using a
// legacy AH/CH/DH/BH high-byte form for the other — the exact
// combination §4.5 calls out as unencodable, since a REX prefix
// repurposes that 3-bit field for SPL/BPL/SIL/DIL instead.
func clashesWithREX(mem MemReg, other Reg, byteWidth bool) bool {
	needsREX := requiresREX(mem.Base, byteWidth) || requiresREX(other, byteWidth) ||
		(mem.Deref && mem.HasIndex && requiresREX(mem.Index, byteWidth))
	legacy := legacyHighByte(mem.Base) || legacyHighByte(other) ||
		(mem.Deref && mem.HasIndex && legacyHighByte(mem.Index))
	return needsREX && legacy
}

// Mem returns a dereferenced MemReg addressing [base+disp], the plain
// form most callers need before adding an index or a symbol.
func Mem(base Reg, disp int32) MemReg { return MemReg{Base: base, Disp: disp, Deref: true} }

// MemIndexed returns a dereferenced MemReg addressing
// [base+index*scale+disp].
func MemIndexed(base, index Reg, scale Scale, disp int32) MemReg {
	return MemReg{Base: base, HasIndex: true, Index: index, Scale: scale, Disp: disp, Deref: true}
}

// MemSymbol returns a dereferenced MemReg addressing [base+symbol],
// where symbol is a named 32-bit displacement the Linker resolves,
// e.g. a Registry entry's address relative to the base register.
func MemSymbol(base Reg, symbol string) MemReg { return MemReg{Base: base, Symbol: symbol, Deref: true} }

// modAndDisp picks the ModR/M mod field and displacement bytes for
// mem's Disp/Symbol, per the standard x86-64 disp0/disp8/disp32
// encoding choice. A Symbol always takes the disp32 form, since the
// Linker fills the four displacement bytes in once the target address
// is known and cannot retroactively widen a disp8 slot.
func modAndDisp(mem MemReg) (mod byte, disp []byte) {
	if mem.Symbol != "" {
		return 2, nil
	}
	switch {
	case mem.Disp == 0:
		return 0, nil
	case mem.Disp >= -128 && mem.Disp <= 127:
		return 1, []byte{byte(mem.Disp)}
	default:
		d := uint32(mem.Disp)
		return 2, []byte{byte(d), byte(d >> 8), byte(d >> 16), byte(d >> 24)}
	}
}

// EmitMovRegMemReg emits a general `mov` between reg and a memory
// operand described by mem — `mov reg, mem` when store is false, `mov
// mem, reg` when store is true — at the given operand width. It
// implements the full MemReg contract §4.5 requires of this encoder:
// named or numeric displacement, an optional scaled index, the
// 0x66/0x67 operand-size/address-size overrides, and rejection of the
// REX-prefix-versus-legacy-high-byte-register clash, returning an
// error rather than emitting a misencoded instruction.
//
// translate's fixed-register instruction bodies use the narrower
// EmitLoadByteMem/EmitStoreByteMem instead, since every address they
// touch is already in a SIB/RIP-safe register with no displacement or
// index to encode — this is the general form the Assembler's contract
// promises beyond that one caller.
func (s *Section) EmitMovRegMemReg(reg Reg, mem MemReg, width Width, store bool) error {
	if err := mem.validate(); err != nil {
		return err
	}
	byteWidth := width == Width8
	if clashesWithREX(mem, reg, byteWidth) {
		return fmt.Errorf("asm: cannot encode %v alongside %v: one requires a REX prefix, the other is a legacy high-byte register", reg, mem.Base)
	}

	rext, rfield := regFields(reg)
	if legacyHighByte(reg) {
		rext, rfield = false, highByteField(reg)
	}
	bext, bfield := regFields(mem.Base)
	if legacyHighByte(mem.Base) {
		bext, bfield = false, highByteField(mem.Base)
	}

	mod := byte(3) // register-direct: mem.Base read/written as a plain register
	var disp []byte
	useSIB := false
	rm := bfield

	if mem.Deref {
		useSIB = mem.HasIndex || mem.Base == RSP || mem.Base == R12
		mod, disp = modAndDisp(mem)
		if mod == 0 && !useSIB && (mem.Base == RBP || mem.Base == R13) {
			// mod=00 rm=101 is the RIP-relative/disp32-only escape,
			// not "no displacement" — force an explicit disp8=0.
			mod, disp = 1, []byte{0}
		}
		if useSIB {
			rm = 4
		}
	}

	var iext bool
	var ifield byte = 4 // SIB "no index" marker
	if mem.Deref && mem.HasIndex {
		iext, ifield = regFields(mem.Index)
	}

	needREX := width == Width64 || rext || bext || (mem.Deref && mem.HasIndex && iext) ||
		requiresREX(reg, byteWidth) || requiresREX(mem.Base, byteWidth) ||
		(mem.Deref && mem.HasIndex && requiresREX(mem.Index, byteWidth))

	if width == Width16 {
		s.emit(0x66)
	}
	if mem.Addr32 {
		s.emit(0x67)
	}
	if needREX {
		s.emit(rexByte(width == Width64, rext, mem.HasIndex && iext, bext))
	}

	opcode := byte(0x8B) // mov reg, mem (load, wide)
	switch {
	case store && byteWidth:
		opcode = 0x88
	case !store && byteWidth:
		opcode = 0x8A
	case store && !byteWidth:
		opcode = 0x89
	}
	s.emit(opcode, modrm(mod, rfield, rm))
	if useSIB {
		scaleBits, _ := mem.Scale.bits()
		s.emit((scaleBits << 6) | ((ifield & 7) << 3) | (bfield & 7))
	}
	if mem.Symbol != "" {
		s.ref(mem.Symbol, 4, false)
	} else {
		s.emit(disp...)
	}
	return nil
}
