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

package asm

import (
	"bytes"
	"testing"
)

func TestEmitMovRegImm64(t *testing.T) {
	s := NewSection("t")
	s.EmitMovRegImm64(RAX, 0x0102030405060708)
	want := []byte{0x48, 0xB8, 0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(s.Code, want) {
		t.Errorf("got % x, want % x", s.Code, want)
	}
}

func TestEmitMovRegImm64HighRegisterSetsREXB(t *testing.T) {
	s := NewSection("t")
	s.EmitMovRegImm64(R8, 1)
	if s.Code[0] != 0x49 { // REX.W|REX.B
		t.Errorf("REX byte = %#02x, want 0x49", s.Code[0])
	}
	if s.Code[1] != 0xB8 { // B8+0, R8's low 3 bits are 0
		t.Errorf("opcode byte = %#02x, want 0xB8", s.Code[1])
	}
}

func TestEmitXorRegRegSelf(t *testing.T) {
	s := NewSection("t")
	s.EmitXor(RAX, RAX)
	want := []byte{0x48, 0x31, 0xC0}
	if !bytes.Equal(s.Code, want) {
		t.Errorf("got % x, want % x", s.Code, want)
	}
}

func TestEmitCmpRegReg(t *testing.T) {
	s := NewSection("t")
	s.EmitCmp(RBX, RCX)
	want := []byte{0x48, 0x39, 0xCB}
	if !bytes.Equal(s.Code, want) {
		t.Errorf("got % x, want % x", s.Code, want)
	}
}

func TestEmitRet(t *testing.T) {
	s := NewSection("t")
	s.EmitRet()
	if !bytes.Equal(s.Code, []byte{0xC3}) {
		t.Errorf("got % x, want c3", s.Code)
	}
}

func TestEmitJmpLabelRecordsRelativeReference(t *testing.T) {
	s := NewSection("t")
	s.EmitJmpLabel("target")
	if len(s.Code) != 5 {
		t.Fatalf("len(code) = %d, want 5", len(s.Code))
	}
	if len(s.References) != 1 {
		t.Fatalf("len(references) = %d, want 1", len(s.References))
	}
	ref := s.References[0]
	if ref.Name != "target" || ref.Kind != RefRelative || ref.Base != 5 || ref.Offset != 1 {
		t.Errorf("reference = %+v, want {target 1 4 5 relative}", ref)
	}
}

func TestEmitMovByteRegRegSplRequiresREX(t *testing.T) {
	s := NewSection("t")
	s.EmitMovByteRegReg(RSP, RAX)
	if len(s.Code) != 3 {
		t.Fatalf("len(code) = %d, want 3 (REX prefix + opcode + modrm)", len(s.Code))
	}
	if s.Code[0] != 0x40 {
		t.Errorf("REX byte = %#02x, want a bare 0x40 prefix for SPL", s.Code[0])
	}
}

func TestEmitMovRegMemRegRejectsHighByteAlongsideREXRegister(t *testing.T) {
	s := NewSection("t")
	err := s.EmitMovRegMemReg(AH, Mem(R8, 0), Width8, false)
	if err == nil {
		t.Fatal("expected an error encoding AH alongside an R8-R15 register")
	}
}

func TestEmitMovRegMemRegSplRequiresREXWithNoOtherExtendedRegister(t *testing.T) {
	s := NewSection("t")
	if err := s.EmitMovRegMemReg(RSP, Mem(RAX, 0), Width8, false); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if s.Code[0] != 0x40 {
		t.Errorf("REX byte = %#02x, want a bare 0x40 prefix for SPL", s.Code[0])
	}
}

func TestEmitMovRegMemRegRejectsBadScale(t *testing.T) {
	s := NewSection("t")
	err := s.EmitMovRegMemReg(RAX, MemIndexed(RBX, RCX, Scale(3), 0), Width64, false)
	if err == nil {
		t.Fatal("expected an error for a scale that is not one of 1, 2, 4, 8")
	}
}

func TestEmitMovRegMemRegEncodesDisplacementAndIndex(t *testing.T) {
	s := NewSection("t")
	// mov rax, [rbx + rcx*4 + 0x10]
	if err := s.EmitMovRegMemReg(RAX, MemIndexed(RBX, RCX, Scale4, 0x10), Width64, false); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := []byte{0x48, 0x8B, 0x44, 0x8B, 0x10}
	if !bytes.Equal(s.Code, want) {
		t.Errorf("got % x, want % x", s.Code, want)
	}
}

func TestEmitMovRegMemRegWidth16EmitsOperandSizeOverride(t *testing.T) {
	s := NewSection("t")
	if err := s.EmitMovRegMemReg(RAX, Mem(RBX, 0), Width16, false); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if s.Code[0] != 0x66 {
		t.Errorf("first byte = %#02x, want 0x66 operand-size override", s.Code[0])
	}
}

func TestEmitMovRegMemRegAddr32EmitsAddressSizeOverride(t *testing.T) {
	s := NewSection("t")
	mem := Mem(RBX, 0)
	mem.Addr32 = true
	if err := s.EmitMovRegMemReg(RAX, mem, Width64, false); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if s.Code[0] != 0x67 {
		t.Errorf("first byte = %#02x, want 0x67 address-size override", s.Code[0])
	}
}

func TestEmitMovRegMemRegSymbolRecordsAbsoluteReference(t *testing.T) {
	s := NewSection("t")
	if err := s.EmitMovRegMemReg(RAX, MemSymbol(RBX, "memRead"), Width64, false); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(s.References) != 1 {
		t.Fatalf("len(references) = %d, want 1", len(s.References))
	}
	if ref := s.References[0]; ref.Name != "memRead" || ref.Kind != RefAbsolute {
		t.Errorf("reference = %+v, want {memRead ... absolute}", ref)
	}
}

func TestEmitMovRegMemRegRegisterDirectWhenNotDeref(t *testing.T) {
	s := NewSection("t")
	// Deref false addresses Base as a plain register operand.
	if err := s.EmitMovRegMemReg(RDX, MemReg{Base: RAX}, Width64, false); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := []byte{0x48, 0x8B, 0xD0} // mov rdx, rax
	if !bytes.Equal(s.Code, want) {
		t.Errorf("got % x, want % x", s.Code, want)
	}
}
