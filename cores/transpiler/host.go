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

package transpiler

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/sixfiveoh/sixfiveoh/instructions"
	"github.com/sixfiveoh/sixfiveoh/memory"
	"github.com/sixfiveoh/sixfiveoh/registers"
)

// host is the set of Go functions a generated Lua function calls into:
// addressing, memory access and the arithmetic primitives of §4.4,
// reproduced here in the same shape as cores/interpreter's own
// arithmetic.go and addressing.go rather than shared with it, since
// each back-end owns the primitives it hands to its dispatch mechanism
// the way §4.8's native translator and §4.4's interpreter each carry
// their own copy of the same flag-update contract.
type host struct {
	bus memory.Data
}

func (h host) read16(addr uint16) uint16 {
	lo, _ := h.bus.Read(addr)
	hi, _ := h.bus.Read(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

func (h host) read16ZpWrap(zp uint8) uint16 {
	lo, _ := h.bus.Read(uint16(zp))
	hi, _ := h.bus.Read(uint16(zp + 1))
	return uint16(lo) | uint16(hi)<<8
}

func (h host) read16IndBug(addr uint16) uint16 {
	lo, _ := h.bus.Read(addr)
	hiAddr := (addr & 0xFF00) | ((addr + 1) & 0x00FF)
	hi, _ := h.bus.Read(hiAddr)
	return uint16(lo) | uint16(hi)<<8
}

// resolve computes the effective address for every mode that has one;
// Imm, Acc, Imp and the register-direct modes have no effective address
// and are handled by the caller before resolve is ever reached.
func (h host) resolve(mode instructions.AddressingMode, operand uint16, x, y uint8) uint16 {
	switch mode {
	case instructions.Zp:
		return operand & 0xFF
	case instructions.ZpX:
		return (operand + uint16(x)) & 0xFF
	case instructions.ZpY:
		return (operand + uint16(y)) & 0xFF
	case instructions.Abs:
		return operand
	case instructions.AbsX:
		return operand + uint16(x)
	case instructions.AbsY:
		return operand + uint16(y)
	case instructions.Ind:
		return h.read16IndBug(operand)
	case instructions.IndX:
		return h.read16ZpWrap(uint8(operand+uint16(x)) & 0xFF)
	case instructions.IndY:
		return h.read16ZpWrap(uint8(operand&0xFF)) + uint16(y)
	}
	return operand
}

func (h host) load(mode instructions.AddressingMode, operand uint16, x, y uint8) uint8 {
	if mode == instructions.Imm {
		return uint8(operand)
	}
	v, _ := h.bus.Read(h.resolve(mode, operand, x, y))
	return v
}

func (h host) store(mode instructions.AddressingMode, operand uint16, x, y, v uint8) {
	_ = h.bus.Write(h.resolve(mode, operand, x, y), v)
}

// jmpTarget resolves JMP's own address-mode pair: Abs reads as a literal
// operand, Ind goes through the page-crossing indirection bug.
func (h host) jmpTarget(mode instructions.AddressingMode, operand uint16) uint16 {
	if mode == instructions.Ind {
		return h.read16IndBug(operand)
	}
	return operand
}

func (h host) push(s, v uint8) uint8 {
	_ = h.bus.Write(0x100+uint16(s), v)
	return s - 1
}

func (h host) pull(s uint8) (uint8, uint8) {
	s++
	v, _ := h.bus.Read(0x100 + uint16(s))
	return v, s
}

func (h host) push16(s uint8, v uint16) uint8 {
	s = h.push(s, uint8(v>>8))
	s = h.push(s, uint8(v))
	return s
}

func (h host) pull16(s uint8) (uint16, uint8) {
	lo, s := h.pull(s)
	hi, s := h.pull(s)
	return uint16(lo) | uint16(hi)<<8, s
}

func setNz(p, v uint8) uint8 { return registers.SetNZ(p, v) }

func setNvzc(p, l, r uint8, v16 uint16) (uint8, uint8) {
	v := uint8(v16)
	p = registers.SetFlag(p, registers.FlagCarry, v16 > 0xFF)
	p = registers.SetFlag(p, registers.FlagOverflow, (^(l^r)&(l^v)&0x80) != 0)
	p = setNz(p, v)
	return v, p
}

func adc(p, a, rhs uint8) (uint8, uint8) {
	carry := uint16(0)
	if registers.Flag(p, registers.FlagCarry) {
		carry = 1
	}
	return setNvzc(p, a, rhs, uint16(a)+uint16(rhs)+carry)
}

func sbc(p, a, rhs uint8) (uint8, uint8) {
	return adc(p, a, rhs^0xFF)
}

func cmp(p, reg, rhs uint8) uint8 {
	p = registers.SetFlag(p, registers.FlagCarry, reg >= rhs)
	return setNz(p, reg-rhs)
}

func bitop(p uint8, a, rhs uint8, op string) (uint8, uint8) {
	var v uint8
	switch op {
	case "and":
		v = a & rhs
	case "or":
		v = a | rhs
	case "xor":
		v = a ^ rhs
	}
	return v, setNz(p, v)
}

func bitTest(p, a, rhs uint8) uint8 {
	p = registers.SetFlag(p, registers.FlagZero, a&rhs == 0)
	p = registers.SetFlag(p, registers.FlagSign, rhs&0x80 != 0)
	p = registers.SetFlag(p, registers.FlagOverflow, rhs&0x40 != 0)
	return p
}

func asl(p, v uint8) (uint8, uint8) {
	p = registers.SetFlag(p, registers.FlagCarry, v&0x80 != 0)
	v <<= 1
	return v, setNz(p, v)
}

func lsr(p, v uint8) (uint8, uint8) {
	p = registers.SetFlag(p, registers.FlagCarry, v&0x01 != 0)
	v >>= 1
	return v, setNz(p, v)
}

func rol(p, v uint8) (uint8, uint8) {
	carryIn := uint8(0)
	if registers.Flag(p, registers.FlagCarry) {
		carryIn = 1
	}
	p = registers.SetFlag(p, registers.FlagCarry, v&0x80 != 0)
	v = (v << 1) | carryIn
	return v, setNz(p, v)
}

func ror(p, v uint8) (uint8, uint8) {
	carryIn := uint8(0)
	if registers.Flag(p, registers.FlagCarry) {
		carryIn = 0x80
	}
	p = registers.SetFlag(p, registers.FlagCarry, v&0x01 != 0)
	v = (v >> 1) | carryIn
	return v, setNz(p, v)
}

func inc(p, v uint8) (uint8, uint8) { v++; return v, setNz(p, v) }
func dec(p, v uint8) (uint8, uint8) { v--; return v, setNz(p, v) }

func packP(c, z, i, d, b, v, n bool) uint8 {
	p := registers.FlagUnused
	p = registers.SetFlag(p, registers.FlagCarry, c)
	p = registers.SetFlag(p, registers.FlagZero, z)
	p = registers.SetFlag(p, registers.FlagInterruptDisable, i)
	p = registers.SetFlag(p, registers.FlagDecimal, d)
	p = registers.SetFlag(p, registers.FlagBreak, b)
	p = registers.SetFlag(p, registers.FlagOverflow, v)
	p = registers.SetFlag(p, registers.FlagSign, n)
	return p
}

func unpackP(p uint8) (c, z, i, d, b, v, n bool) {
	return registers.Flag(p, registers.FlagCarry),
		registers.Flag(p, registers.FlagZero),
		registers.Flag(p, registers.FlagInterruptDisable),
		registers.Flag(p, registers.FlagDecimal),
		registers.Flag(p, registers.FlagBreak),
		registers.Flag(p, registers.FlagOverflow),
		registers.Flag(p, registers.FlagSign)
}

// register binds host's methods into the Lua global table "host" that
// generated source calls into. One *lua.LState is shared by every
// compiled function the Transpiler core owns, so this only needs to
// run once per state.
func register(L *lua.LState, bus memory.Data) {
	h := host{bus: bus}
	tbl := L.NewTable()

	reg := func(name string, fn func(*lua.LState) int) {
		tbl.RawSetString(name, L.NewFunction(fn))
	}

	reg("load", func(L *lua.LState) int {
		mode := instructions.AddressingMode(L.ToInt(1))
		operand := uint16(L.ToInt(2))
		x, y := uint8(L.ToInt(3)), uint8(L.ToInt(4))
		L.Push(lua.LNumber(h.load(mode, operand, x, y)))
		return 1
	})
	reg("store", func(L *lua.LState) int {
		mode := instructions.AddressingMode(L.ToInt(1))
		operand := uint16(L.ToInt(2))
		x, y, v := uint8(L.ToInt(3)), uint8(L.ToInt(4)), uint8(L.ToInt(5))
		h.store(mode, operand, x, y, v)
		return 0
	})
	reg("jmptarget", func(L *lua.LState) int {
		mode := instructions.AddressingMode(L.ToInt(1))
		operand := uint16(L.ToInt(2))
		L.Push(lua.LNumber(h.jmpTarget(mode, operand)))
		return 1
	})
	reg("push", func(L *lua.LState) int {
		s, v := uint8(L.ToInt(1)), uint8(L.ToInt(2))
		L.Push(lua.LNumber(h.push(s, v)))
		return 1
	})
	reg("pull", func(L *lua.LState) int {
		v, s := h.pull(uint8(L.ToInt(1)))
		L.Push(lua.LNumber(v))
		L.Push(lua.LNumber(s))
		return 2
	})
	reg("push16", func(L *lua.LState) int {
		s, v := uint8(L.ToInt(1)), uint16(L.ToInt(2))
		L.Push(lua.LNumber(h.push16(s, v)))
		return 1
	})
	reg("pull16", func(L *lua.LState) int {
		v, s := h.pull16(uint8(L.ToInt(1)))
		L.Push(lua.LNumber(v))
		L.Push(lua.LNumber(s))
		return 2
	})
	reg("adc", func(L *lua.LState) int {
		p, a, rhs := uint8(L.ToInt(1)), uint8(L.ToInt(2)), uint8(L.ToInt(3))
		newA, newP := adc(p, a, rhs)
		L.Push(lua.LNumber(newA))
		L.Push(lua.LNumber(newP))
		return 2
	})
	reg("sbc", func(L *lua.LState) int {
		p, a, rhs := uint8(L.ToInt(1)), uint8(L.ToInt(2)), uint8(L.ToInt(3))
		newA, newP := sbc(p, a, rhs)
		L.Push(lua.LNumber(newA))
		L.Push(lua.LNumber(newP))
		return 2
	})
	reg("cmp", func(L *lua.LState) int {
		p, reg, rhs := uint8(L.ToInt(1)), uint8(L.ToInt(2)), uint8(L.ToInt(3))
		L.Push(lua.LNumber(cmp(p, reg, rhs)))
		return 1
	})
	reg("bitop", func(L *lua.LState) int {
		p, a, rhs, op := uint8(L.ToInt(1)), uint8(L.ToInt(2)), uint8(L.ToInt(3)), L.ToString(4)
		v, newP := bitop(p, a, rhs, op)
		L.Push(lua.LNumber(v))
		L.Push(lua.LNumber(newP))
		return 2
	})
	reg("bittest", func(L *lua.LState) int {
		p, a, rhs := uint8(L.ToInt(1)), uint8(L.ToInt(2)), uint8(L.ToInt(3))
		L.Push(lua.LNumber(bitTest(p, a, rhs)))
		return 1
	})
	reg("setnz", func(L *lua.LState) int {
		p, v := uint8(L.ToInt(1)), uint8(L.ToInt(2))
		L.Push(lua.LNumber(setNz(p, v)))
		return 1
	})
	shiftOp := func(f func(p, v uint8) (uint8, uint8)) func(*lua.LState) int {
		return func(L *lua.LState) int {
			p, v := uint8(L.ToInt(1)), uint8(L.ToInt(2))
			newV, newP := f(p, v)
			L.Push(lua.LNumber(newV))
			L.Push(lua.LNumber(newP))
			return 2
		}
	}
	reg("asl", shiftOp(asl))
	reg("lsr", shiftOp(lsr))
	reg("rol", shiftOp(rol))
	reg("ror", shiftOp(ror))
	reg("inc", shiftOp(inc))
	reg("dec", shiftOp(dec))
	reg("pack", func(L *lua.LState) int {
		L.Push(lua.LNumber(packP(
			L.ToBool(1), L.ToBool(2), L.ToBool(3), L.ToBool(4),
			L.ToBool(5), L.ToBool(6), L.ToBool(7),
		)))
		return 1
	})
	reg("unpack", func(L *lua.LState) int {
		c, z, i, d, b, v, n := unpackP(uint8(L.ToInt(1)))
		L.Push(lua.LBool(c))
		L.Push(lua.LBool(z))
		L.Push(lua.LBool(i))
		L.Push(lua.LBool(d))
		L.Push(lua.LBool(b))
		L.Push(lua.LBool(v))
		L.Push(lua.LBool(n))
		return 7
	})

	L.SetGlobal("host", tbl)
}
