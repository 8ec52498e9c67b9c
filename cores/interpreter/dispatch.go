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

import (
	"github.com/sixfiveoh/sixfiveoh/errors"
	"github.com/sixfiveoh/sixfiveoh/instructions"
	"github.com/sixfiveoh/sixfiveoh/registers"
)

// halted reports whether Run should stop looping after this
// instruction: a cycle-exhaustion deadline already broke the loop
// before execute ever runs, so the only reasons execute itself halts
// are a self-jump and an undecoded opcode.
type halted bool

// execute carries out instr's effect on state and the bus, and reports
// whether the run loop should stop. PC has not yet been advanced past
// instr when this is called; every branch of the switch is responsible
// for leaving PC at the correct next value.
func (i *Interpreter) execute(instr instructions.Instruction) (halted, error) {
	next := instr.NextAddress()
	mode, operand := instr.AddressingMode, instr.Operand

	switch instr.Command {
	case instructions.ADC:
		i.adc(i.loadOperand(mode, operand))
		i.state.PC = next
	case instructions.SBC:
		i.sbc(i.loadOperand(mode, operand))
		i.state.PC = next
	case instructions.AND:
		i.state.A = i.setNz(i.state.A & i.loadOperand(mode, operand))
		i.state.PC = next
	case instructions.ORA:
		i.state.A = i.setNz(i.state.A | i.loadOperand(mode, operand))
		i.state.PC = next
	case instructions.EOR:
		i.state.A = i.setNz(i.state.A ^ i.loadOperand(mode, operand))
		i.state.PC = next
	case instructions.BIT:
		v := i.loadOperand(mode, operand)
		i.state.P = registers.SetFlag(i.state.P, registers.FlagZero, i.state.A&v == 0)
		i.state.P = registers.SetFlag(i.state.P, registers.FlagSign, v&0x80 != 0)
		i.state.P = registers.SetFlag(i.state.P, registers.FlagOverflow, v&0x40 != 0)
		i.state.PC = next
	case instructions.CMP:
		i.compare(i.state.A, i.loadOperand(mode, operand))
		i.state.PC = next
	case instructions.CPX:
		i.compare(i.state.X, i.loadOperand(mode, operand))
		i.state.PC = next
	case instructions.CPY:
		i.compare(i.state.Y, i.loadOperand(mode, operand))
		i.state.PC = next

	case instructions.LDA:
		i.state.A = i.setNz(i.loadOperand(mode, operand))
		i.state.PC = next
	case instructions.LDX:
		i.state.X = i.setNz(i.loadOperand(mode, operand))
		i.state.PC = next
	case instructions.LDY:
		i.state.Y = i.setNz(i.loadOperand(mode, operand))
		i.state.PC = next
	case instructions.STA:
		i.bus.Write(i.resolve(mode, operand), i.state.A)
		i.state.PC = next
	case instructions.STX:
		i.bus.Write(i.resolve(mode, operand), i.state.X)
		i.state.PC = next
	case instructions.STY:
		i.bus.Write(i.resolve(mode, operand), i.state.Y)
		i.state.PC = next

	case instructions.ASL:
		i.rmw(mode, operand, func(v uint8) uint8 {
			i.state.P = registers.SetFlag(i.state.P, registers.FlagCarry, v&0x80 != 0)
			return i.setNz(v << 1)
		})
		i.state.PC = next
	case instructions.LSR:
		i.rmw(mode, operand, func(v uint8) uint8 {
			i.state.P = registers.SetFlag(i.state.P, registers.FlagCarry, v&0x01 != 0)
			return i.setNz(v >> 1)
		})
		i.state.PC = next
	case instructions.ROL:
		i.rmw(mode, operand, func(v uint8) uint8 {
			carry := uint8(0)
			if registers.Flag(i.state.P, registers.FlagCarry) {
				carry = 1
			}
			i.state.P = registers.SetFlag(i.state.P, registers.FlagCarry, v&0x80 != 0)
			return i.setNz(v<<1 | carry)
		})
		i.state.PC = next
	case instructions.ROR:
		i.rmw(mode, operand, func(v uint8) uint8 {
			carry := uint8(0)
			if registers.Flag(i.state.P, registers.FlagCarry) {
				carry = 0x80
			}
			i.state.P = registers.SetFlag(i.state.P, registers.FlagCarry, v&0x01 != 0)
			return i.setNz(v>>1 | carry)
		})
		i.state.PC = next
	case instructions.INC:
		i.rmw(mode, operand, func(v uint8) uint8 { return i.setNz(v + 1) })
		i.state.PC = next
	case instructions.DEC:
		i.rmw(mode, operand, func(v uint8) uint8 { return i.setNz(v - 1) })
		i.state.PC = next

	case instructions.INX:
		i.state.X = i.setNz(i.state.X + 1)
		i.state.PC = next
	case instructions.INY:
		i.state.Y = i.setNz(i.state.Y + 1)
		i.state.PC = next
	case instructions.DEX:
		i.state.X = i.setNz(i.state.X - 1)
		i.state.PC = next
	case instructions.DEY:
		i.state.Y = i.setNz(i.state.Y - 1)
		i.state.PC = next
	case instructions.TAX:
		i.state.X = i.setNz(i.state.A)
		i.state.PC = next
	case instructions.TAY:
		i.state.Y = i.setNz(i.state.A)
		i.state.PC = next
	case instructions.TXA:
		i.state.A = i.setNz(i.state.X)
		i.state.PC = next
	case instructions.TYA:
		i.state.A = i.setNz(i.state.Y)
		i.state.PC = next
	case instructions.TSX:
		i.state.X = i.setNz(i.state.S)
		i.state.PC = next
	case instructions.TXS:
		i.state.S = i.state.X
		i.state.PC = next

	case instructions.PHA:
		i.push(i.state.A)
		i.state.PC = next
	case instructions.PLA:
		i.state.A = i.setNz(i.pull())
		i.state.PC = next
	case instructions.PHP:
		i.push(i.state.P | registers.FlagUnused | registers.FlagBreak)
		i.state.PC = next
	case instructions.PLP:
		i.state.P = i.pull() | registers.FlagUnused
		i.state.PC = next

	case instructions.CLC:
		i.state.P = registers.SetFlag(i.state.P, registers.FlagCarry, false)
		i.state.PC = next
	case instructions.SEC:
		i.state.P = registers.SetFlag(i.state.P, registers.FlagCarry, true)
		i.state.PC = next
	case instructions.CLD:
		i.state.P = registers.SetFlag(i.state.P, registers.FlagDecimal, false)
		i.state.PC = next
	case instructions.SED:
		i.state.P = registers.SetFlag(i.state.P, registers.FlagDecimal, true)
		i.state.PC = next
	case instructions.CLI:
		i.state.P = registers.SetFlag(i.state.P, registers.FlagInterruptDisable, false)
		i.state.PC = next
	case instructions.SEI:
		i.state.P = registers.SetFlag(i.state.P, registers.FlagInterruptDisable, true)
		i.state.PC = next
	case instructions.CLV:
		i.state.P = registers.SetFlag(i.state.P, registers.FlagOverflow, false)
		i.state.PC = next

	case instructions.NOP:
		i.state.PC = next

	case instructions.JMP:
		target := i.resolve(mode, operand)
		i.state.Reason = registers.Jump
		if target == instr.Address {
			i.state.Reason = registers.InfiniteLoop
			i.state.Cycles = 0
			i.state.PC = target
			return true, nil
		}
		i.state.PC = target

	case instructions.JSR:
		i.push16(next - 1)
		i.state.Reason = registers.Jump
		i.state.PC = operand

	case instructions.RTS:
		i.state.PC = i.pull16() + 1
		i.state.Reason = registers.Return

	case instructions.RTI:
		i.state.P = i.pull() | registers.FlagUnused
		i.state.PC = i.pull16()
		i.state.Reason = registers.Return

	case instructions.BRK:
		i.state.PC = next
		i.interrupt(serviceInterrupt, true, true)
		i.state.Reason = registers.Break

	case instructions.BCC:
		i.branch(!registers.Flag(i.state.P, registers.FlagCarry), instr, next, operand)
	case instructions.BCS:
		i.branch(registers.Flag(i.state.P, registers.FlagCarry), instr, next, operand)
	case instructions.BEQ:
		i.branch(registers.Flag(i.state.P, registers.FlagZero), instr, next, operand)
	case instructions.BNE:
		i.branch(!registers.Flag(i.state.P, registers.FlagZero), instr, next, operand)
	case instructions.BMI:
		i.branch(registers.Flag(i.state.P, registers.FlagSign), instr, next, operand)
	case instructions.BPL:
		i.branch(!registers.Flag(i.state.P, registers.FlagSign), instr, next, operand)
	case instructions.BVC:
		i.branch(!registers.Flag(i.state.P, registers.FlagOverflow), instr, next, operand)
	case instructions.BVS:
		i.branch(registers.Flag(i.state.P, registers.FlagOverflow), instr, next, operand)

	default:
		i.state.Reason = registers.UnknownInstruction
		i.state.PC = instr.Address
		return true, errors.New(errors.UnknownInstructionTrap)
	}

	return false, nil
}

// rmw reads the operand's current value, runs f over it, and writes the
// result back to the same place: memory for every addressing mode but
// Acc, which operates on A directly.
func (i *Interpreter) rmw(mode instructions.AddressingMode, operand uint16, f func(uint8) uint8) {
	if mode == instructions.Acc {
		i.state.A = f(i.state.A)
		return
	}
	addr := i.resolve(mode, operand)
	v, _ := i.bus.Read(addr)
	i.bus.Write(addr, f(v))
}

// branch resolves a conditional branch's relative target and moves PC
// to it when taken, or to the following instruction when not. Branch
// offsets are always interpreted as signed 8-bit, per pc + (int8)operand.
func (i *Interpreter) branch(taken bool, instr instructions.Instruction, next, operand uint16) {
	i.state.Reason = registers.Jump
	if !taken {
		i.state.PC = next
		return
	}
	target := next + uint16(int8(uint8(operand)))
	if target == instr.Address {
		i.state.Reason = registers.InfiniteLoop
		i.state.Cycles = 0
	}
	i.state.PC = target
}
