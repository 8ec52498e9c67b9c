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

// Package disassembly turns a byte stream into Instructions, and
// Instructions into recovered Functions: control-flow graphs bounded by
// branching opcodes, with explicit successor edges for conditional
// branches.
package disassembly

import (
	"github.com/sixfiveoh/sixfiveoh/instructions"
	"github.com/sixfiveoh/sixfiveoh/memory"
)

// Decode reads one instruction from data starting at address: an opcode
// byte, then 0, 1 or 2 operand bytes as the addressing mode dictates,
// little-endian. Undocumented opcodes decode to Command Unknown,
// addressing mode Imp and one cycle.
func Decode(data memory.CPUBus, address uint16) (instructions.Instruction, error) {
	opcode, err := data.Read(address)
	if err != nil {
		return instructions.Instruction{}, err
	}

	defn, ok := instructions.Lookup(opcode)
	if !ok {
		return instructions.Instruction{
			Address:       address,
			Command:       instructions.Unknown,
			AddressingMode: instructions.Imp,
			Cycles:        1,
		}, nil
	}

	instr := instructions.Instruction{
		Address:        address,
		Command:        defn.Command,
		AddressingMode: defn.AddressingMode,
		Cycles:         defn.Cycles,
		PageSensitive:  defn.PageSensitive,
		Effect:         defn.Effect,
	}

	switch defn.AddressingMode.OperandSize() {
	case 1:
		lo, err := data.Read(address + 1)
		if err != nil {
			return instructions.Instruction{}, err
		}
		instr.Operand = uint16(lo)
	case 2:
		lo, err := data.Read(address + 1)
		if err != nil {
			return instructions.Instruction{}, err
		}
		hi, err := data.Read(address + 2)
		if err != nil {
			return instructions.Instruction{}, err
		}
		instr.Operand = uint16(lo) | uint16(hi)<<8
	}

	return instr, nil
}
