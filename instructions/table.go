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

package instructions

// table is indexed by opcode. Entries left nil are opcodes with no
// documented meaning; decoding one of them is an UnknownInstructionTrap.
var table = [256]*Definition{
	0x00: {OpCode: 0x00, Command: BRK, AddressingMode: Imp, Cycles: 7, Effect: Interrupt},
	0x01: {OpCode: 0x01, Command: ORA, AddressingMode: IndX, Cycles: 6, Effect: Read},
	0x05: {OpCode: 0x05, Command: ORA, AddressingMode: Zp, Cycles: 3, Effect: Read},
	0x06: {OpCode: 0x06, Command: ASL, AddressingMode: Zp, Cycles: 5, Effect: RMW},
	0x08: {OpCode: 0x08, Command: PHP, AddressingMode: P, Cycles: 3, Effect: Read},
	0x09: {OpCode: 0x09, Command: ORA, AddressingMode: Imm, Cycles: 2, Effect: Read},
	0x0A: {OpCode: 0x0A, Command: ASL, AddressingMode: Acc, Cycles: 2, Effect: RMW},
	0x0D: {OpCode: 0x0D, Command: ORA, AddressingMode: Abs, Cycles: 4, Effect: Read},
	0x0E: {OpCode: 0x0E, Command: ASL, AddressingMode: Abs, Cycles: 6, Effect: RMW},

	0x10: {OpCode: 0x10, Command: BPL, AddressingMode: Rel, Cycles: 2, PageSensitive: true, Effect: Flow},
	0x11: {OpCode: 0x11, Command: ORA, AddressingMode: IndY, Cycles: 5, PageSensitive: true, Effect: Read},
	0x15: {OpCode: 0x15, Command: ORA, AddressingMode: ZpX, Cycles: 4, Effect: Read},
	0x16: {OpCode: 0x16, Command: ASL, AddressingMode: ZpX, Cycles: 6, Effect: RMW},
	0x18: {OpCode: 0x18, Command: CLC, AddressingMode: P, Cycles: 2, Effect: Read},
	0x19: {OpCode: 0x19, Command: ORA, AddressingMode: AbsY, Cycles: 4, PageSensitive: true, Effect: Read},
	0x1D: {OpCode: 0x1D, Command: ORA, AddressingMode: AbsX, Cycles: 4, PageSensitive: true, Effect: Read},
	0x1E: {OpCode: 0x1E, Command: ASL, AddressingMode: AbsX, Cycles: 7, Effect: RMW},

	0x20: {OpCode: 0x20, Command: JSR, AddressingMode: Abs, Cycles: 6, Effect: Subroutine},
	0x21: {OpCode: 0x21, Command: AND, AddressingMode: IndX, Cycles: 6, Effect: Read},
	0x24: {OpCode: 0x24, Command: BIT, AddressingMode: Zp, Cycles: 3, Effect: Read},
	0x25: {OpCode: 0x25, Command: AND, AddressingMode: Zp, Cycles: 3, Effect: Read},
	0x26: {OpCode: 0x26, Command: ROL, AddressingMode: Zp, Cycles: 5, Effect: RMW},
	0x28: {OpCode: 0x28, Command: PLP, AddressingMode: P, Cycles: 4, Effect: Read},
	0x29: {OpCode: 0x29, Command: AND, AddressingMode: Imm, Cycles: 2, Effect: Read},
	0x2A: {OpCode: 0x2A, Command: ROL, AddressingMode: Acc, Cycles: 2, Effect: RMW},
	0x2C: {OpCode: 0x2C, Command: BIT, AddressingMode: Abs, Cycles: 4, Effect: Read},
	0x2D: {OpCode: 0x2D, Command: AND, AddressingMode: Abs, Cycles: 4, Effect: Read},
	0x2E: {OpCode: 0x2E, Command: ROL, AddressingMode: Abs, Cycles: 6, Effect: RMW},

	0x30: {OpCode: 0x30, Command: BMI, AddressingMode: Rel, Cycles: 2, PageSensitive: true, Effect: Flow},
	0x31: {OpCode: 0x31, Command: AND, AddressingMode: IndY, Cycles: 5, PageSensitive: true, Effect: Read},
	0x35: {OpCode: 0x35, Command: AND, AddressingMode: ZpX, Cycles: 4, Effect: Read},
	0x36: {OpCode: 0x36, Command: ROL, AddressingMode: ZpX, Cycles: 6, Effect: RMW},
	0x38: {OpCode: 0x38, Command: SEC, AddressingMode: P, Cycles: 2, Effect: Read},
	0x39: {OpCode: 0x39, Command: AND, AddressingMode: AbsY, Cycles: 4, PageSensitive: true, Effect: Read},
	0x3D: {OpCode: 0x3D, Command: AND, AddressingMode: AbsX, Cycles: 4, PageSensitive: true, Effect: Read},
	0x3E: {OpCode: 0x3E, Command: ROL, AddressingMode: AbsX, Cycles: 7, Effect: RMW},

	0x40: {OpCode: 0x40, Command: RTI, AddressingMode: Imp, Cycles: 6, Effect: Interrupt},
	0x41: {OpCode: 0x41, Command: EOR, AddressingMode: IndX, Cycles: 6, Effect: Read},
	0x45: {OpCode: 0x45, Command: EOR, AddressingMode: Zp, Cycles: 3, Effect: Read},
	0x46: {OpCode: 0x46, Command: LSR, AddressingMode: Zp, Cycles: 5, Effect: RMW},
	0x48: {OpCode: 0x48, Command: PHA, AddressingMode: Acc, Cycles: 3, Effect: Read},
	0x49: {OpCode: 0x49, Command: EOR, AddressingMode: Imm, Cycles: 2, Effect: Read},
	0x4A: {OpCode: 0x4A, Command: LSR, AddressingMode: Acc, Cycles: 2, Effect: RMW},
	0x4C: {OpCode: 0x4C, Command: JMP, AddressingMode: Abs, Cycles: 3, Effect: Flow},
	0x4D: {OpCode: 0x4D, Command: EOR, AddressingMode: Abs, Cycles: 4, Effect: Read},
	0x4E: {OpCode: 0x4E, Command: LSR, AddressingMode: Abs, Cycles: 6, Effect: RMW},

	0x50: {OpCode: 0x50, Command: BVC, AddressingMode: Rel, Cycles: 2, PageSensitive: true, Effect: Flow},
	0x51: {OpCode: 0x51, Command: EOR, AddressingMode: IndY, Cycles: 5, PageSensitive: true, Effect: Read},
	0x55: {OpCode: 0x55, Command: EOR, AddressingMode: ZpX, Cycles: 4, Effect: Read},
	0x56: {OpCode: 0x56, Command: LSR, AddressingMode: ZpX, Cycles: 6, Effect: RMW},
	0x58: {OpCode: 0x58, Command: CLI, AddressingMode: P, Cycles: 2, Effect: Read},
	0x59: {OpCode: 0x59, Command: EOR, AddressingMode: AbsY, Cycles: 4, PageSensitive: true, Effect: Read},
	0x5D: {OpCode: 0x5D, Command: EOR, AddressingMode: AbsX, Cycles: 4, PageSensitive: true, Effect: Read},
	0x5E: {OpCode: 0x5E, Command: LSR, AddressingMode: AbsX, Cycles: 7, Effect: RMW},

	0x60: {OpCode: 0x60, Command: RTS, AddressingMode: Imp, Cycles: 6, Effect: Subroutine},
	0x61: {OpCode: 0x61, Command: ADC, AddressingMode: IndX, Cycles: 6, Effect: Read},
	0x65: {OpCode: 0x65, Command: ADC, AddressingMode: Zp, Cycles: 3, Effect: Read},
	0x66: {OpCode: 0x66, Command: ROR, AddressingMode: Zp, Cycles: 5, Effect: RMW},
	0x68: {OpCode: 0x68, Command: PLA, AddressingMode: Acc, Cycles: 4, Effect: Read},
	0x69: {OpCode: 0x69, Command: ADC, AddressingMode: Imm, Cycles: 2, Effect: Read},
	0x6A: {OpCode: 0x6A, Command: ROR, AddressingMode: Acc, Cycles: 2, Effect: RMW},
	0x6C: {OpCode: 0x6C, Command: JMP, AddressingMode: Ind, Cycles: 5, Effect: Flow},
	0x6D: {OpCode: 0x6D, Command: ADC, AddressingMode: Abs, Cycles: 4, Effect: Read},
	0x6E: {OpCode: 0x6E, Command: ROR, AddressingMode: Abs, Cycles: 6, Effect: RMW},

	0x70: {OpCode: 0x70, Command: BVS, AddressingMode: Rel, Cycles: 2, PageSensitive: true, Effect: Flow},
	0x71: {OpCode: 0x71, Command: ADC, AddressingMode: IndY, Cycles: 5, PageSensitive: true, Effect: Read},
	0x75: {OpCode: 0x75, Command: ADC, AddressingMode: ZpX, Cycles: 4, Effect: Read},
	0x76: {OpCode: 0x76, Command: ROR, AddressingMode: ZpX, Cycles: 6, Effect: RMW},
	0x78: {OpCode: 0x78, Command: SEI, AddressingMode: P, Cycles: 2, Effect: Read},
	0x79: {OpCode: 0x79, Command: ADC, AddressingMode: AbsY, Cycles: 4, PageSensitive: true, Effect: Read},
	0x7D: {OpCode: 0x7D, Command: ADC, AddressingMode: AbsX, Cycles: 4, PageSensitive: true, Effect: Read},
	0x7E: {OpCode: 0x7E, Command: ROR, AddressingMode: AbsX, Cycles: 7, Effect: RMW},

	0x81: {OpCode: 0x81, Command: STA, AddressingMode: IndX, Cycles: 6, Effect: Write},
	0x84: {OpCode: 0x84, Command: STY, AddressingMode: Zp, Cycles: 3, Effect: Write},
	0x85: {OpCode: 0x85, Command: STA, AddressingMode: Zp, Cycles: 3, Effect: Write},
	0x86: {OpCode: 0x86, Command: STX, AddressingMode: Zp, Cycles: 3, Effect: Write},
	0x88: {OpCode: 0x88, Command: DEY, AddressingMode: Y, Cycles: 2, Effect: Read},
	0x8A: {OpCode: 0x8A, Command: TXA, AddressingMode: X, Cycles: 2, Effect: Read},
	0x8C: {OpCode: 0x8C, Command: STY, AddressingMode: Abs, Cycles: 4, Effect: Write},
	0x8D: {OpCode: 0x8D, Command: STA, AddressingMode: Abs, Cycles: 4, Effect: Write},
	0x8E: {OpCode: 0x8E, Command: STX, AddressingMode: Abs, Cycles: 4, Effect: Write},

	0x90: {OpCode: 0x90, Command: BCC, AddressingMode: Rel, Cycles: 2, PageSensitive: true, Effect: Flow},
	0x91: {OpCode: 0x91, Command: STA, AddressingMode: IndY, Cycles: 6, Effect: Write},
	0x94: {OpCode: 0x94, Command: STY, AddressingMode: ZpX, Cycles: 4, Effect: Write},
	0x95: {OpCode: 0x95, Command: STA, AddressingMode: ZpX, Cycles: 4, Effect: Write},
	0x96: {OpCode: 0x96, Command: STX, AddressingMode: ZpY, Cycles: 4, Effect: Write},
	0x98: {OpCode: 0x98, Command: TYA, AddressingMode: Y, Cycles: 2, Effect: Read},
	0x99: {OpCode: 0x99, Command: STA, AddressingMode: AbsY, Cycles: 5, Effect: Write},
	0x9A: {OpCode: 0x9A, Command: TXS, AddressingMode: S, Cycles: 2, Effect: Read},
	0x9D: {OpCode: 0x9D, Command: STA, AddressingMode: AbsX, Cycles: 5, Effect: Write},

	0xA0: {OpCode: 0xA0, Command: LDY, AddressingMode: Imm, Cycles: 2, Effect: Read},
	0xA1: {OpCode: 0xA1, Command: LDA, AddressingMode: IndX, Cycles: 6, Effect: Read},
	0xA2: {OpCode: 0xA2, Command: LDX, AddressingMode: Imm, Cycles: 2, Effect: Read},
	0xA4: {OpCode: 0xA4, Command: LDY, AddressingMode: Zp, Cycles: 3, Effect: Read},
	0xA5: {OpCode: 0xA5, Command: LDA, AddressingMode: Zp, Cycles: 3, Effect: Read},
	0xA6: {OpCode: 0xA6, Command: LDX, AddressingMode: Zp, Cycles: 3, Effect: Read},
	0xA8: {OpCode: 0xA8, Command: TAY, AddressingMode: Y, Cycles: 2, Effect: Read},
	0xA9: {OpCode: 0xA9, Command: LDA, AddressingMode: Imm, Cycles: 2, Effect: Read},
	0xAA: {OpCode: 0xAA, Command: TAX, AddressingMode: X, Cycles: 2, Effect: Read},
	0xAC: {OpCode: 0xAC, Command: LDY, AddressingMode: Abs, Cycles: 4, Effect: Read},
	0xAD: {OpCode: 0xAD, Command: LDA, AddressingMode: Abs, Cycles: 4, Effect: Read},
	0xAE: {OpCode: 0xAE, Command: LDX, AddressingMode: Abs, Cycles: 4, Effect: Read},

	0xB0: {OpCode: 0xB0, Command: BCS, AddressingMode: Rel, Cycles: 2, PageSensitive: true, Effect: Flow},
	0xB1: {OpCode: 0xB1, Command: LDA, AddressingMode: IndY, Cycles: 5, PageSensitive: true, Effect: Read},
	0xB4: {OpCode: 0xB4, Command: LDY, AddressingMode: ZpX, Cycles: 4, Effect: Read},
	0xB5: {OpCode: 0xB5, Command: LDA, AddressingMode: ZpX, Cycles: 4, Effect: Read},
	0xB6: {OpCode: 0xB6, Command: LDX, AddressingMode: ZpY, Cycles: 4, Effect: Read},
	0xB8: {OpCode: 0xB8, Command: CLV, AddressingMode: P, Cycles: 2, Effect: Read},
	0xB9: {OpCode: 0xB9, Command: LDA, AddressingMode: AbsY, Cycles: 4, PageSensitive: true, Effect: Read},
	0xBA: {OpCode: 0xBA, Command: TSX, AddressingMode: S, Cycles: 2, Effect: Read},
	0xBC: {OpCode: 0xBC, Command: LDY, AddressingMode: AbsX, Cycles: 4, PageSensitive: true, Effect: Read},
	0xBD: {OpCode: 0xBD, Command: LDA, AddressingMode: AbsX, Cycles: 4, PageSensitive: true, Effect: Read},
	0xBE: {OpCode: 0xBE, Command: LDX, AddressingMode: AbsY, Cycles: 4, PageSensitive: true, Effect: Read},

	0xC0: {OpCode: 0xC0, Command: CPY, AddressingMode: Imm, Cycles: 2, Effect: Read},
	0xC1: {OpCode: 0xC1, Command: CMP, AddressingMode: IndX, Cycles: 6, Effect: Read},
	0xC4: {OpCode: 0xC4, Command: CPY, AddressingMode: Zp, Cycles: 3, Effect: Read},
	0xC5: {OpCode: 0xC5, Command: CMP, AddressingMode: Zp, Cycles: 3, Effect: Read},
	0xC6: {OpCode: 0xC6, Command: DEC, AddressingMode: Zp, Cycles: 5, Effect: RMW},
	0xC8: {OpCode: 0xC8, Command: INY, AddressingMode: Y, Cycles: 2, Effect: Read},
	0xC9: {OpCode: 0xC9, Command: CMP, AddressingMode: Imm, Cycles: 2, Effect: Read},
	0xCA: {OpCode: 0xCA, Command: DEX, AddressingMode: X, Cycles: 2, Effect: Read},
	0xCC: {OpCode: 0xCC, Command: CPY, AddressingMode: Abs, Cycles: 4, Effect: Read},
	0xCD: {OpCode: 0xCD, Command: CMP, AddressingMode: Abs, Cycles: 4, Effect: Read},
	0xCE: {OpCode: 0xCE, Command: DEC, AddressingMode: Abs, Cycles: 6, Effect: RMW},

	0xD0: {OpCode: 0xD0, Command: BNE, AddressingMode: Rel, Cycles: 2, PageSensitive: true, Effect: Flow},
	0xD1: {OpCode: 0xD1, Command: CMP, AddressingMode: IndY, Cycles: 5, PageSensitive: true, Effect: Read},
	0xD5: {OpCode: 0xD5, Command: CMP, AddressingMode: ZpX, Cycles: 4, Effect: Read},
	0xD6: {OpCode: 0xD6, Command: DEC, AddressingMode: ZpX, Cycles: 6, Effect: RMW},
	0xD8: {OpCode: 0xD8, Command: CLD, AddressingMode: P, Cycles: 2, Effect: Read},
	0xD9: {OpCode: 0xD9, Command: CMP, AddressingMode: AbsY, Cycles: 4, PageSensitive: true, Effect: Read},
	0xDD: {OpCode: 0xDD, Command: CMP, AddressingMode: AbsX, Cycles: 4, PageSensitive: true, Effect: Read},
	0xDE: {OpCode: 0xDE, Command: DEC, AddressingMode: AbsX, Cycles: 7, Effect: RMW},

	0xE0: {OpCode: 0xE0, Command: CPX, AddressingMode: Imm, Cycles: 2, Effect: Read},
	0xE1: {OpCode: 0xE1, Command: SBC, AddressingMode: IndX, Cycles: 6, Effect: Read},
	0xE4: {OpCode: 0xE4, Command: CPX, AddressingMode: Zp, Cycles: 3, Effect: Read},
	0xE5: {OpCode: 0xE5, Command: SBC, AddressingMode: Zp, Cycles: 3, Effect: Read},
	0xE6: {OpCode: 0xE6, Command: INC, AddressingMode: Zp, Cycles: 5, Effect: RMW},
	0xE8: {OpCode: 0xE8, Command: INX, AddressingMode: X, Cycles: 2, Effect: Read},
	0xE9: {OpCode: 0xE9, Command: SBC, AddressingMode: Imm, Cycles: 2, Effect: Read},
	0xEA: {OpCode: 0xEA, Command: NOP, AddressingMode: Imp, Cycles: 2, Effect: Read},
	0xEC: {OpCode: 0xEC, Command: CPX, AddressingMode: Abs, Cycles: 4, Effect: Read},
	0xED: {OpCode: 0xED, Command: SBC, AddressingMode: Abs, Cycles: 4, Effect: Read},
	0xEE: {OpCode: 0xEE, Command: INC, AddressingMode: Abs, Cycles: 6, Effect: RMW},

	0xF0: {OpCode: 0xF0, Command: BEQ, AddressingMode: Rel, Cycles: 2, PageSensitive: true, Effect: Flow},
	0xF1: {OpCode: 0xF1, Command: SBC, AddressingMode: IndY, Cycles: 5, PageSensitive: true, Effect: Read},
	0xF5: {OpCode: 0xF5, Command: SBC, AddressingMode: ZpX, Cycles: 4, Effect: Read},
	0xF6: {OpCode: 0xF6, Command: INC, AddressingMode: ZpX, Cycles: 6, Effect: RMW},
	0xF8: {OpCode: 0xF8, Command: SED, AddressingMode: P, Cycles: 2, Effect: Read},
	0xF9: {OpCode: 0xF9, Command: SBC, AddressingMode: AbsY, Cycles: 4, PageSensitive: true, Effect: Read},
	0xFD: {OpCode: 0xFD, Command: SBC, AddressingMode: AbsX, Cycles: 4, PageSensitive: true, Effect: Read},
	0xFE: {OpCode: 0xFE, Command: INC, AddressingMode: AbsX, Cycles: 7, Effect: RMW},

	// documented NOP aliases — the handful of undocumented opcodes this
	// table accounts for, per the "small set of documented aliases"
	// carve-out.
	0x1A: {OpCode: 0x1A, Command: NOP, AddressingMode: Imp, Cycles: 2, Effect: Read},
	0x3A: {OpCode: 0x3A, Command: NOP, AddressingMode: Imp, Cycles: 2, Effect: Read},
	0x5A: {OpCode: 0x5A, Command: NOP, AddressingMode: Imp, Cycles: 2, Effect: Read},
	0x7A: {OpCode: 0x7A, Command: NOP, AddressingMode: Imp, Cycles: 2, Effect: Read},
	0xDA: {OpCode: 0xDA, Command: NOP, AddressingMode: Imp, Cycles: 2, Effect: Read},
	0xFA: {OpCode: 0xFA, Command: NOP, AddressingMode: Imp, Cycles: 2, Effect: Read},
}
