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
	"fmt"
	"strings"

	"github.com/sixfiveoh/sixfiveoh/disassembly"
	"github.com/sixfiveoh/sixfiveoh/instructions"
	"github.com/sixfiveoh/sixfiveoh/registers"
)

// functionName is the global a compiled Function is registered under,
// and the Lua identifier the repository's packer retrieves afterwards.
func functionName(entry uint16) string {
	return fmt.Sprintf("fn_%04x", entry)
}

func label(addr uint16) string {
	return fmt.Sprintf("label_%04x", addr)
}

// generateSource emits the Lua source for fn's entire control-flow
// graph as a single function, per §4.11's shape: PSW unpacked into
// booleans on entry, an ::label_ADDR:: for every instruction address,
// and a single exit point that repacks PSW before returning.
func generateSource(fn *disassembly.Function) (string, string) {
	name := functionName(fn.Entry)
	var b strings.Builder

	fmt.Fprintf(&b, "function %s(a, x, y, s, p, cycles)\n", name)
	b.WriteString("  local C, Z, I, D, B, V, N = host.unpack(p)\n")
	b.WriteString("  local pc, reason\n")

	for i := 0; i < fn.NumBranches(); i++ {
		emitBranch(&b, fn, fn.Branch(i))
	}

	b.WriteString("  ::eof::\n")
	b.WriteString("  p = host.pack(C, Z, I, D, B, V, N)\n")
	b.WriteString("  return a, x, y, s, p, cycles, pc, reason\n")
	b.WriteString("end\n")

	return name, b.String()
}

func emitBranch(b *strings.Builder, fn *disassembly.Function, br disassembly.Branch) {
	for _, bi := range br.Instructions {
		instr := bi.Instr
		fmt.Fprintf(b, "  ::%s::\n", label(instr.Address))
		fmt.Fprintf(b, "  cycles = cycles - %d\n", instr.Cycles)

		if instr.IsConditionalBranch() {
			emitConditionalBranch(b, fn, bi, instr)
			continue
		}

		emitBody(b, instr)

		if instr.IsBranching() {
			continue // the body above already set pc/reason and goto eof.
		}
		fmt.Fprintf(b, "  goto %s\n", label(instr.NextAddress()))
	}
}

func emitConditionalBranch(b *strings.Builder, fn *disassembly.Function, bi disassembly.BranchInstruction, instr instructions.Instruction) {
	fmt.Fprintf(b, "  if cycles <= 0 then pc = %#04x; reason = %d; goto eof end\n",
		instr.Address, int(registers.CyclesExhausted))

	cond := branchCondition(instr.Command)
	truthy := label(fn.Branch(bi.Truthy).Start)
	falsy := label(fn.Branch(bi.Falsy).Start)
	fmt.Fprintf(b, "  if %s then goto %s else goto %s end\n", cond, truthy, falsy)
}

func branchCondition(cmd instructions.Command) string {
	switch cmd {
	case instructions.BCC:
		return "not C"
	case instructions.BCS:
		return "C"
	case instructions.BEQ:
		return "Z"
	case instructions.BNE:
		return "not Z"
	case instructions.BMI:
		return "N"
	case instructions.BPL:
		return "not N"
	case instructions.BVC:
		return "not V"
	case instructions.BVS:
		return "V"
	}
	return "false"
}

// emitBody emits one instruction's Lua statements, assuming cycles has
// already been decremented by the caller. Branching instructions other
// than the conditional branches (handled separately) set pc and reason
// and fall into "goto eof" themselves, since none of them fall through
// to a next label the way a plain instruction does.
func emitBody(b *strings.Builder, instr instructions.Instruction) {
	mode := int(instr.AddressingMode)
	operand := instr.Operand

	switch instr.Command {
	case instructions.ADC:
		fmt.Fprintf(b, "  a, p = host.adc(p, a, host.load(%d, %#04x, x, y))\n", mode, operand)
	case instructions.SBC:
		fmt.Fprintf(b, "  a, p = host.sbc(p, a, host.load(%d, %#04x, x, y))\n", mode, operand)
	case instructions.AND:
		fmt.Fprintf(b, "  a, p = host.bitop(p, a, host.load(%d, %#04x, x, y), \"and\")\n", mode, operand)
	case instructions.ORA:
		fmt.Fprintf(b, "  a, p = host.bitop(p, a, host.load(%d, %#04x, x, y), \"or\")\n", mode, operand)
	case instructions.EOR:
		fmt.Fprintf(b, "  a, p = host.bitop(p, a, host.load(%d, %#04x, x, y), \"xor\")\n", mode, operand)
	case instructions.BIT:
		fmt.Fprintf(b, "  p = host.bittest(p, a, host.load(%d, %#04x, x, y))\n", mode, operand)
	case instructions.CMP:
		fmt.Fprintf(b, "  p = host.cmp(p, a, host.load(%d, %#04x, x, y))\n", mode, operand)
	case instructions.CPX:
		fmt.Fprintf(b, "  p = host.cmp(p, x, host.load(%d, %#04x, x, y))\n", mode, operand)
	case instructions.CPY:
		fmt.Fprintf(b, "  p = host.cmp(p, y, host.load(%d, %#04x, x, y))\n", mode, operand)

	case instructions.LDA:
		fmt.Fprintf(b, "  a = host.load(%d, %#04x, x, y); p = host.setnz(p, a)\n", mode, operand)
	case instructions.LDX:
		fmt.Fprintf(b, "  x = host.load(%d, %#04x, x, y); p = host.setnz(p, x)\n", mode, operand)
	case instructions.LDY:
		fmt.Fprintf(b, "  y = host.load(%d, %#04x, x, y); p = host.setnz(p, y)\n", mode, operand)
	case instructions.STA:
		fmt.Fprintf(b, "  host.store(%d, %#04x, x, y, a)\n", mode, operand)
	case instructions.STX:
		fmt.Fprintf(b, "  host.store(%d, %#04x, x, y, x)\n", mode, operand)
	case instructions.STY:
		fmt.Fprintf(b, "  host.store(%d, %#04x, x, y, y)\n", mode, operand)

	case instructions.ASL, instructions.LSR, instructions.ROL, instructions.ROR:
		op := map[instructions.Command]string{
			instructions.ASL: "asl", instructions.LSR: "lsr",
			instructions.ROL: "rol", instructions.ROR: "ror",
		}[instr.Command]
		emitRMW(b, op, instr, mode, operand)
	case instructions.INC:
		emitRMW(b, "inc", instr, mode, operand)
	case instructions.DEC:
		emitRMW(b, "dec", instr, mode, operand)

	case instructions.INX:
		b.WriteString("  x, p = host.inc(p, x)\n")
	case instructions.INY:
		b.WriteString("  y, p = host.inc(p, y)\n")
	case instructions.DEX:
		b.WriteString("  x, p = host.dec(p, x)\n")
	case instructions.DEY:
		b.WriteString("  y, p = host.dec(p, y)\n")
	case instructions.TAX:
		b.WriteString("  x = a; p = host.setnz(p, x)\n")
	case instructions.TAY:
		b.WriteString("  y = a; p = host.setnz(p, y)\n")
	case instructions.TXA:
		b.WriteString("  a = x; p = host.setnz(p, a)\n")
	case instructions.TYA:
		b.WriteString("  a = y; p = host.setnz(p, a)\n")
	case instructions.TSX:
		b.WriteString("  x = s; p = host.setnz(p, x)\n")
	case instructions.TXS:
		b.WriteString("  s = x\n")
	case instructions.PHA:
		b.WriteString("  s = host.push(s, a)\n")
	case instructions.PLA:
		b.WriteString("  a, s = host.pull(s); p = host.setnz(p, a)\n")
	case instructions.PHP:
		b.WriteString("  s = host.push(s, host.pack(C, Z, I, D, true, V, N))\n")
	case instructions.PLP:
		b.WriteString("  local pulled; pulled, s = host.pull(s)\n")
		b.WriteString("  C, Z, I, D, B, V, N = host.unpack(pulled)\n")
	case instructions.CLC:
		b.WriteString("  C = false\n")
	case instructions.SEC:
		b.WriteString("  C = true\n")
	case instructions.CLD:
		b.WriteString("  D = false\n")
	case instructions.SED:
		b.WriteString("  D = true\n")
	case instructions.CLI:
		b.WriteString("  I = false\n")
	case instructions.SEI:
		b.WriteString("  I = true\n")
	case instructions.CLV:
		b.WriteString("  V = false\n")
	case instructions.NOP:
		b.WriteString("  -- nop\n")

	case instructions.JMP:
		fmt.Fprintf(b, "  pc = host.jmptarget(%d, %#04x)\n", mode, operand)
		fmt.Fprintf(b, "  reason = %d\n", int(registers.Jump))
		fmt.Fprintf(b, "  if pc == %#04x then reason = %d end\n", instr.Address, int(registers.InfiniteLoop))
		b.WriteString("  goto eof\n")
	case instructions.JSR:
		fmt.Fprintf(b, "  s = host.push16(s, %#04x)\n", instr.NextAddress()-1)
		fmt.Fprintf(b, "  pc = %#04x\n", operand)
		fmt.Fprintf(b, "  reason = %d\n", int(registers.Jump))
		b.WriteString("  goto eof\n")
	case instructions.RTS:
		b.WriteString("  local ret; ret, s = host.pull16(s)\n")
		b.WriteString("  pc = ret + 1\n")
		fmt.Fprintf(b, "  reason = %d\n", int(registers.Return))
		b.WriteString("  goto eof\n")
	case instructions.RTI:
		b.WriteString("  local pret; pret, s = host.pull(s)\n")
		b.WriteString("  C, Z, I, D, B, V, N = host.unpack(pret)\n")
		b.WriteString("  local pcret; pcret, s = host.pull16(s)\n")
		b.WriteString("  pc = pcret\n")
		fmt.Fprintf(b, "  reason = %d\n", int(registers.Return))
		b.WriteString("  goto eof\n")
	case instructions.BRK:
		fmt.Fprintf(b, "  pc = %#04x\n", instr.NextAddress())
		fmt.Fprintf(b, "  reason = %d\n", int(registers.Break))
		b.WriteString("  goto eof\n")

	default: // Unknown
		fmt.Fprintf(b, "  pc = %#04x\n", instr.Address)
		fmt.Fprintf(b, "  reason = %d\n", int(registers.UnknownInstruction))
		b.WriteString("  goto eof\n")
	}
}

func emitRMW(b *strings.Builder, op string, instr instructions.Instruction, mode int, operand uint16) {
	if instr.AddressingMode == instructions.Acc {
		fmt.Fprintf(b, "  a, p = host.%s(p, a)\n", op)
		return
	}
	fmt.Fprintf(b, "  local v = host.load(%d, %#04x, x, y)\n", mode, operand)
	fmt.Fprintf(b, "  v, p = host.%s(p, v)\n", op)
	fmt.Fprintf(b, "  host.store(%d, %#04x, x, y, v)\n", mode, operand)
}
