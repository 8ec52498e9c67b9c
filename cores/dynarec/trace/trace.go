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

// Package trace disassembles freshly linked native code back into
// human-readable x86-64, for diagnosing the dynarec back-end. It is
// off by default: Dump is a no-op unless Enabled is set, since decoding
// every compiled function would otherwise dominate cold-start time.
package trace

import (
	"fmt"
	"io"

	"golang.org/x/arch/x86/x86asm"
)

// Enabled gates Dump. cmd/sixfiveoh's disasm and bench modes turn it on
// for the duration of one run; nothing in this package ever flips it
// itself.
var Enabled bool

// Dump decodes code as a contiguous run of 64-bit x86 instructions and
// writes one GNU-syntax line per instruction to w, prefixed with label
// and the byte offset the instruction starts at. An undecodable byte
// sequence (possible where a still-unpatched Reference leaves a
// placeholder operand that happens to decode badly) is reported and
// skipped one byte at a time rather than aborting the whole dump.
func Dump(w io.Writer, label string, code []byte) {
	if !Enabled {
		return
	}
	for pc := 0; pc < len(code); {
		inst, err := x86asm.Decode(code[pc:], 64)
		if err != nil || inst.Len == 0 || inst.Op == 0 {
			fmt.Fprintf(w, "%s+%#02x: (undecodable: %v)\n", label, pc, err)
			pc++
			continue
		}
		fmt.Fprintf(w, "%s+%#02x: %s\n", label, pc, x86asm.GNUSyntax(inst, uint64(pc), nil))
		pc += inst.Len
	}
}
