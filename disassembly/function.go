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

package disassembly

import "github.com/sixfiveoh/sixfiveoh/instructions"

// noBranch marks a BranchInstruction field that has no successor: every
// non-conditional instruction's Truthy/Falsy are noBranch.
const noBranch = -1

// BranchInstruction is one decoded instruction inside a Branch. Only
// conditional branches carry successor edges; everything else is a
// plain instruction that falls through to the branch's next entry.
type BranchInstruction struct {
	Instr  instructions.Instruction
	Truthy int
	Falsy  int
}

// IsConditional reports whether this instruction carries successor
// branch edges.
func (bi BranchInstruction) IsConditional() bool {
	return bi.Truthy != noBranch
}

// Branch is a straight-line run of instructions starting at Start and
// ending in a branching instruction (the last entry in Instructions).
type Branch struct {
	Start        uint16
	Instructions []BranchInstruction
}

// Function is a recovered control-flow graph: an entry address, the
// cartridge tag it was disassembled against, a cacheable flag, and its
// branches stored in an indexed vector (a Function Arena) rather than
// behind heap pointers, so conditional successors can reference a
// branch — including the branch currently being built — without an
// ownership cycle. Branch 0 is always the root: its Start equals Entry,
// and branches appear in the order getOrBuildBranch first created them,
// which back-ends rely on to emit the root branch first.
type Function struct {
	Entry     uint16
	Tag       uint64
	Cacheable bool

	branches []Branch
	index    map[uint16]int
}

// Root returns the function's entry branch, branch 0.
func (f *Function) Root() Branch {
	return f.branches[0]
}

// Branch returns the branch at the given index. Conditional
// BranchInstruction.Truthy/Falsy values are indices into this same
// slice; every such index is guaranteed to be valid for the function it
// came from.
func (f *Function) Branch(index int) Branch {
	return f.branches[index]
}

// NumBranches returns how many branches the function has.
func (f *Function) NumBranches() int {
	return len(f.branches)
}

// BranchAt returns the index of the branch starting at addr, if one has
// been built.
func (f *Function) BranchAt(addr uint16) (int, bool) {
	idx, ok := f.index[addr]
	return idx, ok
}

// IsCacheable reports whether the repository may keep this function
// cached across calls, satisfying repository.Function.
func (f *Function) IsCacheable() bool {
	return f.Cacheable
}
