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

import (
	"github.com/sixfiveoh/sixfiveoh/memory"
)

// FunctionDisassembler recovers a Function from a memory source: it
// decodes instructions starting at an entry point, following both
// fall-through and conditional-branch targets, until every reachable
// straight-line run has been captured as a Branch.
type FunctionDisassembler struct {
	data memory.Data
}

// New returns a FunctionDisassembler reading from data.
func New(data memory.Data) *FunctionDisassembler {
	return &FunctionDisassembler{data: data}
}

// Disassemble recovers the Function entered at entry. A function
// entered below memory.CartridgeBase is marked non-cacheable, since
// that region is writable by the running program and a cached compiled
// artifact there could go stale without any tag change to catch it.
func (fd *FunctionDisassembler) Disassemble(entry uint16) (*Function, error) {
	f := &Function{
		Entry:     entry,
		Tag:       fd.data.Tag(),
		Cacheable: memory.IsCacheable(entry),
		index:     map[uint16]int{},
	}

	if _, err := fd.getOrBuildBranch(f, entry); err != nil {
		return nil, err
	}
	return f, nil
}

// getOrBuildBranch returns the index of the branch starting at addr,
// building it if necessary. The branch is registered in the function's
// index BEFORE buildBranch recurses into it, so a branch whose
// successor loops back to addr finds it already present instead of
// recursing forever.
func (fd *FunctionDisassembler) getOrBuildBranch(f *Function, addr uint16) (int, error) {
	if idx, ok := f.index[addr]; ok {
		return idx, nil
	}

	idx := len(f.branches)
	f.branches = append(f.branches, Branch{Start: addr})
	f.index[addr] = idx

	if err := fd.buildBranch(f, idx, addr); err != nil {
		return idx, err
	}
	return idx, nil
}

// buildBranch decodes instructions starting at addr and appends them to
// the branch at idx until it reaches a branching instruction. A
// conditionally-branching instruction also registers its two successor
// branches (falsy = fall-through, truthy = the relative-branch target)
// before appending itself, so those successors are already indexed by
// the time this branch's slice is considered complete.
func (fd *FunctionDisassembler) buildBranch(f *Function, idx int, addr uint16) error {
	for {
		instr, err := Decode(fd.data, addr)
		if err != nil {
			return err
		}

		bi := BranchInstruction{Instr: instr, Truthy: noBranch, Falsy: noBranch}

		if instr.IsConditionalBranch() {
			nextAddr := instr.NextAddress()

			falsyIdx, err := fd.getOrBuildBranch(f, nextAddr)
			if err != nil {
				return err
			}

			target := uint16(int32(nextAddr) + int32(int8(instr.Operand)))
			truthyIdx, err := fd.getOrBuildBranch(f, target)
			if err != nil {
				return err
			}

			bi.Falsy = falsyIdx
			bi.Truthy = truthyIdx
		}

		f.branches[idx].Instructions = append(f.branches[idx].Instructions, bi)

		if instr.IsBranching() {
			return nil
		}
		addr = instr.NextAddress()
	}
}
