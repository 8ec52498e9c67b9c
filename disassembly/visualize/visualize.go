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

// Package visualize renders a recovered disassembly.Function as a
// Graphviz dot file, for inspecting the control-flow graph the
// disassembler built rather than just reading its instructions in
// address order. disassembly.Function stores its branches in a flat,
// index-addressed arena rather than behind pointers, so this package's
// first job is to rebuild the same graph as an ordinary pointer
// structure memviz can walk.
package visualize

import (
	"fmt"
	"io"

	"github.com/bradleyjkemp/memviz"

	"github.com/sixfiveoh/sixfiveoh/disassembly"
)

// node is one basic block of the rebuilt graph: a straight-line run of
// instruction text ending in the branch memviz draws as an outgoing
// pointer. Truthy and Falsy are both set for a branch that ends in a
// conditional branch and both nil for every other branch, unconditional
// jumps included.
type node struct {
	Start        uint16
	Instructions []string
	Truthy       *node
	Falsy        *node
}

// Graph writes fn's control-flow graph to w as a Graphviz dot file.
func Graph(w io.Writer, fn *disassembly.Function) error {
	nodes := make([]*node, fn.NumBranches())
	for i := 0; i < fn.NumBranches(); i++ {
		b := fn.Branch(i)
		n := &node{Start: b.Start}
		for _, bi := range b.Instructions {
			n.Instructions = append(n.Instructions, bi.Instr.String())
		}
		nodes[i] = n
	}

	for i := 0; i < fn.NumBranches(); i++ {
		b := fn.Branch(i)
		if len(b.Instructions) == 0 {
			continue
		}
		last := b.Instructions[len(b.Instructions)-1]
		if last.IsConditional() {
			nodes[i].Truthy = nodes[last.Truthy]
			nodes[i].Falsy = nodes[last.Falsy]
		}
	}

	root := nodes[0]
	if root == nil {
		return fmt.Errorf("visualize: function at %#04x has no branches", fn.Entry)
	}

	memviz.Map(w, root)
	return nil
}
