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
	"github.com/sixfiveoh/sixfiveoh/disassembly"
	"github.com/sixfiveoh/sixfiveoh/repository"
)

// disassemblerAdapter lets a *disassembly.FunctionDisassembler satisfy
// repository.Disassembler, whose Disassemble signature returns the
// narrow repository.Function interface rather than the concrete
// *disassembly.Function the codegen pass actually needs — the packer
// below recovers the concrete type with a type assertion.
type disassemblerAdapter struct {
	fd *disassembly.FunctionDisassembler
}

func (a disassemblerAdapter) Disassemble(addr uint16) (repository.Function, error) {
	return a.fd.Disassemble(addr)
}
