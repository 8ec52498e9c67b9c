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

package errors

// Error categories, grouped by the pipeline stage that raises them.
const (
	// decode / runtime
	UnknownInstructionTrap Errno = iota
	ProgramCounterCycled

	// assembler / encoder
	InvalidOperand
	DisallowedREXMixing
	InvalidScale
	IndexWithoutBase

	// linker
	UnresolvedSymbol
	PointerValueMismatch
	LinkerReused

	// memory manager
	PageAcquisitionFailed
	PageProtectionFailed

	// cartridge / ROM loading
	InvalidROMMagic
	ROMTruncated
	UnsupportedMapper
	CartridgeMissing

	// repository
	RepositoryMiss
)
