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

var messages = map[Errno]string{
	UnknownInstructionTrap: "unknown instruction (%#02x) at %#04x",
	ProgramCounterCycled:   "program counter cycled back to 0x0000",

	InvalidOperand:       "invalid operand for %s: %v",
	DisallowedREXMixing:  "register %s cannot be encoded alongside a register requiring REX",
	InvalidScale:         "index scale %d is not one of {1,2,4,8}",
	IndexWithoutBase:     "index register set without a base register",

	UnresolvedSymbol:     "unresolved symbol %q",
	PointerValueMismatch: "symbol %q referenced as pointer but is not",
	LinkerReused:         "linker instance reused after producing a function",

	PageAcquisitionFailed: "failed to acquire executable pages: %v",
	PageProtectionFailed:  "failed to change page protection: %v",

	InvalidROMMagic:     "invalid iNES magic bytes",
	ROMTruncated:        "ROM file is truncated (%s)",
	UnsupportedMapper:   "unsupported mapper id %d",
	CartridgeMissing:    "no cartridge attached",

	RepositoryMiss: "no cached artifact for tag %#016x addr %#04x",
}
