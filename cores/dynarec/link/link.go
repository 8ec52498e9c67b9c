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

// Package link merges the named Sections a FunctionTranslator produced
// into one contiguous stream, copies it into executable memory, and
// patches every Reference left behind by the assembler: a jump or call
// to another section resolves to that section's offset within the
// merged stream; anything else resolves against a symbol registry of
// fixed host-helper addresses.
package link

import (
	"fmt"

	"github.com/sixfiveoh/sixfiveoh/cores/dynarec/asm"
	"github.com/sixfiveoh/sixfiveoh/cores/dynarec/jitmem"
)

// Symbol is an entry in the registry a Linker resolves non-section
// References against: a fixed host-helper address. Pointer symbols are
// written as their absolute Value; an absolute Reference (Base == 0)
// against a non-pointer symbol is a linker error, matching §4.6's
// "symbol referenced as pointer but is not". A Reference with Base > 0
// is always written relative to its own instruction.
type Symbol struct {
	Value   uint64
	Pointer bool
}

// Registry maps a symbol name to its resolved value.
type Registry map[string]Symbol

// Linker merges sections into one function and resolves references
// against a symbol Registry and a jitmem.MemoryManager. Per §4.6, one
// Linker instance produces exactly one function: Link may only be
// called once.
type Linker struct {
	registry       Registry
	mem            *jitmem.MemoryManager
	used           bool
	sectionOffsets map[string]int
}

// New returns a Linker that resolves non-section references against
// registry and allocates the merged function into mem.
func New(registry Registry, mem *jitmem.MemoryManager) *Linker {
	return &Linker{registry: registry, mem: mem}
}

// Link merges sections (entry placed first), allocates the merged
// bytes into executable memory, patches every reference, and returns
// the function's executable entry address and the jitmem.Handle needed
// to free it later.
func (l *Linker) Link(sections []*asm.Section, entry string) (uintptr, jitmem.Handle, error) {
	if l.used {
		return 0, nil, fmt.Errorf("link: this Linker has already produced a function")
	}
	l.used = true

	ordered, offsets, err := order(sections, entry)
	if err != nil {
		return 0, nil, err
	}
	l.sectionOffsets = offsets

	merged := make([]byte, 0, totalLen(ordered))
	for _, s := range ordered {
		merged = append(merged, s.Code...)
	}

	var patchErr error
	patch := func(writable []byte, executable uintptr) {
		for _, s := range ordered {
			base := offsets[s.Name]
			for _, ref := range s.References {
				if err := l.patch(writable, executable, base, ref); err != nil {
					patchErr = err
					return
				}
			}
		}
	}

	entryPtr, h, err := l.mem.Add(merged, patch)
	if err != nil {
		return 0, nil, err
	}
	if patchErr != nil {
		return 0, nil, patchErr
	}
	return entryPtr, h, nil
}

// order places the entry section first and records each section's
// offset within the merged stream.
func order(sections []*asm.Section, entry string) ([]*asm.Section, map[string]int, error) {
	var head *asm.Section
	rest := make([]*asm.Section, 0, len(sections))
	for _, s := range sections {
		if s.Name == entry {
			head = s
			continue
		}
		rest = append(rest, s)
	}
	if head == nil {
		return nil, nil, fmt.Errorf("link: entry section %q not found", entry)
	}

	ordered := append([]*asm.Section{head}, rest...)
	offsets := make(map[string]int, len(ordered))
	off := 0
	for _, s := range ordered {
		offsets[s.Name] = off
		off += len(s.Code)
	}
	return ordered, offsets, nil
}

func totalLen(sections []*asm.Section) int {
	n := 0
	for _, s := range sections {
		n += len(s.Code)
	}
	return n
}

// patch resolves one Reference belonging to the section at sectionBase
// within the merged stream and writes it into writable, whose address
// once executable is executableBase.
func (l *Linker) patch(writable []byte, executableBase uintptr, sectionBase int, ref asm.Reference) error {
	var destination uint64
	var isPointer bool

	if targetBase, ok := l.sectionOffset(ref.Name); ok {
		destination = uint64(executableBase) + uint64(targetBase)
		isPointer = true
	} else {
		sym, ok := l.registry[ref.Name]
		if !ok {
			return fmt.Errorf("link: unresolved symbol %q", ref.Name)
		}
		destination = sym.Value
		isPointer = sym.Pointer
	}

	var value uint64
	if ref.Base > 0 {
		rip := uint64(executableBase) + uint64(sectionBase+ref.Base)
		value = destination - rip
	} else if isPointer {
		value = destination
	} else {
		return fmt.Errorf("link: symbol %q referenced as pointer but is not", ref.Name)
	}

	at := sectionBase + ref.Offset
	for i := 0; i < ref.Size; i++ {
		writable[at+i] = byte(value >> (8 * i))
	}
	return nil
}

func (l *Linker) sectionOffset(name string) (int, bool) {
	off, ok := l.sectionOffsets[name]
	return off, ok
}
