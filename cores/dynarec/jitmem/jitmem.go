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

// Package jitmem is the executable memory manager: it owns the mmap'd
// pages the linker copies finished machine code into, tiles each block
// into best-fit allocatable frames, and flips a block's page protection
// between writable and executable as the linker and the dynarec core
// need it. A block is never both writable and executable at once.
package jitmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// pagesPerBlock is the minimum number of pages a fresh block reserves.
const pagesPerBlock = 4

// overhangThreshold is the leftover size a frame must exceed to be
// split into its own free frame rather than handed whole to the
// requester.
const overhangThreshold = 8

// maxIdleBlocks is the number of wholly-empty blocks the manager keeps
// around before it starts returning their pages to the OS.
const maxIdleBlocks = 2

type frameState uint8

const (
	stateFree frameState = iota
	stateInUse
)

// frame describes one contiguous tile of a block.
type frame struct {
	offset int
	size   int
	state  frameState
}

// block is one mmap'd region of executable memory, tiled into frames.
// mem is writable RAM mapped over the same pages that, once protected
// executable, hold rx.
type block struct {
	mem        []byte // valid only while writable
	pageLen    int
	executable bool
	frames     []frame
}

func newBlock(pageLen int) (*block, error) {
	mem, err := unix.Mmap(-1, 0, pageLen,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("jitmem: mmap: %w", err)
	}
	return &block{
		mem:     mem,
		pageLen: pageLen,
		frames:  []frame{{offset: 0, size: pageLen, state: stateFree}},
	}, nil
}

func (b *block) remapWritable() error {
	if !b.executable {
		return nil
	}
	if err := unix.Mprotect(b.mem, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return fmt.Errorf("jitmem: mprotect writable: %w", err)
	}
	b.executable = false
	return nil
}

func (b *block) remapExecutable() error {
	if b.executable {
		return nil
	}
	if err := unix.Mprotect(b.mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return fmt.Errorf("jitmem: mprotect executable: %w", err)
	}
	b.executable = true
	return nil
}

func (b *block) destroy() error {
	return unix.Munmap(b.mem)
}

// allocate runs the best-fit-with-first-fit-fallback frame allocator
// described by §4.7: the smallest free frame that still fits wins; if
// none is large enough to consider "best" the first free frame that
// fits is used instead.
func (b *block) allocate(size int) int {
	best, first := -1, -1
	for i, f := range b.frames {
		if f.state != stateFree || f.size < size {
			continue
		}
		if first == -1 {
			first = i
		}
		if best == -1 || f.size < b.frames[best].size {
			best = i
		}
	}

	idx := best
	if idx == -1 {
		idx = first
	}
	if idx == -1 {
		return -1
	}

	f := b.frames[idx]
	b.frames[idx].state = stateInUse
	if remaining := f.size - size; remaining > overhangThreshold {
		b.frames[idx].size = size
		tail := frame{offset: f.offset + size, size: remaining, state: stateFree}
		b.frames = append(b.frames[:idx+1], append([]frame{tail}, b.frames[idx+1:]...)...)
	}
	return b.frames[idx].offset
}

// free returns the frame at offset to the free pool, merging it with
// any adjacent free neighbours.
func (b *block) free(offset int) {
	idx := -1
	for i, f := range b.frames {
		if f.offset == offset {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	b.frames[idx].state = stateFree

	if idx+1 < len(b.frames) && b.frames[idx+1].state == stateFree {
		b.frames[idx].size += b.frames[idx+1].size
		b.frames = append(b.frames[:idx+1], b.frames[idx+2:]...)
	}
	if idx > 0 && b.frames[idx-1].state == stateFree {
		b.frames[idx-1].size += b.frames[idx].size
		b.frames = append(b.frames[:idx], b.frames[idx+1:]...)
	}
}

func (b *block) empty() bool {
	return len(b.frames) == 1 && b.frames[0].state == stateFree
}

// handle identifies one allocation so the caller can free it later.
type handle struct {
	b      *block
	offset int
	size   int
}

// MemoryManager owns every executable-memory block the dynarec core has
// allocated and tiles new requests across them, growing by new blocks
// only when nothing existing fits.
type MemoryManager struct {
	pageSize int
	blocks   []*block
	handles  map[*handle]struct{}
}

// New returns a MemoryManager whose blocks are sized in multiples of
// the platform's page size.
func New() *MemoryManager {
	return &MemoryManager{
		pageSize: unix.Getpagesize(),
		handles:  make(map[*handle]struct{}),
	}
}

// Callback receives the writable pointer and the executable entry
// pointer for bytes just copied into place, so a linker can patch
// relocations before the block is remapped executable.
type Callback func(writable []byte, executable uintptr)

// Handle identifies one allocation, opaque to callers beyond Free.
type Handle = *handle

// Add copies bytes into the first existing block, in list order, with a
// free frame that fits them (allocating a fresh block if none do),
// invokes callback with the writable slice and
// the final executable entry address while the block is still writable,
// then remaps the block executable and returns the entry address and a
// Handle for later deallocation.
func (m *MemoryManager) Add(bytes []byte, callback Callback) (uintptr, Handle, error) {
	for _, b := range m.blocks {
		if entry, h, err := m.tryAdd(b, bytes, callback); err == nil && h != nil {
			return entry, h, nil
		}
	}

	pages := pagesPerBlock
	if need := (len(bytes) + m.pageSize - 1) / m.pageSize * 4; need > pages {
		pages = need
	}
	b, err := newBlock(pages * m.pageSize)
	if err != nil {
		return 0, nil, err
	}
	m.blocks = append([]*block{b}, m.blocks...)

	entry, h, err := m.tryAdd(b, bytes, callback)
	if err != nil {
		return 0, nil, err
	}
	if h == nil {
		return 0, nil, fmt.Errorf("jitmem: %d bytes do not fit a fresh %d-page block", len(bytes), pages)
	}
	return entry, h, nil
}

func (m *MemoryManager) tryAdd(b *block, bytes []byte, callback Callback) (uintptr, Handle, error) {
	if err := b.remapWritable(); err != nil {
		return 0, nil, err
	}
	offset := b.allocate(len(bytes))
	if offset == -1 {
		return 0, nil, b.remapExecutable()
	}

	copy(b.mem[offset:], bytes)
	base := uintptr(unsafe.Pointer(&b.mem[0]))
	entry := base + uintptr(offset)

	if callback != nil {
		callback(b.mem[offset:offset+len(bytes)], entry)
	}

	if err := b.remapExecutable(); err != nil {
		return 0, nil, err
	}

	h := &handle{b: b, offset: offset, size: len(bytes)}
	m.handles[h] = struct{}{}
	return entry, h, nil
}

// Free releases an allocation, merging its frame with free neighbours
// and destroying its block once the manager is holding more than
// maxIdleBlocks wholly-empty blocks.
func (m *MemoryManager) Free(h Handle) error {
	if h == nil {
		return nil
	}
	if _, ok := m.handles[h]; !ok {
		return nil
	}
	delete(m.handles, h)

	b := h.b
	if err := b.remapWritable(); err != nil {
		return err
	}
	b.free(h.offset)
	if err := b.remapExecutable(); err != nil {
		return err
	}

	if !b.empty() {
		return nil
	}
	return m.reclaimIdle()
}

func (m *MemoryManager) reclaimIdle() error {
	idle := 0
	for _, b := range m.blocks {
		if b.empty() {
			idle++
		}
	}
	if idle <= maxIdleBlocks {
		return nil
	}

	kept := m.blocks[:0]
	for _, b := range m.blocks {
		if b.empty() && idle > maxIdleBlocks {
			if err := b.destroy(); err != nil {
				return err
			}
			idle--
			continue
		}
		kept = append(kept, b)
	}
	m.blocks = kept
	return nil
}

// Close releases every block the manager still owns.
func (m *MemoryManager) Close() error {
	for _, b := range m.blocks {
		if err := b.destroy(); err != nil {
			return err
		}
	}
	m.blocks = nil
	return nil
}
