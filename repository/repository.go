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

// Package repository caches compiled function artifacts keyed by
// cartridge tag and entry address, evicting least-recently-used entries
// and running each evicted entry's finalizer.
package repository

import "container/list"

// DefaultCapacity is the number of entries the cache holds before it
// starts evicting.
const DefaultCapacity = 1000

// Key identifies a cached artifact: the mapper's tag at the time the
// artifact was compiled, and the guest address it was entered at.
type Key struct {
	Tag     uint64
	Address uint16
}

// Disassembler recovers a Function at an address; it is the seam
// between Repository and the disassembly package so tests can supply a
// stub.
type Disassembler interface {
	Disassemble(addr uint16) (Function, error)
}

// Function is the subset of disassembly.Function that Repository cares
// about: whether the recovered function may be cached at all.
type Function interface {
	IsCacheable() bool
}

// Packer compiles a recovered function into a cacheable artifact T —
// an interpreter-ready form, scripting text, or native code, depending
// on which core owns this Repository.
type Packer[T any] func(fn Function) (T, error)

// Finalizer releases whatever resources an evicted artifact holds: JIT
// memory, registered scripting references, and so on.
type Finalizer[T any] func(T)

type entry[T any] struct {
	key      Key
	artifact T
}

// Repository is a tag-and-address-keyed LRU cache of compiled function
// artifacts, producer-on-miss: a Get for a key that isn't cached
// disassembles and packs a fresh artifact, caching it only if the
// recovered function is cacheable.
type Repository[T any] struct {
	capacity int
	disasm   Disassembler
	pack     Packer[T]
	finalize Finalizer[T]
	order    *list.List // most-recently-used at the front
	elements map[Key]*list.Element
}

// New builds a Repository with the given capacity (DefaultCapacity if
// <= 0), backed by disasm for cache misses, pack to compile a recovered
// function, and finalize to release an artifact's resources when it is
// evicted or explicitly removed.
func New[T any](capacity int, disasm Disassembler, pack Packer[T], finalize Finalizer[T]) *Repository[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Repository[T]{
		capacity: capacity,
		disasm:   disasm,
		pack:     pack,
		finalize: finalize,
		order:    list.New(),
		elements: make(map[Key]*list.Element),
	}
}

// Get returns the cached artifact for (tag, addr), building one on
// miss. A freshly built artifact is inserted into the cache only if the
// recovered function is cacheable; otherwise ownership passes to the
// caller, who is responsible for finalizing it after use.
func (r *Repository[T]) Get(tag uint64, addr uint16) (T, error) {
	key := Key{Tag: tag, Address: addr}

	if el, ok := r.elements[key]; ok {
		r.order.MoveToFront(el)
		return el.Value.(*entry[T]).artifact, nil
	}

	fn, err := r.disasm.Disassemble(addr)
	if err != nil {
		var zero T
		return zero, err
	}

	artifact, err := r.pack(fn)
	if err != nil {
		var zero T
		return zero, err
	}

	if fn.IsCacheable() {
		r.insert(key, artifact)
	}

	return artifact, nil
}

func (r *Repository[T]) insert(key Key, artifact T) {
	el := r.order.PushFront(&entry[T]{key: key, artifact: artifact})
	r.elements[key] = el

	for r.order.Len() > r.capacity {
		r.evictOldest()
	}
}

func (r *Repository[T]) evictOldest() {
	oldest := r.order.Back()
	if oldest == nil {
		return
	}
	e := oldest.Value.(*entry[T])
	r.order.Remove(oldest)
	delete(r.elements, e.key)
	if r.finalize != nil {
		r.finalize(e.artifact)
	}
}

// Evict removes (tag, addr) from the cache if present, running its
// finalizer.
func (r *Repository[T]) Evict(tag uint64, addr uint16) {
	key := Key{Tag: tag, Address: addr}
	el, ok := r.elements[key]
	if !ok {
		return
	}
	e := el.Value.(*entry[T])
	r.order.Remove(el)
	delete(r.elements, key)
	if r.finalize != nil {
		r.finalize(e.artifact)
	}
}

// Clear empties the cache, running every remaining entry's finalizer.
func (r *Repository[T]) Clear() {
	for el := r.order.Front(); el != nil; el = el.Next() {
		if r.finalize != nil {
			r.finalize(el.Value.(*entry[T]).artifact)
		}
	}
	r.order.Init()
	r.elements = make(map[Key]*list.Element)
}

// Len returns the number of artifacts currently cached.
func (r *Repository[T]) Len() int {
	return r.order.Len()
}
