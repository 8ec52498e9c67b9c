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

package repository_test

import (
	"testing"

	"github.com/sixfiveoh/sixfiveoh/repository"
)

type stubFunction struct {
	cacheable bool
}

func (f stubFunction) IsCacheable() bool { return f.cacheable }

type stubDisassembler struct {
	cacheable bool
	calls     int
}

func (d *stubDisassembler) Disassemble(addr uint16) (repository.Function, error) {
	d.calls++
	return stubFunction{cacheable: d.cacheable}, nil
}

func pack(fn repository.Function) (int, error) {
	return 0, nil
}

func TestGetCachesOnlyCacheableFunctions(t *testing.T) {
	d := &stubDisassembler{cacheable: false}
	r := repository.New(10, d, pack, nil)

	if _, err := r.Get(0xAA, 0x8000); err != nil {
		t.Fatal(err)
	}
	if r.Len() != 0 {
		t.Errorf("a non-cacheable function must not be inserted, Len() = %d", r.Len())
	}

	if _, err := r.Get(0xAA, 0x8000); err != nil {
		t.Fatal(err)
	}
	if d.calls != 2 {
		t.Errorf("a non-cacheable key must be rebuilt on every Get, calls = %d", d.calls)
	}
}

func TestGetReusesCachedArtifact(t *testing.T) {
	d := &stubDisassembler{cacheable: true}
	r := repository.New(10, d, pack, nil)

	if _, err := r.Get(0xAA, 0x8000); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get(0xAA, 0x8000); err != nil {
		t.Fatal(err)
	}
	if d.calls != 1 {
		t.Errorf("a cacheable key must only be disassembled once, calls = %d", d.calls)
	}
}

func TestLRUEvictsOldestAndRunsFinalizerOnce(t *testing.T) {
	finalized := map[uint16]int{}
	finalize := func(addr uint16) {
		finalized[addr]++
	}

	// 1001 distinct cacheable keys against a 1000-entry cache: the
	// first-inserted key is evicted and its finalizer runs exactly once,
	// the last-inserted key remains.
	repo := repository.New(1000, &sequentialDisassembler{}, func(fn repository.Function) (uint16, error) {
		return fn.(addressedFunction).addr, nil
	}, finalize)

	for addr := uint16(0); addr < 1001; addr++ {
		if _, err := repo.Get(0xAA, addr); err != nil {
			t.Fatal(err)
		}
	}

	if repo.Len() != 1000 {
		t.Fatalf("expected 1000 entries after 1001 inserts, got %d", repo.Len())
	}
	if finalized[0] != 1 {
		t.Errorf("expected the first-inserted key's finalizer to run exactly once, ran %d times", finalized[0])
	}
	if _, err := repo.Get(0xAA, 1000); err != nil {
		t.Fatal(err)
	}
	if finalized[1000] != 0 {
		t.Error("the last-inserted key must still be cached, not finalized")
	}
}

type addressedFunction struct {
	addr      uint16
	cacheable bool
}

func (f addressedFunction) IsCacheable() bool { return f.cacheable }

type sequentialDisassembler struct{}

func (d *sequentialDisassembler) Disassemble(addr uint16) (repository.Function, error) {
	return addressedFunction{addr: addr, cacheable: true}, nil
}

func TestEvictRemovesAndFinalizes(t *testing.T) {
	finalizedCount := 0
	d := &stubDisassembler{cacheable: true}
	r := repository.New(10, d, pack, func(int) { finalizedCount++ })

	if _, err := r.Get(0xAA, 0x8000); err != nil {
		t.Fatal(err)
	}
	r.Evict(0xAA, 0x8000)

	if r.Len() != 0 {
		t.Errorf("expected the entry to be removed, Len() = %d", r.Len())
	}
	if finalizedCount != 1 {
		t.Errorf("expected the finalizer to run once, ran %d times", finalizedCount)
	}
}

func TestClearFinalizesEveryEntry(t *testing.T) {
	finalizedCount := 0
	d := &sequentialDisassembler{}
	r := repository.New(10, d, func(fn repository.Function) (uint16, error) {
		return fn.(addressedFunction).addr, nil
	}, func(uint16) { finalizedCount++ })

	for addr := uint16(0); addr < 5; addr++ {
		if _, err := r.Get(0xAA, addr); err != nil {
			t.Fatal(err)
		}
	}
	r.Clear()

	if r.Len() != 0 {
		t.Errorf("expected Clear to empty the cache, Len() = %d", r.Len())
	}
	if finalizedCount != 5 {
		t.Errorf("expected every entry's finalizer to run, ran %d times", finalizedCount)
	}
}
