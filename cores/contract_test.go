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

package cores_test

import (
	"testing"

	"github.com/sixfiveoh/sixfiveoh/cores"
	"github.com/sixfiveoh/sixfiveoh/memory"
	"github.com/sixfiveoh/sixfiveoh/registers"
)

type stubCore struct{ state registers.State }

func (s *stubCore) Run(budget int32) (int32, error)       { return 0, nil }
func (s *stubCore) Jump(addr uint16)                       { s.state.PC = addr }
func (s *stubCore) State() *registers.State                { return &s.state }
func (s *stubCore) SetHook(hook cores.InstructionHook)     {}

func TestNewBuildsRegisteredBackend(t *testing.T) {
	const name cores.Backend = "stub-for-test"
	cores.Register(name, func(bus memory.Data) (cores.Core, error) {
		return &stubCore{}, nil
	})

	c, err := cores.New(name, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c == nil {
		t.Fatal("expected a non-nil core")
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	if _, err := cores.New(cores.Backend("does-not-exist"), nil); err == nil {
		t.Fatal("expected an error for an unregistered backend")
	}
}
