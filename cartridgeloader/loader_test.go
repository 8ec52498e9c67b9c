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

package cartridgeloader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sixfiveoh/sixfiveoh/cartridgeloader"
)

func writeTestROM(t *testing.T) string {
	t.Helper()
	data := append([]byte{'N', 'E', 'S', 0x1A, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, make([]byte, 16384)...)
	dir := t.TempDir()
	name := filepath.Join(dir, "game.nes")
	if err := os.WriteFile(name, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestLoadLocalFile(t *testing.T) {
	name := writeTestROM(t)

	l := cartridgeloader.NewLoader(name)
	if err := l.Load(); err != nil {
		t.Fatal(err)
	}
	if !l.HasLoaded() {
		t.Fatal("expected HasLoaded to report true after Load")
	}
	if l.Hash == "" {
		t.Error("expected Load to compute a hash")
	}
}

func TestLoadRejectsHashMismatch(t *testing.T) {
	name := writeTestROM(t)

	l := cartridgeloader.NewLoader(name)
	l.Hash = "0000000000000000000000000000000000000000"
	if err := l.Load(); err == nil {
		t.Fatal("expected a hash mismatch error")
	}
}

func TestLoadROMParsesINESHeader(t *testing.T) {
	name := writeTestROM(t)

	rom, err := cartridgeloader.LoadROM(name)
	if err != nil {
		t.Fatal(err)
	}
	if rom.MapperID != 0 {
		t.Errorf("MapperID = %d, want 0", rom.MapperID)
	}
	if len(rom.PRG) != 16384 {
		t.Errorf("PRG length = %d, want 16384", len(rom.PRG))
	}
}

func TestShortName(t *testing.T) {
	l := cartridgeloader.NewLoader("/roms/super_game.nes")
	if got := l.ShortName(); got != "super_game" {
		t.Errorf("ShortName() = %q, want %q", got, "super_game")
	}
}
