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

package prefs_test

import (
	"fmt"
	"os"
	"path"
	"testing"

	"github.com/sixfiveoh/sixfiveoh/prefs"
	"github.com/sixfiveoh/sixfiveoh/test"
)

const tempFile = "sixfiveoh_prefs_test"

func getTmpPrefFile(t *testing.T) string {
	t.Helper()
	return path.Join(os.TempDir(), tempFile)
}

func delTmpPrefFile(t *testing.T, fn string) {
	t.Helper()
	if err := os.Remove(fn); err != nil {
		if _, ok := err.(*os.PathError); !ok {
			t.Errorf("error removing tmp pref file: %v", err)
		}
	}
}

func cmpTmpFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	if err != nil {
		t.Fatalf("error opening tmp file: %v", err)
	}

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	if expected != string(data) {
		t.Fatalf("prefs file mismatch:\nwant:\n%s\ngot:\n%s", expected, string(data))
	}
}

func TestCoreSelectionRoundTrip(t *testing.T) {
	fn := getTmpPrefFile(t)
	defer delTmpPrefFile(t, fn)

	dsk, err := prefs.NewDisk(fn)
	test.ExpectedSuccess(t, err)

	var core prefs.String
	err = dsk.Add("core.backend", &core)
	test.ExpectedSuccess(t, err)

	err = core.Set("dynarec")
	test.ExpectedSuccess(t, err)

	err = dsk.Save()
	test.ExpectedSuccess(t, err)

	cmpTmpFile(t, fn, "core.backend :: dynarec\n")

	var loaded prefs.String
	dsk2, err := prefs.NewDisk(fn)
	test.ExpectedSuccess(t, err)
	err = dsk2.Add("core.backend", &loaded)
	test.ExpectedSuccess(t, err)

	err = dsk2.Load(false)
	test.ExpectedSuccess(t, err)

	test.Equate(t, loaded.String(), "dynarec")
}

func TestRepositoryCapacityAndTrace(t *testing.T) {
	fn := getTmpPrefFile(t)
	defer delTmpPrefFile(t, fn)

	dsk, err := prefs.NewDisk(fn)
	test.ExpectedSuccess(t, err)

	var capacity prefs.Int
	var trace prefs.Bool
	err = dsk.Add("repository.capacity", &capacity)
	test.ExpectedSuccess(t, err)
	err = dsk.Add("jit.trace", &trace)
	test.ExpectedSuccess(t, err)

	err = capacity.Set(1000)
	test.ExpectedSuccess(t, err)
	err = trace.Set(true)
	test.ExpectedSuccess(t, err)

	err = dsk.Save()
	test.ExpectedSuccess(t, err)

	cmpTmpFile(t, fn, "jit.trace :: true\nrepository.capacity :: 1000\n")
}

func TestUnrecognisedKeyStrict(t *testing.T) {
	fn := getTmpPrefFile(t)
	defer delTmpPrefFile(t, fn)

	dsk, err := prefs.NewDisk(fn)
	test.ExpectedSuccess(t, err)
	var core prefs.String
	err = dsk.Add("core.backend", &core)
	test.ExpectedSuccess(t, err)
	err = core.Set("interpret")
	test.ExpectedSuccess(t, err)
	err = dsk.Save()
	test.ExpectedSuccess(t, err)

	dsk2, err := prefs.NewDisk(fn)
	test.ExpectedSuccess(t, err)
	// nothing registered on dsk2 so the key is unrecognised
	err = dsk2.Load(false)
	test.ExpectedFailure(t, err)

	// lax mode ignores unrecognised keys
	err = dsk2.Load(true)
	test.ExpectedSuccess(t, err)
}

func TestDefunctKeyIgnored(t *testing.T) {
	fn := getTmpPrefFile(t)
	defer delTmpPrefFile(t, fn)

	err := os.WriteFile(fn, []byte(prefs.WarningBoilerPlate+"\ncore.forcescripting :: true\n"), 0o644)
	test.ExpectedSuccess(t, err)

	dsk, err := prefs.NewDisk(fn)
	test.ExpectedSuccess(t, err)
	err = dsk.Load(false)
	test.ExpectedSuccess(t, err)
}
