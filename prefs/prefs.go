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

// Package prefs is a small file-backed typed preferences system. Values are
// registered against a key with Disk.Add and round-trip to a "key :: value"
// file on disk with Save/Load. The core-selection preference described by
// the external interface ("interpret" | "dynarec" | "amd64" | "lua") is a
// prefs.String like any other; nothing here knows that one particular key
// means anything special.
package prefs

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// WarningBoilerPlate is written as the first line of every saved prefs
// file, warning a human reader that the file is machine generated.
const WarningBoilerPlate = "# this file is generated by sixfiveoh -- edit with care"

// Disk associates preference keys with live pref values and persists them
// to a single file.
type Disk struct {
	path   string
	values map[string]pref
	order  []string
}

// NewDisk prepares a Disk backed by the file at path. The file need not
// exist yet; it is created on the first Save.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:   path,
		values: make(map[string]pref),
	}, nil
}

// Add registers p under key. Returns an error if key has already been
// registered with this Disk.
func (d *Disk) Add(key string, p pref) error {
	if _, ok := d.values[key]; ok {
		return fmt.Errorf("prefs: key %q already added", key)
	}
	d.values[key] = p
	d.order = append(d.order, key)
	return nil
}

// Save writes every registered key/value pair to disk, sorted by key.
func (d *Disk) Save() error {
	keys := make([]string, 0, len(d.values))
	for k := range d.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s :: %s\n", k, d.values[k].String()))
	}

	return os.WriteFile(d.path, []byte(s.String()), 0o644)
}

// Load reads the file on disk and applies each line to the matching
// registered pref. Lines for keys that have not been registered are
// ignored unless lax is false, in which case they are reported as an
// error. Defunct keys are always ignored.
func (d *Disk) Load(lax bool) error {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return err
	}

	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		kv := strings.SplitN(line, "::", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])

		if isDefunct(key) {
			continue
		}

		p, ok := d.values[key]
		if !ok {
			if !lax {
				return fmt.Errorf("prefs: unrecognised key %q", key)
			}
			continue
		}

		if err := p.Set(value); err != nil {
			return fmt.Errorf("prefs: setting %q: %w", key, err)
		}
	}

	return nil
}
