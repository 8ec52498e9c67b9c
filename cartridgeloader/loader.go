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

// Package cartridgeloader fetches a raw ROM image from a local path or
// an HTTP(S) URL and hands the bytes to the cartridge package for iNES
// parsing. It is the one place in the module that touches the
// filesystem or the network on a cartridge's behalf.
package cartridgeloader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/sixfiveoh/sixfiveoh/cartridge"
)

// Loader names the ROM to load and records its provenance once loaded.
type Loader struct {
	// Filename is a local path, or an http:// / https:// URL.
	Filename string

	// Hash is the expected sha1 of the raw file, or empty if unknown. On
	// a successful Load, it is set to (or checked against) the hash of
	// the bytes actually read.
	Hash string

	// Data is the raw file content after a successful Load.
	Data []byte
}

// NewLoader returns a Loader for filename, not yet loaded.
func NewLoader(filename string) Loader {
	return Loader{Filename: filename}
}

// ShortName returns the filename without its directory or extension.
func (l Loader) ShortName() string {
	name := path.Base(l.Filename)
	return strings.TrimSuffix(name, path.Ext(l.Filename))
}

// HasLoaded reports whether Load has already read the file's bytes.
func (l Loader) HasLoaded() bool {
	return len(l.Data) > 0
}

// Load fetches the ROM's bytes from a local file or an http(s) URL. If
// Hash is already set, the loaded data's hash must match it.
func (l *Loader) Load() error {
	if l.HasLoaded() {
		return nil
	}

	scheme := "file"
	if u, err := url.Parse(l.Filename); err == nil && u.Scheme != "" {
		scheme = u.Scheme
	}

	var data []byte
	var err error

	switch scheme {
	case "http", "https":
		data, err = fetchHTTP(l.Filename)
	default:
		data, err = os.ReadFile(l.Filename)
	}
	if err != nil {
		return fmt.Errorf("cartridgeloader: %w", err)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))
	if l.Hash != "" && l.Hash != hash {
		return fmt.Errorf("cartridgeloader: unexpected hash value")
	}
	l.Hash = hash
	l.Data = data

	return nil
}

func fetchHTTP(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// LoadROM reads and iNES-parses the cartridge named by filename in one
// step.
func LoadROM(filename string) (*cartridge.ROM, error) {
	l := NewLoader(filename)
	if err := l.Load(); err != nil {
		return nil, err
	}
	return cartridge.Load(l.Data)
}
