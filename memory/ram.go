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

package memory

import (
	"fmt"
	"strings"
)

const ramSize = 0x0800

// ram is the 2 KiB of internal RAM occupying [0x0000, 0x2000), mirrored
// every 0x0800 bytes.
type ram struct {
	data [ramSize]uint8
}

func (r *ram) read(address uint16) uint8 {
	return r.data[address&(ramSize-1)]
}

func (r *ram) write(address uint16, value uint8) {
	r.data[address&(ramSize-1)] = value
}

func (r *ram) String() string {
	s := strings.Builder{}
	for row := 0; row < ramSize/16; row++ {
		s.WriteString(fmt.Sprintf("%04x: ", row*16))
		for col := 0; col < 16; col++ {
			s.WriteString(fmt.Sprintf("%02x ", r.data[row*16+col]))
		}
		s.WriteString("\n")
	}
	return strings.TrimRight(s.String(), "\n")
}
