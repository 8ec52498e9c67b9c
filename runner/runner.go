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

// Package runner drives a Core and a PPU through one frame at a time:
// a per-scan-line cycle budget, VBlank/NMI at the scan-line the PPU
// enters vertical blank, and a caller-supplied draw callback once per
// line. It is the single-threaded cooperative scheduler described by
// the concurrency model — there is no guest-observable concurrency
// anywhere below it.
package runner

import (
	"github.com/sixfiveoh/sixfiveoh/cores"
	"github.com/sixfiveoh/sixfiveoh/registers"
)

// TotalCycles is the CPU cycle budget for one whole video frame, spread
// across ScanLines scan-lines.
const TotalCycles = 29781

// ScanLines is the number of scan-line iterations the frame scheduler
// runs, including vertical blank.
const ScanLines = 260

// PerLine is the cycle budget added to the running total at the start
// of each scan-line; Leftover is what PerLine*ScanLines falls short of
// TotalCycles by, added on the final line so a whole frame always spends
// exactly TotalCycles.
const (
	PerLine  = TotalCycles / ScanLines
	Leftover = TotalCycles - PerLine*ScanLines
)

// VBlankLine is the scan-line at which the PPU's VBlank flag is raised
// and, if enabled, an NMI is delivered to the core.
const VBlankLine = 240

// nmiSource is implemented by a core that can service a hardware NMI
// between Run calls. Not every back-end necessarily implements it —
// Run is asserted against it at each VBlank boundary and the interrupt
// is simply skipped if it doesn't.
type nmiSource interface {
	NMI()
}

// vblankPorts is the PPU surface the runner needs beyond the CPU-bus
// register ports: raising and lowering VBlank, and reporting whether
// the guest asked for an NMI when it does.
type vblankPorts interface {
	SetVBlank(v bool)
	NMIEnabled() bool
}

// DrawScanLine is called once per scan-line with the 0-based line
// number, after the CPU has run that line's cycle budget.
type DrawScanLine func(line int)

// Runner ties one Core to one PPU for the lifetime of a running game.
type Runner struct {
	core    cores.Core
	ppu     vblankPorts
	pending int32 // carried-over cycle budget between scan-lines
}

// New returns a Runner over core and ppu.
func New(core cores.Core, ppu vblankPorts) *Runner {
	return &Runner{core: core, ppu: ppu}
}

// RunFrame runs exactly one video frame: ScanLines iterations, each
// adding PerLine cycles (plus Leftover on the last) to the outstanding
// budget and calling the core's Run, raising VBlank (and, if the guest
// has requested it, an NMI) at VBlankLine, lowering it again at the
// frame's last line, and calling draw once per line. It returns the
// error reported by the Runner's UnknownInstruction escalation and
// stops the frame early if the core reports InfiniteLoop.
func (r *Runner) RunFrame(draw DrawScanLine) error {
	for line := 0; line < ScanLines; line++ {
		r.pending += PerLine
		if line == ScanLines-1 {
			r.pending += Leftover
		}

		if line == VBlankLine {
			r.ppu.SetVBlank(true)
			if r.ppu.NMIEnabled() {
				if n, ok := r.core.(nmiSource); ok {
					n.NMI()
				}
			}
		}
		if line == ScanLines-1 {
			r.ppu.SetVBlank(false)
		}

		left, err := r.core.Run(r.pending)
		if err != nil {
			return err
		}
		r.pending = left

		if draw != nil {
			draw(line)
		}

		if r.core.State().Reason == registers.InfiniteLoop {
			break
		}
	}
	return nil
}
