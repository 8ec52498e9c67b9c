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

// sixfiveoh loads an iNES cartridge and runs it through the emulation
// pipeline described by the memory, cores and runner packages. It is a
// thin command-line shell over that pipeline with four modes: run (an
// interactive session driven from the controlling terminal), disasm
// (recover and print a function's control-flow graph), bench (time a
// fixed number of frames against a chosen backend) and serve (expose
// the running machine's state over HTTP).
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pkg/term"
	"github.com/rs/cors"

	"github.com/sixfiveoh/sixfiveoh/cartridge"
	"github.com/sixfiveoh/sixfiveoh/cartridgeloader"
	"github.com/sixfiveoh/sixfiveoh/cores"
	_ "github.com/sixfiveoh/sixfiveoh/cores/dynarec"
	"github.com/sixfiveoh/sixfiveoh/cores/dynarec/trace"
	_ "github.com/sixfiveoh/sixfiveoh/cores/interpreter"
	_ "github.com/sixfiveoh/sixfiveoh/cores/transpiler"
	"github.com/sixfiveoh/sixfiveoh/disassembly"
	"github.com/sixfiveoh/sixfiveoh/disassembly/visualize"
	"github.com/sixfiveoh/sixfiveoh/logger"
	"github.com/sixfiveoh/sixfiveoh/memory"
	"github.com/sixfiveoh/sixfiveoh/modalflag"
	"github.com/sixfiveoh/sixfiveoh/ppu"
	"github.com/sixfiveoh/sixfiveoh/prefs"
	"github.com/sixfiveoh/sixfiveoh/runner"
)

// prefsFile is the default path for the persisted backend preference.
// A user who always benchmarks the dynarec back-end need not spell
// -backend out on every invocation.
const prefsFile = ".sixfiveoh.prefs"

func main() {
	if err := dispatch(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "* error: %s\n", err)
		os.Exit(1)
	}
}

func dispatch(args []string) error {
	disk, backendPref, err := loadPrefs()
	if err != nil {
		return err
	}

	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.AddSubModes("disasm", "bench", "serve")
	md.AddDefaultSubMode("RUN")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}

	switch md.Mode() {
	case "DISASM":
		return disasmMode(md)
	case "BENCH":
		return benchMode(md, backendPref)
	case "SERVE":
		return serveMode(md, backendPref)
	default:
		return runMode(md, disk, backendPref)
	}
}

// loadPrefs opens the persisted preferences file, registering the
// single "backend" key every mode reads its default execution backend
// from. A missing file is not an error: Load runs leniently and Save
// creates the file on first use.
func loadPrefs() (*prefs.Disk, *prefs.String, error) {
	disk, err := prefs.NewDisk(prefsFile)
	if err != nil {
		return nil, nil, err
	}

	backend := &prefs.String{}
	if err := backend.Set(string(cores.Interpreter)); err != nil {
		return nil, nil, err
	}
	if err := disk.Add("backend", backend); err != nil {
		return nil, nil, err
	}

	if err := disk.Load(true); err != nil && !os.IsNotExist(err) {
		return nil, nil, err
	}

	return disk, backend, nil
}

// buildMachine loads the cartridge named by path, wires a Bus and PPU
// around it and returns a Core of the named backend ready to run from
// the reset vector, along with the player-one controller so a caller
// can feed it input.
func buildMachine(path string, backend cores.Backend) (cores.Core, *memory.Bus, *ppu.PPU, *memory.Controller, error) {
	rom, err := cartridgeloader.LoadROM(path)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	mapper, err := cartridge.New(rom)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	vid := ppu.New(mapper)
	pad1 := &memory.Controller{}
	pad2 := &memory.Controller{}
	bus := memory.NewBus(vid, mapper, pad1, pad2)

	core, err := cores.New(backend, bus)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	lo, _ := bus.Read(0xFFFC)
	hi, _ := bus.Read(0xFFFD)
	core.Jump(uint16(hi)<<8 | uint16(lo))

	return core, bus, vid, pad1, nil
}

// button* name the indices buttonKeys maps terminal keys onto, matching
// the order memory.Controller's Shift shifts them out in.
const (
	buttonA = iota
	buttonB
	buttonSelect
	buttonStart
	buttonUp
	buttonDown
	buttonLeft
	buttonRight
)

// buttonKeys maps one held-down key per frame, read raw off the
// terminal, onto a controller button. Holding a key down is read as
// that button being held for the one frame between reads; releasing it
// takes effect the next time a different byte (or none) is read.
var buttonKeys = map[byte]int{
	'j': buttonA,
	'k': buttonB,
	' ': buttonSelect,
	'\r': buttonStart,
	'w': buttonUp,
	's': buttonDown,
	'a': buttonLeft,
	'd': buttonRight,
}

// runMode plays a cartridge interactively, reading controller input a
// byte at a time from the controlling terminal in raw mode so that key
// presses reach the emulator without waiting for a newline.
func runMode(md *modalflag.Modes, disk *prefs.Disk, backendPref *prefs.String) error {
	md.NewMode()
	backendFlag := md.AddString("backend", backendPref.String(), "execution backend: interpreter, transpiler, dynarec")
	save := md.AddBool("save", false, "persist -backend as the default for future runs")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("cartridge file required for %s mode", md)
	}

	if *save {
		if err := backendPref.Set(*backendFlag); err != nil {
			return err
		}
		if err := disk.Save(); err != nil {
			return err
		}
	}

	logger.SetEcho(os.Stdout, false)

	core, _, vid, pad1, err := buildMachine(md.GetArg(0), cores.Backend(*backendFlag))
	if err != nil {
		return err
	}

	tty, err := term.Open("/dev/tty")
	if err != nil {
		return fmt.Errorf("run: opening terminal: %w", err)
	}
	if err := term.RawMode(tty); err != nil {
		tty.Close()
		return fmt.Errorf("run: entering raw mode: %w", err)
	}
	defer func() {
		tty.Restore()
		tty.Close()
	}()

	run := runner.New(core, vid)

	fmt.Fprintln(os.Stdout, "running; wasd to move, j/k for A/B, space for select, enter for start, q to quit")

	buf := make([]byte, 1)
	for {
		for b := range buttonKeys {
			pad1.SetButton(buttonKeys[b], false)
		}

		n, err := tty.Read(buf)
		if n > 0 {
			if buf[0] == 'q' {
				return nil
			}
			if button, ok := buttonKeys[buf[0]]; ok {
				pad1.SetButton(button, true)
			}
		}
		if err != nil {
			return nil
		}

		if runErr := run.RunFrame(nil); runErr != nil {
			return runErr
		}
	}
}

// disasmMode recovers the function at -addr and writes it two ways:
// its instructions in address order to stdout, and its control-flow
// graph as a Graphviz dot file to -out. If -trace is set it additionally
// lowers the function to native code with the same translator the
// dynarec back-end uses and writes the disassembled x86-64 to stderr,
// even if that back-end is never selected to actually run anything.
func disasmMode(md *modalflag.Modes) error {
	md.NewMode()
	addr := md.AddUint64("addr", 0, "address to disassemble the function at")
	out := md.AddString("out", "", "write the control-flow graph as a dot file to this path")
	traceFlag := md.AddBool("trace", false, "also disassemble the dynarec translation of this function")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("cartridge file required for %s mode", md)
	}

	trace.Enabled = *traceFlag

	backend := cores.Interpreter
	if *traceFlag {
		backend = cores.Dynarec
	}
	core, bus, _, _, err := buildMachine(md.GetArg(0), backend)
	if err != nil {
		return err
	}

	fd := disassembly.New(bus)
	fn, err := fd.Disassemble(uint16(*addr))
	if err != nil {
		return err
	}

	for i := 0; i < fn.NumBranches(); i++ {
		b := fn.Branch(i)
		fmt.Printf("branch %d @ %#04x\n", i, b.Start)
		for _, bi := range b.Instructions {
			fmt.Printf("  %s\n", bi.Instr)
		}
	}

	if *traceFlag {
		core.Jump(uint16(*addr))
		if _, err := core.Run(1); err != nil {
			fmt.Fprintf(os.Stderr, "* trace run: %s\n", err)
		}
	}

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		return visualize.Graph(f, fn)
	}

	return nil
}

// benchMode times -frames frames of unattended execution against one
// backend and reports an average cycles-per-second figure, the figure
// described by the spec's performance non-goal as out of scope for
// correctness but useful for comparing back-ends against each other.
func benchMode(md *modalflag.Modes, backendPref *prefs.String) error {
	md.NewMode()
	backendFlag := md.AddString("backend", backendPref.String(), "execution backend: interpreter, transpiler, dynarec")
	frames := md.AddInt("frames", 600, "number of frames to run")
	traceFlag := md.AddBool("trace", false, "disassemble every compiled function as it is linked")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("cartridge file required for %s mode", md)
	}

	trace.Enabled = *traceFlag

	core, _, vid, _, err := buildMachine(md.GetArg(0), cores.Backend(*backendFlag))
	if err != nil {
		return err
	}

	run := runner.New(core, vid)

	start := time.Now()
	var totalCycles int64
	for i := 0; i < *frames; i++ {
		if err := run.RunFrame(nil); err != nil {
			return err
		}
		totalCycles += runner.TotalCycles
	}
	elapsed := time.Since(start)

	fmt.Printf("%s: %d frames, %d cycles, %s, %.0f cycles/sec\n",
		*backendFlag, *frames, totalCycles, elapsed, float64(totalCycles)/elapsed.Seconds())

	return nil
}

// machineStatus is the JSON body serveMode's status endpoint returns.
type machineStatus struct {
	A, X, Y, S, P uint8
	PC            uint16
	Cycles        int32
	Reason        string
}

// serveMode exposes a running machine's register state over HTTP,
// advancing one frame per request to /step and reporting the current
// state at /status. cors.New wraps every handler so a locally served
// debugging front-end on a different origin can poll it directly from
// a browser without a proxy.
func serveMode(md *modalflag.Modes, backendPref *prefs.String) error {
	md.NewMode()
	backendFlag := md.AddString("backend", backendPref.String(), "execution backend: interpreter, transpiler, dynarec")
	addr := md.AddString("addr", "localhost:6502", "address to listen on")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("cartridge file required for %s mode", md)
	}

	core, _, vid, _, err := buildMachine(md.GetArg(0), cores.Backend(*backendFlag))
	if err != nil {
		return err
	}
	run := runner.New(core, vid)

	mux := http.NewServeMux()
	mux.HandleFunc("/step", func(w http.ResponseWriter, r *http.Request) {
		if err := run.RunFrame(nil); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeStatus(w, core)
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, core)
	})
	mux.HandleFunc("/log", func(w http.ResponseWriter, r *http.Request) {
		logger.Tail(w, 200)
	})

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(mux)

	fmt.Printf("serving %s on %s\n", md.GetArg(0), *addr)
	return http.ListenAndServe(*addr, handler)
}

func writeStatus(w http.ResponseWriter, core cores.Core) {
	st := core.State()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(machineStatus{
		A: st.A, X: st.X, Y: st.Y, S: st.S, P: st.P,
		PC: st.PC, Cycles: st.Cycles, Reason: st.Reason.String(),
	})
}
