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

// Package logger is a small ring-buffer logger shared by every pipeline
// stage. Nothing here is specific to any one core: the dynarec, the
// transpiler and the interpreter all log through the same central
// instance so that a single Tail() shows the interleaved history of
// whichever back-end is active.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry represents a single line in the log.
type Entry struct {
	Timestamp time.Time
	tag       string
	detail    string
	repeated  int
}

func (e *Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.tag, e.detail))
	if e.repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

// Logger is a capped, append-only log with an optional echo writer.
type Logger struct {
	mu         sync.Mutex
	maxEntries int
	entries    []Entry
	echo       io.Writer
	echoRecent bool
	recentFrom int
}

// NewLogger creates a Logger capped at maxEntries.
func NewLogger(maxEntries int) *Logger {
	return &Logger{
		maxEntries: maxEntries,
		entries:    make([]Entry, 0, maxEntries),
	}
}

func detailString(detail interface{}) string {
	switch v := detail.(type) {
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (l *Logger) append(tag, detail string) {
	if n := len(l.entries); n > 0 {
		last := &l.entries[n-1]
		if last.tag == tag && last.detail == detail {
			last.repeated++
			last.Timestamp = time.Now()
			return
		}
	}

	e := Entry{Timestamp: time.Now(), tag: tag, detail: detail}
	l.entries = append(l.entries, e)
	if len(l.entries) > l.maxEntries {
		l.entries = l.entries[1:]
		if l.recentFrom > 0 {
			l.recentFrom--
		}
	}

	if l.echo != nil {
		_, _ = l.echo.Write([]byte(e.String()))
	}
}

// Log adds an entry to the log if perm allows it.
func (l *Logger) Log(perm Permission, tag string, detail interface{}) {
	if perm != Allow && !perm.AllowLogging() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.append(tag, detailString(detail))
}

// Logf adds a formatted entry to the log if perm allows it.
func (l *Logger) Logf(perm Permission, tag, format string, args ...interface{}) {
	if perm != Allow && !perm.AllowLogging() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.append(tag, fmt.Sprintf(format, args...))
}

// Clear removes every entry from the log.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
	l.recentFrom = 0
}

// Write writes every entry to w.
func (l *Logger) Write(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		_, _ = w.Write([]byte(l.entries[i].String()))
	}
}

// WriteRecent writes only the entries added since the last call to
// WriteRecent.
func (l *Logger) WriteRecent(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := l.recentFrom; i < len(l.entries); i++ {
		_, _ = w.Write([]byte(l.entries[i].String()))
	}
	l.recentFrom = len(l.entries)
}

// Tail writes the last n entries to w.
func (l *Logger) Tail(w io.Writer, n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > len(l.entries) {
		n = len(l.entries)
	}
	for i := len(l.entries) - n; i < len(l.entries); i++ {
		_, _ = w.Write([]byte(l.entries[i].String()))
	}
}

// SetEcho causes every future Log/Logf call to also be written to w
// immediately. If writeRecent is true, the entries accumulated so far are
// written to w first.
func (l *Logger) SetEcho(w io.Writer, writeRecent bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if writeRecent {
		for i := range l.entries {
			_, _ = w.Write([]byte(l.entries[i].String()))
		}
	}
	l.echo = w
}

// BorrowLog gives f exclusive access to the current entries, e.g. for a
// debugger UI to render a snapshot without racing a concurrent Log call.
func (l *Logger) BorrowLog(f func([]Entry)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f(l.entries)
}
