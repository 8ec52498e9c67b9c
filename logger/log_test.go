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

package logger_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/sixfiveoh/sixfiveoh/logger"
)

func TestLogger(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Write(w)
	if w.String() != "" {
		t.Fatalf("expected empty log, got %q", w.String())
	}

	log.Log(logger.Allow, "test", "this is a test")
	log.Write(w)
	if w.String() != "test: this is a test\n" {
		t.Fatalf("unexpected log contents: %q", w.String())
	}

	w.Reset()
	log.Log(logger.Allow, "test2", "this is another test")
	log.Write(w)
	if w.String() != "test: this is a test\ntest2: this is another test\n" {
		t.Fatalf("unexpected log contents: %q", w.String())
	}

	w.Reset()
	log.Tail(w, 1)
	if w.String() != "test2: this is another test\n" {
		t.Fatalf("unexpected tail: %q", w.String())
	}
}

type prohibitLogging struct {
	allowed bool
}

func (p prohibitLogging) AllowLogging() bool {
	return p.allowed
}

func TestPermissions(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(prohibitLogging{allowed: false}, "tag", "detail")
	log.Write(w)
	if w.String() != "" {
		t.Fatalf("expected nothing logged, got %q", w.String())
	}

	log.Log(prohibitLogging{allowed: true}, "tag", "detail")
	log.Write(w)
	if w.String() != "tag: detail\n" {
		t.Fatalf("expected one entry, got %q", w.String())
	}
}

func TestErrorAndRepeatLogging(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "tag", errors.New("boom"))
	log.Log(logger.Allow, "tag", errors.New("boom"))
	log.Write(w)
	if w.String() != "tag: boom (repeat x1)\n" {
		t.Fatalf("unexpected repeat collapsing: %q", w.String())
	}
}
