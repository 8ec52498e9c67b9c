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

// Package errors defines the error type shared by every pipeline stage:
// decode, function recovery, assembly, linking, memory management and
// guest-runtime dispatch all raise a CoreError built from a fixed Errno
// and a set of formatting values. Centralising the message table means
// callers never duplicate wording and the Runner can switch on Errno
// without string matching.
package errors
